package calendar

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidPeriod is returned for malformed financial-year labels and
// out-of-range quarter or month selectors.
var ErrInvalidPeriod = errors.New("invalid period")

// FinancialYear is the Indian Apr 1 – Mar 31 accounting year. StartYear is the
// calendar year containing April; EndYear the one containing March.
type FinancialYear struct {
	StartYear int
	EndYear   int
}

// ParseFinancialYear parses a label like "2025-26". Only the first token is
// authoritative; the suffix after the dash is ignored.
func ParseFinancialYear(label string) (FinancialYear, error) {
	first, _, _ := strings.Cut(strings.TrimSpace(label), "-")

	year, err := strconv.Atoi(first)
	if err != nil || year < 2000 || year > 2100 {
		return FinancialYear{}, fmt.Errorf("%w: financial year %q (expected e.g. 2025-26)", ErrInvalidPeriod, label)
	}

	return FinancialYear{StartYear: year, EndYear: year + 1}, nil
}

// Label renders the FY back in "2025-26" form.
func (fy FinancialYear) Label() string {
	return fmt.Sprintf("%d-%02d", fy.StartYear, fy.EndYear%100)
}

// ShortLabel renders the compact "2526" form used in invoice numbers.
func (fy FinancialYear) ShortLabel() string {
	return fmt.Sprintf("%02d%02d", fy.StartYear%100, fy.EndYear%100)
}

// FinancialYearOf returns the FY containing the given instant: Jan–Mar belong
// to the FY that started the previous April.
func FinancialYearOf(t time.Time) FinancialYear {
	y := t.Year()
	if t.Month() < time.April {
		return FinancialYear{StartYear: y - 1, EndYear: y}
	}

	return FinancialYear{StartYear: y, EndYear: y + 1}
}

// Range is an inclusive UTC window.
type Range struct {
	Start time.Time
	End   time.Time
}

// Range spans Apr 1 00:00:00 of StartYear through Mar 31 23:59:59 of EndYear.
func (fy FinancialYear) Range() Range {
	return Range{
		Start: time.Date(fy.StartYear, time.April, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(fy.EndYear, time.March, 31, 23, 59, 59, 0, time.UTC),
	}
}

// MonthRange spans the first through last instant of a calendar month.
func MonthRange(year int, month time.Month) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	return Range{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Second),
	}
}

// MonthRange resolves a calendar month number inside the FY: months Apr–Dec
// fall in StartYear, Jan–Mar in EndYear.
func (fy FinancialYear) MonthRange(month time.Month) (Range, error) {
	if month < time.January || month > time.December {
		return Range{}, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}

	year := fy.StartYear
	if month < time.April {
		year = fy.EndYear
	}

	return MonthRange(year, month), nil
}

// QuarterRange resolves FY quarters: Q1=Apr–Jun, Q2=Jul–Sep, Q3=Oct–Dec,
// Q4=Jan–Mar of the following calendar year.
func (fy FinancialYear) QuarterRange(quarter int) (Range, error) {
	if quarter < 1 || quarter > 4 {
		return Range{}, fmt.Errorf("%w: quarter %d (must be 1..4)", ErrInvalidPeriod, quarter)
	}

	start := time.Date(fy.StartYear, time.April, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 3*(quarter-1), 0)

	return Range{
		Start: start,
		End:   start.AddDate(0, 3, 0).Add(-time.Second),
	}, nil
}

// Clamp intersects the period window with the obligation's own active window
// and the per-client override window. The second return is false when the
// intersection is empty; callers skip such links silently and report only
// through their skip counts.
func Clamp(period Range, masterStart time.Time, masterEnd, linkStart, linkEnd *time.Time) (Range, bool) {
	start := maxTime(period.Start, masterStart)
	end := period.End

	if masterEnd != nil {
		end = minTime(end, *masterEnd)
	}

	if linkStart != nil {
		start = maxTime(start, *linkStart)
	}

	if linkEnd != nil {
		end = minTime(end, *linkEnd)
	}

	if end.Before(start) {
		return Range{}, false
	}

	return Range{Start: start, End: end}, true
}

// Days yields every UTC midnight from the range start's date through the
// range end's date, inclusive. The sequence is restartable.
func Days(r Range) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		cur := Midnight(r.Start)
		last := Midnight(r.End)

		for !cur.After(last) {
			if !yield(cur) {
				return
			}

			cur = cur.AddDate(0, 0, 1)
		}
	}
}

// Midnight truncates an instant to 00:00:00 UTC of its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}

	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}

	return b
}
