package calendar

import "time"

// Cadence is how often an obligation or template recurs. Templates use the
// first four; task masters additionally use QUARTERLY and EVENT_BASED.
type Cadence string

const (
	Daily      Cadence = "DAILY"
	Weekly     Cadence = "WEEKLY"
	Monthly    Cadence = "MONTHLY"
	Quarterly  Cadence = "QUARTERLY"
	Yearly     Cadence = "YEARLY"
	EventBased Cadence = "EVENT_BASED"
)

// Valid reports whether c is a known cadence.
func (c Cadence) Valid() bool {
	switch c {
	case Daily, Weekly, Monthly, Quarterly, Yearly, EventBased:
		return true
	}

	return false
}

// Step advances a date by one cadence tick of the given interval. Month and
// year steps clamp the day-of-month to the target month's last day, so
// Jan 31 + 1 month is Feb 28 (or Feb 29 in a leap year).
func Step(d time.Time, c Cadence, interval int) time.Time {
	switch c {
	case Daily:
		return d.AddDate(0, 0, interval)
	case Weekly:
		return d.AddDate(0, 0, interval*7)
	case Monthly:
		return addMonthsClamped(d, interval)
	case Yearly:
		return addMonthsClamped(d, interval*12)
	}

	return d
}

// ShiftWeekend moves Saturday and Sunday dates forward to the following
// Monday. Weekdays pass through unchanged.
func ShiftWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}

	return d
}

// NextAfter walks the cadence forward from start until the occurrence lies
// strictly after now. It lets generation resume without re-visiting dates
// that already had their chance to exist.
func NextAfter(start time.Time, c Cadence, interval int, now time.Time) time.Time {
	next := start
	for !next.After(now) {
		next = Step(next, c, interval)
	}

	return next
}

func addMonthsClamped(d time.Time, months int) time.Time {
	first := time.Date(d.Year(), d.Month(), 1, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location()).AddDate(0, months, 0)

	day := d.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}
