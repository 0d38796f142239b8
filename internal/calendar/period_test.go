package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arindamg/taskledger/internal/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseFinancialYear(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		wantStart int
		wantEnd   int
		wantErr   bool
	}{
		{name: "Standard", label: "2025-26", wantStart: 2025, wantEnd: 2026},
		{name: "Whitespace", label: " 2024-25 ", wantStart: 2024, wantEnd: 2025},
		{name: "NoSuffix", label: "2025", wantStart: 2025, wantEnd: 2026},
		{name: "NotANumber", label: "FY25-26", wantErr: true},
		{name: "TooEarly", label: "1999-00", wantErr: true},
		{name: "TooLate", label: "2101-02", wantErr: true},
		{name: "Empty", label: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fy, err := calendar.ParseFinancialYear(tt.label)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, calendar.ErrInvalidPeriod)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, fy.StartYear)
			assert.Equal(t, tt.wantEnd, fy.EndYear)
		})
	}
}

func TestFinancialYearRange(t *testing.T) {
	fy, err := calendar.ParseFinancialYear("2025-26")
	require.NoError(t, err)

	r := fy.Range()

	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC), r.End)
}

func TestFinancialYearLabels(t *testing.T) {
	fy := calendar.FinancialYear{StartYear: 2025, EndYear: 2026}

	assert.Equal(t, "2025-26", fy.Label())
	assert.Equal(t, "2526", fy.ShortLabel())
}

func TestFinancialYearOf(t *testing.T) {
	assert.Equal(t, 2024, calendar.FinancialYearOf(date(2025, time.February, 10)).StartYear)
	assert.Equal(t, 2025, calendar.FinancialYearOf(date(2025, time.April, 1)).StartYear)
	assert.Equal(t, 2025, calendar.FinancialYearOf(date(2025, time.December, 31)).StartYear)
}

func TestFYMonthRange(t *testing.T) {
	fy := calendar.FinancialYear{StartYear: 2025, EndYear: 2026}

	tests := []struct {
		name     string
		month    time.Month
		wantYear int
		wantErr  bool
	}{
		{name: "April", month: time.April, wantYear: 2025},
		{name: "December", month: time.December, wantYear: 2025},
		{name: "January", month: time.January, wantYear: 2026},
		{name: "March", month: time.March, wantYear: 2026},
		{name: "Invalid", month: 13, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := fy.MonthRange(tt.month)

			if tt.wantErr {
				assert.ErrorIs(t, err, calendar.ErrInvalidPeriod)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, r.Start.Year())
			assert.Equal(t, tt.month, r.Start.Month())
			assert.Equal(t, 1, r.Start.Day())
			assert.Equal(t, tt.month, r.End.Month())
		})
	}
}

func TestMonthRangeLastInstant(t *testing.T) {
	r := calendar.MonthRange(2024, time.February)

	assert.Equal(t, date(2024, time.February, 1), r.Start)
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC), r.End)
}

func TestQuarterRange(t *testing.T) {
	fy := calendar.FinancialYear{StartYear: 2025, EndYear: 2026}

	tests := []struct {
		name      string
		quarter   int
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "Q1",
			quarter:   1,
			wantStart: date(2025, time.April, 1),
			wantEnd:   time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "Q2",
			quarter:   2,
			wantStart: date(2025, time.July, 1),
			wantEnd:   time.Date(2025, time.September, 30, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "Q3",
			quarter:   3,
			wantStart: date(2025, time.October, 1),
			wantEnd:   time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "Q4RollsIntoNextCalendarYear",
			quarter:   4,
			wantStart: date(2026, time.January, 1),
			wantEnd:   time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC),
		},
		{name: "QuarterZero", quarter: 0, wantErr: true},
		{name: "QuarterFive", quarter: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := fy.QuarterRange(tt.quarter)

			if tt.wantErr {
				assert.ErrorIs(t, err, calendar.ErrInvalidPeriod)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, tt.wantEnd, r.End)
		})
	}
}

func TestClamp(t *testing.T) {
	period := calendar.Range{Start: date(2025, time.April, 1), End: date(2026, time.March, 31)}

	t.Run("MasterStartNarrows", func(t *testing.T) {
		r, ok := calendar.Clamp(period, date(2025, time.June, 1), nil, nil, nil)

		require.True(t, ok)
		assert.Equal(t, date(2025, time.June, 1), r.Start)
		assert.Equal(t, period.End, r.End)
	})

	t.Run("LinkWindowNarrowsBothEnds", func(t *testing.T) {
		linkStart := date(2025, time.July, 1)
		linkEnd := date(2025, time.September, 30)

		r, ok := calendar.Clamp(period, date(2025, time.April, 1), nil, &linkStart, &linkEnd)

		require.True(t, ok)
		assert.Equal(t, linkStart, r.Start)
		assert.Equal(t, linkEnd, r.End)
	})

	t.Run("MasterEndApplies", func(t *testing.T) {
		masterEnd := date(2025, time.May, 15)

		r, ok := calendar.Clamp(period, date(2025, time.April, 1), &masterEnd, nil, nil)

		require.True(t, ok)
		assert.Equal(t, masterEnd, r.End)
	})

	t.Run("EmptyIntersection", func(t *testing.T) {
		linkEnd := date(2025, time.January, 31)

		_, ok := calendar.Clamp(period, date(2025, time.April, 1), nil, nil, &linkEnd)

		assert.False(t, ok)
	})

	t.Run("MasterStartsAfterPeriod", func(t *testing.T) {
		_, ok := calendar.Clamp(period, date(2026, time.June, 1), nil, nil, nil)

		assert.False(t, ok)
	})
}

func TestDays(t *testing.T) {
	r := calendar.Range{
		Start: time.Date(2025, time.April, 28, 10, 30, 0, 0, time.UTC),
		End:   time.Date(2025, time.May, 2, 23, 59, 59, 0, time.UTC),
	}

	var got []time.Time
	for d := range calendar.Days(r) {
		got = append(got, d)
	}

	want := []time.Time{
		date(2025, time.April, 28),
		date(2025, time.April, 29),
		date(2025, time.April, 30),
		date(2025, time.May, 1),
		date(2025, time.May, 2),
	}
	assert.Equal(t, want, got)

	// Restartable: a second pass yields the same sequence.
	var again []time.Time
	for d := range calendar.Days(r) {
		again = append(again, d)
	}
	assert.Equal(t, got, again)
}
