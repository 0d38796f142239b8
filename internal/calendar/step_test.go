package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arindamg/taskledger/internal/calendar"
)

func TestStep(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		cadence  calendar.Cadence
		interval int
		want     time.Time
	}{
		{
			name:     "DailyAddsInterval",
			start:    date(2025, time.April, 1),
			cadence:  calendar.Daily,
			interval: 3,
			want:     date(2025, time.April, 4),
		},
		{
			name:     "WeeklyAddsSevenPerInterval",
			start:    date(2025, time.April, 1),
			cadence:  calendar.Weekly,
			interval: 2,
			want:     date(2025, time.April, 15),
		},
		{
			name:     "MonthlyPlain",
			start:    date(2025, time.March, 15),
			cadence:  calendar.Monthly,
			interval: 1,
			want:     date(2025, time.April, 15),
		},
		{
			name:     "MonthlyClampsNonLeapFebruary",
			start:    date(2025, time.January, 31),
			cadence:  calendar.Monthly,
			interval: 1,
			want:     date(2025, time.February, 28),
		},
		{
			name:     "MonthlyClampsLeapFebruary",
			start:    date(2024, time.January, 31),
			cadence:  calendar.Monthly,
			interval: 1,
			want:     date(2024, time.February, 29),
		},
		{
			name:     "MonthlyAcrossYearBoundary",
			start:    date(2025, time.November, 30),
			cadence:  calendar.Monthly,
			interval: 3,
			want:     date(2026, time.February, 28),
		},
		{
			name:     "YearlyClampsLeapDay",
			start:    date(2024, time.February, 29),
			cadence:  calendar.Yearly,
			interval: 1,
			want:     date(2025, time.February, 28),
		},
		{
			name:     "YearlyInterval",
			start:    date(2025, time.June, 10),
			cadence:  calendar.Yearly,
			interval: 2,
			want:     date(2027, time.June, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calendar.Step(tt.start, tt.cadence, tt.interval))
		})
	}
}

func TestShiftWeekend(t *testing.T) {
	saturday := date(2025, time.April, 5)
	sunday := date(2025, time.April, 6)
	wednesday := date(2025, time.April, 9)

	assert.Equal(t, date(2025, time.April, 7), calendar.ShiftWeekend(saturday), "saturday lands on monday")
	assert.Equal(t, date(2025, time.April, 7), calendar.ShiftWeekend(sunday), "sunday lands on monday")
	assert.Equal(t, wednesday, calendar.ShiftWeekend(wednesday), "weekday unchanged")
}

func TestNextAfter(t *testing.T) {
	start := date(2025, time.January, 1)
	now := date(2025, time.January, 20)

	next := calendar.NextAfter(start, calendar.Weekly, 1, now)
	assert.Equal(t, date(2025, time.January, 22), next)

	// now exactly on an occurrence steps past it
	next = calendar.NextAfter(start, calendar.Daily, 1, start)
	assert.Equal(t, date(2025, time.January, 2), next)

	// start already in the future is returned untouched
	future := date(2025, time.March, 1)
	assert.Equal(t, future, calendar.NextAfter(future, calendar.Monthly, 1, now))
}

func TestCadenceValid(t *testing.T) {
	assert.True(t, calendar.Daily.Valid())
	assert.True(t, calendar.EventBased.Valid())
	assert.False(t, calendar.Cadence("HOURLY").Valid())
}
