package workdays_test

import (
	"testing"
	"time"

	"vacationhub/pkg/workdays"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestChargeable_InvertedRangeIsZero(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"one day apart", date(2024, time.May, 13), date(2024, time.May, 10)},
		{"across years", date(2025, time.January, 1), date(2024, time.December, 31)},
		{"same week", date(2024, time.March, 8), date(2024, time.March, 4)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, 0, workdays.Chargeable(tc.start, tc.end, true))
			assert.Equal(t, 0, workdays.Chargeable(tc.start, tc.end, false))
		})
	}
}

func TestChargeable_WeekendExclusion(t *testing.T) {
	// 2024-05-06 is a Monday.
	mon := date(2024, time.May, 6)
	fri := date(2024, time.May, 10)
	nextSun := date(2024, time.May, 12)

	assert.Equal(t, 5, workdays.Chargeable(mon, fri, true), "Mon-Fri is five working days")
	assert.Equal(t, 5, workdays.Chargeable(mon, nextSun, true), "Mon-Sun excludes exactly two weekend days")
	assert.Equal(t, 7, workdays.Chargeable(mon, nextSun, false), "raw span keeps the weekend")

	// Two full weeks: 14 calendar days, 4 weekend days.
	assert.Equal(t, 10, workdays.Chargeable(mon, date(2024, time.May, 19), true))
}

func TestChargeable_SingleDay(t *testing.T) {
	mon := date(2024, time.May, 6)
	sat := date(2024, time.May, 11)
	sun := date(2024, time.May, 12)

	assert.Equal(t, 1, workdays.Chargeable(mon, mon, true))
	assert.Equal(t, 0, workdays.Chargeable(sat, sat, true))
	assert.Equal(t, 0, workdays.Chargeable(sun, sun, true))
	assert.Equal(t, 1, workdays.Chargeable(sat, sat, false))
}

func TestChargeable_FridayThroughMonday(t *testing.T) {
	// 2024-05-10 is a Friday, 2024-05-13 the following Monday.
	got := workdays.Chargeable(date(2024, time.May, 10), date(2024, time.May, 13), true)
	assert.Equal(t, 2, got, "Fri+Mon are chargeable, Sat+Sun are not")
}

func TestChargeable_NormalizesTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.May, 6, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, time.May, 10, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 5, workdays.Chargeable(start, end, true))
}

func TestParseDate(t *testing.T) {
	d, err := workdays.ParseDate("2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.May, 10), d)
	assert.Equal(t, time.UTC, d.Location())

	_, err = workdays.ParseDate("10/05/2024")
	assert.Error(t, err)
	_, err = workdays.ParseDate("")
	assert.Error(t, err)
	_, err = workdays.ParseDate("2024-13-40")
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, workdays.Overlaps(date(2024, time.May, 1), date(2024, time.May, 10), 2024))
	assert.True(t, workdays.Overlaps(date(2023, time.December, 20), date(2024, time.January, 5), 2024), "partial overlap at year start")
	assert.True(t, workdays.Overlaps(date(2024, time.December, 30), date(2025, time.January, 3), 2024), "partial overlap at year end")
	assert.False(t, workdays.Overlaps(date(2023, time.June, 1), date(2023, time.June, 10), 2024))
	assert.False(t, workdays.Overlaps(date(2025, time.January, 1), date(2025, time.January, 2), 2024))
}
