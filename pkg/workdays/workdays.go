// Package workdays computes chargeable vacation day counts for date ranges.
// Everything here is pure date arithmetic on UTC-midnight dates so the
// balance aggregator and the request lifecycle can share one deterministic
// counting rule.
package workdays

import "time"

// DateLayout is the wire format for all date-only values.
const DateLayout = "2006-01-02"

// ParseDate parses a date-only string and normalizes it to midnight UTC.
// Callers must use this before Chargeable; passing a timestamp with a
// time-of-day component risks off-by-one counts across DST shifts.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

// Normalize strips the time-of-day component, keeping the calendar date in UTC.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Chargeable returns the number of chargeable days in the inclusive range
// [start, end]. An inverted range counts as zero. When excludeWeekends is
// set, Saturdays and Sundays inside the range are not charged. The result
// is never negative.
func Chargeable(start, end time.Time, excludeWeekends bool) int {
	start = Normalize(start)
	end = Normalize(end)
	if end.Before(start) {
		return 0
	}

	total := int(end.Sub(start).Hours()/24) + 1
	if !excludeWeekends {
		return total
	}

	weekend := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekend++
		}
	}

	days := total - weekend
	if days < 0 {
		return 0
	}
	return days
}

// Overlaps reports whether the inclusive range [start, end] touches the
// calendar year. Partially overlapping ranges count.
func Overlaps(start, end time.Time, year int) bool {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return !Normalize(end).Before(yearStart) && !Normalize(start).After(yearEnd)
}
