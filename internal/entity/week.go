package entity

import "time"

// DateLayout is the calendar date format used in week keys and API inputs.
const DateLayout = "2006-01-02"

// Week is a Monday through Sunday span, both ends inclusive.
type Week struct {
	Start time.Time
	End   time.Time
}

// Key identifies the week in the funnel cache and in reports, e.g. "2021-01-04-2021-01-10".
func (w Week) Key() string {
	return w.Start.Format(DateLayout) + "-" + w.End.Format(DateLayout)
}

// Contains reports whether d falls on one of the week's days.
func (w Week) Contains(d time.Time) bool {
	d = TruncateToDate(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// TruncateToDate drops the clock part of t, keeping its calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weekdayOffset returns the day index with Monday = 0 and Sunday = 6.
func weekdayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ClosestPrevMonday returns the Monday on or before d.
func ClosestPrevMonday(d time.Time) time.Time {
	d = TruncateToDate(d)
	return d.AddDate(0, 0, -weekdayOffset(d))
}

// ClosestNextSunday returns the Sunday on or after d.
func ClosestNextSunday(d time.Time) time.Time {
	d = TruncateToDate(d)
	return d.AddDate(0, 0, 6-weekdayOffset(d))
}

// WeekContaining returns the Monday-Sunday week that d falls in.
func WeekContaining(d time.Time) Week {
	start := ClosestPrevMonday(d)
	return Week{Start: start, End: start.AddDate(0, 0, 6)}
}

// PartitionWeeks expands [start, end] outward to full weeks and returns them
// in ascending order. Callers guarantee start <= end.
func PartitionWeeks(start, end time.Time) []Week {
	first := ClosestPrevMonday(start)
	last := ClosestNextSunday(end)

	var weeks []Week
	for cur := first; !cur.After(last); cur = cur.AddDate(0, 0, 7) {
		weeks = append(weeks, Week{Start: cur, End: cur.AddDate(0, 0, 6)})
	}
	return weeks
}
