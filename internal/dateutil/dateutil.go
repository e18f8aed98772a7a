// Package dateutil provides the calendar-day arithmetic shared by the
// planner and the progress aggregator. Both must bucket completions by the
// same local-calendar rules or their numbers drift apart.
package dateutil

import "time"

// StartOfDay strips the time of day, keeping the location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole calendar days from a to b
// (b after a gives a positive count). Time of day is ignored on both sides.
// Rounding absorbs the 23h/25h days around DST transitions.
func DaysBetween(a, b time.Time) int {
	da := StartOfDay(a)
	db := StartOfDay(b)
	return int(db.Sub(da).Round(24*time.Hour) / (24 * time.Hour))
}

// StartOfWeek returns local midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// DateKey formats a timestamp as its local calendar date (YYYY-MM-DD).
// Used to collapse completions into distinct days for streak counting.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
