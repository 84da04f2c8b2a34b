package streak

import "time"

// Day returns the calendar day of t, read in t's own location, as UTC midnight.
// Convert t with In(loc) first to evaluate days in a user or game timezone.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative when b precedes a)
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / hoursPerDay)
}

// ShouldResetDailyTasks reports whether dailies last reset on lastReset need reopening on today.
// A nil lastReset always resets.
func ShouldResetDailyTasks(lastReset *time.Time, today time.Time) bool {
	if lastReset == nil {
		return true
	}
	return DaysBetween(*lastReset, today) > 0
}

// IsOverdue reports whether due lies on a calendar day before today
func IsOverdue(due, today time.Time) bool {
	return Day(due).Before(Day(today))
}

// DaysUntilDue returns the calendar days left until due, negative when overdue
func DaysUntilDue(due, today time.Time) int {
	return DaysBetween(today, due)
}
