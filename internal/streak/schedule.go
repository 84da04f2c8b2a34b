package streak

import (
	"fmt"
	"time"

	"github.com/osse101/habitquest/internal/domain"
)

// ValidateRepeatPattern checks a daily task's schedule.
// Interval "daily" takes no days or all seven; "weekly" and "custom" need at least one weekday in 0..6.
func ValidateRepeatPattern(p domain.RepeatPattern) error {
	for _, d := range p.Days {
		if d < minWeekday || d > maxWeekday {
			return fmt.Errorf("%w: repeat day %d outside %d..%d", domain.ErrInvalidArgument, d, minWeekday, maxWeekday)
		}
	}

	switch p.Interval {
	case domain.RepeatDaily:
		if len(p.Days) != 0 && len(p.Days) != daysPerWeek {
			return fmt.Errorf("%w: daily pattern must list no days or all %d", domain.ErrInvalidArgument, daysPerWeek)
		}
	case domain.RepeatWeekly, domain.RepeatCustom:
		if len(p.Days) == 0 {
			return fmt.Errorf("%w: %s pattern needs at least one day", domain.ErrInvalidArgument, p.Interval)
		}
	default:
		return fmt.Errorf("%w: unknown repeat interval %q", domain.ErrInvalidArgument, p.Interval)
	}
	return nil
}

// IsTaskActiveOn reports whether a task with pattern p is scheduled on day.
// A nil pattern is treated as every day.
func IsTaskActiveOn(p *domain.RepeatPattern, day time.Time) (bool, error) {
	if p == nil {
		return true, nil
	}
	if err := ValidateRepeatPattern(*p); err != nil {
		return false, err
	}
	if p.Interval == domain.RepeatDaily {
		return true, nil
	}
	return containsWeekday(p.Days, day.Weekday()), nil
}

// NextActiveDate returns the first scheduled day after from, searching one week ahead.
// When nothing matches the result falls back to the following day.
func NextActiveDate(p *domain.RepeatPattern, from time.Time) (time.Time, error) {
	tomorrow := Day(from).AddDate(0, 0, 1)
	if p == nil {
		return tomorrow, nil
	}
	if err := ValidateRepeatPattern(*p); err != nil {
		return time.Time{}, err
	}
	if p.Interval == domain.RepeatDaily {
		return tomorrow, nil
	}

	next := tomorrow
	for i := 0; i < maxLookahead; i++ {
		if containsWeekday(p.Days, next.Weekday()) {
			return next, nil
		}
		next = next.AddDate(0, 0, 1)
	}
	return tomorrow, nil
}

func containsWeekday(days []int, wd time.Weekday) bool {
	for _, d := range days {
		if d == int(wd) {
			return true
		}
	}
	return false
}
