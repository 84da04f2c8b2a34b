package streak

import (
	"time"

	"github.com/osse101/habitquest/internal/domain"
)

// CompletionOutcome is the streak state after a completion on a given day
type CompletionOutcome struct {
	Streak    domain.Streak
	Changed   bool
	BonusXP   int
	Milestone int
}

// EvaluateCompletion applies a completion made on today's calendar day.
//
//	same day as the last completion -> unchanged
//	the day after                   -> current + 1
//	first completion or a gap       -> current = 1
//
// Every multiple of MilestoneInterval awards MilestoneBonusXP.
// A completion dated before the last recorded one leaves the streak untouched.
func EvaluateCompletion(s domain.Streak, today time.Time) CompletionOutcome {
	day := Day(today)

	next := s
	if s.LastCompletedDate != nil {
		gap := DaysBetween(*s.LastCompletedDate, day)
		switch {
		case gap <= 0:
			return CompletionOutcome{Streak: s}
		case gap == 1:
			next.CurrentStreak = s.CurrentStreak + 1
		default:
			next.CurrentStreak = 1
		}
	} else {
		next.CurrentStreak = 1
	}

	if next.CurrentStreak > next.BestStreak {
		next.BestStreak = next.CurrentStreak
	}
	next.LastCompletedDate = &day

	out := CompletionOutcome{Streak: next, Changed: true}
	if IsMilestone(next.CurrentStreak) {
		out.BonusXP = MilestoneBonusXP
		out.Milestone = next.CurrentStreak
	}
	return out
}

// EvaluateAbsence breaks a streak whose last completion is more than one day before today.
// The best streak and last completion date are kept.
func EvaluateAbsence(s domain.Streak, today time.Time) (domain.Streak, bool) {
	if s.LastCompletedDate == nil || s.CurrentStreak == 0 {
		return s, false
	}
	if DaysBetween(*s.LastCompletedDate, today) <= 1 {
		return s, false
	}

	s.CurrentStreak = 0
	return s, true
}

// IsMilestone reports whether a streak length earns the milestone bonus
func IsMilestone(current int) bool {
	return current > 0 && current%MilestoneInterval == 0
}
