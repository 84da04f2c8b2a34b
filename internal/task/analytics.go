package task

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/streak"
)

// GetXPHistory sums the user's XP gains per day, week or month between the calendar days
// of from and to (both inclusive) in the game timezone. Periods without XP are omitted.
func (s *service) GetXPHistory(ctx context.Context, userID string, from, to time.Time, interval domain.Interval) ([]domain.XPHistoryPoint, error) {
	switch interval {
	case domain.IntervalDay, domain.IntervalWeek, domain.IntervalMonth:
	default:
		return nil, fmt.Errorf("%w: unknown interval %q", domain.ErrInvalidArgument, interval)
	}

	fromDay := streak.Day(from.In(s.loc))
	toDay := streak.Day(to.In(s.loc))
	if fromDay.After(toDay) {
		return nil, fmt.Errorf("%w: range starts after it ends", domain.ErrInvalidArgument)
	}
	if streak.DaysBetween(fromDay, toDay) >= MaxHistoryDays {
		return nil, fmt.Errorf("%w: range longer than %d days", domain.ErrInvalidArgument, MaxHistoryDays)
	}

	start := time.Date(fromDay.Year(), fromDay.Month(), fromDay.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(toDay.Year(), toDay.Month(), toDay.Day()+1, 0, 0, 0, 0, s.loc)

	gains, err := s.repo.ListXPGains(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list xp gains: %w", err)
	}

	totals := make(map[string]int)
	for _, g := range gains {
		totals[periodKey(g.CreatedAt.In(s.loc), interval)] += g.Amount
	}

	points := make([]domain.XPHistoryPoint, 0, len(totals))
	for period, xp := range totals {
		points = append(points, domain.XPHistoryPoint{Period: period, XP: xp})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })
	return points, nil
}

// periodKey labels the period containing local. Weeks are keyed by their Sunday.
func periodKey(local time.Time, interval domain.Interval) string {
	y, m, d := local.Date()
	switch interval {
	case domain.IntervalWeek:
		return time.Date(y, m, d-int(local.Weekday()), 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
	case domain.IntervalMonth:
		return local.Format("2006-01")
	default:
		return local.Format(time.DateOnly)
	}
}

// GetTaskStats reports how many of the user's tasks are completed, broken down by type and difficulty
func (s *service) GetTaskStats(ctx context.Context, userID string) (*domain.TaskStats, error) {
	counts, err := s.repo.CountTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	stats := &domain.TaskStats{}
	for _, c := range counts {
		stats.TotalTasks += c.Count
		if !c.IsCompleted {
			continue
		}
		stats.TotalCompleted += c.Count

		switch c.Type {
		case domain.TaskTypeHabit:
			stats.ByType.Habit += c.Count
		case domain.TaskTypeDaily:
			stats.ByType.Daily += c.Count
		case domain.TaskTypeTodo:
			stats.ByType.Todo += c.Count
		}

		switch c.Difficulty {
		case domain.DifficultyTrivial:
			stats.ByDifficulty.Trivial += c.Count
		case domain.DifficultyEasy:
			stats.ByDifficulty.Easy += c.Count
		case domain.DifficultyMedium:
			stats.ByDifficulty.Medium += c.Count
		case domain.DifficultyHard:
			stats.ByDifficulty.Hard += c.Count
		}
	}

	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(stats.TotalCompleted) / float64(stats.TotalTasks) * 100
	}
	return stats, nil
}

// GetStreakData returns the user's running streaks, the streak with the best record and the
// number of distinct game-timezone days on which the user earned XP
func (s *service) GetStreakData(ctx context.Context, userID string) (*domain.StreakData, error) {
	streaks, err := s.repo.ListStreaks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list streaks: %w", err)
	}

	data := &domain.StreakData{CurrentStreaks: []domain.Streak{}}
	for i := range streaks {
		st := streaks[i]
		if st.CurrentStreak > 0 {
			data.CurrentStreaks = append(data.CurrentStreaks, st)
		}
		if st.BestStreak > 0 && (data.LongestStreak == nil || st.BestStreak > data.LongestStreak.BestStreak) {
			data.LongestStreak = &st
		}
	}

	times, err := s.repo.ListXPGainTimes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list xp gain times: %w", err)
	}
	days := make(map[time.Time]struct{}, len(times))
	for _, t := range times {
		days[streak.Day(t.In(s.loc))] = struct{}{}
	}
	data.TotalActiveDays = len(days)

	return data, nil
}
