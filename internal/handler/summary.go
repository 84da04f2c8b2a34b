package handler

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/habitquest/internal/domain"
)

// messageLanguage controls digit grouping in user-facing summaries
var messageLanguage = language.English

func newPrinter() *message.Printer {
	return message.NewPrinter(messageLanguage)
}

func formatInsufficientGold(required, available int) string {
	return newPrinter().Sprintf("Not enough gold: %d needed, %d available", required, available)
}

func completionSummary(r *domain.CompletionResult) string {
	p := newPrinter()
	parts := []string{p.Sprintf("+%d XP, +%d gold", r.XPGained, r.GoldGained)}
	if r.Milestone > 0 {
		parts = append(parts, p.Sprintf("%d-day streak! +%d bonus XP", r.Milestone, r.BonusXP))
	}
	if r.LeveledUp {
		parts = append(parts, p.Sprintf("Level up! Now level %d", r.NewLevel))
	}
	return strings.Join(parts, ". ")
}

func habitSummary(r *domain.HabitResult) string {
	p := newPrinter()
	if r.Log.IsPositive {
		parts := []string{p.Sprintf("+%d XP, +%d gold", r.XPGained, r.GoldGained)}
		if r.LeveledUp {
			parts = append(parts, p.Sprintf("Level up! Now level %d", r.Character.Level))
		}
		return strings.Join(parts, ". ")
	}
	if r.Defeated {
		return p.Sprintf("-%d HP. You were defeated and lost %d gold", r.HPLost, r.GoldLost)
	}
	return p.Sprintf("-%d HP, %d HP left", r.HPLost, r.Character.HP)
}

func streakSummary(r *domain.StreakUpdateResult) string {
	p := newPrinter()
	if r.Milestone > 0 {
		return p.Sprintf("%d-day streak! +%d bonus XP", r.Milestone, r.BonusXP)
	}
	if r.Streak.CurrentStreak == 1 {
		return p.Sprintf("Streak: 1 day (best %d)", r.Streak.BestStreak)
	}
	return p.Sprintf("Streak: %d days (best %d)", r.Streak.CurrentStreak, r.Streak.BestStreak)
}

func purchaseSummary(r *domain.PurchaseResult) string {
	return newPrinter().Sprintf("Purchased %s for %d gold. %d gold left", r.Reward.Name, r.GoldSpent, r.RemainingGold)
}

func xpHistorySummary(points []domain.XPHistoryPoint) string {
	total := 0
	for _, p := range points {
		total += p.XP
	}
	return newPrinter().Sprintf("%d XP earned", total)
}

func taskStatsSummary(s *domain.TaskStats) string {
	return newPrinter().Sprintf("%d of %d tasks completed (%.1f%%)", s.TotalCompleted, s.TotalTasks, s.CompletionRate)
}
