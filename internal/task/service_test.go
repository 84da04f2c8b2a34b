package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/event"
)

const testUser = "11111111-1111-1111-1111-111111111111"

// monday is 2025-03-10, mid-morning UTC
var monday = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func f64(v float64) *float64 { return &v }

func setup(t *testing.T) (*fakeRepository, *recordingPublisher, Service) {
	t.Helper()
	repo := newFakeRepository()
	repo.addCharacter(domain.Character{ID: "c1", UserID: testUser, Level: 1, XP: 0, HP: 100, Gold: 0})
	pub := &recordingPublisher{}
	return repo, pub, NewService(repo, pub, time.UTC)
}

func TestCompleteTask_Todo(t *testing.T) {
	repo, pub, svc := setup(t)
	todo := repo.addTask(domain.Task{UserID: testUser, Title: "write report", Type: domain.TaskTypeTodo, Difficulty: domain.DifficultyMedium})

	result, err := svc.CompleteTask(context.Background(), testUser, todo.ID, monday)
	require.NoError(t, err)

	assert.Equal(t, 20, result.XPGained)
	assert.Equal(t, 10, result.GoldGained)
	assert.False(t, result.LeveledUp)
	assert.Equal(t, 1, result.NewLevel)
	assert.Nil(t, result.Streak)
	assert.True(t, result.Task.IsCompleted)

	char := repo.character(testUser)
	assert.Equal(t, 20, char.XP)
	assert.Equal(t, 10, char.Gold)
	assert.True(t, repo.task(todo.ID).IsCompleted)

	txns := repo.transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, domain.TransactionXPGain, txns[0].Type)
	assert.Equal(t, 20, txns[0].Amount)
	assert.Equal(t, domain.SourceTaskCompletion, txns[0].Source)
	assert.Equal(t, todo.ID, *txns[0].ReferenceID)
	assert.Equal(t, domain.TransactionGoldGain, txns[1].Type)
	assert.Equal(t, 10, txns[1].Amount)

	assert.Equal(t, []event.Type{event.TaskCompleted}, pub.types())
}

func TestCompleteTask_AppliesEquipmentBonuses(t *testing.T) {
	repo, _, svc := setup(t)
	repo.state.equipped[testUser] = []domain.EquippedItem{
		{Name: "Quill", StatBonuses: &domain.StatBonuses{XPMultiplier: f64(1.5)}},
		{Name: "Purse", StatBonuses: &domain.StatBonuses{GoldMultiplier: f64(2.0)}},
	}
	todo := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeTodo, Difficulty: domain.DifficultyHard})

	result, err := svc.CompleteTask(context.Background(), testUser, todo.ID, monday)
	require.NoError(t, err)

	// floor(40 * 1.5) = 60 xp; floor(floor(60 / 2) * 2.0) = 60 gold
	assert.Equal(t, 60, result.XPGained)
	assert.Equal(t, 60, result.GoldGained)
}

func TestCompleteTask_LevelUp(t *testing.T) {
	repo, pub, svc := setup(t)
	repo.addCharacter(domain.Character{UserID: testUser, Level: 1, XP: 95, HP: 100})
	todo := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeTodo, Difficulty: domain.DifficultyEasy})

	result, err := svc.CompleteTask(context.Background(), testUser, todo.ID, monday)
	require.NoError(t, err)

	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, 1, result.LevelsGained)

	char := repo.character(testUser)
	assert.Equal(t, 2, char.Level)
	assert.Equal(t, 5, char.XP)

	assert.Equal(t, []event.Type{event.TaskCompleted, event.LevelUp}, pub.types())
}

func TestCompleteTask_DailyStreakMilestone(t *testing.T) {
	repo, pub, svc := setup(t)
	daily := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyMedium})
	repo.addStreak(domain.Streak{TaskID: daily.ID, UserID: testUser, CurrentStreak: 6, BestStreak: 6, LastCompletedDate: day(2025, 3, 9)})

	result, err := svc.CompleteTask(context.Background(), testUser, daily.ID, monday)
	require.NoError(t, err)

	require.NotNil(t, result.Streak)
	assert.Equal(t, 7, result.Streak.CurrentStreak)
	assert.Equal(t, 7, result.Milestone)
	assert.Equal(t, 50, result.BonusXP)
	assert.Equal(t, 20, result.XPGained)

	char := repo.character(testUser)
	assert.Equal(t, 70, char.XP, "task xp and milestone bonus both land on the character")

	stored, ok := repo.streak(daily.ID)
	require.True(t, ok)
	assert.Equal(t, 7, stored.BestStreak)
	assert.Equal(t, *day(2025, 3, 10), *stored.LastCompletedDate)

	txns := repo.transactions()
	require.Len(t, txns, 3)
	assert.Equal(t, domain.SourceStreakMilestone, txns[2].Source)
	assert.Equal(t, 50, txns[2].Amount)

	assert.Equal(t, []event.Type{event.TaskCompleted, event.StreakMilestone}, pub.types())
}

func TestCompleteTask_DailyCreatesStreak(t *testing.T) {
	repo, _, svc := setup(t)
	daily := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyTrivial})

	result, err := svc.CompleteTask(context.Background(), testUser, daily.ID, monday)
	require.NoError(t, err)

	require.NotNil(t, result.Streak)
	assert.Equal(t, 1, result.Streak.CurrentStreak)
	assert.Equal(t, 1, result.Streak.BestStreak)
	assert.Zero(t, result.BonusXP)

	stored, ok := repo.streak(daily.ID)
	require.True(t, ok)
	assert.NotEmpty(t, stored.ID)
}

func TestCompleteTask_UsesServiceTimezone(t *testing.T) {
	repo := newFakeRepository()
	repo.addCharacter(domain.Character{UserID: testUser, Level: 1, HP: 100})
	daily := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy})
	repo.addStreak(domain.Streak{TaskID: daily.ID, UserID: testUser, CurrentStreak: 2, BestStreak: 2, LastCompletedDate: day(2025, 3, 9)})

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	svc := NewService(repo, nil, ny)

	// 03:00 UTC on the 11th is still the evening of the 10th in New York
	result, err := svc.CompleteTask(context.Background(), testUser, daily.ID, time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Streak.CurrentStreak)
	assert.Equal(t, *day(2025, 3, 10), *result.Streak.LastCompletedDate)
}

func TestCompleteTask_Rejections(t *testing.T) {
	completedAt := monday.Add(-time.Hour)

	tests := []struct {
		name    string
		task    domain.Task
		userID  string
		wantErr []error
	}{
		{
			name:    "habit",
			task:    domain.Task{UserID: testUser, Type: domain.TaskTypeHabit, Difficulty: domain.DifficultyEasy},
			wantErr: []error{domain.ErrInvalidArgument, domain.ErrNotCompletable},
		},
		{
			name:    "already completed",
			task:    domain.Task{UserID: testUser, Type: domain.TaskTypeTodo, Difficulty: domain.DifficultyEasy, IsCompleted: true, CompletedAt: &completedAt},
			wantErr: []error{domain.ErrTaskAlreadyCompleted},
		},
		{
			name:    "another user's task",
			task:    domain.Task{UserID: "someone-else", Type: domain.TaskTypeTodo, Difficulty: domain.DifficultyEasy},
			wantErr: []error{domain.ErrTaskNotFound},
		},
		{
			name:    "corrupt difficulty",
			task:    domain.Task{UserID: testUser, Type: domain.TaskTypeTodo, Difficulty: "legendary"},
			wantErr: []error{domain.ErrInvalidArgument},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, pub, svc := setup(t)
			task := repo.addTask(tt.task)

			_, err := svc.CompleteTask(context.Background(), testUser, task.ID, monday)

			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
			assert.Equal(t, 0, repo.character(testUser).XP)
			assert.Empty(t, repo.transactions())
			assert.Empty(t, pub.types())
		})
	}
}

func TestCompleteTask_MissingCharacter(t *testing.T) {
	repo := newFakeRepository()
	todo := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeTodo, Difficulty: domain.DifficultyEasy})
	svc := NewService(repo, nil, nil)

	_, err := svc.CompleteTask(context.Background(), testUser, todo.ID, monday)
	assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
}

func TestCompleteTask_CommitFailureRollsBack(t *testing.T) {
	repo, pub, svc := setup(t)
	repo.failCommit = true
	todo := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeTodo, Difficulty: domain.DifficultyHard})

	_, err := svc.CompleteTask(context.Background(), testUser, todo.ID, monday)
	require.Error(t, err)

	repo.failCommit = false
	assert.Equal(t, 0, repo.character(testUser).XP)
	assert.False(t, repo.task(todo.ID).IsCompleted)
	assert.Empty(t, repo.transactions())
	assert.Empty(t, pub.types())
}

func TestLogHabit_Positive(t *testing.T) {
	repo, pub, svc := setup(t)
	habit := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeHabit, Difficulty: domain.DifficultyHard})

	result, err := svc.LogHabit(context.Background(), testUser, habit.ID, true, monday)
	require.NoError(t, err)

	assert.Equal(t, 40, result.XPGained)
	assert.Equal(t, 20, result.GoldGained)
	assert.Zero(t, result.HPLost)
	assert.Equal(t, 40, result.Character.XP)
	assert.Equal(t, 20, result.Character.Gold)

	logs := repo.habitLogs()
	require.Len(t, logs, 1)
	assert.True(t, logs[0].IsPositive)
	assert.Equal(t, habit.ID, logs[0].TaskID)

	txns := repo.transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, domain.SourceHabitLog, txns[0].Source)
	assert.Equal(t, []event.Type{event.HabitLogged}, pub.types())
}

func TestLogHabit_NegativeCostsHP(t *testing.T) {
	repo, _, svc := setup(t)
	habit := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeHabit, Difficulty: domain.DifficultyEasy})

	result, err := svc.LogHabit(context.Background(), testUser, habit.ID, false, monday)
	require.NoError(t, err)

	assert.Equal(t, 5, result.HPLost)
	assert.Equal(t, 95, result.Character.HP)
	assert.False(t, result.Defeated)
	assert.Zero(t, result.XPGained)
	assert.Len(t, repo.habitLogs(), 1, "negative logs are recorded too")
	assert.Empty(t, repo.transactions())
}

func TestLogHabit_Defeat(t *testing.T) {
	tests := []struct {
		name       string
		hp         int
		gold       int
		wantHPLost int
		wantLost   int
	}{
		{name: "exactly five hp", hp: 5, gold: 105, wantHPLost: 5, wantLost: 10},
		{name: "less than five hp", hp: 3, gold: 50, wantHPLost: 3, wantLost: 5},
		{name: "broke", hp: 5, gold: 0, wantHPLost: 5, wantLost: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, pub, svc := setup(t)
			repo.addCharacter(domain.Character{UserID: testUser, Level: 3, XP: 10, HP: tt.hp, Gold: tt.gold})
			habit := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeHabit, Difficulty: domain.DifficultyEasy})

			result, err := svc.LogHabit(context.Background(), testUser, habit.ID, false, monday)
			require.NoError(t, err)

			assert.True(t, result.Defeated)
			assert.Equal(t, tt.wantHPLost, result.HPLost)
			assert.Equal(t, tt.wantLost, result.GoldLost)
			assert.Equal(t, domain.MaxHP, result.Character.HP)
			assert.Equal(t, tt.gold-tt.wantLost, result.Character.Gold)
			assert.Equal(t, 3, result.Character.Level, "defeat never costs levels")

			if tt.wantLost > 0 {
				txns := repo.transactions()
				require.Len(t, txns, 1)
				assert.Equal(t, domain.TransactionGoldLoss, txns[0].Type)
				assert.Equal(t, domain.SourceDefeat, txns[0].Source)
			}
			assert.Equal(t, []event.Type{event.HabitLogged, event.CharacterDefeated}, pub.types())
		})
	}
}

func TestLogHabit_RejectsNonHabit(t *testing.T) {
	repo, _, svc := setup(t)
	todo := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeTodo, Difficulty: domain.DifficultyEasy})

	_, err := svc.LogHabit(context.Background(), testUser, todo.ID, true, monday)

	assert.ErrorIs(t, err, domain.ErrNotAHabit)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Empty(t, repo.habitLogs())
}

func TestUpdateStreak_Completion(t *testing.T) {
	repo, _, svc := setup(t)
	daily := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy})

	result, err := svc.UpdateStreak(context.Background(), testUser, daily.ID, true, monday)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak.CurrentStreak)

	// same day again is a no-op
	again, err := svc.UpdateStreak(context.Background(), testUser, daily.ID, true, monday.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, again.Streak.CurrentStreak)
	assert.False(t, repo.task(daily.ID).IsCompleted, "streak updates leave the task alone")
}

func TestUpdateStreak_MilestoneLevelsUp(t *testing.T) {
	repo, pub, svc := setup(t)
	repo.addCharacter(domain.Character{UserID: testUser, Level: 1, XP: 60, HP: 100})
	daily := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy})
	repo.addStreak(domain.Streak{TaskID: daily.ID, UserID: testUser, CurrentStreak: 13, BestStreak: 20, LastCompletedDate: day(2025, 3, 9)})

	result, err := svc.UpdateStreak(context.Background(), testUser, daily.ID, true, monday)
	require.NoError(t, err)

	assert.Equal(t, 14, result.Streak.CurrentStreak)
	assert.Equal(t, 20, result.Streak.BestStreak)
	assert.Equal(t, 14, result.Milestone)
	assert.Equal(t, 50, result.BonusXP)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.NewLevel)

	char := repo.character(testUser)
	assert.Equal(t, 2, char.Level)
	assert.Equal(t, 10, char.XP)
	assert.Equal(t, []event.Type{event.StreakMilestone, event.LevelUp}, pub.types())
}

func TestUpdateStreak_Absence(t *testing.T) {
	repo, _, svc := setup(t)
	daily := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy})
	repo.addStreak(domain.Streak{TaskID: daily.ID, UserID: testUser, CurrentStreak: 4, BestStreak: 9, LastCompletedDate: day(2025, 3, 7)})

	result, err := svc.UpdateStreak(context.Background(), testUser, daily.ID, false, monday)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Streak.CurrentStreak)
	assert.Equal(t, 9, result.Streak.BestStreak)

	stored, _ := repo.streak(daily.ID)
	assert.Equal(t, 0, stored.CurrentStreak)
	assert.Equal(t, *day(2025, 3, 7), *stored.LastCompletedDate)
}

func TestUpdateStreak_AbsenceWithoutStreakStoresNothing(t *testing.T) {
	repo, _, svc := setup(t)
	daily := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy})

	result, err := svc.UpdateStreak(context.Background(), testUser, daily.ID, false, monday)
	require.NoError(t, err)

	assert.Zero(t, result.Streak.CurrentStreak)
	_, ok := repo.streak(daily.ID)
	assert.False(t, ok)
}

func TestUpdateStreak_RejectsNonDaily(t *testing.T) {
	repo, _, svc := setup(t)
	todo := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeTodo, Difficulty: domain.DifficultyEasy})

	_, err := svc.UpdateStreak(context.Background(), testUser, todo.ID, true, monday)
	assert.ErrorIs(t, err, domain.ErrNotADaily)
}

func TestListStreaks(t *testing.T) {
	repo, _, svc := setup(t)
	repo.addStreak(domain.Streak{TaskID: "a", UserID: testUser, CurrentStreak: 2})
	repo.addStreak(domain.Streak{TaskID: "b", UserID: testUser, CurrentStreak: 9})
	repo.addStreak(domain.Streak{TaskID: "c", UserID: "other", CurrentStreak: 30})

	streaks, err := svc.ListStreaks(context.Background(), testUser)
	require.NoError(t, err)

	require.Len(t, streaks, 2)
	assert.Equal(t, 9, streaks[0].CurrentStreak)
	assert.Equal(t, 2, streaks[1].CurrentStreak)
}

func TestListDueToday(t *testing.T) {
	repo, _, svc := setup(t)
	completedAt := monday.Add(-time.Hour)

	repo.addTask(domain.Task{Title: "a mondays", UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy,
		RepeatPattern: &domain.RepeatPattern{Interval: domain.RepeatWeekly, Days: []int{1}}})
	repo.addTask(domain.Task{Title: "b tuesdays", UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy,
		RepeatPattern: &domain.RepeatPattern{Interval: domain.RepeatWeekly, Days: []int{2}}})
	repo.addTask(domain.Task{Title: "c every day", UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy})
	repo.addTask(domain.Task{Title: "d broken", UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy,
		RepeatPattern: &domain.RepeatPattern{Interval: domain.RepeatWeekly}})
	repo.addTask(domain.Task{Title: "e overdue", UserID: testUser, Type: domain.TaskTypeTodo, Difficulty: domain.DifficultyEasy, DueDate: day(2025, 3, 8)})
	repo.addTask(domain.Task{Title: "f someday", UserID: testUser, Type: domain.TaskTypeTodo, Difficulty: domain.DifficultyEasy})
	repo.addTask(domain.Task{Title: "g done", UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy, IsCompleted: true, CompletedAt: &completedAt})
	repo.addTask(domain.Task{Title: "h habit", UserID: testUser, Type: domain.TaskTypeHabit, Difficulty: domain.DifficultyEasy})

	due, err := svc.ListDueToday(context.Background(), testUser, monday)
	require.NoError(t, err)

	require.Len(t, due, 4)

	assert.Equal(t, "a mondays", due[0].Task.Title)
	require.NotNil(t, due[0].NextActiveDate)
	assert.Equal(t, *day(2025, 3, 17), *due[0].NextActiveDate)

	assert.Equal(t, "c every day", due[1].Task.Title)
	assert.Equal(t, *day(2025, 3, 11), *due[1].NextActiveDate)

	assert.Equal(t, "e overdue", due[2].Task.Title)
	assert.True(t, due[2].Overdue)
	require.NotNil(t, due[2].DaysUntilDue)
	assert.Equal(t, -2, *due[2].DaysUntilDue)

	assert.Equal(t, "f someday", due[3].Task.Title)
	assert.False(t, due[3].Overdue)
	assert.Nil(t, due[3].DaysUntilDue)
}

func TestRunDailyAudit(t *testing.T) {
	repo, pub, svc := setup(t)
	other := "22222222-2222-2222-2222-222222222222"

	repo.addStreak(domain.Streak{ID: "kept", TaskID: "t-kept", UserID: testUser, CurrentStreak: 3, BestStreak: 3, LastCompletedDate: day(2025, 3, 9)})
	repo.addStreak(domain.Streak{ID: "lapsed", TaskID: "t-lapsed", UserID: testUser, CurrentStreak: 5, BestStreak: 5, LastCompletedDate: day(2025, 3, 7)})
	repo.addStreak(domain.Streak{ID: "raced", TaskID: "t-raced", UserID: other, CurrentStreak: 2, BestStreak: 4, LastCompletedDate: day(2025, 3, 6)})
	repo.addStreak(domain.Streak{ID: "broken", TaskID: "t-broken", UserID: other, CurrentStreak: 2, BestStreak: 2, LastCompletedDate: day(2025, 3, 1)})
	repo.resetRaceFor["raced"] = true
	repo.failResetFor["broken"] = true

	yesterday := time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)
	earlyToday := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)

	reopen := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy, IsCompleted: true, CompletedAt: &yesterday})
	doneToday := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy, IsCompleted: true, CompletedAt: &earlyToday})
	tuesdays := repo.addTask(domain.Task{UserID: testUser, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy, IsCompleted: true, CompletedAt: &yesterday,
		RepeatPattern: &domain.RepeatPattern{Interval: domain.RepeatWeekly, Days: []int{2}}})
	invalid := repo.addTask(domain.Task{UserID: other, Type: domain.TaskTypeDaily, Difficulty: domain.DifficultyEasy, IsCompleted: true, CompletedAt: &yesterday,
		RepeatPattern: &domain.RepeatPattern{Interval: "fortnightly", Days: []int{1}}})

	report, err := svc.RunDailyAudit(context.Background(), monday)
	require.NoError(t, err)

	assert.Equal(t, *day(2025, 3, 10), report.Day)
	assert.Equal(t, 1, report.StreaksReset)
	assert.Equal(t, 1, report.DailiesReopened)
	assert.Equal(t, 2, report.Skipped)

	lapsed, _ := repo.streak("t-lapsed")
	assert.Equal(t, 0, lapsed.CurrentStreak)
	assert.Equal(t, 5, lapsed.BestStreak)
	kept, _ := repo.streak("t-kept")
	assert.Equal(t, 3, kept.CurrentStreak)

	assert.False(t, repo.task(reopen.ID).IsCompleted)
	assert.True(t, repo.task(doneToday.ID).IsCompleted)
	assert.True(t, repo.task(tuesdays.ID).IsCompleted)
	assert.True(t, repo.task(invalid.ID).IsCompleted)

	assert.Equal(t, []event.Type{event.DailyAuditComplete}, pub.types())
}

func TestRunDailyAudit_IsIdempotent(t *testing.T) {
	repo, _, svc := setup(t)
	repo.addStreak(domain.Streak{ID: "lapsed", TaskID: "t-lapsed", UserID: testUser, CurrentStreak: 5, BestStreak: 5, LastCompletedDate: day(2025, 3, 7)})

	first, err := svc.RunDailyAudit(context.Background(), monday)
	require.NoError(t, err)
	second, err := svc.RunDailyAudit(context.Background(), monday.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, first.StreaksReset)
	assert.Equal(t, 0, second.StreaksReset)
}

func TestShutdown_WithoutBufferedPublisher(t *testing.T) {
	_, _, svc := setup(t)
	assert.NoError(t, svc.Shutdown(context.Background()))
}
