package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/event"
	"github.com/osse101/habitquest/internal/repository"
)

// fakeState is the data held by fakeRepository; it is copied on BeginTx so rollbacks can restore it
type fakeState struct {
	characters   map[string]domain.Character
	equipped     map[string][]domain.EquippedItem
	tasks        map[string]domain.Task
	streaks      map[string]domain.Streak // keyed by task id
	habitLogs    []domain.HabitLog
	transactions []domain.Transaction
}

func (s fakeState) clone() fakeState {
	c := fakeState{
		characters:   make(map[string]domain.Character, len(s.characters)),
		equipped:     make(map[string][]domain.EquippedItem, len(s.equipped)),
		tasks:        make(map[string]domain.Task, len(s.tasks)),
		streaks:      make(map[string]domain.Streak, len(s.streaks)),
		habitLogs:    append([]domain.HabitLog{}, s.habitLogs...),
		transactions: append([]domain.Transaction{}, s.transactions...),
	}
	for k, v := range s.characters {
		c.characters[k] = v
	}
	for k, v := range s.equipped {
		c.equipped[k] = v
	}
	for k, v := range s.tasks {
		c.tasks[k] = v
	}
	for k, v := range s.streaks {
		c.streaks[k] = v
	}
	return c
}

// fakeRepository is an in-memory repository.Task. A transaction holds the repository
// lock until it ends, standing in for the row locks of the real store.
type fakeRepository struct {
	mu    sync.Mutex
	state fakeState

	failCommit    bool
	failResetFor  map[string]bool
	resetRaceFor  map[string]bool
	reopenRaceFor map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		state: fakeState{
			characters: map[string]domain.Character{},
			equipped:   map[string][]domain.EquippedItem{},
			tasks:      map[string]domain.Task{},
			streaks:    map[string]domain.Streak{},
		},
		failResetFor:  map[string]bool{},
		resetRaceFor:  map[string]bool{},
		reopenRaceFor: map[string]bool{},
	}
}

func (r *fakeRepository) addCharacter(c domain.Character) {
	r.state.characters[c.UserID] = c
}

func (r *fakeRepository) addTask(t domain.Task) domain.Task {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	r.state.tasks[t.ID] = t
	return t
}

func (r *fakeRepository) addStreak(s domain.Streak) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	r.state.streaks[s.TaskID] = s
}

func (r *fakeRepository) character(userID string) domain.Character {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.characters[userID]
}

func (r *fakeRepository) task(taskID string) domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.tasks[taskID]
}

func (r *fakeRepository) streak(taskID string) (domain.Streak, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.state.streaks[taskID]
	return s, ok
}

func (r *fakeRepository) transactions() []domain.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Transaction{}, r.state.transactions...)
}

func (r *fakeRepository) addTransaction(txn domain.Transaction) {
	r.state.transactions = append(r.state.transactions, txn)
}

func (r *fakeRepository) taskCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.state.tasks)
}

func (r *fakeRepository) habitLogs() []domain.HabitLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.HabitLog{}, r.state.habitLogs...)
}

func (r *fakeRepository) BeginTx(ctx context.Context) (repository.TaskTx, error) {
	r.mu.Lock()
	return &fakeTx{repo: r, snapshot: r.state.clone()}, nil
}

func (r *fakeRepository) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []domain.Task
	for _, t := range r.state.tasks {
		if t.UserID != userID {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if filter.IsCompleted != nil && t.IsCompleted != *filter.IsCompleted {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	if filter.Offset >= total {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

func (r *fakeRepository) DeleteTask(ctx context.Context, userID, taskID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.state.tasks[taskID]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(r.state.tasks, taskID)
	delete(r.state.streaks, taskID)
	kept := r.state.habitLogs[:0]
	for _, l := range r.state.habitLogs {
		if l.TaskID != taskID {
			kept = append(kept, l)
		}
	}
	r.state.habitLogs = kept
	return true, nil
}

func (r *fakeRepository) CountTasks(ctx context.Context, userID string) ([]domain.TaskCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	type key struct {
		taskType   domain.TaskType
		difficulty domain.Difficulty
		completed  bool
	}
	counts := map[key]int{}
	for _, t := range r.state.tasks {
		if t.UserID == userID {
			counts[key{t.Type, t.Difficulty, t.IsCompleted}]++
		}
	}

	out := make([]domain.TaskCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, domain.TaskCount{Type: k.taskType, Difficulty: k.difficulty, IsCompleted: k.completed, Count: n})
	}
	return out, nil
}

func (r *fakeRepository) ListXPGains(ctx context.Context, userID string, from, to time.Time) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Transaction
	for _, t := range r.state.transactions {
		if t.UserID == userID && t.Type == domain.TransactionXPGain && !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepository) ListXPGainTimes(ctx context.Context, userID string) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []time.Time
	for _, t := range r.state.transactions {
		if t.UserID == userID && t.Type == domain.TransactionXPGain {
			out = append(out, t.CreatedAt)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListOpenTasks(ctx context.Context, userID string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Task
	for _, t := range r.state.tasks {
		if t.UserID == userID && t.Type != domain.TaskTypeHabit && !t.IsCompleted {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *fakeRepository) ListStreaks(ctx context.Context, userID string) ([]domain.Streak, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Streak
	for _, s := range r.state.streaks {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrentStreak > out[j].CurrentStreak })
	return out, nil
}

func (r *fakeRepository) ListActiveStreaks(ctx context.Context) ([]domain.Streak, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Streak
	for _, s := range r.state.streaks {
		if s.CurrentStreak > 0 {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRepository) ResetStreak(ctx context.Context, streakID string, lastCompleted time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failResetFor[streakID] {
		return false, errors.New("connection reset")
	}
	for taskID, s := range r.state.streaks {
		if s.ID != streakID {
			continue
		}
		// a completion landed between the read and the write
		if r.resetRaceFor[streakID] {
			return false, nil
		}
		if s.LastCompletedDate == nil || !s.LastCompletedDate.Equal(lastCompleted) || s.CurrentStreak == 0 {
			return false, nil
		}
		s.CurrentStreak = 0
		r.state.streaks[taskID] = s
		return true, nil
	}
	return false, nil
}

func (r *fakeRepository) ListCompletedDailies(ctx context.Context) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Task
	for _, t := range r.state.tasks {
		if t.Type == domain.TaskTypeDaily && t.IsCompleted {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepository) ReopenTask(ctx context.Context, taskID string, completedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.state.tasks[taskID]
	if !ok || !t.IsCompleted || t.CompletedAt == nil || !t.CompletedAt.Equal(completedAt) || r.reopenRaceFor[taskID] {
		return false, nil
	}
	t.IsCompleted = false
	r.state.tasks[taskID] = t
	return true, nil
}

// fakeTx mutates the repository state directly while holding its lock
type fakeTx struct {
	repo     *fakeRepository
	snapshot fakeState
	done     bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	if t.repo.failCommit {
		return errors.New("commit failed")
	}
	t.done = true
	t.repo.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.repo.state = t.snapshot
	t.repo.mu.Unlock()
	return nil
}

func (t *fakeTx) GetCharacterForUpdate(ctx context.Context, userID string) (*domain.Character, error) {
	c, ok := t.repo.state.characters[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", domain.ErrCharacterNotFound, userID)
	}
	return &c, nil
}

func (t *fakeTx) UpdateCharacter(ctx context.Context, c *domain.Character) error {
	t.repo.state.characters[c.UserID] = *c
	return nil
}

func (t *fakeTx) GetEquippedItems(ctx context.Context, userID string) ([]domain.EquippedItem, error) {
	return t.repo.state.equipped[userID], nil
}

func (t *fakeTx) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	t.repo.state.transactions = append(t.repo.state.transactions, txns...)
	return nil
}

func (t *fakeTx) InsertTask(ctx context.Context, task *domain.Task) error {
	task.ID = uuid.NewString()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	t.repo.state.tasks[task.ID] = *task
	return nil
}

func (t *fakeTx) UpdateTask(ctx context.Context, task *domain.Task) error {
	if _, ok := t.repo.state.tasks[task.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, task.ID)
	}
	task.UpdatedAt = time.Now()
	t.repo.state.tasks[task.ID] = *task
	return nil
}

func (t *fakeTx) GetTaskForUpdate(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, ok := t.repo.state.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	return &task, nil
}

func (t *fakeTx) MarkTaskCompleted(ctx context.Context, taskID string, completedAt time.Time) error {
	task := t.repo.state.tasks[taskID]
	task.IsCompleted = true
	task.CompletedAt = &completedAt
	t.repo.state.tasks[taskID] = task
	return nil
}

func (t *fakeTx) GetStreakForUpdate(ctx context.Context, userID, taskID string) (*domain.Streak, error) {
	s, ok := t.repo.state.streaks[taskID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (t *fakeTx) UpsertStreak(ctx context.Context, s *domain.Streak) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	t.repo.state.streaks[s.TaskID] = *s
	return nil
}

func (t *fakeTx) InsertHabitLog(ctx context.Context, l *domain.HabitLog) error {
	l.ID = uuid.NewString()
	t.repo.state.habitLogs = append(t.repo.state.habitLogs, *l)
	return nil
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
