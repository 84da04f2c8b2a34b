package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/habitquest/internal/domain"
	"github.com/osse101/habitquest/internal/logger"
	"github.com/osse101/habitquest/internal/metrics"
)

// Auditor runs the daily streak and task audit
type Auditor interface {
	RunDailyAudit(ctx context.Context, now time.Time) (*domain.AuditReport, error)
}

// DailyAuditWorker runs the audit at every local midnight of the game timezone
type DailyAuditWorker struct {
	auditor  Auditor
	loc      *time.Location
	now      func() time.Time
	timer    *time.Timer
	target   time.Time
	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex

	// ctx is the parent of every audit run; cancel aborts runs still going when Shutdown gives up
	ctx    context.Context
	cancel context.CancelFunc
}

// NewDailyAuditWorker creates a new DailyAuditWorker
func NewDailyAuditWorker(auditor Auditor, loc *time.Location) *DailyAuditWorker {
	return newDailyAuditWorker(auditor, loc, time.Now)
}

func newDailyAuditWorker(auditor Auditor, loc *time.Location, now func() time.Time) *DailyAuditWorker {
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &DailyAuditWorker{
		auditor:  auditor,
		loc:      loc,
		now:      now,
		shutdown: make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start schedules the first audit
func (w *DailyAuditWorker) Start() {
	w.scheduleNext()
}

// Trigger runs an audit immediately, outside the schedule.
// Used at startup to catch up on midnights missed while the service was down.
func (w *DailyAuditWorker) Trigger() {
	logger.FromContext(context.Background()).Info(LogMsgDailyAuditManualTrigger)
	w.executeAudit()
}

// scheduleNext arms the timer for the coming local midnight.
// Long waits are split in two so a timer that drifts over many hours is corrected
// shortly before the audit is due.
func (w *DailyAuditWorker) scheduleNext() {
	now := w.now()
	target := nextMidnight(now, w.loc)
	duration := target.Sub(now)
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdown:
		return
	default:
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.target = target

	if duration > StandbyThreshold {
		wait := duration - StandbyLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		log.Info(LogMsgDailyAuditStandby, "next_check_at", now.Add(wait), "audit_at", target)
		return
	}

	w.timer = time.AfterFunc(duration, w.fire)
	log.Info(LogMsgDailyAuditScheduled, "audit_at", target)
}

// fire runs on the timer goroutine once the final approach timer expires
func (w *DailyAuditWorker) fire() {
	select {
	case <-w.shutdown:
		return
	default:
	}

	w.mu.Lock()
	target := w.target
	w.mu.Unlock()

	// Woke up early: arm again for the same midnight
	if target.Sub(w.now()) > EarlyWakeTolerance {
		w.scheduleNext()
		return
	}

	w.executeAudit()
	w.scheduleNext()
}

// executeAudit performs the audit in a tracked goroutine. Nothing starts once Shutdown has begun.
func (w *DailyAuditWorker) executeAudit() {
	w.mu.Lock()
	select {
	case <-w.shutdown:
		w.mu.Unlock()
		return
	default:
	}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()

		ctx := logger.WithRequestID(w.ctx, logger.GenerateRequestID())
		log := logger.FromContext(ctx)
		log.Info(LogMsgDailyAuditStarting)

		start := time.Now()
		report, err := w.auditor.RunDailyAudit(ctx, w.now())
		metrics.AuditDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			log.Error(LogMsgDailyAuditFailed, "error", err)
			return
		}

		log.Info(LogMsgDailyAuditCompleted,
			"day", report.Day.Format(time.DateOnly),
			"streaks_reset", report.StreaksReset,
			"dailies_reopened", report.DailiesReopened)
	}()
}

// Shutdown cancels the pending timer and waits for any in-flight audit to complete.
// If ctx ends first the in-flight audit's context is cancelled and ctx.Err() is returned.
func (w *DailyAuditWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDailyAuditShutdown)
	defer w.cancel()

	w.mu.Lock()
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgDailyAuditShutdownDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgDailyAuditShutdownTimeout)
		return ctx.Err()
	}
}

// nextMidnight returns the first local midnight in loc strictly after now
func nextMidnight(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if !midnight.After(local) {
		midnight = time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	}
	return midnight
}
