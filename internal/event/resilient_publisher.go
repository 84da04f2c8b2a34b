package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/habitquest/internal/logger"
)

// retryEntry is an event waiting for its next publish attempt
type retryEntry struct {
	event     Event
	attempt   int
	nextRetry time.Time
	lastErr   error
}

// ResilientPublisher wraps an event Bus with retry and dead-letter handling.
// A failed publish never reaches the caller: the event is queued for retries
// with exponential backoff and written to the dead-letter file when they run out.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	closeOnce  sync.Once
	fileOnce   sync.Once
	fileErr    error
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()

	return p, nil
}

// PublishWithRetry publishes the event, queuing it for background retries on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	p.enqueue(retryEntry{
		event:     event,
		attempt:   1,
		nextRetry: time.Now().Add(CalculateRetryDelay(p.retryDelay, 1)),
		lastErr:   err,
	})
}

// Publish satisfies Bus so the publisher can stand in wherever a bus is expected
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the wrapped bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case p.retryQueue <- entry:
	default:
		logger.FromContext(context.Background()).Error(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drain()
			return
		case entry := <-p.retryQueue:
			if !p.waitUntil(entry.nextRetry) {
				p.attemptFinal(entry)
				p.drain()
				return
			}
			p.attempt(entry)
		}
	}
}

// waitUntil sleeps until t and returns false when shutdown interrupts the wait
func (p *ResilientPublisher) waitUntil(t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-p.shutdown:
		return false
	}
}

func (p *ResilientPublisher) attempt(entry retryEntry) {
	log := logger.FromContext(context.Background())

	err := p.bus.Publish(context.Background(), entry.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}

	entry.lastErr = err
	if entry.attempt >= p.maxRetries {
		log.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt+1)
		p.writeDeadLetter(entry)
		return
	}

	log.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	entry.attempt++
	entry.nextRetry = time.Now().Add(CalculateRetryDelay(p.retryDelay, entry.attempt))
	p.enqueue(entry)
}

// attemptFinal makes one last publish attempt during shutdown
func (p *ResilientPublisher) attemptFinal(entry retryEntry) {
	if err := p.bus.Publish(context.Background(), entry.event); err != nil {
		entry.lastErr = err
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			p.attemptFinal(entry)
			drained++
		default:
			if drained > 0 {
				logger.FromContext(context.Background()).Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if err := p.deadLetter.Write(entry.event, entry.attempt+1, entry.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed,
			"event_type", entry.event.Type,
			"error", err)
	}
}

// Shutdown stops the retry worker, flushing queued events once before closing the dead-letter file.
// It is safe to call more than once.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.closeOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.fileOnce.Do(func() { p.fileErr = p.deadLetter.Close() })
		return p.fileErr
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
