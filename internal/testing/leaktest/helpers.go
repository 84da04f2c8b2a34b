// Package leaktest checks that background workers release their goroutines.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 10 * time.Millisecond
	// DefaultTimeout bounds how long Check waits for goroutines to exit
	DefaultTimeout = time.Second
)

// GoroutineChecker compares the goroutine count before and after a block of work
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test if more than tolerance goroutines are still running
// once DefaultTimeout has elapsed
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	target := g.before + tolerance
	if after, ok := waitFor(target, DefaultTimeout); !ok {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, after-g.before, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails if it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until at most target goroutines are running
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()

	if current, ok := waitFor(target, timeout); !ok {
		t.Errorf("Timeout waiting for goroutines to complete: current=%d, target=%d", current, target)
	}
}

func waitFor(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		current := runtime.NumGoroutine()
		if current <= target {
			return current, true
		}
		if time.Now().After(deadline) {
			return current, false
		}
		time.Sleep(pollInterval)
	}
}
