package timer

import (
	"sync"
	"time"
)

// Timer tracks accumulated working time for a single project. It holds the
// total banked by completed sessions plus, while running, the instant the
// current session started. Totals are computed from that instant on demand,
// so reads never mutate state.
type Timer struct {
	mu          sync.RWMutex
	accumulated time.Duration
	running     bool
	startedAt   time.Time
}

func New() *Timer {
	return &Timer{}
}

// Start begins a session at now. No-op if already running.
func (t *Timer) Start(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}
	t.running = true
	t.startedAt = now
}

// Stop ends the session at now and folds the elapsed interval into the
// accumulated total. Returns the folded interval, or zero if the timer
// was not running.
func (t *Timer) Stop(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return 0
	}
	elapsed := now.Sub(t.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	t.accumulated += elapsed
	t.running = false
	t.startedAt = time.Time{}
	return elapsed
}

// Reset clears the accumulated total. A running timer keeps running,
// counting up from zero anchored at now.
func (t *Timer) Reset(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.accumulated = 0
	if t.running {
		t.startedAt = now
	}
}

// Adjust shifts the total by delta, clamped at zero. A running session is
// folded in first so the shift applies to the full total; the running state
// is preserved.
func (t *Timer) Adjust(delta time.Duration, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		if elapsed := now.Sub(t.startedAt); elapsed > 0 {
			t.accumulated += elapsed
		}
		t.startedAt = now
	}
	t.accumulated += delta
	if t.accumulated < 0 {
		t.accumulated = 0
	}
}

// Total returns the accumulated time plus the in-progress interval, if any.
// Never negative.
func (t *Timer) Total(now time.Time) time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := t.accumulated
	if t.running {
		if elapsed := now.Sub(t.startedAt); elapsed > 0 {
			total += elapsed
		}
	}
	return total
}

// Accumulated returns only the banked total, excluding any session in
// progress.
func (t *Timer) Accumulated() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.accumulated
}

// SetAccumulated overwrites the banked total, typically with a value loaded
// from storage. Negative values are clamped to zero.
func (t *Timer) SetAccumulated(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if d < 0 {
		d = 0
	}
	t.accumulated = d
}

func (t *Timer) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}

// StartedAt returns the current session's start instant. The second return
// is false when the timer is stopped.
func (t *Timer) StartedAt() (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.startedAt, t.running
}
