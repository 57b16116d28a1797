package stream

import (
	"sync"
	"time"
)

// Reconnect defaults.
const (
	DefaultMaxAttempts = 10
	DefaultBaseDelay   = 2 * time.Second
	DefaultCapFactor   = 5
)

// ReconnectPolicy owns the single pending reconnect task. The delay grows
// linearly with the attempt number until it reaches CapFactor times BaseDelay.
type ReconnectPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	CapFactor   int

	mu        sync.Mutex
	scheduler Scheduler
	attempts  int
	timer     Timer
	seq       uint64 // bumped on every arm and cancel; stale firings compare unequal
}

// NewReconnectPolicy builds a policy; zero values fall back to the defaults and
// a nil scheduler uses time.AfterFunc.
func NewReconnectPolicy(maxAttempts int, baseDelay time.Duration, capFactor int, scheduler Scheduler) *ReconnectPolicy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	if capFactor <= 0 {
		capFactor = DefaultCapFactor
	}
	if scheduler == nil {
		scheduler = realScheduler{}
	}
	return &ReconnectPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		CapFactor:   capFactor,
		scheduler:   scheduler,
	}
}

// Delay returns the backoff for the given 1-based attempt.
func (p *ReconnectPolicy) Delay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	factor := attempt
	if factor > p.CapFactor {
		factor = p.CapFactor
	}
	return p.BaseDelay * time.Duration(factor)
}

// Schedule counts one more attempt and arms fn after the backoff delay,
// replacing any pending task. It reports false without arming anything once
// the attempt count exceeds MaxAttempts.
func (p *ReconnectPolicy) Schedule(fn func()) (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.attempts++
	p.stopLocked()
	if p.attempts > p.MaxAttempts {
		return 0, false
	}

	delay := p.Delay(p.attempts)
	seq := p.seq
	p.timer = p.scheduler.AfterFunc(delay, func() {
		p.mu.Lock()
		if seq != p.seq {
			p.mu.Unlock()
			return
		}
		p.timer = nil
		p.seq++
		p.mu.Unlock()
		fn()
	})
	return delay, true
}

// Cancel drops the pending task, if any. A timer that already fired but has not
// yet run its callback is discarded as well.
func (p *ReconnectPolicy) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Reset zeroes the attempt counter.
func (p *ReconnectPolicy) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts = 0
}

func (p *ReconnectPolicy) Attempts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts
}

// Pending reports whether a reconnect task is armed.
func (p *ReconnectPolicy) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.timer != nil
}

func (p *ReconnectPolicy) stopLocked() {
	p.seq++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
