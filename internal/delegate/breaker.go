package delegate

import (
	"sync"
	"time"
)

// BreakerState is the health state of the model endpoint.
type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half-open"
)

// BreakerConfig tunes the endpoint circuit breaker.
type BreakerConfig struct {
	FailureThreshold int           // consecutive failures before opening
	SuccessThreshold int           // half-open successes before closing
	OpenTimeout      time.Duration // how long to stay open before probing
	HalfOpenMaxCalls int           // concurrent probes allowed half-open
}

// DefaultBreakerConfig returns the default endpoint-health policy.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      20 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

// Breaker tracks model-endpoint health. Closed passes calls through; a
// run of failures opens it; after OpenTimeout a limited number of probe
// calls decide whether it closes again.
type Breaker struct {
	config        BreakerConfig
	state         BreakerState
	failures      int
	successes     int
	lastFailure   time.Time
	halfOpenCalls int
	mu            sync.RWMutex
}

// NewBreaker creates a closed Breaker with the given policy.
func NewBreaker(config BreakerConfig) *Breaker {
	return &Breaker{
		config: config,
		state:  BreakerClosed,
	}
}

// Allow reports whether a call may proceed right now, and claims a probe
// slot when half-open.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		return true

	case BreakerOpen:
		if time.Since(b.lastFailure) >= b.config.OpenTimeout {
			b.state = BreakerHalfOpen
			b.halfOpenCalls = 0
			b.successes = 0
			return b.allowHalfOpen()
		}
		return false

	case BreakerHalfOpen:
		return b.allowHalfOpen()
	}

	return false
}

func (b *Breaker) allowHalfOpen() bool {
	if b.halfOpenCalls < b.config.HalfOpenMaxCalls {
		b.halfOpenCalls++
		return true
	}
	return false
}

// RecordSuccess reports a successful endpoint call.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerClosed:
		b.failures = 0

	case BreakerHalfOpen:
		b.successes++
		b.halfOpenCalls--
		if b.successes >= b.config.SuccessThreshold {
			b.state = BreakerClosed
			b.failures = 0
			b.successes = 0
		}
	}
}

// RecordFailure reports a failed endpoint call.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastFailure = time.Now()

	switch b.state {
	case BreakerClosed:
		b.failures++
		if b.failures >= b.config.FailureThreshold {
			b.state = BreakerOpen
		}

	case BreakerHalfOpen:
		// A failed probe reopens immediately.
		b.state = BreakerOpen
		b.halfOpenCalls = 0
		b.successes = 0
	}
}

// State returns the current breaker state.
func (b *Breaker) State() BreakerState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}
