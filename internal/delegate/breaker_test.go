package delegate

import (
	"testing"
	"time"
)

func testBreaker() *Breaker {
	return NewBreaker(BreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      10 * time.Millisecond,
		HalfOpenMaxCalls: 1,
	})
}

func TestBreakerStartsClosed(t *testing.T) {
	b := testBreaker()
	if b.State() != BreakerClosed {
		t.Errorf("state = %s, want closed", b.State())
	}
	if !b.Allow() {
		t.Error("closed breaker should allow calls")
	}
}

func TestBreakerOpensOnFailures(t *testing.T) {
	b := testBreaker()

	b.RecordFailure()
	b.RecordFailure()
	if b.State() != BreakerClosed {
		t.Fatal("opened before threshold")
	}

	b.RecordFailure()
	if b.State() != BreakerOpen {
		t.Fatalf("state = %s after 3 failures, want open", b.State())
	}
	if b.Allow() {
		t.Error("open breaker allowed a call before timeout")
	}
}

func TestBreakerSuccessResetsFailureRun(t *testing.T) {
	b := testBreaker()

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()

	if b.State() != BreakerClosed {
		t.Errorf("state = %s, want closed — failure run was broken", b.State())
	}
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	b := testBreaker()
	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}

	time.Sleep(15 * time.Millisecond)

	// First call after the timeout is the probe.
	if !b.Allow() {
		t.Fatal("expected probe call to be allowed")
	}
	if b.State() != BreakerHalfOpen {
		t.Fatalf("state = %s, want half-open", b.State())
	}

	b.RecordSuccess()
	if !b.Allow() {
		t.Fatal("expected second probe")
	}
	b.RecordSuccess()

	if b.State() != BreakerClosed {
		t.Errorf("state = %s after probe successes, want closed", b.State())
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := testBreaker()
	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}

	time.Sleep(15 * time.Millisecond)
	if !b.Allow() {
		t.Fatal("expected probe call")
	}

	b.RecordFailure()
	if b.State() != BreakerOpen {
		t.Errorf("state = %s after failed probe, want open", b.State())
	}
}

func TestBreakerHalfOpenLimitsProbes(t *testing.T) {
	b := testBreaker()
	for i := 0; i < 3; i++ {
		b.RecordFailure()
	}

	time.Sleep(15 * time.Millisecond)
	if !b.Allow() {
		t.Fatal("expected first probe")
	}
	if b.Allow() {
		t.Error("second concurrent probe allowed, want rejected")
	}
}
