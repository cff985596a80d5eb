package delegate

import (
	"context"
	"errors"
	"testing"

	"github.com/salientworks/salient/internal/llm"
	"github.com/salientworks/salient/internal/memory"
)

func testStore(t *testing.T) *memory.Store {
	t.Helper()
	s, err := memory.New(7)
	if err != nil {
		t.Fatalf("memory.New: %v", err)
	}
	return s
}

func TestDelegateRecordsResult(t *testing.T) {
	mem := testStore(t)
	mock := &llm.MockClient{Response: &llm.Response{Content: "the tests pass on linux", Provider: "mock"}}
	d := New(mock, mem)

	resp, err := d.Delegate(context.Background(), "run the test suite and summarize")
	if err != nil {
		t.Fatalf("Delegate: %v", err)
	}
	if resp.Content != "the tests pass on linux" {
		t.Errorf("content = %q", resp.Content)
	}

	entries := mem.List()
	if len(entries) != 1 {
		t.Fatalf("store has %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Category != memory.CategoryResult {
		t.Errorf("category = %s, want result", e.Category)
	}
	if e.Content != "the tests pass on linux" {
		t.Errorf("content = %q", e.Content)
	}
}

func TestDelegateFailureNotRecorded(t *testing.T) {
	mem := testStore(t)
	mock := &llm.MockClient{Err: errors.New("boom")}
	d := New(mock, mem)

	if _, err := d.Delegate(context.Background(), "do a thing"); err == nil {
		t.Fatal("expected error")
	}
	if mem.Len() != 0 {
		t.Errorf("store has %d entries after failure, want 0", mem.Len())
	}
}

func TestDelegateBreakerOpens(t *testing.T) {
	mem := testStore(t)
	mock := &llm.MockClient{Err: errors.New("endpoint down")}
	d := New(mock, mem)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := d.Delegate(ctx, "p"); errors.Is(err, ErrEndpointDown) {
			t.Fatalf("call %d short-circuited before threshold", i)
		}
	}

	if d.Health() != BreakerOpen {
		t.Fatalf("health = %s, want open", d.Health())
	}

	// Open breaker: no call reaches the endpoint.
	calls := len(mock.Calls)
	_, err := d.Delegate(ctx, "p")
	if !errors.Is(err, ErrEndpointDown) {
		t.Errorf("err = %v, want ErrEndpointDown", err)
	}
	if len(mock.Calls) != calls {
		t.Error("open breaker still forwarded the call")
	}
}

func TestDelegateEmptyResponseNotRecorded(t *testing.T) {
	mem := testStore(t)
	mock := &llm.MockClient{Response: &llm.Response{Content: "", Provider: "mock"}}
	d := New(mock, mem)

	if _, err := d.Delegate(context.Background(), "p"); err != nil {
		t.Fatalf("Delegate: %v", err)
	}
	if mem.Len() != 0 {
		t.Errorf("empty response recorded, store has %d entries", mem.Len())
	}
}
