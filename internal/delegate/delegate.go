// Package delegate hands work off to a model endpoint, tracks the
// endpoint's health through a circuit breaker, and records successful
// results into working memory. Sequential glue: the store does the
// interesting work, this package just calls into it.
package delegate

import (
	"context"
	"errors"
	"fmt"

	"github.com/salientworks/salient/internal/llm"
	"github.com/salientworks/salient/internal/memory"
)

// ErrEndpointDown is returned while the breaker holds the endpoint open.
var ErrEndpointDown = errors.New("delegate: model endpoint unavailable")

// Delegator sends prompts to the configured model endpoint.
type Delegator struct {
	client  llm.Client
	breaker *Breaker
	mem     *memory.Store
}

// New creates a Delegator over the given client and store.
func New(client llm.Client, mem *memory.Store) *Delegator {
	return &Delegator{
		client:  client,
		breaker: NewBreaker(DefaultBreakerConfig()),
		mem:     mem,
	}
}

// Delegate sends the prompt to the endpoint. On success the response is
// remembered as a result entry so later turns can build on it.
func (d *Delegator) Delegate(ctx context.Context, prompt string) (*llm.Response, error) {
	if !d.breaker.Allow() {
		return nil, ErrEndpointDown
	}

	resp, err := d.client.Complete(ctx, prompt)
	if err != nil {
		d.breaker.RecordFailure()
		return nil, fmt.Errorf("delegate: %w", err)
	}
	d.breaker.RecordSuccess()

	if d.mem != nil && resp.Content != "" {
		d.mem.Insert(resp.Content, memory.CategoryResult, 4, []string{"delegated"})
	}
	return resp, nil
}

// Health returns the current endpoint breaker state.
func (d *Delegator) Health() BreakerState {
	return d.breaker.State()
}
