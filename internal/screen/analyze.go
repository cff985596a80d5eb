package screen

import (
	"context"
	"fmt"
	"strings"

	"github.com/salientworks/salient/internal/llm"
	"github.com/salientworks/salient/internal/memory"
)

const analysisPrompt = `You are looking at a screenshot from a developer's screen at %s.
Describe in one or two sentences what the developer appears to be working
on, flagging any visible error messages or stack traces. Be concrete.`

// Analyzer asks an LLM what a screenshot shows and records the answer.
type Analyzer struct {
	capturer *Capturer
	client   llm.Client
	mem      *memory.Store
}

// NewAnalyzer wires a capturer, an LLM client and the working-memory
// store. mem may be nil to skip recording.
func NewAnalyzer(capturer *Capturer, client llm.Client, mem *memory.Store) *Analyzer {
	return &Analyzer{capturer: capturer, client: client, mem: mem}
}

// Result is what one capture-and-analyze round produced.
type Result struct {
	Path     string `json:"path"`
	Analysis string `json:"analysis"`
}

// Run captures a screenshot, analyzes it, and inserts an insight entry.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	path, err := a.capturer.Capture(ctx)
	if err != nil {
		return nil, err
	}
	return a.analyze(ctx, path)
}

// Analyze skips capture and analyzes an existing file.
func (a *Analyzer) Analyze(ctx context.Context, path string) (*Result, error) {
	return a.analyze(ctx, path)
}

func (a *Analyzer) analyze(ctx context.Context, path string) (*Result, error) {
	resp, err := a.client.Complete(ctx, fmt.Sprintf(analysisPrompt, path))
	if err != nil {
		return nil, fmt.Errorf("screen: analysis failed: %w", err)
	}
	analysis := strings.TrimSpace(resp.Content)
	if analysis != "" && a.mem != nil {
		a.mem.Insert(analysis, memory.CategoryInsight, 4, []string{"screenshot"})
	}
	return &Result{Path: path, Analysis: analysis}, nil
}
