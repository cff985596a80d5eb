package memory

import (
	"math"
	"testing"
	"time"
)

func baseEntry() *Entry {
	return &Entry{
		ID:             "e1",
		Content:        "fact",
		Category:       CategoryTask,
		Priority:       4,
		CreatedAt:      t0,
		LastAccessedAt: t0,
	}
}

func TestScoreFreshEntry(t *testing.T) {
	e := baseEntry()
	e.Category = CategoryDecision
	e.Priority = 7

	// Fresh, untouched: recency term 1.0, access term 0.
	want := 0.3*1.0 + 0.2*0 + 0.3*1.0 + 0.2*1.0
	got := Score(e, t0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Score = %.6f, want %.6f", got, want)
	}
}

func TestScoreAgeMonotonicity(t *testing.T) {
	older := baseEntry()
	newer := baseEntry()
	newer.LastAccessedAt = t0.Add(30 * time.Minute)

	at := t0.Add(time.Hour)
	if Score(older, at) > Score(newer, at) {
		t.Errorf("older-touched entry scored %.6f above newer %.6f",
			Score(older, at), Score(newer, at))
	}
}

func TestScoreOneHourDecay(t *testing.T) {
	e := baseEntry()

	fresh := Score(e, t0)
	aged := Score(e, t0.Add(time.Hour))

	// Only the recency term changes: 0.3 drops to 0.3/e.
	wantDrop := 0.3 * (1 - 1/math.E)
	if math.Abs((fresh-aged)-wantDrop) > 1e-9 {
		t.Errorf("one-hour drop = %.6f, want %.6f", fresh-aged, wantDrop)
	}
}

func TestScoreAccessBonusUnbounded(t *testing.T) {
	// A hammered entry must out-score even the strongest untouched one.
	// ln(n+1) has no cap; that dominance is part of the contract.
	hot := baseEntry()
	hot.Category = CategoryResult
	hot.Priority = 1
	hot.AccessCount = 10000

	cold := baseEntry()
	cold.Category = CategoryDecision
	cold.Priority = 7

	if Score(hot, t0) <= Score(cold, t0) {
		t.Errorf("heavily accessed entry %.6f did not dominate %.6f",
			Score(hot, t0), Score(cold, t0))
	}
}

func TestScoreAccessCountMonotonic(t *testing.T) {
	prev := -1.0
	for _, n := range []int{0, 1, 2, 5, 50} {
		e := baseEntry()
		e.AccessCount = n
		if sc := Score(e, t0); sc <= prev {
			t.Errorf("score at %d accesses (%.6f) not above %.6f", n, sc, prev)
		} else {
			prev = sc
		}
	}
}

func TestCategoryWeights(t *testing.T) {
	cases := []struct {
		cat  Category
		want float64
	}{
		{CategoryDecision, 1.0},
		{CategoryInsight, 0.9},
		{CategoryPattern, 0.8},
		{CategoryReference, 0.6},
		{CategoryTask, 0.5},
		{CategoryResult, 0.4},
		{Category("speculation"), 0.5},
		{Category(""), 0.5},
	}
	for _, c := range cases {
		if got := c.cat.Weight(); got != c.want {
			t.Errorf("Weight(%q) = %.2f, want %.2f", c.cat, got, c.want)
		}
	}
}

func TestUnknownCategoryScoredWithDefault(t *testing.T) {
	unknown := baseEntry()
	unknown.Category = Category("speculation")

	task := baseEntry() // task weight is also 0.5

	if Score(unknown, t0) != Score(task, t0) {
		t.Errorf("unknown category score %.6f differs from default-weight score %.6f",
			Score(unknown, t0), Score(task, t0))
	}
}
