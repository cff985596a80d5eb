package memory

import (
	"math"
	"time"
)

// Scoring weights. They sum to 1.0, but the terms are summed, not
// averaged — the access term is unbounded, so a heavily touched entry
// can out-score everything else. That is intentional: scores are only
// compared against each other to pick an eviction victim.
const (
	recencyWeight  = 0.3
	accessWeight   = 0.2
	priorityWeight = 0.3
	categoryWeight = 0.2

	// recencyTauMs is the exponential time constant for the age term:
	// an entry untouched for one hour decays to 1/e of a fresh one.
	recencyTauMs = 3_600_000.0
)

// Score computes the eviction-ranking score for an entry at the given
// instant. Pure and recomputed from scratch on every call — there is no
// cached score anywhere. Higher means more worth keeping.
func Score(e *Entry, now time.Time) float64 {
	ageMs := float64(now.Sub(e.LastAccessedAt).Milliseconds())
	recency := math.Exp(-ageMs / recencyTauMs)
	access := math.Log(float64(e.AccessCount) + 1)
	priority := float64(e.Priority) / float64(MaxPriority)

	return recencyWeight*recency +
		accessWeight*access +
		priorityWeight*priority +
		categoryWeight*e.Category.Weight()
}
