package memory

import "time"

// Category classifies what kind of fact an entry holds. The set below is
// the contract surface for scoring; any other value is carried through
// unchanged but scored with defaultCategoryWeight.
type Category string

const (
	CategoryDecision  Category = "decision"
	CategoryInsight   Category = "insight"
	CategoryPattern   Category = "pattern"
	CategoryReference Category = "reference"
	CategoryTask      Category = "task"
	CategoryResult    Category = "result"
)

// defaultCategoryWeight applies to any category outside the known set.
const defaultCategoryWeight = 0.5

// Weight returns the long-term importance multiplier for this category.
func (c Category) Weight() float64 {
	switch c {
	case CategoryDecision:
		return 1.0
	case CategoryInsight:
		return 0.9
	case CategoryPattern:
		return 0.8
	case CategoryReference:
		return 0.6
	case CategoryTask:
		return 0.5
	case CategoryResult:
		return 0.4
	default:
		return defaultCategoryWeight
	}
}

// Known reports whether the category is one of the fixed enumeration.
func (c Category) Known() bool {
	switch c {
	case CategoryDecision, CategoryInsight, CategoryPattern,
		CategoryReference, CategoryTask, CategoryResult:
		return true
	}
	return false
}

// Entry is one remembered fact plus its usage metadata.
// Content, Priority, Category, Tags and CreatedAt are fixed at insert;
// LastAccessedAt and AccessCount change only through Store.Access.
type Entry struct {
	ID             string    `json:"id"`
	Content        string    `json:"content"`
	Category       Category  `json:"category"`
	Priority       int       `json:"priority"`
	Tags           []string  `json:"tags,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	AccessCount    int       `json:"access_count"`
}

const (
	// MaxContentLen is the byte length content is truncated to at insert.
	MaxContentLen = 200

	// MinPriority and MaxPriority bound the caller-assigned priority.
	MinPriority = 1
	MaxPriority = 7
)

// clampPriority normalizes an out-of-range priority instead of rejecting it.
func clampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// truncateContent caps content at MaxContentLen bytes.
func truncateContent(s string) string {
	if len(s) <= MaxContentLen {
		return s
	}
	return s[:MaxContentLen]
}
