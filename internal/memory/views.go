package memory

import (
	"fmt"
	"strings"
	"time"
)

// previewLen is the content preview length used by the list views.
const previewLen = 80

// categoryIcon labels entries in human-facing listings.
func categoryIcon(c Category) string {
	switch c {
	case CategoryDecision:
		return "⚖️"
	case CategoryInsight:
		return "💡"
	case CategoryPattern:
		return "🔁"
	case CategoryReference:
		return "📚"
	case CategoryTask:
		return "📋"
	case CategoryResult:
		return "📦"
	default:
		return "❔"
	}
}

// FormatEntry renders one entry as a single display line:
// icon, category label, priority, age since last touch, content preview.
func FormatEntry(e *Entry, now time.Time) string {
	preview := e.Content
	if len(preview) > previewLen {
		preview = preview[:previewLen-3] + "..."
	}

	line := fmt.Sprintf("%s [%s/p%d] %s", categoryIcon(e.Category), e.Category, e.Priority, preview)
	if age := now.Sub(e.LastAccessedAt); age > time.Minute {
		line += fmt.Sprintf(" (%s ago)", age.Round(time.Minute))
	}
	if len(e.Tags) > 0 {
		line += " #" + strings.Join(e.Tags, " #")
	}
	return line
}

// FormatList renders entries one per line, in the order given. Views
// never reorder: listings follow current store order, not score.
func FormatList(entries []*Entry, now time.Time) string {
	if len(entries) == 0 {
		return "(no memories)"
	}
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s\n", i+1, FormatEntry(e, now))
	}
	return b.String()
}

// Briefing builds the markdown context block injected into agent prompts.
// It reflects current store contents faithfully and nothing else.
func Briefing(s *Store) string {
	now := s.clock()
	var b strings.Builder

	b.WriteString("<context>\n## Salient — Working Memory\n")

	entries := s.List()
	if len(entries) == 0 {
		b.WriteString("\nNo memories recorded yet this session.\n")
	} else {
		fmt.Fprintf(&b, "\n%d of %d slots in use.\n\n", len(entries), s.Cap())
		for _, e := range entries {
			fmt.Fprintf(&b, "- %s\n", FormatEntry(e, now))
		}
	}

	b.WriteString("</context>")
	return b.String()
}
