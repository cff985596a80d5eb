// Package usage tracks which tools the agent leans on during a session.
// Events go to the journal; when one tool crosses the configured
// threshold the tracker drops a pattern entry into working memory so the
// habit is visible to the agent itself.
package usage

import (
	"fmt"
	"log"

	"github.com/salientworks/salient/internal/journal"
	"github.com/salientworks/salient/internal/memory"
)

// Tracker is owned by whoever created it — one per session, no shared
// module state.
type Tracker struct {
	sessionID string
	db        *journal.DB
	mem       *memory.Store
	threshold int
	counts    map[string]int
}

// New creates a Tracker for one session. db may be nil (no on-disk log);
// threshold <= 0 disables pattern entries.
func New(sessionID string, db *journal.DB, mem *memory.Store, threshold int) *Tracker {
	return &Tracker{
		sessionID: sessionID,
		db:        db,
		mem:       mem,
		threshold: threshold,
		counts:    make(map[string]int),
	}
}

// Record logs one tool use. Crossing the threshold for a tool inserts a
// single pattern entry; further uses of that tool don't repeat it.
func (t *Tracker) Record(toolName, detail string) error {
	if toolName == "" {
		return fmt.Errorf("usage: tool name required")
	}

	if t.db != nil {
		if err := t.db.AddToolEvent(t.sessionID, toolName, detail); err != nil {
			return err
		}
	}

	t.counts[toolName]++
	if t.threshold > 0 && t.counts[toolName] == t.threshold && t.mem != nil {
		content := fmt.Sprintf("Tool %s used %d times this session", toolName, t.threshold)
		t.mem.Insert(content, memory.CategoryPattern, 3, []string{"tool-usage"})
		log.Printf("usage: recorded pattern for %s", toolName)
	}
	return nil
}

// Count returns how many uses of a tool this tracker has seen.
func (t *Tracker) Count(toolName string) int {
	return t.counts[toolName]
}
