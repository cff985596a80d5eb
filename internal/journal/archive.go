package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/salientworks/salient/internal/memory"
)

// ArchivedEntry is one evicted working-memory entry as stored on disk.
type ArchivedEntry struct {
	ID             int64
	EntryID        string
	Content        string
	Category       string
	Priority       int
	Tags           []string
	CreatedAt      int64
	LastAccessedAt int64
	AccessCount    int
	EvictedAt      int64
}

// ArchiveEvicted records an evicted entry. Intended for use as (part of)
// a store OnEvict callback; callers decide which categories to keep.
func (db *DB) ArchiveEvicted(e *memory.Entry) error {
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO evictions (entry_id, content, category, priority, tags,
			created_at, last_accessed_at, access_count, evicted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Content, string(e.Category), e.Priority, string(tags),
		e.CreatedAt.UnixMilli(), e.LastAccessedAt.UnixMilli(), e.AccessCount,
		time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("archive evicted: %w", err)
	}
	return nil
}

// RecentEvictions returns the most recently archived entries.
func (db *DB) RecentEvictions(limit int) ([]ArchivedEntry, error) {
	rows, err := db.Query(`
		SELECT id, entry_id, content, category, priority, tags,
			created_at, last_accessed_at, access_count, evicted_at
		FROM evictions ORDER BY evicted_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent evictions: %w", err)
	}
	defer rows.Close()

	var out []ArchivedEntry
	for rows.Next() {
		var a ArchivedEntry
		var tags string
		if err := rows.Scan(&a.ID, &a.EntryID, &a.Content, &a.Category, &a.Priority,
			&tags, &a.CreatedAt, &a.LastAccessedAt, &a.AccessCount, &a.EvictedAt); err != nil {
			return nil, fmt.Errorf("scan eviction: %w", err)
		}
		if tags != "" {
			if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
				a.Tags = nil
			}
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// EvictionCount returns the total number of archived entries.
func (db *DB) EvictionCount() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM evictions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count evictions: %w", err)
	}
	return count, nil
}
