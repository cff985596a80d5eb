package journal

import (
	"fmt"
	"time"
)

// maxDetailSize caps the stored tool detail. Keeps the log from bloating
// on tools that echo large outputs.
const maxDetailSize = 4 * 1024

// ToolEvent is a single recorded tool use.
type ToolEvent struct {
	ID        int64
	SessionID string
	ToolName  string
	Detail    string
	CreatedAt int64
}

// ToolCount pairs a tool name with how often it has been used.
type ToolCount struct {
	ToolName string `json:"tool_name"`
	Count    int    `json:"count"`
}

// AddToolEvent records one tool use. Detail is truncated to 4KB.
func (db *DB) AddToolEvent(sessionID, toolName, detail string) error {
	if len(detail) > maxDetailSize {
		detail = detail[:maxDetailSize]
	}

	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO tool_events (session_id, tool_name, detail, created_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, toolName, detail, now)
	if err != nil {
		return fmt.Errorf("add tool event: %w", err)
	}
	return nil
}

// ToolCounts returns per-tool usage counts, most used first.
func (db *DB) ToolCounts(sessionID string) ([]ToolCount, error) {
	rows, err := db.Query(`
		SELECT tool_name, COUNT(*) AS n
		FROM tool_events
		WHERE session_id = ? OR ? = ''
		GROUP BY tool_name
		ORDER BY n DESC, tool_name
	`, sessionID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("tool counts: %w", err)
	}
	defer rows.Close()

	var counts []ToolCount
	for rows.Next() {
		var c ToolCount
		if err := rows.Scan(&c.ToolName, &c.Count); err != nil {
			return nil, fmt.Errorf("scan tool count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// RecentToolEvents returns the most recent tool events across sessions.
func (db *DB) RecentToolEvents(limit int) ([]ToolEvent, error) {
	rows, err := db.Query(`
		SELECT id, session_id, tool_name, detail, created_at
		FROM tool_events ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent tool events: %w", err)
	}
	defer rows.Close()

	var events []ToolEvent
	for rows.Next() {
		var e ToolEvent
		if err := rows.Scan(&e.ID, &e.SessionID, &e.ToolName, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tool event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
