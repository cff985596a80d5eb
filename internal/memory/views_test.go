package memory

import (
	"strings"
	"testing"
)

func TestFormatEntry(t *testing.T) {
	e := &Entry{
		Content:        "use WAL mode for all sqlite databases",
		Category:       CategoryDecision,
		Priority:       6,
		Tags:           []string{"sqlite"},
		CreatedAt:      t0,
		LastAccessedAt: t0,
	}

	line := FormatEntry(e, t0)
	for _, want := range []string{"decision", "p6", "use WAL mode", "#sqlite"} {
		if !strings.Contains(line, want) {
			t.Errorf("line missing %q: %s", want, line)
		}
	}
}

func TestFormatEntryPreviewTruncated(t *testing.T) {
	e := &Entry{
		Content:        strings.Repeat("x", 200),
		Category:       CategoryReference,
		Priority:       3,
		CreatedAt:      t0,
		LastAccessedAt: t0,
	}

	line := FormatEntry(e, t0)
	if strings.Contains(line, strings.Repeat("x", 100)) {
		t.Errorf("preview not truncated: %s", line)
	}
	if !strings.Contains(line, "...") {
		t.Errorf("truncated preview missing ellipsis: %s", line)
	}
}

func TestFormatListOrder(t *testing.T) {
	entries := []*Entry{
		{Content: "first", Category: CategoryResult, Priority: 1, CreatedAt: t0, LastAccessedAt: t0},
		{Content: "second", Category: CategoryDecision, Priority: 7, CreatedAt: t0, LastAccessedAt: t0},
	}

	out := FormatList(entries, t0)
	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Errorf("list reordered entries: %s", out)
	}
}

func TestFormatListEmpty(t *testing.T) {
	if out := FormatList(nil, t0); !strings.Contains(out, "no memories") {
		t.Errorf("empty list output = %q", out)
	}
}

func TestBriefing(t *testing.T) {
	s := newTestStore(t, 7)
	s.Insert("prefer table-driven tests", CategoryInsight, 5, nil)
	s.Insert("ship the fix by friday", CategoryTask, 6, nil)

	out := Briefing(s)
	if !strings.Contains(out, "Working Memory") {
		t.Errorf("briefing missing header: %s", out)
	}
	if !strings.Contains(out, "2 of 7 slots") {
		t.Errorf("briefing missing slot usage: %s", out)
	}
	if strings.Index(out, "table-driven") > strings.Index(out, "friday") {
		t.Error("briefing not in store order")
	}
	if !strings.HasSuffix(out, "</context>") {
		t.Error("briefing missing closing tag")
	}
}

func TestBriefingEmpty(t *testing.T) {
	s := newTestStore(t, 7)
	if out := Briefing(s); !strings.Contains(out, "No memories") {
		t.Errorf("empty briefing = %q", out)
	}
}
