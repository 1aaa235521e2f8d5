// ABOUTME: Tests for diary MCP tool handlers.
// ABOUTME: Covers add_diary_entry, list_diary_entries, and read_diary_entry.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/diary/internal/diary"
	"github.com/2389-research/diary/internal/models"
	"github.com/2389-research/diary/internal/storage"
)

var toolsToday = time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

func makeDiaryServer(t *testing.T) (*Server, *diary.Store) {
	t.Helper()
	store, err := diary.NewStore(storage.NewMemoryKV(), "")
	if err != nil {
		t.Fatalf("NewStore error: %v", err)
	}
	server, err := NewServer(store, "test", WithToday(func() time.Time { return toolsToday }))
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return server, store
}

func callTool(t *testing.T, s *Server, name string, args interface{}) *gomcp.CallToolResult {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}

	req := &gomcp.CallToolRequest{
		Params: &gomcp.CallToolParamsRaw{
			Name:      name,
			Arguments: argsJSON,
		},
	}
	ctx := context.Background()

	var result *gomcp.CallToolResult
	switch name {
	case "add_diary_entry":
		result, err = s.handleAddEntry(ctx, req)
	case "list_diary_entries":
		result, err = s.handleListEntries(ctx, req)
	case "read_diary_entry":
		result, err = s.handleReadEntry(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return result
}

func getTextContent(result *gomcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if tc, ok := result.Content[0].(*gomcp.TextContent); ok {
		return tc.Text
	}
	return ""
}

func TestAddDiaryEntry(t *testing.T) {
	s, store := makeDiaryServer(t)

	result := callTool(t, s, "add_diary_entry", map[string]interface{}{
		"title":    "Picnic",
		"contents": "Sunny day",
		"date":     "2023-02-14",
		"starred":  true,
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if !strings.Contains(getTextContent(result), "Picnic") {
		t.Errorf("expected title in response, got: %s", getTextContent(result))
	}

	entries := store.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(entries))
	}
	want := models.DiaryEntry{
		Title:    "Picnic",
		Contents: "Sunny day",
		Date:     time.Date(2023, 2, 14, 0, 0, 0, 0, time.UTC),
		IsStar:   true,
	}
	if !entries[0].Equal(want) {
		t.Errorf("stored %+v, want %+v", entries[0], want)
	}
}

func TestAddDiaryEntryDefaultsDate(t *testing.T) {
	s, store := makeDiaryServer(t)

	result := callTool(t, s, "add_diary_entry", map[string]string{
		"title":    "Today",
		"contents": "Nothing much",
	})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if got := store.Entries()[0].Date; !got.Equal(toolsToday) {
		t.Errorf("expected default date %v, got %v", toolsToday, got)
	}
}

func TestAddDiaryEntryValidation(t *testing.T) {
	tests := []struct {
		name string
		args map[string]string
		want string
	}{
		{"missing title", map[string]string{"contents": "c"}, "title is required"},
		{"missing contents", map[string]string{"title": "t"}, "contents is required"},
		{"bad date", map[string]string{"title": "t", "contents": "c", "date": "tomorrow"}, "invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store := makeDiaryServer(t)
			result := callTool(t, s, "add_diary_entry", tt.args)
			if !result.IsError {
				t.Fatal("expected error result")
			}
			if !strings.Contains(getTextContent(result), tt.want) {
				t.Errorf("expected %q in error, got: %s", tt.want, getTextContent(result))
			}
			if store.Len() != 0 {
				t.Error("expected nothing to be stored")
			}
		})
	}
}

// brokenStore fails every write.
type brokenStore struct{}

func (brokenStore) Add(models.DiaryEntry) error  { return errors.New("disk full") }
func (brokenStore) Entries() []models.DiaryEntry { return nil }

func TestAddDiaryEntryStoreFailure(t *testing.T) {
	s, err := NewServer(brokenStore{}, "test")
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	result := callTool(t, s, "add_diary_entry", map[string]string{"title": "t", "contents": "c"})
	if !result.IsError || !strings.Contains(getTextContent(result), "disk full") {
		t.Errorf("expected store error surfaced, got: %s", getTextContent(result))
	}
}

func TestListDiaryEntriesEmpty(t *testing.T) {
	s, _ := makeDiaryServer(t)

	result := callTool(t, s, "list_diary_entries", map[string]interface{}{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if !strings.Contains(getTextContent(result), "No diary entries") {
		t.Errorf("expected empty message, got: %s", getTextContent(result))
	}
}

func TestListDiaryEntriesNewestFirst(t *testing.T) {
	s, _ := makeDiaryServer(t)

	for _, e := range []map[string]string{
		{"title": "B", "contents": "c", "date": "2023-01-05"},
		{"title": "A", "contents": "c", "date": "2023-01-10"},
		{"title": "C", "contents": "c", "date": "2023-01-08"},
	} {
		if r := callTool(t, s, "add_diary_entry", e); r.IsError {
			t.Fatalf("add failed: %s", getTextContent(r))
		}
	}

	text := getTextContent(callTool(t, s, "list_diary_entries", map[string]interface{}{}))
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), text)
	}
	for i, title := range []string{"A", "C", "B"} {
		if !strings.HasSuffix(lines[i], " "+title) {
			t.Errorf("line %d = %q, want title %s", i, lines[i], title)
		}
	}

	limited := getTextContent(callTool(t, s, "list_diary_entries", map[string]interface{}{"limit": 1}))
	if strings.Count(strings.TrimSpace(limited), "\n") != 0 || !strings.Contains(limited, "A") {
		t.Errorf("expected only the newest entry with limit 1, got:\n%s", limited)
	}
}

func TestReadDiaryEntry(t *testing.T) {
	s, _ := makeDiaryServer(t)
	callTool(t, s, "add_diary_entry", map[string]interface{}{
		"title":    "Starred one",
		"contents": "Full body text\nwith two lines",
		"date":     "2023-03-01",
		"starred":  true,
	})

	result := callTool(t, s, "read_diary_entry", map[string]int{"position": 1})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	text := getTextContent(result)
	for _, want := range []string{"Starred one ★", "2023-03-01 (Wed)", "Full body text\nwith two lines"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in entry, got:\n%s", want, text)
		}
	}
}

func TestReadDiaryEntryOutOfRange(t *testing.T) {
	s, _ := makeDiaryServer(t)

	for _, pos := range []int{0, 1, -3} {
		result := callTool(t, s, "read_diary_entry", map[string]int{"position": pos})
		if !result.IsError {
			t.Errorf("expected error for position %d", pos)
		}
	}
}
