// ABOUTME: MCP tool implementations for diary operations.
// ABOUTME: Registers add_diary_entry, list_diary_entries, and read_diary_entry.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/diary/internal/models"
)

func (s *Server) registerDiaryTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_diary_entry",
		Description: "Add an entry to the diary. Title and contents are required. Date defaults to today.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Short title for the entry"},
				"contents": {"type": "string", "description": "Free-text body of the entry"},
				"date": {"type": "string", "description": "Entry date as YYYY-MM-DD (default: today)"},
				"starred": {"type": "boolean", "description": "Mark the entry as starred (default: false)"}
			},
			"required": ["title", "contents"]
		}`),
	}, s.handleAddEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_diary_entries",
		Description: "List diary entries, most recent first. Each line starts with the entry's position for read_diary_entry.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "number", "description": "Maximum number of entries to return (default: 10)"}
			}
		}`),
	}, s.handleListEntries)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "read_diary_entry",
		Description: "Read the full content of a diary entry by its position in the list (1 = most recent).",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"position": {"type": "number", "description": "1-based position from list_diary_entries"}
			},
			"required": ["position"]
		}`),
	}, s.handleReadEntry)
}

func (s *Server) handleAddEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Title    string `json:"title"`
		Contents string `json:"contents"`
		Date     string `json:"date"`
		Starred  bool   `json:"starred"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	date := s.today()
	if args.Date != "" {
		parsed, err := models.ParseDate(args.Date)
		if err != nil {
			return toolError("%v", err), nil
		}
		date = parsed
	}

	entry := models.DiaryEntry{
		Title:    strings.TrimSpace(args.Title),
		Contents: args.Contents,
		Date:     date,
		IsStar:   args.Starred,
	}
	if err := models.Validate(entry); err != nil {
		return toolError("invalid entry: %v", err), nil
	}

	if err := s.store.Add(entry); err != nil {
		return toolError("failed to save entry: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Diary entry saved: %s (%s)", entry.Title, models.FormatDate(entry.Date)),
		}},
	}, nil
}

func (s *Server) handleListEntries(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Limit int `json:"limit"`
	}
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return toolError("invalid arguments: %v", err), nil
		}
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	entries := s.store.Entries()
	if len(entries) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No diary entries yet."}},
		}, nil
	}
	if len(entries) > args.Limit {
		entries = entries[:args.Limit]
	}

	var sb strings.Builder
	for i, entry := range entries {
		sb.WriteString(fmt.Sprintf("%d. %s %s%s\n", i+1, models.FormatDate(entry.Date), entry.Title, starMark(entry)))
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleReadEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Position int `json:"position"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	entries := s.store.Entries()
	if args.Position < 1 || args.Position > len(entries) {
		return toolError("position %d out of range (1-%d)", args.Position, len(entries)), nil
	}
	entry := entries[args.Position-1]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title: %s%s\n", entry.Title, starMark(entry)))
	sb.WriteString(fmt.Sprintf("Date: %s\n\n", models.FormatDate(entry.Date)))
	sb.WriteString(entry.Contents)

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func starMark(e models.DiaryEntry) string {
	if e.IsStar {
		return " ★"
	}
	return ""
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
