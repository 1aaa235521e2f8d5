// ABOUTME: MCP server initialization and configuration for diary.
// ABOUTME: Sets up the server with diary tools for AI agent access.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/diary/internal/models"
)

// EntryStore is the part of the diary store the tools need.
type EntryStore interface {
	Add(entry models.DiaryEntry) error
	Entries() []models.DiaryEntry
}

// Server wraps the MCP server with a diary store.
type Server struct {
	mcp   *gomcp.Server
	store EntryStore
	today func() time.Time // date used when a caller omits one
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithToday overrides the default date for entries added without one.
func WithToday(fn func() time.Time) ServerOption {
	return func(s *Server) {
		s.today = fn
	}
}

// NewServer creates an MCP server backed by store.
func NewServer(store EntryStore, version string, opts ...ServerOption) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("diary store is required")
	}
	if version == "" {
		version = "dev"
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "diary",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcp:   mcpServer,
		store: store,
		today: models.Today,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerDiaryTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
