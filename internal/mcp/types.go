package mcp

import (
	"context"
	"log/slog"

	"toolbridge/internal/audit"
	"toolbridge/internal/cache"
	"toolbridge/internal/config"
	"toolbridge/internal/credentials"
	"toolbridge/internal/observe"
	"toolbridge/internal/redact"
)

type ToolSafety string

const (
	SafetyReadOnly    ToolSafety = "read_only"
	SafetyWrite       ToolSafety = "write"
	SafetyRiskyWrite  ToolSafety = "risky_write"
	SafetyDestructive ToolSafety = "destructive"
)

type ToolHandler func(ctx context.Context, req ToolRequest) (ToolResult, error)

type ToolSpec struct {
	Name        string
	Description string
	ToolkitID   string
	InputSchema map[string]any
	Safety      ToolSafety
	Handler     ToolHandler
}

type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type ToolRequest struct {
	Arguments map[string]any
	Context   ToolContext
}

type ToolResult struct {
	Data any
}

// ToolContext carries the shared runtime handed to every tool handler and,
// as ToolkitContext, to each toolkit at Init time. Credentials is scoped to
// a single registration attempt; everything else is process-wide.
type ToolContext struct {
	Config      *config.Config
	Credentials credentials.Set
	Audit       *audit.Logger
	Redactor    *redact.Redactor
	Cache       *cache.Store
	Services    *ServiceRegistry
	Invoker     *ToolInvoker
	Registry    Registry
	Metrics     *observe.Metrics
	Logger      *slog.Logger
}

type ToolkitContext = ToolContext

// WithCredentials returns a copy of the context bound to the supplied set.
func (t ToolContext) WithCredentials(set credentials.Set) ToolContext {
	t.Credentials = set
	return t
}

// Log returns the configured logger or the process default.
func (t ToolContext) Log() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}
