package mcp

import (
	"context"
	"errors"
	"io"
	"testing"

	"toolbridge/internal/audit"
	"toolbridge/internal/config"
)

func TestInvokerCall(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := NewRegistry(&cfg)
	_ = reg.Add(ToolSpec{
		Name:      "demo",
		ToolkitID: "core",
		Safety:    SafetyReadOnly,
		Handler: func(ctx context.Context, req ToolRequest) (ToolResult, error) {
			if req.Arguments["fail"] == true {
				return ToolResult{}, errors.New("boom")
			}
			return ToolResult{Data: map[string]any{"ok": true}}, nil
		},
	})
	inv := NewToolInvoker(reg, ToolContext{Config: &cfg, Audit: audit.NewLogger(io.Discard)})

	result, err := inv.Call(context.Background(), "demo", map[string]any{})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	data, ok := result.Data.(map[string]any)
	if !ok || data["ok"] != true {
		t.Fatalf("unexpected result: %#v", result.Data)
	}

	if _, err := inv.Call(context.Background(), "demo", map[string]any{"fail": true}); err == nil {
		t.Fatalf("expected handler error to propagate")
	}
}

func TestInvokerCallUnknownTool(t *testing.T) {
	cfg := config.DefaultConfig()
	inv := NewToolInvoker(NewRegistry(&cfg), ToolContext{Config: &cfg})
	if _, err := inv.Call(context.Background(), "nope", nil); err == nil {
		t.Fatalf("expected error for unknown tool")
	}
}

func TestInvokerNil(t *testing.T) {
	var inv *ToolInvoker
	if _, err := inv.Call(context.Background(), "demo", nil); err == nil {
		t.Fatalf("expected error for nil invoker")
	}
}
