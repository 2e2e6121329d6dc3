package mcp

import (
	"testing"

	"toolbridge/internal/config"
)

func TestRegistrySafetyReadOnly(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ReadOnly = true
	reg := NewRegistry(&cfg)
	if err := reg.Add(ToolSpec{Name: "postgres_execute", Safety: SafetyDestructive}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reg.Get("postgres_execute"); ok {
		t.Fatalf("expected destructive tool to be filtered in read-only mode")
	}
}

func TestRegistrySafetyAllowlist(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DisableDestructive = true
	cfg.Safety.AllowDestructiveTools = []string{"postgres_execute"}
	reg := NewRegistry(&cfg)
	if err := reg.Add(ToolSpec{Name: "postgres_execute", Safety: SafetyDestructive}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reg.Get("postgres_execute"); !ok {
		t.Fatalf("expected allowlisted tool to be registered")
	}
}

func TestRegistrySafetyDisableDestructive(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DisableDestructive = true
	reg := NewRegistry(&cfg)
	if err := reg.Add(ToolSpec{Name: "postgres_execute", Safety: SafetyDestructive}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reg.Get("postgres_execute"); ok {
		t.Fatalf("expected destructive tool to be filtered when not allowlisted")
	}
	if err := reg.Add(ToolSpec{Name: "sqlite_execute", Safety: SafetyRiskyWrite}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reg.Get("sqlite_execute"); ok {
		t.Fatalf("expected risky tool to be filtered when not allowlisted")
	}
}

func TestRegistryAddRequiresName(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := NewRegistry(&cfg)
	if err := reg.Add(ToolSpec{}); err == nil {
		t.Fatalf("expected error for missing tool name")
	}
}

func TestRegistryListAndNames(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := NewRegistry(&cfg)
	_ = reg.Add(ToolSpec{Name: "a", Safety: SafetyReadOnly})
	_ = reg.Add(ToolSpec{Name: "b", Safety: SafetyReadOnly})
	list := reg.List()
	if len(list) != 2 || list[0].Name != "a" || list[1].Name != "b" {
		t.Fatalf("unexpected list: %#v", list)
	}
	names := reg.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("unexpected names: %#v", names)
	}
}

func TestRegistrySpecsSorted(t *testing.T) {
	reg := NewRegistry(nil)
	_ = reg.Add(ToolSpec{Name: "b", Safety: SafetyReadOnly})
	_ = reg.Add(ToolSpec{Name: "a", Safety: SafetyReadOnly})
	specs := reg.Specs()
	if len(specs) != 2 || specs[0].Name != "a" {
		t.Fatalf("unexpected specs: %#v", specs)
	}
	if _, ok := reg.Get("a"); !ok {
		t.Fatalf("expected tool to be registered with nil config")
	}
}

func TestRegistryAddReplacesExisting(t *testing.T) {
	reg := NewRegistry(nil)
	_ = reg.Add(ToolSpec{Name: "notion_search", ToolkitID: "NotionToolkit", Description: "old", Safety: SafetyReadOnly})
	_ = reg.Add(ToolSpec{Name: "notion_search", ToolkitID: "NotionToolkit", Description: "new", Safety: SafetyReadOnly})
	spec, ok := reg.Get("notion_search")
	if !ok || spec.Description != "new" {
		t.Fatalf("expected replacement to win, got %#v", spec)
	}
	if len(reg.Names()) != 1 {
		t.Fatalf("expected a single entry after replacement")
	}
}

func TestRegistryNamesByToolkit(t *testing.T) {
	reg := NewRegistry(nil)
	_ = reg.Add(ToolSpec{Name: "notion_search", ToolkitID: "NotionToolkit", Safety: SafetyReadOnly})
	_ = reg.Add(ToolSpec{Name: "notion_get_page", ToolkitID: "NotionToolkit", Safety: SafetyReadOnly})
	_ = reg.Add(ToolSpec{Name: "sqlite_query", ToolkitID: "SQLiteToolkit", Safety: SafetyReadOnly})
	names := reg.NamesByToolkit("NotionToolkit")
	if len(names) != 2 || names[0] != "notion_get_page" || names[1] != "notion_search" {
		t.Fatalf("unexpected names: %#v", names)
	}
}

func TestRegistryRemoveByToolkit(t *testing.T) {
	reg := NewRegistry(nil)
	_ = reg.Add(ToolSpec{Name: "notion_search", ToolkitID: "NotionToolkit", Safety: SafetyReadOnly})
	_ = reg.Add(ToolSpec{Name: "sqlite_query", ToolkitID: "SQLiteToolkit", Safety: SafetyReadOnly})
	removed := reg.RemoveByToolkit("NotionToolkit")
	if len(removed) != 1 || removed[0] != "notion_search" {
		t.Fatalf("unexpected removed names: %#v", removed)
	}
	if _, ok := reg.Get("notion_search"); ok {
		t.Fatalf("expected notion tool to be gone")
	}
	if _, ok := reg.Get("sqlite_query"); !ok {
		t.Fatalf("expected unrelated tool to survive")
	}
}
