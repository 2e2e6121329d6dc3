package router

import (
	"context"
	"errors"
	"testing"

	"toolbridge/internal/credentials"
	"toolbridge/internal/mcp"
)

type fakeToolkit struct {
	id       string
	initErr  error
	regErr   error
	specs    []mcp.ToolSpec
	gotCreds credentials.Set
}

func (f *fakeToolkit) ID() string          { return f.id }
func (f *fakeToolkit) Version() string     { return "0.1.0" }
func (f *fakeToolkit) Description() string { return "fake toolkit for tests" }

func (f *fakeToolkit) Init(ctx mcp.ToolkitContext) error {
	f.gotCreds = ctx.Credentials
	return f.initErr
}

func (f *fakeToolkit) Register(reg mcp.Registry) error {
	if f.regErr != nil {
		return f.regErr
	}
	for _, spec := range f.specs {
		if err := reg.Add(spec); err != nil {
			return err
		}
	}
	return nil
}

func noopHandler(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	return mcp.ToolResult{}, nil
}

// Factories are registered once per process; each test swaps the fake a
// factory returns through this table.
var fakeFactories = map[string]func() mcp.Toolkit{}

func ensureFactory(name string) {
	if _, ok := fakeFactories[name]; ok {
		return
	}
	fakeFactories[name] = func() mcp.Toolkit { return nil }
	mcp.MustRegisterToolkit(name, func() mcp.Toolkit {
		return fakeFactories[name]()
	})
}

func useFake(t *testing.T, name string, tk mcp.Toolkit) {
	t.Helper()
	ensureFactory(name)
	prev := fakeFactories[name]
	fakeFactories[name] = func() mcp.Toolkit { return tk }
	t.Cleanup(func() { fakeFactories[name] = prev })
}

func newTestRouter() *Router {
	reg := mcp.NewRegistry(nil)
	return New(nil, reg, mcp.ToolContext{Registry: reg})
}

func TestRegisterUnknownToolkit(t *testing.T) {
	r := newTestRouter()
	outcome := r.Register(context.Background(), "NoSuchToolkit", nil)
	if outcome.Status != StatusError {
		t.Fatalf("expected error status, got %s", outcome.Status)
	}
	if outcome.Toolkit != "NoSuchToolkit" {
		t.Fatalf("unexpected toolkit in outcome: %s", outcome.Toolkit)
	}
	if len(r.reg.Names()) != 0 {
		t.Fatalf("expected no tools registered")
	}
}

func TestRegisterMissingCredentials(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "")
	useFake(t, "NotionToolkit", &fakeToolkit{id: "NotionToolkit"})

	r := newTestRouter()
	outcome := r.Register(context.Background(), "NotionToolkit", nil)
	if outcome.Status != StatusMissingAPIKeys {
		t.Fatalf("expected missing_api_keys, got %s", outcome.Status)
	}
	if len(outcome.MissingKeys) != 1 || outcome.MissingKeys[0] != "NOTION_TOKEN" {
		t.Fatalf("unexpected missing keys: %#v", outcome.MissingKeys)
	}
	if len(r.reg.Names()) != 0 {
		t.Fatalf("expected no tools registered on missing credentials")
	}
	desc, ok := r.Toolkit("NotionToolkit")
	if !ok || desc.Status != StateMissingAPIKeys {
		t.Fatalf("expected missing_api_keys state, got %#v", desc)
	}
}

func TestRegisterWithEnvCredential(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "env-token-value")
	tk := &fakeToolkit{id: "NotionToolkit", specs: []mcp.ToolSpec{
		{Name: "notion_search", Safety: mcp.SafetyReadOnly, Handler: noopHandler},
	}}
	useFake(t, "NotionToolkit", tk)

	r := newTestRouter()
	outcome := r.Register(context.Background(), "NotionToolkit", nil)
	if outcome.Status != StatusSuccess {
		t.Fatalf("expected success, got %s: %s", outcome.Status, outcome.Message)
	}
	if len(outcome.Tools) != 1 || outcome.Tools[0] != "notion_search" {
		t.Fatalf("unexpected tools: %#v", outcome.Tools)
	}
	if got := tk.gotCreds.Get("NOTION_TOKEN"); got != "env-token-value" {
		t.Fatalf("expected toolkit to observe env credential, got %q", got)
	}
}

func TestRegisterExplicitKeysTakePrecedence(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "env-token-value")
	tk := &fakeToolkit{id: "NotionToolkit", specs: []mcp.ToolSpec{
		{Name: "notion_search", Safety: mcp.SafetyReadOnly, Handler: noopHandler},
	}}
	useFake(t, "NotionToolkit", tk)

	r := newTestRouter()
	outcome := r.Register(context.Background(), "NotionToolkit", map[string]string{"NOTION_TOKEN": "explicit-token"})
	if outcome.Status != StatusSuccess {
		t.Fatalf("expected success, got %s", outcome.Status)
	}
	if got := tk.gotCreds.Get("NOTION_TOKEN"); got != "explicit-token" {
		t.Fatalf("expected explicit credential to win, got %q", got)
	}
}

func TestRegisterInitFailure(t *testing.T) {
	useFake(t, "BrokenToolkit", &fakeToolkit{id: "BrokenToolkit", initErr: errors.New("dial failed")})

	r := newTestRouter()
	outcome := r.Register(context.Background(), "BrokenToolkit", nil)
	if outcome.Status != StatusError {
		t.Fatalf("expected error status, got %s", outcome.Status)
	}
	if len(r.reg.Names()) != 0 {
		t.Fatalf("expected no tools after init failure")
	}
	desc, _ := r.Toolkit("BrokenToolkit")
	if desc.Status != StateUnregistered {
		t.Fatalf("expected unregistered state after init failure, got %s", desc.Status)
	}
}

func TestRegisterToolkitRegisterFailure(t *testing.T) {
	useFake(t, "RegFailToolkit", &fakeToolkit{id: "RegFailToolkit", regErr: errors.New("bad wiring")})

	r := newTestRouter()
	outcome := r.Register(context.Background(), "RegFailToolkit", nil)
	if outcome.Status != StatusError {
		t.Fatalf("expected error status, got %s", outcome.Status)
	}
}

func TestRegisterSkipsMalformedSpecs(t *testing.T) {
	tk := &fakeToolkit{id: "PartialToolkit", specs: []mcp.ToolSpec{
		{Name: "good_tool", Safety: mcp.SafetyReadOnly, Handler: noopHandler},
		{Name: "", Handler: noopHandler},
		{Name: "no_handler"},
	}}
	useFake(t, "PartialToolkit", tk)

	r := newTestRouter()
	outcome := r.Register(context.Background(), "PartialToolkit", nil)
	if outcome.Status != StatusSuccess {
		t.Fatalf("expected success, got %s: %s", outcome.Status, outcome.Message)
	}
	if len(outcome.Tools) != 1 || outcome.Tools[0] != "good_tool" {
		t.Fatalf("expected only the well-formed tool, got %#v", outcome.Tools)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	tk := &fakeToolkit{id: "ScratchToolkit", specs: []mcp.ToolSpec{
		{Name: "scratch_query", Safety: mcp.SafetyReadOnly, Handler: noopHandler},
		{Name: "scratch_exec", Safety: mcp.SafetyReadOnly, Handler: noopHandler},
	}}
	useFake(t, "ScratchToolkit", tk)

	r := newTestRouter()
	first := r.Register(context.Background(), "ScratchToolkit", nil)
	if first.Status != StatusSuccess {
		t.Fatalf("first register: %s", first.Message)
	}
	second := r.Register(context.Background(), "ScratchToolkit", nil)
	if second.Status != StatusSuccess {
		t.Fatalf("second register: %s", second.Message)
	}
	if len(r.reg.NamesByToolkit("ScratchToolkit")) != 2 {
		t.Fatalf("expected 2 tools after re-registration, got %#v", r.reg.Names())
	}
}

func TestRegisterReplacesToolSet(t *testing.T) {
	first := &fakeToolkit{id: "MutableToolkit", specs: []mcp.ToolSpec{
		{Name: "old_tool", Safety: mcp.SafetyReadOnly, Handler: noopHandler},
	}}
	useFake(t, "MutableToolkit", first)

	r := newTestRouter()
	if out := r.Register(context.Background(), "MutableToolkit", nil); out.Status != StatusSuccess {
		t.Fatalf("first register: %s", out.Message)
	}

	second := &fakeToolkit{id: "MutableToolkit", specs: []mcp.ToolSpec{
		{Name: "new_tool", Safety: mcp.SafetyReadOnly, Handler: noopHandler},
	}}
	useFake(t, "MutableToolkit", second)
	if out := r.Register(context.Background(), "MutableToolkit", nil); out.Status != StatusSuccess {
		t.Fatalf("second register: %s", out.Message)
	}

	names := r.reg.NamesByToolkit("MutableToolkit")
	if len(names) != 1 || names[0] != "new_tool" {
		t.Fatalf("expected replacement tool set, got %#v", names)
	}
}

func TestRegisterNoCredentialsRequired(t *testing.T) {
	tk := &fakeToolkit{id: "PlainToolkit", specs: []mcp.ToolSpec{
		{Name: "plain_tool", Safety: mcp.SafetyReadOnly, Handler: noopHandler},
	}}
	useFake(t, "PlainToolkit", tk)

	r := newTestRouter()
	outcome := r.Register(context.Background(), "PlainToolkit", nil)
	if outcome.Status != StatusSuccess {
		t.Fatalf("expected success for credential-free toolkit, got %s", outcome.Status)
	}
}

func TestToolkitsDescriptors(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "")
	useFake(t, "NotionToolkit", &fakeToolkit{id: "NotionToolkit"})

	r := newTestRouter()
	descriptors := r.Toolkits()
	var found *Descriptor
	for i := range descriptors {
		if descriptors[i].Name == "NotionToolkit" {
			found = &descriptors[i]
		}
	}
	if found == nil {
		t.Fatalf("expected NotionToolkit descriptor, got %#v", descriptors)
	}
	if found.Status != StateUnregistered {
		t.Fatalf("expected unregistered status, got %s", found.Status)
	}
	if len(found.RequiredKeys) != 1 || found.RequiredKeys[0] != "NOTION_TOKEN" {
		t.Fatalf("unexpected required keys: %#v", found.RequiredKeys)
	}
	if len(found.MissingKeys) != 1 || found.MissingKeys[0] != "NOTION_TOKEN" {
		t.Fatalf("unexpected missing keys: %#v", found.MissingKeys)
	}
	if found.Description == "" || found.Version == "" {
		t.Fatalf("expected description and version from factory, got %#v", found)
	}
}

func TestToolkitUnknown(t *testing.T) {
	r := newTestRouter()
	if _, ok := r.Toolkit("NoSuchToolkit"); ok {
		t.Fatalf("expected miss for unknown toolkit")
	}
}
