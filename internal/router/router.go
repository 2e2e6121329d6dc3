// Package router drives on-demand toolkit registration: it enumerates the
// compiled-in toolkits, resolves their credentials, and swaps their tools in
// and out of the live serving runtime.
package router

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"toolbridge/internal/audit"
	"toolbridge/internal/credentials"
	"toolbridge/internal/mcp"
)

// Descriptor is the client-facing summary of a toolkit.
type Descriptor struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Version      string   `json:"version"`
	RequiredKeys []string `json:"required_keys,omitempty"`
	MissingKeys  []string `json:"missing_keys,omitempty"`
	Status       string   `json:"status"`
	Tools        []string `json:"tools,omitempty"`
}

type toolkitState struct {
	status  string
	tools   []string
	toolkit mcp.Toolkit
}

// Router owns the toolkit lifecycle. It is bound to one serving runtime and
// one tool registry; all mutation goes through Register under a single lock.
type Router struct {
	mu     sync.Mutex
	server *sdkmcp.Server
	reg    *mcp.ToolRegistry
	base   mcp.ToolContext
	states map[string]*toolkitState
}

func New(server *sdkmcp.Server, reg *mcp.ToolRegistry, base mcp.ToolContext) *Router {
	return &Router{
		server: server,
		reg:    reg,
		base:   base,
		states: map[string]*toolkitState{},
	}
}

// Toolkits describes every compiled-in toolkit with its credential needs and
// current registration state. Missing keys are evaluated against the current
// environment so a client knows what it still has to supply.
func (r *Router) Toolkits() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := mcp.RegisteredToolkits()
	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, r.describeLocked(name))
	}
	return out
}

// Toolkit returns the descriptor for a single toolkit.
func (r *Router) Toolkit(name string) (Descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := mcp.ToolkitFactoryFor(name); !ok {
		return Descriptor{}, false
	}
	return r.describeLocked(name), true
}

func (r *Router) describeLocked(name string) Descriptor {
	desc := Descriptor{
		Name:         name,
		RequiredKeys: credentials.Required(name),
		Status:       StateUnregistered,
	}
	if factory, ok := mcp.ToolkitFactoryFor(name); ok {
		if tk := factory(); tk != nil {
			desc.Description = tk.Description()
			desc.Version = tk.Version()
		}
	}
	desc.MissingKeys = credentials.Set{}.Missing(desc.RequiredKeys)
	if state, ok := r.states[name]; ok {
		desc.Status = state.status
		desc.Tools = append([]string(nil), state.tools...)
	}
	return desc
}

// Register resolves credentials for the named toolkit, instantiates it, and
// publishes its tools to the serving runtime. Supplied apiKeys take
// precedence over the environment for this attempt only; on a repeat call
// the toolkit's previous tools are replaced, never duplicated.
func (r *Router) Register(ctx context.Context, name string, apiKeys map[string]string) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	factory, ok := mcp.ToolkitFactoryFor(name)
	if !ok {
		outcome := errorOutcome(name, fmt.Sprintf("unknown toolkit %q; available: %s", name, strings.Join(mcp.RegisteredToolkits(), ", ")))
		r.finishLocked(ctx, outcome)
		return outcome
	}

	set := credentials.NewSet(apiKeys)
	required := credentials.Required(name)
	if missing := set.Missing(required); len(missing) > 0 {
		r.stateLocked(name).status = StateMissingAPIKeys
		outcome := missingKeysOutcome(name, missing,
			fmt.Sprintf("set the missing keys in the environment or pass them as api_keys and call register_toolkit again: %s", strings.Join(missing, ", ")))
		r.finishLocked(ctx, outcome)
		return outcome
	}

	if r.base.Redactor != nil {
		for _, value := range set {
			r.base.Redactor.AddSecret(value)
		}
	}

	toolkit := factory()
	if toolkit == nil {
		outcome := errorOutcome(name, fmt.Sprintf("toolkit %q factory returned nil", name))
		r.finishLocked(ctx, outcome)
		return outcome
	}
	toolCtx := r.base.WithCredentials(set)
	if err := toolkit.Init(toolCtx); err != nil {
		outcome := errorOutcome(name, fmt.Sprintf("toolkit %q failed to initialize: %v", name, err))
		r.finishLocked(ctx, outcome)
		return outcome
	}

	staged, err := r.stageLocked(name, toolkit)
	if err != nil {
		outcome := errorOutcome(name, fmt.Sprintf("toolkit %q failed to register tools: %v", name, err))
		r.finishLocked(ctx, outcome)
		return outcome
	}

	previous := r.reg.RemoveByToolkit(name)
	if r.server != nil {
		mcp.RemoveSDKTools(r.server, previous)
	}
	for _, spec := range staged {
		if err := r.reg.Add(spec); err != nil {
			r.base.Log().Warn("skipping tool", "toolkit", name, "tool", spec.Name, "error", err)
		}
	}
	names := r.reg.NamesByToolkit(name)
	if r.server != nil {
		if err := mcp.AddSDKTools(r.server, r.reg, toolCtx, names); err != nil {
			outcome := errorOutcome(name, fmt.Sprintf("toolkit %q failed to publish tools: %v", name, err))
			r.finishLocked(ctx, outcome)
			return outcome
		}
	}

	state := r.stateLocked(name)
	if state.status != StateRegistered {
		r.base.Metrics.ToolkitActivated(ctx, name, 1)
	}
	state.status = StateRegistered
	state.tools = names
	state.toolkit = toolkit

	outcome := successOutcome(name, names, fmt.Sprintf("registered %d tools", len(names)))
	r.finishLocked(ctx, outcome)
	return outcome
}

// stageLocked collects the toolkit's tool specs into a staging registry.
// Individual bad specs are logged and skipped; only a Register error from
// the toolkit itself aborts.
func (r *Router) stageLocked(name string, toolkit mcp.Toolkit) ([]mcp.ToolSpec, error) {
	staging := &stagingRegistry{router: r, toolkit: name}
	if err := toolkit.Register(staging); err != nil {
		return nil, err
	}
	return staging.specs, nil
}

type stagingRegistry struct {
	router  *Router
	toolkit string
	specs   []mcp.ToolSpec
}

func (s *stagingRegistry) Add(spec mcp.ToolSpec) error {
	if spec.Name == "" || spec.Handler == nil {
		s.router.base.Log().Warn("skipping malformed tool spec", "toolkit", s.toolkit, "tool", spec.Name)
		return nil
	}
	if spec.ToolkitID == "" {
		spec.ToolkitID = s.toolkit
	}
	s.specs = append(s.specs, spec)
	return nil
}

func (s *stagingRegistry) List() []mcp.ToolInfo {
	infos := make([]mcp.ToolInfo, 0, len(s.specs))
	for _, spec := range s.specs {
		infos = append(infos, mcp.ToolInfo{Name: spec.Name, Description: spec.Description, InputSchema: spec.InputSchema})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func (s *stagingRegistry) Get(name string) (mcp.ToolSpec, bool) {
	for _, spec := range s.specs {
		if spec.Name == name {
			return spec, true
		}
	}
	return mcp.ToolSpec{}, false
}

func (r *Router) stateLocked(name string) *toolkitState {
	state, ok := r.states[name]
	if !ok {
		state = &toolkitState{status: StateUnregistered}
		r.states[name] = state
	}
	return state
}

func (r *Router) finishLocked(ctx context.Context, outcome Outcome) {
	r.base.Metrics.RecordRegistration(ctx, outcome.Toolkit, outcome.Status)
	if r.base.Audit != nil {
		event := audit.Event{
			Timestamp: time.Now().UTC(),
			Action:    audit.ActionRegister,
			Toolkit:   outcome.Toolkit,
			Outcome:   outcome.Status,
		}
		if outcome.Status == StatusError {
			event.Error = outcome.Message
			if r.base.Redactor != nil {
				event.Error = r.base.Redactor.RedactString(event.Error)
			}
		}
		r.base.Audit.Log(event)
	}
	switch outcome.Status {
	case StatusSuccess:
		r.base.Log().Info("toolkit registered", "toolkit", outcome.Toolkit, "tools", len(outcome.Tools))
	case StatusMissingAPIKeys:
		r.base.Log().Info("toolkit missing credentials", "toolkit", outcome.Toolkit, "missing", outcome.MissingKeys)
	default:
		r.base.Log().Warn("toolkit registration failed", "toolkit", outcome.Toolkit, "message", outcome.Message)
	}
}
