package mcp

import (
	"errors"
	"sort"

	"toolbridge/internal/config"
)

type Registry interface {
	Add(spec ToolSpec) error
	List() []ToolInfo
	Get(name string) (ToolSpec, bool)
}

// ToolRegistry is the live tool table. Adding a spec under an existing name
// replaces the prior entry, which is what makes toolkit re-registration
// idempotent with respect to tool names.
type ToolRegistry struct {
	cfg   *config.Config
	tools map[string]ToolSpec
}

func NewRegistry(cfg *config.Config) *ToolRegistry {
	return &ToolRegistry{cfg: cfg, tools: map[string]ToolSpec{}}
}

func (r *ToolRegistry) Add(spec ToolSpec) error {
	if spec.Name == "" {
		return errors.New("tool name required")
	}
	if !r.allowedBySafety(spec) {
		return nil
	}
	r.tools[spec.Name] = spec
	return nil
}

func (r *ToolRegistry) List() []ToolInfo {
	infos := make([]ToolInfo, 0, len(r.tools))
	for _, tool := range r.tools {
		infos = append(infos, ToolInfo{Name: tool.Name, Description: tool.Description, InputSchema: tool.InputSchema})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

func (r *ToolRegistry) Get(name string) (ToolSpec, bool) {
	spec, ok := r.tools[name]
	return spec, ok
}

func (r *ToolRegistry) Specs() []ToolSpec {
	specs := make([]ToolSpec, 0, len(r.tools))
	for _, tool := range r.tools {
		specs = append(specs, tool)
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Name < specs[j].Name
	})
	return specs
}

func (r *ToolRegistry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NamesByToolkit returns the registered tool names owned by a toolkit.
func (r *ToolRegistry) NamesByToolkit(toolkitID string) []string {
	var names []string
	for name, tool := range r.tools {
		if tool.ToolkitID == toolkitID {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// RemoveByToolkit drops every tool owned by a toolkit and returns the removed
// names. Used when a toolkit is re-registered.
func (r *ToolRegistry) RemoveByToolkit(toolkitID string) []string {
	names := r.NamesByToolkit(toolkitID)
	for _, name := range names {
		delete(r.tools, name)
	}
	return names
}

func (r *ToolRegistry) allowedBySafety(spec ToolSpec) bool {
	if r.cfg == nil {
		return true
	}
	if r.cfg.ReadOnly {
		return spec.Safety == SafetyReadOnly
	}
	if r.cfg.DisableDestructive {
		if spec.Safety == SafetyDestructive || spec.Safety == SafetyRiskyWrite {
			for _, allow := range r.cfg.Safety.AllowDestructiveTools {
				if allow == spec.Name {
					return true
				}
			}
			return false
		}
	}
	return true
}
