package router

import (
	"context"
	"errors"
	"fmt"

	"toolbridge/internal/mcp"
)

const metaToolkitID = "router"

// MetaToolSpecs returns the always-available meta tools that let an MCP
// client discover and activate toolkits at runtime.
func MetaToolSpecs(r *Router) []mcp.ToolSpec {
	return []mcp.ToolSpec{
		{
			Name:        "get_toolkits",
			Description: "List available toolkits with their required credential keys, registration status, and tools.",
			ToolkitID:   metaToolkitID,
			InputSchema: schemaGetToolkits(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     r.handleGetToolkits,
		},
		{
			// Classified read-only so it survives read_only mode: the tools it
			// publishes still pass through the registry's safety gate.
			Name:        "register_toolkit",
			Description: "Register a toolkit's tools with the server, optionally supplying credentials.",
			ToolkitID:   metaToolkitID,
			InputSchema: schemaRegisterToolkit(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     r.handleRegisterToolkit,
		},
		{
			Name:        "get_toolkit_info",
			Description: "Describe a single toolkit: credentials, status, and registered tools.",
			ToolkitID:   metaToolkitID,
			InputSchema: schemaGetToolkitInfo(),
			Safety:      mcp.SafetyReadOnly,
			Handler:     r.handleGetToolkitInfo,
		},
	}
}

func (r *Router) handleGetToolkits(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	descriptors := r.Toolkits()
	return mcp.ToolResult{Data: map[string]any{
		"toolkits": descriptors,
		"count":    len(descriptors),
	}}, nil
}

func (r *Router) handleRegisterToolkit(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	name, _ := req.Arguments["toolkit_name"].(string)
	if name == "" {
		return mcp.ToolResult{}, errors.New("toolkit_name is required")
	}
	apiKeys, err := stringMap(req.Arguments["api_keys"])
	if err != nil {
		return mcp.ToolResult{}, err
	}
	outcome := r.Register(ctx, name, apiKeys)
	return mcp.ToolResult{Data: outcome.AsMap()}, nil
}

func (r *Router) handleGetToolkitInfo(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	name, _ := req.Arguments["toolkit_name"].(string)
	if name == "" {
		return mcp.ToolResult{}, errors.New("toolkit_name is required")
	}
	desc, ok := r.Toolkit(name)
	if !ok {
		return mcp.ToolResult{Data: map[string]any{"toolkit": name}}, fmt.Errorf("unknown toolkit %q", name)
	}
	return mcp.ToolResult{Data: desc}, nil
}

func stringMap(value any) (map[string]string, error) {
	if value == nil {
		return nil, nil
	}
	raw, ok := value.(map[string]any)
	if !ok {
		return nil, errors.New("api_keys must be an object of string values")
	}
	out := make(map[string]string, len(raw))
	for key, item := range raw {
		text, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("api_keys[%q] must be a string", key)
		}
		out[key] = text
	}
	return out, nil
}
