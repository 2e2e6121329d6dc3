package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sdkjsonrpc "github.com/modelcontextprotocol/go-sdk/jsonrpc"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"toolbridge/internal/audit"
)

// RegisterSDKTools adds every tool currently in the registry to the serving
// runtime. Used at startup for the meta tools and any preloaded toolkits.
func RegisterSDKTools(server *sdkmcp.Server, reg *ToolRegistry, ctx ToolContext) ([]string, error) {
	if server == nil || reg == nil {
		return nil, fmt.Errorf("server and registry are required")
	}
	for _, spec := range reg.Specs() {
		addSDKTool(server, spec, ctx)
	}
	return reg.Names(), nil
}

// AddSDKTools adds the named registry tools to a live server. Adding a name
// that is already served replaces the prior handler, so re-registering a
// toolkit swaps its tools in place.
func AddSDKTools(server *sdkmcp.Server, reg *ToolRegistry, ctx ToolContext, names []string) error {
	if server == nil || reg == nil {
		return fmt.Errorf("server and registry are required")
	}
	for _, name := range names {
		spec, ok := reg.Get(name)
		if !ok {
			return fmt.Errorf("tool %q not in registry", name)
		}
		addSDKTool(server, spec, ctx)
	}
	return nil
}

// RemoveSDKTools drops served tools by name. Unknown names are ignored so
// teardown stays idempotent.
func RemoveSDKTools(server *sdkmcp.Server, names []string) {
	if server == nil || len(names) == 0 {
		return
	}
	server.RemoveTools(names...)
}

func addSDKTool(server *sdkmcp.Server, spec ToolSpec, ctx ToolContext) {
	schema := spec.InputSchema
	if schema == nil {
		schema = map[string]any{"type": "object"}
	}
	tool := &sdkmcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		InputSchema: schema,
	}
	server.AddTool(tool, toolHandler(spec, ctx))
}

func toolHandler(spec ToolSpec, ctx ToolContext) sdkmcp.ToolHandler {
	return func(callCtx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		args := map[string]any{}
		if req != nil && req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return nil, &sdkjsonrpc.Error{Code: sdkjsonrpc.CodeInvalidParams, Message: fmt.Sprintf("invalid arguments: %v", err)}
			}
		}

		execCtx, cancel := withToolTimeout(callCtx, ctx.Config, spec)
		start := time.Now()
		result, toolErr := spec.Handler(execCtx, ToolRequest{Arguments: args, Context: ctx})
		cancel()
		outcome := "success"
		if toolErr != nil {
			outcome = "error"
		}
		ctx.Metrics.RecordToolCall(callCtx, spec.Name, outcome, time.Since(start).Seconds())
		logToolCall(ctx, spec, outcome, toolErr)

		return buildCallToolResult(ctx, result, toolErr), nil
	}
}

func buildCallToolResult(ctx ToolContext, result ToolResult, toolErr error) *sdkmcp.CallToolResult {
	res := &sdkmcp.CallToolResult{}
	if toolErr != nil {
		res.IsError = true
		res.StructuredContent = BuildErrorEnvelope(toolErr, result.Data)
		text := toolErr.Error()
		if ctx.Redactor != nil {
			text = ctx.Redactor.RedactString(text)
		}
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: text}}
		return res
	}

	if result.Data != nil {
		res.StructuredContent = result.Data
		dataJSON, err := json.Marshal(result.Data)
		if err != nil {
			res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: fmt.Sprintf("%v", result.Data)}}
		} else {
			res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: string(dataJSON)}}
		}
	} else {
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: "{}"}}
	}
	return res
}

func logToolCall(ctx ToolContext, spec ToolSpec, outcome string, err error) {
	if ctx.Audit == nil {
		return
	}
	event := audit.Event{
		Timestamp: time.Now().UTC(),
		Action:    audit.ActionCall,
		Toolkit:   spec.ToolkitID,
		Tool:      spec.Name,
		Outcome:   outcome,
	}
	if err != nil {
		msg := err.Error()
		if ctx.Redactor != nil {
			msg = ctx.Redactor.RedactString(msg)
		}
		event.Error = msg
	}
	ctx.Audit.Log(event)
}
