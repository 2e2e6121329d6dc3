package mcp

import (
	"context"
	"errors"
	"time"
)

// ToolInvoker calls registered tools in-process, bypassing the wire
// transport. Meta tools use it to compose other tools.
type ToolInvoker struct {
	reg *ToolRegistry
	ctx ToolContext
}

func NewToolInvoker(reg *ToolRegistry, ctx ToolContext) *ToolInvoker {
	return &ToolInvoker{reg: reg, ctx: ctx}
}

func (i *ToolInvoker) Call(ctx context.Context, toolName string, args map[string]any) (ToolResult, error) {
	if i == nil || i.reg == nil {
		return ToolResult{Data: map[string]any{"error": "tool registry not available"}}, errors.New("tool registry not available")
	}
	spec, ok := i.reg.Get(toolName)
	if !ok {
		return ToolResult{Data: map[string]any{"error": "tool not found"}}, errors.New("tool not found")
	}
	execCtx, cancel := withToolTimeout(ctx, i.ctx.Config, spec)
	defer cancel()
	start := time.Now()
	result, toolErr := spec.Handler(execCtx, ToolRequest{Arguments: args, Context: i.ctx})
	outcome := "success"
	if toolErr != nil {
		outcome = "error"
	}
	i.ctx.Metrics.RecordToolCall(ctx, spec.Name, outcome, time.Since(start).Seconds())
	logToolCall(i.ctx, spec, outcome, toolErr)
	return result, toolErr
}
