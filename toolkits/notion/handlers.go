package notion

import (
	"context"
	"errors"
	"net/http"
	"time"

	"toolbridge/internal/mcp"
)

func (t *Toolkit) handleSearch(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	body := map[string]any{}
	if query := toString(req.Arguments["query"]); query != "" {
		body["query"] = query
	}
	if object := toString(req.Arguments["object"]); object != "" {
		body["filter"] = map[string]any{"property": "object", "value": object}
	}
	if size := toInt(req.Arguments["pageSize"]); size > 0 {
		body["page_size"] = size
	}
	resp, err := t.client.do(ctx, http.MethodPost, "/search", body)
	if err != nil {
		return errorResult(err), err
	}
	results, _ := resp["results"].([]any)
	return mcp.ToolResult{Data: map[string]any{
		"results": results,
		"count":   len(results),
		"hasMore": resp["has_more"],
	}}, nil
}

func (t *Toolkit) handleGetPage(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	pageID := toString(req.Arguments["pageId"])
	if pageID == "" {
		err := errors.New("pageId is required")
		return errorResult(err), err
	}
	page, err := t.ctx.Cache.GetOrFill("notion.page."+pageID, t.responseTTL(), func() (any, error) {
		return t.client.do(ctx, http.MethodGet, "/pages/"+pageID, nil)
	})
	if err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: page}, nil
}

func (t *Toolkit) handleQueryDatabase(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	databaseID := toString(req.Arguments["databaseId"])
	if databaseID == "" {
		err := errors.New("databaseId is required")
		return errorResult(err), err
	}
	body := map[string]any{}
	if size := toInt(req.Arguments["pageSize"]); size > 0 {
		body["page_size"] = size
	}
	if cursor := toString(req.Arguments["startCursor"]); cursor != "" {
		body["start_cursor"] = cursor
	}
	resp, err := t.client.do(ctx, http.MethodPost, "/databases/"+databaseID+"/query", body)
	if err != nil {
		return errorResult(err), err
	}
	results, _ := resp["results"].([]any)
	return mcp.ToolResult{Data: map[string]any{
		"results":    results,
		"count":      len(results),
		"hasMore":    resp["has_more"],
		"nextCursor": resp["next_cursor"],
	}}, nil
}

func (t *Toolkit) handleListUsers(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	users, err := t.ctx.Cache.GetOrFill("notion.users", t.responseTTL(), func() (any, error) {
		resp, err := t.client.do(ctx, http.MethodGet, "/users", nil)
		if err != nil {
			return nil, err
		}
		results, _ := resp["results"].([]any)
		return map[string]any{
			"users": results,
			"count": len(results),
		}, nil
	})
	if err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: users}, nil
}

func (t *Toolkit) responseTTL() time.Duration {
	if t.ctx.Config == nil {
		return time.Minute
	}
	return time.Duration(t.ctx.Config.Cache.ResponseTTLSeconds) * time.Second
}

func errorResult(err error) mcp.ToolResult {
	return mcp.ToolResult{Data: map[string]any{"error": err.Error()}}
}

func toString(value any) string {
	text, _ := value.(string)
	return text
}

func toInt(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
