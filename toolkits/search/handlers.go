package search

import (
	"context"
	"errors"

	"github.com/blevesearch/bleve/v2"

	"toolbridge/internal/mcp"
)

const defaultSearchLimit = 10

func (t *Toolkit) handleIndexDocument(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	id := toString(req.Arguments["id"])
	if id == "" {
		err := errors.New("id is required")
		return errorResult(err), err
	}
	document, ok := req.Arguments["document"].(map[string]any)
	if !ok || len(document) == 0 {
		err := errors.New("document must be a non-empty object")
		return errorResult(err), err
	}
	if err := t.index.Index(id, document); err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"id":      id,
		"indexed": true,
	}}, nil
}

func (t *Toolkit) handleSearchQuery(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	queryText := toString(req.Arguments["query"])
	if queryText == "" {
		err := errors.New("query is required")
		return errorResult(err), err
	}
	limit := toInt(req.Arguments["limit"])
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	searchReq := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(queryText), limit, 0, false)
	searchReq.Fields = []string{"*"}
	result, err := t.index.SearchInContext(ctx, searchReq)
	if err != nil {
		return errorResult(err), err
	}

	hits := make([]map[string]any, 0, len(result.Hits))
	for _, hit := range result.Hits {
		hits = append(hits, map[string]any{
			"id":     hit.ID,
			"score":  hit.Score,
			"fields": hit.Fields,
		})
	}
	return mcp.ToolResult{Data: map[string]any{
		"hits":   hits,
		"total":  result.Total,
		"tookMs": result.Took.Milliseconds(),
	}}, nil
}

func (t *Toolkit) handleCount(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	count, err := t.index.DocCount()
	if err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"count": count,
	}}, nil
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
