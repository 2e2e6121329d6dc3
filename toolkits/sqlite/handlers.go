package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"toolbridge/internal/mcp"
)

const defaultQueryLimit = 100

var readOnlyPrefixes = []string{"select", "with", "explain", "pragma"}

func isReadOnlyStatement(sql string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(sql))
	for _, prefix := range readOnlyPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func (t *Toolkit) handleQuery(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	query := toString(req.Arguments["sql"])
	if query == "" {
		err := errors.New("sql is required")
		return errorResult(err), err
	}
	if !isReadOnlyStatement(query) {
		err := fmt.Errorf("sqlite_query only accepts read-only statements, use sqlite_exec instead")
		return errorResult(err), err
	}
	limit := toInt(req.Arguments["limit"])
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return errorResult(err), err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return errorResult(err), err
	}

	out := make([]map[string]any, 0, limit)
	truncated := false
	for rows.Next() {
		if len(out) >= limit {
			truncated = true
			break
		}
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return errorResult(err), err
		}
		row := make(map[string]any, len(columns))
		for i, column := range columns {
			if raw, ok := values[i].([]byte); ok {
				row[column] = string(raw)
			} else {
				row[column] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"columns":   columns,
		"rows":      out,
		"count":     len(out),
		"truncated": truncated,
	}}, nil
}

func (t *Toolkit) handleExec(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	statement := toString(req.Arguments["sql"])
	if statement == "" {
		err := errors.New("sql is required")
		return errorResult(err), err
	}
	result, err := t.db.ExecContext(ctx, statement)
	if err != nil {
		return errorResult(err), err
	}
	affected, _ := result.RowsAffected()
	return mcp.ToolResult{Data: map[string]any{
		"rowsAffected": affected,
	}}, nil
}

func (t *Toolkit) handleListTables(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT name, sql FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return errorResult(err), err
	}
	defer rows.Close()

	tables := make([]map[string]any, 0)
	for rows.Next() {
		var name, ddl string
		if err := rows.Scan(&name, &ddl); err != nil {
			return errorResult(err), err
		}
		tables = append(tables, map[string]any{
			"name":   name,
			"schema": ddl,
		})
	}
	if err := rows.Err(); err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"tables": tables,
		"count":  len(tables),
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
