package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"toolbridge/internal/mcp"
)

const defaultQueryLimit = 100

var readOnlyPrefixes = []string{"select", "with", "show", "explain"}

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
	sql := toString(req.Arguments["sql"])
	if sql == "" {
		err := errors.New("sql is required")
		return errorResult(err), err
	}
	if !isReadOnlyStatement(sql) {
		err := fmt.Errorf("pg_query only accepts read-only statements, use pg_exec instead")
		return errorResult(err), err
	}
	limit := toInt(req.Arguments["limit"])
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	rows, err := t.pool.Query(ctx, sql)
	if err != nil {
		return errorResult(err), err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name
	}

	out := make([]map[string]any, 0, limit)
	truncated := false
	for rows.Next() {
		if len(out) >= limit {
			truncated = true
			break
		}
		values, err := rows.Values()
		if err != nil {
			return errorResult(err), err
		}
		row := make(map[string]any, len(columns))
		for i, column := range columns {
			row[column] = values[i]
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
	sql := toString(req.Arguments["sql"])
	if sql == "" {
		err := errors.New("sql is required")
		return errorResult(err), err
	}
	tag, err := t.pool.Exec(ctx, sql)
	if err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"command":      tag.String(),
		"rowsAffected": tag.RowsAffected(),
	}}, nil
}

func (t *Toolkit) handleListTables(ctx context.Context, req mcp.ToolRequest) (mcp.ToolResult, error) {
	schema := toString(req.Arguments["schema"])
	if schema == "" {
		schema = "public"
	}
	rows, err := t.pool.Query(ctx, `
		SELECT c.relname, COALESCE(c.reltuples, 0)::bigint
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relkind = 'r'
		ORDER BY c.relname`, schema)
	if err != nil {
		return errorResult(err), err
	}
	defer rows.Close()

	tables := make([]map[string]any, 0)
	for rows.Next() {
		var name string
		var approxRows int64
		if err := rows.Scan(&name, &approxRows); err != nil {
			return errorResult(err), err
		}
		tables = append(tables, map[string]any{
			"name":       name,
			"approxRows": approxRows,
		})
	}
	if err := rows.Err(); err != nil {
		return errorResult(err), err
	}
	return mcp.ToolResult{Data: map[string]any{
		"schema": schema,
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
