package postgres

func schemaQuery() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sql":   map[string]any{"type": "string", "description": "SELECT, WITH, SHOW, or EXPLAIN statement."},
			"limit": map[string]any{"type": "integer", "description": "Maximum rows to return, default 100."},
		},
		"required": []string{"sql"},
	}
}

func schemaExec() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sql": map[string]any{"type": "string"},
		},
		"required": []string{"sql"},
	}
}

func schemaListTables() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"schema": map[string]any{"type": "string", "description": "Defaults to public."},
		},
	}
}
