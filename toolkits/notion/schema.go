package notion

func schemaSearch() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query":    map[string]any{"type": "string"},
			"object":   map[string]any{"type": "string", "enum": []string{"page", "database"}},
			"pageSize": map[string]any{"type": "integer"},
		},
	}
}

func schemaGetPage() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pageId": map[string]any{"type": "string"},
		},
		"required": []string{"pageId"},
	}
}

func schemaQueryDatabase() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"databaseId":  map[string]any{"type": "string"},
			"pageSize":    map[string]any{"type": "integer"},
			"startCursor": map[string]any{"type": "string"},
		},
		"required": []string{"databaseId"},
	}
}

func schemaListUsers() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}
