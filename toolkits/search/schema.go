package search

func schemaIndexDocument() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":       map[string]any{"type": "string"},
			"document": map[string]any{"type": "object", "description": "Arbitrary JSON document to index."},
		},
		"required": []string{"id", "document"},
	}
}

func schemaSearchQuery() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string", "description": "Bleve query string syntax."},
			"limit": map[string]any{"type": "integer", "description": "Maximum hits to return, default 10."},
		},
		"required": []string{"query"},
	}
}

func schemaCount() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}
