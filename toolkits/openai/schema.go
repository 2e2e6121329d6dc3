package openai

func schemaChat() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt":      map[string]any{"type": "string"},
			"system":      map[string]any{"type": "string"},
			"model":       map[string]any{"type": "string", "description": "Defaults to " + defaultChatModel + "."},
			"temperature": map[string]any{"type": "number"},
			"maxTokens":   map[string]any{"type": "integer"},
		},
		"required": []string{"prompt"},
	}
}

func schemaEmbed() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"input": map[string]any{"type": "string"},
			"model": map[string]any{"type": "string", "description": "Defaults to text-embedding-3-small."},
		},
		"required": []string{"input"},
	}
}

func schemaListModels() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}
