package helm

func schemaListReleases() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"namespace":     map[string]any{"type": "string"},
			"allNamespaces": map[string]any{"type": "boolean"},
			"filter":        map[string]any{"type": "string", "description": "Regular expression applied to release names."},
			"limit":         map[string]any{"type": "integer"},
		},
	}
}

func schemaReleaseStatus() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"release":   map[string]any{"type": "string"},
			"namespace": map[string]any{"type": "string"},
		},
		"required": []string{"release", "namespace"},
	}
}

func schemaReleaseHistory() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"release":   map[string]any{"type": "string"},
			"namespace": map[string]any{"type": "string"},
			"limit":     map[string]any{"type": "integer"},
		},
		"required": []string{"release", "namespace"},
	}
}
