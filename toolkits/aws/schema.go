package aws

func schemaRegionOnly() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"region": map[string]any{"type": "string"},
		},
	}
}

func schemaListWithLimit() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"region": map[string]any{"type": "string"},
			"limit":  map[string]any{"type": "integer"},
		},
	}
}

func schemaListEC2Instances() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"region": map[string]any{"type": "string"},
			"state":  map[string]any{"type": "string", "description": "Filter by instance state, e.g. running."},
			"limit":  map[string]any{"type": "integer"},
		},
	}
}
