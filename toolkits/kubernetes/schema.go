package kubernetes

func schemaListPods() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"namespace":     map[string]any{"type": "string", "description": "Empty means all namespaces."},
			"labelSelector": map[string]any{"type": "string"},
			"fieldSelector": map[string]any{"type": "string"},
			"limit":         map[string]any{"type": "integer"},
		},
	}
}

func schemaGetResource() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"apiVersion": map[string]any{"type": "string"},
			"kind":       map[string]any{"type": "string"},
			"resource":   map[string]any{"type": "string"},
			"name":       map[string]any{"type": "string"},
			"namespace":  map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	}
}

func schemaPodLogs() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":         map[string]any{"type": "string"},
			"namespace":    map[string]any{"type": "string"},
			"container":    map[string]any{"type": "string"},
			"tailLines":    map[string]any{"type": "integer"},
			"sinceSeconds": map[string]any{"type": "integer"},
			"previous":     map[string]any{"type": "boolean"},
		},
		"required": []string{"name"},
	}
}

func schemaListEvents() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"namespace":     map[string]any{"type": "string"},
			"fieldSelector": map[string]any{"type": "string"},
			"limit":         map[string]any{"type": "integer"},
		},
	}
}

func schemaTopPods() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"namespace": map[string]any{"type": "string"},
		},
	}
}

func schemaListNodes() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"labelSelector": map[string]any{"type": "string"},
		},
	}
}
