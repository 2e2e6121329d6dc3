package router

func schemaGetToolkits() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
}

func schemaRegisterToolkit() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"toolkit_name": map[string]any{
				"type":        "string",
				"description": "Name of the toolkit to register, as returned by get_toolkits.",
			},
			"api_keys": map[string]any{
				"type":        "object",
				"description": "Credential identifiers to values. Overrides the environment for this attempt.",
				"additionalProperties": map[string]any{
					"type": "string",
				},
			},
		},
		"required": []string{"toolkit_name"},
	}
}

func schemaGetToolkitInfo() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"toolkit_name": map[string]any{
				"type": "string",
			},
		},
		"required": []string{"toolkit_name"},
	}
}
