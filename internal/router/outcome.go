package router

// Registration outcome statuses. Every register attempt resolves to exactly
// one of these; callers branch on Status, never on message text.
const (
	StatusSuccess        = "success"
	StatusMissingAPIKeys = "missing_api_keys"
	StatusError          = "error"
)

// Toolkit lifecycle states reported by Toolkits().
const (
	StateUnregistered   = "unregistered"
	StateMissingAPIKeys = "missing_api_keys"
	StateRegistered     = "registered"
)

// Outcome is the structured result of a registration attempt.
type Outcome struct {
	Status      string   `json:"status"`
	Toolkit     string   `json:"toolkit"`
	Tools       []string `json:"tools,omitempty"`
	MissingKeys []string `json:"missing_keys,omitempty"`
	Message     string   `json:"message,omitempty"`
}

func successOutcome(toolkit string, tools []string, message string) Outcome {
	return Outcome{Status: StatusSuccess, Toolkit: toolkit, Tools: tools, Message: message}
}

func missingKeysOutcome(toolkit string, missing []string, message string) Outcome {
	return Outcome{Status: StatusMissingAPIKeys, Toolkit: toolkit, MissingKeys: missing, Message: message}
}

func errorOutcome(toolkit string, message string) Outcome {
	return Outcome{Status: StatusError, Toolkit: toolkit, Message: message}
}

// AsMap renders the outcome as the tool result payload.
func (o Outcome) AsMap() map[string]any {
	out := map[string]any{
		"status":  o.Status,
		"toolkit": o.Toolkit,
	}
	if len(o.Tools) > 0 {
		out["tools"] = o.Tools
	}
	if len(o.MissingKeys) > 0 {
		out["missing_keys"] = o.MissingKeys
	}
	if o.Message != "" {
		out["message"] = o.Message
	}
	return out
}
