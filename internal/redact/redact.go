package redact

import (
	"regexp"
	"strings"
	"sync"
)

var (
	// Token-ish sequences (API keys, JWT fragments, etc.).
	tokenPattern = regexp.MustCompile(`(?i)([a-z0-9_\-]{20,}|eyJ[a-zA-Z0-9_\-]+\.[a-zA-Z0-9_\-]+\.[a-zA-Z0-9_\-]+)`)
)

// Redactor scrubs token-shaped strings plus any credential values explicitly
// registered with it, so secrets supplied at toolkit registration time never
// appear in tool output or audit logs.
type Redactor struct {
	mu      sync.RWMutex
	secrets []string
}

func New() *Redactor {
	return &Redactor{}
}

// AddSecret registers a literal value to scrub. Short values are ignored;
// redacting one- or two-character fragments mangles ordinary text.
func (r *Redactor) AddSecret(value string) {
	if len(value) < 4 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.secrets {
		if existing == value {
			return
		}
	}
	r.secrets = append(r.secrets, value)
}

func (r *Redactor) RedactString(input string) string {
	r.mu.RLock()
	for _, secret := range r.secrets {
		input = strings.ReplaceAll(input, secret, "[REDACTED]")
	}
	r.mu.RUnlock()
	return tokenPattern.ReplaceAllString(input, "[REDACTED]")
}

func (r *Redactor) RedactMap(input map[string]any) map[string]any {
	output := map[string]any{}
	for k, v := range input {
		output[k] = r.RedactValue(v)
	}
	return output
}

func (r *Redactor) RedactValue(input any) any {
	switch v := input.(type) {
	case string:
		return r.RedactString(v)
	case map[string]any:
		return r.RedactMap(v)
	case []any:
		redacted := make([]any, 0, len(v))
		for _, item := range v {
			redacted = append(redacted, r.RedactValue(item))
		}
		return redacted
	default:
		return input
	}
}
