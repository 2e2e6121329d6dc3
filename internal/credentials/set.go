package credentials

import "os"

// Set carries the explicit credentials supplied with a single registration
// attempt. Lookups fall back to the process environment, so a toolkit sees
// explicit values first and ambient ones second. The process environment is
// never written.
type Set map[string]string

// NewSet copies the non-empty entries of the supplied map. Empty values are
// dropped so that a blank key in a request does not shadow an environment
// variable.
func NewSet(values map[string]string) Set {
	set := Set{}
	for key, value := range values {
		if key == "" || value == "" {
			continue
		}
		set[key] = value
	}
	return set
}

// Lookup returns the value for a credential identifier, preferring the
// explicit set over the environment.
func (s Set) Lookup(key string) (string, bool) {
	if s != nil {
		if value, ok := s[key]; ok && value != "" {
			return value, true
		}
	}
	if value := os.Getenv(key); value != "" {
		return value, true
	}
	return "", false
}

// Get is Lookup without the presence flag.
func (s Set) Get(key string) string {
	value, _ := s.Lookup(key)
	return value
}

// Missing returns the required identifiers that resolve to nothing, in the
// order they were declared.
func (s Set) Missing(required []string) []string {
	var missing []string
	for _, key := range required {
		if _, ok := s.Lookup(key); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
