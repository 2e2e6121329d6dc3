package credentials

import "strings"

// manifest maps a toolkit name to the credential identifiers it needs before
// it can be instantiated. Toolkits absent from the table require none.
var manifest = map[string][]string{
	"AWSToolkit":      {"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY"},
	"NotionToolkit":   {"NOTION_TOKEN"},
	"OpenAIToolkit":   {"OPENAI_API_KEY"},
	"PostgresToolkit": {"DATABASE_URL"},
}

// Required returns the declared credential identifiers for a toolkit, in
// declaration order. Names not present in the manifest fall back to a
// name-based guess so that a toolkit added without a manifest entry still
// prompts for the obvious key.
func Required(toolkit string) []string {
	if keys, ok := manifest[toolkit]; ok {
		out := make([]string, len(keys))
		copy(out, keys)
		return out
	}
	return guessRequired(toolkit)
}

// Declared reports whether the toolkit has an explicit manifest entry.
func Declared(toolkit string) bool {
	_, ok := manifest[toolkit]
	return ok
}

func guessRequired(toolkit string) []string {
	name := strings.ToLower(toolkit)
	switch {
	case strings.Contains(name, "notion"):
		return []string{"NOTION_TOKEN"}
	case strings.Contains(name, "openai"):
		return []string{"OPENAI_API_KEY"}
	case strings.Contains(name, "google"), strings.Contains(name, "gmail"):
		return []string{"GOOGLE_API_KEY"}
	}
	return nil
}
