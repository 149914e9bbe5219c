package extraction

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/cardpulse/internal/llm"
	"github.com/jonathan/cardpulse/internal/types"
)

// Normalize sanitizes a raw extraction response into the strict seven-field
// set. Providers wrap JSON in code fences or prose; both are stripped before
// parsing. Missing, null, or non-string field values become empty strings,
// unknown fields are dropped. The only failure mode is a ParseError when no
// JSON object can be recovered at all.
func Normalize(raw string) (types.CardFields, error) {
	candidate := extractJSONCandidate(raw)

	var loose map[string]any
	if err := json.Unmarshal([]byte(candidate), &loose); err != nil {
		return types.CardFields{}, &ParseError{
			Message: "response is not a JSON object",
			Cause:   err,
		}
	}

	return types.CardFields{
		Name:        stringField(loose, "name"),
		CompanyName: stringField(loose, "companyName"),
		JobTitle:    stringField(loose, "jobTitle"),
		Phone:       stringField(loose, "phone"),
		Email:       stringField(loose, "email"),
		Website:     stringField(loose, "website"),
		Address:     stringField(loose, "address"),
	}, nil
}

// extractJSONCandidate trims the response, strips code fences, and narrows
// to the first-{ / last-} substring to defend against providers that wrap
// the JSON object in explanatory prose. When no braces are found the whole
// trimmed string goes to the parser so it can report the failure.
func extractJSONCandidate(raw string) string {
	text := llm.CleanJSONBlock(raw)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

// stringField pulls a field from the loose payload, trimming strings and
// substituting an empty string for anything else.
func stringField(loose map[string]any, key string) string {
	if v, ok := loose[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
