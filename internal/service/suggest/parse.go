package suggest

import (
	"encoding/json"
	"regexp"
	"strings"

	"taglens/internal/domain"
)

const (
	// Unstructured replies returned verbatim are bounded to this many runes
	verbatimLimit = 200

	unexpectedFormatMessage = "AI analysis completed but response format was unexpected"
)

var suggestionsFragmentRe = regexp.MustCompile(`(?s)"suggestions"\s*:\s*(\[.*?\])`)

// ParseSuggestions converts a raw model reply into a suggestion list.
// Attempts run in a fixed order, first success wins:
//
//  1. the whole reply is JSON with a "suggestions" array
//  2. the whole reply is JSON with an alternate "analysis" array whose loose
//     entries are mapped onto the suggestion shape
//  3. the whole reply is a bare JSON string, wrapped as one success entry
//  4. JSON parsing failed: strip code fences and parse a regex-extracted
//     "suggestions": [...] fragment on its own
//  5. cleaned non-empty text is returned verbatim, truncated
//  6. a fixed warning about the unexpected format
//
// The final stage cannot fail, so callers always get at least one entry
// (or a deliberately empty parsed array from stages 1, 2, or 4).
func ParseSuggestions(text string) []domain.AISuggestion {
	trimmed := strings.TrimSpace(text)

	var root interface{}
	if err := json.Unmarshal([]byte(trimmed), &root); err == nil {
		if out, ok := suggestionsFromRoot(root); ok {
			return out
		}
	} else if out, ok := extractFencedSuggestions(trimmed); ok {
		return out
	}

	if cleaned := stripCodeFences(trimmed); cleaned != "" {
		return []domain.AISuggestion{{
			Type:    domain.SuggestionTypeOptimization,
			Level:   domain.SuggestionLevelSuccess,
			Message: truncateWithEllipsis(cleaned, verbatimLimit),
		}}
	}

	return []domain.AISuggestion{{
		Type:    domain.SuggestionTypeOptimization,
		Level:   domain.SuggestionLevelWarning,
		Message: unexpectedFormatMessage,
	}}
}

// suggestionsFromRoot handles the fully-parsed reply shapes: the documented
// object form, the alternate "analysis" form, and a bare string.
func suggestionsFromRoot(root interface{}) ([]domain.AISuggestion, bool) {
	switch v := root.(type) {
	case map[string]interface{}:
		if items, ok := v["suggestions"].([]interface{}); ok {
			return coerceEntries(items), true
		}
		if items, ok := v["analysis"].([]interface{}); ok {
			return coerceEntries(items), true
		}
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []domain.AISuggestion{{
				Type:    domain.SuggestionTypeOptimization,
				Level:   domain.SuggestionLevelSuccess,
				Message: s,
			}}, true
		}
	}
	return nil, false
}

// extractFencedSuggestions recovers a suggestions array from a reply that is
// not valid JSON as a whole, typically because the model wrapped it in
// markdown fences or surrounded it with prose.
func extractFencedSuggestions(text string) ([]domain.AISuggestion, bool) {
	cleaned := stripCodeFences(text)

	match := suggestionsFragmentRe.FindStringSubmatch(cleaned)
	if match == nil {
		return nil, false
	}

	var items []interface{}
	if err := json.Unmarshal([]byte(match[1]), &items); err != nil {
		return nil, false
	}

	return coerceEntries(items), true
}

// coerceEntries maps loose JSON objects onto the suggestion shape. Entries
// without any usable message are skipped; invalid type/level values coerce
// to optimization/warning. An empty result is valid ("nothing to suggest").
func coerceEntries(items []interface{}) []domain.AISuggestion {
	suggestions := make([]domain.AISuggestion, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		message := stringField(entry, "message")
		if message == "" {
			message = stringField(entry, "text")
		}
		if message == "" {
			continue
		}

		typ := stringField(entry, "type")
		if typ != domain.SuggestionTypeOptimization && typ != domain.SuggestionTypeImprovement {
			typ = domain.SuggestionTypeOptimization
		}

		level := stringField(entry, "level")
		switch level {
		case domain.SuggestionLevelSuccess, domain.SuggestionLevelWarning, domain.SuggestionLevelError:
		default:
			level = domain.SuggestionLevelWarning
		}

		suggestions = append(suggestions, domain.AISuggestion{
			Type:       typ,
			Level:      level,
			Message:    message,
			Suggestion: stringField(entry, "suggestion"),
		})
	}
	return suggestions
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// stripCodeFences removes markdown code-fence markers anywhere in the text.
func stripCodeFences(text string) string {
	s := strings.ReplaceAll(text, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func truncateWithEllipsis(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
