package analysis

import (
	"encoding/json"
	"strings"
)

// cleanJSON strips a surrounding ```json fence.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// extractObject returns the JSON object embedded in a model reply: the whole
// reply when it already is one, otherwise the text from the first '{' to the last '}'.
func extractObject(reply string) (json.RawMessage, bool) {
	clean := cleanJSON(reply)
	if strings.HasPrefix(clean, "{") && json.Valid([]byte(clean)) {
		return json.RawMessage(clean), true
	}
	i := strings.Index(clean, "{")
	j := strings.LastIndex(clean, "}")
	if i < 0 || j <= i {
		return nil, false
	}
	obj := clean[i : j+1]
	if !json.Valid([]byte(obj)) {
		return nil, false
	}
	return json.RawMessage(obj), true
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
