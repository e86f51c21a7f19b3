package utils

import "strings"

// ParseQueryList handles both repeated and comma-separated query params.
// Example:
//
//	?specialty=Cardiology,Surgery   → ["Cardiology","Surgery"]
//	?specialty=Cardiology&specialty=Surgery  → ["Cardiology","Surgery"]
func ParseQueryList(q map[string][]string, key string) []string {
	values := q[key]

	if len(values) == 0 {
		return nil
	}

	if len(values) == 1 && strings.Contains(values[0], ",") {
		parts := strings.Split(values[0], ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}

	cleaned := make([]string, len(values))
	for i, v := range values {
		cleaned[i] = strings.TrimSpace(v)
	}
	return cleaned
}
