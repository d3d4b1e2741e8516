package csvfile

import "strings"

// Normalize maps heterogeneous header spellings onto the canonical field
// names the validation contract expects. Key matching is case-insensitive
// and whitespace-trimmed; keys without an alias survive under their
// lower-cased form. No key is ever dropped.
func Normalize(fields map[string]string) map[string]string {
	normalized := make(map[string]string, len(fields))
	for k, v := range fields {
		switch key := strings.ToLower(strings.TrimSpace(k)); key {
		case "estimatedvalue", "estimated_value", "value":
			normalized["estimatedValue"] = v
		case "qty", "quantity":
			normalized["quantity"] = v
		case "game", "tcg":
			normalized["category"] = v
		default:
			normalized[key] = v
		}
	}
	return normalized
}
