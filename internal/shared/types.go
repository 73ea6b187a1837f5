package shared

import "strings"

// ParseBool coerces the loose boolean encodings that show up in query
// params and request bodies ("true", "t", "1", "yes", "on", any case)
// into a real bool. Anything unrecognized returns the fallback.
func ParseBool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "t", "1", "yes", "y", "on":
		return true
	case "false", "f", "0", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
