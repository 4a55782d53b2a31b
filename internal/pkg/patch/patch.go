package patch

import "strings"

// String dereferences an optional text field. Omitted or blank input takes
// the fallback; anything else is trimmed.
func String(ptr *string, fallback string) string {
	if ptr == nil {
		return fallback
	}
	if v := strings.TrimSpace(*ptr); v != "" {
		return v
	}
	return fallback
}
