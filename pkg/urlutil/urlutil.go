// Package urlutil sanitizes untrusted URLs supplied by the remote API
// before they are rendered as outbound links.
package urlutil

import "strings"

// Schemes that must never be emitted as links.
var blockedSchemes = []string{"javascript:", "data:"}

// NormalizeExternalURL trims and normalizes a raw URL string.
// Empty input and blocked schemes yield "". Strings already carrying an
// http:// or https:// scheme pass through unchanged; anything else is
// prefixed with https://.
func NormalizeExternalURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	lower := strings.ToLower(s)
	for _, scheme := range blockedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}

	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return s
	}

	return "https://" + s
}
