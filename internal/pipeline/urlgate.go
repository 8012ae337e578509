package pipeline

import (
	"net/url"
	"strings"
)

// allowedSchemes lists the only URL schemes that may be written into an href.
var allowedSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
}

// SanitizeURL validates a candidate link target.
// Returns the trimmed candidate and true when its scheme is http, https, or
// mailto (case-insensitive). Empty, scheme-less, unparsable, and
// script-executing candidates (javascript:, data:, vbscript:) are rejected.
func SanitizeURL(candidate string) (string, bool) {
	s := strings.TrimSpace(candidate)
	if s == "" {
		return "", false
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}

	scheme := strings.ToLower(u.Scheme)
	if !allowedSchemes[scheme] {
		return "", false
	}

	switch scheme {
	case "http", "https":
		if u.Host == "" {
			return "", false
		}
	case "mailto":
		if u.Opaque == "" && u.Path == "" {
			return "", false
		}
	}

	return s, true
}

// HasLinkScheme reports whether s already carries an http, https, or mailto
// scheme and therefore needs no prefix before being sanitized.
func HasLinkScheme(s string) bool {
	s = strings.TrimSpace(s)
	idx := strings.IndexByte(s, ':')
	if idx <= 0 {
		return false
	}
	return allowedSchemes[strings.ToLower(s[:idx])]
}
