package utils

import (
	"net/url"
	"strings"
)

// NormalizeURL produces the canonical form of a URL used as a
// deduplication key: trimmed, scheme and host lowercased, trailing
// slash stripped. Unparseable input falls back to a lowercased trim.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimSuffix(strings.ToLower(trimmed), "/")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String()
}

// EnsureScheme prefixes https:// onto bare www. hosts and dotted names
// so they can be fetched. Input that already carries a scheme is
// returned unchanged; input with no scheme and no dot is returned
// unchanged too, for the caller to reject.
func EnsureScheme(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}

	if strings.HasPrefix(trimmed, "www.") || strings.Contains(trimmed, ".") {
		return "https://" + trimmed
	}

	return trimmed
}

// IsAbsoluteURL reports whether raw parses as a URL with both a scheme
// and a host.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))

	return err == nil && u.Scheme != "" && u.Host != ""
}
