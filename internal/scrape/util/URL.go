package util

import (
	"net/url"
	"strings"
)

// FixURL normalizes a scraped link to an absolute URL against the site's
// base origin. Protocol-relative links get https, rooted paths are resolved
// against base, everything else passes through unchanged.
func FixURL(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	if strings.HasPrefix(raw, "/") {
		b, err := url.Parse(base)
		if err != nil {
			return raw
		}
		ref, err := url.Parse(raw)
		if err != nil {
			return raw
		}
		return b.ResolveReference(ref).String()
	}
	return raw
}

// IsPseudoHref reports whether an href is a script no-op rather than a
// navigable link.
func IsPseudoHref(href string) bool {
	h := strings.TrimSpace(href)
	if h == "" || h == "#" || h == "/#" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(h), "javascript")
}
