package search

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a raw href scraped from a result page. It fixes
// protocol-relative links, inserts a missing scheme, and unwraps DuckDuckGo
// redirect URLs (the uddg query parameter carries the real target). An empty
// href normalizes to "". A wrapper whose uddg parameter cannot be decoded is
// returned as-is rather than failing the caller.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	if strings.Contains(raw, "duckduckgo.com/l/?") {
		if target := unwrapRedirect(raw); target != "" {
			return target
		}
	}

	return raw
}

// unwrapRedirect extracts the uddg target from a DuckDuckGo redirect URL.
// Returns "" when the wrapper is malformed or carries no target.
func unwrapRedirect(wrapper string) string {
	_, query, ok := strings.Cut(wrapper, "?")
	if !ok {
		return ""
	}
	params, err := url.ParseQuery(query)
	if err != nil {
		return ""
	}
	target := params.Get("uddg")
	if target == "" {
		return ""
	}
	// ParseQuery already URL-decodes the value once; a second decode handles
	// doubly-encoded targets and is a no-op otherwise.
	if decoded, err := url.QueryUnescape(target); err == nil && decoded != "" {
		target = decoded
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}
	return target
}
