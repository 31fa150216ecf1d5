package httpapi

import (
	"net/url"
	"strings"
)

// ensureScheme defaults bare hostnames to the secure scheme.
func ensureScheme(raw string) string {
	if !strings.Contains(raw, "://") {
		return "https://" + raw
	}
	return raw
}

// isValidHTTPURL reports whether raw (after scheme defaulting) is an http(s)
// URL with a host. Anything else is rejected before any probing happens.
func isValidHTTPURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(ensureScheme(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Hostname() != ""
}

// normalizeHTTPURL lowercases the host, strips default ports and a bare
// trailing slash so equivalent spellings probe identically.
func normalizeHTTPURL(raw string) string {
	u, err := url.Parse(ensureScheme(strings.TrimSpace(raw)))
	if err != nil {
		return raw
	}
	u.Host = strings.ToLower(u.Host)
	if (u.Scheme == "http" && u.Port() == "80") || (u.Scheme == "https" && u.Port() == "443") {
		u.Host = u.Hostname()
	}
	if u.Path == "/" {
		u.Path = ""
	}
	return u.String()
}
