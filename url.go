package gleaner

import (
	"net/url"
	"strings"
)

// Domain extracts the registrable host from rawURL for selector-cache and
// rate-limit keying. The host is lowercased and a leading "www." is
// stripped, so https://www.Example.com/a and https://example.com/b key the
// same domain. Returns "" when rawURL has no parseable host.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
