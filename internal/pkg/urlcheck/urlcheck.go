package urlcheck

import (
	"fmt"
	"net/url"
	"strings"
)

// Parse validates that rawURL is a well-formed absolute http(s) URL and
// returns its parsed form. No network call is made.
func Parse(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("empty URL")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("invalid URL: no host found")
	}

	return u, nil
}

// StripWWW removes a leading "www." from a hostname.
func StripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}
