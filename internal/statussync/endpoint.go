package statussync

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported page scheme")
	ErrMissingHost       = errors.New("page url has no host")
)

// EndpointResolver produces the live channel URL each time a connection is attempted.
type EndpointResolver func() (string, error)

// ResolveEndpoint maps a page URL to the channel URL on the same host.
// https pages must use wss and http pages ws; browsers and proxies reject mixed schemes.
func ResolveEndpoint(pageURL, path string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return "", fmt.Errorf("parse page url %q: %w", pageURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "https", "wss":
		u.Scheme = "wss"
	case "http", "ws":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingHost, pageURL)
	}
	if path != "" {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		u.Path = path
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// StaticEndpoint resolves against a fixed page URL.
func StaticEndpoint(pageURL, path string) EndpointResolver {
	return func() (string, error) {
		return ResolveEndpoint(pageURL, path)
	}
}
