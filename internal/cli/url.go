package cli

import (
	"fmt"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wesleyorama2/parry/header"
	"github.com/wesleyorama2/parry/service"
)

// parseURL splits a URL into base URL and path
func parseURL(fullURL string) (string, string) {
	// Add scheme if missing
	if !strings.HasPrefix(fullURL, "http://") && !strings.HasPrefix(fullURL, "https://") {
		fullURL = "http://" + fullURL
	}

	parsedURL, err := url.Parse(fullURL)
	if err != nil {
		return fullURL, "/"
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	if parsedURL.User != nil {
		baseURL = fmt.Sprintf("%s://%s@%s", parsedURL.Scheme, parsedURL.User.String(), parsedURL.Host)
	}

	path := parsedURL.Path
	if path == "" {
		path = "/"
	}

	// Include query parameters in the path
	if parsedURL.RawQuery != "" {
		path = path + "?" + parsedURL.RawQuery
	}

	// Include fragment in the path
	if parsedURL.Fragment != "" {
		path = path + "#" + parsedURL.Fragment
	}

	return baseURL, path
}

// headerMap parses repeated "Key: Value" flags into a typed header map.
func headerMap(flags []string) header.Header {
	h := header.Header{}
	for _, flag := range flags {
		parts := strings.SplitN(flag, ":", 2)
		if len(parts) == 2 {
			h.Set(header.Name(strings.TrimSpace(parts[0])), strings.TrimSpace(parts[1]))
		}
	}
	return h
}

// newService builds a service for one CLI invocation.
func newService(baseURL string, headers header.Header, timeout time.Duration, log zerolog.Logger) *service.Service {
	return service.New(service.Config{
		BaseURL: baseURL,
		Headers: headers,
		Timeout: timeout,
	}, service.WithLogger(log))
}

// defaultCacheDir returns the per-user cache root, honoring PARRY_CACHE_DIR.
func defaultCacheDir() (string, error) {
	if dir := os.Getenv("PARRY_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	usr, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(usr.HomeDir, ".parry_cache"), nil
}
