// Package deckclient provides the main entry point for creating Tooldeck API clients
package deckclient

import (
	"fmt"
	"strings"

	"github.com/tooldeck-io/tooldeck-go/internal/client"
	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// New creates a new Tooldeck API client. The base URL is normalized before
// use: a trailing slash is trimmed and "https://" is assumed when no scheme
// is given. Construction fails fast with a configuration error when the API
// key or base URL is missing; nothing is sent over the network until the
// first call.
func New(config *tooldeck.Config) (tooldeck.Client, error) {
	if config != nil && config.BaseURL != "" {
		config.BaseURL = normalizeBaseURL(config.BaseURL)
	}

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return apiClient, nil
}

// NewWithAPIKey creates a new client from a base URL and an API key.
func NewWithAPIKey(baseURL, apiKey string) (tooldeck.Client, error) {
	return New(&tooldeck.Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
	})
}

// normalizeBaseURL trims a trailing slash and defaults the scheme to https.
func normalizeBaseURL(baseURL string) string {
	normalized := strings.TrimSuffix(baseURL, "/")

	if !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	return normalized
}
