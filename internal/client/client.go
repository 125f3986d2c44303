package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tooldeck-io/tooldeck-go/internal/constants"
	internalhttp "github.com/tooldeck-io/tooldeck-go/internal/http"
	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// Client implements the tooldeck.Client interface.
type Client struct {
	transport tooldeck.Transport
	baseURL   string
	logger    tooldeck.Logger
	cache     *tooldeck.CacheManager

	// Resource clients
	apps        tooldeck.AppsClient
	actions     tooldeck.ActionsClient
	connections tooldeck.ConnectionsClient
	triggers    tooldeck.TriggersClient
	authSchemes tooldeck.AuthSchemesClient
}

// New creates a new Tooldeck API client. It fails fast with a
// configuration error when the API key or base URL is absent; neither has
// a usable default.
func New(config *tooldeck.Config) (*Client, error) {
	err := validateConfig(config)
	if err != nil {
		return nil, err
	}

	transport := internalhttp.NewClient(config.BaseURL, config.APIKey, createTransportOptions(config)...)

	return assemble(config, transport)
}

// NewWithTransport creates a client over a caller-supplied Transport.
// Configuration is validated the same way as New so the fail-fast
// contract holds regardless of how the client is constructed.
func NewWithTransport(config *tooldeck.Config, transport tooldeck.Transport) (*Client, error) {
	err := validateConfig(config)
	if err != nil {
		return nil, err
	}

	return assemble(config, transport)
}

// validateConfig enforces the construction-time requirements.
func validateConfig(config *tooldeck.Config) error {
	switch {
	case config == nil:
		return configurationError(tooldeck.ErrConfigRequired)
	case config.APIKey == "":
		return configurationError(tooldeck.ErrAPIKeyRequired)
	case config.BaseURL == "":
		return configurationError(tooldeck.ErrBaseURLRequired)
	}

	return nil
}

func configurationError(err error) error {
	return &tooldeck.Error{
		Kind:    tooldeck.ErrorKindConfiguration,
		Message: err.Error(),
		Err:     err,
	}
}

// createTransportOptions builds transport options from config.
func createTransportOptions(config *tooldeck.Config) []internalhttp.Option {
	var opts []internalhttp.Option

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.RequestTimeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(config.RequestTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return opts
}

// assemble decorates the transport per config and wires the resource
// clients. Interceptors wrap the cache so the chain observes every call,
// cache hits included.
func assemble(config *tooldeck.Config, transport tooldeck.Transport) (*Client, error) {
	var manager *tooldeck.CacheManager

	if config.Cache != nil {
		cache, err := tooldeck.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("building response cache: %w", err)
		}

		manager = tooldeck.NewCacheManager(cache, config.Cache.Options)
		transport = newCachingTransport(transport, manager, config.CachePolicy)
	}

	if config.Interceptors != nil {
		transport = newInterceptTransport(transport, config.Interceptors)
	}

	client := &Client{
		transport: transport,
		baseURL:   config.BaseURL,
		logger:    config.Logger,
		cache:     manager,
	}

	client.initResourceClients()

	return client, nil
}

// initResourceClients initializes all resource-specific clients. Each is
// created exactly once; accessors hand out the same instance for the
// client's lifetime.
func (c *Client) initResourceClients() {
	c.apps = NewAppsClient(c.transport)
	c.actions = NewActionsClient(c.transport)
	c.connections = NewConnectionsClient(c.transport)
	c.triggers = NewTriggersClient(c.transport)
	c.authSchemes = NewAuthSchemesClient(c.transport)
}

// Ping implements tooldeck.Client.Ping.
func (c *Client) Ping(ctx context.Context) (*tooldeck.Health, error) {
	req := &tooldeck.RequestDescriptor{
		Method: http.MethodGet,
		Path:   "/v1/health",
	}

	health, err := doRequest[tooldeck.Health](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("pinging platform: %w", err)
	}

	return health, nil
}

// Resource client accessors

// Apps implements tooldeck.Client.Apps.
func (c *Client) Apps() tooldeck.AppsClient {
	return c.apps
}

// Actions implements tooldeck.Client.Actions.
func (c *Client) Actions() tooldeck.ActionsClient {
	return c.actions
}

// Connections implements tooldeck.Client.Connections.
func (c *Client) Connections() tooldeck.ConnectionsClient {
	return c.connections
}

// Triggers implements tooldeck.Client.Triggers.
func (c *Client) Triggers() tooldeck.TriggersClient {
	return c.triggers
}

// AuthSchemes implements tooldeck.Client.AuthSchemes.
func (c *Client) AuthSchemes() tooldeck.AuthSchemesClient {
	return c.authSchemes
}

// CacheStats returns response cache counters, or nil when caching is
// disabled.
func (c *Client) CacheStats() *tooldeck.CacheStats {
	if c.cache == nil {
		return nil
	}

	return c.cache.GetStats()
}
