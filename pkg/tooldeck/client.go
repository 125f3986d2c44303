package tooldeck

import (
	"context"
	"time"
)

// AppsClient provides access to the app catalog.
type AppsClient interface {
	// List returns a page of the app catalog in server order.
	List(ctx context.Context, params *QueryParams) (*ListResponse[AppSummary], error)
	// Get returns the catalog entry whose key matches appKey exactly.
	Get(ctx context.Context, appKey string) (*App, error)
}

// ActionsClient provides access to the action catalog and execution.
type ActionsClient interface {
	List(ctx context.Context, params *QueryParams) (*ListResponse[ActionSummary], error)
	Get(ctx context.Context, actionName string) (*Action, error)
	// Execute runs an action. Executions are not idempotent and are never
	// retried by the client.
	Execute(ctx context.Context, actionName string, request *ActionExecuteRequest) (*ActionExecution, error)
}

// ConnectionsClient manages authorized links between entities and apps.
type ConnectionsClient interface {
	List(ctx context.Context, params *QueryParams) (*ListResponse[Connection], error)
	Get(ctx context.Context, connectionID string) (*Connection, error)
	Create(ctx context.Context, request *ConnectionCreateRequest) (*Connection, error)
	Delete(ctx context.Context, connectionID string) error
}

// TriggersClient manages the trigger catalog and trigger instances.
type TriggersClient interface {
	List(ctx context.Context, params *QueryParams) (*ListResponse[Trigger], error)
	Get(ctx context.Context, triggerName string) (*Trigger, error)
	Enable(ctx context.Context, triggerName string, request *TriggerEnableRequest) (*TriggerInstance, error)
	Disable(ctx context.Context, instanceID string) (*TriggerInstance, error)
	Delete(ctx context.Context, instanceID string) error
}

// AuthSchemesClient manages auth integrations for apps.
type AuthSchemesClient interface {
	List(ctx context.Context, params *QueryParams) (*ListResponse[AuthScheme], error)
	Get(ctx context.Context, schemeID string) (*AuthScheme, error)
	Create(ctx context.Context, request *AuthSchemeCreateRequest) (*AuthScheme, error)
	Delete(ctx context.Context, schemeID string) error
}

// CatalogClients provides access to the platform's catalog resources.
type CatalogClients interface {
	Apps() AppsClient
	Actions() ActionsClient
}

// AccountClients provides access to account-scoped resources.
type AccountClients interface {
	Connections() ConnectionsClient
	Triggers() TriggersClient
	AuthSchemes() AuthSchemesClient
}

// PlatformClient provides access to platform-level endpoints.
type PlatformClient interface {
	// Ping verifies connectivity and credentials against /v1/health.
	Ping(ctx context.Context) (*Health, error)
}

// Client is the facade over all resource clients. Accessors return the same
// long-lived instance on every call; resource clients are stateless and safe
// for concurrent use.
type Client interface {
	CatalogClients
	AccountClients
	PlatformClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a tooldeck.Client.
//
// # Credentials
//
// APIKey and BaseURL are both required and have no defaults; construction
// fails fast with an ErrorKindConfiguration error when either is missing.
// The key is sent as the X-API-Key header on every request.
//
// # Timeouts and retries
//
// Per-request deadlines should generally be controlled via the context
// passed to client methods. By default every request is sent exactly once;
// setting RetryMax > 0 opts into retries for idempotent requests only (GET
// and HEAD, on 429, 5xx, and connection errors). Requests that create or
// mutate state are never retried.
type Config struct {
	// Required fields
	// APIKey: the platform API key. Sent as X-API-Key on every request.
	APIKey string
	// BaseURL: base URL for the Tooldeck API (e.g.,
	// "https://api.tooldeck.example"). deckclient.New normalizes this value
	// by trimming a trailing slash and adding "https://" if no scheme is
	// present.
	BaseURL string

	// Optional configurations
	// RequestTimeout: optional default HTTP timeout. Most calls should rely
	// on context deadlines; this bounds a single attempt when set.
	RequestTimeout time.Duration
	// RetryMax: maximum number of retries for idempotent requests. 0 (the
	// default) disables retries entirely.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and helpers.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
	// Cache: optional response cache configuration. Nil disables caching and
	// keeps the client a pure pass-through.
	Cache *CacheConfig
	// CachePolicy: optional caching policy. Only consulted when Cache is set;
	// nil falls back to DefaultCachingPolicy.
	CachePolicy *CachingPolicy
	// Interceptors: optional request/response interceptor chain applied
	// around every transport call.
	Interceptors *InterceptorChain
}
