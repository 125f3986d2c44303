package tooldeck

import (
	"encoding/json"
	"time"
)

// AppSummary is the catalog listing shape of an integrable app.
type AppSummary struct {
	Key         string   `json:"key"                   yaml:"key"`
	Name        string   `json:"name"                  yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Categories  []string `json:"categories,omitempty"  yaml:"categories,omitempty"`
	LogoURL     string   `json:"logo_url,omitempty"    yaml:"logo_url,omitempty"`
	NoAuth      bool     `json:"no_auth,omitempty"     yaml:"no_auth,omitempty"`
}

// App is the full catalog entry for an integrable app.
type App struct {
	Key         string    `json:"key"                    yaml:"key"`
	Name        string    `json:"name"                   yaml:"name"`
	Description string    `json:"description,omitempty"  yaml:"description,omitempty"`
	Categories  []string  `json:"categories,omitempty"   yaml:"categories,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"     yaml:"logo_url,omitempty"`
	DocsURL     string    `json:"docs_url,omitempty"     yaml:"docs_url,omitempty"`
	NoAuth      bool      `json:"no_auth,omitempty"      yaml:"no_auth,omitempty"`
	AuthModes   []string  `json:"auth_modes,omitempty"   yaml:"auth_modes,omitempty"`
	Meta        AppMeta   `json:"meta,omitempty"         yaml:"meta,omitempty"`
	CreatedAt   time.Time `json:"created_at"             yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"             yaml:"updated_at"`
}

// AppMeta carries catalog counts for an app.
type AppMeta struct {
	ActionsCount  int `json:"actions_count,omitempty"  yaml:"actions_count,omitempty"`
	TriggersCount int `json:"triggers_count,omitempty" yaml:"triggers_count,omitempty"`
}

// ActionSummary is the catalog listing shape of an action.
type ActionSummary struct {
	Name        string   `json:"name"                   yaml:"name"`
	DisplayName string   `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	AppKey      string   `json:"app_key"                yaml:"app_key"`
	Description string   `json:"description,omitempty"  yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"         yaml:"tags,omitempty"`
}

// Action is the full catalog entry for an action, including its parameter
// and response JSON schemas.
type Action struct {
	Name        string          `json:"name"                   yaml:"name"`
	DisplayName string          `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	AppKey      string          `json:"app_key"                yaml:"app_key"`
	Description string          `json:"description,omitempty"  yaml:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"         yaml:"tags,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"   yaml:"parameters,omitempty"`
	Response    json.RawMessage `json:"response,omitempty"     yaml:"response,omitempty"`
	Version     string          `json:"version,omitempty"      yaml:"version,omitempty"`
	Deprecated  bool            `json:"deprecated,omitempty"   yaml:"deprecated,omitempty"`
}

// ActionExecuteRequest is the payload for executing an action.
type ActionExecuteRequest struct {
	// ConnectionID selects the connection the action runs against.
	ConnectionID string `json:"connection_id,omitempty" yaml:"connection_id,omitempty"`
	// EntityID selects the entity when no explicit connection is given.
	EntityID string `json:"entity_id,omitempty" yaml:"entity_id,omitempty"`
	// Input holds the action parameters, validated server-side against the
	// action's parameter schema.
	Input map[string]interface{} `json:"input,omitempty" yaml:"input,omitempty"`
	// Text is an optional natural-language instruction the platform maps to
	// action parameters.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// ActionExecution is the result of an action execution.
type ActionExecution struct {
	ExecutionID string          `json:"execution_id,omitempty" yaml:"execution_id,omitempty"`
	Status      string          `json:"status"                 yaml:"status"`
	Output      json.RawMessage `json:"output,omitempty"       yaml:"output,omitempty"`
	Error       string          `json:"error,omitempty"        yaml:"error,omitempty"`
	StartedAt   time.Time       `json:"started_at"             yaml:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"            yaml:"finished_at"`
}

// Connection states reported by the platform.
const (
	ConnectionStatusInitiated = "initiated"
	ConnectionStatusActive    = "active"
	ConnectionStatusFailed    = "failed"
)

// Connection is an authorized link between an entity and an app.
type Connection struct {
	ID           string            `json:"id"                     yaml:"id"`
	AppKey       string            `json:"app_key"                yaml:"app_key"`
	EntityID     string            `json:"entity_id,omitempty"    yaml:"entity_id,omitempty"`
	Status       string            `json:"status"                 yaml:"status"`
	AuthSchemeID string            `json:"auth_scheme_id,omitempty" yaml:"auth_scheme_id,omitempty"`
	RedirectURL  string            `json:"redirect_url,omitempty" yaml:"redirect_url,omitempty"`
	Labels       map[string]string `json:"labels,omitempty"       yaml:"labels,omitempty"`
	CreatedAt    time.Time         `json:"created_at"             yaml:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"             yaml:"updated_at"`
}

// ConnectionCreateRequest initiates a new connection. OAuth-style schemes
// come back in status "initiated" with a RedirectURL the user must visit;
// key-style schemes become "active" immediately when Params carries the
// credentials.
type ConnectionCreateRequest struct {
	AppKey       string            `json:"app_key"                  yaml:"app_key"`
	AuthSchemeID string            `json:"auth_scheme_id,omitempty" yaml:"auth_scheme_id,omitempty"`
	EntityID     string            `json:"entity_id,omitempty"      yaml:"entity_id,omitempty"`
	RedirectURI  string            `json:"redirect_uri,omitempty"   yaml:"redirect_uri,omitempty"`
	Params       map[string]string `json:"params,omitempty"         yaml:"params,omitempty"`
	Labels       map[string]string `json:"labels,omitempty"         yaml:"labels,omitempty"`
}

// Trigger is the catalog entry for an event source on an app.
type Trigger struct {
	Name        string          `json:"name"                   yaml:"name"`
	DisplayName string          `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	AppKey      string          `json:"app_key"                yaml:"app_key"`
	Description string          `json:"description,omitempty"  yaml:"description,omitempty"`
	Type        string          `json:"type,omitempty"         yaml:"type,omitempty"`
	Config      json.RawMessage `json:"config,omitempty"       yaml:"config,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"      yaml:"payload,omitempty"`
}

// Trigger instance states.
const (
	TriggerStateEnabled  = "enabled"
	TriggerStateDisabled = "disabled"
)

// TriggerInstance is an enabled trigger bound to a connection.
type TriggerInstance struct {
	ID           string                 `json:"id"                  yaml:"id"`
	TriggerName  string                 `json:"trigger_name"        yaml:"trigger_name"`
	ConnectionID string                 `json:"connection_id"       yaml:"connection_id"`
	State        string                 `json:"state"               yaml:"state"`
	Config       map[string]interface{} `json:"config,omitempty"    yaml:"config,omitempty"`
	CreatedAt    time.Time              `json:"created_at"          yaml:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"          yaml:"updated_at"`
}

// TriggerEnableRequest binds a catalog trigger to a connection.
type TriggerEnableRequest struct {
	ConnectionID string                 `json:"connection_id"    yaml:"connection_id"`
	Config       map[string]interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}

// Auth scheme modes supported by the platform.
const (
	AuthModeOAuth2 = "oauth2"
	AuthModeAPIKey = "api_key"
	AuthModeBasic  = "basic"
)

// AuthScheme is a configured auth integration for an app.
type AuthScheme struct {
	ID        string      `json:"id"                  yaml:"id"`
	AppKey    string      `json:"app_key"             yaml:"app_key"`
	Mode      string      `json:"mode"                yaml:"mode"`
	Name      string      `json:"name,omitempty"      yaml:"name,omitempty"`
	Fields    []AuthField `json:"fields,omitempty"    yaml:"fields,omitempty"`
	CreatedAt time.Time   `json:"created_at"          yaml:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"          yaml:"updated_at"`
}

// AuthField describes one credential field an auth scheme expects.
type AuthField struct {
	Name        string `json:"name"                   yaml:"name"`
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Type        string `json:"type,omitempty"         yaml:"type,omitempty"`
	Required    bool   `json:"required,omitempty"     yaml:"required,omitempty"`
	Description string `json:"description,omitempty"  yaml:"description,omitempty"`
}

// AuthSchemeCreateRequest registers an auth scheme for an app.
type AuthSchemeCreateRequest struct {
	AppKey      string            `json:"app_key"               yaml:"app_key"`
	Mode        string            `json:"mode"                  yaml:"mode"`
	Name        string            `json:"name,omitempty"        yaml:"name,omitempty"`
	Credentials map[string]string `json:"credentials,omitempty" yaml:"credentials,omitempty"`
}

// Health is the platform health report returned by Ping.
type Health struct {
	Status  string `json:"status"            yaml:"status"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}
