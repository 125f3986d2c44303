package tooldeck

// PageInfo describes the position of a list response within its result set.
type PageInfo struct {
	Number     int `json:"number"      yaml:"number"`
	Size       int `json:"size"        yaml:"size"`
	TotalPages int `json:"total_pages" yaml:"total_pages"`
	TotalItems int `json:"total_items" yaml:"total_items"`
}

// HasNext reports whether pages remain after this one.
func (p PageInfo) HasNext() bool {
	return p.Number > 0 && p.Number < p.TotalPages
}

// ListResponse is the payload shape of every list endpoint. Items preserve
// the server's order.
type ListResponse[T any] struct {
	Items []T      `json:"items" yaml:"items"`
	Page  PageInfo `json:"page"  yaml:"page"`
}

// AppList is a paginated list of app catalog entries.
type AppList = ListResponse[AppSummary]

// ActionList is a paginated list of action catalog entries.
type ActionList = ListResponse[ActionSummary]

// ConnectionList is a paginated list of connections.
type ConnectionList = ListResponse[Connection]

// TriggerList is a paginated list of trigger catalog entries.
type TriggerList = ListResponse[Trigger]

// AuthSchemeList is a paginated list of auth schemes.
type AuthSchemeList = ListResponse[AuthScheme]
