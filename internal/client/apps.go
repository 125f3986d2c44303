package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// AppsClient implements tooldeck.AppsClient.
type AppsClient struct {
	transport tooldeck.Transport
}

// NewAppsClient creates a new apps client.
func NewAppsClient(transport tooldeck.Transport) *AppsClient {
	return &AppsClient{transport: transport}
}

// List implements tooldeck.AppsClient.List. Items come back in server
// order; the client does not reorder them.
func (c *AppsClient) List(ctx context.Context, params *tooldeck.QueryParams) (*tooldeck.AppList, error) {
	req := &tooldeck.RequestDescriptor{
		Method: http.MethodGet,
		Path:   "/v1/apps",
	}
	if params != nil {
		req.Query = params.ToValues()
	}

	apps, err := doList[tooldeck.AppSummary](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("listing apps: %w", err)
	}

	return apps, nil
}

// Get implements tooldeck.AppsClient.Get. The key is substituted into the
// path verbatim; no trimming or case folding is applied.
func (c *AppsClient) Get(ctx context.Context, appKey string) (*tooldeck.App, error) {
	req := &tooldeck.RequestDescriptor{
		Method:     http.MethodGet,
		Path:       "/v1/apps/{app_key}",
		PathParams: map[string]string{"app_key": appKey},
	}

	app, err := doRequest[tooldeck.App](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("getting app: %w", err)
	}

	return app, nil
}
