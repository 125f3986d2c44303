package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// AuthSchemesClient implements tooldeck.AuthSchemesClient.
type AuthSchemesClient struct {
	transport tooldeck.Transport
}

// NewAuthSchemesClient creates a new auth schemes client.
func NewAuthSchemesClient(transport tooldeck.Transport) *AuthSchemesClient {
	return &AuthSchemesClient{transport: transport}
}

// List implements tooldeck.AuthSchemesClient.List.
func (c *AuthSchemesClient) List(ctx context.Context, params *tooldeck.QueryParams) (*tooldeck.AuthSchemeList, error) {
	req := &tooldeck.RequestDescriptor{
		Method: http.MethodGet,
		Path:   "/v1/auth_schemes",
	}
	if params != nil {
		req.Query = params.ToValues()
	}

	schemes, err := doList[tooldeck.AuthScheme](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("listing auth schemes: %w", err)
	}

	return schemes, nil
}

// Get implements tooldeck.AuthSchemesClient.Get.
func (c *AuthSchemesClient) Get(ctx context.Context, schemeID string) (*tooldeck.AuthScheme, error) {
	req := &tooldeck.RequestDescriptor{
		Method:     http.MethodGet,
		Path:       "/v1/auth_schemes/{scheme_id}",
		PathParams: map[string]string{"scheme_id": schemeID},
	}

	scheme, err := doRequest[tooldeck.AuthScheme](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("getting auth scheme: %w", err)
	}

	return scheme, nil
}

// Create implements tooldeck.AuthSchemesClient.Create.
func (c *AuthSchemesClient) Create(ctx context.Context, request *tooldeck.AuthSchemeCreateRequest) (*tooldeck.AuthScheme, error) {
	req := &tooldeck.RequestDescriptor{
		Method: http.MethodPost,
		Path:   "/v1/auth_schemes",
		Body:   request,
	}

	scheme, err := doRequest[tooldeck.AuthScheme](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("creating auth scheme: %w", err)
	}

	return scheme, nil
}

// Delete implements tooldeck.AuthSchemesClient.Delete.
func (c *AuthSchemesClient) Delete(ctx context.Context, schemeID string) error {
	req := &tooldeck.RequestDescriptor{
		Method:     http.MethodDelete,
		Path:       "/v1/auth_schemes/{scheme_id}",
		PathParams: map[string]string{"scheme_id": schemeID},
	}

	err := doEmpty(ctx, c.transport, req)
	if err != nil {
		return fmt.Errorf("deleting auth scheme: %w", err)
	}

	return nil
}
