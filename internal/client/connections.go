package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// ConnectionsClient implements tooldeck.ConnectionsClient.
type ConnectionsClient struct {
	transport tooldeck.Transport
}

// NewConnectionsClient creates a new connections client.
func NewConnectionsClient(transport tooldeck.Transport) *ConnectionsClient {
	return &ConnectionsClient{transport: transport}
}

// List implements tooldeck.ConnectionsClient.List.
func (c *ConnectionsClient) List(ctx context.Context, params *tooldeck.QueryParams) (*tooldeck.ConnectionList, error) {
	req := &tooldeck.RequestDescriptor{
		Method: http.MethodGet,
		Path:   "/v1/connections",
	}
	if params != nil {
		req.Query = params.ToValues()
	}

	connections, err := doList[tooldeck.Connection](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}

	return connections, nil
}

// Get implements tooldeck.ConnectionsClient.Get.
func (c *ConnectionsClient) Get(ctx context.Context, connectionID string) (*tooldeck.Connection, error) {
	req := &tooldeck.RequestDescriptor{
		Method:     http.MethodGet,
		Path:       "/v1/connections/{connection_id}",
		PathParams: map[string]string{"connection_id": connectionID},
	}

	connection, err := doRequest[tooldeck.Connection](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("getting connection: %w", err)
	}

	return connection, nil
}

// Create implements tooldeck.ConnectionsClient.Create. The returned
// connection may carry a redirect URL the user must visit to finish
// authorization; its status stays "initiated" until then.
func (c *ConnectionsClient) Create(ctx context.Context, request *tooldeck.ConnectionCreateRequest) (*tooldeck.Connection, error) {
	req := &tooldeck.RequestDescriptor{
		Method: http.MethodPost,
		Path:   "/v1/connections",
		Body:   request,
	}

	connection, err := doRequest[tooldeck.Connection](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("creating connection: %w", err)
	}

	return connection, nil
}

// Delete implements tooldeck.ConnectionsClient.Delete.
func (c *ConnectionsClient) Delete(ctx context.Context, connectionID string) error {
	req := &tooldeck.RequestDescriptor{
		Method:     http.MethodDelete,
		Path:       "/v1/connections/{connection_id}",
		PathParams: map[string]string{"connection_id": connectionID},
	}

	err := doEmpty(ctx, c.transport, req)
	if err != nil {
		return fmt.Errorf("deleting connection: %w", err)
	}

	return nil
}
