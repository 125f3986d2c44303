package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// ActionsClient implements tooldeck.ActionsClient.
type ActionsClient struct {
	transport tooldeck.Transport
}

// NewActionsClient creates a new actions client.
func NewActionsClient(transport tooldeck.Transport) *ActionsClient {
	return &ActionsClient{transport: transport}
}

// List implements tooldeck.ActionsClient.List. Filter by app, tag, or use
// case through QueryParams filters.
func (c *ActionsClient) List(ctx context.Context, params *tooldeck.QueryParams) (*tooldeck.ActionList, error) {
	req := &tooldeck.RequestDescriptor{
		Method: http.MethodGet,
		Path:   "/v1/actions",
	}
	if params != nil {
		req.Query = params.ToValues()
	}

	actions, err := doList[tooldeck.ActionSummary](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("listing actions: %w", err)
	}

	return actions, nil
}

// Get implements tooldeck.ActionsClient.Get.
func (c *ActionsClient) Get(ctx context.Context, actionName string) (*tooldeck.Action, error) {
	req := &tooldeck.RequestDescriptor{
		Method:     http.MethodGet,
		Path:       "/v1/actions/{action_name}",
		PathParams: map[string]string{"action_name": actionName},
	}

	action, err := doRequest[tooldeck.Action](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("getting action: %w", err)
	}

	return action, nil
}

// Execute implements tooldeck.ActionsClient.Execute. Executions mutate
// state on the connected app and are never retried.
func (c *ActionsClient) Execute(ctx context.Context, actionName string, request *tooldeck.ActionExecuteRequest) (*tooldeck.ActionExecution, error) {
	req := &tooldeck.RequestDescriptor{
		Method:     http.MethodPost,
		Path:       "/v1/actions/{action_name}/execute",
		PathParams: map[string]string{"action_name": actionName},
		Body:       request,
	}

	execution, err := doRequest[tooldeck.ActionExecution](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("executing action: %w", err)
	}

	return execution, nil
}
