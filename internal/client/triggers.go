package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// TriggersClient implements tooldeck.TriggersClient.
//
// The catalog operations (List, Get) address triggers by name; instance
// operations (Disable, Delete) address a previously enabled instance by
// its ID. Enable bridges the two: it takes a trigger name and returns the
// instance created for it.
type TriggersClient struct {
	transport tooldeck.Transport
}

// NewTriggersClient creates a new triggers client.
func NewTriggersClient(transport tooldeck.Transport) *TriggersClient {
	return &TriggersClient{transport: transport}
}

// List implements tooldeck.TriggersClient.List.
func (c *TriggersClient) List(ctx context.Context, params *tooldeck.QueryParams) (*tooldeck.TriggerList, error) {
	req := &tooldeck.RequestDescriptor{
		Method: http.MethodGet,
		Path:   "/v1/triggers",
	}
	if params != nil {
		req.Query = params.ToValues()
	}

	triggers, err := doList[tooldeck.Trigger](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("listing triggers: %w", err)
	}

	return triggers, nil
}

// Get implements tooldeck.TriggersClient.Get.
func (c *TriggersClient) Get(ctx context.Context, triggerName string) (*tooldeck.Trigger, error) {
	req := &tooldeck.RequestDescriptor{
		Method:     http.MethodGet,
		Path:       "/v1/triggers/{trigger_name}",
		PathParams: map[string]string{"trigger_name": triggerName},
	}

	trigger, err := doRequest[tooldeck.Trigger](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("getting trigger: %w", err)
	}

	return trigger, nil
}

// Enable implements tooldeck.TriggersClient.Enable.
func (c *TriggersClient) Enable(ctx context.Context, triggerName string, request *tooldeck.TriggerEnableRequest) (*tooldeck.TriggerInstance, error) {
	req := &tooldeck.RequestDescriptor{
		Method:     http.MethodPost,
		Path:       "/v1/triggers/{trigger_name}/enable",
		PathParams: map[string]string{"trigger_name": triggerName},
		Body:       request,
	}

	instance, err := doRequest[tooldeck.TriggerInstance](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("enabling trigger: %w", err)
	}

	return instance, nil
}

// Disable implements tooldeck.TriggersClient.Disable.
func (c *TriggersClient) Disable(ctx context.Context, instanceID string) (*tooldeck.TriggerInstance, error) {
	req := &tooldeck.RequestDescriptor{
		Method:     http.MethodPost,
		Path:       "/v1/trigger_instances/{instance_id}/disable",
		PathParams: map[string]string{"instance_id": instanceID},
	}

	instance, err := doRequest[tooldeck.TriggerInstance](ctx, c.transport, req)
	if err != nil {
		return nil, fmt.Errorf("disabling trigger: %w", err)
	}

	return instance, nil
}

// Delete implements tooldeck.TriggersClient.Delete.
func (c *TriggersClient) Delete(ctx context.Context, instanceID string) error {
	req := &tooldeck.RequestDescriptor{
		Method:     http.MethodDelete,
		Path:       "/v1/trigger_instances/{instance_id}",
		PathParams: map[string]string{"instance_id": instanceID},
	}

	err := doEmpty(ctx, c.transport, req)
	if err != nil {
		return fmt.Errorf("deleting trigger instance: %w", err)
	}

	return nil
}
