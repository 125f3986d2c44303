package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

func TestActionsClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/actions", r.URL.Path)
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "github", r.URL.Query().Get("apps"))

		writeData(w, tooldeck.ActionList{
			Items: []tooldeck.ActionSummary{
				{Name: "GITHUB_STAR_REPO", AppKey: "github", DisplayName: "Star a repository"},
				{Name: "GITHUB_CREATE_ISSUE", AppKey: "github", DisplayName: "Create an issue"},
			},
			Page: tooldeck.PageInfo{Number: 1, Size: 50, TotalPages: 1, TotalItems: 2},
		})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	require.NoError(t, err)

	params := tooldeck.NewQueryParams().WithFilter("apps", "github")

	actions, err := client.Actions().List(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, actions.Items, 2)
	assert.Equal(t, "GITHUB_STAR_REPO", actions.Items[0].Name)
}

func TestActionsClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/actions/GITHUB_STAR_REPO", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		writeData(w, tooldeck.Action{
			Name:       "GITHUB_STAR_REPO",
			AppKey:     "github",
			Parameters: json.RawMessage(`{"type":"object","properties":{"repo":{"type":"string"}}}`),
		})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	require.NoError(t, err)

	action, err := client.Actions().Get(context.Background(), "GITHUB_STAR_REPO")
	require.NoError(t, err)
	assert.Equal(t, "GITHUB_STAR_REPO", action.Name)
	assert.JSONEq(t, `{"type":"object","properties":{"repo":{"type":"string"}}}`, string(action.Parameters))
}

func TestActionsClient_Execute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/actions/GITHUB_STAR_REPO/execute", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req tooldeck.ActionExecuteRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "conn-123", req.ConnectionID)
		assert.Equal(t, "tooldeck-io/tooldeck-go", req.Input["repo"])

		writeData(w, tooldeck.ActionExecution{
			ExecutionID: "exec-9",
			Status:      "succeeded",
			Output:      json.RawMessage(`{"starred":true}`),
		})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	require.NoError(t, err)

	execution, err := client.Actions().Execute(context.Background(), "GITHUB_STAR_REPO", &tooldeck.ActionExecuteRequest{
		ConnectionID: "conn-123",
		Input:        map[string]interface{}{"repo": "tooldeck-io/tooldeck-go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "exec-9", execution.ExecutionID)
	assert.Equal(t, "succeeded", execution.Status)
	assert.JSONEq(t, `{"starred":true}`, string(execution.Output))
}

func TestActionsClient_Execute_InvalidInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusBadRequest, "invalid_input", "missing required parameter: repo")
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Actions().Execute(context.Background(), "GITHUB_STAR_REPO", &tooldeck.ActionExecuteRequest{})
	require.Error(t, err)

	var tdErr *tooldeck.Error
	require.ErrorAs(t, err, &tdErr)
	assert.Equal(t, tooldeck.ErrorKindAPI, tdErr.Kind)
	assert.Equal(t, "invalid_input", tdErr.Code)
	assert.Contains(t, tdErr.Message, "repo")
}

func TestActionsClient_Execute_EmptyName(t *testing.T) {
	hits := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Actions().Execute(context.Background(), "", &tooldeck.ActionExecuteRequest{})
	require.Error(t, err)
	assert.True(t, tooldeck.IsMalformedRequest(err))
	assert.Equal(t, 0, hits)
}
