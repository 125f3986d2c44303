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

func TestAuthSchemesClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth_schemes", r.URL.Path)
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "github", r.URL.Query().Get("app"))

		writeData(w, tooldeck.AuthSchemeList{
			Items: []tooldeck.AuthScheme{
				{ID: "as-1", AppKey: "github", Mode: tooldeck.AuthModeOAuth2},
			},
			Page: tooldeck.PageInfo{Number: 1, Size: 50, TotalPages: 1, TotalItems: 1},
		})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	require.NoError(t, err)

	params := tooldeck.NewQueryParams().WithFilter("app", "github")

	schemes, err := client.AuthSchemes().List(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, schemes.Items, 1)
	assert.Equal(t, tooldeck.AuthModeOAuth2, schemes.Items[0].Mode)
}

func TestAuthSchemesClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth_schemes/as-1", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		writeData(w, tooldeck.AuthScheme{
			ID:     "as-1",
			AppKey: "github",
			Mode:   tooldeck.AuthModeOAuth2,
			Fields: []tooldeck.AuthField{
				{Name: "client_id", Required: true},
				{Name: "client_secret", Required: true},
			},
		})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	require.NoError(t, err)

	scheme, err := client.AuthSchemes().Get(context.Background(), "as-1")
	require.NoError(t, err)
	assert.Equal(t, "as-1", scheme.ID)
	require.Len(t, scheme.Fields, 2)
	assert.True(t, scheme.Fields[0].Required)
}

func TestAuthSchemesClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth_schemes", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var req tooldeck.AuthSchemeCreateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "github", req.AppKey)
		assert.Equal(t, tooldeck.AuthModeAPIKey, req.Mode)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": tooldeck.AuthScheme{ID: "as-new", AppKey: "github", Mode: tooldeck.AuthModeAPIKey},
		})
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	require.NoError(t, err)

	scheme, err := client.AuthSchemes().Create(context.Background(), &tooldeck.AuthSchemeCreateRequest{
		AppKey:      "github",
		Mode:        tooldeck.AuthModeAPIKey,
		Credentials: map[string]string{"api_key": "gh-secret"},
	})
	require.NoError(t, err)
	assert.Equal(t, "as-new", scheme.ID)
}

func TestAuthSchemesClient_Delete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/auth_schemes/as-1", r.URL.Path)
		assert.Equal(t, "DELETE", r.Method)

		writeData(w, nil)
	}))
	defer server.Close()

	client, err := New(testConfig(server.URL))
	require.NoError(t, err)

	err = client.AuthSchemes().Delete(context.Background(), "as-1")
	require.NoError(t, err)
}
