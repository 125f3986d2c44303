package deckclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooldeck-io/tooldeck-go/pkg/deckclient"
	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		config := &tooldeck.Config{
			BaseURL: "https://api.tooldeck.example",
			APIKey:  "test-key",
		}

		client, err := deckclient.New(config)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		client, err := deckclient.New(nil)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.ErrorIs(t, err, tooldeck.ErrConfigRequired)
		assert.True(t, tooldeck.IsConfiguration(err))
	})

	t.Run("requires API key", func(t *testing.T) {
		t.Parallel()

		client, err := deckclient.New(&tooldeck.Config{
			BaseURL: "https://api.tooldeck.example",
		})
		require.Error(t, err)
		assert.Nil(t, client)
		assert.ErrorIs(t, err, tooldeck.ErrAPIKeyRequired)
	})

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		client, err := deckclient.New(&tooldeck.Config{
			APIKey: "test-key",
		})
		require.Error(t, err)
		assert.Nil(t, client)
		assert.ErrorIs(t, err, tooldeck.ErrBaseURLRequired)
	})
}

func TestNew_NormalizesBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{
			name:    "trims trailing slash",
			baseURL: "https://api.tooldeck.example/",
			want:    "https://api.tooldeck.example",
		},
		{
			name:    "adds https scheme",
			baseURL: "api.tooldeck.example",
			want:    "https://api.tooldeck.example",
		},
		{
			name:    "keeps http scheme",
			baseURL: "http://localhost:8080",
			want:    "http://localhost:8080",
		},
		{
			name:    "already normalized",
			baseURL: "https://api.tooldeck.example",
			want:    "https://api.tooldeck.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := &tooldeck.Config{
				BaseURL: tt.baseURL,
				APIKey:  "test-key",
			}

			_, err := deckclient.New(config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, config.BaseURL)
		})
	}
}

func TestNewWithAPIKey(t *testing.T) {
	t.Parallel()

	client, err := deckclient.NewWithAPIKey("https://api.tooldeck.example", "test-key")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/v1/health":
			assert.Equal(t, "test-key", request.Header.Get("X-API-Key"))
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"data": tooldeck.Health{Status: "ok", Version: "2.3.1"},
			})
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	// A trailing slash on the configured URL must not produce "//v1" paths.
	client, err := deckclient.NewWithAPIKey(server.URL+"/", "test-key")
	require.NoError(t, err)

	health, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "2.3.1", health.Version)
}

func TestClientIntegration_ListApps(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, "/v1/apps", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"data": tooldeck.AppList{
				Items: []tooldeck.AppSummary{
					{Key: "github", Name: "GitHub"},
					{Key: "slack", Name: "Slack"},
				},
				Page: tooldeck.PageInfo{Number: 1, Size: 50, TotalPages: 1, TotalItems: 2},
			},
		})
	}))
	defer server.Close()

	client, err := deckclient.NewWithAPIKey(server.URL, "test-key")
	require.NoError(t, err)

	apps, err := client.Apps().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, apps.Items, 2)
	assert.Equal(t, "github", apps.Items[0].Key)
}
