package tooldeck_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

func TestPageInfo_HasNext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		page     tooldeck.PageInfo
		expected bool
	}{
		{
			name:     "first of several",
			page:     tooldeck.PageInfo{Number: 1, TotalPages: 3},
			expected: true,
		},
		{
			name:     "middle page",
			page:     tooldeck.PageInfo{Number: 2, TotalPages: 3},
			expected: true,
		},
		{
			name:     "last page",
			page:     tooldeck.PageInfo{Number: 3, TotalPages: 3},
			expected: false,
		},
		{
			name:     "single page",
			page:     tooldeck.PageInfo{Number: 1, TotalPages: 1},
			expected: false,
		},
		{
			name:     "zero value",
			page:     tooldeck.PageInfo{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.page.HasNext())
		})
	}
}

func TestListResponse_DecodesWireFormat(t *testing.T) {
	t.Parallel()

	wire := `{
		"items": [
			{"key": "github", "name": "GitHub", "categories": ["developer"], "no_auth": false},
			{"key": "slack", "name": "Slack"}
		],
		"page": {"number": 1, "size": 2, "total_pages": 4, "total_items": 7}
	}`

	var list tooldeck.AppList

	err := json.Unmarshal([]byte(wire), &list)
	require.NoError(t, err)

	require.Len(t, list.Items, 2)
	assert.Equal(t, "github", list.Items[0].Key)
	assert.Equal(t, "GitHub", list.Items[0].Name)
	assert.Equal(t, []string{"developer"}, list.Items[0].Categories)
	assert.Equal(t, "slack", list.Items[1].Key)

	assert.Equal(t, 1, list.Page.Number)
	assert.Equal(t, 2, list.Page.Size)
	assert.Equal(t, 4, list.Page.TotalPages)
	assert.Equal(t, 7, list.Page.TotalItems)
	assert.True(t, list.Page.HasNext())
}

func TestListResponse_RoundTripsDeclaredFields(t *testing.T) {
	t.Parallel()

	wire := `{
		"items": [
			{
				"key": "github",
				"name": "GitHub",
				"description": "Code hosting",
				"categories": ["developer", "popular"],
				"logo_url": "https://cdn.tooldeck.example/github.png",
				"no_auth": true
			}
		],
		"page": {"number": 2, "size": 1, "total_pages": 3, "total_items": 3}
	}`

	var list tooldeck.AppList

	err := json.Unmarshal([]byte(wire), &list)
	require.NoError(t, err)

	reserialized, err := json.Marshal(list)
	require.NoError(t, err)
	assert.JSONEq(t, wire, string(reserialized))
}

func TestConnection_DecodesWireFormat(t *testing.T) {
	t.Parallel()

	wire := `{
		"id": "conn-9",
		"app_key": "github",
		"entity_id": "user-42",
		"status": "initiated",
		"auth_scheme_id": "as-1",
		"redirect_url": "https://github.example/oauth/authorize?state=xyz",
		"labels": {"env": "staging"}
	}`

	var conn tooldeck.Connection

	err := json.Unmarshal([]byte(wire), &conn)
	require.NoError(t, err)

	assert.Equal(t, "conn-9", conn.ID)
	assert.Equal(t, "github", conn.AppKey)
	assert.Equal(t, "user-42", conn.EntityID)
	assert.Equal(t, tooldeck.ConnectionStatusInitiated, conn.Status)
	assert.Equal(t, "as-1", conn.AuthSchemeID)
	assert.NotEmpty(t, conn.RedirectURL)
	assert.Equal(t, map[string]string{"env": "staging"}, conn.Labels)
}

func TestActionExecution_DecodesWireFormat(t *testing.T) {
	t.Parallel()

	wire := `{
		"execution_id": "exec-17",
		"status": "completed",
		"output": {"starred": true, "repo": "tooldeck-io/tooldeck-go"}
	}`

	var exec tooldeck.ActionExecution

	err := json.Unmarshal([]byte(wire), &exec)
	require.NoError(t, err)

	assert.Equal(t, "exec-17", exec.ExecutionID)
	assert.Equal(t, "completed", exec.Status)
	assert.JSONEq(t, `{"starred": true, "repo": "tooldeck-io/tooldeck-go"}`, string(exec.Output))
	assert.Empty(t, exec.Error)
}
