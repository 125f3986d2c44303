package commands

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClient_RequiresBaseURL(t *testing.T) {
	viper.Set("base_url", "")
	viper.Set("api_key", "")

	client, err := CreateClient()
	require.ErrorIs(t, err, ErrBaseURLRequired)
	assert.Nil(t, client)
}

func TestCreateClient_RequiresAPIKey(t *testing.T) {
	viper.Set("base_url", "https://api.tooldeck.example")
	viper.Set("api_key", "")

	client, err := CreateClient()
	require.ErrorIs(t, err, ErrAPIKeyRequired)
	assert.Nil(t, client)
}

func TestCreateClient_BuildsClient(t *testing.T) {
	viper.Set("base_url", "https://api.tooldeck.example")
	viper.Set("api_key", "test-key")

	client, err := CreateClient()
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Empty(t, formatTimestamp(time.Time{}))

	stamp := time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-14 09:30:00", formatTimestamp(stamp))
}
