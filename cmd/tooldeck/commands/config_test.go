package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewConfigCommand(t *testing.T) {
	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 3)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "unset")
}

func TestLoadConfig(t *testing.T) {
	viper.Set("base_url", "https://api.tooldeck.example")
	viper.Set("api_key", "test-key")
	viper.Set("output", "json")
	viper.Set("bench.runner", "python3 bench.py")

	config := loadConfig()
	assert.Equal(t, "https://api.tooldeck.example", config.BaseURL)
	assert.Equal(t, "test-key", config.APIKey)
	assert.Equal(t, "json", config.Output)
	assert.Equal(t, "python3 bench.py", config.Bench.Runner)
}

func TestSaveConfigStruct(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.SetConfigFile(configFile)

	err := saveConfigStruct(&Config{
		BaseURL: "https://api.tooldeck.example",
		APIKey:  "test-key",
		Output:  "table",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(configFile)
	require.NoError(t, err)

	var saved Config
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "https://api.tooldeck.example", saved.BaseURL)
	assert.Equal(t, "test-key", saved.APIKey)
	assert.Equal(t, "table", saved.Output)
}
