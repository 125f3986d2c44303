package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tooldeck-io/tooldeck-go/internal/constants"
)

// Config represents the CLI configuration persisted to ~/.tooldeck/config.yml.
type Config struct {
	BaseURL string      `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey  string      `json:"api_key,omitempty"  yaml:"api_key,omitempty"`
	Output  string      `json:"output,omitempty"   yaml:"output,omitempty"`
	Bench   BenchConfig `json:"bench,omitempty"    yaml:"bench,omitempty"`
}

// BenchConfig holds settings for the external benchmark runner.
type BenchConfig struct {
	Runner string `json:"runner,omitempty" yaml:"runner,omitempty"`
}

func loadConfig() *Config {
	return &Config{
		BaseURL: viper.GetString("base_url"),
		APIKey:  viper.GetString("api_key"),
		Output:  viper.GetString("output"),
		Bench: BenchConfig{
			Runner: viper.GetString("bench.runner"),
		},
	}
}

func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".tooldeck")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and modify the Tooldeck CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			output := viper.GetString("output")
			switch output {
			case constants.FormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(config)
			case constants.FormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(config)
			default:
				apiKey := ""
				if config.APIKey != "" {
					apiKey = "***"
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Setting", "Value")
				_ = table.Append("base_url", config.BaseURL)
				_ = table.Append("api_key", apiKey)
				_ = table.Append("output", config.Output)
				_ = table.Append("bench.runner", config.Bench.Runner)

				if err := table.Render(); err != nil {
					return fmt.Errorf("rendering table: %w", err)
				}

				return nil
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value and persist it to the config file",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			config := loadConfig()

			switch key {
			case "base_url", "base-url":
				config.BaseURL = value
			case "api_key", "api-key":
				config.APIKey = value
			case "output":
				config.Output = value
			case "bench.runner":
				config.Bench.Runner = value
			default:
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			switch key {
			case "base_url", "base-url":
				config.BaseURL = ""
			case "api_key", "api-key":
				config.APIKey = ""
			case "output":
				config.Output = ""
			case "bench.runner":
				config.Bench.Runner = ""
			default:
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", key)

			return nil
		},
	}
}
