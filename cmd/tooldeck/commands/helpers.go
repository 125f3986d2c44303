package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tooldeck-io/tooldeck-go/pkg/deckclient"
	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// JSON and YAML indentation used by the standard renderers.
const defaultIndent = 2

// Common static errors used throughout the commands package.
var (
	ErrBaseURLRequired          = errors.New("base URL is required (use --base-url, TOOLDECK_BASE_URL, or 'tooldeck login')")
	ErrAPIKeyRequired           = errors.New("API key is required (use --api-key, TOOLDECK_API_KEY, or 'tooldeck login')")
	ErrBenchArgs                = errors.New("usage: tooldeck bench <prediction_dir> <dataset_path_or_name>")
	ErrBenchRunnerNotConfigured = errors.New("bench runner is not configured (set bench.runner in the config file)")
	ErrConnectionIDRequired     = errors.New("connection is required (--connection)")
	ErrUnknownConfigKey         = errors.New("unknown configuration key")
)

// CreateClient builds a tooldeck client from the current viper configuration.
func CreateClient() (tooldeck.Client, error) {
	baseURL := viper.GetString("base_url")
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	apiKey := viper.GetString("api_key")
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}

	config := &tooldeck.Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = &stderrLogger{}
	}

	client, err := deckclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// stderrLogger writes structured log lines to stderr for --verbose runs.
type stderrLogger struct{}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.write("DEBUG", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.write("INFO", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.write("WARN", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.write("ERROR", msg, fields) }

func (l *stderrLogger) write(level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, fields[key]))
	}

	_, _ = fmt.Fprintf(os.Stderr, "%s %s %s\n", level, msg, strings.Join(parts, " "))
}

// StandardJSONRenderer encodes data to stdout as indented JSON.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer encodes data to stdout as YAML.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// formatTimestamp renders a resource timestamp for table output.
func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format("2006-01-02 15:04:05")
}
