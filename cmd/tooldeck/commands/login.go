package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/tooldeck-io/tooldeck-go/pkg/deckclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		baseURL string
		apiKey  string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Tooldeck",
		Long:  "Validate an API key against a Tooldeck endpoint and persist it for later commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get base URL, falling back to config then an interactive prompt
			if baseURL == "" {
				baseURL = viper.GetString("base_url")
			}

			if baseURL == "" {
				reader := bufio.NewReader(os.Stdin)
				_, _ = fmt.Fprint(os.Stdout, "Base URL: ")
				baseURL, _ = reader.ReadString('\n')
				baseURL = strings.TrimSpace(baseURL)
			}

			if baseURL == "" {
				return ErrBaseURLRequired
			}

			// API keys are secrets; read without echo when not passed as a flag
			if apiKey == "" {
				_, _ = fmt.Fprint(os.Stdout, "API key: ")

				byteKey, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("reading API key: %w", err)
				}

				apiKey = strings.TrimSpace(string(byteKey))

				_, _ = fmt.Fprintln(os.Stdout)
			}

			if apiKey == "" {
				return ErrAPIKeyRequired
			}

			client, err := deckclient.NewWithAPIKey(baseURL, apiKey)
			if err != nil {
				return fmt.Errorf("creating client: %w", err)
			}

			// Validate the credentials before persisting anything
			ctx := context.Background()

			health, err := client.Ping(ctx)
			if err != nil {
				return fmt.Errorf("validating credentials: %w", err)
			}

			config := loadConfig()
			config.BaseURL = baseURL
			config.APIKey = apiKey

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully logged in to %s\n", baseURL)

			if health.Version != "" {
				_, _ = fmt.Fprintf(os.Stdout, "Platform version: %s\n", health.Version)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&baseURL, "base-url", "b", "", "Tooldeck API base URL")
	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "Tooldeck API key")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Tooldeck",
		Long:  "Remove the stored API key from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIKey = ""

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, "Successfully logged out")

			return nil
		},
	}
}
