package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tooldeck-io/tooldeck-go/internal/constants"
	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// NewAuthSchemesCommand creates the auth-schemes command group.
func NewAuthSchemesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auth-schemes",
		Aliases: []string{"authschemes", "auth-scheme"},
		Short:   "Manage auth schemes",
		Long:    "List and inspect the auth integrations configured for apps",
	}

	cmd.AddCommand(newAuthSchemesListCommand())
	cmd.AddCommand(newAuthSchemesGetCommand())

	return cmd
}

func newAuthSchemesListCommand() *cobra.Command {
	var (
		appKey   string
		allPages bool
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List auth schemes",
		Long:  "List the account's configured auth schemes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthSchemesListCommand(appKey, allPages, perPage)
		},
	}

	cmd.Flags().StringVarP(&appKey, "app", "a", "", "filter by app key")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.StandardPageSize, "results per page")

	return cmd
}

func runAuthSchemesListCommand(appKey string, allPages bool, perPage int) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	params := tooldeck.NewQueryParams().WithPerPage(perPage)
	if appKey != "" {
		params.WithFilter("app_key", appKey)
	}

	if allPages {
		schemes, err := tooldeck.FetchAllPages(ctx, client.AuthSchemes().List, params,
			&tooldeck.PaginationOptions{PageSize: perPage})
		if err != nil {
			return fmt.Errorf("listing auth schemes: %w", err)
		}

		return outputAuthSchemes(schemes, tooldeck.PageInfo{}, true)
	}

	resp, err := client.AuthSchemes().List(ctx, params)
	if err != nil {
		return fmt.Errorf("listing auth schemes: %w", err)
	}

	return outputAuthSchemes(resp.Items, resp.Page, false)
}

func outputAuthSchemes(schemes []tooldeck.AuthScheme, page tooldeck.PageInfo, allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(schemes)
	case constants.FormatYAML:
		return StandardYAMLRenderer(schemes)
	default:
		return renderAuthSchemeTable(schemes, page, allPages)
	}
}

func renderAuthSchemeTable(schemes []tooldeck.AuthScheme, page tooldeck.PageInfo, allPages bool) error {
	if len(schemes) == 0 {
		_, _ = os.Stdout.WriteString("No auth schemes found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "App", "Mode", "Name", "Created")

	for _, scheme := range schemes {
		_ = table.Append(scheme.ID, scheme.AppKey, scheme.Mode, scheme.Name, formatTimestamp(scheme.CreatedAt))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	if !allPages && page.TotalPages > 1 {
		_, _ = fmt.Fprintf(os.Stdout, "\nShowing page %d of %d. Use --all to fetch all pages.\n",
			page.Number, page.TotalPages)
	}

	return nil
}

func newAuthSchemesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SCHEME_ID",
		Short: "Get auth scheme details",
		Long:  "Display detailed information about a specific auth scheme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthSchemesGetCommand(args[0])
		},
	}
}

func runAuthSchemesGetCommand(schemeID string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	scheme, err := client.AuthSchemes().Get(ctx, schemeID)
	if err != nil {
		return fmt.Errorf("getting auth scheme '%s': %w", schemeID, err)
	}

	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(scheme)
	case constants.FormatYAML:
		return StandardYAMLRenderer(scheme)
	default:
		fields := make([]string, 0, len(scheme.Fields))
		for _, field := range scheme.Fields {
			name := field.Name
			if field.Required {
				name += " (required)"
			}

			fields = append(fields, name)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", scheme.ID)
		_ = table.Append("App", scheme.AppKey)
		_ = table.Append("Mode", scheme.Mode)
		_ = table.Append("Name", scheme.Name)
		_ = table.Append("Fields", strings.Join(fields, ", "))
		_ = table.Append("Created", formatTimestamp(scheme.CreatedAt))
		_ = table.Append("Updated", formatTimestamp(scheme.UpdatedAt))

		if err := table.Render(); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}

		return nil
	}
}
