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

// NewAppsCommand creates the apps command group.
func NewAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"app"},
		Short:   "Browse the app catalog",
		Long:    "List and inspect the apps available on the Tooldeck platform",
	}

	cmd.AddCommand(newAppsListCommand())
	cmd.AddCommand(newAppsGetCommand())

	return cmd
}

func newAppsListCommand() *cobra.Command {
	var (
		search   string
		category string
		allPages bool
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List apps",
		Long:  "List the apps available in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppsListCommand(search, category, allPages, perPage)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "search apps by name")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.StandardPageSize, "results per page")

	return cmd
}

func runAppsListCommand(search, category string, allPages bool, perPage int) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	params := tooldeck.NewQueryParams().WithPerPage(perPage)
	if search != "" {
		params.WithSearch(search)
	}

	if category != "" {
		params.WithFilter("category", category)
	}

	if allPages {
		apps, err := tooldeck.FetchAllPages(ctx, client.Apps().List, params,
			&tooldeck.PaginationOptions{PageSize: perPage})
		if err != nil {
			return fmt.Errorf("listing apps: %w", err)
		}

		return outputApps(apps, tooldeck.PageInfo{}, true)
	}

	resp, err := client.Apps().List(ctx, params)
	if err != nil {
		return fmt.Errorf("listing apps: %w", err)
	}

	return outputApps(resp.Items, resp.Page, false)
}

func outputApps(apps []tooldeck.AppSummary, page tooldeck.PageInfo, allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(apps)
	case constants.FormatYAML:
		return StandardYAMLRenderer(apps)
	default:
		return renderAppTable(apps, page, allPages)
	}
}

func renderAppTable(apps []tooldeck.AppSummary, page tooldeck.PageInfo, allPages bool) error {
	if len(apps) == 0 {
		_, _ = os.Stdout.WriteString("No apps found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Key", "Name", "Categories", "Auth")

	for _, app := range apps {
		auth := "required"
		if app.NoAuth {
			auth = "none"
		}

		_ = table.Append(app.Key, app.Name, strings.Join(app.Categories, ", "), auth)
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

func newAppsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get APP_KEY",
		Short: "Get app details",
		Long:  "Display detailed information about a specific catalog app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppsGetCommand(args[0])
		},
	}
}

func runAppsGetCommand(appKey string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	app, err := client.Apps().Get(ctx, appKey)
	if err != nil {
		return fmt.Errorf("getting app '%s': %w", appKey, err)
	}

	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(app)
	case constants.FormatYAML:
		return StandardYAMLRenderer(app)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("Key", app.Key)
		_ = table.Append("Name", app.Name)
		_ = table.Append("Description", app.Description)
		_ = table.Append("Categories", strings.Join(app.Categories, ", "))
		_ = table.Append("Auth Modes", strings.Join(app.AuthModes, ", "))
		_ = table.Append("Docs", app.DocsURL)
		_ = table.Append("Actions", fmt.Sprintf("%d", app.Meta.ActionsCount))
		_ = table.Append("Triggers", fmt.Sprintf("%d", app.Meta.TriggersCount))
		_ = table.Append("Created", formatTimestamp(app.CreatedAt))
		_ = table.Append("Updated", formatTimestamp(app.UpdatedAt))

		if err := table.Render(); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}

		return nil
	}
}
