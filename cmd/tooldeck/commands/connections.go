package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tooldeck-io/tooldeck-go/internal/constants"
	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// NewConnectionsCommand creates the connections command group.
func NewConnectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "connections",
		Aliases: []string{"connection", "conns"},
		Short:   "Manage connections",
		Long:    "List, inspect, and remove authorized connections between entities and apps",
	}

	cmd.AddCommand(newConnectionsListCommand())
	cmd.AddCommand(newConnectionsGetCommand())
	cmd.AddCommand(newConnectionsDeleteCommand())

	return cmd
}

func newConnectionsListCommand() *cobra.Command {
	var (
		appKey   string
		entityID string
		allPages bool
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List connections",
		Long:  "List the account's connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnectionsListCommand(appKey, entityID, allPages, perPage)
		},
	}

	cmd.Flags().StringVarP(&appKey, "app", "a", "", "filter by app key")
	cmd.Flags().StringVarP(&entityID, "entity", "e", "", "filter by entity")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.StandardPageSize, "results per page")

	return cmd
}

func runConnectionsListCommand(appKey, entityID string, allPages bool, perPage int) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	params := tooldeck.NewQueryParams().WithPerPage(perPage)
	if appKey != "" {
		params.WithFilter("app_key", appKey)
	}

	if entityID != "" {
		params.WithFilter("entity_id", entityID)
	}

	if allPages {
		connections, err := tooldeck.FetchAllPages(ctx, client.Connections().List, params,
			&tooldeck.PaginationOptions{PageSize: perPage})
		if err != nil {
			return fmt.Errorf("listing connections: %w", err)
		}

		return outputConnections(connections, tooldeck.PageInfo{}, true)
	}

	resp, err := client.Connections().List(ctx, params)
	if err != nil {
		return fmt.Errorf("listing connections: %w", err)
	}

	return outputConnections(resp.Items, resp.Page, false)
}

func outputConnections(connections []tooldeck.Connection, page tooldeck.PageInfo, allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(connections)
	case constants.FormatYAML:
		return StandardYAMLRenderer(connections)
	default:
		return renderConnectionTable(connections, page, allPages)
	}
}

func renderConnectionTable(connections []tooldeck.Connection, page tooldeck.PageInfo, allPages bool) error {
	if len(connections) == 0 {
		_, _ = os.Stdout.WriteString("No connections found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "App", "Entity", "Status", "Created")

	for _, conn := range connections {
		_ = table.Append(conn.ID, conn.AppKey, conn.EntityID, conn.Status, formatTimestamp(conn.CreatedAt))
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

func newConnectionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONNECTION_ID",
		Short: "Get connection details",
		Long:  "Display detailed information about a specific connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnectionsGetCommand(args[0])
		},
	}
}

func runConnectionsGetCommand(connectionID string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	conn, err := client.Connections().Get(ctx, connectionID)
	if err != nil {
		return fmt.Errorf("getting connection '%s': %w", connectionID, err)
	}

	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(conn)
	case constants.FormatYAML:
		return StandardYAMLRenderer(conn)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", conn.ID)
		_ = table.Append("App", conn.AppKey)
		_ = table.Append("Entity", conn.EntityID)
		_ = table.Append("Status", conn.Status)
		_ = table.Append("Auth Scheme", conn.AuthSchemeID)
		_ = table.Append("Redirect URL", conn.RedirectURL)
		_ = table.Append("Created", formatTimestamp(conn.CreatedAt))
		_ = table.Append("Updated", formatTimestamp(conn.UpdatedAt))

		if err := table.Render(); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}

		return nil
	}
}

func newConnectionsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete CONNECTION_ID",
		Short: "Delete a connection",
		Long:  "Revoke and remove a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnectionsDeleteCommand(args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}

func runConnectionsDeleteCommand(connectionID string, force bool) error {
	if !force {
		_, _ = fmt.Fprintf(os.Stdout, "Really delete connection '%s'? (y/N): ", connectionID)

		var response string

		_, _ = fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			_, _ = os.Stdout.WriteString("Cancelled\n")

			return nil
		}
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if err := client.Connections().Delete(ctx, connectionID); err != nil {
		return fmt.Errorf("deleting connection '%s': %w", connectionID, err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully deleted connection '%s'\n", connectionID)

	return nil
}
