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

// NewActionsCommand creates the actions command group.
func NewActionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "actions",
		Aliases: []string{"action"},
		Short:   "Browse and execute actions",
		Long:    "List catalog actions, inspect their schemas, and execute them against connected accounts",
	}

	cmd.AddCommand(newActionsListCommand())
	cmd.AddCommand(newActionsGetCommand())
	cmd.AddCommand(newActionsExecuteCommand())

	return cmd
}

func newActionsListCommand() *cobra.Command {
	var (
		appKey   string
		search   string
		allPages bool
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List actions",
		Long:  "List the actions available in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActionsListCommand(appKey, search, allPages, perPage)
		},
	}

	cmd.Flags().StringVarP(&appKey, "app", "a", "", "filter by app key")
	cmd.Flags().StringVarP(&search, "search", "s", "", "search actions by name")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.StandardPageSize, "results per page")

	return cmd
}

func runActionsListCommand(appKey, search string, allPages bool, perPage int) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	params := tooldeck.NewQueryParams().WithPerPage(perPage)
	if appKey != "" {
		params.WithFilter("app_key", appKey)
	}

	if search != "" {
		params.WithSearch(search)
	}

	if allPages {
		actions, err := tooldeck.FetchAllPages(ctx, client.Actions().List, params,
			&tooldeck.PaginationOptions{PageSize: perPage})
		if err != nil {
			return fmt.Errorf("listing actions: %w", err)
		}

		return outputActions(actions, tooldeck.PageInfo{}, true)
	}

	resp, err := client.Actions().List(ctx, params)
	if err != nil {
		return fmt.Errorf("listing actions: %w", err)
	}

	return outputActions(resp.Items, resp.Page, false)
}

func outputActions(actions []tooldeck.ActionSummary, page tooldeck.PageInfo, allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(actions)
	case constants.FormatYAML:
		return StandardYAMLRenderer(actions)
	default:
		return renderActionTable(actions, page, allPages)
	}
}

func renderActionTable(actions []tooldeck.ActionSummary, page tooldeck.PageInfo, allPages bool) error {
	if len(actions) == 0 {
		_, _ = os.Stdout.WriteString("No actions found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "App", "Display Name", "Tags")

	for _, action := range actions {
		_ = table.Append(action.Name, action.AppKey, action.DisplayName, strings.Join(action.Tags, ", "))
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

func newActionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ACTION_NAME",
		Short: "Get action details",
		Long:  "Display detailed information about a specific action, including its parameter schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActionsGetCommand(args[0])
		},
	}
}

func runActionsGetCommand(actionName string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	action, err := client.Actions().Get(ctx, actionName)
	if err != nil {
		return fmt.Errorf("getting action '%s': %w", actionName, err)
	}

	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(action)
	case constants.FormatYAML:
		return StandardYAMLRenderer(action)
	default:
		deprecated := "no"
		if action.Deprecated {
			deprecated = "yes"
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("Name", action.Name)
		_ = table.Append("App", action.AppKey)
		_ = table.Append("Display Name", action.DisplayName)
		_ = table.Append("Description", action.Description)
		_ = table.Append("Tags", strings.Join(action.Tags, ", "))
		_ = table.Append("Version", action.Version)
		_ = table.Append("Deprecated", deprecated)

		if err := table.Render(); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}

		if len(action.Parameters) > 0 {
			_, _ = fmt.Fprintf(os.Stdout, "\nParameters:\n%s\n", string(action.Parameters))
		}

		return nil
	}
}

func newActionsExecuteCommand() *cobra.Command {
	var (
		connectionID string
		entityID     string
		params       map[string]string
		text         string
	)

	cmd := &cobra.Command{
		Use:   "execute ACTION_NAME",
		Short: "Execute an action",
		Long:  "Execute a catalog action against a connected account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActionsExecuteCommand(args[0], connectionID, entityID, params, text)
		},
	}

	cmd.Flags().StringVar(&connectionID, "connection", "", "connection to run the action against")
	cmd.Flags().StringVar(&entityID, "entity", "", "entity to resolve the connection from")
	cmd.Flags().StringToStringVarP(&params, "param", "p", nil, "action parameter (key=value, repeatable)")
	cmd.Flags().StringVarP(&text, "text", "t", "", "natural-language instruction mapped to parameters server-side")

	return cmd
}

func runActionsExecuteCommand(actionName, connectionID, entityID string, params map[string]string, text string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	request := &tooldeck.ActionExecuteRequest{
		ConnectionID: connectionID,
		EntityID:     entityID,
		Text:         text,
	}

	if len(params) > 0 {
		request.Input = make(map[string]interface{}, len(params))
		for key, value := range params {
			request.Input[key] = value
		}
	}

	execution, err := client.Actions().Execute(ctx, actionName, request)
	if err != nil {
		return fmt.Errorf("executing action '%s': %w", actionName, err)
	}

	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(execution)
	case constants.FormatYAML:
		return StandardYAMLRenderer(execution)
	default:
		_, _ = fmt.Fprintf(os.Stdout, "Execution %s: %s\n", execution.ExecutionID, execution.Status)

		if execution.Error != "" {
			_, _ = fmt.Fprintf(os.Stdout, "Error: %s\n", execution.Error)
		}

		if len(execution.Output) > 0 {
			_, _ = fmt.Fprintf(os.Stdout, "\n%s\n", string(execution.Output))
		}

		return nil
	}
}
