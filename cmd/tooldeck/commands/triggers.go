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

// NewTriggersCommand creates the triggers command group.
func NewTriggersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "triggers",
		Aliases: []string{"trigger"},
		Short:   "Manage triggers",
		Long:    "Browse the trigger catalog and manage enabled trigger instances",
	}

	cmd.AddCommand(newTriggersListCommand())
	cmd.AddCommand(newTriggersGetCommand())
	cmd.AddCommand(newTriggersEnableCommand())
	cmd.AddCommand(newTriggersDisableCommand())

	return cmd
}

func newTriggersListCommand() *cobra.Command {
	var (
		appKey   string
		allPages bool
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List triggers",
		Long:  "List the triggers available in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriggersListCommand(appKey, allPages, perPage)
		},
	}

	cmd.Flags().StringVarP(&appKey, "app", "a", "", "filter by app key")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.StandardPageSize, "results per page")

	return cmd
}

func runTriggersListCommand(appKey string, allPages bool, perPage int) error {
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
		triggers, err := tooldeck.FetchAllPages(ctx, client.Triggers().List, params,
			&tooldeck.PaginationOptions{PageSize: perPage})
		if err != nil {
			return fmt.Errorf("listing triggers: %w", err)
		}

		return outputTriggers(triggers, tooldeck.PageInfo{}, true)
	}

	resp, err := client.Triggers().List(ctx, params)
	if err != nil {
		return fmt.Errorf("listing triggers: %w", err)
	}

	return outputTriggers(resp.Items, resp.Page, false)
}

func outputTriggers(triggers []tooldeck.Trigger, page tooldeck.PageInfo, allPages bool) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(triggers)
	case constants.FormatYAML:
		return StandardYAMLRenderer(triggers)
	default:
		return renderTriggerTable(triggers, page, allPages)
	}
}

func renderTriggerTable(triggers []tooldeck.Trigger, page tooldeck.PageInfo, allPages bool) error {
	if len(triggers) == 0 {
		_, _ = os.Stdout.WriteString("No triggers found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "App", "Type", "Display Name")

	for _, trigger := range triggers {
		_ = table.Append(trigger.Name, trigger.AppKey, trigger.Type, trigger.DisplayName)
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

func newTriggersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get TRIGGER_NAME",
		Short: "Get trigger details",
		Long:  "Display detailed information about a specific catalog trigger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriggersGetCommand(args[0])
		},
	}
}

func runTriggersGetCommand(triggerName string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	trigger, err := client.Triggers().Get(ctx, triggerName)
	if err != nil {
		return fmt.Errorf("getting trigger '%s': %w", triggerName, err)
	}

	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(trigger)
	case constants.FormatYAML:
		return StandardYAMLRenderer(trigger)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("Name", trigger.Name)
		_ = table.Append("App", trigger.AppKey)
		_ = table.Append("Display Name", trigger.DisplayName)
		_ = table.Append("Description", trigger.Description)
		_ = table.Append("Type", trigger.Type)

		if err := table.Render(); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}

		if len(trigger.Config) > 0 {
			_, _ = fmt.Fprintf(os.Stdout, "\nConfig schema:\n%s\n", string(trigger.Config))
		}

		return nil
	}
}

func newTriggersEnableCommand() *cobra.Command {
	var (
		connectionID string
		config       map[string]string
	)

	cmd := &cobra.Command{
		Use:   "enable TRIGGER_NAME",
		Short: "Enable a trigger",
		Long:  "Enable a catalog trigger on a connection, creating a trigger instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriggersEnableCommand(args[0], connectionID, config)
		},
	}

	cmd.Flags().StringVar(&connectionID, "connection", "", "connection the trigger fires for (required)")
	cmd.Flags().StringToStringVar(&config, "parameters", nil, "trigger configuration (key=value)")

	return cmd
}

func runTriggersEnableCommand(triggerName, connectionID string, config map[string]string) error {
	if connectionID == "" {
		return ErrConnectionIDRequired
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	request := &tooldeck.TriggerEnableRequest{
		ConnectionID: connectionID,
	}

	if len(config) > 0 {
		request.Config = make(map[string]interface{}, len(config))
		for key, value := range config {
			request.Config[key] = value
		}
	}

	instance, err := client.Triggers().Enable(ctx, triggerName, request)
	if err != nil {
		return fmt.Errorf("enabling trigger '%s': %w", triggerName, err)
	}

	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(instance)
	case constants.FormatYAML:
		return StandardYAMLRenderer(instance)
	default:
		_, _ = fmt.Fprintf(os.Stdout, "Enabled trigger '%s' on connection '%s' (instance: %s)\n",
			instance.TriggerName, instance.ConnectionID, instance.ID)

		return nil
	}
}

func newTriggersDisableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disable INSTANCE_ID",
		Short: "Disable a trigger instance",
		Long:  "Disable an enabled trigger instance without deleting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriggersDisableCommand(args[0])
		},
	}
}

func runTriggersDisableCommand(instanceID string) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	instance, err := client.Triggers().Disable(ctx, instanceID)
	if err != nil {
		return fmt.Errorf("disabling trigger instance '%s': %w", instanceID, err)
	}

	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(instance)
	case constants.FormatYAML:
		return StandardYAMLRenderer(instance)
	default:
		_, _ = fmt.Fprintf(os.Stdout, "Disabled trigger instance '%s' (state: %s)\n", instance.ID, instance.State)

		return nil
	}
}
