package commands

import (
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// NewActionsCommand creates the actions command group.
func NewActionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "actions",
		Aliases: []string{"action", "tasks"},
		Short:   "Track asynchronous cluster actions",
	}

	cmd.AddCommand(newActionsListCommand())
	cmd.AddCommand(newActionsGetCommand())
	cmd.AddCommand(newActionsWatchCommand())

	return cmd
}

func renderActions(actions []reapi.Action) error {
	return renderTable([]any{"Action UID", "Name", "Status", "Progress", "Object"}, func(table *tablewriter.Table) {
		for _, action := range actions {
			_ = table.Append(action.ActionUID, orNA(action.Name), deref(action.Status),
				deref(action.Progress), orNA(action.ObjectName))
		}
	})
}

func newActionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List running and recent actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			actions, err := client.Actions().List(ctx)
			if err != nil {
				return err
			}

			return output(actions, func() error { return renderActions(actions) })
		},
	}
}

func newActionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ACTION_UID",
		Short: "Show an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			action, err := client.Actions().Get(ctx, args[0])
			if err != nil {
				return err
			}

			return output(action, func() error { return renderActions([]reapi.Action{*action}) })
		},
	}
}

func newActionsWatchCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch ACTION_UID",
		Short: "Poll an action and report status changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			return consumeStream(client.Actions().Watch(ctx, args[0], interval))
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", constants.DefaultPollInterval, "poll interval")

	return cmd
}
