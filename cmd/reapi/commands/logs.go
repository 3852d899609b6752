package commands

import (
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// NewLogsCommand creates the logs command group.
func NewLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logs",
		Aliases: []string{"log", "events"},
		Short:   "Read the cluster event log",
	}

	cmd.AddCommand(newLogsListCommand())
	cmd.AddCommand(newLogsTailCommand())

	return cmd
}

func newLogsListCommand() *cobra.Command {
	var query reapi.LogsQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List event log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			entries, err := client.Logs().List(ctx, &query)
			if err != nil {
				return err
			}

			return output(entries, func() error {
				return renderTable([]any{"Time", "Type", "Details"}, func(table *tablewriter.Table) {
					for _, entry := range entries {
						_ = table.Append(entry.Time, entry.Type, extraSummary(entry.Extra))
					}
				})
			})
		},
	}

	cmd.Flags().StringVar(&query.Stime, "since", "", "start time (ISO 8601)")
	cmd.Flags().StringVar(&query.Etime, "until", "", "end time (ISO 8601)")
	cmd.Flags().StringVar(&query.Order, "order", "", "sort order (asc, desc)")
	cmd.Flags().IntVar(&query.Limit, "limit", 0, "maximum number of entries")
	cmd.Flags().IntVar(&query.Offset, "offset", 0, "number of entries to skip")

	return cmd
}

func newLogsTailCommand() *cobra.Command {
	var (
		interval time.Duration
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow new event log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			return consumeStream(client.Logs().Stream(ctx, interval, limit))
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", constants.DefaultPollInterval, "poll interval")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultLogStreamLimit, "maximum entries per poll")

	return cmd
}
