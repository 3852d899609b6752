package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewUsageReportCommand creates the usage-report command group.
func NewUsageReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage-report",
		Short: "Download usage reports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "latest",
		Short: "Show the latest usage report",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			report, err := client.UsageReport().Latest(ctx)
			if err != nil {
				return err
			}

			return output(report, nil)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "csv REPORT_ID",
		Short: "Print a usage report as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			csv, err := client.UsageReport().CSV(ctx, args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(stdout, csv)

			return err
		},
	})

	return cmd
}
