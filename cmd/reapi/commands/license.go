package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// NewLicenseCommand creates the license command group.
func NewLicenseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "Inspect and install the cluster license",
	}

	cmd.AddCommand(newLicenseGetCommand())
	cmd.AddCommand(newLicenseUsageCommand())
	cmd.AddCommand(newLicenseUpdateCommand())

	return cmd
}

func renderLicense(license *reapi.License) error {
	return renderTable([]any{"Property", "Value"}, func(table *tablewriter.Table) {
		_ = table.Append("Expiration", orNA(license.ExpirationDate))
		_ = table.Append("Expired", deref(license.Expired))
		_ = table.Append("Shards Limit", deref(license.ShardsLimit))
		_ = table.Append("Features", orNA(strings.Join(license.Features, ", ")))
	})
}

func newLicenseGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the installed license",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			license, err := client.License().Get(ctx)
			if err != nil {
				return err
			}

			return output(license, func() error { return renderLicense(license) })
		},
	}
}

func newLicenseUsageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show license usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			usage, err := client.License().Usage(ctx)
			if err != nil {
				return err
			}

			return output(usage, nil)
		},
	}
}

func newLicenseUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update FILE",
		Short: "Install a license key from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading license file: %w", err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			license, err := client.License().Update(ctx, &reapi.LicenseUpdateRequest{License: strings.TrimSpace(string(key))})
			if err != nil {
				return err
			}

			return output(license, func() error { return renderLicense(license) })
		},
	}
}
