package commands

import (
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// NewClusterCommand creates the cluster command group.
func NewClusterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Inspect and bootstrap the cluster",
		Long:  "Show cluster information, settings and stats, or bootstrap a new cluster",
	}

	cmd.AddCommand(newClusterInfoCommand())
	cmd.AddCommand(newClusterRawCommand("settings", "Show cluster policy settings", reapi.ClusterClient.Settings))
	cmd.AddCommand(newClusterRawCommand("topology", "Show cluster topology", reapi.ClusterClient.Topology))
	cmd.AddCommand(newClusterStatsCommand())
	cmd.AddCommand(newClusterBootstrapCommand())

	return cmd
}

func newClusterInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cluster information",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			info, err := client.Cluster().Info(ctx)
			if err != nil {
				return err
			}

			return output(info, func() error {
				return renderTable([]any{"Property", "Value"}, func(table *tablewriter.Table) {
					_ = table.Append("Name", info.Name)
					_ = table.Append("Created", orNA(info.CreatedTime))
					_ = table.Append("Rack Aware", deref(info.RackAware))
					_ = table.Append("Email Alerts", deref(info.EmailAlerts))
				})
			})
		},
	}
}

func newClusterRawCommand(use, short string, fetch func(reapi.ClusterClient, context.Context) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result, err := fetch(client.Cluster(), ctx)
			if err != nil {
				return err
			}

			return output(result, nil)
		},
	}
}

func newClusterStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cluster statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			stats, err := client.Cluster().Stats(ctx)
			if err != nil {
				return err
			}

			return output(stats, nil)
		},
	}
}

// ClusterBootstrapOptions holds the options for bootstrapping a cluster.
type ClusterBootstrapOptions struct {
	Name     string
	Username string
	Password string
}

func newClusterBootstrapCommand() *cobra.Command {
	var opts ClusterBootstrapOptions

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create a new cluster on this node",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			request := &reapi.BootstrapRequest{
				Cluster: &reapi.BootstrapCluster{Name: opts.Name},
			}

			if opts.Username != "" {
				request.Credentials = &reapi.BootstrapCredentials{
					Username: opts.Username,
					Password: opts.Password,
				}
			}

			result, err := client.Cluster().Bootstrap(ctx, request)
			if err != nil {
				return err
			}

			return output(result, func() error {
				_, err := fmt.Fprintf(stdout, "Cluster %s bootstrapped\n", opts.Name)

				return err
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "cluster FQDN")
	cmd.Flags().StringVar(&opts.Username, "admin-user", "", "admin username of the new cluster")
	cmd.Flags().StringVar(&opts.Password, "admin-password", "", "admin password of the new cluster")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
