package commands

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// NewOverviewCommand creates the overview command.
func NewOverviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Summarize the cluster",
		Long:  "Fetch cluster info, nodes, databases and license in parallel and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			overview, err := client.Overview(ctx)
			if err != nil {
				return err
			}

			return output(overview, func() error { return renderOverview(overview) })
		},
	}
}

func renderOverview(overview *reapi.Overview) error {
	activeDatabases := 0

	for _, db := range overview.Databases {
		if db.Status != nil && *db.Status == "active" {
			activeDatabases++
		}
	}

	return renderTable([]any{"Property", "Value"}, func(table *tablewriter.Table) {
		_ = table.Append("Cluster", overview.Cluster.Name)
		_ = table.Append("Nodes", strconv.Itoa(len(overview.Nodes)))
		_ = table.Append("Databases", strconv.Itoa(len(overview.Databases)))
		_ = table.Append("Active Databases", strconv.Itoa(activeDatabases))
		_ = table.Append("License Expires", orNA(overview.License.ExpirationDate))
		_ = table.Append("License Expired", deref(overview.License.Expired))
	})
}
