package commands

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// NewNodesCommand creates the nodes command group.
func NewNodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nodes",
		Aliases: []string{"node"},
		Short:   "Inspect cluster nodes",
	}

	cmd.AddCommand(newNodesListCommand())
	cmd.AddCommand(newNodesGetCommand())

	return cmd
}

func renderNodes(nodes []reapi.Node) error {
	return renderTable([]any{"UID", "Address", "Status", "Shards", "Memory", "Version", "Rack"},
		func(table *tablewriter.Table) {
			for _, node := range nodes {
				_ = table.Append(strconv.Itoa(node.UID), node.Addr, deref(node.Status), deref(node.ShardCount),
					deref(node.TotalMemory), orNA(node.SoftwareVersion), orNA(node.RackID))
			}
		})
}

func newNodesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			nodes, err := client.Nodes().List(ctx)
			if err != nil {
				return err
			}

			return output(nodes, func() error { return renderNodes(nodes) })
		},
	}
}

func newNodesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get UID",
		Short: "Show a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := parseUID(args[0])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			node, err := client.Nodes().Get(ctx, uid)
			if err != nil {
				return err
			}

			return output(node, func() error { return renderNodes([]reapi.Node{*node}) })
		},
	}
}
