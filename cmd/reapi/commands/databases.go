package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// NewDatabasesCommand creates the databases command group.
func NewDatabasesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "databases",
		Aliases: []string{"database", "db", "bdbs"},
		Short:   "Manage databases",
		Long:    "List, inspect, create, delete and watch Redis Enterprise databases",
	}

	cmd.AddCommand(newDatabasesListCommand())
	cmd.AddCommand(newDatabasesGetCommand())
	cmd.AddCommand(newDatabasesCreateCommand())
	cmd.AddCommand(newDatabasesDeleteCommand())
	cmd.AddCommand(newDatabasesActionCommand("flush", "Remove all keys from a database", reapi.DatabasesClient.Flush))
	cmd.AddCommand(newDatabasesActionCommand("backup", "Start a database backup", reapi.DatabasesClient.Backup))
	cmd.AddCommand(newDatabasesWatchCommand())

	return cmd
}

func renderDatabases(databases []reapi.Database) error {
	return renderTable([]any{"UID", "Name", "Type", "Status", "Memory", "Port", "Shards", "Replication"},
		func(table *tablewriter.Table) {
			for _, db := range databases {
				_ = table.Append(strconv.Itoa(db.UID), db.Name, orNA(db.Type), deref(db.Status),
					deref(db.MemorySize), deref(db.Port), deref(db.ShardsCount), deref(db.Replication))
			}
		})
}

func renderDatabase(db *reapi.Database) error {
	return renderTable([]any{"Property", "Value"}, func(table *tablewriter.Table) {
		_ = table.Append("UID", strconv.Itoa(db.UID))
		_ = table.Append("Name", db.Name)
		_ = table.Append("Type", orNA(db.Type))
		_ = table.Append("Status", deref(db.Status))
		_ = table.Append("Version", orNA(db.Version))
		_ = table.Append("Memory Size", deref(db.MemorySize))
		_ = table.Append("Port", deref(db.Port))
		_ = table.Append("Shards", deref(db.ShardsCount))
		_ = table.Append("Replication", deref(db.Replication))
		_ = table.Append("Persistence", orNA(db.DataPersistence))
		_ = table.Append("Eviction Policy", orNA(db.EvictionPolicy))

		for _, endpoint := range db.Endpoints {
			_ = table.Append("Endpoint", fmt.Sprintf("%s:%d", orNA(endpoint.DNSAddressMaster), endpoint.Port))
		}

		_ = table.Append("Created", orNA(db.CreatedTime))
	})
}

func newDatabasesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List databases",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			databases, err := client.Databases().List(ctx)
			if err != nil {
				return err
			}

			return output(databases, func() error { return renderDatabases(databases) })
		},
	}
}

func newDatabasesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get UID",
		Short: "Show a database",
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

			db, err := client.Databases().Get(ctx, uid)
			if err != nil {
				return err
			}

			return output(db, func() error { return renderDatabase(db) })
		},
	}
}

// DatabasesCreateOptions holds the options for creating a database.
type DatabasesCreateOptions struct {
	Name        string
	MemorySize  int64
	Port        int
	Shards      int
	Replication bool
	Persistence string
	Eviction    string
}

func newDatabasesCreateCommand() *cobra.Command {
	var opts DatabasesCreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a database",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			request := &reapi.CreateDatabaseRequest{
				Name:            opts.Name,
				MemorySize:      opts.MemorySize,
				DataPersistence: opts.Persistence,
				EvictionPolicy:  opts.Eviction,
			}

			if cmd.Flags().Changed("port") {
				request.Port = &opts.Port
			}

			if cmd.Flags().Changed("shards") {
				request.ShardsCount = &opts.Shards
			}

			if cmd.Flags().Changed("replication") {
				request.Replication = &opts.Replication
			}

			db, err := client.Databases().Create(ctx, request)
			if err != nil {
				return err
			}

			return output(db, func() error { return renderDatabase(db) })
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "database name")
	cmd.Flags().Int64Var(&opts.MemorySize, "memory", 100*1024*1024, "memory limit in bytes")
	cmd.Flags().IntVar(&opts.Port, "port", 0, "database port")
	cmd.Flags().IntVar(&opts.Shards, "shards", 1, "number of primary shards")
	cmd.Flags().BoolVar(&opts.Replication, "replication", false, "enable replication")
	cmd.Flags().StringVar(&opts.Persistence, "persistence", "", "data persistence (disabled, aof, snapshot)")
	cmd.Flags().StringVar(&opts.Eviction, "eviction-policy", "", "eviction policy")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newDatabasesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete UID",
		Short: "Delete a database",
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

			result, err := client.Databases().DeleteWithResult(ctx, uid)
			if err != nil {
				return err
			}

			return output(result, func() error {
				_, err := fmt.Fprintf(stdout, "Database %d deleted\n", uid)

				return err
			})
		},
	}
}

type databaseAction func(reapi.DatabasesClient, context.Context, int) (*reapi.ActionResponse, error)

func newDatabasesActionCommand(use, short string, action databaseAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " UID",
		Short: short,
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

			response, err := action(client.Databases(), ctx, uid)
			if err != nil {
				return err
			}

			return output(response, func() error {
				return renderTable([]any{"Action UID", "Description"}, func(table *tablewriter.Table) {
					_ = table.Append(response.ActionUID, orNA(response.Description))
				})
			})
		},
	}
}

func newDatabasesWatchCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch UID",
		Short: "Poll a database and report status changes",
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

			return consumeStream(client.Databases().Watch(ctx, uid, interval))
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", constants.DefaultPollInterval, "poll interval")

	return cmd
}
