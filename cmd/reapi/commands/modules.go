package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// NewModulesCommand creates the modules command group.
func NewModulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "modules",
		Aliases: []string{"module"},
		Short:   "Manage Redis modules",
	}

	cmd.AddCommand(newModulesListCommand())
	cmd.AddCommand(newModulesGetCommand())
	cmd.AddCommand(newModulesDeleteCommand())
	cmd.AddCommand(newModulesUploadCommand())

	return cmd
}

func renderModules(modules []reapi.Module) error {
	return renderTable([]any{"UID", "Name", "Version", "Capabilities"}, func(table *tablewriter.Table) {
		for _, module := range modules {
			_ = table.Append(module.UID, module.ModuleName, orNA(module.SemanticVersion),
				strings.Join(module.Capabilities, ", "))
		}
	})
}

func newModulesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			modules, err := client.Modules().List(ctx)
			if err != nil {
				return err
			}

			return output(modules, func() error { return renderModules(modules) })
		},
	}
}

func newModulesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get UID",
		Short: "Show a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			module, err := client.Modules().Get(ctx, args[0])
			if err != nil {
				return err
			}

			return output(module, func() error { return renderModules([]reapi.Module{*module}) })
		},
	}
}

func newModulesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete UID",
		Short: "Delete a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			if err := client.Modules().Delete(ctx, args[0]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(stdout, "Module %s deleted\n", args[0])

			return err
		},
	}
}

func newModulesUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a module package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading module package: %w", err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result, err := client.Modules().Upload(ctx, data, filepath.Base(args[0]))
			if err != nil {
				return err
			}

			return output(result, nil)
		},
	}
}
