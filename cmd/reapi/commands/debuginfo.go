package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
)

// DebugInfoOptions holds the options for downloading a support package.
type DebugInfoOptions struct {
	Node         int
	Database     int
	AllNodes     bool
	AllDatabases bool
	File         string
	Force        bool
}

// NewDebugInfoCommand creates the debuginfo command group.
func NewDebugInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "debuginfo",
		Aliases: []string{"support-package"},
		Short:   "Download support packages",
	}

	cmd.AddCommand(newDebugInfoDownloadCommand())

	return cmd
}

func newDebugInfoDownloadCommand() *cobra.Command {
	var opts DebugInfoOptions

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a debug info archive",
		Long:  "Download the cluster debug info archive, or the archive of one node or database",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			debugInfo := client.DebugInfo()

			var data []byte

			switch {
			case cmd.Flags().Changed("node"):
				data, err = debugInfo.Node(ctx, opts.Node)
			case cmd.Flags().Changed("database"):
				data, err = debugInfo.Database(ctx, opts.Database)
			case opts.AllNodes:
				data, err = debugInfo.AllNodes(ctx)
			case opts.AllDatabases:
				data, err = debugInfo.AllDatabases(ctx)
			default:
				data, err = debugInfo.Cluster(ctx)
			}

			if err != nil {
				return err
			}

			file := opts.File
			if file == "" {
				file = "debuginfo-" + time.Now().Format("20060102-150405") + ".tar.gz"
			}

			if err := writeFile(file, data, opts.Force); err != nil {
				return err
			}

			_, err = fmt.Fprintf(stdout, "Saved %d bytes to %s\n", len(data), file)

			return err
		},
	}

	cmd.Flags().IntVar(&opts.Node, "node", 0, "download the archive of one node")
	cmd.Flags().IntVar(&opts.Database, "database", 0, "download the archive of one database")
	cmd.Flags().BoolVar(&opts.AllNodes, "all-nodes", false, "download the archive of every node")
	cmd.Flags().BoolVar(&opts.AllDatabases, "all-databases", false, "download the archive of every database")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "output file")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing file")
	cmd.MarkFlagsMutuallyExclusive("node", "database", "all-nodes", "all-databases")

	return cmd
}

func writeFile(path string, data []byte, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return fmt.Errorf("%w: %s", constants.ErrOutputFileExists, path)
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
