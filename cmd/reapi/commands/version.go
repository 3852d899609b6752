package commands

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// VersionInfo describes the CLI build.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit"  yaml:"commit"`
	Built   string `json:"built"   yaml:"built"`
	Library string `json:"library" yaml:"library"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the reapi CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version: version,
				Commit:  commit,
				Built:   date,
				Library: reapi.Version,
			}

			return output(info, func() error {
				return renderTable([]any{"Property", "Value"}, func(table *tablewriter.Table) {
					_ = table.Append("Version", info.Version)
					_ = table.Append("Commit", info.Commit)
					_ = table.Append("Built", info.Built)
					_ = table.Append("Library", info.Library)
				})
			})
		},
	}
}
