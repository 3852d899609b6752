package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// StatsOptions holds the options shared by the stats commands.
type StatsOptions struct {
	Interval time.Duration
	Once     bool
}

// NewStatsCommand creates the stats command group.
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"metrics"},
		Short:   "Stream live statistics",
		Long:    "Poll the last-interval statistics of the cluster, a node or a database",
	}

	cmd.AddCommand(newStatsCommand("cluster", "Stream cluster statistics", false,
		func(ctx context.Context, c reapi.StatsClient, _ int, opts StatsOptions) reapi.Stream[reapi.Stats] {
			return c.StreamCluster(ctx, opts.Interval)
		}))
	cmd.AddCommand(newStatsCommand("node", "Stream node statistics", true,
		func(ctx context.Context, c reapi.StatsClient, uid int, opts StatsOptions) reapi.Stream[reapi.Stats] {
			return c.StreamNode(ctx, uid, opts.Interval)
		}))
	cmd.AddCommand(newStatsCommand("database", "Stream database statistics", true,
		func(ctx context.Context, c reapi.StatsClient, uid int, opts StatsOptions) reapi.Stream[reapi.Stats] {
			return c.StreamDatabase(ctx, uid, opts.Interval)
		}))

	return cmd
}

type statsStreamFunc func(ctx context.Context, c reapi.StatsClient, uid int, opts StatsOptions) reapi.Stream[reapi.Stats]

func newStatsCommand(use, short string, needsUID bool, open statsStreamFunc) *cobra.Command {
	var opts StatsOptions

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uid := 0

			if needsUID {
				parsed, err := parseUID(args[0])
				if err != nil {
					return err
				}

				uid = parsed
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			stream := open(ctx, client.Stats(), uid, opts)

			if opts.Once {
				stats, err, ok := stream.Next()
				if !ok {
					return ctx.Err()
				}

				if err != nil {
					return err
				}

				return output(stats, nil)
			}

			return consumeStream(stream)
		},
	}

	if needsUID {
		cmd.Use = use + " UID"
		cmd.Args = cobra.ExactArgs(1)
	}

	cmd.Flags().DurationVar(&opts.Interval, "interval", constants.DefaultPollInterval, "poll interval")
	cmd.Flags().BoolVar(&opts.Once, "once", false, "print one snapshot and exit")

	return cmd
}
