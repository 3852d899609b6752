package client

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/http"
	"github.com/fivetwenty-io/reapi-client/internal/poll"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

const statsLastSuffix = "/stats/last"

// StatsClient implements reapi.StatsClient.
type StatsClient struct {
	httpClient *http.Client
	streamOpts []poll.Option
}

// NewStatsClient creates a new stats client.
func NewStatsClient(httpClient *http.Client, streamOpts ...poll.Option) *StatsClient {
	return &StatsClient{
		httpClient: httpClient,
		streamOpts: streamOpts,
	}
}

func (c *StatsClient) last(ctx context.Context, path, what string) (reapi.Stats, error) {
	var stats reapi.Stats

	err := c.httpClient.Get(ctx, path, &stats)
	if err != nil {
		return nil, fmt.Errorf("getting %s stats: %w", what, err)
	}

	return stats, nil
}

// ClusterLast implements reapi.StatsClient.ClusterLast.
func (c *StatsClient) ClusterLast(ctx context.Context) (reapi.Stats, error) {
	return c.last(ctx, constants.APIPathClusterLast, "cluster")
}

// NodeLast implements reapi.StatsClient.NodeLast.
func (c *StatsClient) NodeLast(ctx context.Context, uid int) (reapi.Stats, error) {
	return c.last(ctx, nodePath(uid)+statsLastSuffix, "node")
}

// DatabaseLast implements reapi.StatsClient.DatabaseLast.
func (c *StatsClient) DatabaseLast(ctx context.Context, uid int) (reapi.Stats, error) {
	return c.last(ctx, databasePath(uid)+statsLastSuffix, "database")
}

// StreamCluster implements reapi.StatsClient.StreamCluster.
func (c *StatsClient) StreamCluster(ctx context.Context, interval time.Duration) reapi.Stream[reapi.Stats] {
	return poll.Republish(ctx, interval, c.ClusterLast, c.streamOpts...)
}

// StreamNode implements reapi.StatsClient.StreamNode.
func (c *StatsClient) StreamNode(ctx context.Context, uid int, interval time.Duration) reapi.Stream[reapi.Stats] {
	return poll.Republish(ctx, interval, func(ctx context.Context) (reapi.Stats, error) {
		return c.NodeLast(ctx, uid)
	}, c.streamOpts...)
}

// StreamDatabase implements reapi.StatsClient.StreamDatabase.
func (c *StatsClient) StreamDatabase(ctx context.Context, uid int, interval time.Duration) reapi.Stream[reapi.Stats] {
	return poll.Republish(ctx, interval, func(ctx context.Context) (reapi.Stats, error) {
		return c.DatabaseLast(ctx, uid)
	}, c.streamOpts...)
}
