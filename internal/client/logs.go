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

// LogsClient implements reapi.LogsClient.
type LogsClient struct {
	httpClient *http.Client
	streamOpts []poll.Option
}

// NewLogsClient creates a new logs client.
func NewLogsClient(httpClient *http.Client, streamOpts ...poll.Option) *LogsClient {
	return &LogsClient{
		httpClient: httpClient,
		streamOpts: streamOpts,
	}
}

// List implements reapi.LogsClient.List.
func (c *LogsClient) List(ctx context.Context, query *reapi.LogsQuery) ([]reapi.LogEntry, error) {
	path := constants.APIPathLogs
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var entries []reapi.LogEntry

	err := c.httpClient.Get(ctx, path, &entries)
	if err != nil {
		return nil, fmt.Errorf("listing logs: %w", err)
	}

	return entries, nil
}

// Stream implements reapi.LogsClient.Stream. Entries are requested oldest
// first, starting after the newest entry already yielded.
func (c *LogsClient) Stream(ctx context.Context, interval time.Duration, limit int) reapi.Stream[reapi.LogEntry] {
	if limit <= 0 {
		limit = constants.DefaultLogStreamLimit
	}

	return poll.Cursor(ctx, interval, func(ctx context.Context, cursor string) ([]reapi.LogEntry, error) {
		return c.List(ctx, &reapi.LogsQuery{
			Stime: cursor,
			Order: reapi.OrderAsc,
			Limit: limit,
		})
	}, func(entry reapi.LogEntry) string {
		return entry.Time
	}, c.streamOpts...)
}
