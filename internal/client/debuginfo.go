package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/http"
)

const debugInfoSuffix = "/debuginfo"

// DebugInfoClient implements reapi.DebugInfoClient.
type DebugInfoClient struct {
	httpClient *http.Client
}

// NewDebugInfoClient creates a new debug info client.
func NewDebugInfoClient(httpClient *http.Client) *DebugInfoClient {
	return &DebugInfoClient{
		httpClient: httpClient,
	}
}

func (c *DebugInfoClient) download(ctx context.Context, path, what string) ([]byte, error) {
	data, err := c.httpClient.GetBinary(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("downloading %s debug info: %w", what, err)
	}

	return data, nil
}

// Cluster implements reapi.DebugInfoClient.Cluster.
func (c *DebugInfoClient) Cluster(ctx context.Context) ([]byte, error) {
	return c.download(ctx, constants.APIPathClusterDebug, "cluster")
}

// AllNodes implements reapi.DebugInfoClient.AllNodes.
func (c *DebugInfoClient) AllNodes(ctx context.Context) ([]byte, error) {
	return c.download(ctx, constants.APIPathNodesDebug, "nodes")
}

// Node implements reapi.DebugInfoClient.Node.
func (c *DebugInfoClient) Node(ctx context.Context, uid int) ([]byte, error) {
	return c.download(ctx, nodePath(uid)+debugInfoSuffix, "node")
}

// AllDatabases implements reapi.DebugInfoClient.AllDatabases.
func (c *DebugInfoClient) AllDatabases(ctx context.Context) ([]byte, error) {
	return c.download(ctx, constants.APIPathDatabasesDebug, "databases")
}

// Database implements reapi.DebugInfoClient.Database.
func (c *DebugInfoClient) Database(ctx context.Context, uid int) ([]byte, error) {
	return c.download(ctx, databasePath(uid)+debugInfoSuffix, "database")
}
