package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/http"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// ClusterClient implements reapi.ClusterClient.
type ClusterClient struct {
	httpClient *http.Client
}

// NewClusterClient creates a new cluster client.
func NewClusterClient(httpClient *http.Client) *ClusterClient {
	return &ClusterClient{
		httpClient: httpClient,
	}
}

// Info implements reapi.ClusterClient.Info.
func (c *ClusterClient) Info(ctx context.Context) (*reapi.ClusterInfo, error) {
	var info reapi.ClusterInfo

	err := c.httpClient.Get(ctx, constants.APIPathCluster, &info)
	if err != nil {
		return nil, fmt.Errorf("getting cluster info: %w", err)
	}

	return &info, nil
}

// Update implements reapi.ClusterClient.Update.
func (c *ClusterClient) Update(ctx context.Context, updates map[string]any) (any, error) {
	result, err := c.httpClient.PutRaw(ctx, constants.APIPathCluster, updates)
	if err != nil {
		return nil, fmt.Errorf("updating cluster: %w", err)
	}

	return result, nil
}

// Settings implements reapi.ClusterClient.Settings.
func (c *ClusterClient) Settings(ctx context.Context) (any, error) {
	result, err := c.httpClient.GetRaw(ctx, constants.APIPathClusterPolicy)
	if err != nil {
		return nil, fmt.Errorf("getting cluster settings: %w", err)
	}

	return result, nil
}

// Topology implements reapi.ClusterClient.Topology.
func (c *ClusterClient) Topology(ctx context.Context) (any, error) {
	result, err := c.httpClient.GetRaw(ctx, constants.APIPathClusterTopology)
	if err != nil {
		return nil, fmt.Errorf("getting cluster topology: %w", err)
	}

	return result, nil
}

// Stats implements reapi.ClusterClient.Stats.
func (c *ClusterClient) Stats(ctx context.Context) (reapi.Stats, error) {
	var stats reapi.Stats

	err := c.httpClient.Get(ctx, constants.APIPathClusterStats, &stats)
	if err != nil {
		return nil, fmt.Errorf("getting cluster stats: %w", err)
	}

	return stats, nil
}

// Bootstrap implements reapi.ClusterClient.Bootstrap. An empty action
// defaults to create_cluster; the caller's request is left untouched.
func (c *ClusterClient) Bootstrap(ctx context.Context, request *reapi.BootstrapRequest) (any, error) {
	var body reapi.BootstrapRequest
	if request != nil {
		body = *request
	}

	if body.Action == "" {
		body.Action = constants.ActionBootstrap
	}

	result, err := c.httpClient.PostTolerant(ctx, constants.APIPathBootstrap, &body)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping cluster: %w", err)
	}

	return result, nil
}
