package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/http"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// NodesClient implements reapi.NodesClient.
type NodesClient struct {
	httpClient *http.Client
}

// NewNodesClient creates a new nodes client.
func NewNodesClient(httpClient *http.Client) *NodesClient {
	return &NodesClient{
		httpClient: httpClient,
	}
}

func nodePath(uid int) string {
	return constants.APIPathNodes + "/" + strconv.Itoa(uid)
}

// List implements reapi.NodesClient.List.
func (c *NodesClient) List(ctx context.Context) ([]reapi.Node, error) {
	var nodes []reapi.Node

	err := c.httpClient.Get(ctx, constants.APIPathNodes, &nodes)
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}

	return nodes, nil
}

// Get implements reapi.NodesClient.Get.
func (c *NodesClient) Get(ctx context.Context, uid int) (*reapi.Node, error) {
	var node reapi.Node

	err := c.httpClient.Get(ctx, nodePath(uid), &node)
	if err != nil {
		return nil, fmt.Errorf("getting node: %w", err)
	}

	return &node, nil
}

// Update implements reapi.NodesClient.Update.
func (c *NodesClient) Update(ctx context.Context, uid int, updates map[string]any) (any, error) {
	result, err := c.httpClient.PutRaw(ctx, nodePath(uid), updates)
	if err != nil {
		return nil, fmt.Errorf("updating node: %w", err)
	}

	return result, nil
}
