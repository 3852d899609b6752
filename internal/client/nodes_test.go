package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

func TestNodesClient_List(t *testing.T) {
	t.Parallel()

	RunGetTests(t, []TestGetOperation[[]reapi.Node]{
		{
			Name:         "lists nodes",
			ExpectedPath: "/v1/nodes",
			StatusCode:   http.StatusOK,
			Response: []map[string]interface{}{
				{"uid": 1, "addr": "10.0.0.1", "status": "active", "shard_count": 3, "bigstore_driver": "speedb"},
				{"uid": 2, "addr": "10.0.0.2"},
			},
			Check: func(t *testing.T, nodes []reapi.Node) {
				t.Helper()
				require.Len(t, nodes, 2)
				assert.Equal(t, "10.0.0.1", nodes[0].Addr)
				require.NotNil(t, nodes[0].ShardCount)
				assert.Equal(t, 3, *nodes[0].ShardCount)
				assert.Contains(t, nodes[0].Extra, "bigstore_driver")
				assert.Nil(t, nodes[1].Status)
			},
		},
		{
			Name:         "unauthorized",
			ExpectedPath: "/v1/nodes",
			StatusCode:   http.StatusUnauthorized,
			Response:     map[string]string{"error_code": "unauthorized"},
			WantErr:      true,
			WantKind:     reapi.KindUnauthorized,
		},
		{
			Name:         "wrong shape",
			ExpectedPath: "/v1/nodes",
			StatusCode:   http.StatusOK,
			Response:     map[string]interface{}{"uid": 1},
			WantErr:      true,
		},
	}, func(c *Client) func(context.Context) ([]reapi.Node, error) {
		return c.Nodes().List
	})
}

func TestNodesClient_Get(t *testing.T) {
	t.Parallel()

	RunGetTests(t, []TestGetOperation[*reapi.Node]{
		{
			Name:         "gets node",
			ExpectedPath: "/v1/nodes/2",
			StatusCode:   http.StatusOK,
			Response:     map[string]interface{}{"uid": 2, "software_version": "7.4.2-54"},
			Check: func(t *testing.T, node *reapi.Node) {
				t.Helper()
				assert.Equal(t, 2, node.UID)
				assert.Equal(t, "7.4.2-54", node.SoftwareVersion)
			},
		},
		{
			Name:         "missing node",
			ExpectedPath: "/v1/nodes/2",
			StatusCode:   http.StatusNotFound,
			Response:     map[string]string{"error_code": "node_not_found"},
			WantErr:      true,
			WantKind:     reapi.KindNotFound,
		},
	}, func(c *Client) func(context.Context) (*reapi.Node, error) {
		return func(ctx context.Context) (*reapi.Node, error) {
			return c.Nodes().Get(ctx, 2)
		}
	})
}

func TestNodesClient_Update(t *testing.T) {
	t.Parallel()

	client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/nodes/1", request.URL.Path)
		assert.Equal(t, http.MethodPut, request.Method)
		assert.Equal(t, map[string]interface{}{"accept_servers": false}, decodeRequest(t, request))

		WriteJSON(writer, http.StatusOK, map[string]interface{}{"uid": 1, "accept_servers": false})
	})

	result, err := client.Nodes().Update(context.Background(), 1, map[string]any{"accept_servers": false})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"uid": float64(1), "accept_servers": false}, result)
}
