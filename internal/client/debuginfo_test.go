package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

func TestDebugInfoClient(t *testing.T) {
	t.Parallel()

	archive := []byte{0x1f, 0x8b, 0x08, 0x00, 0xff, 0x00}

	tests := []struct {
		name string
		path string
		call func(reapi.DebugInfoClient, context.Context) ([]byte, error)
	}{
		{name: "cluster", path: "/v1/cluster/debuginfo", call: reapi.DebugInfoClient.Cluster},
		{name: "all nodes", path: "/v1/nodes/debuginfo", call: reapi.DebugInfoClient.AllNodes},
		{
			name: "node",
			path: "/v1/nodes/2/debuginfo",
			call: func(c reapi.DebugInfoClient, ctx context.Context) ([]byte, error) { return c.Node(ctx, 2) },
		},
		{name: "all databases", path: "/v1/bdbs/debuginfo", call: reapi.DebugInfoClient.AllDatabases},
		{
			name: "database",
			path: "/v1/bdbs/9/debuginfo",
			call: func(c reapi.DebugInfoClient, ctx context.Context) ([]byte, error) { return c.Database(ctx, 9) },
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.path, request.URL.Path)
				writer.Header().Set("Content-Type", "application/x-gzip")
				_, _ = writer.Write(archive)
			})

			data, err := testCase.call(client.DebugInfo(), context.Background())
			require.NoError(t, err)
			assert.Equal(t, archive, data)
		})
	}
}

func TestDebugInfoClient_Error(t *testing.T) {
	t.Parallel()

	client := NewTestClient(t, func(writer http.ResponseWriter, _ *http.Request) {
		WriteJSON(writer, http.StatusForbidden, map[string]string{"error_code": "insufficient_permissions"})
	})

	data, err := client.DebugInfo().Cluster(context.Background())
	require.Error(t, err)
	assert.Nil(t, data)
	assert.Equal(t, reapi.KindAPI, reapi.KindOf(err))
	assert.Equal(t, http.StatusForbidden, reapi.StatusCodeOf(err))
}
