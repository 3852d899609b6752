//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

func TestLiveCluster_Overview(t *testing.T) {
	client := newLiveClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	overview, err := client.Overview(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, overview.Cluster.Name)
	assert.NotEmpty(t, overview.Nodes)
	require.NotNil(t, overview.License)
}

func TestLiveCluster_MissingDatabase(t *testing.T) {
	client := newLiveClient(t)

	_, err := client.Databases().Get(context.Background(), 999999)
	require.Error(t, err)
	assert.True(t, reapi.IsNotFound(err))
}

func TestLiveCluster_StatsStream(t *testing.T) {
	client := newLiveClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	stream := client.Stats().StreamCluster(ctx, time.Second)

	for range 2 {
		stats, err, ok := stream.Next()
		require.True(t, ok)
		require.NoError(t, err)
		assert.NotEmpty(t, stats)
	}
}

func TestLiveCluster_LogStream(t *testing.T) {
	client := newLiveClient(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	previous := ""

	for entry, err := range client.Logs().Stream(ctx, time.Second, 20).All() {
		require.NoError(t, err)
		assert.GreaterOrEqual(t, entry.Time, previous)

		previous = entry.Time
	}
}

func TestLiveCluster_Raw(t *testing.T) {
	client := newLiveClient(t)

	result, err := client.Raw().Execute(context.Background(), "get", "/v1/cluster", nil)
	require.NoError(t, err)

	cluster, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, cluster, "name")
}
