//go:build integration

package integration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
	"github.com/fivetwenty-io/reapi-client/pkg/reclient"
)

// newLiveClient returns a client for the cluster named by the
// REDIS_ENTERPRISE_* environment, or skips the test when none is configured.
func newLiveClient(t *testing.T) reapi.Client {
	t.Helper()

	if os.Getenv("REDIS_ENTERPRISE_URL") == "" || os.Getenv("REDIS_ENTERPRISE_PASSWORD") == "" {
		t.Skip("REDIS_ENTERPRISE_URL and REDIS_ENTERPRISE_PASSWORD must be set")
	}

	client, err := reclient.NewFromEnv()
	require.NoError(t, err)

	return client
}
