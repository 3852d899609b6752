package http_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	reapihttp "github.com/fivetwenty-io/reapi-client/internal/http"
)

func TestJoinURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "no slashes", base: "https://h:9443", path: "v1/bdbs", want: "https://h:9443/v1/bdbs"},
		{name: "trailing slash", base: "https://h:9443/", path: "v1/bdbs", want: "https://h:9443/v1/bdbs"},
		{name: "leading slash", base: "https://h:9443", path: "/v1/bdbs", want: "https://h:9443/v1/bdbs"},
		{name: "both slashes", base: "https://h:9443/", path: "/v1/bdbs", want: "https://h:9443/v1/bdbs"},
		{name: "repeated slashes", base: "https://h:9443//", path: "//v1/bdbs", want: "https://h:9443/v1/bdbs"},
		{name: "query passes through", base: "https://h:9443", path: "/v1/logs?order=asc&stime=2024-01-01T00:00:00Z", want: "https://h:9443/v1/logs?order=asc&stime=2024-01-01T00:00:00Z"},
		{name: "no encoding", base: "https://h:9443", path: "/v1/modules/a b", want: "https://h:9443/v1/modules/a b"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, reapihttp.JoinURL(testCase.base, testCase.path))
		})
	}
}
