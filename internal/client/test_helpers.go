package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

const (
	testUsername = "admin@redis.local"
	testPassword = "secret"
)

// NewTestClient starts an httptest server running handler and returns a
// client pointed at it. The server is closed when the test ends.
func NewTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(&reapi.Config{
		BaseURL:   server.URL,
		Username:  testUsername,
		Password:  testPassword,
		Timeout:   5 * time.Second,
		UserAgent: reapi.DefaultUserAgent,
	})
	require.NoError(t, err)

	return client
}

// WriteJSON writes body as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)

	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// TestGetOperation represents a generic read operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	WantKind     reapi.ErrorKind
	Check        func(t *testing.T, result TResponse)
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation struct {
	Name         string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	WantKind     reapi.ErrorKind
}

// RunGetTests runs a series of GET operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context) (TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodGet, request.Method)

				username, password, ok := request.BasicAuth()
				assert.True(t, ok)
				assert.Equal(t, testUsername, username)
				assert.Equal(t, testPassword, password)
				assert.Equal(t, reapi.DefaultUserAgent, request.UserAgent())

				WriteJSON(writer, testCase.StatusCode, testCase.Response)
			})

			result, err := getFunc(client)(context.Background())

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.WantKind != "" {
					assert.Equal(t, testCase.WantKind, reapi.KindOf(err))
				}

				return
			}

			require.NoError(t, err)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}

// RunDeleteTests runs a series of DELETE operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*Client) func(context.Context) error,
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			client := NewTestClient(t, func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, http.MethodDelete, request.Method)

				if testCase.Response == nil {
					writer.WriteHeader(testCase.StatusCode)

					return
				}

				WriteJSON(writer, testCase.StatusCode, testCase.Response)
			})

			err := deleteFunc(client)(context.Background())

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.WantKind != "" {
					assert.Equal(t, testCase.WantKind, reapi.KindOf(err))
				}

				return
			}

			require.NoError(t, err)
		})
	}
}

// decodeRequest decodes a JSON request body for assertions.
func decodeRequest(t *testing.T, request *http.Request) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}

	require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

	return body
}

func ptr[T any](v T) *T {
	return &v
}
