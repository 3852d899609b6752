package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reapihttp "github.com/fivetwenty-io/reapi-client/internal/http"
	"github.com/fivetwenty-io/reapi-client/internal/metrics"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) add(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.add("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.add("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.add("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.add("error", msg, fields) }

type databaseFixture struct {
	UID               int    `json:"uid"`
	Name              string `json:"name"`
	MasterPersistence *bool  `json:"master_persistence,omitempty"`
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/bdbs", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Equal(t, "reapi-test/1.0", request.Header.Get("User-Agent"))

			user, pass, ok := request.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "admin@redis.local", user)
			assert.Equal(t, "secret", pass)

			_ = json.NewEncoder(writer).Encode([]map[string]interface{}{{"uid": 1, "name": "cache"}})
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL,
			reapihttp.WithBasicAuth("admin@redis.local", "secret"),
			reapihttp.WithUserAgent("reapi-test/1.0"))

		resp, err := client.Do(context.Background(), &reapihttp.Request{Method: "GET", Path: "/v1/bdbs"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result []databaseFixture

		require.NoError(t, json.Unmarshal(resp.Body, &result))
		require.Len(t, result, 1)
		assert.Equal(t, "cache", result[0].Name)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "cache", body["name"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL)

		resp, err := client.Do(context.Background(), &reapihttp.Request{
			Method: "POST",
			Path:   "/v1/bdbs",
			Body:   map[string]string{"name": "cache"},
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL)

		resp, err := client.Do(context.Background(), &reapihttp.Request{
			Method:  "GET",
			Path:    "/v1/cluster",
			Headers: map[string]string{"X-Custom-Header": "custom-value"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("error response keeps status and body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"error_code":"db_not_exist"}`))
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL)

		resp, err := client.Do(context.Background(), &reapihttp.Request{Method: "GET", Path: "/v1/bdbs/9"})
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 404, resp.StatusCode)
		assert.True(t, reapi.IsNotFound(err))
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := reapihttp.NewClient(server.URL, reapihttp.WithLogger(logger), reapihttp.WithDebug(true))

		_, err := client.Do(context.Background(), &reapihttp.Request{Method: "GET", Path: "/v1/cluster"})
		require.NoError(t, err)

		require.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

func TestClient_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		kind   reapi.ErrorKind
	}{
		{name: "401 is unauthorized", status: 401, body: "bad credentials", kind: reapi.KindUnauthorized},
		{name: "404 is not found", status: 404, body: "", kind: reapi.KindNotFound},
		{name: "500 is server error", status: 500, body: "boom", kind: reapi.KindServer},
		{name: "503 is server error", status: 503, body: "maintenance", kind: reapi.KindServer},
		{name: "599 is server error", status: 599, body: "edge", kind: reapi.KindServer},
		{name: "400 is api error", status: 400, body: `{"error":"bad"}`, kind: reapi.KindAPI},
		{name: "409 is api error", status: 409, body: "conflict", kind: reapi.KindAPI},
		{name: "429 is api error", status: 429, body: "slow down", kind: reapi.KindAPI},
		{name: "302 is api error", status: 302, body: "moved", kind: reapi.KindAPI},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(testCase.status)
				_, _ = writer.Write([]byte(testCase.body))
			}))
			defer server.Close()

			client := reapihttp.NewClient(server.URL)

			var out map[string]interface{}

			err := client.Get(context.Background(), "/v1/bdbs/1", &out)
			require.Error(t, err)

			var classified *reapi.Error

			require.ErrorAs(t, err, &classified)
			assert.Equal(t, testCase.kind, classified.Kind)
			assert.Equal(t, testCase.status, classified.StatusCode)
			assert.Equal(t, testCase.body, classified.Body)
			assert.Equal(t, "GET", classified.Method)
			assert.Equal(t, server.URL+"/v1/bdbs/1", classified.URL)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_TransportFailures(t *testing.T) {
	t.Parallel()

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		baseURL := server.URL
		server.Close()

		client := reapihttp.NewClient(baseURL)

		err := client.Get(context.Background(), "/v1/cluster", nil)
		require.Error(t, err)
		assert.True(t, reapi.IsConnectionError(err))
		assert.Contains(t, err.Error(), baseURL+"/v1/cluster")
		assert.Contains(t, err.Error(), "check that the Redis Enterprise server is running")
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-request.Context().Done():
			}
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL, reapihttp.WithTimeout(50*time.Millisecond))

		err := client.Get(context.Background(), "/v1/cluster", nil)
		require.Error(t, err)
		assert.True(t, reapi.IsTimeout(err))

		var classified *reapi.Error

		require.ErrorAs(t, err, &classified)
		assert.Equal(t, 50*time.Millisecond, classified.Timeout)
		assert.Contains(t, err.Error(), "timed out after 50ms")
	})

	t.Run("caller deadline shorter than timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-request.Context().Done():
			}
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL, reapihttp.WithTimeout(30*time.Second))

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		err := client.Get(ctx, "/v1/cluster", nil)
		require.Error(t, err)
		assert.True(t, reapi.IsTimeout(err))

		var classified *reapi.Error

		require.ErrorAs(t, err, &classified)
		assert.Positive(t, classified.Timeout)
		assert.LessOrEqual(t, classified.Timeout, 100*time.Millisecond)
		assert.NotContains(t, err.Error(), "30s")
	})

	t.Run("caller deadline longer than timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-request.Context().Done():
			}
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL, reapihttp.WithTimeout(50*time.Millisecond))

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		err := client.Get(ctx, "/v1/cluster", nil)
		require.Error(t, err)

		var classified *reapi.Error

		require.ErrorAs(t, err, &classified)
		assert.Equal(t, reapi.KindTimeout, classified.Kind)
		assert.Equal(t, 50*time.Millisecond, classified.Timeout)
	})

	t.Run("malformed response", func(t *testing.T) {
		t.Parallel()

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		defer func() { _ = listener.Close() }()

		go func() {
			conn, acceptErr := listener.Accept()
			if acceptErr != nil {
				return
			}

			defer func() { _ = conn.Close() }()

			_, _ = http.ReadRequest(bufio.NewReader(conn))
			_, _ = conn.Write([]byte("this is not http\r\n\r\n"))
		}()

		client := reapihttp.NewClient("http://" + listener.Addr().String())

		err = client.Get(context.Background(), "/v1/cluster", nil)
		require.Error(t, err)
		assert.Equal(t, reapi.KindMalformed, reapi.KindOf(err))
	})

	t.Run("does not retry", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL)

		err := client.Get(context.Background(), "/v1/cluster", nil)
		require.Error(t, err)
		assert.True(t, reapi.IsServerError(err))
		assert.Equal(t, int32(1), attempts.Load())
	})
}

func TestClient_Decode(t *testing.T) {
	t.Parallel()

	t.Run("field path of a type mismatch", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`{"uid":1,"name":"cache","master_persistence":"yes"}`))
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL)

		var db databaseFixture

		err := client.Get(context.Background(), "/v1/bdbs/1", &db)
		require.Error(t, err)

		var classified *reapi.Error

		require.ErrorAs(t, err, &classified)
		assert.Equal(t, reapi.KindField, classified.Kind)
		assert.Equal(t, "master_persistence", classified.FieldPath)
		assert.Contains(t, err.Error(), "master_persistence")
	})

	t.Run("field path carries array indices", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`[{"uid":1,"name":"a"},{"uid":2,"name":"b"},{"uid":"3","name":"c"}]`))
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL)

		var dbs []databaseFixture

		err := client.Get(context.Background(), "/v1/bdbs", &dbs)
		require.Error(t, err)

		var classified *reapi.Error

		require.ErrorAs(t, err, &classified)
		assert.Equal(t, reapi.KindField, classified.Kind)
		assert.Equal(t, "[2].uid", classified.FieldPath)
	})

	t.Run("root type mismatch", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`{"uid":1}`))
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL)

		var dbs []databaseFixture

		err := client.Get(context.Background(), "/v1/bdbs", &dbs)
		require.Error(t, err)

		var classified *reapi.Error

		require.ErrorAs(t, err, &classified)
		assert.Equal(t, reapi.KindField, classified.Kind)
		assert.Equal(t, ".", classified.FieldPath)
	})

	t.Run("html body is malformed", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Type", "text/html")
			_, _ = writer.Write([]byte("<html><body>Gateway</body></html>"))
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL)

		var db databaseFixture

		err := client.Get(context.Background(), "/v1/bdbs/1", &db)
		require.Error(t, err)
		assert.Equal(t, reapi.KindMalformed, reapi.KindOf(err))
		assert.Contains(t, err.Error(), "HTML error page")
	})

	t.Run("typed decode", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`{"uid":7,"name":"sessions","master_persistence":true}`))
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL)

		var db databaseFixture

		require.NoError(t, client.Get(context.Background(), "/v1/bdbs/7", &db))
		assert.Equal(t, 7, db.UID)
		require.NotNil(t, db.MasterPersistence)
		assert.True(t, *db.MasterPersistence)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*reapihttp.Client, context.Context) error
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *reapihttp.Client, ctx context.Context) error {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *reapihttp.Client, ctx context.Context) error {
				return c.Post(ctx, "/test", map[string]string{"key": "value"}, nil)
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *reapihttp.Client, ctx context.Context) error {
				return c.Put(ctx, "/test", map[string]string{"key": "value"}, nil)
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *reapihttp.Client, ctx context.Context) error {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"}, nil)
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *reapihttp.Client, ctx context.Context) error {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := reapihttp.NewClient(server.URL + "/")
			require.NoError(t, testCase.fn(client, context.Background()))
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Variants(t *testing.T) {
	t.Parallel()

	newServer := func(t *testing.T, status int, body string) *httptest.Server {
		t.Helper()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(status)
			_, _ = writer.Write([]byte(body))
		}))
		t.Cleanup(server.Close)

		return server
	}

	t.Run("delete with empty body yields deleted marker", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, http.StatusNoContent, "")
		client := reapihttp.NewClient(server.URL)

		result, err := client.DeleteRaw(context.Background(), "/v1/bdbs/1")
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"status": "deleted"}, result)
	})

	t.Run("delete with json body returns it", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, http.StatusOK, `{"action_uid":"a-1"}`)
		client := reapihttp.NewClient(server.URL)

		result, err := client.DeleteRaw(context.Background(), "/v1/bdbs/1")
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"action_uid": "a-1"}, result)
	})

	t.Run("delete failure is classified", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, http.StatusNotFound, "")
		client := reapihttp.NewClient(server.URL)

		_, err := client.DeleteRaw(context.Background(), "/v1/bdbs/1")
		assert.True(t, reapi.IsNotFound(err))
	})

	tolerant := []struct {
		name string
		body string
		want interface{}
	}{
		{name: "empty body", body: "", want: map[string]interface{}{"status": "success"}},
		{name: "whitespace body", body: "  \n\t", want: map[string]interface{}{"status": "success"}},
		{name: "text body", body: "cluster created", want: map[string]interface{}{"status": "success", "response": "cluster created"}},
		{name: "json body", body: `{"status":"ok"}`, want: map[string]interface{}{"status": "ok"}},
	}

	for _, testCase := range tolerant {
		t.Run("tolerant post "+testCase.name, func(t *testing.T) {
			t.Parallel()

			server := newServer(t, http.StatusOK, testCase.body)
			client := reapihttp.NewClient(server.URL)

			result, err := client.PostTolerant(context.Background(), "/v1/bootstrap/create_cluster", map[string]string{"action": "create_cluster"})
			require.NoError(t, err)
			assert.Equal(t, testCase.want, result)
		})
	}

	t.Run("raw get", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, http.StatusOK, `[{"uid":1},{"uid":2}]`)
		client := reapihttp.NewClient(server.URL)

		result, err := client.GetRaw(context.Background(), "/v1/nodes")
		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("text get", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, http.StatusOK, "date,shards\n2024-01-01,4\n")
		client := reapihttp.NewClient(server.URL)

		text, err := client.GetText(context.Background(), "/v1/usage_report")
		require.NoError(t, err)
		assert.Equal(t, "date,shards\n2024-01-01,4\n", text)
	})

	t.Run("binary get", func(t *testing.T) {
		t.Parallel()

		payload := string([]byte{0x1f, 0x8b, 0x08, 0x00})
		server := newServer(t, http.StatusOK, payload)
		client := reapihttp.NewClient(server.URL)

		data, err := client.GetBinary(context.Background(), "/v1/cluster/debuginfo")
		require.NoError(t, err)
		assert.Equal(t, []byte(payload), data)
	})

	t.Run("text get failure is classified", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, http.StatusInternalServerError, "oops")
		client := reapihttp.NewClient(server.URL)

		_, err := client.GetText(context.Background(), "/v1/usage_report")
		assert.True(t, reapi.IsServerError(err))
	})
}

func TestClient_PostMultipart(t *testing.T) {
	t.Parallel()

	t.Run("uploads named file part", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.True(t, strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data"))

			file, header, err := request.FormFile("module")
			if !assert.NoError(t, err) {
				return
			}

			defer func() { _ = file.Close() }()

			content, _ := io.ReadAll(file)
			assert.Equal(t, "redisgraph.zip", header.Filename)
			assert.Equal(t, "zipdata", string(content))

			_, _ = writer.Write([]byte(`{"uid":"m-1","module_name":"graph"}`))
		}))
		defer server.Close()

		client := reapihttp.NewClient(server.URL)

		var out map[string]interface{}

		err := client.PostMultipart(context.Background(), "/v2/modules", "module", "redisgraph.zip", []byte("zipdata"), &out)
		require.NoError(t, err)
		assert.Equal(t, "m-1", out["uid"])
	})

	t.Run("rejects missing names", func(t *testing.T) {
		t.Parallel()

		client := reapihttp.NewClient("http://127.0.0.1:1")

		err := client.PostMultipart(context.Background(), "/v2/modules", "", "a.zip", nil, nil)
		assert.True(t, reapi.IsValidation(err))

		err = client.PostMultipart(context.Background(), "/v2/modules", "module", "", nil, nil)
		assert.True(t, reapi.IsValidation(err))
	})
}

func TestClient_Metrics(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/missing" {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	m, err := metrics.NewMetrics(reg)
	require.NoError(t, err)

	client := reapihttp.NewClient(server.URL, reapihttp.WithMetrics(m))

	require.NoError(t, client.Get(context.Background(), "/ok", nil))
	require.Error(t, client.Get(context.Background(), "/missing", nil))

	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "not-found")), 0)
}
