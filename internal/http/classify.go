package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// classifyTransport maps a failure that happened before a complete response
// was read onto the error taxonomy.
func (c *Client) classifyTransport(ctx context.Context, start time.Time, method, url string,
	resp *http.Response, err error,
) *reapi.Error {
	classified := &reapi.Error{
		Kind:   reapi.KindRequest,
		Method: method,
		URL:    url,
		Err:    err,
	}

	switch {
	case errors.Is(err, context.Canceled):
		classified.Message = "request canceled: " + err.Error()
	case isConnectFailure(err):
		classified.Kind = reapi.KindConnection
	case isTimeout(err):
		classified.Kind = reapi.KindTimeout
		classified.Timeout = c.timeoutFor(ctx, start)
	case isMalformed(err):
		classified.Kind = reapi.KindMalformed
	case resp != nil:
		classified.Kind = reapi.KindAPI
		classified.StatusCode = resp.StatusCode
		classified.Body = err.Error()
	}

	return classified
}

// timeoutFor returns the time a request started at start was allowed: the
// configured timeout, or the caller's context deadline when that came first.
// Zero means the deadline had already passed.
func (c *Client) timeoutFor(ctx context.Context, start time.Time) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return c.timeout
	}

	budget := deadline.Sub(start)
	if c.timeout > 0 && budget >= c.timeout {
		return c.timeout
	}

	if budget <= 0 {
		return 0
	}

	return budget.Round(time.Millisecond)
}

func isConnectFailure(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

func isMalformed(err error) bool {
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "malformed HTTP") || strings.Contains(msg, "malformed MIME header")
}

// decodeBody decodes a successful response body into out. A type mismatch is
// reported with the path of the offending field, array indices included.
func decodeBody(method, url string, body []byte, out any) error {
	err := json.Unmarshal(body, out)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := fieldPath(body, reflect.TypeOf(out))
		if path == "" {
			path = typeErr.Field
		}

		if path == "" {
			path = "."
		}

		return &reapi.Error{
			Kind:      reapi.KindField,
			Method:    method,
			URL:       url,
			FieldPath: path,
			Err:       err,
		}
	}

	return &reapi.Error{
		Kind:   reapi.KindMalformed,
		Method: method,
		URL:    url,
		Err:    err,
	}
}
