package reapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorKind classifies every failure the client can report.
type ErrorKind string

// Error kinds. The set is closed: every failure maps to exactly one kind.
const (
	KindConnection   ErrorKind = "connection-failure"
	KindTimeout      ErrorKind = "timeout"
	KindMalformed    ErrorKind = "malformed-response"
	KindField        ErrorKind = "field-deserialization"
	KindUnauthorized ErrorKind = "unauthorized"
	KindNotFound     ErrorKind = "not-found"
	KindServer       ErrorKind = "server-error"
	KindAPI          ErrorKind = "api-error"
	KindValidation   ErrorKind = "validation"
	KindRequest      ErrorKind = "request-failed"
)

// Kind sentinels. Match them with errors.Is.
var (
	ErrConnection   = errors.New("connection failure")
	ErrTimeout      = errors.New("request timed out")
	ErrMalformed    = errors.New("malformed response")
	ErrField        = errors.New("field deserialization failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrServer       = errors.New("server error")
	ErrAPI          = errors.New("api error")
	ErrValidation   = errors.New("validation failed")
	ErrRequest      = errors.New("request failed")
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired     = errors.New("base URL is required")
	ErrPasswordRequired    = errors.New("REDIS_ENTERPRISE_PASSWORD environment variable is required")
	ErrInvalidUserAgent    = errors.New("user agent is not a valid header value")
	ErrInvalidTimeout      = errors.New("timeout must be positive")
	ErrBodyRequired        = errors.New("request body is required")
	ErrFileNameRequired    = errors.New("file name is required")
	ErrFieldNameRequired   = errors.New("multipart field name is required")
	ErrUploadNotSupported  = errors.New("module upload not supported by this cluster version")
	ErrUnsupportedMethod   = errors.New("unsupported HTTP method")
	ErrStreamIntervalValue = errors.New("poll interval must be positive")
)

var kindSentinels = map[ErrorKind]error{
	KindConnection:   ErrConnection,
	KindTimeout:      ErrTimeout,
	KindMalformed:    ErrMalformed,
	KindField:        ErrField,
	KindUnauthorized: ErrUnauthorized,
	KindNotFound:     ErrNotFound,
	KindServer:       ErrServer,
	KindAPI:          ErrAPI,
	KindValidation:   ErrValidation,
	KindRequest:      ErrRequest,
}

// Error is a classified failure of a single request.
type Error struct {
	Kind       ErrorKind     `json:"kind"                  yaml:"kind"`
	Method     string        `json:"method,omitempty"      yaml:"method,omitempty"`
	URL        string        `json:"url,omitempty"         yaml:"url,omitempty"`
	StatusCode int           `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Body       string        `json:"body,omitempty"        yaml:"body,omitempty"`
	FieldPath  string        `json:"field_path,omitempty"  yaml:"field_path,omitempty"`
	Timeout    time.Duration `json:"timeout,omitempty"     yaml:"timeout,omitempty"`
	Message    string        `json:"message,omitempty"     yaml:"message,omitempty"`
	Err        error         `json:"-"                     yaml:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindConnection:
		return fmt.Sprintf("failed to connect to %s: connection refused or host unreachable; "+
			"check that the Redis Enterprise server is running and accessible", e.URL)
	case KindTimeout:
		if e.Timeout <= 0 {
			return fmt.Sprintf("request to %s timed out; check network connectivity or increase the timeout", e.URL)
		}

		return fmt.Sprintf("request to %s timed out after %s; check network connectivity or increase the timeout",
			e.URL, e.Timeout)
	case KindMalformed:
		return fmt.Sprintf("failed to decode response from %s: %s; the server may have returned invalid JSON or an HTML error page",
			e.URL, e.causeText())
	case KindField:
		return fmt.Sprintf("failed to deserialize field '%s': %s", e.FieldPath, e.causeText())
	case KindUnauthorized:
		if e.StatusCode == 0 {
			return "authentication failed: " + e.causeText()
		}

		return "authentication failed: " + bodyOr(e.Body, http.StatusText(e.StatusCode))
	case KindNotFound:
		return "resource not found: " + bodyOr(e.Body, e.URL)
	case KindServer:
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Body)
	case KindAPI:
		return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Body)
	case KindValidation:
		return "validation error: " + e.causeText()
	case KindRequest:
		return "request failed: " + e.causeText()
	}

	return string(e.Kind) + ": " + e.causeText()
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if sentinel, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, sentinel)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

func (e *Error) causeText() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return "unknown error"
}

func bodyOr(body, fallback string) string {
	if strings.TrimSpace(body) == "" {
		return fallback
	}

	return body
}

// NewValidationError reports caller misuse detected before any request is sent.
func NewValidationError(err error) *Error {
	return &Error{Kind: KindValidation, Err: err}
}

// StatusError maps a non-2xx status code onto the taxonomy.
func StatusError(method, url string, status int, body string) *Error {
	kind := KindAPI

	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= http.StatusInternalServerError && status <= 599:
		kind = KindServer
	}

	return &Error{
		Kind:       kind,
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       body,
	}
}

// KindOf returns the kind of a classified error, or "" when err is not one.
func KindOf(err error) ErrorKind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}

	return ""
}

// StatusCodeOf returns the HTTP status carried by a classified error, or 0.
func StatusCodeOf(err error) int {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.StatusCode
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsServerError checks if the error is a 5xx response.
func IsServerError(err error) bool {
	return errors.Is(err, ErrServer)
}

// IsTimeout checks if the request exceeded its deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsConnectionError checks if the server could not be reached.
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsValidation checks if the error was raised before any request was sent.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
