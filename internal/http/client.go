// Package http is the typed transport of the REST client. It executes one
// request per call, never retries, and maps every failure onto reapi.Error.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/metrics"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// Logger is the structured logger used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client executes requests against one cluster with fixed credentials.
type Client struct {
	baseURL   string
	username  string
	password  string
	userAgent string
	timeout   time.Duration
	insecure  bool
	debug     bool
	logger    Logger
	metrics   *metrics.Metrics
	client    *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithBasicAuth sets the credential pair sent on every request.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithInsecure disables TLS certificate verification.
func WithInsecure(insecure bool) Option {
	return func(c *Client) {
		c.insecure = insecure
	}
}

// WithMetrics records request counts and latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// Request describes a single API call.
type Request struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string

	// RawBody is sent verbatim with ContentType instead of JSON-encoding Body.
	RawBody     []byte
	ContentType string
}

// Response holds a fully read response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// NewClient creates a transport for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		userAgent: reapi.DefaultUserAgent,
		timeout:   reapi.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	transport := cleanhttp.DefaultPooledTransport()
	if c.insecure {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402 -- explicitly requested for self-signed cluster certificates
			MinVersion:         tls.VersionTLS12,
		}
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	if c.logger != nil {
		retryClient.Logger = &leveledLogger{logger: c.logger}
	}

	c.client = retryClient

	return c
}

func neverRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes req. On a non-2xx status the response is returned together
// with the classified error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := JoinURL(c.baseURL, req.Path)
	start := time.Now()

	resp, err := c.do(ctx, req, fullURL, start)

	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = string(reapi.KindOf(err))
	}

	c.metrics.ObserveRequest(req.Method, outcome, time.Since(start))

	return resp, err
}

func (c *Client) do(ctx context.Context, req *Request, fullURL string, start time.Time) (*Response, error) {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, &reapi.Error{Kind: reapi.KindValidation, Method: req.Method, URL: fullURL, Err: err}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, &reapi.Error{Kind: reapi.KindRequest, Method: req.Method, URL: fullURL, Err: err}
	}

	httpReq.SetBasicAuth(c.username, c.password)
	httpReq.Header.Set(constants.HeaderUserAgent, c.userAgent)
	httpReq.Header.Set(constants.HeaderAccept, constants.ContentTypeJSON)

	if contentType != "" {
		httpReq.Header.Set(constants.HeaderContentType, contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, c.classifyTransport(ctx, start, req.Method, fullURL, httpResp, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, c.classifyTransport(ctx, start, req.Method, fullURL, httpResp, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       data,
		Headers:    httpResp.Header,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    fullURL,
			"bytes":  len(data),
		})
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return resp, reapi.StatusError(req.Method, fullURL, httpResp.StatusCode, string(data))
	}

	return resp, nil
}

func encodeBody(req *Request) (interface{}, string, error) {
	if req.RawBody != nil {
		return req.RawBody, req.ContentType, nil
	}

	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encoding request body: %w", err)
	}

	return bytes.NewReader(data), constants.ContentTypeJSON, nil
}

// call executes a JSON request and decodes a successful body into out.
// A nil out discards the body.
func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.Do(ctx, &Request{Method: method, Path: path, Body: body})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	return decodeBody(method, JoinURL(c.baseURL, path), resp.Body, out)
}

// Get fetches path and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

// Post creates at path and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.call(ctx, http.MethodPost, path, body, out)
}

// Put replaces at path and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.call(ctx, http.MethodPut, path, body, out)
}

// Patch partially updates at path and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.call(ctx, http.MethodPatch, path, body, out)
}

// Delete removes path. Any success body is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}
