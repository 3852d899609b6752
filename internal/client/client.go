package client

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/http"
	"github.com/fivetwenty-io/reapi-client/internal/metrics"
	"github.com/fivetwenty-io/reapi-client/internal/poll"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired = errors.New("config is required")
)

// Client implements the reapi.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     reapi.Logger

	// Resource clients
	cluster     *ClusterClient
	databases   *DatabasesClient
	nodes       *NodesClient
	logs        *LogsClient
	stats       *StatsClient
	actions     *ActionsClient
	debugInfo   *DebugInfoClient
	modules     *ModulesClient
	license     *LicenseClient
	usageReport *UsageReportClient
	raw         *RawClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *reapi.Config, m *metrics.Metrics) []http.Option {
	httpOpts := []http.Option{
		http.WithBasicAuth(config.Username, config.Password),
		http.WithInsecure(config.Insecure),
		http.WithMetrics(m),
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	return httpOpts
}

// New creates a client from an already validated config.
func New(config *reapi.Config) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, reapi.NewValidationError(reapi.ErrBaseURLRequired)
	}

	m, err := metrics.NewMetrics(config.Registerer)
	if err != nil {
		return nil, reapi.NewValidationError(err)
	}

	httpClient := http.NewClient(config.BaseURL, createHTTPClientOptions(config, m)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.BaseURL,
		logger:     config.Logger,
	}

	client.initializeResourceClients(poll.WithMetrics(m))

	return client, nil
}

// initializeResourceClients creates all resource clients.
func (c *Client) initializeResourceClients(streamOpts ...poll.Option) {
	c.cluster = NewClusterClient(c.httpClient)
	c.databases = NewDatabasesClient(c.httpClient, streamOpts...)
	c.nodes = NewNodesClient(c.httpClient)
	c.logs = NewLogsClient(c.httpClient, streamOpts...)
	c.stats = NewStatsClient(c.httpClient, streamOpts...)
	c.actions = NewActionsClient(c.httpClient, streamOpts...)
	c.debugInfo = NewDebugInfoClient(c.httpClient)
	c.modules = NewModulesClient(c.httpClient)
	c.license = NewLicenseClient(c.httpClient)
	c.usageReport = NewUsageReportClient(c.httpClient)
	c.raw = NewRawClient(c.httpClient)
}

// Overview fetches cluster, nodes, databases and license concurrently.
func (c *Client) Overview(ctx context.Context) (*reapi.Overview, error) {
	var overview reapi.Overview

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(constants.OverviewConcurrency)

	group.Go(func() error {
		info, err := c.cluster.Info(groupCtx)
		overview.Cluster = info

		return err
	})

	group.Go(func() error {
		nodes, err := c.nodes.List(groupCtx)
		overview.Nodes = nodes

		return err
	})

	group.Go(func() error {
		databases, err := c.databases.List(groupCtx)
		overview.Databases = databases

		return err
	})

	group.Go(func() error {
		license, err := c.license.Get(groupCtx)
		overview.License = license

		return err
	})

	err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("building cluster overview: %w", err)
	}

	return &overview, nil
}

// Resource client accessors

// Cluster implements reapi.Client.Cluster.
func (c *Client) Cluster() reapi.ClusterClient {
	return c.cluster
}

// Databases implements reapi.Client.Databases.
func (c *Client) Databases() reapi.DatabasesClient {
	return c.databases
}

// Nodes implements reapi.Client.Nodes.
func (c *Client) Nodes() reapi.NodesClient {
	return c.nodes
}

// Logs implements reapi.Client.Logs.
func (c *Client) Logs() reapi.LogsClient {
	return c.logs
}

// Stats implements reapi.Client.Stats.
func (c *Client) Stats() reapi.StatsClient {
	return c.stats
}

// Actions implements reapi.Client.Actions.
func (c *Client) Actions() reapi.ActionsClient {
	return c.actions
}

// DebugInfo implements reapi.Client.DebugInfo.
func (c *Client) DebugInfo() reapi.DebugInfoClient {
	return c.debugInfo
}

// Modules implements reapi.Client.Modules.
func (c *Client) Modules() reapi.ModulesClient {
	return c.modules
}

// License implements reapi.Client.License.
func (c *Client) License() reapi.LicenseClient {
	return c.license
}

// UsageReport implements reapi.Client.UsageReport.
func (c *Client) UsageReport() reapi.UsageReportClient {
	return c.usageReport
}

// Raw implements reapi.Client.Raw.
func (c *Client) Raw() reapi.RawClient {
	return c.raw
}

// loggerAdapter adapts reapi.Logger to http.Logger.
type loggerAdapter struct {
	logger reapi.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
