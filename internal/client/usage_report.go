package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/http"
)

// UsageReportClient implements reapi.UsageReportClient.
type UsageReportClient struct {
	httpClient *http.Client
}

// NewUsageReportClient creates a new usage report client.
func NewUsageReportClient(httpClient *http.Client) *UsageReportClient {
	return &UsageReportClient{
		httpClient: httpClient,
	}
}

// Latest implements reapi.UsageReportClient.Latest.
func (c *UsageReportClient) Latest(ctx context.Context) (any, error) {
	result, err := c.httpClient.GetRaw(ctx, constants.APIPathUsageReport+"/latest")
	if err != nil {
		return nil, fmt.Errorf("getting latest usage report: %w", err)
	}

	return result, nil
}

// CSV implements reapi.UsageReportClient.CSV.
func (c *UsageReportClient) CSV(ctx context.Context, reportID string) (string, error) {
	text, err := c.httpClient.GetText(ctx, constants.APIPathUsageReport+"/"+url.PathEscape(reportID)+"/csv")
	if err != nil {
		return "", fmt.Errorf("downloading usage report: %w", err)
	}

	return text, nil
}
