package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/http"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// LicenseClient implements reapi.LicenseClient.
type LicenseClient struct {
	httpClient *http.Client
}

// NewLicenseClient creates a new license client.
func NewLicenseClient(httpClient *http.Client) *LicenseClient {
	return &LicenseClient{
		httpClient: httpClient,
	}
}

// Get implements reapi.LicenseClient.Get.
func (c *LicenseClient) Get(ctx context.Context) (*reapi.License, error) {
	var license reapi.License

	err := c.httpClient.Get(ctx, constants.APIPathLicense, &license)
	if err != nil {
		return nil, fmt.Errorf("getting license: %w", err)
	}

	return &license, nil
}

// Update implements reapi.LicenseClient.Update.
func (c *LicenseClient) Update(ctx context.Context, request *reapi.LicenseUpdateRequest) (*reapi.License, error) {
	var license reapi.License

	err := c.httpClient.Put(ctx, constants.APIPathLicense, request, &license)
	if err != nil {
		return nil, fmt.Errorf("updating license: %w", err)
	}

	return &license, nil
}

// Usage implements reapi.LicenseClient.Usage.
func (c *LicenseClient) Usage(ctx context.Context) (any, error) {
	result, err := c.httpClient.GetRaw(ctx, constants.APIPathLicenseUsage)
	if err != nil {
		return nil, fmt.Errorf("getting license usage: %w", err)
	}

	return result, nil
}
