package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/reapi-client/internal/http"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// ModulesClient implements reapi.ModulesClient.
type ModulesClient struct {
	httpClient *internalhttp.Client
}

// NewModulesClient creates a new modules client.
func NewModulesClient(httpClient *internalhttp.Client) *ModulesClient {
	return &ModulesClient{
		httpClient: httpClient,
	}
}

func modulePath(uid string) string {
	return constants.APIPathModulesV1 + "/" + url.PathEscape(uid)
}

// List implements reapi.ModulesClient.List.
func (c *ModulesClient) List(ctx context.Context) ([]reapi.Module, error) {
	var modules []reapi.Module

	err := c.httpClient.Get(ctx, constants.APIPathModulesV1, &modules)
	if err != nil {
		return nil, fmt.Errorf("listing modules: %w", err)
	}

	return modules, nil
}

// Get implements reapi.ModulesClient.Get.
func (c *ModulesClient) Get(ctx context.Context, uid string) (*reapi.Module, error) {
	var module reapi.Module

	err := c.httpClient.Get(ctx, modulePath(uid), &module)
	if err != nil {
		return nil, fmt.Errorf("getting module: %w", err)
	}

	return &module, nil
}

// Delete implements reapi.ModulesClient.Delete.
func (c *ModulesClient) Delete(ctx context.Context, uid string) error {
	err := c.httpClient.Delete(ctx, modulePath(uid))
	if err != nil {
		return fmt.Errorf("deleting module: %w", err)
	}

	return nil
}

// Upload implements reapi.ModulesClient.Upload. Clusters without the v2
// endpoint are retried on v1; a 405 from either means the cluster only
// accepts modules through its admin UI or rladmin.
func (c *ModulesClient) Upload(ctx context.Context, data []byte, fileName string) (any, error) {
	result, err := c.upload(ctx, constants.APIPathModulesV2, data, fileName)
	if reapi.IsNotFound(err) {
		result, err = c.upload(ctx, constants.APIPathModulesV1, data, fileName)
	}

	if reapi.StatusCodeOf(err) == http.StatusMethodNotAllowed {
		return nil, reapi.NewValidationError(fmt.Errorf("%w: %w", reapi.ErrUploadNotSupported, err))
	}

	if err != nil {
		return nil, fmt.Errorf("uploading module: %w", err)
	}

	return result, nil
}

func (c *ModulesClient) upload(ctx context.Context, path string, data []byte, fileName string) (any, error) {
	var result any

	err := c.httpClient.PostMultipart(ctx, path, constants.ModuleFieldName, fileName, data, &result)
	if err != nil {
		return nil, err
	}

	return result, nil
}
