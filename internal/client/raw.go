package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	internalhttp "github.com/fivetwenty-io/reapi-client/internal/http"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// RawClient implements reapi.RawClient. Paths are sent as given.
type RawClient struct {
	httpClient *internalhttp.Client
}

// NewRawClient creates a new raw passthrough client.
func NewRawClient(httpClient *internalhttp.Client) *RawClient {
	return &RawClient{
		httpClient: httpClient,
	}
}

// Get implements reapi.RawClient.Get.
func (c *RawClient) Get(ctx context.Context, path string) (any, error) {
	return c.httpClient.GetRaw(ctx, path)
}

// Post implements reapi.RawClient.Post.
func (c *RawClient) Post(ctx context.Context, path string, body any) (any, error) {
	return c.httpClient.PostRaw(ctx, path, body)
}

// Put implements reapi.RawClient.Put.
func (c *RawClient) Put(ctx context.Context, path string, body any) (any, error) {
	return c.httpClient.PutRaw(ctx, path, body)
}

// Patch implements reapi.RawClient.Patch.
func (c *RawClient) Patch(ctx context.Context, path string, body any) (any, error) {
	return c.httpClient.PatchRaw(ctx, path, body)
}

// Delete implements reapi.RawClient.Delete.
func (c *RawClient) Delete(ctx context.Context, path string) (any, error) {
	return c.httpClient.DeleteRaw(ctx, path)
}

// Execute implements reapi.RawClient.Execute. POST, PUT and PATCH require a
// body; DELETE answers {"status":"deleted"} on an empty response.
func (c *RawClient) Execute(ctx context.Context, method, path string, body any) (any, error) {
	method = strings.ToUpper(method)

	switch method {
	case http.MethodGet:
		return c.Get(ctx, path)
	case http.MethodDelete:
		return c.Delete(ctx, path)
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		if body == nil {
			return nil, reapi.NewValidationError(fmt.Errorf("%w for %s", reapi.ErrBodyRequired, method))
		}
	default:
		return nil, reapi.NewValidationError(fmt.Errorf("%w: %s", reapi.ErrUnsupportedMethod, method))
	}

	switch method {
	case http.MethodPost:
		return c.Post(ctx, path, body)
	case http.MethodPut:
		return c.Put(ctx, path, body)
	default:
		return c.Patch(ctx, path, body)
	}
}
