package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/http"
	"github.com/fivetwenty-io/reapi-client/internal/poll"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// ActionsClient implements reapi.ActionsClient.
type ActionsClient struct {
	httpClient *http.Client
	streamOpts []poll.Option
}

// NewActionsClient creates a new actions client.
func NewActionsClient(httpClient *http.Client, streamOpts ...poll.Option) *ActionsClient {
	return &ActionsClient{
		httpClient: httpClient,
		streamOpts: streamOpts,
	}
}

// List implements reapi.ActionsClient.List.
func (c *ActionsClient) List(ctx context.Context) ([]reapi.Action, error) {
	var actions []reapi.Action

	err := c.httpClient.Get(ctx, constants.APIPathActions, &actions)
	if err != nil {
		return nil, fmt.Errorf("listing actions: %w", err)
	}

	return actions, nil
}

// Get implements reapi.ActionsClient.Get.
func (c *ActionsClient) Get(ctx context.Context, actionUID string) (*reapi.Action, error) {
	var action reapi.Action

	err := c.httpClient.Get(ctx, constants.APIPathActions+"/"+url.PathEscape(actionUID), &action)
	if err != nil {
		return nil, fmt.Errorf("getting action: %w", err)
	}

	return &action, nil
}

// Watch implements reapi.ActionsClient.Watch.
func (c *ActionsClient) Watch(ctx context.Context, actionUID string, interval time.Duration) reapi.Stream[reapi.WatchEvent[*reapi.Action, string]] {
	return poll.Watch(ctx, interval, func(ctx context.Context) (*reapi.Action, error) {
		return c.Get(ctx, actionUID)
	}, actionStatus, c.streamOpts...)
}

func actionStatus(action *reapi.Action) (string, bool) {
	if action == nil || action.Status == nil {
		return "", false
	}

	return *action.Status, true
}
