package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/http"
	"github.com/fivetwenty-io/reapi-client/internal/poll"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
)

// DatabasesClient implements reapi.DatabasesClient.
type DatabasesClient struct {
	httpClient *http.Client
	streamOpts []poll.Option
}

// NewDatabasesClient creates a new databases client.
func NewDatabasesClient(httpClient *http.Client, streamOpts ...poll.Option) *DatabasesClient {
	return &DatabasesClient{
		httpClient: httpClient,
		streamOpts: streamOpts,
	}
}

func databasePath(uid int) string {
	return constants.APIPathDatabases + "/" + strconv.Itoa(uid)
}

// List implements reapi.DatabasesClient.List.
func (c *DatabasesClient) List(ctx context.Context) ([]reapi.Database, error) {
	var databases []reapi.Database

	err := c.httpClient.Get(ctx, constants.APIPathDatabases, &databases)
	if err != nil {
		return nil, fmt.Errorf("listing databases: %w", err)
	}

	return databases, nil
}

// Get implements reapi.DatabasesClient.Get.
func (c *DatabasesClient) Get(ctx context.Context, uid int) (*reapi.Database, error) {
	var database reapi.Database

	err := c.httpClient.Get(ctx, databasePath(uid), &database)
	if err != nil {
		return nil, fmt.Errorf("getting database: %w", err)
	}

	return &database, nil
}

// Create implements reapi.DatabasesClient.Create.
func (c *DatabasesClient) Create(ctx context.Context, request *reapi.CreateDatabaseRequest) (*reapi.Database, error) {
	var database reapi.Database

	err := c.httpClient.Post(ctx, constants.APIPathDatabases, request, &database)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	return &database, nil
}

// Update implements reapi.DatabasesClient.Update.
func (c *DatabasesClient) Update(ctx context.Context, uid int, updates map[string]any) (*reapi.Database, error) {
	var database reapi.Database

	err := c.httpClient.Put(ctx, databasePath(uid), updates, &database)
	if err != nil {
		return nil, fmt.Errorf("updating database: %w", err)
	}

	return &database, nil
}

// Delete implements reapi.DatabasesClient.Delete.
func (c *DatabasesClient) Delete(ctx context.Context, uid int) error {
	err := c.httpClient.Delete(ctx, databasePath(uid))
	if err != nil {
		return fmt.Errorf("deleting database: %w", err)
	}

	return nil
}

// DeleteWithResult implements reapi.DatabasesClient.DeleteWithResult.
func (c *DatabasesClient) DeleteWithResult(ctx context.Context, uid int) (any, error) {
	result, err := c.httpClient.DeleteRaw(ctx, databasePath(uid))
	if err != nil {
		return nil, fmt.Errorf("deleting database: %w", err)
	}

	return result, nil
}

// Flush implements reapi.DatabasesClient.Flush.
func (c *DatabasesClient) Flush(ctx context.Context, uid int) (*reapi.ActionResponse, error) {
	var response reapi.ActionResponse

	err := c.httpClient.Post(ctx, databasePath(uid)+"/actions/flush", map[string]any{}, &response)
	if err != nil {
		return nil, fmt.Errorf("flushing database: %w", err)
	}

	return &response, nil
}

// Backup implements reapi.DatabasesClient.Backup.
func (c *DatabasesClient) Backup(ctx context.Context, uid int) (*reapi.ActionResponse, error) {
	var response reapi.ActionResponse

	err := c.httpClient.Post(ctx, databasePath(uid)+"/actions/backup", map[string]any{}, &response)
	if err != nil {
		return nil, fmt.Errorf("backing up database: %w", err)
	}

	return &response, nil
}

// Command implements reapi.DatabasesClient.Command.
func (c *DatabasesClient) Command(ctx context.Context, uid int, command string) (any, error) {
	result, err := c.httpClient.PostRaw(ctx, databasePath(uid)+"/command", map[string]string{"command": command})
	if err != nil {
		return nil, fmt.Errorf("executing database command: %w", err)
	}

	return result, nil
}

// Watch implements reapi.DatabasesClient.Watch.
func (c *DatabasesClient) Watch(ctx context.Context, uid int, interval time.Duration) reapi.Stream[reapi.WatchEvent[*reapi.Database, string]] {
	return poll.Watch(ctx, interval, func(ctx context.Context) (*reapi.Database, error) {
		return c.Get(ctx, uid)
	}, databaseStatus, c.streamOpts...)
}

func databaseStatus(database *reapi.Database) (string, bool) {
	if database == nil || database.Status == nil {
		return "", false
	}

	return *database.Status, true
}
