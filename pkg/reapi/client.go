package reapi

import (
	"context"
	"iter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Version is the library version reported in the default User-Agent.
const Version = "0.4.0"

// DefaultUserAgent identifies the client on every request.
const DefaultUserAgent = "reapi-client/" + Version

// Defaults applied by the builder.
const (
	DefaultBaseURL  = "https://localhost:9443"
	DefaultUsername = "admin@redis.local"
	DefaultTimeout  = 30 * time.Second
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config is the connection configuration. It is never mutated after a
// client has been built from it.
type Config struct {
	// BaseURL is the REST API root, e.g. "https://cluster.example.com:9443".
	BaseURL string `validate:"required,url"`
	// Username and Password are sent as basic auth on every request.
	Username string
	Password string
	// Timeout bounds a single request from connect to the end of the body.
	Timeout time.Duration `validate:"gt=0"`
	// Insecure disables TLS certificate verification. Clusters ship with
	// self-signed certificates, so this is common in lab setups.
	Insecure bool
	// UserAgent is the fixed identifier sent on every request.
	UserAgent string `validate:"required"`
	// Debug enables HTTP request/response logging when a Logger is set.
	Debug bool
	// Logger receives structured diagnostics. Nil disables logging.
	Logger Logger
	// Registerer receives the client's Prometheus collectors. Nil disables metrics.
	Registerer prometheus.Registerer
}

// Stream is a lazily pulled sequence of poll results. A fetch failure is
// delivered once as the final item; after that the stream yields nothing.
type Stream[T any] interface {
	// Next pulls the next item. ok is false once the stream has terminated.
	Next() (item T, err error, ok bool)
	// All ranges over the remaining items. Breaking out of the loop leaves
	// the stream where it stopped.
	All() iter.Seq2[T, error]
}

// WatchEvent is one poll of a watched resource. Previous is set only when
// the discriminant changed since the prior poll.
type WatchEvent[T any, D comparable] struct {
	Current  T  `json:"current"            yaml:"current"`
	Previous *D `json:"previous,omitempty" yaml:"previous,omitempty"`
}

// ClusterClient covers the cluster resource and bootstrap.
type ClusterClient interface {
	Info(ctx context.Context) (*ClusterInfo, error)
	Update(ctx context.Context, updates map[string]any) (any, error)
	Settings(ctx context.Context) (any, error)
	Topology(ctx context.Context) (any, error)
	Stats(ctx context.Context) (Stats, error)
	Bootstrap(ctx context.Context, request *BootstrapRequest) (any, error)
}

// DatabasesClient covers /v1/bdbs.
type DatabasesClient interface {
	List(ctx context.Context) ([]Database, error)
	Get(ctx context.Context, uid int) (*Database, error)
	Create(ctx context.Context, request *CreateDatabaseRequest) (*Database, error)
	Update(ctx context.Context, uid int, updates map[string]any) (*Database, error)
	Delete(ctx context.Context, uid int) error
	DeleteWithResult(ctx context.Context, uid int) (any, error)
	Flush(ctx context.Context, uid int) (*ActionResponse, error)
	Backup(ctx context.Context, uid int) (*ActionResponse, error)
	Command(ctx context.Context, uid int, command string) (any, error)
	Watch(ctx context.Context, uid int, interval time.Duration) Stream[WatchEvent[*Database, string]]
}

// NodesClient covers /v1/nodes.
type NodesClient interface {
	List(ctx context.Context) ([]Node, error)
	Get(ctx context.Context, uid int) (*Node, error)
	Update(ctx context.Context, uid int, updates map[string]any) (any, error)
}

// LogsClient covers the cluster event log.
type LogsClient interface {
	List(ctx context.Context, query *LogsQuery) ([]LogEntry, error)
	Stream(ctx context.Context, interval time.Duration, limit int) Stream[LogEntry]
}

// StatsClient covers the "last interval" metrics endpoints.
type StatsClient interface {
	ClusterLast(ctx context.Context) (Stats, error)
	NodeLast(ctx context.Context, uid int) (Stats, error)
	DatabaseLast(ctx context.Context, uid int) (Stats, error)
	StreamCluster(ctx context.Context, interval time.Duration) Stream[Stats]
	StreamNode(ctx context.Context, uid int, interval time.Duration) Stream[Stats]
	StreamDatabase(ctx context.Context, uid int, interval time.Duration) Stream[Stats]
}

// ActionsClient covers /v1/actions.
type ActionsClient interface {
	List(ctx context.Context) ([]Action, error)
	Get(ctx context.Context, actionUID string) (*Action, error)
	Watch(ctx context.Context, actionUID string, interval time.Duration) Stream[WatchEvent[*Action, string]]
}

// DebugInfoClient downloads support packages as raw archives.
type DebugInfoClient interface {
	Cluster(ctx context.Context) ([]byte, error)
	AllNodes(ctx context.Context) ([]byte, error)
	Node(ctx context.Context, uid int) ([]byte, error)
	AllDatabases(ctx context.Context) ([]byte, error)
	Database(ctx context.Context, uid int) ([]byte, error)
}

// ModulesClient covers module management.
type ModulesClient interface {
	List(ctx context.Context) ([]Module, error)
	Get(ctx context.Context, uid string) (*Module, error)
	Delete(ctx context.Context, uid string) error
	Upload(ctx context.Context, data []byte, fileName string) (any, error)
}

// LicenseClient covers /v1/license.
type LicenseClient interface {
	Get(ctx context.Context) (*License, error)
	Update(ctx context.Context, request *LicenseUpdateRequest) (*License, error)
	Usage(ctx context.Context) (any, error)
}

// UsageReportClient downloads usage reports.
type UsageReportClient interface {
	Latest(ctx context.Context) (any, error)
	CSV(ctx context.Context, reportID string) (string, error)
}

// RawClient passes arbitrary requests through the typed transport.
type RawClient interface {
	Get(ctx context.Context, path string) (any, error)
	Post(ctx context.Context, path string, body any) (any, error)
	Put(ctx context.Context, path string, body any) (any, error)
	Patch(ctx context.Context, path string, body any) (any, error)
	Delete(ctx context.Context, path string) (any, error)
	Execute(ctx context.Context, method, path string, body any) (any, error)
}

// Client is the entry point to every resource.
type Client interface {
	Cluster() ClusterClient
	Databases() DatabasesClient
	Nodes() NodesClient
	Logs() LogsClient
	Stats() StatsClient
	Actions() ActionsClient
	DebugInfo() DebugInfoClient
	Modules() ModulesClient
	License() LicenseClient
	UsageReport() UsageReportClient
	Raw() RawClient
	Overview(ctx context.Context) (*Overview, error)
}
