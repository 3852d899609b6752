package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration and downloaded files.
	ConfigFilePerm = 0600
)

// Environment variables read by reclient.NewFromEnv and the CLI.
const (
	EnvPrefix   = "REDIS_ENTERPRISE"
	EnvURL      = "REDIS_ENTERPRISE_URL"
	EnvUser     = "REDIS_ENTERPRISE_USER"
	EnvPassword = "REDIS_ENTERPRISE_PASSWORD"
	EnvInsecure = "REDIS_ENTERPRISE_INSECURE"
)

// HTTP headers and content types.
const (
	HeaderUserAgent   = "User-Agent"
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Canonical status markers returned for empty success bodies.
const (
	// StatusDeleted is returned by DELETE-with-result on an empty body.
	StatusDeleted = "deleted"

	// StatusSuccess is returned by the bootstrap POST on an empty or non-JSON body.
	StatusSuccess = "success"

	// MarkerStatusKey is the key carrying the status marker.
	MarkerStatusKey = "status"

	// MarkerResponseKey carries a non-JSON bootstrap body verbatim.
	MarkerResponseKey = "response"
)

// Time intervals and delays.
const (
	// DefaultPollInterval is used by streaming commands.
	DefaultPollInterval = 5 * time.Second

	// QuickPollInterval is used for fast polling in tests.
	QuickPollInterval = time.Millisecond

	// DefaultLogStreamLimit caps each log poll.
	DefaultLogStreamLimit = 100
)

// Concurrency limits.
const (
	// OverviewConcurrency bounds the parallel requests issued by Overview.
	OverviewConcurrency = 4
)

// Field and upload names.
const (
	// ModuleFieldName is the multipart field carrying a module archive.
	ModuleFieldName = "module"

	// ActionBootstrap is the bootstrap action creating a new cluster.
	ActionBootstrap = "create_cluster"
)

// API paths.
const (
	APIPathCluster         = "/v1/cluster"
	APIPathClusterStats    = "/v1/cluster/stats"
	APIPathClusterLast     = "/v1/cluster/stats/last"
	APIPathClusterPolicy   = "/v1/cluster/policy"
	APIPathClusterTopology = "/v1/cluster/topology"
	APIPathBootstrap       = "/v1/bootstrap/create_cluster"
	APIPathDatabases       = "/v1/bdbs"
	APIPathNodes           = "/v1/nodes"
	APIPathLogs            = "/v1/logs"
	APIPathActions         = "/v1/actions"
	APIPathModulesV1       = "/v1/modules"
	APIPathModulesV2       = "/v2/modules"
	APIPathLicense         = "/v1/license"
	APIPathLicenseUsage    = "/v1/license/usage"
	APIPathUsageReport     = "/v1/usage_report"
	APIPathClusterDebug    = "/v1/cluster/debuginfo"
	APIPathNodesDebug      = "/v1/nodes/debuginfo"
	APIPathDatabasesDebug  = "/v1/bdbs/debuginfo"
)

// Output formats.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// TimestampLayout formats times in tables.
	TimestampLayout = "2006-01-02 15:04:05"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

// Stream policy labels used in metrics and sink messages.
const (
	PolicyRepublish = "republish"
	PolicyCursor    = "cursor"
	PolicyWatch     = "watch"
)
