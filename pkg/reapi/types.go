package reapi

import (
	"net/url"
	"strconv"
)

// Database represents a database (bdb) resource.
type Database struct {
	UID               int              `json:"uid"                          yaml:"uid"`
	Name              string           `json:"name"                         yaml:"name"`
	Type              string           `json:"type,omitempty"               yaml:"type,omitempty"`
	Status            *string          `json:"status,omitempty"             yaml:"status,omitempty"`
	Version           string           `json:"version,omitempty"            yaml:"version,omitempty"`
	MemorySize        *int64           `json:"memory_size,omitempty"        yaml:"memory_size,omitempty"`
	Port              *int             `json:"port,omitempty"               yaml:"port,omitempty"`
	ShardsCount       *int             `json:"shards_count,omitempty"       yaml:"shards_count,omitempty"`
	Replication       *bool            `json:"replication,omitempty"        yaml:"replication,omitempty"`
	DataPersistence   string           `json:"data_persistence,omitempty"   yaml:"data_persistence,omitempty"`
	MasterPersistence *bool            `json:"master_persistence,omitempty" yaml:"master_persistence,omitempty"`
	EvictionPolicy    string           `json:"eviction_policy,omitempty"    yaml:"eviction_policy,omitempty"`
	Endpoints         []Endpoint       `json:"endpoints,omitempty"          yaml:"endpoints,omitempty"`
	ModuleList        []DatabaseModule `json:"module_list,omitempty"        yaml:"module_list,omitempty"`
	CreatedTime       string           `json:"created_time,omitempty"       yaml:"created_time,omitempty"`
	LastChangedTime   string           `json:"last_changed_time,omitempty"  yaml:"last_changed_time,omitempty"`
	Extra             Extra            `json:"-"                            yaml:"-"`
}

type database Database

// UnmarshalJSON keeps keys the typed fields do not claim in Extra.
func (d *Database) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*database)(d))
	if err != nil {
		return err
	}

	d.Extra = extra

	return nil
}

// MarshalJSON re-emits Extra alongside the typed fields.
func (d Database) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(database(d), d.Extra)
}

// Endpoint represents a database endpoint.
type Endpoint struct {
	UID              string   `json:"uid,omitempty"                yaml:"uid,omitempty"`
	DNSAddressMaster string   `json:"dns_address_master,omitempty" yaml:"dns_address_master,omitempty"`
	Addr             []string `json:"addr,omitempty"               yaml:"addr,omitempty"`
	AddrType         string   `json:"addr_type,omitempty"          yaml:"addr_type,omitempty"`
	Port             int      `json:"port,omitempty"               yaml:"port,omitempty"`
}

// DatabaseModule references a module enabled on a database.
type DatabaseModule struct {
	ModuleName string `json:"module_name"           yaml:"module_name"`
	ModuleArgs string `json:"module_args,omitempty" yaml:"module_args,omitempty"`
	SemVer     string `json:"semantic_version,omitempty" yaml:"semantic_version,omitempty"`
}

// CreateDatabaseRequest is the body for creating a database.
type CreateDatabaseRequest struct {
	Name            string           `json:"name"                       yaml:"name"`
	MemorySize      int64            `json:"memory_size"                yaml:"memory_size"`
	Type            string           `json:"type,omitempty"             yaml:"type,omitempty"`
	Port            *int             `json:"port,omitempty"             yaml:"port,omitempty"`
	Replication     *bool            `json:"replication,omitempty"      yaml:"replication,omitempty"`
	ShardsCount     *int             `json:"shards_count,omitempty"     yaml:"shards_count,omitempty"`
	DataPersistence string           `json:"data_persistence,omitempty" yaml:"data_persistence,omitempty"`
	EvictionPolicy  string           `json:"eviction_policy,omitempty"  yaml:"eviction_policy,omitempty"`
	ModuleList      []DatabaseModule `json:"module_list,omitempty"      yaml:"module_list,omitempty"`
}

// ActionResponse is returned by endpoints that start an asynchronous action.
type ActionResponse struct {
	ActionUID   string `json:"action_uid"            yaml:"action_uid"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Extra       Extra  `json:"-"                     yaml:"-"`
}

type actionResponse ActionResponse

// UnmarshalJSON keeps keys the typed fields do not claim in Extra.
func (a *ActionResponse) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*actionResponse)(a))
	if err != nil {
		return err
	}

	a.Extra = extra

	return nil
}

// MarshalJSON re-emits Extra alongside the typed fields.
func (a ActionResponse) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(actionResponse(a), a.Extra)
}

// Action represents a long-running cluster action.
type Action struct {
	ActionUID  string   `json:"action_uid"            yaml:"action_uid"`
	Name       string   `json:"name,omitempty"        yaml:"name,omitempty"`
	Status     *string  `json:"status,omitempty"      yaml:"status,omitempty"`
	Progress   *float64 `json:"progress,omitempty"    yaml:"progress,omitempty"`
	ObjectName string   `json:"object_name,omitempty" yaml:"object_name,omitempty"`
	Extra      Extra    `json:"-"                     yaml:"-"`
}

type action Action

// UnmarshalJSON keeps keys the typed fields do not claim in Extra.
func (a *Action) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*action)(a))
	if err != nil {
		return err
	}

	a.Extra = extra

	return nil
}

// MarshalJSON re-emits Extra alongside the typed fields.
func (a Action) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(action(a), a.Extra)
}

// ClusterInfo represents the cluster resource.
type ClusterInfo struct {
	Name        string `json:"name"                   yaml:"name"`
	CreatedTime string `json:"created_time,omitempty" yaml:"created_time,omitempty"`
	RackAware   *bool  `json:"rack_aware,omitempty"   yaml:"rack_aware,omitempty"`
	EmailAlerts *bool  `json:"email_alerts,omitempty" yaml:"email_alerts,omitempty"`
	Extra       Extra  `json:"-"                      yaml:"-"`
}

type clusterInfo ClusterInfo

// UnmarshalJSON keeps keys the typed fields do not claim in Extra.
func (c *ClusterInfo) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*clusterInfo)(c))
	if err != nil {
		return err
	}

	c.Extra = extra

	return nil
}

// MarshalJSON re-emits Extra alongside the typed fields.
func (c ClusterInfo) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(clusterInfo(c), c.Extra)
}

// BootstrapRequest creates a cluster on a fresh node.
type BootstrapRequest struct {
	Action      string                `json:"action"                yaml:"action"`
	Cluster     *BootstrapCluster     `json:"cluster,omitempty"     yaml:"cluster,omitempty"`
	Credentials *BootstrapCredentials `json:"credentials,omitempty" yaml:"credentials,omitempty"`
}

// BootstrapCluster names the cluster being created.
type BootstrapCluster struct {
	Name string `json:"name" yaml:"name"`
}

// BootstrapCredentials are the admin credentials of a new cluster.
type BootstrapCredentials struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// Node represents a cluster node.
type Node struct {
	UID             int     `json:"uid"                        yaml:"uid"`
	Addr            string  `json:"addr,omitempty"             yaml:"addr,omitempty"`
	Status          *string `json:"status,omitempty"           yaml:"status,omitempty"`
	ShardCount      *int    `json:"shard_count,omitempty"      yaml:"shard_count,omitempty"`
	TotalMemory     *int64  `json:"total_memory,omitempty"     yaml:"total_memory,omitempty"`
	SoftwareVersion string  `json:"software_version,omitempty" yaml:"software_version,omitempty"`
	OSVersion       string  `json:"os_version,omitempty"       yaml:"os_version,omitempty"`
	RackID          string  `json:"rack_id,omitempty"          yaml:"rack_id,omitempty"`
	Extra           Extra   `json:"-"                          yaml:"-"`
}

type node Node

// UnmarshalJSON keeps keys the typed fields do not claim in Extra.
func (n *Node) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*node)(n))
	if err != nil {
		return err
	}

	n.Extra = extra

	return nil
}

// MarshalJSON re-emits Extra alongside the typed fields.
func (n Node) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(node(n), n.Extra)
}

// LogEntry is one cluster event log record.
type LogEntry struct {
	Time  string `json:"time" yaml:"time"`
	Type  string `json:"type" yaml:"type"`
	Extra Extra  `json:"-"    yaml:"-"`
}

type logEntry LogEntry

// UnmarshalJSON keeps keys the typed fields do not claim in Extra.
func (l *LogEntry) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*logEntry)(l))
	if err != nil {
		return err
	}

	l.Extra = extra

	return nil
}

// MarshalJSON re-emits Extra alongside the typed fields.
func (l LogEntry) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(logEntry(l), l.Extra)
}

// Log ordering values.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// LogsQuery filters the event log.
type LogsQuery struct {
	Stime  string
	Etime  string
	Order  string
	Limit  int
	Offset int
}

// Encode renders the query string, or "" when no filter is set.
func (q *LogsQuery) Encode() string {
	if q == nil {
		return ""
	}

	values := url.Values{}

	if q.Stime != "" {
		values.Set("stime", q.Stime)
	}

	if q.Etime != "" {
		values.Set("etime", q.Etime)
	}

	if q.Order != "" {
		values.Set("order", q.Order)
	}

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}

	return values.Encode()
}

// Stats is a metrics snapshot. Its shape differs per endpoint and version.
type Stats map[string]any

// Module represents an uploaded Redis module.
type Module struct {
	UID             string   `json:"uid"                        yaml:"uid"`
	ModuleName      string   `json:"module_name"                yaml:"module_name"`
	SemanticVersion string   `json:"semantic_version,omitempty" yaml:"semantic_version,omitempty"`
	Version         *int     `json:"version,omitempty"          yaml:"version,omitempty"`
	Capabilities    []string `json:"capabilities,omitempty"     yaml:"capabilities,omitempty"`
	Extra           Extra    `json:"-"                          yaml:"-"`
}

type module Module

// UnmarshalJSON keeps keys the typed fields do not claim in Extra.
func (m *Module) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*module)(m))
	if err != nil {
		return err
	}

	m.Extra = extra

	return nil
}

// MarshalJSON re-emits Extra alongside the typed fields.
func (m Module) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(module(m), m.Extra)
}

// License represents the cluster license.
type License struct {
	License        string   `json:"license,omitempty"         yaml:"license,omitempty"`
	ExpirationDate string   `json:"expiration_date,omitempty" yaml:"expiration_date,omitempty"`
	Expired        *bool    `json:"expired,omitempty"         yaml:"expired,omitempty"`
	ShardsLimit    *int     `json:"shards_limit,omitempty"    yaml:"shards_limit,omitempty"`
	Features       []string `json:"features,omitempty"        yaml:"features,omitempty"`
	Extra          Extra    `json:"-"                         yaml:"-"`
}

type license License

// UnmarshalJSON keeps keys the typed fields do not claim in Extra.
func (l *License) UnmarshalJSON(data []byte) error {
	extra, err := unmarshalWithExtra(data, (*license)(l))
	if err != nil {
		return err
	}

	l.Extra = extra

	return nil
}

// MarshalJSON re-emits Extra alongside the typed fields.
func (l License) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(license(l), l.Extra)
}

// LicenseUpdateRequest installs a new license key.
type LicenseUpdateRequest struct {
	License string `json:"license" yaml:"license"`
}

// Overview is a point-in-time snapshot of the whole cluster.
type Overview struct {
	Cluster   *ClusterInfo `json:"cluster"   yaml:"cluster"`
	Nodes     []Node       `json:"nodes"     yaml:"nodes"`
	Databases []Database   `json:"databases" yaml:"databases"`
	License   *License     `json:"license"   yaml:"license"`
}
