package strato

import (
	"context"
	"time"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NetworksClient manages virtual networks.
type NetworksClient interface {
	Get(ctx context.Context, id string) (*Network, error)
	List(ctx context.Context, query *Query) ([]Network, error)
	Iterate(ctx context.Context, query *Query) *ResourceIterator[Network]
	Create(ctx context.Context, request *NetworkCreateRequest) (*Network, error)
	Update(ctx context.Context, id string, request *NetworkUpdateRequest) (*Network, error)
	Delete(ctx context.Context, id string) error
	// Find locates a network by ID or unique name.
	Find(ctx context.Context, nameOrID string) (*Network, error)
	// Lookup resolves a name or ID to the network ID; used with Ref.
	Lookup(ctx context.Context, nameOrID string) (string, error)
}

// SubnetsClient manages subnets.
type SubnetsClient interface {
	Get(ctx context.Context, id string) (*Subnet, error)
	List(ctx context.Context, query *Query) ([]Subnet, error)
	Iterate(ctx context.Context, query *Query) *ResourceIterator[Subnet]
	Create(ctx context.Context, request *SubnetCreateRequest) (*Subnet, error)
	Update(ctx context.Context, id string, request *SubnetUpdateRequest) (*Subnet, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, nameOrID string) (*Subnet, error)
	Lookup(ctx context.Context, nameOrID string) (string, error)
}

// PortsClient manages switch ports.
type PortsClient interface {
	Get(ctx context.Context, id string) (*Port, error)
	List(ctx context.Context, query *Query) ([]Port, error)
	Iterate(ctx context.Context, query *Query) *ResourceIterator[Port]
	Create(ctx context.Context, request *PortCreateRequest) (*Port, error)
	Update(ctx context.Context, id string, request *PortUpdateRequest) (*Port, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, nameOrID string) (*Port, error)
	Lookup(ctx context.Context, nameOrID string) (string, error)
}

// FloatingIPsClient manages floating IPs.
type FloatingIPsClient interface {
	Get(ctx context.Context, id string) (*FloatingIP, error)
	List(ctx context.Context, query *Query) ([]FloatingIP, error)
	Iterate(ctx context.Context, query *Query) *ResourceIterator[FloatingIP]
	Create(ctx context.Context, request *FloatingIPCreateRequest) (*FloatingIP, error)
	Update(ctx context.Context, id string, request *FloatingIPUpdateRequest) (*FloatingIP, error)
	Delete(ctx context.Context, id string) error
	// Find locates a floating IP by ID or by its floating address.
	Find(ctx context.Context, idOrAddress string) (*FloatingIP, error)
}

// ServersClient manages compute servers.
type ServersClient interface {
	Get(ctx context.Context, id string) (*Server, error)
	List(ctx context.Context, query *Query) ([]Server, error)
	Iterate(ctx context.Context, query *Query) *ResourceIterator[Server]
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, nameOrID string) (*Server, error)
	Lookup(ctx context.Context, nameOrID string) (string, error)
	Start(ctx context.Context, id string) error
	Stop(ctx context.Context, id string) error
	Reboot(ctx context.Context, id string, hard bool) error
}

// Client is the entry point to all cloud services.
type Client interface {
	Networks() NetworksClient
	Subnets() SubnetsClient
	Ports() PortsClient
	FloatingIPs() FloatingIPsClient
	Servers() ServersClient

	// ServiceInfo returns the discovery result for a service type
	// ("network" or "compute"), fetching and caching it on first use.
	ServiceInfo(ctx context.Context, serviceType string) (*ServiceInfo, error)
}

// Config represents client configuration for building a strato.Client.
//
// # Authentication precedence
//
//  1. Token: if set, it is used directly as a static auth token; endpoints
//     must then be set explicitly.
//  2. Username/Password: authenticates against AuthURL using the Keystone v3
//     password grant; service endpoints come from the catalog unless
//     overridden.
//  3. No credentials: requests are sent without authentication (useful for
//     local test services).
//
// # Endpoints and versions
//
// NetworkEndpoint and ComputeEndpoint override the catalog. Each endpoint
// goes through discovery on first use; the microversion selectors control
// which version is negotiated from the advertised range.
type Config struct {
	// AuthURL is the Keystone endpoint, e.g. "https://cloud.example.com:5000".
	AuthURL string

	// Username and Password select the Keystone password grant.
	Username string
	Password string
	// ProjectName scopes the token to a project.
	ProjectName string
	// UserDomainName and ProjectDomainName default to "Default".
	UserDomainName    string
	ProjectDomainName string
	// Region filters catalog endpoints; empty matches any region.
	Region string

	// Token is a pre-issued auth token used as-is.
	Token string

	// NetworkEndpoint and ComputeEndpoint bypass the service catalog.
	NetworkEndpoint string
	ComputeEndpoint string

	// NetworkVersion and ComputeVersion select the microversion negotiated
	// during discovery. The zero value selects the service's latest.
	NetworkVersion VersionSelector
	ComputeVersion VersionSelector

	// HTTPTimeout: optional default HTTP timeout; most calls should rely on
	// context timeouts instead.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of retries for 429 and 5xx responses.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug enables verbose HTTP logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Cache configures the cache used for discovered service info.
	// Nil uses the default in-memory cache.
	Cache *CacheConfig
}
