package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as discovery.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 5

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Service types understood by the client.
const (
	// ServiceTypeNetwork is the network service (ports, networks, subnets).
	ServiceTypeNetwork = "network"

	// ServiceTypeCompute is the compute service (servers).
	ServiceTypeCompute = "compute"
)

// Service API expectations.
const (
	// NetworkMajorVersion is the only supported network API major version.
	NetworkMajorVersion = 2

	// ComputeMajorVersion is the only supported compute API major version.
	ComputeMajorVersion = 2
)

// Authentication defaults.
const (
	// DefaultDomainName is the Keystone domain used when none is configured.
	DefaultDomainName = "Default"

	// TokenExpiryMargin renews tokens this long before they actually expire.
	TokenExpiryMargin = 1 * time.Minute
)

// Pagination and display limits.
const (
	// StandardPageSize is the common page size for list requests.
	StandardPageSize = 50
)

// Cache settings.
const (
	// DefaultCacheSize is the default entry capacity of the memory cache.
	DefaultCacheSize = 128

	// ServiceInfoCacheTTL bounds how long discovery results are reused.
	ServiceInfoCacheTTL = 1 * time.Hour
)
