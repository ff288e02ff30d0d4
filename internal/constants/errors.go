package constants

import "errors"

// Configuration errors.
var (
	ErrNoCloudsConfigured   = errors.New("no clouds configured, use 'strato config set' to add one")
	ErrCloudConfigNotFound  = errors.New("cloud configuration not found")
	ErrNoAuthURLConfigured  = errors.New("no auth URL configured")
	ErrNoEndpointConfigured = errors.New("no service endpoint configured")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
)

// Authentication errors.
var (
	ErrNotAuthenticated   = errors.New("not authenticated, run 'strato login' first")
	ErrNoTokenInResponse  = errors.New("no token in authentication response")
	ErrNoCatalogEndpoint  = errors.New("no matching endpoint in the service catalog")
	ErrCredentialsMissing = errors.New("username and password are required")
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format, expected json, yaml or table")
	ErrNameOrIDRequired    = errors.New("a name or ID argument is required")
)
