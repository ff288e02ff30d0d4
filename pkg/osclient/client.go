// Package osclient provides the main entry point for creating cloud API clients.
package osclient

import (
	"fmt"
	"strings"

	"github.com/strato-io/strato/internal/client"
	"github.com/strato-io/strato/pkg/strato"
)

// New creates a client from configuration. Endpoints and credentials are
// validated here; service discovery runs lazily on the first API call.
func New(config *strato.Config) (strato.Client, error) {
	if config == nil {
		return nil, strato.ErrConfigRequired
	}

	if needsAuth(config) && config.AuthURL == "" {
		return nil, strato.ErrAuthURLRequired
	}

	config.AuthURL = normalizeEndpoint(config.AuthURL)
	config.NetworkEndpoint = normalizeEndpoint(config.NetworkEndpoint)
	config.ComputeEndpoint = normalizeEndpoint(config.ComputeEndpoint)

	cloudClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cloudClient, nil
}

// needsAuth checks if the config requires password authentication.
func needsAuth(config *strato.Config) bool {
	return config.Token == "" && config.Username != ""
}

// normalizeEndpoint trims trailing slashes and defaults the scheme to https.
func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewWithPassword creates a client using Keystone password authentication.
// Service endpoints are resolved from the catalog.
func NewWithPassword(authURL, username, password, projectName string) (strato.Client, error) {
	return New(&strato.Config{
		AuthURL:     authURL,
		Username:    username,
		Password:    password,
		ProjectName: projectName,
	})
}

// NewWithToken creates a client around a pre-issued token and explicit
// service endpoints.
func NewWithToken(token, networkEndpoint, computeEndpoint string) (strato.Client, error) {
	return New(&strato.Config{
		Token:           token,
		NetworkEndpoint: networkEndpoint,
		ComputeEndpoint: computeEndpoint,
	})
}

// NewWithEndpoint creates an unauthenticated client for a single network
// endpoint, e.g. a local test service.
func NewWithEndpoint(endpoint string) (strato.Client, error) {
	return New(&strato.Config{
		NetworkEndpoint: endpoint,
	})
}
