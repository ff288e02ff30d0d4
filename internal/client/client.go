// Package client implements the resource clients behind the strato.Client
// interface.
package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/strato-io/strato/internal/auth"
	"github.com/strato-io/strato/internal/constants"
	stratohttp "github.com/strato-io/strato/internal/http"
	"github.com/strato-io/strato/pkg/strato"
)

// Client implements strato.Client. Service endpoints are discovered lazily on
// first use and reused for the client's lifetime.
type Client struct {
	config       *strato.Config
	tokenManager auth.TokenManager
	cache        strato.Cache

	mutex    sync.Mutex
	services map[string]*service

	networks    *NetworksClient
	subnets     *SubnetsClient
	ports       *PortsClient
	floatingIPs *FloatingIPsClient
	servers     *ServersClient
}

// service holds the per-service-type state built during discovery.
type service struct {
	httpClient *stratohttp.Client
	info       *strato.ServiceInfo
}

// New creates a client from configuration. No network traffic happens until
// the first API call.
func New(config *strato.Config) (*Client, error) {
	if config == nil {
		return nil, strato.ErrConfigRequired
	}

	cache, err := strato.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}

	client := &Client{
		config:       config,
		tokenManager: buildTokenManager(config),
		cache:        cache,
		services:     make(map[string]*service),
	}

	client.networks = &NetworksClient{root: client}
	client.subnets = &SubnetsClient{root: client}
	client.ports = &PortsClient{root: client}
	client.floatingIPs = &FloatingIPsClient{root: client}
	client.servers = &ServersClient{root: client}

	return client, nil
}

func buildTokenManager(config *strato.Config) auth.TokenManager {
	if config.Token != "" {
		return auth.NewStaticTokenManager(config.Token)
	}

	if config.Username != "" {
		return auth.NewKeystoneTokenManager(auth.KeystoneConfig{
			AuthURL:           config.AuthURL,
			Username:          config.Username,
			Password:          config.Password,
			ProjectName:       config.ProjectName,
			UserDomainName:    config.UserDomainName,
			ProjectDomainName: config.ProjectDomainName,
			Region:            config.Region,
		})
	}

	return nil
}

// Networks implements strato.Client.
func (c *Client) Networks() strato.NetworksClient { return c.networks }

// Subnets implements strato.Client.
func (c *Client) Subnets() strato.SubnetsClient { return c.subnets }

// Ports implements strato.Client.
func (c *Client) Ports() strato.PortsClient { return c.ports }

// FloatingIPs implements strato.Client.
func (c *Client) FloatingIPs() strato.FloatingIPsClient { return c.floatingIPs }

// Servers implements strato.Client.
func (c *Client) Servers() strato.ServersClient { return c.servers }

// ServiceInfo implements strato.Client.
func (c *Client) ServiceInfo(ctx context.Context, serviceType string) (*strato.ServiceInfo, error) {
	svc, err := c.service(ctx, serviceType)
	if err != nil {
		return nil, err
	}

	return svc.info, nil
}

// TokenManager exposes the client's token manager so callers can persist or
// restore sessions.
func (c *Client) TokenManager() auth.TokenManager {
	return c.tokenManager
}

// service returns the discovered, version-negotiated state for a service
// type, running discovery on first use.
func (c *Client) service(ctx context.Context, serviceType string) (*service, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if svc, ok := c.services[serviceType]; ok {
		return svc, nil
	}

	svc, err := c.connect(ctx, serviceType)
	if err != nil {
		return nil, err
	}

	c.services[serviceType] = svc

	return svc, nil
}

func (c *Client) connect(ctx context.Context, serviceType string) (*service, error) {
	endpoint, err := c.endpointFor(ctx, serviceType)
	if err != nil {
		return nil, err
	}

	info, cached := loadCachedServiceInfo(ctx, c.cache, serviceType, endpoint)
	if !cached {
		probeClient := c.newHTTPClient(endpoint, nil)

		info, err = DiscoverService(ctx, probeClient, endpoint, majorVersionFor(serviceType))
		if err != nil {
			return nil, err
		}

		storeCachedServiceInfo(ctx, c.cache, serviceType, endpoint, info)
	}

	chain := strato.NewInterceptorChain()
	chain.AddRequestInterceptor(strato.RequestIDInterceptor())

	selector := c.versionSelectorFor(serviceType)

	version, ok := info.PickVersion(selector)
	switch {
	case ok:
		chain.AddRequestInterceptor(strato.APIVersionInterceptor(serviceType, version))
	case selector.IsRequired():
		return nil, fmt.Errorf("%w: service %q does not support the requested version",
			strato.ErrIncompatibleVersion, serviceType)
	}

	return &service{
		httpClient: c.newHTTPClient(strings.TrimSuffix(info.RootURL.String(), "/"), chain),
		info:       info,
	}, nil
}

func (c *Client) newHTTPClient(baseURL string, chain *strato.InterceptorChain) *stratohttp.Client {
	opts := []stratohttp.Option{
		stratohttp.WithDebug(c.config.Debug),
	}

	if c.config.Logger != nil {
		opts = append(opts, stratohttp.WithLogger(c.config.Logger))
	}

	if c.config.UserAgent != "" {
		opts = append(opts, stratohttp.WithUserAgent(c.config.UserAgent))
	}

	if c.config.HTTPTimeout > 0 {
		opts = append(opts, stratohttp.WithTimeout(c.config.HTTPTimeout))
	}

	if c.config.RetryMax > 0 {
		opts = append(opts, stratohttp.WithRetryConfig(
			c.config.RetryMax, c.config.RetryWaitMin, c.config.RetryWaitMax))
	}

	if chain != nil {
		opts = append(opts, stratohttp.WithInterceptors(chain))
	}

	return stratohttp.NewClient(baseURL, c.tokenManager, opts...)
}

func (c *Client) endpointFor(ctx context.Context, serviceType string) (string, error) {
	switch serviceType {
	case constants.ServiceTypeNetwork:
		if c.config.NetworkEndpoint != "" {
			return c.config.NetworkEndpoint, nil
		}
	case constants.ServiceTypeCompute:
		if c.config.ComputeEndpoint != "" {
			return c.config.ComputeEndpoint, nil
		}
	}

	if keystone, ok := c.tokenManager.(*auth.KeystoneTokenManager); ok {
		endpoint, err := keystone.EndpointFor(ctx, serviceType)
		if err != nil {
			return "", fmt.Errorf("resolving %q endpoint: %w", serviceType, err)
		}

		return endpoint, nil
	}

	return "", fmt.Errorf("%w: service %q", constants.ErrNoEndpointConfigured, serviceType)
}

func (c *Client) versionSelectorFor(serviceType string) strato.VersionSelector {
	switch serviceType {
	case constants.ServiceTypeNetwork:
		return c.config.NetworkVersion
	case constants.ServiceTypeCompute:
		return c.config.ComputeVersion
	default:
		return strato.LatestVersion()
	}
}

func majorVersionFor(serviceType string) int {
	switch serviceType {
	case constants.ServiceTypeNetwork:
		return constants.NetworkMajorVersion
	case constants.ServiceTypeCompute:
		return constants.ComputeMajorVersion
	default:
		return 0
	}
}
