package client

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	stratohttp "github.com/strato-io/strato/internal/http"
	"github.com/strato-io/strato/pkg/strato"
)

// DiscoverService fetches and parses the version document for an endpoint.
// Endpoints frequently point below the version document (e.g. a catalog URL
// ending in /v2.0/networks or a project-scoped compute URL), so a 404 walks
// one path segment up and retries until the host root is reached.
func DiscoverService(ctx context.Context, httpClient *stratohttp.Client, endpoint string, majorVersion int) (*strato.ServiceInfo, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}

	probe := *parsed
	for {
		resp, err := httpClient.DoURL(ctx, &stratohttp.Request{Method: http.MethodGet}, probe.String())
		if err == nil {
			info, extractErr := strato.ExtractServiceInfo(resp.Body, &probe, majorVersion)
			if extractErr != nil {
				return nil, fmt.Errorf("discovering %q: %w", probe.String(), extractErr)
			}

			return info, nil
		}

		var apiErr *strato.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
			return nil, fmt.Errorf("discovering %q: %w", probe.String(), err)
		}

		trimmed := strings.Trim(probe.Path, "/")
		if trimmed == "" {
			return nil, fmt.Errorf("%w: no version document under %q", strato.ErrEndpointNotFound, endpoint)
		}

		segments := strings.Split(trimmed, "/")
		probe.Path = "/" + strings.Join(segments[:len(segments)-1], "/")

		if probe.Path == "/" {
			probe.Path = ""
		}
	}
}

// cachedServiceInfo is the JSON shape service info is cached under. URLs are
// stored as strings so entries survive any cache backend.
type cachedServiceInfo struct {
	RootURL        string             `json:"root_url"`
	MajorVersion   strato.APIVersion  `json:"major_version"`
	CurrentVersion *strato.APIVersion `json:"current_version,omitempty"`
	MinimumVersion *strato.APIVersion `json:"min_version,omitempty"`
}

// serviceInfoCacheKey scopes cached discovery results to the endpoint they
// were discovered from; shared backends such as NATS KV may hold entries for
// several clouds at once. The endpoint is hashed to stay inside the key
// charset of every backend.
func serviceInfoCacheKey(serviceType, endpoint string) string {
	sum := sha256.Sum256([]byte(endpoint))

	return fmt.Sprintf("service-info.%s.%x", serviceType, sum[:8])
}

func loadCachedServiceInfo(ctx context.Context, cache strato.Cache, serviceType, endpoint string) (*strato.ServiceInfo, bool) {
	if cache == nil {
		return nil, false
	}

	entry, err := cache.Get(ctx, serviceInfoCacheKey(serviceType, endpoint))
	if err != nil {
		return nil, false
	}

	var cached cachedServiceInfo
	if err := json.Unmarshal(entry.Value, &cached); err != nil {
		return nil, false
	}

	rootURL, err := url.Parse(cached.RootURL)
	if err != nil {
		return nil, false
	}

	return &strato.ServiceInfo{
		RootURL:        rootURL,
		MajorVersion:   cached.MajorVersion,
		CurrentVersion: cached.CurrentVersion,
		MinimumVersion: cached.MinimumVersion,
	}, true
}

func storeCachedServiceInfo(ctx context.Context, cache strato.Cache, serviceType, endpoint string, info *strato.ServiceInfo) {
	if cache == nil {
		return
	}

	value, err := json.Marshal(cachedServiceInfo{
		RootURL:        info.RootURL.String(),
		MajorVersion:   info.MajorVersion,
		CurrentVersion: info.CurrentVersion,
		MinimumVersion: info.MinimumVersion,
	})
	if err != nil {
		return
	}

	// Cache failures only cost a re-discovery on the next client.
	_ = cache.Set(ctx, serviceInfoCacheKey(serviceType, endpoint), &strato.CacheEntry{
		Value:    value,
		StoredAt: time.Now(),
	})
}
