package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/strato-io/strato/internal/auth"
	"github.com/strato-io/strato/internal/constants"
	"github.com/strato-io/strato/pkg/strato"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, strato.ErrConfigRequired)
	})

	t.Run("static token", func(t *testing.T) {
		t.Parallel()

		client, err := New(&strato.Config{Token: "tok"})
		require.NoError(t, err)
		assert.IsType(t, &auth.StaticTokenManager{}, client.TokenManager())
	})

	t.Run("password credentials", func(t *testing.T) {
		t.Parallel()

		client, err := New(&strato.Config{
			AuthURL:  "http://cloud.local:5000",
			Username: "demo",
			Password: "secret",
		})
		require.NoError(t, err)
		assert.IsType(t, &auth.KeystoneTokenManager{}, client.TokenManager())
	})

	t.Run("no credentials", func(t *testing.T) {
		t.Parallel()

		client, err := New(&strato.Config{NetworkEndpoint: "http://cloud.local:9696"})
		require.NoError(t, err)
		assert.Nil(t, client.TokenManager())
	})
}

func TestClient_DiscoversOnce(t *testing.T) {
	t.Parallel()

	var discoveries, requests int32

	var server *httptest.Server

	server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if strings.TrimSuffix(request.URL.Path, "/") == "/v2.0" {
			atomic.AddInt32(&discoveries, 1)
			_ = json.NewEncoder(writer).Encode(versionDocument(server.URL, "v2.0", "2.24", "2.1", "/v2.0"))

			return
		}

		atomic.AddInt32(&requests, 1)
		_, _ = writer.Write([]byte(`{"networks": [], "subnets": []}`))
	}))

	defer server.Close()

	client := newNetworkClient(t, server)

	_, err := client.Networks().List(context.Background(), nil)
	require.NoError(t, err)

	_, err = client.Subnets().List(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&discoveries))
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestClient_SendsNegotiatedVersionHeader(t *testing.T) {
	t.Parallel()

	server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "network 2.24", request.Header.Get("OpenStack-API-Version"))
		assert.NotEmpty(t, request.Header.Get("X-Request-ID"))
		assert.Equal(t, "test-token", request.Header.Get("X-Auth-Token"))
		_, _ = writer.Write([]byte(`{"networks": []}`))
	})

	client := newNetworkClient(t, server)

	_, err := client.Networks().List(context.Background(), nil)
	require.NoError(t, err)
}

func TestClient_ExactVersionNegotiation(t *testing.T) {
	t.Parallel()

	t.Run("supported version is pinned", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "network 2.5", request.Header.Get("OpenStack-API-Version"))
			_, _ = writer.Write([]byte(`{"networks": []}`))
		})

		client, err := New(&strato.Config{
			Token:           "test-token",
			NetworkEndpoint: server.URL + "/v2.0",
			NetworkVersion:  strato.ExactVersion(strato.APIVersion{Major: 2, Minor: 5}),
			Cache:           &strato.CacheConfig{Type: strato.CacheTypeNone},
		})
		require.NoError(t, err)

		_, err = client.Networks().List(context.Background(), nil)
		require.NoError(t, err)
	})

	t.Run("unsupported version fails", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, http.NotFound)

		client, err := New(&strato.Config{
			Token:           "test-token",
			NetworkEndpoint: server.URL + "/v2.0",
			NetworkVersion:  strato.ExactVersion(strato.APIVersion{Major: 3, Minor: 0}),
			Cache:           &strato.CacheConfig{Type: strato.CacheTypeNone},
		})
		require.NoError(t, err)

		_, err = client.Networks().List(context.Background(), nil)
		require.ErrorIs(t, err, strato.ErrIncompatibleVersion)
	})
}

func TestClient_ServiceInfo(t *testing.T) {
	t.Parallel()

	server := newNetworkServer(t, http.NotFound)
	client := newNetworkClient(t, server)

	info, err := client.ServiceInfo(context.Background(), constants.ServiceTypeNetwork)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/v2.0/", info.RootURL.String())
	require.NotNil(t, info.CurrentVersion)
	assert.Equal(t, "2.24", info.CurrentVersion.String())
}

func TestClient_MissingEndpoint(t *testing.T) {
	t.Parallel()

	client, err := New(&strato.Config{
		Token:           "test-token",
		NetworkEndpoint: "http://cloud.local:9696/v2.0",
		Cache:           &strato.CacheConfig{Type: strato.CacheTypeNone},
	})
	require.NoError(t, err)

	_, err = client.Servers().List(context.Background(), nil)
	require.ErrorIs(t, err, constants.ErrNoEndpointConfigured)
}

func TestClient_ReusesCachedServiceInfo(t *testing.T) {
	t.Parallel()

	var discoveries int32

	var server *httptest.Server

	server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if strings.TrimSuffix(request.URL.Path, "/") == "/v2.0" {
			atomic.AddInt32(&discoveries, 1)
			_ = json.NewEncoder(writer).Encode(versionDocument(server.URL, "v2.0", "2.24", "2.1", "/v2.0"))

			return
		}

		_, _ = writer.Write([]byte(`{"networks": [], "ports": []}`))
	}))

	defer server.Close()

	client, err := New(&strato.Config{
		Token:           "test-token",
		NetworkEndpoint: server.URL + "/v2.0",
		Cache: &strato.CacheConfig{
			Type:   strato.CacheTypeMemory,
			Memory: &strato.MemoryCacheConfig{MaxSize: 8},
		},
	})
	require.NoError(t, err)

	_, err = client.Networks().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&discoveries))

	_, err = client.Ports().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&discoveries))
}
