package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/strato-io/strato/pkg/strato"
	"github.com/stretchr/testify/require"
)

// versionDocument renders a single-version discovery document rooted at
// baseURL+prefix.
func versionDocument(baseURL, id, current, minimum, prefix string) map[string]interface{} {
	version := map[string]interface{}{
		"id":     id,
		"status": "CURRENT",
		"links": []map[string]string{
			{"rel": "self", "href": baseURL + prefix + "/"},
		},
	}

	if current != "" {
		version["version"] = current
	}

	if minimum != "" {
		version["min_version"] = minimum
	}

	return map[string]interface{}{"version": version}
}

// newServiceServer starts a fake service that answers discovery at prefix
// (e.g. "/v2.0") and routes everything else to handler. Handler paths
// include the prefix, e.g. "/v2.0/networks".
func newServiceServer(t *testing.T, prefix, id, current, minimum string, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var server *httptest.Server

	server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method == http.MethodGet && strings.TrimSuffix(request.URL.Path, "/") == prefix {
			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(versionDocument(server.URL, id, current, minimum, prefix))

			return
		}

		handler(writer, request)
	}))

	t.Cleanup(server.Close)

	return server
}

// newNetworkServer starts a fake network service advertising microversions
// 2.1 through 2.24.
func newNetworkServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	return newServiceServer(t, "/v2.0", "v2.0", "2.24", "2.1", handler)
}

// newComputeServer starts a fake compute service.
func newComputeServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	return newServiceServer(t, "/v2.1", "v2.1", "2.90", "2.1", handler)
}

// newNetworkClient builds a client wired to a fake network service.
func newNetworkClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := New(&strato.Config{
		Token:           "test-token",
		NetworkEndpoint: server.URL + "/v2.0",
		Cache:           &strato.CacheConfig{Type: strato.CacheTypeNone},
	})
	require.NoError(t, err)

	return client
}

// newComputeClient builds a client wired to a fake compute service.
func newComputeClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := New(&strato.Config{
		Token:           "test-token",
		ComputeEndpoint: server.URL + "/v2.1",
		Cache:           &strato.CacheConfig{Type: strato.CacheTypeNone},
	})
	require.NoError(t, err)

	return client
}
