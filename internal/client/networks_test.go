package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/strato-io/strato/pkg/strato"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNetworksClient_CRUD(t *testing.T) {
	t.Parallel()

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2.0/networks/net-1", request.URL.Path)
			assert.Equal(t, http.MethodGet, request.Method)
			_, _ = writer.Write([]byte(`{"network": {"id": "net-1", "name": "public", "status": "ACTIVE"}}`))
		})

		client := newNetworkClient(t, server)

		network, err := client.Networks().Get(context.Background(), "net-1")
		require.NoError(t, err)
		assert.Equal(t, "net-1", network.ID)
		assert.Equal(t, "public", network.Name)
		assert.Equal(t, strato.NetworkStatusActive, network.Status)
	})

	t.Run("list with filters", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2.0/networks", request.URL.Path)
			assert.Equal(t, "shared=true", request.URL.RawQuery)
			_, _ = writer.Write([]byte(`{"networks": [{"id": "net-1", "status": "ACTIVE"}]}`))
		})

		client := newNetworkClient(t, server)

		query := strato.NewQuery().SetBool("shared", true)

		networks, err := client.Networks().List(context.Background(), query)
		require.NoError(t, err)
		require.Len(t, networks, 1)
		assert.Equal(t, "net-1", networks[0].ID)
	})

	t.Run("create", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2.0/networks", request.URL.Path)
			assert.Equal(t, http.MethodPost, request.Method)

			var body map[string]strato.NetworkCreateRequest

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "private", body["network"].Name)

			writer.WriteHeader(http.StatusCreated)
			_, _ = writer.Write([]byte(`{"network": {"id": "net-2", "name": "private", "status": "ACTIVE"}}`))
		})

		client := newNetworkClient(t, server)

		network, err := client.Networks().Create(context.Background(), &strato.NetworkCreateRequest{Name: "private"})
		require.NoError(t, err)
		assert.Equal(t, "net-2", network.ID)
	})

	t.Run("update sends only set fields", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2.0/networks/net-1", request.URL.Path)
			assert.Equal(t, http.MethodPut, request.Method)

			var body map[string]json.RawMessage

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.JSONEq(t, `{"name": "renamed", "description": null}`, string(body["network"]))

			_, _ = writer.Write([]byte(`{"network": {"id": "net-1", "name": "renamed", "status": "ACTIVE"}}`))
		})

		client := newNetworkClient(t, server)

		request := &strato.NetworkUpdateRequest{
			Name:        strato.SetField("renamed"),
			Description: strato.NullField[string](),
		}

		network, err := client.Networks().Update(context.Background(), "net-1", request)
		require.NoError(t, err)
		assert.Equal(t, "renamed", network.Name)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2.0/networks/net-1", request.URL.Path)
			assert.Equal(t, http.MethodDelete, request.Method)
			writer.WriteHeader(http.StatusNoContent)
		})

		client := newNetworkClient(t, server)

		require.NoError(t, client.Networks().Delete(context.Background(), "net-1"))
	})

	t.Run("get not found", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"NeutronError": {"message": "Network missing could not be found"}}`))
		})

		client := newNetworkClient(t, server)

		_, err := client.Networks().Get(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, strato.IsNotFound(err))
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNetworksClient_Find(t *testing.T) {
	t.Parallel()

	t.Run("by ID", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2.0/networks/net-1", request.URL.Path)
			_, _ = writer.Write([]byte(`{"network": {"id": "net-1", "status": "ACTIVE"}}`))
		})

		client := newNetworkClient(t, server)

		network, err := client.Networks().Find(context.Background(), "net-1")
		require.NoError(t, err)
		assert.Equal(t, "net-1", network.ID)
	})

	t.Run("by unique name", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/v2.0/networks/public" {
				writer.WriteHeader(http.StatusNotFound)
				_, _ = writer.Write([]byte(`{"NeutronError": {"message": "not found"}}`))

				return
			}

			assert.Equal(t, "/v2.0/networks", request.URL.Path)
			assert.Equal(t, "public", request.URL.Query().Get("name"))
			// One() caps the page size at two.
			assert.Equal(t, "2", request.URL.Query().Get("limit"))
			_, _ = writer.Write([]byte(`{"networks": [{"id": "net-1", "name": "public", "status": "ACTIVE"}]}`))
		})

		client := newNetworkClient(t, server)

		network, err := client.Networks().Find(context.Background(), "public")
		require.NoError(t, err)
		assert.Equal(t, "net-1", network.ID)
	})

	t.Run("ambiguous name", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/v2.0/networks/dup" {
				writer.WriteHeader(http.StatusNotFound)
				_, _ = writer.Write([]byte(`{"NeutronError": {"message": "not found"}}`))

				return
			}

			_, _ = writer.Write([]byte(`{"networks": [
				{"id": "net-1", "name": "dup", "status": "ACTIVE"},
				{"id": "net-2", "name": "dup", "status": "ACTIVE"}
			]}`))
		})

		client := newNetworkClient(t, server)

		_, err := client.Networks().Find(context.Background(), "dup")
		require.ErrorIs(t, err, strato.ErrTooManyItems)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/v2.0/networks/ghost" {
				writer.WriteHeader(http.StatusNotFound)
				_, _ = writer.Write([]byte(`{"NeutronError": {"message": "not found"}}`))

				return
			}

			_, _ = writer.Write([]byte(`{"networks": []}`))
		})

		client := newNetworkClient(t, server)

		_, err := client.Networks().Find(context.Background(), "ghost")
		require.ErrorIs(t, err, strato.ErrResourceNotFound)
	})

	t.Run("lookup returns the ID", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`{"network": {"id": "net-1", "status": "ACTIVE"}}`))
		})

		client := newNetworkClient(t, server)

		id, err := client.Networks().Lookup(context.Background(), "net-1")
		require.NoError(t, err)
		assert.Equal(t, "net-1", id)
	})
}

func TestNetworksClient_IteratePagination(t *testing.T) {
	t.Parallel()

	var markers []string

	server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
		markers = append(markers, request.URL.Query().Get("marker"))

		switch request.URL.Query().Get("marker") {
		case "":
			_, _ = writer.Write([]byte(`{"networks": [
				{"id": "net-1", "status": "ACTIVE"},
				{"id": "net-2", "status": "ACTIVE"}
			]}`))
		case "net-2":
			_, _ = writer.Write([]byte(`{"networks": [{"id": "net-3", "status": "ACTIVE"}]}`))
		default:
			_, _ = writer.Write([]byte(`{"networks": []}`))
		}
	})

	client := newNetworkClient(t, server)

	iter := client.Networks().Iterate(context.Background(), nil)
	iter.SetPageSize(2)

	all, err := iter.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"", "net-2"}, markers)
}
