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

func TestPortsClient_CRUD(t *testing.T) {
	t.Parallel()

	t.Run("create with fixed IPs", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2.0/ports", request.URL.Path)
			assert.Equal(t, http.MethodPost, request.Method)

			var body map[string]strato.PortCreateRequest

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.Equal(t, "net-1", body["port"].NetworkID)
			require.Len(t, body["port"].FixedIPs, 1)
			assert.Equal(t, "10.0.0.5", body["port"].FixedIPs[0].IPAddress)

			writer.WriteHeader(http.StatusCreated)
			_, _ = writer.Write([]byte(`{"port": {"id": "port-1", "network_id": "net-1", "status": "DOWN"}}`))
		})

		client := newNetworkClient(t, server)

		port, err := client.Ports().Create(context.Background(), &strato.PortCreateRequest{
			NetworkID: "net-1",
			FixedIPs:  []strato.FixedIP{{IPAddress: "10.0.0.5", SubnetID: "sub-1"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "port-1", port.ID)
		assert.Equal(t, strato.PortStatusDown, port.Status)
	})

	t.Run("update detaches device", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2.0/ports/port-1", request.URL.Path)
			assert.Equal(t, http.MethodPut, request.Method)

			var body map[string]json.RawMessage

			require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
			assert.JSONEq(t, `{"device_id": null, "admin_state_up": false}`, string(body["port"]))

			_, _ = writer.Write([]byte(`{"port": {"id": "port-1", "network_id": "net-1", "status": "DOWN"}}`))
		})

		client := newNetworkClient(t, server)

		request := &strato.PortUpdateRequest{
			DeviceID:     strato.NullField[string](),
			AdminStateUp: strato.SetField(false),
		}

		_, err := client.Ports().Update(context.Background(), "port-1", request)
		require.NoError(t, err)
	})

	t.Run("list filtered by device", func(t *testing.T) {
		t.Parallel()

		server := newNetworkServer(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v2.0/ports", request.URL.Path)
			assert.Equal(t, "srv-1", request.URL.Query().Get("device_id"))
			_, _ = writer.Write([]byte(`{"ports": [{"id": "port-1", "network_id": "net-1", "status": "N/A"}]}`))
		})

		client := newNetworkClient(t, server)

		query := strato.NewQuery().Set("device_id", "srv-1")

		ports, err := client.Ports().List(context.Background(), query)
		require.NoError(t, err)
		require.Len(t, ports, 1)
		assert.Equal(t, strato.PortStatusNotApplicable, ports[0].Status)
	})
}
