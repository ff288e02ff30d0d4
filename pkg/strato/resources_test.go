package strato_test

import (
	"encoding/json"
	"testing"

	"github.com/strato-io/strato/pkg/strato"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusEnums_RejectUnknownValues(t *testing.T) {
	t.Parallel()

	t.Run("network status", func(t *testing.T) {
		t.Parallel()

		var status strato.NetworkStatus

		require.NoError(t, json.Unmarshal([]byte(`"ACTIVE"`), &status))
		assert.Equal(t, strato.NetworkStatusActive, status)

		err := json.Unmarshal([]byte(`"GLOWING"`), &status)
		require.ErrorIs(t, err, strato.ErrUnknownProtocolValue)
	})

	t.Run("port status", func(t *testing.T) {
		t.Parallel()

		var status strato.PortStatus

		require.NoError(t, json.Unmarshal([]byte(`"N/A"`), &status))
		assert.Equal(t, strato.PortStatusNotApplicable, status)

		err := json.Unmarshal([]byte(`"WEIRD"`), &status)
		require.ErrorIs(t, err, strato.ErrUnknownProtocolValue)
	})

	t.Run("server status", func(t *testing.T) {
		t.Parallel()

		var status strato.ServerStatus

		require.NoError(t, json.Unmarshal([]byte(`"SHELVED_OFFLOADED"`), &status))
		assert.Equal(t, strato.ServerStatusShelvedOffloaded, status)

		err := json.Unmarshal([]byte(`"LEVITATING"`), &status)
		require.ErrorIs(t, err, strato.ErrUnknownProtocolValue)
	})
}

func TestPort_Decode(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"id": "port-1",
		"name": "web-port",
		"description": "",
		"admin_state_up": true,
		"device_id": "srv-1",
		"device_owner": "compute:nova",
		"fixed_ips": [{"ip_address": "10.0.0.4", "subnet_id": "sub-1"}],
		"mac_address": "fa:16:3e:aa:bb:cc",
		"network_id": "net-1",
		"security_groups": ["default"],
		"status": "ACTIVE"
	}`)

	var port strato.Port

	require.NoError(t, json.Unmarshal(body, &port))
	assert.Equal(t, "port-1", port.ID)
	assert.Equal(t, "port-1", port.ResourceID())
	assert.Equal(t, strato.PortStatusActive, port.Status)
	require.Len(t, port.FixedIPs, 1)
	assert.Equal(t, "10.0.0.4", port.FixedIPs[0].IPAddress)
	assert.Equal(t, "sub-1", port.FixedIPs[0].SubnetID)
}

func TestNetwork_Decode(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"id": "net-1",
		"name": "public",
		"description": "external network",
		"admin_state_up": true,
		"shared": true,
		"router:external": true,
		"mtu": 1500,
		"status": "ACTIVE",
		"subnets": ["sub-1", "sub-2"]
	}`)

	var network strato.Network

	require.NoError(t, json.Unmarshal(body, &network))
	assert.True(t, network.External)
	assert.Equal(t, 1500, network.MTU)
	assert.Equal(t, []string{"sub-1", "sub-2"}, network.SubnetIDs)
}
