package strato

import (
	"encoding/json"
	"fmt"
	"time"
)

// protocol enums are strict: a value the client does not know is a decode
// error rather than a silently carried string, so callers never branch on
// statuses that do not exist.

func unmarshalEnum(data []byte, kind string, known ...string) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("decoding %s: %w", kind, err)
	}

	for _, k := range known {
		if s == k {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w: %s %q", ErrUnknownProtocolValue, kind, s)
}

// NetworkStatus is the operational status of a network.
type NetworkStatus string

// Known network statuses.
const (
	NetworkStatusActive NetworkStatus = "ACTIVE"
	NetworkStatusDown   NetworkStatus = "DOWN"
	NetworkStatusBuild  NetworkStatus = "BUILD"
	NetworkStatusError  NetworkStatus = "ERROR"
)

// UnmarshalJSON rejects unknown statuses.
func (s *NetworkStatus) UnmarshalJSON(data []byte) error {
	value, err := unmarshalEnum(data, "network status",
		string(NetworkStatusActive), string(NetworkStatusDown),
		string(NetworkStatusBuild), string(NetworkStatusError))
	if err != nil {
		return err
	}

	*s = NetworkStatus(value)

	return nil
}

// PortStatus is the operational status of a port.
type PortStatus string

// Known port statuses.
const (
	PortStatusActive        PortStatus = "ACTIVE"
	PortStatusDown          PortStatus = "DOWN"
	PortStatusBuild         PortStatus = "BUILD"
	PortStatusError         PortStatus = "ERROR"
	PortStatusNotApplicable PortStatus = "N/A"
)

// UnmarshalJSON rejects unknown statuses.
func (s *PortStatus) UnmarshalJSON(data []byte) error {
	value, err := unmarshalEnum(data, "port status",
		string(PortStatusActive), string(PortStatusDown),
		string(PortStatusBuild), string(PortStatusError),
		string(PortStatusNotApplicable))
	if err != nil {
		return err
	}

	*s = PortStatus(value)

	return nil
}

// FloatingIPStatus is the operational status of a floating IP.
type FloatingIPStatus string

// Known floating IP statuses.
const (
	FloatingIPStatusActive FloatingIPStatus = "ACTIVE"
	FloatingIPStatusDown   FloatingIPStatus = "DOWN"
	FloatingIPStatusError  FloatingIPStatus = "ERROR"
)

// UnmarshalJSON rejects unknown statuses.
func (s *FloatingIPStatus) UnmarshalJSON(data []byte) error {
	value, err := unmarshalEnum(data, "floating IP status",
		string(FloatingIPStatusActive), string(FloatingIPStatusDown),
		string(FloatingIPStatusError))
	if err != nil {
		return err
	}

	*s = FloatingIPStatus(value)

	return nil
}

// ServerStatus is the state of a compute server.
type ServerStatus string

// Known server statuses.
const (
	ServerStatusActive           ServerStatus = "ACTIVE"
	ServerStatusBuild            ServerStatus = "BUILD"
	ServerStatusDeleted          ServerStatus = "DELETED"
	ServerStatusError            ServerStatus = "ERROR"
	ServerStatusHardReboot       ServerStatus = "HARD_REBOOT"
	ServerStatusPaused           ServerStatus = "PAUSED"
	ServerStatusReboot           ServerStatus = "REBOOT"
	ServerStatusRescue           ServerStatus = "RESCUE"
	ServerStatusResize           ServerStatus = "RESIZE"
	ServerStatusRevertResize     ServerStatus = "REVERT_RESIZE"
	ServerStatusShelved          ServerStatus = "SHELVED"
	ServerStatusShelvedOffloaded ServerStatus = "SHELVED_OFFLOADED"
	ServerStatusShutoff          ServerStatus = "SHUTOFF"
	ServerStatusSoftDeleted      ServerStatus = "SOFT_DELETED"
	ServerStatusSuspended        ServerStatus = "SUSPENDED"
)

// UnmarshalJSON rejects unknown statuses.
func (s *ServerStatus) UnmarshalJSON(data []byte) error {
	value, err := unmarshalEnum(data, "server status",
		string(ServerStatusActive), string(ServerStatusBuild),
		string(ServerStatusDeleted), string(ServerStatusError),
		string(ServerStatusHardReboot), string(ServerStatusPaused),
		string(ServerStatusReboot), string(ServerStatusRescue),
		string(ServerStatusResize), string(ServerStatusRevertResize),
		string(ServerStatusShelved), string(ServerStatusShelvedOffloaded),
		string(ServerStatusShutoff), string(ServerStatusSoftDeleted),
		string(ServerStatusSuspended))
	if err != nil {
		return err
	}

	*s = ServerStatus(value)

	return nil
}

// Network represents a virtual network.
type Network struct {
	ID           string        `json:"id"                   yaml:"id"`
	Name         string        `json:"name"                 yaml:"name"`
	Description  string        `json:"description"          yaml:"description"`
	AdminStateUp bool          `json:"admin_state_up"       yaml:"admin_state_up"`
	Shared       bool          `json:"shared"               yaml:"shared"`
	External     bool          `json:"router:external"      yaml:"external"`
	MTU          int           `json:"mtu"                  yaml:"mtu"`
	Status       NetworkStatus `json:"status"               yaml:"status"`
	SubnetIDs    []string      `json:"subnets"              yaml:"subnets"`
	CreatedAt    *time.Time    `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt    *time.Time    `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// ResourceID implements Pageable.
func (n Network) ResourceID() string { return n.ID }

// FixedIP is an IP address assignment on a port.
type FixedIP struct {
	IPAddress string `json:"ip_address,omitempty" yaml:"ip_address,omitempty"`
	SubnetID  string `json:"subnet_id,omitempty"  yaml:"subnet_id,omitempty"`
}

// AllowedAddressPair allows extra addresses through a port's anti-spoofing
// rules.
type AllowedAddressPair struct {
	IPAddress  string `json:"ip_address"            yaml:"ip_address"`
	MACAddress string `json:"mac_address,omitempty" yaml:"mac_address,omitempty"`
}

// Port represents a virtual switch port.
type Port struct {
	ID                  string               `json:"id"                              yaml:"id"`
	Name                string               `json:"name"                            yaml:"name"`
	Description         string               `json:"description"                     yaml:"description"`
	AdminStateUp        bool                 `json:"admin_state_up"                  yaml:"admin_state_up"`
	DeviceID            string               `json:"device_id"                       yaml:"device_id"`
	DeviceOwner         string               `json:"device_owner"                    yaml:"device_owner"`
	FixedIPs            []FixedIP            `json:"fixed_ips"                       yaml:"fixed_ips"`
	AllowedAddressPairs []AllowedAddressPair `json:"allowed_address_pairs,omitempty" yaml:"allowed_address_pairs,omitempty"`
	MACAddress          string               `json:"mac_address"                     yaml:"mac_address"`
	NetworkID           string               `json:"network_id"                      yaml:"network_id"`
	SecurityGroups      []string             `json:"security_groups,omitempty"       yaml:"security_groups,omitempty"`
	Status              PortStatus           `json:"status"                          yaml:"status"`
	CreatedAt           *time.Time           `json:"created_at,omitempty"            yaml:"created_at,omitempty"`
	UpdatedAt           *time.Time           `json:"updated_at,omitempty"            yaml:"updated_at,omitempty"`
}

// ResourceID implements Pageable.
func (p Port) ResourceID() string { return p.ID }

// AllocationPool is a range of addresses a subnet allocates from.
type AllocationPool struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end"   yaml:"end"`
}

// Subnet represents an address block on a network.
type Subnet struct {
	ID              string           `json:"id"                         yaml:"id"`
	Name            string           `json:"name"                       yaml:"name"`
	Description     string           `json:"description"                yaml:"description"`
	NetworkID       string           `json:"network_id"                 yaml:"network_id"`
	CIDR            string           `json:"cidr"                       yaml:"cidr"`
	IPVersion       int              `json:"ip_version"                 yaml:"ip_version"`
	GatewayIP       string           `json:"gateway_ip,omitempty"       yaml:"gateway_ip,omitempty"`
	EnableDHCP      bool             `json:"enable_dhcp"                yaml:"enable_dhcp"`
	AllocationPools []AllocationPool `json:"allocation_pools,omitempty" yaml:"allocation_pools,omitempty"`
	DNSNameservers  []string         `json:"dns_nameservers,omitempty"  yaml:"dns_nameservers,omitempty"`
	CreatedAt       *time.Time       `json:"created_at,omitempty"       yaml:"created_at,omitempty"`
	UpdatedAt       *time.Time       `json:"updated_at,omitempty"       yaml:"updated_at,omitempty"`
}

// ResourceID implements Pageable.
func (s Subnet) ResourceID() string { return s.ID }

// FloatingIP represents a floating IP address.
type FloatingIP struct {
	ID                string           `json:"id"                          yaml:"id"`
	Description       string           `json:"description"                 yaml:"description"`
	FloatingIPAddress string           `json:"floating_ip_address"         yaml:"floating_ip_address"`
	FixedIPAddress    string           `json:"fixed_ip_address,omitempty"  yaml:"fixed_ip_address,omitempty"`
	FloatingNetworkID string           `json:"floating_network_id"         yaml:"floating_network_id"`
	PortID            string           `json:"port_id,omitempty"           yaml:"port_id,omitempty"`
	RouterID          string           `json:"router_id,omitempty"         yaml:"router_id,omitempty"`
	DNSDomain         string           `json:"dns_domain,omitempty"        yaml:"dns_domain,omitempty"`
	DNSName           string           `json:"dns_name,omitempty"          yaml:"dns_name,omitempty"`
	Status            FloatingIPStatus `json:"status"                      yaml:"status"`
	CreatedAt         *time.Time       `json:"created_at,omitempty"        yaml:"created_at,omitempty"`
	UpdatedAt         *time.Time       `json:"updated_at,omitempty"        yaml:"updated_at,omitempty"`
}

// ResourceID implements Pageable.
func (f FloatingIP) ResourceID() string { return f.ID }

// Server represents a compute instance.
type Server struct {
	ID        string            `json:"id"                 yaml:"id"`
	Name      string            `json:"name"               yaml:"name"`
	Status    ServerStatus      `json:"status"             yaml:"status"`
	HostID    string            `json:"hostId,omitempty"   yaml:"host_id,omitempty"`
	KeyName   string            `json:"key_name,omitempty" yaml:"key_name,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	CreatedAt *time.Time        `json:"created,omitempty"  yaml:"created,omitempty"`
	UpdatedAt *time.Time        `json:"updated,omitempty"  yaml:"updated,omitempty"`
}

// ResourceID implements Pageable.
func (s Server) ResourceID() string { return s.ID }

// NetworkCreateRequest creates a network.
type NetworkCreateRequest struct {
	Name         string `json:"name,omitempty"           yaml:"name,omitempty"`
	Description  string `json:"description,omitempty"    yaml:"description,omitempty"`
	AdminStateUp *bool  `json:"admin_state_up,omitempty" yaml:"admin_state_up,omitempty"`
	Shared       *bool  `json:"shared,omitempty"         yaml:"shared,omitempty"`
}

// NetworkUpdateRequest carries a partial network update. Absent fields are
// left untouched by the server; NullField clears a value explicitly.
type NetworkUpdateRequest struct {
	Name         Field[string] `json:"name,omitzero"           yaml:"name,omitempty"`
	Description  Field[string] `json:"description,omitzero"    yaml:"description,omitempty"`
	AdminStateUp Field[bool]   `json:"admin_state_up,omitzero" yaml:"admin_state_up,omitempty"`
}

// PortCreateRequest creates a port.
type PortCreateRequest struct {
	NetworkID      string    `json:"network_id"                yaml:"network_id"`
	Name           string    `json:"name,omitempty"            yaml:"name,omitempty"`
	Description    string    `json:"description,omitempty"     yaml:"description,omitempty"`
	AdminStateUp   *bool     `json:"admin_state_up,omitempty"  yaml:"admin_state_up,omitempty"`
	DeviceID       string    `json:"device_id,omitempty"       yaml:"device_id,omitempty"`
	DeviceOwner    string    `json:"device_owner,omitempty"    yaml:"device_owner,omitempty"`
	FixedIPs       []FixedIP `json:"fixed_ips,omitempty"       yaml:"fixed_ips,omitempty"`
	MACAddress     string    `json:"mac_address,omitempty"     yaml:"mac_address,omitempty"`
	SecurityGroups []string  `json:"security_groups,omitempty" yaml:"security_groups,omitempty"`
}

// PortUpdateRequest carries a partial port update.
type PortUpdateRequest struct {
	Name                Field[string]               `json:"name,omitzero"                  yaml:"name,omitempty"`
	Description         Field[string]               `json:"description,omitzero"           yaml:"description,omitempty"`
	AdminStateUp        Field[bool]                 `json:"admin_state_up,omitzero"        yaml:"admin_state_up,omitempty"`
	DeviceID            Field[string]               `json:"device_id,omitzero"             yaml:"device_id,omitempty"`
	DeviceOwner         Field[string]               `json:"device_owner,omitzero"          yaml:"device_owner,omitempty"`
	FixedIPs            Field[[]FixedIP]            `json:"fixed_ips,omitzero"             yaml:"fixed_ips,omitempty"`
	AllowedAddressPairs Field[[]AllowedAddressPair] `json:"allowed_address_pairs,omitzero" yaml:"allowed_address_pairs,omitempty"`
	SecurityGroups      Field[[]string]             `json:"security_groups,omitzero"       yaml:"security_groups,omitempty"`
}

// SubnetCreateRequest creates a subnet.
type SubnetCreateRequest struct {
	NetworkID      string   `json:"network_id"                yaml:"network_id"`
	CIDR           string   `json:"cidr"                      yaml:"cidr"`
	IPVersion      int      `json:"ip_version"                yaml:"ip_version"`
	Name           string   `json:"name,omitempty"            yaml:"name,omitempty"`
	Description    string   `json:"description,omitempty"     yaml:"description,omitempty"`
	GatewayIP      *string  `json:"gateway_ip,omitempty"      yaml:"gateway_ip,omitempty"`
	EnableDHCP     *bool    `json:"enable_dhcp,omitempty"     yaml:"enable_dhcp,omitempty"`
	DNSNameservers []string `json:"dns_nameservers,omitempty" yaml:"dns_nameservers,omitempty"`
}

// SubnetUpdateRequest carries a partial subnet update.
type SubnetUpdateRequest struct {
	Name           Field[string]   `json:"name,omitzero"            yaml:"name,omitempty"`
	Description    Field[string]   `json:"description,omitzero"     yaml:"description,omitempty"`
	GatewayIP      Field[string]   `json:"gateway_ip,omitzero"      yaml:"gateway_ip,omitempty"`
	EnableDHCP     Field[bool]     `json:"enable_dhcp,omitzero"     yaml:"enable_dhcp,omitempty"`
	DNSNameservers Field[[]string] `json:"dns_nameservers,omitzero" yaml:"dns_nameservers,omitempty"`
}

// FloatingIPCreateRequest allocates a floating IP.
type FloatingIPCreateRequest struct {
	FloatingNetworkID string `json:"floating_network_id"        yaml:"floating_network_id"`
	Description       string `json:"description,omitempty"      yaml:"description,omitempty"`
	PortID            string `json:"port_id,omitempty"          yaml:"port_id,omitempty"`
	FixedIPAddress    string `json:"fixed_ip_address,omitempty" yaml:"fixed_ip_address,omitempty"`
}

// FloatingIPUpdateRequest carries a partial floating IP update. Clearing
// PortID dissociates the floating IP.
type FloatingIPUpdateRequest struct {
	Description    Field[string] `json:"description,omitzero"      yaml:"description,omitempty"`
	PortID         Field[string] `json:"port_id,omitzero"          yaml:"port_id,omitempty"`
	FixedIPAddress Field[string] `json:"fixed_ip_address,omitzero" yaml:"fixed_ip_address,omitempty"`
}
