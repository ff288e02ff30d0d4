package strato

import (
	"context"
	"fmt"
)

// Resource handles pair a server-side snapshot with locally tracked edits.
// Setters record the new value and mark the field dirty in one step; Save
// sends only the dirty fields and adopts the server's response as the new
// snapshot. Handles are not safe for concurrent use.

// NetworkHandle is an editable view of a network.
type NetworkHandle struct {
	client  NetworksClient
	network Network
	update  NetworkUpdateRequest
	tracker FieldTracker
}

// NewNetworkHandle wraps a fetched network for editing.
func NewNetworkHandle(client NetworksClient, network Network) *NetworkHandle {
	return &NetworkHandle{client: client, network: network}
}

// Network returns the current snapshot.
func (h *NetworkHandle) Network() Network { return h.network }

// ID returns the network ID.
func (h *NetworkHandle) ID() string { return h.network.ID }

// SetName stages a new name.
func (h *NetworkHandle) SetName(name string) {
	h.update.Name = SetField(name)
	h.tracker.Mark("name")
}

// SetDescription stages a new description.
func (h *NetworkHandle) SetDescription(description string) {
	h.update.Description = SetField(description)
	h.tracker.Mark("description")
}

// ClearDescription stages an explicit removal of the description.
func (h *NetworkHandle) ClearDescription() {
	h.update.Description = NullField[string]()
	h.tracker.Mark("description")
}

// SetAdminStateUp stages the administrative state.
func (h *NetworkHandle) SetAdminStateUp(up bool) {
	h.update.AdminStateUp = SetField(up)
	h.tracker.Mark("admin_state_up")
}

// Dirty reports whether the handle has unsaved edits.
func (h *NetworkHandle) Dirty() bool { return h.tracker.Any() }

// DirtyFields returns the names of fields with unsaved edits.
func (h *NetworkHandle) DirtyFields() []string { return h.tracker.Names() }

// Save sends the staged edits, if any, and replaces the snapshot with the
// server's response.
func (h *NetworkHandle) Save(ctx context.Context) error {
	if !h.tracker.Any() {
		return nil
	}

	updated, err := h.client.Update(ctx, h.network.ID, &h.update)
	if err != nil {
		return fmt.Errorf("saving network %s: %w", h.network.ID, err)
	}

	h.network = *updated
	h.reset()

	return nil
}

// Refresh re-fetches the network and discards unsaved edits.
func (h *NetworkHandle) Refresh(ctx context.Context) error {
	fresh, err := h.client.Get(ctx, h.network.ID)
	if err != nil {
		return fmt.Errorf("refreshing network %s: %w", h.network.ID, err)
	}

	h.network = *fresh
	h.reset()

	return nil
}

// Delete removes the network.
func (h *NetworkHandle) Delete(ctx context.Context) error {
	return h.client.Delete(ctx, h.network.ID)
}

func (h *NetworkHandle) reset() {
	h.update = NetworkUpdateRequest{}
	h.tracker.Reset()
}

// PortHandle is an editable view of a port.
type PortHandle struct {
	client  PortsClient
	port    Port
	update  PortUpdateRequest
	tracker FieldTracker
}

// NewPortHandle wraps a fetched port for editing.
func NewPortHandle(client PortsClient, port Port) *PortHandle {
	return &PortHandle{client: client, port: port}
}

// Port returns the current snapshot.
func (h *PortHandle) Port() Port { return h.port }

// ID returns the port ID.
func (h *PortHandle) ID() string { return h.port.ID }

// SetName stages a new name.
func (h *PortHandle) SetName(name string) {
	h.update.Name = SetField(name)
	h.tracker.Mark("name")
}

// SetDescription stages a new description.
func (h *PortHandle) SetDescription(description string) {
	h.update.Description = SetField(description)
	h.tracker.Mark("description")
}

// ClearDescription stages an explicit removal of the description.
func (h *PortHandle) ClearDescription() {
	h.update.Description = NullField[string]()
	h.tracker.Mark("description")
}

// SetAdminStateUp stages the administrative state.
func (h *PortHandle) SetAdminStateUp(up bool) {
	h.update.AdminStateUp = SetField(up)
	h.tracker.Mark("admin_state_up")
}

// SetDeviceID stages the attached device ID.
func (h *PortHandle) SetDeviceID(deviceID string) {
	h.update.DeviceID = SetField(deviceID)
	h.tracker.Mark("device_id")
}

// ClearDeviceID stages an explicit detach of the device.
func (h *PortHandle) ClearDeviceID() {
	h.update.DeviceID = NullField[string]()
	h.tracker.Mark("device_id")
}

// SetDeviceOwner stages the device owner.
func (h *PortHandle) SetDeviceOwner(owner string) {
	h.update.DeviceOwner = SetField(owner)
	h.tracker.Mark("device_owner")
}

// SetFixedIPs stages a replacement of the fixed IP assignments.
func (h *PortHandle) SetFixedIPs(fixedIPs []FixedIP) {
	h.update.FixedIPs = SetField(fixedIPs)
	h.tracker.Mark("fixed_ips")
}

// SetSecurityGroups stages a replacement of the security group list.
func (h *PortHandle) SetSecurityGroups(groups []string) {
	h.update.SecurityGroups = SetField(groups)
	h.tracker.Mark("security_groups")
}

// SetAllowedAddressPairs stages a replacement of the allowed address pairs.
func (h *PortHandle) SetAllowedAddressPairs(pairs []AllowedAddressPair) {
	h.update.AllowedAddressPairs = SetField(pairs)
	h.tracker.Mark("allowed_address_pairs")
}

// ClearAllowedAddressPairs stages an explicit removal of all pairs.
func (h *PortHandle) ClearAllowedAddressPairs() {
	h.update.AllowedAddressPairs = NullField[[]AllowedAddressPair]()
	h.tracker.Mark("allowed_address_pairs")
}

// Dirty reports whether the handle has unsaved edits.
func (h *PortHandle) Dirty() bool { return h.tracker.Any() }

// DirtyFields returns the names of fields with unsaved edits.
func (h *PortHandle) DirtyFields() []string { return h.tracker.Names() }

// Save sends the staged edits, if any, and replaces the snapshot with the
// server's response.
func (h *PortHandle) Save(ctx context.Context) error {
	if !h.tracker.Any() {
		return nil
	}

	updated, err := h.client.Update(ctx, h.port.ID, &h.update)
	if err != nil {
		return fmt.Errorf("saving port %s: %w", h.port.ID, err)
	}

	h.port = *updated
	h.reset()

	return nil
}

// Refresh re-fetches the port and discards unsaved edits.
func (h *PortHandle) Refresh(ctx context.Context) error {
	fresh, err := h.client.Get(ctx, h.port.ID)
	if err != nil {
		return fmt.Errorf("refreshing port %s: %w", h.port.ID, err)
	}

	h.port = *fresh
	h.reset()

	return nil
}

// Delete removes the port.
func (h *PortHandle) Delete(ctx context.Context) error {
	return h.client.Delete(ctx, h.port.ID)
}

func (h *PortHandle) reset() {
	h.update = PortUpdateRequest{}
	h.tracker.Reset()
}

// FloatingIPHandle is an editable view of a floating IP.
type FloatingIPHandle struct {
	client  FloatingIPsClient
	ip      FloatingIP
	update  FloatingIPUpdateRequest
	tracker FieldTracker
}

// NewFloatingIPHandle wraps a fetched floating IP for editing.
func NewFloatingIPHandle(client FloatingIPsClient, ip FloatingIP) *FloatingIPHandle {
	return &FloatingIPHandle{client: client, ip: ip}
}

// FloatingIP returns the current snapshot.
func (h *FloatingIPHandle) FloatingIP() FloatingIP { return h.ip }

// ID returns the floating IP ID.
func (h *FloatingIPHandle) ID() string { return h.ip.ID }

// SetDescription stages a new description.
func (h *FloatingIPHandle) SetDescription(description string) {
	h.update.Description = SetField(description)
	h.tracker.Mark("description")
}

// ClearDescription stages an explicit removal of the description.
func (h *FloatingIPHandle) ClearDescription() {
	h.update.Description = NullField[string]()
	h.tracker.Mark("description")
}

// AssociatePort stages an association with a port.
func (h *FloatingIPHandle) AssociatePort(portID string) {
	h.update.PortID = SetField(portID)
	h.tracker.Mark("port_id")
}

// Dissociate stages an explicit removal of the port association.
func (h *FloatingIPHandle) Dissociate() {
	h.update.PortID = NullField[string]()
	h.tracker.Mark("port_id")
}

// SetFixedIPAddress stages the fixed address used with the association.
func (h *FloatingIPHandle) SetFixedIPAddress(address string) {
	h.update.FixedIPAddress = SetField(address)
	h.tracker.Mark("fixed_ip_address")
}

// Dirty reports whether the handle has unsaved edits.
func (h *FloatingIPHandle) Dirty() bool { return h.tracker.Any() }

// DirtyFields returns the names of fields with unsaved edits.
func (h *FloatingIPHandle) DirtyFields() []string { return h.tracker.Names() }

// Save sends the staged edits, if any, and replaces the snapshot with the
// server's response.
func (h *FloatingIPHandle) Save(ctx context.Context) error {
	if !h.tracker.Any() {
		return nil
	}

	updated, err := h.client.Update(ctx, h.ip.ID, &h.update)
	if err != nil {
		return fmt.Errorf("saving floating IP %s: %w", h.ip.ID, err)
	}

	h.ip = *updated
	h.reset()

	return nil
}

// Refresh re-fetches the floating IP and discards unsaved edits.
func (h *FloatingIPHandle) Refresh(ctx context.Context) error {
	fresh, err := h.client.Get(ctx, h.ip.ID)
	if err != nil {
		return fmt.Errorf("refreshing floating IP %s: %w", h.ip.ID, err)
	}

	h.ip = *fresh
	h.reset()

	return nil
}

// Delete releases the floating IP.
func (h *FloatingIPHandle) Delete(ctx context.Context) error {
	return h.client.Delete(ctx, h.ip.ID)
}

func (h *FloatingIPHandle) reset() {
	h.update = FloatingIPUpdateRequest{}
	h.tracker.Reset()
}
