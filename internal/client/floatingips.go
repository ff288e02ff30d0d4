package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/strato-io/strato/internal/constants"
	"github.com/strato-io/strato/pkg/strato"
)

// FloatingIPsClient implements strato.FloatingIPsClient.
type FloatingIPsClient struct {
	root *Client
}

// Get implements strato.FloatingIPsClient.Get.
func (c *FloatingIPsClient) Get(ctx context.Context, id string) (*strato.FloatingIP, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	resp, err := svc.httpClient.Get(ctx, "/floatingips/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting floating IP: %w", err)
	}

	var envelope struct {
		FloatingIP strato.FloatingIP `json:"floatingip"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing floating IP: %w", err)
	}

	return &envelope.FloatingIP, nil
}

// List implements strato.FloatingIPsClient.List.
func (c *FloatingIPsClient) List(ctx context.Context, query *strato.Query) ([]strato.FloatingIP, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	resp, err := svc.httpClient.Get(ctx, "/floatingips", query)
	if err != nil {
		return nil, fmt.Errorf("listing floating IPs: %w", err)
	}

	var envelope struct {
		FloatingIPs []strato.FloatingIP `json:"floatingips"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing floating IPs list: %w", err)
	}

	return envelope.FloatingIPs, nil
}

// Iterate implements strato.FloatingIPsClient.Iterate.
func (c *FloatingIPsClient) Iterate(ctx context.Context, query *strato.Query) *strato.ResourceIterator[strato.FloatingIP] {
	return strato.NewResourceIterator(ctx, c.List, query)
}

// Create implements strato.FloatingIPsClient.Create.
func (c *FloatingIPsClient) Create(ctx context.Context, request *strato.FloatingIPCreateRequest) (*strato.FloatingIP, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	body := map[string]*strato.FloatingIPCreateRequest{"floatingip": request}

	resp, err := svc.httpClient.Post(ctx, "/floatingips", body)
	if err != nil {
		return nil, fmt.Errorf("creating floating IP: %w", err)
	}

	var envelope struct {
		FloatingIP strato.FloatingIP `json:"floatingip"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing floating IP response: %w", err)
	}

	return &envelope.FloatingIP, nil
}

// Update implements strato.FloatingIPsClient.Update.
func (c *FloatingIPsClient) Update(ctx context.Context, id string, request *strato.FloatingIPUpdateRequest) (*strato.FloatingIP, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	body := map[string]*strato.FloatingIPUpdateRequest{"floatingip": request}

	resp, err := svc.httpClient.Put(ctx, "/floatingips/"+id, body)
	if err != nil {
		return nil, fmt.Errorf("updating floating IP: %w", err)
	}

	var envelope struct {
		FloatingIP strato.FloatingIP `json:"floatingip"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing floating IP response: %w", err)
	}

	return &envelope.FloatingIP, nil
}

// Delete implements strato.FloatingIPsClient.Delete.
func (c *FloatingIPsClient) Delete(ctx context.Context, id string) error {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return err
	}

	_, err = svc.httpClient.Delete(ctx, "/floatingips/"+id)
	if err != nil {
		return fmt.Errorf("deleting floating IP: %w", err)
	}

	return nil
}

// Find implements strato.FloatingIPsClient.Find. Floating IPs have no name,
// so the fallback matches the floating address instead.
func (c *FloatingIPsClient) Find(ctx context.Context, idOrAddress string) (*strato.FloatingIP, error) {
	floatingIP, err := c.Get(ctx, idOrAddress)
	if err == nil {
		return floatingIP, nil
	}

	if !strato.IsNotFound(err) {
		return nil, err
	}

	query := strato.NewQuery().Set("floating_ip_address", idOrAddress)

	found, err := c.Iterate(ctx, query).One()
	if err != nil {
		return nil, fmt.Errorf("finding floating IP %q: %w", idOrAddress, err)
	}

	return &found, nil
}
