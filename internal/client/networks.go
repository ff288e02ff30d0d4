package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/strato-io/strato/internal/constants"
	"github.com/strato-io/strato/pkg/strato"
)

// NetworksClient implements strato.NetworksClient.
type NetworksClient struct {
	root *Client
}

// Get implements strato.NetworksClient.Get.
func (c *NetworksClient) Get(ctx context.Context, id string) (*strato.Network, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	resp, err := svc.httpClient.Get(ctx, "/networks/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting network: %w", err)
	}

	var envelope struct {
		Network strato.Network `json:"network"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing network: %w", err)
	}

	return &envelope.Network, nil
}

// List implements strato.NetworksClient.List.
func (c *NetworksClient) List(ctx context.Context, query *strato.Query) ([]strato.Network, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	resp, err := svc.httpClient.Get(ctx, "/networks", query)
	if err != nil {
		return nil, fmt.Errorf("listing networks: %w", err)
	}

	var envelope struct {
		Networks []strato.Network `json:"networks"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing networks list: %w", err)
	}

	return envelope.Networks, nil
}

// Iterate implements strato.NetworksClient.Iterate.
func (c *NetworksClient) Iterate(ctx context.Context, query *strato.Query) *strato.ResourceIterator[strato.Network] {
	return strato.NewResourceIterator(ctx, c.List, query)
}

// Create implements strato.NetworksClient.Create.
func (c *NetworksClient) Create(ctx context.Context, request *strato.NetworkCreateRequest) (*strato.Network, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	body := map[string]*strato.NetworkCreateRequest{"network": request}

	resp, err := svc.httpClient.Post(ctx, "/networks", body)
	if err != nil {
		return nil, fmt.Errorf("creating network: %w", err)
	}

	var envelope struct {
		Network strato.Network `json:"network"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing network response: %w", err)
	}

	return &envelope.Network, nil
}

// Update implements strato.NetworksClient.Update.
func (c *NetworksClient) Update(ctx context.Context, id string, request *strato.NetworkUpdateRequest) (*strato.Network, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	body := map[string]*strato.NetworkUpdateRequest{"network": request}

	resp, err := svc.httpClient.Put(ctx, "/networks/"+id, body)
	if err != nil {
		return nil, fmt.Errorf("updating network: %w", err)
	}

	var envelope struct {
		Network strato.Network `json:"network"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing network response: %w", err)
	}

	return &envelope.Network, nil
}

// Delete implements strato.NetworksClient.Delete.
func (c *NetworksClient) Delete(ctx context.Context, id string) error {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return err
	}

	_, err = svc.httpClient.Delete(ctx, "/networks/"+id)
	if err != nil {
		return fmt.Errorf("deleting network: %w", err)
	}

	return nil
}

// Find implements strato.NetworksClient.Find: a direct Get by ID, falling
// back to a unique-name lookup on 404.
func (c *NetworksClient) Find(ctx context.Context, nameOrID string) (*strato.Network, error) {
	network, err := c.Get(ctx, nameOrID)
	if err == nil {
		return network, nil
	}

	if !strato.IsNotFound(err) {
		return nil, err
	}

	query := strato.NewQuery().Set("name", nameOrID)

	found, err := c.Iterate(ctx, query).One()
	if err != nil {
		return nil, fmt.Errorf("finding network %q: %w", nameOrID, err)
	}

	return &found, nil
}

// Lookup implements strato.NetworksClient.Lookup.
func (c *NetworksClient) Lookup(ctx context.Context, nameOrID string) (string, error) {
	network, err := c.Find(ctx, nameOrID)
	if err != nil {
		return "", err
	}

	return network.ID, nil
}
