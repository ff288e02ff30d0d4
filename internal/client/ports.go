package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/strato-io/strato/internal/constants"
	"github.com/strato-io/strato/pkg/strato"
)

// PortsClient implements strato.PortsClient.
type PortsClient struct {
	root *Client
}

// Get implements strato.PortsClient.Get.
func (c *PortsClient) Get(ctx context.Context, id string) (*strato.Port, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	resp, err := svc.httpClient.Get(ctx, "/ports/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting port: %w", err)
	}

	var envelope struct {
		Port strato.Port `json:"port"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing port: %w", err)
	}

	return &envelope.Port, nil
}

// List implements strato.PortsClient.List.
func (c *PortsClient) List(ctx context.Context, query *strato.Query) ([]strato.Port, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	resp, err := svc.httpClient.Get(ctx, "/ports", query)
	if err != nil {
		return nil, fmt.Errorf("listing ports: %w", err)
	}

	var envelope struct {
		Ports []strato.Port `json:"ports"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing ports list: %w", err)
	}

	return envelope.Ports, nil
}

// Iterate implements strato.PortsClient.Iterate.
func (c *PortsClient) Iterate(ctx context.Context, query *strato.Query) *strato.ResourceIterator[strato.Port] {
	return strato.NewResourceIterator(ctx, c.List, query)
}

// Create implements strato.PortsClient.Create.
func (c *PortsClient) Create(ctx context.Context, request *strato.PortCreateRequest) (*strato.Port, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	body := map[string]*strato.PortCreateRequest{"port": request}

	resp, err := svc.httpClient.Post(ctx, "/ports", body)
	if err != nil {
		return nil, fmt.Errorf("creating port: %w", err)
	}

	var envelope struct {
		Port strato.Port `json:"port"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing port response: %w", err)
	}

	return &envelope.Port, nil
}

// Update implements strato.PortsClient.Update.
func (c *PortsClient) Update(ctx context.Context, id string, request *strato.PortUpdateRequest) (*strato.Port, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	body := map[string]*strato.PortUpdateRequest{"port": request}

	resp, err := svc.httpClient.Put(ctx, "/ports/"+id, body)
	if err != nil {
		return nil, fmt.Errorf("updating port: %w", err)
	}

	var envelope struct {
		Port strato.Port `json:"port"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing port response: %w", err)
	}

	return &envelope.Port, nil
}

// Delete implements strato.PortsClient.Delete.
func (c *PortsClient) Delete(ctx context.Context, id string) error {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return err
	}

	_, err = svc.httpClient.Delete(ctx, "/ports/"+id)
	if err != nil {
		return fmt.Errorf("deleting port: %w", err)
	}

	return nil
}

// Find implements strato.PortsClient.Find.
func (c *PortsClient) Find(ctx context.Context, nameOrID string) (*strato.Port, error) {
	port, err := c.Get(ctx, nameOrID)
	if err == nil {
		return port, nil
	}

	if !strato.IsNotFound(err) {
		return nil, err
	}

	query := strato.NewQuery().Set("name", nameOrID)

	found, err := c.Iterate(ctx, query).One()
	if err != nil {
		return nil, fmt.Errorf("finding port %q: %w", nameOrID, err)
	}

	return &found, nil
}

// Lookup implements strato.PortsClient.Lookup.
func (c *PortsClient) Lookup(ctx context.Context, nameOrID string) (string, error) {
	port, err := c.Find(ctx, nameOrID)
	if err != nil {
		return "", err
	}

	return port.ID, nil
}
