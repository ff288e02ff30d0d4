package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/strato-io/strato/internal/constants"
	"github.com/strato-io/strato/pkg/strato"
)

// SubnetsClient implements strato.SubnetsClient.
type SubnetsClient struct {
	root *Client
}

// Get implements strato.SubnetsClient.Get.
func (c *SubnetsClient) Get(ctx context.Context, id string) (*strato.Subnet, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	resp, err := svc.httpClient.Get(ctx, "/subnets/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting subnet: %w", err)
	}

	var envelope struct {
		Subnet strato.Subnet `json:"subnet"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing subnet: %w", err)
	}

	return &envelope.Subnet, nil
}

// List implements strato.SubnetsClient.List.
func (c *SubnetsClient) List(ctx context.Context, query *strato.Query) ([]strato.Subnet, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	resp, err := svc.httpClient.Get(ctx, "/subnets", query)
	if err != nil {
		return nil, fmt.Errorf("listing subnets: %w", err)
	}

	var envelope struct {
		Subnets []strato.Subnet `json:"subnets"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing subnets list: %w", err)
	}

	return envelope.Subnets, nil
}

// Iterate implements strato.SubnetsClient.Iterate.
func (c *SubnetsClient) Iterate(ctx context.Context, query *strato.Query) *strato.ResourceIterator[strato.Subnet] {
	return strato.NewResourceIterator(ctx, c.List, query)
}

// Create implements strato.SubnetsClient.Create.
func (c *SubnetsClient) Create(ctx context.Context, request *strato.SubnetCreateRequest) (*strato.Subnet, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	body := map[string]*strato.SubnetCreateRequest{"subnet": request}

	resp, err := svc.httpClient.Post(ctx, "/subnets", body)
	if err != nil {
		return nil, fmt.Errorf("creating subnet: %w", err)
	}

	var envelope struct {
		Subnet strato.Subnet `json:"subnet"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing subnet response: %w", err)
	}

	return &envelope.Subnet, nil
}

// Update implements strato.SubnetsClient.Update.
func (c *SubnetsClient) Update(ctx context.Context, id string, request *strato.SubnetUpdateRequest) (*strato.Subnet, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return nil, err
	}

	body := map[string]*strato.SubnetUpdateRequest{"subnet": request}

	resp, err := svc.httpClient.Put(ctx, "/subnets/"+id, body)
	if err != nil {
		return nil, fmt.Errorf("updating subnet: %w", err)
	}

	var envelope struct {
		Subnet strato.Subnet `json:"subnet"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing subnet response: %w", err)
	}

	return &envelope.Subnet, nil
}

// Delete implements strato.SubnetsClient.Delete.
func (c *SubnetsClient) Delete(ctx context.Context, id string) error {
	svc, err := c.root.service(ctx, constants.ServiceTypeNetwork)
	if err != nil {
		return err
	}

	_, err = svc.httpClient.Delete(ctx, "/subnets/"+id)
	if err != nil {
		return fmt.Errorf("deleting subnet: %w", err)
	}

	return nil
}

// Find implements strato.SubnetsClient.Find.
func (c *SubnetsClient) Find(ctx context.Context, nameOrID string) (*strato.Subnet, error) {
	subnet, err := c.Get(ctx, nameOrID)
	if err == nil {
		return subnet, nil
	}

	if !strato.IsNotFound(err) {
		return nil, err
	}

	query := strato.NewQuery().Set("name", nameOrID)

	found, err := c.Iterate(ctx, query).One()
	if err != nil {
		return nil, fmt.Errorf("finding subnet %q: %w", nameOrID, err)
	}

	return &found, nil
}

// Lookup implements strato.SubnetsClient.Lookup.
func (c *SubnetsClient) Lookup(ctx context.Context, nameOrID string) (string, error) {
	subnet, err := c.Find(ctx, nameOrID)
	if err != nil {
		return "", err
	}

	return subnet.ID, nil
}
