package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/strato-io/strato/internal/constants"
	"github.com/strato-io/strato/pkg/strato"
)

// ServersClient implements strato.ServersClient.
type ServersClient struct {
	root *Client
}

// Get implements strato.ServersClient.Get.
func (c *ServersClient) Get(ctx context.Context, id string) (*strato.Server, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeCompute)
	if err != nil {
		return nil, err
	}

	resp, err := svc.httpClient.Get(ctx, "/servers/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting server: %w", err)
	}

	var envelope struct {
		Server strato.Server `json:"server"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing server: %w", err)
	}

	return &envelope.Server, nil
}

// List implements strato.ServersClient.List. The detail listing is used so
// results carry the full server state.
func (c *ServersClient) List(ctx context.Context, query *strato.Query) ([]strato.Server, error) {
	svc, err := c.root.service(ctx, constants.ServiceTypeCompute)
	if err != nil {
		return nil, err
	}

	resp, err := svc.httpClient.Get(ctx, "/servers/detail", query)
	if err != nil {
		return nil, fmt.Errorf("listing servers: %w", err)
	}

	var envelope struct {
		Servers []strato.Server `json:"servers"`
	}

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing servers list: %w", err)
	}

	return envelope.Servers, nil
}

// Iterate implements strato.ServersClient.Iterate.
func (c *ServersClient) Iterate(ctx context.Context, query *strato.Query) *strato.ResourceIterator[strato.Server] {
	return strato.NewResourceIterator(ctx, c.List, query)
}

// Delete implements strato.ServersClient.Delete.
func (c *ServersClient) Delete(ctx context.Context, id string) error {
	svc, err := c.root.service(ctx, constants.ServiceTypeCompute)
	if err != nil {
		return err
	}

	_, err = svc.httpClient.Delete(ctx, "/servers/"+id)
	if err != nil {
		return fmt.Errorf("deleting server: %w", err)
	}

	return nil
}

// Find implements strato.ServersClient.Find.
func (c *ServersClient) Find(ctx context.Context, nameOrID string) (*strato.Server, error) {
	server, err := c.Get(ctx, nameOrID)
	if err == nil {
		return server, nil
	}

	if !strato.IsNotFound(err) {
		return nil, err
	}

	query := strato.NewQuery().Set("name", nameOrID)

	found, err := c.Iterate(ctx, query).One()
	if err != nil {
		return nil, fmt.Errorf("finding server %q: %w", nameOrID, err)
	}

	return &found, nil
}

// Lookup implements strato.ServersClient.Lookup.
func (c *ServersClient) Lookup(ctx context.Context, nameOrID string) (string, error) {
	server, err := c.Find(ctx, nameOrID)
	if err != nil {
		return "", err
	}

	return server.ID, nil
}

// Start implements strato.ServersClient.Start.
func (c *ServersClient) Start(ctx context.Context, id string) error {
	return c.action(ctx, id, "starting", map[string]interface{}{"os-start": nil})
}

// Stop implements strato.ServersClient.Stop.
func (c *ServersClient) Stop(ctx context.Context, id string) error {
	return c.action(ctx, id, "stopping", map[string]interface{}{"os-stop": nil})
}

// Reboot implements strato.ServersClient.Reboot.
func (c *ServersClient) Reboot(ctx context.Context, id string, hard bool) error {
	rebootType := "SOFT"
	if hard {
		rebootType = "HARD"
	}

	return c.action(ctx, id, "rebooting", map[string]interface{}{
		"reboot": map[string]string{"type": rebootType},
	})
}

func (c *ServersClient) action(ctx context.Context, id, verb string, body interface{}) error {
	svc, err := c.root.service(ctx, constants.ServiceTypeCompute)
	if err != nil {
		return err
	}

	_, err = svc.httpClient.Post(ctx, "/servers/"+id+"/action", body)
	if err != nil {
		return fmt.Errorf("%s server: %w", verb, err)
	}

	return nil
}
