package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/strato-io/strato/pkg/strato"
)

// NewPortsCommand creates the ports command group.
func NewPortsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ports",
		Aliases: []string{"port"},
		Short:   "Manage ports",
		Long:    "List and manage switch ports",
	}

	cmd.AddCommand(newPortsListCommand())
	cmd.AddCommand(newPortsGetCommand())
	cmd.AddCommand(newPortsCreateCommand())
	cmd.AddCommand(newPortsUpdateCommand())
	cmd.AddCommand(newPortsDeleteCommand())

	return cmd
}

func newPortsListCommand() *cobra.Command {
	var (
		networkNameOrID string
		deviceID        string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ports",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			query := strato.NewQuery()

			if networkNameOrID != "" {
				networkID, err := resolveNameOrID(ctx, networkNameOrID, client.Networks().Lookup)
				if err != nil {
					return fmt.Errorf("finding network: %w", err)
				}

				query.Set("network_id", networkID)
			}

			if deviceID != "" {
				query.Set("device_id", deviceID)
			}

			ports, err := client.Ports().Iterate(ctx, query).All()
			if err != nil {
				return fmt.Errorf("listing ports: %w", err)
			}

			return outputPorts(ports)
		},
	}

	cmd.Flags().StringVar(&networkNameOrID, "network", "", "filter by network name or ID")
	cmd.Flags().StringVar(&deviceID, "device", "", "filter by device ID")

	return cmd
}

func newPortsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME_OR_ID",
		Short: "Show one port",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			port, err := client.Ports().Find(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("finding port: %w", err)
			}

			return outputPort(port)
		},
	}
}

func newPortsCreateCommand() *cobra.Command {
	var (
		networkNameOrID string
		name            string
		fixedIPs        []string
		deviceID        string
		adminDown       bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a port",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			networkID, err := resolveNameOrID(ctx, networkNameOrID, client.Networks().Lookup)
			if err != nil {
				return fmt.Errorf("finding network: %w", err)
			}

			request := &strato.PortCreateRequest{
				NetworkID: networkID,
				Name:      name,
				DeviceID:  deviceID,
				FixedIPs: lo.Map(fixedIPs, func(address string, _ int) strato.FixedIP {
					return strato.FixedIP{IPAddress: address}
				}),
			}

			if adminDown {
				up := false
				request.AdminStateUp = &up
			}

			port, err := client.Ports().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("creating port: %w", err)
			}

			return outputPort(port)
		},
	}

	cmd.Flags().StringVar(&networkNameOrID, "network", "", "parent network name or ID")
	cmd.Flags().StringVar(&name, "name", "", "port name")
	cmd.Flags().StringSliceVar(&fixedIPs, "fixed-ip", nil, "fixed IP address (repeatable)")
	cmd.Flags().StringVar(&deviceID, "device", "", "device ID to attach to")
	cmd.Flags().BoolVar(&adminDown, "admin-down", false, "create with admin state down")

	_ = cmd.MarkFlagRequired("network")

	return cmd
}

func newPortsUpdateCommand() *cobra.Command {
	var (
		name        string
		deviceID    string
		clearDevice bool
		adminUp     bool
	)

	cmd := &cobra.Command{
		Use:   "update NAME_OR_ID",
		Short: "Update a port",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			id, err := resolveNameOrID(ctx, args[0], client.Ports().Lookup)
			if err != nil {
				return fmt.Errorf("finding port: %w", err)
			}

			request := &strato.PortUpdateRequest{}
			if cmd.Flags().Changed("name") {
				request.Name = strato.SetField(name)
			}

			switch {
			case clearDevice:
				request.DeviceID = strato.NullField[string]()
			case cmd.Flags().Changed("device"):
				request.DeviceID = strato.SetField(deviceID)
			}

			if cmd.Flags().Changed("admin-up") {
				request.AdminStateUp = strato.SetField(adminUp)
			}

			port, err := client.Ports().Update(ctx, id, request)
			if err != nil {
				return fmt.Errorf("updating port: %w", err)
			}

			return outputPort(port)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new port name")
	cmd.Flags().StringVar(&deviceID, "device", "", "new device ID")
	cmd.Flags().BoolVar(&clearDevice, "clear-device", false, "detach the port from its device")
	cmd.Flags().BoolVar(&adminUp, "admin-up", true, "set the admin state")

	return cmd
}

func newPortsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME_OR_ID",
		Short: "Delete a port",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			id, err := resolveNameOrID(ctx, args[0], client.Ports().Lookup)
			if err != nil {
				return fmt.Errorf("finding port: %w", err)
			}

			if err := client.Ports().Delete(ctx, id); err != nil {
				return fmt.Errorf("deleting port: %w", err)
			}

			fmt.Printf("Port %s deleted\n", id)

			return nil
		},
	}
}

func outputPort(port *strato.Port) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		return encodeJSON(port)
	case OutputFormatYAML:
		return encodeYAML(port)
	default:
		return outputPortsTable([]strato.Port{*port})
	}
}

func outputPorts(ports []strato.Port) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		return encodeJSON(ports)
	case OutputFormatYAML:
		return encodeYAML(ports)
	default:
		return outputPortsTable(ports)
	}
}

func outputPortsTable(ports []strato.Port) error {
	if len(ports) == 0 {
		fmt.Println("No ports found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Status", "MAC", "Fixed IPs", "Device")

	rows := lo.Map(ports, func(port strato.Port, _ int) []string {
		addresses := lo.Map(port.FixedIPs, func(fixedIP strato.FixedIP, _ int) string {
			return fixedIP.IPAddress
		})

		return []string{
			port.ID,
			orNotAvailable(port.Name),
			string(port.Status),
			orNotAvailable(port.MACAddress),
			orNotAvailable(strings.Join(addresses, ", ")),
			orNotAvailable(port.DeviceID),
		}
	})

	for _, row := range rows {
		_ = table.Append(row)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	return nil
}
