package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/strato-io/strato/pkg/strato"
)

// NewFloatingIPsCommand creates the floating-ips command group.
func NewFloatingIPsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "floating-ips",
		Aliases: []string{"floating-ip", "fip"},
		Short:   "Manage floating IPs",
		Long:    "Allocate, associate and release floating IP addresses",
	}

	cmd.AddCommand(newFloatingIPsListCommand())
	cmd.AddCommand(newFloatingIPsGetCommand())
	cmd.AddCommand(newFloatingIPsCreateCommand())
	cmd.AddCommand(newFloatingIPsAssociateCommand())
	cmd.AddCommand(newFloatingIPsDissociateCommand())
	cmd.AddCommand(newFloatingIPsDeleteCommand())

	return cmd
}

func newFloatingIPsListCommand() *cobra.Command {
	var portID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List floating IPs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			query := strato.NewQuery()
			if portID != "" {
				query.Set("port_id", portID)
			}

			floatingIPs, err := client.FloatingIPs().Iterate(context.Background(), query).All()
			if err != nil {
				return fmt.Errorf("listing floating IPs: %w", err)
			}

			return outputFloatingIPs(floatingIPs)
		},
	}

	cmd.Flags().StringVar(&portID, "port", "", "filter by attached port ID")

	return cmd
}

func newFloatingIPsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID_OR_ADDRESS",
		Short: "Show one floating IP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			floatingIP, err := client.FloatingIPs().Find(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("finding floating IP: %w", err)
			}

			return outputFloatingIP(floatingIP)
		},
	}
}

func newFloatingIPsCreateCommand() *cobra.Command {
	var (
		networkNameOrID string
		portID          string
		description     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Allocate a floating IP",
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

			floatingIP, err := client.FloatingIPs().Create(ctx, &strato.FloatingIPCreateRequest{
				FloatingNetworkID: networkID,
				PortID:            portID,
				Description:       description,
			})
			if err != nil {
				return fmt.Errorf("allocating floating IP: %w", err)
			}

			return outputFloatingIP(floatingIP)
		},
	}

	cmd.Flags().StringVar(&networkNameOrID, "network", "", "external network name or ID")
	cmd.Flags().StringVar(&portID, "port", "", "port to associate immediately")
	cmd.Flags().StringVar(&description, "description", "", "description")

	_ = cmd.MarkFlagRequired("network")

	return cmd
}

func newFloatingIPsAssociateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "associate ID_OR_ADDRESS PORT_ID",
		Short: "Associate a floating IP with a port",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			floatingIP, err := client.FloatingIPs().Find(ctx, args[0])
			if err != nil {
				return fmt.Errorf("finding floating IP: %w", err)
			}

			updated, err := client.FloatingIPs().Update(ctx, floatingIP.ID, &strato.FloatingIPUpdateRequest{
				PortID: strato.SetField(args[1]),
			})
			if err != nil {
				return fmt.Errorf("associating floating IP: %w", err)
			}

			return outputFloatingIP(updated)
		},
	}
}

func newFloatingIPsDissociateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dissociate ID_OR_ADDRESS",
		Short: "Detach a floating IP from its port",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			floatingIP, err := client.FloatingIPs().Find(ctx, args[0])
			if err != nil {
				return fmt.Errorf("finding floating IP: %w", err)
			}

			updated, err := client.FloatingIPs().Update(ctx, floatingIP.ID, &strato.FloatingIPUpdateRequest{
				PortID: strato.NullField[string](),
			})
			if err != nil {
				return fmt.Errorf("dissociating floating IP: %w", err)
			}

			return outputFloatingIP(updated)
		},
	}
}

func newFloatingIPsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID_OR_ADDRESS",
		Short: "Release a floating IP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			floatingIP, err := client.FloatingIPs().Find(ctx, args[0])
			if err != nil {
				return fmt.Errorf("finding floating IP: %w", err)
			}

			if err := client.FloatingIPs().Delete(ctx, floatingIP.ID); err != nil {
				return fmt.Errorf("releasing floating IP: %w", err)
			}

			fmt.Printf("Floating IP %s released\n", floatingIP.FloatingIPAddress)

			return nil
		},
	}
}

func outputFloatingIP(floatingIP *strato.FloatingIP) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		return encodeJSON(floatingIP)
	case OutputFormatYAML:
		return encodeYAML(floatingIP)
	default:
		return outputFloatingIPsTable([]strato.FloatingIP{*floatingIP})
	}
}

func outputFloatingIPs(floatingIPs []strato.FloatingIP) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		return encodeJSON(floatingIPs)
	case OutputFormatYAML:
		return encodeYAML(floatingIPs)
	default:
		return outputFloatingIPsTable(floatingIPs)
	}
}

func outputFloatingIPsTable(floatingIPs []strato.FloatingIP) error {
	if len(floatingIPs) == 0 {
		fmt.Println("No floating IPs found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Floating IP", "Fixed IP", "Port", "Status")

	rows := lo.Map(floatingIPs, func(floatingIP strato.FloatingIP, _ int) []string {
		return []string{
			floatingIP.ID,
			floatingIP.FloatingIPAddress,
			orNotAvailable(floatingIP.FixedIPAddress),
			orNotAvailable(floatingIP.PortID),
			string(floatingIP.Status),
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
