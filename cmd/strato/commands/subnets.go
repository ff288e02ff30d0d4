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

// NewSubnetsCommand creates the subnets command group.
func NewSubnetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subnets",
		Aliases: []string{"subnet"},
		Short:   "Manage subnets",
		Long:    "List and manage subnets",
	}

	cmd.AddCommand(newSubnetsListCommand())
	cmd.AddCommand(newSubnetsGetCommand())
	cmd.AddCommand(newSubnetsCreateCommand())
	cmd.AddCommand(newSubnetsUpdateCommand())
	cmd.AddCommand(newSubnetsDeleteCommand())

	return cmd
}

func newSubnetsListCommand() *cobra.Command {
	var networkNameOrID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subnets",
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

			subnets, err := client.Subnets().Iterate(ctx, query).All()
			if err != nil {
				return fmt.Errorf("listing subnets: %w", err)
			}

			return outputSubnets(subnets)
		},
	}

	cmd.Flags().StringVar(&networkNameOrID, "network", "", "filter by network name or ID")

	return cmd
}

func newSubnetsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME_OR_ID",
		Short: "Show one subnet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			subnet, err := client.Subnets().Find(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("finding subnet: %w", err)
			}

			return outputSubnet(subnet)
		},
	}
}

//nolint:funlen // flag wiring is repetitive but flat
func newSubnetsCreateCommand() *cobra.Command {
	var (
		networkNameOrID string
		cidr            string
		ipVersion       int
		name            string
		gateway         string
		noGateway       bool
		noDHCP          bool
		nameservers     []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a subnet",
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

			request := &strato.SubnetCreateRequest{
				NetworkID:      networkID,
				CIDR:           cidr,
				IPVersion:      ipVersion,
				Name:           name,
				DNSNameservers: nameservers,
			}

			switch {
			case noGateway:
				empty := ""
				request.GatewayIP = &empty
			case gateway != "":
				request.GatewayIP = &gateway
			}

			if noDHCP {
				enabled := false
				request.EnableDHCP = &enabled
			}

			subnet, err := client.Subnets().Create(ctx, request)
			if err != nil {
				return fmt.Errorf("creating subnet: %w", err)
			}

			return outputSubnet(subnet)
		},
	}

	cmd.Flags().StringVar(&networkNameOrID, "network", "", "parent network name or ID")
	cmd.Flags().StringVar(&cidr, "cidr", "", "subnet CIDR, e.g. 10.0.0.0/24")
	cmd.Flags().IntVar(&ipVersion, "ip-version", 4, "IP version (4 or 6)")
	cmd.Flags().StringVar(&name, "name", "", "subnet name")
	cmd.Flags().StringVar(&gateway, "gateway", "", "gateway address")
	cmd.Flags().BoolVar(&noGateway, "no-gateway", false, "create without a gateway")
	cmd.Flags().BoolVar(&noDHCP, "no-dhcp", false, "disable DHCP")
	cmd.Flags().StringSliceVar(&nameservers, "dns-nameserver", nil, "DNS nameserver (repeatable)")

	_ = cmd.MarkFlagRequired("network")
	_ = cmd.MarkFlagRequired("cidr")

	return cmd
}

func newSubnetsUpdateCommand() *cobra.Command {
	var (
		name         string
		gateway      string
		clearGateway bool
		enableDHCP   bool
	)

	cmd := &cobra.Command{
		Use:   "update NAME_OR_ID",
		Short: "Update a subnet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			id, err := resolveNameOrID(ctx, args[0], client.Subnets().Lookup)
			if err != nil {
				return fmt.Errorf("finding subnet: %w", err)
			}

			request := &strato.SubnetUpdateRequest{}
			if cmd.Flags().Changed("name") {
				request.Name = strato.SetField(name)
			}

			switch {
			case clearGateway:
				request.GatewayIP = strato.NullField[string]()
			case cmd.Flags().Changed("gateway"):
				request.GatewayIP = strato.SetField(gateway)
			}

			if cmd.Flags().Changed("dhcp") {
				request.EnableDHCP = strato.SetField(enableDHCP)
			}

			subnet, err := client.Subnets().Update(ctx, id, request)
			if err != nil {
				return fmt.Errorf("updating subnet: %w", err)
			}

			return outputSubnet(subnet)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new subnet name")
	cmd.Flags().StringVar(&gateway, "gateway", "", "new gateway address")
	cmd.Flags().BoolVar(&clearGateway, "clear-gateway", false, "remove the gateway")
	cmd.Flags().BoolVar(&enableDHCP, "dhcp", true, "enable or disable DHCP")

	return cmd
}

func newSubnetsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME_OR_ID",
		Short: "Delete a subnet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			id, err := resolveNameOrID(ctx, args[0], client.Subnets().Lookup)
			if err != nil {
				return fmt.Errorf("finding subnet: %w", err)
			}

			if err := client.Subnets().Delete(ctx, id); err != nil {
				return fmt.Errorf("deleting subnet: %w", err)
			}

			fmt.Printf("Subnet %s deleted\n", id)

			return nil
		},
	}
}

func outputSubnet(subnet *strato.Subnet) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		return encodeJSON(subnet)
	case OutputFormatYAML:
		return encodeYAML(subnet)
	default:
		return outputSubnetsTable([]strato.Subnet{*subnet})
	}
}

func outputSubnets(subnets []strato.Subnet) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		return encodeJSON(subnets)
	case OutputFormatYAML:
		return encodeYAML(subnets)
	default:
		return outputSubnetsTable(subnets)
	}
}

func outputSubnetsTable(subnets []strato.Subnet) error {
	if len(subnets) == 0 {
		fmt.Println("No subnets found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "CIDR", "Gateway", "DHCP", "Network")

	rows := lo.Map(subnets, func(subnet strato.Subnet, _ int) []string {
		return []string{
			subnet.ID,
			orNotAvailable(subnet.Name),
			subnet.CIDR,
			orNotAvailable(subnet.GatewayIP),
			formatBool(subnet.EnableDHCP),
			subnet.NetworkID,
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
