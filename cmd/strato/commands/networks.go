package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/strato-io/strato/internal/constants"
	"github.com/strato-io/strato/pkg/strato"
)

// NewNetworksCommand creates the networks command group.
func NewNetworksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "networks",
		Aliases: []string{"network", "net"},
		Short:   "Manage networks",
		Long:    "List and manage virtual networks",
	}

	cmd.AddCommand(newNetworksListCommand())
	cmd.AddCommand(newNetworksGetCommand())
	cmd.AddCommand(newNetworksCreateCommand())
	cmd.AddCommand(newNetworksUpdateCommand())
	cmd.AddCommand(newNetworksDeleteCommand())

	return cmd
}

func newNetworksListCommand() *cobra.Command {
	var (
		name     string
		shared   bool
		external bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List networks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			query := strato.NewQuery()
			if name != "" {
				query.Set("name", name)
			}

			if cmd.Flags().Changed("shared") {
				query.SetBool("shared", shared)
			}

			if cmd.Flags().Changed("external") {
				query.SetBool("router:external", external)
			}

			iterator := client.Networks().Iterate(ctx, query)
			if limit > 0 {
				iterator.SetPageSize(limit)
			}

			networks, err := iterator.All()
			if err != nil {
				return fmt.Errorf("listing networks: %w", err)
			}

			return outputNetworks(networks)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by name")
	cmd.Flags().BoolVar(&shared, "shared", false, "filter by shared flag")
	cmd.Flags().BoolVar(&external, "external", false, "filter by external flag")
	cmd.Flags().IntVar(&limit, "page-size", constants.StandardPageSize, "page size used while iterating")

	return cmd
}

func newNetworksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME_OR_ID",
		Short: "Show one network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			network, err := client.Networks().Find(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("finding network: %w", err)
			}

			return outputNetwork(network)
		},
	}
}

func newNetworksCreateCommand() *cobra.Command {
	var (
		name        string
		description string
		shared      bool
		adminDown   bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a network",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			request := &strato.NetworkCreateRequest{
				Name:        name,
				Description: description,
			}

			if cmd.Flags().Changed("shared") {
				request.Shared = &shared
			}

			if adminDown {
				up := false
				request.AdminStateUp = &up
			}

			network, err := client.Networks().Create(context.Background(), request)
			if err != nil {
				return fmt.Errorf("creating network: %w", err)
			}

			return outputNetwork(network)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "network name")
	cmd.Flags().StringVar(&description, "description", "", "network description")
	cmd.Flags().BoolVar(&shared, "shared", false, "share the network across projects")
	cmd.Flags().BoolVar(&adminDown, "admin-down", false, "create with admin state down")

	return cmd
}

func newNetworksUpdateCommand() *cobra.Command {
	var (
		name             string
		description      string
		clearDescription bool
		adminUp          bool
	)

	cmd := &cobra.Command{
		Use:   "update NAME_OR_ID",
		Short: "Update a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			id, err := resolveNameOrID(ctx, args[0], client.Networks().Lookup)
			if err != nil {
				return fmt.Errorf("finding network: %w", err)
			}

			request := &strato.NetworkUpdateRequest{}
			if cmd.Flags().Changed("name") {
				request.Name = strato.SetField(name)
			}

			switch {
			case clearDescription:
				request.Description = strato.NullField[string]()
			case cmd.Flags().Changed("description"):
				request.Description = strato.SetField(description)
			}

			if cmd.Flags().Changed("admin-up") {
				request.AdminStateUp = strato.SetField(adminUp)
			}

			network, err := client.Networks().Update(ctx, id, request)
			if err != nil {
				return fmt.Errorf("updating network: %w", err)
			}

			return outputNetwork(network)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new network name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().BoolVar(&clearDescription, "clear-description", false, "remove the description")
	cmd.Flags().BoolVar(&adminUp, "admin-up", true, "set the admin state")

	return cmd
}

func newNetworksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME_OR_ID",
		Short: "Delete a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			id, err := resolveNameOrID(ctx, args[0], client.Networks().Lookup)
			if err != nil {
				return fmt.Errorf("finding network: %w", err)
			}

			if err := client.Networks().Delete(ctx, id); err != nil {
				return fmt.Errorf("deleting network: %w", err)
			}

			fmt.Printf("Network %s deleted\n", id)

			return nil
		},
	}
}

func outputNetwork(network *strato.Network) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		return encodeJSON(network)
	case OutputFormatYAML:
		return encodeYAML(network)
	default:
		return outputNetworksTable([]strato.Network{*network})
	}
}

func outputNetworks(networks []strato.Network) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		return encodeJSON(networks)
	case OutputFormatYAML:
		return encodeYAML(networks)
	default:
		return outputNetworksTable(networks)
	}
}

func outputNetworksTable(networks []strato.Network) error {
	if len(networks) == 0 {
		fmt.Println("No networks found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Status", "Shared", "External", "Subnets")

	rows := lo.Map(networks, func(network strato.Network, _ int) []string {
		return []string{
			network.ID,
			orNotAvailable(network.Name),
			string(network.Status),
			formatBool(network.Shared),
			formatBool(network.External),
			fmt.Sprintf("%d", len(network.SubnetIDs)),
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
