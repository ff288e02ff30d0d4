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

// NewServersCommand creates the servers command group.
func NewServersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "servers",
		Aliases: []string{"server", "srv"},
		Short:   "Manage servers",
		Long:    "List and control compute servers",
	}

	cmd.AddCommand(newServersListCommand())
	cmd.AddCommand(newServersGetCommand())
	cmd.AddCommand(newServersStartCommand())
	cmd.AddCommand(newServersStopCommand())
	cmd.AddCommand(newServersRebootCommand())
	cmd.AddCommand(newServersDeleteCommand())

	return cmd
}

func newServersListCommand() *cobra.Command {
	var (
		name   string
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			query := strato.NewQuery()
			if name != "" {
				query.Set("name", name)
			}

			if status != "" {
				query.Set("status", status)
			}

			servers, err := client.Servers().Iterate(context.Background(), query).All()
			if err != nil {
				return fmt.Errorf("listing servers: %w", err)
			}

			return outputServers(servers)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "filter by name")
	cmd.Flags().StringVar(&status, "status", "", "filter by status, e.g. ACTIVE")

	return cmd
}

func newServersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME_OR_ID",
		Short: "Show one server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			server, err := client.Servers().Find(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("finding server: %w", err)
			}

			return outputServer(server)
		},
	}
}

func newServersStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start NAME_OR_ID",
		Short: "Start a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServerAction(args[0], "started", func(ctx context.Context, client strato.Client, id string) error {
				return client.Servers().Start(ctx, id)
			})
		},
	}
}

func newServersStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop NAME_OR_ID",
		Short: "Stop a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServerAction(args[0], "stopped", func(ctx context.Context, client strato.Client, id string) error {
				return client.Servers().Stop(ctx, id)
			})
		},
	}
}

func newServersRebootCommand() *cobra.Command {
	var hard bool

	cmd := &cobra.Command{
		Use:   "reboot NAME_OR_ID",
		Short: "Reboot a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServerAction(args[0], "rebooted", func(ctx context.Context, client strato.Client, id string) error {
				return client.Servers().Reboot(ctx, id, hard)
			})
		},
	}

	cmd.Flags().BoolVar(&hard, "hard", false, "hard reboot instead of a soft one")

	return cmd
}

func newServersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME_OR_ID",
		Short: "Delete a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServerAction(args[0], "deleted", func(ctx context.Context, client strato.Client, id string) error {
				return client.Servers().Delete(ctx, id)
			})
		},
	}
}

func runServerAction(nameOrID, pastTense string, action func(context.Context, strato.Client, string) error) error {
	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	id, err := resolveNameOrID(ctx, nameOrID, client.Servers().Lookup)
	if err != nil {
		return fmt.Errorf("finding server: %w", err)
	}

	if err := action(ctx, client, id); err != nil {
		return fmt.Errorf("server action failed: %w", err)
	}

	fmt.Printf("Server %s %s\n", id, pastTense)

	return nil
}

func outputServer(server *strato.Server) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		return encodeJSON(server)
	case OutputFormatYAML:
		return encodeYAML(server)
	default:
		return outputServersTable([]strato.Server{*server})
	}
}

func outputServers(servers []strato.Server) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case OutputFormatJSON:
		return encodeJSON(servers)
	case OutputFormatYAML:
		return encodeYAML(servers)
	default:
		return outputServersTable(servers)
	}
}

func outputServersTable(servers []strato.Server) error {
	if len(servers) == 0 {
		fmt.Println("No servers found")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Status", "Key", "Created")

	rows := lo.Map(servers, func(server strato.Server, _ int) []string {
		return []string{
			server.ID,
			orNotAvailable(server.Name),
			string(server.Status),
			orNotAvailable(server.KeyName),
			formatTime(server.CreatedAt),
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
