package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/strato-io/strato/internal/auth"
	"github.com/strato-io/strato/internal/constants"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
//
//nolint:funlen // flag wiring and prompting are flat but long
func NewLoginCommand() *cobra.Command {
	var (
		authURL    string
		username   string
		password   string
		project    string
		userDomain string
		region     string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against a cloud",
		Long: `Authenticate against the identity service of the active cloud.

The issued token and the service endpoints from the catalog are stored in
the CLI configuration and reused until the token expires.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			cloudName := viper.GetString("cloud")
			if cloudName == "" {
				cloudName = config.CurrentCloud
			}

			if cloudName == "" {
				cloudName = "default"
			}

			cloud, ok := config.Clouds[cloudName]
			if !ok {
				cloud = &CloudConfig{}
				config.Clouds[cloudName] = cloud
			}

			applyLoginFlags(cmd, cloud, authURL, username, project, userDomain, region)

			if cloud.AuthURL == "" {
				return constants.ErrNoAuthURLConfigured
			}

			if err := promptCredentials(cloud, &password); err != nil {
				return err
			}

			ctx := context.Background()

			manager := auth.NewKeystoneTokenManager(auth.KeystoneConfig{
				AuthURL:           cloud.AuthURL,
				Username:          cloud.Username,
				Password:          password,
				ProjectName:       cloud.ProjectName,
				UserDomainName:    cloud.UserDomainName,
				ProjectDomainName: cloud.ProjectDomainName,
				Region:            cloud.Region,
			})

			token, err := manager.GetToken(ctx)
			if err != nil {
				return fmt.Errorf("authenticating: %w", err)
			}

			expiry := manager.TokenExpiry()
			cloud.Token = token
			cloud.TokenExpiresAt = &expiry

			resolveEndpoints(ctx, manager, cloud)

			config.CurrentCloud = cloudName

			if err := saveConfig(config); err != nil {
				return err
			}

			fmt.Printf("Logged in to %q as %s (token expires %s)\n",
				cloudName, cloud.Username, expiry.Format("2006-01-02 15:04:05 MST"))

			return nil
		},
	}

	cmd.Flags().StringVarP(&authURL, "auth-url", "a", "", "identity service URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&project, "project", "", "project name")
	cmd.Flags().StringVar(&userDomain, "user-domain", "", "user domain name")
	cmd.Flags().StringVar(&region, "region", "", "region name")

	return cmd
}

func applyLoginFlags(cmd *cobra.Command, cloud *CloudConfig, authURL, username, project, userDomain, region string) {
	if cmd.Flags().Changed("auth-url") {
		cloud.AuthURL = authURL
	}

	if cmd.Flags().Changed("username") {
		cloud.Username = username
	}

	if cmd.Flags().Changed("project") {
		cloud.ProjectName = project
	}

	if cmd.Flags().Changed("user-domain") {
		cloud.UserDomainName = userDomain
	}

	if cmd.Flags().Changed("region") {
		cloud.Region = region
	}
}

// promptCredentials fills in the username and password interactively when
// they were not supplied.
func promptCredentials(cloud *CloudConfig, password *string) error {
	reader := bufio.NewReader(os.Stdin)

	if cloud.Username == "" {
		fmt.Print("Username: ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}

		cloud.Username = strings.TrimSpace(line)
	}

	if *password == "" {
		fmt.Print("Password: ")

		raw, err := term.ReadPassword(int(syscall.Stdin))

		fmt.Println()

		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		*password = string(raw)
	}

	if cloud.Username == "" || *password == "" {
		return constants.ErrCredentialsMissing
	}

	return nil
}

// resolveEndpoints stores the catalog endpoints so later commands skip the
// catalog round trip. Missing services are not an error; the cloud may
// simply not run them.
func resolveEndpoints(ctx context.Context, manager *auth.KeystoneTokenManager, cloud *CloudConfig) {
	if endpoint, err := manager.EndpointFor(ctx, constants.ServiceTypeNetwork); err == nil {
		cloud.NetworkEndpoint = endpoint
	}

	if endpoint, err := manager.EndpointFor(ctx, constants.ServiceTypeCompute); err == nil {
		cloud.ComputeEndpoint = endpoint
	}
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored token for the active cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			cloud, err := config.ActiveCloud(viper.GetString("cloud"))
			if err != nil {
				return err
			}

			cloud.Token = ""
			cloud.TokenExpiresAt = nil

			if err := saveConfig(config); err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}
