package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/strato-io/strato/internal/constants"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration.
type Config struct {
	Clouds       map[string]*CloudConfig `json:"clouds,omitempty"        yaml:"clouds,omitempty"        mapstructure:"clouds"`
	CurrentCloud string                  `json:"current_cloud,omitempty" yaml:"current_cloud,omitempty" mapstructure:"current_cloud"`
	Output       string                  `json:"output,omitempty"        yaml:"output,omitempty"        mapstructure:"output"`
}

// CloudConfig holds credentials and endpoints for one cloud.
type CloudConfig struct {
	AuthURL           string     `json:"auth_url,omitempty"            yaml:"auth_url,omitempty"            mapstructure:"auth_url"`
	Username          string     `json:"username,omitempty"            yaml:"username,omitempty"            mapstructure:"username"`
	ProjectName       string     `json:"project_name,omitempty"        yaml:"project_name,omitempty"        mapstructure:"project_name"`
	UserDomainName    string     `json:"user_domain_name,omitempty"    yaml:"user_domain_name,omitempty"    mapstructure:"user_domain_name"`
	ProjectDomainName string     `json:"project_domain_name,omitempty" yaml:"project_domain_name,omitempty" mapstructure:"project_domain_name"`
	Region            string     `json:"region,omitempty"              yaml:"region,omitempty"              mapstructure:"region"`
	Token             string     `json:"token,omitempty"               yaml:"token,omitempty"               mapstructure:"token"`
	TokenExpiresAt    *time.Time `json:"token_expires_at,omitempty"    yaml:"token_expires_at,omitempty"    mapstructure:"token_expires_at"`
	NetworkEndpoint   string     `json:"network_endpoint,omitempty"    yaml:"network_endpoint,omitempty"    mapstructure:"network_endpoint"`
	ComputeEndpoint   string     `json:"compute_endpoint,omitempty"    yaml:"compute_endpoint,omitempty"    mapstructure:"compute_endpoint"`
}

// TokenValid reports whether the stored token can still be used.
func (c *CloudConfig) TokenValid() bool {
	if c.Token == "" {
		return false
	}

	if c.TokenExpiresAt == nil {
		return true
	}

	return time.Now().Add(constants.TokenExpiryMargin).Before(*c.TokenExpiresAt)
}

// ActiveCloud resolves the cloud to operate on: the --cloud flag when given,
// otherwise the configured current cloud.
func (c *Config) ActiveCloud(name string) (*CloudConfig, error) {
	if len(c.Clouds) == 0 {
		return nil, constants.ErrNoCloudsConfigured
	}

	if name == "" {
		name = c.CurrentCloud
	}

	if name == "" {
		return nil, constants.ErrNoCloudsConfigured
	}

	cloud, ok := c.Clouds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", constants.ErrCloudConfigNotFound, name)
	}

	return cloud, nil
}

// loadConfig builds the CLI config from whatever viper has read.
func loadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if config.Clouds == nil {
		config.Clouds = make(map[string]*CloudConfig)
	}

	return config, nil
}

// saveConfig writes the config back to the file viper loaded it from,
// falling back to ~/.strato/config.yml.
func saveConfig(config *Config) error {
	configFile := viper.ConfigFileUsed()

	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}

		configDir := filepath.Join(home, ".strato")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configFile, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and edit the clouds the CLI knows about",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCloudCommand())
	cmd.AddCommand(newConfigUseCloudCommand())
	cmd.AddCommand(newConfigDeleteCloudCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			// Tokens stay out of the display.
			display := &Config{
				Clouds:       make(map[string]*CloudConfig, len(config.Clouds)),
				CurrentCloud: config.CurrentCloud,
				Output:       config.Output,
			}

			for name, cloud := range config.Clouds {
				redacted := *cloud
				if redacted.Token != "" {
					redacted.Token = "<redacted>"
				}

				display.Clouds[name] = &redacted
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			switch format {
			case OutputFormatJSON:
				return encodeJSON(display)
			case OutputFormatYAML:
				return encodeYAML(display)
			default:
				return outputConfigTable(display)
			}
		},
	}
}

func outputConfigTable(config *Config) error {
	if len(config.Clouds) == 0 {
		fmt.Println("No clouds configured")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Cloud", "Auth URL", "Username", "Project", "Region", "Current")

	names := lo.Keys(config.Clouds)
	sort.Strings(names)

	for _, name := range names {
		cloud := config.Clouds[name]
		_ = table.Append(name,
			orNotAvailable(cloud.AuthURL),
			orNotAvailable(cloud.Username),
			orNotAvailable(cloud.ProjectName),
			orNotAvailable(cloud.Region),
			formatBool(name == config.CurrentCloud))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	return nil
}

//nolint:funlen // flag wiring is repetitive but flat
func newConfigSetCloudCommand() *cobra.Command {
	var (
		authURL         string
		username        string
		project         string
		userDomain      string
		projectDomain   string
		region          string
		networkEndpoint string
		computeEndpoint string
	)

	cmd := &cobra.Command{
		Use:   "set-cloud NAME",
		Short: "Add or update a cloud entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			name := args[0]

			cloud, ok := config.Clouds[name]
			if !ok {
				cloud = &CloudConfig{}
				config.Clouds[name] = cloud
			}

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

			if cmd.Flags().Changed("project-domain") {
				cloud.ProjectDomainName = projectDomain
			}

			if cmd.Flags().Changed("region") {
				cloud.Region = region
			}

			if cmd.Flags().Changed("network-endpoint") {
				cloud.NetworkEndpoint = networkEndpoint
			}

			if cmd.Flags().Changed("compute-endpoint") {
				cloud.ComputeEndpoint = computeEndpoint
			}

			if config.CurrentCloud == "" {
				config.CurrentCloud = name
			}

			if err := saveConfig(config); err != nil {
				return err
			}

			fmt.Printf("Cloud %q saved\n", name)

			return nil
		},
	}

	cmd.Flags().StringVar(&authURL, "auth-url", "", "identity service URL")
	cmd.Flags().StringVar(&username, "username", "", "user name")
	cmd.Flags().StringVar(&project, "project", "", "project name")
	cmd.Flags().StringVar(&userDomain, "user-domain", "", "user domain name")
	cmd.Flags().StringVar(&projectDomain, "project-domain", "", "project domain name")
	cmd.Flags().StringVar(&region, "region", "", "region name")
	cmd.Flags().StringVar(&networkEndpoint, "network-endpoint", "", "network service endpoint override")
	cmd.Flags().StringVar(&computeEndpoint, "compute-endpoint", "", "compute service endpoint override")

	return cmd
}

func newConfigUseCloudCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use-cloud NAME",
		Short: "Select the default cloud",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			name := args[0]
			if _, ok := config.Clouds[name]; !ok {
				return fmt.Errorf("%w: %q", constants.ErrCloudConfigNotFound, name)
			}

			config.CurrentCloud = name

			if err := saveConfig(config); err != nil {
				return err
			}

			fmt.Printf("Now using cloud %q\n", name)

			return nil
		},
	}
}

func newConfigDeleteCloudCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-cloud NAME",
		Short: "Remove a cloud entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			name := args[0]
			if _, ok := config.Clouds[name]; !ok {
				return fmt.Errorf("%w: %q", constants.ErrCloudConfigNotFound, name)
			}

			delete(config.Clouds, name)

			if config.CurrentCloud == name {
				config.CurrentCloud = ""
			}

			if err := saveConfig(config); err != nil {
				return err
			}

			fmt.Printf("Cloud %q removed\n", name)

			return nil
		},
	}
}
