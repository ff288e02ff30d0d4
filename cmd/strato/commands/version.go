package commands

import (
	"fmt"
	"os"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// VersionInfo holds the build information stamped at link time.
type VersionInfo struct {
	Version   string `json:"version"    yaml:"version"`
	Commit    string `json:"commit"     yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform"   yaml:"platform"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version:   version,
				Commit:    commit,
				BuildDate: date,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			switch format {
			case OutputFormatJSON:
				return encodeJSON(info)
			case OutputFormatYAML:
				return encodeYAML(info)
			default:
				return outputVersionTable(info)
			}
		},
	}
}

func outputVersionTable(info VersionInfo) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Version", info.Version)
	_ = table.Append("Commit", info.Commit)
	_ = table.Append("Build Date", info.BuildDate)
	_ = table.Append("Go Version", info.GoVersion)
	_ = table.Append("Platform", info.Platform)

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	return nil
}
