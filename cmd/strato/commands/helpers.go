// Package commands implements the strato CLI commands.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/strato-io/strato/internal/constants"
	"github.com/strato-io/strato/pkg/osclient"
	"github.com/strato-io/strato/pkg/strato"
	"gopkg.in/yaml.v3"
)

// Common display values.
const (
	// NotAvailable is displayed when a value is not present.
	NotAvailable = "N/A"

	// Output format constants.
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
	OutputFormatTable = "table"
)

// CreateClient builds a strato.Client from the active cloud configuration.
// A stored token is used while it is still valid; otherwise the caller has
// to log in again.
func CreateClient() (strato.Client, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	cloud, err := config.ActiveCloud(viper.GetString("cloud"))
	if err != nil {
		return nil, err
	}

	clientConfig := &strato.Config{
		NetworkEndpoint: cloud.NetworkEndpoint,
		ComputeEndpoint: cloud.ComputeEndpoint,
	}

	if viper.GetBool("verbose") {
		clientConfig.Debug = true
		clientConfig.Logger = NewLogger()
	}

	switch {
	case cloud.TokenValid():
		clientConfig.Token = cloud.Token
	case cloud.Username != "":
		return nil, constants.ErrNotAuthenticated
	}

	return osclient.New(clientConfig)
}

// resolveNameOrID resolves a command-line name-or-ID argument to a canonical
// resource ID through a deferred reference.
func resolveNameOrID(ctx context.Context, nameOrID string, lookup strato.LookupFunc) (string, error) {
	ref := strato.NewRef(nameOrID)

	return ref.Resolve(ctx, lookup)
}

// NewLogger returns a strato.Logger backed by logrus, writing to stderr so
// command output on stdout stays parseable.
func NewLogger() strato.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.DebugLevel)

	return &logrusLogger{logger: logger}
}

type logrusLogger struct {
	logger *logrus.Logger
}

func (l *logrusLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *logrusLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *logrusLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *logrusLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(logrus.Fields(fields)).Error(msg)
}

// outputFormat returns the requested output format, defaulting to table.
func outputFormat() (string, error) {
	format := viper.GetString("output")
	if format == "" {
		format = OutputFormatTable
	}

	switch format {
	case OutputFormatJSON, OutputFormatYAML, OutputFormatTable:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, format)
	}
}

func encodeJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

func encodeYAML(value interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer func() { _ = encoder.Close() }()

	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	return nil
}

// formatBool renders a boolean as "yes"/"no" for table output.
func formatBool(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}

// formatTime renders an optional timestamp for table output.
func formatTime(value *time.Time) string {
	if value == nil {
		return NotAvailable
	}

	return value.Format(time.RFC3339)
}

// orNotAvailable substitutes the N/A marker for empty strings.
func orNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
