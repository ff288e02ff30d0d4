package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNetworksCommand(t *testing.T) {
	cmd := NewNetworksCommand()
	assert.Equal(t, "networks", cmd.Use)
	assert.Equal(t, []string{"network", "net"}, cmd.Aliases)
	assert.Equal(t, "Manage networks", cmd.Short)

	// Check subcommands are added
	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 5)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "update")
	assert.Contains(t, commandNames, "delete")
}

func TestNetworksListCommandFlags(t *testing.T) {
	cmd := newNetworksListCommand()
	assert.Equal(t, "list", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("name"))
	assert.NotNil(t, cmd.Flags().Lookup("shared"))
	assert.NotNil(t, cmd.Flags().Lookup("external"))
	assert.NotNil(t, cmd.Flags().Lookup("page-size"))
}

func TestNetworksUpdateCommandFlags(t *testing.T) {
	cmd := newNetworksUpdateCommand()
	assert.Equal(t, "update NAME_OR_ID", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
	assert.NotNil(t, cmd.Flags().Lookup("clear-description"))
}
