package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewShellCommand(t *testing.T) {
	cmd := NewShellCommand("test")

	assert.Equal(t, "shell", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewExecCommand(t *testing.T) {
	cmd := NewExecCommand()

	assert.Equal(t, "exec <command line>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.Error(t, cmd.Args(cmd, nil), "exec needs a command line")
	assert.NoError(t, cmd.Args(cmd, []string{"find"}))
}

func TestNewMigrateCommand(t *testing.T) {
	cmd := NewMigrateCommand()

	assert.Equal(t, "migrate", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Long, "Long should not be empty")
}
