// Test Type: Unit Test
// Description: Tests for the commands package registry operations - each
// mutating call persists the full settings file as its last step

package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/modot/pkg/commands"
	"github.com/arthur-debert/modot/pkg/errors"
	"github.com/arthur-debert/modot/pkg/types"
)

func readSettings(t *testing.T, fs types.FS) string {
	t.Helper()
	data, err := fs.ReadFile(settingsPath)
	require.NoError(t, err)
	return string(data)
}

func TestRegistryOps_Lifecycle(t *testing.T) {
	session, fs := memSession(t)

	// Register three mods.
	for _, name := range []string{"alpha", "beta", "gamma"} {
		_, err := commands.AddMod(commands.AddModOptions{Session: session, Name: name})
		require.NoError(t, err)
	}

	result, err := commands.List(commands.ListOptions{Session: session})
	require.NoError(t, err)
	require.Len(t, result.Entries, 3)
	assert.Equal(t, "ALPHA", result.Entries[0].Name)
	assert.Equal(t, 0, result.Entries[0].Priority)
	assert.Equal(t, "GAMMA", result.Entries[2].Name)
	assert.Equal(t, 2, result.Entries[2].Priority)

	// Disable one, then flip the order.
	require.NoError(t, commands.SetEnabled(commands.SetEnabledOptions{Session: session, Name: "beta", Enabled: false}))
	require.NoError(t, commands.Reorder(commands.ReorderOptions{
		Session:      session,
		OrderedNames: []string{"gamma", "beta", "alpha"},
	}))

	result, err = commands.List(commands.ListOptions{Session: session})
	require.NoError(t, err)
	assert.Equal(t, "GAMMA", result.Entries[0].Name)
	assert.Equal(t, "BETA", result.Entries[1].Name)
	assert.False(t, result.Entries[1].Enabled)
	assert.Equal(t, "ALPHA", result.Entries[2].Name)

	// Every step above persisted; the file reflects the final state.
	onDisk := readSettings(t, fs)
	assert.Contains(t, onDisk, `<Property name="Name" value="GAMMA" />`)
	assert.Contains(t, onDisk, `<Property name="ModPriority" value="2" />`)
}

func TestReorder_InvalidOrderingDoesNotPersist(t *testing.T) {
	session, fs := memSession(t)
	_, err := commands.AddMod(commands.AddModOptions{Session: session, Name: "alpha"})
	require.NoError(t, err)
	_, err = commands.AddMod(commands.AddModOptions{Session: session, Name: "beta"})
	require.NoError(t, err)
	before := readSettings(t, fs)

	err = commands.Reorder(commands.ReorderOptions{Session: session, OrderedNames: []string{"alpha"}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, before, readSettings(t, fs))
}

func TestSetAllEnabled(t *testing.T) {
	session, fs := memSession(t)
	for _, name := range []string{"alpha", "beta"} {
		_, err := commands.AddMod(commands.AddModOptions{Session: session, Name: name})
		require.NoError(t, err)
	}

	require.NoError(t, commands.SetAllEnabled(commands.SetAllEnabledOptions{Session: session, Enabled: false}))

	result, err := commands.List(commands.ListOptions{Session: session})
	require.NoError(t, err)
	for _, entry := range result.Entries {
		assert.False(t, entry.Enabled)
		assert.False(t, entry.EnabledVR)
	}
	assert.Contains(t, readSettings(t, fs), `<Property name="Enabled" value="false" />`)
}

func TestSetGlobalDisable(t *testing.T) {
	session, fs := memSession(t)

	require.NoError(t, commands.SetGlobalDisable(commands.SetGlobalDisableOptions{Session: session, Flag: true}))

	result, err := commands.List(commands.ListOptions{Session: session})
	require.NoError(t, err)
	assert.True(t, result.GlobalDisabled)
	assert.Contains(t, readSettings(t, fs), `<Property name="DisableAllMods" value="true" />`)
}
