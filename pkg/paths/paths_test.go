// Test Type: Unit Test
// Description: Tests for the paths package - configured overrides, Steam
// library discovery against fixture trees, and vdf field scanning

package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/modot/pkg/config"
	"github.com/arthur-debert/modot/pkg/errors"
)

// steamFixture builds a Steam root whose single library carries the game.
func steamFixture(t *testing.T, installDir string) string {
	t.Helper()
	root := t.TempDir()
	steamapps := filepath.Join(root, "steamapps")
	require.NoError(t, os.MkdirAll(filepath.Join(steamapps, "common", installDir), 0755))

	manifest := `"AppState"
{
	"appid"		"275850"
	"installdir"		"` + installDir + `"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(steamapps, "appmanifest_275850.acf"), []byte(manifest), 0644))
	return root
}

func TestNew_ConfiguredOverride(t *testing.T) {
	t.Run("valid_path_wins", func(t *testing.T) {
		gameDir := t.TempDir()
		cfg := config.Default()
		cfg.Game.Path = gameDir

		p, err := New(cfg)
		require.NoError(t, err)
		assert.Equal(t, gameDir, p.GamePath())
		assert.Equal(t, filepath.Join(gameDir, "Binaries", "SETTINGS", "GCMODSETTINGS.MXML"), p.SettingsFile())
		assert.Equal(t, filepath.Join(gameDir, "GAMEDATA", "MODS"), p.ModsDir())
	})

	t.Run("unusable_path_is_game_path_error", func(t *testing.T) {
		cfg := config.Default()
		cfg.Game.Path = filepath.Join(t.TempDir(), "does-not-exist")

		_, err := New(cfg)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrGamePath))
	})
}

func TestDiscoverSteamGame(t *testing.T) {
	t.Run("finds_game_in_root_library", func(t *testing.T) {
		root := steamFixture(t, "No Man's Sky")

		gamePath, err := discoverSteamGame([]string{root})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "steamapps", "common", "No Man's Sky"), gamePath)
	})

	t.Run("finds_game_in_secondary_library", func(t *testing.T) {
		library := steamFixture(t, "No Man's Sky")

		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "steamapps"), 0755))
		vdf := `"libraryfolders"
{
	"0"
	{
		"path"		"` + library + `"
	}
}
`
		require.NoError(t, os.WriteFile(filepath.Join(root, "steamapps", "libraryfolders.vdf"), []byte(vdf), 0644))

		gamePath, err := discoverSteamGame([]string{root})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(library, "steamapps", "common", "No Man's Sky"), gamePath)
	})

	t.Run("missing_everywhere_is_game_path_error", func(t *testing.T) {
		_, err := discoverSteamGame([]string{t.TempDir()})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrGamePath))
	})

	t.Run("manifest_without_install_dir_is_skipped", func(t *testing.T) {
		root := t.TempDir()
		steamapps := filepath.Join(root, "steamapps")
		require.NoError(t, os.MkdirAll(steamapps, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(steamapps, "appmanifest_275850.acf"), []byte(`"AppState" {}`), 0644))

		_, err := discoverSteamGame([]string{root})
		require.Error(t, err)
	})
}

func TestLibraryFolders(t *testing.T) {
	t.Run("root_only_without_vdf", func(t *testing.T) {
		root := t.TempDir()
		assert.Equal(t, []string{root}, libraryFolders(root))
	})

	t.Run("nonexistent_library_paths_are_dropped", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "steamapps"), 0755))
		vdf := `"libraryfolders"
{
	"0"
	{
		"path"		"/definitely/not/a/real/library"
	}
}
`
		require.NoError(t, os.WriteFile(filepath.Join(root, "steamapps", "libraryfolders.vdf"), []byte(vdf), 0644))
		assert.Equal(t, []string{root}, libraryFolders(root))
	})
}

func TestQuotedField(t *testing.T) {
	content := `"AppState"
{
	"appid"		"275850"
	"installdir"		"No Man's Sky"
}`
	assert.Equal(t, "No Man's Sky", quotedField(content, "installdir"))
	assert.Equal(t, "275850", quotedField(content, "appid"))
	assert.Equal(t, "", quotedField(content, "missing"))
}
