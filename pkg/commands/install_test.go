// Test Type: Integration Test
// Description: Tests for the commands package install flows - archive to
// registered mod, conflict resolution, messy finalization, and deletion

package commands_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/modot/pkg/commands"
	"github.com/arthur-debert/modot/pkg/install"
)

// osSession opens a session over a real temporary game tree, because the
// pipeline moves whole directories around.
func osSession(t *testing.T) (*commands.Session, string) {
	t.Helper()
	gameDir := t.TempDir()
	session, err := commands.Open(commands.OpenOptions{
		SettingsPath: filepath.Join(gameDir, "Binaries", "SETTINGS", "GCMODSETTINGS.MXML"),
		ModsDir:      filepath.Join(gameDir, "GAMEDATA", "MODS"),
	})
	require.NoError(t, err)
	return session, session.ModsDir()
}

func buildZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mod.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func listNames(t *testing.T, session *commands.Session) []string {
	t.Helper()
	result, err := commands.List(commands.ListOptions{Session: session})
	require.NoError(t, err)
	names := make([]string, len(result.Entries))
	for i, entry := range result.Entries {
		names[i] = entry.Name
	}
	return names
}

func TestInstallModFromArchive_CleanRegisters(t *testing.T) {
	session, modsDir := osSession(t)
	archivePath := buildZip(t, map[string]string{"COOLMOD/mod.pak": "pak"})

	report, err := commands.InstallModFromArchive(commands.InstallOptions{
		Session:     session,
		ArchivePath: archivePath,
	})
	require.NoError(t, err)
	require.Len(t, report.Successes, 1)

	assert.DirExists(t, filepath.Join(modsDir, "COOLMOD"))
	assert.Equal(t, []string{"COOLMOD"}, listNames(t, session))

	// The settings file was rewritten with the new entry.
	data, err := os.ReadFile(session.SettingsPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), `<Property name="Name" value="COOLMOD" />`)
}

func TestInstallModFromArchive_ManifestMetadata(t *testing.T) {
	session, _ := osSession(t)
	archivePath := buildZip(t, map[string]string{
		"COOLMOD/mod.pak":      "pak",
		"COOLMOD/modinfo.toml": "author = \"someone\"\nid = \"42\"\n",
	})

	_, err := commands.InstallModFromArchive(commands.InstallOptions{
		Session:     session,
		ArchivePath: archivePath,
	})
	require.NoError(t, err)

	result, err := commands.List(commands.ListOptions{Session: session})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "someone", result.Entries[0].Author)
	assert.Equal(t, "42", result.Entries[0].ID)
}

func TestInstallModFromArchive_ConflictIsNotRegisteredTwice(t *testing.T) {
	session, _ := osSession(t)

	first := buildZip(t, map[string]string{"COOLMOD/v1.pak": "v1"})
	_, err := commands.InstallModFromArchive(commands.InstallOptions{Session: session, ArchivePath: first})
	require.NoError(t, err)

	second := buildZip(t, map[string]string{"COOLMOD/v2.pak": "v2"})
	report, err := commands.InstallModFromArchive(commands.InstallOptions{Session: session, ArchivePath: second})
	require.NoError(t, err)
	require.Len(t, report.Conflicts, 1)

	// Still exactly one registry entry while the decision is pending.
	assert.Equal(t, []string{"COOLMOD"}, listNames(t, session))
}

func TestResolveConflict(t *testing.T) {
	setup := func(t *testing.T) (*commands.Session, string, string) {
		session, modsDir := osSession(t)
		first := buildZip(t, map[string]string{"COOLMOD/v1.pak": "v1"})
		_, err := commands.InstallModFromArchive(commands.InstallOptions{Session: session, ArchivePath: first})
		require.NoError(t, err)

		second := buildZip(t, map[string]string{"COOLMOD/v2.pak": "v2"})
		report, err := commands.InstallModFromArchive(commands.InstallOptions{Session: session, ArchivePath: second})
		require.NoError(t, err)
		require.Len(t, report.Conflicts, 1)
		return session, modsDir, report.Conflicts[0].Path
	}

	t.Run("replace", func(t *testing.T) {
		session, modsDir, staged := setup(t)

		require.NoError(t, commands.ResolveConflict(commands.ResolveConflictOptions{
			Session:     session,
			Name:        "COOLMOD",
			StagingPath: staged,
			Replace:     true,
		}))

		assert.FileExists(t, filepath.Join(modsDir, "COOLMOD", "v2.pak"))
		assert.NoFileExists(t, filepath.Join(modsDir, "COOLMOD", "v1.pak"))
		assert.Equal(t, []string{"COOLMOD"}, listNames(t, session))
	})

	t.Run("keep", func(t *testing.T) {
		session, modsDir, staged := setup(t)

		require.NoError(t, commands.ResolveConflict(commands.ResolveConflictOptions{
			Session:     session,
			Name:        "COOLMOD",
			StagingPath: staged,
			Replace:     false,
		}))

		assert.FileExists(t, filepath.Join(modsDir, "COOLMOD", "v1.pak"))
		assert.NoDirExists(t, staged)
	})
}

func TestMessyArchiveFinalization(t *testing.T) {
	session, modsDir := osSession(t)
	archivePath := buildZip(t, map[string]string{
		"mod.pak":    "pak",
		"readme.txt": "docs",
	})

	report, err := commands.InstallModFromArchive(commands.InstallOptions{
		Session:     session,
		ArchivePath: archivePath,
	})
	require.NoError(t, err)
	require.NotEmpty(t, report.MessyPath)

	// Nothing registered until the caller names the content.
	assert.Empty(t, listNames(t, session))

	require.NoError(t, commands.FinalizeModInstallation(commands.FinalizeOptions{
		Session:     session,
		StagingPath: report.MessyPath,
		Name:        "RENAMED",
	}))

	assert.FileExists(t, filepath.Join(modsDir, "RENAMED", "mod.pak"))
	assert.Equal(t, []string{"RENAMED"}, listNames(t, session))
}

func TestCleanupTempFolder(t *testing.T) {
	session, _ := osSession(t)
	archivePath := buildZip(t, map[string]string{"loose.pak": "pak"})

	report, err := commands.InstallModFromArchive(commands.InstallOptions{
		Session:     session,
		ArchivePath: archivePath,
	})
	require.NoError(t, err)
	require.NotEmpty(t, report.MessyPath)

	require.NoError(t, commands.CleanupTempFolder(commands.CleanupOptions{
		Session: session,
		Path:    report.MessyPath,
	}))
	assert.NoDirExists(t, report.MessyPath)
	assert.Empty(t, listNames(t, session))
}

func TestDeleteMod(t *testing.T) {
	session, modsDir := osSession(t)
	archivePath := buildZip(t, map[string]string{"COOLMOD/mod.pak": "pak"})
	_, err := commands.InstallModFromArchive(commands.InstallOptions{Session: session, ArchivePath: archivePath})
	require.NoError(t, err)

	result, err := commands.DeleteMod(commands.DeleteModOptions{Session: session, Name: "COOLMOD"})
	require.NoError(t, err)
	assert.True(t, result.FolderRemoved)
	assert.NotContains(t, string(result.Document), "COOLMOD")

	assert.NoDirExists(t, filepath.Join(modsDir, "COOLMOD"))
	assert.Empty(t, listNames(t, session))
}

func TestDeleteMod_MissingFolderIsTolerated(t *testing.T) {
	session, _ := osSession(t)
	_, err := commands.AddMod(commands.AddModOptions{Session: session, Name: "ghost"})
	require.NoError(t, err)

	result, err := commands.DeleteMod(commands.DeleteModOptions{Session: session, Name: "GHOST"})
	require.NoError(t, err)
	assert.False(t, result.FolderRemoved)
	assert.Empty(t, listNames(t, session))
}

func TestInstall_StagingPrefixNeverRegistered(t *testing.T) {
	// Staging directories live inside the mods folder; make sure a normal
	// install leaves none behind to be mistaken for mods.
	session, modsDir := osSession(t)
	archivePath := buildZip(t, map[string]string{"COOLMOD/mod.pak": "pak"})
	_, err := commands.InstallModFromArchive(commands.InstallOptions{Session: session, ArchivePath: archivePath})
	require.NoError(t, err)

	entries, err := os.ReadDir(modsDir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), install.StagingPrefix)
	}
}
