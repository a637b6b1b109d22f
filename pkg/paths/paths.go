// Package paths locates the game installation and derives the paths modot
// edits: the settings file and the mods content directory.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/modot/pkg/config"
	"github.com/arthur-debert/modot/pkg/errors"
	"github.com/arthur-debert/modot/pkg/logging"
)

// steamAppID is the game's Steam application id, used to find its
// appmanifest in a Steam library.
const steamAppID = "275850"

// Paths resolves the locations modot works with for one game install.
type Paths struct {
	gamePath string
	cfg      *config.Config
}

// New resolves the game path: an explicit configuration override wins,
// otherwise Steam discovery runs. Failure to locate the game is a
// GAME_PATH error; nothing is guessed.
func New(cfg *config.Config) (*Paths, error) {
	logger := logging.GetLogger("paths")

	if cfg.Game.Path != "" {
		if _, err := os.Stat(cfg.Game.Path); err != nil {
			return nil, errors.Wrapf(err, errors.ErrGamePath, "configured game path %s is not usable", cfg.Game.Path)
		}
		logger.Debug().Str("gamePath", cfg.Game.Path).Msg("Using configured game path")
		return &Paths{gamePath: cfg.Game.Path, cfg: cfg}, nil
	}

	gamePath, err := discoverSteamGame(steamRoots())
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("gamePath", gamePath).Msg("Discovered game path via Steam")
	return &Paths{gamePath: gamePath, cfg: cfg}, nil
}

// GamePath returns the resolved game installation directory.
func (p *Paths) GamePath() string {
	return p.gamePath
}

// SettingsFile returns the absolute path of the mod settings file.
func (p *Paths) SettingsFile() string {
	return filepath.Join(p.gamePath, filepath.FromSlash(p.cfg.Layout.SettingsFile))
}

// ModsDir returns the absolute path of the mods content directory.
func (p *Paths) ModsDir() string {
	return filepath.Join(p.gamePath, filepath.FromSlash(p.cfg.Layout.ModsDir))
}

// steamRoots lists the well-known Steam installation roots for the
// current platform.
func steamRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files (x86)\Steam`,
			`C:\Program Files\Steam`,
		}
	case "darwin":
		return []string{
			filepath.Join(home, "Library", "Application Support", "Steam"),
		}
	default:
		return []string{
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
		}
	}
}

// discoverSteamGame scans Steam roots for the game's appmanifest. The
// vdf/acf files are read with a minimal quoted-field line scan; they are
// machine-written and a full parser buys nothing here.
func discoverSteamGame(roots []string) (string, error) {
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		for _, library := range libraryFolders(root) {
			manifest := filepath.Join(library, "steamapps", "appmanifest_"+steamAppID+".acf")
			content, err := os.ReadFile(manifest)
			if err != nil {
				continue
			}
			installDir := quotedField(string(content), "installdir")
			if installDir == "" {
				continue
			}
			gamePath := filepath.Join(library, "steamapps", "common", installDir)
			if info, err := os.Stat(gamePath); err == nil && info.IsDir() {
				return gamePath, nil
			}
		}
	}
	return "", errors.New(errors.ErrGamePath, "could not find the game installation path")
}

// libraryFolders returns the Steam root plus every library listed in
// libraryfolders.vdf.
func libraryFolders(root string) []string {
	libraries := []string{root}
	content, err := os.ReadFile(filepath.Join(root, "steamapps", "libraryfolders.vdf"))
	if err != nil {
		return libraries
	}
	for _, line := range strings.Split(string(content), "\n") {
		if !strings.Contains(line, `"path"`) {
			continue
		}
		fields := strings.Split(line, `"`)
		if len(fields) < 4 {
			continue
		}
		path := strings.ReplaceAll(fields[3], `\\`, `\`)
		if _, err := os.Stat(path); err == nil {
			libraries = append(libraries, path)
		}
	}
	return libraries
}

// quotedField extracts the value of a `"key" "value"` line.
func quotedField(content, key string) string {
	for _, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, `"`+key+`"`) {
			continue
		}
		fields := strings.Split(line, `"`)
		if len(fields) >= 4 {
			return fields[3]
		}
	}
	return ""
}
