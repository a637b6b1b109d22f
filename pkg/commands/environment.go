package commands

import (
	"os/exec"
	"runtime"

	"github.com/arthur-debert/modot/pkg/config"
	"github.com/arthur-debert/modot/pkg/errors"
	"github.com/arthur-debert/modot/pkg/filesystem"
	"github.com/arthur-debert/modot/pkg/paths"
	"github.com/arthur-debert/modot/pkg/types"
)

// GetGamePath resolves the game installation path from configuration or
// Steam discovery. Not found is a GAME_PATH error, never a guess.
func GetGamePath(cfg *config.Config) (string, error) {
	p, err := paths.New(cfg)
	if err != nil {
		return "", err
	}
	return p.GamePath(), nil
}

// SaveFileOptions defines the options for writing a file verbatim.
type SaveFileOptions struct {
	Path    string
	Content []byte
	// FileSystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// SaveFile writes content to path. A failure is a PERSIST error.
func SaveFile(opts SaveFileOptions) error {
	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if err := fs.WriteFile(opts.Path, opts.Content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrPersist, "failed to write %s", opts.Path)
	}
	return nil
}

// OpenModsFolder ensures the session's content directory exists and opens
// it in the platform file manager.
func OpenModsFolder(s *Session) error {
	if err := s.fs.MkdirAll(s.modsDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to create mods folder %s", s.modsDir)
	}
	return openInFileManager(s.modsDir)
}

func openInFileManager(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to open %s", path)
	}
	return nil
}

// DeleteSettingsFileOptions defines the options for removing the settings
// file outright, forcing the game to regenerate it.
type DeleteSettingsFileOptions struct {
	SettingsPath string
	// FileSystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// DeleteSettingsFile removes the settings file. The boolean reports
// whether a file existed to delete.
func DeleteSettingsFile(opts DeleteSettingsFileOptions) (bool, error) {
	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if !statExists(fs, opts.SettingsPath) {
		return false, nil
	}
	if err := fs.Remove(opts.SettingsPath); err != nil {
		return false, errors.Wrapf(err, errors.ErrFilesystem, "failed to delete settings file %s", opts.SettingsPath)
	}
	return true, nil
}
