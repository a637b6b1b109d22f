// Package commands is the boundary the presentation layer calls into. A
// Session owns the single live settings Document; every operation takes
// the session by handle, mutates it through the registry, and persists
// the full serialized file as its last step. Calls are not composed
// transactionally.
package commands

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/modot/pkg/errors"
	"github.com/arthur-debert/modot/pkg/filesystem"
	"github.com/arthur-debert/modot/pkg/logging"
	"github.com/arthur-debert/modot/pkg/registry"
	"github.com/arthur-debert/modot/pkg/settings"
	"github.com/arthur-debert/modot/pkg/types"
)

// Session owns the live Document for one settings file. It is not safe
// for concurrent use; the presentation layer serializes access.
type Session struct {
	fs           types.FS
	doc          *settings.Document
	reg          *registry.Registry
	settingsPath string
	modsDir      string
}

// OpenOptions defines the options for opening a session.
type OpenOptions struct {
	// SettingsPath is the absolute path of the mod settings file.
	SettingsPath string
	// ModsDir is the absolute path of the mods content directory.
	ModsDir string
	// FileSystem to use (optional, defaults to OS filesystem)
	FileSystem types.FS
}

// Open parses the settings file into a fresh Session. A missing file is
// not an error: editing starts from a skeleton document. A malformed file
// surfaces a PARSE error and no session.
func Open(opts OpenOptions) (*Session, error) {
	logger := logging.GetLogger("commands.open")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	var doc *settings.Document
	data, err := fs.ReadFile(opts.SettingsPath)
	switch {
	case err == nil:
		doc, err = settings.Parse(data)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("path", opts.SettingsPath).Msg("Parsed settings file")
	case os.IsNotExist(err):
		doc = settings.New()
		logger.Debug().Str("path", opts.SettingsPath).Msg("Settings file missing, starting from skeleton")
	default:
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to read settings file %s", opts.SettingsPath)
	}

	return &Session{
		fs:           fs,
		doc:          doc,
		reg:          registry.New(doc),
		settingsPath: opts.SettingsPath,
		modsDir:      opts.ModsDir,
	}, nil
}

// Save serializes the Document and writes the whole file back. A write
// failure is a PERSIST error; the in-memory Document stays mutated so
// retrying the save does not require redoing the edit.
func (s *Session) Save() error {
	data := s.doc.Serialize()
	if err := s.fs.MkdirAll(filepath.Dir(s.settingsPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrPersist, "failed to create settings directory for %s", s.settingsPath)
	}
	if err := s.fs.WriteFile(s.settingsPath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrPersist, "failed to write settings file %s", s.settingsPath)
	}
	return nil
}

// Serialize returns the current document bytes without persisting.
func (s *Session) Serialize() []byte {
	return s.doc.Serialize()
}

// ModsDir returns the content directory this session installs into.
func (s *Session) ModsDir() string {
	return s.modsDir
}

// SettingsPath returns the settings file this session persists to.
func (s *Session) SettingsPath() string {
	return s.settingsPath
}
