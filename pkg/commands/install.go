package commands

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/modot/pkg/errors"
	"github.com/arthur-debert/modot/pkg/install"
	"github.com/arthur-debert/modot/pkg/logging"
	"github.com/arthur-debert/modot/pkg/modinfo"
	"github.com/arthur-debert/modot/pkg/registry"
	"github.com/arthur-debert/modot/pkg/types"
)

// InstallOptions defines the options for installing from an archive.
type InstallOptions struct {
	Session     *Session
	ArchivePath string
}

// InstallModFromArchive runs one archive through the pipeline and then
// registers every clean install in the settings document. Conflicts and
// messy content stay staged, awaiting ResolveConflict or
// FinalizeModInstallation. An unreadable archive fails the whole item
// with nothing registered.
func InstallModFromArchive(opts InstallOptions) (*install.Report, error) {
	logger := logging.GetLogger("commands.install")
	defer logging.LogOperationStart(logger, "install "+opts.ArchivePath)()
	s := opts.Session

	installer := install.New(s.fs, s.modsDir)
	report, err := installer.Install(opts.ArchivePath)
	if err != nil {
		return nil, err
	}

	changed := false
	for _, outcome := range report.Outcomes() {
		switch o := outcome.(type) {
		case install.Clean:
			if _, ok := s.reg.Find(o.Name); !ok {
				s.reg.Add(o.Name, metadataFor(s.fs, o.Path))
				changed = true
			}
		case install.Conflict:
			logger.Info().Str("mod", o.Name).Str("staged", o.StagedPath).Msg("Awaiting conflict decision")
		case install.Messy:
			logger.Info().Str("staged", o.StagedPath).Msg("Awaiting a name for messy archive content")
		}
	}

	if changed {
		if err := s.Save(); err != nil {
			return report, err
		}
	}
	return report, nil
}

// FinalizeOptions defines the options for committing staged content under
// a caller-chosen name.
type FinalizeOptions struct {
	Session     *Session
	StagingPath string
	Name        string
}

// FinalizeModInstallation moves staged content into the content directory
// under the chosen name and registers it.
func FinalizeModInstallation(opts FinalizeOptions) error {
	s := opts.Session
	installer := install.New(s.fs, s.modsDir)
	if err := installer.Finalize(opts.StagingPath, opts.Name); err != nil {
		return err
	}
	if _, ok := s.reg.Find(opts.Name); !ok {
		s.reg.Add(opts.Name, metadataFor(s.fs, filepath.Join(s.modsDir, opts.Name)))
		return s.Save()
	}
	return nil
}

// CleanupOptions defines the options for discarding staged content.
type CleanupOptions struct {
	Session *Session
	Path    string
}

// CleanupTempFolder discards staged content after a cancellation; a
// missing path is a no-op.
func CleanupTempFolder(opts CleanupOptions) error {
	installer := install.New(opts.Session.fs, opts.Session.modsDir)
	return installer.Cleanup(opts.Path)
}

// ResolveConflictOptions defines the options for finalizing a conflict.
type ResolveConflictOptions struct {
	Session     *Session
	Name        string
	StagingPath string
	Replace     bool
}

// ResolveConflict applies the replace/keep decision for one staged
// conflict. On replace the entry is registered if the settings file did
// not already carry it.
func ResolveConflict(opts ResolveConflictOptions) error {
	s := opts.Session
	installer := install.New(s.fs, s.modsDir)
	if err := installer.Resolve(opts.Name, opts.StagingPath, opts.Replace); err != nil {
		return err
	}
	if !opts.Replace {
		return nil
	}
	if _, ok := s.reg.Find(opts.Name); !ok {
		s.reg.Add(opts.Name, metadataFor(s.fs, filepath.Join(s.modsDir, opts.Name)))
		return s.Save()
	}
	return nil
}

// DeleteModOptions defines the options for removing an installed mod.
type DeleteModOptions struct {
	Session *Session
	Name    string
}

// DeleteModResult carries the re-serialized document after removal.
type DeleteModResult struct {
	Document      []byte
	FolderRemoved bool
}

// DeleteMod removes the installed folder and the registry entry, persists,
// and returns the serialized document. A missing folder or absent entry
// is tolerated so externally edited installs do not error.
func DeleteMod(opts DeleteModOptions) (*DeleteModResult, error) {
	logger := logging.GetLogger("commands.delete")
	s := opts.Session

	folder := filepath.Join(s.modsDir, opts.Name)
	removed := false
	if _, err := s.fs.Stat(folder); err == nil {
		if err := s.fs.RemoveAll(folder); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to delete mod folder for %s", opts.Name)
		}
		removed = true
	}

	s.reg.Remove(opts.Name)
	if err := s.Save(); err != nil {
		return nil, err
	}

	logger.Info().Str("mod", opts.Name).Bool("folderRemoved", removed).Msg("Deleted mod")
	return &DeleteModResult{Document: s.doc.Serialize(), FolderRemoved: removed}, nil
}

// metadataFor builds registry metadata from a mod folder's optional
// manifest. Manifest problems never block an install.
func metadataFor(fs types.FS, modDir string) registry.Metadata {
	record, err := modinfo.Load(fs, modDir)
	if err != nil || record == nil {
		return registry.Metadata{}
	}
	return registry.Metadata{
		Author: record.Author,
		ID:     record.ID,
	}
}

// statExists reports whether a path exists on the given filesystem.
func statExists(fs types.FS, path string) bool {
	_, err := fs.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
