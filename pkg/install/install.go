// Package install implements the archive installation pipeline: per-archive
// staging, classification of staged content into clean, conflicting, or
// messy outcomes, and the explicit finalize/cleanup/resolve follow-ups.
package install

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/arthur-debert/modot/pkg/archive"
	"github.com/arthur-debert/modot/pkg/errors"
	"github.com/arthur-debert/modot/pkg/logging"
	"github.com/arthur-debert/modot/pkg/types"
)

// StagingPrefix names the per-archive staging directories created inside
// the content directory. Each archive gets a fresh uuid-suffixed
// directory so concurrent extractions never collide.
const StagingPrefix = ".modot-staging-"

// ModInstall describes one candidate that reached a terminal location:
// the content directory for clean installs, a staging directory for
// conflicts awaiting a decision.
type ModInstall struct {
	Name string
	Path string
}

// Failure records a per-candidate filesystem error. Failures never abort
// the remaining candidates.
type Failure struct {
	Name string
	Err  error
}

// Report aggregates everything one archive produced. A single archive can
// yield several simultaneous outcomes.
type Report struct {
	Successes []ModInstall
	Conflicts []ModInstall
	Failures  []Failure
	// MessyPath is set when the archive had recognizable content but no
	// candidate folders; naming is deferred to the caller.
	MessyPath string
}

// Outcome is the tagged per-candidate result. A type switch over Clean,
// Conflict, and Messy forces callers to handle all three.
type Outcome interface {
	isOutcome()
}

// Clean is a candidate installed directly into the content directory.
type Clean struct {
	Name string
	Path string
}

// Conflict is a candidate whose name collides with an installed mod. The
// content stays staged until resolved.
type Conflict struct {
	Name       string
	StagedPath string
}

// Messy is an archive whose contents matched no recognizable package
// shape; the whole staged tree awaits a caller-supplied name.
type Messy struct {
	StagedPath string
}

func (Clean) isOutcome()    {}
func (Conflict) isOutcome() {}
func (Messy) isOutcome()    {}

// Outcomes flattens the report into tagged per-candidate variants.
func (r *Report) Outcomes() []Outcome {
	var outcomes []Outcome
	for _, s := range r.Successes {
		outcomes = append(outcomes, Clean{Name: s.Name, Path: s.Path})
	}
	for _, c := range r.Conflicts {
		outcomes = append(outcomes, Conflict{Name: c.Name, StagedPath: c.Path})
	}
	if r.MessyPath != "" {
		outcomes = append(outcomes, Messy{StagedPath: r.MessyPath})
	}
	return outcomes
}

// Installer runs the pipeline against one content directory.
type Installer struct {
	fs      types.FS
	modsDir string
}

// New creates an Installer for the given content directory.
func New(fs types.FS, modsDir string) *Installer {
	return &Installer{fs: fs, modsDir: modsDir}
}

// Install runs one archive through the pipeline: extract into fresh
// staging, classify top-level folders, and move clean candidates straight
// into the content directory. An unreadable archive fails fast with
// nothing registered. Per-candidate move errors are reported in the
// Report and do not abort remaining candidates.
func (in *Installer) Install(archivePath string) (*Report, error) {
	logger := logging.GetLogger("install")

	if err := in.fs.MkdirAll(in.modsDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to create content directory %s", in.modsDir)
	}

	staging := filepath.Join(in.modsDir, StagingPrefix+uuid.NewString())
	if err := in.fs.MkdirAll(staging, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to create staging directory %s", staging)
	}

	if err := archive.Extract(in.fs, archivePath, staging); err != nil {
		// Fail fast: nothing from a corrupt archive is registered.
		_ = in.fs.RemoveAll(staging)
		return nil, err
	}

	entries, err := in.fs.ReadDir(staging)
	if err != nil {
		_ = in.fs.RemoveAll(staging)
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to scan staging directory %s", staging)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			candidates = append(candidates, entry.Name())
		}
	}

	if len(candidates) == 0 {
		if len(entries) == 0 {
			// Nothing extracted at all; discard the staging directory.
			_ = in.fs.RemoveAll(staging)
			return &Report{}, nil
		}
		// Loose files with no containing folder: the caller must name it.
		logger.Info().Str("staging", staging).Msg("Archive has no candidate folders, reporting as messy")
		return &Report{MessyPath: staging}, nil
	}

	report := &Report{}
	conflictStaging := ""
	for _, name := range candidates {
		staged := filepath.Join(staging, name)
		dest := filepath.Join(in.modsDir, name)

		if in.exists(dest) {
			if conflictStaging == "" {
				conflictStaging = filepath.Join(in.modsDir, StagingPrefix+uuid.NewString())
				if err := in.fs.MkdirAll(conflictStaging, 0755); err != nil {
					report.Failures = append(report.Failures, Failure{Name: name,
						Err: errors.Wrap(err, errors.ErrFilesystem, "failed to create conflict staging directory")})
					conflictStaging = ""
					continue
				}
			}
			held := filepath.Join(conflictStaging, name)
			if err := in.fs.Rename(staged, held); err != nil {
				report.Failures = append(report.Failures, Failure{Name: name,
					Err: errors.Wrapf(err, errors.ErrFilesystem, "failed to stage conflicting mod %s", name)})
				continue
			}
			logger.Info().Str("mod", name).Str("staged", held).Msg("Conflict with installed mod")
			report.Conflicts = append(report.Conflicts, ModInstall{Name: name, Path: held})
			continue
		}

		if err := in.fs.Rename(staged, dest); err != nil {
			report.Failures = append(report.Failures, Failure{Name: name,
				Err: errors.Wrapf(err, errors.ErrFilesystem, "failed to install mod %s", name)})
			continue
		}
		logger.Info().Str("mod", name).Str("path", dest).Msg("Installed cleanly")
		report.Successes = append(report.Successes, ModInstall{Name: name, Path: dest})
	}

	// The original extraction directory now holds at most loose leftovers.
	_ = in.fs.RemoveAll(staging)
	return report, nil
}

// Finalize moves staged content into the content directory under the
// chosen name. The target must not already exist.
func (in *Installer) Finalize(stagingPath, name string) error {
	if !in.exists(stagingPath) {
		return errors.Newf(errors.ErrNotFound, "staging directory %s not found", stagingPath)
	}
	dest := filepath.Join(in.modsDir, name)
	if in.exists(dest) {
		return errors.Newf(errors.ErrAlreadyExists, "a mod folder named %q already exists", name)
	}
	if err := in.fs.Rename(stagingPath, dest); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to move %s into place", stagingPath)
	}
	return nil
}

// Cleanup discards staged content after a cancellation. A missing path is
// a no-op.
func (in *Installer) Cleanup(stagingPath string) error {
	if !in.exists(stagingPath) {
		return nil
	}
	if err := in.fs.RemoveAll(stagingPath); err != nil {
		return errors.Wrapf(err, errors.ErrFilesystem, "failed to remove staging directory %s", stagingPath)
	}
	return nil
}

// Resolve finalizes a conflict. Replace removes the installed folder and
// then moves the staged content into its place: delete-then-move, never
// move-then-delete, so an interruption can leave at most a missing mod,
// never two copies. Keep discards the staged content and leaves the
// installed mod untouched.
func (in *Installer) Resolve(name, stagedPath string, replace bool) error {
	logger := logging.GetLogger("install")

	if replace {
		dest := filepath.Join(in.modsDir, name)
		if in.exists(dest) {
			if err := in.fs.RemoveAll(dest); err != nil {
				return errors.Wrapf(err, errors.ErrFilesystem, "failed to remove installed mod %s", name)
			}
		}
		if err := in.fs.Rename(stagedPath, dest); err != nil {
			return errors.Wrapf(err, errors.ErrFilesystem, "failed to move new version of %s into place", name)
		}
		logger.Info().Str("mod", name).Msg("Replaced installed mod")
	} else {
		if err := in.fs.RemoveAll(stagedPath); err != nil {
			return errors.Wrapf(err, errors.ErrFilesystem, "failed to discard staged mod %s", name)
		}
		logger.Info().Str("mod", name).Msg("Kept installed mod, discarded staged version")
	}

	in.removeEmptyParent(stagedPath)
	return nil
}

// removeEmptyParent drops the per-archive conflict staging directory once
// its last entry has been resolved.
func (in *Installer) removeEmptyParent(stagedPath string) {
	parent := filepath.Dir(stagedPath)
	if parent == in.modsDir || !in.exists(parent) {
		return
	}
	entries, err := in.fs.ReadDir(parent)
	if err != nil || len(entries) > 0 {
		return
	}
	_ = in.fs.Remove(parent)
}

func (in *Installer) exists(path string) bool {
	_, err := in.fs.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
