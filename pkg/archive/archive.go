// Package archive extracts mod archives into staging directories. Zip and
// rar are the formats the game's community distributes; anything else
// fails fast with an ARCHIVE error.
package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/nwaples/rardecode/v2"

	"github.com/arthur-debert/modot/pkg/errors"
	"github.com/arthur-debert/modot/pkg/logging"
	"github.com/arthur-debert/modot/pkg/types"
)

// Extract expands the archive at archivePath into destDir, which must
// already exist. An unreadable or corrupt archive returns an ARCHIVE
// error; callers discard the destination on failure so no partial content
// is ever registered.
func Extract(fs types.FS, archivePath, destDir string) error {
	logger := logging.GetLogger("archive")

	data, err := fs.ReadFile(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchive, "failed to read archive %s", archivePath)
	}

	ext := strings.ToLower(filepath.Ext(archivePath))
	logger.Debug().
		Str("archive", archivePath).
		Str("dest", destDir).
		Str("format", ext).
		Msg("Extracting archive")

	switch ext {
	case ".zip":
		return extractZip(fs, data, destDir)
	case ".rar":
		return extractRar(fs, data, destDir)
	default:
		return errors.Newf(errors.ErrArchive, "unsupported archive type %q", ext)
	}
}

func extractZip(fs types.FS, data []byte, destDir string) error {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return errors.Wrap(err, errors.ErrArchive, "failed to read zip archive")
	}

	for _, file := range reader.File {
		target, err := entryPath(destDir, file.Name)
		if err != nil {
			return err
		}
		if file.FileInfo().IsDir() {
			if err := fs.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrArchive, "failed to create directory %s", target)
			}
			continue
		}
		if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrArchive, "failed to create directory for %s", target)
		}
		rc, err := file.Open()
		if err != nil {
			return errors.Wrapf(err, errors.ErrArchive, "failed to open zip entry %s", file.Name)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return errors.Wrapf(err, errors.ErrArchive, "failed to extract zip entry %s", file.Name)
		}
		if err := fs.WriteFile(target, content, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrArchive, "failed to write %s", target)
		}
	}
	return nil
}

func extractRar(fs types.FS, data []byte, destDir string) error {
	reader, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, errors.ErrArchive, "failed to read rar archive")
	}

	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrArchive, "failed to read rar entry")
		}
		target, err := entryPath(destDir, header.Name)
		if err != nil {
			return err
		}
		if header.IsDir {
			if err := fs.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrArchive, "failed to create directory %s", target)
			}
			continue
		}
		if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrArchive, "failed to create directory for %s", target)
		}
		content, err := io.ReadAll(reader)
		if err != nil {
			return errors.Wrapf(err, errors.ErrArchive, "failed to extract rar entry %s", header.Name)
		}
		if err := fs.WriteFile(target, content, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrArchive, "failed to write %s", target)
		}
	}
}

// entryPath joins an archive entry name onto destDir, rejecting entries
// that would escape it.
func entryPath(destDir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrArchive, "archive entry %q escapes the extraction directory", name)
	}
	return filepath.Join(destDir, cleaned), nil
}
