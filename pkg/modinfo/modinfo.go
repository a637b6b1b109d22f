// Package modinfo reads the optional per-mod metadata manifest shipped
// inside a mod folder. The record is a read-only collaborator consulted
// for display and version comparison; modot never writes it.
package modinfo

import (
	"path/filepath"

	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/modot/pkg/errors"
	"github.com/arthur-debert/modot/pkg/types"
)

// Record is the per-mod metadata record.
type Record struct {
	ID          string `toml:"id" yaml:"id"`
	Name        string `toml:"name" yaml:"name"`
	Author      string `toml:"author" yaml:"author"`
	Version     string `toml:"version" yaml:"version"`
	Description string `toml:"description" yaml:"description"`
}

// Manifest filenames probed in order.
var manifestNames = []string{"modinfo.toml", "modinfo.yaml", "modinfo.yml"}

// Load reads the metadata manifest from modDir. A missing manifest is not
// an error: the record is simply nil. A manifest that exists but cannot
// be parsed is a MODINFO error.
func Load(fs types.FS, modDir string) (*Record, error) {
	for _, name := range manifestNames {
		path := filepath.Join(modDir, name)
		data, err := fs.ReadFile(path)
		if err != nil {
			continue
		}
		record := &Record{}
		if filepath.Ext(name) == ".toml" {
			if err := gotoml.Unmarshal(data, record); err != nil {
				return nil, errors.Wrapf(err, errors.ErrModInfo, "failed to parse %s", path)
			}
		} else {
			if err := yaml.Unmarshal(data, record); err != nil {
				return nil, errors.Wrapf(err, errors.ErrModInfo, "failed to parse %s", path)
			}
		}
		return record, nil
	}
	return nil, nil
}
