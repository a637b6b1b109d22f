// Package config loads modot's configuration: embedded TOML defaults,
// an optional user file in the XDG config directory, and MODOT_
// environment overrides, merged in that order.
package config

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/modot/pkg/errors"
)

//go:embed modot.toml
var defaultConfig []byte

// UserConfigFile is the name of the optional user configuration file,
// looked up under the XDG config directory.
const UserConfigFile = "modot/modot.toml"

// Config is the resolved application configuration.
type Config struct {
	Game   GameConfig   `koanf:"game"`
	Layout LayoutConfig `koanf:"layout"`
}

// GameConfig locates the game installation.
type GameConfig struct {
	// Path overrides automatic discovery when non-empty.
	Path string `koanf:"path"`
}

// LayoutConfig holds the game-relative locations modot edits.
type LayoutConfig struct {
	SettingsFile string `koanf:"settings_file"`
	ModsDir      string `koanf:"mods_dir"`
}

// envKeyMap translates MODOT_ environment variables onto config keys.
// Only known variables are honored; everything else is ignored.
var envKeyMap = map[string]string{
	"MODOT_GAME_PATH":     "game.path",
	"MODOT_SETTINGS_FILE": "layout.settings_file",
	"MODOT_MODS_DIR":      "layout.mods_dir",
}

// Load resolves the configuration from defaults, the user file, and the
// environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default configuration")
	}

	userPath := filepath.Join(xdg.ConfigHome, UserConfigFile)
	if _, err := os.Stat(userPath); err == nil {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load user configuration from %s", userPath)
		}
	}

	if err := k.Load(env.Provider("MODOT_", ".", func(s string) string {
		return envKeyMap[s]
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// Default returns the embedded defaults without touching the user file or
// environment. Useful for tests and for callers that supply explicit
// paths.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			SettingsFile: filepath.Join("Binaries", "SETTINGS", "GCMODSETTINGS.MXML"),
			ModsDir:      filepath.Join("GAMEDATA", "MODS"),
		},
	}
}

// rawBytesProvider feeds in-memory bytes to koanf.
type rawBytesProvider struct {
	bytes []byte
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read")
}
