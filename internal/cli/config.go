package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/SharkLava/gwern.net/pkg/errors"
	"github.com/SharkLava/gwern.net/pkg/sidenote"
)

// Config is the CLI's engine configuration, loaded from a TOML file.
// Everything has a sensible default; the file is optional.
type Config struct {
	// Spacing is the minimum gap between adjacent sidenotes, in page units.
	Spacing float64 `toml:"spacing"`

	// Addr is the listen address for the serve command.
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Spacing: sidenote.DefaultSpacing,
		Addr:    ":8480",
	}
}

// defaultConfigPath returns the conventional config location, or empty if
// the user config directory cannot be determined.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sidenote", "config.toml")
}

// loadConfig reads configuration from path, falling back to the default
// location when path is empty. A missing file is not an error; a malformed
// one is.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if cfg.Spacing < 0 {
		return cfg, errors.New(errors.ErrCodeInvalidOptions, "spacing must not be negative, got %v", cfg.Spacing)
	}
	return cfg, nil
}
