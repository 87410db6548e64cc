package am

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/teranos/qresp/errors"
)

// Defaults returns the configuration produced by SetDefaults alone.
func Defaults() *Config {
	v := newIsolatedViper()
	config, err := LoadWithViper(v)
	if err != nil {
		// Defaults are constants; failing here is a programming error
		panic(errors.AssertionFailedf("default config is invalid: %v", err))
	}
	return config
}

// WriteFile writes config as TOML to path, creating parent directories. An existing file
// is only replaced when overwrite is set.
func WriteFile(path string, config *Config, overwrite bool) error {
	if err := config.Validate(); err != nil {
		return errors.Wrap(err, "refusing to write invalid config")
	}

	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.WithHint(
			errors.Newf("config file %s already exists", path),
			"pass --force to overwrite it",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, DefaultFilePerms); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}
	return nil
}
