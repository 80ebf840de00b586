// Package config loads the optional hyper-bindgen.toml at the workspace
// root. Every field has a default; a missing file is not an error.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// FileName is the tool's config file at the workspace root.
const FileName = "hyper-bindgen.toml"

// Config controls generation paths and logging.
type Config struct {
	Bindgen struct {
		APIDir   string `toml:"api-dir"`
		Baseline string `toml:"baseline"`
		LogFile  string `toml:"log-file"`
		LogLevel string `toml:"log-level"`
	} `toml:"bindgen"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Bindgen.APIDir = "api"
	c.Bindgen.Baseline = "process-v1"
	c.Bindgen.LogFile = "logs/hyper-bindgen.log"
	c.Bindgen.LogLevel = "info"
	return c
}

// Load reads hyper-bindgen.toml under root, falling back to defaults for
// a missing file or missing fields.
func Load(root string) (Config, error) {
	c := Default()

	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c, nil
	}

	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, errors.Wrapf(err, "parsing %s", path)
	}
	if len(meta.Undecoded()) > 0 {
		return Config{}, errors.Newf("%s: unknown keys: %v", path, meta.Undecoded())
	}
	return c, nil
}
