// Package workspace holds the generator's workspace collaborators:
// component discovery over hyper.toml manifests, go.work registration of
// the generated caller-utils module, and placement of finalized WIT text
// where the component toolchain expects it.
package workspace

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// ManifestName is the per-component manifest file marking a module as a
// hyperware process.
const ManifestName = "hyper.toml"

// Manifest is the [component] section of a hyper.toml.
type Manifest struct {
	Component struct {
		Name    string `toml:"name"`
		Process bool   `toml:"process"`
	} `toml:"component"`
}

// LoadManifest parses one hyper.toml. The [component] section is required.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, errors.Wrapf(err, "parsing %s", path)
	}
	if !meta.IsDefined("component") {
		return Manifest{}, errors.Newf("%s: missing [component] section", path)
	}
	return m, nil
}

// Discover walks root and returns the module directories whose hyper.toml
// declares a process component, sorted for deterministic processing order.
func Discover(root string, logger *slog.Logger) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", "vendor", "node_modules", "target", "caller-utils":
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != ManifestName {
			return nil
		}
		m, merr := LoadManifest(path)
		if merr != nil {
			logger.Warn("skipping unreadable manifest", "path", path, "error", merr)
			return nil
		}
		if !m.Component.Process {
			logger.Debug("manifest is not a process component", "path", path)
			return nil
		}
		dirs = append(dirs, filepath.Dir(path))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}

	sort.Strings(dirs)
	logger.Info("discovered process components", "root", root, "count", len(dirs))
	return dirs, nil
}
