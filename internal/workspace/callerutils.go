package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// CallerUtilsDirName is the generated module's directory under the
// workspace root.
const CallerUtilsDirName = "caller-utils"

// WriteCallerUtils replaces the caller-utils module wholesale: any prior
// generated output is deleted and the module is regenerated from scratch,
// never incrementally patched. files maps relative file names to contents.
func WriteCallerUtils(root, modulePath, goVersion string, files map[string]string, logger *slog.Logger) (string, error) {
	dir := filepath.Join(root, CallerUtilsDirName)

	if err := os.RemoveAll(dir); err != nil {
		return "", errors.Wrapf(err, "clearing %s", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating %s", dir)
	}

	goMod := fmt.Sprintf("module %s\n\ngo %s\n\nrequire github.com/jaxs-ribs/hyper-bindgen v0.1.0\n",
		modulePath, goVersion)
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(goMod), 0o644); err != nil {
		return "", errors.Wrapf(err, "writing caller-utils go.mod")
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			return "", errors.Wrapf(err, "writing %s", path)
		}
	}

	logger.Info("wrote caller-utils module", "dir", dir, "files", len(files))
	return dir, nil
}

// CopyWIT places the finalized WIT text into the resolution directory the
// component toolchain reads (caller-utils/target/wit), clearing any prior
// copy first.
func CopyWIT(apiDir, callerUtilsDir string, logger *slog.Logger) error {
	dest := filepath.Join(callerUtilsDir, "target", "wit")
	if err := os.RemoveAll(dest); err != nil {
		return errors.Wrapf(err, "clearing %s", dest)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dest)
	}

	entries, err := os.ReadDir(apiDir)
	if err != nil {
		return errors.Wrapf(err, "reading %s", apiDir)
	}
	copied := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".wit") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(apiDir, e.Name()))
		if err != nil {
			return errors.Wrapf(err, "reading %s", e.Name())
		}
		if err := os.WriteFile(filepath.Join(dest, e.Name()), data, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", e.Name())
		}
		copied++
	}

	logger.Info("copied wit files", "from", apiDir, "to", dest, "count", copied)
	return nil
}
