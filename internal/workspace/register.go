package workspace

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/modfile"
)

// DefaultGoVersion is used for the generated module when the workspace
// go.work carries no go directive.
const DefaultGoVersion = "1.24"

// WorkGoVersion returns the go directive of the workspace go.work. The
// generated caller-utils module must not declare a newer version than the
// workspace, or the next run's package loading fails for every component.
func WorkGoVersion(root string) string {
	workPath := filepath.Join(root, "go.work")
	data, err := os.ReadFile(workPath)
	if err != nil {
		return DefaultGoVersion
	}
	wf, err := modfile.ParseWork(workPath, data, nil)
	if err != nil || wf.Go == nil {
		return DefaultGoVersion
	}
	return wf.Go.Version
}

// Register adds the caller-utils module to the workspace go.work, exactly
// once. A missing go.work aborts the run: without workspace membership the
// generated module can never build.
func Register(root, callerUtilsDir string, logger *slog.Logger) error {
	workPath := filepath.Join(root, "go.work")
	data, err := os.ReadFile(workPath)
	if err != nil {
		return errors.Wrapf(err, "workspace manifest %s is required", workPath)
	}

	wf, err := modfile.ParseWork(workPath, data, nil)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", workPath)
	}

	rel, err := filepath.Rel(root, callerUtilsDir)
	if err != nil {
		rel = callerUtilsDir
	}
	use := "./" + filepath.ToSlash(rel)

	for _, u := range wf.Use {
		if u.Path == use || u.Path == filepath.ToSlash(rel) {
			logger.Debug("caller-utils already registered", "go_work", workPath)
			return nil
		}
	}

	if err := wf.AddUse(use, ""); err != nil {
		return errors.Wrapf(err, "adding use directive to %s", workPath)
	}
	wf.Cleanup()

	if err := os.WriteFile(workPath, modfile.Format(wf.Syntax), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", workPath)
	}
	logger.Info("registered caller-utils in workspace", "go_work", workPath, "use", use)
	return nil
}
