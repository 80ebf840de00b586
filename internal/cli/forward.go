package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/jaxs-ribs/hyper-bindgen/internal/closure"
	"github.com/jaxs-ribs/hyper-bindgen/internal/config"
	"github.com/jaxs-ribs/hyper-bindgen/internal/extract"
	"github.com/jaxs-ribs/hyper-bindgen/internal/naming"
	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
	"github.com/jaxs-ribs/hyper-bindgen/internal/witgen"
	"github.com/jaxs-ribs/hyper-bindgen/internal/workspace"
)

// forwardResult summarizes the first pass.
type forwardResult struct {
	Components []string // module dirs that extracted cleanly
	Interfaces []string // interface names with emitted WIT
	WorldName  string
}

// runForward is the source-to-WIT pass: discover components, extract each
// one, close over its types and emit interface plus world files. The api
// directory is cleared up front and fully regenerated.
//
// Per-module failures are contained: a module without an entry point is
// skipped with a warning. Naming violations abort the whole run.
func runForward(ctx context.Context, root, apiDir string, cfg config.Config, logger *slog.Logger) (*forwardResult, error) {
	dirs, err := workspace.Discover(root, logger)
	if err != nil {
		return nil, err
	}
	res := &forwardResult{}
	if len(dirs) == 0 {
		return res, nil
	}

	if err := os.RemoveAll(apiDir); err != nil {
		return nil, errors.Wrapf(err, "clearing %s", apiDir)
	}
	if err := os.MkdirAll(apiDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", apiDir)
	}

	for _, dir := range dirs {
		ext, err := extract.Extract(ctx, dir, logger)
		if err != nil {
			var violation *naming.Violation
			if errors.As(err, &violation) {
				return nil, err
			}
			var missing *extract.MissingWorldError
			if errors.As(err, &missing) {
				logger.Warn("skipping module without world declaration", "module", dir, "error", err)
			} else {
				logger.Warn("skipping module after extraction failure", "module", dir, "error", err)
			}
			continue
		}
		res.Components = append(res.Components, dir)
		if res.WorldName == "" {
			res.WorldName = ext.WorldName
		}

		closure.Apply(&ext.Interface, ext.Used.Names(), ext.TypeTable)

		text := witgen.EmitInterface(ext.Interface)
		if text == "" {
			logger.Info("interface has no exposed methods, skipping", "module", dir, "interface", ext.Interface.Name)
			continue
		}
		if err := writeWIT(apiDir, ext.Interface.Name, text); err != nil {
			return nil, err
		}

		worldName, worldText := witgen.EmitExportWorld(ext.Interface.Name)
		if err := writeWIT(apiDir, worldName, worldText); err != nil {
			return nil, err
		}

		res.Interfaces = append(res.Interfaces, ext.Interface.Name)
		fmt.Printf("- %s: %d methods, %d types\n", ext.Interface.Name, len(ext.Interface.Signatures), len(ext.Interface.Types))
	}

	if res.WorldName == "" {
		res.WorldName = witgen.DefaultWorldName
	}
	aggregate := witgen.EmitAggregateWorld(
		wit.WorldModel{Name: res.WorldName, Imports: res.Interfaces},
		cfg.Bindgen.Baseline,
	)
	if err := writeWIT(apiDir, res.WorldName, aggregate); err != nil {
		return nil, err
	}

	return res, nil
}

func writeWIT(apiDir, name, text string) error {
	path := filepath.Join(apiDir, name+".wit")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
