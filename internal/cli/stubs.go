package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/jaxs-ribs/hyper-bindgen/internal/naming"
	"github.com/jaxs-ribs/hyper-bindgen/internal/stubgen"
	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
	"github.com/jaxs-ribs/hyper-bindgen/internal/witparse"
	"github.com/jaxs-ribs/hyper-bindgen/internal/workspace"
)

// runStubPass is the WIT-to-code pass. It deliberately starts from the
// emitted text, not the in-memory models of the first pass: the aggregate
// world names the interfaces, each interface file is re-parsed, and the
// caller-utils module is regenerated wholesale.
func runStubPass(apiDir, root string, logger *slog.Logger) error {
	world, err := findAggregateWorld(apiDir)
	if err != nil {
		return err
	}
	logger.Info("aggregate world", "name", world.Name, "imports", len(world.Imports))

	files := map[string]string{}
	var generated []string
	for _, iface := range world.Imports {
		data, err := os.ReadFile(filepath.Join(apiDir, iface+".wit"))
		if err != nil {
			logger.Warn("skipping unreadable interface file", "interface", iface, "error", err)
			continue
		}
		model, err := witparse.ParseInterface(string(data), logger)
		if err != nil {
			logger.Warn("skipping unparsable interface file", "interface", iface, "error", err)
			continue
		}

		snake := naming.ToSnake(model.Name)
		files[snake+"_caller.go"] = stubgen.CallerFile(model, stubgen.DefaultPackageName)
		files[snake+"_impl.go"] = stubgen.CalleeFile(model, stubgen.DefaultPackageName)
		if t := stubgen.TypesFile(model, stubgen.DefaultPackageName); t != "" {
			files[snake+"_types.go"] = t
		}
		generated = append(generated, model.Name)
		logger.Info("generated stubs", "interface", model.Name, "signatures", len(model.Signatures))
	}
	files["doc.go"] = stubgen.DocFile(stubgen.DefaultPackageName, generated)

	dir, err := workspace.WriteCallerUtils(root, workspace.CallerUtilsDirName, workspace.WorkGoVersion(root), files, logger)
	if err != nil {
		return err
	}
	if err := workspace.CopyWIT(apiDir, dir, logger); err != nil {
		return err
	}
	return workspace.Register(root, dir, logger)
}

// findAggregateWorld locates the world file carrying imports. Without it
// the second pass cannot proceed at all, so its absence is fatal.
func findAggregateWorld(apiDir string) (wit.WorldModel, error) {
	entries, err := os.ReadDir(apiDir)
	if err != nil {
		return wit.WorldModel{}, errors.Wrapf(err, "reading %s", apiDir)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".wit") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(apiDir, e.Name()))
		if err != nil {
			continue
		}
		w, found := witparse.ParseWorld(string(data))
		if found && len(w.Imports) > 0 {
			return w, nil
		}
	}
	return wit.WorldModel{}, errors.Newf("no aggregate world found in %s: cannot generate caller-utils", apiDir)
}
