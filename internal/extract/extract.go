// Package extract scans one component module's Go source for the
// entry-point struct and its capability-tagged methods, producing the
// pre-closure interface model and the full composite type table.
package extract

import (
	"context"
	"go/ast"
	"go/token"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/packages"

	"github.com/jaxs-ribs/hyper-bindgen/internal/naming"
	"github.com/jaxs-ribs/hyper-bindgen/internal/translate"
	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// Extract loads the module rooted at dir and extracts its interface model.
// A missing entry-point declaration surfaces as *MissingWorldError; naming
// violations are returned as-is and abort the whole run.
func Extract(ctx context.Context, dir string, logger *slog.Logger) (*Result, error) {
	cfg := &packages.Config{
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:     dir,
		Context: ctx,
	}

	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, errors.Wrapf(err, "loading packages in %s", dir)
	}

	type namedFile struct {
		name string
		file *ast.File
	}
	var files []namedFile
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			logger.Warn("package load error", "package", pkg.PkgPath, "error", e.Msg)
		}
		for _, f := range pkg.Syntax {
			name := pkg.Fset.Position(f.Pos()).Filename
			if strings.HasSuffix(name, "_test.go") {
				continue
			}
			files = append(files, namedFile{name: name, file: f})
		}
	}
	// Deterministic declaration order across files.
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })

	ordered := make([]*ast.File, len(files))
	for i, nf := range files {
		ordered[i] = nf.file
	}

	return FromFiles(filepath.Base(dir), ordered, logger)
}

// FromFiles extracts the interface model from already-parsed files, in the
// order given. It is the syntax-level core behind Extract.
func FromFiles(module string, files []*ast.File, logger *slog.Logger) (*Result, error) {
	entryName, world, err := findEntry(module, files, logger)
	if err != nil {
		return nil, err
	}
	if err := naming.Validate(naming.KindStruct, entryName); err != nil {
		return nil, errors.Wrapf(err, "module %s", module)
	}

	used := translate.NewUsedSet()
	sigs, err := collectSignatures(module, entryName, files, used, logger)
	if err != nil {
		return nil, err
	}

	table, err := collectComposites(module, entryName, files, logger)
	if err != nil {
		return nil, err
	}

	return &Result{
		Module:    module,
		WorldName: world,
		Interface: wit.InterfaceModel{
			Name:       naming.ToKebab(entryName),
			Signatures: sigs,
		},
		TypeTable: table,
		Used:      used,
	}, nil
}

// findEntry locates the single struct declaration carrying the
// //hyper:process directive with its wit_world argument.
func findEntry(module string, files []*ast.File, logger *slog.Logger) (entryName, world string, err error) {
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				w, found := processWorld(gd.Doc)
				if !found {
					w, found = processWorld(ts.Doc)
				}
				if !found {
					continue
				}
				if entryName != "" {
					// Extras never unseat the first entry point.
					logger.Warn("extra entry-point declaration ignored",
						"module", module, "struct", ts.Name.Name, "kept", entryName)
					continue
				}
				if w == "" {
					return "", "", &MissingWorldError{Module: module, Detail: "entry-point directive has no wit_world argument"}
				}
				entryName = ts.Name.Name
				world = w
				logger.Info("found entry point", "module", module, "struct", entryName, "world", world)
			}
		}
	}
	if entryName == "" {
		return "", "", &MissingWorldError{Module: module, Detail: "no struct carries the //hyper:process directive"}
	}
	return entryName, world, nil
}

func collectSignatures(module, entryName string, files []*ast.File, used *translate.UsedSet, logger *slog.Logger) ([]wit.MethodSignature, error) {
	var sigs []wit.MethodSignature

	for _, f := range files {
		for _, decl := range f.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || receiverName(fd) != entryName {
				continue
			}
			caps := capabilities(fd.Doc)
			if len(caps) == 0 {
				logger.Debug("skipping untagged method", "module", module, "method", fd.Name.Name)
				continue
			}
			if err := naming.Validate(naming.KindFunction, fd.Name.Name); err != nil {
				return nil, errors.Wrapf(err, "module %s", module)
			}

			params, ok, err := methodParams(module, fd, used, logger)
			if err != nil {
				return nil, err
			}
			if !ok {
				// Only simple named parameters are supported.
				logger.Debug("skipping method with unnamed parameter", "module", module, "method", fd.Name.Name)
				continue
			}

			ret, terr := translate.ReturnToWIT(fd.Type.Results, used)
			if terr != nil {
				logger.Warn("unrecognized return type", "module", module, "method", fd.Name.Name, "error", terr)
			}

			sigs = append(sigs, wit.MethodSignature{
				Name:         naming.ToKebab(fd.Name.Name),
				Capabilities: caps,
				Params:       params,
				Return:       ret,
			})
			logger.Debug("found exposed method", "module", module, "method", fd.Name.Name, "capabilities", len(caps))
		}
	}
	return sigs, nil
}

// methodParams translates the declared parameters, stripping a leading
// context.Context. ok is false when any parameter is not a simple bound
// name.
func methodParams(module string, fd *ast.FuncDecl, used *translate.UsedSet, logger *slog.Logger) (params []wit.Param, ok bool, err error) {
	if fd.Type.Params == nil {
		return nil, true, nil
	}
	first := true
	for _, field := range fd.Type.Params.List {
		if first && len(field.Names) <= 1 && isContextType(field.Type) {
			first = false
			continue
		}
		first = false
		if len(field.Names) == 0 {
			return nil, false, nil
		}
		for _, name := range field.Names {
			if name.Name == "_" {
				return nil, false, nil
			}
			if verr := naming.Validate(naming.KindParameter, name.Name); verr != nil {
				return nil, false, errors.Wrapf(verr, "module %s, method %s", module, fd.Name.Name)
			}
			t, terr := translate.ToWIT(field.Type, used)
			if terr != nil {
				logger.Warn("unrecognized parameter type",
					"module", module, "method", fd.Name.Name, "parameter", name.Name, "error", terr)
			}
			params = append(params, wit.Param{Name: naming.ToKebab(name.Name), Type: t})
		}
	}
	return params, true, nil
}

func receiverName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) != 1 {
		return ""
	}
	t := fd.Recv.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		t = star.X
	}
	if id, ok := t.(*ast.Ident); ok {
		return id.Name
	}
	return ""
}

func isContextType(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	x, ok := sel.X.(*ast.Ident)
	return ok && x.Name == "context" && sel.Sel.Name == "Context"
}
