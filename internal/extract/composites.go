package extract

import (
	"go/ast"
	"go/token"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/jaxs-ribs/hyper-bindgen/internal/naming"
	"github.com/jaxs-ribs/hyper-bindgen/internal/translate"
	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// collectComposites gathers every top-level record and variant declaration
// in the module into a name-keyed table, regardless of whether anything uses
// it. The dependency closure filters this universe later.
//
// Records are struct types; variants are named basic types together with
// their const blocks (const-block enums carry no payloads — payload cases
// exist only in the model and in re-parsed WIT text).
func collectComposites(module, entryName string, files []*ast.File, logger *slog.Logger) (map[string]wit.CompositeTypeDef, error) {
	table := make(map[string]wit.CompositeTypeDef)
	enumBase := make(map[string]bool) // Go names of const-block enum candidates

	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Name.Name == entryName {
					continue
				}
				switch under := ts.Type.(type) {
				case *ast.StructType:
					rec, err := buildRecord(module, ts.Name.Name, under, logger)
					if err != nil {
						return nil, err
					}
					table[rec.Name] = rec
					logger.Debug("found record", "module", module, "type", ts.Name.Name, "fields", len(rec.Fields))
				case *ast.Ident:
					// A named basic type becomes a variant once its const
					// block shows up.
					enumBase[ts.Name.Name] = true
				}
			}
		}
	}

	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}
			base, cases, err := buildVariantCases(module, gd, enumBase)
			if err != nil {
				return nil, err
			}
			if base == "" {
				continue
			}
			if err := naming.Validate(naming.KindEnum, base); err != nil {
				return nil, errors.Wrapf(err, "module %s", module)
			}
			name := naming.ToKebab(base)
			v, _ := table[name].(wit.Variant)
			v.Name = name
			v.Cases = append(v.Cases, cases...)
			table[name] = v
			logger.Debug("found variant", "module", module, "type", base, "cases", len(v.Cases))
		}
	}

	return table, nil
}

func buildRecord(module, name string, st *ast.StructType, logger *slog.Logger) (wit.Record, error) {
	if err := naming.Validate(naming.KindStruct, name); err != nil {
		return wit.Record{}, errors.Wrapf(err, "module %s", module)
	}
	rec := wit.Record{Name: naming.ToKebab(name)}
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			// Embedded fields have no WIT equivalent.
			logger.Debug("skipping embedded field", "module", module, "type", name)
			continue
		}
		for _, fn := range field.Names {
			if err := naming.Validate(naming.KindField, fn.Name); err != nil {
				return wit.Record{}, errors.Wrapf(err, "module %s, struct %s", module, name)
			}
			t, terr := translate.ToWIT(field.Type, nil)
			if terr != nil {
				logger.Warn("unrecognized field type",
					"module", module, "struct", name, "field", fn.Name, "error", terr)
			}
			rec.Fields = append(rec.Fields, wit.Field{Name: naming.ToKebab(fn.Name), Type: t})
		}
	}
	return rec, nil
}

// buildVariantCases turns one const block into variant cases when its
// declared type is a known enum base. Case names drop the type-name prefix
// Go enums conventionally carry (StatusActive -> active).
func buildVariantCases(module string, gd *ast.GenDecl, enumBase map[string]bool) (base string, cases []wit.Case, err error) {
	for _, spec := range gd.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if id, ok := vs.Type.(*ast.Ident); ok && enumBase[id.Name] {
			base = id.Name
		}
		if base == "" {
			continue
		}
		for _, name := range vs.Names {
			if name.Name == "_" {
				continue
			}
			caseName := strings.TrimPrefix(name.Name, base)
			if caseName == "" {
				caseName = name.Name
			}
			if verr := naming.Validate(naming.KindVariantCase, caseName); verr != nil {
				return "", nil, errors.Wrapf(verr, "module %s, enum %s", module, base)
			}
			cases = append(cases, wit.Case{Name: naming.ToKebab(caseName)})
		}
	}
	return base, cases, nil
}
