// Package translate maps between Go type expressions and WIT type
// expressions, in both directions, and synthesizes default-value literals
// for generated stub bodies. Translation is purely syntactic: it works on
// the AST, never on resolved type information.
package translate

import (
	"fmt"
	"go/ast"
	"go/types"

	"github.com/jaxs-ribs/hyper-bindgen/internal/naming"
	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// UnknownTypeName is the placeholder emitted for type shapes outside the
// supported grammar. It never resolves in the type table, so the closure
// treats it as foreign.
const UnknownTypeName = "unknown"

// UnrecognizedShapeError reports a Go type expression outside the supported
// primitive/list/option/tuple/named grammar. Translation degrades to the
// unknown placeholder rather than failing, so generation stays best-effort.
type UnrecognizedShapeError struct {
	Shape string
}

func (e *UnrecognizedShapeError) Error() string {
	return fmt.Sprintf("unrecognized type shape %q, using %q placeholder", e.Shape, UnknownTypeName)
}

// UsedSet records custom type names in first-use order. The dependency
// closure seeds from it.
type UsedSet struct {
	names []string
	seen  map[string]bool
}

// NewUsedSet returns an empty set.
func NewUsedSet() *UsedSet {
	return &UsedSet{seen: make(map[string]bool)}
}

// Add records a kebab-case type name, keeping first-use order.
func (s *UsedSet) Add(name string) {
	if !s.seen[name] {
		s.seen[name] = true
		s.names = append(s.names, name)
	}
}

// Names returns the recorded names in first-use order.
func (s *UsedSet) Names() []string { return s.names }

var goPrimitives = map[string]wit.PrimitiveKind{
	"int32":   wit.S32,
	"uint32":  wit.U32,
	"int64":   wit.S64,
	"uint64":  wit.U64,
	"int":     wit.S64,
	"uint":    wit.U64,
	"float32": wit.F32,
	"float64": wit.F64,
	"string":  wit.Text,
	"bool":    wit.Bool,
}

// ToWIT translates a Go type expression to a WIT type expression. Custom
// type names are canonicalized to kebab-case and recorded into used. On an
// unrecognized shape the unknown placeholder is returned together with an
// *UnrecognizedShapeError; callers log it and keep going.
func ToWIT(expr ast.Expr, used *UsedSet) (wit.TypeExpr, error) {
	switch e := expr.(type) {
	case *ast.Ident:
		if kind, ok := goPrimitives[e.Name]; ok {
			return wit.Primitive{Kind: kind}, nil
		}
		if e.Name == "Address" {
			return wit.Primitive{Kind: wit.Address}, nil
		}
		return customType(e.Name, used), nil

	case *ast.SelectorExpr:
		if e.Sel.Name == "Address" {
			return wit.Primitive{Kind: wit.Address}, nil
		}
		return customType(e.Sel.Name, used), nil

	case *ast.ParenExpr:
		// Pass-through wrapping is not representable in WIT; unwrap to the
		// referent before translating.
		return ToWIT(e.X, used)

	case *ast.StarExpr:
		elem, err := ToWIT(e.X, used)
		if err != nil {
			return wit.Option{Elem: elem}, err
		}
		return wit.Option{Elem: elem}, nil

	case *ast.ArrayType:
		if e.Len != nil {
			return unknown(expr)
		}
		elem, err := ToWIT(e.Elt, used)
		if err != nil {
			return wit.List{Elem: elem}, err
		}
		return wit.List{Elem: elem}, nil

	default:
		return unknown(expr)
	}
}

// ReturnToWIT translates a Go result list to a single WIT type expression:
// no results is unit, one result translates directly, two or more form a
// tuple. A trailing error result is dropped — the emitter rewraps every
// return in result<_, string> regardless of the declared error type.
func ReturnToWIT(results *ast.FieldList, used *UsedSet) (wit.TypeExpr, error) {
	var exprs []ast.Expr
	if results != nil {
		for _, f := range results.List {
			n := len(f.Names)
			if n == 0 {
				n = 1
			}
			for i := 0; i < n; i++ {
				exprs = append(exprs, f.Type)
			}
		}
	}
	if n := len(exprs); n > 0 {
		if id, ok := exprs[n-1].(*ast.Ident); ok && id.Name == "error" {
			exprs = exprs[:n-1]
		}
	}

	switch len(exprs) {
	case 0:
		return wit.Primitive{Kind: wit.Unit}, nil
	case 1:
		return ToWIT(exprs[0], used)
	default:
		elems := make([]wit.TypeExpr, len(exprs))
		var firstErr error
		for i, ex := range exprs {
			elem, err := ToWIT(ex, used)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			elems[i] = elem
		}
		return wit.Tuple{Elems: elems}, firstErr
	}
}

func customType(name string, used *UsedSet) wit.TypeExpr {
	kebab := naming.ToKebab(name)
	if used != nil {
		used.Add(kebab)
	}
	return wit.Named{Name: kebab}
}

func unknown(expr ast.Expr) (wit.TypeExpr, error) {
	return wit.Named{Name: UnknownTypeName}, &UnrecognizedShapeError{Shape: types.ExprString(expr)}
}
