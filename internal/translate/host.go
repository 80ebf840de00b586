package translate

import (
	"fmt"
	"strings"

	"github.com/jaxs-ribs/hyper-bindgen/internal/naming"
	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// ToHost renders the Go spelling of a WIT type expression, as it appears in
// generated stub code. Generated code imports the hyperrt runtime package
// under the hyperrt qualifier.
func ToHost(t wit.TypeExpr) string {
	switch e := t.(type) {
	case wit.Primitive:
		switch e.Kind {
		case wit.S32:
			return "int32"
		case wit.U32:
			return "uint32"
		case wit.S64:
			return "int64"
		case wit.U64:
			return "uint64"
		case wit.F32:
			return "float32"
		case wit.F64:
			return "float64"
		case wit.Text:
			return "string"
		case wit.Bool:
			return "bool"
		case wit.Unit:
			return "struct{}"
		case wit.Address:
			return "hyperrt.Address"
		}
		return "any"
	case wit.List:
		return "[]" + ToHost(e.Elem)
	case wit.Option:
		return "*" + ToHost(e.Elem)
	case wit.Tuple:
		return tupleHost(e)
	case wit.Result:
		return fmt.Sprintf("hyperrt.Result[%s, %s]", ToHost(e.OK), ToHost(e.Err))
	case wit.Named:
		if e.Name == UnknownTypeName {
			return "any"
		}
		return naming.ToPascal(e.Name)
	default:
		return "any"
	}
}

func tupleHost(t wit.Tuple) string {
	parts := make([]string, len(t.Elems))
	for i, el := range t.Elems {
		parts[i] = ToHost(el)
	}
	switch len(parts) {
	case 0:
		return "struct{}"
	case 1:
		return parts[0]
	case 2:
		return fmt.Sprintf("hyperrt.Tuple2[%s]", strings.Join(parts, ", "))
	case 3:
		return fmt.Sprintf("hyperrt.Tuple3[%s]", strings.Join(parts, ", "))
	case 4:
		return fmt.Sprintf("hyperrt.Tuple4[%s]", strings.Join(parts, ", "))
	default:
		// Arities beyond four never come out of Go result lists in practice.
		return "[]any"
	}
}

var tupleFields = []string{"A", "B", "C", "D"}

// DefaultValue synthesizes a Go literal carrying the zero value of a WIT
// type expression, recursing structurally: containers are empty or absent,
// primitives are their zero value, custom types zero-construct.
func DefaultValue(t wit.TypeExpr) string {
	switch e := t.(type) {
	case wit.Primitive:
		switch e.Kind {
		case wit.S32, wit.U32, wit.S64, wit.U64, wit.F32, wit.F64:
			return "0"
		case wit.Text:
			return `""`
		case wit.Bool:
			return "false"
		case wit.Unit:
			return "struct{}{}"
		case wit.Address:
			return "hyperrt.Address{}"
		}
		return "nil"
	case wit.List, wit.Option:
		return "nil"
	case wit.Tuple:
		switch {
		case len(e.Elems) == 0:
			return "struct{}{}"
		case len(e.Elems) == 1:
			return DefaultValue(e.Elems[0])
		case len(e.Elems) > len(tupleFields):
			return "nil"
		}
		parts := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			parts[i] = fmt.Sprintf("%s: %s", tupleFields[i], DefaultValue(el))
		}
		return fmt.Sprintf("%s{%s}", tupleHost(e), strings.Join(parts, ", "))
	case wit.Result:
		return fmt.Sprintf("%s{OK: %s}", ToHost(e), DefaultValue(e.OK))
	case wit.Named:
		if e.Name == UnknownTypeName {
			return "nil"
		}
		return naming.ToPascal(e.Name) + "{}"
	default:
		return "nil"
	}
}
