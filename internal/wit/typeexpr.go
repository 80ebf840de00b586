package wit

import (
	"fmt"
	"strings"
)

// Render produces the WIT spelling of a type expression.
func Render(t TypeExpr) string {
	switch e := t.(type) {
	case Primitive:
		return string(e.Kind)
	case List:
		return "list<" + Render(e.Elem) + ">"
	case Option:
		return "option<" + Render(e.Elem) + ">"
	case Tuple:
		parts := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			parts[i] = Render(el)
		}
		return "tuple<" + strings.Join(parts, ", ") + ">"
	case Result:
		return "result<" + Render(e.OK) + ", " + Render(e.Err) + ">"
	case Named:
		return e.Name
	default:
		return string(Unit)
	}
}

var primitives = map[string]PrimitiveKind{
	"s32":     S32,
	"u32":     U32,
	"s64":     S64,
	"u64":     U64,
	"f32":     F32,
	"f64":     F64,
	"string":  Text,
	"bool":    Bool,
	"unit":    Unit,
	"address": Address,
}

// ParseTypeExpr parses the WIT spelling of a type expression. It accepts
// exactly the subset Render produces: primitives, list, option, tuple,
// result, and kebab-case names.
func ParseTypeExpr(s string) (TypeExpr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty type expression")
	}

	if kind, ok := primitives[s]; ok {
		return Primitive{Kind: kind}, nil
	}

	for _, c := range []struct {
		prefix string
		build  func(inner string) (TypeExpr, error)
	}{
		{"list<", func(inner string) (TypeExpr, error) {
			elem, err := ParseTypeExpr(inner)
			if err != nil {
				return nil, err
			}
			return List{Elem: elem}, nil
		}},
		{"option<", func(inner string) (TypeExpr, error) {
			elem, err := ParseTypeExpr(inner)
			if err != nil {
				return nil, err
			}
			return Option{Elem: elem}, nil
		}},
		{"tuple<", func(inner string) (TypeExpr, error) {
			args, err := splitArgs(inner)
			if err != nil {
				return nil, err
			}
			elems := make([]TypeExpr, len(args))
			for i, a := range args {
				if elems[i], err = ParseTypeExpr(a); err != nil {
					return nil, err
				}
			}
			return Tuple{Elems: elems}, nil
		}},
		{"result<", func(inner string) (TypeExpr, error) {
			args, err := splitArgs(inner)
			if err != nil {
				return nil, err
			}
			if len(args) != 2 {
				return nil, fmt.Errorf("result takes two arguments, got %d", len(args))
			}
			ok, err := ParseTypeExpr(args[0])
			if err != nil {
				return nil, err
			}
			errArm, err := ParseTypeExpr(args[1])
			if err != nil {
				return nil, err
			}
			return Result{OK: ok, Err: errArm}, nil
		}},
	} {
		if strings.HasPrefix(s, c.prefix) {
			if !strings.HasSuffix(s, ">") {
				return nil, fmt.Errorf("unterminated %q in %q", c.prefix, s)
			}
			return c.build(s[len(c.prefix) : len(s)-1])
		}
	}

	if !isKebabIdent(s) {
		return nil, fmt.Errorf("unrecognized type expression %q", s)
	}
	return Named{Name: s}, nil
}

// splitArgs splits a comma-separated argument list at angle-bracket depth
// zero.
func splitArgs(s string) ([]string, error) {
	var args []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced angle brackets in %q", s)
			}
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced angle brackets in %q", s)
	}
	args = append(args, s[start:])
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return args, nil
}

func isKebabIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r == '-' && i > 0 && i < len(s)-1:
		case r >= '0' && r <= '9' && i > 0:
			// Digits never survive naming validation but the parser stays
			// permissive; validation happens at declaration sites.
		default:
			return false
		}
	}
	return true
}
