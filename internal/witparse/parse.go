// Package witparse re-parses emitted WIT interface text into a structural
// model. It is deliberately NOT the emitter's code path: it recognizes the
// text by line shape and delimiter search, sharing only the type-expression
// grammar (wit.ParseTypeExpr) with the rest of the system, and the
// round-trip property tests hold the two sides together.
package witparse

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// StructuralMismatchError reports a signature-shaped line whose expected
// delimiters could not be found. The line is skipped and logged, never
// fatal.
type StructuralMismatchError struct {
	Line   string
	Detail string
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf("structural mismatch in signature line %q: %s", e.Line, e.Detail)
}

// ParseInterface parses one emitted interface file back into an
// InterfaceModel. Comment lines accumulate capability tags for the next
// signature; any other non-signature line resets the accumulator.
func ParseInterface(text string, logger *slog.Logger) (wit.InterfaceModel, error) {
	var model wit.InterfaceModel

	lines := strings.Split(text, "\n")
	var pending []wit.Capability
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		switch {
		case strings.HasPrefix(line, "interface "):
			model.Name = strings.TrimSuffix(strings.TrimPrefix(line, "interface "), " {")
			i++

		case strings.HasPrefix(line, "//"):
			if tag, ok := asCapability(line); ok {
				pending = append(pending, tag)
			}
			i++

		case line == "":
			i++

		case strings.HasPrefix(line, "record "):
			def, next := parseRecord(lines, i, logger)
			model.Types = append(model.Types, def)
			pending = nil
			i = next

		case strings.HasPrefix(line, "variant "):
			def, next := parseVariant(lines, i, logger)
			model.Types = append(model.Types, def)
			pending = nil
			i = next

		case strings.Contains(line, ": func(") && strings.Contains(line, "-> "):
			sig, err := parseSignature(line)
			if err != nil {
				logger.Warn("skipping malformed signature line", "line", line, "error", err)
			} else {
				sig.Capabilities = normalizeCaps(pending)
				model.Signatures = append(model.Signatures, sig)
			}
			pending = nil
			i++

		default:
			pending = nil
			i++
		}
	}

	if model.Name == "" {
		return model, fmt.Errorf("no interface header found")
	}
	return model, nil
}

func asCapability(line string) (wit.Capability, bool) {
	tag := wit.Capability(strings.TrimPrefix(line, "//"))
	for _, c := range wit.CapabilityOrder {
		if tag == c {
			return c, true
		}
	}
	return "", false
}

func normalizeCaps(caps []wit.Capability) []wit.Capability {
	present := make(map[wit.Capability]bool, len(caps))
	for _, c := range caps {
		present[c] = true
	}
	var out []wit.Capability
	for _, c := range wit.CapabilityOrder {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}

// parseSignature recovers name, parameters and return type from one
// signature line by fixed delimiter search.
func parseSignature(line string) (wit.MethodSignature, error) {
	var sig wit.MethodSignature

	colon := strings.Index(line, ": func(")
	if colon < 0 {
		return sig, &StructuralMismatchError{Line: line, Detail: "missing ': func('"}
	}
	sig.Name = strings.TrimSpace(line[:colon])

	rest := line[colon+len(": func("):]
	arrow := strings.LastIndex(rest, "-> ")
	if arrow < 0 {
		return sig, &StructuralMismatchError{Line: line, Detail: "missing '-> '"}
	}

	paramPart := strings.TrimSpace(rest[:arrow])
	if !strings.HasSuffix(paramPart, ")") {
		return sig, &StructuralMismatchError{Line: line, Detail: "missing closing parenthesis"}
	}
	paramPart = strings.TrimSuffix(paramPart, ")")

	for _, chunk := range splitTopLevel(paramPart) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		name, typeText, ok := strings.Cut(chunk, ":")
		if !ok {
			return sig, &StructuralMismatchError{Line: line, Detail: fmt.Sprintf("parameter %q has no type", chunk)}
		}
		name = strings.TrimSpace(name)
		typeText = strings.TrimSpace(typeText)
		// The implicit target parameter is synthetic; it never counts.
		if name == "target" && typeText == string(wit.Address) {
			continue
		}
		t, err := wit.ParseTypeExpr(typeText)
		if err != nil {
			return sig, &StructuralMismatchError{Line: line, Detail: err.Error()}
		}
		sig.Params = append(sig.Params, wit.Param{Name: name, Type: t})
	}

	retText := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest[arrow+len("-> "):]), ";"))
	ret, err := wit.ParseTypeExpr(retText)
	if err != nil {
		return sig, &StructuralMismatchError{Line: line, Detail: err.Error()}
	}
	// The emitter wraps every return in result<R, string>; unwrap it so the
	// model carries the method's own return type.
	if r, ok := ret.(wit.Result); ok {
		if p, ok := r.Err.(wit.Primitive); ok && p.Kind == wit.Text {
			ret = r.OK
		}
	}
	sig.Return = ret
	return sig, nil
}

// splitTopLevel splits on commas outside angle brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
