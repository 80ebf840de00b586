// Package stubgen renders Go source for the caller-utils package from a
// parsed interface model: caller-side invocation stubs, callee-side default
// implementations, and the Go spellings of the interface's composite types.
package stubgen

import (
	"fmt"
	"strings"

	"github.com/jaxs-ribs/hyper-bindgen/internal/naming"
	"github.com/jaxs-ribs/hyper-bindgen/internal/translate"
	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// SendTimeoutSecs is the fixed timeout budget every generated invocation
// carries.
const SendTimeoutSecs = 30

// DefaultPackageName is the generated package's name.
const DefaultPackageName = "callerutils"

// HyperrtImport is the runtime package generated code depends on.
const HyperrtImport = "github.com/jaxs-ribs/hyper-bindgen/pkg/hyperrt"

// DocFile renders the generated package's doc.go.
func DocFile(pkg string, interfaces []string) string {
	var b strings.Builder
	b.WriteString("// Code generated by hyper-bindgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "// Package %s contains generated invocation stubs and default\n", pkg)
	b.WriteString("// implementations for the workspace's process interfaces:\n")
	for _, iface := range interfaces {
		fmt.Fprintf(&b, "//   - %s\n", iface)
	}
	fmt.Fprintf(&b, "package %s\n", pkg)
	return b.String()
}

// CallerFile renders the caller-side stub file for one interface: one
// routine per signature per capability.
func CallerFile(model wit.InterfaceModel, pkg string) string {
	var body strings.Builder
	for _, sig := range model.Signatures {
		for _, c := range sig.Capabilities {
			body.WriteString("\n")
			writeCallerStub(&body, sig, c)
		}
	}
	return fileHeader(pkg, model.Name, body.String()) + body.String()
}

func writeCallerStub(b *strings.Builder, sig wit.MethodSignature, c wit.Capability) {
	fnName := naming.ToPascal(sig.Name) + naming.ToPascal(string(c)) + "Invoke"
	retHost := hostReturn(sig.Return)

	if c == wit.CapHTTP {
		// The http surface is implemented elsewhere; only the call shape is
		// reserved here.
		fmt.Fprintf(b, "// %s reserves the call shape for the %s surface of %s.\n", fnName, c, sig.Name)
		fmt.Fprintf(b, "func %s(_ctx context.Context, _target hyperrt.Address", fnName)
		for _, p := range sig.Params {
			fmt.Fprintf(b, ", _%s %s", paramVar(p.Name), translate.ToHost(p.Type))
		}
		fmt.Fprintf(b, ") hyperrt.SendResult[%s] {\n", retHost)
		fmt.Fprintf(b, "\treturn hyperrt.Success[%s](%s)\n", retHost, translate.DefaultValue(defaultExpr(sig.Return)))
		b.WriteString("}\n")
		return
	}

	fmt.Fprintf(b, "// %s invokes %s over the %s surface.\n", fnName, sig.Name, c)
	fmt.Fprintf(b, "func %s(ctx context.Context, target hyperrt.Address", fnName)
	for _, p := range sig.Params {
		fmt.Fprintf(b, ", %s %s", paramVar(p.Name), translate.ToHost(p.Type))
	}
	fmt.Fprintf(b, ") hyperrt.SendResult[%s] {\n", retHost)
	fmt.Fprintf(b, "\trequest := map[string]any{%q: %s}\n", naming.ToPascal(sig.Name), requestPayload(sig.Params))
	fmt.Fprintf(b, "\treturn hyperrt.Send[%s](ctx, target, request, %d)\n", retHost, SendTimeoutSecs)
	b.WriteString("}\n")
}

// requestPayload renders the positional argument payload: zero arguments is
// an empty object, one argument travels directly, several form an ordered
// group.
func requestPayload(params []wit.Param) string {
	switch len(params) {
	case 0:
		return "struct{}{}"
	case 1:
		return paramVar(params[0].Name)
	default:
		names := make([]string, len(params))
		for i, p := range params {
			names[i] = paramVar(p.Name)
		}
		return "[]any{" + strings.Join(names, ", ") + "}"
	}
}

// CalleeFile renders the callee-side contract and its placeholder default
// implementation for one interface.
func CalleeFile(model wit.InterfaceModel, pkg string) string {
	iface := naming.ToPascal(model.Name)
	var body strings.Builder

	fmt.Fprintf(&body, "\n// %sHandler is the callee-side contract for the %s interface.\n", iface, model.Name)
	fmt.Fprintf(&body, "type %sHandler interface {\n", iface)
	for _, sig := range model.Signatures {
		fmt.Fprintf(&body, "\t%s\n", calleeSignature(sig))
	}
	body.WriteString("}\n")

	fmt.Fprintf(&body, "\n// Default%sHandler answers every method with its default value.\n", iface)
	fmt.Fprintf(&body, "// Replace each method with a real implementation.\n")
	fmt.Fprintf(&body, "type Default%sHandler struct{}\n", iface)

	for _, sig := range model.Signatures {
		tags := make([]string, len(sig.Capabilities))
		for i, c := range sig.Capabilities {
			tags[i] = string(c)
		}
		body.WriteString("\n")
		fmt.Fprintf(&body, "// capabilities: %s\n", strings.Join(tags, ", "))
		fmt.Fprintf(&body, "func (Default%sHandler) %s {\n", iface, calleeSignature(sig))
		if isUnit(sig.Return) {
			body.WriteString("\treturn nil\n")
		} else {
			fmt.Fprintf(&body, "\treturn %s, nil\n", translate.DefaultValue(sig.Return))
		}
		body.WriteString("}\n")
	}

	return fileHeader(pkg, model.Name, body.String()) + body.String()
}

func calleeSignature(sig wit.MethodSignature) string {
	var b strings.Builder
	b.WriteString(naming.ToPascal(sig.Name))
	b.WriteString("(ctx context.Context, target hyperrt.Address")
	for _, p := range sig.Params {
		fmt.Fprintf(&b, ", %s %s", paramVar(p.Name), translate.ToHost(p.Type))
	}
	b.WriteString(") ")
	if isUnit(sig.Return) {
		b.WriteString("error")
	} else {
		fmt.Fprintf(&b, "(%s, error)", translate.ToHost(sig.Return))
	}
	return b.String()
}

func isUnit(t wit.TypeExpr) bool {
	p, ok := t.(wit.Primitive)
	return t == nil || (ok && p.Kind == wit.Unit)
}

func hostReturn(t wit.TypeExpr) string {
	if t == nil {
		return "struct{}"
	}
	return translate.ToHost(t)
}

func defaultExpr(t wit.TypeExpr) wit.TypeExpr {
	if t == nil {
		return wit.Primitive{Kind: wit.Unit}
	}
	return t
}

// paramVar renders a parameter's Go variable name. Kebab parameter names
// become lower camel so the generated code reads like hand-written Go.
func paramVar(kebab string) string {
	pascal := naming.ToPascal(kebab)
	if pascal == "" {
		return kebab
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}

// fileHeader renders the package clause and the import block the body
// needs.
func fileHeader(pkg, iface, body string) string {
	var b strings.Builder
	b.WriteString("// Code generated by hyper-bindgen. DO NOT EDIT.\n")
	fmt.Fprintf(&b, "// Source interface: %s\n\n", iface)
	fmt.Fprintf(&b, "package %s\n", pkg)

	needsContext := strings.Contains(body, "context.Context")
	needsRuntime := strings.Contains(body, "hyperrt.")
	switch {
	case needsContext && needsRuntime:
		fmt.Fprintf(&b, "\nimport (\n\t\"context\"\n\n\t\"%s\"\n)\n", HyperrtImport)
	case needsContext:
		b.WriteString("\nimport \"context\"\n")
	case needsRuntime:
		fmt.Fprintf(&b, "\nimport \"%s\"\n", HyperrtImport)
	}
	return b.String()
}
