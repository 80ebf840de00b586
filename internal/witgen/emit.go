// Package witgen renders interface models and worlds as WIT text. Output is
// deterministic: types in closure-discovery order, signatures in declaration
// order, capability comments in fixed order.
package witgen

import (
	"strings"

	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// DefaultWorldName is the aggregate world's name when no module supplied
// one.
const DefaultWorldName = "default-world"

// DefaultBaseline is the fixed well-known inclusion every aggregate world
// carries.
const DefaultBaseline = "process-v1"

const indent = "    "

// EmitInterface renders one interface block. An interface with zero exposed
// signatures renders to the empty string and no file should be written for
// it.
func EmitInterface(model wit.InterfaceModel) string {
	if len(model.Signatures) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("interface " + model.Name + " {\n")

	for _, def := range model.Types {
		writeTypeDef(&b, def)
		b.WriteString("\n")
	}

	for i, sig := range model.Signatures {
		if i > 0 {
			b.WriteString("\n")
		}
		writeSignature(&b, sig)
	}

	b.WriteString("}\n")
	return b.String()
}

func writeTypeDef(b *strings.Builder, def wit.CompositeTypeDef) {
	switch d := def.(type) {
	case wit.Record:
		b.WriteString(indent + "record " + d.Name + " {\n")
		for _, f := range d.Fields {
			b.WriteString(indent + indent + f.Name + ": " + wit.Render(f.Type) + ",\n")
		}
		b.WriteString(indent + "}\n")
	case wit.Variant:
		b.WriteString(indent + "variant " + d.Name + " {\n")
		for _, c := range d.Cases {
			if c.Payload != nil {
				b.WriteString(indent + indent + c.Name + "(" + wit.Render(c.Payload) + "),\n")
			} else {
				b.WriteString(indent + indent + c.Name + ",\n")
			}
		}
		b.WriteString(indent + "}\n")
	}
}

func writeSignature(b *strings.Builder, sig wit.MethodSignature) {
	for _, c := range sig.Capabilities {
		b.WriteString(indent + "//" + string(c) + "\n")
	}

	b.WriteString(indent + sig.Name + ": func(target: address")
	for _, p := range sig.Params {
		b.WriteString(", " + p.Name + ": " + wit.Render(p.Type))
	}

	ret := sig.Return
	if ret == nil {
		ret = wit.Primitive{Kind: wit.Unit}
	}
	// The WIT surface does not model arbitrary error types: every return is
	// wrapped in a result whose error arm is string.
	b.WriteString(") -> result<" + wit.Render(ret) + ", string>;\n")
}

// EmitExportWorld renders the per-interface world that exports a single
// interface, returning the world's name and text.
func EmitExportWorld(iface string) (name, text string) {
	name = iface + "-api"
	var b strings.Builder
	b.WriteString("world " + name + " {\n")
	b.WriteString(indent + "export " + iface + ";\n")
	b.WriteString("}\n")
	return name, b.String()
}

// EmitAggregateWorld renders the single world importing every discovered
// interface plus the fixed baseline inclusion.
func EmitAggregateWorld(w wit.WorldModel, baseline string) string {
	if baseline == "" {
		baseline = DefaultBaseline
	}
	var b strings.Builder
	b.WriteString("world " + w.Name + " {\n")
	for _, iface := range w.Imports {
		b.WriteString(indent + "import " + iface + ";\n")
	}
	b.WriteString(indent + "include " + baseline + ";\n")
	b.WriteString("}\n")
	return b.String()
}
