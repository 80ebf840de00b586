package stubgen

import (
	"fmt"
	"strings"

	"github.com/jaxs-ribs/hyper-bindgen/internal/naming"
	"github.com/jaxs-ribs/hyper-bindgen/internal/translate"
	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// TypesFile renders the Go spellings of an interface's composite types.
// Records become structs; variants become tag-plus-payload structs, the
// common Go encoding for closed sums. Returns the empty string when the
// interface declares no types.
func TypesFile(model wit.InterfaceModel, pkg string) string {
	if len(model.Types) == 0 {
		return ""
	}

	var body strings.Builder
	for _, def := range model.Types {
		body.WriteString("\n")
		switch d := def.(type) {
		case wit.Record:
			writeRecordType(&body, d)
		case wit.Variant:
			writeVariantType(&body, d)
		}
	}
	return fileHeader(pkg, model.Name, body.String()) + body.String()
}

func writeRecordType(b *strings.Builder, r wit.Record) {
	fmt.Fprintf(b, "// %s mirrors the WIT record %s.\n", naming.ToPascal(r.Name), r.Name)
	fmt.Fprintf(b, "type %s struct {\n", naming.ToPascal(r.Name))
	for _, f := range r.Fields {
		fmt.Fprintf(b, "\t%s %s `json:%q`\n", naming.ToPascal(f.Name), translate.ToHost(f.Type), naming.ToSnake(f.Name))
	}
	b.WriteString("}\n")
}

func writeVariantType(b *strings.Builder, v wit.Variant) {
	name := naming.ToPascal(v.Name)
	fmt.Fprintf(b, "// %s mirrors the WIT variant %s. Tag holds the active case;\n", name, v.Name)
	b.WriteString("// payload fields are set only when Tag matches.\n")
	fmt.Fprintf(b, "type %s struct {\n", name)
	b.WriteString("\tTag string `json:\"tag\"`\n")
	for _, c := range v.Cases {
		if c.Payload == nil {
			continue
		}
		fmt.Fprintf(b, "\t%s *%s `json:\"%s,omitempty\"`\n",
			naming.ToPascal(c.Name), translate.ToHost(c.Payload), naming.ToSnake(c.Name))
	}
	b.WriteString("}\n")

	// Tag constants, one per case.
	b.WriteString("\nconst (\n")
	for _, c := range v.Cases {
		fmt.Fprintf(b, "\t%sTag%s = %q\n", name, naming.ToPascal(c.Name), c.Name)
	}
	b.WriteString(")\n")
}
