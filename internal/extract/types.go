package extract

import (
	"fmt"

	"github.com/jaxs-ribs/hyper-bindgen/internal/translate"
	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// Result holds everything pulled out of one component module: the
// pre-closure interface model, the full composite type table the closure
// filters, and the custom-type names the signatures touched.
type Result struct {
	Module    string
	WorldName string

	// Interface carries the signatures in declaration order. Types is left
	// empty until the dependency closure fills it.
	Interface wit.InterfaceModel

	// TypeTable maps kebab-case names to every top-level record and variant
	// declared in the module, used or not.
	TypeTable map[string]wit.CompositeTypeDef

	// Used records the custom types referenced by signatures, in first-use
	// order. It seeds the closure.
	Used *translate.UsedSet
}

// MissingWorldError reports a module without an entry-point declaration or
// without its wit_world argument. The module is skipped, not fatal to the
// run.
type MissingWorldError struct {
	Module string
	Detail string
}

func (e *MissingWorldError) Error() string {
	return fmt.Sprintf("module %s: missing world declaration: %s", e.Module, e.Detail)
}
