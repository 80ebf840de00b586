// Package closure computes the minimal transitive set of composite type
// definitions reachable from a signature set. References are recorded
// structurally on each definition while it is built, so the closure never
// re-derives them from rendered text.
package closure

import (
	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

// Compute expands a seed of used type names over the full type table and
// returns the retained definitions in discovery order. A used name absent
// from the table is dropped silently — it is a primitive or a
// foreign-resolved type, not an error.
//
// Termination: the visited set grows monotonically and is bounded by the
// seed plus the table keys.
func Compute(seed []string, table map[string]wit.CompositeTypeDef) []wit.CompositeTypeDef {
	var out []wit.CompositeTypeDef
	visited := make(map[string]bool)

	work := make([]string, len(seed))
	copy(work, seed)

	for len(work) > 0 {
		name := work[0]
		work = work[1:]
		if visited[name] {
			continue
		}
		visited[name] = true

		def, ok := table[name]
		if !ok {
			continue
		}
		out = append(out, def)
		work = append(work, def.References()...)
	}
	return out
}

// Apply fills a model's type set with the closure of its signatures over
// table, seeded by the used set recorded during translation.
func Apply(model *wit.InterfaceModel, seed []string, table map[string]wit.CompositeTypeDef) {
	model.Types = Compute(seed, table)
}
