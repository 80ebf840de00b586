package closure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

func table() map[string]wit.CompositeTypeDef {
	return map[string]wit.CompositeTypeDef{
		"order": wit.Record{
			Name: "order",
			Fields: []wit.Field{
				{Name: "id", Type: wit.Primitive{Kind: wit.Text}},
				{Name: "items", Type: wit.List{Elem: wit.Named{Name: "line-item"}}},
				{Name: "status", Type: wit.Named{Name: "status"}},
			},
		},
		"line-item": wit.Record{
			Name: "line-item",
			Fields: []wit.Field{
				{Name: "sku", Type: wit.Primitive{Kind: wit.Text}},
			},
		},
		"status": wit.Variant{
			Name:  "status",
			Cases: []wit.Case{{Name: "active"}, {Name: "retired"}},
		},
		"unreferenced": wit.Record{
			Name: "unreferenced",
			Fields: []wit.Field{
				{Name: "x", Type: wit.Primitive{Kind: wit.U32}},
			},
		},
	}
}

func names(defs []wit.CompositeTypeDef) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.TypeName()
	}
	return out
}

func TestCompute_TransitiveReach(t *testing.T) {
	got := Compute([]string{"order"}, table())
	assert.Equal(t, []string{"order", "line-item", "status"}, names(got))
}

func TestCompute_UnreferencedExcluded(t *testing.T) {
	got := Compute([]string{"line-item"}, table())
	assert.Equal(t, []string{"line-item"}, names(got))
}

func TestCompute_UnresolvedSeedDropped(t *testing.T) {
	got := Compute([]string{"no-such-type", "status"}, table())
	assert.Equal(t, []string{"status"}, names(got))
}

func TestCompute_EmptySeed(t *testing.T) {
	assert.Empty(t, Compute(nil, table()))
}

func TestCompute_CycleTerminates(t *testing.T) {
	cyclic := map[string]wit.CompositeTypeDef{
		"a": wit.Record{Name: "a", Fields: []wit.Field{
			{Name: "next", Type: wit.Option{Elem: wit.Named{Name: "b"}}},
		}},
		"b": wit.Record{Name: "b", Fields: []wit.Field{
			{Name: "back", Type: wit.Option{Elem: wit.Named{Name: "a"}}},
		}},
	}
	got := Compute([]string{"a"}, cyclic)
	assert.Equal(t, []string{"a", "b"}, names(got))
}

func TestCompute_DiscoveryOrderFollowsSeed(t *testing.T) {
	got := Compute([]string{"status", "order"}, table())
	assert.Equal(t, []string{"status", "order", "line-item"}, names(got))
}

// Every name referenced by a retained definition is either retained itself
// or absent from the table entirely (a foreign type, dropped by design).
func TestCompute_NoDanglingReferences(t *testing.T) {
	tbl := table()
	got := Compute([]string{"order"}, tbl)

	retained := make(map[string]bool)
	for _, d := range got {
		retained[d.TypeName()] = true
	}
	for _, d := range got {
		for _, ref := range d.References() {
			if _, inTable := tbl[ref]; inTable {
				assert.True(t, retained[ref], "%s references %s, which was not retained", d.TypeName(), ref)
			}
		}
	}
}

func TestApply(t *testing.T) {
	model := wit.InterfaceModel{Name: "shop"}
	Apply(&model, []string{"order"}, table())
	require.Len(t, model.Types, 3)
	assert.Equal(t, "order", model.Types[0].TypeName())
}
