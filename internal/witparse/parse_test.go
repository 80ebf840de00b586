package witparse

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
	"github.com/jaxs-ribs/hyper-bindgen/internal/witgen"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const counterWIT = `interface counter {
    record order-info {
        id: string,
        items: list<line-item>,
    }

    variant status {
        active,
        retired,
        moved(string),
    }

    //remote
    get-count: func(target: address) -> result<u32, string>;

    //remote
    //local
    add: func(target: address, amount: u64) -> result<u64, string>;
}
`

func TestParseInterface(t *testing.T) {
	model, err := ParseInterface(counterWIT, discard())
	require.NoError(t, err)

	assert.Equal(t, "counter", model.Name)

	require.Len(t, model.Types, 2)
	rec := model.Types[0].(wit.Record)
	assert.Equal(t, "order-info", rec.Name)
	assert.Equal(t, []wit.Field{
		{Name: "id", Type: wit.Primitive{Kind: wit.Text}},
		{Name: "items", Type: wit.List{Elem: wit.Named{Name: "line-item"}}},
	}, rec.Fields)

	v := model.Types[1].(wit.Variant)
	assert.Equal(t, "status", v.Name)
	assert.Equal(t, []wit.Case{
		{Name: "active"},
		{Name: "retired"},
		{Name: "moved", Payload: wit.Primitive{Kind: wit.Text}},
	}, v.Cases)

	require.Len(t, model.Signatures, 2)

	sig := model.Signatures[0]
	assert.Equal(t, "get-count", sig.Name)
	assert.Equal(t, []wit.Capability{wit.CapRemote}, sig.Capabilities)
	assert.Empty(t, sig.Params, "the synthetic target parameter never counts")
	assert.Equal(t, wit.Primitive{Kind: wit.U32}, sig.Return, "the result wrapper is unwrapped")

	sig = model.Signatures[1]
	assert.Equal(t, "add", sig.Name)
	assert.Equal(t, []wit.Capability{wit.CapRemote, wit.CapLocal}, sig.Capabilities)
	assert.Equal(t, []wit.Param{{Name: "amount", Type: wit.Primitive{Kind: wit.U64}}}, sig.Params)
}

func TestParseInterface_NoHeader(t *testing.T) {
	_, err := ParseInterface("record stray {\n}\n", discard())
	assert.Error(t, err)
}

func TestParseInterface_MalformedSignatureSkipped(t *testing.T) {
	text := `interface broken {
    //remote
    get-count: func(target: address -> u32;
    //local
    ping: func(target: address) -> result<unit, string>;
}
`
	model, err := ParseInterface(text, discard())
	require.NoError(t, err)
	require.Len(t, model.Signatures, 1)
	assert.Equal(t, "ping", model.Signatures[0].Name)
	assert.Equal(t, []wit.Capability{wit.CapLocal}, model.Signatures[0].Capabilities,
		"tags pending for a skipped line do not leak into the next signature")
}

func TestParseInterface_BlockResetsPendingTags(t *testing.T) {
	text := `interface reset {
    //remote
    record point {
        x: s32,
    }
    ping: func(target: address) -> result<unit, string>;
}
`
	model, err := ParseInterface(text, discard())
	require.NoError(t, err)
	require.Len(t, model.Signatures, 1)
	assert.Empty(t, model.Signatures[0].Capabilities)
}

func TestParseSignature_StructuralMismatch(t *testing.T) {
	for _, line := range []string{
		"get-count func(target: address) -> result<u32, string>;",
		"get-count: func(target: address) result<u32, string>;",
		"get-count: func(target: address -> result<u32, string>;",
		"get-count: func(target: address, amount) -> result<u32, string>;",
	} {
		_, err := parseSignature(line)
		var mismatch *StructuralMismatchError
		require.ErrorAs(t, err, &mismatch, "line %q", line)
	}
}

func TestParseSignature_NonStringErrorArmKept(t *testing.T) {
	sig, err := parseSignature("fetch: func(target: address) -> result<u32, u32>;")
	require.NoError(t, err)
	assert.Equal(t,
		wit.Result{OK: wit.Primitive{Kind: wit.U32}, Err: wit.Primitive{Kind: wit.U32}},
		sig.Return,
		"only the string-error wrapper is unwrapped")
}

func TestParseWorld(t *testing.T) {
	w, found := ParseWorld("world demo-v0 {\n    import counter;\n    import ledger;\n    include process-v1;\n}\n")
	require.True(t, found)
	assert.Equal(t, "demo-v0", w.Name)
	assert.Equal(t, []string{"counter", "ledger"}, w.Imports)

	w, found = ParseWorld("world counter-api {\n    export counter;\n}\n")
	require.True(t, found)
	assert.Equal(t, "counter-api", w.Name)
	assert.Empty(t, w.Imports)

	_, found = ParseWorld("interface counter {\n}\n")
	assert.False(t, found)
}

// The emitter and the parser are independent code paths sharing only the
// type-expression grammar. Round-tripping pins them together.
func TestRoundTrip(t *testing.T) {
	returns := []wit.TypeExpr{
		wit.Primitive{Kind: wit.Unit},
		wit.Primitive{Kind: wit.U32},
		wit.Primitive{Kind: wit.Text},
		wit.List{Elem: wit.Primitive{Kind: wit.Bool}},
		wit.Option{Elem: wit.Named{Name: "order-info"}},
		wit.Tuple{Elems: []wit.TypeExpr{wit.Primitive{Kind: wit.U32}, wit.Primitive{Kind: wit.Text}}},
		wit.Named{Name: "order-info"},
	}
	paramSets := [][]wit.Param{
		nil,
		{{Name: "amount", Type: wit.Primitive{Kind: wit.U64}}},
		{
			{Name: "items", Type: wit.List{Elem: wit.Named{Name: "line-item"}}},
			{Name: "note", Type: wit.Option{Elem: wit.Primitive{Kind: wit.Text}}},
		},
	}
	capSets := [][]wit.Capability{
		nil,
		{wit.CapRemote},
		{wit.CapRemote, wit.CapLocal, wit.CapHTTP},
	}

	var sigs []wit.MethodSignature
	n := 0
	for _, ret := range returns {
		sigs = append(sigs, wit.MethodSignature{
			Name:         "op-" + string(rune('a'+n)),
			Capabilities: capSets[n%len(capSets)],
			Params:       paramSets[n%len(paramSets)],
			Return:       ret,
		})
		n++
	}

	want := wit.InterfaceModel{
		Name:       "round-trip",
		Signatures: sigs,
		Types: []wit.CompositeTypeDef{
			wit.Record{
				Name: "order-info",
				Fields: []wit.Field{
					{Name: "id", Type: wit.Primitive{Kind: wit.Text}},
					{Name: "lines", Type: wit.List{Elem: wit.Named{Name: "line-item"}}},
				},
			},
			wit.Variant{
				Name: "status",
				Cases: []wit.Case{
					{Name: "active"},
					{Name: "moved", Payload: wit.Named{Name: "order-info"}},
				},
			},
		},
	}

	got, err := ParseInterface(witgen.EmitInterface(want), discard())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
