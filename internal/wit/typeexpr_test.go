package wit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	cases := []struct {
		expr TypeExpr
		want string
	}{
		{Primitive{Kind: U32}, "u32"},
		{Primitive{Kind: Text}, "string"},
		{Primitive{Kind: Address}, "address"},
		{List{Elem: Primitive{Kind: S64}}, "list<s64>"},
		{Option{Elem: Named{Name: "order-info"}}, "option<order-info>"},
		{Tuple{Elems: []TypeExpr{Primitive{Kind: U32}, Primitive{Kind: Text}}}, "tuple<u32, string>"},
		{Result{OK: Primitive{Kind: Bool}, Err: Primitive{Kind: Text}}, "result<bool, string>"},
		{Named{Name: "status"}, "status"},
		{List{Elem: Option{Elem: List{Elem: Primitive{Kind: F64}}}}, "list<option<list<f64>>>"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Render(tc.expr))
	}
}

func TestParseTypeExpr_RoundTrip(t *testing.T) {
	exprs := []TypeExpr{
		Primitive{Kind: S32},
		Primitive{Kind: U64},
		Primitive{Kind: Unit},
		Primitive{Kind: Address},
		List{Elem: Primitive{Kind: Text}},
		Option{Elem: Primitive{Kind: Bool}},
		Tuple{Elems: []TypeExpr{Primitive{Kind: S32}, Primitive{Kind: F32}, Named{Name: "point"}}},
		Result{OK: List{Elem: Named{Name: "order-info"}}, Err: Primitive{Kind: Text}},
		Option{Elem: Tuple{Elems: []TypeExpr{List{Elem: Primitive{Kind: U32}}, Option{Elem: Primitive{Kind: Text}}}}},
		Named{Name: "order-info"},
	}
	for _, want := range exprs {
		got, err := ParseTypeExpr(Render(want))
		require.NoError(t, err, "parsing %q", Render(want))
		assert.Equal(t, want, got, "round-tripping %q", Render(want))
	}
}

func TestParseTypeExpr_Whitespace(t *testing.T) {
	got, err := ParseTypeExpr("  tuple<u32,string>  ")
	require.NoError(t, err)
	assert.Equal(t, Tuple{Elems: []TypeExpr{Primitive{Kind: U32}, Primitive{Kind: Text}}}, got)
}

func TestParseTypeExpr_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"list<u32",
		"result<u32>",
		"Pascal",
		"snake_case",
		"option<>",
		"tuple<u32, >",
	} {
		_, err := ParseTypeExpr(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestRecordReferences(t *testing.T) {
	rec := Record{
		Name: "order",
		Fields: []Field{
			{Name: "id", Type: Primitive{Kind: Text}},
			{Name: "info", Type: Named{Name: "order-info"}},
			{Name: "lines", Type: List{Elem: Named{Name: "line-item"}}},
			{Name: "backup", Type: Option{Elem: Named{Name: "order-info"}}},
		},
	}
	assert.Equal(t, []string{"order-info", "line-item"}, rec.References())
}

func TestVariantReferences(t *testing.T) {
	v := Variant{
		Name: "event",
		Cases: []Case{
			{Name: "opened"},
			{Name: "updated", Payload: Named{Name: "order-info"}},
			{Name: "batched", Payload: List{Elem: Named{Name: "order-info"}}},
		},
	}
	assert.Equal(t, []string{"order-info"}, v.References())
}

func TestSignatureReferences(t *testing.T) {
	sigs := []MethodSignature{
		{
			Name:   "submit",
			Params: []Param{{Name: "order", Type: Named{Name: "order-info"}}},
			Return: Result{OK: Named{Name: "receipt"}, Err: Primitive{Kind: Text}},
		},
		{
			Name:   "list-all",
			Return: List{Elem: Named{Name: "order-info"}},
		},
	}
	assert.Equal(t, []string{"order-info", "receipt"}, SignatureReferences(sigs))
}
