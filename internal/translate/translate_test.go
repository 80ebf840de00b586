package translate

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaxs-ribs/hyper-bindgen/internal/wit"
)

func mustParseType(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := parser.ParseExpr(src)
	require.NoError(t, err, "parsing %q", src)
	return expr
}

func TestToWIT_Primitives(t *testing.T) {
	cases := []struct {
		src  string
		want wit.PrimitiveKind
	}{
		{"int32", wit.S32},
		{"uint32", wit.U32},
		{"int64", wit.S64},
		{"uint64", wit.U64},
		{"int", wit.S64},
		{"uint", wit.U64},
		{"float32", wit.F32},
		{"float64", wit.F64},
		{"string", wit.Text},
		{"bool", wit.Bool},
		{"Address", wit.Address},
		{"hyperrt.Address", wit.Address},
	}
	for _, tc := range cases {
		got, err := ToWIT(mustParseType(t, tc.src), nil)
		require.NoError(t, err, "translating %q", tc.src)
		assert.Equal(t, wit.Primitive{Kind: tc.want}, got, "translating %q", tc.src)
	}
}

func TestToWIT_Containers(t *testing.T) {
	got, err := ToWIT(mustParseType(t, "[]string"), nil)
	require.NoError(t, err)
	assert.Equal(t, wit.List{Elem: wit.Primitive{Kind: wit.Text}}, got)

	got, err = ToWIT(mustParseType(t, "*uint64"), nil)
	require.NoError(t, err)
	assert.Equal(t, wit.Option{Elem: wit.Primitive{Kind: wit.U64}}, got)

	got, err = ToWIT(mustParseType(t, "[]*OrderInfo"), nil)
	require.NoError(t, err)
	assert.Equal(t, wit.List{Elem: wit.Option{Elem: wit.Named{Name: "order-info"}}}, got)
}

func TestToWIT_ParenUnwraps(t *testing.T) {
	got, err := ToWIT(mustParseType(t, "(OrderInfo)"), nil)
	require.NoError(t, err)
	assert.Equal(t, wit.Named{Name: "order-info"}, got)
}

func TestToWIT_CustomTypesRecorded(t *testing.T) {
	used := NewUsedSet()

	_, err := ToWIT(mustParseType(t, "OrderInfo"), used)
	require.NoError(t, err)
	_, err = ToWIT(mustParseType(t, "[]LineItem"), used)
	require.NoError(t, err)
	_, err = ToWIT(mustParseType(t, "OrderInfo"), used)
	require.NoError(t, err)

	assert.Equal(t, []string{"order-info", "line-item"}, used.Names())
}

func TestToWIT_UnknownShapes(t *testing.T) {
	for _, src := range []string{"map[string]int", "chan int", "func()", "interface{}", "[4]byte"} {
		got, err := ToWIT(mustParseType(t, src), nil)
		require.Error(t, err, "translating %q", src)

		var unrec *UnrecognizedShapeError
		require.ErrorAs(t, err, &unrec, "translating %q", src)
		assert.Equal(t, wit.Named{Name: UnknownTypeName}, got, "translating %q", src)
	}
}

func parseResults(t *testing.T, results string) *ast.FieldList {
	t.Helper()
	src := "package p\nfunc f() " + results + " {}"
	f, err := parser.ParseFile(token.NewFileSet(), "f.go", src, 0)
	require.NoError(t, err)
	return f.Decls[0].(*ast.FuncDecl).Type.Results
}

func TestReturnToWIT(t *testing.T) {
	got, err := ReturnToWIT(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, wit.Primitive{Kind: wit.Unit}, got, "no results is unit")

	got, err = ReturnToWIT(parseResults(t, "uint32"), nil)
	require.NoError(t, err)
	assert.Equal(t, wit.Primitive{Kind: wit.U32}, got)

	got, err = ReturnToWIT(parseResults(t, "error"), nil)
	require.NoError(t, err)
	assert.Equal(t, wit.Primitive{Kind: wit.Unit}, got, "lone error result is unit")

	got, err = ReturnToWIT(parseResults(t, "(uint32, error)"), nil)
	require.NoError(t, err)
	assert.Equal(t, wit.Primitive{Kind: wit.U32}, got, "trailing error is dropped")

	got, err = ReturnToWIT(parseResults(t, "(uint32, string, error)"), nil)
	require.NoError(t, err)
	assert.Equal(t, wit.Tuple{Elems: []wit.TypeExpr{
		wit.Primitive{Kind: wit.U32},
		wit.Primitive{Kind: wit.Text},
	}}, got, "multiple results form a tuple")
}

func TestToHost(t *testing.T) {
	cases := []struct {
		expr wit.TypeExpr
		want string
	}{
		{wit.Primitive{Kind: wit.S32}, "int32"},
		{wit.Primitive{Kind: wit.Text}, "string"},
		{wit.Primitive{Kind: wit.Unit}, "struct{}"},
		{wit.Primitive{Kind: wit.Address}, "hyperrt.Address"},
		{wit.List{Elem: wit.Primitive{Kind: wit.U64}}, "[]uint64"},
		{wit.Option{Elem: wit.Named{Name: "order-info"}}, "*OrderInfo"},
		{wit.Tuple{Elems: []wit.TypeExpr{wit.Primitive{Kind: wit.U32}, wit.Primitive{Kind: wit.Text}}}, "hyperrt.Tuple2[uint32, string]"},
		{wit.Named{Name: "order-info"}, "OrderInfo"},
		{wit.Named{Name: UnknownTypeName}, "any"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToHost(tc.expr))
	}
}

func TestDefaultValue(t *testing.T) {
	cases := []struct {
		expr wit.TypeExpr
		want string
	}{
		{wit.Primitive{Kind: wit.U32}, "0"},
		{wit.Primitive{Kind: wit.Text}, `""`},
		{wit.Primitive{Kind: wit.Bool}, "false"},
		{wit.Primitive{Kind: wit.Unit}, "struct{}{}"},
		{wit.Primitive{Kind: wit.Address}, "hyperrt.Address{}"},
		{wit.List{Elem: wit.Primitive{Kind: wit.Text}}, "nil"},
		{wit.Option{Elem: wit.Named{Name: "order-info"}}, "nil"},
		{wit.Named{Name: "order-info"}, "OrderInfo{}"},
		{
			wit.Tuple{Elems: []wit.TypeExpr{wit.Primitive{Kind: wit.U32}, wit.Primitive{Kind: wit.Text}}},
			`hyperrt.Tuple2[uint32, string]{A: 0, B: ""}`,
		},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DefaultValue(tc.expr))
	}
}

// DefaultValue must terminate with a syntactically plausible literal for
// every constructible shape, including deep nesting.
func TestDefaultValue_Totality(t *testing.T) {
	prims := []wit.TypeExpr{
		wit.Primitive{Kind: wit.S32},
		wit.Primitive{Kind: wit.Text},
		wit.Primitive{Kind: wit.Bool},
		wit.Named{Name: "order-info"},
	}
	var level []wit.TypeExpr
	level = append(level, prims...)
	for depth := 0; depth < 3; depth++ {
		var next []wit.TypeExpr
		for _, inner := range level {
			next = append(next,
				wit.List{Elem: inner},
				wit.Option{Elem: inner},
				wit.Tuple{Elems: []wit.TypeExpr{inner, inner}},
				wit.Result{OK: inner, Err: wit.Primitive{Kind: wit.Text}},
			)
		}
		level = next
		for _, expr := range level {
			assert.NotEmpty(t, DefaultValue(expr))
		}
	}
}

func TestTranslationIsDeterministic(t *testing.T) {
	expr := mustParseType(t, "[]*OrderInfo")
	first, err1 := ToWIT(expr, nil)
	second, err2 := ToWIT(expr, nil)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}
