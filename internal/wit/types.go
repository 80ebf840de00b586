package wit

// Capability marks which invocation surface exposes a method.
type Capability string

const (
	CapRemote Capability = "remote"
	CapLocal  Capability = "local"
	CapHTTP   Capability = "http"
)

// CapabilityOrder is the fixed emission order for capability comment lines.
var CapabilityOrder = []Capability{CapRemote, CapLocal, CapHTTP}

// TypeExpr is the closed set of type expressions the WIT subset supports.
type TypeExpr interface {
	isTypeExpr()
}

// PrimitiveKind names a WIT primitive. The values are the literal WIT
// spellings so rendering is a direct cast.
type PrimitiveKind string

const (
	S32     PrimitiveKind = "s32"
	U32     PrimitiveKind = "u32"
	S64     PrimitiveKind = "s64"
	U64     PrimitiveKind = "u64"
	F32     PrimitiveKind = "f32"
	F64     PrimitiveKind = "f64"
	Text    PrimitiveKind = "string"
	Bool    PrimitiveKind = "bool"
	Unit    PrimitiveKind = "unit"
	Address PrimitiveKind = "address"
)

// Primitive is a WIT primitive type.
type Primitive struct {
	Kind PrimitiveKind
}

func (Primitive) isTypeExpr() {}

// List is list<Elem>.
type List struct {
	Elem TypeExpr
}

func (List) isTypeExpr() {}

// Option is option<Elem>.
type Option struct {
	Elem TypeExpr
}

func (Option) isTypeExpr() {}

// Tuple is tuple<Elems...>, an ordered fixed-arity grouping.
type Tuple struct {
	Elems []TypeExpr
}

func (Tuple) isTypeExpr() {}

// Result is result<OK, Err>.
type Result struct {
	OK  TypeExpr
	Err TypeExpr
}

func (Result) isTypeExpr() {}

// Named references a composite type definition by its kebab-case name.
// Resolution happens only through the enclosing InterfaceModel's type table,
// never by structural equality.
type Named struct {
	Name string
}

func (Named) isTypeExpr() {}

// Field is one record field.
type Field struct {
	Name string
	Type TypeExpr
}

// Case is one variant case. Payload is nil for payloadless cases.
type Case struct {
	Name    string
	Payload TypeExpr
}

// CompositeTypeDef is a named record or variant definition. Field and case
// order is preserved exactly as declared.
type CompositeTypeDef interface {
	isComposite()
	TypeName() string
	// References returns the kebab-case names of every Named type the
	// definition mentions, in first-mention order, without duplicates.
	References() []string
}

// Record is a named product type.
type Record struct {
	Name   string
	Fields []Field
}

func (Record) isComposite() {}

// TypeName returns the record's kebab-case name.
func (r Record) TypeName() string { return r.Name }

// Variant is a named sum type.
type Variant struct {
	Name  string
	Cases []Case
}

func (Variant) isComposite() {}

// TypeName returns the variant's kebab-case name.
func (v Variant) TypeName() string { return v.Name }

// Param is one declared method parameter. The synthetic leading target
// parameter is never part of Params.
type Param struct {
	Name string
	Type TypeExpr
}

// MethodSignature is one exposed method. Capabilities is non-empty and
// ordered per CapabilityOrder.
type MethodSignature struct {
	Name         string
	Capabilities []Capability
	Params       []Param
	Return       TypeExpr
}

// InterfaceModel is the structural model of one interface: signatures in
// declaration order and the composite types they reach, in closure-discovery
// order.
type InterfaceModel struct {
	Name       string
	Signatures []MethodSignature
	Types      []CompositeTypeDef
}

// WorldModel is a named aggregation of interfaces.
type WorldModel struct {
	Name    string
	Imports []string
}
