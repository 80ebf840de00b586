package naming

import (
	"fmt"
	"strings"
	"unicode"
)

// DeclKind names the declaration site an identifier came from, for
// diagnostics.
type DeclKind string

const (
	KindStruct      DeclKind = "struct"
	KindEnum        DeclKind = "enum"
	KindVariantCase DeclKind = "variant case"
	KindField       DeclKind = "field"
	KindFunction    DeclKind = "function"
	KindParameter   DeclKind = "parameter"
)

// Violation reports an identifier that collides with reserved namespace
// segments in the target runtime. It aborts generation for the offending
// declaration.
type Violation struct {
	Kind   DeclKind
	Ident  string
	Reason string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("naming violation: %s %q %s", v.Kind, v.Ident, v.Reason)
}

// Validate rejects identifiers containing a decimal digit or the
// case-insensitive substring "stream". Both collide with reserved namespace
// segments in the target runtime, so this is a correctness gate rather than
// a style check.
func Validate(kind DeclKind, ident string) error {
	for _, r := range ident {
		if unicode.IsDigit(r) {
			return &Violation{Kind: kind, Ident: ident, Reason: "contains a digit"}
		}
	}
	if strings.Contains(strings.ToLower(ident), "stream") {
		return &Violation{Kind: kind, Ident: ident, Reason: `contains reserved word "stream"`}
	}
	return nil
}
