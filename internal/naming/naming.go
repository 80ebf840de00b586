// Package naming canonicalizes identifiers between the three case
// conventions the generator deals in: kebab-case (WIT), snake_case
// (generated file and module names) and PascalCase (Go identifiers and
// request tags). It also enforces the reserved-identifier rules that guard
// the target runtime's namespace.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// ToKebab converts an identifier in snake_case, PascalCase, camelCase or
// kebab-case to kebab-case. A maximal uppercase run followed by a lowercase
// letter splits before its last letter, so acronyms segment the way they
// read: HTMLParser -> html-parser, parseURL -> parse-url.
func ToKebab(ident string) string {
	var words []string
	var cur strings.Builder
	runes := []rune(ident)

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}

	for i, r := range runes {
		switch {
		case r == '_' || r == '-':
			flush()
		case unicode.IsUpper(r):
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1]) && runes[i-1] != '_' && runes[i-1] != '-'
			acronymEnd := i > 0 && unicode.IsUpper(runes[i-1]) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || acronymEnd {
				flush()
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return strings.Join(words, "-")
}

// ToSnake converts a kebab-case identifier to snake_case.
func ToSnake(kebab string) string {
	return strings.ReplaceAll(kebab, "-", "_")
}

// ToPascal converts a kebab-case or snake_case identifier to PascalCase.
func ToPascal(ident string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(ident, func(r rune) bool {
		return r == '-' || r == '_'
	}) {
		b.WriteString(titleCaser.String(word))
	}
	return b.String()
}
