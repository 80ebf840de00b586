// Package wit holds the structural model of the WIT subset the generator
// emits and re-parses: type expressions, composite type definitions, method
// signatures, interfaces and worlds.
//
// This package contains type definitions and the type-expression grammar
// only. All other internal packages import wit; wit imports nothing
// internal. Both pipeline passes build their models from these types but
// never share a model instance — emitted WIT text is the only channel
// between them.
package wit
