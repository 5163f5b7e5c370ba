// Package dsl parses machine specifications.
//
// The primary format is the textual grammar:
//
//	inputs(Symbol, ...)
//	states(Symbol, ...)
//	outputs(Symbol, ...)
//	transitions(
//	  (FromState[, Input]) -> (ToState[, Output]) [: guard-expr] [= handler],
//	  ...
//	)
//	derive(Trait, ...)
//	generate_structs(bool)
//
// Sections may appear in any order, each is optional and trailing commas
// are tolerated. Guard expressions combine predicate references with !, &&
// and ||; any other expression shape is rejected with an error naming the
// offending line. Syntax errors are collected per transition rather than
// aborting at the first one.
//
// A YAML representation of the same specification is supported through
// LoadYAML, and LoadFile picks the format from the file extension.
package dsl
