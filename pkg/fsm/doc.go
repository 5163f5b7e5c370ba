// Package fsm holds the domain model of a machine specification: the three
// symbol alphabets (states, inputs, outputs), guard expressions, transition
// rules and the abstract specification that the parser produces and the
// compiler consumes.
//
// Everything in this package is plain data. Parsing lives in pkg/dsl,
// validation and table building in internal/compiler, and execution in the
// root automata package.
package fsm
