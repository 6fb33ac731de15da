// Package interp is FL's tree-walking evaluator: it executes a parsed
// *ast.Program against an *env.Env, dispatching calls to user functions
// or the native registry and threading grab statements out to whatever
// Grabber the embedder wires in (see internal/module).
//
// Non-local control flow (omeo/miala/andana) is modeled the way the
// teacher's VM models next/nextfile/break/return: as an explicit signal
// value returned alongside the usual Go error, rather than recovered
// panics. Runtime errors use Go's ordinary error return instead of a
// second sentinel-error channel, since a tree walker (unlike the
// teacher's opcode loop) already returns up through real Go call frames.
package interp

import "github.com/flscript/fl/internal/value"

// sigKind tags the kind of non-local exit a statement produced.
type sigKind int

const (
	sigNormal sigKind = iota
	sigBreak
	sigContinue
	sigReturn
)

// signal reports how a statement finished: normal completion, a break
// or continue bound for the innermost loop, or a return carrying its
// value up to the enclosing function call.
type signal struct {
	kind sigKind
	val  value.Value
}

var normalSignal = signal{kind: sigNormal}
