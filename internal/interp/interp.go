package interp

import (
	"github.com/flscript/fl/internal/ast"
	"github.com/flscript/fl/internal/env"
	"github.com/flscript/fl/internal/natives"
	"github.com/flscript/fl/internal/token"
	"github.com/flscript/fl/internal/value"
)

// Grabber resolves and runs an imported file on behalf of a grab
// statement. internal/module implements this against the same Interp
// that calls it, so grabbed files share the one global environment
// spec.md requires. pos is the grab statement's own location, which
// already names the importing file (the lexer stamps every token with
// the file it actually scanned), so Grabber needs no separate
// "current file" notion to resolve a relative path.
type Grabber interface {
	Grab(path string, pos token.Position) error
}

// Interp evaluates a parsed program against one Env, dispatching calls
// to user functions declared along the way or to the native registry.
type Interp struct {
	Env     *env.Env
	Natives *natives.Registry
	Loader  Grabber
}

// New creates an Interp with a fresh global environment. Natives must
// be supplied; Loader may be nil until internal/module wires itself in
// (a program with no grab statements never needs one).
func New(natives *natives.Registry) *Interp {
	return &Interp{Env: env.New(), Natives: natives}
}

// RunProgram evaluates prog's top-level statements in order. It is the
// entry point for both the initial file (see root package fl) and
// every file a grab statement pulls in (see internal/module), since
// both cases share this Interp's single Env.
func (it *Interp) RunProgram(prog *ast.Program) error {
	for _, stmt := range prog.Stmts {
		sig, err := it.execStmt(stmt)
		if err != nil {
			return err
		}
		switch sig.kind {
		case sigBreak:
			return nameErr(stmt.Pos(), "miala used outside a loop")
		case sigContinue:
			return nameErr(stmt.Pos(), "andana used outside a loop")
		case sigReturn:
			return nameErr(stmt.Pos(), "omeo used outside a function")
		}
	}
	return nil
}

// callFunction invokes a declared user function with already-evaluated
// arguments: arity is checked, a fresh frame rooted only at globals is
// pushed (functions do not close over the caller's locals), parameters
// are bound positionally, the body runs, and a Return signal supplies
// the result — falling off the end yields Null.
func (it *Interp) callFunction(fi env.FuncInfo, args []value.Value, callPos token.Position) (value.Value, error) {
	decl := fi.Decl
	if len(args) != len(decl.Params) {
		return nil, arityErr(callPos, "%s: expected %d argument(s), got %d", decl.Name, len(decl.Params), len(args))
	}

	restore := it.Env.PushFunctionFrame()
	defer restore()

	for i, p := range decl.Params {
		if err := it.Env.DeclareVar(p, args[i]); err != nil {
			return nil, nameErr(decl.NamePos, "%s: %s", decl.Name, err)
		}
	}

	sig, err := it.execStmt(decl.Body)
	if err != nil {
		return nil, err
	}
	if sig.kind == sigReturn {
		return sig.val, nil
	}
	return value.Null{}, nil
}
