package interp

import (
	"github.com/flscript/fl/internal/ast"
	"github.com/flscript/fl/internal/env"
	"github.com/flscript/fl/internal/value"
)

// execStmt evaluates one statement and reports how it finished: normal
// completion, or a signal bound for an enclosing loop or function call.
func (it *Interp) execStmt(stmt ast.Stmt) (signal, error) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		v, err := it.evalExpr(s.Expr)
		if err != nil {
			return normalSignal, err
		}
		if err := it.Env.DeclareVar(s.Name, v); err != nil {
			return normalSignal, nameErr(s.Pos(), "%s", err)
		}
		return normalSignal, nil

	case *ast.ConstDecl:
		v, err := it.evalExpr(s.Expr)
		if err != nil {
			return normalSignal, err
		}
		if err := it.Env.DeclareConst(s.Name, v); err != nil {
			return normalSignal, nameErr(s.Pos(), "%s", err)
		}
		return normalSignal, nil

	case *ast.ExprStmt:
		_, err := it.evalExpr(s.Expr)
		return normalSignal, err

	case *ast.BlockStmt:
		return it.execBlock(s)

	case *ast.IfStmt:
		cond, err := it.evalExpr(s.Cond)
		if err != nil {
			return normalSignal, err
		}
		if value.Truthy(cond) {
			return it.execStmt(s.Then)
		}
		if s.Else != nil {
			return it.execStmt(s.Else)
		}
		return normalSignal, nil

	case *ast.WhileStmt:
		return it.execWhile(s)

	case *ast.ForStmt:
		return it.execFor(s)

	case *ast.BreakStmt:
		return signal{kind: sigBreak}, nil

	case *ast.ContinueStmt:
		return signal{kind: sigContinue}, nil

	case *ast.ReturnStmt:
		if s.Value == nil {
			return signal{kind: sigReturn, val: value.Null{}}, nil
		}
		v, err := it.evalExpr(s.Value)
		if err != nil {
			return normalSignal, err
		}
		return signal{kind: sigReturn, val: v}, nil

	case *ast.FuncDecl:
		if it.Natives != nil && it.Natives.IsNative(s.Name) {
			return normalSignal, nameErr(s.NamePos, "cannot declare function %q: a native function of that name already exists", s.Name)
		}
		if err := it.Env.DeclareFunc(s.Name, env.FuncInfo{Decl: s}); err != nil {
			return normalSignal, nameErr(s.NamePos, "%s", err)
		}
		return normalSignal, nil

	case *ast.StructDecl:
		if err := it.Env.DeclareStruct(s.Name, env.StructInfo{Fields: s.Fields, Pos: s.NamePos}); err != nil {
			return normalSignal, nameErr(s.NamePos, "%s", err)
		}
		return normalSignal, nil

	case *ast.EnumDecl:
		return normalSignal, it.execEnumDecl(s)

	case *ast.GrabStmt:
		if it.Loader == nil {
			return normalSignal, &Error{Pos: s.Pos(), Kind: "ImportError", Message: "grab: no module loader configured"}
		}
		if err := it.Loader.Grab(s.Path, s.Pos()); err != nil {
			return normalSignal, err
		}
		return normalSignal, nil

	default:
		return normalSignal, typeErr(stmt.Pos(), "unsupported statement type %T", stmt)
	}
}

// execBlock evaluates a block's statements in a fresh innermost scope,
// popped on every exit path including an early signal or error.
func (it *Interp) execBlock(b *ast.BlockStmt) (signal, error) {
	it.Env.PushScope()
	defer it.Env.PopScope()

	for _, stmt := range b.Stmts {
		sig, err := it.execStmt(stmt)
		if err != nil || sig.kind != sigNormal {
			return sig, err
		}
	}
	return normalSignal, nil
}

func (it *Interp) execWhile(s *ast.WhileStmt) (signal, error) {
	for {
		cond, err := it.evalExpr(s.Cond)
		if err != nil {
			return normalSignal, err
		}
		if !value.Truthy(cond) {
			return normalSignal, nil
		}
		sig, err := it.execStmt(s.Body)
		if err != nil {
			return normalSignal, err
		}
		switch sig.kind {
		case sigBreak:
			return normalSignal, nil
		case sigReturn:
			return sig, nil
		}
		// sigNormal and sigContinue both fall through to re-check Cond.
	}
}

func (it *Interp) execFor(s *ast.ForStmt) (signal, error) {
	it.Env.PushScope()
	defer it.Env.PopScope()

	if s.Init != nil {
		if _, err := it.execStmt(s.Init); err != nil {
			return normalSignal, err
		}
	}
	for {
		if s.Cond != nil {
			cond, err := it.evalExpr(s.Cond)
			if err != nil {
				return normalSignal, err
			}
			if !value.Truthy(cond) {
				return normalSignal, nil
			}
		}
		sig, err := it.execStmt(s.Body)
		if err != nil {
			return normalSignal, err
		}
		switch sig.kind {
		case sigBreak:
			return normalSignal, nil
		case sigReturn:
			return sig, nil
		}
		if s.Step != nil {
			if _, err := it.evalExpr(s.Step); err != nil {
				return normalSignal, err
			}
		}
	}
}

// execEnumDecl assigns each variant's integer value left to right: a
// variant without an explicit value is the previous variant's value
// plus one, and the first variant defaults to 0.
func (it *Interp) execEnumDecl(s *ast.EnumDecl) error {
	variants := make(map[string]int64, len(s.Variants))
	order := make([]string, len(s.Variants))
	var next int64
	for i, v := range s.Variants {
		val := next
		if v.HasValue {
			val = v.Value
		}
		variants[v.Name] = val
		order[i] = v.Name
		next = val + 1
	}
	if err := it.Env.DeclareEnum(s.Name, env.EnumInfo{Variants: variants, Order: order, Pos: s.NamePos}); err != nil {
		return nameErr(s.NamePos, "%s", err)
	}
	return nil
}
