package interp

import (
	"github.com/flscript/fl/internal/ast"
	"github.com/flscript/fl/internal/token"
	"github.com/flscript/fl/internal/value"
)

// evalExpr evaluates e to a Value, or returns the runtime error its
// evaluation raised.
func (it *Interp) evalExpr(e ast.Expr) (value.Value, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return value.Int(n.Value), nil
	case *ast.FloatLit:
		return value.Float(n.Value), nil
	case *ast.StringLit:
		return value.String(n.Value), nil
	case *ast.CharLit:
		return value.Char(n.Value), nil
	case *ast.BoolLit:
		return value.Bool(n.Value), nil
	case *ast.NullLit:
		return value.Null{}, nil

	case *ast.ArrayLit:
		elems := make([]value.Value, len(n.Elems))
		for i, el := range n.Elems {
			v, err := it.evalExpr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewArray(elems), nil

	case *ast.Ident:
		v, ok := it.Env.Lookup(n.Name)
		if !ok {
			return nil, nameErr(n.Pos(), "undeclared identifier %q", n.Name)
		}
		return v, nil

	case *ast.FieldExpr:
		recv, err := it.evalExpr(n.Recv)
		if err != nil {
			return nil, err
		}
		st, ok := recv.(value.Struct)
		if !ok {
			return nil, typeErr(n.Pos(), "field access on non-struct value of type %s", recv.TypeName())
		}
		v, ok := st.Field(n.Field)
		if !ok {
			return nil, fieldErr(n.Pos(), "%s has no field %q", st.TypeName(), n.Field)
		}
		return v, nil

	case *ast.IndexExpr:
		return it.evalIndex(n)

	case *ast.EnumPathExpr:
		iv, ok := it.Env.LookupEnumVariant(n.Enum, n.Variant)
		if !ok {
			return nil, nameErr(n.Pos(), "%s::%s is not a declared enum variant", n.Enum, n.Variant)
		}
		return value.Enum{EnumName: n.Enum, Variant: n.Variant, IntVal: iv}, nil

	case *ast.StructLit:
		return it.evalStructLit(n)

	case *ast.UnaryExpr:
		return it.evalUnary(n)

	case *ast.BinaryExpr:
		return it.evalBinary(n)

	case *ast.LogicalExpr:
		return it.evalLogical(n)

	case *ast.IncDecExpr:
		return it.evalIncDec(n)

	case *ast.AssignExpr:
		return it.evalAssign(n)

	case *ast.CallExpr:
		return it.evalCall(n)

	default:
		return nil, typeErr(e.Pos(), "unsupported expression type %T", e)
	}
}

func (it *Interp) evalIndex(n *ast.IndexExpr) (value.Value, error) {
	recv, err := it.evalExpr(n.Recv)
	if err != nil {
		return nil, err
	}
	idxVal, err := it.evalExpr(n.Index)
	if err != nil {
		return nil, err
	}
	idx, ok := idxVal.(value.Int)
	if !ok {
		return nil, typeErr(n.Pos(), "index must be an int, got %s", idxVal.TypeName())
	}
	i := int(idx)

	switch recv := recv.(type) {
	case value.Array:
		if i < 0 || i >= recv.Len() {
			return nil, boundsErr(n.Pos(), "array index %d out of range for length %d", i, recv.Len())
		}
		return recv.Get(i), nil
	case value.String:
		runes := []rune(string(recv))
		if i < 0 || i >= len(runes) {
			return nil, boundsErr(n.Pos(), "string index %d out of range for length %d", i, len(runes))
		}
		return value.String(string(runes[i])), nil
	default:
		return nil, typeErr(n.Pos(), "cannot index value of type %s", recv.TypeName())
	}
}

// evalStructLit instantiates a declared struct type: every declared
// field must be initialized exactly once, with no unknown fields.
func (it *Interp) evalStructLit(n *ast.StructLit) (value.Value, error) {
	si, ok := it.Env.LookupStruct(n.Type)
	if !ok {
		return nil, nameErr(n.Pos(), "%q is not a declared struct type", n.Type)
	}

	want := make(map[string]bool, len(si.Fields))
	for _, f := range si.Fields {
		want[f] = true
	}

	fields := make(map[string]value.Value, len(si.Fields))
	for _, fi := range n.Fields {
		if !want[fi.Name] {
			return nil, fieldErr(fi.Loc, "%s has no field %q", n.Type, fi.Name)
		}
		if _, dup := fields[fi.Name]; dup {
			return nil, fieldErr(fi.Loc, "field %q initialized more than once", fi.Name)
		}
		v, err := it.evalExpr(fi.Value)
		if err != nil {
			return nil, err
		}
		fields[fi.Name] = v
	}
	for _, f := range si.Fields {
		if _, ok := fields[f]; !ok {
			return nil, fieldErr(n.Pos(), "missing initializer for field %q of %s", f, n.Type)
		}
	}

	return value.NewStruct(n.Type, si.Fields, fields), nil
}

func (it *Interp) evalUnary(n *ast.UnaryExpr) (value.Value, error) {
	v, err := it.evalExpr(n.Expr)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.MINUS:
		r, err := value.Negate(v)
		if err != nil {
			return nil, typeErr(n.Pos(), "%s", err)
		}
		return r, nil
	case token.BANG:
		return value.Not(v), nil
	case token.TILDE:
		r, err := value.BitNot(v)
		if err != nil {
			return nil, typeErr(n.Pos(), "%s", err)
		}
		return r, nil
	default:
		return nil, typeErr(n.Pos(), "unsupported unary operator %s", n.Op)
	}
}

func (it *Interp) evalBinary(n *ast.BinaryExpr) (value.Value, error) {
	left, err := it.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	r, err := value.Apply(n.Op, left, right)
	if err != nil {
		return nil, wrapOpError(n.Pos(), err)
	}
	return r, nil
}

// evalLogical evaluates && / || with short-circuiting: the right
// operand is only evaluated when the left does not already decide the
// result. The operand that decides the result is returned as-is
// (truthy-passthrough), not coerced to Bool.
func (it *Interp) evalLogical(n *ast.LogicalExpr) (value.Value, error) {
	left, err := it.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.AND:
		if !value.Truthy(left) {
			return left, nil
		}
	case token.OR:
		if value.Truthy(left) {
			return left, nil
		}
	default:
		return nil, typeErr(n.Pos(), "unsupported logical operator %s", n.Op)
	}
	return it.evalExpr(n.Right)
}

func (it *Interp) evalIncDec(n *ast.IncDecExpr) (value.Value, error) {
	old, err := it.evalExpr(n.Target)
	if err != nil {
		return nil, err
	}
	oldInt, ok := old.(value.Int)
	if !ok {
		return nil, typeErr(n.Pos(), "++/-- target must be an int, got %s", old.TypeName())
	}
	var next value.Value
	if n.Op == token.INCR {
		next = value.Int(oldInt + 1)
	} else {
		next = value.Int(oldInt - 1)
	}
	if err := it.assignTo(n.Target, next); err != nil {
		return nil, err
	}
	if n.Post {
		return old, nil
	}
	return next, nil
}

// compoundOps maps each `op=` assignment token to the binary operator
// it folds with the target's current value.
var compoundOps = map[token.Token]token.Token{
	token.ADD_ASSIGN: token.PLUS,
	token.SUB_ASSIGN: token.MINUS,
	token.MUL_ASSIGN: token.STAR,
	token.DIV_ASSIGN: token.SLASH,
	token.MOD_ASSIGN: token.PCT,
}

func (it *Interp) evalAssign(n *ast.AssignExpr) (value.Value, error) {
	rhs, err := it.evalExpr(n.Value)
	if err != nil {
		return nil, err
	}

	result := rhs
	if n.Op != token.ASSIGN {
		old, err := it.evalExpr(n.Target)
		if err != nil {
			return nil, err
		}
		binOp, ok := compoundOps[n.Op]
		if !ok {
			return nil, typeErr(n.Pos(), "unsupported assignment operator %s", n.Op)
		}
		result, err = value.Apply(binOp, old, rhs)
		if err != nil {
			return nil, wrapOpError(n.Pos(), err)
		}
	}

	if err := it.assignTo(n.Target, result); err != nil {
		return nil, err
	}
	return result, nil
}

// assignTo stores v through the lvalue target: an identifier, a field
// access, or an array index.
func (it *Interp) assignTo(target ast.Expr, v value.Value) error {
	switch t := target.(type) {
	case *ast.Ident:
		if err := it.Env.Assign(t.Name, v); err != nil {
			return nameErr(t.Pos(), "%s", err)
		}
		return nil

	case *ast.FieldExpr:
		recv, err := it.evalExpr(t.Recv)
		if err != nil {
			return err
		}
		st, ok := recv.(value.Struct)
		if !ok {
			return typeErr(t.Pos(), "field assignment on non-struct value of type %s", recv.TypeName())
		}
		if _, ok := st.Field(t.Field); !ok {
			return fieldErr(t.Pos(), "%s has no field %q", st.TypeName(), t.Field)
		}
		st.SetField(t.Field, v)
		return nil

	case *ast.IndexExpr:
		recv, err := it.evalExpr(t.Recv)
		if err != nil {
			return err
		}
		idxVal, err := it.evalExpr(t.Index)
		if err != nil {
			return err
		}
		idx, ok := idxVal.(value.Int)
		if !ok {
			return typeErr(t.Pos(), "index must be an int, got %s", idxVal.TypeName())
		}
		arr, ok := recv.(value.Array)
		if !ok {
			return typeErr(t.Pos(), "cannot assign into value of type %s", recv.TypeName())
		}
		i := int(idx)
		if i < 0 || i >= arr.Len() {
			return boundsErr(t.Pos(), "array index %d out of range for length %d", i, arr.Len())
		}
		arr.Set(i, v)
		return nil

	default:
		return typeErr(target.Pos(), "invalid assignment target %T", target)
	}
}

func (it *Interp) evalCall(n *ast.CallExpr) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := it.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if fi, ok := it.Env.LookupFunc(n.Callee); ok {
		return it.callFunction(fi, args, n.Pos())
	}
	if it.Natives != nil && it.Natives.IsNative(n.Callee) {
		if err := it.Natives.CheckArity(n.Callee, len(args)); err != nil {
			return nil, arityErr(n.Pos(), "%s", err)
		}
		v, err := it.Natives.Call(n.Callee, args, n.Pos())
		if err != nil {
			return nil, wrapCallError(n.Pos(), err)
		}
		return v, nil
	}
	return nil, nameErr(n.Pos(), "undeclared function %q", n.Callee)
}
