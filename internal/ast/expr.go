package ast

import "github.com/flscript/fl/internal/token"

// -----------------------------------------------------------------------------
// Literals
// -----------------------------------------------------------------------------

// IntLit is a 64-bit signed integer literal: 42, 0x1F, 0b101, 0o17.
type IntLit struct {
	BaseExpr
	Value int64
}

// FloatLit is a 64-bit floating point literal: 3.14, 1e10.
type FloatLit struct {
	BaseExpr
	Value float64
}

// StringLit is a double-quoted string literal with escapes resolved.
type StringLit struct {
	BaseExpr
	Value string
}

// CharLit is a single-quoted one-scalar literal.
type CharLit struct {
	BaseExpr
	Value rune
}

// BoolLit is the literal true or false.
type BoolLit struct {
	BaseExpr
	Value bool
}

// NullLit is the literal NULL.
type NullLit struct {
	BaseExpr
}

// ArrayLit is a bracketed sequence of element expressions: [1, 2, 3].
type ArrayLit struct {
	BaseExpr
	Elems []Expr
}

// -----------------------------------------------------------------------------
// References
// -----------------------------------------------------------------------------

// Ident is a bare identifier used in value position.
type Ident struct {
	BaseExpr
	Name string
}

// FieldInit is one field initializer inside a struct instantiation:
// the `f1: e1` part of `new T { f1: e1, ... }`.
type FieldInit struct {
	Name  string
	Value Expr
	Loc   token.Position
}

// StructLit instantiates a declared struct type: new T { f1: e1, ... }.
// Fields carries initializers in source order; every declared field of
// T must appear exactly once.
type StructLit struct {
	BaseExpr
	Type   string
	Fields []FieldInit
}

// EnumPathExpr resolves a declared enum variant: Enum::Variant.
type EnumPathExpr struct {
	BaseExpr
	Enum    string
	Variant string
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// UnaryExpr is a prefix operator applied to a single operand: -x, !b, ~n.
// Prefix ++/-- are modeled separately as IncDecExpr since they require
// an lvalue operand and a distinct evaluation rule (return the new
// value, not a plain unary transform).
type UnaryExpr struct {
	BaseExpr
	Op   token.Token
	Expr Expr
}

// BinaryExpr is a non-short-circuiting binary operator: arithmetic,
// bitwise, comparison.
type BinaryExpr struct {
	BaseExpr
	Left  Expr
	Op    token.Token
	Right Expr
}

// LogicalExpr is && or ||: Short is always true for these two operators
// and is retained as an explicit field so the evaluator's dispatch
// reads the same way BinaryExpr's does, without special-casing on Op.
type LogicalExpr struct {
	BaseExpr
	Left  Expr
	Op    token.Token
	Right Expr
	Short bool
}

// IncDecExpr is ++ or -- applied to an lvalue, prefix or postfix.
type IncDecExpr struct {
	BaseExpr
	Op     token.Token // INCR or DECR
	Target Expr
	Post   bool
}

// AssignExpr is `target op= value` for op in {=, +=, -=, *=, /=, %=}.
type AssignExpr struct {
	BaseExpr
	Target Expr
	Op     token.Token
	Value  Expr
}

// -----------------------------------------------------------------------------
// Postfix chain
// -----------------------------------------------------------------------------

// CallExpr invokes a named function (native or user-defined) with
// positional arguments evaluated left to right.
type CallExpr struct {
	BaseExpr
	Callee string
	Args   []Expr
}

// IndexExpr subscripts an array or string: recv[index].
type IndexExpr struct {
	BaseExpr
	Recv  Expr
	Index Expr
}

// FieldExpr accesses a struct field: recv.field.
type FieldExpr struct {
	BaseExpr
	Recv  Expr
	Field string
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Expr = (*IntLit)(nil)
	_ Expr = (*FloatLit)(nil)
	_ Expr = (*StringLit)(nil)
	_ Expr = (*CharLit)(nil)
	_ Expr = (*BoolLit)(nil)
	_ Expr = (*NullLit)(nil)
	_ Expr = (*ArrayLit)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*StructLit)(nil)
	_ Expr = (*EnumPathExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*LogicalExpr)(nil)
	_ Expr = (*IncDecExpr)(nil)
	_ Expr = (*AssignExpr)(nil)
	_ Expr = (*CallExpr)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*FieldExpr)(nil)
)
