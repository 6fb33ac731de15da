package ast

import "github.com/flscript/fl/internal/token"

// -----------------------------------------------------------------------------
// Declarations
// -----------------------------------------------------------------------------

// VarDecl is `ty name = expr ;`, inserted into the innermost scope.
type VarDecl struct {
	BaseStmt
	Name string
	Expr Expr
}

// ConstDecl is `const NAME = expr ;`. Expr is evaluated once, when the
// declaration runs, and its value is bound as the constant. Neither the
// parser nor the evaluator restricts Expr to a constant expression: any
// expression is accepted, including calls and variable references.
type ConstDecl struct {
	BaseStmt
	Name string
	Expr Expr
}

// -----------------------------------------------------------------------------
// Basic statements
// -----------------------------------------------------------------------------

// ExprStmt is an expression evaluated for its side effect: a bare call,
// an assignment, or a ++/-- used as a statement.
type ExprStmt struct {
	BaseStmt
	Expr Expr
}

// BlockStmt is `{ stmt* }`. Entering it pushes a new lexical scope;
// leaving it (by any path, including Return/Break/Continue/Error) pops
// that scope.
type BlockStmt struct {
	BaseStmt
	Stmts []Stmt
}

// -----------------------------------------------------------------------------
// Control flow
// -----------------------------------------------------------------------------

// IfStmt is `if (cond) then (else else)?`. Else may be another *IfStmt
// for an else-if chain, or a *BlockStmt, or nil.
type IfStmt struct {
	BaseStmt
	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	BaseStmt
	Cond Expr
	Body Stmt
}

// ForStmt is the C-style `for (init cond ; step ;) body` header. Init
// and Step are nil when their slot is empty. The grammar requires a
// trailing `;` after Step before the closing `)` — a deliberate
// surface-syntax quirk this parser reproduces rather than silently
// correcting.
type ForStmt struct {
	BaseStmt
	Init Stmt
	Cond Expr
	Step Expr
	Body Stmt
}

// BreakStmt is `miala ;`: leaves the innermost enclosing loop.
type BreakStmt struct {
	BaseStmt
}

// ContinueStmt is `andana ;`: proceeds to the innermost enclosing
// loop's step/condition re-check.
type ContinueStmt struct {
	BaseStmt
}

// ReturnStmt is `omeo expr? ;`. Value is nil for a bare return, which
// evaluates to Null.
type ReturnStmt struct {
	BaseStmt
	Value Expr
}

// -----------------------------------------------------------------------------
// Top-level declarations
// -----------------------------------------------------------------------------

// FuncDecl is `function NAME ( params ) block`.
type FuncDecl struct {
	BaseStmt
	Name    string
	Params  []string
	Body    *BlockStmt
	NamePos token.Position
}

// StructDecl is `struct NAME { field (, field)* }`. Fields is the
// ordered list of declared field names.
type StructDecl struct {
	BaseStmt
	Name    string
	Fields  []string
	NamePos token.Position
}

// EnumVariant is one `name ( = int )?` entry of an enum declaration.
type EnumVariant struct {
	Name     string
	HasValue bool
	Value    int64
}

// EnumDecl is `enum NAME { variant ( = int )? (, variant ...)* }`.
type EnumDecl struct {
	BaseStmt
	Name     string
	Variants []EnumVariant
	NamePos  token.Position
}

// GrabStmt is `grab "path" ;`.
type GrabStmt struct {
	BaseStmt
	Path string
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Stmt = (*VarDecl)(nil)
	_ Stmt = (*ConstDecl)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*ForStmt)(nil)
	_ Stmt = (*BreakStmt)(nil)
	_ Stmt = (*ContinueStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*FuncDecl)(nil)
	_ Stmt = (*StructDecl)(nil)
	_ Stmt = (*EnumDecl)(nil)
	_ Stmt = (*GrabStmt)(nil)
)
