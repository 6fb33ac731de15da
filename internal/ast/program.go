package ast

import "github.com/flscript/fl/internal/token"

// Program is one parsed compilation unit: the ordered top-level
// statements of a single .fg file, in source order. Top-level
// statements may be any Stmt variant, including further GrabStmts.
type Program struct {
	File  string
	Stmts []Stmt
	Loc   token.Position
}

func (p *Program) Pos() token.Position { return p.Loc }
