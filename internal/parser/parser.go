package parser

import (
	"strconv"

	"github.com/flscript/fl/internal/ast"
	"github.com/flscript/fl/internal/lexer"
	"github.com/flscript/fl/internal/token"
)

// Parser turns a token stream into an *ast.Program. It is not
// reentrant; construct one per parse via Parse.
type Parser struct {
	lex       *lexer.Lexer
	tok       lexer.Token
	lexErr    error // set once the lexer reports a malformed token
	errors    ErrorList
	loopDepth int
}

// Parse parses FL source attributed to file.
func Parse(file, src string) (*ast.Program, error) {
	p := &Parser{lex: lexer.New(file, []byte(src))}
	p.next()
	prog := p.parseProgram(file)

	if p.lexErr != nil {
		return nil, p.lexErr
	}
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseExpr parses a single expression, used by tests exercising the
// precedence table in isolation.
func ParseExpr(src string) (ast.Expr, error) {
	p := &Parser{lex: lexer.New("<expr>", []byte(src))}
	p.next()
	expr := p.parseExpr()
	if p.lexErr != nil {
		return nil, p.lexErr
	}
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return expr, nil
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

func (p *Parser) next() {
	if p.lexErr != nil {
		return
	}
	tok, err := p.lex.Scan()
	if err != nil {
		p.lexErr = err
		p.tok = lexer.Token{Type: token.EOF, Pos: tok.Pos}
		return
	}
	p.tok = tok
}

func (p *Parser) expect(tt token.Token) token.Position {
	pos := p.tok.Pos
	if p.tok.Type != tt {
		p.error(expectedError(p.tok.Pos, tt.String(), p.tokenDesc()))
		return pos
	}
	p.next()
	return pos
}

func (p *Parser) expectName() (string, token.Position) {
	name := p.tok.Value
	pos := p.tok.Pos
	if p.tok.Type != token.IDENT {
		p.error(expectedError(pos, "identifier", p.tokenDesc()))
		return "", pos
	}
	p.next()
	return name, pos
}

func (p *Parser) match(types ...token.Token) bool {
	for _, t := range types {
		if p.tok.Type == t {
			return true
		}
	}
	return false
}

func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.IDENT, token.INT, token.FLOAT, token.STRING, token.CHAR:
		return p.tok.Value
	case token.EOF:
		return "end of file"
	default:
		return p.tok.Type.String()
	}
}

func (p *Parser) error(err *ParseError) { p.errors = append(p.errors, err) }

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.error(errorf(pos, format, args...))
}

// -----------------------------------------------------------------------------
// Program / top-level
// -----------------------------------------------------------------------------

func (p *Parser) parseProgram(file string) *ast.Program {
	startPos := p.tok.Pos
	prog := &ast.Program{File: file, Loc: startPos}
	for p.tok.Type != token.EOF {
		stmt := p.parseTopLevel()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		} else if p.tok.Type != token.EOF {
			// Avoid an infinite loop on unrecoverable garbage.
			p.next()
		}
	}
	return prog
}

func (p *Parser) parseTopLevel() ast.Stmt {
	switch p.tok.Type {
	case token.FUNCTION:
		return p.parseFuncDecl()
	case token.STRUCT:
		return p.parseStructDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.GRAB:
		return p.parseGrabStmt()
	default:
		return p.parseStmt()
	}
}

func (p *Parser) parseFuncDecl() ast.Stmt {
	startPos := p.expect(token.FUNCTION)
	name, namePos := p.expectName()
	p.expect(token.LPAREN)

	var params []string
	seen := make(map[string]bool)
	for p.tok.Type != token.RPAREN && p.tok.Type != token.EOF {
		if len(params) > 0 {
			p.expect(token.COMMA)
		}
		pname, ppos := p.expectName()
		if seen[pname] {
			p.errorf(ppos, "duplicate parameter %q", pname)
		}
		seen[pname] = true
		params = append(params, pname)
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()

	return &ast.FuncDecl{
		BaseStmt: ast.BaseStmt{Loc: startPos},
		Name:     name,
		Params:   params,
		Body:     body,
		NamePos:  namePos,
	}
}

func (p *Parser) parseStructDecl() ast.Stmt {
	startPos := p.expect(token.STRUCT)
	name, namePos := p.expectName()
	p.expect(token.LBRACE)

	var fields []string
	seen := make(map[string]bool)
	for p.tok.Type != token.RBRACE && p.tok.Type != token.EOF {
		if len(fields) > 0 {
			p.expect(token.COMMA)
		}
		fname, fpos := p.expectName()
		if seen[fname] {
			p.errorf(fpos, "duplicate field %q in struct %q", fname, name)
		}
		seen[fname] = true
		fields = append(fields, fname)
	}
	p.expect(token.RBRACE)

	return &ast.StructDecl{
		BaseStmt: ast.BaseStmt{Loc: startPos},
		Name:     name,
		Fields:   fields,
		NamePos:  namePos,
	}
}

func (p *Parser) parseEnumDecl() ast.Stmt {
	startPos := p.expect(token.ENUM)
	name, namePos := p.expectName()
	p.expect(token.LBRACE)

	var variants []ast.EnumVariant
	seen := make(map[string]bool)
	for p.tok.Type != token.RBRACE && p.tok.Type != token.EOF {
		if len(variants) > 0 {
			p.expect(token.COMMA)
		}
		vname, vpos := p.expectName()
		if seen[vname] {
			p.errorf(vpos, "duplicate variant %q in enum %q", vname, name)
		}
		seen[vname] = true
		variant := ast.EnumVariant{Name: vname}
		if p.tok.Type == token.ASSIGN {
			p.next()
			neg := false
			if p.tok.Type == token.MINUS {
				neg = true
				p.next()
			}
			litPos := p.tok.Pos
			if p.tok.Type != token.INT {
				p.error(expectedError(litPos, "integer", p.tokenDesc()))
			} else {
				n, _ := strconv.ParseInt(p.tok.Value, 0, 64)
				if neg {
					n = -n
				}
				variant.HasValue = true
				variant.Value = n
				p.next()
			}
		}
		variants = append(variants, variant)
	}
	p.expect(token.RBRACE)

	return &ast.EnumDecl{
		BaseStmt: ast.BaseStmt{Loc: startPos},
		Name:     name,
		Variants: variants,
		NamePos:  namePos,
	}
}

func (p *Parser) parseGrabStmt() ast.Stmt {
	startPos := p.expect(token.GRAB)
	pathPos := p.tok.Pos
	path := p.tok.Value
	if p.tok.Type != token.STRING {
		p.error(expectedError(pathPos, "string", p.tokenDesc()))
	} else {
		p.next()
	}
	p.expect(token.SEMI)
	return &ast.GrabStmt{BaseStmt: ast.BaseStmt{Loc: startPos}, Path: path}
}

// parseBlock parses `{ stmt* }`.
func (p *Parser) parseBlock() *ast.BlockStmt {
	startPos := p.expect(token.LBRACE)
	var stmts []ast.Stmt
	for p.tok.Type != token.RBRACE && p.tok.Type != token.EOF {
		stmt := p.parseStmt()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return &ast.BlockStmt{BaseStmt: ast.BaseStmt{Loc: startPos}, Stmts: stmts}
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (p *Parser) parseStmt() ast.Stmt {
	switch p.tok.Type {
	case token.TY:
		return p.parseVarDecl()
	case token.CONST:
		return p.parseConstDecl()
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.MIALA:
		return p.parseBreakStmt()
	case token.ANDANA:
		return p.parseContinueStmt()
	case token.OMEO:
		return p.parseReturnStmt()
	case token.GRAB:
		return p.parseGrabStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	startPos := p.expect(token.TY)
	name, _ := p.expectName()
	p.expect(token.ASSIGN)
	expr := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.VarDecl{BaseStmt: ast.BaseStmt{Loc: startPos}, Name: name, Expr: expr}
}

func (p *Parser) parseConstDecl() ast.Stmt {
	startPos := p.expect(token.CONST)
	// true, false and NULL are keyword tokens; they are taken as the name
	// here so that declaring one is rejected by the environment as a
	// NameError rather than reported as a syntax error.
	var name string
	if p.match(token.TRUE, token.FALSE, token.NULLLIT) {
		name = p.tok.Type.String()
		p.next()
	} else {
		name, _ = p.expectName()
	}
	p.expect(token.ASSIGN)
	expr := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.ConstDecl{BaseStmt: ast.BaseStmt{Loc: startPos}, Name: name, Expr: expr}
}

func (p *Parser) parseIfStmt() ast.Stmt {
	startPos := p.expect(token.IF)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseBlock()

	var els ast.Stmt
	if p.tok.Type == token.ELSE {
		p.next()
		if p.tok.Type == token.IF {
			els = p.parseIfStmt()
		} else {
			els = p.parseBlock()
		}
	}
	return &ast.IfStmt{BaseStmt: ast.BaseStmt{Loc: startPos}, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	startPos := p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	p.loopDepth++
	body := p.parseBlock()
	p.loopDepth--
	return &ast.WhileStmt{BaseStmt: ast.BaseStmt{Loc: startPos}, Cond: cond, Body: body}
}

// parseForStmt parses `for ( init-stmt cond-expr ; step-expr ; ) body`.
// The grammar requires a trailing ';' after the step expression before
// the closing ')' — a deliberate quirk reproduced here rather than
// silently accepted as optional.
func (p *Parser) parseForStmt() ast.Stmt {
	startPos := p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init ast.Stmt
	if p.tok.Type == token.TY {
		init = p.parseVarDecl()
	} else if !p.match(token.SEMI) {
		init = p.parseExprStmt()
	} else {
		p.expect(token.SEMI)
	}

	var cond ast.Expr
	if !p.match(token.SEMI) {
		cond = p.parseExpr()
	}
	p.expect(token.SEMI)

	var step ast.Expr
	if !p.match(token.SEMI) {
		step = p.parseExpr()
	}
	p.expect(token.SEMI) // the mandated extra trailing ';'
	p.expect(token.RPAREN)

	p.loopDepth++
	body := p.parseBlock()
	p.loopDepth--

	return &ast.ForStmt{BaseStmt: ast.BaseStmt{Loc: startPos}, Init: init, Cond: cond, Step: step, Body: body}
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	startPos := p.expect(token.MIALA)
	if p.loopDepth == 0 {
		p.errorf(startPos, "miala used outside a loop")
	}
	p.expect(token.SEMI)
	return &ast.BreakStmt{BaseStmt: ast.BaseStmt{Loc: startPos}}
}

func (p *Parser) parseContinueStmt() ast.Stmt {
	startPos := p.expect(token.ANDANA)
	if p.loopDepth == 0 {
		p.errorf(startPos, "andana used outside a loop")
	}
	p.expect(token.SEMI)
	return &ast.ContinueStmt{BaseStmt: ast.BaseStmt{Loc: startPos}}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	startPos := p.expect(token.OMEO)
	var val ast.Expr
	if !p.match(token.SEMI) {
		val = p.parseExpr()
	}
	p.expect(token.SEMI)
	return &ast.ReturnStmt{BaseStmt: ast.BaseStmt{Loc: startPos}, Value: val}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	startPos := p.tok.Pos
	expr := p.parseExpr()
	p.expect(token.SEMI)
	return &ast.ExprStmt{BaseStmt: ast.BaseStmt{Loc: startPos}, Expr: expr}
}

// -----------------------------------------------------------------------------
// Expressions — precedence climbing, low to high.
// -----------------------------------------------------------------------------

var assignOps = map[token.Token]bool{
	token.ASSIGN: true, token.ADD_ASSIGN: true, token.SUB_ASSIGN: true,
	token.MUL_ASSIGN: true, token.DIV_ASSIGN: true, token.MOD_ASSIGN: true,
}

func (p *Parser) parseExpr() ast.Expr { return p.parseAssign() }

// Level 1: assignment, right-associative.
func (p *Parser) parseAssign() ast.Expr {
	left := p.parseLogicalOr()
	if !assignOps[p.tok.Type] {
		return left
	}
	op := p.tok.Type
	pos := p.tok.Pos
	p.next()
	if !ast.IsLValue(left) {
		p.errorf(pos, "left side of assignment must be a variable, field, or index")
	}
	right := p.parseAssign()
	return &ast.AssignExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Target: left, Op: op, Value: right}
}

// Level 2: ||
func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.tok.Type == token.OR {
		pos := p.tok.Pos
		p.next()
		right := p.parseLogicalAnd()
		left = &ast.LogicalExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Left: left, Op: token.OR, Right: right, Short: true}
	}
	return left
}

// Level 3: &&
func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseBitOr()
	for p.tok.Type == token.AND {
		pos := p.tok.Pos
		p.next()
		right := p.parseBitOr()
		left = &ast.LogicalExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Left: left, Op: token.AND, Right: right, Short: true}
	}
	return left
}

// Level 4: |
func (p *Parser) parseBitOr() ast.Expr {
	left := p.parseBitXor()
	for p.tok.Type == token.PIPE {
		pos := p.tok.Pos
		p.next()
		right := p.parseBitXor()
		left = &ast.BinaryExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Left: left, Op: token.PIPE, Right: right}
	}
	return left
}

// Level 5: ^
func (p *Parser) parseBitXor() ast.Expr {
	left := p.parseBitAnd()
	for p.tok.Type == token.CARET {
		pos := p.tok.Pos
		p.next()
		right := p.parseBitAnd()
		left = &ast.BinaryExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Left: left, Op: token.CARET, Right: right}
	}
	return left
}

// Level 6: &
func (p *Parser) parseBitAnd() ast.Expr {
	left := p.parseEquality()
	for p.tok.Type == token.AMP {
		pos := p.tok.Pos
		p.next()
		right := p.parseEquality()
		left = &ast.BinaryExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Left: left, Op: token.AMP, Right: right}
	}
	return left
}

// Level 7: == !=
func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.match(token.EQ, token.NEQ) {
		op := p.tok.Type
		pos := p.tok.Pos
		p.next()
		right := p.parseRelational()
		left = &ast.BinaryExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Left: left, Op: op, Right: right}
	}
	return left
}

// Level 8: < <= > >=
func (p *Parser) parseRelational() ast.Expr {
	left := p.parseShift()
	for p.match(token.LT, token.LTE, token.GT, token.GTE) {
		op := p.tok.Type
		pos := p.tok.Pos
		p.next()
		right := p.parseShift()
		left = &ast.BinaryExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Left: left, Op: op, Right: right}
	}
	return left
}

// Level 9: << >>
func (p *Parser) parseShift() ast.Expr {
	left := p.parseAdditive()
	for p.match(token.LSHIFT, token.RSHIFT) {
		op := p.tok.Type
		pos := p.tok.Pos
		p.next()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Left: left, Op: op, Right: right}
	}
	return left
}

// Level 10: + -
func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.match(token.PLUS, token.MINUS) {
		op := p.tok.Type
		pos := p.tok.Pos
		p.next()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Left: left, Op: op, Right: right}
	}
	return left
}

// Level 11: * / %
func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.match(token.STAR, token.SLASH, token.PCT) {
		op := p.tok.Type
		pos := p.tok.Pos
		p.next()
		right := p.parseUnary()
		left = &ast.BinaryExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Left: left, Op: op, Right: right}
	}
	return left
}

// Level 12: prefix - ! ~ ++ --, right-associative via direct recursion.
func (p *Parser) parseUnary() ast.Expr {
	switch p.tok.Type {
	case token.MINUS, token.BANG, token.TILDE:
		op := p.tok.Type
		pos := p.tok.Pos
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Op: op, Expr: operand}
	case token.INCR, token.DECR:
		op := p.tok.Type
		pos := p.tok.Pos
		p.next()
		target := p.parseUnary()
		if !ast.IsLValue(target) {
			p.errorf(pos, "operand of prefix %s must be a variable, field, or index", op)
		}
		return &ast.IncDecExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Op: op, Target: target, Post: false}
	default:
		return p.parsePostfix()
	}
}

// Level 13: postfix ++/--, call, index, field, enum path.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.tok.Type {
		case token.LBRACKET:
			pos := p.tok.Pos
			p.next()
			idx := p.parseExpr()
			p.expect(token.RBRACKET)
			expr = &ast.IndexExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Recv: expr, Index: idx}
		case token.DOT:
			pos := p.tok.Pos
			p.next()
			field, _ := p.expectName()
			expr = &ast.FieldExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Recv: expr, Field: field}
		case token.INCR, token.DECR:
			op := p.tok.Type
			pos := p.tok.Pos
			if !ast.IsLValue(expr) {
				p.errorf(pos, "operand of postfix %s must be a variable, field, or index", op)
			}
			p.next()
			expr = &ast.IncDecExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Op: op, Target: expr, Post: true}
		default:
			return expr
		}
	}
}

// Level 14: primaries.
func (p *Parser) parsePrimary() ast.Expr {
	pos := p.tok.Pos
	switch p.tok.Type {
	case token.INT:
		text := p.tok.Value
		p.next()
		n, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			p.errorf(pos, "invalid integer literal %q", text)
		}
		return &ast.IntLit{BaseExpr: ast.BaseExpr{Loc: pos}, Value: n}

	case token.FLOAT:
		text := p.tok.Value
		p.next()
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.errorf(pos, "invalid float literal %q", text)
		}
		return &ast.FloatLit{BaseExpr: ast.BaseExpr{Loc: pos}, Value: f}

	case token.STRING:
		s := p.tok.Value
		p.next()
		return &ast.StringLit{BaseExpr: ast.BaseExpr{Loc: pos}, Value: s}

	case token.CHAR:
		s := p.tok.Value
		p.next()
		r := rune(0)
		for _, rr := range s {
			r = rr
			break
		}
		return &ast.CharLit{BaseExpr: ast.BaseExpr{Loc: pos}, Value: r}

	case token.TRUE:
		p.next()
		return &ast.BoolLit{BaseExpr: ast.BaseExpr{Loc: pos}, Value: true}

	case token.FALSE:
		p.next()
		return &ast.BoolLit{BaseExpr: ast.BaseExpr{Loc: pos}, Value: false}

	case token.NULLLIT:
		p.next()
		return &ast.NullLit{BaseExpr: ast.BaseExpr{Loc: pos}}

	case token.LBRACKET:
		return p.parseArrayLit()

	case token.NEW:
		return p.parseStructLit()

	case token.LPAREN:
		p.next()
		expr := p.parseExpr()
		p.expect(token.RPAREN)
		return expr

	case token.IDENT:
		return p.parseIdentOrCallOrEnumPath()

	default:
		p.errorf(pos, "unexpected %s in expression", p.tokenDesc())
		p.next()
		return &ast.NullLit{BaseExpr: ast.BaseExpr{Loc: pos}}
	}
}

func (p *Parser) parseArrayLit() ast.Expr {
	startPos := p.expect(token.LBRACKET)
	var elems []ast.Expr
	for p.tok.Type != token.RBRACKET && p.tok.Type != token.EOF {
		if len(elems) > 0 {
			p.expect(token.COMMA)
		}
		elems = append(elems, p.parseExpr())
	}
	p.expect(token.RBRACKET)
	return &ast.ArrayLit{BaseExpr: ast.BaseExpr{Loc: startPos}, Elems: elems}
}

func (p *Parser) parseStructLit() ast.Expr {
	startPos := p.expect(token.NEW)
	typeName, _ := p.expectName()
	p.expect(token.LBRACE)

	var fields []ast.FieldInit
	seen := make(map[string]bool)
	for p.tok.Type != token.RBRACE && p.tok.Type != token.EOF {
		if len(fields) > 0 {
			p.expect(token.COMMA)
		}
		fname, fpos := p.expectName()
		if seen[fname] {
			p.errorf(fpos, "duplicate field initializer %q", fname)
		}
		seen[fname] = true
		p.expect(token.COLON)
		val := p.parseExpr()
		fields = append(fields, ast.FieldInit{Name: fname, Value: val, Loc: fpos})
	}
	p.expect(token.RBRACE)

	return &ast.StructLit{BaseExpr: ast.BaseExpr{Loc: startPos}, Type: typeName, Fields: fields}
}

// parseIdentOrCallOrEnumPath disambiguates a bare identifier, a call
// (name immediately followed by '('), and an enum path (name :: name).
func (p *Parser) parseIdentOrCallOrEnumPath() ast.Expr {
	name, pos := p.expectName()

	if p.tok.Type == token.DCOLON {
		p.next()
		variant, _ := p.expectName()
		return &ast.EnumPathExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Enum: name, Variant: variant}
	}

	if p.tok.Type == token.LPAREN {
		p.next()
		var args []ast.Expr
		for p.tok.Type != token.RPAREN && p.tok.Type != token.EOF {
			if len(args) > 0 {
				p.expect(token.COMMA)
			}
			args = append(args, p.parseExpr())
		}
		p.expect(token.RPAREN)
		return &ast.CallExpr{BaseExpr: ast.BaseExpr{Loc: pos}, Callee: name, Args: args}
	}

	return &ast.Ident{BaseExpr: ast.BaseExpr{Loc: pos}, Name: name}
}
