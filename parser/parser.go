/*
File    : verlang/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package parser implements a Pratt (top-down operator precedence)
// parser that turns a Language token stream into a Program AST.
package parser

import (
	"fmt"

	"github.com/akashmaji946/verlang/lexer"
)

// Parser holds parse state: the filtered token stream, a cursor, and
// collected errors. Parser errors do not panic — callers decide
// fatality (cmd/ver aborts on a non-empty error list in file mode,
// replsrv reports and keeps running).
type Parser struct {
	tokens []lexer.Token
	pos    int
	Errors []string
}

// New tokenizes src and prepares a Parser. Newline tokens are dropped
// here: the grammar uses `end`/`elif`/`else`/`catch`/`finally` as block
// terminators rather than newlines as statement separators. ILLEGAL
// tokens are dropped too: the lexer has already reported the unknown
// character, and parsing continues as if it were not there.
func New(src string) *Parser {
	raw := lexer.Tokenize(src)
	toks := make([]lexer.Token, 0, len(raw))
	for _, t := range raw {
		if t.Type == lexer.NEWLINE || t.Type == lexer.ILLEGAL {
			continue
		}
		toks = append(toks, t)
	}
	return &Parser{tokens: toks}
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) errorf(format string, args ...interface{}) {
	t := p.cur()
	msg := fmt.Sprintf("[%d:%d] parse error: %s", t.Line, t.Column, fmt.Sprintf(format, args...))
	p.Errors = append(p.Errors, msg)
}

func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if p.cur().Type != tt {
		p.errorf("expected %s, got %s", tt, p.cur().Type)
		return p.cur()
	}
	return p.advance()
}

// HasErrors reports whether any parse error was recorded.
func (p *Parser) HasErrors() bool { return len(p.Errors) > 0 }

func endsBlock(tt lexer.TokenType, terminators ...lexer.TokenType) bool {
	if tt == lexer.EOF {
		return true
	}
	for _, t := range terminators {
		if tt == t {
			return true
		}
	}
	return false
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{}
	for p.cur().Type != lexer.EOF {
		prog.Statements = append(prog.Statements, p.parseStatement())
	}
	return prog
}

func (p *Parser) parseBlock(terminators ...lexer.TokenType) []Stmt {
	var stmts []Stmt
	for !endsBlock(p.cur().Type, terminators...) {
		stmts = append(stmts, p.parseStatement())
	}
	return stmts
}

func (p *Parser) parseStatement() Stmt {
	tok := p.cur()
	switch tok.Type {
	case lexer.INCLUDE:
		return p.parseInclude()
	case lexer.LET:
		return p.parseLet(false)
	case lexer.CONST:
		return p.parseLet(true)
	case lexer.FN:
		fn := p.parseFuncLiteral()
		return &ExprStmt{pos: pos{tok.Line, tok.Column}, X: fn}
	case lexer.CLASS:
		return p.parseClass()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.TRY:
		return p.parseTry()
	case lexer.THROW:
		p.advance()
		return &ThrowStmt{pos: pos{tok.Line, tok.Column}, X: p.parseExpression(LOWEST)}
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.BREAK:
		p.advance()
		return &BreakStmt{pos: pos{tok.Line, tok.Column}}
	case lexer.CONTINUE:
		p.advance()
		return &ContinueStmt{pos: pos{tok.Line, tok.Column}}
	default:
		return &ExprStmt{pos: pos{tok.Line, tok.Column}, X: p.parseExpression(LOWEST)}
	}
}

func (p *Parser) parseInclude() Stmt {
	tok := p.advance() // include
	var path string
	if p.cur().Type == lexer.LPAREN {
		p.advance()
		path = p.expect(lexer.STRING).Lit
		p.expect(lexer.RPAREN)
	} else {
		path = p.expect(lexer.STRING).Lit
	}
	return &IncludeStmt{pos: pos{tok.Line, tok.Column}, Path: path}
}

func (p *Parser) parseLet(isConst bool) Stmt {
	tok := p.advance() // let/const
	name := p.expect(lexer.IDENT).Lit
	p.expect(lexer.ASSIGN)
	val := p.parseExpression(LOWEST)
	return &LetStmt{pos: pos{tok.Line, tok.Column}, Name: name, Const: isConst, Value: val}
}

func (p *Parser) parseClass() Stmt {
	tok := p.advance() // class
	name := p.expect(lexer.IDENT).Lit
	var methods []*FuncLit
	for p.cur().Type == lexer.FN {
		methods = append(methods, p.parseFuncLiteral())
	}
	p.expect(lexer.END)
	return &ClassStmt{pos: pos{tok.Line, tok.Column}, Name: name, Methods: methods}
}

func (p *Parser) parseIf() Stmt {
	tok := p.advance() // if
	stmt := &IfStmt{pos: pos{tok.Line, tok.Column}}
	cond := p.parseExpression(LOWEST)
	body := p.parseBlock(lexer.ELIF, lexer.ELSE, lexer.END)
	stmt.Branches = append(stmt.Branches, IfBranch{Cond: cond, Body: body})
	for p.cur().Type == lexer.ELIF {
		p.advance()
		c := p.parseExpression(LOWEST)
		b := p.parseBlock(lexer.ELIF, lexer.ELSE, lexer.END)
		stmt.Branches = append(stmt.Branches, IfBranch{Cond: c, Body: b})
	}
	if p.cur().Type == lexer.ELSE {
		p.advance()
		stmt.Else = p.parseBlock(lexer.END)
	}
	p.expect(lexer.END)
	return stmt
}

func (p *Parser) parseWhile() Stmt {
	tok := p.advance() // while
	cond := p.parseExpression(LOWEST)
	body := p.parseBlock(lexer.END)
	p.expect(lexer.END)
	return &WhileStmt{pos: pos{tok.Line, tok.Column}, Cond: cond, Body: body}
}

func (p *Parser) parseFor() Stmt {
	tok := p.advance() // for
	name := p.expect(lexer.IDENT).Lit
	p.expect(lexer.IN)
	iter := p.parseExpression(LOWEST)
	body := p.parseBlock(lexer.END)
	p.expect(lexer.END)
	return &ForStmt{pos: pos{tok.Line, tok.Column}, Var: name, Iterable: iter, Body: body}
}

func (p *Parser) parseTry() Stmt {
	tok := p.advance() // try
	stmt := &TryStmt{pos: pos{tok.Line, tok.Column}}
	stmt.Body = p.parseBlock(lexer.CATCH, lexer.FINALLY, lexer.END)
	if p.cur().Type == lexer.CATCH {
		p.advance()
		stmt.HasCatch = true
		if p.cur().Type == lexer.IDENT {
			stmt.CatchVar = p.advance().Lit
		}
		stmt.CatchBody = p.parseBlock(lexer.FINALLY, lexer.END)
	}
	if p.cur().Type == lexer.FINALLY {
		p.advance()
		stmt.HasFinally = true
		stmt.Finally = p.parseBlock(lexer.END)
	}
	p.expect(lexer.END)
	return stmt
}

// bareReturnFollowers are the tokens that can legally follow a `return`
// with no expression — every block terminator plus EOF.
func bareReturnFollowers(tt lexer.TokenType) bool {
	switch tt {
	case lexer.END, lexer.ELIF, lexer.ELSE, lexer.CATCH, lexer.FINALLY, lexer.EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseReturn() Stmt {
	tok := p.advance() // return
	if bareReturnFollowers(p.cur().Type) {
		return &ReturnStmt{pos: pos{tok.Line, tok.Column}}
	}
	return &ReturnStmt{pos: pos{tok.Line, tok.Column}, X: p.parseExpression(LOWEST)}
}

// ---- expressions ----

func (p *Parser) parseExpression(prec int) Expr {
	left := p.parsePrefix()
	for prec < precedenceOf(p.cur().Type) {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() Expr {
	tok := p.cur()
	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		return &NumberLit{pos: tokPos(tok), Value: tok.Number}
	case lexer.STRING:
		p.advance()
		return &StringLit{pos: tokPos(tok), Value: tok.Lit}
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return &BoolLit{pos: tokPos(tok), Value: tok.Type == lexer.TRUE}
	case lexer.NIL:
		p.advance()
		return &NilLit{pos: tokPos(tok)}
	case lexer.SELF:
		p.advance()
		return &SelfExpr{pos: tokPos(tok)}
	case lexer.IDENT:
		p.advance()
		return &Ident{pos: tokPos(tok), Name: tok.Lit}
	case lexer.LPAREN:
		p.advance()
		e := p.parseExpression(LOWEST)
		p.expect(lexer.RPAREN)
		return e
	case lexer.LBRACKET:
		return p.parseListLit()
	case lexer.LBRACE:
		return p.parseMapLit()
	case lexer.FN:
		return p.parseFuncLiteral()
	case lexer.NEW:
		return p.parseNewExpr()
	case lexer.MINUS, lexer.NOT, lexer.TILDE:
		p.advance()
		return &UnaryExpr{pos: tokPos(tok), Op: string(tok.Type), Operand: p.parseExpression(PREFIX)}
	case lexer.INCR, lexer.DECR:
		p.advance()
		target := p.parseExpression(PREFIX)
		if !isAssignable(target) {
			p.errorf("++/-- operand must be a variable or attribute")
		}
		return &IncDecExpr{pos: tokPos(tok), Op: string(tok.Type), Target: target, Prefix: true}
	default:
		p.errorf("unexpected token %s", tok.Type)
		p.advance()
		return &NilLit{pos: tokPos(tok)}
	}
}

func tokPos(t lexer.Token) pos { return pos{Line: t.Line, Column: t.Column} }

func isAssignable(e Expr) bool {
	switch e.(type) {
	case *Ident, *AttrExpr:
		return true
	default:
		return false
	}
}

func (p *Parser) parseInfix(left Expr) Expr {
	tok := p.cur()
	switch tok.Type {
	case lexer.ASSIGN, lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.STAR_ASSIGN, lexer.SLASH_ASSIGN:
		if !isAssignable(left) {
			p.errorf("assignment target must be a variable or attribute")
		}
		p.advance()
		right := p.parseExpression(nextPrecedence(tok.Type))
		return &AssignExpr{pos: tokPos(tok), Op: string(tok.Type), Target: left, Value: right}
	case lexer.OR, lexer.AND, lexer.PIPE, lexer.CARET, lexer.AMP,
		lexer.EQ, lexer.NEQ, lexer.LT, lexer.LE, lexer.GT, lexer.GE,
		lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT, lexer.POWER:
		p.advance()
		right := p.parseExpression(nextPrecedence(tok.Type))
		return &BinaryExpr{pos: tokPos(tok), Op: string(tok.Type), Left: left, Right: right}
	case lexer.LPAREN:
		return p.parseCallExpr(left)
	case lexer.LBRACKET:
		return p.parseIndexExpr(left)
	case lexer.DOT:
		return p.parseAttrExpr(left)
	case lexer.INCR, lexer.DECR:
		if !isAssignable(left) {
			p.errorf("++/-- operand must be a variable or attribute")
		}
		p.advance()
		return &IncDecExpr{pos: tokPos(tok), Op: string(tok.Type), Target: left, Prefix: false}
	default:
		p.errorf("unexpected token %s in expression", tok.Type)
		p.advance()
		return left
	}
}

func (p *Parser) parseListLit() Expr {
	tok := p.advance() // [
	lit := &ListLit{pos: tokPos(tok)}
	for p.cur().Type != lexer.RBRACKET && p.cur().Type != lexer.EOF {
		lit.Elements = append(lit.Elements, p.parseExpression(ASSIGN))
		if p.cur().Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return lit
}

func (p *Parser) parseMapLit() Expr {
	tok := p.advance() // {
	lit := &MapLit{pos: tokPos(tok)}
	for p.cur().Type != lexer.RBRACE && p.cur().Type != lexer.EOF {
		key := p.parseMapKey()
		p.expect(lexer.COLON)
		val := p.parseExpression(ASSIGN)
		lit.Keys = append(lit.Keys, key)
		lit.Values = append(lit.Values, val)
		if p.cur().Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return lit
}

// parseMapKey accepts an identifier, string, or number lexeme as a map
// key, always stored as a string (per the language's map key rule).
func (p *Parser) parseMapKey() string {
	tok := p.advance()
	switch tok.Type {
	case lexer.IDENT, lexer.STRING:
		return tok.Lit
	case lexer.NUMBER:
		return tok.Lit
	default:
		p.errorf("invalid map key %s", tok.Type)
		return tok.Lit
	}
}

func (p *Parser) parseFuncLiteral() *FuncLit {
	tok := p.advance() // fn
	fn := &FuncLit{pos: tokPos(tok)}
	if p.cur().Type == lexer.IDENT {
		fn.Name = p.advance().Lit
	}
	p.expect(lexer.LPAREN)
	for p.cur().Type != lexer.RPAREN && p.cur().Type != lexer.EOF {
		fn.Params = append(fn.Params, p.expect(lexer.IDENT).Lit)
		if p.cur().Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	if p.cur().Type == lexer.FARROW {
		p.advance()
		expr := p.parseExpression(LOWEST)
		fn.Body = []Stmt{&ReturnStmt{pos: tokPos(tok), X: expr}}
		return fn
	}
	fn.Body = p.parseBlock(lexer.END)
	p.expect(lexer.END)
	return fn
}

func (p *Parser) parseNewExpr() Expr {
	tok := p.advance() // new
	name := p.expect(lexer.IDENT).Lit
	p.expect(lexer.LPAREN)
	args := p.parseArgList()
	return &NewExpr{pos: tokPos(tok), Class: name, Args: args}
}

func (p *Parser) parseArgList() []Expr {
	var args []Expr
	for p.cur().Type != lexer.RPAREN && p.cur().Type != lexer.EOF {
		args = append(args, p.parseExpression(ASSIGN))
		if p.cur().Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parseCallExpr(callee Expr) Expr {
	tok := p.advance() // (
	_ = tok
	args := p.parseArgList()
	line, col := callee.Pos()
	return &CallExpr{pos: pos{line, col}, Callee: callee, Args: args}
}

func (p *Parser) parseIndexExpr(target Expr) Expr {
	p.advance() // [
	idx := p.parseExpression(LOWEST)
	p.expect(lexer.RBRACKET)
	line, col := target.Pos()
	return &IndexExpr{pos: pos{line, col}, Target: target, Index: idx}
}

func (p *Parser) parseAttrExpr(target Expr) Expr {
	p.advance() // .
	name := p.expect(lexer.IDENT).Lit
	line, col := target.Pos()
	return &AttrExpr{pos: pos{line, col}, Target: target, Name: name}
}
