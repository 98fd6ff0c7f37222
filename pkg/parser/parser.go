// Package parser implements the Filmi language parser: a recursive-descent
// parser over the Filmi grammar, halting at the first syntax error.
package parser

import (
	"github.com/rverma/filmi/pkg/ast"
	"github.com/rverma/filmi/pkg/diagnostics"
	"github.com/rverma/filmi/pkg/lexer"
)

type parser struct {
	tokens []lexer.Token
	pos    int
	err    *diagnostics.Diagnostic
}

// Parse tokenizes and parses source into a Program. It returns the first
// diagnostic encountered, whether raised by the lexer or the parser itself;
// the pipeline never accumulates more than one.
func Parse(source string) (*ast.Program, *diagnostics.Diagnostic) {
	tokens, lexErr := lexer.Tokenize(source)
	if lexErr != nil {
		if d, ok := lexErr.(*diagnostics.Diagnostic); ok {
			return nil, d
		}
		return nil, diagnostics.NewLexError(ast.Pos{Line: 1, Col: 1}, "%s", lexErr.Error())
	}

	p := &parser{tokens: tokens, pos: 0}
	prog := p.parseProgram()
	if p.err != nil {
		return nil, p.err
	}
	return prog, nil
}

func (p *parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) peek() lexer.TokenType {
	return p.current().Type
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) failed() bool {
	return p.err != nil
}

func (p *parser) fail(pos ast.Pos, format string, args ...any) {
	if p.err == nil {
		p.err = diagnostics.NewParseError(pos, format, args...)
	}
}

func (p *parser) expect(typ lexer.TokenType) (lexer.Token, bool) {
	tok := p.current()
	if tok.Type != typ {
		p.fail(tok.Pos, "expected %s, got '%s'", typ.Name(), displayLexeme(tok))
		return tok, false
	}
	return p.advance(), true
}

func displayLexeme(tok lexer.Token) string {
	if tok.Type == lexer.TokEOF {
		return "end of input"
	}
	return tok.Lexeme
}

// --- Program ---

func (p *parser) parseProgram() *ast.Program {
	startPos := p.current().Pos
	if _, ok := p.expect(lexer.TokAction); !ok {
		return nil
	}

	var stmts []ast.Stmt
	for p.peek() != lexer.TokEnd && p.peek() != lexer.TokEOF {
		stmt := p.parseDeclaration()
		if p.failed() {
			return nil
		}
		stmts = append(stmts, stmt)
	}

	if _, ok := p.expect(lexer.TokEnd); !ok {
		return nil
	}

	return &ast.Program{Pos: startPos, Statements: stmts}
}

// --- Declarations and statements ---

func (p *parser) parseDeclaration() ast.Stmt {
	switch p.peek() {
	case lexer.TokFunc:
		return p.parseFuncDecl()
	case lexer.TokVarDecl:
		return p.parseVarDecl()
	default:
		return p.parseStmt()
	}
}

func (p *parser) parseVarDecl() ast.Stmt {
	start := p.advance() // consume 'maan lo'
	nameTok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.TokEq); !ok {
		return nil
	}
	value := p.parseExpr()
	if p.failed() {
		return nil
	}
	return &ast.VarDecl{Pos: start.Pos, Name: nameTok.Lexeme, Initializer: value}
}

func (p *parser) parseFuncDecl() ast.Stmt {
	start := p.advance() // consume 'climax'
	nameTok, ok := p.expect(lexer.TokIdent)
	if !ok {
		return nil
	}
	if _, ok := p.expect(lexer.TokLParen); !ok {
		return nil
	}
	var params []string
	for p.peek() != lexer.TokRParen && p.peek() != lexer.TokEOF {
		paramTok, ok := p.expect(lexer.TokIdent)
		if !ok {
			return nil
		}
		params = append(params, paramTok.Lexeme)
		if p.peek() == lexer.TokComma {
			p.advance()
		}
	}
	if _, ok := p.expect(lexer.TokRParen); !ok {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.FuncDecl{Pos: start.Pos, Name: nameTok.Lexeme, Params: params, Body: body}
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.peek() {
	case lexer.TokIf:
		return p.parseIf()
	case lexer.TokWhile:
		return p.parseWhile()
	case lexer.TokReturn:
		return p.parseReturn()
	case lexer.TokPrint:
		return p.parsePrint()
	case lexer.TokBreak:
		return p.parseBreak()
	case lexer.TokLBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseIf() ast.Stmt {
	start := p.advance() // consume 'agar kismat rahi'
	var conditions []ast.Expr
	var consequents []*ast.Block

	cond := p.parseParenExpr()
	if p.failed() {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	conditions = append(conditions, cond)
	consequents = append(consequents, body)

	var alternate *ast.Block
	for p.peek() == lexer.TokElseIf {
		p.advance() // consume 'nahi to'
		c := p.parseParenExpr()
		if p.failed() {
			return nil
		}
		b := p.parseBlock()
		if p.failed() {
			return nil
		}
		conditions = append(conditions, c)
		consequents = append(consequents, b)
	}

	if p.peek() == lexer.TokElse {
		p.advance() // consume 'warna'
		alternate = p.parseBlock()
		if p.failed() {
			return nil
		}
	}

	return &ast.If{Pos: start.Pos, Conditions: conditions, Consequents: consequents, Alternate: alternate}
}

func (p *parser) parseParenExpr() ast.Expr {
	if _, ok := p.expect(lexer.TokLParen); !ok {
		return nil
	}
	expr := p.parseExpr()
	if p.failed() {
		return nil
	}
	if _, ok := p.expect(lexer.TokRParen); !ok {
		return nil
	}
	return expr
}

func (p *parser) parseWhile() ast.Stmt {
	start := p.advance() // consume 'jab tak hai jaan'
	cond := p.parseParenExpr()
	if p.failed() {
		return nil
	}
	body := p.parseBlock()
	if p.failed() {
		return nil
	}
	return &ast.While{Pos: start.Pos, Condition: cond, Body: body}
}

func (p *parser) parseReturn() ast.Stmt {
	start := p.advance() // consume 'dialogue wapas do'
	// No explicit terminator exists in the grammar, so a return value is
	// present unless the next token closes an enclosing construct.
	var value ast.Expr
	switch p.peek() {
	case lexer.TokRBrace, lexer.TokEnd, lexer.TokEOF:
		// bare return
	default:
		value = p.parseExpr()
		if p.failed() {
			return nil
		}
	}
	return &ast.Return{Pos: start.Pos, Value: value}
}

func (p *parser) parsePrint() ast.Stmt {
	start := p.advance() // consume 'ek baat bataun:'
	var args []ast.Expr
	first := p.parseExpr()
	if p.failed() {
		return nil
	}
	args = append(args, first)
	for p.peek() == lexer.TokComma {
		p.advance()
		next := p.parseExpr()
		if p.failed() {
			return nil
		}
		args = append(args, next)
	}
	return &ast.Print{Pos: start.Pos, Args: args}
}

func (p *parser) parseBreak() ast.Stmt {
	start := p.advance() // consume 'me bahar ja raha hu'
	return &ast.Break{Pos: start.Pos}
}

func (p *parser) parseExprStmt() ast.Stmt {
	start := p.current().Pos
	expr := p.parseExpr()
	if p.failed() {
		return nil
	}
	return &ast.ExprStmt{Pos: start, Expr: expr}
}

func (p *parser) parseBlock() *ast.Block {
	start, ok := p.expect(lexer.TokLBrace)
	if !ok {
		return nil
	}
	var stmts []ast.Stmt
	for p.peek() != lexer.TokRBrace && p.peek() != lexer.TokEOF {
		stmt := p.parseDeclaration()
		if p.failed() {
			return nil
		}
		stmts = append(stmts, stmt)
	}
	if _, ok := p.expect(lexer.TokRBrace); !ok {
		return nil
	}
	return &ast.Block{Pos: start.Pos, Statements: stmts}
}

// --- Expression precedence ladder ---
//
// assignment -> logicOr -> logicAnd -> equality -> comparison -> additive
// -> multiplicative -> unary -> call -> primary

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() ast.Expr {
	left := p.parseLogicOr()
	if p.failed() {
		return nil
	}
	if p.peek() == lexer.TokEq {
		eq := p.advance()
		ident, ok := left.(*ast.Identifier)
		if !ok {
			p.fail(eq.Pos, "invalid assignment target")
			return nil
		}
		value := p.parseAssignment() // right-associative via right-recursion
		if p.failed() {
			return nil
		}
		return &ast.Assign{Pos: ident.Pos, Name: ident.Name, Value: value}
	}
	return left
}

func (p *parser) parseLogicOr() ast.Expr {
	left := p.parseLogicAnd()
	if p.failed() {
		return nil
	}
	for p.peek() == lexer.TokOrOr {
		op := p.advance()
		right := p.parseLogicAnd()
		if p.failed() {
			return nil
		}
		left = &ast.Binary{Pos: op.Pos, Operator: "||", Left: left, Right: right}
	}
	return left
}

func (p *parser) parseLogicAnd() ast.Expr {
	left := p.parseEquality()
	if p.failed() {
		return nil
	}
	for p.peek() == lexer.TokAndAnd {
		op := p.advance()
		right := p.parseEquality()
		if p.failed() {
			return nil
		}
		left = &ast.Binary{Pos: op.Pos, Operator: "&&", Left: left, Right: right}
	}
	return left
}

func (p *parser) parseEquality() ast.Expr {
	left := p.parseComparison()
	if p.failed() {
		return nil
	}
	for p.peek() == lexer.TokEqEq || p.peek() == lexer.TokBangEq {
		op := p.advance()
		right := p.parseComparison()
		if p.failed() {
			return nil
		}
		left = &ast.Binary{Pos: op.Pos, Operator: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	if p.failed() {
		return nil
	}
	for p.peek() == lexer.TokLt || p.peek() == lexer.TokGt || p.peek() == lexer.TokLtEq || p.peek() == lexer.TokGtEq {
		op := p.advance()
		right := p.parseAdditive()
		if p.failed() {
			return nil
		}
		left = &ast.Binary{Pos: op.Pos, Operator: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	if p.failed() {
		return nil
	}
	for p.peek() == lexer.TokPlus || p.peek() == lexer.TokMinus {
		op := p.advance()
		right := p.parseMultiplicative()
		if p.failed() {
			return nil
		}
		left = &ast.Binary{Pos: op.Pos, Operator: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	if p.failed() {
		return nil
	}
	for p.peek() == lexer.TokStar || p.peek() == lexer.TokSlash || p.peek() == lexer.TokPercent {
		op := p.advance()
		right := p.parseUnary()
		if p.failed() {
			return nil
		}
		left = &ast.Binary{Pos: op.Pos, Operator: op.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	if p.peek() == lexer.TokMinus || p.peek() == lexer.TokBang {
		op := p.advance()
		operand := p.parseUnary()
		if p.failed() {
			return nil
		}
		return &ast.Unary{Pos: op.Pos, Operator: op.Lexeme, Operand: operand}
	}
	return p.parseCall()
}

func (p *parser) parseCall() ast.Expr {
	if p.peek() == lexer.TokIdent && p.peekIsCall() {
		nameTok := p.advance()
		p.advance() // consume '('
		var args []ast.Expr
		for p.peek() != lexer.TokRParen && p.peek() != lexer.TokEOF {
			arg := p.parseExpr()
			if p.failed() {
				return nil
			}
			args = append(args, arg)
			if p.peek() == lexer.TokComma {
				p.advance()
			}
		}
		if _, ok := p.expect(lexer.TokRParen); !ok {
			return nil
		}
		return &ast.Call{Pos: nameTok.Pos, Callee: nameTok.Lexeme, Args: args}
	}
	return p.parsePrimary()
}

func (p *parser) peekIsCall() bool {
	if p.pos+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos+1].Type == lexer.TokLParen
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.peek() {
	case lexer.TokLParen:
		p.advance()
		expr := p.parseExpr()
		if p.failed() {
			return nil
		}
		if _, ok := p.expect(lexer.TokRParen); !ok {
			return nil
		}
		return &ast.Grouping{Pos: expr.NodePos(), Expr: expr}

	case lexer.TokNumber:
		tok := p.advance()
		return &ast.Literal{Pos: tok.Pos, Kind_: ast.LitNumber, Value: tok.Literal}

	case lexer.TokString:
		tok := p.advance()
		return &ast.Literal{Pos: tok.Pos, Kind_: ast.LitString, Value: tok.Literal}

	case lexer.TokTrue:
		tok := p.advance()
		return &ast.Literal{Pos: tok.Pos, Kind_: ast.LitBool, Value: true}

	case lexer.TokFalse:
		tok := p.advance()
		return &ast.Literal{Pos: tok.Pos, Kind_: ast.LitBool, Value: false}

	case lexer.TokNull:
		tok := p.advance()
		return &ast.Literal{Pos: tok.Pos, Kind_: ast.LitUnit, Value: nil}

	case lexer.TokIdent:
		tok := p.advance()
		return &ast.Identifier{Pos: tok.Pos, Name: tok.Lexeme}

	default:
		tok := p.current()
		p.fail(tok.Pos, "unexpected token '%s'", displayLexeme(tok))
		return nil
	}
}
