package parser

import (
	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/lexer"
	"github.com/atlas-lang/atlas/internal/span"
)

func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	start := p.advance() // 'fn'
	nameTok, _ := p.expect(lexer.IDENT)

	p.expect(lexer.LPAREN)
	var params []ast.Param
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		pnTok, _ := p.expect(lexer.IDENT)
		p.expect(lexer.COLON)
		pt := p.parseTypeRef()
		params = append(params, ast.Param{Name: pnTok.Lexeme, Type: pt, Sp: span.Merge(pnTok.Pos, pt.Span())})
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)

	var retType ast.TypeRef = &ast.NamedType{Name: "void", Sp: nameTok.Pos}
	if p.curIs(lexer.ARROW) {
		p.advance()
		retType = p.parseTypeRef()
	}

	body := p.parseBlock()
	return &ast.FunctionDecl{
		Name: nameTok.Lexeme, Params: params, ReturnType: retType, Body: body,
		Sp: span.Merge(start.Pos, body.Span()),
	}
}

func (p *Parser) parseBlock() *ast.Block {
	start, _ := p.expect(lexer.LBRACE)
	blk := &ast.Block{}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		start := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			blk.Stmts = append(blk.Stmts, stmt)
		}
		if p.pos == start {
			p.synchronize()
		}
	}
	end, _ := p.expect(lexer.RBRACE)
	blk.Sp = span.Merge(start.Pos, end.Pos)
	return blk
}

// parseStatement dispatches on the leading token. Errors are reported
// by the construct's own expect calls, and a token that cannot start
// an expression becomes an ErrorExpr; it does not synchronize itself
// and never returns an ErrorStmt. ParseProgram and parseBlock call
// synchronize only when a statement consumed no token.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur().Type {
	case lexer.LET, lexer.VAR:
		return p.parseVarDecl()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.BREAK:
		tok := p.advance()
		p.expect(lexer.SEMICOLON)
		return &ast.Break{Sp: tok.Pos}
	case lexer.CONTINUE:
		tok := p.advance()
		p.expect(lexer.SEMICOLON)
		return &ast.Continue{Sp: tok.Pos}
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.SEMICOLON:
		p.advance()
		return nil
	default:
		return p.parseSimpleStatement(true)
	}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	start := p.advance() // let/var
	mutable := start.Type == lexer.VAR
	nameTok, _ := p.expect(lexer.IDENT)

	var typ ast.TypeRef
	if p.curIs(lexer.COLON) {
		p.advance()
		typ = p.parseTypeRef()
	}

	var init ast.Expr
	if p.curIs(lexer.ASSIGN) {
		p.advance()
		init = p.parseExpression(LOWEST)
	}

	end, _ := p.expect(lexer.SEMICOLON)
	return &ast.VarDecl{
		Name: nameTok.Lexeme, Type: typ, Init: init, Mutable: mutable,
		Sp: span.Merge(start.Pos, end.Pos),
	}
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance() // 'if'
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	then := p.parseBlock()

	var elseStmt ast.Stmt
	if p.curIs(lexer.ELSE) {
		p.advance()
		if p.curIs(lexer.IF) {
			elseStmt = p.parseIf()
		} else {
			elseStmt = p.parseBlock()
		}
	}

	endSp := then.Span()
	if elseStmt != nil {
		endSp = elseStmt.Span()
	}
	return &ast.If{Cond: cond, Then: then, Else: elseStmt, Sp: span.Merge(start.Pos, endSp)}
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.advance() // 'while'
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.While{Cond: cond, Body: body, Sp: span.Merge(start.Pos, body.Span())}
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.advance() // 'for'
	p.expect(lexer.LPAREN)

	var initStmt ast.Stmt
	switch {
	case p.curIs(lexer.LET) || p.curIs(lexer.VAR):
		initStmt = p.parseVarDecl() // consumes the ';'
	case p.curIs(lexer.SEMICOLON):
		p.advance()
	default:
		initStmt = p.parseSimpleStatement(false)
		p.expect(lexer.SEMICOLON)
	}

	var cond ast.Expr
	if !p.curIs(lexer.SEMICOLON) {
		cond = p.parseExpression(LOWEST)
	}
	p.expect(lexer.SEMICOLON)

	var step ast.Stmt
	if !p.curIs(lexer.RPAREN) {
		step = p.parseSimpleStatement(false)
	}
	p.expect(lexer.RPAREN)

	body := p.parseBlock()
	return &ast.For{Init: initStmt, Cond: cond, Step: step, Body: body, Sp: span.Merge(start.Pos, body.Span())}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance() // 'return'
	var value ast.Expr
	if !p.curIs(lexer.SEMICOLON) {
		value = p.parseExpression(LOWEST)
	}
	end, _ := p.expect(lexer.SEMICOLON)
	return &ast.Return{Value: value, Sp: span.Merge(start.Pos, end.Pos)}
}

// compoundOpByToken and incDecOpByToken map operator tokens that only
// appear at statement level (never inside parseExpression's Pratt
// table), matching the teacher's parseAssignmentOrExpression split.
var compoundOpByToken = map[lexer.TokenType]ast.CompoundOp{
	lexer.PLUS_ASSIGN: ast.OpAddAssign, lexer.MINUS_ASSIGN: ast.OpSubAssign,
	lexer.STAR_ASSIGN: ast.OpMulAssign, lexer.SLASH_ASSIGN: ast.OpDivAssign,
	lexer.PERCENT_ASSIGN: ast.OpModAssign,
}

// parseSimpleStatement parses an expression statement that might turn
// out to be an assignment, compound-assignment, or increment/decrement
// once the leading expression is followed by the right operator. When
// consumeSemicolon is false (inside a for(...) header) the trailing
// ';' is left to the caller.
func (p *Parser) parseSimpleStatement(consumeSemicolon bool) ast.Stmt {
	startTok := p.cur()
	expr := p.parseExpression(LOWEST)

	var stmt ast.Stmt
	switch {
	case p.curIs(lexer.ASSIGN):
		p.advance()
		value := p.parseExpression(LOWEST)
		target := exprToAssignTarget(expr)
		stmt = &ast.Assign{Target: target, Value: value, Sp: span.Merge(startTok.Pos, value.Span())}
	case compoundOpByToken[p.cur().Type] != "":
		op := compoundOpByToken[p.cur().Type]
		p.advance()
		value := p.parseExpression(LOWEST)
		target := exprToAssignTarget(expr)
		stmt = &ast.CompoundAssign{Target: target, Op: op, Value: value, Sp: span.Merge(startTok.Pos, value.Span())}
	case p.curIs(lexer.PLUS_PLUS) || p.curIs(lexer.MINUS_MINUS):
		opTok := p.advance()
		op := ast.OpIncrement
		if opTok.Type == lexer.MINUS_MINUS {
			op = ast.OpDecrement
		}
		target := exprToAssignTarget(expr)
		stmt = &ast.IncDec{Target: target, Op: op, Sp: span.Merge(startTok.Pos, opTok.Pos)}
	default:
		stmt = &ast.ExprStmt{Expr: expr, Sp: expr.Span()}
	}

	if consumeSemicolon {
		p.expect(lexer.SEMICOLON)
	}
	return stmt
}
