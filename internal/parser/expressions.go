package parser

import (
	"strconv"

	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/lexer"
	"github.com/atlas-lang/atlas/internal/span"
)

// parseExpression is the Pratt entry point: parse a prefix expression,
// then keep folding in infix operators while the next token binds
// tighter than minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	prefix, ok := p.prefixFns[p.cur().Type]
	if !ok {
		p.errorf(span.ErrUnexpectedToken, p.cur().Pos, "no expression can start with %s", p.cur().Type)
		tok := p.advance()
		return &ast.ErrorExpr{Sp: tok.Pos}
	}
	left := prefix()

	for !p.curIs(lexer.SEMICOLON) && minPrec < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur().Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseNumber() ast.Expr {
	tok := p.advance()
	v, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		p.errorf(span.ErrParseError, tok.Pos, "malformed number literal '%s'", tok.Lexeme)
	}
	return &ast.Literal{Kind: ast.LitNumber, Number: v, Sp: tok.Pos}
}

func (p *Parser) parseString() ast.Expr {
	tok := p.advance()
	return &ast.Literal{Kind: ast.LitString, Str: tok.Lexeme, Sp: tok.Pos}
}

func (p *Parser) parseBool() ast.Expr {
	tok := p.advance()
	return &ast.Literal{Kind: ast.LitBool, Bool: tok.Type == lexer.TRUE, Sp: tok.Pos}
}

func (p *Parser) parseNull() ast.Expr {
	tok := p.advance()
	return &ast.Literal{Kind: ast.LitNull, Sp: tok.Pos}
}

func (p *Parser) parseIdentifier() ast.Expr {
	tok := p.advance()
	return &ast.Identifier{Name: tok.Lexeme, Sp: tok.Pos}
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.advance()
	operand := p.parseExpression(UNARY)
	op := ast.OpNot
	if tok.Type == lexer.MINUS {
		op = ast.OpNegate
	}
	return &ast.Unary{Op: op, Operand: operand, Sp: span.Merge(tok.Pos, operand.Span())}
}

func (p *Parser) parseGroup() ast.Expr {
	start := p.advance() // '('
	inner := p.parseExpression(LOWEST)
	end, _ := p.expect(lexer.RPAREN)
	return &ast.Group{Inner: inner, Sp: span.Merge(start.Pos, end.Pos)}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	start := p.advance() // '['
	var elems []ast.Expr
	for !p.curIs(lexer.RBRACK) && !p.curIs(lexer.EOF) {
		elems = append(elems, p.parseExpression(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	end, _ := p.expect(lexer.RBRACK)
	return &ast.ArrayLiteral{Elems: elems, Sp: span.Merge(start.Pos, end.Pos)}
}

var binOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub, lexer.STAR: ast.OpMul,
	lexer.SLASH: ast.OpDiv, lexer.PERCENT: ast.OpMod,
	lexer.EQ: ast.OpEq, lexer.NOT_EQ: ast.OpNe,
	lexer.LESS: ast.OpLt, lexer.LESS_EQ: ast.OpLe,
	lexer.GREATER: ast.OpGt, lexer.GREATER_EQ: ast.OpGe,
	lexer.AND_AND: ast.OpLogicalAnd, lexer.OR_OR: ast.OpLogicalOr,
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	tok := p.advance()
	prec := precedences[tok.Type]
	right := p.parseExpression(prec)
	return &ast.Binary{Op: binOps[tok.Type], Left: left, Right: right, Sp: span.Merge(left.Span(), right.Span())}
}

func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	p.advance() // '('
	var args []ast.Expr
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		args = append(args, p.parseExpression(LOWEST))
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	end, _ := p.expect(lexer.RPAREN)
	return &ast.Call{Callee: callee, Args: args, Sp: span.Merge(callee.Span(), end.Pos)}
}

func (p *Parser) parseIndex(target ast.Expr) ast.Expr {
	p.advance() // '['
	idx := p.parseExpression(LOWEST)
	end, _ := p.expect(lexer.RBRACK)
	return &ast.Index{Target: target, Idx: idx, Sp: span.Merge(target.Span(), end.Pos)}
}

// exprToAssignTarget converts a just-parsed expression into an
// AssignTarget, used when the parser discovers a trailing '=' /
// compound-assign / inc-dec operator after an expression statement.
func exprToAssignTarget(e ast.Expr) ast.AssignTarget {
	switch v := e.(type) {
	case *ast.Identifier:
		return &ast.NameTarget{Name: v.Name, Sp: v.Sp}
	case *ast.Index:
		return &ast.IndexTarget{Target: v.Target, Index: v.Idx, Sp: v.Sp}
	default:
		return &ast.NameTarget{Name: "", Sp: e.Span()}
	}
}
