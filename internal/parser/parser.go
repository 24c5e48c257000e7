// Package parser implements the Atlas parser: recursive descent with
// Pratt-style expression precedence, grounded on the teacher's
// internal/parser.Parser (registerPrefix/registerInfix dispatch maps,
// curTokenIs/peekTokenIs/expectPeek helpers, panic-mode synchronize on
// statement boundaries).
//
// The parser never aborts on error: it records a diagnostic and goes
// on from the token where the failing construct stopped. It skips to
// the next ';' (or up to a '}') only when an item or statement
// consumed no token at all; other errors are not followed by a skip.
package parser

import (
	"fmt"

	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/lexer"
	"github.com/atlas-lang/atlas/internal/span"
)

// Precedence levels, lowest to highest (spec §4.2).
const (
	_ int = iota
	LOWEST
	OR
	AND
	EQUALITY
	COMPARISON
	ADDITIVE
	MULTIPLICATIVE
	UNARY
	CALL_INDEX
)

var precedences = map[lexer.TokenType]int{
	lexer.OR_OR:       OR,
	lexer.AND_AND:     AND,
	lexer.EQ:          EQUALITY,
	lexer.NOT_EQ:      EQUALITY,
	lexer.LESS:        COMPARISON,
	lexer.LESS_EQ:     COMPARISON,
	lexer.GREATER:     COMPARISON,
	lexer.GREATER_EQ:  COMPARISON,
	lexer.PLUS:        ADDITIVE,
	lexer.MINUS:       ADDITIVE,
	lexer.STAR:        MULTIPLICATIVE,
	lexer.SLASH:       MULTIPLICATIVE,
	lexer.PERCENT:     MULTIPLICATIVE,
	lexer.LPAREN:      CALL_INDEX,
	lexer.LBRACK:      CALL_INDEX,
}

type prefixParseFn func() ast.Expr
type infixParseFn func(ast.Expr) ast.Expr

// Parser is the Atlas recursive-descent / Pratt parser.
type Parser struct {
	fileID string
	toks   []lexer.Token
	pos    int

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn

	errs span.List
}

// New constructs a Parser over toks (typically from lexer.Tokenize).
func New(fileID string, toks []lexer.Token) *Parser {
	p := &Parser{fileID: fileID, toks: toks}
	p.prefixFns = map[lexer.TokenType]prefixParseFn{}
	p.infixFns = map[lexer.TokenType]infixParseFn{}

	p.registerPrefix(lexer.NUMBER, p.parseNumber)
	p.registerPrefix(lexer.STRING, p.parseString)
	p.registerPrefix(lexer.TRUE, p.parseBool)
	p.registerPrefix(lexer.FALSE, p.parseBool)
	p.registerPrefix(lexer.NULL, p.parseNull)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.BANG, p.parseUnary)
	p.registerPrefix(lexer.MINUS, p.parseUnary)
	p.registerPrefix(lexer.LPAREN, p.parseGroup)
	p.registerPrefix(lexer.LBRACK, p.parseArrayLiteral)

	p.registerInfix(lexer.PLUS, p.parseBinary)
	p.registerInfix(lexer.MINUS, p.parseBinary)
	p.registerInfix(lexer.STAR, p.parseBinary)
	p.registerInfix(lexer.SLASH, p.parseBinary)
	p.registerInfix(lexer.PERCENT, p.parseBinary)
	p.registerInfix(lexer.EQ, p.parseBinary)
	p.registerInfix(lexer.NOT_EQ, p.parseBinary)
	p.registerInfix(lexer.LESS, p.parseBinary)
	p.registerInfix(lexer.LESS_EQ, p.parseBinary)
	p.registerInfix(lexer.GREATER, p.parseBinary)
	p.registerInfix(lexer.GREATER_EQ, p.parseBinary)
	p.registerInfix(lexer.AND_AND, p.parseBinary)
	p.registerInfix(lexer.OR_OR, p.parseBinary)
	p.registerInfix(lexer.LPAREN, p.parseCall)
	p.registerInfix(lexer.LBRACK, p.parseIndex)

	return p
}

func (p *Parser) registerPrefix(t lexer.TokenType, fn prefixParseFn) { p.prefixFns[t] = fn }
func (p *Parser) registerInfix(t lexer.TokenType, fn infixParseFn)   { p.infixFns[t] = fn }

// Errors returns every parse-error diagnostic accumulated so far.
func (p *Parser) Errors() span.List { return p.errs }

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+1]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek().Type == t }

func (p *Parser) expect(t lexer.TokenType) (lexer.Token, bool) {
	if p.curIs(t) {
		return p.advance(), true
	}
	p.errorf(span.ErrUnexpectedToken, p.cur().Pos, "expected %s, got %s", t, p.cur().Type)
	return p.cur(), false
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur().Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) errorf(code span.Code, sp span.Span, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errs = append(p.errs, span.New(code).Message(msg).At(sp).Build())
}

// synchronize advances past the current (broken) construct to the
// next statement boundary, matching the teacher's panic-mode recovery.
func (p *Parser) synchronize() {
	for !p.curIs(lexer.EOF) {
		if p.cur().Type == lexer.SEMICOLON {
			p.advance()
			return
		}
		if p.cur().Type == lexer.RBRACE {
			return
		}
		p.advance()
	}
}

// ParseProgram parses the full token stream into a Program, recovering
// from errors statement by statement so that a single mistake never
// prevents the rest of the file from being parsed (spec §4.2).
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{Sp: span.Make(p.fileID, 1, 1, 0)}
	for !p.curIs(lexer.EOF) {
		start := p.pos
		item := p.parseItem()
		if item != nil {
			prog.Items = append(prog.Items, item)
		}
		if p.pos == start {
			// a parse function returned without consuming anything;
			// force forward progress so a single malformed token can
			// never hang ParseProgram.
			p.synchronize()
		}
	}
	return prog
}

func (p *Parser) parseItem() ast.Item {
	if p.curIs(lexer.FN) {
		return p.parseFunctionDecl()
	}
	stmt := p.parseStatement()
	if stmt == nil {
		return nil
	}
	return &ast.StatementItem{Stmt: stmt}
}
