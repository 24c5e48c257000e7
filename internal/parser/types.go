package parser

import (
	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/lexer"
	"github.com/atlas-lang/atlas/internal/span"
)

// parseTypeRef parses a type annotation: a bare name or `T[]`. Unknown
// names are accepted syntactically; resolving them to types.Unknown
// happens later, in the binder (spec §4.3).
func (p *Parser) parseTypeRef() ast.TypeRef {
	if p.curIs(lexer.NULL) {
		tok := p.advance()
		return &ast.NamedType{Name: "null", Sp: tok.Pos}
	}
	tok, ok := p.expect(lexer.IDENT)
	if !ok {
		return &ast.NamedType{Name: "Unknown", Sp: tok.Pos}
	}
	var t ast.TypeRef = &ast.NamedType{Name: tok.Lexeme, Sp: tok.Pos}
	for p.curIs(lexer.LBRACK) {
		start := p.advance()
		end, _ := p.expect(lexer.RBRACK)
		t = &ast.ArrayType{Elem: t, Sp: span.Merge(start.Pos, end.Pos)}
	}
	return t
}
