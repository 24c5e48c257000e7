package parser

import (
	"github.com/atlas-lang/atlas/internal/ast"
	"github.com/atlas-lang/atlas/internal/lexer"
	"github.com/atlas-lang/atlas/internal/span"
)

// Parse tokenizes and parses source in one step, returning the
// resulting AST together with every lexical and syntax diagnostic
// produced along the way (lexer errors first, in source order).
func Parse(fileID, source string) (*ast.Program, span.List) {
	toks, lexErrs := lexer.Tokenize(fileID, source)
	p := New(fileID, toks)
	prog := p.ParseProgram()

	diags := make(span.List, 0, len(lexErrs)+len(p.Errors()))
	diags = append(diags, lexErrs...)
	diags = append(diags, p.Errors()...)
	return prog, diags
}
