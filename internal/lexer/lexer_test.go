package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `let x = 5;
	x = x + 10;
	fn add(a: number, b: number) -> number { return a + b; }
	`

	tests := []struct {
		expectedType   TokenType
		expectedLexeme string
	}{
		{LET, "let"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{NUMBER, "5"},
		{SEMICOLON, ";"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{IDENT, "x"},
		{PLUS, "+"},
		{NUMBER, "10"},
		{SEMICOLON, ";"},
		{FN, "fn"},
		{IDENT, "add"},
		{LPAREN, "("},
		{IDENT, "a"},
		{COLON, ":"},
		{IDENT, "number"},
		{COMMA, ","},
		{IDENT, "b"},
		{COLON, ":"},
		{IDENT, "number"},
		{RPAREN, ")"},
		{ARROW, "->"},
		{IDENT, "number"},
		{LBRACE, "{"},
		{RETURN, "return"},
		{IDENT, "a"},
		{PLUS, "+"},
		{IDENT, "b"},
		{SEMICOLON, ";"},
		{RBRACE, "}"},
		{EOF, ""},
	}

	l := New("<test>", input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (lexeme=%q)",
				i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "fn let var if else while for return break continue true false null"
	expected := []TokenType{FN, LET, VAR, IF, ELSE, WHILE, FOR, RETURN, BREAK, CONTINUE, TRUE, FALSE, NULL, EOF}
	l := New("<test>", input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d] = %s, want %s", i, tok.Type, want)
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	input := "== != <= >= && || += -= *= /= %= ++ -- ->"
	expected := []TokenType{EQ, NOT_EQ, LESS_EQ, GREATER_EQ, AND_AND, OR_OR,
		PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN,
		PLUS_PLUS, MINUS_MINUS, ARROW, EOF}
	l := New("<test>", input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d] = %s, want %s", i, tok.Type, want)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"quote:\""`, `quote:"`},
		{`"\u{41}"`, "A"},
	}
	for _, tt := range tests {
		l := New("<test>", tt.input)
		tok := l.NextToken()
		if tok.Type != STRING {
			t.Fatalf("input %q: expected STRING, got %s", tt.input, tok.Type)
		}
		if tok.Lexeme != tt.want {
			t.Errorf("input %q: lexeme = %q, want %q", tt.input, tok.Lexeme, tt.want)
		}
	}
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	l := New("<test>", `"abc`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING token despite error, got %s", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Fatalf("expected a lexical error for unterminated string")
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []string{"0", "42", "3.14", "1e10", "1.5e-3", "1E+2"}
	for _, in := range tests {
		l := New("<test>", in)
		tok := l.NextToken()
		if tok.Type != NUMBER {
			t.Fatalf("input %q: expected NUMBER, got %s", in, tok.Type)
		}
		if tok.Lexeme != in {
			t.Errorf("input %q: lexeme = %q", in, tok.Lexeme)
		}
		if len(l.Errors()) != 0 {
			t.Errorf("input %q: unexpected lexical errors: %v", in, l.Errors())
		}
	}
}

func TestLineCommentsAreSkipped(t *testing.T) {
	input := "let x = 1; // this is a comment\nlet y = 2;"
	l := New("<test>", input)
	var types []TokenType
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	for _, ty := range types {
		if ty == COMMENT || ty == DOC_COMMENT {
			t.Fatalf("comment token leaked into stream by default: %v", types)
		}
	}
}

func TestPreserveDocComments(t *testing.T) {
	input := "/// does a thing\nfn f() {}"
	l := New("<test>", input, WithPreserveDocComments(true))
	tok := l.NextToken()
	if tok.Type != DOC_COMMENT {
		t.Fatalf("expected DOC_COMMENT, got %s", tok.Type)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("<test>", "@")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Fatalf("expected a lexical error for illegal character")
	}
}

func TestTokenize(t *testing.T) {
	toks, errs := Tokenize("<test>", "let x = 1;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[len(toks)-1].Type != EOF {
		t.Fatalf("expected trailing EOF token")
	}
	if len(toks) != 6 {
		t.Fatalf("expected 6 tokens (let, x, =, 1, ;, EOF), got %d", len(toks))
	}
}
