package lexer

import "github.com/atlas-lang/atlas/internal/span"

// TokenType enumerates every lexical category in the surface grammar.
type TokenType int

const (
	EOF TokenType = iota
	ILLEGAL

	IDENT
	NUMBER
	STRING
	TRUE
	FALSE
	NULL

	// Keywords
	FN
	LET
	VAR
	IF
	ELSE
	WHILE
	FOR
	RETURN
	BREAK
	CONTINUE

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACK
	RBRACK
	COMMA
	SEMICOLON
	COLON
	ARROW // ->

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	ASSIGN
	EQ
	NOT_EQ
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	BANG
	AND_AND
	OR_OR
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	PLUS_PLUS
	MINUS_MINUS

	DOC_COMMENT
	COMMENT
)

var names = map[TokenType]string{
	EOF: "EOF", ILLEGAL: "ILLEGAL",
	IDENT: "IDENT", NUMBER: "NUMBER", STRING: "STRING",
	TRUE: "true", FALSE: "false", NULL: "null",
	FN: "fn", LET: "let", VAR: "var", IF: "if", ELSE: "else",
	WHILE: "while", FOR: "for", RETURN: "return", BREAK: "break", CONTINUE: "continue",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACK: "[", RBRACK: "]",
	COMMA: ",", SEMICOLON: ";", COLON: ":", ARROW: "->",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	ASSIGN: "=", EQ: "==", NOT_EQ: "!=", LESS: "<", LESS_EQ: "<=",
	GREATER: ">", GREATER_EQ: ">=", BANG: "!", AND_AND: "&&", OR_OR: "||",
	PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=", SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=",
	PLUS_PLUS: "++", MINUS_MINUS: "--",
	DOC_COMMENT: "DOC_COMMENT", COMMENT: "COMMENT",
}

func (t TokenType) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "UNKNOWN"
}

var keywords = map[string]TokenType{
	"fn": FN, "let": LET, "var": VAR, "if": IF, "else": ELSE,
	"while": WHILE, "for": FOR, "return": RETURN, "break": BREAK, "continue": CONTINUE,
	"true": TRUE, "false": FALSE, "null": NULL,
}

// LookupIdent classifies name as a keyword token or a plain IDENT.
func LookupIdent(name string) TokenType {
	if tok, ok := keywords[name]; ok {
		return tok
	}
	return IDENT
}

// Token is a single lexical unit.
type Token struct {
	Type   TokenType
	Lexeme string
	Pos    span.Span
}
