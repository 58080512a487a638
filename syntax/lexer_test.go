package syntax

import (
	"testing"
)

func TestLexerBasicTokens(t *testing.T) {
	input := `pub struct Point { x: i32, y: i32 }`

	expected := []struct {
		typ     TokenType
		literal string
	}{
		{TokenPub, "pub"},
		{TokenStruct, "struct"},
		{TokenIdent, "Point"},
		{TokenLBrace, "{"},
		{TokenIdent, "x"},
		{TokenColon, ":"},
		{TokenIdent, "i32"},
		{TokenComma, ","},
		{TokenIdent, "y"},
		{TokenColon, ":"},
		{TokenIdent, "i32"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	}

	l := NewLexer(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Fatalf("token %d: expected type %s, got %s (%q)", i, exp.typ, tok.Type, tok.Literal)
		}
		if tok.Literal != exp.literal {
			t.Errorf("token %d: expected literal %q, got %q", i, exp.literal, tok.Literal)
		}
	}
}

func TestLexerMultiCharTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{"::", []TokenType{TokenPathSep, TokenEOF}},
		{"->", []TokenType{TokenArrow, TokenEOF}},
		{"=>", []TokenType{TokenFatArrow, TokenEOF}},
		{"&&", []TokenType{TokenAndAnd, TokenEOF}},
		{"||", []TokenType{TokenOrOr, TokenEOF}},
		{"..", []TokenType{TokenDotDot, TokenEOF}},
		{"..=", []TokenType{TokenDotDot, TokenEOF}},
		{"#[derive]", []TokenType{TokenPound, TokenLBracket, TokenIdent, TokenRBracket, TokenEOF}},
	}

	for _, tt := range tests {
		tokens := Tokenize(tt.input)
		if len(tokens) != len(tt.expected) {
			t.Errorf("%q: expected %d tokens, got %d", tt.input, len(tt.expected), len(tokens))
			continue
		}
		for i, typ := range tt.expected {
			if tokens[i].Type != typ {
				t.Errorf("%q token %d: expected %s, got %s", tt.input, i, typ, tokens[i].Type)
			}
		}
	}
}

// Nested generic closers must come out one token each so that types like
// Option<Option<u32>> parse without a shift-split pass.
func TestLexerAngleBracketsNeverCombine(t *testing.T) {
	tokens := Tokenize("Option<Option<u32>>")

	expected := []TokenType{
		TokenIdent, TokenLt, TokenIdent, TokenLt, TokenIdent,
		TokenGt, TokenGt, TokenEOF,
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, typ := range expected {
		if tokens[i].Type != typ {
			t.Errorf("token %d: expected %s, got %s", i, typ, tokens[i].Type)
		}
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`"with \"escape\""`, `with "escape"`},
		{`"tab\there"`, "tab\there"},
		{`r"raw \n not escaped"`, `raw \n not escaped`},
		{`r#"has "quotes" inside"#`, `has "quotes" inside`},
		{`b"bytes"`, "bytes"},
	}

	for _, tt := range tests {
		tokens := Tokenize(tt.input)
		if tokens[0].Type != TokenString {
			t.Errorf("%q: expected STRING, got %s", tt.input, tokens[0].Type)
			continue
		}
		if tokens[0].Literal != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.expected, tokens[0].Literal)
		}
	}
}

func TestLexerCharVsLifetime(t *testing.T) {
	tests := []struct {
		input   string
		typ     TokenType
		literal string
	}{
		{`'a'`, TokenChar, "a"},
		{`'\n'`, TokenChar, "\n"},
		{`'a`, TokenLifetime, "a"},
		{`'static`, TokenLifetime, "static"},
		{`'_`, TokenLifetime, "_"},
	}

	for _, tt := range tests {
		tokens := Tokenize(tt.input)
		if tokens[0].Type != tt.typ {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.typ, tokens[0].Type)
			continue
		}
		if tokens[0].Literal != tt.literal {
			t.Errorf("%q: expected literal %q, got %q", tt.input, tt.literal, tokens[0].Literal)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"42", TokenInteger},
		{"1_000_000", TokenInteger},
		{"0xFF", TokenInteger},
		{"0b1010", TokenInteger},
		{"42u32", TokenInteger},
		{"3.14", TokenFloat},
		{"1e10", TokenFloat},
		{"2.5f64", TokenFloat},
	}

	for _, tt := range tests {
		tokens := Tokenize(tt.input)
		if tokens[0].Type != tt.typ {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.typ, tokens[0].Type)
		}
		if tokens[0].Literal != tt.input {
			t.Errorf("%q: expected literal preserved, got %q", tt.input, tokens[0].Literal)
		}
	}
}

// A dot followed by an identifier is a method call, not a float.
func TestLexerNumberThenMethod(t *testing.T) {
	tokens := Tokenize("42.to_string()")

	expected := []TokenType{TokenInteger, TokenDot, TokenIdent, TokenLParen, TokenRParen, TokenEOF}
	for i, typ := range expected {
		if tokens[i].Type != typ {
			t.Fatalf("token %d: expected %s, got %s", i, typ, tokens[i].Type)
		}
	}
}

func TestLexerDocComments(t *testing.T) {
	input := "/// First line\n/// Second line\nstruct S;"

	tokens := Tokenize(input)
	if tokens[0].Type != TokenDoc || tokens[0].Literal != "First line" {
		t.Errorf("expected doc %q, got %s %q", "First line", tokens[0].Type, tokens[0].Literal)
	}
	if tokens[1].Type != TokenDoc || tokens[1].Literal != "Second line" {
		t.Errorf("expected doc %q, got %s %q", "Second line", tokens[1].Type, tokens[1].Literal)
	}
	if tokens[2].Type != TokenStruct {
		t.Errorf("expected struct keyword after docs, got %s", tokens[2].Type)
	}
}

func TestLexerBlockDoc(t *testing.T) {
	input := "/**\n * @brief Item data\n */\nstruct Item;"

	tokens := Tokenize(input)
	if tokens[0].Type != TokenDoc {
		t.Fatalf("expected DOC, got %s", tokens[0].Type)
	}
	if tokens[0].Literal != "@brief Item data" {
		t.Errorf("expected gutter stripped, got %q", tokens[0].Literal)
	}
}

func TestLexerNonDocCommentsSkipped(t *testing.T) {
	input := "// plain\n//! inner doc\n/* block /* nested */ */\n/*! inner block */\nfn f() {}"

	tokens := Tokenize(input)
	if tokens[0].Type != TokenFn {
		t.Errorf("expected comments skipped, first token %s %q", tokens[0].Type, tokens[0].Literal)
	}
}

func TestLexerPositions(t *testing.T) {
	input := "fn\nmain"

	l := NewLexer(input)
	fn := l.NextToken()
	if fn.Pos.Line != 1 || fn.Pos.Column != 1 {
		t.Errorf("fn position: got line %d col %d", fn.Pos.Line, fn.Pos.Column)
	}
	main := l.NextToken()
	if main.Pos.Line != 2 {
		t.Errorf("main position: got line %d", main.Pos.Line)
	}
}
