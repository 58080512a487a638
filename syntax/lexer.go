package syntax

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: Tokenizer for the Rust subset
// ---------------------------------------------------------------------------

// Lexer tokenizes Rust source code.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current character
	line    int  // current line (1-based)
	col     int  // current column (1-based)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	// col starts at 0 so the first readChar lands on column 1.
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
		l.pos = l.readPos
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
		l.ch = r
		l.pos = l.readPos
		l.readPos += size

		if r == '\n' {
			l.line++
			l.col = 0
		} else {
			l.col++
		}
	}
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// peekChar2 returns the character after the next one.
func (l *Lexer) peekChar2() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	if l.readPos+size >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos+size:])
	return r
}

// position returns the current position.
func (l *Lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

// NextToken returns the next token. Line docs (///) and block docs
// (/** ... */) are returned as TokenDoc; other comments are skipped.
func (l *Lexer) NextToken() Token {
	if tok, ok := l.skipWhitespaceAndComments(); ok {
		return tok
	}

	pos := l.position()

	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, Literal: "", Pos: pos}

	case l.ch == '(':
		l.readChar()
		return Token{Type: TokenLParen, Literal: "(", Pos: pos}

	case l.ch == ')':
		l.readChar()
		return Token{Type: TokenRParen, Literal: ")", Pos: pos}

	case l.ch == '[':
		l.readChar()
		return Token{Type: TokenLBracket, Literal: "[", Pos: pos}

	case l.ch == ']':
		l.readChar()
		return Token{Type: TokenRBracket, Literal: "]", Pos: pos}

	case l.ch == '{':
		l.readChar()
		return Token{Type: TokenLBrace, Literal: "{", Pos: pos}

	case l.ch == '}':
		l.readChar()
		return Token{Type: TokenRBrace, Literal: "}", Pos: pos}

	case l.ch == ',':
		l.readChar()
		return Token{Type: TokenComma, Literal: ",", Pos: pos}

	case l.ch == ';':
		l.readChar()
		return Token{Type: TokenSemi, Literal: ";", Pos: pos}

	case l.ch == ':':
		l.readChar()
		if l.ch == ':' {
			l.readChar()
			return Token{Type: TokenPathSep, Literal: "::", Pos: pos}
		}
		return Token{Type: TokenColon, Literal: ":", Pos: pos}

	case l.ch == '-':
		l.readChar()
		if l.ch == '>' {
			l.readChar()
			return Token{Type: TokenArrow, Literal: "->", Pos: pos}
		}
		return Token{Type: TokenMinus, Literal: "-", Pos: pos}

	case l.ch == '=':
		l.readChar()
		if l.ch == '>' {
			l.readChar()
			return Token{Type: TokenFatArrow, Literal: "=>", Pos: pos}
		}
		return Token{Type: TokenEq, Literal: "=", Pos: pos}

	case l.ch == '#':
		l.readChar()
		return Token{Type: TokenPound, Literal: "#", Pos: pos}

	case l.ch == '!':
		l.readChar()
		return Token{Type: TokenBang, Literal: "!", Pos: pos}

	case l.ch == '?':
		l.readChar()
		return Token{Type: TokenQuestion, Literal: "?", Pos: pos}

	case l.ch == '.':
		l.readChar()
		if l.ch == '.' {
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return Token{Type: TokenDotDot, Literal: "..=", Pos: pos}
			}
			return Token{Type: TokenDotDot, Literal: "..", Pos: pos}
		}
		return Token{Type: TokenDot, Literal: ".", Pos: pos}

	case l.ch == '&':
		l.readChar()
		if l.ch == '&' {
			l.readChar()
			return Token{Type: TokenAndAnd, Literal: "&&", Pos: pos}
		}
		return Token{Type: TokenAmp, Literal: "&", Pos: pos}

	case l.ch == '|':
		l.readChar()
		if l.ch == '|' {
			l.readChar()
			return Token{Type: TokenOrOr, Literal: "||", Pos: pos}
		}
		return Token{Type: TokenPipe, Literal: "|", Pos: pos}

	// < and > are never combined: nested generic argument lists like
	// Option<Option<T>> must close one bracket per token.
	case l.ch == '<':
		l.readChar()
		return Token{Type: TokenLt, Literal: "<", Pos: pos}

	case l.ch == '>':
		l.readChar()
		return Token{Type: TokenGt, Literal: ">", Pos: pos}

	case l.ch == '+':
		l.readChar()
		return Token{Type: TokenPlus, Literal: "+", Pos: pos}

	case l.ch == '*':
		l.readChar()
		return Token{Type: TokenStar, Literal: "*", Pos: pos}

	case l.ch == '/':
		// Comments were consumed above, so this is division.
		l.readChar()
		return Token{Type: TokenSlash, Literal: "/", Pos: pos}

	case l.ch == '%':
		l.readChar()
		return Token{Type: TokenPercent, Literal: "%", Pos: pos}

	case l.ch == '"':
		return l.readString(pos)

	case l.ch == '\'':
		return l.readCharOrLifetime(pos)

	case l.ch == 'r' && (l.peekChar() == '"' || l.peekChar() == '#'):
		if tok, ok := l.readRawString(pos); ok {
			return tok
		}
		return l.readIdentOrKeyword(pos)

	case l.ch == 'b' && (l.peekChar() == '"' || (l.peekChar() == 'r' && (l.peekChar2() == '"' || l.peekChar2() == '#'))):
		l.readChar() // consume b
		if l.ch == 'r' {
			if tok, ok := l.readRawString(pos); ok {
				return tok
			}
			return l.readIdentOrKeyword(pos)
		}
		return l.readString(pos)

	case isDigit(l.ch):
		return l.readNumber(pos)

	case isIdentStart(l.ch):
		return l.readIdentOrKeyword(pos)

	case l.ch == '^' || l.ch == '@' || l.ch == '~' || l.ch == '$':
		ch := l.ch
		l.readChar()
		return Token{Type: TokenOp, Literal: string(ch), Pos: pos}

	default:
		ch := l.ch
		l.readChar()
		return Token{Type: TokenError, Literal: fmt.Sprintf("unexpected character %q", ch), Pos: pos}
	}
}

// skipWhitespaceAndComments skips whitespace and non-doc comments. When it
// runs into a doc comment it lexes it and returns (token, true).
func (l *Lexer) skipWhitespaceAndComments() (Token, bool) {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch != '/' {
			return Token{}, false
		}

		switch l.peekChar() {
		case '/':
			pos := l.position()
			l.readChar()
			l.readChar()
			if l.ch == '/' && l.peekChar() != '/' {
				// Outer line doc: ///
				l.readChar()
				return l.readLineDoc(pos), true
			}
			// Plain //, //! inner doc, or //// banner: skip to end of line.
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}

		case '*':
			pos := l.position()
			l.readChar()
			l.readChar()
			if l.ch == '*' && l.peekChar() != '/' && l.peekChar() != '*' {
				// Outer block doc: /** ... */
				l.readChar()
				return l.readBlockDoc(pos), true
			}
			// Plain /* ... */ or /*! ... */, possibly nested.
			depth := 1
			for depth > 0 && l.ch != 0 {
				if l.ch == '/' && l.peekChar() == '*' {
					depth++
					l.readChar()
					l.readChar()
				} else if l.ch == '*' && l.peekChar() == '/' {
					depth--
					l.readChar()
					l.readChar()
				} else {
					l.readChar()
				}
			}

		default:
			return Token{}, false
		}
	}
}

// readLineDoc reads the remainder of a /// doc line.
func (l *Lexer) readLineDoc(pos Position) Token {
	var sb strings.Builder
	for l.ch != '\n' && l.ch != 0 {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	text := strings.TrimSuffix(sb.String(), "\r")
	text = strings.TrimPrefix(text, " ")
	return Token{Type: TokenDoc, Literal: text, Pos: pos}
}

// readBlockDoc reads a /** ... */ doc body, stripping the usual * gutter.
func (l *Lexer) readBlockDoc(pos Position) Token {
	var sb strings.Builder
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenDoc, Literal: dedentBlockDoc(sb.String()), Pos: pos}
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return Token{Type: TokenError, Literal: "unterminated block doc comment", Pos: pos}
}

// dedentBlockDoc strips leading whitespace and a single '*' gutter from
// every line of a block doc comment body.
func dedentBlockDoc(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		trimmed = strings.TrimPrefix(trimmed, "*")
		trimmed = strings.TrimPrefix(trimmed, " ")
		trimmed = strings.TrimRight(trimmed, " \t\r")
		out = append(out, trimmed)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// readString reads a "..." string literal, decoding common escapes.
func (l *Lexer) readString(pos Position) Token {
	l.readChar() // consume opening "

	var sb strings.Builder
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			case 't':
				sb.WriteRune('\t')
			case '0':
				sb.WriteRune(0)
			case '\\', '"', '\'':
				sb.WriteRune(l.ch)
			case '\n':
				// Line continuation: swallow leading whitespace.
				l.readChar()
				for l.ch == ' ' || l.ch == '\t' {
					l.readChar()
				}
				continue
			default:
				sb.WriteRune('\\')
				sb.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}

	if l.ch != '"' {
		return Token{Type: TokenError, Literal: "unterminated string", Pos: pos}
	}
	l.readChar() // consume closing "

	return Token{Type: TokenString, Literal: sb.String(), Pos: pos}
}

// readRawString reads r"..." / r#"..."# forms. Returns ok=false if the
// input turns out not to be a raw string after all.
func (l *Lexer) readRawString(pos Position) (Token, bool) {
	save := *l
	l.readChar() // consume r

	hashes := 0
	for l.ch == '#' {
		hashes++
		l.readChar()
	}
	if l.ch != '"' {
		*l = save
		return Token{}, false
	}
	l.readChar() // consume opening "

	closer := `"` + strings.Repeat("#", hashes)
	var sb strings.Builder
	for l.ch != 0 {
		if l.ch == '"' && strings.HasPrefix(l.input[l.pos:], closer) {
			for range closer {
				l.readChar()
			}
			return Token{Type: TokenString, Literal: sb.String(), Pos: pos}, true
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return Token{Type: TokenError, Literal: "unterminated raw string", Pos: pos}, true
}

// readCharOrLifetime disambiguates 'a' (char) from 'a (lifetime).
func (l *Lexer) readCharOrLifetime(pos Position) Token {
	l.readChar() // consume '

	if l.ch == '\\' {
		// Escaped char literal.
		l.readChar()
		ch := l.ch
		l.readChar()
		if l.ch == '\'' {
			l.readChar()
		}
		switch ch {
		case 'n':
			ch = '\n'
		case 'r':
			ch = '\r'
		case 't':
			ch = '\t'
		}
		return Token{Type: TokenChar, Literal: string(ch), Pos: pos}
	}

	if isIdentStart(l.ch) && l.peekChar() != '\'' {
		// Lifetime: 'a, '_, 'static
		start := l.pos
		for isIdentPart(l.ch) {
			l.readChar()
		}
		return Token{Type: TokenLifetime, Literal: l.input[start:l.pos], Pos: pos}
	}

	if l.ch == 0 {
		return Token{Type: TokenError, Literal: "unexpected EOF in character literal", Pos: pos}
	}

	ch := l.ch
	l.readChar()
	if l.ch == '\'' {
		l.readChar()
		return Token{Type: TokenChar, Literal: string(ch), Pos: pos}
	}
	// A bare '_ style lifetime whose ident char was not followed by a quote.
	return Token{Type: TokenLifetime, Literal: string(ch), Pos: pos}
}

// readNumber reads an integer or float literal, including underscores,
// radix prefixes, and type suffixes (42u32, 1.5f64).
func (l *Lexer) readNumber(pos Position) Token {
	start := l.pos
	isFloat := false

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'o' || l.peekChar() == 'b') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return Token{Type: TokenInteger, Literal: l.input[start:l.pos], Pos: pos}
	}

	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	// Fractional part: only when the dot is followed by a digit, so that
	// method calls like 42.to_string() keep their dot.
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		save := *l
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if isDigit(l.ch) {
			isFloat = true
			for isDigit(l.ch) || l.ch == '_' {
				l.readChar()
			}
		} else {
			*l = save
		}
	}

	// Type suffix (u8..i128, usize, f32, ...): folded into the literal.
	if isIdentStart(l.ch) {
		for isIdentPart(l.ch) {
			if l.ch == 'f' && !isFloat {
				isFloat = true
			}
			l.readChar()
		}
	}

	if isFloat {
		return Token{Type: TokenFloat, Literal: l.input[start:l.pos], Pos: pos}
	}
	return Token{Type: TokenInteger, Literal: l.input[start:l.pos], Pos: pos}
}

// readIdentOrKeyword reads an identifier or reserved word.
func (l *Lexer) readIdentOrKeyword(pos Position) Token {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.pos]

	if tokType, ok := reservedWords[literal]; ok {
		return Token{Type: tokType, Literal: literal, Pos: pos}
	}
	return Token{Type: TokenIdent, Literal: literal, Pos: pos}
}

// Helper functions

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// Tokenize returns all tokens from the input.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}
	return tokens
}
