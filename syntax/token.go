package syntax

import "fmt"

// ---------------------------------------------------------------------------
// Token types for the Rust-subset lexer
// ---------------------------------------------------------------------------

// TokenType represents the type of a token.
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals and names
	TokenIdent    // foo, Bar, _
	TokenLifetime // 'a, '_
	TokenInteger  // 42, 0xFF, 1_000
	TokenFloat    // 3.14, 1e10
	TokenString   // "hello", r#"raw"#
	TokenChar     // 'a', '\n'
	TokenDoc      // /// line doc or /** block doc */

	// Keywords
	TokenAs
	TokenAsync
	TokenAwait
	TokenBreak
	TokenConst
	TokenContinue
	TokenCrate
	TokenDyn
	TokenElse
	TokenEnum
	TokenExtern
	TokenFalse
	TokenFn
	TokenFor
	TokenIf
	TokenImpl
	TokenIn
	TokenLet
	TokenLoop
	TokenMatch
	TokenMod
	TokenMove
	TokenMut
	TokenPub
	TokenRef
	TokenReturn
	TokenSelfValue // self
	TokenSelfType  // Self
	TokenStatic
	TokenStruct
	TokenSuper
	TokenTrait
	TokenTrue
	TokenType_
	TokenUnsafe
	TokenUse
	TokenWhere
	TokenWhile

	// Delimiters and punctuation
	TokenLParen   // (
	TokenRParen   // )
	TokenLBracket // [
	TokenRBracket // ]
	TokenLBrace   // {
	TokenRBrace   // }
	TokenComma    // ,
	TokenSemi     // ;
	TokenColon    // :
	TokenPathSep  // ::
	TokenArrow    // ->
	TokenFatArrow // =>
	TokenPound    // #
	TokenBang     // !
	TokenQuestion // ?
	TokenDot      // .
	TokenDotDot   // .. and ..=
	TokenAmp      // &
	TokenAndAnd   // &&
	TokenPipe     // |
	TokenOrOr     // ||
	TokenLt       // < (never combined, so nested generics close token by token)
	TokenGt       // > (never combined)
	TokenEq       // =
	TokenPlus     // +
	TokenMinus    // -
	TokenStar     // *
	TokenSlash    // /
	TokenPercent  // %

	// Catch-all for operators the parser treats generically (^, @, ~, ...)
	TokenOp
)

var tokenNames = map[TokenType]string{
	TokenEOF:      "EOF",
	TokenError:    "ERROR",
	TokenIdent:    "IDENT",
	TokenLifetime: "LIFETIME",
	TokenInteger:  "INTEGER",
	TokenFloat:    "FLOAT",
	TokenString:   "STRING",
	TokenChar:     "CHAR",
	TokenDoc:      "DOC",
	TokenAs:       "as",
	TokenAsync:    "async",
	TokenAwait:    "await",
	TokenBreak:    "break",
	TokenConst:    "const",
	TokenContinue: "continue",
	TokenCrate:    "crate",
	TokenDyn:      "dyn",
	TokenElse:     "else",
	TokenEnum:     "enum",
	TokenExtern:   "extern",
	TokenFalse:    "false",
	TokenFn:       "fn",
	TokenFor:      "for",
	TokenIf:       "if",
	TokenImpl:     "impl",
	TokenIn:       "in",
	TokenLet:      "let",
	TokenLoop:     "loop",
	TokenMatch:    "match",
	TokenMod:      "mod",
	TokenMove:     "move",
	TokenMut:      "mut",
	TokenPub:      "pub",
	TokenRef:      "ref",
	TokenReturn:   "return",
	TokenSelfValue: "self",
	TokenSelfType: "Self",
	TokenStatic:   "static",
	TokenStruct:   "struct",
	TokenSuper:    "super",
	TokenTrait:    "trait",
	TokenTrue:     "true",
	TokenType_:    "type",
	TokenUnsafe:   "unsafe",
	TokenUse:      "use",
	TokenWhere:    "where",
	TokenWhile:    "while",
	TokenLParen:   "(",
	TokenRParen:   ")",
	TokenLBracket: "[",
	TokenRBracket: "]",
	TokenLBrace:   "{",
	TokenRBrace:   "}",
	TokenComma:    ",",
	TokenSemi:     ";",
	TokenColon:    ":",
	TokenPathSep:  "::",
	TokenArrow:    "->",
	TokenFatArrow: "=>",
	TokenPound:    "#",
	TokenBang:     "!",
	TokenQuestion: "?",
	TokenDot:      ".",
	TokenDotDot:   "..",
	TokenAmp:      "&",
	TokenAndAnd:   "&&",
	TokenPipe:     "|",
	TokenOrOr:     "||",
	TokenLt:       "<",
	TokenGt:       ">",
	TokenEq:       "=",
	TokenPlus:     "+",
	TokenMinus:    "-",
	TokenStar:     "*",
	TokenSlash:    "/",
	TokenPercent:  "%",
	TokenOp:       "OP",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", t)
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string   // the raw text (or decoded value for strings/docs)
	Pos     Position // start position
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	if t.Type == TokenError {
		return fmt.Sprintf("ERROR(%s)", t.Literal)
	}
	if len(t.Literal) > 24 {
		return fmt.Sprintf("%s(%q...)", t.Type, t.Literal[:24])
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}

// Reserved words mapped to their token types.
var reservedWords = map[string]TokenType{
	"as":       TokenAs,
	"async":    TokenAsync,
	"await":    TokenAwait,
	"break":    TokenBreak,
	"const":    TokenConst,
	"continue": TokenContinue,
	"crate":    TokenCrate,
	"dyn":      TokenDyn,
	"else":     TokenElse,
	"enum":     TokenEnum,
	"extern":   TokenExtern,
	"false":    TokenFalse,
	"fn":       TokenFn,
	"for":      TokenFor,
	"if":       TokenIf,
	"impl":     TokenImpl,
	"in":       TokenIn,
	"let":      TokenLet,
	"loop":     TokenLoop,
	"match":    TokenMatch,
	"mod":      TokenMod,
	"move":     TokenMove,
	"mut":      TokenMut,
	"pub":      TokenPub,
	"ref":      TokenRef,
	"return":   TokenReturn,
	"self":     TokenSelfValue,
	"Self":     TokenSelfType,
	"static":   TokenStatic,
	"struct":   TokenStruct,
	"super":    TokenSuper,
	"trait":    TokenTrait,
	"true":     TokenTrue,
	"type":     TokenType_,
	"unsafe":   TokenUnsafe,
	"use":      TokenUse,
	"where":    TokenWhere,
	"while":    TokenWhile,
}

// IsKeyword reports whether t is one of the reserved-word tokens.
func (t TokenType) IsKeyword() bool {
	return t >= TokenAs && t <= TokenWhile
}
