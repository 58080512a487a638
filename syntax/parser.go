package syntax

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Parser: Recursive descent parser for the Rust subset
// ---------------------------------------------------------------------------
//
// Item declarations (use, struct, enum, fn signatures) are parsed strictly:
// malformed syntax there is a parse error. Function bodies are parsed
// tolerantly: constructs the expression grammar does not cover are stepped
// over so that method calls elsewhere in the body are still observed.

// Parser parses Rust source code into an AST.
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
	errors    []string
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
	}
	// Read two tokens to fill curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

// curTokenIs checks if the current token is of the given type.
func (p *Parser) curTokenIs(t TokenType) bool {
	return p.curToken.Type == t
}

// peekTokenIs checks if the peek token is of the given type.
func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peekToken.Type == t
}

// expect advances if the current token matches, otherwise records an error.
func (p *Parser) expect(t TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, got %s", t, p.curToken.Type)
	return false
}

// errorf records a parse error.
func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf("line %d: %s", p.curToken.Pos.Line, fmt.Sprintf(format, args...))
	p.errors = append(p.errors, msg)
}

// Errors returns accumulated parse errors.
func (p *Parser) Errors() []string {
	return p.errors
}

// Parse parses a complete source file and returns an error when any parse
// errors were recorded.
func Parse(input string) (*File, error) {
	p := NewParser(input)
	file := p.ParseFile()
	if errs := p.Errors(); len(errs) > 0 {
		return file, fmt.Errorf("parse: %s", strings.Join(errs, "; "))
	}
	return file, nil
}

// ---------------------------------------------------------------------------
// Top-level parsing
// ---------------------------------------------------------------------------

// ParseFile parses the whole input as a sequence of items.
func (p *Parser) ParseFile() *File {
	file := &File{}

	for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		item := p.parseItem()
		if item != nil {
			file.Items = append(file.Items, item)
		}
	}
	if p.curTokenIs(TokenError) {
		p.errorf("%s", p.curToken.Literal)
	}

	return file
}

// parseItem parses one item-level declaration.
func (p *Parser) parseItem() Item {
	doc, attrs := p.parseOuterDocsAndAttrs()

	public := false
	if p.curTokenIs(TokenPub) {
		public = true
		p.nextToken()
		// pub(crate), pub(super), pub(in path)
		if p.curTokenIs(TokenLParen) {
			p.skipBalanced(TokenLParen, TokenRParen)
		}
	}

	switch p.curToken.Type {
	case TokenUse:
		return p.parseUseDecl()
	case TokenStruct:
		return p.parseStructDecl(doc, attrs, public)
	case TokenEnum:
		return p.parseEnumDecl(doc, attrs, public)
	case TokenFn:
		return p.parseFnDecl(doc, attrs, public, false)
	case TokenAsync:
		if p.peekTokenIs(TokenFn) {
			p.nextToken()
			return p.parseFnDecl(doc, attrs, public, true)
		}
		return p.skipItem()
	case TokenEOF:
		return nil
	default:
		return p.skipItem()
	}
}

// skipItem scans past an item kind that is not modeled (impl, mod, trait,
// const, static, type alias, extern block, macro definition). The item ends
// at a semicolon or a balanced brace block at nesting depth zero.
func (p *Parser) skipItem() Item {
	item := &SkippedItem{Position: p.curToken.Pos, Keyword: p.curToken.Literal}

	depth := 0
	for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		switch p.curToken.Type {
		case TokenLParen, TokenLBracket:
			depth++
		case TokenRParen, TokenRBracket:
			depth--
		case TokenLBrace:
			if depth == 0 {
				p.skipBalanced(TokenLBrace, TokenRBrace)
				return item
			}
			depth++
		case TokenRBrace:
			depth--
		case TokenSemi:
			if depth == 0 {
				p.nextToken()
				return item
			}
		}
		p.nextToken()
	}
	return item
}

// skipBalanced consumes from an opening delimiter through its matching
// closer. The current token must be the opener.
func (p *Parser) skipBalanced(open, close TokenType) {
	depth := 0
	for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		if p.curTokenIs(open) {
			depth++
		} else if p.curTokenIs(close) {
			depth--
			if depth == 0 {
				p.nextToken()
				return
			}
		}
		p.nextToken()
	}
}

// parseOuterDocsAndAttrs collects leading doc comments and outer attributes.
// Doc lines are joined with newlines. Inner attributes (#![...]) are skipped.
func (p *Parser) parseOuterDocsAndAttrs() (string, []*Attr) {
	var docs []string
	var attrs []*Attr

	for {
		switch {
		case p.curTokenIs(TokenDoc):
			docs = append(docs, p.curToken.Literal)
			p.nextToken()
		case p.curTokenIs(TokenPound) && p.peekTokenIs(TokenBang):
			p.nextToken()
			p.nextToken()
			if p.curTokenIs(TokenLBracket) {
				p.skipBalanced(TokenLBracket, TokenRBracket)
			}
		case p.curTokenIs(TokenPound):
			if attr := p.parseAttr(); attr != nil {
				attrs = append(attrs, attr)
			}
		default:
			return strings.Join(docs, "\n"), attrs
		}
	}
}

// parseAttr parses one outer attribute: #[path], #[path(meta, ...)],
// #[path = "value"], #[path(key = "value")].
func (p *Parser) parseAttr() *Attr {
	attr := &Attr{Position: p.curToken.Pos}
	p.nextToken() // consume #
	if !p.expect(TokenLBracket) {
		return nil
	}

	attr.Path = p.parseAttrPath()

	if p.curTokenIs(TokenLParen) {
		p.nextToken()
		for !p.curTokenIs(TokenRParen) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			if isPathStart(p.curToken.Type) {
				attr.MetaPaths = append(attr.MetaPaths, p.parseAttrPath())
			}
			// Skip over values and nested argument lists within this element.
			depth := 0
			for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
				if p.curTokenIs(TokenLParen) || p.curTokenIs(TokenLBracket) || p.curTokenIs(TokenLBrace) {
					depth++
				} else if p.curTokenIs(TokenRParen) || p.curTokenIs(TokenRBracket) || p.curTokenIs(TokenRBrace) {
					if depth == 0 {
						break
					}
					depth--
				} else if p.curTokenIs(TokenComma) && depth == 0 {
					p.nextToken()
					break
				}
				p.nextToken()
			}
		}
		if p.curTokenIs(TokenRParen) {
			p.nextToken()
		}
	} else if p.curTokenIs(TokenEq) {
		// #[doc = "..."] style: skip the value.
		for !p.curTokenIs(TokenRBracket) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			p.nextToken()
		}
	}

	if !p.expect(TokenRBracket) {
		return nil
	}
	return attr
}

// parseAttrPath reads a ::-separated path of identifiers and path keywords.
func (p *Parser) parseAttrPath() []string {
	var segs []string
	for isPathStart(p.curToken.Type) {
		segs = append(segs, p.curToken.Literal)
		p.nextToken()
		if !p.curTokenIs(TokenPathSep) {
			break
		}
		p.nextToken()
	}
	return segs
}

// isPathStart reports whether a token can begin a path segment.
func isPathStart(t TokenType) bool {
	switch t {
	case TokenIdent, TokenCrate, TokenSelfValue, TokenSelfType, TokenSuper:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Use declarations
// ---------------------------------------------------------------------------

// parseUseDecl parses: use tree;
func (p *Parser) parseUseDecl() Item {
	decl := &UseDecl{Position: p.curToken.Pos}
	p.nextToken() // consume use

	decl.Tree = p.parseUseTree()
	p.expect(TokenSemi)

	if decl.Tree == nil {
		return nil
	}
	return decl
}

// parseUseTree parses one node of a use tree.
func (p *Parser) parseUseTree() UseTree {
	pos := p.curToken.Pos

	switch {
	case p.curTokenIs(TokenStar):
		p.nextToken()
		return &UseGlob{Position: pos}

	case p.curTokenIs(TokenLBrace):
		group := &UseGroup{Position: pos}
		p.nextToken()
		for !p.curTokenIs(TokenRBrace) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			if sub := p.parseUseTree(); sub != nil {
				group.Items = append(group.Items, sub)
			}
			if p.curTokenIs(TokenComma) {
				p.nextToken()
			}
		}
		p.expect(TokenRBrace)
		return group

	case isPathStart(p.curToken.Type):
		name := p.curToken.Literal
		p.nextToken()

		if p.curTokenIs(TokenPathSep) {
			p.nextToken()
			child := p.parseUseTree()
			if child == nil {
				return nil
			}
			return &UsePath{Position: pos, Segment: name, Child: child}
		}

		if p.curTokenIs(TokenAs) {
			p.nextToken()
			if !p.curTokenIs(TokenIdent) {
				p.errorf("expected identifier after 'as', got %s", p.curToken.Type)
				return nil
			}
			alias := p.curToken.Literal
			p.nextToken()
			return &UseRename{Position: pos, Name: name, Alias: alias}
		}

		return &UseName{Position: pos, Name: name}

	default:
		p.errorf("unexpected %s in use declaration", p.curToken.Type)
		p.nextToken()
		return nil
	}
}

// ---------------------------------------------------------------------------
// Struct and enum declarations
// ---------------------------------------------------------------------------

// parseStructDecl parses named, tuple, and unit struct forms.
func (p *Parser) parseStructDecl(doc string, attrs []*Attr, public bool) Item {
	decl := &StructDecl{
		Position: p.curToken.Pos,
		Doc:      doc,
		Attrs:    attrs,
		Public:   public,
	}
	p.nextToken() // consume struct

	if !p.curTokenIs(TokenIdent) {
		p.errorf("expected struct name, got %s", p.curToken.Type)
		return nil
	}
	decl.Name = p.curToken.Literal
	p.nextToken()

	p.skipGenericParams()
	p.skipWhereClause()

	switch {
	case p.curTokenIs(TokenLBrace):
		decl.Form = StructNamed
		p.nextToken()
		for !p.curTokenIs(TokenRBrace) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			field := p.parseFieldDef()
			if field == nil {
				return nil
			}
			decl.Fields = append(decl.Fields, field)
			if p.curTokenIs(TokenComma) {
				p.nextToken()
			}
		}
		p.expect(TokenRBrace)

	case p.curTokenIs(TokenLParen):
		decl.Form = StructTuple
		p.nextToken()
		for !p.curTokenIs(TokenRParen) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			_, _ = p.parseOuterDocsAndAttrs()
			if p.curTokenIs(TokenPub) {
				p.nextToken()
				if p.curTokenIs(TokenLParen) {
					p.skipBalanced(TokenLParen, TokenRParen)
				}
			}
			t := p.parseType()
			if t == nil {
				return nil
			}
			decl.Tuple = append(decl.Tuple, t)
			if p.curTokenIs(TokenComma) {
				p.nextToken()
			}
		}
		p.expect(TokenRParen)
		p.expect(TokenSemi)

	case p.curTokenIs(TokenSemi):
		decl.Form = StructUnit
		p.nextToken()

	default:
		p.errorf("expected {, (, or ; after struct name, got %s", p.curToken.Type)
		return nil
	}

	return decl
}

// parseFieldDef parses one named field: doc, attrs, visibility, name: Type.
func (p *Parser) parseFieldDef() *FieldDef {
	doc, attrs := p.parseOuterDocsAndAttrs()

	field := &FieldDef{Position: p.curToken.Pos, Doc: doc, Attrs: attrs}
	if p.curTokenIs(TokenPub) {
		field.Public = true
		p.nextToken()
		if p.curTokenIs(TokenLParen) {
			p.skipBalanced(TokenLParen, TokenRParen)
		}
	}

	if !p.curTokenIs(TokenIdent) {
		p.errorf("expected field name, got %s", p.curToken.Type)
		return nil
	}
	field.Name = p.curToken.Literal
	p.nextToken()

	if !p.expect(TokenColon) {
		return nil
	}

	field.Type = p.parseType()
	if field.Type == nil {
		return nil
	}
	return field
}

// parseEnumDecl parses an enum declaration with unit, tuple, and struct
// variants.
func (p *Parser) parseEnumDecl(doc string, attrs []*Attr, public bool) Item {
	decl := &EnumDecl{
		Position: p.curToken.Pos,
		Doc:      doc,
		Attrs:    attrs,
		Public:   public,
	}
	p.nextToken() // consume enum

	if !p.curTokenIs(TokenIdent) {
		p.errorf("expected enum name, got %s", p.curToken.Type)
		return nil
	}
	decl.Name = p.curToken.Literal
	p.nextToken()

	p.skipGenericParams()
	p.skipWhereClause()

	if !p.expect(TokenLBrace) {
		return nil
	}

	for !p.curTokenIs(TokenRBrace) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		variant := p.parseVariantDef()
		if variant == nil {
			return nil
		}
		decl.Variants = append(decl.Variants, variant)
		if p.curTokenIs(TokenComma) {
			p.nextToken()
		}
	}
	p.expect(TokenRBrace)

	return decl
}

// parseVariantDef parses one enum variant.
func (p *Parser) parseVariantDef() *VariantDef {
	doc, attrs := p.parseOuterDocsAndAttrs()

	variant := &VariantDef{Position: p.curToken.Pos, Doc: doc, Attrs: attrs}
	if !p.curTokenIs(TokenIdent) {
		p.errorf("expected variant name, got %s", p.curToken.Type)
		return nil
	}
	variant.Name = p.curToken.Literal
	p.nextToken()

	switch {
	case p.curTokenIs(TokenLParen):
		variant.Form = VariantTuple
		p.nextToken()
		for !p.curTokenIs(TokenRParen) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			t := p.parseType()
			if t == nil {
				return nil
			}
			variant.Tuple = append(variant.Tuple, t)
			if p.curTokenIs(TokenComma) {
				p.nextToken()
			}
		}
		p.expect(TokenRParen)

	case p.curTokenIs(TokenLBrace):
		variant.Form = VariantStruct
		p.nextToken()
		for !p.curTokenIs(TokenRBrace) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			field := p.parseFieldDef()
			if field == nil {
				return nil
			}
			variant.Fields = append(variant.Fields, field)
			if p.curTokenIs(TokenComma) {
				p.nextToken()
			}
		}
		p.expect(TokenRBrace)

	default:
		variant.Form = VariantUnit
	}

	// Explicit discriminant: Variant = 3
	if p.curTokenIs(TokenEq) {
		p.nextToken()
		for !p.curTokenIs(TokenComma) && !p.curTokenIs(TokenRBrace) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			p.nextToken()
		}
	}

	return variant
}

// ---------------------------------------------------------------------------
// Function declarations
// ---------------------------------------------------------------------------

// parseFnDecl parses a function signature strictly and its body tolerantly.
func (p *Parser) parseFnDecl(doc string, attrs []*Attr, public, async bool) Item {
	decl := &FnDecl{
		Position: p.curToken.Pos,
		Doc:      doc,
		Attrs:    attrs,
		Public:   public,
		Async:    async,
	}
	p.nextToken() // consume fn

	if !p.curTokenIs(TokenIdent) {
		p.errorf("expected function name, got %s", p.curToken.Type)
		return nil
	}
	decl.Name = p.curToken.Literal
	p.nextToken()

	p.skipGenericParams()

	if !p.expect(TokenLParen) {
		return nil
	}
	for !p.curTokenIs(TokenRParen) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		param := p.parseParam()
		if param != nil {
			decl.Params = append(decl.Params, param)
		}
		if p.curTokenIs(TokenComma) {
			p.nextToken()
		}
	}
	if !p.expect(TokenRParen) {
		return nil
	}

	if p.curTokenIs(TokenArrow) {
		p.nextToken()
		decl.Return = p.parseType()
		if decl.Return == nil {
			return nil
		}
	}

	p.skipWhereClause()

	if p.curTokenIs(TokenSemi) {
		// Trait method or extern declaration without a body.
		p.nextToken()
		return decl
	}

	if !p.curTokenIs(TokenLBrace) {
		p.errorf("expected function body, got %s", p.curToken.Type)
		return nil
	}
	decl.Body = p.parseBlock()

	return decl
}

// parseParam parses one parameter. Receivers (self in its forms) are
// consumed and reported as nil.
func (p *Parser) parseParam() *Param {
	_, _ = p.parseOuterDocsAndAttrs()

	pos := p.curToken.Pos

	// self receivers: self, mut self, &self, &mut self, &'a self
	if p.curTokenIs(TokenSelfValue) {
		p.nextToken()
		return nil
	}
	if p.curTokenIs(TokenAmp) {
		save := *p
		saveLexer := *p.lexer
		p.nextToken()
		if p.curTokenIs(TokenLifetime) {
			p.nextToken()
		}
		if p.curTokenIs(TokenMut) {
			p.nextToken()
		}
		if p.curTokenIs(TokenSelfValue) {
			p.nextToken()
			return nil
		}
		*p = save
		*p.lexer = saveLexer
	}
	if p.curTokenIs(TokenMut) && p.peekTokenIs(TokenSelfValue) {
		p.nextToken()
		p.nextToken()
		return nil
	}

	if p.curTokenIs(TokenMut) {
		p.nextToken()
	}

	name := ""
	if p.curTokenIs(TokenIdent) {
		name = p.curToken.Literal
		p.nextToken()
	} else {
		// Non-identifier pattern: skip it up to the colon.
		depth := 0
		for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			if p.curTokenIs(TokenLParen) || p.curTokenIs(TokenLBracket) {
				depth++
			} else if p.curTokenIs(TokenRParen) || p.curTokenIs(TokenRBracket) {
				if depth == 0 {
					break
				}
				depth--
			} else if p.curTokenIs(TokenColon) && depth == 0 {
				break
			}
			p.nextToken()
		}
	}

	if !p.expect(TokenColon) {
		return nil
	}

	t := p.parseType()
	if t == nil {
		return nil
	}
	return &Param{Position: pos, Name: name, Type: t}
}

// skipGenericParams skips a <...> generic parameter list when present.
func (p *Parser) skipGenericParams() {
	if !p.curTokenIs(TokenLt) {
		return
	}
	depth := 0
	for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		if p.curTokenIs(TokenLt) {
			depth++
		} else if p.curTokenIs(TokenGt) {
			depth--
			if depth == 0 {
				p.nextToken()
				return
			}
		}
		p.nextToken()
	}
}

// skipWhereClause skips a where clause, stopping before { or ;.
func (p *Parser) skipWhereClause() {
	if !p.curTokenIs(TokenWhere) {
		return
	}
	depth := 0
	for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		switch p.curToken.Type {
		case TokenLParen, TokenLBracket, TokenLt:
			depth++
		case TokenRParen, TokenRBracket, TokenGt:
			depth--
		case TokenLBrace, TokenSemi:
			if depth <= 0 {
				return
			}
		}
		p.nextToken()
	}
}

// ---------------------------------------------------------------------------
// Type parsing
// ---------------------------------------------------------------------------

// parseType parses a type expression.
func (p *Parser) parseType() Type {
	pos := p.curToken.Pos

	switch p.curToken.Type {
	case TokenAmp:
		p.nextToken()
		if p.curTokenIs(TokenLifetime) {
			p.nextToken()
		}
		mutable := false
		if p.curTokenIs(TokenMut) {
			mutable = true
			p.nextToken()
		}
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return &RefType{Position: pos, Mutable: mutable, Elem: elem}

	case TokenLParen:
		p.nextToken()
		tuple := &TupleType{Position: pos}
		for !p.curTokenIs(TokenRParen) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			t := p.parseType()
			if t == nil {
				return nil
			}
			tuple.Elems = append(tuple.Elems, t)
			if p.curTokenIs(TokenComma) {
				p.nextToken()
			}
		}
		if !p.expect(TokenRParen) {
			return nil
		}
		return tuple

	case TokenLBracket:
		p.nextToken()
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		if p.curTokenIs(TokenSemi) {
			// Fixed-size array: skip the length expression.
			for !p.curTokenIs(TokenRBracket) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
				p.nextToken()
			}
		}
		if !p.expect(TokenRBracket) {
			return nil
		}
		return &SliceType{Position: pos, Elem: elem}

	case TokenImpl, TokenDyn, TokenFn:
		// impl Trait / dyn Trait / fn(..) -> T: not modeled. Scan past
		// the bound list.
		p.skipTypeOpaque()
		return &OpaqueType{Position: pos}

	default:
		if !isPathStart(p.curToken.Type) {
			p.errorf("expected type, got %s", p.curToken.Type)
			return nil
		}
		return p.parsePathType()
	}
}

// parsePathType parses a path type with per-segment generic arguments.
func (p *Parser) parsePathType() Type {
	pt := &PathType{Position: p.curToken.Pos}

	// Leading :: for fully-qualified paths.
	if p.curTokenIs(TokenPathSep) {
		p.nextToken()
	}

	for {
		if !isPathStart(p.curToken.Type) {
			p.errorf("expected path segment, got %s", p.curToken.Type)
			return nil
		}
		seg := PathSegment{Name: p.curToken.Literal}
		p.nextToken()

		if p.curTokenIs(TokenLt) {
			p.nextToken()
			for !p.curTokenIs(TokenGt) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
				if p.curTokenIs(TokenLifetime) {
					p.nextToken()
				} else {
					t := p.parseType()
					if t == nil {
						return nil
					}
					seg.Args = append(seg.Args, t)
				}
				if p.curTokenIs(TokenComma) {
					p.nextToken()
				}
			}
			if !p.expect(TokenGt) {
				return nil
			}
		}

		pt.Segments = append(pt.Segments, seg)

		if p.curTokenIs(TokenPathSep) {
			p.nextToken()
			continue
		}
		break
	}

	return pt
}

// skipTypeOpaque scans past impl/dyn/fn type syntax: everything up to a
// token that cannot continue a bound list.
func (p *Parser) skipTypeOpaque() {
	depth := 0
	for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		switch p.curToken.Type {
		case TokenLParen, TokenLBracket, TokenLt:
			depth++
		case TokenRParen, TokenRBracket:
			if depth == 0 {
				return
			}
			depth--
		case TokenGt:
			if depth == 0 {
				return
			}
			depth--
		case TokenComma, TokenSemi, TokenLBrace, TokenRBrace, TokenWhere, TokenEq:
			if depth == 0 {
				return
			}
		}
		p.nextToken()
	}
}

// ---------------------------------------------------------------------------
// Function bodies (tolerant)
// ---------------------------------------------------------------------------

// parseBlock parses a braced statement block. The current token must be {.
func (p *Parser) parseBlock() *BlockExpr {
	block := &BlockExpr{Position: p.curToken.Pos}
	p.nextToken() // consume {

	for !p.curTokenIs(TokenRBrace) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		if p.curTokenIs(TokenSemi) || p.curTokenIs(TokenDoc) {
			p.nextToken()
			continue
		}
		stmt := p.parseStmt()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	if p.curTokenIs(TokenRBrace) {
		p.nextToken()
	}

	return block
}

// parseStmt parses one statement inside a block.
func (p *Parser) parseStmt() Stmt {
	pos := p.curToken.Pos

	// Leading attributes on statements are discarded.
	for p.curTokenIs(TokenPound) {
		p.nextToken()
		if p.curTokenIs(TokenBang) {
			p.nextToken()
		}
		if p.curTokenIs(TokenLBracket) {
			p.skipBalanced(TokenLBracket, TokenRBracket)
		}
	}

	// Nested items inside a body are not modeled.
	switch p.curToken.Type {
	case TokenUse, TokenStruct, TokenEnum, TokenImpl, TokenMod, TokenTrait,
		TokenConst, TokenStatic, TokenType_, TokenExtern:
		p.skipItem()
		return nil
	case TokenFn:
		p.skipItem()
		return nil
	}

	if p.curTokenIs(TokenLet) {
		return p.parseLetStmt()
	}

	expr := p.parseExpr(true)
	if expr == nil {
		// Tolerant recovery: step over a token the grammar does not
		// cover and keep going.
		p.nextToken()
		return nil
	}
	return &ExprStmt{Position: pos, Expr: expr}
}

// parseLetStmt parses: let [mut] pattern [: Type] [= expr];
func (p *Parser) parseLetStmt() Stmt {
	stmt := &LetStmt{Position: p.curToken.Pos}
	p.nextToken() // consume let

	if p.curTokenIs(TokenMut) {
		p.nextToken()
	}

	if p.curTokenIs(TokenIdent) && (p.peekTokenIs(TokenColon) || p.peekTokenIs(TokenEq) || p.peekTokenIs(TokenSemi)) {
		stmt.Name = p.curToken.Literal
		p.nextToken()
	} else {
		// Destructuring or other pattern: skip up to : or = at depth 0.
		depth := 0
		for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			if p.curTokenIs(TokenLParen) || p.curTokenIs(TokenLBracket) || p.curTokenIs(TokenLBrace) {
				depth++
			} else if p.curTokenIs(TokenRParen) || p.curTokenIs(TokenRBracket) || p.curTokenIs(TokenRBrace) {
				depth--
			} else if depth == 0 && (p.curTokenIs(TokenColon) || p.curTokenIs(TokenEq) || p.curTokenIs(TokenSemi)) {
				break
			}
			p.nextToken()
		}
	}

	if p.curTokenIs(TokenColon) {
		p.nextToken()
		stmt.Type = p.parseType()
	}

	if p.curTokenIs(TokenEq) {
		p.nextToken()
		stmt.Value = p.parseExpr(true)
	}

	if p.curTokenIs(TokenSemi) {
		p.nextToken()
	}

	return stmt
}

// Operator precedence levels, lowest first.
const (
	precLowest  = iota
	precAssign  // = += -=
	precRange   // .. ..=
	precOr      // ||
	precAnd     // &&
	precCompare // == != < <= > >=
	precSum     // + -
	precProduct // * / %
)

// binaryPrec returns the precedence of the current token as an infix
// operator, or precLowest when it is not one.
func (p *Parser) binaryPrec() int {
	switch p.curToken.Type {
	case TokenEq:
		return precAssign
	case TokenDotDot:
		return precRange
	case TokenOrOr:
		return precOr
	case TokenAndAnd:
		return precAnd
	case TokenLt, TokenGt, TokenBang, TokenPipe, TokenAmp:
		// < > as comparisons; ! never infix; | & as bitwise, folded in
		// with comparisons since relative binding does not matter here.
		if p.curTokenIs(TokenBang) {
			return precLowest
		}
		return precCompare
	case TokenPlus, TokenMinus:
		return precSum
	case TokenStar, TokenSlash, TokenPercent:
		return precProduct
	}
	return precLowest
}

// parseExpr parses an expression. structLit controls whether a path may be
// followed by a brace struct literal; it is false in condition positions
// where the brace starts the block instead.
func (p *Parser) parseExpr(structLit bool) Expr {
	return p.parseBinaryExpr(precLowest, structLit)
}

// parseBinaryExpr folds infix operators with precedence climbing.
func (p *Parser) parseBinaryExpr(minPrec int, structLit bool) Expr {
	left := p.parseUnaryExpr(structLit)
	if left == nil {
		return nil
	}

	for {
		// Two-token operators: == != <= >= lex as a pair ending in =.
		if p.peekTokenIs(TokenEq) &&
			(p.curTokenIs(TokenEq) || p.curTokenIs(TokenBang) || p.curTokenIs(TokenLt) || p.curTokenIs(TokenGt)) {
			op := p.curToken.Literal + "="
			pos := p.curToken.Pos
			p.nextToken()
			p.nextToken()
			right := p.parseBinaryExpr(precCompare, structLit)
			if right == nil {
				return left
			}
			left = &BinaryExpr{Position: pos, Op: op, Left: left, Right: right}
			continue
		}

		// `as` casts: keep the operand, scan past the target type.
		if p.curTokenIs(TokenAs) {
			p.nextToken()
			p.parseType()
			continue
		}

		prec := p.binaryPrec()
		if prec <= minPrec {
			return left
		}

		op := p.curToken.Literal
		pos := p.curToken.Pos
		p.nextToken()

		right := p.parseBinaryExpr(prec, structLit)
		if right == nil {
			return left
		}
		left = &BinaryExpr{Position: pos, Op: op, Left: left, Right: right}
	}
}

// parseUnaryExpr parses prefix operators, then a postfix chain.
func (p *Parser) parseUnaryExpr(structLit bool) Expr {
	pos := p.curToken.Pos

	switch p.curToken.Type {
	case TokenAmp:
		p.nextToken()
		mutable := false
		if p.curTokenIs(TokenMut) {
			mutable = true
			p.nextToken()
		}
		elem := p.parseUnaryExpr(structLit)
		if elem == nil {
			return nil
		}
		return &RefExpr{Position: pos, Mutable: mutable, Elem: elem}

	case TokenMinus, TokenBang, TokenStar:
		op := p.curToken.Literal
		p.nextToken()
		elem := p.parseUnaryExpr(structLit)
		if elem == nil {
			return nil
		}
		return &UnaryExpr{Position: pos, Op: op, Elem: elem}
	}

	return p.parsePostfixExpr(structLit)
}

// parsePostfixExpr parses a primary expression and its postfix chain:
// field access, method calls, calls, indexing, ?, .await.
func (p *Parser) parsePostfixExpr(structLit bool) Expr {
	expr := p.parsePrimaryExpr(structLit)
	if expr == nil {
		return nil
	}

	for {
		switch {
		case p.curTokenIs(TokenDot):
			pos := p.curToken.Pos
			p.nextToken()
			switch {
			case p.curTokenIs(TokenAwait):
				p.nextToken()
				expr = &AwaitExpr{Position: pos, Elem: expr}
			case p.curTokenIs(TokenInteger):
				expr = &FieldExpr{Position: pos, Receiver: expr, Field: p.curToken.Literal}
				p.nextToken()
			case p.curTokenIs(TokenIdent) || p.curToken.Type.IsKeyword():
				name := p.curToken.Literal
				p.nextToken()
				// Turbofish: recv.collect::<Vec<_>>()
				if p.curTokenIs(TokenPathSep) && p.peekTokenIs(TokenLt) {
					p.nextToken()
					p.skipGenericParams()
				}
				if p.curTokenIs(TokenLParen) {
					args := p.parseCallArgs()
					expr = &MethodCallExpr{Position: pos, Receiver: expr, Method: name, Args: args}
				} else {
					expr = &FieldExpr{Position: pos, Receiver: expr, Field: name}
				}
			default:
				return expr
			}

		case p.curTokenIs(TokenLParen):
			pos := p.curToken.Pos
			args := p.parseCallArgs()
			expr = &CallExpr{Position: pos, Fn: expr, Args: args}

		case p.curTokenIs(TokenLBracket):
			pos := p.curToken.Pos
			p.nextToken()
			idx := p.parseExpr(true)
			if p.curTokenIs(TokenRBracket) {
				p.nextToken()
			}
			expr = &IndexExpr{Position: pos, Receiver: expr, Index: idx}

		case p.curTokenIs(TokenQuestion):
			pos := p.curToken.Pos
			p.nextToken()
			expr = &TryExpr{Position: pos, Elem: expr}

		default:
			return expr
		}
	}
}

// parseCallArgs parses a parenthesized argument list. The current token
// must be (.
func (p *Parser) parseCallArgs() []Expr {
	p.nextToken() // consume (
	var args []Expr
	for !p.curTokenIs(TokenRParen) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		arg := p.parseExpr(true)
		if arg == nil {
			// Step over whatever the grammar does not cover so the
			// argument list still closes.
			p.nextToken()
			continue
		}
		args = append(args, arg)
		if p.curTokenIs(TokenComma) {
			p.nextToken()
		}
	}
	if p.curTokenIs(TokenRParen) {
		p.nextToken()
	}
	return args
}

// parsePrimaryExpr parses an atomic expression.
func (p *Parser) parsePrimaryExpr(structLit bool) Expr {
	pos := p.curToken.Pos

	switch p.curToken.Type {
	case TokenString:
		e := &LitExpr{Position: pos, Kind: LitString, Value: p.curToken.Literal}
		p.nextToken()
		return e

	case TokenInteger:
		e := &LitExpr{Position: pos, Kind: LitInteger, Value: p.curToken.Literal}
		p.nextToken()
		return e

	case TokenFloat:
		e := &LitExpr{Position: pos, Kind: LitFloat, Value: p.curToken.Literal}
		p.nextToken()
		return e

	case TokenChar:
		e := &LitExpr{Position: pos, Kind: LitChar, Value: p.curToken.Literal}
		p.nextToken()
		return e

	case TokenTrue, TokenFalse:
		e := &LitExpr{Position: pos, Kind: LitBool, Value: p.curToken.Literal}
		p.nextToken()
		return e

	case TokenIdent, TokenCrate, TokenSelfValue, TokenSelfType, TokenSuper:
		return p.parsePathOrStructLit(structLit)

	case TokenLParen:
		p.nextToken()
		var elems []Expr
		for !p.curTokenIs(TokenRParen) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			e := p.parseExpr(true)
			if e == nil {
				p.nextToken()
				continue
			}
			elems = append(elems, e)
			if p.curTokenIs(TokenComma) {
				p.nextToken()
			}
		}
		if p.curTokenIs(TokenRParen) {
			p.nextToken()
		}
		if len(elems) == 1 {
			return elems[0]
		}
		return &TupleExpr{Position: pos, Elems: elems}

	case TokenLBracket:
		p.nextToken()
		arr := &ArrayExpr{Position: pos}
		for !p.curTokenIs(TokenRBracket) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			e := p.parseExpr(true)
			if e == nil {
				p.nextToken()
				continue
			}
			arr.Elems = append(arr.Elems, e)
			// [expr; count] repeat syntax
			if p.curTokenIs(TokenSemi) || p.curTokenIs(TokenComma) {
				p.nextToken()
			}
		}
		if p.curTokenIs(TokenRBracket) {
			p.nextToken()
		}
		return arr

	case TokenLBrace:
		return p.parseBlock()

	case TokenIf:
		return p.parseIfExpr()

	case TokenMatch:
		return p.parseMatchExpr()

	case TokenWhile:
		p.nextToken()
		var cond Expr
		if p.curTokenIs(TokenLet) {
			p.skipToBlock()
		} else {
			cond = p.parseExpr(false)
		}
		if !p.curTokenIs(TokenLBrace) {
			p.skipToBlock()
		}
		if !p.curTokenIs(TokenLBrace) {
			return &UnknownExpr{Position: pos}
		}
		return &WhileExpr{Position: pos, Cond: cond, Body: p.parseBlock()}

	case TokenFor:
		p.nextToken()
		// Skip the pattern up to `in`.
		for !p.curTokenIs(TokenIn) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			p.nextToken()
		}
		if p.curTokenIs(TokenIn) {
			p.nextToken()
		}
		iter := p.parseExpr(false)
		if !p.curTokenIs(TokenLBrace) {
			p.skipToBlock()
		}
		if !p.curTokenIs(TokenLBrace) {
			return &UnknownExpr{Position: pos}
		}
		return &ForExpr{Position: pos, Iter: iter, Body: p.parseBlock()}

	case TokenLoop:
		p.nextToken()
		if !p.curTokenIs(TokenLBrace) {
			return &UnknownExpr{Position: pos}
		}
		return &LoopExpr{Position: pos, Body: p.parseBlock()}

	case TokenReturn:
		p.nextToken()
		ret := &ReturnExpr{Position: pos}
		if !p.curTokenIs(TokenSemi) && !p.curTokenIs(TokenRBrace) && !p.curTokenIs(TokenRParen) && !p.curTokenIs(TokenComma) {
			ret.Value = p.parseExpr(true)
		}
		return ret

	case TokenBreak, TokenContinue:
		p.nextToken()
		if p.curTokenIs(TokenLifetime) {
			p.nextToken()
		}
		return &UnknownExpr{Position: pos}

	case TokenMove:
		p.nextToken()
		return p.parseClosure(pos)

	case TokenPipe, TokenOrOr:
		return p.parseClosure(pos)

	case TokenAsync:
		// async blocks and async move closures
		p.nextToken()
		if p.curTokenIs(TokenMove) {
			p.nextToken()
		}
		if p.curTokenIs(TokenLBrace) {
			return p.parseBlock()
		}
		return p.parseClosure(pos)

	case TokenUnsafe:
		p.nextToken()
		if p.curTokenIs(TokenLBrace) {
			return p.parseBlock()
		}
		return &UnknownExpr{Position: pos}

	default:
		return nil
	}
}

// parseClosure parses |params| body, skipping the parameter list.
func (p *Parser) parseClosure(pos Position) Expr {
	if p.curTokenIs(TokenOrOr) {
		p.nextToken()
	} else if p.curTokenIs(TokenPipe) {
		p.nextToken()
		depth := 0
		for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			if p.curTokenIs(TokenLParen) || p.curTokenIs(TokenLBracket) || p.curTokenIs(TokenLt) {
				depth++
			} else if p.curTokenIs(TokenRParen) || p.curTokenIs(TokenRBracket) || p.curTokenIs(TokenGt) {
				depth--
			} else if p.curTokenIs(TokenPipe) && depth == 0 {
				p.nextToken()
				break
			}
			p.nextToken()
		}
	} else {
		return &UnknownExpr{Position: pos}
	}

	// Optional return type annotation.
	if p.curTokenIs(TokenArrow) {
		p.nextToken()
		p.parseType()
	}

	body := p.parseExpr(true)
	if body == nil {
		body = &UnknownExpr{Position: pos}
	}
	return &ClosureExpr{Position: pos, Body: body}
}

// parsePathOrStructLit parses a path expression, then decides among macro
// invocation, struct literal, and plain path.
func (p *Parser) parsePathOrStructLit(structLit bool) Expr {
	pos := p.curToken.Pos

	var segs []string
	for {
		segs = append(segs, p.curToken.Literal)
		p.nextToken()
		if p.curTokenIs(TokenPathSep) {
			// Turbofish: Vec::<u8>::new
			if p.peekTokenIs(TokenLt) {
				p.nextToken()
				p.skipGenericParams()
				if p.curTokenIs(TokenPathSep) {
					p.nextToken()
					continue
				}
				break
			}
			p.nextToken()
			if !isPathStart(p.curToken.Type) {
				break
			}
			continue
		}
		break
	}

	// Macro invocation: path!(...), path![...], path!{...}
	if p.curTokenIs(TokenBang) {
		switch p.peekToken.Type {
		case TokenLParen:
			p.nextToken()
			p.skipBalanced(TokenLParen, TokenRParen)
			return &MacroExpr{Position: pos, Path: segs}
		case TokenLBracket:
			p.nextToken()
			p.skipBalanced(TokenLBracket, TokenRBracket)
			return &MacroExpr{Position: pos, Path: segs}
		case TokenLBrace:
			p.nextToken()
			p.skipBalanced(TokenLBrace, TokenRBrace)
			return &MacroExpr{Position: pos, Path: segs}
		}
	}

	// Struct literal: Path { field: value, .. }
	if structLit && p.curTokenIs(TokenLBrace) {
		return p.parseStructLit(pos, segs)
	}

	return &PathExpr{Position: pos, Segments: segs}
}

// parseStructLit parses the braced field list of a struct literal. The
// current token must be {.
func (p *Parser) parseStructLit(pos Position, path []string) Expr {
	lit := &StructLitExpr{Position: pos, Path: path}
	p.nextToken() // consume {

	for !p.curTokenIs(TokenRBrace) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		// Functional update: ..base
		if p.curTokenIs(TokenDotDot) {
			p.nextToken()
			p.parseExpr(true)
			continue
		}
		if !p.curTokenIs(TokenIdent) && !p.curToken.Type.IsKeyword() {
			p.nextToken()
			continue
		}
		field := StructLitField{Name: p.curToken.Literal}
		p.nextToken()
		if p.curTokenIs(TokenColon) {
			p.nextToken()
			field.Value = p.parseExpr(true)
		}
		lit.Fields = append(lit.Fields, field)
		if p.curTokenIs(TokenComma) {
			p.nextToken()
		}
	}
	if p.curTokenIs(TokenRBrace) {
		p.nextToken()
	}

	return lit
}

// parseIfExpr parses if / if-let with optional else chains.
func (p *Parser) parseIfExpr() Expr {
	pos := p.curToken.Pos
	p.nextToken() // consume if

	ifExpr := &IfExpr{Position: pos}

	if p.curTokenIs(TokenLet) {
		// if let PATTERN = expr { ... }: pattern and scrutinee are not
		// modeled, but the scrutinee is parsed so method calls in it
		// are observed.
		p.nextToken()
		depth := 0
		for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			if p.curTokenIs(TokenLParen) || p.curTokenIs(TokenLBracket) {
				depth++
			} else if p.curTokenIs(TokenRParen) || p.curTokenIs(TokenRBracket) {
				depth--
			} else if p.curTokenIs(TokenEq) && depth == 0 {
				p.nextToken()
				break
			} else if p.curTokenIs(TokenLBrace) && depth == 0 {
				break
			}
			p.nextToken()
		}
		if !p.curTokenIs(TokenLBrace) {
			p.parseExpr(false)
		}
	} else {
		ifExpr.Cond = p.parseExpr(false)
	}

	if !p.curTokenIs(TokenLBrace) {
		p.skipToBlock()
	}
	if !p.curTokenIs(TokenLBrace) {
		return &UnknownExpr{Position: pos}
	}
	ifExpr.Then = p.parseBlock()

	if p.curTokenIs(TokenElse) {
		p.nextToken()
		switch {
		case p.curTokenIs(TokenIf):
			ifExpr.Else = p.parseIfExpr()
		case p.curTokenIs(TokenLBrace):
			ifExpr.Else = p.parseBlock()
		}
	}

	return ifExpr
}

// parseMatchExpr parses a match. Arm patterns and guards are scanned past;
// arm bodies are parsed.
func (p *Parser) parseMatchExpr() Expr {
	pos := p.curToken.Pos
	p.nextToken() // consume match

	m := &MatchExpr{Position: pos}
	m.Scrutinee = p.parseExpr(false)

	if !p.curTokenIs(TokenLBrace) {
		p.skipToBlock()
	}
	if !p.curTokenIs(TokenLBrace) {
		return &UnknownExpr{Position: pos}
	}
	p.nextToken() // consume {

	for !p.curTokenIs(TokenRBrace) && !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		armPos := p.curToken.Pos

		// Skip the pattern and guard up to => at depth 0.
		depth := 0
		for !p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
			if p.curTokenIs(TokenLParen) || p.curTokenIs(TokenLBracket) || p.curTokenIs(TokenLBrace) {
				depth++
			} else if p.curTokenIs(TokenRParen) || p.curTokenIs(TokenRBracket) {
				depth--
			} else if p.curTokenIs(TokenRBrace) {
				if depth == 0 {
					break
				}
				depth--
			} else if p.curTokenIs(TokenFatArrow) && depth == 0 {
				p.nextToken()
				break
			}
			p.nextToken()
		}
		if p.curTokenIs(TokenRBrace) {
			break
		}

		body := p.parseExpr(true)
		if body == nil {
			body = &UnknownExpr{Position: armPos}
			p.nextToken()
		}
		m.Arms = append(m.Arms, &MatchArm{Position: armPos, Body: body})

		if p.curTokenIs(TokenComma) {
			p.nextToken()
		}
	}
	if p.curTokenIs(TokenRBrace) {
		p.nextToken()
	}

	return m
}

// skipToBlock advances until the next { at the current nesting level, for
// recovery before a loop or branch body.
func (p *Parser) skipToBlock() {
	for !p.curTokenIs(TokenLBrace) && !p.curTokenIs(TokenRBrace) && !p.curTokenIs(TokenSemi) &&
		!p.curTokenIs(TokenEOF) && !p.curTokenIs(TokenError) {
		p.nextToken()
	}
}
