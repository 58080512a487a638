package syntax

// ---------------------------------------------------------------------------
// AST node definitions for the Rust subset
// ---------------------------------------------------------------------------

// Position represents a location in source code.
type Position struct {
	Offset int // byte offset
	Line   int // 1-based
	Column int // 1-based
}

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Position
}

// Item is an item-level declaration: use, struct, enum, fn.
type Item interface {
	Node
	item()
}

// Type is a type expression.
type Type interface {
	Node
	typeNode()
}

// Expr is an expression.
type Expr interface {
	Node
	expr()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmt()
}

// File is the root node: the parsed contents of one source file.
type File struct {
	Items []Item
}

// ---------------------------------------------------------------------------
// Attributes
// ---------------------------------------------------------------------------

// Attr is an outer attribute, e.g. #[derive(Serialize, Deserialize)] or
// #[tauri::command]. Path is the attribute path; MetaPaths holds the paths
// inside the parenthesized argument list, when present. Tokens the attribute
// carries beyond paths are not retained.
type Attr struct {
	Position  Position
	Path      []string
	MetaPaths [][]string
}

func (a *Attr) Pos() Position { return a.Position }

// HasPath reports whether the attribute path equals the given segments.
func (a *Attr) HasPath(segments ...string) bool {
	if len(a.Path) != len(segments) {
		return false
	}
	for i, s := range segments {
		if a.Path[i] != s {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

// UseDecl is a use declaration: use path::to::Thing as Alias;
type UseDecl struct {
	Position Position
	Tree     UseTree
}

func (u *UseDecl) Pos() Position { return u.Position }
func (u *UseDecl) item()         {}

// UseTree is one node of a use declaration tree.
type UseTree interface {
	Node
	useTree()
}

// UsePath is a path prefix with a nested tree: serde::Serialize.
type UsePath struct {
	Position Position
	Segment  string
	Child    UseTree
}

func (u *UsePath) Pos() Position { return u.Position }
func (u *UsePath) useTree()      {}

// UseName is a terminal name: the Serialize in use serde::Serialize.
type UseName struct {
	Position Position
	Name     string
}

func (u *UseName) Pos() Position { return u.Position }
func (u *UseName) useTree()      {}

// UseRename is a terminal rename: State as MyState.
type UseRename struct {
	Position Position
	Name     string
	Alias    string
}

func (u *UseRename) Pos() Position { return u.Position }
func (u *UseRename) useTree()      {}

// UseGroup is a brace group: tauri::{State, Window}.
type UseGroup struct {
	Position Position
	Items    []UseTree
}

func (u *UseGroup) Pos() Position { return u.Position }
func (u *UseGroup) useTree()      {}

// UseGlob is a wildcard import: tauri::*.
type UseGlob struct {
	Position Position
}

func (u *UseGlob) Pos() Position { return u.Position }
func (u *UseGlob) useTree()      {}

// StructForm distinguishes the three struct declaration shapes.
type StructForm int

const (
	StructNamed StructForm = iota // struct Point { x: i32 }
	StructTuple                   // struct Pair(i32, i32);
	StructUnit                    // struct Marker;
)

// StructDecl is a struct declaration.
type StructDecl struct {
	Position Position
	Doc      string
	Attrs    []*Attr
	Public   bool
	Name     string
	Form     StructForm
	Fields   []*FieldDef // named form
	Tuple    []Type      // tuple form
}

func (s *StructDecl) Pos() Position { return s.Position }
func (s *StructDecl) item()         {}

// FieldDef is a named struct field.
type FieldDef struct {
	Position Position
	Doc      string
	Attrs    []*Attr
	Public   bool
	Name     string
	Type     Type
}

func (f *FieldDef) Pos() Position { return f.Position }

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Position Position
	Doc      string
	Attrs    []*Attr
	Public   bool
	Name     string
	Variants []*VariantDef
}

func (e *EnumDecl) Pos() Position { return e.Position }
func (e *EnumDecl) item()         {}

// VariantForm distinguishes enum variant shapes.
type VariantForm int

const (
	VariantUnit   VariantForm = iota // Quit
	VariantTuple                     // Write(String)
	VariantStruct                    // Move { x: i32, y: i32 }
)

// VariantDef is one enum variant.
type VariantDef struct {
	Position Position
	Doc      string
	Attrs    []*Attr
	Name     string
	Form     VariantForm
	Fields   []*FieldDef // struct form
	Tuple    []Type      // tuple form
}

func (v *VariantDef) Pos() Position { return v.Position }

// FnDecl is a function declaration.
type FnDecl struct {
	Position Position
	Doc      string
	Attrs    []*Attr
	Public   bool
	Async    bool
	Name     string
	Params   []*Param
	Return   Type // nil when the function returns ()
	Body     *BlockExpr
}

func (f *FnDecl) Pos() Position { return f.Position }
func (f *FnDecl) item()         {}

// Param is one function parameter.
type Param struct {
	Position Position
	Name     string
	Type     Type
}

func (p *Param) Pos() Position { return p.Position }

// SkippedItem records an item kind the parser recognized but does not model
// (impl blocks, mods, traits, consts). Its contents were scanned past.
type SkippedItem struct {
	Position Position
	Keyword  string
}

func (s *SkippedItem) Pos() Position { return s.Position }
func (s *SkippedItem) item()         {}

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// PathSegment is one segment of a path type, with optional generic
// arguments: the Option and the <String> of Option<String>.
type PathSegment struct {
	Name string
	Args []Type
}

// PathType is a (possibly generic, possibly qualified) named type:
// String, Vec<u8>, std::collections::HashMap<String, i32>.
type PathType struct {
	Position Position
	Segments []PathSegment
}

func (t *PathType) Pos() Position { return t.Position }
func (t *PathType) typeNode()     {}

// Last returns the final path segment.
func (t *PathType) Last() PathSegment {
	return t.Segments[len(t.Segments)-1]
}

// Name returns the final segment's name: the HashMap of
// std::collections::HashMap<K, V>.
func (t *PathType) Name() string {
	return t.Last().Name
}

// RefType is a reference type: &T, &mut T, &'a T.
type RefType struct {
	Position Position
	Mutable  bool
	Elem     Type
}

func (t *RefType) Pos() Position { return t.Position }
func (t *RefType) typeNode()     {}

// TupleType is a tuple type: (A, B). An empty Elems slice is the unit
// type ().
type TupleType struct {
	Position Position
	Elems    []Type
}

func (t *TupleType) Pos() Position { return t.Position }
func (t *TupleType) typeNode()     {}

// IsUnit reports whether the tuple is the unit type ().
func (t *TupleType) IsUnit() bool { return len(t.Elems) == 0 }

// SliceType is a slice or array type: [T] or [T; N].
type SliceType struct {
	Position Position
	Elem     Type
}

func (t *SliceType) Pos() Position { return t.Position }
func (t *SliceType) typeNode()     {}

// OpaqueType stands in for type syntax the parser skips (impl Trait,
// dyn Trait, fn pointers). Its tokens were scanned past.
type OpaqueType struct {
	Position Position
}

func (t *OpaqueType) Pos() Position { return t.Position }
func (t *OpaqueType) typeNode()     {}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// LitKind classifies literal expressions.
type LitKind int

const (
	LitString LitKind = iota
	LitInteger
	LitFloat
	LitBool
	LitChar
)

// LitExpr is a literal expression.
type LitExpr struct {
	Position Position
	Kind     LitKind
	Value    string
}

func (e *LitExpr) Pos() Position { return e.Position }
func (e *LitExpr) expr()         {}

// PathExpr is a path expression: x, Some, crate::foo::BAR.
type PathExpr struct {
	Position Position
	Segments []string
}

func (e *PathExpr) Pos() Position { return e.Position }
func (e *PathExpr) expr()         {}

// Ident returns the path if it is a single plain identifier, else "".
func (e *PathExpr) Ident() string {
	if len(e.Segments) == 1 {
		return e.Segments[0]
	}
	return ""
}

// CallExpr is a function call: f(a, b).
type CallExpr struct {
	Position Position
	Fn       Expr
	Args     []Expr
}

func (e *CallExpr) Pos() Position { return e.Position }
func (e *CallExpr) expr()         {}

// MethodCallExpr is a method call: recv.method(a, b).
type MethodCallExpr struct {
	Position Position
	Receiver Expr
	Method   string
	Args     []Expr
}

func (e *MethodCallExpr) Pos() Position { return e.Position }
func (e *MethodCallExpr) expr()         {}

// FieldExpr is a field access: recv.field or tuple index recv.0.
type FieldExpr struct {
	Position Position
	Receiver Expr
	Field    string
}

func (e *FieldExpr) Pos() Position { return e.Position }
func (e *FieldExpr) expr()         {}

// StructLitExpr is a struct literal: Point { x: 1, y: 2 }.
type StructLitExpr struct {
	Position Position
	Path     []string
	Fields   []StructLitField
}

func (e *StructLitExpr) Pos() Position { return e.Position }
func (e *StructLitExpr) expr()         {}

// TypeName returns the final path segment of the literal's type.
func (e *StructLitExpr) TypeName() string {
	return e.Path[len(e.Path)-1]
}

// StructLitField is one field of a struct literal. Value is nil for
// shorthand fields (Point { x, y }).
type StructLitField struct {
	Name  string
	Value Expr
}

// RefExpr is a borrow: &expr or &mut expr.
type RefExpr struct {
	Position Position
	Mutable  bool
	Elem     Expr
}

func (e *RefExpr) Pos() Position { return e.Position }
func (e *RefExpr) expr()         {}

// UnaryExpr is a prefix operator: -x, !x, *x.
type UnaryExpr struct {
	Position Position
	Op       string
	Elem     Expr
}

func (e *UnaryExpr) Pos() Position { return e.Position }
func (e *UnaryExpr) expr()         {}

// BinaryExpr is an infix operation: a + b, a == b.
type BinaryExpr struct {
	Position Position
	Op       string
	Left     Expr
	Right    Expr
}

func (e *BinaryExpr) Pos() Position { return e.Position }
func (e *BinaryExpr) expr()         {}

// IndexExpr is an index access: a[i].
type IndexExpr struct {
	Position Position
	Receiver Expr
	Index    Expr
}

func (e *IndexExpr) Pos() Position { return e.Position }
func (e *IndexExpr) expr()         {}

// TupleExpr is a tuple literal: (a, b).
type TupleExpr struct {
	Position Position
	Elems    []Expr
}

func (e *TupleExpr) Pos() Position { return e.Position }
func (e *TupleExpr) expr()         {}

// ArrayExpr is an array literal: [a, b, c].
type ArrayExpr struct {
	Position Position
	Elems    []Expr
}

func (e *ArrayExpr) Pos() Position { return e.Position }
func (e *ArrayExpr) expr()         {}

// BlockExpr is a braced block of statements.
type BlockExpr struct {
	Position Position
	Stmts    []Stmt
}

func (e *BlockExpr) Pos() Position { return e.Position }
func (e *BlockExpr) expr()         {}

// IfExpr is an if expression, with optional else branch. Cond is nil for
// if-let forms, whose pattern and scrutinee are not modeled.
type IfExpr struct {
	Position Position
	Cond     Expr
	Then     *BlockExpr
	Else     Expr // *BlockExpr, *IfExpr, or nil
}

func (e *IfExpr) Pos() Position { return e.Position }
func (e *IfExpr) expr()         {}

// MatchExpr is a match expression.
type MatchExpr struct {
	Position  Position
	Scrutinee Expr
	Arms      []*MatchArm
}

func (e *MatchExpr) Pos() Position { return e.Position }
func (e *MatchExpr) expr()         {}

// MatchArm is one arm of a match. The pattern is not modeled.
type MatchArm struct {
	Position Position
	Body     Expr
}

// WhileExpr is a while or while-let loop. Cond is nil for while-let.
type WhileExpr struct {
	Position Position
	Cond     Expr
	Body     *BlockExpr
}

func (e *WhileExpr) Pos() Position { return e.Position }
func (e *WhileExpr) expr()         {}

// ForExpr is a for loop. The pattern is not modeled.
type ForExpr struct {
	Position Position
	Iter     Expr
	Body     *BlockExpr
}

func (e *ForExpr) Pos() Position { return e.Position }
func (e *ForExpr) expr()         {}

// LoopExpr is a bare loop.
type LoopExpr struct {
	Position Position
	Body     *BlockExpr
}

func (e *LoopExpr) Pos() Position { return e.Position }
func (e *LoopExpr) expr()         {}

// ReturnExpr is a return, with optional value.
type ReturnExpr struct {
	Position Position
	Value    Expr // may be nil
}

func (e *ReturnExpr) Pos() Position { return e.Position }
func (e *ReturnExpr) expr()         {}

// MacroExpr is a macro invocation: format!(...), generate_handler![...].
// The macro's token contents are not interpreted.
type MacroExpr struct {
	Position Position
	Path     []string
}

func (e *MacroExpr) Pos() Position { return e.Position }
func (e *MacroExpr) expr()         {}

// TryExpr is the ? operator applied to an expression.
type TryExpr struct {
	Position Position
	Elem     Expr
}

func (e *TryExpr) Pos() Position { return e.Position }
func (e *TryExpr) expr()         {}

// AwaitExpr is .await applied to an expression.
type AwaitExpr struct {
	Position Position
	Elem     Expr
}

func (e *AwaitExpr) Pos() Position { return e.Position }
func (e *AwaitExpr) expr()         {}

// ClosureExpr is a closure: |x| body. Parameters are not modeled.
type ClosureExpr struct {
	Position Position
	Body     Expr
}

func (e *ClosureExpr) Pos() Position { return e.Position }
func (e *ClosureExpr) expr()         {}

// UnknownExpr stands in for expression syntax the parser stepped over
// while recovering inside a function body.
type UnknownExpr struct {
	Position Position
}

func (e *UnknownExpr) Pos() Position { return e.Position }
func (e *UnknownExpr) expr()         {}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// LetStmt is a let binding. Name is "" when the pattern is not a plain
// identifier.
type LetStmt struct {
	Position Position
	Name     string
	Type     Type // may be nil
	Value    Expr // may be nil
}

func (s *LetStmt) Pos() Position { return s.Position }
func (s *LetStmt) stmt()         {}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	Position Position
	Expr     Expr
}

func (s *ExprStmt) Pos() Position { return s.Position }
func (s *ExprStmt) stmt()         {}
