package syntax

import (
	"testing"
)

func parseFileOK(t *testing.T, input string) *File {
	t.Helper()
	p := NewParser(input)
	file := p.ParseFile()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return file
}

func TestParseNamedStruct(t *testing.T) {
	input := `
/// Item data.
#[derive(Serialize, Deserialize)]
pub struct Item {
    /// Display name.
    pub name: String,
    count: u32,
}
`
	file := parseFileOK(t, input)
	if len(file.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(file.Items))
	}

	s, ok := file.Items[0].(*StructDecl)
	if !ok {
		t.Fatalf("expected StructDecl, got %T", file.Items[0])
	}
	if s.Name != "Item" || !s.Public || s.Form != StructNamed {
		t.Errorf("struct header: name=%q public=%v form=%d", s.Name, s.Public, s.Form)
	}
	if s.Doc != "Item data." {
		t.Errorf("struct doc: %q", s.Doc)
	}
	if len(s.Attrs) != 1 || !s.Attrs[0].HasPath("derive") {
		t.Fatalf("expected derive attr, got %+v", s.Attrs)
	}
	if len(s.Attrs[0].MetaPaths) != 2 {
		t.Fatalf("expected 2 derive meta paths, got %v", s.Attrs[0].MetaPaths)
	}
	if s.Attrs[0].MetaPaths[0][0] != "Serialize" || s.Attrs[0].MetaPaths[1][0] != "Deserialize" {
		t.Errorf("derive metas: %v", s.Attrs[0].MetaPaths)
	}

	if len(s.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(s.Fields))
	}
	if s.Fields[0].Name != "name" || !s.Fields[0].Public || s.Fields[0].Doc != "Display name." {
		t.Errorf("field 0: %+v", s.Fields[0])
	}
	if pt, ok := s.Fields[1].Type.(*PathType); !ok || pt.Name() != "u32" {
		t.Errorf("field 1 type: %#v", s.Fields[1].Type)
	}
}

func TestParseTupleAndUnitStructs(t *testing.T) {
	file := parseFileOK(t, `
pub struct Pair(pub i32, String);
struct Marker;
`)
	if len(file.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(file.Items))
	}

	pair := file.Items[0].(*StructDecl)
	if pair.Form != StructTuple || len(pair.Tuple) != 2 {
		t.Errorf("tuple struct: form=%d elems=%d", pair.Form, len(pair.Tuple))
	}
	marker := file.Items[1].(*StructDecl)
	if marker.Form != StructUnit {
		t.Errorf("unit struct: form=%d", marker.Form)
	}
}

func TestParseEnumMixedVariants(t *testing.T) {
	input := `
#[derive(Serialize)]
enum Message {
    Quit,
    Move { x: i32, y: i32 },
    Write(String),
    ChangeColor(i32, i32, i32),
}
`
	file := parseFileOK(t, input)
	e := file.Items[0].(*EnumDecl)
	if e.Name != "Message" || len(e.Variants) != 4 {
		t.Fatalf("enum: name=%q variants=%d", e.Name, len(e.Variants))
	}

	forms := []VariantForm{VariantUnit, VariantStruct, VariantTuple, VariantTuple}
	for i, want := range forms {
		if e.Variants[i].Form != want {
			t.Errorf("variant %d (%s): form=%d want %d", i, e.Variants[i].Name, e.Variants[i].Form, want)
		}
	}
	if len(e.Variants[1].Fields) != 2 {
		t.Errorf("Move fields: %d", len(e.Variants[1].Fields))
	}
	if len(e.Variants[3].Tuple) != 3 {
		t.Errorf("ChangeColor elems: %d", len(e.Variants[3].Tuple))
	}
}

func TestParseUseDecls(t *testing.T) {
	input := `
use serde::Serialize;
use tauri::State as MyState;
use tauri::{AppHandle, Emitter};
use crate::models::*;
`
	file := parseFileOK(t, input)
	if len(file.Items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(file.Items))
	}

	u0 := file.Items[0].(*UseDecl).Tree.(*UsePath)
	if u0.Segment != "serde" {
		t.Errorf("use 0 segment: %q", u0.Segment)
	}
	if n, ok := u0.Child.(*UseName); !ok || n.Name != "Serialize" {
		t.Errorf("use 0 child: %#v", u0.Child)
	}

	u1 := file.Items[1].(*UseDecl).Tree.(*UsePath)
	r, ok := u1.Child.(*UseRename)
	if !ok || r.Name != "State" || r.Alias != "MyState" {
		t.Errorf("use 1 rename: %#v", u1.Child)
	}

	u2 := file.Items[2].(*UseDecl).Tree.(*UsePath)
	g, ok := u2.Child.(*UseGroup)
	if !ok || len(g.Items) != 2 {
		t.Fatalf("use 2 group: %#v", u2.Child)
	}

	u3 := file.Items[3].(*UseDecl).Tree.(*UsePath)
	if u3.Segment != "crate" {
		t.Errorf("use 3 segment: %q", u3.Segment)
	}
	inner := u3.Child.(*UsePath)
	if _, ok := inner.Child.(*UseGlob); !ok {
		t.Errorf("use 3 leaf: %#v", inner.Child)
	}
}

func TestParseFnSignature(t *testing.T) {
	input := `
/// Adds two numbers.
#[tauri::command]
pub async fn add(a: i32, b: Option<String>) -> Result<Vec<u8>, String> {
    unimplemented!()
}
`
	file := parseFileOK(t, input)
	fn := file.Items[0].(*FnDecl)

	if fn.Name != "add" || !fn.Public || !fn.Async {
		t.Errorf("fn header: %q public=%v async=%v", fn.Name, fn.Public, fn.Async)
	}
	if fn.Doc != "Adds two numbers." {
		t.Errorf("fn doc: %q", fn.Doc)
	}
	if len(fn.Attrs) != 1 || !fn.Attrs[0].HasPath("tauri", "command") {
		t.Errorf("fn attrs: %+v", fn.Attrs)
	}

	if len(fn.Params) != 2 {
		t.Fatalf("params: %d", len(fn.Params))
	}
	opt := fn.Params[1].Type.(*PathType)
	if opt.Name() != "Option" || len(opt.Last().Args) != 1 {
		t.Errorf("param 1 type: %#v", opt)
	}

	ret := fn.Return.(*PathType)
	if ret.Name() != "Result" || len(ret.Last().Args) != 2 {
		t.Fatalf("return type: %#v", ret)
	}
	vec := ret.Last().Args[0].(*PathType)
	if vec.Name() != "Vec" {
		t.Errorf("result ok arm: %#v", vec)
	}
}

func TestParseNestedGenerics(t *testing.T) {
	file := parseFileOK(t, `fn f(x: Option<Option<u32>>, m: HashMap<String, Vec<Item>>) {}`)
	fn := file.Items[0].(*FnDecl)

	outer := fn.Params[0].Type.(*PathType)
	inner := outer.Last().Args[0].(*PathType)
	if inner.Name() != "Option" {
		t.Fatalf("inner type: %#v", inner)
	}
	if leaf := inner.Last().Args[0].(*PathType); leaf.Name() != "u32" {
		t.Errorf("leaf type: %#v", leaf)
	}

	m := fn.Params[1].Type.(*PathType)
	if m.Name() != "HashMap" || len(m.Last().Args) != 2 {
		t.Errorf("map type: %#v", m)
	}
}

func TestParseQualifiedAndRefTypes(t *testing.T) {
	file := parseFileOK(t, `fn f(s: &str, w: tauri::WebviewWindow, st: State<'_, Database>) {}`)
	fn := file.Items[0].(*FnDecl)

	ref := fn.Params[0].Type.(*RefType)
	if pt := ref.Elem.(*PathType); pt.Name() != "str" {
		t.Errorf("ref elem: %#v", ref.Elem)
	}

	w := fn.Params[1].Type.(*PathType)
	if len(w.Segments) != 2 || w.Segments[0].Name != "tauri" || w.Name() != "WebviewWindow" {
		t.Errorf("qualified type: %#v", w)
	}

	st := fn.Params[2].Type.(*PathType)
	if st.Name() != "State" || len(st.Last().Args) != 1 {
		t.Errorf("lifetime args should be dropped: %#v", st)
	}
}

func TestParseEmitCalls(t *testing.T) {
	input := `
pub fn notify(app: tauri::AppHandle) {
    app.emit("status-changed", StatusPayload { online: true }).unwrap();
    app.emit_to("main", "refresh", 42).unwrap();
}
`
	file := parseFileOK(t, input)
	fn := file.Items[0].(*FnDecl)

	var calls []*MethodCallExpr
	WalkBlock(fn.Body, func(e Expr) bool {
		if m, ok := e.(*MethodCallExpr); ok && (m.Method == "emit" || m.Method == "emit_to") {
			calls = append(calls, m)
		}
		return true
	})

	if len(calls) != 2 {
		t.Fatalf("expected 2 emit calls, got %d", len(calls))
	}

	emit := calls[0]
	if recv, ok := emit.Receiver.(*PathExpr); !ok || recv.Ident() != "app" {
		t.Errorf("emit receiver: %#v", emit.Receiver)
	}
	if lit := emit.Args[0].(*LitExpr); lit.Kind != LitString || lit.Value != "status-changed" {
		t.Errorf("emit event name: %#v", emit.Args[0])
	}
	if sl, ok := emit.Args[1].(*StructLitExpr); !ok || sl.TypeName() != "StatusPayload" {
		t.Errorf("emit payload: %#v", emit.Args[1])
	}

	emitTo := calls[1]
	if emitTo.Method != "emit_to" || len(emitTo.Args) != 3 {
		t.Fatalf("emit_to shape: %#v", emitTo)
	}
	if lit := emitTo.Args[2].(*LitExpr); lit.Kind != LitInteger {
		t.Errorf("emit_to payload: %#v", emitTo.Args[2])
	}
}

// Emit calls buried in control flow must still be reachable by the walker.
func TestParseEmitInsideControlFlow(t *testing.T) {
	input := `
fn run(window: tauri::Window, flag: bool) {
    if flag {
        window.emit("opened", ()).unwrap();
    }
    match flag {
        true => window.emit("yes", "ok").unwrap(),
        false => {
            window.emit("no", 1).unwrap();
        }
    }
    for i in 0..3 {
        window.emit("tick", i).unwrap();
    }
}
`
	file := parseFileOK(t, input)
	fn := file.Items[0].(*FnDecl)

	count := 0
	WalkBlock(fn.Body, func(e Expr) bool {
		if m, ok := e.(*MethodCallExpr); ok && m.Method == "emit" {
			count++
		}
		return true
	})
	if count != 4 {
		t.Errorf("expected 4 emit calls, got %d", count)
	}
}

func TestParseSkipsUnmodeledItems(t *testing.T) {
	input := `
mod db;
impl Item {
    fn helper(&self) -> u32 { self.count }
}
const LIMIT: usize = 10;
trait Store { fn get(&self) -> String; }
struct Kept;
`
	file := parseFileOK(t, input)

	var kept *StructDecl
	skipped := 0
	for _, item := range file.Items {
		switch it := item.(type) {
		case *StructDecl:
			kept = it
		case *SkippedItem:
			skipped++
		}
	}
	if kept == nil || kept.Name != "Kept" {
		t.Errorf("struct after skipped items not found")
	}
	if skipped != 4 {
		t.Errorf("expected 4 skipped items, got %d", skipped)
	}
}

func TestParseToleratesComplexBodies(t *testing.T) {
	input := `
pub fn main_entry(app: tauri::AppHandle) {
    let handle = app.clone();
    tauri::Builder::default()
        .invoke_handler(tauri::generate_handler![add, remove])
        .run(tauri::generate_context!())
        .expect("error while running");
    let nums: Vec<u32> = (0..10).map(|x| x * 2).collect::<Vec<_>>();
    if let Some(v) = nums.first() {
        handle.emit("ready", *v).unwrap();
    }
}
`
	file := parseFileOK(t, input)
	fn := file.Items[0].(*FnDecl)
	if fn.Body == nil {
		t.Fatal("body not parsed")
	}

	found := false
	WalkBlock(fn.Body, func(e Expr) bool {
		if m, ok := e.(*MethodCallExpr); ok && m.Method == "emit" {
			found = true
		}
		return true
	})
	if !found {
		t.Error("emit call inside if-let not reached")
	}
}

func TestParseCfgAttr(t *testing.T) {
	input := `
#[cfg_attr(mobile, tauri::mobile_entry_point)]
pub fn run() {}
`
	file := parseFileOK(t, input)
	fn := file.Items[0].(*FnDecl)
	if len(fn.Attrs) != 1 || !fn.Attrs[0].HasPath("cfg_attr") {
		t.Fatalf("attrs: %+v", fn.Attrs)
	}
	metas := fn.Attrs[0].MetaPaths
	if len(metas) != 2 || metas[0][0] != "mobile" || metas[1][len(metas[1])-1] != "mobile_entry_point" {
		t.Errorf("cfg_attr metas: %v", metas)
	}
}

func TestParseBlockDocOnStruct(t *testing.T) {
	input := `
/**
 * @brief Nested data holder.
 */
pub struct Holder {
    value: String,
}
`
	file := parseFileOK(t, input)
	s := file.Items[0].(*StructDecl)
	if s.Doc != "@brief Nested data holder." {
		t.Errorf("block doc: %q", s.Doc)
	}
}

func TestParseErrorOnMalformedStruct(t *testing.T) {
	p := NewParser(`struct Broken { name String }`)
	p.ParseFile()
	if len(p.Errors()) == 0 {
		t.Error("expected parse errors for missing colon")
	}
}

func TestParseErrorReportsLine(t *testing.T) {
	_, err := Parse("struct Ok;\nstruct {")
	if err == nil {
		t.Fatal("expected error")
	}
}
