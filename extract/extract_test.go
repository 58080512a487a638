package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractOne(t *testing.T, source string) *Module {
	t.Helper()
	mod, err := ExtractModule(source, "Test")
	require.NoError(t, err)
	return mod
}

func TestExtractStructFields(t *testing.T) {
	mod := extractOne(t, `
/// Item data.
#[derive(Serialize, Deserialize)]
pub struct Item {
    /// Display name.
    pub name: String,
    pub count: u32,
    pub active: bool,
    pub tags: Vec<String>,
    pub meta: HashMap<String, i64>,
    pub note: Option<String>,
}
`)
	require.Len(t, mod.Types, 1)

	item := mod.Types[0]
	assert.Equal(t, "Item", item.Name)
	assert.True(t, item.Serializable)
	assert.True(t, item.Deserializable)

	iface, ok := item.Shape.(*Interface)
	require.True(t, ok)
	assert.Equal(t, "Item data.", iface.Doc)
	require.Len(t, iface.Fields, 6)

	assert.Equal(t, "Display name.", iface.Fields[0].Doc)
	assert.Equal(t, "string", iface.Fields[0].Type)
	assert.Equal(t, "number", iface.Fields[1].Type)
	assert.Equal(t, "boolean", iface.Fields[2].Type)
	assert.Equal(t, "string[]", iface.Fields[3].Type)
	assert.Equal(t, "Record<string, number>", iface.Fields[4].Type)
	assert.Equal(t, "string | undefined", iface.Fields[5].Type)
}

func TestExtractNestedGenericTypes(t *testing.T) {
	mod := extractOne(t, `
#[derive(Serialize)]
struct Nest {
    deep: Option<Option<u32>>,
    list: Vec<Option<u32>>,
    plain: Vec<u32>,
}
`)
	iface := mod.Types[0].Shape.(*Interface)
	assert.Equal(t, "number | undefined | undefined", iface.Fields[0].Type)
	assert.Equal(t, "(number | undefined)[]", iface.Fields[1].Type)
	assert.Equal(t, "number[]", iface.Fields[2].Type)
}

// Cross references between declared types resolve the same way regardless
// of declaration order.
func TestExtractForwardTypeReference(t *testing.T) {
	mod := extractOne(t, `
#[derive(Serialize)]
struct Outer {
    inner: Inner,
    later: Vec<Inner>,
}

#[derive(Serialize)]
struct Inner {
    v: u8,
}
`)
	iface := mod.Types[0].Shape.(*Interface)
	assert.Equal(t, "Inner", iface.Fields[0].Type)
	assert.Equal(t, "Inner[]", iface.Fields[1].Type)
}

func TestExtractUnknownTypeGetsNamespacePrefix(t *testing.T) {
	mod := extractOne(t, `
#[derive(Serialize)]
struct Holder {
    other: SomewhereElse,
}
`)
	iface := mod.Types[0].Shape.(*Interface)
	assert.Equal(t, "T.SomewhereElse", iface.Fields[0].Type)
}

func TestExtractEnumVariants(t *testing.T) {
	mod := extractOne(t, `
/// Control message.
#[derive(Serialize, Deserialize)]
enum Message {
    /// Stop everything.
    Quit,
    Move { x: i32, y: i32 },
    Write(String),
    ChangeColor(i32, i32, i32),
}
`)
	require.Len(t, mod.Types, 1)
	enum, ok := mod.Types[0].Shape.(*Enum)
	require.True(t, ok)
	assert.Equal(t, "Control message.", enum.Doc)
	require.Len(t, enum.Variants, 4)

	assert.Equal(t, VariantUnit, enum.Variants[0].Kind)
	assert.Equal(t, "Stop everything.", enum.Variants[0].Doc)

	move := enum.Variants[1]
	assert.Equal(t, VariantStruct, move.Kind)
	require.Len(t, move.Fields, 2)
	assert.Equal(t, "number", move.Fields[0].Type)

	write := enum.Variants[2]
	assert.Equal(t, VariantTuple, write.Kind)
	assert.Equal(t, []string{"string"}, write.Tuple)

	color := enum.Variants[3]
	assert.Equal(t, []string{"number", "number", "number"}, color.Tuple)
}

// Types without serde derives are still extracted; the flags just record
// what was missing.
func TestExtractTypeWithoutDerives(t *testing.T) {
	mod := extractOne(t, `
pub struct Plain {
    v: String,
}
`)
	require.Len(t, mod.Types, 1)
	assert.False(t, mod.Types[0].Serializable)
	assert.False(t, mod.Types[0].Deserializable)
}

func TestExtractCommandBasics(t *testing.T) {
	mod := extractOne(t, `
/// Greets the user.
///
/// Returns a greeting message.
#[tauri::command]
fn greet(name: &str) -> String {
    format!("Hello, {}!", name)
}
`)
	require.Len(t, mod.Commands, 1)

	cmd := mod.Commands[0]
	assert.Equal(t, "greet", cmd.Name)
	assert.Equal(t, "Greets the user.\n\nReturns a greeting message.", cmd.Doc)
	require.Len(t, cmd.Args, 1)
	assert.Equal(t, CommandArg{Name: "name", Type: "string"}, cmd.Args[0])
	assert.Equal(t, []string{"name"}, cmd.InvokeArgs)
	assert.Equal(t, "string", cmd.ReturnType)
}

func TestExtractCommandShortAttribute(t *testing.T) {
	mod := extractOne(t, `
#[command]
fn ping() {}
`)
	require.Len(t, mod.Commands, 1)
	assert.Equal(t, "void", mod.Commands[0].ReturnType)
	assert.Empty(t, mod.Commands[0].Args)
}

func TestExtractCommandIgnoresAttributeArguments(t *testing.T) {
	mod := extractOne(t, `
#[tauri::command(rename_all = "snake_case")]
fn do_it(value: i32) -> i32 { value }
`)
	require.Len(t, mod.Commands, 1)
}

func TestExtractNonCommandFunctionSkipped(t *testing.T) {
	mod := extractOne(t, `
fn helper(x: u32) -> u32 { x }
`)
	assert.Empty(t, mod.Commands)
}

func TestExtractCommandDropsInjectedParams(t *testing.T) {
	mod := extractOne(t, `
use tauri::State;

#[tauri::command]
fn save(state: State<'_, Database>, app: tauri::AppHandle, window: tauri::Window,
        view: tauri::WebviewWindow, item: String) -> bool {
    true
}
`)
	require.Len(t, mod.Commands, 1)
	cmd := mod.Commands[0]
	require.Len(t, cmd.Args, 1)
	assert.Equal(t, "item", cmd.Args[0].Name)
	assert.Equal(t, []string{"item"}, cmd.InvokeArgs)
}

// Aliased imports resolve to their full path before the deny list is
// applied, even when the alias name is misleading.
func TestExtractCommandResolvesAliases(t *testing.T) {
	mod := extractOne(t, `
use tauri::State as MyWindow;
use tauri::WebviewWindow as Helper;

#[tauri::command]
fn tricky(s: MyWindow<'_, Db>, h: Helper, real: u32) -> u32 { real }
`)
	require.Len(t, mod.Commands, 1)
	cmd := mod.Commands[0]
	require.Len(t, cmd.Args, 1)
	assert.Equal(t, "real", cmd.Args[0].Name)
}

func TestExtractCommandResultHandling(t *testing.T) {
	mod := extractOne(t, `
#[derive(Serialize, Deserialize)]
struct Point { x: f64, y: f64 }

#[tauri::command]
fn locate() -> Result<Point, String> {
    Ok(Point { x: 0.0, y: 0.0 })
}

#[tauri::command]
fn clear() -> Result<(), String> {
    Ok(())
}
`)
	require.Len(t, mod.Commands, 2)
	assert.Equal(t, "T.Point", mod.Commands[0].ReturnType)
	assert.Equal(t, "void", mod.Commands[1].ReturnType)
}

func TestExtractCommandOpaqueResponse(t *testing.T) {
	mod := extractOne(t, `
use tauri::ipc::Response;

#[tauri::command]
fn raw() -> Response {
    Response::new(vec![])
}

#[tauri::command]
fn raw_full() -> tauri::ipc::Response {
    tauri::ipc::Response::new(vec![])
}
`)
	require.Len(t, mod.Commands, 2)
	assert.Equal(t, "unknown", mod.Commands[0].ReturnType)
	assert.Equal(t, "unknown", mod.Commands[1].ReturnType)
}

// A parameter whose type reaches a non-deserializable user type is
// dropped whole, and the surviving args stay index-aligned with the
// invoke payload keys.
func TestExtractCommandDeserializablePropagation(t *testing.T) {
	mod := extractOne(t, `
#[derive(Serialize)]
struct WriteOnly { v: String }

#[derive(Serialize, Deserialize)]
struct Ok2 { v: String }

#[tauri::command]
fn mix(a: WriteOnly, b: Ok2, c: Vec<WriteOnly>, d: u32) -> u32 { d }
`)
	require.Len(t, mod.Commands, 1)
	cmd := mod.Commands[0]
	require.Len(t, cmd.Args, 2)
	assert.Equal(t, "b", cmd.Args[0].Name)
	assert.Equal(t, "T.Ok2", cmd.Args[0].Type)
	assert.Equal(t, "d", cmd.Args[1].Name)
	assert.Equal(t, []string{"b", "d"}, cmd.InvokeArgs)
}

func TestExtractCommandSerializablePropagation(t *testing.T) {
	mod := extractOne(t, `
#[derive(Deserialize)]
struct ReadOnly { v: String }

#[tauri::command]
fn fetch() -> Vec<ReadOnly> {
    vec![]
}
`)
	require.Len(t, mod.Commands, 1)
	assert.Equal(t, "unknown", mod.Commands[0].ReturnType)
}

func TestExtractGlobalEvents(t *testing.T) {
	mod := extractOne(t, `
#[derive(Serialize, Deserialize)]
struct Ping { n: u32 }

fn broadcast(app: tauri::AppHandle, count: u32) {
    app.emit("ping", Ping { n: 3 }).unwrap();
    app.emit("count", count).unwrap();
    app.emit("hello", "hi").unwrap();
    app.emit("flag", true).unwrap();
    app.emit("empty", ()).unwrap();
}
`)
	require.Len(t, mod.GlobalEvents, 5)

	assert.Equal(t, GlobalEvent{EventName: "ping", PayloadType: "T.Ping"}, mod.GlobalEvents[0])
	assert.Equal(t, GlobalEvent{EventName: "count", PayloadType: "number"}, mod.GlobalEvents[1])
	assert.Equal(t, GlobalEvent{EventName: "hello", PayloadType: "string"}, mod.GlobalEvents[2])
	assert.Equal(t, GlobalEvent{EventName: "flag", PayloadType: "boolean"}, mod.GlobalEvents[3])
	// A unit payload is an expression of no known shape.
	assert.Equal(t, "any", mod.GlobalEvents[4].PayloadType)
}

func TestExtractEventReceiverNames(t *testing.T) {
	mod := extractOne(t, `
fn run(app: tauri::AppHandle, window: tauri::Window, handle: tauri::AppHandle) {
    app.emit("from-app", 1).unwrap();
    window.emit("from-window", 2).unwrap();
    handle.emit("from-other", 3).unwrap();
}
`)
	// Only app and window receivers count as global emitters.
	require.Len(t, mod.GlobalEvents, 2)
	assert.Equal(t, "from-app", mod.GlobalEvents[0].EventName)
	assert.Equal(t, "from-window", mod.GlobalEvents[1].EventName)
}

func TestExtractWindowEvents(t *testing.T) {
	mod := extractOne(t, `
fn notify(handle: tauri::AppHandle, status: String) {
    handle.emit_to("main", "status-update", status).unwrap();
    handle.emit_to("settings", "reload", 1).unwrap();
}
`)
	require.Len(t, mod.WindowEvents, 2)
	assert.Equal(t, WindowEvent{WindowName: "main", EventName: "status-update", PayloadType: "string"}, mod.WindowEvents[0])
	assert.Equal(t, WindowEvent{WindowName: "settings", EventName: "reload", PayloadType: "number"}, mod.WindowEvents[1])
}

func TestExtractEventWithoutPayloadIsVoid(t *testing.T) {
	mod := extractOne(t, `
fn fire(app: tauri::AppHandle) {
    app.emit("done").unwrap();
    app.emit_to("main", "done-here").unwrap();
}
`)
	require.Len(t, mod.GlobalEvents, 1)
	assert.Equal(t, "void", mod.GlobalEvents[0].PayloadType)
	require.Len(t, mod.WindowEvents, 1)
	assert.Equal(t, "void", mod.WindowEvents[0].PayloadType)
}

func TestExtractEventDynamicNameSkipped(t *testing.T) {
	mod := extractOne(t, `
fn fire(app: tauri::AppHandle, name: String) {
    app.emit(&name, 1).unwrap();
}
`)
	assert.Empty(t, mod.GlobalEvents)
}

// Repeated emits of the same event are all recorded, in source order.
func TestExtractEventsAccumulate(t *testing.T) {
	mod := extractOne(t, `
fn first(app: tauri::AppHandle) {
    app.emit("tick", 1).unwrap();
}
fn second(window: tauri::Window) {
    window.emit("tick", "late").unwrap();
}
`)
	require.Len(t, mod.GlobalEvents, 2)
	assert.Equal(t, "number", mod.GlobalEvents[0].PayloadType)
	assert.Equal(t, "string", mod.GlobalEvents[1].PayloadType)
}

func TestExtractEventInsideNestedControlFlow(t *testing.T) {
	mod := extractOne(t, `
fn run(app: tauri::AppHandle, ready: bool) {
    if ready {
        match ready {
            true => {
                app.emit("nested", 1).unwrap();
            }
            false => {}
        }
    }
}
`)
	require.Len(t, mod.GlobalEvents, 1)
	assert.Equal(t, "nested", mod.GlobalEvents[0].EventName)
}

func TestExtractModuleParseError(t *testing.T) {
	_, err := ExtractModule(`struct Broken {`, "Bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad")
}

func TestHasBindings(t *testing.T) {
	empty := extractOne(t, `fn main() {}`)
	assert.False(t, empty.HasBindings())

	withType := extractOne(t, `#[derive(Serialize)] struct S { v: u8 }`)
	assert.True(t, withType.HasBindings())
}
