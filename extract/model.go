// Package extract turns parsed Rust source into the binding model the
// TypeScript generator consumes: type definitions, command descriptors,
// and emitted events.
package extract

// Module is everything extracted from one Rust source file.
type Module struct {
	// Name is the module name the output files are grouped under, the
	// source file's base name without the .rs extension.
	Name string

	Types        []ExtractedType
	Commands     []CommandDescriptor
	GlobalEvents []GlobalEvent
	WindowEvents []WindowEvent
}

// ExtractedType is a struct or enum converted for TypeScript generation.
// Types are extracted regardless of their serde derives; Serializable and
// Deserializable record which derives were present so command extraction
// can enforce direction-specific requirements.
type ExtractedType struct {
	Name           string
	Shape          TypeShape
	Serializable   bool
	Deserializable bool

	// OriginModule is the module the type was declared in.
	OriginModule string
}

// TypeShape is the rendered form of an extracted type: *Interface for
// structs, *Enum for enums.
type TypeShape interface {
	shape()
}

// Interface is the TypeScript interface form of a Rust struct. Only named
// fields are carried; tuple and unit structs produce an empty field list.
type Interface struct {
	Doc    string
	Fields []Field
}

func (*Interface) shape() {}

// Field is one interface field with its rendered TypeScript type.
type Field struct {
	Name string
	Type string
	Doc  string
}

// Enum is the TypeScript union form of a Rust enum.
type Enum struct {
	Doc      string
	Variants []Variant
}

func (*Enum) shape() {}

// VariantKind classifies enum variants.
type VariantKind int

const (
	VariantUnit VariantKind = iota
	VariantTuple
	VariantStruct
)

// Variant is one enum variant. Tuple holds rendered member types for tuple
// variants; Fields holds members for struct variants.
type Variant struct {
	Name   string
	Doc    string
	Kind   VariantKind
	Tuple  []string
	Fields []Field
}

// CommandDescriptor is one #[tauri::command] function. Args and InvokeArgs
// are index-aligned: InvokeArgs[i] names the invoke payload key for
// Args[i].
type CommandDescriptor struct {
	Name       string
	Doc        string
	Args       []CommandArg
	InvokeArgs []string
	ReturnType string
}

// CommandArg is one surviving command parameter with its rendered
// TypeScript type.
type CommandArg struct {
	Name string
	Type string
}

// GlobalEvent is an emit call on an app handle or window receiver.
type GlobalEvent struct {
	EventName   string
	PayloadType string
}

// WindowEvent is an emit_to call targeting a named window.
type WindowEvent struct {
	WindowName  string
	EventName   string
	PayloadType string
}
