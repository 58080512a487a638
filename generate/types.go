// Package generate renders the extracted binding model to TypeScript
// source and writes the output tree: interface declarations, invoke
// wrappers, event listener helpers, mock implementations, and barrel
// index files.
package generate

import (
	"fmt"
	"strings"

	"github.com/yamada28go/tauria-tsgen/extract"
)

// RenderTypesIndex renders the shared type declarations file
// (interface/types/index.ts). Only types carrying at least one serde
// derive are exported; untagged types stay internal to extraction.
// Types are emitted in the order given; the Generator sorts them by
// name first so output is deterministic.
func RenderTypesIndex(types []extract.ExtractedType) string {
	var sb strings.Builder

	for _, t := range types {
		if !t.Serializable && !t.Deserializable {
			continue
		}

		fmt.Fprintf(&sb, "//- Generated from %s.rs\n\n", t.OriginModule)
		switch shape := t.Shape.(type) {
		case *extract.Interface:
			renderInterface(&sb, t.Name, shape)
		case *extract.Enum:
			renderEnum(&sb, t.Name, shape)
		}
		sb.WriteString("\n\n\n")
	}

	return sb.String()
}

// HasExportedTypes reports whether the types index would be non-empty.
func HasExportedTypes(types []extract.ExtractedType) bool {
	for _, t := range types {
		if t.Serializable || t.Deserializable {
			return true
		}
	}
	return false
}

func renderInterface(sb *strings.Builder, name string, iface *extract.Interface) {
	writeJSDoc(sb, iface.Doc, "")

	fmt.Fprintf(sb, "export interface %s {\n", name)
	if len(iface.Fields) == 0 {
		sb.WriteString("\n")
	}
	for _, f := range iface.Fields {
		writeJSDoc(sb, f.Doc, "  ")
		fmt.Fprintf(sb, "  %s: %s;\n", f.Name, f.Type)
	}
	sb.WriteString("}")
}

// renderEnum emits a Rust enum as its serde externally-tagged union:
// unit variants as string literals, tuple variants as { Name: T } or
// { Name: [A, B] }, struct variants as { Name: { fields } }.
func renderEnum(sb *strings.Builder, name string, enum *extract.Enum) {
	writeJSDoc(sb, enum.Doc, "")

	fmt.Fprintf(sb, "export type %s =", name)
	if len(enum.Variants) == 0 {
		sb.WriteString(" never;")
		return
	}
	sb.WriteString("\n")

	for i, v := range enum.Variants {
		if v.Doc != "" {
			for _, line := range strings.Split(v.Doc, "\n") {
				fmt.Fprintf(sb, "  // %s\n", line)
			}
		}
		fmt.Fprintf(sb, "  | %s", variantMember(v))
		if i == len(enum.Variants)-1 {
			sb.WriteString(";")
		} else {
			sb.WriteString("\n")
		}
	}
}

func variantMember(v extract.Variant) string {
	switch v.Kind {
	case extract.VariantTuple:
		// serde collapses one-element tuple variants to the bare value.
		if len(v.Tuple) == 1 {
			return fmt.Sprintf("{ %s: %s }", v.Name, v.Tuple[0])
		}
		return fmt.Sprintf("{ %s: [%s] }", v.Name, strings.Join(v.Tuple, ", "))

	case extract.VariantStruct:
		fields := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
		}
		return fmt.Sprintf("{ %s: { %s } }", v.Name, strings.Join(fields, "; "))

	default:
		return fmt.Sprintf("%q", v.Name)
	}
}

// writeJSDoc writes a doc string as a JSDoc block at the given indent.
// Empty docs produce nothing.
func writeJSDoc(sb *strings.Builder, doc, indent string) {
	if doc == "" {
		return
	}
	sb.WriteString(indent + "/**\n")
	for _, line := range strings.Split(doc, "\n") {
		if line == "" {
			sb.WriteString(indent + " *\n")
		} else {
			sb.WriteString(indent + " * " + line + "\n")
		}
	}
	sb.WriteString(indent + " */\n")
}
