package extract

import (
	"strings"

	"github.com/yamada28go/tauria-tsgen/syntax"
)

// primitiveTS maps Rust primitive type names straight to TypeScript.
var primitiveTS = map[string]string{
	"String": "string",
	"str":    "string",
	"bool":   "boolean",
	"u8":     "number",
	"u16":    "number",
	"u32":    "number",
	"u64":    "number",
	"u128":   "number",
	"i8":     "number",
	"i16":    "number",
	"i32":    "number",
	"i64":    "number",
	"i128":   "number",
	"usize":  "number",
	"isize":  "number",
	"f32":    "number",
	"f64":    "number",
}

// typeToTS renders a Rust type as a TypeScript type string. known holds
// the names of all user-defined types. In command context every
// non-primitive name is qualified with the T. namespace prefix; in type
// definition context only names outside the known set are (they resolve
// against the shared types barrel either way).
func typeToTS(t syntax.Type, known map[string]bool, commandCtx bool) string {
	switch ty := t.(type) {
	case *syntax.PathType:
		seg := ty.Last()
		if ts, ok := primitiveTS[seg.Name]; ok {
			return ts
		}

		switch seg.Name {
		case "Option":
			if len(seg.Args) >= 1 {
				inner := typeToTS(seg.Args[0], known, commandCtx)
				return inner + " | undefined"
			}
			return "any"

		case "Vec":
			if len(seg.Args) >= 1 {
				inner := typeToTS(seg.Args[0], known, commandCtx)
				if strings.Contains(inner, " | ") {
					return "(" + inner + ")[]"
				}
				return inner + "[]"
			}
			return "any[]"

		case "HashMap":
			if len(seg.Args) == 2 {
				key := typeToTS(seg.Args[0], known, commandCtx)
				value := typeToTS(seg.Args[1], known, commandCtx)
				return "Record<" + key + ", " + value + ">"
			}
			return "Record<any, any>"

		case "Result":
			if len(seg.Args) >= 1 {
				return typeToTS(seg.Args[0], known, commandCtx)
			}
			return "any"
		}

		if commandCtx || !known[seg.Name] {
			return "T." + seg.Name
		}
		return seg.Name

	case *syntax.RefType:
		// &str reads as a plain string; other references unwrap.
		if pt, ok := ty.Elem.(*syntax.PathType); ok && pt.Name() == "str" {
			return "string"
		}
		return typeToTS(ty.Elem, known, commandCtx)

	case *syntax.TupleType:
		if ty.IsUnit() {
			return "void"
		}
		elems := make([]string, len(ty.Elems))
		for i, elem := range ty.Elems {
			elems[i] = typeToTS(elem, known, commandCtx)
		}
		return "[" + strings.Join(elems, ", ") + "]"

	case *syntax.SliceType:
		inner := typeToTS(ty.Elem, known, commandCtx)
		if strings.Contains(inner, " | ") {
			return "(" + inner + ")[]"
		}
		return inner + "[]"

	default:
		return "any"
	}
}

// userDefinedTypeNames collects, recursively through generic arguments,
// references, and tuples, every known user-defined type name the given
// type mentions.
func userDefinedTypeNames(t syntax.Type, known map[string]bool) []string {
	var names []string

	switch ty := t.(type) {
	case *syntax.PathType:
		seg := ty.Last()
		if known[seg.Name] {
			names = append(names, seg.Name)
		}
		for _, arg := range seg.Args {
			names = append(names, userDefinedTypeNames(arg, known)...)
		}

	case *syntax.RefType:
		names = append(names, userDefinedTypeNames(ty.Elem, known)...)

	case *syntax.TupleType:
		for _, elem := range ty.Elems {
			names = append(names, userDefinedTypeNames(elem, known)...)
		}

	case *syntax.SliceType:
		names = append(names, userDefinedTypeNames(ty.Elem, known)...)
	}

	return names
}
