package extract

import (
	"github.com/yamada28go/tauria-tsgen/syntax"
)

// knownTypeNames collects the names of every struct and enum declared in
// the file, in a full pass before any conversion. References between
// types therefore resolve the same way regardless of declaration order.
func knownTypeNames(file *syntax.File) map[string]bool {
	known := make(map[string]bool)
	for _, item := range file.Items {
		switch it := item.(type) {
		case *syntax.StructDecl:
			known[it.Name] = true
		case *syntax.EnumDecl:
			known[it.Name] = true
		}
	}
	return known
}

// extractTypes converts every struct and enum declaration. Types are
// extracted whether or not they derive the serde traits; the derive flags
// ride along for command extraction to act on.
func extractTypes(file *syntax.File, known map[string]bool, moduleName string) []ExtractedType {
	var types []ExtractedType

	for _, item := range file.Items {
		switch it := item.(type) {
		case *syntax.StructDecl:
			types = append(types, ExtractedType{
				Name:           it.Name,
				Shape:          structToInterface(it, known),
				Serializable:   hasDerive(it.Attrs, "Serialize"),
				Deserializable: hasDerive(it.Attrs, "Deserialize"),
				OriginModule:   moduleName,
			})

		case *syntax.EnumDecl:
			types = append(types, ExtractedType{
				Name:           it.Name,
				Shape:          enumToUnion(it, known),
				Serializable:   hasDerive(it.Attrs, "Serialize"),
				Deserializable: hasDerive(it.Attrs, "Deserialize"),
				OriginModule:   moduleName,
			})
		}
	}

	return types
}

// hasDerive reports whether a #[derive(...)] attribute lists the given
// trait. Matching is on the last path segment, so serde::Serialize counts.
func hasDerive(attrs []*syntax.Attr, trait string) bool {
	for _, attr := range attrs {
		if !attr.HasPath("derive") {
			continue
		}
		for _, meta := range attr.MetaPaths {
			if len(meta) > 0 && meta[len(meta)-1] == trait {
				return true
			}
		}
	}
	return false
}

// structToInterface renders a struct's named fields. Tuple and unit
// structs convert to an interface with no fields.
func structToInterface(s *syntax.StructDecl, known map[string]bool) *Interface {
	iface := &Interface{Doc: s.Doc}
	for _, field := range s.Fields {
		iface.Fields = append(iface.Fields, Field{
			Name: field.Name,
			Type: typeToTS(field.Type, known, false),
			Doc:  field.Doc,
		})
	}
	return iface
}

// enumToUnion renders an enum's variants.
func enumToUnion(e *syntax.EnumDecl, known map[string]bool) *Enum {
	enum := &Enum{Doc: e.Doc}
	for _, v := range e.Variants {
		variant := Variant{Name: v.Name, Doc: v.Doc}
		switch v.Form {
		case syntax.VariantUnit:
			variant.Kind = VariantUnit
		case syntax.VariantTuple:
			variant.Kind = VariantTuple
			for _, t := range v.Tuple {
				variant.Tuple = append(variant.Tuple, typeToTS(t, known, false))
			}
		case syntax.VariantStruct:
			variant.Kind = VariantStruct
			for _, f := range v.Fields {
				variant.Fields = append(variant.Fields, Field{
					Name: f.Name,
					Type: typeToTS(f.Type, known, false),
					Doc:  f.Doc,
				})
			}
		}
		enum.Variants = append(enum.Variants, variant)
	}
	return enum
}
