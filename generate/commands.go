package generate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yamada28go/tauria-tsgen/extract"
)

const generatedHeader = "// This file is generated by tauria-tsgen. Do not edit manually.\n"

// RenderCommandInterface renders interface/commands/<Module>.ts: one
// interface named after the module, with a camelCase method per command.
func RenderCommandInterface(mod *extract.Module, exported map[string]bool) string {
	iface := ToPascalCase(mod.Name)

	var sb strings.Builder
	sb.WriteString(generatedHeader)
	if commandsReferenceTypes(mod.Commands, exported) {
		sb.WriteString("import * as T from \"../types\";\n")
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "export interface %s {\n", iface)
	for _, cmd := range mod.Commands {
		writeJSDoc(&sb, cmd.Doc, "  ")
		fmt.Fprintf(&sb, "  %s(%s): Promise<%s>;\n", ToCamelCase(cmd.Name), argList(cmd), cmd.ReturnType)
	}
	sb.WriteString("}\n")

	return sb.String()
}

// RenderCommandAPI renders tauria-api/commands/<Module>.ts: the invoke
// wrapper object implementing the module's command interface. The wire
// command name and the invoke payload keys keep the declared Rust names.
func RenderCommandAPI(mod *extract.Module, exported map[string]bool) string {
	iface := ToPascalCase(mod.Name)

	var sb strings.Builder
	sb.WriteString(generatedHeader)
	sb.WriteString("import { invoke } from \"@tauri-apps/api/core\";\n")
	fmt.Fprintf(&sb, "import { %s } from \"../../interface/commands/%s\";\n", iface, iface)
	if commandsReferenceTypes(mod.Commands, exported) {
		sb.WriteString("import * as T from \"../../interface/types\";\n")
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "export const %s: %s = {\n", ToCamelCase(mod.Name), iface)
	for _, cmd := range mod.Commands {
		fmt.Fprintf(&sb, "  async %s(%s): Promise<%s> {\n", ToCamelCase(cmd.Name), argList(cmd), cmd.ReturnType)
		fmt.Fprintf(&sb, "    return await invoke<%s>(%q%s);\n", cmd.ReturnType, cmd.Name, invokePayload(cmd))
		sb.WriteString("  },\n")
	}
	sb.WriteString("};\n")

	return sb.String()
}

// RenderMockAPI renders mock-api/<Module>.ts: an implementation of the
// command interface whose methods throw until filled in by hand.
func RenderMockAPI(mod *extract.Module, exported map[string]bool) string {
	iface := ToPascalCase(mod.Name)

	var sb strings.Builder
	sb.WriteString(generatedHeader)
	sb.WriteString("// Replace the method bodies with mock behavior for frontend development.\n")
	fmt.Fprintf(&sb, "import { %s } from \"../interface/commands/%s\";\n", iface, iface)
	if commandsReferenceTypes(mod.Commands, exported) {
		sb.WriteString("import * as T from \"../interface/types\";\n")
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "export const %s: %s = {\n", ToCamelCase(mod.Name), iface)
	for _, cmd := range mod.Commands {
		fmt.Fprintf(&sb, "  async %s(%s): Promise<%s> {\n", ToCamelCase(cmd.Name), argList(cmd), cmd.ReturnType)
		fmt.Fprintf(&sb, "    throw new Error(\"mock not implemented: %s\");\n", cmd.Name)
		sb.WriteString("  },\n")
	}
	sb.WriteString("};\n")

	return sb.String()
}

// argList renders a command's parameter list with the declared names.
func argList(cmd extract.CommandDescriptor) string {
	args := make([]string, len(cmd.Args))
	for i, a := range cmd.Args {
		args[i] = fmt.Sprintf("%s: %s", a.Name, a.Type)
	}
	return strings.Join(args, ", ")
}

// invokePayload renders the invoke argument object. InvokeArgs is
// index-aligned with Args, and keys keep the declared parameter names.
func invokePayload(cmd extract.CommandDescriptor) string {
	if len(cmd.InvokeArgs) == 0 {
		return ""
	}
	pairs := make([]string, len(cmd.InvokeArgs))
	for i, name := range cmd.InvokeArgs {
		pairs[i] = fmt.Sprintf("%s: %s", name, name)
	}
	return ", { " + strings.Join(pairs, ", ") + " }"
}

// commandsReferenceTypes reports whether any command argument or return
// type references an exported user-defined type, which decides whether
// the T namespace import is emitted.
func commandsReferenceTypes(cmds []extract.CommandDescriptor, exported map[string]bool) bool {
	for _, cmd := range cmds {
		for _, arg := range cmd.Args {
			if referencesExportedType(arg.Type, exported) {
				return true
			}
		}
		if referencesExportedType(cmd.ReturnType, exported) {
			return true
		}
	}
	return false
}

// referencesExportedType scans a rendered TypeScript type for T.<Name>
// occurrences, including inside composites like Record<string, T.Item>
// or T.Item[], and checks the name against the exported set.
func referencesExportedType(tsType string, exported map[string]bool) bool {
	for i := 0; i+2 <= len(tsType); i++ {
		if !strings.HasPrefix(tsType[i:], "T.") {
			continue
		}
		// The marker must not be the tail of a longer identifier.
		if i > 0 && isIdentRune(rune(tsType[i-1])) {
			continue
		}
		j := i + 2
		for j < len(tsType) && isIdentRune(rune(tsType[j])) {
			j++
		}
		if name := tsType[i+2 : j]; name != "" && exported[name] {
			return true
		}
	}
	return false
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
