package generate

import (
	"fmt"
	"sort"
	"strings"
)

// RenderInterfaceIndex renders interface/index.ts re-exporting every
// command interface and, when present, the shared types barrel.
func RenderInterfaceIndex(commandModules []string, hasTypes bool) string {
	var sb strings.Builder
	for _, name := range sortedCopy(commandModules) {
		fmt.Fprintf(&sb, "export * from \"./commands/%s\";\n", ToPascalCase(name))
	}
	if hasTypes {
		sb.WriteString("\nexport * from \"./types/\";\n")
	}
	return sb.String()
}

// RenderAPIIndex renders tauria-api/index.ts: command wrappers plus any
// event handler files.
func RenderAPIIndex(commandModules []string, hasGlobalEvents bool, windowNames []string) string {
	var sb strings.Builder
	for _, name := range sortedCopy(commandModules) {
		fmt.Fprintf(&sb, "export * from \"./commands/%s\";\n", ToPascalCase(name))
	}
	if hasGlobalEvents {
		sb.WriteString("\nexport * from \"./events/TauriGlobalEventHandlers\";\n")
	}
	for _, w := range sortedCopy(windowNames) {
		fmt.Fprintf(&sb, "\nexport * from \"./events/Tauri%sWindowEventHandlers\";\n", ToPascalCase(w))
	}
	return sb.String()
}

// RenderMockIndex renders mock-api/index.ts.
func RenderMockIndex(commandModules []string) string {
	var sb strings.Builder
	for _, name := range sortedCopy(commandModules) {
		fmt.Fprintf(&sb, "export * from \"./%s\";\n", ToPascalCase(name))
	}
	return sb.String()
}

// RenderRootIndex renders the top-level index.ts. It defaults to the
// real bindings and leaves the mock export commented for hand switching.
func RenderRootIndex() string {
	return "// This file is generated by tauria-tsgen.\n" +
		"\n" +
		"// You can switch between tauria-api and mock-api by modifying this file.\n" +
		"\n" +
		"\n" +
		"export * from \"./tauria-api\";\n" +
		"\n" +
		"// export * from \"./mock-api\";\n"
}

func sortedCopy(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}
