package extract

import (
	"strings"

	"github.com/yamada28go/tauria-tsgen/syntax"
)

// useAliases builds a map from local name to full import path for every
// use declaration in the file. Plain imports map the leaf name to its own
// path, so `use tauri::State;` yields State -> tauri::State, and renames
// map the alias, so `use tauri::State as MyState;` yields
// MyState -> tauri::State. Glob imports contribute nothing; names pulled
// in through them stay unresolved.
func useAliases(file *syntax.File) map[string]string {
	aliases := make(map[string]string)
	for _, item := range file.Items {
		if use, ok := item.(*syntax.UseDecl); ok {
			collectUseTree(aliases, use.Tree, nil)
		}
	}
	return aliases
}

func collectUseTree(aliases map[string]string, tree syntax.UseTree, prefix []string) {
	switch t := tree.(type) {
	case *syntax.UsePath:
		collectUseTree(aliases, t.Child, append(prefix, t.Segment))

	case *syntax.UseName:
		full := joinPath(append(prefix, t.Name))
		aliases[t.Name] = full

	case *syntax.UseRename:
		full := joinPath(append(prefix, t.Name))
		aliases[t.Alias] = full

	case *syntax.UseGroup:
		for _, item := range t.Items {
			// The prefix is shared across group entries; copy so the
			// appends above cannot alias each other's backing array.
			branch := make([]string, len(prefix))
			copy(branch, prefix)
			collectUseTree(aliases, item, branch)
		}

	case *syntax.UseGlob:
		// Wildcards are not resolved.
	}
}

func joinPath(segments []string) string {
	return strings.Join(segments, "::")
}

// resolvePath expands a single-segment type path through the alias map.
// Multi-segment paths are already explicit and pass through joined.
func resolvePath(segments []string, aliases map[string]string) string {
	if len(segments) == 1 {
		if full, ok := aliases[segments[0]]; ok {
			return full
		}
		return segments[0]
	}
	return joinPath(segments)
}
