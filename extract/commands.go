package extract

import (
	"strings"

	"github.com/yamada28go/tauria-tsgen/logger"
	"github.com/yamada28go/tauria-tsgen/syntax"
)

// ignoredTauriTypes are runtime-injected parameter types that never cross
// the IPC boundary and are dropped from command signatures. tauri::State
// carries generics and is matched by prefix.
var ignoredTauriTypes = map[string]bool{
	"tauri::WebviewWindow": true,
	"tauri::AppHandle":     true,
	"tauri::Window":        true,
}

const tauriStatePrefix = "tauri::State"
const tauriIPCResponse = "tauri::ipc::Response"

// extractCommands collects every function carrying #[tauri::command] or
// #[command] and builds its descriptor against the already-extracted
// types.
func extractCommands(file *syntax.File, types []ExtractedType, known map[string]bool) []CommandDescriptor {
	var commands []CommandDescriptor
	aliases := useAliases(file)

	byName := make(map[string]*ExtractedType, len(types))
	for i := range types {
		byName[types[i].Name] = &types[i]
	}

	for _, item := range file.Items {
		fn, ok := item.(*syntax.FnDecl)
		if !ok || !isCommand(fn.Attrs) {
			continue
		}

		cmd := CommandDescriptor{
			Name: fn.Name,
			Doc:  fn.Doc,
		}

		for _, param := range fn.Params {
			if isIgnoredTauriType(param.Type, aliases) {
				continue
			}

			name := param.Name
			if name == "" {
				name = "arg"
			}

			// Every user-defined type reachable from the parameter must
			// be deserializable, or the argument is dropped entirely.
			deserializable := true
			for _, typeName := range userDefinedTypeNames(param.Type, known) {
				if info, ok := byName[typeName]; ok && !info.Deserializable {
					logger.Debugw("skipping argument: nested type is not deserializable",
						"command", fn.Name, "argument", name, "type", typeName)
					deserializable = false
					break
				}
			}
			if !deserializable {
				continue
			}

			cmd.Args = append(cmd.Args, CommandArg{
				Name: name,
				Type: typeToTS(param.Type, known, true),
			})
			cmd.InvokeArgs = append(cmd.InvokeArgs, name)
		}

		cmd.ReturnType = commandReturnType(fn, byName, known, aliases)

		commands = append(commands, cmd)
	}

	return commands
}

// commandReturnType renders the command's return type. Result<(), E>
// reads as void, tauri::ipc::Response is opaque, and any reachable
// user-defined type that is not serializable forces unknown.
func commandReturnType(fn *syntax.FnDecl, byName map[string]*ExtractedType, known map[string]bool, aliases map[string]string) string {
	if fn.Return == nil {
		return "void"
	}

	ret := "void"
	switch {
	case isResultUnit(fn.Return):
		ret = "void"
	case isTauriIPCResponse(fn.Return, aliases):
		ret = "unknown"
	default:
		ret = typeToTS(fn.Return, known, true)
	}

	for _, typeName := range userDefinedTypeNames(fn.Return, known) {
		if info, ok := byName[typeName]; ok && !info.Serializable {
			logger.Debugw("return type forced to unknown: nested type is not serializable",
				"command", fn.Name, "type", typeName)
			return "unknown"
		}
	}

	return ret
}

// isCommand reports whether the attribute list marks a Tauri command.
// Attribute arguments (rename_all and friends) do not affect detection.
func isCommand(attrs []*syntax.Attr) bool {
	for _, attr := range attrs {
		if attr.HasPath("command") || attr.HasPath("tauri", "command") {
			return true
		}
	}
	return false
}

// isResultUnit reports whether the type is Result<(), E>.
func isResultUnit(t syntax.Type) bool {
	pt, ok := t.(*syntax.PathType)
	if !ok || pt.Name() != "Result" {
		return false
	}
	args := pt.Last().Args
	if len(args) == 0 {
		return false
	}
	tuple, ok := args[0].(*syntax.TupleType)
	return ok && tuple.IsUnit()
}

// isIgnoredTauriType resolves the parameter type through use aliases and
// checks it against the injected-type deny list. References unwrap first.
func isIgnoredTauriType(t syntax.Type, aliases map[string]string) bool {
	switch ty := t.(type) {
	case *syntax.PathType:
		path := resolveTypePath(ty, aliases)
		if strings.HasPrefix(path, tauriStatePrefix) {
			return true
		}
		return ignoredTauriTypes[path]
	case *syntax.RefType:
		return isIgnoredTauriType(ty.Elem, aliases)
	}
	return false
}

// isTauriIPCResponse resolves the type through use aliases and checks for
// the opaque IPC response type.
func isTauriIPCResponse(t syntax.Type, aliases map[string]string) bool {
	switch ty := t.(type) {
	case *syntax.PathType:
		return resolveTypePath(ty, aliases) == tauriIPCResponse
	case *syntax.RefType:
		return isTauriIPCResponse(ty.Elem, aliases)
	}
	return false
}

// resolveTypePath joins a path type's segment names and expands single
// names through the alias map.
func resolveTypePath(pt *syntax.PathType, aliases map[string]string) string {
	segments := make([]string, len(pt.Segments))
	for i, seg := range pt.Segments {
		segments[i] = seg.Name
	}
	return resolvePath(segments, aliases)
}
