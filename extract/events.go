package extract

import (
	"github.com/yamada28go/tauria-tsgen/syntax"
)

// extractEvents walks every function body looking for emit and emit_to
// calls. Global events are recognized on receivers named app or window;
// emit_to targets a named window from any receiver. Every call site is
// recorded in source order, including repeats of the same event name.
func extractEvents(file *syntax.File, known map[string]bool) ([]GlobalEvent, []WindowEvent) {
	var globals []GlobalEvent
	var windows []WindowEvent

	for _, item := range file.Items {
		fn, ok := item.(*syntax.FnDecl)
		if !ok || fn.Body == nil {
			continue
		}

		// Parameter types feed payload inference when an emit payload is
		// a plain parameter reference.
		paramTypes := make(map[string]syntax.Type)
		for _, param := range fn.Params {
			if param.Name != "" {
				paramTypes[param.Name] = param.Type
			}
		}

		syntax.WalkBlock(fn.Body, func(e syntax.Expr) bool {
			call, ok := e.(*syntax.MethodCallExpr)
			if !ok {
				return true
			}

			switch call.Method {
			case "emit":
				recv, ok := call.Receiver.(*syntax.PathExpr)
				if !ok {
					return true
				}
				ident := recv.Ident()
				if ident != "app" && ident != "window" {
					return true
				}
				name, ok := stringLit(argAt(call, 0))
				if !ok {
					return true
				}
				globals = append(globals, GlobalEvent{
					EventName:   name,
					PayloadType: payloadType(argAt(call, 1), paramTypes, known),
				})

			case "emit_to":
				windowName, ok := stringLit(argAt(call, 0))
				if !ok {
					return true
				}
				eventName, ok := stringLit(argAt(call, 1))
				if !ok {
					return true
				}
				windows = append(windows, WindowEvent{
					WindowName:  windowName,
					EventName:   eventName,
					PayloadType: payloadType(argAt(call, 2), paramTypes, known),
				})
			}

			return true
		})
	}

	return globals, windows
}

// payloadType infers the TypeScript payload type of an emit argument.
// Parameter references use the declared parameter type, struct literals
// use their type name, simple literals map directly, anything else is
// any. A missing payload is void.
func payloadType(arg syntax.Expr, paramTypes map[string]syntax.Type, known map[string]bool) string {
	if arg == nil {
		return "void"
	}

	switch e := arg.(type) {
	case *syntax.PathExpr:
		if ident := e.Ident(); ident != "" {
			if t, ok := paramTypes[ident]; ok {
				return typeToTS(t, known, true)
			}
		}
		return "any"

	case *syntax.StructLitExpr:
		return "T." + e.TypeName()

	case *syntax.LitExpr:
		switch e.Kind {
		case syntax.LitString:
			return "string"
		case syntax.LitInteger, syntax.LitFloat:
			return "number"
		case syntax.LitBool:
			return "boolean"
		}
		return "any"

	default:
		return "any"
	}
}

func argAt(call *syntax.MethodCallExpr, i int) syntax.Expr {
	if i < len(call.Args) {
		return call.Args[i]
	}
	return nil
}

func stringLit(e syntax.Expr) (string, bool) {
	lit, ok := e.(*syntax.LitExpr)
	if !ok || lit.Kind != syntax.LitString {
		return "", false
	}
	return lit.Value, true
}
