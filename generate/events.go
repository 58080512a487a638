package generate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yamada28go/tauria-tsgen/extract"
)

// RenderGlobalEventHandlers renders
// tauria-api/events/TauriGlobalEventHandlers.ts: one typed listen
// helper per global event. Events are sorted by name; when the same
// event was emitted more than once, the first emission's payload type
// wins.
func RenderGlobalEventHandlers(events []extract.GlobalEvent, exported map[string]bool) string {
	ordered := dedupGlobal(events)

	var sb strings.Builder
	sb.WriteString(generatedHeader)
	sb.WriteString("import { listen, UnlistenFn } from \"@tauri-apps/api/event\";\n")
	if eventsReferenceTypes(payloadsOfGlobal(ordered), exported) {
		sb.WriteString("import * as T from \"../../interface/types\";\n")
	}
	sb.WriteString("\n")

	for i, ev := range ordered {
		writeEventHelper(&sb, ev.EventName, ev.PayloadType)
		if i < len(ordered)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// RenderWindowEventHandlers renders
// tauria-api/events/Tauri<Window>WindowEventHandlers.ts for one window's
// emit_to events, sorted by event name.
func RenderWindowEventHandlers(windowName string, events []extract.WindowEvent, exported map[string]bool) string {
	ordered := dedupWindow(events, windowName)

	var sb strings.Builder
	sb.WriteString(generatedHeader)
	fmt.Fprintf(&sb, "// Events targeted at the %q window.\n", windowName)
	sb.WriteString("import { listen, UnlistenFn } from \"@tauri-apps/api/event\";\n")
	if eventsReferenceTypes(payloadsOfWindow(ordered), exported) {
		sb.WriteString("import * as T from \"../../interface/types\";\n")
	}
	sb.WriteString("\n")

	for i, ev := range ordered {
		writeEventHelper(&sb, ev.EventName, ev.PayloadType)
		if i < len(ordered)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// WindowNames returns the sorted, deduplicated window names across all
// window events.
func WindowNames(events []extract.WindowEvent) []string {
	seen := make(map[string]bool)
	var names []string
	for _, ev := range events {
		if !seen[ev.WindowName] {
			seen[ev.WindowName] = true
			names = append(names, ev.WindowName)
		}
	}
	sort.Strings(names)
	return names
}

// writeEventHelper emits one onXxx listen helper. A void payload takes a
// zero-argument handler.
func writeEventHelper(sb *strings.Builder, eventName, payloadType string) {
	fn := "on" + ToPascalCase(eventName)
	if payloadType == "void" {
		fmt.Fprintf(sb, "export async function %s(handler: () => void): Promise<UnlistenFn> {\n", fn)
		fmt.Fprintf(sb, "  return await listen(%q, () => handler());\n", eventName)
	} else {
		fmt.Fprintf(sb, "export async function %s(handler: (payload: %s) => void): Promise<UnlistenFn> {\n", fn, payloadType)
		fmt.Fprintf(sb, "  return await listen<%s>(%q, (event) => handler(event.payload));\n", payloadType, eventName)
	}
	sb.WriteString("}\n")
}

func dedupGlobal(events []extract.GlobalEvent) []extract.GlobalEvent {
	seen := make(map[string]bool)
	var out []extract.GlobalEvent
	for _, ev := range events {
		if !seen[ev.EventName] {
			seen[ev.EventName] = true
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventName < out[j].EventName })
	return out
}

func dedupWindow(events []extract.WindowEvent, windowName string) []extract.WindowEvent {
	seen := make(map[string]bool)
	var out []extract.WindowEvent
	for _, ev := range events {
		if ev.WindowName != windowName || seen[ev.EventName] {
			continue
		}
		seen[ev.EventName] = true
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventName < out[j].EventName })
	return out
}

func payloadsOfGlobal(events []extract.GlobalEvent) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.PayloadType
	}
	return out
}

func payloadsOfWindow(events []extract.WindowEvent) []string {
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.PayloadType
	}
	return out
}

func eventsReferenceTypes(payloads []string, exported map[string]bool) bool {
	for _, p := range payloads {
		if referencesExportedType(p, exported) {
			return true
		}
	}
	return false
}
