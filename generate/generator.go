package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/yamada28go/tauria-tsgen/extract"
	"github.com/yamada28go/tauria-tsgen/logger"
)

// Options controls what the Generator writes.
type Options struct {
	// OutputDir is the root of the generated binding tree.
	OutputDir string
	// MockAPI also emits the mock-api/ tree.
	MockAPI bool
	// CrateName, when known from Cargo.toml, is stamped into the
	// generated file headers.
	CrateName string
}

// Generator renders extracted modules as a TypeScript binding tree.
type Generator struct {
	opts Options
}

func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate writes the full binding tree for the given modules. Files
// are only written when they would have content: command files require
// commands, event files require events, the types barrel requires at
// least one exported type.
func (g *Generator) Generate(modules []*extract.Module) error {
	exported := exportedTypeNames(modules)

	var allTypes []extract.ExtractedType
	var globalEvents []extract.GlobalEvent
	var windowEvents []extract.WindowEvent
	var commandModules []string
	for _, mod := range modules {
		allTypes = append(allTypes, mod.Types...)
		globalEvents = append(globalEvents, mod.GlobalEvents...)
		windowEvents = append(windowEvents, mod.WindowEvents...)
		if len(mod.Commands) > 0 {
			commandModules = append(commandModules, mod.Name)
		}
	}

	sort.Slice(allTypes, func(i, j int) bool { return allTypes[i].Name < allTypes[j].Name })

	hasTypes := HasExportedTypes(allTypes)
	if hasTypes {
		content := RenderTypesIndex(allTypes)
		if err := g.writeFile(filepath.Join("interface", "types", "index.ts"), content); err != nil {
			return err
		}
	}

	for _, mod := range modules {
		if len(mod.Commands) == 0 {
			continue
		}
		pascal := ToPascalCase(mod.Name)
		if err := g.writeFile(filepath.Join("interface", "commands", pascal+".ts"), RenderCommandInterface(mod, exported)); err != nil {
			return err
		}
		if err := g.writeFile(filepath.Join("tauria-api", "commands", pascal+".ts"), RenderCommandAPI(mod, exported)); err != nil {
			return err
		}
		if g.opts.MockAPI {
			if err := g.writeFile(filepath.Join("mock-api", pascal+".ts"), RenderMockAPI(mod, exported)); err != nil {
				return err
			}
		}
	}

	if len(globalEvents) > 0 {
		content := RenderGlobalEventHandlers(globalEvents, exported)
		if err := g.writeFile(filepath.Join("tauria-api", "events", "TauriGlobalEventHandlers.ts"), content); err != nil {
			return err
		}
	}

	windowNames := WindowNames(windowEvents)
	for _, w := range windowNames {
		content := RenderWindowEventHandlers(w, windowEvents, exported)
		name := "Tauri" + ToPascalCase(w) + "WindowEventHandlers.ts"
		if err := g.writeFile(filepath.Join("tauria-api", "events", name), content); err != nil {
			return err
		}
	}

	if err := g.writeFile(filepath.Join("interface", "index.ts"), RenderInterfaceIndex(commandModules, hasTypes)); err != nil {
		return err
	}
	if err := g.writeFile(filepath.Join("tauria-api", "index.ts"), RenderAPIIndex(commandModules, len(globalEvents) > 0, windowNames)); err != nil {
		return err
	}
	if g.opts.MockAPI {
		if err := g.writeFile(filepath.Join("mock-api", "index.ts"), RenderMockIndex(commandModules)); err != nil {
			return err
		}
	}
	return g.writeFile("index.ts", RenderRootIndex())
}

func (g *Generator) writeFile(rel, content string) error {
	content = g.stampCrate(content)
	path := filepath.Join(g.opts.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", rel)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", rel)
	}
	logger.Infof("generated %s", path)
	return nil
}

// stampCrate includes the source crate name in the generated-file
// header when Cargo.toml named one.
func (g *Generator) stampCrate(content string) string {
	if g.opts.CrateName == "" || !strings.HasPrefix(content, generatedHeader) {
		return content
	}
	header := fmt.Sprintf("// This file is generated by tauria-tsgen from crate %q. Do not edit manually.\n", g.opts.CrateName)
	return header + content[len(generatedHeader):]
}

// exportedTypeNames collects the names of all serializable or
// deserializable types across modules, the set the T namespace exports.
func exportedTypeNames(modules []*extract.Module) map[string]bool {
	out := make(map[string]bool)
	for _, mod := range modules {
		for _, t := range mod.Types {
			if t.Serializable || t.Deserializable {
				out[t.Name] = true
			}
		}
	}
	return out
}
