package extract

import (
	"github.com/cockroachdb/errors"

	"github.com/yamada28go/tauria-tsgen/logger"
	"github.com/yamada28go/tauria-tsgen/syntax"
)

// ExtractModule parses one Rust source file and extracts its binding
// model under the given module name.
func ExtractModule(source, moduleName string) (*Module, error) {
	file, err := syntax.Parse(source)
	if err != nil {
		return nil, errors.Wrapf(err, "module %s", moduleName)
	}

	// The known-type set is collected in a full pass up front, so type
	// references resolve independent of declaration order.
	known := knownTypeNames(file)

	mod := &Module{Name: moduleName}
	mod.Types = extractTypes(file, known, moduleName)
	mod.Commands = extractCommands(file, mod.Types, known)
	mod.GlobalEvents, mod.WindowEvents = extractEvents(file, known)

	logger.Debugw("extracted module",
		"module", moduleName,
		"types", len(mod.Types),
		"commands", len(mod.Commands),
		"global_events", len(mod.GlobalEvents),
		"window_events", len(mod.WindowEvents))

	return mod, nil
}

// HasBindings reports whether the module produced anything the generator
// would write a file for.
func (m *Module) HasBindings() bool {
	return len(m.Types) > 0 || len(m.Commands) > 0 ||
		len(m.GlobalEvents) > 0 || len(m.WindowEvents) > 0
}
