package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/yamada28go/tauria-tsgen/extract"
	"github.com/yamada28go/tauria-tsgen/generate"
	"github.com/yamada28go/tauria-tsgen/logger"
)

// RunOptions carries the flags that shape a generation run beyond the
// input/output paths.
type RunOptions struct {
	MockAPI bool
}

// Run performs one full generation pass: scan the input directory,
// extract every module, and write the TypeScript tree. Any module that
// fails to parse aborts the pass.
func Run(cfg *Config, opts RunOptions) error {
	logger.Infow("generating bindings", "input", cfg.InputPath, "output", cfg.OutputPath)

	sources, err := discoverSources(cfg.InputPath)
	if err != nil {
		return err
	}

	modules := make([]*extract.Module, 0, len(sources))
	for _, src := range sources {
		logger.Infof("processing %s", src.path)
		code, err := os.ReadFile(src.path)
		if err != nil {
			return errors.Wrapf(err, "read %s", src.path)
		}
		mod, err := extract.ExtractModule(string(code), src.name)
		if err != nil {
			return err
		}
		modules = append(modules, mod)
	}

	gen := generate.NewGenerator(generate.Options{
		OutputDir: cfg.OutputPath,
		MockAPI:   opts.MockAPI,
		CrateName: CrateName(cfg.InputPath),
	})
	if err := gen.Generate(modules); err != nil {
		return err
	}

	logger.Infof("binding generation completed")
	return nil
}

type sourceFile struct {
	name string
	path string
}

// discoverSources lists the .rs files directly under the input
// directory, sorted by name. Subdirectories and other files are
// skipped.
func discoverSources(inputDir string) ([]sourceFile, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.Wrap(err, "read input directory")
	}

	var sources []sourceFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".rs") {
			logger.Debugf("skipping %s", entry.Name())
			continue
		}
		sources = append(sources, sourceFile{
			name: strings.TrimSuffix(entry.Name(), ".rs"),
			path: filepath.Join(inputDir, entry.Name()),
		})
	}
	return sources, nil
}
