package project

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/yamada28go/tauria-tsgen/logger"
)

type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// CrateName reads the crate name from a Cargo.toml next to the input
// directory or one level up. A missing or unreadable manifest just
// means no name; that is not an error.
func CrateName(inputDir string) string {
	candidates := []string{
		filepath.Join(inputDir, "Cargo.toml"),
		filepath.Join(filepath.Dir(inputDir), "Cargo.toml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var manifest cargoManifest
		if _, err := toml.DecodeFile(path, &manifest); err != nil {
			logger.Warnw("skipping malformed Cargo.toml", "path", path, "error", err)
			continue
		}
		if manifest.Package.Name != "" {
			logger.Debugw("found crate manifest", "path", path, "crate", manifest.Package.Name)
			return manifest.Package.Name
		}
	}
	return ""
}
