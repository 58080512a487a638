// tauria-tsgen generates TypeScript bindings for a Tauri backend:
// typed invoke wrappers for #[tauri::command] functions, interfaces for
// serde-tagged types, and listener helpers for emitted events.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yamada28go/tauria-tsgen/logger"
	"github.com/yamada28go/tauria-tsgen/project"
)

var flags struct {
	config     string
	inputPath  string
	outputPath string
	mockAPI    bool
	watch      bool
	verbose    bool
}

func main() {
	root := &cobra.Command{
		Use:   "tauria-tsgen",
		Short: "Generate TypeScript bindings from Tauri command handlers",
		Long: "tauria-tsgen scans a directory of Rust source files and generates\n" +
			"TypeScript invoke wrappers, type declarations, and event listener\n" +
			"helpers for every #[tauri::command] it finds.",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVarP(&flags.config, "config", "c", "", "JSON config file with input_path and output_path")
	root.Flags().StringVar(&flags.inputPath, "input-path", "", "directory containing the Rust source files")
	root.Flags().StringVar(&flags.outputPath, "output-path", "", "directory for the generated TypeScript files")
	root.Flags().BoolVar(&flags.mockAPI, "mock-api", false, "also generate mock API files")
	root.Flags().BoolVar(&flags.watch, "watch", false, "watch the input directory and regenerate on change")
	root.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := logger.Initialize(flags.verbose); err != nil {
		return err
	}
	defer logger.Cleanup()

	cfg, err := project.LoadConfig(flags.config, flags.inputPath, flags.outputPath)
	if err != nil {
		return err
	}

	opts := project.RunOptions{MockAPI: flags.mockAPI}
	if flags.watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return project.Watch(ctx, cfg, opts)
	}
	return project.Run(cfg, opts)
}
