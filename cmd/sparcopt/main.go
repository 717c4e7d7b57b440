// Command sparcopt reads a SPARC assembly source file, eliminates
// redundant delay-slot nops, and writes the optimized text to standard
// output. See spec.md §6: one positional argument, no flags.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dymk/sparc-optim/config"
	"github.com/dymk/sparc-optim/diagnose"
	"github.com/dymk/sparc-optim/optimize"
	"github.com/dymk/sparc-optim/parser"
	"github.com/dymk/sparc-optim/printer"
)

func usage() {
	fmt.Println("Usage: sparcopt <assembly-file>")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 1 {
		usage()
		return 1
	}
	path := args[0]

	source, err := os.ReadFile(path) // #nosec G304 -- path is the user's own CLI argument
	if err != nil {
		fmt.Fprintf(os.Stderr, "sparcopt: %v\n", err)
		return 1
	}

	cfg, err := config.Load(sidecarPath(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "sparcopt: %v\n", err)
		return 1
	}

	unit, err := parser.NewParser(string(source), path).Parse()
	if err != nil {
		reportError(err, string(source), cfg)
		return 1
	}

	if err := optimize.Run(unit); err != nil {
		reportError(err, string(source), cfg)
		return 1
	}

	opts := printer.Options{
		BlankLineBeforeLabels: cfg.Printer.BlankLineBeforeLabels,
		OperandSeparator:      cfg.Printer.OperandSeparator,
	}
	fmt.Print(printer.New(opts).Print(unit))
	return 0
}

// sidecarPath returns the ".sparcoptrc" settings file expected alongside
// the input, per SPEC_FULL.md's ambient configuration design.
func sidecarPath(inputPath string) string {
	return filepath.Join(filepath.Dir(inputPath), ".sparcoptrc")
}

// reportError prints err to stderr, rendering a source-window context
// around it (sized by cfg.Diagnostics.ContextLines) when err is a located
// *diagnose.Diagnostic.
func reportError(err error, source string, cfg *config.Config) {
	if d, ok := err.(*diagnose.Diagnostic); ok {
		d.WithContext(source, cfg.Diagnostics.ContextLines)
	}
	fmt.Fprintln(os.Stderr, err)
}
