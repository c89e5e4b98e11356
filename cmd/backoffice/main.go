package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gravitrone/backoffice/cli/internal/cmd"
)

var errNoTerminal = errors.New("the interactive panel needs a terminal. use a subcommand instead (see 'backoffice --help')")

func main() {
	root := cmd.NewRootCmd(runTUI)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return errNoTerminal
	}
	return cmd.RunTUI(context.Background())
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
