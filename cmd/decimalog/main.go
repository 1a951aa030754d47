// Package main is the entry point for the decimalog CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thoreinstein/decimalog/cmd/decimalog/commands"
	dlerrors "github.com/thoreinstein/decimalog/internal/errors"
	"github.com/thoreinstein/decimalog/pkg/logging"
)

func main() {
	logging.RegisterLevels()

	err := commands.Execute()
	if err == nil {
		return
	}

	// doctor has already printed its report.
	if !errors.Is(err, dlerrors.ErrChecksFailed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *dlerrors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
		}
	}
	os.Exit(dlerrors.Code(err))
}
