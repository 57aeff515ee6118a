// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"fmt"
	"strings"
)

// NotFoundError reports that a tool's executable is not on PATH.
type NotFoundError struct {
	// Tool is the display name of the tool, e.g. "latex".
	Tool string

	// Executable is the program that could not be found.
	Executable string

	Err error
}

func (e *NotFoundError) Error() string {
	return e.Tool + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ExecutionError reports that a tool ran but exited with a nonzero status.
// Both captured streams are kept because some tools (pdflatex) report
// their errors on stdout.
type ExecutionError struct {
	Tool     string
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
}

// Output returns the captured stdout and stderr joined by a newline, with
// surrounding whitespace trimmed.
func (e *ExecutionError) Output() string {
	parts := make([]string, 0, 2)
	for _, b := range [][]byte{e.Stdout, e.Stderr} {
		if s := strings.TrimSpace(string(b)); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
