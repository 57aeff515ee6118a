// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clipboard writes conversion output to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Writer places text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// system writes to the OS clipboard through xclip/xsel/wl-copy on Linux,
// pbcopy on macOS, and the Win32 API on Windows.
type system struct{}

func (system) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing to clipboard: %w", err)
	}
	return nil
}

// System returns the OS clipboard.
func System() Writer {
	return system{}
}

// Memory is an in-process clipboard, used when the system clipboard is
// disabled and in tests.
type Memory struct {
	Text   string
	Writes int
}

func (m *Memory) WriteAll(text string) error {
	m.Text = text
	m.Writes++
	return nil
}
