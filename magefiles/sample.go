//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Sample builds the CLI and renders a sample formula to sample.svg without
// touching the clipboard.
func Sample() error {
	mg.Deps(Build)
	bin := binDir + "/" + binName
	err := sh.RunV(bin, "--no-clipboard", "--metadata", "-o", "sample.svg", `$$\int_0^1 x^2\,dx = \frac{1}{3}$$`)
	if err != nil {
		return fmt.Errorf("rendering sample: %w", err)
	}
	return nil
}
