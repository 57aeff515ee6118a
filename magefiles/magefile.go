//go:build mage

// Package main contains Mage build targets for latex2svg development.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "latex2svg"
	cmdPkg  = "./cmd/latex2svg"
)

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// Test runs the unit tests. Tests that need a TeX installation are skipped
// in short mode.
func Test() error {
	return sh.RunV("go", "test", "-short", "./...")
}

// Integration runs every test, including the ones that invoke pdflatex and
// dvisvgm.
func Integration() error {
	mg.Deps(Doctor)
	return sh.RunV("go", "test", "-count=1", "./...")
}

// Doctor reports which of the external conversion tools are on PATH.
func Doctor() error {
	tools := []struct {
		name     string
		required bool
	}{
		{"pdflatex", true},
		{"dvisvgm", true},
		{"scour", false},
	}
	var missing []string
	for _, t := range tools {
		path, err := exec.LookPath(t.name)
		switch {
		case err == nil:
			fmt.Printf("  ok       %-9s %s\n", t.name, path)
		case t.required:
			fmt.Printf("  missing  %s\n", t.name)
			missing = append(missing, t.name)
		default:
			fmt.Printf("  missing  %s (optional)\n", t.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("install %s to run conversions", strings.Join(missing, ", "))
	}
	return nil
}

// Stats prints Go production and test line counts.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines counts non-blank lines in Go files below root. Directories
// starting with "_" or "." are skipped, as the go tool does.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			if strings.TrimSpace(sc.Text()) != "" {
				total++
			}
		}
		return sc.Err()
	})
	return total, err
}
