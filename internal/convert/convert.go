// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders a LaTeX math fragment to an inline SVG by driving
// pdflatex, dvisvgm and an SVG optimizer in a working directory, then
// patching the SVG root so it scales with the surrounding text.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/latex2svg/internal/tool"
	"github.com/pdiddy/latex2svg/pkg/types"
)

// Files in the working directory.
const (
	sourceFile    = "code.tex"
	typesetFile   = "code.pdf"
	vectorFile    = "code.svg"
	optimizedFile = "optimized.svg"
)

// typesetterName is used in messages regardless of the configured engine.
const typesetterName = "latex"

const prefixLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomPrefix returns three random ASCII letters. SVG identifiers may not
// start with a digit, so the prefix never contains one.
func RandomPrefix() string {
	b := make([]byte, 3)
	for i := range b {
		b[i] = prefixLetters[rand.IntN(len(prefixLetters))]
	}
	return string(b)
}

// Converter runs the conversion pipeline. It holds no per-conversion state
// and can be reused.
type Converter struct {
	runner tool.Runner
	log    *logrus.Logger
	prefix func() string
}

// New creates a Converter that runs external tools through r.
func New(r tool.Runner, log *logrus.Logger) *Converter {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Converter{runner: r, log: log, prefix: RandomPrefix}
}

// Convert renders code in a temporary working directory that is removed
// before Convert returns.
func (c *Converter) Convert(ctx context.Context, code string, p types.Params) (types.Result, error) {
	dir, err := os.MkdirTemp("", "latex2svg-")
	if err != nil {
		return types.Result{}, fmt.Errorf("creating working directory: %w", err)
	}
	defer os.RemoveAll(dir)

	return c.ConvertIn(ctx, dir, code, p)
}

// ConvertIn renders code using dir as the working directory. Intermediate
// files are left in dir.
//
// Tool failures are returned as *tool.NotFoundError or *tool.ExecutionError.
// A missing optimizer is not an error: the unminified SVG is returned and a
// warning is logged.
func (c *Converter) ConvertIn(ctx context.Context, dir, code string, p types.Params) (types.Result, error) {
	if err := p.Validate(); err != nil {
		return types.Result{}, fmt.Errorf("invalid parameters: %w", err)
	}

	if err := c.typeset(ctx, dir, code, p); err != nil {
		return types.Result{}, err
	}

	diag, err := c.vectorize(ctx, dir, p)
	if err != nil {
		return types.Result{}, err
	}

	m, err := ParseMetrics(diag, p.FontSize)
	if err != nil {
		return types.Result{}, fmt.Errorf("reading image metrics: %w", err)
	}
	c.log.WithFields(logrus.Fields{
		"width":  m.Width,
		"height": m.Height,
		"depth":  m.Depth.Value,
	}).Debug("image metrics")

	if err := PatchFile(filepath.Join(dir, vectorFile), m); err != nil {
		return types.Result{}, err
	}

	svg, minified, err := c.minify(ctx, dir, p)
	if err != nil {
		return types.Result{}, err
	}

	return types.Result{
		SVG:      svg,
		Width:    round6(m.Width),
		Height:   round6(m.Height),
		VAlign:   round6(m.Baseline()),
		Minified: minified,
	}, nil
}

// typeset writes the assembled document and compiles it to code.pdf.
func (c *Converter) typeset(ctx context.Context, dir, code string, p types.Params) error {
	src := filepath.Join(dir, sourceFile)
	if err := os.WriteFile(src, []byte(Assemble(code, p)), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", src, err)
	}

	args, err := tool.Split(p.TypesetCommand)
	if err != nil {
		return err
	}
	_, err = c.runner.Run(ctx, tool.Command{
		Name: typesetterName,
		Args: append(args, sourceFile),
		Dir:  dir,
	})
	return err
}

// vectorize converts code.pdf to code.svg and returns the tool's stderr,
// which carries the image metrics.
func (c *Converter) vectorize(ctx context.Context, dir string, p types.Params) (string, error) {
	args, err := tool.Split(p.VectorizeCommand)
	if err != nil {
		return "", err
	}
	args = append(args, fmt.Sprintf("--scale=%f", p.Scale), typesetFile)

	out, err := c.runner.Run(ctx, tool.Command{
		Name: filepath.Base(args[0]),
		Args: args,
		Dir:  dir,
		Env:  toolEnv(p),
	})
	if err != nil {
		return "", err
	}
	return string(out.Stderr), nil
}

// minify runs the optimizer from code.svg to optimized.svg and returns the
// result. When the optimizer is not installed it returns code.svg instead
// and reports minified as false. A failing optimizer is an error.
func (c *Converter) minify(ctx context.Context, dir string, p types.Params) (svg string, minified bool, err error) {
	cmdline := strings.NewReplacer(
		"{{ prefix }}", c.prefix()+"_",
		"{{ infile }}", vectorFile,
		"{{ outfile }}", optimizedFile,
	).Replace(p.MinifyCommand)

	args, err := tool.Split(cmdline)
	if err != nil {
		return "", false, err
	}

	name := p.Optimizer
	if name == "" {
		name = filepath.Base(args[0])
	}

	_, err = c.runner.Run(ctx, tool.Command{
		Name: name,
		Args: args,
		Dir:  dir,
		Env:  toolEnv(p),
	})
	var nf *tool.NotFoundError
	switch {
	case errors.As(err, &nf):
		c.log.Warnf("%s not found, using unoptimized SVG", nf.Tool)
		data, err := os.ReadFile(filepath.Join(dir, vectorFile))
		if err != nil {
			return "", false, fmt.Errorf("reading %s: %w", vectorFile, err)
		}
		return string(data), false, nil
	case err != nil:
		return "", false, err
	}

	data, err := os.ReadFile(filepath.Join(dir, optimizedFile))
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", optimizedFile, err)
	}
	return string(data), true, nil
}

func toolEnv(p types.Params) []string {
	if p.LibGS == "" {
		return nil
	}
	return []string{"LIBGS=" + p.LibGS}
}
