// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// DefaultTemplate is the LaTeX document skeleton. The placeholders
// {{ preamble }}, {{ fontsize }} and {{ code }} are substituted verbatim.
const DefaultTemplate = `
\documentclass[preview]{standalone}
\usepackage{amsmath}
\usepackage{amsfonts}
{{ preamble }}
\begin{document}
\begin{preview}
{{ code }}
\end{preview}
\end{document}
`

// DefaultPreamble is inserted at the {{ preamble }} marker.
const DefaultPreamble = `
\usepackage[T1]{fontenc}
\usepackage[utf8]{inputenc}
\usepackage{amsmath}
`

const (
	// DefaultTypesetCommand compiles code.tex into code.pdf.
	DefaultTypesetCommand = "pdflatex -interaction nonstopmode -halt-on-error"

	// DefaultVectorizeCommand converts code.pdf into code.svg. The scale
	// flag and input file are appended at run time.
	DefaultVectorizeCommand = "dvisvgm --pdf --no-fonts --exact-bbox"

	// DefaultMinifyCommand minifies code.svg into optimized.svg with
	// shortened, prefixed identifiers.
	DefaultMinifyCommand = `scour --shorten-ids --shorten-ids-prefix="{{ prefix }}" ` +
		`--no-line-breaks --remove-metadata --enable-comment-stripping ` +
		`--strip-xml-prolog -i {{ infile }} -o {{ outfile }}`

	// DefaultFontSize is the TeX font size in pt.
	DefaultFontSize = 12

	// DefaultOptimizer names the minifier behind DefaultMinifyCommand.
	DefaultOptimizer = "scour"
)

// Params holds the settings for one conversion. It is a plain value: take
// DefaultParams, override fields on the copy, and pass it by value.
type Params struct {
	// FontSize is the TeX font size in pt. Measurements are divided by it
	// to obtain em values.
	FontSize int `json:"fontsize" yaml:"fontsize" mapstructure:"fontsize"`

	// Template is the document skeleton with {{ preamble }}, {{ fontsize }}
	// and {{ code }} markers.
	Template string `json:"template" yaml:"template" mapstructure:"template"`

	// Preamble is inserted at the {{ preamble }} marker.
	Preamble string `json:"preamble" yaml:"preamble" mapstructure:"preamble"`

	TypesetCommand   string `json:"typeset_command" yaml:"typeset_command" mapstructure:"typeset_command"`
	VectorizeCommand string `json:"vectorize_command" yaml:"vectorize_command" mapstructure:"vectorize_command"`

	// MinifyCommand may reference {{ prefix }}, {{ infile }} and {{ outfile }}.
	MinifyCommand string `json:"minify_command" yaml:"minify_command" mapstructure:"minify_command"`

	// Scale is the extra linear scale applied by the vectorizer.
	Scale float64 `json:"scale" yaml:"scale" mapstructure:"scale"`

	// Optimizer names the minifier. It is only used in messages.
	Optimizer string `json:"optimizer" yaml:"optimizer" mapstructure:"optimizer"`

	// LibGS is the path to the Ghostscript library, exported as LIBGS to
	// the vectorizer and minifier when set.
	LibGS string `json:"libgs,omitempty" yaml:"libgs,omitempty" mapstructure:"libgs"`
}

// DefaultParams returns a fresh copy of the default conversion settings.
func DefaultParams() Params {
	return Params{
		FontSize:         DefaultFontSize,
		Template:         DefaultTemplate,
		Preamble:         DefaultPreamble,
		TypesetCommand:   DefaultTypesetCommand,
		VectorizeCommand: DefaultVectorizeCommand,
		MinifyCommand:    DefaultMinifyCommand,
		Scale:            1.0,
		Optimizer:        DefaultOptimizer,
	}
}

// Validate reports the first setting that would make a conversion
// meaningless.
func (p Params) Validate() error {
	if p.FontSize <= 0 {
		return fmt.Errorf("fontsize must be positive, got %d", p.FontSize)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", p.Scale)
	}
	commands := []struct{ key, cmd string }{
		{"typeset_command", p.TypesetCommand},
		{"vectorize_command", p.VectorizeCommand},
		{"minify_command", p.MinifyCommand},
	}
	for _, c := range commands {
		if strings.TrimSpace(c.cmd) == "" {
			return fmt.Errorf("%s must not be empty", c.key)
		}
	}
	return nil
}

// WithScale returns a copy of p with Scale set.
func (p Params) WithScale(scale float64) Params {
	p.Scale = scale
	return p
}

// ScaleForFontSize maps a requested display font size to the vectorizer
// scale. Changing the font size in the preamble does not resize math, so
// the whole image is scaled instead, relative to a 10pt base.
func ScaleForFontSize(fontSize int) float64 {
	return float64(fontSize) / 10
}
