// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gui is the windowed front end: an editor for the math fragment,
// a font size spinner, and a button that converts and copies the SVG.
package gui

import (
	"context"
	"errors"
	"strings"

	"github.com/pdiddy/latex2svg/internal/tool"
	"github.com/pdiddy/latex2svg/pkg/types"
)

// Placeholder is the initial editor content. The cursor is placed between
// the dollar pairs.
const Placeholder = "$$  $$"

// placeholderCursor is the column of the cursor inside Placeholder.
const placeholderCursor = 3

// emptyMathMessage replaces the LaTeX log when the placeholder was
// converted unchanged.
const emptyMathMessage = "Empty math"

// Converter runs one conversion in a temporary directory.
type Converter interface {
	Convert(ctx context.Context, code string, p types.Params) (types.Result, error)
}

// session holds what the window needs between clicks.
type session struct {
	conv Converter
	base types.Params
}

// convert renders code at the display fontSize and returns the SVG text.
func (s *session) convert(ctx context.Context, code string, fontSize int) (string, error) {
	p := s.base.WithScale(types.ScaleForFontSize(fontSize))
	res, err := s.conv.Convert(ctx, code, p)
	if err != nil {
		return "", err
	}
	return res.SVG, nil
}

// errorMessage is the dialog text for a failed conversion of code.
func errorMessage(code string, err error) string {
	var ee *tool.ExecutionError
	if !errors.As(err, &ee) {
		return err.Error()
	}
	if isPlaceholder(code) {
		return emptyMathMessage
	}
	if out := ee.Output(); out != "" {
		return out
	}
	return ee.Error()
}

func isPlaceholder(code string) bool {
	return strings.TrimSpace(code) == strings.TrimSpace(Placeholder)
}
