// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Result is the output of one successful conversion. Width, Height and
// VAlign are in em, rounded to 6 decimals.
type Result struct {
	// SVG is the final image text, minified when the optimizer ran.
	SVG string `json:"svg" yaml:"-"`

	// Width is the image width.
	Width float64 `json:"width" yaml:"width"`

	// Height is the image height.
	Height float64 `json:"height" yaml:"height"`

	// VAlign is the baseline offset, the negated depth below the baseline.
	VAlign float64 `json:"valign" yaml:"valign"`

	// Minified reports whether the optimizer produced the SVG.
	Minified bool `json:"minified" yaml:"minified"`
}
