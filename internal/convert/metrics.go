// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// PointScale converts TeX points (1/72.27 in) to the DTP points (1/72 in)
// of the SVG viewBox. dvisvgm writes DTP points but reports TeX points.
const PointScale = 1.00375

var (
	sizePattern  = regexp.MustCompile(`\b([0-9.]+)pt x ([0-9.]+)pt`)
	depthPattern = regexp.MustCompile(`\bdepth=([0-9.e-]+)pt`)
)

// ErrNoSize is returned when the vectorizer output has no "Wpt x Hpt" size.
var ErrNoSize = errors.New("no graphic size in vectorizer output")

// Measurement is an optional length in em.
type Measurement struct {
	Value float64
	OK    bool
}

// Metrics are the image dimensions in em.
type Metrics struct {
	Width  float64
	Height float64

	// Depth is the distance from the baseline to the bottom edge. It is
	// absent when the page carried no baseline information.
	Depth Measurement
}

// Baseline returns the vertical-align offset: the negated depth, or 0 when
// depth is absent.
func (m Metrics) Baseline() float64 {
	if !m.Depth.OK || m.Depth.Value == 0 {
		return 0
	}
	return -m.Depth.Value
}

// ParseMetrics extracts the image size and depth from the vectorizer's
// diagnostics and converts them from TeX pt to em at fontSize.
func ParseMetrics(diag string, fontSize int) (Metrics, error) {
	if fontSize <= 0 {
		return Metrics{}, fmt.Errorf("fontsize must be positive, got %d", fontSize)
	}

	size := sizePattern.FindStringSubmatch(diag)
	if size == nil {
		return Metrics{}, ErrNoSize
	}
	w, err := toEm(size[1], fontSize)
	if err != nil {
		return Metrics{}, fmt.Errorf("parsing width: %w", err)
	}
	h, err := toEm(size[2], fontSize)
	if err != nil {
		return Metrics{}, fmt.Errorf("parsing height: %w", err)
	}

	m := Metrics{Width: w, Height: h}
	if depth := depthPattern.FindStringSubmatch(diag); depth != nil {
		d, err := toEm(depth[1], fontSize)
		if err != nil {
			return Metrics{}, fmt.Errorf("parsing depth: %w", err)
		}
		m.Depth = Measurement{Value: d, OK: true}
	}
	return m, nil
}

func toEm(pt string, fontSize int) (float64, error) {
	v, err := strconv.ParseFloat(pt, 64)
	if err != nil {
		return 0, err
	}
	return v / float64(fontSize) * PointScale, nil
}

// round6 rounds to 6 decimal places.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
