// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dvisvgmOutput is representative stderr from dvisvgm on a preview page.
const dvisvgmOutput = `pre-processing DVI file (format version 2)
processing page 1
  computing extents based on data set by preview package (version 13.1)
  width=11.955168pt, height=6.846036pt, depth=2pt
  graphic size: 11.955168pt x 8.846036pt (4.2017mm x 3.10899mm)
  output written to code.svg
1 of 1 page converted in 0.0512 seconds
`

func TestParseMetrics(t *testing.T) {
	tests := []struct {
		name      string
		diag      string
		fontSize  int
		wantW     float64
		wantH     float64
		wantDepth Measurement
	}{
		{
			name:     "size without depth",
			diag:     "graphic size: 600.0pt x 120.0pt",
			fontSize: 12,
			wantW:    600.0 / 12 * PointScale,
			wantH:    120.0 / 12 * PointScale,
		},
		{
			name:      "full dvisvgm output",
			diag:      dvisvgmOutput,
			fontSize:  12,
			wantW:     11.955168 / 12 * PointScale,
			wantH:     8.846036 / 12 * PointScale,
			wantDepth: Measurement{Value: 2.0 / 12 * PointScale, OK: true},
		},
		{
			name:      "exponent in depth",
			diag:      "10pt x 20pt depth=1.5e-1pt",
			fontSize:  10,
			wantW:     1 * PointScale,
			wantH:     2 * PointScale,
			wantDepth: Measurement{Value: 0.015 * PointScale, OK: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMetrics(tt.diag, tt.fontSize)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantW, m.Width, 1e-9)
			assert.InDelta(t, tt.wantH, m.Height, 1e-9)
			assert.Equal(t, tt.wantDepth.OK, m.Depth.OK)
			assert.InDelta(t, tt.wantDepth.Value, m.Depth.Value, 1e-9)
		})
	}
}

func TestParseMetrics_ScalingExample(t *testing.T) {
	m, err := ParseMetrics("600.0pt x 120.0pt", 12)
	require.NoError(t, err)
	assert.Equal(t, 50.1875, round6(m.Width))
	assert.Equal(t, 10.0375, round6(m.Height))
}

func TestParseMetrics_Errors(t *testing.T) {
	_, err := ParseMetrics("processing page 1\n", 12)
	assert.ErrorIs(t, err, ErrNoSize)

	_, err = ParseMetrics("1.2.3pt x 4pt", 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width")

	_, err = ParseMetrics("1pt x 4pt depth=--pt", 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depth")

	_, err = ParseMetrics("1pt x 4pt", 0)
	require.Error(t, err)
}

func TestMetrics_Baseline(t *testing.T) {
	absent := Metrics{Width: 1, Height: 1}
	assert.Equal(t, 0.0, absent.Baseline())
	assert.False(t, math.Signbit(absent.Baseline()), "baseline must not be negative zero")

	zero := Metrics{Depth: Measurement{Value: 0, OK: true}}
	assert.False(t, math.Signbit(zero.Baseline()))

	deep := Metrics{Depth: Measurement{Value: 0.25, OK: true}}
	assert.Equal(t, -0.25, deep.Baseline())
}

func TestRound6(t *testing.T) {
	assert.Equal(t, 0.167292, round6(2.0/12*PointScale))
	assert.Equal(t, 1.0, round6(0.9999999))
}
