package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/latex2svg/internal/clipboard"
	"github.com/pdiddy/latex2svg/internal/tool"
	"github.com/pdiddy/latex2svg/pkg/types"
)

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"short two-letter flag", []string{"-fs", "14", "$$x$$"}, []string{"--font-size", "14", "$$x$$"}},
		{"inline value", []string{"-fs=9", "x"}, []string{"--font-size=9", "x"}},
		{"long flag untouched", []string{"--font-size", "14", "x"}, []string{"--font-size", "14", "x"}},
		{"after terminator", []string{"--", "-fs"}, []string{"--", "-fs"}},
		{"nothing to do", []string{`\alpha`, "+", `\beta`}, []string{`\alpha`, "+", `\beta`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]string(nil), tt.in...)
			assert.Equal(t, tt.want, normalizeArgs(tt.in))
			assert.Equal(t, in, tt.in, "input must not be modified")
		})
	}
}

func TestExitCode(t *testing.T) {
	var w bytes.Buffer
	assert.Equal(t, 0, exitCode(nil, &w))
	assert.Empty(t, w.String())

	w.Reset()
	err := &tool.ExecutionError{
		Tool:     "latex",
		Stdout:   []byte("! Missing } inserted."),
		Stderr:   []byte("stderr text"),
		ExitCode: 1,
	}
	assert.Equal(t, 1, exitCode(err, &w))
	assert.Equal(t, "! Missing } inserted.\nstderr text\n", w.String())

	w.Reset()
	assert.Equal(t, 2, exitCode(&tool.ExecutionError{Tool: "dvisvgm", ExitCode: 2}, &w))

	w.Reset()
	assert.Equal(t, 1, exitCode(&tool.ExecutionError{Tool: "scour", ExitCode: -1}, &w))

	w.Reset()
	assert.Equal(t, 1, exitCode(&tool.NotFoundError{Tool: "latex"}, &w))
	assert.Equal(t, "Error: latex not found\n", w.String())
}

func TestLoadParams(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
fontsize: 11
typeset_command: lualatex -interaction nonstopmode
libgs: /opt/homebrew/lib/libgs.dylib
`)))

	p, err := loadParams(v)
	require.NoError(t, err)

	want := types.DefaultParams()
	want.FontSize = 11
	want.TypesetCommand = "lualatex -interaction nonstopmode"
	want.LibGS = "/opt/homebrew/lib/libgs.dylib"
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadParams_Env(t *testing.T) {
	t.Setenv("LATEX2SVG_SCALE", "2.5")
	t.Setenv("LATEX2SVG_OPTIMIZER", "svgo")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("LATEX2SVG")
	v.AutomaticEnv()

	p, err := loadParams(v)
	require.NoError(t, err)
	assert.Equal(t, 2.5, p.Scale)
	assert.Equal(t, "svgo", p.Optimizer)
	assert.Equal(t, types.DefaultTypesetCommand, p.TypesetCommand)
}

func TestWriteParams_IsValidConfig(t *testing.T) {
	p := types.DefaultParams()
	p.Preamble = `\usepackage{physics}`

	var buf bytes.Buffer
	require.NoError(t, writeParams(&buf, p))
	assert.Contains(t, buf.String(), "typeset_command: pdflatex")

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(&buf))
	got, err := loadParams(v)
	require.NoError(t, err)
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("config output does not load back (-want +got):\n%s", diff)
	}
}

// fakeConverter implements converter for testing.
type fakeConverter struct {
	res     types.Result
	err     error
	gotCode string
	gotP    types.Params
	gotDir  string
}

func (f *fakeConverter) Convert(_ context.Context, code string, p types.Params) (types.Result, error) {
	f.gotCode, f.gotP = code, p
	return f.res, f.err
}

func (f *fakeConverter) ConvertIn(_ context.Context, dir, code string, p types.Params) (types.Result, error) {
	f.gotDir = dir
	return f.Convert(context.Background(), code, p)
}

func newTestApp(conv *fakeConverter) (*app, *clipboard.Memory, *bytes.Buffer, *bytes.Buffer) {
	clip := &clipboard.Memory{}
	var stdout, stderr bytes.Buffer
	return &app{
		conv:   conv,
		params: types.DefaultParams(),
		clip:   clip,
		stdout: &stdout,
		stderr: &stderr,
	}, clip, &stdout, &stderr
}

func TestRunConvert(t *testing.T) {
	conv := &fakeConverter{res: types.Result{SVG: `<svg width="1em"/>`, Width: 50.1875, Height: 10.0375}}
	a, clip, stdout, stderr := newTestApp(conv)

	err := runConvert(context.Background(), a, `$$x^2$$`, convertOptions{fontSize: 12})
	require.NoError(t, err)

	assert.Equal(t, `$$x^2$$`, conv.gotCode)
	assert.Equal(t, 1.2, conv.gotP.Scale)
	assert.Equal(t, types.DefaultFontSize, conv.gotP.FontSize)
	assert.Empty(t, conv.gotDir)
	assert.Equal(t, `<svg width="1em"/>`, clip.Text)
	assert.Contains(t, stderr.String(), "SVG copied to clipboard")
	assert.Empty(t, stdout.String())
}

func TestRunConvert_Outputs(t *testing.T) {
	conv := &fakeConverter{res: types.Result{SVG: "<svg/>", Width: 50.1875, Height: 10.0375, VAlign: -0.1, Minified: true}}
	a, clip, stdout, _ := newTestApp(conv)

	tmp := t.TempDir()
	out := filepath.Join(tmp, "x.svg")
	work := filepath.Join(tmp, "work")

	err := runConvert(context.Background(), a, "x", convertOptions{
		fontSize:    20,
		output:      out,
		print:       true,
		metadata:    true,
		noClipboard: true,
		workdir:     work,
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, conv.gotP.Scale)
	assert.Equal(t, work, conv.gotDir)
	assert.DirExists(t, work)
	assert.Zero(t, clip.Writes)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	assert.Contains(t, stdout.String(), "<svg/>\n")
	assert.Contains(t, stdout.String(), "width: 50.1875")
	assert.Contains(t, stdout.String(), "valign: -0.1")
	assert.NotContains(t, stdout.String(), "svg:")
}

func TestRunConvert_Errors(t *testing.T) {
	latexErr := &tool.ExecutionError{Tool: "latex", ExitCode: 1}
	conv := &fakeConverter{err: latexErr}
	a, clip, _, _ := newTestApp(conv)

	err := runConvert(context.Background(), a, `$$\frac{1}{$$`, convertOptions{fontSize: 12})
	assert.True(t, errors.Is(err, latexErr))
	assert.Zero(t, clip.Writes)

	err = runConvert(context.Background(), a, "x", convertOptions{fontSize: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "font size must be positive")
}

func TestCheckTools(t *testing.T) {
	tests := []struct {
		name      string
		installed map[string]bool
		wantErr   string
		wantLines []string
	}{
		{
			name:      "all installed",
			installed: map[string]bool{"pdflatex": true, "dvisvgm": true, "scour": true},
			wantLines: []string{"ok       typesetter  pdflatex", "ok       optimizer   scour"},
		},
		{
			name:      "optimizer is optional",
			installed: map[string]bool{"pdflatex": true, "dvisvgm": true},
			wantLines: []string{"missing  optimizer   scour (optional, SVG will not be minified)"},
		},
		{
			name:      "required tools missing",
			installed: map[string]bool{"scour": true},
			wantErr:   "required tools not found: pdflatex, dvisvgm",
			wantLines: []string{"missing  vectorizer  dvisvgm"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w bytes.Buffer
			err := checkTools(types.DefaultParams(), func(exe string) bool { return tt.installed[exe] }, &w)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			for _, line := range tt.wantLines {
				assert.Contains(t, w.String(), line)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLogLevel(" DEBUG ").String())
	assert.Equal(t, "warning", parseLogLevel("").String())
	assert.Equal(t, "warning", parseLogLevel("chatty").String())
}
