package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
	"golang.org/x/term"

	"github.com/pdiddy/latex2svg/internal/clipboard"
	"github.com/pdiddy/latex2svg/internal/convert"
	"github.com/pdiddy/latex2svg/internal/tool"
	"github.com/pdiddy/latex2svg/pkg/types"
)

// converter is the part of convert.Converter the CLI uses.
type converter interface {
	Convert(ctx context.Context, code string, p types.Params) (types.Result, error)
	ConvertIn(ctx context.Context, dir, code string, p types.Params) (types.Result, error)
}

// convertOptions are the root command flags.
type convertOptions struct {
	fontSize    int
	output      string
	print       bool
	noClipboard bool
	metadata    bool
	workdir     string
}

// app bundles the collaborators of a CLI conversion.
type app struct {
	conv   converter
	params types.Params
	clip   clipboard.Writer
	stdout io.Writer
	stderr io.Writer
}

func runRoot(cmd *cobra.Command, args []string) error {
	params, err := loadParams(viper.GetViper())
	if err != nil {
		return err
	}
	conv := convert.New(tool.NewProcessRunner(logger), logger)

	code := strings.Join(args, " ")
	if len(args) == 0 {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return runWindow(conv, params)
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		code = strings.TrimSpace(string(data))
		if code == "" {
			return runWindow(conv, params)
		}
	}

	opts := convertOptions{}
	opts.fontSize, _ = cmd.Flags().GetInt("font-size")
	opts.output, _ = cmd.Flags().GetString("output")
	opts.print, _ = cmd.Flags().GetBool("print")
	opts.noClipboard, _ = cmd.Flags().GetBool("no-clipboard")
	opts.metadata, _ = cmd.Flags().GetBool("metadata")
	opts.workdir, _ = cmd.Flags().GetString("workdir")

	a := &app{
		conv:   conv,
		params: params,
		clip:   clipboard.System(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	return runConvert(cmd.Context(), a, code, opts)
}

// runConvert converts code and delivers the SVG to the requested outputs.
func runConvert(ctx context.Context, a *app, code string, opts convertOptions) error {
	if opts.fontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %d", opts.fontSize)
	}
	p := a.params.WithScale(types.ScaleForFontSize(opts.fontSize))

	var (
		res types.Result
		err error
	)
	if opts.workdir != "" {
		if err := os.MkdirAll(opts.workdir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", opts.workdir, err)
		}
		res, err = a.conv.ConvertIn(ctx, opts.workdir, code, p)
	} else {
		res, err = a.conv.Convert(ctx, code, p)
	}
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(res.SVG), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", opts.output, err)
		}
		fmt.Fprintf(a.stderr, "SVG written to %s\n", opts.output)
	}
	if opts.print {
		fmt.Fprintln(a.stdout, res.SVG)
	}
	if opts.metadata {
		data, err := yaml.Marshal(&res)
		if err != nil {
			return fmt.Errorf("marshaling metadata: %w", err)
		}
		a.stdout.Write(data)
	}
	if !opts.noClipboard {
		if err := a.clip.WriteAll(res.SVG); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(a.stderr, "SVG copied to clipboard")
	}
	return nil
}
