// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the latex2svg CLI. With arguments it
// converts the given LaTeX math and copies the SVG to the clipboard; without
// arguments it reads stdin when piped or opens the window otherwise.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/latex2svg/internal/tool"
	"github.com/pdiddy/latex2svg/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is shared by every command. Level and output are set in
// PersistentPreRunE.
var logger = logrus.New()

// rootCmd converts LaTeX given as arguments or on stdin.
var rootCmd = &cobra.Command{
	Use:   "latex2svg [flags] <latex code...>",
	Short: "Convert LaTeX math to an inline-scalable SVG",
	Long: `latex2svg renders LaTeX math with pdflatex, converts it to SVG with
dvisvgm, sets width, height and vertical-align in em so the image scales with
the surrounding text, and minifies it with scour. The SVG is copied to the
clipboard.

Arguments are joined with spaces. Without arguments the code is read from
stdin when it is piped; otherwise a window is opened.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		configureLogger(logger, os.Stderr, verbose)
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debugf("using config file %s", f)
		}
		return nil
	},
	RunE: runRoot,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./latex2svg.yaml or ~/.config/latex2svg/latex2svg.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log tool invocations and image metrics")

	rootCmd.Flags().Int("font-size", types.DefaultFontSize, "display font size in pt (also -fs); the SVG is scaled by font-size/10")
	rootCmd.Flags().StringP("output", "o", "", "also write the SVG to this file")
	rootCmd.Flags().Bool("print", false, "also write the SVG to stdout")
	rootCmd.Flags().Bool("no-clipboard", false, "do not copy the SVG to the clipboard")
	rootCmd.Flags().Bool("metadata", false, "print width, height and valign as YAML on stdout")
	rootCmd.Flags().String("workdir", "", "keep intermediate files in this directory")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("latex2svg")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "latex2svg"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("LATEX2SVG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}
}

// setDefaults registers every Params key so that config files and
// LATEX2SVG_* environment variables can override it.
func setDefaults(v *viper.Viper) {
	d := types.DefaultParams()
	v.SetDefault("fontsize", d.FontSize)
	v.SetDefault("template", d.Template)
	v.SetDefault("preamble", d.Preamble)
	v.SetDefault("typeset_command", d.TypesetCommand)
	v.SetDefault("vectorize_command", d.VectorizeCommand)
	v.SetDefault("minify_command", d.MinifyCommand)
	v.SetDefault("scale", d.Scale)
	v.SetDefault("optimizer", d.Optimizer)
	v.SetDefault("libgs", d.LibGS)
}

// loadParams returns the defaults overridden by config file and environment.
func loadParams(v *viper.Viper) (types.Params, error) {
	p := types.DefaultParams()
	if err := v.Unmarshal(&p); err != nil {
		return types.Params{}, fmt.Errorf("reading configuration: %w", err)
	}
	return p, nil
}

// parseLogLevel maps LOG_LEVEL to a logrus level, defaulting to warn.
func parseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

func configureLogger(log *logrus.Logger, w io.Writer, verbose bool) {
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
}

// normalizeArgs rewrites the two-letter -fs flag, which pflag cannot
// express as a shorthand, to --font-size. Arguments after "--" are left
// alone.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i, a := range out {
		switch {
		case a == "--":
			return out
		case a == "-fs":
			out[i] = "--font-size"
		case strings.HasPrefix(a, "-fs="):
			out[i] = "--font-size=" + strings.TrimPrefix(a, "-fs=")
		}
	}
	return out
}

// exitCode reports err on w and returns the process exit status. A failing
// tool's captured output is printed and its own exit code is used.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	var ee *tool.ExecutionError
	if errors.As(err, &ee) {
		// pdflatex reports on stdout and dvisvgm on stderr, so print both.
		fmt.Fprintln(w, string(ee.Stdout))
		fmt.Fprintln(w, string(ee.Stderr))
		if ee.ExitCode > 0 {
			return ee.ExitCode
		}
		return 1
	}
	fmt.Fprintln(w, "Error:", err)
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	err := rootCmd.ExecuteContext(ctx)
	stop()

	os.Exit(exitCode(err, os.Stderr))
}
