package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/latex2svg/internal/tool"
	"github.com/pdiddy/latex2svg/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether the external tools are installed",
	Long: `Check looks up the typesetter, vectorizer and optimizer of the current
configuration on PATH. The optimizer is optional: without it the SVG is
returned unminified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParams(viper.GetViper())
		if err != nil {
			return err
		}
		return checkTools(params, tool.NewProcessRunner(logger).Available, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkTools prints one line per tool and fails if a required one is missing.
func checkTools(p types.Params, available func(string) bool, w io.Writer) error {
	checks := []struct {
		role     string
		command  string
		required bool
	}{
		{"typesetter", p.TypesetCommand, true},
		{"vectorizer", p.VectorizeCommand, true},
		{"optimizer", p.MinifyCommand, false},
	}

	var missing []string
	for _, c := range checks {
		args, err := tool.Split(c.command)
		if err != nil {
			return fmt.Errorf("%s: %w", c.role, err)
		}
		exe := args[0]
		switch {
		case available(exe):
			fmt.Fprintf(w, "ok       %-11s %s\n", c.role, exe)
		case c.required:
			fmt.Fprintf(w, "missing  %-11s %s\n", c.role, exe)
			missing = append(missing, exe)
		default:
			fmt.Fprintf(w, "missing  %-11s %s (optional, SVG will not be minified)\n", c.role, exe)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("required tools not found: %s", strings.Join(missing, ", "))
	}
	return nil
}
