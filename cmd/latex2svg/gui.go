package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/latex2svg/internal/convert"
	"github.com/pdiddy/latex2svg/internal/gui"
	"github.com/pdiddy/latex2svg/internal/tool"
	"github.com/pdiddy/latex2svg/pkg/types"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the conversion window",
	Long: `Gui opens a window with an editor for the LaTeX code, a font size
field, and a button that converts the code and copies the SVG to the
clipboard. Running latex2svg without arguments from a terminal does the same.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParams(viper.GetViper())
		if err != nil {
			return err
		}
		return runWindow(convert.New(tool.NewProcessRunner(logger), logger), params)
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

func runWindow(conv gui.Converter, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	gui.Run(conv, params, logger)
	return nil
}
