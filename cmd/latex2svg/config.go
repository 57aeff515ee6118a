package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/latex2svg/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective conversion parameters as YAML",
	Long: `Config prints the parameters after applying the config file and
LATEX2SVG_* environment variables. The output is a valid config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParams(viper.GetViper())
		if err != nil {
			return err
		}
		return writeParams(os.Stdout, params)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func writeParams(w io.Writer, p types.Params) error {
	data, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("marshaling parameters: %w", err)
	}
	_, err = w.Write(data)
	return err
}
