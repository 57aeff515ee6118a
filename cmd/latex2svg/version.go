package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of latex2svg",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("latex2svg %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
