package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scatterforge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sfrender",
	Short: "Headless rendering for ScatterForge sessions",
	Long: "sfrender renders ScatterForge session files to publication figures\n" +
		"without the GUI, for batch export and CI pipelines.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.Version = version.Version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
