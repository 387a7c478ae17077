package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scatterforge/internal/app"
	"scatterforge/internal/config"
)

var groupFlags struct {
	output    string
	configDir string
}

var groupCmd = &cobra.Command{
	Use:   "group <data files...>",
	Short: "Load data files, auto-group by magnitude, and write a session",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGroup,
}

func init() {
	f := groupCmd.Flags()
	f.StringVarP(&groupFlags.output, "output", "o", "session.sfsession", "Session file to write")
	f.StringVar(&groupFlags.configDir, "config-dir", config.DefaultDir(), "Configuration directory")
}

func runGroup(cmd *cobra.Command, args []string) error {
	state := app.NewState(config.Load(groupFlags.configDir))

	loaded, failures := state.LoadFiles(args)
	for _, ferr := range failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", ferr)
	}
	if len(loaded) == 0 {
		return fmt.Errorf("no datasets could be loaded")
	}

	summary, err := state.AutoGroupByMagnitude()
	if err != nil {
		return fmt.Errorf("auto-group: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), summary)

	if err := state.SaveSession(groupFlags.output); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", groupFlags.output)
	return nil
}
