package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scatterforge/internal/plotmodel"
	"scatterforge/internal/session"
)

var infoCmd = &cobra.Command{
	Use:   "info <session.sfsession>",
	Short: "Print a session's structure without loading the data",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	f, err := session.Load(args[0])
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session:  %s (v%d)\n", args[0], f.Version)
	fmt.Fprintf(out, "Plot:     %s\n", f.PlotType)
	if f.PlotTitle != "" {
		fmt.Fprintf(out, "Title:    %s\n", f.PlotTitle)
	}
	fmt.Fprintf(out, "Modified: %s\n", f.Modified.Format("2006-01-02 15:04:05"))

	total := len(f.Unassigned)
	fmt.Fprintf(out, "\nGroups (%d):\n", len(f.Groups))
	for _, g := range f.Groups {
		suffix := plotmodel.PlainStackFactor(g.StackFactor)
		if suffix != "" {
			suffix = " " + suffix
		}
		fmt.Fprintf(out, "  %s%s: %d dataset(s)\n", g.Name, suffix, len(g.Datasets))
		for _, d := range g.Datasets {
			fmt.Fprintf(out, "    %s (%s)\n", d.Name, d.FilePath)
		}
		total += len(g.Datasets)
	}
	if len(f.Unassigned) > 0 {
		fmt.Fprintf(out, "Unassigned (%d):\n", len(f.Unassigned))
		for _, d := range f.Unassigned {
			fmt.Fprintf(out, "  %s (%s)\n", d.Name, d.FilePath)
		}
	}
	fmt.Fprintf(out, "\n%d dataset(s) total\n", total)
	return nil
}
