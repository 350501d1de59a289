package main

import (
	"github.com/spf13/cobra"
)

// version is set at the repository's release point; there is no build-
// time ldflags injection here, so it stays a plain constant the way
// small single-binary CLIs in the pack do.
const version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cellanneal",
		Short: "Reconstruct bacillus cell lineages from micrograph sequences",
		Long: "cellanneal fits a lineage of rod-shaped cells to a time-ordered " +
			"sequence of grayscale micrographs by simulated annealing, " +
			"emitting best-fit, outline-overlay, and residual images plus " +
			"a lineage CSV.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newAutoTempCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cellanneal version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(version)
			return nil
		},
	}
}
