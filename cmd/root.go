package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gaitlab/stridedeck/internal/deckcmd"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stridedeck",
		Short: "Turn stride change figures into an age-ordered PowerPoint deck",
		Long: `Stridedeck builds a PowerPoint document from a set of stride change figure
images, one slide per participant, ordered from youngest to oldest.

Participant ages come from a subject metadata table (CSV or Parquet); image
paths come from a path list file or a recursive directory scan.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(deckcmd.NewGenerateCmd())
	cmd.AddCommand(deckcmd.NewInspectCmd())

	return cmd
}
