package deckcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaitlab/stridedeck/internal/config"
)

// NewInspectCmd creates the inspect command, a catalog dry run
func NewInspectCmd() *cobra.Command {
	var configPath string
	var pathsFile string
	var imagesDir string
	var metadataPath string
	var limit int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Preview the slide order without writing a document",
		Long: `Build the image catalog and print the slide order the deck would use:
subject, age, and source file per slide, plus every input path that did not
resolve to a file on disk.

Useful for checking age data joins and path resolution before a long
generation run.`,
		Example: `  # Preview the default run
  stridedeck inspect

  # Preview the first 5 slides of an explicit path list
  stridedeck inspect --paths pic_path.txt --metadata muh_metadata.csv --limit 5

  # Preview everything under a figures directory
  stridedeck inspect --images analysis/figures --limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			overlayFlags(cfg, pathsFile, imagesDir, metadataPath, "", "", 0)

			return executeInspect(cfg, limit, verbose)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&pathsFile, "paths", "", "Newline-delimited image path list file")
	cmd.Flags().StringVar(&imagesDir, "images", "", "Directory scanned for figures when no paths file exists")
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "Subject metadata table (.csv or .parquet)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of slides to preview (0 for all)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func executeInspect(cfg *config.Config, limit int, verbose bool) error {
	setupLogging(verbose)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cat, err := buildCatalog(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Catalog: %d slides ready, %d paths missing\n", len(cat.Present), len(cat.Missing))
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	shown := len(cat.Present)
	if limit > 0 && limit < shown {
		shown = limit
	}

	for i, rec := range cat.Present[:shown] {
		fmt.Printf("SLIDE %d/%d\n", i+1, len(cat.Present))
		fmt.Println(strings.Repeat("-", 80))
		fmt.Printf("Subject:  %s\n", rec.SubjectID)
		if rec.HasAge {
			fmt.Printf("Age:      %.1f years\n", rec.AgeYears)
		} else {
			fmt.Println("Age:      (no data)")
		}
		fmt.Printf("File:     %s\n", rec.Filename)
		fmt.Printf("Path:     %s\n", rec.Path)
		fmt.Println()
	}

	if shown < len(cat.Present) {
		fmt.Printf("... and %d more slides\n", len(cat.Present)-shown)
	}

	if len(cat.Missing) > 0 {
		fmt.Println(strings.Repeat("=", 80))
		fmt.Printf("Missing files (%d):\n", len(cat.Missing))
		for _, rec := range cat.Missing {
			fmt.Printf("   - %s\n", rec.Path)
		}
	}

	return nil
}
