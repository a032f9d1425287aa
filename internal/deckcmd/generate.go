// Package deckcmd implements the stridedeck commands: generate builds the
// age-ordered figure deck, inspect previews the slide order without writing
// a document.
package deckcmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gaitlab/stridedeck/internal/catalog"
	"github.com/gaitlab/stridedeck/internal/config"
	"github.com/gaitlab/stridedeck/internal/deck"
	"github.com/gaitlab/stridedeck/internal/metadata"
	"github.com/gaitlab/stridedeck/internal/pptx"
	"github.com/gaitlab/stridedeck/internal/report"
)

// NewGenerateCmd creates the generate command, the full image-to-deck pipeline
func NewGenerateCmd() *cobra.Command {
	var configPath string
	var pathsFile string
	var imagesDir string
	var metadataPath string
	var outputPath string
	var title string
	var manifestPath string
	var progressEvery int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the age-ordered PowerPoint deck from stride change figures",
		Long: `Generate a PowerPoint document with one slide per stride change figure,
ordered by participant age (youngest first, subjects without age data last).

Image paths come from a newline-delimited list file when one exists; otherwise
the images directory is scanned recursively for matching figure files. Ages
come from a subject metadata table (CSV or Parquet) with ID, age, and
age_months columns. A missing metadata table is not fatal: the deck is then
ordered by subject ID alone.`,
		Example: `  # Default run: paste.txt or the current directory, muh_metadata.csv
  stridedeck generate

  # Explicit inputs and output
  stridedeck generate --paths pic_path.txt --metadata muh_metadata.csv --output deck.pptx

  # Scan a figures directory and write a run manifest
  stridedeck generate --images analysis/figures --manifest run.yaml --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			overlayFlags(cfg, pathsFile, imagesDir, metadataPath, outputPath, title, progressEvery)

			return executeGenerate(cfg, manifestPath, verbose)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&pathsFile, "paths", "", "Newline-delimited image path list file")
	cmd.Flags().StringVar(&imagesDir, "images", "", "Directory scanned for figures when no paths file exists")
	cmd.Flags().StringVar(&metadataPath, "metadata", "", "Subject metadata table (.csv or .parquet)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Output .pptx path")
	cmd.Flags().StringVar(&title, "title", "", "Deck title")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Write a YAML run manifest to this path")
	cmd.Flags().IntVar(&progressEvery, "progress-every", 0, "Print progress every N slides")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func executeGenerate(cfg *config.Config, manifestPath string, verbose bool) error {
	setupLogging(verbose)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("Starting deck generation",
		"output", cfg.OutputPath,
		"metadata", cfg.MetadataPath,
		"title", cfg.Title)

	cat, err := buildCatalog(cfg)
	if err != nil {
		return err
	}

	reportMissing(cat)

	assembler := &deck.Assembler{
		Doc:           pptx.New(cfg.Title, cfg.Geometry()),
		Geometry:      cfg.Geometry(),
		Title:         cfg.Title,
		OutputPath:    cfg.OutputPath,
		ProgressEvery: cfg.ProgressEvery,
	}

	summary, err := assembler.Assemble(cat)
	if err != nil {
		return err
	}

	if manifestPath != "" {
		if err := report.Save(manifestPath, report.Build(cfg, cat, summary)); err != nil {
			fmt.Printf("Warning: Failed to save run manifest: %v\n", err)
		}
	}

	printSummary(cfg.OutputPath, summary)

	return nil
}

// loadConfig returns the defaults, or the named YAML file over them.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// overlayFlags applies non-empty flag values over the configuration, so
// flags win over the config file, which wins over defaults.
func overlayFlags(cfg *config.Config, pathsFile, imagesDir, metadataPath, outputPath, title string, progressEvery int) {
	if pathsFile != "" {
		cfg.PathsFile = pathsFile
	}
	if imagesDir != "" {
		cfg.ImagesDir = imagesDir
	}
	if metadataPath != "" {
		cfg.MetadataPath = metadataPath
	}
	if outputPath != "" {
		cfg.OutputPath = outputPath
	}
	if title != "" {
		cfg.Title = title
	}
	if progressEvery > 0 {
		cfg.ProgressEvery = progressEvery
	}
}

func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

// buildCatalog runs the input half of the pipeline: collect paths, load
// ages, resolve and sort the records.
func buildCatalog(cfg *config.Config) (catalog.Catalog, error) {
	paths, err := collectImagePaths(cfg)
	if err != nil {
		return catalog.Catalog{}, err
	}

	pattern, err := catalog.NewSubjectPattern(cfg.SubjectPattern)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("invalid subject pattern: %w", err)
	}

	builder := catalog.Builder{
		Pattern:  pattern,
		Resolver: catalog.NewResolver(cfg.SearchDirs),
		Ages:     loadAges(cfg.MetadataPath),
	}
	cat := builder.Build(paths)

	slog.Info("Catalog built", "present", len(cat.Present), "missing", len(cat.Missing))
	return cat, nil
}

// collectImagePaths mirrors the original tool's input precedence: the paths
// file when it exists, otherwise a recursive directory scan.
func collectImagePaths(cfg *config.Config) ([]string, error) {
	var paths []string

	if _, err := os.Stat(cfg.PathsFile); err == nil {
		slog.Info("Loading image paths from file", "path", cfg.PathsFile)
		p, err := catalog.ReadPathsFile(cfg.PathsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read paths file: %w", err)
		}
		paths = p
	} else {
		slog.Info("Paths file not found, scanning for figures",
			"dir", cfg.ImagesDir, "pattern", cfg.ScanGlob)
		p, err := catalog.ScanDirectory(cfg.ImagesDir, cfg.ScanGlob)
		if err != nil {
			return nil, fmt.Errorf("failed to scan images directory: %w", err)
		}
		paths = p
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no image paths found: provide %s with image paths, or place figures matching %q under %s",
			cfg.PathsFile, cfg.ScanGlob, cfg.ImagesDir)
	}
	return paths, nil
}

// loadAges loads the subject age table. A missing or unreadable table
// degrades to an empty mapping so the run continues ordered by subject ID.
func loadAges(path string) map[string]float64 {
	ages, err := metadata.NewLoader(path).Load()
	if err != nil {
		fmt.Printf("Warning: Failed to load subject metadata from %s: %v\n", path, err)
		fmt.Println("Proceeding without age data, slides will be ordered by subject ID")
		return map[string]float64{}
	}
	slog.Info("Subject metadata loaded", "subjects", len(ages))
	return ages
}

// reportMissing lists unresolved input paths, truncated after the first 5.
func reportMissing(cat catalog.Catalog) {
	if len(cat.Missing) == 0 {
		return
	}
	fmt.Printf("Warning: %d image files not found:\n", len(cat.Missing))
	for i, rec := range cat.Missing {
		if i == 5 {
			fmt.Printf("   ... and %d more\n", len(cat.Missing)-5)
			break
		}
		fmt.Printf("   - %s\n", rec.Path)
	}
}

func printSummary(outputPath string, summary *deck.Summary) {
	fmt.Println("\n========================================")
	fmt.Println("Deck Summary")
	fmt.Println("========================================")
	fmt.Printf("Total Slides:       %d\n", summary.Slides)
	fmt.Printf("Subjects:           %d\n", summary.Subjects)
	fmt.Printf("With Age Data:      %d\n", summary.WithAge)
	fmt.Printf("Without Age Data:   %d\n", summary.WithoutAge)
	if summary.Placeholders > 0 {
		fmt.Printf("Placeholder Slides: %d\n", summary.Placeholders)
	}
	if summary.WithAge > 0 {
		fmt.Println()
		fmt.Printf("Age Range:          %.1f - %.1f years\n", summary.AgeMin, summary.AgeMax)
		fmt.Printf("Mean Age:           %.1f years\n", summary.AgeMean)
		fmt.Printf("Median Age:         %.1f years\n", summary.AgeMedian)
	}
	fmt.Println("========================================")

	absPath, _ := filepath.Abs(outputPath)
	fmt.Printf("\n✅ Presentation saved to: %s\n", absPath)
}
