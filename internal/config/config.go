// Package config holds the knobs of a deck generation run: input locations,
// output path, deck title, and canvas geometry. Values come from defaults,
// then an optional YAML file, then command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gaitlab/stridedeck/internal/catalog"
	"github.com/gaitlab/stridedeck/internal/layout"
)

// Canvas is the slide geometry in inches.
type Canvas struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	TitleBand    float64 `yaml:"title_band"`
	BottomMargin float64 `yaml:"bottom_margin"`
	SideMargin   float64 `yaml:"side_margin"`
}

// Config enumerates every configurable value of a run.
type Config struct {
	// PathsFile is the newline-delimited image path list. When it exists it
	// takes precedence over scanning ImagesDir.
	PathsFile string `yaml:"paths_file"`
	// ImagesDir is the root scanned for figures when PathsFile is absent.
	ImagesDir      string   `yaml:"images_dir"`
	MetadataPath   string   `yaml:"metadata_path"`
	OutputPath     string   `yaml:"output_path"`
	Title          string   `yaml:"title"`
	SubjectPattern string   `yaml:"subject_pattern"`
	ScanGlob       string   `yaml:"scan_glob"`
	SearchDirs     []string `yaml:"search_dirs"`
	ProgressEvery  int      `yaml:"progress_every"`
	Canvas         Canvas   `yaml:"canvas"`
}

// Default returns the configuration the original study pipeline ran with.
func Default() *Config {
	g := layout.Default()
	return &Config{
		PathsFile:      "paste.txt",
		ImagesDir:      ".",
		MetadataPath:   "muh_metadata.csv",
		OutputPath:     "stride_change_analysis_by_age.pptx",
		Title:          "Motor Learning: Stride Change After Success vs Failure",
		SubjectPattern: catalog.DefaultPattern,
		ScanGlob:       catalog.DefaultScanGlob,
		SearchDirs:     append([]string(nil), catalog.DefaultSearchDirs...),
		ProgressEvery:  10,
		Canvas: Canvas{
			Width:        g.CanvasWidth,
			Height:       g.CanvasHeight,
			TitleBand:    g.TitleBand,
			BottomMargin: g.BottomMargin,
			SideMargin:   g.SideMargin,
		},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values. The file must exist; Load is only called when the
// user named one.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Geometry converts the canvas block into the layout engine's type.
func (c *Config) Geometry() layout.Geometry {
	return layout.Geometry{
		CanvasWidth:  c.Canvas.Width,
		CanvasHeight: c.Canvas.Height,
		TitleBand:    c.Canvas.TitleBand,
		BottomMargin: c.Canvas.BottomMargin,
		SideMargin:   c.Canvas.SideMargin,
	}
}

// Validate rejects configurations no run could satisfy.
func (c *Config) Validate() error {
	if c.OutputPath == "" {
		return errors.New("output path must not be empty")
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New("canvas dimensions must be positive")
	}
	if c.ProgressEvery < 0 {
		return errors.New("progress interval must not be negative")
	}
	if _, err := catalog.NewSubjectPattern(c.SubjectPattern); err != nil {
		return fmt.Errorf("invalid subject pattern: %w", err)
	}
	return nil
}
