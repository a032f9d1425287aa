// Package report writes the YAML run manifest: the configuration a deck was
// generated with, the slide order it ended up in, and what was skipped.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gaitlab/stridedeck/internal/catalog"
	"github.com/gaitlab/stridedeck/internal/config"
	"github.com/gaitlab/stridedeck/internal/deck"
)

// RunConfig represents the configuration section of the manifest
type RunConfig struct {
	Output       string `yaml:"output"`
	MetadataPath string `yaml:"metadatapath"`
	Title        string `yaml:"title"`
	Pattern      string `yaml:"pattern"`
	Timestamp    string `yaml:"timestamp"`
}

// SlideEntry represents one image slide in final deck order
type SlideEntry struct {
	Index    int      `yaml:"index"`
	Subject  string   `yaml:"subject"`
	AgeYears *float64 `yaml:"ageyears,omitempty"`
	Filename string   `yaml:"filename"`
	Path     string   `yaml:"path"`
}

// MissingEntry represents an input path that resolved to nothing on disk
type MissingEntry struct {
	Subject string `yaml:"subject"`
	Path    string `yaml:"path"`
}

// RunSummary represents the run totals
type RunSummary struct {
	Slides       int     `yaml:"slides"`
	Subjects     int     `yaml:"subjects"`
	WithAge      int     `yaml:"withage"`
	WithoutAge   int     `yaml:"withoutage"`
	Placeholders int     `yaml:"placeholders"`
	AgeMin       float64 `yaml:"agemin,omitempty"`
	AgeMax       float64 `yaml:"agemax,omitempty"`
	AgeMean      float64 `yaml:"agemean,omitempty"`
	AgeMedian    float64 `yaml:"agemedian,omitempty"`
}

// Manifest represents the complete run manifest
type Manifest struct {
	Config  RunConfig      `yaml:"config"`
	Slides  []SlideEntry   `yaml:"slides"`
	Missing []MissingEntry `yaml:"missing,omitempty"`
	Summary RunSummary     `yaml:"summary"`
}

// Build assembles the manifest for one completed run.
func Build(cfg *config.Config, cat catalog.Catalog, summary *deck.Summary) *Manifest {
	m := &Manifest{
		Config: RunConfig{
			Output:       cfg.OutputPath,
			MetadataPath: cfg.MetadataPath,
			Title:        cfg.Title,
			Pattern:      cfg.SubjectPattern,
			Timestamp:    time.Now().Format("2006-01-02_15-04-05"),
		},
		Slides: make([]SlideEntry, 0, len(cat.Present)),
	}

	for i, rec := range cat.Present {
		entry := SlideEntry{
			Index:    i + 1,
			Subject:  rec.SubjectID,
			Filename: rec.Filename,
			Path:     rec.Path,
		}
		if rec.HasAge {
			age := rec.AgeYears
			entry.AgeYears = &age
		}
		m.Slides = append(m.Slides, entry)
	}

	for _, rec := range cat.Missing {
		m.Missing = append(m.Missing, MissingEntry{Subject: rec.SubjectID, Path: rec.Path})
	}

	m.Summary = RunSummary{
		Slides:       summary.Slides,
		Subjects:     summary.Subjects,
		WithAge:      summary.WithAge,
		WithoutAge:   summary.WithoutAge,
		Placeholders: summary.Placeholders,
		AgeMin:       summary.AgeMin,
		AgeMax:       summary.AgeMax,
		AgeMean:      summary.AgeMean,
		AgeMedian:    summary.AgeMedian,
	}
	return m
}

// Save writes the manifest as YAML and prints where it landed.
func Save(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	absPath, _ := filepath.Abs(path)
	fmt.Printf("\n✅ Run manifest saved to: %s\n", absPath)

	return nil
}
