package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gaitlab/stridedeck/internal/catalog"
	"github.com/gaitlab/stridedeck/internal/config"
	"github.com/gaitlab/stridedeck/internal/deck"
)

func testManifest() *Manifest {
	cat := catalog.Catalog{
		Present: []catalog.SlideRecord{
			{Path: "a.png", SubjectID: "MUH1069", AgeYears: 8.4, HasAge: true, Filename: "stride_change_MUH1069_fixed_grid.png"},
			{Path: "c.png", SubjectID: "MUH1204", Filename: "stride_change_MUH1204_fixed_grid.png"},
		},
		Missing: []catalog.SlideRecord{
			{Path: "gone.png", SubjectID: "MUH1396", Filename: "stride_change_MUH1396_fixed_grid.png"},
		},
	}
	summary := &deck.Summary{
		Slides: 3, Subjects: 2, WithAge: 1, WithoutAge: 1,
		AgeMin: 8.4, AgeMax: 8.4, AgeMean: 8.4, AgeMedian: 8.4,
	}
	return Build(config.Default(), cat, summary)
}

func TestBuild(t *testing.T) {
	m := testManifest()

	if len(m.Slides) != 2 {
		t.Fatalf("Expected 2 slide entries, got %d", len(m.Slides))
	}
	if m.Slides[0].Index != 1 || m.Slides[0].Subject != "MUH1069" {
		t.Errorf("Expected first entry MUH1069 at index 1, got %+v", m.Slides[0])
	}
	if m.Slides[0].AgeYears == nil || *m.Slides[0].AgeYears != 8.4 {
		t.Errorf("Expected age 8.4 on the first entry, got %v", m.Slides[0].AgeYears)
	}
	if m.Slides[1].AgeYears != nil {
		t.Errorf("Expected no age on the second entry, got %v", *m.Slides[1].AgeYears)
	}
	if len(m.Missing) != 1 || m.Missing[0].Path != "gone.png" {
		t.Errorf("Expected one missing entry for gone.png, got %+v", m.Missing)
	}
	if m.Config.Title != "Motor Learning: Stride Change After Success vs Failure" {
		t.Errorf("Expected config echo of the title, got %q", m.Config.Title)
	}
	if m.Config.Timestamp == "" {
		t.Error("Expected a timestamp")
	}
	if m.Summary.Subjects != 2 || m.Summary.WithAge != 1 {
		t.Errorf("Expected summary totals to carry over, got %+v", m.Summary)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")

	m := testManifest()
	if err := Save(path, m); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read manifest: %v", err)
	}

	// The age key is omitted entirely for age-less subjects.
	if strings.Count(string(data), "ageyears:") != 1 {
		t.Errorf("Expected exactly one ageyears key, got:\n%s", data)
	}

	var loaded Manifest
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Failed to parse saved manifest: %v", err)
	}
	if len(loaded.Slides) != 2 || loaded.Slides[0].Subject != "MUH1069" {
		t.Errorf("Expected slide entries to survive the round trip, got %+v", loaded.Slides)
	}
	if loaded.Slides[1].AgeYears != nil {
		t.Error("Expected the age-less entry to stay age-less")
	}
	if loaded.Summary.Slides != 3 {
		t.Errorf("Expected summary slide count 3, got %d", loaded.Summary.Slides)
	}
}

func TestSaveIntoMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "no", "such", "manifest.yaml")

	if err := Save(path, testManifest()); err == nil {
		t.Fatal("Expected error saving into a missing directory, got nil")
	}
}
