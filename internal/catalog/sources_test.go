package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadPathsFile(t *testing.T) {
	tmpDir := t.TempDir()
	pathsFile := filepath.Join(tmpDir, "paste.txt")

	content := `"C:\figures\stride_change_MUH1396_fixed_grid.png"
"C:\figures\stride_change_MUH1069_fixed_grid.png"

notes.txt
  "figures/stride_change_MUH1204_fixed_grid.png"
`
	if err := os.WriteFile(pathsFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	paths, err := ReadPathsFile(pathsFile)
	if err != nil {
		t.Fatalf("ReadPathsFile failed: %v", err)
	}

	expected := []string{
		`C:\figures\stride_change_MUH1396_fixed_grid.png`,
		`C:\figures\stride_change_MUH1069_fixed_grid.png`,
		"figures/stride_change_MUH1204_fixed_grid.png",
	}
	if len(paths) != len(expected) {
		t.Fatalf("Expected %d paths, got %d", len(expected), len(paths))
	}
	for i, want := range expected {
		if paths[i] != want {
			t.Errorf("Expected path %d to be %q, got %q", i, want, paths[i])
		}
	}
}

func TestReadPathsFileMissing(t *testing.T) {
	_, err := ReadPathsFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Error("Expected error for missing paths file, got nil")
	}
}

func TestScanDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{
		filepath.Join(tmpDir, "stride_change_MUH1396_fixed_grid.png"),
		filepath.Join(tmpDir, "nested", "stride_change_MUH1069_fixed_grid.png"),
		filepath.Join(tmpDir, "nested", "other.png"),
		filepath.Join(tmpDir, "readme.txt"),
	}
	for _, f := range files {
		writeTestFile(t, f)
	}

	paths, err := ScanDirectory(tmpDir, DefaultScanGlob)
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("Expected 2 matches, got %d: %v", len(paths), paths)
	}
	// WalkDir is lexical: the nested directory sorts before the top-level file.
	if filepath.Base(paths[0]) != "stride_change_MUH1069_fixed_grid.png" {
		t.Errorf("Expected nested match first, got %s", paths[0])
	}
	if filepath.Base(paths[1]) != "stride_change_MUH1396_fixed_grid.png" {
		t.Errorf("Expected top-level match second, got %s", paths[1])
	}
}

func TestScanDirectoryMissingRoot(t *testing.T) {
	_, err := ScanDirectory(filepath.Join(t.TempDir(), "nope"), DefaultScanGlob)
	if err == nil {
		t.Error("Expected error for missing directory, got nil")
	}
}
