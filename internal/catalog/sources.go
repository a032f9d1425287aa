package catalog

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultScanGlob matches the stride change figure filenames produced by the
// upstream analysis.
const DefaultScanGlob = "*stride_change*fixed_grid.png"

// ReadPathsFile reads a newline-delimited list of image paths. Each line is
// trimmed of whitespace and surrounding quotes; blank lines and lines that
// are not .png paths are skipped.
func ReadPathsFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image paths file: %w", err)
	}
	defer file.Close()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.Trim(strings.TrimSpace(scanner.Text()), `"`)
		if line == "" || !strings.HasSuffix(line, ".png") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read image paths file: %w", err)
	}

	return paths, nil
}

// ScanDirectory walks root recursively and returns every file whose base
// name matches the glob pattern. The walk is lexical, so the result order is
// deterministic for a given tree.
func ScanDirectory(root, pattern string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return fmt.Errorf("invalid scan pattern %q: %w", pattern, err)
		}
		if ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return paths, nil
}
