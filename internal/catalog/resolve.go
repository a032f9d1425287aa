package catalog

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultSearchDirs are the conventional locations where the upstream
// analysis writes its figure output, searched in order when a path from
// another machine cannot be used as-is. The empty entry means the bare
// filename relative to the working directory.
var DefaultSearchDirs = []string{
	"",
	"figures/individual_plots/stride_change_after_success_vs_failure",
	"analysis/figures/individual_plots/stride_change_after_success_vs_failure",
	"motor_learning_output/figures/individual_plots/stride_change_after_success_vs_failure",
}

// Resolver turns raw image path strings into paths usable on this machine.
// Path lists are frequently authored on Windows and consumed elsewhere, so a
// path carrying a drive-letter prefix that does not exist locally falls back
// to a search over SearchDirs using just the base filename.
type Resolver struct {
	SearchDirs []string
	windows    bool
}

// NewResolver creates a resolver for the current platform.
func NewResolver(searchDirs []string) Resolver {
	return Resolver{SearchDirs: searchDirs, windows: runtime.GOOS == "windows"}
}

// Resolve normalizes raw to the host separator convention and reports
// whether the file exists. A drive-letter path that does not exist on a
// non-Windows host is searched for under SearchDirs; the first hit wins.
// When nothing is found the normalized path is returned with false so the
// caller can record it as missing. Resolve never fails.
func (r Resolver) Resolve(raw string) (string, bool) {
	path := normalizeSeparators(raw)
	if fileExists(path) {
		return path, true
	}
	if r.windows || !hasDrivePrefix(path) {
		return path, false
	}

	base := filepath.Base(path)
	for _, dir := range r.SearchDirs {
		candidate := base
		if dir != "" {
			candidate = filepath.Join(dir, base)
		}
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return path, false
}

func normalizeSeparators(path string) string {
	sep := string(os.PathSeparator)
	path = strings.ReplaceAll(path, "\\", sep)
	return strings.ReplaceAll(path, "/", sep)
}

// hasDrivePrefix reports whether path starts with a drive letter, a colon
// and a separator, e.g. "C:\data" or "d:/data". The separator requirement
// keeps odd-but-legal relative names like "C:notes.png" out of the fallback.
func hasDrivePrefix(path string) bool {
	if len(path) < 3 {
		return false
	}
	c := path[0]
	isLetter := (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
	return isLetter && path[1] == ':' && os.IsPathSeparator(path[2])
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
