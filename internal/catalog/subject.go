package catalog

import (
	"fmt"
	"regexp"
)

// DefaultPattern matches the upstream figure naming convention. The single
// capture group holds the subject identifier.
const DefaultPattern = `stride_change_([A-Z]+\d+)_fixed_grid\.png`

// SubjectPattern extracts subject identifiers from figure filenames.
type SubjectPattern struct {
	re *regexp.Regexp
}

// NewSubjectPattern compiles pattern, which must contain exactly one capture
// group for the subject identifier.
func NewSubjectPattern(pattern string) (SubjectPattern, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return SubjectPattern{}, fmt.Errorf("failed to compile subject pattern: %w", err)
	}
	if re.NumSubexp() != 1 {
		return SubjectPattern{}, fmt.Errorf("subject pattern must have exactly one capture group, got %d", re.NumSubexp())
	}
	return SubjectPattern{re: re}, nil
}

// Extract returns the subject identifier embedded in filename. The second
// return value is false when the filename does not follow the naming
// convention. Only the first match is used and the token is returned exactly
// as it appears, with no normalization.
func (p SubjectPattern) Extract(filename string) (string, bool) {
	m := p.re.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return m[1], true
}
