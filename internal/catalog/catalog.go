package catalog

import (
	"log/slog"
	"path/filepath"
	"sort"
)

// SlideRecord is one image ready to become a slide. AgeYears is only
// meaningful when HasAge is true; an unknown age is distinct from age zero.
type SlideRecord struct {
	Path      string
	SubjectID string
	AgeYears  float64
	HasAge    bool
	Filename  string
}

// Catalog partitions the validated slide records by whether the resolved
// image file exists on disk. Present is sorted into slide order; Missing
// keeps the input order and is informational only.
type Catalog struct {
	Present []SlideRecord
	Missing []SlideRecord
}

// KnownAges returns the ages of the present records that have one, in slide
// order. Because Present sorts by age first, the result is ascending.
func (c Catalog) KnownAges() []float64 {
	var ages []float64
	for _, rec := range c.Present {
		if rec.HasAge {
			ages = append(ages, rec.AgeYears)
		}
	}
	return ages
}

// Builder assembles a Catalog from raw image path strings.
type Builder struct {
	Pattern  SubjectPattern
	Resolver Resolver
	Ages     map[string]float64
}

// Build resolves every input path, extracts its subject identifier, joins
// the age mapping and partitions the records by existence on disk. Paths
// whose filename does not yield a subject identifier are dropped with a
// diagnostic. The catalog holds at most one record per resolved path; later
// duplicates are skipped. Present comes back sorted youngest first, with
// age-less subjects at the end ordered by subject ID.
func (b Builder) Build(paths []string) Catalog {
	var cat Catalog
	seen := make(map[string]struct{}, len(paths))

	for _, raw := range paths {
		path, exists := b.Resolver.Resolve(raw)
		filename := filepath.Base(path)

		subjectID, ok := b.Pattern.Extract(filename)
		if !ok {
			slog.Warn("Could not extract subject ID", "filename", filename)
			continue
		}

		if _, dup := seen[path]; dup {
			slog.Debug("Skipping duplicate image path", "path", path)
			continue
		}
		seen[path] = struct{}{}

		rec := SlideRecord{Path: path, SubjectID: subjectID, Filename: filename}
		if age, ok := b.Ages[subjectID]; ok {
			rec.AgeYears = age
			rec.HasAge = true
		}

		if exists {
			cat.Present = append(cat.Present, rec)
		} else {
			cat.Missing = append(cat.Missing, rec)
		}
	}

	sortRecords(cat.Present)
	return cat
}

// sortRecords orders records with known ages first (ascending), then by
// subject ID, then by resolved path. The full key makes the order a total
// order, so sorting is reproducible and idempotent regardless of input
// order.
func sortRecords(records []SlideRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.HasAge != b.HasAge {
			return a.HasAge
		}
		if a.HasAge && a.AgeYears != b.AgeYears {
			return a.AgeYears < b.AgeYears
		}
		if a.SubjectID != b.SubjectID {
			return a.SubjectID < b.SubjectID
		}
		return a.Path < b.Path
	})
}
