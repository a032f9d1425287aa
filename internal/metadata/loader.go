package metadata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Loader reads a subject metadata table and produces the subject ID → age
// in years mapping used to order slides.
type Loader struct {
	path string
}

// NewLoader creates a loader for the given metadata file.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads the table once and returns the age mapping. Subject IDs come
// from the ID column, stringified. A table with no age column at all yields
// an empty mapping and a warning rather than an error; the pipeline then
// treats every age as unknown.
func (l *Loader) Load() (map[string]float64, error) {
	ext := strings.ToLower(filepath.Ext(l.path))

	switch ext {
	case ".csv":
		return l.loadCSV()
	case ".parquet":
		return l.loadParquet()
	default:
		return nil, fmt.Errorf("unsupported metadata format: %s (supported: .csv, .parquet)", ext)
	}
}

func (l *Loader) loadCSV() (map[string]float64, error) {
	slog.Debug("Opening metadata CSV", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata header: %w", err)
	}

	idCol, ageCol, monthsCol := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "ID":
			idCol = i
		case "age":
			ageCol = i
		case "age_months":
			monthsCol = i
		}
	}
	if idCol == -1 {
		return nil, errors.New("metadata file has no ID column")
	}
	if ageCol == -1 && monthsCol == -1 {
		slog.Warn("No age column found in metadata", "path", l.path)
		return map[string]float64{}, nil
	}

	ages := make(map[string]float64)
	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata row %d: %w", rowNum, err)
		}
		rowNum++

		id := strings.TrimSpace(cell(row, idCol))
		if id == "" {
			continue
		}

		if age, ok := parseCell(row, ageCol); ok {
			ages[id] = age
		} else if months, ok := parseCell(row, monthsCol); ok {
			ages[id] = months / 12
		}
	}

	slog.Debug("Loaded age data from CSV", "subjects", len(ages), "rows", rowNum)
	return ages, nil
}

func (l *Loader) loadParquet() (map[string]float64, error) {
	slog.Debug("Opening metadata Parquet", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	if _, hasID := pf.Schema().Lookup("ID"); !hasID {
		return nil, errors.New("metadata file has no ID column")
	}
	if _, hasAge := pf.Schema().Lookup("age"); !hasAge {
		if _, hasMonths := pf.Schema().Lookup("age_months"); !hasMonths {
			slog.Warn("No age column found in metadata", "path", l.path)
			return map[string]float64{}, nil
		}
	}

	reader := parquet.NewGenericReader[subjectRow](pf)
	defer reader.Close()

	ages := make(map[string]float64)
	rows := make([]subjectRow, 128)
	totalRead := 0

	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			id := strings.TrimSpace(row.ID)
			if id == "" {
				continue
			}
			if age, ok := row.ageYears(); ok {
				ages[id] = age
			}
		}
		totalRead += n
		if err != nil {
			break
		}
	}

	slog.Debug("Loaded age data from Parquet", "subjects", len(ages), "rows", totalRead)
	return ages, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func parseCell(row []string, col int) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell(row, col)), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
