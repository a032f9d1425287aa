package deck

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gaitlab/stridedeck/internal/catalog"
	"github.com/gaitlab/stridedeck/internal/layout"
	"gonum.org/v1/gonum/stat"
)

// Assembler emits one title slide plus one slide per present catalog record
// into Doc, then saves the document to OutputPath.
type Assembler struct {
	Doc           Document
	Geometry      layout.Geometry
	Title         string
	OutputPath    string
	ProgressEvery int
}

// Summary reports what one assembly run produced.
type Summary struct {
	Slides       int
	Subjects     int
	WithAge      int
	WithoutAge   int
	Placeholders int
	AgeMin       float64
	AgeMax       float64
	AgeMean      float64
	AgeMedian    float64
}

// Assemble builds the document from the catalog and saves it. An empty
// catalog is the one precondition failure: nothing sensible can be emitted,
// so it errors before any slide is added. Per-image placement failures are
// isolated to their slide; a save failure is fatal.
func (a *Assembler) Assemble(cat catalog.Catalog) (*Summary, error) {
	if len(cat.Present) == 0 {
		return nil, errors.New("no valid images found")
	}

	a.addTitleSlide(cat)

	summary := summarize(cat)
	total := len(cat.Present)
	every := a.ProgressEvery
	if every <= 0 {
		every = 10
	}

	slog.Info("Adding image slides", "count", total)

	for i, rec := range cat.Present {
		slide := a.Doc.AddSlide()
		slide.AddTextBox(a.Geometry.HeaderBox(), headerText(rec, i+1, total), headerStyle)

		pic, err := slide.AddPicture(rec.Path, a.Geometry.SideMargin, a.Geometry.TitleBand, a.Geometry.AvailHeight())
		if err != nil {
			slog.Error("Failed to add image", "filename", rec.Filename, "error", err)
			slide.AddTextBox(placeholderBox, "Error loading image:\n"+rec.Filename, placeholderStyle)
			summary.Placeholders++
		} else if h := a.Geometry.AvailHeight(); h > 0 {
			pic.SetLeft(a.Geometry.Place(pic.Width() / h).Left)
		}

		slog.Debug("Added slide", "index", i+1, "subject", rec.SubjectID)
		if (i+1)%every == 0 {
			fmt.Printf("Progress: %d/%d slides added\n", i+1, total)
		}
	}

	if err := a.Doc.Save(a.OutputPath); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	slog.Info("Document saved", "path", a.OutputPath, "slides", summary.Slides)
	return summary, nil
}

func (a *Assembler) addTitleSlide(cat catalog.Catalog) {
	g := a.Geometry
	slide := a.Doc.AddSlide()

	titleBox := layout.Box{Left: g.SideMargin, Top: 2.0, Width: g.AvailWidth(), Height: 1.25}
	slide.AddTextBox(titleBox, a.Title, titleStyle)

	subtitleBox := layout.Box{Left: g.SideMargin, Top: 3.4, Width: g.AvailWidth(), Height: 2.2}
	slide.AddTextBox(subtitleBox, subtitleText(cat), subtitleStyle)
}

// headerText renders the slide header line, e.g.
// "Subject MUH1396 (Age: 10.2 years) - Slide 3 of 24". The age annotation is
// omitted for subjects without age data.
func headerText(rec catalog.SlideRecord, index, total int) string {
	text := "Subject " + rec.SubjectID
	if rec.HasAge {
		text += fmt.Sprintf(" (Age: %.1f years)", rec.AgeYears)
	}
	return text + fmt.Sprintf(" - Slide %d of %d", index, total)
}

func subtitleText(cat catalog.Catalog) string {
	lines := []string{
		"Individual Stride Change Distributions",
		fmt.Sprintf("%d participants", len(cat.Present)),
	}
	if ages := cat.KnownAges(); len(ages) > 0 {
		sort.Float64s(ages)
		lines = append(lines,
			fmt.Sprintf("Age range: %.1f - %.1f years", ages[0], ages[len(ages)-1]),
			"Ordered from youngest to oldest")
	}
	return strings.Join(lines, "\n")
}

func summarize(cat catalog.Catalog) *Summary {
	summary := &Summary{
		Slides:   len(cat.Present) + 1,
		Subjects: len(cat.Present),
	}

	ages := cat.KnownAges()
	sort.Float64s(ages)
	summary.WithAge = len(ages)
	summary.WithoutAge = len(cat.Present) - len(ages)

	if len(ages) > 0 {
		summary.AgeMin = ages[0]
		summary.AgeMax = ages[len(ages)-1]
		summary.AgeMean = stat.Mean(ages, nil)
		summary.AgeMedian = stat.Quantile(0.5, stat.Empirical, ages, nil)
	}

	return summary
}
