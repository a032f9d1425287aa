package deck

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gaitlab/stridedeck/internal/catalog"
	"github.com/gaitlab/stridedeck/internal/layout"
)

type fakeDocument struct {
	slides  []*fakeSlide
	saved   string
	saveErr error
	widths  map[string]float64
	failOn  map[string]bool
}

func (d *fakeDocument) AddSlide() Slide {
	s := &fakeSlide{doc: d}
	d.slides = append(d.slides, s)
	return s
}

func (d *fakeDocument) Save(path string) error {
	d.saved = path
	return d.saveErr
}

type fakeSlide struct {
	doc    *fakeDocument
	texts  []string
	boxes  []layout.Box
	styles []TextStyle
	pics   []*fakePicture
}

func (s *fakeSlide) AddTextBox(box layout.Box, text string, style TextStyle) {
	s.texts = append(s.texts, text)
	s.boxes = append(s.boxes, box)
	s.styles = append(s.styles, style)
}

func (s *fakeSlide) AddPicture(path string, left, top, height float64) (Picture, error) {
	if s.doc.failOn[path] {
		return nil, errors.New("unreadable image data")
	}
	p := &fakePicture{left: left, top: top, height: height, width: s.doc.widths[path]}
	s.pics = append(s.pics, p)
	return p, nil
}

type fakePicture struct {
	left   float64
	top    float64
	width  float64
	height float64
}

func (p *fakePicture) Width() float64 { return p.width }

func (p *fakePicture) SetLeft(left float64) { p.left = left }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testCatalog() catalog.Catalog {
	return catalog.Catalog{Present: []catalog.SlideRecord{
		{Path: "a.png", SubjectID: "MUH1069", AgeYears: 8.4, HasAge: true, Filename: "stride_change_MUH1069_fixed_grid.png"},
		{Path: "b.png", SubjectID: "MUH1396", AgeYears: 10.2, HasAge: true, Filename: "stride_change_MUH1396_fixed_grid.png"},
		{Path: "c.png", SubjectID: "MUH1204", Filename: "stride_change_MUH1204_fixed_grid.png"},
	}}
}

func testAssembler(doc *fakeDocument) *Assembler {
	return &Assembler{
		Doc:        doc,
		Geometry:   layout.Default(),
		Title:      "Motor Learning: Stride Change After Success vs Failure",
		OutputPath: "out.pptx",
	}
}

func TestAssembleSlideCountAndHeaders(t *testing.T) {
	doc := &fakeDocument{widths: map[string]float64{"a.png": 7.2, "b.png": 7.2, "c.png": 7.2}}

	summary, err := testAssembler(doc).Assemble(testCatalog())
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if len(doc.slides) != 4 {
		t.Fatalf("Expected 4 slides (1 title + 3 images), got %d", len(doc.slides))
	}
	if summary.Slides != 4 {
		t.Errorf("Expected summary slide count 4, got %d", summary.Slides)
	}
	if doc.saved != "out.pptx" {
		t.Errorf("Expected document saved to out.pptx, got %q", doc.saved)
	}

	headers := []string{
		"Subject MUH1069 (Age: 8.4 years) - Slide 1 of 3",
		"Subject MUH1396 (Age: 10.2 years) - Slide 2 of 3",
		"Subject MUH1204 - Slide 3 of 3",
	}
	for i, want := range headers {
		slide := doc.slides[i+1]
		if len(slide.texts) == 0 {
			t.Fatalf("Expected slide %d to have a header text box", i+1)
		}
		if slide.texts[0] != want {
			t.Errorf("Expected header %q, got %q", want, slide.texts[0])
		}
		if !slide.styles[0].Bold || slide.styles[0].SizePt != 24 {
			t.Errorf("Expected 24pt bold header, got %+v", slide.styles[0])
		}
		if slide.styles[0].Color == nil || *slide.styles[0].Color != (RGB{R: 47, G: 84, B: 150}) {
			t.Errorf("Expected dark blue header color, got %+v", slide.styles[0].Color)
		}
	}
}

func TestAssembleTitleSlide(t *testing.T) {
	doc := &fakeDocument{widths: map[string]float64{"a.png": 7.2, "b.png": 7.2, "c.png": 7.2}}

	if _, err := testAssembler(doc).Assemble(testCatalog()); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	title := doc.slides[0]
	if len(title.texts) != 2 {
		t.Fatalf("Expected title slide with 2 text boxes, got %d", len(title.texts))
	}
	if title.texts[0] != "Motor Learning: Stride Change After Success vs Failure" {
		t.Errorf("Expected deck title, got %q", title.texts[0])
	}

	subtitle := title.texts[1]
	for _, want := range []string{
		"Individual Stride Change Distributions",
		"3 participants",
		"Age range: 8.4 - 10.2 years",
		"Ordered from youngest to oldest",
	} {
		if !strings.Contains(subtitle, want) {
			t.Errorf("Expected subtitle to contain %q, got %q", want, subtitle)
		}
	}
}

func TestAssembleTitleSlideWithoutAges(t *testing.T) {
	doc := &fakeDocument{widths: map[string]float64{"c.png": 7.2}}
	cat := catalog.Catalog{Present: []catalog.SlideRecord{
		{Path: "c.png", SubjectID: "MUH1204", Filename: "stride_change_MUH1204_fixed_grid.png"},
	}}

	if _, err := testAssembler(doc).Assemble(cat); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	subtitle := doc.slides[0].texts[1]
	if strings.Contains(subtitle, "Age range") {
		t.Errorf("Expected no age range without age data, got %q", subtitle)
	}
	if !strings.Contains(subtitle, "1 participants") {
		t.Errorf("Expected participant count, got %q", subtitle)
	}
}

func TestAssembleEmptyCatalog(t *testing.T) {
	doc := &fakeDocument{}

	_, err := testAssembler(doc).Assemble(catalog.Catalog{})
	if err == nil {
		t.Fatal("Expected error for empty catalog, got nil")
	}
	if len(doc.slides) != 0 {
		t.Errorf("Expected no slides added, got %d", len(doc.slides))
	}
}

func TestAssemblePlaceholderIsolation(t *testing.T) {
	doc := &fakeDocument{
		widths: map[string]float64{"a.png": 7.2, "c.png": 7.2},
		failOn: map[string]bool{"b.png": true},
	}

	summary, err := testAssembler(doc).Assemble(testCatalog())
	if err != nil {
		t.Fatalf("Expected a bad image to be isolated, got error: %v", err)
	}

	if summary.Placeholders != 1 {
		t.Errorf("Expected 1 placeholder, got %d", summary.Placeholders)
	}

	bad := doc.slides[2]
	if len(bad.pics) != 0 {
		t.Errorf("Expected no picture on the failed slide, got %d", len(bad.pics))
	}
	want := "Error loading image:\nstride_change_MUH1396_fixed_grid.png"
	if bad.texts[1] != want {
		t.Errorf("Expected placeholder %q, got %q", want, bad.texts[1])
	}
	if bad.boxes[1] != (layout.Box{Left: 2, Top: 3, Width: 8, Height: 2}) {
		t.Errorf("Expected placeholder box at (2,3,8,2), got %+v", bad.boxes[1])
	}

	// The surrounding slides still carry their pictures.
	if len(doc.slides[1].pics) != 1 || len(doc.slides[3].pics) != 1 {
		t.Error("Expected pictures on the slides around the failure")
	}
	if doc.saved == "" {
		t.Error("Expected the document to be saved despite the failure")
	}
}

func TestAssemblePlacesAndCentersPictures(t *testing.T) {
	doc := &fakeDocument{widths: map[string]float64{
		"a.png": 7.2,  // narrower than the available width, gets centered
		"b.png": 13.0, // wider, stays at the side margin
		"c.png": 7.2,
	}}

	if _, err := testAssembler(doc).Assemble(testCatalog()); err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	narrow := doc.slides[1].pics[0]
	if !almostEqual(narrow.top, 1.2) || !almostEqual(narrow.height, 6.0) {
		t.Errorf("Expected insertion at top 1.2 height 6.0, got top %v height %v", narrow.top, narrow.height)
	}
	wantLeft := 0.5 + (layout.Default().AvailWidth()-7.2)/2
	if !almostEqual(narrow.left, wantLeft) {
		t.Errorf("Expected centered left %v, got %v", wantLeft, narrow.left)
	}

	wide := doc.slides[2].pics[0]
	if !almostEqual(wide.left, 0.5) {
		t.Errorf("Expected wide image left at the margin 0.5, got %v", wide.left)
	}
}

func TestAssembleSaveFailure(t *testing.T) {
	doc := &fakeDocument{
		widths:  map[string]float64{"a.png": 7.2, "b.png": 7.2, "c.png": 7.2},
		saveErr: errors.New("disk full"),
	}

	_, err := testAssembler(doc).Assemble(testCatalog())
	if err == nil {
		t.Fatal("Expected save failure to be fatal, got nil")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Expected wrapped save error, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	cat := catalog.Catalog{Present: []catalog.SlideRecord{
		{SubjectID: "A1", AgeYears: 8.4, HasAge: true},
		{SubjectID: "B2", AgeYears: 9.0, HasAge: true},
		{SubjectID: "C3", AgeYears: 10.2, HasAge: true},
		{SubjectID: "D4"},
	}}

	s := summarize(cat)

	if s.Slides != 5 || s.Subjects != 4 {
		t.Errorf("Expected 5 slides over 4 subjects, got %d over %d", s.Slides, s.Subjects)
	}
	if s.WithAge != 3 || s.WithoutAge != 1 {
		t.Errorf("Expected 3 with age and 1 without, got %d and %d", s.WithAge, s.WithoutAge)
	}
	if !almostEqual(s.AgeMin, 8.4) || !almostEqual(s.AgeMax, 10.2) {
		t.Errorf("Expected age range 8.4-10.2, got %v-%v", s.AgeMin, s.AgeMax)
	}
	if !almostEqual(s.AgeMean, 9.2) {
		t.Errorf("Expected mean age 9.2, got %v", s.AgeMean)
	}
	if !almostEqual(s.AgeMedian, 9.0) {
		t.Errorf("Expected median age 9.0, got %v", s.AgeMedian)
	}
}

func TestHeaderText(t *testing.T) {
	tests := []struct {
		name     string
		rec      catalog.SlideRecord
		expected string
	}{
		{
			name:     "with age",
			rec:      catalog.SlideRecord{SubjectID: "MUH1396", AgeYears: 10.25, HasAge: true},
			expected: "Subject MUH1396 (Age: 10.2 years) - Slide 2 of 5",
		},
		{
			name:     "without age",
			rec:      catalog.SlideRecord{SubjectID: "MUH1204"},
			expected: "Subject MUH1204 - Slide 2 of 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := headerText(tt.rec, 2, 5); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
