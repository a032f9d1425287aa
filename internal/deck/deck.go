package deck

import "github.com/gaitlab/stridedeck/internal/layout"

// Document is the slide-document surface the assembler writes to. The
// concrete writer lives in the pptx package; tests substitute a fake.
type Document interface {
	AddSlide() Slide
	Save(path string) error
}

// Slide accepts the two shape kinds the assembler produces.
type Slide interface {
	AddTextBox(box layout.Box, text string, style TextStyle)
	AddPicture(path string, left, top, height float64) (Picture, error)
}

// Picture is a placed image. Width reports the rendered width in inches
// after a height-constrained insertion, so the assembler can re-center the
// placement.
type Picture interface {
	Width() float64
	SetLeft(left float64)
}

// RGB is a 24-bit solid color.
type RGB struct {
	R, G, B uint8
}

// TextStyle describes the treatment of a text box paragraph. A nil Color
// and a zero SizePt leave the document defaults in place.
type TextStyle struct {
	SizePt float64
	Bold   bool
	Color  *RGB
	Center bool
}

var (
	// headerStyle is the dark blue slide header used above every figure.
	headerStyle = TextStyle{SizePt: 24, Bold: true, Color: &RGB{R: 47, G: 84, B: 150}, Center: true}

	titleStyle       = TextStyle{SizePt: 40, Bold: true, Center: true}
	subtitleStyle    = TextStyle{SizePt: 18, Center: true}
	placeholderStyle = TextStyle{Center: true}
)

// placeholderBox is where the error text lands when an image cannot be
// placed.
var placeholderBox = layout.Box{Left: 2, Top: 3, Width: 8, Height: 2}
