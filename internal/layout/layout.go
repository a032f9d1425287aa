package layout

// Geometry describes the slide canvas and the regions reserved around the
// image area. All values are in inches.
type Geometry struct {
	CanvasWidth  float64
	CanvasHeight float64
	TitleBand    float64
	BottomMargin float64
	SideMargin   float64
}

// Box is a placed rectangle on the canvas, in inches.
type Box struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Default returns the widescreen 16:9 geometry used for figure decks.
func Default() Geometry {
	return Geometry{
		CanvasWidth:  13.333,
		CanvasHeight: 7.5,
		TitleBand:    1.2,
		BottomMargin: 0.3,
		SideMargin:   0.5,
	}
}

// AvailWidth returns the horizontal space available to an image after the
// side margins, never negative.
func (g Geometry) AvailWidth() float64 {
	w := g.CanvasWidth - 2*g.SideMargin
	if w < 0 {
		return 0
	}
	return w
}

// AvailHeight returns the vertical space available to an image between the
// title band and the bottom margin, never negative.
func (g Geometry) AvailHeight() float64 {
	h := g.CanvasHeight - g.TitleBand - g.BottomMargin
	if h < 0 {
		return 0
	}
	return h
}

// Place computes the placement for an image with the given aspect ratio
// (natural width divided by natural height). The image height always fills
// the available height so tall narrow figures are never squeezed by a width
// constraint. When the derived width fits inside the available width the
// image is centered horizontally; when it would overflow, the left edge
// stays at the side margin and the overflow is accepted.
func (g Geometry) Place(aspect float64) Box {
	height := g.AvailHeight()
	width := aspect * height
	left := g.SideMargin
	if width < g.AvailWidth() {
		left = g.SideMargin + (g.AvailWidth()-width)/2
	}
	return Box{Left: left, Top: g.TitleBand, Width: width, Height: height}
}

// HeaderBox returns the text band across the top of an image slide.
func (g Geometry) HeaderBox() Box {
	return Box{Left: g.SideMargin, Top: 0.2, Width: g.AvailWidth(), Height: 0.8}
}
