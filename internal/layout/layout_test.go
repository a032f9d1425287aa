package layout

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDefaultGeometry(t *testing.T) {
	g := Default()

	if !almostEqual(g.CanvasWidth, 13.333) {
		t.Errorf("Expected canvas width 13.333, got %v", g.CanvasWidth)
	}
	if !almostEqual(g.CanvasHeight, 7.5) {
		t.Errorf("Expected canvas height 7.5, got %v", g.CanvasHeight)
	}
	if !almostEqual(g.AvailWidth(), 12.333) {
		t.Errorf("Expected available width 12.333, got %v", g.AvailWidth())
	}
	if !almostEqual(g.AvailHeight(), 6.0) {
		t.Errorf("Expected available height 6.0, got %v", g.AvailHeight())
	}
}

func TestAvailClampedAtZero(t *testing.T) {
	g := Geometry{
		CanvasWidth:  1.0,
		CanvasHeight: 1.0,
		TitleBand:    0.8,
		BottomMargin: 0.5,
		SideMargin:   0.6,
	}

	if g.AvailWidth() != 0 {
		t.Errorf("Expected available width 0, got %v", g.AvailWidth())
	}
	if g.AvailHeight() != 0 {
		t.Errorf("Expected available height 0, got %v", g.AvailHeight())
	}
}

func TestPlace(t *testing.T) {
	// Geometry with available width 10.0 and available height 6.0.
	g := Geometry{
		CanvasWidth:  11.0,
		CanvasHeight: 7.5,
		TitleBand:    1.2,
		BottomMargin: 0.3,
		SideMargin:   0.5,
	}

	tests := []struct {
		name      string
		aspect    float64
		wantWidth float64
		wantLeft  float64
	}{
		{
			name:      "narrow image is centered",
			aspect:    1.2,
			wantWidth: 7.2,
			wantLeft:  0.5 + (10.0-7.2)/2,
		},
		{
			name:      "wide image stays at the side margin",
			aspect:    2.0,
			wantWidth: 12.0,
			wantLeft:  0.5,
		},
		{
			name:      "exact fit stays at the side margin",
			aspect:    10.0 / 6.0,
			wantWidth: 10.0,
			wantLeft:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := g.Place(tt.aspect)

			if !almostEqual(box.Width, tt.wantWidth) {
				t.Errorf("Expected width %v, got %v", tt.wantWidth, box.Width)
			}
			if !almostEqual(box.Left, tt.wantLeft) {
				t.Errorf("Expected left %v, got %v", tt.wantLeft, box.Left)
			}
			if !almostEqual(box.Top, 1.2) {
				t.Errorf("Expected top 1.2, got %v", box.Top)
			}
			if !almostEqual(box.Height, 6.0) {
				t.Errorf("Expected height 6.0, got %v", box.Height)
			}
		})
	}
}

func TestPlaceNeverNegative(t *testing.T) {
	g := Geometry{
		CanvasWidth:  1.0,
		CanvasHeight: 1.0,
		TitleBand:    2.0,
		BottomMargin: 0.5,
		SideMargin:   0.5,
	}

	box := g.Place(1.5)
	if box.Width < 0 || box.Height < 0 {
		t.Errorf("Expected non-negative dimensions, got width %v height %v", box.Width, box.Height)
	}
}

func TestHeaderBox(t *testing.T) {
	box := Default().HeaderBox()

	if !almostEqual(box.Left, 0.5) {
		t.Errorf("Expected left 0.5, got %v", box.Left)
	}
	if !almostEqual(box.Top, 0.2) {
		t.Errorf("Expected top 0.2, got %v", box.Top)
	}
	if !almostEqual(box.Width, 12.333) {
		t.Errorf("Expected width 12.333, got %v", box.Width)
	}
	if !almostEqual(box.Height, 0.8) {
		t.Errorf("Expected height 0.8, got %v", box.Height)
	}
}
