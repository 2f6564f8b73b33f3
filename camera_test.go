package lightbox

import (
	"math"
	"testing"
)

func TestFrustumAspectMatchesViewport(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"landscape", 1200, 800},
		{"portrait", 800, 1200},
		{"square", 1000, 1000},
		{"ultrawide", 3440, 1440},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera(tt.w, tt.h)
			cam.FrustumHeight = 2.5
			f := cam.Frustum()
			if got, want := f.Width()/f.Height(), tt.w/tt.h; math.Abs(got-want) > 1e-12 {
				t.Errorf("frustum aspect = %v, want %v", got, want)
			}
		})
	}
}

func TestFrustumTracksResizeImmediately(t *testing.T) {
	cam := NewCamera(1200, 800)
	cam.FrustumHeight = 2

	cam.SetViewport(800, 1200)
	f := cam.Frustum()
	if got, want := f.Width()/f.Height(), 800.0/1200.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("frustum aspect after resize = %v, want %v", got, want)
	}
	if f.Height() != 2 {
		t.Errorf("frustum height changed on resize: %v", f.Height())
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	cam := NewCamera(1200, 800)
	cam.X, cam.Y = 0.3, -0.7
	cam.FrustumHeight = 1.8

	tests := []struct {
		name   string
		sx, sy float64
	}{
		{"center", 600, 400},
		{"top-left", 0, 0},
		{"bottom-right", 1200, 800},
		{"arbitrary", 123, 677},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wx, wy := cam.ScreenToWorld(tt.sx, tt.sy)
			sx, sy := cam.WorldToScreen(wx, wy)
			if math.Abs(sx-tt.sx) > 1e-9 || math.Abs(sy-tt.sy) > 1e-9 {
				t.Errorf("round trip (%v, %v) -> (%v, %v)", tt.sx, tt.sy, sx, sy)
			}
		})
	}
}

func TestScreenToWorldOrientation(t *testing.T) {
	cam := NewCamera(1000, 1000)
	cam.FrustumHeight = 2

	// Screen center maps to the camera position.
	wx, wy := cam.ScreenToWorld(500, 500)
	if math.Abs(wx) > 1e-12 || math.Abs(wy) > 1e-12 {
		t.Errorf("screen center = (%v, %v), want origin", wx, wy)
	}

	// Screen Y increases downward, scene Y upward.
	_, topY := cam.ScreenToWorld(500, 0)
	_, bottomY := cam.ScreenToWorld(500, 1000)
	if topY <= bottomY {
		t.Errorf("top of screen (%v) should map above bottom (%v)", topY, bottomY)
	}
}

func TestPixelsPerUnit(t *testing.T) {
	cam := NewCamera(1200, 800)
	cam.FrustumHeight = 4
	if got := cam.PixelsPerUnit(); got != 200 {
		t.Errorf("PixelsPerUnit() = %v, want 200", got)
	}
}
