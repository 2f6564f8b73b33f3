package lightbox

// Camera is an orthographic view into the sheet scene. It stores its center
// position and the visible height in scene units; the visible width is
// always derived from the viewport aspect ratio at read time, so the
// frustum aspect matches the viewport aspect even when the viewport is
// resized mid-animation.
type Camera struct {
	// X and Y are the scene-space position the camera centers on.
	X, Y float64
	// FrustumHeight is the visible vertical extent in scene units.
	FrustumHeight float64

	viewportW float64
	viewportH float64
}

// NewCamera creates a camera centered on the scene origin with the given
// viewport size in pixels and an initial frustum height of 1 scene unit.
func NewCamera(viewportW, viewportH float64) *Camera {
	return &Camera{
		FrustumHeight: 1,
		viewportW:     viewportW,
		viewportH:     viewportH,
	}
}

// SetViewport updates the viewport pixel dimensions. The frustum width
// tracks the new aspect ratio immediately.
func (c *Camera) SetViewport(w, h float64) {
	c.viewportW = w
	c.viewportH = h
}

// Viewport returns the viewport pixel dimensions.
func (c *Camera) Viewport() (w, h float64) {
	return c.viewportW, c.viewportH
}

// Aspect returns the viewport width/height ratio.
func (c *Camera) Aspect() float64 {
	if c.viewportH == 0 {
		return 1
	}
	return c.viewportW / c.viewportH
}

// Frustum returns the current visible extents in scene units.
func (c *Camera) Frustum() Frustum {
	halfH := c.FrustumHeight / 2
	halfW := halfH * c.Aspect()
	return Frustum{
		Left:   c.X - halfW,
		Right:  c.X + halfW,
		Top:    c.Y + halfH,
		Bottom: c.Y - halfH,
	}
}

// WorldToScreen converts scene coordinates to viewport pixel coordinates.
// Scene Y increases upward, screen Y increases downward.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	f := c.Frustum()
	sx = (wx - f.Left) / f.Width() * c.viewportW
	sy = (f.Top - wy) / f.Height() * c.viewportH
	return
}

// ScreenToWorld converts viewport pixel coordinates to scene coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	f := c.Frustum()
	wx = f.Left + sx/c.viewportW*f.Width()
	wy = f.Top - sy/c.viewportH*f.Height()
	return
}

// PixelsPerUnit returns how many screen pixels one scene unit spans at the
// current zoom. Used to convert pointer displacement to camera displacement.
func (c *Camera) PixelsPerUnit() float64 {
	if c.FrustumHeight == 0 {
		return 1
	}
	return c.viewportH / c.FrustumHeight
}
