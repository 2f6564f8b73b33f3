package lightbox

import "math"

// GridLayout converts between the pixel-space definition of a contact sheet
// and normalized scene coordinates. The layout is immutable for a session
// except for the derived scale, which is recomputed on viewport resize.
//
// Scene coordinates are centered on the sheet: pixel (sheetW/2, sheetH/2)
// maps to scene (0, 0). Pixel Y increases downward, scene Y increases upward.
type GridLayout struct {
	// SheetWidth and SheetHeight are the full contact sheet dimensions in pixels.
	SheetWidth, SheetHeight float64
	// ImageWidth and ImageHeight are the per-photograph dimensions in pixels.
	ImageWidth, ImageHeight float64
	// MarginX and MarginY are the gaps between adjacent images in pixels.
	MarginX, MarginY float64
	// FirstImageX and FirstImageY locate the top-left corner of cell (0, 0)
	// in sheet pixels.
	FirstImageX, FirstImageY float64
	// Rows and Cols are the grid dimensions.
	Rows, Cols int

	scale float64 // scene units per sheet pixel
}

// NewGridLayout builds a layout and derives the initial scale for the given
// viewport dimensions.
func NewGridLayout(sheetW, sheetH, imageW, imageH, marginX, marginY, firstX, firstY float64, rows, cols int, viewportW, viewportH float64) *GridLayout {
	g := &GridLayout{
		SheetWidth:  sheetW,
		SheetHeight: sheetH,
		ImageWidth:  imageW,
		ImageHeight: imageH,
		MarginX:     marginX,
		MarginY:     marginY,
		FirstImageX: firstX,
		FirstImageY: firstY,
		Rows:        rows,
		Cols:        cols,
	}
	g.Rescale(viewportW, viewportH)
	return g
}

// Rescale recomputes the scene-units-per-pixel scale so the sheet's
// constraining dimension fits a unit-height (or aspect-corrected unit-width)
// view. Every position query after Rescale uses the new scale; callers must
// not mix positions computed before and after a rescale in the same frame.
func (g *GridLayout) Rescale(viewportW, viewportH float64) {
	if viewportW <= 0 || viewportH <= 0 {
		g.scale = 1 / g.SheetHeight
		return
	}
	viewAspect := viewportW / viewportH
	sheetAspect := g.SheetWidth / g.SheetHeight
	if viewAspect < sheetAspect {
		// Viewport is relatively taller than the sheet: width constrains.
		g.scale = viewAspect / g.SheetWidth
	} else {
		g.scale = 1 / g.SheetHeight
	}
}

// Scale returns the current scene-units-per-pixel factor.
func (g *GridLayout) Scale() float64 { return g.scale }

// ImagePosition returns the scene-space center of the image at (row, col).
// Pure function of the layout; bit-reproducible until the next Rescale.
func (g *GridLayout) ImagePosition(row, col int) Vec2 {
	px := g.FirstImageX + float64(col)*(g.ImageWidth+g.MarginX)
	py := g.FirstImageY + float64(row)*(g.ImageHeight+g.MarginY)
	return Vec2{
		X: (px + g.ImageWidth/2 - g.SheetWidth/2) * g.scale,
		Y: -(py + g.ImageHeight/2 - g.SheetHeight/2) * g.scale,
	}
}

// CellAt resolves the cell nearest to the scene point (x, y). The second
// return is false when the point falls outside the sheet bounds entirely;
// a point in the margin between two images still resolves to the nearest cell.
func (g *GridLayout) CellAt(x, y float64) (Cell, bool) {
	// Back to sheet pixels.
	px := x/g.scale + g.SheetWidth/2
	py := -y/g.scale + g.SheetHeight/2
	if px < 0 || px > g.SheetWidth || py < 0 || py > g.SheetHeight {
		return Cell{}, false
	}

	strideX := g.ImageWidth + g.MarginX
	strideY := g.ImageHeight + g.MarginY
	col := int(math.Round((px - g.FirstImageX - g.ImageWidth/2) / strideX))
	row := int(math.Round((py - g.FirstImageY - g.ImageHeight/2) / strideY))

	if col < 0 {
		col = 0
	} else if col > g.Cols-1 {
		col = g.Cols - 1
	}
	if row < 0 {
		row = 0
	} else if row > g.Rows-1 {
		row = g.Rows - 1
	}
	return Cell{Row: row, Col: col}, true
}

// Contains reports whether the cell is a valid grid address.
func (g *GridLayout) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// Clamp restricts a cell to valid grid bounds. Attempting to navigate past
// an edge holds position at that edge.
func (g *GridLayout) Clamp(c Cell) Cell {
	if c.Row < 0 {
		c.Row = 0
	} else if c.Row > g.Rows-1 {
		c.Row = g.Rows - 1
	}
	if c.Col < 0 {
		c.Col = 0
	} else if c.Col > g.Cols-1 {
		c.Col = g.Cols - 1
	}
	return c
}

// SheetSize returns the sheet bounding box in scene units.
func (g *GridLayout) SheetSize() Vec2 {
	return Vec2{X: g.SheetWidth * g.scale, Y: g.SheetHeight * g.scale}
}

// ImageSize returns a single image's bounding box in scene units.
func (g *GridLayout) ImageSize() Vec2 {
	return Vec2{X: g.ImageWidth * g.scale, Y: g.ImageHeight * g.scale}
}

// CellIndex returns the row-major index of a cell, used to pair cells with
// the ordered image list of a manifest.
func (g *GridLayout) CellIndex(c Cell) int {
	return c.Row*g.Cols + c.Col
}

// CellFromIndex returns the cell at the given row-major index.
func (g *GridLayout) CellFromIndex(i int) Cell {
	return Cell{Row: i / g.Cols, Col: i % g.Cols}
}
