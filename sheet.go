package lightbox

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

const brightnessDur = 0.35

// whitePixel is a 1x1 white image used for placeholder and backdrop quads.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(ColorWhite.toRGBA())
}

func (c Color) toRGBA() color64 {
	return color64{c.R, c.G, c.B, c.A}
}

// color64 adapts Color to the stdlib color.Color interface for Fill calls.
type color64 struct{ r, g, b, a float64 }

func (c color64) RGBA() (r, g, b, a uint32) {
	return uint32(c.r * c.a * 0xffff), uint32(c.g * c.a * 0xffff),
		uint32(c.b * c.a * 0xffff), uint32(c.a * 0xffff)
}

// placeholderColor is the flat fill for cells whose image failed to load.
// Such cells stay fully navigable.
var placeholderColor = Color{R: 0.22, G: 0.22, B: 0.25, A: 1}

// backdropColor sits behind the photographs.
var backdropColor = Color{R: 0.08, G: 0.08, B: 0.09, A: 1}

// SheetElement is one visual element of the contact sheet. Kind is fixed at
// construction; there is no guessing a quad's role from its looks.
type SheetElement struct {
	Kind  ElementKind
	Cell  Cell
	Name  string
	Title string
	// Color is the brightness tint, driven through the animation
	// controller by the focus side-channel.
	Color Color

	texture *ebiten.Image // nil renders the placeholder fill
	source  image.Image   // full decoded image for the detail view
}

// Failed reports whether this cell's image load failed.
func (e *SheetElement) Failed() bool { return e.Kind == ElementKindCell && e.texture == nil }

// Sheet owns the cell elements of one contact sheet and implements the
// brightness side-channel the viewport controller drives.
type Sheet struct {
	// DimBrightness is the level unfocused cells settle at while some
	// cell is focused.
	DimBrightness float64

	layout   *GridLayout
	anim     *AnimationController
	cells    []*SheetElement // row-major, one per manifest image
	backdrop *SheetElement
	disposed bool
}

// NewSheet creates an empty sheet over the given layout. Brightness tweens
// are issued through anim.
func NewSheet(layout *GridLayout, anim *AnimationController) *Sheet {
	return &Sheet{
		DimBrightness: DefaultTuning().DimBrightness,
		layout:        layout,
		anim:          anim,
		backdrop: &SheetElement{
			Kind:  ElementKindBackground,
			Color: backdropColor,
		},
	}
}

// Populate builds cell elements from load results, row-major until the
// grid or the results run out. Failed results become placeholder cells.
func (s *Sheet) Populate(results []LoadResult) {
	n := len(results)
	if max := s.layout.Rows * s.layout.Cols; n > max {
		n = max
	}
	s.cells = make([]*SheetElement, 0, n)
	for i := 0; i < n; i++ {
		r := results[i]
		el := &SheetElement{
			Kind:  ElementKindCell,
			Cell:  s.layout.CellFromIndex(i),
			Name:  r.Name,
			Title: DeriveTitle(r.Name),
			Color: ColorWhite,
		}
		if r.Image != nil {
			el.texture = ebiten.NewImageFromImage(r.Image)
			el.source = r.Image
		}
		s.cells = append(s.cells, el)
	}
}

// Element returns the element for a cell, or nil if the cell has no image
// slot (grid larger than the manifest list).
func (s *Sheet) Element(c Cell) *SheetElement {
	if !s.layout.Contains(c) {
		return nil
	}
	i := s.layout.CellIndex(c)
	if i >= len(s.cells) {
		return nil
	}
	return s.cells[i]
}

// Descriptor builds the detail-view descriptor for a cell.
func (s *Sheet) Descriptor(c Cell) ImageDescriptor {
	el := s.Element(c)
	if el == nil {
		return ImageDescriptor{}
	}
	return ImageDescriptor{Name: el.Name, Title: el.Title, Image: el.source}
}

// Focus drives the focused cell to full brightness and dims every other
// cell. Implements Highlighter.
func (s *Sheet) Focus(c Cell) {
	for _, el := range s.cells {
		level := s.DimBrightness
		if el.Cell == c {
			level = 1
		}
		s.tweenBrightness(el, level)
	}
}

// ClearFocus restores every cell to full brightness. Implements Highlighter.
func (s *Sheet) ClearFocus() {
	for _, el := range s.cells {
		s.tweenBrightness(el, 1)
	}
}

func (s *Sheet) tweenBrightness(el *SheetElement, level float64) {
	opts := TweenOpts{Duration: brightnessDur}
	s.anim.Tween(&el.Color.R, level, opts)
	s.anim.Tween(&el.Color.G, level, opts)
	s.anim.Tween(&el.Color.B, level, opts)
}

// Draw renders the backdrop and every visible cell through the camera.
func (s *Sheet) Draw(screen *ebiten.Image, cam *Camera) {
	if s.disposed {
		return
	}

	sheet := s.layout.SheetSize()
	s.drawQuad(screen, cam, nil, s.backdrop.Color,
		-sheet.X/2, sheet.Y/2, sheet.X, sheet.Y)

	img := s.layout.ImageSize()
	frustum := cam.Frustum()
	for _, el := range s.cells {
		pos := s.layout.ImagePosition(el.Cell.Row, el.Cell.Col)
		// Cull cells fully outside the frustum.
		if pos.X+img.X/2 < frustum.Left || pos.X-img.X/2 > frustum.Right ||
			pos.Y+img.Y/2 < frustum.Bottom || pos.Y-img.Y/2 > frustum.Top {
			continue
		}
		tint := el.Color
		tex := el.texture
		if tex == nil {
			tint = Color{
				R: placeholderColor.R * el.Color.R,
				G: placeholderColor.G * el.Color.G,
				B: placeholderColor.B * el.Color.B,
				A: 1,
			}
		}
		s.drawQuad(screen, cam, tex, tint, pos.X-img.X/2, pos.Y+img.Y/2, img.X, img.Y)
	}
}

// drawQuad draws an image (or the white pixel when img is nil) covering the
// scene-space rect whose top-left corner is (x, topY).
func (s *Sheet) drawQuad(screen *ebiten.Image, cam *Camera, img *ebiten.Image, tint Color, x, topY, w, h float64) {
	if img == nil {
		img = whitePixel
	}
	b := img.Bounds()
	sx, sy := cam.WorldToScreen(x, topY)
	ppu := cam.PixelsPerUnit()

	var opts ebiten.DrawImageOptions
	opts.GeoM.Scale(w*ppu/float64(b.Dx()), h*ppu/float64(b.Dy()))
	opts.GeoM.Translate(sx, sy)
	opts.ColorScale.Scale(float32(tint.R), float32(tint.G), float32(tint.B), float32(tint.A))
	opts.Filter = ebiten.FilterLinear
	screen.DrawImage(img, &opts)
}

// Dispose releases cell textures. Safe to call more than once.
func (s *Sheet) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, el := range s.cells {
		if el.texture != nil {
			el.texture.Deallocate()
			el.texture = nil
		}
	}
	s.cells = nil
}
