package lightbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrDisposed is returned when a disposed Viewer is used.
var ErrDisposed = errors.New("lightbox: viewer disposed")

// SheetSpec is the pixel-space definition of a contact sheet grid.
type SheetSpec struct {
	SheetWidth, SheetHeight  float64
	ImageWidth, ImageHeight  float64
	MarginX, MarginY         float64
	FirstImageX, FirstImageY float64
	Rows, Cols               int
}

// Config wires a Viewer to its collaborators.
type Config struct {
	// SheetID selects the image list from the manifest.
	SheetID string
	// Manifest maps sheet IDs to ordered image names.
	Manifest *Manifest
	// Source resolves image names to decoded images.
	Source ImageSource
	// Sheet is the grid geometry.
	Sheet SheetSpec
	// Detail is the optional modal overlay collaborator.
	Detail DetailView
	// Tuning overrides the interaction constants; zero value means
	// DefaultTuning.
	Tuning Tuning
	// Loader bounds the load fan-out; zero values take defaults.
	Loader LoaderConfig
	// Width and Height are the initial viewport dimensions in pixels.
	Width, Height int
}

// Viewer is the bootstrapping facade: it owns the layout, camera,
// animation controller, gesture input, sheet, and viewport controller,
// and slots directly into an ebiten game loop.
//
// The viewer always starts in the Idle overview with no cell focused.
type Viewer struct {
	cfg    Config
	layout *GridLayout
	camera *Camera
	anim   *AnimationController
	input  *GestureInput
	sheet  *Sheet
	ctrl   *ViewportController

	inject injectQueue

	width, height int
	initialized   bool
	disposed      bool
}

// New creates an uninitialized viewer. Call Init before use.
func New(cfg Config) *Viewer {
	if cfg.Tuning == (Tuning{}) {
		cfg.Tuning = DefaultTuning()
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	return &Viewer{cfg: cfg, width: cfg.Width, height: cfg.Height}
}

// Init loads the sheet's images and wires up interaction. It returns an
// error when the manifest has no entry for the sheet or when every single
// image failed to load; partial failures leave placeholder cells and
// succeed.
func (v *Viewer) Init(ctx context.Context) error {
	if v.disposed {
		return ErrDisposed
	}
	if v.initialized {
		return nil
	}

	names, err := v.cfg.Manifest.Images(v.cfg.SheetID)
	if err != nil {
		return err
	}

	spec := v.cfg.Sheet
	results, err := LoadSheet(ctx, v.cfg.Source, names,
		int(spec.ImageWidth), int(spec.ImageHeight), v.cfg.Loader)
	if err != nil {
		return fmt.Errorf("load sheet %q: %w", v.cfg.SheetID, err)
	}

	w, h := float64(v.width), float64(v.height)
	v.layout = NewGridLayout(
		spec.SheetWidth, spec.SheetHeight,
		spec.ImageWidth, spec.ImageHeight,
		spec.MarginX, spec.MarginY,
		spec.FirstImageX, spec.FirstImageY,
		spec.Rows, spec.Cols, w, h)
	v.camera = NewCamera(w, h)
	v.anim = NewAnimationController()
	v.input = NewGestureInput(v.cfg.Tuning.TapSlop, v.cfg.Tuning.DoubleTapWindow)

	v.sheet = NewSheet(v.layout, v.anim)
	v.sheet.DimBrightness = v.cfg.Tuning.DimBrightness
	v.sheet.Populate(results)

	v.ctrl = NewViewportController(ViewportConfig{
		Layout:    v.layout,
		Camera:    v.camera,
		Anim:      v.anim,
		Input:     v.input,
		Tuning:    v.cfg.Tuning,
		Detail:    v.cfg.Detail,
		Describe:  v.sheet.Descriptor,
		Highlight: v.sheet,
	})

	v.initialized = true
	return nil
}

// Dispose releases listeners, tweens, and textures. Safe to call more
// than once; a disposed viewer cannot be reinitialized.
func (v *Viewer) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	if v.ctrl != nil {
		v.ctrl.Dispose()
	}
	if v.input != nil {
		v.input.Dispose()
	}
	if v.anim != nil {
		v.anim.KillAll()
	}
	if v.sheet != nil {
		v.sheet.Dispose()
	}
}

// HandleResize recomputes framing for new viewport dimensions.
func (v *Viewer) HandleResize(w, h int) {
	v.width, v.height = w, h
	if v.initialized && !v.disposed {
		v.ctrl.HandleResize(float64(w), float64(h))
	}
}

// Controller exposes the viewport state machine, mainly for tests and
// embedding applications.
func (v *Viewer) Controller() *ViewportController { return v.ctrl }

// Input exposes the gesture recognizer for synthetic event injection.
func (v *Viewer) Input() *GestureInput { return v.input }

// Sheet exposes the sheet elements.
func (v *Viewer) Sheet() *Sheet { return v.sheet }

// Camera exposes the camera, mainly for tests and custom draws.
func (v *Viewer) Camera() *Camera { return v.camera }

// Update advances one tick: polls input, steps tweens, and runs the
// cooldown. Implements the ebiten.Game Update contract.
func (v *Viewer) Update() error {
	if !v.initialized || v.disposed {
		return nil
	}
	dt := 1.0 / float64(ebiten.TPS())
	v.Step(dt, true)
	return nil
}

// Step advances the simulation by dt seconds. poll controls whether real
// ebiten input is read; tests pass false and feed pointers directly.
func (v *Viewer) Step(dt float64, poll bool) {
	if !v.initialized || v.disposed {
		return
	}
	v.input.Update(dt)
	if poll {
		v.input.Poll()
	}
	v.processInjected()
	v.anim.Update(float32(dt))
	v.ctrl.Update(dt)
}

// Draw renders the sheet. Implements the ebiten.Game Draw contract.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if !v.initialized || v.disposed {
		return
	}
	screen.Fill(Color{R: 0.04, G: 0.04, B: 0.05, A: 1}.toRGBA())
	v.sheet.Draw(screen, v.camera)
}

// Layout reports the logical screen size and reacts to window resizes.
// Implements the ebiten.Game Layout contract.
func (v *Viewer) Layout(outsideW, outsideH int) (int, int) {
	if outsideW != v.width || outsideH != v.height {
		v.HandleResize(outsideW, outsideH)
	}
	return outsideW, outsideH
}

// RunConfig configures the Run convenience wrapper.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Run opens a window and drives the viewer with ebiten's game loop. For
// full control, implement ebiten.Game yourself and call Update, Draw, and
// Layout directly.
func Run(v *Viewer, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = v.width
	}
	if h <= 0 {
		h = v.height
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}
