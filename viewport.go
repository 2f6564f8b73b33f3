package lightbox

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Transition timing. The frustum and position tweens of one transition are
// deliberately decoupled: position arrives on a different curve than zoom,
// which reads as the camera "settling" rather than sliding.
const (
	zoomInFrustumDur    = 1.2
	zoomInPosDur        = 0.9
	navigateDur         = 0.45
	zoomOutPosDur       = 0.8
	zoomOutFrustumDur   = 0.9
	zoomOutFrustumDelay = 0.15
	snapBackDur         = 0.3
	cancelSnapDur       = 0.1
)

// Highlighter receives the brightness side-channel: the focused cell is
// driven to full brightness while the rest dim. Implementations are best
// effort; a panic here is swallowed and never blocks navigation.
type Highlighter interface {
	Focus(c Cell)
	ClearFocus()
}

// pendingKind records which transition is in flight so a resize during
// Animating can re-aim the tweens at freshly computed targets.
type pendingKind uint8

const (
	pendingNone pendingKind = iota
	pendingFocus
	pendingOverview
	pendingSnapBack
)

// ViewportController owns the interaction state machine: camera framing,
// gesture interpretation in the context of the current State, and the
// transitions between grid overview and single-image focus.
//
// It is the only writer of State and the current cell. Both are mutated
// exclusively at transition start and inside the position tween's
// completion callback, the designated commit point; the frustum tween of
// the same transition never commits, so the two completion orders cannot
// race.
type ViewportController struct {
	layout    *GridLayout
	camera    *Camera
	anim      *AnimationController
	input     *GestureInput
	tuning    Tuning
	detail    DetailView
	describe  func(Cell) ImageDescriptor
	highlight Highlighter

	state    State
	current  Cell
	hasFocus bool

	originalFrustumHeight float64
	cooldown              float64
	firstZoom             bool

	dragging  bool
	dragRest  Vec2 // camera resting position for the focused cell
	pinchUsed bool // a pinch threshold already fired this pinch session

	pending     pendingKind
	pendingCell Cell

	handle   CallbackHandle
	disposed bool
}

// ViewportConfig wires a ViewportController to its collaborators. Layout,
// Camera, Anim, and Input are required; Detail, Describe, and Highlight
// are optional.
type ViewportConfig struct {
	Layout    *GridLayout
	Camera    *Camera
	Anim      *AnimationController
	Input     *GestureInput
	Tuning    Tuning
	Detail    DetailView
	Describe  func(Cell) ImageDescriptor
	Highlight Highlighter
}

// NewViewportController creates the state machine in the Idle state with
// the camera framing the whole sheet, and registers for gesture events.
func NewViewportController(cfg ViewportConfig) *ViewportController {
	v := &ViewportController{
		layout:    cfg.Layout,
		camera:    cfg.Camera,
		anim:      cfg.Anim,
		input:     cfg.Input,
		tuning:    cfg.Tuning,
		detail:    cfg.Detail,
		describe:  cfg.Describe,
		highlight: cfg.Highlight,
		firstZoom: true,
	}
	v.originalFrustumHeight = v.overviewFrustumHeight()
	v.camera.X, v.camera.Y = 0, 0
	v.camera.FrustumHeight = v.originalFrustumHeight
	v.handle = v.input.OnGesture(v.handleGesture)
	return v
}

// State returns the current interaction state.
func (v *ViewportController) State() State { return v.state }

// CurrentCell returns the focused cell. ok is false in the Idle state.
func (v *ViewportController) CurrentCell() (c Cell, ok bool) {
	return v.current, v.hasFocus
}

// OriginalFrustum returns the overview framing as last computed.
func (v *ViewportController) OriginalFrustum() Frustum {
	halfH := v.originalFrustumHeight / 2
	halfW := halfH * v.camera.Aspect()
	return Frustum{Left: -halfW, Right: halfW, Top: halfH, Bottom: -halfH}
}

// Update advances the post-animation cooldown. Call once per tick after
// AnimationController.Update.
func (v *ViewportController) Update(dt float64) {
	if v.cooldown > 0 {
		v.cooldown -= dt
	}
}

// Dispose unregisters the gesture handler and kills any in-flight camera
// tweens. Safe to call more than once.
func (v *ViewportController) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	v.handle.Remove()
	v.anim.KillTweensOf(&v.camera.X, &v.camera.Y, &v.camera.FrustumHeight)
}

// HandleResize recomputes framing for new viewport dimensions. The layout
// scale is refreshed first so every subsequent position query is
// consistent with the new viewport.
func (v *ViewportController) HandleResize(w, h float64) {
	v.camera.SetViewport(w, h)
	v.layout.Rescale(w, h)
	v.originalFrustumHeight = v.overviewFrustumHeight()

	switch v.state {
	case StateIdle:
		v.camera.X, v.camera.Y = 0, 0
		v.camera.FrustumHeight = v.originalFrustumHeight
	case StateZoomedIn:
		// Preserve the logical zoom factor at the new aspect, and follow
		// the cell to its rescaled position.
		pos := v.layout.ImagePosition(v.current.Row, v.current.Col)
		if v.dragging {
			v.dragRest = pos
		} else {
			v.camera.X, v.camera.Y = pos.X, pos.Y
		}
		v.camera.FrustumHeight = v.focusedFrustumHeight()
	case StateAnimating:
		// Re-aim the in-flight transition at targets computed from the
		// latest viewport; the commit semantics are unchanged.
		switch v.pending {
		case pendingFocus:
			v.tweenToCell(v.pendingCell, navigateDur, navigateDur, 0)
		case pendingSnapBack:
			v.tweenToCell(v.pendingCell, snapBackDur, snapBackDur, 0)
		case pendingOverview:
			v.tweenToOverview(0)
		}
	}
}

// --- gesture dispatch ---

func (v *ViewportController) handleGesture(ev GestureEvent) {
	if v.disposed {
		return
	}
	// Gestures received while a camera tween is in flight are dropped, as
	// are residual pointer events during the short cooldown that follows.
	if v.state == StateAnimating || v.cooldown > 0 {
		return
	}

	switch ev.Type {
	case GestureTap:
		v.onTap(ev.X, ev.Y)
	case GestureDoubleTap:
		v.onDoubleTap()
	case GesturePanStart:
		v.onPanStart()
	case GesturePanMove:
		v.onPanMove(ev.Pan)
	case GesturePanEnd:
		v.onPanEnd(ev.Pan)
	case GesturePanCancel:
		v.onPanCancel()
	case GesturePinchStart:
		v.pinchUsed = false
	case GesturePinchMove:
		v.onPinchMove(ev.Scale)
	case GesturePinchEnd:
		v.pinchUsed = false
	}
}

func (v *ViewportController) onTap(x, y float64) {
	wx, wy := v.camera.ScreenToWorld(x, y)
	cell, ok := v.layout.CellAt(wx, wy)
	if !ok {
		return
	}

	switch v.state {
	case StateIdle:
		v.focusCell(cell, true)
	case StateZoomedIn:
		if cell == v.current {
			v.openDetail()
		} else {
			// Any on-screen cell is a valid target, however far from the
			// current one; navigation is not restricted to neighbors.
			v.focusCell(cell, false)
		}
	}
}

func (v *ViewportController) onDoubleTap() {
	if v.state != StateZoomedIn {
		return
	}
	v.zoomOut()
}

func (v *ViewportController) onPanStart() {
	if v.state != StateZoomedIn {
		return
	}
	v.dragging = true
	v.dragRest = v.layout.ImagePosition(v.current.Row, v.current.Col)
}

func (v *ViewportController) onPanMove(pan *PanSession) {
	if v.state != StateZoomedIn || !v.dragging || pan == nil {
		return
	}
	// The camera tracks the finger along the frozen axis only.
	unitsPerPixel := 1 / v.camera.PixelsPerUnit()
	switch pan.Axis {
	case AxisHorizontal:
		v.camera.X = v.dragRest.X - pan.DeltaX()*unitsPerPixel
		v.camera.Y = v.dragRest.Y
	case AxisVertical:
		v.camera.X = v.dragRest.X
		v.camera.Y = v.dragRest.Y + pan.DeltaY()*unitsPerPixel
	}
}

func (v *ViewportController) onPanEnd(pan *PanSession) {
	if v.state != StateZoomedIn || !v.dragging || pan == nil {
		return
	}
	v.dragging = false

	// Displacement and velocity are negated so that dragging the sheet
	// leftward (negative screen delta) advances to the next column.
	var disp, vel float64
	switch pan.Axis {
	case AxisHorizontal:
		disp, vel = -pan.DeltaX(), -pan.VelocityX
	case AxisVertical:
		disp, vel = -pan.DeltaY(), -pan.VelocityY
	default:
		v.snapBack()
		return
	}

	step := 0
	if math.Abs(vel) >= v.tuning.SwipeVelocity {
		step = sign(vel)
	} else if math.Abs(disp) >= v.tuning.SwipeDistance {
		step = sign(disp)
	}
	if step == 0 {
		v.snapBack()
		return
	}

	target := v.current
	if pan.Axis == AxisHorizontal {
		target.Col += step
	} else {
		target.Row += step
	}
	target = v.layout.Clamp(target)
	if target == v.current {
		// Edge of the grid: hold position.
		v.snapBack()
		return
	}
	v.focusCell(target, false)
}

// onPanCancel returns the camera to the resting position after a pan was
// invalidated by a second touch point. No state transition: the pinch that
// caused the cancel remains live.
func (v *ViewportController) onPanCancel() {
	if v.state != StateZoomedIn || !v.dragging {
		return
	}
	v.dragging = false
	v.anim.Tween(&v.camera.X, v.dragRest.X, TweenOpts{Duration: cancelSnapDur, Ease: ease.OutQuad})
	v.anim.Tween(&v.camera.Y, v.dragRest.Y, TweenOpts{Duration: cancelSnapDur, Ease: ease.OutQuad})
}

func (v *ViewportController) onPinchMove(scale float64) {
	if v.state != StateZoomedIn || v.pinchUsed {
		return
	}
	switch {
	case scale >= v.tuning.PinchOutRatio:
		v.pinchUsed = true
		v.openDetail()
	case scale <= v.tuning.PinchInRatio:
		v.pinchUsed = true
		v.zoomOut()
	}
}

// --- transitions ---

// focusCell starts the Animating transition toward the given cell. The
// position tween's completion commits ZoomedIn and the new current cell.
func (v *ViewportController) focusCell(cell Cell, fromOverview bool) {
	v.state = StateAnimating
	v.pending = pendingFocus
	v.pendingCell = cell
	v.highlightFocus(cell)

	if fromOverview {
		frustumEase := ease.InOutQuad
		if v.firstZoom {
			// First entry eases in from a standstill; later zooms use the
			// symmetric curve.
			frustumEase = ease.InQuad
			v.firstZoom = false
		}
		v.anim.Tween(&v.camera.FrustumHeight, v.focusedFrustumHeight(),
			TweenOpts{Duration: zoomInFrustumDur, Ease: frustumEase})
		v.tweenPosition(cell, zoomInPosDur, ease.OutCubic)
		return
	}
	v.tweenToCell(cell, navigateDur, navigateDur, 0)
}

// tweenToCell re-aims both camera tweens at the cell using the given
// durations. Used for navigation, snap-back re-aiming, and resize during
// Animating.
func (v *ViewportController) tweenToCell(cell Cell, posDur, frustumDur float32, frustumDelay float32) {
	v.anim.Tween(&v.camera.FrustumHeight, v.focusedFrustumHeight(),
		TweenOpts{Duration: frustumDur, Delay: frustumDelay, Ease: ease.InOutQuad})
	v.tweenPosition(cell, posDur, ease.OutQuad)
}

// tweenPosition issues the position pair toward a cell and installs the
// commit callback on it.
func (v *ViewportController) tweenPosition(cell Cell, dur float32, fn ease.TweenFunc) {
	pos := v.layout.ImagePosition(cell.Row, cell.Col)
	v.anim.Tween(&v.camera.X, pos.X, TweenOpts{Duration: dur, Ease: fn})
	v.anim.Tween(&v.camera.Y, pos.Y, TweenOpts{
		Duration: dur,
		Ease:     fn,
		OnComplete: func() {
			v.commitFocus(cell)
		},
	})
}

func (v *ViewportController) commitFocus(cell Cell) {
	v.state = StateZoomedIn
	v.current = cell
	v.hasFocus = true
	v.pending = pendingNone
	v.cooldown = v.tuning.Cooldown
}

// snapBack returns the camera to the current cell after an uncommitted
// drag. Passes through Animating so residual events are dropped.
func (v *ViewportController) snapBack() {
	v.state = StateAnimating
	v.pending = pendingSnapBack
	v.pendingCell = v.current
	v.tweenToCell(v.current, snapBackDur, snapBackDur, 0)
}

// zoomOut starts the Animating transition back to the overview. The
// frustum tween is slightly delayed behind the position tween so the sheet
// re-centers before the zoom fully opens up.
func (v *ViewportController) zoomOut() {
	v.state = StateAnimating
	v.pending = pendingOverview
	v.tweenToOverview(zoomOutFrustumDelay)
}

func (v *ViewportController) tweenToOverview(frustumDelay float32) {
	v.anim.Tween(&v.camera.FrustumHeight, v.overviewFrustumHeight(),
		TweenOpts{Duration: zoomOutFrustumDur, Delay: frustumDelay, Ease: ease.OutCubic})
	commit := func() {
		v.state = StateIdle
		v.hasFocus = false
		v.pending = pendingNone
		v.cooldown = v.tuning.Cooldown
		// Refresh the overview framing from the viewport as it is now, in
		// case a resize happened while zoomed in.
		v.originalFrustumHeight = v.overviewFrustumHeight()
		v.highlightClear()
	}
	v.anim.Tween(&v.camera.X, 0, TweenOpts{Duration: zoomOutPosDur, Ease: ease.InOutQuad})
	v.anim.Tween(&v.camera.Y, 0, TweenOpts{Duration: zoomOutPosDur, Ease: ease.InOutQuad, OnComplete: commit})
}

func (v *ViewportController) openDetail() {
	if v.detail == nil || v.describe == nil {
		return
	}
	v.detail.Show(v.describe(v.current), func() {
		// Absorb the pointer event that dismissed the overlay.
		v.cooldown = v.tuning.Cooldown
	})
}

// --- framing math ---

// overviewFrustumHeight is the frustum height that frames the whole sheet
// at the current viewport aspect.
func (v *ViewportController) overviewFrustumHeight() float64 {
	size := v.layout.SheetSize()
	return math.Max(size.Y, size.X/v.camera.Aspect())
}

// focusedFrustumHeight sizes the frustum so the focused image occupies
// the configured fraction of the viewport height.
func (v *ViewportController) focusedFrustumHeight() float64 {
	return v.layout.ImageSize().Y / v.tuning.ZoomFraction
}

// --- brightness side-channel (best effort) ---

func (v *ViewportController) highlightFocus(c Cell) {
	if v.highlight == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			debugf("highlight focus failed: %v", r)
		}
	}()
	v.highlight.Focus(c)
}

func (v *ViewportController) highlightClear() {
	if v.highlight == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			debugf("highlight clear failed: %v", r)
		}
	}()
	v.highlight.ClearFocus()
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}
