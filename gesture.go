package lightbox

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// PanSession tracks a single-pointer drag from press to release. It exists
// only while the pointer is down and is discarded on release or cancel.
type PanSession struct {
	// StartX and StartY are the screen coordinates at press time.
	StartX, StartY float64
	// LastX and LastY are the most recent screen coordinates.
	LastX, LastY float64
	// Axis is resolved on the first movement beyond the tap slop and
	// frozen for the rest of the session.
	Axis SwipeAxis
	// Moved reports whether the pointer traveled beyond the tap slop.
	Moved bool
	// VelocityX and VelocityY are the instantaneous pointer speeds in
	// pixels per millisecond, signed.
	VelocityX, VelocityY float64
}

// DeltaX returns the net horizontal displacement since press.
func (p *PanSession) DeltaX() float64 { return p.LastX - p.StartX }

// DeltaY returns the net vertical displacement since press.
func (p *PanSession) DeltaY() float64 { return p.LastY - p.StartY }

// GestureEvent is a semantic gesture delivered to registered handlers.
type GestureEvent struct {
	Type GestureType
	// X and Y are screen coordinates: the tap location for taps, the
	// gesture center for pinches, the current pointer position for pans.
	X, Y float64
	// Pan is set for pan events. The pointed-to session is reused across
	// events of one drag; handlers must not retain it past the callback.
	Pan *PanSession
	// Scale is the pinch ratio relative to the initial finger distance.
	// Set for GesturePinchMove and GesturePinchEnd.
	Scale float64
}

type gestureHandler struct {
	id uint32
	fn func(GestureEvent)
}

// CallbackHandle allows removing a registered gesture callback.
type CallbackHandle struct {
	id uint32
	in *GestureInput
}

// Remove unregisters the callback. Removing twice is a no-op.
func (h CallbackHandle) Remove() {
	if h.in == nil {
		return
	}
	s := h.in.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = gestureHandler{}
			h.in.handlers = s[:len(s)-1]
			return
		}
	}
}

type gesturePointer struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	lastTime float64
	session  PanSession
}

type gesturePinch struct {
	active      bool
	initialDist float64
	scale       float64
}

// GestureInput turns raw pointer samples into the semantic gesture
// vocabulary the viewport controller consumes: tap, double-tap, pan,
// and pinch, with multi-touch suppression built in.
//
// A pan is provisionally recognized on pointer down but fails the moment a
// second touch point appears: the in-flight session is cancelled
// (GesturePanCancel) and no pan-derived events fire again until every
// pointer has been released. Pinch always wins over pan.
//
// Feed it either from ebiten via Poll, or directly via Pointer for
// headless use. Advance the gesture clock with Update each frame.
type GestureInput struct {
	handlers []gestureHandler
	nextID   uint32

	// TapSlop and DoubleTapWindow mirror the Tuning fields of the same
	// names; see DefaultTuning.
	TapSlop         float64
	DoubleTapWindow float64

	pointers    [maxPointers]gesturePointer
	pinch       gesturePinch
	suppressPan bool // set while a pinch is or was active; cleared when all pointers lift

	now         float64
	lastTapTime float64

	// ebiten poll state
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	disposed bool
}

// NewGestureInput creates a recognizer with the given tap slop (pixels)
// and double-tap window (seconds).
func NewGestureInput(tapSlop, doubleTapWindow float64) *GestureInput {
	return &GestureInput{
		TapSlop:         tapSlop,
		DoubleTapWindow: doubleTapWindow,
		lastTapTime:     math.Inf(-1),
	}
}

// OnGesture registers a handler for all gesture events.
func (g *GestureInput) OnGesture(fn func(GestureEvent)) CallbackHandle {
	g.nextID++
	id := g.nextID
	g.handlers = append(g.handlers, gestureHandler{id: id, fn: fn})
	return CallbackHandle{id: id, in: g}
}

// Dispose removes all handlers and resets gesture state. Safe to call
// more than once.
func (g *GestureInput) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.handlers = nil
	for i := range g.pointers {
		g.pointers[i] = gesturePointer{}
	}
	g.pinch = gesturePinch{}
	g.suppressPan = false
}

// Update advances the gesture clock by dt seconds.
func (g *GestureInput) Update(dt float64) {
	g.now += dt
}

func (g *GestureInput) emit(ev GestureEvent) {
	// Iterate over a stable view: a handler may remove itself.
	handlers := g.handlers
	for _, h := range handlers {
		h.fn(ev)
	}
}

// Poll reads the current ebiten mouse and touch state and feeds it through
// the recognizer. Call once per Update tick.
func (g *GestureInput) Poll() {
	if g.disposed {
		return
	}

	mx, my := ebiten.CursorPosition()
	g.Pointer(0, float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

	touchIDs := ebiten.AppendTouchIDs(g.prevTouchIDs[:0])
	g.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := g.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		g.Pointer(slot, float64(tx), float64(ty), true)
	}

	// Release slots whose touches vanished this frame.
	for i := 1; i < maxPointers; i++ {
		if g.touchUsed[i] && !activeSlots[i] {
			ps := &g.pointers[i]
			if ps.down {
				g.Pointer(i, ps.lastX, ps.lastY, false)
			}
			g.touchUsed[i] = false
			g.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). Returns the
// existing slot or allocates a new one; -1 if all slots are in use.
func (g *GestureInput) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if g.touchUsed[i] && g.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !g.touchUsed[i] {
			g.touchUsed[i] = true
			g.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// Pointer processes one raw pointer sample at the current gesture clock.
// pointerID 0 is the mouse; 1-9 are touch points.
func (g *GestureInput) Pointer(pointerID int, x, y float64, pressed bool) {
	if g.disposed || pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &g.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		g.pointerDown(ps, x, y)
	case !pressed && ps.down:
		g.pointerUp(ps, x, y)
	case pressed && ps.down:
		g.pointerMove(ps, x, y)
	}
}

func (g *GestureInput) pointerDown(ps *gesturePointer, x, y float64) {
	ps.down = true
	ps.startX, ps.startY = x, y
	ps.lastX, ps.lastY = x, y
	ps.lastTime = g.now
	ps.session = PanSession{StartX: x, StartY: y, LastX: x, LastY: y}

	if g.downCount() >= 2 {
		// Second simultaneous point: pan recognition fails, pinch begins.
		g.cancelPans()
		g.suppressPan = true
		if !g.pinch.active {
			g.startPinch()
		}
	}
}

func (g *GestureInput) pointerMove(ps *gesturePointer, x, y float64) {
	if x == ps.lastX && y == ps.lastY {
		return
	}

	dtMs := (g.now - ps.lastTime) * 1000
	if dtMs > 0 {
		ps.session.VelocityX = (x - ps.lastX) / dtMs
		ps.session.VelocityY = (y - ps.lastY) / dtMs
	}
	ps.lastX, ps.lastY = x, y
	ps.lastTime = g.now
	ps.session.LastX, ps.session.LastY = x, y

	if g.pinch.active {
		g.updatePinch()
		return
	}
	if g.suppressPan {
		return
	}

	if !ps.session.Moved {
		dx := x - ps.startX
		dy := y - ps.startY
		if math.Hypot(dx, dy) > g.TapSlop {
			ps.session.Moved = true
			if math.Abs(dx) >= math.Abs(dy) {
				ps.session.Axis = AxisHorizontal
			} else {
				ps.session.Axis = AxisVertical
			}
			g.emit(GestureEvent{Type: GesturePanStart, X: x, Y: y, Pan: &ps.session})
		}
	}
	if ps.session.Moved {
		g.emit(GestureEvent{Type: GesturePanMove, X: x, Y: y, Pan: &ps.session})
	}
}

func (g *GestureInput) pointerUp(ps *gesturePointer, x, y float64) {
	ps.down = false
	ps.session.LastX, ps.session.LastY = x, y

	if g.pinch.active {
		g.pinch.active = false
		g.emit(GestureEvent{Type: GesturePinchEnd, Scale: g.pinch.scale})
	}

	if g.downCount() == 0 {
		suppressed := g.suppressPan
		g.suppressPan = false
		if suppressed {
			return
		}
	} else if g.suppressPan {
		return
	}

	if ps.session.Moved {
		g.emit(GestureEvent{Type: GesturePanEnd, X: x, Y: y, Pan: &ps.session})
		return
	}

	// Below the slop even at release: a tap. Two taps inside the window
	// form a double-tap; the second tap is not also reported as a tap.
	if g.now-g.lastTapTime <= g.DoubleTapWindow {
		g.lastTapTime = math.Inf(-1)
		g.emit(GestureEvent{Type: GestureDoubleTap, X: x, Y: y})
	} else {
		g.lastTapTime = g.now
		g.emit(GestureEvent{Type: GestureTap, X: x, Y: y})
	}
}

func (g *GestureInput) downCount() int {
	n := 0
	for i := range g.pointers {
		if g.pointers[i].down {
			n++
		}
	}
	return n
}

// cancelPans invalidates any in-flight pan session. Fired at most once per
// session; the controller responds by snapping the camera back.
func (g *GestureInput) cancelPans() {
	for i := range g.pointers {
		ps := &g.pointers[i]
		if ps.down && ps.session.Moved {
			ps.session.Moved = false
			g.emit(GestureEvent{Type: GesturePanCancel})
		}
	}
}

func (g *GestureInput) startPinch() {
	p0, p1 := g.twoDownPointers()
	if p0 < 0 || p1 < 0 {
		return
	}
	a, b := &g.pointers[p0], &g.pointers[p1]
	g.pinch.active = true
	g.pinch.initialDist = math.Hypot(b.lastX-a.lastX, b.lastY-a.lastY)
	g.pinch.scale = 1
	g.emit(GestureEvent{
		Type: GesturePinchStart,
		X:    (a.lastX + b.lastX) / 2,
		Y:    (a.lastY + b.lastY) / 2,
	})
}

func (g *GestureInput) updatePinch() {
	p0, p1 := g.twoDownPointers()
	if p0 < 0 || p1 < 0 {
		return
	}
	a, b := &g.pointers[p0], &g.pointers[p1]
	dist := math.Hypot(b.lastX-a.lastX, b.lastY-a.lastY)
	if g.pinch.initialDist > 0 {
		g.pinch.scale = dist / g.pinch.initialDist
	}
	g.emit(GestureEvent{
		Type:  GesturePinchMove,
		X:     (a.lastX + b.lastX) / 2,
		Y:     (a.lastY + b.lastY) / 2,
		Scale: g.pinch.scale,
	})
}

func (g *GestureInput) twoDownPointers() (int, int) {
	first, second := -1, -1
	for i := range g.pointers {
		if !g.pointers[i].down {
			continue
		}
		if first < 0 {
			first = i
		} else {
			second = i
			break
		}
	}
	return first, second
}
