package lightbox

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default cell tint (full brightness).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, sizes, and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in scene units. The scene coordinate
// system has its origin at the sheet center, with Y increasing upward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Cell is a logical grid address. Row 0 is the top row, column 0 the
// leftmost column. A Cell identifies exactly one image on the sheet.
type Cell struct {
	Row, Col int
}

// Frustum is the camera's visible rectangular extent in scene units.
// Left < Right and Bottom < Top (scene Y increases upward).
type Frustum struct {
	Left, Right, Top, Bottom float64
}

// Width returns the horizontal extent of the frustum.
func (f Frustum) Width() float64 { return f.Right - f.Left }

// Height returns the vertical extent of the frustum.
func (f Frustum) Height() float64 { return f.Top - f.Bottom }

// State identifies the viewport interaction state.
type State uint8

const (
	StateIdle      State = iota // overview: whole sheet visible, no cell focused
	StateZoomedIn               // one cell focused, camera centered on it
	StateAnimating              // transient: a camera tween is in flight
)

// String returns the state name for diagnostics.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateZoomedIn:
		return "ZoomedIn"
	case StateAnimating:
		return "Animating"
	default:
		return "Unknown"
	}
}

// ElementKind distinguishes sheet elements at construction time, replacing
// any need to guess a node's role from its material or position.
type ElementKind uint8

const (
	ElementKindCell       ElementKind = iota // holds one photograph
	ElementKindBackground                    // sheet backdrop
	ElementKindDecoration                    // non-interactive chrome
)

// GestureType identifies a kind of semantic gesture event.
type GestureType uint8

const (
	GestureTap        GestureType = iota // press then release within the tap threshold
	GestureDoubleTap                     // two taps within the double-tap window
	GesturePanStart                      // single-pointer movement exceeded the tap threshold
	GesturePanMove                       // fires each frame while panning
	GesturePanEnd                        // pointer released after panning
	GesturePanCancel                     // pan invalidated (second touch point appeared)
	GesturePinchStart                    // two touch points registered
	GesturePinchMove                     // fires while both touch points move
	GesturePinchEnd                      // a pinch pointer lifted
)

// SwipeAxis is the locked direction of an in-progress pan, decided once per
// drag session on the first significant movement and frozen afterward.
type SwipeAxis uint8

const (
	AxisNone       SwipeAxis = iota // not yet resolved
	AxisHorizontal                  // column navigation
	AxisVertical                    // row navigation
)

// Tuning collects the interaction constants that varied across observed
// deployments. Zero value is not usable; start from DefaultTuning.
type Tuning struct {
	// ZoomFraction is the fraction of viewport height the focused image
	// occupies when zoomed in.
	ZoomFraction float64
	// TapSlop is the movement in pixels below which a press-release pair
	// counts as a tap rather than a drag.
	TapSlop float64
	// DoubleTapWindow is the maximum seconds between taps of a double-tap.
	DoubleTapWindow float64
	// SwipeVelocity is the minimum instantaneous pointer speed in px/ms
	// that commits a navigation regardless of distance.
	SwipeVelocity float64
	// SwipeDistance is the minimum net displacement in pixels that commits
	// a navigation regardless of speed.
	SwipeDistance float64
	// PinchOutRatio opens the detail view when the pinch scale exceeds it.
	PinchOutRatio float64
	// PinchInRatio returns to overview when the pinch scale drops below it.
	PinchInRatio float64
	// Cooldown is the seconds after an animation completes during which
	// new gesture-initiated transitions are ignored.
	Cooldown float64
	// DimBrightness is the color level unfocused cells settle at while a
	// cell is focused.
	DimBrightness float64
}

// DefaultTuning returns the standard interaction constants.
func DefaultTuning() Tuning {
	return Tuning{
		ZoomFraction:    0.5,
		TapSlop:         5,
		DoubleTapWindow: 0.3,
		SwipeVelocity:   0.3,
		SwipeDistance:   50,
		PinchOutRatio:   1.3,
		PinchInRatio:    0.7,
		Cooldown:        0.15,
		DimBrightness:   0.1,
	}
}
