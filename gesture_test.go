package lightbox

import (
	"math"
	"testing"
)

// recorder captures emitted gesture events for inspection.
type recorder struct {
	events []GestureEvent
}

func (r *recorder) record(ev GestureEvent) {
	// Pan sessions are reused across events; snapshot the fields we assert on.
	if ev.Pan != nil {
		session := *ev.Pan
		ev.Pan = &session
	}
	r.events = append(r.events, ev)
}

func (r *recorder) types() []GestureType {
	out := make([]GestureType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func (r *recorder) count(gt GestureType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == gt {
			n++
		}
	}
	return n
}

func (r *recorder) last(gt GestureType) (GestureEvent, bool) {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == gt {
			return r.events[i], true
		}
	}
	return GestureEvent{}, false
}

func newGestureRig() (*GestureInput, *recorder) {
	g := NewGestureInput(5, 0.3)
	rec := &recorder{}
	g.OnGesture(rec.record)
	return g, rec
}

func TestTapBelowSlop(t *testing.T) {
	g, rec := newGestureRig()

	g.Pointer(0, 100, 100, true)
	g.Update(0.016)
	g.Pointer(0, 103, 101, true) // 3px: below the 5px slop
	g.Pointer(0, 103, 101, false)

	if got := rec.types(); len(got) != 1 || got[0] != GestureTap {
		t.Fatalf("events = %v, want [Tap]", got)
	}
	ev := rec.events[0]
	if ev.X != 103 || ev.Y != 101 {
		t.Errorf("tap at (%v, %v), want release position (103, 101)", ev.X, ev.Y)
	}
}

func TestPanAboveSlop(t *testing.T) {
	g, rec := newGestureRig()

	g.Pointer(0, 100, 100, true)
	g.Update(0.016)
	g.Pointer(0, 110, 102, true)
	g.Update(0.016)
	g.Pointer(0, 130, 104, true)
	g.Pointer(0, 130, 104, false)

	want := []GestureType{GesturePanStart, GesturePanMove, GesturePanMove, GesturePanEnd}
	got := rec.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}

	end, _ := rec.last(GesturePanEnd)
	if end.Pan.DeltaX() != 30 || end.Pan.DeltaY() != 4 {
		t.Errorf("net delta = (%v, %v), want (30, 4)", end.Pan.DeltaX(), end.Pan.DeltaY())
	}
}

func TestSwipeAxisFrozenAtFirstMovement(t *testing.T) {
	g, rec := newGestureRig()

	g.Pointer(0, 100, 100, true)
	g.Update(0.016)
	g.Pointer(0, 112, 103, true) // horizontal dominates: axis locks horizontal
	g.Update(0.016)
	g.Pointer(0, 114, 200, true) // later vertical movement must not re-resolve
	g.Pointer(0, 114, 200, false)

	end, ok := rec.last(GesturePanEnd)
	if !ok {
		t.Fatal("no PanEnd emitted")
	}
	if end.Pan.Axis != AxisHorizontal {
		t.Errorf("axis = %v, want AxisHorizontal (frozen from first movement)", end.Pan.Axis)
	}
}

func TestPanVelocity(t *testing.T) {
	g, rec := newGestureRig()

	g.Pointer(0, 100, 100, true)
	g.Update(0.1) // 100ms between samples
	g.Pointer(0, 130, 100, true)

	move, ok := rec.last(GesturePanMove)
	if !ok {
		t.Fatal("no PanMove emitted")
	}
	// 30px over 100ms = 0.3 px/ms.
	if math.Abs(move.Pan.VelocityX-0.3) > 1e-9 {
		t.Errorf("VelocityX = %v, want 0.3", move.Pan.VelocityX)
	}
}

func TestDoubleTapWindow(t *testing.T) {
	g, rec := newGestureRig()

	tap := func() {
		g.Pointer(0, 50, 50, true)
		g.Pointer(0, 50, 50, false)
	}

	tap()
	g.Update(0.1) // inside the 300ms window
	tap()

	if got := rec.types(); len(got) != 2 || got[0] != GestureTap || got[1] != GestureDoubleTap {
		t.Fatalf("events = %v, want [Tap DoubleTap]", got)
	}

	// The sequence resets: a third tap shortly after a double-tap is a
	// fresh single tap.
	g.Update(0.1)
	tap()
	if got := rec.types(); got[len(got)-1] != GestureTap {
		t.Errorf("tap after double-tap = %v, want Tap", got[len(got)-1])
	}
}

func TestDoubleTapWindowExceeded(t *testing.T) {
	g, rec := newGestureRig()

	g.Pointer(0, 50, 50, true)
	g.Pointer(0, 50, 50, false)
	g.Update(0.5) // past the 300ms window
	g.Pointer(0, 50, 50, true)
	g.Pointer(0, 50, 50, false)

	if got := rec.count(GestureDoubleTap); got != 0 {
		t.Errorf("DoubleTap count = %d, want 0", got)
	}
	if got := rec.count(GestureTap); got != 2 {
		t.Errorf("Tap count = %d, want 2", got)
	}
}

func TestSecondTouchCancelsPan(t *testing.T) {
	g, rec := newGestureRig()

	// Single-touch pan in progress.
	g.Pointer(1, 100, 100, true)
	g.Update(0.016)
	g.Pointer(1, 130, 100, true)
	if rec.count(GesturePanStart) != 1 {
		t.Fatal("expected a pan in progress")
	}

	// Second touch: pan recognition fails, pinch takes over.
	g.Pointer(2, 300, 100, true)
	if rec.count(GesturePanCancel) != 1 {
		t.Errorf("PanCancel count = %d, want 1", rec.count(GesturePanCancel))
	}
	if rec.count(GesturePinchStart) != 1 {
		t.Errorf("PinchStart count = %d, want 1", rec.count(GesturePinchStart))
	}

	// No pan-derived events while two points are down.
	before := rec.count(GesturePanMove)
	g.Update(0.016)
	g.Pointer(1, 180, 100, true)
	if rec.count(GesturePanMove) != before {
		t.Error("PanMove fired while two touch points were active")
	}
}

func TestNoPanUntilAllPointersReleased(t *testing.T) {
	g, rec := newGestureRig()

	g.Pointer(1, 100, 100, true)
	g.Pointer(2, 300, 100, true)
	g.Pointer(2, 300, 100, false) // one finger lifts, one remains

	// The remaining finger must not start a new pan mid-gesture.
	g.Update(0.016)
	g.Pointer(1, 200, 100, true)
	if rec.count(GesturePanStart) != 0 {
		t.Error("pan started while a pinch pointer was still down")
	}
	g.Pointer(1, 200, 100, false)

	// A fresh single-touch session pans normally.
	g.Pointer(1, 100, 100, true)
	g.Update(0.016)
	g.Pointer(1, 150, 100, true)
	if rec.count(GesturePanStart) != 1 {
		t.Errorf("PanStart count = %d after full release, want 1", rec.count(GesturePanStart))
	}
}

func TestPinchScale(t *testing.T) {
	g, rec := newGestureRig()

	g.Pointer(1, 400, 400, true)
	g.Pointer(2, 600, 400, true) // initial distance 200
	g.Update(0.016)
	g.Pointer(1, 300, 400, true)
	g.Pointer(2, 700, 400, true) // distance 400

	move, ok := rec.last(GesturePinchMove)
	if !ok {
		t.Fatal("no PinchMove emitted")
	}
	if math.Abs(move.Scale-2) > 1e-9 {
		t.Errorf("pinch scale = %v, want 2", move.Scale)
	}

	g.Pointer(1, 300, 400, false)
	end, ok := rec.last(GesturePinchEnd)
	if !ok {
		t.Fatal("no PinchEnd emitted")
	}
	if math.Abs(end.Scale-2) > 1e-9 {
		t.Errorf("pinch end scale = %v, want 2", end.Scale)
	}
}

func TestPinchLiftIsNotATap(t *testing.T) {
	g, rec := newGestureRig()

	g.Pointer(1, 400, 400, true)
	g.Pointer(2, 600, 400, true)
	g.Pointer(1, 400, 400, false)
	g.Pointer(2, 600, 400, false)

	if got := rec.count(GestureTap); got != 0 {
		t.Errorf("Tap count = %d after pinch lift, want 0", got)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	g := NewGestureInput(5, 0.3)
	calls := 0
	handle := g.OnGesture(func(GestureEvent) { calls++ })

	g.Pointer(0, 10, 10, true)
	g.Pointer(0, 10, 10, false)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	handle.Remove()
	handle.Remove() // second removal is a no-op
	g.Update(1)
	g.Pointer(0, 10, 10, true)
	g.Pointer(0, 10, 10, false)
	if calls != 1 {
		t.Errorf("calls = %d after Remove, want 1", calls)
	}
}

func TestGestureDisposeIdempotent(t *testing.T) {
	g, rec := newGestureRig()
	g.Dispose()
	g.Dispose()

	g.Pointer(0, 10, 10, true)
	g.Pointer(0, 10, 10, false)
	if len(rec.events) != 0 {
		t.Errorf("events after dispose = %v, want none", rec.types())
	}
}
