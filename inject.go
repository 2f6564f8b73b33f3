package lightbox

// syntheticPointerEvent is one injected pointer sample. Screen coordinates
// are used, identical to real mouse input.
type syntheticPointerEvent struct {
	pointerID int
	x, y      float64
	pressed   bool
}

// injectQueue lives on the Viewer so scripted interactions and headless
// tests share the exact gesture path real input takes.
type injectQueue struct {
	events []syntheticPointerEvent
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next Step.
func (v *Viewer) InjectPress(x, y float64) {
	v.inject.events = append(v.inject.events, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use between
// InjectPress and InjectRelease to simulate a drag.
func (v *Viewer) InjectMove(x, y float64) {
	v.inject.events = append(v.inject.events, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (v *Viewer) InjectRelease(x, y float64) {
	v.inject.events = append(v.inject.events, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two steps.
func (v *Viewer) InjectClick(x, y float64) {
	v.InjectPress(x, y)
	v.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over steps-2 intermediate samples, and
// release at (toX, toY). Minimum steps is 2 (press + release).
func (v *Viewer) InjectDrag(fromX, fromY, toX, toY float64, steps int) {
	if steps < 2 {
		steps = 2
	}
	v.InjectPress(fromX, fromY)
	mid := steps - 2
	for i := 1; i <= mid; i++ {
		t := float64(i) / float64(mid+1)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectRelease(toX, toY)
}

// processInjected pops one queued event per step and feeds it through the
// gesture recognizer on pointer 0.
func (v *Viewer) processInjected() {
	if len(v.inject.events) == 0 {
		return
	}
	evt := v.inject.events[0]
	copy(v.inject.events, v.inject.events[1:])
	v.inject.events = v.inject.events[:len(v.inject.events)-1]
	v.input.Pointer(evt.pointerID, evt.x, evt.y, evt.pressed)
}
