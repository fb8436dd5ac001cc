package mist

// syntheticPointerEvent is one injected pointer event in screen pixels, run
// through the same viewport mapping as real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// InjectPress queues a press at the given screen coordinates. The event is
// consumed on the next Update.
func (t *PointerTracker) InjectPress(x, y float64) {
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a move with the pointer held. Use it between InjectPress
// and InjectRelease to draw a stroke.
func (t *PointerTracker) InjectMove(x, y float64) {
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a release at the given screen coordinates.
func (t *PointerTracker) InjectRelease(x, y float64) {
	t.injectQueue = append(t.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: false})
}

// InjectClick queues a press and a release at the same point. Consumes two
// frames.
func (t *PointerTracker) InjectClick(x, y float64) {
	t.InjectPress(x, y)
	t.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 linearly spaced
// moves, and a release at (toX, toY). Minimum frames is 2.
func (t *PointerTracker) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	t.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		f := float64(i) / float64(steps+1)
		t.InjectMove(fromX+(toX-fromX)*f, fromY+(toY-fromY)*f)
	}
	t.InjectRelease(toX, toY)
}

// Pending returns the number of queued synthetic events.
func (t *PointerTracker) Pending() int {
	return len(t.injectQueue)
}

// processInjected pops one queued event onto the mouse pointer. Reports
// whether an event was consumed.
func (t *PointerTracker) processInjected() bool {
	if len(t.injectQueue) == 0 {
		return false
	}
	evt := t.injectQueue[0]
	copy(t.injectQueue, t.injectQueue[1:])
	t.injectQueue = t.injectQueue[:len(t.injectQueue)-1]

	t.apply(mousePointer, evt.screenX, evt.screenY, evt.pressed)
	return true
}
