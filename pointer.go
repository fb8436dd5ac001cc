package mist

import "github.com/hajimehoshi/ebiten/v2"

const (
	maxPointers  = 10 // pointer 0 = mouse, 1-9 = touch
	mousePointer = 0
)

// PointerEventKind identifies a pointer transition.
type PointerEventKind uint8

const (
	PointerDown PointerEventKind = iota
	PointerMove
	PointerUp
)

func (k PointerEventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent is one transition observed during Update. X and Y are in
// design canvas pixels (possibly outside the canvas when the pointer is in
// the letterbox); NX and NY are the clamped normalized coordinates.
type PointerEvent struct {
	Kind      PointerEventKind
	PointerID int
	X, Y      float64
	NX, NY    float64
}

type pointerState struct {
	down bool
	// Last position in screen pixels.
	lastX, lastY float64
}

// PointerTracker turns mouse and touch input into the single latest
// PointerSample the trail consumes, plus a per-frame list of events for UI
// hit testing. Mouse moves only count while the button is held; touch moves
// always count. The last pointer to move wins.
type PointerTracker struct {
	vp *Viewport

	sample   PointerSample
	pointers [maxPointers]pointerState
	events   []PointerEvent

	touchIDs  []ebiten.TouchID
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool

	injectQueue []syntheticPointerEvent
}

// NewPointerTracker creates a tracker that maps screen pixels through vp.
// The initial sample sits off the top edge, disengaged.
func NewPointerTracker(vp *Viewport) *PointerTracker {
	return &PointerTracker{
		vp:     vp,
		sample: PointerSample{X: 0.5, Y: 0},
	}
}

// Sample returns the latest normalized pointer sample.
func (t *PointerTracker) Sample() PointerSample {
	return t.sample
}

// Events returns the transitions seen during the last Update. The slice is
// reused by the next Update.
func (t *PointerTracker) Events() []PointerEvent {
	return t.events
}

// Update polls ebiten input once. When an injected event is queued it is
// consumed instead and real input is ignored for the frame.
func (t *PointerTracker) Update() {
	t.events = t.events[:0]
	if t.processInjected() {
		return
	}
	t.pollMouse()
	t.pollTouches()
}

func (t *PointerTracker) pollMouse() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	t.apply(mousePointer, float64(mx), float64(my), pressed)
}

func (t *PointerTracker) pollTouches() {
	t.touchIDs = ebiten.AppendTouchIDs(t.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range t.touchIDs {
		slot := t.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		t.apply(slot, float64(tx), float64(ty), true)
	}

	for i := 1; i < maxPointers; i++ {
		if t.touchUsed[i] && !active[i] {
			ps := &t.pointers[i]
			if ps.down {
				t.apply(i, ps.lastX, ps.lastY, false)
			}
			t.touchUsed[i] = false
			t.touchMap[i] = 0
		}
	}
}

// touchSlot maps a touch ID to a pointer slot (1-9), allocating one if
// needed. Returns -1 when all slots are taken.
func (t *PointerTracker) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if t.touchUsed[i] && t.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !t.touchUsed[i] {
			t.touchUsed[i] = true
			t.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// apply runs the state machine for one pointer at screen position (sx, sy).
// A hovering mouse leaves the sample alone.
func (t *PointerTracker) apply(id int, sx, sy float64, pressed bool) {
	ps := &t.pointers[id]
	cx, cy := sx, sy
	nx, ny := 0.0, 0.0
	if t.vp != nil {
		cx, cy = t.vp.ScreenToCanvas(sx, sy)
		nx, ny = t.vp.Normalize(sx, sy)
	}
	moved := sx != ps.lastX || sy != ps.lastY
	ev := PointerEvent{PointerID: id, X: cx, Y: cy, NX: nx, NY: ny}

	switch {
	case pressed && !ps.down:
		ps.down = true
		t.sample = PointerSample{X: nx, Y: ny, Engaged: true}
		ev.Kind = PointerDown
		t.events = append(t.events, ev)
	case pressed && ps.down:
		if moved {
			t.sample = PointerSample{X: nx, Y: ny, Engaged: true}
			ev.Kind = PointerMove
			t.events = append(t.events, ev)
		}
	case !pressed && ps.down:
		ps.down = false
		t.sample.Engaged = t.anyDown()
		ev.Kind = PointerUp
		t.events = append(t.events, ev)
	}
	ps.lastX, ps.lastY = sx, sy
}

func (t *PointerTracker) anyDown() bool {
	for i := range t.pointers {
		if t.pointers[i].down {
			return true
		}
	}
	return false
}

// Reset releases every pointer and drops queued synthetic input.
func (t *PointerTracker) Reset() {
	t.pointers = [maxPointers]pointerState{}
	t.touchUsed = [maxPointers]bool{}
	t.touchMap = [maxPointers]ebiten.TouchID{}
	t.injectQueue = t.injectQueue[:0]
	t.events = t.events[:0]
	t.sample.Engaged = false
}
