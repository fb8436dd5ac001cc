package mist

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestPointerEventKindString(t *testing.T) {
	tests := []struct {
		k    PointerEventKind
		want string
	}{
		{PointerDown, "down"},
		{PointerMove, "move"},
		{PointerUp, "up"},
		{PointerEventKind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestPointerEngagedWhileAnyPointerDown(t *testing.T) {
	tr := newTestTracker()
	tr.apply(1, 10, 20, true)
	tr.apply(2, 90, 180, true)
	if s := tr.Sample(); !s.Engaged || !approxEqual(s.X, 0.9, epsilon) {
		t.Fatalf("sample = %+v, want engaged at second touch", s)
	}

	tr.apply(2, 90, 180, false)
	if !tr.Sample().Engaged {
		t.Error("sample disengaged while touch 1 still down")
	}
	tr.apply(1, 10, 20, false)
	if tr.Sample().Engaged {
		t.Error("sample engaged after every pointer released")
	}
}

func TestPointerStationaryHoldEmitsNoMove(t *testing.T) {
	tr := newTestTracker()
	tr.apply(mousePointer, 30, 40, true)
	tr.events = tr.events[:0]
	tr.apply(mousePointer, 30, 40, true)
	if len(tr.Events()) != 0 {
		t.Errorf("events = %+v, want none for a stationary hold", tr.Events())
	}
}

func TestTouchSlotAllocation(t *testing.T) {
	tr := newTestTracker()
	a := tr.touchSlot(ebiten.TouchID(7))
	b := tr.touchSlot(ebiten.TouchID(8))
	if a != 1 || b != 2 {
		t.Fatalf("slots = %d, %d, want 1, 2", a, b)
	}
	if again := tr.touchSlot(ebiten.TouchID(7)); again != a {
		t.Errorf("touch 7 remapped to %d, want %d", again, a)
	}
	for i := 3; i < maxPointers; i++ {
		tr.touchSlot(ebiten.TouchID(100 + i))
	}
	if s := tr.touchSlot(ebiten.TouchID(999)); s != -1 {
		t.Errorf("slot with all taken = %d, want -1", s)
	}
}
