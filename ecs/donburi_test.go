package ecs

import (
	"math"
	"testing"

	"github.com/phanxgames/mist"
	"github.com/phanxgames/mist/quiz"

	"github.com/yohamta/donburi"
)

type densityRecorder struct {
	got []float64
}

func (d *densityRecorder) SetTargetDensity(v float64) { d.got = append(d.got, v) }

func TestNewDonburiNavSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiNavSink(world) == nil {
		t.Fatal("NewDonburiNavSink returned nil")
	}
}

func TestNavSink_QueuesUntilProcessed(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiNavSink(world)

	var received []quiz.NavState
	NavEventType.Subscribe(world, func(w donburi.World, s quiz.NavState) {
		received = append(received, s)
	})

	sink.EmitNav(quiz.NavState{Screen: mist.ScreenQuiz, Index: 2, Total: 6, Topic: "x"})
	sink.EmitNav(quiz.NavState{Screen: mist.ScreenFinal, Index: 5, Total: 6})

	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents, want 0", len(received))
	}
	ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Index != 2 || received[0].Topic != "x" {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Screen != mist.ScreenFinal {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestFollowDensity_NavigatorDrivesTarget(t *testing.T) {
	world := donburi.NewWorld()
	nav := quiz.NewNavigator(nil)
	nav.SetSink(NewDonburiNavSink(world))

	rec := &densityRecorder{}
	sched := mist.DensitySchedule{Floor: 0.35}
	FollowDensity(world, sched, rec)

	topics := nav.Topics()
	_ = nav.SelectTopic(topics[0].Title)
	_ = nav.Next()
	ProcessEvents(world)
	for nav.State().Screen == mist.ScreenQuiz {
		_ = nav.Next()
	}
	ProcessEvents(world)

	if len(rec.got) != len(topics)+1 {
		t.Fatalf("got %d density updates, want %d", len(rec.got), len(topics)+1)
	}
	if rec.got[0] != 1 {
		t.Errorf("first question density = %v, want 1", rec.got[0])
	}
	want := sched.Target(mist.ScreenQuiz, 1, len(topics))
	if math.Abs(rec.got[1]-want) > 1e-9 {
		t.Errorf("second question density = %v, want %v", rec.got[1], want)
	}
	if last := rec.got[len(rec.got)-1]; last != 0 {
		t.Errorf("final density = %v, want 0", last)
	}
}

func TestPublishPointerEvents(t *testing.T) {
	world := donburi.NewWorld()
	var kinds []mist.PointerEventKind
	PointerEventType.Subscribe(world, func(w donburi.World, e mist.PointerEvent) {
		kinds = append(kinds, e.Kind)
	})

	PublishPointerEvents(world, []mist.PointerEvent{
		{Kind: mist.PointerDown, X: 10, Y: 20},
		{Kind: mist.PointerMove, X: 11, Y: 21},
		{Kind: mist.PointerUp, X: 11, Y: 21},
	})
	ProcessEvents(world)

	if len(kinds) != 3 {
		t.Fatalf("expected 3 events, got %d", len(kinds))
	}
	if kinds[0] != mist.PointerDown || kinds[2] != mist.PointerUp {
		t.Errorf("kinds = %v", kinds)
	}
}

func TestMultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiNavSink(world)

	var count1, count2 int
	NavEventType.Subscribe(world, func(w donburi.World, s quiz.NavState) { count1++ })
	NavEventType.Subscribe(world, func(w donburi.World, s quiz.NavState) { count2++ })

	sink.EmitNav(quiz.NavState{})
	ProcessEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
