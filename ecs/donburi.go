package ecs

import (
	"github.com/phanxgames/mist"
	"github.com/phanxgames/mist/quiz"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// NavEventType carries quiz navigation changes.
var NavEventType = events.NewEventType[quiz.NavState]()

// PointerEventType carries canvas pointer events.
var PointerEventType = events.NewEventType[mist.PointerEvent]()

type donburiNavSink struct {
	world donburi.World
}

// NewDonburiNavSink creates a NavSink that publishes to NavEventType.
// Events are queued until ProcessEvents.
func NewDonburiNavSink(world donburi.World) quiz.NavSink {
	return &donburiNavSink{world: world}
}

func (s *donburiNavSink) EmitNav(state quiz.NavState) {
	NavEventType.Publish(s.world, state)
}

// DensityTarget is anything that accepts a target fog density.
// *mist.Renderer satisfies it.
type DensityTarget interface {
	SetTargetDensity(float64)
}

// FollowDensity subscribes target to NavEventType so each navigation change
// sets the density the schedule assigns to the new screen.
func FollowDensity(world donburi.World, schedule mist.DensitySchedule, target DensityTarget) {
	NavEventType.Subscribe(world, func(w donburi.World, s quiz.NavState) {
		target.SetTargetDensity(schedule.Target(s.Screen, s.Index, s.Total))
	})
}

// PublishPointerEvents queues this tick's tracker events.
func PublishPointerEvents(world donburi.World, evs []mist.PointerEvent) {
	for _, e := range evs {
		PointerEventType.Publish(world, e)
	}
}

// ProcessEvents delivers queued pointer events, then navigation events, so
// a navigation caused by a pointer handler lands in the same tick.
func ProcessEvents(world donburi.World) {
	PointerEventType.ProcessEvents(world)
	NavEventType.ProcessEvents(world)
}
