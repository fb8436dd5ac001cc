// Package ecs bridges mist navigation and pointer events into a [Donburi]
// world as typed events.
//
// [NewDonburiNavSink] publishes every quiz navigation change to
// [NavEventType]; [FollowDensity] subscribes a renderer so its target fog
// density tracks the screen. Pointer events from a [mist.PointerTracker]
// are forwarded with [PublishPointerEvents].
//
// Usage:
//
//	world := donburi.NewWorld()
//	nav.SetSink(ecs.NewDonburiNavSink(world))
//	ecs.FollowDensity(world, mist.DefaultDensitySchedule(), renderer)
//	// once per tick:
//	ecs.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
