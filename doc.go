// Package mist is an animated fog layer for [Ebitengine] that thins where the
// player touches it and lifts as a quiz progresses.
//
// The fog is a two-level domain-warped fractal of value noise, drifting over
// time and remapped through a contrast curve. A low-resolution trail field
// records recent pointer contact: every frame it decays exponentially and, while
// a pointer is held, a soft noise-warped brush is merged in. The compositor
// multiplies fog, a smoothed density, and an opacity ceiling, then thins the
// result by the trail.
//
// # Quick start
//
// Create a [Renderer] for the design canvas and drive it from your game:
//
//	vp := mist.NewViewport(mist.DefaultCanvasWidth, mist.DefaultCanvasHeight)
//	ptr := mist.NewPointerTracker(vp)
//	fog := mist.NewRenderer(mist.RendererOptions{})
//
//	func (g *Game) Update() error {
//		ptr.Update()
//		fog.SetPointer(ptr.Sample())
//		fog.SetTargetDensity(schedule.Target(screen, index, total))
//		fog.Update()
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		// draw the page into canvas, then the fog over it
//		fog.Draw(canvas)
//	}
//
// If the shaders fail to compile the renderer logs once and turns inert;
// the rest of the game keeps working without fog.
//
// # CPU reference
//
// [FogAt], [TrailField], and [Compositor] implement the same math as the
// shaders on the CPU. [RenderCPU] uses them to render a frame into an
// image without a GPU, which the fogpreview command and the tests rely on.
//
// [Ebitengine]: https://ebitengine.org
package mist
