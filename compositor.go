package mist

// Compositor constants shared with the Kage fog shader.
const (
	// DefaultSmoothing is the per-frame blend weight toward the target
	// density (a multi-second glide at 60 fps).
	DefaultSmoothing = 0.035
	// DefaultThinning is how strongly a full trail thins the fog. Below 1 so
	// cleared areas never become holes.
	DefaultThinning = 0.88
)

// Compositor owns the smoothed density and turns fog, trail, and density
// into pixel colour and alpha.
type Compositor struct {
	// Smoothing is the per-frame blend weight in (0, 1].
	Smoothing float64
	// Thinning is the multiplicative thinning factor for trail intensity.
	Thinning float64
	// Palette is the two-colour fog blend.
	Palette Palette

	density float64
}

// NewCompositor starts at the given density so the first frame does not
// glide in from zero.
func NewCompositor(initialDensity float64) *Compositor {
	return &Compositor{
		Smoothing: DefaultSmoothing,
		Thinning:  DefaultThinning,
		Palette:   DefaultPalette(),
		density:   clamp01(initialDensity),
	}
}

// Density returns the current smoothed density.
func (c *Compositor) Density() float64 {
	return c.density
}

// Advance moves the current density one frame toward target and returns it.
// With a weight in (0, 1] the approach is monotone and never overshoots.
func (c *Compositor) Advance(target float64) float64 {
	w := Clamp(c.Smoothing, 0, 1)
	c.density += (clamp01(target) - c.density) * w
	return c.density
}

// Alpha returns the straight (non-premultiplied) alpha for one pixel,
// always within [0, maxAlpha].
func (c *Compositor) Alpha(fog, trail, maxAlpha float64) float64 {
	return FogAlpha(fog, c.density, trail, maxAlpha, c.Thinning)
}

// Shade returns the final colour for one pixel with A set to Alpha.
func (c *Compositor) Shade(fog, trail, maxAlpha float64) Color {
	col := c.Palette.At(fog)
	col.A = c.Alpha(fog, trail, maxAlpha)
	return col
}

// FogAlpha is fog*density*maxAlpha thinned multiplicatively by the trail,
// clamped to [0, maxAlpha]. A negative ceiling yields 0.
func FogAlpha(fog, density, trail, maxAlpha, thinning float64) float64 {
	if maxAlpha <= 0 {
		return 0
	}
	a := fog * density * maxAlpha
	a *= 1 - trail*thinning
	return Clamp(a, 0, maxAlpha)
}
