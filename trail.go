package mist

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Trail brush constants shared with the Kage trail shader.
const (
	// DefaultDepositCap bounds a single deposit so fog is thinned, never
	// carved to nothing.
	DefaultDepositCap = 0.80
	brushSigmaRatio   = 0.55
	brushWarpAmount   = 0.10
	// brushCutoff is how many sigmas out the CPU brush is evaluated. Beyond
	// it the Gaussian is below 1e-4 of the cap.
	brushCutoff = 4.5
	// trailQuantum is one step of the 8-bit GPU trail texture.
	trailQuantum = 1.0 / 255
	// quantizedDecayFloor is taken off every decaying 8-bit texel. Anything
	// above half a step guarantees the stored value drops by at least one
	// step per frame whether the GPU rounds or truncates.
	quantizedDecayFloor = 0.6 * trailQuantum
)

// PointerSample is the latest normalized interaction position plus whether
// a pointer is currently held. X and Y are in [0, 1] relative to the design
// canvas, Y growing downward.
type PointerSample struct {
	X, Y    float64
	Engaged bool
}

// TrailStep carries everything one trail update needs.
type TrailStep struct {
	// Delta is the clamped frame time in seconds.
	Delta float64
	// Decay is the trail decay rate (FogConfig.TouchDecay).
	Decay float64
	// Radius is the brush radius (FogConfig.TouchRadius).
	Radius float64
	// Cap bounds the brush intensity. Zero means DefaultDepositCap.
	Cap     float64
	Pointer PointerSample
}

// DecayFactor returns the per-frame multiplier exp(-decay*dt).
func (s TrailStep) DecayFactor() float64 {
	return math.Exp(-s.Decay * s.Delta)
}

// quantizedFloor is the extra amount the 8-bit trail loses per frame on top
// of DecayFactor. Zero when the step does not decay.
func (s TrailStep) quantizedFloor() float64 {
	if s.DecayFactor() >= 1 {
		return 0
	}
	return quantizedDecayFloor
}

func (s TrailStep) depositCap() float64 {
	if s.Cap == 0 {
		return DefaultDepositCap
	}
	return s.Cap
}

// TrailField is the CPU model of the interaction trail: a grid of
// intensities in [0, 1] held in a two-slot arena. Each Step reads slot
// `read`, writes slot `write`, then swaps the indices, so an update never
// observes its own output.
type TrailField struct {
	w, h   int
	aspect float64
	slots  [2][]float64
	read   int
	write  int
}

// NewTrailField allocates a zeroed w x h field. Aspect correction uses w/h,
// which matches the canvas when the trail is a uniform downscale of it.
func NewTrailField(w, h int) *TrailField {
	w, h = max(w, 1), max(h, 1)
	return &TrailField{
		w:      w,
		h:      h,
		aspect: float64(w) / float64(h),
		slots:  [2][]float64{make([]float64, w*h), make([]float64, w*h)},
		read:   0,
		write:  1,
	}
}

// Width returns the grid width in cells.
func (f *TrailField) Width() int { return f.w }

// Height returns the grid height in cells.
func (f *TrailField) Height() int { return f.h }

// Values returns the current (most recently written) grid, row-major.
// The returned slice MUST NOT be mutated.
func (f *TrailField) Values() []float64 {
	return f.slots[f.read]
}

// At returns the intensity of cell (x, y), or 0 outside the grid.
func (f *TrailField) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return 0
	}
	return f.slots[f.read][y*f.w+x]
}

// Sample returns the bilinearly filtered intensity at normalized (u, v),
// clamping to the edge like a CLAMP_TO_EDGE texture.
func (f *TrailField) Sample(u, v float64) float64 {
	x := Clamp(u*float64(f.w)-0.5, 0, float64(f.w-1))
	y := Clamp(v*float64(f.h)-0.5, 0, float64(f.h-1))
	x0, y0 := int(x), int(y)
	x1, y1 := min(x0+1, f.w-1), min(y0+1, f.h-1)
	tx, ty := x-float64(x0), y-float64(y0)
	g := f.slots[f.read]
	return mix(
		mix(g[y0*f.w+x0], g[y0*f.w+x1], tx),
		mix(g[y1*f.w+x0], g[y1*f.w+x1], tx),
		ty,
	)
}

// Peak returns the largest intensity in the field.
func (f *TrailField) Peak() float64 {
	return floats.Max(f.slots[f.read])
}

// Step advances the field by one frame: every cell decays by
// exp(-decay*dt), then, while the pointer is engaged, the brush is merged
// in with max so a deposit never exceeds the cap.
func (f *TrailField) Step(s TrailStep) {
	src, dst := f.slots[f.read], f.slots[f.write]
	copy(dst, src)
	floats.Scale(s.DecayFactor(), dst)

	if s.Pointer.Engaged && s.Radius > 0 {
		f.deposit(dst, s)
	}

	f.read, f.write = f.write, f.read
}

// deposit merges the brush into the cells it can reach.
func (f *TrailField) deposit(dst []float64, s TrailStep) {
	sigma := s.Radius * brushSigmaRatio
	reach := sigma*brushCutoff + brushWarpAmount
	tx := Clamp(s.Pointer.X, 0, 1) * f.aspect
	ty := Clamp(s.Pointer.Y, 0, 1)
	limit := s.depositCap()

	// Brush-space reach converted to cell bounds. Brush x is aspect-scaled,
	// so one cell is 1/h wide in both axes.
	cx0 := max(int(math.Floor((tx-reach)*float64(f.h))), 0)
	cx1 := min(int(math.Ceil((tx+reach)*float64(f.h))), f.w-1)
	cy0 := max(int(math.Floor((ty-reach)*float64(f.h))), 0)
	cy1 := min(int(math.Ceil((ty+reach)*float64(f.h))), f.h-1)

	for y := cy0; y <= cy1; y++ {
		v := (float64(y) + 0.5) / float64(f.h)
		row := dst[y*f.w : (y+1)*f.w]
		for x := cx0; x <= cx1; x++ {
			u := (float64(x) + 0.5) / float64(f.w)
			b := BrushIntensity(u*f.aspect, v, tx, ty, sigma) * limit
			if b > row[x] {
				row[x] = b
			}
		}
	}
}

// BrushIntensity is the Gaussian brush at aspect-corrected point (px, py)
// for a touch at (tx, ty). The distance is perturbed by two octaves of value
// noise so the cleared edge is wispy rather than a perfect circle.
func BrushIntensity(px, py, tx, ty, sigma float64) float64 {
	if sigma <= 0 {
		return 0
	}
	// Edge noise is sampled with y growing upward.
	ny := 1 - py
	n1 := ValueNoise(px*6, ny*6)
	n2 := ValueNoise(px*13+4.1, ny*13+2.7)
	warp := (n1*0.65 + n2*0.35 - 0.5) * brushWarpAmount
	dist := math.Hypot(px-tx, py-ty) + warp
	return math.Exp(-dist * dist / (2 * sigma * sigma))
}

// Reset zeroes both slots.
func (f *TrailField) Reset() {
	for i := range f.slots {
		clear(f.slots[i])
	}
}

// writeR8 packs the current grid into an RGBA pixel buffer with the
// intensity in the red channel and opaque alpha, the layout the fog shader
// samples.
func (f *TrailField) writeR8(pix []byte) {
	for i, v := range f.slots[f.read] {
		off := i * 4
		pix[off+0] = byte(clamp01(v)*255 + 0.5)
		pix[off+1] = 0
		pix[off+2] = 0
		pix[off+3] = 0xff
	}
}
