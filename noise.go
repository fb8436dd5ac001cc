package mist

import "math"

// Fractal parameters shared with the Kage fog shader.
const (
	fbmOctaves   = 5
	fbmShiftX    = 5.1731
	fbmShiftY    = 1.9873
	fogExponent  = 0.85
	hashScale    = 0.13
	hashBias     = 3.333
	fbmRotCos    = 1.6
	fbmRotSin    = 1.2
	fbmFirstAmpl = 0.5
)

// Hash maps a lattice point to a pseudo-random value in [0, 1).
func Hash(x, y float64) float64 {
	p3x := fract(x * hashScale)
	p3y := fract(y * hashScale)
	p3z := fract(x * hashScale)
	d := p3x*(p3y+hashBias) + p3y*(p3z+hashBias) + p3z*(p3x+hashBias)
	p3x += d
	p3y += d
	p3z += d
	return fract((p3x + p3y) * p3z)
}

// ValueNoise is smoothstep-weighted bilinear interpolation of Hash at the
// four lattice corners around (x, y).
func ValueNoise(x, y float64) float64 {
	ix, iy := math.Floor(x), math.Floor(y)
	fx, fy := x-ix, y-iy
	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)
	return mix(
		mix(Hash(ix, iy), Hash(ix+1, iy), ux),
		mix(Hash(ix, iy+1), Hash(ix+1, iy+1), ux),
		uy,
	)
}

// FBM sums five octaves of ValueNoise. Each octave rotates and shifts the
// sample position before halving the amplitude, so octaves never share
// axis-aligned seams or zero crossings.
func FBM(x, y float64) float64 {
	v, a := 0.0, fbmFirstAmpl
	for i := 0; i < fbmOctaves; i++ {
		v += a * ValueNoise(x, y)
		x, y = fbmRotCos*x-fbmRotSin*y+fbmShiftX, fbmRotSin*x+fbmRotCos*y+fbmShiftY
		a *= 0.5
	}
	return v
}

// FogDensity evaluates the raw two-level domain-warped fractal at p for
// drift time t = time*speed. Each warp stage uses its own per-axis time
// multipliers so the warp never breathes in sync with the base drift.
func FogDensity(px, py, t, warp float64) float64 {
	qx := FBM(px+t, py+t*0.6)
	qy := FBM(px-t*0.5+4.7, py+t+4.7)

	wx, wy := px+warp*qx, py+warp*qy
	rx := FBM(wx+t*0.7, wy-t*0.4)
	ry := FBM(wx-t*0.3+2.1, wy+t*0.8+2.1)

	return FBM(px+warp*rx+t*0.4, py+warp*ry-t*0.25)
}

// Remap applies the contrast curve: smoothstep between lo and hi, then a
// fixed exponent that pushes values toward clear or opaque.
func Remap(fog, lo, hi float64) float64 {
	return math.Pow(Smoothstep(lo, hi, fog), fogExponent)
}

// FogAt returns the remapped fog scalar at normalized canvas position
// (u, v), with v growing downward, for a canvas of the given aspect
// (width/height) at elapsed seconds.
func FogAt(u, v, aspect, elapsed float64, cfg FogConfig) float64 {
	px := u * aspect * cfg.FogScale
	py := v * cfg.FogScale
	t := elapsed * cfg.Speed
	return Remap(FogDensity(px, py, t, cfg.WarpStrength), cfg.FogLo, cfg.FogHi)
}
