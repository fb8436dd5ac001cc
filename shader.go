package mist

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader sources ---
// Both shaders use //kage:unit pixels. Constants mirror noise.go and
// trail.go so the CPU path renders the same field.

// trailShaderSrc decays the previous trail (imageSrc0, red channel) and
// max-merges the warped Gaussian brush while a pointer is held. Floor is
// subtracted after decay so 8-bit rounding cannot stall the fade.
const trailShaderSrc = `//kage:unit pixels
package main

var Res vec2
var Touch vec2
var Touching float
var Radius float
var Decay float
var Floor float
var Cap float

func hash(p vec2) float {
	p3 := fract(vec3(p.x, p.y, p.x) * 0.13)
	p3 += dot(p3, p3.yzx+3.333)
	return fract((p3.x + p3.y) * p3.z)
}

func vnoise(p vec2) float {
	i := floor(p)
	f := fract(p)
	u := f * f * (3.0 - 2.0*f)
	a := hash(i)
	b := hash(i + vec2(1, 0))
	c := hash(i + vec2(0, 1))
	d := hash(i + vec2(1, 1))
	return mix(mix(a, b, u.x), mix(c, d, u.x), u.y)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	v := max(imageSrc0At(src).r*Decay-Floor, 0.0)
	if Touching > 0.5 {
		uv := (dst.xy - imageDstOrigin()) / Res
		aspect := Res.x / Res.y
		p := vec2(uv.x*aspect, uv.y)
		t := vec2(Touch.x*aspect, Touch.y)
		q := vec2(p.x, 1-p.y)
		warp := (vnoise(q*6.0)*0.65 + vnoise(q*13.0+vec2(4.1, 2.7))*0.35 - 0.5) * 0.10
		dist := length(p-t) + warp
		sigma := Radius * 0.55
		brush := exp(-dist * dist / (2.0 * sigma * sigma))
		v = max(v, brush*Cap)
	}
	return vec4(v, 0, 0, 1)
}
`

// fogShaderSrc draws the fog: domain-warped fBm remapped by the contrast
// curve, scaled by density and the alpha ceiling, thinned by the trail
// (imageSrc0, red channel, already upscaled to the destination size), and
// tinted between the thin and dense colours. Output is premultiplied.
const fogShaderSrc = `//kage:unit pixels
package main

var Res vec2
var Time float
var Speed float
var Density float
var MaxAlpha float
var FogScale float
var WarpStrength float
var FogLo float
var FogHi float
var Thinning float
var ThinColor vec3
var DenseColor vec3

func hash(p vec2) float {
	p3 := fract(vec3(p.x, p.y, p.x) * 0.13)
	p3 += dot(p3, p3.yzx+3.333)
	return fract((p3.x + p3.y) * p3.z)
}

func vnoise(p vec2) float {
	i := floor(p)
	f := fract(p)
	u := f * f * (3.0 - 2.0*f)
	a := hash(i)
	b := hash(i + vec2(1, 0))
	c := hash(i + vec2(0, 1))
	d := hash(i + vec2(1, 1))
	return mix(mix(a, b, u.x), mix(c, d, u.x), u.y)
}

func fbm(p vec2) float {
	q := p
	v := 0.0
	a := 0.5
	for i := 0; i < 5; i++ {
		v += a * vnoise(q)
		q = vec2(1.6*q.x-1.2*q.y, 1.2*q.x+1.6*q.y) + vec2(5.1731, 1.9873)
		a *= 0.5
	}
	return v
}

func density(p vec2, t float, warp float) float {
	q := vec2(fbm(p+vec2(t, t*0.6)), fbm(p+vec2(-t*0.5+4.7, t+4.7)))
	w := p + warp*q
	r := vec2(fbm(w+vec2(t*0.7, -t*0.4)), fbm(w+vec2(-t*0.3+2.1, t*0.8+2.1)))
	return fbm(p + warp*r + vec2(t*0.4, -t*0.25))
}

func edge(lo, hi, x float) float {
	d := hi - lo
	t := 0.0
	if d != 0 {
		t = clamp((x-lo)/d, 0, 1)
	} else if x >= lo {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	uv := (dst.xy - imageDstOrigin()) / Res
	aspect := Res.x / Res.y
	p := vec2(uv.x*aspect, uv.y) * FogScale
	fog := pow(edge(FogLo, FogHi, density(p, Time*Speed, WarpStrength)), 0.85)

	trail := imageSrc0At(src).r
	top := max(MaxAlpha, 0)
	a := clamp(fog*Density*MaxAlpha*(1-trail*Thinning), 0, top)
	col := mix(ThinColor, DenseColor, fog)
	return vec4(col*a, a)
}
`

// ErrShaderCompile wraps a Kage compile failure.
var ErrShaderCompile = errors.New("mist: shader compile failed")

// shaderSet owns the compiled fog pipeline programs.
type shaderSet struct {
	trail *ebiten.Shader
	fog   *ebiten.Shader
}

// compileShaders builds both programs. On failure nothing is leaked.
func compileShaders() (*shaderSet, error) {
	trail, err := ebiten.NewShader([]byte(trailShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("%w: trail: %w", ErrShaderCompile, err)
	}
	fog, err := ebiten.NewShader([]byte(fogShaderSrc))
	if err != nil {
		trail.Deallocate()
		return nil, fmt.Errorf("%w: fog: %w", ErrShaderCompile, err)
	}
	return &shaderSet{trail: trail, fog: fog}, nil
}

func (s *shaderSet) deallocate() {
	if s == nil {
		return
	}
	if s.trail != nil {
		s.trail.Deallocate()
		s.trail = nil
	}
	if s.fog != nil {
		s.fog.Deallocate()
		s.fog = nil
	}
}
