package mist

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// Lerp linearly blends c toward other by t. t is not clamped.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Smoothstep is the GLSL smoothstep. The range is not special-cased: when
// edge0 >= edge1 the result is whatever the Hermite formula gives, which
// collapses to a step for equal edges and inverts for swapped ones.
func Smoothstep(edge0, edge1, x float64) float64 {
	d := edge1 - edge0
	var t float64
	switch {
	case d != 0:
		t = clamp01((x - edge0) / d)
	case x < edge0:
		t = 0
	default:
		t = 1
	}
	return t * t * (3 - 2*t)
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}

func mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
