package mist

import (
	"image"
	"image/color"
)

// RenderCPU draws one fog frame into img on the CPU: the same field and
// compositing as the shaders, written as straight-alpha NRGBA. trail may be
// nil for an untouched frame. It is a reference path for previews and
// tests, far too slow for the live loop at full resolution.
func RenderCPU(img *image.NRGBA, elapsed float64, cfg FogConfig, trail *TrailField, comp *Compositor) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	aspect := float64(w) / float64(h)
	for y := 0; y < h; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			fog := FogAt(u, v, aspect, elapsed, cfg)
			t := 0.0
			if trail != nil {
				t = trail.Sample(u, v)
			}
			c := comp.Shade(fog, t, cfg.MaxAlpha)
			img.SetNRGBA(b.Min.X+x, b.Min.Y+y, c.toNRGBA())
		}
	}
}

// Composite draws fog over a solid background colour and returns the
// opaque result, the way the overlay looks above the page.
func Composite(fog *image.NRGBA, bg Color) *image.NRGBA {
	b := fog.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := fog.NRGBAAt(x, y)
			a := float64(c.A) / 255
			mixc := func(f uint8, g float64) uint8 {
				return uint8(clamp01(float64(f)/255*a+g*(1-a))*255 + 0.5)
			}
			out.SetNRGBA(x, y, color.NRGBA{
				R: mixc(c.R, bg.R),
				G: mixc(c.G, bg.G),
				B: mixc(c.B, bg.B),
				A: 0xff,
			})
		}
	}
	return out
}
