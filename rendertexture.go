package mist

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderTexture is a persistent offscreen image owned by the caller and kept
// across frames. The fog renderer uses them for the trail slots and the
// upscaled trail view.
type RenderTexture struct {
	image *ebiten.Image
	w, h  int
}

// NewRenderTexture creates a persistent offscreen canvas of the given size.
func NewRenderTexture(w, h int) *RenderTexture {
	w, h = max(w, 1), max(h, 1)
	return &RenderTexture{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (rt *RenderTexture) Image() *ebiten.Image {
	return rt.image
}

// Width returns the texture width in pixels.
func (rt *RenderTexture) Width() int {
	return rt.w
}

// Height returns the texture height in pixels.
func (rt *RenderTexture) Height() int {
	return rt.h
}

// Clear fills the texture with transparent black.
func (rt *RenderTexture) Clear() {
	if rt.image != nil {
		rt.image.Clear()
	}
}

// Fill fills the entire texture with the given color.
func (rt *RenderTexture) Fill(c Color) {
	if rt.image != nil {
		rt.image.Fill(c.toRGBA())
	}
}

// DrawScaled draws src stretched over the whole texture with linear
// filtering, replacing the previous contents.
func (rt *RenderTexture) DrawScaled(src *ebiten.Image) {
	if rt.image == nil || src == nil {
		return
	}
	b := src.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(rt.w)/float64(b.Dx()), float64(rt.h)/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	op.Blend = ebiten.BlendCopy
	rt.image.DrawImage(src, &op)
}

// Dispose deallocates the underlying image. Safe to call more than once.
func (rt *RenderTexture) Dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// toNRGBA converts a Color to a straight-alpha color.NRGBA.
func (c Color) toNRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}
