package mist

import "github.com/hajimehoshi/ebiten/v2"

// Design canvas size the fog and all screens are laid out in.
const (
	DefaultCanvasWidth  = 748
	DefaultCanvasHeight = 1330
)

// Viewport maps the fixed design canvas onto the outer window with a
// uniform scale and centred letterbox.
type Viewport struct {
	// CanvasW and CanvasH are the design canvas size in pixels.
	CanvasW, CanvasH float64

	scale            float64
	offsetX, offsetY float64
}

// NewViewport creates a viewport for a w x h design canvas at scale 1.
func NewViewport(w, h int) *Viewport {
	return &Viewport{
		CanvasW: float64(w),
		CanvasH: float64(h),
		scale:   1,
	}
}

// Fit recomputes the scale and letterbox for an outer size. Degenerate
// sizes keep the previous mapping.
func (v *Viewport) Fit(outerW, outerH float64) {
	if outerW <= 0 || outerH <= 0 || v.CanvasW <= 0 || v.CanvasH <= 0 {
		return
	}
	v.scale = min(outerW/v.CanvasW, outerH/v.CanvasH)
	v.offsetX = (outerW - v.CanvasW*v.scale) / 2
	v.offsetY = (outerH - v.CanvasH*v.scale) / 2
}

// Scale returns the canvas-to-screen scale factor.
func (v *Viewport) Scale() float64 {
	return v.scale
}

// Offset returns the screen position of the canvas's top-left corner.
func (v *Viewport) Offset() (x, y float64) {
	return v.offsetX, v.offsetY
}

// ScreenToCanvas converts screen pixels to canvas pixels. The result may
// lie outside the canvas.
func (v *Viewport) ScreenToCanvas(sx, sy float64) (cx, cy float64) {
	if v.scale == 0 {
		return sx, sy
	}
	return (sx - v.offsetX) / v.scale, (sy - v.offsetY) / v.scale
}

// Normalize converts screen pixels to canvas-relative [0, 1] coordinates,
// clamping anything in the letterbox or off-window onto the canvas edge.
func (v *Viewport) Normalize(sx, sy float64) (nx, ny float64) {
	cx, cy := v.ScreenToCanvas(sx, sy)
	if v.CanvasW <= 0 || v.CanvasH <= 0 {
		return 0, 0
	}
	nx, ny = clamp01(cx/v.CanvasW), clamp01(cy/v.CanvasH)
	if !isFinite(nx) {
		nx = 0
	}
	if !isFinite(ny) {
		ny = 0
	}
	return nx, ny
}

// GeoM returns the canvas-to-screen transform for drawing the canvas image.
func (v *Viewport) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(v.scale, v.scale)
	g.Translate(v.offsetX, v.offsetY)
	return g
}
