package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/mist"
)

type buttonStyle uint8

const (
	styleNormal buttonStyle = iota
	stylePrimary
	styleCorrect
	styleWrong
	styleMuted
)

// button is one tappable rectangle in canvas pixels. Buttons are rebuilt
// from game state every frame.
type button struct {
	id     string
	rect   mist.Rect
	label  string
	style  buttonStyle
	action func()
}

var (
	colText      = color.NRGBA{0xf4, 0xf6, 0xfa, 0xff}
	colTextDim   = color.NRGBA{0xb8, 0xc2, 0xd0, 0xff}
	colError     = color.NRGBA{0xff, 0x8a, 0x80, 0xff}
	colPanel     = color.NRGBA{0x10, 0x18, 0x22, 0xd8}
	colHighlight = color.NRGBA{0x7f, 0xc8, 0xff, 0xff}
	colAccent    = color.NRGBA{0xff, 0xc3, 0x58, 0xff}
	colBackdrop  = color.NRGBA{0x00, 0x00, 0x00, 0xb3}
)

func (s buttonStyle) fill() color.NRGBA {
	switch s {
	case stylePrimary:
		return color.NRGBA{0x2f, 0x7d, 0xc4, 0xff}
	case styleCorrect:
		return color.NRGBA{0x2e, 0x8b, 0x57, 0xff}
	case styleWrong:
		return color.NRGBA{0xb0, 0x3a, 0x2e, 0xff}
	case styleMuted:
		return color.NRGBA{0x3a, 0x46, 0x54, 0xb0}
	}
	return color.NRGBA{0x24, 0x33, 0x44, 0xe0}
}

// drawButton draws b with its label wrapped and centred.
func drawButton(dst *ebiten.Image, f *Font, b button, pressed bool) {
	r := b.rect
	fill := b.style.fill()
	if pressed {
		fill.A = 0xff
		fill.R, fill.G, fill.B = fill.R/2+0x40, fill.G/2+0x40, fill.B/2+0x40
	}
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), fill, true)
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 2, colTextDim, true)

	const pad = 18
	lines := f.Wrap(b.label, r.Width-2*pad)
	h := float64(len(lines)) * f.LineHeight()
	y := r.Y + (r.Height-h)/2
	for i, line := range lines {
		f.Draw(dst, line, r.X+r.Width/2, y+float64(i)*f.LineHeight(), text.AlignCenter, colText)
	}
}

// pressTracker turns pointer down/up pairs into button activations. A
// button fires when the pointer is released over the same button it went
// down on.
type pressTracker struct {
	pressed string
}

func hitButton(buttons []button, x, y float64) (button, bool) {
	for i := len(buttons) - 1; i >= 0; i-- {
		if buttons[i].rect.Contains(x, y) {
			return buttons[i], true
		}
	}
	return button{}, false
}

// handle processes one pointer event and returns the button to activate.
func (p *pressTracker) handle(buttons []button, e mist.PointerEvent) (button, bool) {
	switch e.Kind {
	case mist.PointerDown:
		p.pressed = ""
		if b, ok := hitButton(buttons, e.X, e.Y); ok {
			p.pressed = b.id
		}
	case mist.PointerUp:
		id := p.pressed
		p.pressed = ""
		if b, ok := hitButton(buttons, e.X, e.Y); ok && id != "" && b.id == id {
			return b, true
		}
	}
	return button{}, false
}

// column lays out n buttons of height h stacked from y with gap between
// them, centred horizontally at width w on a canvas of width cw.
func column(cw, y, w, h, gap float64, n int) []mist.Rect {
	rects := make([]mist.Rect, n)
	x := (cw - w) / 2
	for i := range rects {
		rects[i] = mist.Rect{X: x, Y: y + float64(i)*(h+gap), Width: w, Height: h}
	}
	return rects
}
