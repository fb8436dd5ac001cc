package app

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font wraps a text/v2 face with a cached line height.
type Font struct {
	face *text.GoTextFace
	lh   float64
}

// LoadFont parses TrueType data at the given size.
func LoadFont(ttf []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// withSize returns the same typeface at another size.
func (f *Font) withSize(size float64) *Font {
	face := &text.GoTextFace{Source: f.face.Source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// LineHeight returns the distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// Measure returns the rendered size of s.
func (f *Font) Measure(s string) (w, h float64) {
	return text.Measure(s, f.face, f.lh)
}

// Wrap breaks s into lines no wider than width, splitting on spaces. A
// single word wider than width gets a line of its own.
func (f *Font) Wrap(s string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if cw, _ := f.Measure(candidate); cw > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// Draw renders one block of text with its top edge at y. x is the left
// edge, centre, or right edge depending on align.
func (f *Font) Draw(dst *ebiten.Image, s string, x, y float64, align text.Align, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	op.LineSpacing = f.lh
	text.Draw(dst, s, f.face, op)
}

// DrawWrapped wraps s to width and draws it. It returns the height used.
func (f *Font) DrawWrapped(dst *ebiten.Image, s string, x, y, width float64, align text.Align, clr color.Color) float64 {
	lines := f.Wrap(s, width)
	for i, line := range lines {
		f.Draw(dst, line, x, y+float64(i)*f.lh, align, clr)
	}
	return float64(len(lines)) * f.lh
}

// fonts are the faces the screens use.
type fonts struct {
	title *Font
	body  *Font
	small *Font
}

func loadFonts(ttf []byte) (fonts, error) {
	body, err := LoadFont(ttf, 30)
	if err != nil {
		return fonts{}, err
	}
	return fonts{title: body.withSize(46), body: body, small: body.withSize(22)}, nil
}
