package mist

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewRenderTextureDimensions(t *testing.T) {
	rt := NewRenderTexture(128, 64)
	defer rt.Dispose()

	if rt.Width() != 128 {
		t.Errorf("Width = %d, want 128", rt.Width())
	}
	if rt.Height() != 64 {
		t.Errorf("Height = %d, want 64", rt.Height())
	}
	if rt.Image() == nil {
		t.Error("Image() should not be nil")
	}
}

func TestNewRenderTextureMinimumSize(t *testing.T) {
	rt := NewRenderTexture(0, -3)
	defer rt.Dispose()

	if rt.Width() != 1 || rt.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", rt.Width(), rt.Height())
	}
}

func TestRenderTextureClearAndFill(t *testing.T) {
	rt := NewRenderTexture(32, 32)
	defer rt.Dispose()

	// Should not panic.
	rt.Fill(Color{R: 1, G: 0, B: 0, A: 1})
	rt.Clear()
}

func TestRenderTextureDrawScaled(t *testing.T) {
	rt := NewRenderTexture(64, 64)
	defer rt.Dispose()
	src := ebiten.NewImage(16, 16)
	defer src.Deallocate()

	// Should not panic.
	rt.DrawScaled(src)
	rt.DrawScaled(nil)
}

func TestRenderTextureDispose(t *testing.T) {
	rt := NewRenderTexture(16, 16)
	rt.Dispose()
	if rt.Image() != nil {
		t.Error("Image() should be nil after Dispose")
	}
	// Second dispose and draws after dispose should not panic.
	rt.Dispose()
	rt.Clear()
	rt.Fill(Color{A: 1})
	rt.DrawScaled(nil)
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	if got.A != 128 {
		t.Errorf("A = %d, want 128", got.A)
	}
	if got.R != 128 {
		t.Errorf("R = %d, want 128", got.R)
	}
	if got.G != 64 {
		t.Errorf("G = %d, want 64", got.G)
	}
}

func BenchmarkRenderTextureDrawScaled(b *testing.B) {
	rt := NewRenderTexture(748, 1330)
	defer rt.Dispose()
	src := ebiten.NewImage(374, 665)
	defer src.Deallocate()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rt.DrawScaled(src)
	}
}
