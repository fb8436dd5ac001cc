package mist

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshotter captures labeled PNGs of the rendered frame. Queue from
// Update or Draw; Flush at the end of Draw.
type Screenshotter struct {
	// Dir is where PNGs are written. Created on first flush.
	Dir string
	// Now stamps file names. Nil means time.Now.
	Now func() time.Time
	// Logger receives write failures. Nil means slog.Default().
	Logger *slog.Logger

	queue []string
}

// Queue requests a screenshot with the given label at the next Flush.
func (s *Screenshotter) Queue(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued screenshots.
func (s *Screenshotter) Pending() int {
	return len(s.queue)
}

// Flush captures screen once and writes one PNG per queued label. It
// returns the paths written.
func (s *Screenshotter) Flush(screen *ebiten.Image) []string {
	if len(s.queue) == 0 {
		return nil
	}
	defer func() { s.queue = s.queue[:0] }()

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		logger.Error("screenshot_mkdir_failed", "dir", s.Dir, "error", err)
		return nil
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, w, h)

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	stamp := now().Format("20060102_150405")

	var written []string
	for _, label := range s.queue {
		path := filepath.Join(s.Dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			logger.Error("screenshot_write_failed", "error", err)
			continue
		}
		logger.Info("screenshot_written", "path", path)
		written = append(written, path)
	}
	return written
}

// unpremultiply converts premultiplied RGBA bytes to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// WritePNG encodes img to a PNG file at path.
func WritePNG(path string, img image.Image) error {
	return writePNG(path, img)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
