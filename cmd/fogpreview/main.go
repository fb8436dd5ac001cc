// Command fogpreview renders one fog frame on the CPU and writes it as a
// PNG. It needs no GPU or window, which makes it handy for tuning configs
// on a headless box.
package main

import (
	"flag"
	"image"
	"log/slog"
	"os"
	"time"

	"github.com/phanxgames/mist"
	"github.com/phanxgames/mist/app"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	out := flag.String("out", "fog.png", "Output PNG path")
	scale := flag.Float64("scale", 0.25, "Output size relative to the design canvas")
	elapsed := flag.Float64("time", 0, "Seconds since start")
	density := flag.Float64("density", 1, "Fog density in [0, 1]")
	touchX := flag.Float64("touch-x", -1, "Normalized x of a touch held for -touch-for (negative = none)")
	touchY := flag.Float64("touch-y", 0.5, "Normalized y of the touch")
	touchFor := flag.Duration("touch-for", 500*time.Millisecond, "How long the touch is held")
	composite := flag.Bool("composite", true, "Flatten over the configured background colour")

	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := app.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	fog := cfg.Fog.FogConfig
	if err := fog.Validate(); err != nil {
		slog.Warn("fog_config_rejected", "error", err)
		fog = mist.DefaultFogConfig()
	}
	palette, err := cfg.Fog.Palette.Resolve()
	if err != nil {
		slog.Warn("fog_palette_rejected", "error", err)
	}

	w := max(int(float64(cfg.Canvas.Width)*(*scale)), 1)
	h := max(int(float64(cfg.Canvas.Height)*(*scale)), 1)

	comp := mist.NewCompositor(*density)
	comp.Palette = palette
	if cfg.Trail.Thinning > 0 {
		comp.Thinning = cfg.Trail.Thinning
	}

	var trail *mist.TrailField
	if *touchX >= 0 {
		trail = mist.NewTrailField(w, h)
		const dt = 1.0 / 60
		frames := int(touchFor.Seconds() / dt)
		for i := 0; i < frames; i++ {
			trail.Step(mist.TrailStep{
				Delta:   dt,
				Decay:   fog.TouchDecay,
				Radius:  fog.TouchRadius,
				Cap:     cfg.Trail.DepositCap,
				Pointer: mist.PointerSample{X: *touchX, Y: *touchY, Engaged: true},
			})
		}
	}

	start := time.Now()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	mist.RenderCPU(img, *elapsed, fog, trail, comp)
	if *composite {
		img = mist.Composite(img, cfg.BackgroundColor())
	}
	if err := mist.WritePNG(*out, img); err != nil {
		slog.Error("failed to write png", "error", err)
		os.Exit(1)
	}
	slog.Info("fog preview written", "path", *out, "width", w, "height", h, "took", time.Since(start))
}
