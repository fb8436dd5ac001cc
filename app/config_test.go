package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phanxgames/mist"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Canvas.Width != mist.DefaultCanvasWidth || cfg.Canvas.Height != mist.DefaultCanvasHeight {
		t.Errorf("canvas = %dx%d, want %dx%d", cfg.Canvas.Width, cfg.Canvas.Height,
			mist.DefaultCanvasWidth, mist.DefaultCanvasHeight)
	}
	if cfg.Fog.FogConfig != mist.DefaultFogConfig() {
		t.Errorf("fog = %+v, want %+v", cfg.Fog.FogConfig, mist.DefaultFogConfig())
	}
	if cfg.Trail.MaxFrameDelta != 100*time.Millisecond {
		t.Errorf("MaxFrameDelta = %v, want 100ms", cfg.Trail.MaxFrameDelta)
	}
	if cfg.Quiz.RevealDelay != 600*time.Millisecond {
		t.Errorf("RevealDelay = %v, want 600ms", cfg.Quiz.RevealDelay)
	}
	if cfg.Quiz.Secret != "bridge" {
		t.Errorf("Secret = %q, want bridge", cfg.Quiz.Secret)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mist.yaml")
	user := "fog:\n  speed: 0.05\ntrail:\n  backend: cpu\n"
	if err := os.WriteFile(path, []byte(user), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Fog.Speed != 0.05 {
		t.Errorf("Speed = %v, want 0.05", cfg.Fog.Speed)
	}
	if cfg.Fog.MaxAlpha != mist.DefaultFogConfig().MaxAlpha {
		t.Errorf("MaxAlpha = %v, want default", cfg.Fog.MaxAlpha)
	}
	if cfg.Trail.Backend != "cpu" {
		t.Errorf("Backend = %q, want cpu", cfg.Trail.Backend)
	}
	if cfg.Density.Floor != 0.35 {
		t.Errorf("Floor = %v, want 0.35", cfg.Density.Floor)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: want error")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(bad, []byte("fog: [unclosed"), 0o644)
	if _, err := Load(bad); err == nil {
		t.Error("bad yaml: want error")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, _ := Load("")
	cfg.Fog.FogHi = 0.9
	cfg.Quiz.SkipGate = true
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Fog.FogHi != 0.9 || !got.Quiz.SkipGate {
		t.Errorf("round trip lost values: FogHi=%v SkipGate=%v", got.Fog.FogHi, got.Quiz.SkipGate)
	}
	if got.Trail.MaxFrameDelta != cfg.Trail.MaxFrameDelta {
		t.Errorf("MaxFrameDelta = %v, want %v", got.Trail.MaxFrameDelta, cfg.Trail.MaxFrameDelta)
	}
}

func TestFogYAML(t *testing.T) {
	data, err := FogYAML(mist.DefaultFogConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "fog:\n") {
		t.Errorf("FogYAML should start with the fog key, got %q", data)
	}
	var back struct {
		Fog mist.FogConfig `yaml:"fog"`
	}
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Fog != mist.DefaultFogConfig() {
		t.Errorf("decoded %+v, want defaults", back.Fog)
	}
}

func TestRendererOptions(t *testing.T) {
	cfg, _ := Load("")
	opts, err := cfg.RendererOptions(discardLogger, false)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Backend != mist.TrailGPU {
		t.Errorf("Backend = %q, want gpu", opts.Backend)
	}
	if opts.DepositCap != 0.8 || opts.Thinning != 0.88 {
		t.Errorf("DepositCap/Thinning = %v/%v, want 0.8/0.88", opts.DepositCap, opts.Thinning)
	}
	if opts.Palette == nil || opts.Config == nil {
		t.Fatal("Palette and Config should be set")
	}

	cfg.Fog.Palette.Thin = "not-a-colour"
	opts, err = cfg.RendererOptions(discardLogger, false)
	if err == nil {
		t.Error("bad palette: want error")
	}
	if *opts.Palette != mist.DefaultPalette() {
		t.Errorf("Palette = %+v, want default", *opts.Palette)
	}
}

func TestBackgroundColorFallback(t *testing.T) {
	cfg, _ := Load("")
	cfg.Canvas.Background = "#ffffff"
	if got := cfg.BackgroundColor(); got != (mist.Color{R: 1, G: 1, B: 1, A: 1}) {
		t.Errorf("BackgroundColor = %+v, want white", got)
	}
	cfg.Canvas.Background = "nope"
	if got := cfg.BackgroundColor(); got.A != 1 {
		t.Errorf("fallback alpha = %v, want 1", got.A)
	}
}
