package app

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/phanxgames/mist"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the full application configuration.
type Config struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Fog       FogSection      `yaml:"fog"`
	Density   DensityConfig   `yaml:"density"`
	Trail     TrailConfig     `yaml:"trail"`
	Quiz      QuizConfig      `yaml:"quiz"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CanvasConfig is the design canvas the screens are laid out in.
type CanvasConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	TrailScale float64 `yaml:"trail_scale"` // trail grid size relative to the canvas
	Background string  `yaml:"background"`  // CSS colour behind the screens
}

// FogSection is the live fog tuning plus its tint.
type FogSection struct {
	mist.FogConfig `yaml:",inline"`
	Palette        mist.PaletteSpec `yaml:"palette"`
}

// DensityConfig drives the density schedule and its smoothing.
type DensityConfig struct {
	Floor     float64 `yaml:"floor"`     // density on the last question
	Smoothing float64 `yaml:"smoothing"` // per-frame approach rate
}

// TrailConfig selects and tunes the trail backend.
type TrailConfig struct {
	Backend       string        `yaml:"backend"` // gpu or cpu
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"`
	DepositCap    float64       `yaml:"deposit_cap"`
	Thinning      float64       `yaml:"thinning"`
}

// QuizConfig configures the quiz collaborators.
type QuizConfig struct {
	Secret         string        `yaml:"secret"`
	UnlockKey      string        `yaml:"unlock_key"`
	LeaderboardKey string        `yaml:"leaderboard_key"`
	DataDir        string        `yaml:"data_dir"` // empty keeps the leaderboard in memory
	SkipGate       bool          `yaml:"skip_gate"`
	RevealDelay    time.Duration `yaml:"reveal_delay"`
	FadeDuration   time.Duration `yaml:"fade_duration"`
}

// TelemetryConfig enables per-frame CSV output.
type TelemetryConfig struct {
	Dir string `yaml:"dir"` // empty disables telemetry
}

// Load reads the embedded defaults and overlays the YAML file at path.
// Fields absent from the file keep their defaults. An empty path loads only
// the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	return cfg, nil
}

// YAML encodes the configuration.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteYAML writes the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// FogYAML encodes just the fog tuning, in the same shape as the fog
// section of a config file.
func FogYAML(cfg mist.FogConfig) ([]byte, error) {
	data, err := yaml.Marshal(struct {
		Fog mist.FogConfig `yaml:"fog"`
	}{cfg})
	if err != nil {
		return nil, fmt.Errorf("marshaling fog config: %w", err)
	}
	return data, nil
}

// Schedule returns the density schedule.
func (c *Config) Schedule() mist.DensitySchedule {
	return mist.DensitySchedule{Floor: c.Density.Floor}
}

// BackgroundColor parses Canvas.Background, falling back to slate.
func (c *Config) BackgroundColor() mist.Color {
	bg, err := mist.ParseColor(c.Canvas.Background)
	if err != nil || c.Canvas.Background == "" {
		return mist.Color{R: 0.17, G: 0.23, B: 0.29, A: 1}
	}
	return bg
}

// RendererOptions builds the fog renderer options. A bad palette is
// reported and replaced by the default tint; the options remain usable.
func (c *Config) RendererOptions(logger *slog.Logger, debug bool) (mist.RendererOptions, error) {
	fog := c.Fog.FogConfig
	palette, err := c.Fog.Palette.Resolve()
	if err != nil {
		palette = mist.DefaultPalette()
		err = fmt.Errorf("fog palette: %w", err)
	}
	return mist.RendererOptions{
		CanvasWidth:   c.Canvas.Width,
		CanvasHeight:  c.Canvas.Height,
		TrailScale:    c.Canvas.TrailScale,
		Backend:       mist.TrailBackend(c.Trail.Backend),
		Config:        &fog,
		Palette:       &palette,
		Smoothing:     c.Density.Smoothing,
		Thinning:      c.Trail.Thinning,
		DepositCap:    c.Trail.DepositCap,
		MaxFrameDelta: c.Trail.MaxFrameDelta,
		Logger:        logger,
		Debug:         debug,
	}, err
}
