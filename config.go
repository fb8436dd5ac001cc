package mist

import (
	"fmt"
	"strconv"

	css "github.com/mazznoer/csscolorparser"
)

// FogConfig holds the live-tunable fog parameters. Ranges in Params are
// advisory: the renderer accepts any finite value and degrades gracefully
// (fog_lo >= fog_hi collapses or inverts the contrast remap).
type FogConfig struct {
	// Speed is the drift rate of the noise field in time.
	Speed float64 `yaml:"speed"`
	// MaxAlpha is the ceiling on rendered opacity.
	MaxAlpha float64 `yaml:"max_alpha"`
	// FogScale zooms the noise; higher values give smaller clouds.
	FogScale float64 `yaml:"fog_scale"`
	// WarpStrength scales the domain-warp displacement.
	WarpStrength float64 `yaml:"warp_strength"`
	// FogLo and FogHi are the smoothstep contrast thresholds.
	FogLo float64 `yaml:"fog_lo"`
	FogHi float64 `yaml:"fog_hi"`
	// TouchRadius is the brush radius in aspect-corrected canvas units.
	TouchRadius float64 `yaml:"touch_radius"`
	// TouchDecay is the trail decay rate (1/τ seconds).
	TouchDecay float64 `yaml:"touch_decay"`
}

// DefaultFogConfig returns the tuned defaults.
func DefaultFogConfig() FogConfig {
	return FogConfig{
		Speed:        0.028,
		MaxAlpha:     0.70,
		FogScale:     1.0,
		WarpStrength: 1.8,
		FogLo:        0.22,
		FogHi:        0.72,
		TouchRadius:  0.14,
		TouchDecay:   1.4,
	}
}

// ParamKey names one FogConfig field.
type ParamKey string

const (
	ParamSpeed        ParamKey = "speed"
	ParamMaxAlpha     ParamKey = "max_alpha"
	ParamFogScale     ParamKey = "fog_scale"
	ParamWarpStrength ParamKey = "warp_strength"
	ParamFogLo        ParamKey = "fog_lo"
	ParamFogHi        ParamKey = "fog_hi"
	ParamTouchRadius  ParamKey = "touch_radius"
	ParamTouchDecay   ParamKey = "touch_decay"
)

// ParamDef describes how a parameter is presented for live adjustment.
type ParamDef struct {
	Key   ParamKey
	Label string
	Min   float64
	Max   float64
	Step  float64
	Hint  string
}

// Params lists every tunable in display order.
var Params = []ParamDef{
	{ParamSpeed, "Drift Speed", 0.002, 0.15, 0.001, "How fast the fog moves"},
	{ParamMaxAlpha, "Max Opacity", 0.0, 1.0, 0.01, "Peak fog density"},
	{ParamFogScale, "Fog Scale", 0.3, 4.0, 0.05, "Zoom, higher = smaller clouds"},
	{ParamWarpStrength, "Warp Strength", 0.0, 5.0, 0.1, "How organic/swirly vs linear"},
	{ParamFogLo, "Contrast Lo", 0.0, 0.59, 0.01, "Smoothstep low threshold"},
	{ParamFogHi, "Contrast Hi", 0.41, 1.0, 0.01, "Smoothstep high threshold"},
	{ParamTouchRadius, "Touch Radius", 0.02, 0.5, 0.01, "Clearing circle size"},
	{ParamTouchDecay, "Fog Return", 0.1, 8.0, 0.1, "How fast fog fills back in (1/τ)"},
}

// Param returns the definition for key.
func Param(key ParamKey) (ParamDef, bool) {
	for _, p := range Params {
		if p.Key == key {
			return p, true
		}
	}
	return ParamDef{}, false
}

// Format renders v with as many decimals as the step needs.
func (p ParamDef) Format(v float64) string {
	decimals := 1
	switch {
	case p.Step < 0.01:
		decimals = 3
	case p.Step < 0.1:
		decimals = 2
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func (c *FogConfig) field(key ParamKey) *float64 {
	switch key {
	case ParamSpeed:
		return &c.Speed
	case ParamMaxAlpha:
		return &c.MaxAlpha
	case ParamFogScale:
		return &c.FogScale
	case ParamWarpStrength:
		return &c.WarpStrength
	case ParamFogLo:
		return &c.FogLo
	case ParamFogHi:
		return &c.FogHi
	case ParamTouchRadius:
		return &c.TouchRadius
	case ParamTouchDecay:
		return &c.TouchDecay
	}
	return nil
}

// Get returns the value of key, or false for an unknown key.
func (c FogConfig) Get(key ParamKey) (float64, bool) {
	f := c.field(key)
	if f == nil {
		return 0, false
	}
	return *f, true
}

// Set assigns key. Non-finite values are rejected.
func (c *FogConfig) Set(key ParamKey, v float64) error {
	f := c.field(key)
	if f == nil {
		return fmt.Errorf("fog config: unknown parameter %q", key)
	}
	if !isFinite(v) {
		return fmt.Errorf("fog config: %s must be finite, got %v", key, v)
	}
	*f = v
	return nil
}

// Nudge moves key by steps increments of its step size, clamped to the
// advisory range. Used by slider-style controls.
func (c *FogConfig) Nudge(key ParamKey, steps int) {
	def, ok := Param(key)
	if !ok {
		return
	}
	f := c.field(key)
	*f = Clamp(*f+float64(steps)*def.Step, def.Min, def.Max)
}

// Reset restores the defaults.
func (c *FogConfig) Reset() {
	*c = DefaultFogConfig()
}

// Validate reports the first non-finite parameter.
func (c FogConfig) Validate() error {
	for _, p := range Params {
		v, _ := c.Get(p.Key)
		if !isFinite(v) {
			return fmt.Errorf("fog config: %s must be finite, got %v", p.Key, v)
		}
	}
	return nil
}

// Palette is the two-colour fog blend: Thin at fog=0, Dense at fog=1.
type Palette struct {
	Thin  Color
	Dense Color
}

// DefaultPalette is cool pale blue-gray to near-white.
func DefaultPalette() Palette {
	return Palette{
		Thin:  Color{0.78, 0.81, 0.87, 1},
		Dense: Color{0.93, 0.94, 0.97, 1},
	}
}

// At returns the blended colour for a remapped fog value.
func (p Palette) At(fog float64) Color {
	return p.Thin.Lerp(p.Dense, fog)
}

// PaletteSpec is the CSS-string form of a Palette used in config files.
type PaletteSpec struct {
	Thin  string `yaml:"thin"`
	Dense string `yaml:"dense"`
}

// Resolve parses both colours. Empty strings keep the default colour.
func (s PaletteSpec) Resolve() (Palette, error) {
	p := DefaultPalette()
	if s.Thin != "" {
		c, err := ParseColor(s.Thin)
		if err != nil {
			return p, fmt.Errorf("palette thin: %w", err)
		}
		p.Thin = c
	}
	if s.Dense != "" {
		c, err := ParseColor(s.Dense)
		if err != nil {
			return p, fmt.Errorf("palette dense: %w", err)
		}
		p.Dense = c
	}
	return p, nil
}

// ParseColor parses any CSS colour string ("#c7cfde", "rgb(...)", "white").
func ParseColor(s string) (Color, error) {
	c, err := css.Parse(s)
	if err != nil {
		return Color{}, err
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}
