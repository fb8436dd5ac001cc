package app

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/mist"
)

// fogTuner is the part of the renderer the console edits.
type fogTuner interface {
	Config() mist.FogConfig
	SetConfig(mist.FogConfig) error
	Density() float64
	TargetDensity() float64
}

type consoleAction uint8

const (
	actToggle consoleAction = iota
	actUp
	actDown
	actDecrease
	actIncrease
	actReset
	actCopy
)

var consoleKeys = []struct {
	key ebiten.Key
	act consoleAction
	// letter keys also type text and are ignored while a field has focus.
	letter bool
}{
	{ebiten.KeyF1, actToggle, false},
	{ebiten.KeyArrowUp, actUp, false},
	{ebiten.KeyArrowDown, actDown, false},
	{ebiten.KeyArrowLeft, actDecrease, false},
	{ebiten.KeyArrowRight, actIncrease, false},
	{ebiten.KeyR, actReset, true},
	{ebiten.KeyC, actCopy, true},
}

// Console is the fog tuning overlay. F1 toggles it; arrows select and
// nudge parameters; R restores defaults; C copies the tuning as YAML.
type Console struct {
	Open bool

	fog      fogTuner
	sel      int
	copyText func(string) bool
	log      *slog.Logger
	status   string
	statusT  int
}

const consoleStatusFrames = 90

func newConsole(fog fogTuner, copyText func(string) bool, logger *slog.Logger) *Console {
	return &Console{fog: fog, copyText: copyText, log: logger}
}

// Update polls the keyboard. Only F1 is read while closed. typing is true
// while a text field on screen is taking input.
func (c *Console) Update(typing bool) {
	c.handleKeys(inpututil.IsKeyJustPressed, typing)
}

func (c *Console) handleKeys(justPressed func(ebiten.Key) bool, typing bool) {
	if c.statusT > 0 {
		c.statusT--
	}
	for _, k := range consoleKeys {
		if !justPressed(k.key) {
			continue
		}
		if !c.Open && k.act != actToggle {
			continue
		}
		if typing && k.letter {
			continue
		}
		c.do(k.act)
	}
}

func (c *Console) do(a consoleAction) {
	switch a {
	case actToggle:
		c.Open = !c.Open
	case actUp:
		c.sel = (c.sel + len(mist.Params) - 1) % len(mist.Params)
	case actDown:
		c.sel = (c.sel + 1) % len(mist.Params)
	case actDecrease, actIncrease:
		steps := 1
		if a == actDecrease {
			steps = -1
		}
		cfg := c.fog.Config()
		cfg.Nudge(mist.Params[c.sel].Key, steps)
		c.apply(cfg)
	case actReset:
		c.apply(mist.DefaultFogConfig())
		c.setStatus("defaults restored")
	case actCopy:
		data, err := FogYAML(c.fog.Config())
		if err != nil {
			c.log.Error("fog_config_copy_failed", "error", err)
			return
		}
		if c.copyText(string(data)) {
			c.setStatus("copied to clipboard")
		} else {
			c.setStatus("clipboard unavailable")
		}
	}
}

func (c *Console) apply(cfg mist.FogConfig) {
	if err := c.fog.SetConfig(cfg); err != nil {
		c.log.Warn("fog_config_rejected", "error", err)
	}
}

func (c *Console) setStatus(s string) {
	c.status = s
	c.statusT = consoleStatusFrames
}

// Selected returns the selected parameter.
func (c *Console) Selected() mist.ParamDef { return mist.Params[c.sel] }

// lines returns the rows the panel shows, with the selected row index.
func (c *Console) lines() ([]string, int) {
	cfg := c.fog.Config()
	rows := make([]string, 0, len(mist.Params)+3)
	rows = append(rows, fmt.Sprintf("density %.2f -> %.2f", c.fog.Density(), c.fog.TargetDensity()))
	for _, p := range mist.Params {
		v, _ := cfg.Get(p.Key)
		rows = append(rows, fmt.Sprintf("%-14s %s", p.Label, p.Format(v)))
	}
	rows = append(rows, mist.Params[c.sel].Hint)
	if c.statusT > 0 {
		rows = append(rows, c.status)
	}
	return rows, c.sel + 1
}

// Draw renders the panel along the top of the canvas.
func (c *Console) Draw(dst *ebiten.Image, f *Font) {
	if !c.Open {
		return
	}
	rows, sel := c.lines()
	lh := f.LineHeight()
	w := float64(dst.Bounds().Dx())
	h := float64(len(rows))*lh + 24
	vector.DrawFilledRect(dst, 0, 0, float32(w), float32(h), colPanel, false)
	for i, row := range rows {
		clr := colTextDim
		if i == sel {
			clr = colHighlight
		}
		f.Draw(dst, row, 20, 12+float64(i)*lh, text.AlignStart, clr)
	}
}
