package app

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/mist"
)

type stubTuner struct {
	cfg mist.FogConfig
}

func (s *stubTuner) Config() mist.FogConfig { return s.cfg }

func (s *stubTuner) SetConfig(c mist.FogConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.cfg = c
	return nil
}

func (s *stubTuner) Density() float64       { return 0.5 }
func (s *stubTuner) TargetDensity() float64 { return 0.35 }

func newTestConsole() (*Console, *stubTuner, *string) {
	tuner := &stubTuner{cfg: mist.DefaultFogConfig()}
	var copied string
	c := newConsole(tuner, func(s string) bool { copied = s; return true }, discardLogger)
	return c, tuner, &copied
}

func TestConsoleSelectWraps(t *testing.T) {
	c, _, _ := newTestConsole()
	c.do(actUp)
	if got := c.Selected().Key; got != mist.Params[len(mist.Params)-1].Key {
		t.Errorf("Up from first selected %q, want last", got)
	}
	c.do(actDown)
	if got := c.Selected().Key; got != mist.Params[0].Key {
		t.Errorf("Down from last selected %q, want first", got)
	}
}

func TestConsoleNudgeAndReset(t *testing.T) {
	c, tuner, _ := newTestConsole()
	c.do(actIncrease)
	want := mist.DefaultFogConfig().Speed + mist.Params[0].Step
	if d := tuner.cfg.Speed - want; d > 1e-12 || d < -1e-12 {
		t.Errorf("Speed = %v, want %v", tuner.cfg.Speed, want)
	}
	c.do(actDecrease)
	c.do(actDecrease)
	if tuner.cfg.Speed >= mist.DefaultFogConfig().Speed {
		t.Errorf("Speed = %v, want below default", tuner.cfg.Speed)
	}
	c.do(actReset)
	if tuner.cfg != mist.DefaultFogConfig() {
		t.Errorf("after reset %+v", tuner.cfg)
	}
}

func TestConsoleCopy(t *testing.T) {
	c, _, copied := newTestConsole()
	c.do(actCopy)
	if !strings.Contains(*copied, "max_alpha:") {
		t.Errorf("copied %q, want fog YAML", *copied)
	}
	rows, _ := c.lines()
	if rows[len(rows)-1] != "copied to clipboard" {
		t.Errorf("status row = %q", rows[len(rows)-1])
	}
}

func TestConsoleLines(t *testing.T) {
	c, _, _ := newTestConsole()
	c.do(actDown)
	rows, sel := c.lines()
	if len(rows) != len(mist.Params)+2 {
		t.Fatalf("rows = %d, want %d", len(rows), len(mist.Params)+2)
	}
	if sel != 2 {
		t.Errorf("selected row = %d, want 2", sel)
	}
	if !strings.HasPrefix(rows[0], "density 0.50 -> 0.35") {
		t.Errorf("density row = %q", rows[0])
	}
	if !strings.Contains(rows[sel], mist.Params[1].Label) {
		t.Errorf("selected row %q does not name %q", rows[sel], mist.Params[1].Label)
	}
}

func TestConsoleToggle(t *testing.T) {
	c, _, _ := newTestConsole()
	c.do(actToggle)
	if !c.Open {
		t.Error("toggle should open")
	}
	c.do(actToggle)
	if c.Open {
		t.Error("second toggle should close")
	}
}

func pressed(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, p := range keys {
			if p == k {
				return true
			}
		}
		return false
	}
}

func TestConsoleLetterKeysIgnoredWhileTyping(t *testing.T) {
	c, tuner, copied := newTestConsole()
	c.Open = true
	c.do(actIncrease)
	nudged := tuner.cfg

	c.handleKeys(pressed(ebiten.KeyR, ebiten.KeyC), true)
	if tuner.cfg != nudged {
		t.Error("R reset the config while a text field was active")
	}
	if *copied != "" {
		t.Error("C copied the config while a text field was active")
	}

	c.handleKeys(pressed(ebiten.KeyArrowRight), true)
	if tuner.cfg == nudged {
		t.Error("arrow keys should still nudge while typing")
	}

	c.handleKeys(pressed(ebiten.KeyR), false)
	if tuner.cfg != mist.DefaultFogConfig() {
		t.Error("R should reset when nothing takes text")
	}
}

func TestConsoleClosedReadsOnlyToggle(t *testing.T) {
	c, tuner, _ := newTestConsole()
	c.handleKeys(pressed(ebiten.KeyArrowRight, ebiten.KeyC), false)
	if tuner.cfg != mist.DefaultFogConfig() {
		t.Error("closed console changed the config")
	}
	c.handleKeys(pressed(ebiten.KeyF1), true)
	if !c.Open {
		t.Error("F1 should open the console even while typing")
	}
}
