package app

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultFadeDuration is how long a new screen takes to fade in.
const DefaultFadeDuration = 0.3

// Fade animates content opacity from 0 to 1 after a screen change. Call
// Update every frame with the elapsed seconds.
type Fade struct {
	Duration float32

	tween *gween.Tween
	alpha float64
}

// NewFade creates a fade that starts fully visible. A non-positive
// duration uses DefaultFadeDuration.
func NewFade(duration float32) *Fade {
	if duration <= 0 {
		duration = DefaultFadeDuration
	}
	return &Fade{Duration: duration, alpha: 1}
}

// Start restarts the fade from transparent.
func (f *Fade) Start() {
	f.tween = gween.New(0, 1, f.Duration, ease.OutQuad)
	f.alpha = 0
}

// Update advances the fade by dt seconds.
func (f *Fade) Update(dt float32) {
	if f.tween == nil {
		return
	}
	v, done := f.tween.Update(dt)
	f.alpha = float64(v)
	if done {
		f.alpha = 1
		f.tween = nil
	}
}

// Alpha returns the current content opacity in [0, 1].
func (f *Fade) Alpha() float64 { return f.alpha }

// Active reports whether a fade is running.
func (f *Fade) Active() bool { return f.tween != nil }

// Delay is a one-shot timer driven the same way as Fade. Progress runs
// linearly from 0 to 1 over the duration.
type Delay struct {
	tween    *gween.Tween
	progress float64
	done     bool
}

// NewDelay starts a timer of d seconds.
func NewDelay(d float32) *Delay {
	if d <= 0 {
		return &Delay{progress: 1, done: true}
	}
	return &Delay{tween: gween.New(0, 1, d, ease.Linear)}
}

// Update advances the timer by dt seconds.
func (d *Delay) Update(dt float32) {
	if d.done {
		return
	}
	v, done := d.tween.Update(dt)
	d.progress = float64(v)
	if done {
		d.progress = 1
		d.done = true
	}
}

// Done reports whether the timer has elapsed.
func (d *Delay) Done() bool { return d.done }

// Progress returns the elapsed fraction.
func (d *Delay) Progress() float64 { return d.progress }
