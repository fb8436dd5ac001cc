package mist

import "time"

// passStats holds per-frame pass timings. Only logged when the renderer was
// created with Debug set.
type passStats struct {
	trailTime   time.Duration
	upscaleTime time.Duration
	fogTime     time.Duration
}

func (s passStats) total() time.Duration {
	return s.trailTime + s.upscaleTime + s.fogTime
}

// logStats writes the last frame's pass timings at Debug level. Timings
// measure command submission; the GPU runs the passes later.
func (r *Renderer) logStats() {
	if !r.debug {
		return
	}
	r.log.Debug("fog_frame",
		"frame", r.frame.Frame,
		"trail", r.stats.trailTime,
		"upscale", r.stats.upscaleTime,
		"fog", r.stats.fogTime,
		"total", r.stats.total(),
		"density", r.comp.Density(),
		"target", r.target,
		"engaged", r.pointer.Engaged,
	)
}
