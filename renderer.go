package mist

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrRendererDisabled is returned by Err once initialization has failed and
// the fog layer has gone inert.
var ErrRendererDisabled = errors.New("mist: fog renderer disabled")

// TrailBackend selects where the trail field is updated.
type TrailBackend string

const (
	// TrailGPU runs the decay and brush in a Kage shader over a ping-pong
	// pair of render textures.
	TrailGPU TrailBackend = "gpu"
	// TrailCPU runs TrailField on the CPU and uploads it every frame.
	TrailCPU TrailBackend = "cpu"
)

// DefaultTrailScale is the trail resolution relative to the canvas.
const DefaultTrailScale = 0.5

// RendererOptions configures a Renderer. Zero fields take defaults.
type RendererOptions struct {
	// CanvasWidth and CanvasHeight are the design canvas size the fog covers.
	CanvasWidth, CanvasHeight int
	// TrailScale is the trail grid size relative to the canvas, in (0, 1].
	TrailScale float64
	// Backend selects the trail implementation. Empty means TrailGPU.
	Backend TrailBackend
	// Config is the initial fog tuning. Zero value means DefaultFogConfig.
	Config *FogConfig
	// Palette is the fog tint. Zero value means DefaultPalette.
	Palette *Palette
	// InitialDensity is the starting smoothed density. Nil means 1 so the
	// landing screen opens fully fogged.
	InitialDensity *float64
	// Smoothing, Thinning, and DepositCap override the compositor and brush
	// constants.
	Smoothing  float64
	Thinning   float64
	DepositCap float64
	// MaxFrameDelta clamps the decay step.
	MaxFrameDelta time.Duration
	// Now is the clock source. Nil means time.Now.
	Now func() time.Time
	// Logger receives diagnostics. Nil means slog.Default().
	Logger *slog.Logger
	// Debug logs per-frame pass timings at Debug level.
	Debug bool
}

// Renderer is the fog layer: it owns the frame clock, the compositor's
// smoothed density, the trail backend, and the two shader passes. It is
// driven from ebiten's Update and Draw and is not safe for concurrent use.
type Renderer struct {
	canvasW, canvasH int
	trailW, trailH   int
	backend          TrailBackend

	cfg       FogConfig
	pendingCf *FogConfig
	target    float64
	comp      *Compositor
	clock     FrameClock
	frame     FrameTime
	depositCp float64
	pointer   PointerSample

	// Trail time accumulated across Updates not yet applied by a Draw.
	pendingDelta float64
	maxDelta     float64

	shaders   *shaderSet
	trail     trailBackend
	trailView *RenderTexture
	fogOp     ebiten.DrawRectShaderOptions
	fogUnis   map[string]any

	log      *slog.Logger
	debug    bool
	stats    passStats
	err      error
	disposed bool
}

// NewRenderer creates a fog renderer. GPU resources are created lazily on
// the first Draw.
func NewRenderer(opts RendererOptions) *Renderer {
	cw, ch := opts.CanvasWidth, opts.CanvasHeight
	if cw <= 0 || ch <= 0 {
		cw, ch = DefaultCanvasWidth, DefaultCanvasHeight
	}
	scale := opts.TrailScale
	if scale <= 0 || scale > 1 {
		scale = DefaultTrailScale
	}
	backend := opts.Backend
	if backend != TrailCPU {
		backend = TrailGPU
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := DefaultFogConfig()
	if opts.Config != nil {
		if err := opts.Config.Validate(); err != nil {
			logger.Warn("fog_config_rejected", "error", err)
		} else {
			cfg = *opts.Config
		}
	}

	initial := 1.0
	if opts.InitialDensity != nil {
		initial = *opts.InitialDensity
	}
	comp := NewCompositor(initial)
	if opts.Palette != nil {
		comp.Palette = *opts.Palette
	}
	if opts.Smoothing > 0 {
		comp.Smoothing = opts.Smoothing
	}
	if opts.Thinning > 0 {
		comp.Thinning = opts.Thinning
	}
	depositCap := opts.DepositCap
	if depositCap <= 0 {
		depositCap = DefaultDepositCap
	}
	maxDelta := opts.MaxFrameDelta
	if maxDelta <= 0 {
		maxDelta = DefaultMaxFrameDelta
	}

	return &Renderer{
		canvasW:   cw,
		canvasH:   ch,
		trailW:    max(int(float64(cw)*scale+0.5), 1),
		trailH:    max(int(float64(ch)*scale+0.5), 1),
		backend:   backend,
		cfg:       cfg,
		target:    comp.Density(),
		comp:      comp,
		clock:     FrameClock{Now: opts.Now, MaxDelta: maxDelta},
		depositCp: depositCap,
		pointer:   PointerSample{X: 0.5, Y: 0},
		maxDelta:  maxDelta.Seconds(),
		fogUnis:   make(map[string]any, 16),
		log:       logger,
		debug:     opts.Debug,
	}
}

// Backend returns the trail backend in use.
func (r *Renderer) Backend() TrailBackend { return r.backend }

// TrailSize returns the trail grid dimensions.
func (r *Renderer) TrailSize() (w, h int) { return r.trailW, r.trailH }

// SetTargetDensity sets the density the fog glides toward. Values are
// clamped to [0, 1]; non-finite values are ignored.
func (r *Renderer) SetTargetDensity(d float64) {
	if !isFinite(d) {
		return
	}
	r.target = clamp01(d)
}

// TargetDensity returns the current target density.
func (r *Renderer) TargetDensity() float64 { return r.target }

// Density returns the current smoothed density.
func (r *Renderer) Density() float64 { return r.comp.Density() }

// SetConfig replaces the fog tuning from the next frame on. Configs with
// non-finite values are rejected.
func (r *Renderer) SetConfig(cfg FogConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.pendingCf = &cfg
	return nil
}

// Config returns the active fog tuning, including a pending SetConfig.
func (r *Renderer) Config() FogConfig {
	if r.pendingCf != nil {
		return *r.pendingCf
	}
	return r.cfg
}

// SetPalette replaces the fog tint.
func (r *Renderer) SetPalette(p Palette) { r.comp.Palette = p }

// SetPointer records the latest pointer sample. Only the last sample before
// a frame is used.
func (r *Renderer) SetPointer(p PointerSample) { r.pointer = p }

// Frame returns the timing of the last Update.
func (r *Renderer) Frame() FrameTime { return r.frame }

// Disabled reports whether the fog layer has gone inert.
func (r *Renderer) Disabled() bool { return r.err != nil }

// Err returns the initialization failure, wrapped in ErrRendererDisabled,
// or nil.
func (r *Renderer) Err() error { return r.err }

// Update advances one frame: ticks the clock, applies a pending config,
// and moves the smoothed density toward the target. The trail step is
// deferred to Draw; time from Updates without a Draw accumulates.
func (r *Renderer) Update() {
	if r.disposed {
		return
	}
	if r.pendingCf != nil {
		r.cfg = *r.pendingCf
		r.pendingCf = nil
	}
	r.frame = r.clock.Tick()
	r.comp.Advance(r.target)
	r.pendingDelta = min(r.pendingDelta+r.frame.DeltaSeconds(), r.maxDelta)
}

// Draw runs the trail pass then draws the fog source-over onto dst, which
// must be the design canvas. It does nothing once disabled or disposed.
func (r *Renderer) Draw(dst *ebiten.Image) {
	if r.disposed || r.err != nil || dst == nil {
		return
	}
	if !r.ensureResources() {
		return
	}

	start := time.Now()
	r.trail.step(r.trailStep(), r.shaders)
	r.pendingDelta = 0
	r.stats.trailTime = time.Since(start)

	start = time.Now()
	r.trailView.DrawScaled(r.trail.image())
	r.stats.upscaleTime = time.Since(start)

	start = time.Now()
	r.drawFog(dst)
	r.stats.fogTime = time.Since(start)

	r.logStats()
}

func (r *Renderer) trailStep() TrailStep {
	return TrailStep{
		Delta:   r.pendingDelta,
		Decay:   r.cfg.TouchDecay,
		Radius:  r.cfg.TouchRadius,
		Cap:     r.depositCp,
		Pointer: r.pointer,
	}
}

func (r *Renderer) drawFog(dst *ebiten.Image) {
	p := r.comp.Palette
	r.fogUnis["Res"] = []float32{float32(r.canvasW), float32(r.canvasH)}
	r.fogUnis["Time"] = float32(r.frame.Seconds())
	r.fogUnis["Speed"] = float32(r.cfg.Speed)
	r.fogUnis["Density"] = float32(r.comp.Density())
	r.fogUnis["MaxAlpha"] = float32(r.cfg.MaxAlpha)
	r.fogUnis["FogScale"] = float32(r.cfg.FogScale)
	r.fogUnis["WarpStrength"] = float32(r.cfg.WarpStrength)
	r.fogUnis["FogLo"] = float32(r.cfg.FogLo)
	r.fogUnis["FogHi"] = float32(r.cfg.FogHi)
	r.fogUnis["Thinning"] = float32(r.comp.Thinning)
	r.fogUnis["ThinColor"] = []float32{float32(p.Thin.R), float32(p.Thin.G), float32(p.Thin.B)}
	r.fogUnis["DenseColor"] = []float32{float32(p.Dense.R), float32(p.Dense.G), float32(p.Dense.B)}

	r.fogOp.Images[0] = r.trailView.Image()
	r.fogOp.Uniforms = r.fogUnis
	r.fogOp.Blend = ebiten.BlendSourceOver
	dst.DrawRectShader(r.canvasW, r.canvasH, r.shaders.fog, &r.fogOp)
}

// ensureResources compiles shaders and allocates targets on first use. A
// failure is logged once and disables the renderer.
func (r *Renderer) ensureResources() bool {
	if r.shaders != nil {
		return true
	}
	sh, err := compileShaders()
	if err != nil {
		r.err = errors.Join(ErrRendererDisabled, err)
		r.log.Error("fog_renderer_disabled", "error", err)
		return false
	}
	r.shaders = sh
	switch r.backend {
	case TrailCPU:
		r.trail = newCPUTrail(r.trailW, r.trailH)
	default:
		r.trail = newGPUTrail(r.trailW, r.trailH)
	}
	r.trailView = NewRenderTexture(r.canvasW, r.canvasH)
	r.log.Debug("fog_renderer_ready",
		"backend", string(r.backend),
		"canvas_w", r.canvasW, "canvas_h", r.canvasH,
		"trail_w", r.trailW, "trail_h", r.trailH)
	return true
}

// ResetTrail clears the trail so the fog closes immediately. Decay time
// not yet applied by a Draw is dropped with it.
func (r *Renderer) ResetTrail() {
	r.pendingDelta = 0
	if r.trail != nil {
		r.trail.reset()
	}
	r.log.Debug("fog_trail_reset")
}

// Dispose stops the renderer and releases every image and shader. Safe to
// call more than once; Update and Draw become no-ops.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	if r.trail != nil {
		r.trail.dispose()
		r.trail = nil
	}
	if r.trailView != nil {
		r.trailView.Dispose()
		r.trailView = nil
	}
	r.shaders.deallocate()
	r.shaders = nil
	r.fogOp.Images[0] = nil
}

// Disposed reports whether Dispose has been called.
func (r *Renderer) Disposed() bool { return r.disposed }

// --- trail backends ---

type trailBackend interface {
	step(s TrailStep, sh *shaderSet)
	image() *ebiten.Image
	reset()
	dispose()
}

// gpuTrail is the two-slot render texture arena the trail shader ping-pongs
// between.
type gpuTrail struct {
	slots       [2]*RenderTexture
	read, write int
	op          ebiten.DrawRectShaderOptions
	uniforms    map[string]any
}

func newGPUTrail(w, h int) *gpuTrail {
	return &gpuTrail{
		slots:    [2]*RenderTexture{NewRenderTexture(w, h), NewRenderTexture(w, h)},
		read:     0,
		write:    1,
		uniforms: make(map[string]any, 7),
	}
}

func (g *gpuTrail) step(s TrailStep, sh *shaderSet) {
	src, dst := g.slots[g.read], g.slots[g.write]
	touching := float32(0)
	if s.Pointer.Engaged && s.Radius > 0 {
		touching = 1
	}
	g.uniforms["Res"] = []float32{float32(dst.Width()), float32(dst.Height())}
	g.uniforms["Touch"] = []float32{float32(clamp01(s.Pointer.X)), float32(clamp01(s.Pointer.Y))}
	g.uniforms["Touching"] = touching
	g.uniforms["Radius"] = float32(s.Radius)
	g.uniforms["Decay"] = float32(s.DecayFactor())
	g.uniforms["Floor"] = float32(s.quantizedFloor())
	g.uniforms["Cap"] = float32(s.depositCap())

	g.op.Images[0] = src.Image()
	g.op.Uniforms = g.uniforms
	g.op.Blend = ebiten.BlendCopy
	dst.Image().DrawRectShader(dst.Width(), dst.Height(), sh.trail, &g.op)

	g.read, g.write = g.write, g.read
}

func (g *gpuTrail) image() *ebiten.Image { return g.slots[g.read].Image() }

func (g *gpuTrail) reset() {
	for _, s := range g.slots {
		s.Clear()
	}
}

func (g *gpuTrail) dispose() {
	for _, s := range g.slots {
		s.Dispose()
	}
	g.op.Images[0] = nil
}

// cpuTrail runs TrailField and uploads the grid each frame.
type cpuTrail struct {
	field *TrailField
	rt    *RenderTexture
	pix   []byte
}

func newCPUTrail(w, h int) *cpuTrail {
	return &cpuTrail{
		field: NewTrailField(w, h),
		rt:    NewRenderTexture(w, h),
		pix:   make([]byte, w*h*4),
	}
}

func (c *cpuTrail) step(s TrailStep, _ *shaderSet) {
	c.field.Step(s)
	c.field.writeR8(c.pix)
	c.rt.Image().WritePixels(c.pix)
}

func (c *cpuTrail) image() *ebiten.Image { return c.rt.Image() }

func (c *cpuTrail) reset() {
	c.field.Reset()
	c.field.writeR8(c.pix)
	c.rt.Image().WritePixels(c.pix)
}

func (c *cpuTrail) dispose() { c.rt.Dispose() }
