package app

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/mist"
	"github.com/phanxgames/mist/ecs"
	"github.com/phanxgames/mist/quiz"
	"github.com/yohamta/donburi"
	"golang.org/x/image/font/gofont/goregular"
)

// Options configures a Game. Zero fields take defaults.
type Options struct {
	Config *Config
	Logger *slog.Logger
	Debug  bool
	// Script drives injected input; the game exits when it finishes.
	Script *mist.ScriptRunner
	// ScreenshotDir receives script screenshots.
	ScreenshotDir string
	// Store persists the leaderboard. Nil picks a CSVStore under
	// Config.Quiz.DataDir, or memory when that is empty.
	Store quiz.Storage
	// Session holds the gate flag. Nil means a fresh in-memory session.
	Session quiz.SessionStore
	// Now is the fog clock source. Nil means time.Now.
	Now func() time.Time
	// DisableClipboard skips clipboard initialization.
	DisableClipboard bool
}

// Game is the ebiten.Game: the quiz screens under a fog overlay that
// thickens or thins with navigation and clears under the pointer.
type Game struct {
	cfg   *Config
	log   *slog.Logger
	debug bool

	vp    *mist.Viewport
	ptr   *mist.PointerTracker
	fog   *mist.Renderer
	world donburi.World
	bg    mist.Color

	nav       *quiz.Navigator
	session   quiz.Session
	question  *quiz.Question
	reveal    *Delay
	board     *quiz.Leaderboard
	entries   []quiz.Entry
	initials  []rune
	rank      int
	posted    bool
	qualifies bool
	gate      *quiz.Gate
	password  []rune
	refs      []string
	showRefs  bool

	fade    *Fade
	console *Console
	press   pressTracker
	fonts   fonts

	script    *mist.ScriptRunner
	shots     *mist.Screenshotter
	telemetry *mist.TelemetryWriter

	canvas  *mist.RenderTexture
	content *ebiten.Image
}

// New builds the game. It allocates no GPU resources; those are created
// on the first Draw.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = Load(""); err != nil {
			return nil, err
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ropts, err := cfg.RendererOptions(logger, opts.Debug)
	if err != nil {
		logger.Warn("fog_palette_rejected", "error", err)
	}
	ropts.Now = opts.Now
	fog := mist.NewRenderer(ropts)

	cw, ch := cfg.Canvas.Width, cfg.Canvas.Height
	if cw <= 0 || ch <= 0 {
		cw, ch = mist.DefaultCanvasWidth, mist.DefaultCanvasHeight
	}
	vp := mist.NewViewport(cw, ch)

	store := opts.Store
	if store == nil {
		if cfg.Quiz.DataDir != "" {
			cs, err := quiz.NewCSVStore(cfg.Quiz.DataDir)
			if err != nil {
				return nil, err
			}
			store = cs
		} else {
			store = quiz.NewMemoryStore()
		}
	}
	sess := opts.Session
	if sess == nil {
		sess = quiz.NewMemorySession()
	}

	fnts, err := loadFonts(goregular.TTF)
	if err != nil {
		return nil, err
	}

	telemetry, err := mist.NewTelemetryWriter(cfg.Telemetry.Dir)
	if err != nil {
		return nil, err
	}

	copyText := clipboardWriteText
	if opts.DisableClipboard {
		copyText = func(string) bool { return false }
	} else {
		initClipboard(logger)
	}

	g := &Game{
		cfg:       cfg,
		log:       logger,
		debug:     opts.Debug,
		vp:        vp,
		ptr:       mist.NewPointerTracker(vp),
		fog:       fog,
		world:     donburi.NewWorld(),
		bg:        cfg.BackgroundColor(),
		nav:       quiz.NewNavigator(nil),
		board:     quiz.NewLeaderboard(store, cfg.Quiz.LeaderboardKey, logger),
		gate:      quiz.NewGate(sess, cfg.Quiz.Secret, cfg.Quiz.UnlockKey),
		refs:      quiz.References(),
		fade:      NewFade(float32(cfg.Quiz.FadeDuration.Seconds())),
		console:   newConsole(fog, copyText, logger),
		fonts:     fnts,
		script:    opts.Script,
		telemetry: telemetry,
		rank:      -1,
	}
	if opts.ScreenshotDir != "" {
		g.shots = &mist.Screenshotter{Dir: opts.ScreenshotDir, Logger: logger}
	}
	if cfg.Quiz.SkipGate {
		g.gate.Unlock()
	}

	g.nav.SetSink(ecs.NewDonburiNavSink(g.world))
	ecs.FollowDensity(g.world, cfg.Schedule(), fog)
	ecs.PointerEventType.Subscribe(g.world, func(_ donburi.World, e mist.PointerEvent) {
		g.handlePointer(e)
	})
	g.nav.OnChange(g.onNav)
	return g, nil
}

// Renderer returns the fog renderer.
func (g *Game) Renderer() *mist.Renderer { return g.fog }

// Navigator returns the quiz navigator.
func (g *Game) Navigator() *quiz.Navigator { return g.nav }

// Update runs one tick.
func (g *Game) Update() error {
	if g.script != nil {
		if g.script.Done() && (g.shots == nil || g.shots.Pending() == 0) {
			return ebiten.Termination
		}
		g.script.Step(g.ptr, mist.ScriptHooks{
			Screenshot: g.queueScreenshot,
			Density:    g.fog.SetTargetDensity,
		})
	}

	g.ptr.Update()
	field, _, _ := g.textField()
	g.console.Update(field != nil)
	g.updateTyping()
	g.tick()
	return nil
}

// tick is the input-independent part of Update.
func (g *Game) tick() {
	ecs.PublishPointerEvents(g.world, g.ptr.Events())
	ecs.ProcessEvents(g.world)

	g.fog.SetPointer(g.ptr.Sample())
	g.fog.Update()

	dt := float32(g.fog.Frame().DeltaSeconds())
	g.fade.Update(dt)
	if g.reveal != nil {
		g.reveal.Update(dt)
	}

	if g.telemetry != nil {
		if err := g.telemetry.Write(mist.RecordFrame(g.fog)); err != nil {
			g.log.Error("telemetry_write_failed", "error", err)
			g.telemetry = nil
		}
	}
}

func (g *Game) queueScreenshot(label string) {
	if g.shots != nil {
		g.shots.Queue(label)
	}
}

// Draw composes the screens, the fog, and the console on the design
// canvas, then scales the canvas into the window.
func (g *Game) Draw(screen *ebiten.Image) {
	cw, ch := int(g.vp.CanvasW), int(g.vp.CanvasH)
	if g.canvas == nil {
		g.canvas = mist.NewRenderTexture(cw, ch)
		g.content = ebiten.NewImage(cw, ch)
	}
	canvas := g.canvas.Image()

	g.canvas.Fill(g.bg)
	g.content.Clear()
	g.drawScreen(g.content)
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(g.fade.Alpha()))
	canvas.DrawImage(g.content, op)

	g.fog.Draw(canvas)
	if g.showRefs {
		g.drawReferences(canvas)
	}
	g.console.Draw(canvas, g.fonts.small)

	screen.Clear()
	sop := &ebiten.DrawImageOptions{}
	sop.GeoM = g.vp.GeoM()
	sop.Filter = ebiten.FilterLinear
	screen.DrawImage(canvas, sop)

	if g.debug {
		ebitenutil.DebugPrint(screen, g.debugLine())
	}
	if g.shots != nil {
		for _, p := range g.shots.Flush(screen) {
			g.log.Info("screenshot_written", "path", p)
		}
	}
}

// Layout fits the canvas into the window and uses the window size as the
// screen size, so pointer coordinates arrive in window pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.vp.Fit(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Close releases GPU resources and flushes telemetry.
func (g *Game) Close() error {
	g.fog.Dispose()
	if g.canvas != nil {
		g.canvas.Dispose()
		g.content.Deallocate()
		g.canvas, g.content = nil, nil
	}
	var err error
	if g.telemetry != nil {
		if stats := g.telemetry.Stats(); stats.Count() > 0 {
			mean, std := stats.MeanStdDev()
			g.log.Info("frame_time_summary",
				"frames", stats.Count(), "mean_s", mean, "stddev_s", std, "fps", stats.FPS())
		}
		err = g.telemetry.Close()
	}
	return err
}
