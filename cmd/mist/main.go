// Command mist runs the fog quiz.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/phanxgames/mist"
	"github.com/phanxgames/mist/app"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	debug := flag.Bool("debug", false, "Debug logging, per-frame fog timings and on-screen stats")
	logText := flag.Bool("log-text", false, "Log as text instead of JSON")
	telemetryDir := flag.String("telemetry-dir", "", "Write per-frame CSV telemetry to this directory")
	dataDir := flag.String("data-dir", "", "Persist the leaderboard as CSV in this directory (empty = memory)")
	scriptPath := flag.String("script", "", "JSON input script to replay; exits when done")
	screenshotDir := flag.String("screenshot-dir", "screenshots", "Directory for script screenshots")
	fullscreen := flag.Bool("fullscreen", false, "Start fullscreen")
	backend := flag.String("trail", "", "Trail backend override: gpu or cpu")
	writeConfig := flag.String("write-config", "", "Write the effective config to this path and exit")

	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, hopts)
	if *logText {
		handler = slog.NewTextHandler(os.Stderr, hopts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg, err := app.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *telemetryDir != "" {
		cfg.Telemetry.Dir = *telemetryDir
	}
	if *dataDir != "" {
		cfg.Quiz.DataDir = *dataDir
	}
	if *backend != "" {
		cfg.Trail.Backend = *backend
	}
	if *writeConfig != "" {
		if err := cfg.WriteYAML(*writeConfig); err != nil {
			slog.Error("failed to write config", "error", err)
			os.Exit(1)
		}
		slog.Info("config written", "path", *writeConfig)
		return
	}

	opts := app.Options{
		Config: cfg,
		Logger: logger,
		Debug:  *debug,
	}
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			slog.Error("failed to read script", "error", err)
			os.Exit(1)
		}
		runner, err := mist.LoadScript(data)
		if err != nil {
			slog.Error("failed to parse script", "error", err)
			os.Exit(1)
		}
		opts.Script = runner
		opts.ScreenshotDir = *screenshotDir
	}

	g, err := app.New(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	w, h := cfg.Canvas.Width/2, cfg.Canvas.Height/2
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Mist")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(*fullscreen)

	slog.Info("starting",
		"canvas_w", cfg.Canvas.Width,
		"canvas_h", cfg.Canvas.Height,
		"trail", cfg.Trail.Backend,
		"script", *scriptPath != "",
	)
	runErr := ebiten.RunGame(g)
	if err := g.Close(); err != nil {
		slog.Error("shutdown", "error", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		slog.Error("game exited", "error", runErr)
		os.Exit(1)
	}
	if fogErr := g.Renderer().Err(); fogErr != nil {
		slog.Warn("fog was disabled during the run", "error", fogErr)
	}
}
