package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlegrid/config"
	"github.com/pthm-cable/particlegrid/game"
	"github.com/pthm-cable/particlegrid/host"
	"github.com/pthm-cable/particlegrid/renderer"
	"github.com/pthm-cable/particlegrid/renderer/gfx"
	"github.com/pthm-cable/particlegrid/ui"
)

func init() {
	// raylib must stay on the thread that created the window
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N frames (0 = unlimited)")
	gridSize := flag.Int("grid", 0, "Particles per grid side (0 = use config)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *gridSize > 0 {
		cfg.Grid.Size = *gridSize
	}

	opts := game.OptionsFromConfig(cfg)
	opts.LogStats = *logStats
	opts.OutputDir = *outputDir

	var err error
	if *headless {
		err = runHeadless(cfg, opts, *maxTicks)
	} else {
		err = runWindow(cfg, opts, *maxTicks)
	}
	if err != nil {
		slog.Error("stopped", "error", err)
		os.Exit(1)
	}
}

// runHeadless drives the frame loop against the null renderer.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) error {
	g, err := game.New(game.CameraFromConfig(cfg), gfx.NewNullRenderer(), &gfx.NullShader{}, &gfx.NullQuad{}, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	g.Resize(cfg.Screen.Width, cfg.Screen.Height)
	if err := g.LoadScene(cfg.Grid.Size); err != nil {
		return err
	}

	slog.Info("starting headless run",
		"grid_size", cfg.Grid.Size,
		"max_ticks", maxTicks,
		"output_dir", opts.OutputDir,
	)
	err = g.Run(maxTicks, nil)
	g.LogState()
	return err
}

// runWindow opens the window and runs the frame loop until it is closed.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	r, err := renderer.NewOpenGLRenderer(cfg.Render.AdditiveBlend)
	if err != nil {
		return notifyUnsupported(err)
	}
	shader, err := renderer.NewParticleShader(float32(cfg.Render.PointSize))
	if err != nil {
		return notifyUnsupported(err)
	}

	g, err := game.New(game.CameraFromConfig(cfg), r, shader, renderer.NewQuad(), opts)
	if err != nil {
		shader.Unload()
		return err
	}
	defer g.Unload()

	g.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	if err := g.LoadScene(cfg.Grid.Size); err != nil {
		return err
	}

	h := host.New(g, cfg)
	slog.Info("starting window",
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
		"grid_size", cfg.Grid.Size,
		"additive_blend", cfg.Render.AdditiveBlend,
	)

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		err := h.Frame()
		rl.EndDrawing()
		if err != nil {
			return err
		}

		if maxTicks > 0 && int(g.Frame()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Frame())
			break
		}
	}
	g.LogState()
	return nil
}

// notifyUnsupported shows a blocking notice when err reports an unsupported
// graphics environment, then returns err unchanged.
func notifyUnsupported(err error) error {
	if errors.Is(err, gfx.ErrUnsupported) {
		ui.ShowNotice("Unsupported graphics environment", err.Error())
	}
	return err
}
