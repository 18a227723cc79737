// Package game drives the particle grid one frame at a time.
package game

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particlegrid/camera"
	"github.com/pthm-cable/particlegrid/config"
	"github.com/pthm-cable/particlegrid/renderer/gfx"
	"github.com/pthm-cable/particlegrid/systems"
	"github.com/pthm-cable/particlegrid/telemetry"
)

// defaultStatsWindow is ten seconds at 60fps.
const defaultStatsWindow = 600

// Options configures a Game. UpScale is used as given, so zero disables
// the camera-up offset when unprojecting the pointer.
type Options struct {
	Damping    float32
	ClearColor [4]float32
	Targeting  bool
	UpScale    float32

	LogStats    bool
	StatsWindow int // frames per stats window
	PerfWindow  int
	OutputDir   string

	// Snapshot is written to OutputDir when set.
	Snapshot *config.Config
}

// OptionsFromConfig builds Options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Damping:     cfg.Derived.Damping32,
		ClearColor:  cfg.Derived.ClearColor32,
		Targeting:   cfg.Interaction.ClickTarget,
		UpScale:     float32(cfg.Interaction.UnprojectUpScale),
		StatsWindow: cfg.Derived.StatsWindowFr,
		PerfWindow:  cfg.Telemetry.PerfCollectorWindow,
		Snapshot:    cfg,
	}
}

// CameraFromConfig places a camera at the configured eye and target with the
// configured projection.
func CameraFromConfig(cfg *config.Config) *camera.Camera {
	c := cfg.Camera
	cam := camera.New(
		mgl32.Vec3{float32(c.Position[0]), float32(c.Position[1]), float32(c.Position[2])},
		mgl32.Vec3{float32(c.Target[0]), float32(c.Target[1]), float32(c.Target[2])},
	)
	cam.SetClipPlanes(float32(c.Fovy), float32(c.Near), float32(c.Far))
	cam.Resize(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	return cam
}

// Game holds the scene, the camera and the render collaborators.
type Game struct {
	grid        *systems.Grid
	camera      *camera.Camera
	interaction *Interaction

	renderer gfx.Renderer
	shader   gfx.Shader
	quad     gfx.Drawable

	// Shader time, advanced by one per frame
	time float32
	tick int32

	width, height int

	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.GridStats)
}

// New creates a game around the given collaborators. The scene is empty
// until LoadScene is called.
func New(cam *camera.Camera, r gfx.Renderer, shader gfx.Shader, quad gfx.Drawable, opts Options) (*Game, error) {
	statsWindow := opts.StatsWindow
	if statsWindow <= 0 {
		statsWindow = defaultStatsWindow
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if opts.Snapshot != nil {
		if err := om.WriteConfig(opts.Snapshot); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
	}

	g := &Game{
		grid:        systems.NewGrid(opts.Damping),
		camera:      cam,
		interaction: NewInteraction(opts.Targeting, opts.UpScale),
		renderer:    r,
		shader:      shader,
		quad:        quad,
		perf:        telemetry.NewPerfCollector(opts.PerfWindow),
		collector:   telemetry.NewCollector(statsWindow),
		output:      om,
		logStats:    opts.LogStats,
	}
	c := opts.ClearColor
	r.SetClearColor(c[0], c[1], c[2], c[3])
	return g, nil
}

// LoadScene rebuilds the grid and hands the fresh instance data to the quad.
func (g *Game) LoadScene(size int) error {
	if err := g.grid.Load(size); err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}
	if err := g.quad.SetInstanceBuffers(g.grid.Offsets(), g.grid.Colors()); err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}
	g.quad.SetNumInstances(g.grid.Count())

	slog.Info("scene loaded", "grid_size", size, "instances", g.grid.Count())
	return nil
}

// Resize propagates a new surface size to the renderer and the camera.
// Non-positive sizes are ignored.
func (g *Game) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.width, g.height = width, height
	g.renderer.SetSize(width, height)
	g.camera.Resize(float32(width), float32(height))
}

// PointerMove unprojects a pointer position in surface pixels.
func (g *Game) PointerMove(px, py float32) {
	g.interaction.PointerMove(px, py, float32(g.width), float32(g.height), g.camera)
}

// Tick advances and draws one frame. It returns the first error from any
// step; the caller is expected to stop the loop.
func (g *Game) Tick() error {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseSimulate)
	if err := g.grid.Update(g.time, g.interaction.Target(), g.interaction.Active()); err != nil {
		return fmt.Errorf("frame %d: updating grid: %w", g.tick, err)
	}

	g.perf.StartPhase(telemetry.PhaseCamera)
	g.camera.Update()
	g.shader.SetTime(g.time)
	g.time++

	g.perf.StartPhase(telemetry.PhaseRender)
	g.renderer.SetViewport(g.width, g.height)
	g.renderer.Clear()

	g.perf.StartPhase(telemetry.PhaseUpload)
	if err := g.quad.SetInstanceBuffers(g.grid.Offsets(), g.grid.Colors()); err != nil {
		return fmt.Errorf("frame %d: uploading instances: %w", g.tick, err)
	}
	g.quad.SetNumInstances(g.grid.Count())

	g.perf.StartPhase(telemetry.PhaseRender)
	if err := g.renderer.Render(g.camera, g.shader, g.quad); err != nil {
		return fmt.Errorf("frame %d: rendering: %w", g.tick, err)
	}

	g.perf.EndTick()
	g.perf.RecordFrame()
	g.tick++
	g.flushTelemetry()
	return nil
}

// Run calls Tick until it fails, maxTicks frames have run (0 = unlimited)
// or shouldStop returns true. shouldStop may be nil.
func (g *Game) Run(maxTicks int, shouldStop func() bool) error {
	for shouldStop == nil || !shouldStop() {
		if err := g.Tick(); err != nil {
			return err
		}
		if maxTicks > 0 && int(g.tick) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.tick)
			return nil
		}
	}
	return nil
}

// ToggleTargeting flips click targeting and logs the new state.
func (g *Game) ToggleTargeting() {
	g.interaction.Toggle()
	slog.Info("targeting toggled", "enabled", g.interaction.Targeting())
}

// SetStatsCallback registers a function called with each flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.GridStats)) {
	g.statsCallback = fn
}

// Unload closes output files and releases collaborators that hold GPU
// resources.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	for _, res := range []any{g.quad, g.shader} {
		if u, ok := res.(interface{ Unload() }); ok {
			u.Unload()
		}
	}
}

func (g *Game) Grid() *systems.Grid { return g.grid }
func (g *Game) Camera() *camera.Camera { return g.camera }
func (g *Game) Interaction() *Interaction { return g.interaction }
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }
func (g *Game) Time() float32 { return g.time }
func (g *Game) Frame() int32 { return g.tick }
func (g *Game) Size() (width, height int) { return g.width, g.height }
func (g *Game) Target() mgl32.Vec3 { return g.interaction.Target() }
