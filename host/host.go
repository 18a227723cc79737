// Package host connects the raylib window to a game.Game: it polls input,
// forwards resizes and draws the UI overlays.
package host

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlegrid/config"
	"github.com/pthm-cable/particlegrid/game"
	"github.com/pthm-cable/particlegrid/ui"
)

// Host owns the per-frame input handling and overlays for one game.
type Host struct {
	game *game.Game

	gridSize   int
	orbitSpeed float32
	dollySpeed float32

	panel *ui.SettingsPanel
	stats *ui.StatsOverlay

	lastMouse rl.Vector2
}

// New creates a host for g using the loaded configuration.
func New(g *game.Game, cfg *config.Config) *Host {
	return &Host{
		game:       g,
		gridSize:   cfg.Grid.Size,
		orbitSpeed: float32(cfg.Camera.OrbitSpeed),
		dollySpeed: float32(cfg.Camera.DollySpeed),
		panel:      ui.NewSettingsPanel(int32(cfg.Screen.Width)-230, 10, 220, cfg.UI.ShowPanel),
		stats:      ui.NewStatsOverlay(10, 10, 200, cfg.UI.ShowStats),
		lastMouse:  rl.Vector2{X: -1, Y: -1},
	}
}

// Frame runs one host frame: input, Tick and overlays. It must be called
// between rl.BeginDrawing and rl.EndDrawing.
func (h *Host) Frame() error {
	if err := h.PollInput(); err != nil {
		return err
	}
	if err := h.game.Tick(); err != nil {
		return err
	}
	return h.DrawOverlays()
}

// PollInput forwards window and pointer events to the game.
func (h *Host) PollInput() error {
	g := h.game

	if rl.IsWindowResized() {
		w, hgt := rl.GetScreenWidth(), rl.GetScreenHeight()
		g.Resize(w, hgt)
		h.panel.Anchor(int32(w)-230, 10)
		slog.Info("window resized", "width", w, "height", hgt)
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !h.panel.Contains(mouse.X, mouse.Y) {
		g.Interaction().PointerDown()
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.Interaction().PointerUp()
	}
	if mouse != h.lastMouse {
		g.PointerMove(mouse.X, mouse.Y)
		h.lastMouse = mouse
	}

	return h.handleKeys()
}

func (h *Host) handleKeys() error {
	g := h.game
	cam := g.Camera()

	if rl.IsKeyPressed(rl.KeyT) {
		g.ToggleTargeting()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := g.LoadScene(h.gridSize); err != nil {
			return err
		}
	}
	if rl.IsKeyPressed(rl.KeyH) {
		cam.Reset()
		g.LogState()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		h.panel.Toggle()
		h.stats.Toggle()
	}

	var yaw, pitch float32
	if rl.IsKeyDown(rl.KeyLeft) {
		yaw -= h.orbitSpeed
	}
	if rl.IsKeyDown(rl.KeyRight) {
		yaw += h.orbitSpeed
	}
	if rl.IsKeyDown(rl.KeyUp) {
		pitch += h.orbitSpeed
	}
	if rl.IsKeyDown(rl.KeyDown) {
		pitch -= h.orbitSpeed
	}
	if yaw != 0 || pitch != 0 {
		cam.Orbit(yaw, pitch)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.Dolly(1 - wheel*h.dollySpeed)
	}
	return nil
}

// DrawOverlays draws the stats and settings panel and applies any panel
// changes. They take effect on the next Tick.
func (h *Host) DrawOverlays() error {
	g := h.game
	perf := g.Perf().Stats()
	h.stats.Draw(ui.StatsData{
		FPS:        rl.GetFPS(),
		AvgFrameUS: perf.AvgTickDuration.Microseconds(),
		P95FrameUS: perf.P95TickDuration.Microseconds(),
		Instances:  g.Grid().Count(),
		Frame:      g.Frame(),
		Targeting:  g.Interaction().Targeting(),
		Dragging:   g.Interaction().Dragging(),
	})
	h.stats.DrawHelp()

	res := h.panel.Draw(g.Interaction().Targeting())
	if res.Targeting != g.Interaction().Targeting() {
		g.ToggleTargeting()
	}
	if res.LoadScene {
		return g.LoadScene(h.gridSize)
	}
	return nil
}
