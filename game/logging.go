package game

import "log/slog"

// LogState logs a one-line summary of the current scene.
func (g *Game) LogState() {
	pos := g.camera.Position
	target := g.interaction.Target()
	slog.Info("state",
		"frame", g.tick,
		"time", g.time,
		"grid_size", g.grid.Size(),
		"instances", g.grid.Count(),
		"width", g.width,
		"height", g.height,
		"targeting", g.interaction.Targeting(),
		"dragging", g.interaction.Dragging(),
		"target", []float32{target[0], target[1], target[2]},
		"camera", []float32{pos[0], pos[1], pos[2]},
	)
}
