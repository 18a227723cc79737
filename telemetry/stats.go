package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/particlegrid/components"
)

// ParticleSource iterates particles in instance order.
type ParticleSource interface {
	Each(fn func(k int, p components.Particle))
}

// GridStats summarizes the particle grid at the end of a window.
type GridStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	Count int `csv:"count"`

	CentroidX float64 `csv:"centroid_x"`
	CentroidY float64 `csv:"centroid_y"`
	CentroidZ float64 `csv:"centroid_z"`

	// Standard deviation of positions per axis
	SpreadX float64 `csv:"spread_x"`
	SpreadY float64 `csv:"spread_y"`
	SpreadZ float64 `csv:"spread_z"`

	// Velocity magnitude distribution
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP95  float64 `csv:"speed_p95"`
	SpeedMax  float64 `csv:"speed_max"`

	Targeting bool `csv:"targeting"`
}

// ComputeGridStats samples positions and speeds from src.
func ComputeGridStats(src ParticleSource) GridStats {
	var xs, ys, zs, speeds []float64
	src.Each(func(_ int, p components.Particle) {
		xs = append(xs, float64(p.Position.X()))
		ys = append(ys, float64(p.Position.Y()))
		zs = append(zs, float64(p.Position.Z()))
		speeds = append(speeds, float64(p.Velocity.Len()))
	})

	s := GridStats{Count: len(xs)}
	if s.Count == 0 {
		return s
	}

	s.CentroidX, s.SpreadX = stat.PopMeanStdDev(xs, nil)
	s.CentroidY, s.SpreadY = stat.PopMeanStdDev(ys, nil)
	s.CentroidZ, s.SpreadZ = stat.PopMeanStdDev(zs, nil)

	sort.Float64s(speeds)
	s.SpeedMean = stat.Mean(speeds, nil)
	s.SpeedP50 = stat.Quantile(0.50, stat.Empirical, speeds, nil)
	s.SpeedP95 = stat.Quantile(0.95, stat.Empirical, speeds, nil)
	s.SpeedMax = floats.Max(speeds)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GridStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("count", s.Count),
		slog.Float64("centroid_x", s.CentroidX),
		slog.Float64("centroid_y", s.CentroidY),
		slog.Float64("centroid_z", s.CentroidZ),
		slog.Float64("spread_x", s.SpreadX),
		slog.Float64("spread_y", s.SpreadY),
		slog.Float64("spread_z", s.SpreadZ),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p95", s.SpeedP95),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Bool("targeting", s.Targeting),
	)
}

// LogStats logs the window stats using slog.
func (s GridStats) LogStats() {
	slog.Info("grid", "stats", s)
}
