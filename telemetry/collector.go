package telemetry

// Collector cuts the frame stream into fixed-length stats windows.
type Collector struct {
	windowDurationTicks int32

	windowStartTick int32
}

// NewCollector creates a collector for windows of windowTicks frames.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: int32(windowTicks)}
}

// ShouldFlush reports whether the window ending at currentTick is complete.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush samples src, stamps the window bounds and starts a new window.
func (c *Collector) Flush(currentTick int32, src ParticleSource, targeting bool) GridStats {
	s := ComputeGridStats(src)
	s.WindowStartTick = c.windowStartTick
	s.WindowEndTick = currentTick
	s.Targeting = targeting

	c.windowStartTick = currentTick
	return s
}

// WindowDurationTicks returns the number of frames per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
