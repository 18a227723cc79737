package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// StatsData holds the values shown by the stats overlay.
type StatsData struct {
	FPS        int32
	AvgFrameUS int64
	P95FrameUS int64
	Instances  int
	Frame      int32
	Targeting  bool
	Dragging   bool
}

// StatsOverlay draws frame timing in the top-left corner.
type StatsOverlay struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewStatsOverlay creates an overlay anchored at (x, y).
func NewStatsOverlay(x, y, width int32, visible bool) *StatsOverlay {
	return &StatsOverlay{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  visible,
	}
}

// Toggle switches overlay visibility.
func (s *StatsOverlay) Toggle() bool {
	s.visible = !s.visible
	return s.visible
}

// Draw renders the overlay.
func (s *StatsOverlay) Draw(data StatsData) {
	if !s.visible {
		return
	}

	r := s.renderer
	t := r.Theme
	height := t.LineHeight*6 + t.Padding*2 + 4
	r.DrawPanel(s.x, s.y, s.width, height)

	x := s.x + t.Padding
	rl.DrawFPS(x, s.y+t.Padding)
	y := s.y + t.Padding + 24

	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%d", data.Frame))
	y = r.DrawLabelValue(x, y, "Avg tick", fmt.Sprintf("%d us", data.AvgFrameUS))
	y = r.DrawLabelValue(x, y, "P95 tick", fmt.Sprintf("%d us", data.P95FrameUS))
	y = r.DrawLabelValue(x, y, "Instances", fmt.Sprintf("%d", data.Instances))

	status := "off"
	switch {
	case data.Targeting && data.Dragging:
		status = "attracting"
	case data.Targeting:
		status = "armed"
	}
	r.DrawLabelValue(x, y, "Target", status)
}

// DrawHelp draws the key bindings along the bottom edge.
func (s *StatsOverlay) DrawHelp() {
	t := s.renderer.Theme
	text := "[T] target  [R] reload  [H] home  [Arrows] orbit  [Wheel] zoom  [Tab] panels"
	rl.DrawText(text, t.Padding, int32(rl.GetScreenHeight())-t.LineHeight-t.Padding, t.FontSize, t.LabelColor)
}
