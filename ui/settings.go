package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SettingsResult reports what the user changed this frame.
type SettingsResult struct {
	Targeting bool // checkbox state after this frame
	LoadScene bool // the Load Scene button was pressed
}

// SettingsPanel is the Click Target / Load Scene control panel.
type SettingsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewSettingsPanel creates a panel anchored at (x, y).
func NewSettingsPanel(x, y, width int32, visible bool) *SettingsPanel {
	return &SettingsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  visible,
	}
}

// Anchor moves the panel's top-left corner.
func (p *SettingsPanel) Anchor(x, y int32) {
	p.x, p.y = x, y
}

// Toggle switches panel visibility.
func (p *SettingsPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *SettingsPanel) IsVisible() bool {
	return p.visible
}

func (p *SettingsPanel) height() int32 {
	t := p.renderer.Theme
	return t.Padding*3 + t.LineHeight + 4 + t.ControlHeight*2 + t.Padding
}

// Contains reports whether a screen point lies on the visible panel.
func (p *SettingsPanel) Contains(px, py float32) bool {
	if !p.visible {
		return false
	}
	bounds := rl.Rectangle{
		X:      float32(p.x),
		Y:      float32(p.y),
		Width:  float32(p.width),
		Height: float32(p.height()),
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: px, Y: py}, bounds)
}

// Draw renders the panel and returns the control states. When hidden the
// input state is passed through unchanged.
func (p *SettingsPanel) Draw(targeting bool) SettingsResult {
	res := SettingsResult{Targeting: targeting}
	if !p.visible {
		return res
	}

	r := p.renderer
	t := r.Theme
	r.DrawPanel(p.x, p.y, p.width, p.height())

	x := p.x + t.Padding
	y := r.DrawSectionHeader(x, p.y+t.Padding, "Settings")

	box := float32(t.ControlHeight - 8)
	res.Targeting = gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y) + 4, Width: box, Height: box}, "Click Target", targeting)
	y += t.ControlHeight + t.Padding

	btn := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(p.width - 2*t.Padding), Height: float32(t.ControlHeight)}
	res.LoadScene = gui.Button(btn, "Load Scene")
	return res
}
