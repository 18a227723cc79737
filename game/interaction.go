package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particlegrid/camera"
)

// Interaction tracks pointer state and the world-space attraction target.
type Interaction struct {
	dragActive       bool
	targetingEnabled bool
	target           mgl32.Vec3
	upScale          float32
}

// NewInteraction creates an idle controller.
func NewInteraction(targeting bool, upScale float32) *Interaction {
	return &Interaction{
		targetingEnabled: targeting,
		upScale:          upScale,
	}
}

// PointerDown starts a drag.
func (in *Interaction) PointerDown() {
	in.dragActive = true
}

// PointerUp ends a drag.
func (in *Interaction) PointerUp() {
	in.dragActive = false
}

// PointerMove maps the pointer at (px, py) in a width x height surface to a
// world-space target and stores it. A degenerate surface is ignored.
//
// The point is built as ndc - eye + up*scale and taken through the inverse
// view matrix. This does not involve the projection, so it is not a true
// ray cast; the target sits near the camera and tracks the pointer.
func (in *Interaction) PointerMove(px, py, width, height float32, cam *camera.Camera) {
	if width <= 0 || height <= 0 {
		return
	}
	ndc := mgl32.Vec3{
		2*px/width - 1,
		-(2*py/height - 1),
		0,
	}
	p := ndc.Sub(cam.Position).Add(cam.Up.Mul(in.upScale))
	in.target = cam.InverseView().Mul4x1(p.Vec4(1)).Vec3()
}

// Active reports whether particles should be attracted this frame.
func (in *Interaction) Active() bool {
	return in.dragActive && in.targetingEnabled
}

// Dragging reports whether the pointer is held down.
func (in *Interaction) Dragging() bool {
	return in.dragActive
}

// Targeting reports whether click targeting is enabled.
func (in *Interaction) Targeting() bool {
	return in.targetingEnabled
}

// Toggle flips click targeting.
func (in *Interaction) Toggle() {
	in.targetingEnabled = !in.targetingEnabled
}

// SetTargeting enables or disables click targeting.
func (in *Interaction) SetTargeting(enabled bool) {
	in.targetingEnabled = enabled
}

// Target returns the last unprojected pointer position.
func (in *Interaction) Target() mgl32.Vec3 {
	return in.target
}
