package gfx

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particlegrid/camera"
)

// NullRenderer satisfies Renderer without a GPU. It validates and packs
// drawables exactly like a real backend so headless runs catch buffer errors.
type NullRenderer struct {
	Width, Height int
	ClearColor    [4]float32
	Frames        int // Render calls that succeeded
	Instances     int // Instances submitted by the last Render

	scratch []mgl32.Mat4
}

// NewNullRenderer creates a headless renderer.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{}
}

// SetClearColor records the clear color.
func (r *NullRenderer) SetClearColor(red, green, blue, alpha float32) {
	r.ClearColor = [4]float32{red, green, blue, alpha}
}

// SetSize records the surface size.
func (r *NullRenderer) SetSize(width, height int) {
	r.Width, r.Height = width, height
}

// SetViewport is a no-op.
func (r *NullRenderer) SetViewport(width, height int) {}

// Clear is a no-op.
func (r *NullRenderer) Clear() {}

// Render packs each drawable's instances and discards them.
func (r *NullRenderer) Render(cam *camera.Camera, shader Shader, drawables ...Drawable) error {
	r.Instances = 0
	for _, d := range drawables {
		q, ok := d.(*NullQuad)
		if !ok {
			continue
		}
		packed, err := q.Pack(r.scratch)
		if err != nil {
			return err
		}
		r.scratch = packed
		r.Instances += len(packed)
	}
	r.Frames++
	return nil
}

// NullShader records the last time uniform.
type NullShader struct {
	Time float32
}

// SetTime records t.
func (s *NullShader) SetTime(t float32) {
	s.Time = t
}

// NullQuad is a GPU-less drawable.
type NullQuad struct {
	InstanceBuffers
}
