// Package gfx defines the rendering contract the frame loop drives, plus the
// GPU-independent instance marshaling shared by every backend.
package gfx

import (
	"errors"

	"github.com/pthm-cable/particlegrid/camera"
)

var (
	// ErrBufferSize is returned when instance buffers disagree with each other
	// or with the instance count. Buffers are never truncated.
	ErrBufferSize = errors.New("instance buffer size mismatch")

	// ErrUnsupported is returned when there is no usable GL context or the
	// particle shader fails to compile.
	ErrUnsupported = errors.New("rendering environment unsupported")
)

// Renderer clears the framebuffer and issues draw calls.
type Renderer interface {
	SetClearColor(r, g, b, a float32)
	SetSize(width, height int)
	SetViewport(width, height int)
	Clear()
	Render(cam *camera.Camera, shader Shader, drawables ...Drawable) error
}

// Shader is a compiled shader program driven by a scalar time uniform.
type Shader interface {
	SetTime(t float32)
}

// Drawable is instanced geometry fed with per-instance offsets and colors.
type Drawable interface {
	SetInstanceBuffers(offsets, colors []float32) error
	SetNumInstances(n int)
}
