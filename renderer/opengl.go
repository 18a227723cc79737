// Package renderer draws the particle grid with raylib.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlegrid/camera"
	"github.com/pthm-cable/particlegrid/renderer/gfx"
)

// glOne is GL_ONE, used for (ONE, ONE) additive blending.
const glOne = 1

// OpenGLRenderer issues instanced draws through raylib's GL backend.
// All methods must be called between rl.BeginDrawing and rl.EndDrawing.
type OpenGLRenderer struct {
	width, height int
	clearColor    rl.Color
	additive      bool
}

// NewOpenGLRenderer creates a renderer. It fails with gfx.ErrUnsupported when
// no window or GL context is available.
func NewOpenGLRenderer(additive bool) (*OpenGLRenderer, error) {
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("%w: window not initialized", gfx.ErrUnsupported)
	}
	return &OpenGLRenderer{
		width:      rl.GetScreenWidth(),
		height:     rl.GetScreenHeight(),
		clearColor: rl.Black,
		additive:   additive,
	}, nil
}

// SetClearColor sets the color used by Clear. Channels are in [0, 1].
func (r *OpenGLRenderer) SetClearColor(red, green, blue, alpha float32) {
	r.clearColor = rl.ColorFromNormalized(rl.Vector4{X: red, Y: green, Z: blue, W: alpha})
}

// SetSize records the drawing surface size.
func (r *OpenGLRenderer) SetSize(width, height int) {
	r.width, r.height = width, height
}

// SetViewport sets the GL viewport.
func (r *OpenGLRenderer) SetViewport(width, height int) {
	rl.Viewport(0, 0, int32(width), int32(height))
}

// Clear fills the framebuffer with the clear color.
func (r *OpenGLRenderer) Clear() {
	rl.ClearBackground(r.clearColor)
}

// Render draws each drawable with the camera's matrices. Only this package's
// ShaderProgram and Quad are accepted.
func (r *OpenGLRenderer) Render(cam *camera.Camera, shader gfx.Shader, drawables ...gfx.Drawable) error {
	sp, ok := shader.(*ShaderProgram)
	if !ok {
		return fmt.Errorf("%w: shader %T", gfx.ErrUnsupported, shader)
	}
	sp.setCamera(cam)

	// BeginMode3D saves the 2D projection; ours replaces raylib's matrices
	rl.BeginMode3D(rl.Camera3D{
		Position:   vec3(cam.Position[:]),
		Target:     vec3(cam.Target[:]),
		Up:         vec3(cam.Up[:]),
		Fovy:       cam.Fovy,
		Projection: rl.CameraPerspective,
	})
	defer rl.EndMode3D()
	rl.SetMatrixProjection(toMatrix(cam.Projection))
	rl.SetMatrixModelview(toMatrix(cam.View))

	if r.additive {
		rl.SetBlendFactors(glOne, glOne, rl.FuncAdd)
		rl.BeginBlendMode(rl.BlendCustom)
		defer rl.EndBlendMode()
	}

	for _, d := range drawables {
		q, ok := d.(*Quad)
		if !ok {
			return fmt.Errorf("%w: drawable %T", gfx.ErrUnsupported, d)
		}
		if err := q.draw(sp); err != nil {
			return err
		}
	}
	return nil
}

func vec3(v []float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}
