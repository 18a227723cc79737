package renderer

import (
	_ "embed"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlegrid/camera"
	"github.com/pthm-cable/particlegrid/renderer/gfx"
)

//go:embed shaders/particle.vs
var particleVS string

//go:embed shaders/particle.fs
var particleFS string

// ShaderProgram is the instanced particle shader.
type ShaderProgram struct {
	shader rl.Shader

	timeLoc        int32
	cameraRightLoc int32
	cameraUpLoc    int32
	pointSizeLoc   int32
}

// NewParticleShader compiles the embedded particle shader pair.
func NewParticleShader(pointSize float32) (*ShaderProgram, error) {
	return NewShaderProgram(particleVS, particleFS, pointSize)
}

// NewShaderProgram compiles a vertex/fragment source pair. The vertex shader
// must declare the instanceTransform attribute and the camera uniforms.
func NewShaderProgram(vsCode, fsCode string, pointSize float32) (*ShaderProgram, error) {
	shader := rl.LoadShaderFromMemory(vsCode, fsCode)
	if !rl.IsShaderValid(shader) {
		return nil, fmt.Errorf("%w: particle shader failed to compile", gfx.ErrUnsupported)
	}

	// DrawMeshInstanced uploads per-instance matrices to the model-matrix attribute
	shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocationAttrib(shader, "instanceTransform"))
	shader.UpdateLocation(rl.ShaderLocMatrixMvp, rl.GetShaderLocation(shader, "mvp"))

	sp := &ShaderProgram{
		shader:         shader,
		timeLoc:        rl.GetShaderLocation(shader, "time"),
		cameraRightLoc: rl.GetShaderLocation(shader, "cameraRight"),
		cameraUpLoc:    rl.GetShaderLocation(shader, "cameraUp"),
		pointSizeLoc:   rl.GetShaderLocation(shader, "pointSize"),
	}
	rl.SetShaderValue(shader, sp.pointSizeLoc, []float32{pointSize}, rl.ShaderUniformFloat)
	return sp, nil
}

// SetTime sets the time uniform.
func (sp *ShaderProgram) SetTime(t float32) {
	rl.SetShaderValue(sp.shader, sp.timeLoc, []float32{t}, rl.ShaderUniformFloat)
}

// setCamera uploads the billboard axes.
func (sp *ShaderProgram) setCamera(cam *camera.Camera) {
	right := cam.Right()
	up := cam.CameraUp()
	rl.SetShaderValue(sp.shader, sp.cameraRightLoc, right[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(sp.shader, sp.cameraUpLoc, up[:], rl.ShaderUniformVec3)
}

// Unload releases the GPU program.
func (sp *ShaderProgram) Unload() {
	rl.UnloadShader(sp.shader)
}
