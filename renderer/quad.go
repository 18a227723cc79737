package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particlegrid/renderer/gfx"
)

// Quad is a unit plane drawn once per instance.
type Quad struct {
	gfx.InstanceBuffers

	mesh     rl.Mesh
	material rl.Material

	packed     []mgl32.Mat4
	transforms []rl.Matrix
}

// NewQuad uploads the shared quad mesh.
func NewQuad() *Quad {
	return &Quad{
		mesh:     rl.GenMeshPlane(1, 1, 1, 1),
		material: rl.LoadMaterialDefault(),
	}
}

// draw issues one instanced draw call with the given shader.
func (q *Quad) draw(sp *ShaderProgram) error {
	packed, err := q.Pack(q.packed)
	if err != nil {
		return err
	}
	q.packed = packed
	if len(packed) == 0 {
		return nil
	}

	if cap(q.transforms) < len(packed) {
		q.transforms = make([]rl.Matrix, len(packed))
	}
	q.transforms = q.transforms[:len(packed)]
	for i, m := range packed {
		q.transforms[i] = toMatrix(m)
	}

	q.material.Shader = sp.shader
	rl.DrawMeshInstanced(q.mesh, q.material, q.transforms, len(q.transforms))
	return nil
}

// Unload releases the mesh. The material shares the default texture and is
// not unloaded.
func (q *Quad) Unload() {
	rl.UnloadMesh(&q.mesh)
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout.
// raylib names elements by column-major index, so Mk maps to m[k].
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M4: m[4], M8: m[8], M12: m[12],
		M1: m[1], M5: m[5], M9: m[9], M13: m[13],
		M2: m[2], M6: m[6], M10: m[10], M14: m[14],
		M3: m[3], M7: m[7], M11: m[11], M15: m[15],
	}
}
