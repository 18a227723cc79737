package gfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Floats per instance.
const (
	OffsetStride = 3
	ColorStride  = 4
)

// InstanceBuffers holds the per-instance data of a drawable between the
// simulation and the draw call. The slices are borrowed from the caller and
// only read during Pack.
type InstanceBuffers struct {
	offsets []float32
	colors  []float32
	count   int
}

// SetInstanceBuffers stores new offset and color buffers.
// len(offsets) must be a multiple of 3 and len(colors) must hold 4 floats for
// every offset triple.
func (b *InstanceBuffers) SetInstanceBuffers(offsets, colors []float32) error {
	if len(offsets)%OffsetStride != 0 {
		return fmt.Errorf("%w: %d offset floats is not a multiple of %d", ErrBufferSize, len(offsets), OffsetStride)
	}
	if n := len(offsets) / OffsetStride; len(colors) != n*ColorStride {
		return fmt.Errorf("%w: %d offsets need %d color floats, got %d", ErrBufferSize, n, n*ColorStride, len(colors))
	}
	b.offsets = offsets
	b.colors = colors
	return nil
}

// SetNumInstances sets how many instances are drawn.
func (b *InstanceBuffers) SetNumInstances(n int) {
	b.count = n
}

// NumInstances returns the instance count.
func (b *InstanceBuffers) NumInstances() int {
	return b.count
}

// Validate checks that the buffers hold exactly NumInstances instances.
func (b *InstanceBuffers) Validate() error {
	if b.count < 0 {
		return fmt.Errorf("%w: negative instance count %d", ErrBufferSize, b.count)
	}
	if len(b.offsets) != b.count*OffsetStride {
		return fmt.Errorf("%w: %d instances but %d offset floats", ErrBufferSize, b.count, len(b.offsets))
	}
	if len(b.colors) != b.count*ColorStride {
		return fmt.Errorf("%w: %d instances but %d color floats", ErrBufferSize, b.count, len(b.colors))
	}
	return nil
}

// Pack interleaves offsets and colors into one column-major matrix per
// instance, reusing dst when it has capacity:
//
//	column 3 xyz = offset       (m[12], m[13], m[14])
//	column 0-3 w = color rgba   (m[3], m[7], m[11], m[15])
//
// The remaining elements form an identity basis. The particle vertex shader
// reads the attribute back with the same layout.
func (b *InstanceBuffers) Pack(dst []mgl32.Mat4) ([]mgl32.Mat4, error) {
	if err := b.Validate(); err != nil {
		return dst, err
	}

	if cap(dst) < b.count {
		dst = make([]mgl32.Mat4, b.count)
	}
	dst = dst[:b.count]

	for k := range dst {
		o := b.offsets[k*OffsetStride : k*OffsetStride+OffsetStride]
		c := b.colors[k*ColorStride : k*ColorStride+ColorStride]
		dst[k] = mgl32.Mat4{
			1, 0, 0, c[0],
			0, 1, 0, c[1],
			0, 0, 1, c[2],
			o[0], o[1], o[2], c[3],
		}
	}
	return dst, nil
}

// UnpackInstance reads an instance's offset and color back out of a packed matrix.
func UnpackInstance(m mgl32.Mat4) (offset mgl32.Vec3, color mgl32.Vec4) {
	offset = mgl32.Vec3{m[12], m[13], m[14]}
	color = mgl32.Vec4{m[3], m[7], m[11], m[15]}
	return offset, color
}
