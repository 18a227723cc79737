// Package systems holds the particle grid state and its per-frame update.
package systems

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/particlegrid/components"
)

// Floats per instance in the GPU buffers.
const (
	OffsetStride = 3 // x, y, z
	ColorStride  = 4 // r, g, b, a
)

// DefaultDamping is the attraction divisor used when none is configured.
const DefaultDamping = 50.0

var (
	// ErrNotLoaded is returned when the grid is updated before Load.
	ErrNotLoaded = errors.New("particle grid not loaded")
	// ErrInvalidGridSize is returned by Load for non-positive sizes.
	ErrInvalidGridSize = errors.New("grid size must be positive")
)

// Grid owns the particle collection and the per-instance buffers handed to the
// renderer. Particles live as entities in an ECS world that is replaced on
// every Load.
//
// Instance k is the k-th particle created by Load. offsets[3k:3k+3] and
// colors[4k:4k+4] always describe that same particle; both are written in one
// pass so the GPU instance index ties them together.
type Grid struct {
	world    *ecs.World
	mapper   *ecs.Map1[components.Particle]
	entities []ecs.Entity // instance order

	size    int
	damping float32

	offsets []float32
	colors  []float32
}

// NewGrid creates an empty grid. Load must be called before Update.
func NewGrid(damping float32) *Grid {
	if damping == 0 {
		damping = DefaultDamping
	}
	return &Grid{damping: damping}
}

// Load rebuilds the grid with size*size particles. Particle (i, j) sits at
// (i, j, 0) with color (i/size, j/size, 1). Any previous particles are dropped.
func (g *Grid) Load(size int) error {
	if size <= 0 {
		return ErrInvalidGridSize
	}

	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Particle](world)

	count := size * size
	entities := make([]ecs.Entity, 0, count)
	n := float32(size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			p := components.NewParticle(mgl32.Vec3{float32(i), float32(j), 0})
			p.Color = mgl32.Vec3{float32(i) / n, float32(j) / n, 1.0}
			entities = append(entities, mapper.NewEntity(&p))
		}
	}

	g.world = world
	g.mapper = mapper
	g.entities = entities
	g.size = size

	// Backing storage is reused across frames and only reallocated when the
	// particle count changes.
	if cap(g.offsets) < count*OffsetStride {
		g.offsets = make([]float32, count*OffsetStride)
		g.colors = make([]float32, count*ColorStride)
	}
	g.offsets = g.offsets[:count*OffsetStride]
	g.colors = g.colors[:count*ColorStride]

	g.serialize()
	return nil
}

// Update advances every particle one step. When active, each particle's
// velocity is replaced by the attraction toward target and its color is
// normalized before integrating. Buffers are rewritten afterwards.
func (g *Grid) Update(time float32, target mgl32.Vec3, active bool) error {
	if g.world == nil {
		return ErrNotLoaded
	}

	for k, e := range g.entities {
		p := g.mapper.Get(e)
		if active {
			p.AttractTo(target, g.damping)
			p.NormalizeColor()
		}
		p.Update()
		g.write(k, p)
	}
	return nil
}

// serialize rewrites both buffers from the current particle state.
func (g *Grid) serialize() {
	for k, e := range g.entities {
		g.write(k, g.mapper.Get(e))
	}
}

// write stores instance k's offset and color.
func (g *Grid) write(k int, p *components.Particle) {
	o := g.offsets[k*OffsetStride : k*OffsetStride+OffsetStride]
	o[0], o[1], o[2] = p.Position[0], p.Position[1], p.Position[2]

	c := g.colors[k*ColorStride : k*ColorStride+ColorStride]
	c[0], c[1], c[2], c[3] = p.Color[0], p.Color[1], p.Color[2], 1.0
}

// Loaded reports whether Load has built a particle collection.
func (g *Grid) Loaded() bool {
	return g.world != nil
}

// Size returns the number of particles per grid side.
func (g *Grid) Size() int {
	return g.size
}

// Count returns the number of particle instances.
func (g *Grid) Count() int {
	return len(g.entities)
}

// Damping returns the attraction divisor.
func (g *Grid) Damping() float32 {
	return g.damping
}

// Offsets returns the per-instance position buffer (3 floats per instance).
// The slice is overwritten by the next Update; callers must not retain it.
func (g *Grid) Offsets() []float32 {
	return g.offsets
}

// Colors returns the per-instance RGBA buffer (4 floats per instance).
// The slice is overwritten by the next Update; callers must not retain it.
func (g *Grid) Colors() []float32 {
	return g.colors
}

// Particle returns a copy of instance k.
func (g *Grid) Particle(k int) components.Particle {
	return *g.mapper.Get(g.entities[k])
}

// Each calls fn with a copy of every particle in instance order.
func (g *Grid) Each(fn func(k int, p components.Particle)) {
	for k, e := range g.entities {
		fn(k, *g.mapper.Get(e))
	}
}
