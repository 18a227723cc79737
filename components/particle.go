// Package components defines the ECS components stored in the particle world.
package components

import "github.com/go-gl/mathgl/mgl32"

// Particle holds the kinematic state and color of one grid particle.
// Acceleration is never touched by Update; Velocity may be overwritten
// wholesale by the attraction force.
type Particle struct {
	Position     mgl32.Vec3
	Velocity     mgl32.Vec3
	Acceleration mgl32.Vec3
	Color        mgl32.Vec3 // RGB in [0, 1] until normalized by attraction
}

// NewParticle creates a particle at rest at the given position.
func NewParticle(pos mgl32.Vec3) Particle {
	return Particle{Position: pos}
}

// Update advances the particle one step with semi-implicit Euler:
// position first, then velocity. Nothing is clamped.
func (p *Particle) Update() {
	p.Position = p.Position.Add(p.Velocity)
	p.Velocity = p.Velocity.Add(p.Acceleration)
}

// AttractTo overwrites the velocity so the particle covers 1/damping of the
// remaining distance to target on the next step.
func (p *Particle) AttractTo(target mgl32.Vec3, damping float32) {
	d := target.Sub(p.Position)
	p.Velocity = mgl32.Vec3{d[0] / damping, d[1] / damping, d[2] / damping}
}

// NormalizeColor scales the color to unit length in place.
// A zero color is left unchanged.
func (p *Particle) NormalizeColor() {
	l := p.Color.Len()
	if l == 0 {
		return
	}
	p.Color = p.Color.Mul(1 / l)
}
