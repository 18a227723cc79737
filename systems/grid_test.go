package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particlegrid/components"
)

func loadGrid(t *testing.T, n int) *Grid {
	t.Helper()
	g := NewGrid(DefaultDamping)
	if err := g.Load(n); err != nil {
		t.Fatalf("loading grid of size %d: %v", n, err)
	}
	return g
}

func TestGridLoadCountsAndBuffers(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100} {
		g := loadGrid(t, n)

		if g.Count() != n*n {
			t.Errorf("n=%d: expected %d particles, got %d", n, n*n, g.Count())
		}
		if len(g.Offsets()) != 3*n*n {
			t.Errorf("n=%d: expected offsets length %d, got %d", n, 3*n*n, len(g.Offsets()))
		}
		if len(g.Colors()) != 4*n*n {
			t.Errorf("n=%d: expected colors length %d, got %d", n, 4*n*n, len(g.Colors()))
		}
	}
}

func TestGridLoadColorsMatchCoordinates(t *testing.T) {
	const n = 10
	g := loadGrid(t, n)

	g.Each(func(k int, p components.Particle) {
		i, j := k/n, k%n
		wantPos := mgl32.Vec3{float32(i), float32(j), 0}
		wantCol := mgl32.Vec3{float32(i) / n, float32(j) / n, 1}
		if p.Position != wantPos {
			t.Errorf("instance %d: expected position %v, got %v", k, wantPos, p.Position)
		}
		if p.Color != wantCol {
			t.Errorf("instance %d: expected color %v, got %v", k, wantCol, p.Color)
		}
		if p.Velocity != (mgl32.Vec3{}) || p.Acceleration != (mgl32.Vec3{}) {
			t.Errorf("instance %d: expected particle at rest", k)
		}
	})
}

func TestGridEndToEndTwoByTwo(t *testing.T) {
	g := loadGrid(t, 2)

	wantPos := []mgl32.Vec3{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 0}}
	wantCol := []mgl32.Vec3{{0, 0, 1}, {0, 0.5, 1}, {0.5, 0, 1}, {0.5, 0.5, 1}}

	if err := g.Update(0, mgl32.Vec3{}, false); err != nil {
		t.Fatalf("update: %v", err)
	}

	for k := range wantPos {
		p := g.Particle(k)
		if p.Position != wantPos[k] {
			t.Errorf("instance %d: expected position %v, got %v", k, wantPos[k], p.Position)
		}
		if p.Color != wantCol[k] {
			t.Errorf("instance %d: expected color %v, got %v", k, wantCol[k], p.Color)
		}
	}

	wantOffsets := []float32{0, 0, 0, 0, 1, 0, 1, 0, 0, 1, 1, 0}
	for i, v := range wantOffsets {
		if g.Offsets()[i] != v {
			t.Errorf("offsets[%d]: expected %f, got %f", i, v, g.Offsets()[i])
		}
	}
	wantColors := []float32{0, 0, 1, 1, 0, 0.5, 1, 1, 0.5, 0, 1, 1, 0.5, 0.5, 1, 1}
	for i, v := range wantColors {
		if g.Colors()[i] != v {
			t.Errorf("colors[%d]: expected %f, got %f", i, v, g.Colors()[i])
		}
	}
}

func TestGridIdleUpdatesKeepPositions(t *testing.T) {
	g := loadGrid(t, 5)
	before := append([]float32(nil), g.Offsets()...)

	for i := 0; i < 50; i++ {
		if err := g.Update(float32(i), mgl32.Vec3{100, 100, 100}, false); err != nil {
			t.Fatal(err)
		}
	}

	for i, v := range g.Offsets() {
		if v != before[i] {
			t.Fatalf("offsets[%d] moved without interaction: %f -> %f", i, before[i], v)
		}
	}
}

func TestGridAttractionVelocity(t *testing.T) {
	g := loadGrid(t, 4)
	target := mgl32.Vec3{10, -3, 2}

	before := make([]components.Particle, g.Count())
	g.Each(func(k int, p components.Particle) { before[k] = p })

	if err := g.Update(0, target, true); err != nil {
		t.Fatal(err)
	}

	for k := range before {
		p := g.Particle(k)
		d := target.Sub(before[k].Position)
		want := mgl32.Vec3{d[0] / 50, d[1] / 50, d[2] / 50}.Add(before[k].Acceleration)
		if !vecNear(p.Velocity, want, 1e-6) {
			t.Errorf("instance %d: expected velocity %v, got %v", k, want, p.Velocity)
		}
		// Semi-implicit: the position moved by the attraction velocity
		wantPos := before[k].Position.Add(mgl32.Vec3{d[0] / 50, d[1] / 50, d[2] / 50})
		if !vecNear(p.Position, wantPos, 1e-5) {
			t.Errorf("instance %d: expected position %v, got %v", k, wantPos, p.Position)
		}
	}
}

func TestGridAttractionNormalizesColor(t *testing.T) {
	g := loadGrid(t, 3)
	if err := g.Update(0, mgl32.Vec3{1, 1, 1}, true); err != nil {
		t.Fatal(err)
	}

	g.Each(func(k int, p components.Particle) {
		if l := p.Color.Len(); math.Abs(float64(l)-1) > 1e-5 {
			t.Errorf("instance %d: expected unit color, got length %f", k, l)
		}
	})

	// The normalized color reaches the GPU buffer with alpha 1
	colors := g.Colors()
	for k := 0; k < g.Count(); k++ {
		c := mgl32.Vec3{colors[k*4], colors[k*4+1], colors[k*4+2]}
		if math.Abs(float64(c.Len())-1) > 1e-5 {
			t.Errorf("instance %d: buffer color not unit length: %v", k, c)
		}
		if colors[k*4+3] != 1 {
			t.Errorf("instance %d: expected alpha 1, got %f", k, colors[k*4+3])
		}
	}
}

func TestGridBuffersPairByInstance(t *testing.T) {
	g := loadGrid(t, 6)
	if err := g.Update(0, mgl32.Vec3{2, 3, 4}, true); err != nil {
		t.Fatal(err)
	}

	offsets, colors := g.Offsets(), g.Colors()
	g.Each(func(k int, p components.Particle) {
		o := mgl32.Vec3{offsets[k*3], offsets[k*3+1], offsets[k*3+2]}
		c := mgl32.Vec3{colors[k*4], colors[k*4+1], colors[k*4+2]}
		if o != p.Position {
			t.Errorf("instance %d: offset %v does not match position %v", k, o, p.Position)
		}
		if c != p.Color {
			t.Errorf("instance %d: color %v does not match particle color %v", k, c, p.Color)
		}
	})
}

func TestGridReusedBuffersMatchFreshRebuild(t *testing.T) {
	reused := loadGrid(t, 8)
	oldOffsets := reused.Offsets()

	target := mgl32.Vec3{3, 5, 1}
	for i := 0; i < 10; i++ {
		if err := reused.Update(float32(i), target, i%2 == 0); err != nil {
			t.Fatal(err)
		}
	}
	if &reused.Offsets()[0] != &oldOffsets[0] {
		t.Error("expected offsets backing array to be reused across frames")
	}

	// Rebuild the same buffers from scratch with no reuse
	fresh := loadGrid(t, 8)
	for i := 0; i < 10; i++ {
		if err := fresh.Update(float32(i), target, i%2 == 0); err != nil {
			t.Fatal(err)
		}
	}
	var wantOffsets, wantColors []float32
	fresh.Each(func(k int, p components.Particle) {
		wantOffsets = append(wantOffsets, p.Position[0], p.Position[1], p.Position[2])
		wantColors = append(wantColors, p.Color[0], p.Color[1], p.Color[2], 1.0)
	})

	for i, v := range wantOffsets {
		if math.Float32bits(reused.Offsets()[i]) != math.Float32bits(v) {
			t.Fatalf("offsets[%d]: reused %v != rebuilt %v", i, reused.Offsets()[i], v)
		}
	}
	for i, v := range wantColors {
		if math.Float32bits(reused.Colors()[i]) != math.Float32bits(v) {
			t.Fatalf("colors[%d]: reused %v != rebuilt %v", i, reused.Colors()[i], v)
		}
	}
}

func TestGridUpdateBeforeLoad(t *testing.T) {
	g := NewGrid(DefaultDamping)
	err := g.Update(0, mgl32.Vec3{}, false)
	if !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
	if g.Loaded() {
		t.Error("grid should not report loaded")
	}
}

func TestGridLoadInvalidSize(t *testing.T) {
	g := NewGrid(DefaultDamping)
	for _, n := range []int{0, -3} {
		if err := g.Load(n); !errors.Is(err, ErrInvalidGridSize) {
			t.Errorf("size %d: expected ErrInvalidGridSize, got %v", n, err)
		}
	}
}

func TestGridReloadReplacesParticles(t *testing.T) {
	g := loadGrid(t, 4)
	if err := g.Update(0, mgl32.Vec3{50, 50, 50}, true); err != nil {
		t.Fatal(err)
	}

	if err := g.Load(3); err != nil {
		t.Fatal(err)
	}
	if g.Count() != 9 || g.Size() != 3 {
		t.Fatalf("expected 9 particles after reload, got %d", g.Count())
	}
	if len(g.Offsets()) != 27 || len(g.Colors()) != 36 {
		t.Errorf("unexpected buffer lengths after reload: %d, %d", len(g.Offsets()), len(g.Colors()))
	}

	// Fresh particles: at their grid slots with unnormalized colors
	p := g.Particle(4) // (1, 1)
	if p.Position != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("expected reloaded particle at (1, 1, 0), got %v", p.Position)
	}
	if p.Velocity != (mgl32.Vec3{}) {
		t.Errorf("expected reloaded particle at rest, got velocity %v", p.Velocity)
	}
	want := mgl32.Vec3{float32(1) / 3, float32(1) / 3, 1}
	if p.Color != want {
		t.Errorf("expected color %v, got %v", want, p.Color)
	}
}

func TestNewGridDefaultsDamping(t *testing.T) {
	if d := NewGrid(0).Damping(); d != DefaultDamping {
		t.Errorf("expected default damping %f, got %f", DefaultDamping, d)
	}
}

// vecNear compares componentwise with an absolute tolerance.
func vecNear(a, b mgl32.Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > tol {
			return false
		}
	}
	return true
}
