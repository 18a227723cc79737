package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particlegrid/camera"
)

const eps = 1e-4

// identityCamera sits at the origin looking down -Z, so its view matrix is
// the identity.
func identityCamera() *camera.Camera {
	return camera.New(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
}

func TestPointerMove_NDCMapping(t *testing.T) {
	cam := identityCamera()
	in := NewInteraction(true, 1)

	tests := []struct {
		name   string
		px, py float32
		want   mgl32.Vec3
	}{
		// ndc + up: the screen's top-left maps to ndc (-1, 1)
		{"top-left", 0, 0, mgl32.Vec3{-1, 2, 0}},
		{"bottom-right", 200, 100, mgl32.Vec3{1, 0, 0}},
		{"center", 100, 50, mgl32.Vec3{0, 1, 0}},
		{"bottom-left", 0, 100, mgl32.Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in.PointerMove(tt.px, tt.py, 200, 100, cam)
			if got := in.Target(); !vecNear(got, tt.want, eps) {
				t.Errorf("target = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointerMove_InverseViewTransform(t *testing.T) {
	cam := camera.New(mgl32.Vec3{50, 50, 10}, mgl32.Vec3{0, 0, 0})
	in := NewInteraction(true, 1)

	in.PointerMove(300, 150, 800, 600, cam)

	ndc := mgl32.Vec3{2*300.0/800 - 1, -(2*150.0/600 - 1), 0}
	p := ndc.Sub(cam.Position).Add(cam.Up)
	want := cam.InverseView().Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1}).Vec3()

	if got := in.Target(); !vecNear(got, want, eps) {
		t.Errorf("target = %v, want %v", got, want)
	}
}

func TestPointerMove_UpScale(t *testing.T) {
	cam := identityCamera()
	in := NewInteraction(true, 0.5)

	in.PointerMove(100, 50, 200, 100, cam)
	want := mgl32.Vec3{0, 0.5, 0}
	if got := in.Target(); !vecNear(got, want, eps) {
		t.Errorf("target = %v, want %v", got, want)
	}
}

func TestPointerMove_DegenerateSurface(t *testing.T) {
	cam := identityCamera()
	in := NewInteraction(true, 1)
	in.PointerMove(100, 50, 200, 100, cam)
	before := in.Target()

	in.PointerMove(10, 10, 0, 100, cam)
	in.PointerMove(10, 10, 200, 0, cam)
	if in.Target() != before {
		t.Errorf("target changed on degenerate surface: %v -> %v", before, in.Target())
	}
}

func TestPointerMove_Overwrites(t *testing.T) {
	cam := identityCamera()
	in := NewInteraction(true, 1)
	in.PointerMove(0, 0, 200, 100, cam)
	in.PointerMove(200, 100, 200, 100, cam)

	want := mgl32.Vec3{1, 0, 0}
	if got := in.Target(); !vecNear(got, want, eps) {
		t.Errorf("target = %v, want latest %v", got, want)
	}
}

func TestActiveGating(t *testing.T) {
	tests := []struct {
		name      string
		targeting bool
		down      bool
		want      bool
	}{
		{"idle", false, false, false},
		{"drag without targeting", false, true, false},
		{"targeting without drag", true, false, false},
		{"drag with targeting", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInteraction(tt.targeting, 1)
			if tt.down {
				in.PointerDown()
			}
			if got := in.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPointerUpClearsDrag(t *testing.T) {
	in := NewInteraction(true, 1)
	in.PointerDown()
	in.PointerUp()
	if in.Active() || in.Dragging() {
		t.Error("drag still active after PointerUp")
	}
}

func TestToggleAndSetTargeting(t *testing.T) {
	in := NewInteraction(false, 1)
	if in.Targeting() {
		t.Fatal("targeting should default to the constructor value")
	}
	in.Toggle()
	if !in.Targeting() {
		t.Error("Toggle did not enable targeting")
	}
	in.Toggle()
	if in.Targeting() {
		t.Error("second Toggle did not disable targeting")
	}
	in.SetTargeting(true)
	in.PointerDown()
	if !in.Active() {
		t.Error("SetTargeting(true) with drag should be active")
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
