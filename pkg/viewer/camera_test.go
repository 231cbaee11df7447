package viewer

import (
	"math"
	"testing"

	"github.com/philipparndt/godefects/pkg/geometry"
)

func TestCameraProjectsTargetToCenter(t *testing.T) {
	bbox := geometry.BoundsOf([]geometry.Vector3{{}, {X: 10, Y: 10, Z: 10}})
	camera := NewCamera(bbox)

	x, y, z := camera.Project(bbox.Center(), 800, 600)

	if math.Abs(x-400) > 1e-9 || math.Abs(y-300) > 1e-9 {
		t.Errorf("expected center (400, 300), got (%v, %v)", x, y)
	}
	if math.Abs(z-camera.Distance) > 1e-9 {
		t.Errorf("expected depth %v, got %v", camera.Distance, z)
	}
}

func TestCameraDegenerateBounds(t *testing.T) {
	camera := NewCamera(geometry.BoundsOf([]geometry.Vector3{{X: 1, Y: 1, Z: 1}}))

	if camera.Distance < minDistance {
		t.Errorf("expected distance >= %v, got %v", minDistance, camera.Distance)
	}
}

func TestCameraRotateClampsPitch(t *testing.T) {
	camera := NewCamera(geometry.BoundsOf([]geometry.Vector3{{}, {X: 1}}))

	camera.Rotate(10, 0)

	if camera.RotationX >= math.Pi/2 {
		t.Errorf("pitch not clamped: %v", camera.RotationX)
	}
	if d := camera.Position.Distance(camera.Target); math.Abs(d-camera.Distance) > 1e-9 {
		t.Errorf("camera left its orbit: %v vs %v", d, camera.Distance)
	}
}

func TestCameraZoomHasFloor(t *testing.T) {
	camera := NewCamera(geometry.BoundsOf([]geometry.Vector3{{}, {X: 1}}))

	camera.Zoom(-5)

	if camera.Distance != 0.1 {
		t.Errorf("expected distance floor 0.1, got %v", camera.Distance)
	}
}

func TestCameraFrameKeepsOrbitAngles(t *testing.T) {
	camera := NewCamera(geometry.BoundsOf([]geometry.Vector3{{}, {X: 1}}))
	camera.Rotate(0.3, 0.5)

	camera.Frame(geometry.BoundsOf([]geometry.Vector3{{X: 10}, {X: 14}}))

	if camera.Target != geometry.NewVector3(12, 0, 0) {
		t.Errorf("expected target at the new center, got %v", camera.Target)
	}
	if camera.Distance != 8 {
		t.Errorf("expected distance 8, got %v", camera.Distance)
	}
	if camera.RotationX != 0.3 || camera.RotationY != 0.5 {
		t.Errorf("orbit angles changed: %v %v", camera.RotationX, camera.RotationY)
	}
	if d := camera.Position.Distance(camera.Target); math.Abs(d-camera.Distance) > 1e-9 {
		t.Errorf("camera left its orbit: %v vs %v", d, camera.Distance)
	}
}
