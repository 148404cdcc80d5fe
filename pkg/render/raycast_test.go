package render

import (
	"math"
	"testing"

	"github.com/taigrr/trophy/pkg/math3d"
)

func approxVec3(t *testing.T, label string, got, want math3d.Vec3, eps float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps || math.Abs(got.Z-want.Z) > eps {
		t.Errorf("%s: got %v, want %v", label, got, want)
	}
}

func originCamera() *Camera {
	c := NewCamera()
	c.Position = math3d.V3(0, 0, 0)
	c.Pitch, c.Yaw, c.Roll = 0, 0, 0
	c.FOV = math.Pi / 2
	c.AspectRatio = 1
	c.FocalDist = 1
	c.viewDirty = true
	return c
}

func TestGenerateRayCenterLooksForward(t *testing.T) {
	c := originCamera()
	r := c.GenerateRay(0.5, 0.5)
	approxVec3(t, "origin", r.Origin, math3d.V3(0, 0, 0), 1e-9)
	approxVec3(t, "direction", r.Dir, math3d.V3(0, 0, -1), 1e-9)
}

func TestGenerateRayCornersMatchFOV(t *testing.T) {
	c := originCamera()

	right := c.GenerateRay(1, 0.5)
	approxVec3(t, "right", right.Dir, math3d.V3(1, 0, -1).Normalize(), 1e-9)

	left := c.GenerateRay(0, 0.5)
	approxVec3(t, "left", left.Dir, math3d.V3(-1, 0, -1).Normalize(), 1e-9)

	topLeft := c.GenerateRay(0, 1)
	approxVec3(t, "top-left", topLeft.Dir, math3d.V3(-1, 1, -1).Normalize(), 1e-9)
}

func TestGenerateRayOriginTracksCameraPosition(t *testing.T) {
	c := originCamera()
	c.Position = math3d.V3(5, 5, 5)
	c.viewDirty = true

	r := c.GenerateRay(0.5, 0.5)
	approxVec3(t, "origin", r.Origin, math3d.V3(5, 5, 5), 1e-9)
	approxVec3(t, "direction", r.Dir, math3d.V3(0, 0, -1), 1e-9)
}

func TestGenerateRayWiderFOVWidensCorners(t *testing.T) {
	narrow := originCamera()
	narrow.FOV = math.Pi / 4
	narrow.viewDirty = true

	wide := originCamera()
	wide.FOV = math.Pi / 2
	wide.viewDirty = true

	nDir := narrow.GenerateRay(1, 0.5).Dir
	wDir := wide.GenerateRay(1, 0.5).Dir

	if wDir.X <= nDir.X {
		t.Errorf("wider FOV should push the right-edge ray further from center: narrow.X=%v wide.X=%v", nDir.X, wDir.X)
	}
}
