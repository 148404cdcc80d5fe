package geometry

import (
	"math"
	"testing"

	"github.com/taigrr/trophy/pkg/math3d"
)

func TestSphereHitCentered(t *testing.T) {
	s := Sphere{Center: math3d.V3(0, 0, -5), Radius: 1}
	r := NewRay(math3d.Zero3(), math3d.V3(0, 0, -1))

	trace := s.Hit(&r)
	if !trace.Hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(trace.Distance-4) > 1e-9 {
		t.Errorf("distance = %v, want 4", trace.Distance)
	}
	wantNormal := math3d.V3(0, 0, 1)
	if trace.Normal.Distance(wantNormal) > 1e-9 {
		t.Errorf("normal = %v, want %v", trace.Normal, wantNormal)
	}
	if r.TMax != trace.Distance {
		t.Errorf("ray.TMax not tightened: got %v, want %v", r.TMax, trace.Distance)
	}
}

func TestSphereMiss(t *testing.T) {
	s := Sphere{Center: math3d.V3(10, 0, 0), Radius: 1}
	r := NewRay(math3d.Zero3(), math3d.V3(0, 0, -1))
	if trace := s.Hit(&r); trace.Hit {
		t.Error("expected a miss")
	}
}

func TestSphereHitFromInside(t *testing.T) {
	s := Sphere{Center: math3d.Zero3(), Radius: 2}
	r := NewRay(math3d.Zero3(), math3d.V3(1, 0, 0))
	trace := s.Hit(&r)
	if !trace.Hit {
		t.Fatal("expected a hit on the far side")
	}
	if math.Abs(trace.Distance-2) > 1e-9 {
		t.Errorf("distance = %v, want 2", trace.Distance)
	}
}

func unitTriangle() Triangle {
	return Triangle{
		V0: math3d.V3(-1, -1, 0), V1: math3d.V3(1, -1, 0), V2: math3d.V3(0, 1, 0),
		N0: math3d.V3(0, 0, 1), N1: math3d.V3(0, 0, 1), N2: math3d.V3(0, 0, 1),
	}
}

func TestTriangleHitCenter(t *testing.T) {
	tri := unitTriangle()
	r := NewRay(math3d.V3(0, 0, -5), math3d.V3(0, 0, 1))

	trace := tri.Hit(&r)
	if !trace.Hit {
		t.Fatal("expected a hit through the triangle's interior")
	}
	if math.Abs(trace.Distance-5) > 1e-9 {
		t.Errorf("distance = %v, want 5", trace.Distance)
	}
	if trace.Normal.Distance(math3d.V3(0, 0, 1)) > 1e-9 {
		t.Errorf("normal = %v, want (0,0,1)", trace.Normal)
	}
}

func TestTriangleMissOutsideEdges(t *testing.T) {
	tri := unitTriangle()
	r := NewRay(math3d.V3(5, 5, -5), math3d.V3(0, 0, 1))
	if trace := tri.Hit(&r); trace.Hit {
		t.Error("expected a miss outside the triangle's bounds")
	}
}

func TestTriangleMissParallel(t *testing.T) {
	tri := unitTriangle()
	r := NewRay(math3d.V3(0, 0, -5), math3d.V3(1, 0, 0))
	if trace := tri.Hit(&r); trace.Hit {
		t.Error("expected a miss for a ray parallel to the triangle's plane")
	}
}

func TestBBoxHitSlab(t *testing.T) {
	box := BBox{Min: math3d.V3(-1, -1, -1), Max: math3d.V3(1, 1, 1)}
	r := NewRay(math3d.V3(0, 0, -5), math3d.V3(0, 0, 1))

	tEnter, tExit, ok := box.Hit(r)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(tEnter-4) > 1e-9 || math.Abs(tExit-6) > 1e-9 {
		t.Errorf("tEnter,tExit = %v,%v, want 4,6", tEnter, tExit)
	}
}

func TestBBoxMiss(t *testing.T) {
	box := BBox{Min: math3d.V3(-1, -1, -1), Max: math3d.V3(1, 1, 1)}
	r := NewRay(math3d.V3(10, 10, -5), math3d.V3(0, 0, 1))
	if _, _, ok := box.Hit(r); ok {
		t.Error("expected a miss")
	}
}

func TestBVHFindsNearestSphereAmongMany(t *testing.T) {
	var spheres []Sphere
	for i := 0; i < 1000; i++ {
		z := -float64(i) * 2
		spheres = append(spheres, Sphere{Center: math3d.V3(0, 0, z), Radius: 0.4})
	}

	tree := Build(spheres)
	r := NewRay(math3d.Zero3(), math3d.V3(0, 0, -1))
	trace := tree.Hit(&r)

	if !trace.Hit {
		t.Fatal("expected a hit")
	}
	// Ray origin sits at the first sphere's center, so the nearest
	// surface is its own radius away.
	if math.Abs(trace.Distance-0.4) > 1e-9 {
		t.Errorf("distance = %v, want 0.4", trace.Distance)
	}
}

func TestBVHMatchesBruteForce(t *testing.T) {
	var tris []Triangle
	for i := 0; i < 50; i++ {
		x := float64(i)
		tris = append(tris, Triangle{
			V0: math3d.V3(x-0.5, -0.5, 0), V1: math3d.V3(x+0.5, -0.5, 0), V2: math3d.V3(x, 0.5, 0),
			N0: math3d.V3(0, 0, 1), N1: math3d.V3(0, 0, 1), N2: math3d.V3(0, 0, 1),
		})
	}
	tree := Build(tris)

	for _, x := range []float64{0, 10, 25, 49} {
		r1 := NewRay(math3d.V3(x, 0, -5), math3d.V3(0, 0, 1))
		bvhTrace := tree.Hit(&r1)

		r2 := NewRay(math3d.V3(x, 0, -5), math3d.V3(0, 0, 1))
		bruteTrace := Miss
		for _, tr := range tris {
			bruteTrace = bruteTrace.Min(tr.Hit(&r2))
		}

		if bvhTrace.Hit != bruteTrace.Hit {
			t.Fatalf("x=%v: BVH hit=%v, brute force hit=%v", x, bvhTrace.Hit, bruteTrace.Hit)
		}
		if bvhTrace.Hit && math.Abs(bvhTrace.Distance-bruteTrace.Distance) > 1e-9 {
			t.Errorf("x=%v: BVH distance=%v, brute force distance=%v", x, bvhTrace.Distance, bruteTrace.Distance)
		}
	}
}

func TestBVHEmpty(t *testing.T) {
	tree := Build([]Sphere{})
	r := NewRay(math3d.Zero3(), math3d.V3(0, 0, -1))
	if trace := tree.Hit(&r); trace.Hit {
		t.Error("expected a miss against an empty BVH")
	}
}

func TestTraceMinPrefersHit(t *testing.T) {
	hit := Trace{Hit: true, Distance: 5}
	if got := Miss.Min(hit); got != hit {
		t.Errorf("Miss.Min(hit) = %v, want %v", got, hit)
	}
	if got := hit.Min(Miss); got != hit {
		t.Errorf("hit.Min(Miss) = %v, want %v", got, hit)
	}
}

func TestTraceMinPrefersCloser(t *testing.T) {
	near := Trace{Hit: true, Distance: 2}
	far := Trace{Hit: true, Distance: 8}
	if got := near.Min(far); got != near {
		t.Errorf("expected the nearer trace, got %v", got)
	}
	if got := far.Min(near); got != near {
		t.Errorf("expected the nearer trace, got %v", got)
	}
}
