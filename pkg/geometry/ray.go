// Package geometry provides ray-tracing primitives: rays, bounding
// boxes, per-primitive intersection routines, and a binned-SAH BVH.
package geometry

import (
	"math"

	"github.com/taigrr/trophy/pkg/math3d"
)

// Ray is a parametric ray: a point at parameter t is Origin + t*Dir.
// TMin/TMax bound the valid intersection interval and are tightened by
// callers (and by Hit implementations) as closer hits are discovered.
type Ray struct {
	Origin math3d.Vec3
	Dir    math3d.Vec3
	TMin   float64
	TMax   float64
}

// NewRay creates a ray with the given origin, direction, and the
// default [0, +Inf) distance bounds.
func NewRay(origin, dir math3d.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir, TMin: 0, TMax: math.Inf(1)}
}

// At returns the point along the ray at parameter t.
func (r Ray) At(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Trace is the outcome of intersecting a ray against a primitive.
type Trace struct {
	Hit      bool
	Distance float64
	Position math3d.Vec3
	Normal   math3d.Vec3
	Origin   math3d.Vec3
}

// Miss is the canonical no-hit Trace.
var Miss = Trace{}

// Min returns the hit with the smaller positive distance, preferring
// whichever of a, b actually hit if only one did.
func (a Trace) Min(b Trace) Trace {
	if !a.Hit {
		return b
	}
	if !b.Hit {
		return a
	}
	if a.Distance <= b.Distance {
		return a
	}
	return b
}
