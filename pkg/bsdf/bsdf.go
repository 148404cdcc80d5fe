// Package bsdf implements the bidirectional scattering distribution
// functions used by the tracer: direction sampling and radiance
// evaluation at a surface point, in the local frame where the surface
// normal is (0,1,0).
package bsdf

import (
	"math"

	"github.com/taigrr/trophy/pkg/math3d"
)

// Rng is the random source contract the BSDF family depends on. The
// surrounding integrator (out of scope for this package) is
// responsible for providing one per trace thread.
type Rng interface {
	// Uniform returns a uniformly distributed float64 in [0, 1).
	Uniform() float64
	// Coin returns true with probability p.
	Coin(p float64) bool
}

// Sample is the result of sampling a scattering direction.
type Sample struct {
	InDir       math3d.Vec3
	Attenuation math3d.Vec3
	Emissive    math3d.Vec3
	PDF         float64
	WasInternal bool
}

// BSDF samples an incoming direction given an outgoing one, and
// evaluates the scattering function for an arbitrary pair of
// directions. outDir always points from the surface toward the viewer
// (or the previous vertex along the path).
type BSDF interface {
	Sample(outDir math3d.Vec3, rng Rng) Sample
	// Evaluate returns zero for delta (specular) BSDFs: the
	// probability that two independently sampled directions coincide
	// exactly is zero.
	Evaluate(outDir, inDir math3d.Vec3) math3d.Vec3
}

// sampleCosineHemisphere draws a direction from the cosine-weighted
// hemisphere above the local normal (0,1,0), returning the direction
// and its PDF (cos(theta)/pi).
func sampleCosineHemisphere(rng Rng) (math3d.Vec3, float64) {
	u1 := rng.Uniform()
	u2 := rng.Uniform()

	r := math.Sqrt(u1)
	phi := 2 * math.Pi * u2
	x := r * math.Cos(phi)
	z := r * math.Sin(phi)
	y := math.Sqrt(max0(1 - u1))

	dir := math3d.V3(x, y, z)
	pdf := y / math.Pi
	return dir, pdf
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
