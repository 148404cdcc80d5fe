package bsdf

import (
	"math"

	"github.com/taigrr/trophy/pkg/math3d"
)

// Refract is a pure refractive (dielectric, no reflection term)
// surface: it always transmits, falling back to reflection only on
// total internal reflection.
type Refract struct {
	IOR float64 // index of refraction of the medium behind the surface
}

// Sample returns the refracted direction (or the reflected direction
// on total internal reflection), with discrete PDF 1 and attenuation 1.
func (g Refract) Sample(outDir math3d.Vec3, rng Rng) Sample {
	in, wasInternal := refractDir(outDir, g.IOR)
	return Sample{
		InDir:       in,
		Attenuation: math3d.V3(1, 1, 1),
		PDF:         1,
		WasInternal: wasInternal,
	}
}

// Evaluate is always zero: Refract is a delta BSDF.
func (g Refract) Evaluate(outDir, inDir math3d.Vec3) math3d.Vec3 {
	return math3d.Vec3{}
}

// refractDir computes the refraction of outDir through a dielectric
// interface with relative index ior, following Snell's law in the
// local frame where the surface normal is (0,1,0). outDir.Y > 0 means
// the ray is exiting the medium into air; the indices are chosen
// symmetrically for the reverse case. Returns the refracted direction
// and whether total internal reflection occurred (in which case the
// returned direction is the reflection instead).
func refractDir(outDir math3d.Vec3, ior float64) (math3d.Vec3, bool) {
	etaI, etaT := 1.0, ior
	if outDir.Y > 0 {
		etaI, etaT = ior, 1.0
	}
	eta := etaI / etaT

	xp := -eta * outDir.X
	zp := -eta * outDir.Z
	ySq := 1 - xp*xp - zp*zp

	if ySq <= 0 {
		return reflect(outDir), true
	}

	yp := math.Sqrt(ySq)
	if outDir.Y > 0 {
		yp = -yp
	}
	return math3d.V3(xp, yp, zp), false
}

// fresnelDielectric computes the Fresnel reflectance at a dielectric
// interface via the exact formula (average of the squared parallel
// and perpendicular amplitude ratios).
func fresnelDielectric(outDir math3d.Vec3, ior float64) float64 {
	cosI := math.Abs(outDir.Y)
	etaI, etaT := 1.0, ior
	if outDir.Y > 0 {
		etaI, etaT = ior, 1.0
	}

	sinT := etaI / etaT * math.Sqrt(math.Max(0, 1-cosI*cosI))
	if sinT >= 1 {
		return 1 // total internal reflection
	}
	cosT := math.Sqrt(math.Max(0, 1-sinT*sinT))

	rParallel := (etaT*cosI - etaI*cosT) / (etaT*cosI + etaI*cosT)
	rPerp := (etaI*cosI - etaT*cosT) / (etaI*cosI + etaT*cosT)
	return (rParallel*rParallel + rPerp*rPerp) / 2
}
