package bsdf

import "github.com/taigrr/trophy/pkg/math3d"

// Emissive is a diffuse emitter: it samples a direction like
// Lambertian but scatters no light back along the path, emitting
// Radiance instead.
type Emissive struct {
	Radiance math3d.Vec3
}

// Sample returns a cosine-weighted direction with zero attenuation
// and the surface's emitted radiance.
func (e Emissive) Sample(outDir math3d.Vec3, rng Rng) Sample {
	inDir, pdf := sampleCosineHemisphere(rng)
	return Sample{InDir: inDir, Emissive: e.Radiance, PDF: pdf}
}

// Evaluate is zero: emitted light is not a scattering response.
func (e Emissive) Evaluate(outDir, inDir math3d.Vec3) math3d.Vec3 {
	return math3d.Vec3{}
}
