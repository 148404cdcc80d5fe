package bsdf

import (
	"math"

	"github.com/taigrr/trophy/pkg/math3d"
)

// Lambertian is an ideal diffuse reflector.
type Lambertian struct {
	Albedo math3d.Vec3
}

// Sample draws a cosine-weighted hemisphere direction. Attenuation is
// albedo/pi on the upper hemisphere (above the surface), zero below.
func (l Lambertian) Sample(outDir math3d.Vec3, rng Rng) Sample {
	inDir, pdf := sampleCosineHemisphere(rng)

	var atten math3d.Vec3
	if outDir.Y > 0 {
		atten = l.Albedo.Scale(1 / math.Pi)
	}

	return Sample{InDir: inDir, Attenuation: atten, PDF: pdf}
}

// Evaluate returns the constant Lambertian BRDF value albedo/pi.
func (l Lambertian) Evaluate(outDir, inDir math3d.Vec3) math3d.Vec3 {
	return l.Albedo.Scale(1 / math.Pi)
}
