package bsdf

import "github.com/taigrr/trophy/pkg/math3d"

// Glass is a Fresnel-weighted dielectric: it stochastically chooses
// between reflection and refraction, with the Fresnel reflectance as
// the choice probability. Because the choice is importance-sampled,
// the returned attenuation is simply 1 (the weight is absorbed into
// the sampling probability, not into the attenuation).
type Glass struct {
	IOR float64
}

// Sample picks reflection with probability F_r(outDir) and refraction
// otherwise, falling back to reflection on total internal reflection.
func (g Glass) Sample(outDir math3d.Vec3, rng Rng) Sample {
	fr := fresnelDielectric(outDir, g.IOR)

	if rng.Coin(fr) {
		return Sample{
			InDir:       reflect(outDir),
			Attenuation: math3d.V3(1, 1, 1),
			PDF:         1,
		}
	}

	in, wasInternal := refractDir(outDir, g.IOR)
	return Sample{
		InDir:       in,
		Attenuation: math3d.V3(1, 1, 1),
		PDF:         1,
		WasInternal: wasInternal,
	}
}

// Evaluate is always zero: Glass is a delta BSDF.
func (g Glass) Evaluate(outDir, inDir math3d.Vec3) math3d.Vec3 {
	return math3d.Vec3{}
}
