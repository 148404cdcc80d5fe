package bsdf

import "github.com/taigrr/trophy/pkg/math3d"

// Mirror is a perfect specular reflector.
type Mirror struct {
	Albedo math3d.Vec3
}

// Sample returns the deterministic reflection direction with a
// discrete PDF of 1.
func (m Mirror) Sample(outDir math3d.Vec3, rng Rng) Sample {
	in := reflect(outDir)

	var atten math3d.Vec3
	if outDir.Y > 0 {
		atten = m.Albedo
	}

	return Sample{InDir: in, Attenuation: atten, PDF: 1}
}

// Evaluate is always zero: the probability of an independently
// sampled direction matching a delta function is zero.
func (m Mirror) Evaluate(outDir, inDir math3d.Vec3) math3d.Vec3 {
	return math3d.Vec3{}
}

// reflect mirrors outDir about the local surface normal (0,1,0),
// matching spec's reflect(out_dir) = (-x, y, -z).
func reflect(outDir math3d.Vec3) math3d.Vec3 {
	return math3d.V3(-outDir.X, outDir.Y, -outDir.Z)
}
