package bsdf

import (
	"math"
	"testing"

	"github.com/taigrr/trophy/pkg/math3d"
)

// fakeRng returns deterministic, caller-supplied values instead of
// actual randomness, so sampling tests can pin down exact directions.
type fakeRng struct {
	uniforms []float64
	i        int
	coin     bool
}

func (f *fakeRng) Uniform() float64 {
	v := f.uniforms[f.i%len(f.uniforms)]
	f.i++
	return v
}

func (f *fakeRng) Coin(p float64) bool { return f.coin }

func TestLambertianSampleUpperHemisphere(t *testing.T) {
	l := Lambertian{Albedo: math3d.V3(0.8, 0.2, 0.4)}
	rng := &fakeRng{uniforms: []float64{0, 0}}

	sample := l.Sample(math3d.V3(0, 1, 0), rng)
	if sample.InDir.Y < 0 {
		t.Errorf("sampled direction %v is below the surface", sample.InDir)
	}
	if sample.PDF <= 0 || sample.PDF > 1 {
		t.Errorf("PDF = %v, want in (0, 1]", sample.PDF)
	}
	want := l.Albedo.Scale(1 / math.Pi)
	if sample.Attenuation.Distance(want) > 1e-9 {
		t.Errorf("Attenuation = %v, want %v", sample.Attenuation, want)
	}
}

func TestLambertianZeroAttenuationBelowSurface(t *testing.T) {
	l := Lambertian{Albedo: math3d.V3(1, 1, 1)}
	rng := &fakeRng{uniforms: []float64{0.5, 0.5}}

	sample := l.Sample(math3d.V3(0, -1, 0), rng)
	if sample.Attenuation != (math3d.Vec3{}) {
		t.Errorf("Attenuation = %v, want zero when viewed from below", sample.Attenuation)
	}
}

func TestLambertianEvaluateConstant(t *testing.T) {
	l := Lambertian{Albedo: math3d.V3(1, 1, 1)}
	want := l.Albedo.Scale(1 / math.Pi)
	got := l.Evaluate(math3d.V3(0, 1, 0), math3d.V3(0, 1, 0))
	if got.Distance(want) > 1e-9 {
		t.Errorf("Evaluate = %v, want %v", got, want)
	}
}

func TestMirrorReflectsAboutNormal(t *testing.T) {
	m := Mirror{Albedo: math3d.V3(1, 1, 1)}
	out := math3d.V3(0.3, 0.8, 0.5)
	sample := m.Sample(out, nil)

	want := math3d.V3(-0.3, 0.8, -0.5)
	if sample.InDir.Distance(want) > 1e-9 {
		t.Errorf("InDir = %v, want %v", sample.InDir, want)
	}
	if sample.PDF != 1 {
		t.Errorf("PDF = %v, want 1 (delta BSDF)", sample.PDF)
	}
	if sample.Attenuation != m.Albedo {
		t.Errorf("Attenuation = %v, want %v", sample.Attenuation, m.Albedo)
	}
}

func TestMirrorEvaluateIsZero(t *testing.T) {
	m := Mirror{Albedo: math3d.V3(1, 1, 1)}
	got := m.Evaluate(math3d.V3(0, 1, 0), math3d.V3(0, 1, 0))
	if got != (math3d.Vec3{}) {
		t.Errorf("Evaluate = %v, want zero", got)
	}
}

func TestEmissiveCarriesRadianceNotAttenuation(t *testing.T) {
	e := Emissive{Radiance: math3d.V3(5, 5, 5)}
	rng := &fakeRng{uniforms: []float64{0.25, 0.75}}

	sample := e.Sample(math3d.V3(0, 1, 0), rng)
	if sample.Emissive != e.Radiance {
		t.Errorf("Emissive = %v, want %v", sample.Emissive, e.Radiance)
	}
	if sample.Attenuation != (math3d.Vec3{}) {
		t.Errorf("Attenuation = %v, want zero", sample.Attenuation)
	}
}

func TestGlassChoosesReflectionOnCoinTrue(t *testing.T) {
	g := Glass{IOR: 1.5}
	rng := &fakeRng{coin: true}
	out := math3d.V3(0, 1, 0)

	sample := g.Sample(out, rng)
	want := reflect(out)
	if sample.InDir.Distance(want) > 1e-9 {
		t.Errorf("InDir = %v, want reflection %v", sample.InDir, want)
	}
	if sample.PDF != 1 {
		t.Errorf("PDF = %v, want 1", sample.PDF)
	}
}

func TestGlassRefractsStraightThroughAtNormalIncidence(t *testing.T) {
	g := Glass{IOR: 1.5}
	rng := &fakeRng{coin: false}
	out := math3d.V3(0, 1, 0) // straight on, from inside looking out

	sample := g.Sample(out, rng)
	if sample.WasInternal {
		t.Error("expected no total internal reflection at normal incidence")
	}
	// Straight-on incidence refracts straight through without bending.
	want := math3d.V3(0, -1, 0)
	if sample.InDir.Distance(want) > 1e-9 {
		t.Errorf("InDir = %v, want %v", sample.InDir, want)
	}
}

func TestGlassTotalInternalReflection(t *testing.T) {
	g := Glass{IOR: 1.5}
	rng := &fakeRng{coin: false}
	// A grazing angle from inside the denser medium exceeds the
	// critical angle and must fall back to reflection.
	out := math3d.V3(0.99, 0.1411, 0).Normalize()

	sample := g.Sample(out, rng)
	if !sample.WasInternal {
		t.Error("expected total internal reflection at a grazing angle")
	}
	want := reflect(out)
	if sample.InDir.Distance(want) > 1e-9 {
		t.Errorf("InDir = %v, want reflection %v", sample.InDir, want)
	}
}

func TestRefractEvaluateIsZero(t *testing.T) {
	r := Refract{IOR: 1.5}
	got := r.Evaluate(math3d.V3(0, 1, 0), math3d.V3(0, -1, 0))
	if got != (math3d.Vec3{}) {
		t.Errorf("Evaluate = %v, want zero", got)
	}
}

func TestSampleCosineHemispherePDFMatchesCosine(t *testing.T) {
	rng := &fakeRng{uniforms: []float64{0.36, 0.1}}
	dir, pdf := sampleCosineHemisphere(rng)

	if dir.Y <= 0 {
		t.Fatalf("sampled direction %v should be in the upper hemisphere", dir)
	}
	want := dir.Y / math.Pi
	if math.Abs(pdf-want) > 1e-9 {
		t.Errorf("pdf = %v, want cos(theta)/pi = %v", pdf, want)
	}
	if math.Abs(dir.Len()-1) > 1e-9 {
		t.Errorf("sampled direction %v is not unit length", dir)
	}
}
