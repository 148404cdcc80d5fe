package geometry

import "github.com/taigrr/trophy/pkg/math3d"

// triangleEpsilon is the parallel-ray rejection threshold for
// Moller-Trumbore, an absolute bound on the determinant (which grows
// with the triangle's size).
const triangleEpsilon = 1e-6

// Triangle is a ray-traceable triangle carrying per-vertex normals for
// smooth (Phong) shading. UV fields are carried for pass-through only;
// no texture filtering happens in this package (see spec Non-goals).
type Triangle struct {
	V0, V1, V2 math3d.Vec3
	N0, N1, N2 math3d.Vec3
	UV0, UV1, UV2 math3d.Vec2
}

// BBox returns the triangle's axis-aligned bounding box.
func (t Triangle) BBox() BBox {
	return EmptyBBox().EnclosePoint(t.V0).EnclosePoint(t.V1).EnclosePoint(t.V2)
}

// Hit intersects the ray against the triangle using Moller-Trumbore.
// The shading normal is the barycentric blend of the three vertex
// normals, renormalized. On a hit, ray.TMax is tightened.
func (t Triangle) Hit(r *Ray) Trace {
	e1 := t.V1.Sub(t.V0)
	e2 := t.V2.Sub(t.V0)

	pVec := r.Dir.Cross(e2)
	det := e1.Dot(pVec)
	if det > -triangleEpsilon && det < triangleEpsilon {
		return Miss
	}
	invDet := 1 / det

	tVec := r.Origin.Sub(t.V0)
	u := tVec.Dot(pVec) * invDet
	if u < 0 || u > 1 {
		return Miss
	}

	qVec := tVec.Cross(e1)
	v := r.Dir.Dot(qVec) * invDet
	if v < 0 || u+v > 1 {
		return Miss
	}

	dist := e2.Dot(qVec) * invDet
	if dist < r.TMin || dist > r.TMax {
		return Miss
	}

	w := 1 - u - v
	normal := t.N0.Scale(w).Add(t.N1.Scale(u)).Add(t.N2.Scale(v)).Normalize()

	r.TMax = dist
	return Trace{
		Hit:      true,
		Distance: dist,
		Position: r.At(dist),
		Normal:   normal,
		Origin:   r.Origin,
	}
}
