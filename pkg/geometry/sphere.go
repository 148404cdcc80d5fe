package geometry

import (
	"math"

	"github.com/taigrr/trophy/pkg/math3d"
)

// Sphere is a sphere of the given radius centered at Center.
type Sphere struct {
	Center math3d.Vec3
	Radius float64
}

// BBox returns the sphere's axis-aligned bounding box.
func (s Sphere) BBox() BBox {
	r := math3d.V3(s.Radius, s.Radius, s.Radius)
	return BBox{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// Hit intersects the ray against the sphere. Solving
// |o + t*d|^2 = r^2 (with o measured from the sphere's center) yields
// a quadratic in t; the smaller root in [TMin, TMax] is returned, or
// the larger root if only it lies in range (the ray starts inside the
// sphere). On a hit, ray.TMax is tightened for BVH pruning.
func (s Sphere) Hit(r *Ray) Trace {
	oc := r.Origin.Sub(s.Center)
	a := r.Dir.Dot(r.Dir)
	halfB := oc.Dot(r.Dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return Miss
	}
	sq := math.Sqrt(disc)

	root := (-halfB - sq) / a
	if root < r.TMin || root > r.TMax {
		root = (-halfB + sq) / a
		if root < r.TMin || root > r.TMax {
			return Miss
		}
	}

	r.TMax = root
	pos := r.At(root)
	normal := pos.Sub(s.Center).Scale(1 / s.Radius)
	return Trace{
		Hit:      true,
		Distance: root,
		Position: pos,
		Normal:   normal,
		Origin:   r.Origin,
	}
}
