package geometry

import "github.com/taigrr/trophy/pkg/math3d"

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min, Max math3d.Vec3
}

// EmptyBBox returns a box with no volume, positioned so that the first
// Enclose call establishes real bounds.
func EmptyBBox() BBox {
	const inf = 1e300
	return BBox{
		Min: math3d.V3(inf, inf, inf),
		Max: math3d.V3(-inf, -inf, -inf),
	}
}

// EnclosePoint grows the box to contain p.
func (b BBox) EnclosePoint(p math3d.Vec3) BBox {
	return BBox{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// EncloseBox grows the box to contain other.
func (b BBox) EncloseBox(other BBox) BBox {
	return BBox{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns the box's centroid.
func (b BBox) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Extent returns the box's size along each axis.
func (b BBox) Extent() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// SurfaceArea returns the box's total surface area. A degenerate
// (negative-extent) box has zero area.
func (b BBox) SurfaceArea() float64 {
	e := b.Extent()
	if e.X < 0 || e.Y < 0 || e.Z < 0 {
		return 0
	}
	return 2 * (e.X*e.Y + e.Y*e.Z + e.Z*e.X)
}

// AxisExtent returns the box's extent along a single axis (0=X, 1=Y, 2=Z).
func (b BBox) AxisExtent(axis int) float64 {
	switch axis {
	case 0:
		return b.Max.X - b.Min.X
	case 1:
		return b.Max.Y - b.Min.Y
	default:
		return b.Max.Z - b.Min.Z
	}
}

// axisComponent returns v's component along the given axis.
func axisComponent(v math3d.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Hit intersects the box against the ray's current [TMin, TMax]
// interval using the slab method, per axis. When the ray direction
// along an axis is zero, the ray is only consistent with that slab if
// the origin already lies within it; otherwise the box is missed
// entirely for that axis (the slab does not constrain the t-range,
// it rejects outright when out of bounds).
func (b BBox) Hit(r Ray) (tEnter, tExit float64, ok bool) {
	tEnter, tExit = r.TMin, r.TMax

	mins := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	maxs := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Dir.X, r.Dir.Y, r.Dir.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < mins[axis] || origin[axis] > maxs[axis] {
				return 0, 0, false
			}
			continue
		}

		invD := 1.0 / dir[axis]
		t0 := (mins[axis] - origin[axis]) * invD
		t1 := (maxs[axis] - origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter = t0
		}
		if t1 < tExit {
			tExit = t1
		}
		if tEnter > tExit {
			return 0, 0, false
		}
	}

	return tEnter, tExit, true
}
