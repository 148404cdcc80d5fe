package halfedge

import "github.com/taigrr/trophy/pkg/math3d"

// SubdivisionRule selects the position rule used by Subdivide.
type SubdivisionRule int

const (
	// Linear keeps original vertices in place and inserts edge
	// midpoints and face centroids with no smoothing.
	Linear SubdivisionRule = iota
	// CatmullClark applies the standard Catmull-Clark smoothing rules
	// to original vertices, edge points and face points.
	CatmullClark
)

// LinearSubdividePositions computes the linear subdivision position
// rule into each live vertex's, edge's and face's NewPos scratch
// field: a vertex keeps its position, an edge gets its midpoint, and a
// face gets its centroid. It performs no topology change; a separate
// rebuild step consumes these fields to build the subdivided mesh.
func (m *Mesh) LinearSubdividePositions() {
	for f := range m.Faces {
		if m.Faces[f].erased || m.Faces[f].Boundary {
			continue
		}
		fid := FaceID(f)
		m.F(fid).NewPos = m.FaceCentroid(fid)
	}
	for e := range m.Edges {
		if m.Edges[e].erased {
			continue
		}
		eid := EdgeID(e)
		m.E(eid).NewPos = m.Midpoint(eid)
		m.E(eid).IsNew = true
	}
	for v := range m.Vertices {
		if m.Vertices[v].erased {
			continue
		}
		vid := VertexID(v)
		m.V(vid).NewPos = m.V(vid).Pos
		m.V(vid).IsNew = false
	}
}

// CatmullClarkSubdividePositions computes the Catmull-Clark smoothing
// rule into the same NewPos/IsNew scratch fields as
// LinearSubdividePositions. Boundary vertices are not handled: every
// face touching a vertex must be non-boundary.
func (m *Mesh) CatmullClarkSubdividePositions() {
	for f := range m.Faces {
		if m.Faces[f].erased || m.Faces[f].Boundary {
			continue
		}
		fid := FaceID(f)
		m.F(fid).NewPos = m.FaceCentroid(fid)
	}

	for e := range m.Edges {
		if m.Edges[e].erased {
			continue
		}
		eid := EdgeID(e)
		h := m.E(eid).Halfedge
		twin := m.H(h).Twin
		mid := m.Midpoint(eid)
		f0, f1 := m.H(h).Face, m.H(twin).Face
		if m.F(f0).Boundary || m.F(f1).Boundary {
			m.E(eid).NewPos = mid
		} else {
			m.E(eid).NewPos = mid.Scale(0.5).Add(m.F(f0).NewPos.Add(m.F(f1).NewPos).Scale(0.25))
		}
		m.E(eid).IsNew = true
	}

	for v := range m.Vertices {
		if m.Vertices[v].erased {
			continue
		}
		vid := VertexID(v)
		p := m.V(vid).Pos

		var q, r math3d.Vec3
		var edges []EdgeID
		n := 0
		m.ForEachOutgoing(vid, func(h HalfedgeID) {
			edges = append(edges, m.H(h).Edge)
			q = q.Add(m.F(m.H(h).Face).NewPos)
			n++
		})
		if n < 3 {
			m.V(vid).NewPos = p
			m.V(vid).IsNew = false
			continue
		}
		q = q.Scale(1 / float64(n))
		for _, e := range edges {
			r = r.Add(m.Midpoint(e))
		}
		r = r.Scale(1 / float64(n))
		weighted := q.Add(r.Scale(2)).Add(p.Scale(float64(n - 3)))
		m.V(vid).NewPos = weighted.Scale(1 / float64(n))
		m.V(vid).IsNew = false
	}
}

// SubdividePositions dispatches to the position rule named by rule.
func (m *Mesh) SubdividePositions(rule SubdivisionRule) {
	if rule == Linear {
		m.LinearSubdividePositions()
	} else {
		m.CatmullClarkSubdividePositions()
	}
}

// RebuildSubdivided consumes the NewPos scratch fields left by a prior
// SubdividePositions call and constructs the subdivided mesh: every
// face becomes one quad per original corner, meeting at the face's
// NewPos and the NewPos of its two bounding edges. This step is not
// part of the position rule itself; it is the external rebuild that
// turns the (V+E+F, quads) description into a new Mesh.
func (m *Mesh) RebuildSubdivided() *Mesh {
	type edgeKey struct{ a, b VertexID }
	normKey := func(a, b VertexID) edgeKey {
		if a <= b {
			return edgeKey{a, b}
		}
		return edgeKey{b, a}
	}

	var positions []math3d.Vec3
	index := make(map[interface{}]int)
	addPoint := func(key interface{}, pos math3d.Vec3) int {
		if i, ok := index[key]; ok {
			return i
		}
		i := len(positions)
		positions = append(positions, pos)
		index[key] = i
		return i
	}

	var faces [][]int
	for f := range m.Faces {
		if m.Faces[f].erased || m.Faces[f].Boundary {
			continue
		}
		fid := FaceID(f)
		fpIdx := addPoint(fid, m.F(fid).NewPos)

		var ring []HalfedgeID
		m.ForEachFaceHalfedge(fid, func(h HalfedgeID) { ring = append(ring, h) })
		n := len(ring)
		for i := 0; i < n; i++ {
			h := ring[i]
			prev := ring[(i-1+n)%n]
			v := m.H(h).Vertex
			vIdx := addPoint(v, m.V(v).NewPos)

			pa, pb := m.H(prev).Vertex, m.H(m.H(prev).Twin).Vertex
			prevEdge := m.H(prev).Edge
			prevIdx := addPoint(normKey(pa, pb), m.E(prevEdge).NewPos)

			ca, cb := m.H(h).Vertex, m.H(m.H(h).Twin).Vertex
			curEdge := m.H(h).Edge
			curIdx := addPoint(normKey(ca, cb), m.E(curEdge).NewPos)

			faces = append(faces, []int{fpIdx, prevIdx, vIdx, curIdx})
		}
	}

	return FromFaceList(FaceList{Positions: positions, Faces: faces})
}

// Subdivide returns a new, once-subdivided mesh: every face is
// replaced by one quad per original corner, meeting at a face point
// and the midpoints (Linear) or smoothed points (CatmullClark) of its
// bounding edges. It is a convenience wrapper over
// SubdividePositions followed by RebuildSubdivided.
func (m *Mesh) Subdivide(rule SubdivisionRule) *Mesh {
	m.SubdividePositions(rule)
	return m.RebuildSubdivided()
}
