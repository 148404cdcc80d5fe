package halfedge

import "github.com/taigrr/trophy/pkg/math3d"

// FaceList is a flat polygon-soup representation: one vertex position
// per entry in Positions, and one slice of Positions indices per
// polygon. It is the bridge between the half-edge mesh and triangle
// soup consumers such as pkg/models and the BVH builder.
type FaceList struct {
	Positions []math3d.Vec3
	Faces     [][]int
}

// ToTriangleSoup triangulates every face (fan from its first vertex)
// and returns the result as flat position/index triangle soup.
func (m *Mesh) ToTriangleSoup() ([]math3d.Vec3, [][3]int) {
	positions := make([]math3d.Vec3, 0, len(m.Vertices))
	remap := make([]int, len(m.Vertices))
	for i := range remap {
		remap[i] = -1
	}
	index := func(v VertexID) int {
		if remap[v] == -1 {
			remap[v] = len(positions)
			positions = append(positions, m.V(v).Pos)
		}
		return remap[v]
	}

	var tris [][3]int
	for f := range m.Faces {
		if m.Faces[f].erased || m.Faces[f].Boundary {
			continue
		}
		fid := FaceID(f)
		var ring []VertexID
		m.ForEachFaceHalfedge(fid, func(h HalfedgeID) {
			ring = append(ring, m.H(h).Vertex)
		})
		for i := 1; i+1 < len(ring); i++ {
			tris = append(tris, [3]int{index(ring[0]), index(ring[i]), index(ring[i+1])})
		}
	}
	return positions, tris
}

// FromFaceList builds a half-edge mesh from polygon soup. Edges shared
// by exactly two faces with opposite winding become interior edges;
// every other edge incidence is closed off with a virtual boundary
// face, so the result is always a valid manifold half-edge mesh even
// for open surfaces.
func FromFaceList(fl FaceList) *Mesh {
	m := NewMesh()
	vids := make([]VertexID, len(fl.Positions))
	for i, p := range fl.Positions {
		vids[i] = m.newVertex(p)
	}

	type edgeKey struct{ a, b int }
	halfedgeByKey := make(map[edgeKey]HalfedgeID)

	for _, face := range fl.Faces {
		n := len(face)
		if n < 3 {
			continue
		}
		fid := m.newFace(false)
		hs := make([]HalfedgeID, n)
		for i := 0; i < n; i++ {
			h := m.newHalfedge()
			m.H(h).Vertex = vids[face[i]]
			m.H(h).Face = fid
			hs[i] = h
		}
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			m.H(hs[i]).Next = hs[j]
			halfedgeByKey[edgeKey{face[i], face[j]}] = hs[i]
		}
		m.F(fid).Halfedge = hs[0]
	}

	for key, h := range halfedgeByKey {
		if m.H(h).Edge != NilID {
			continue
		}
		twinKey := edgeKey{key.b, key.a}
		twin, ok := halfedgeByKey[twinKey]
		if !ok {
			twin = newBoundaryHalfedge(m, vids[key.b])
		}
		e := m.newEdge()
		m.E(e).Halfedge = h
		m.H(h).Edge = e
		m.H(h).Twin = twin
		m.H(twin).Edge = e
		m.H(twin).Twin = h
	}

	// Stitch boundary halfedges (Face == NilID) into boundary face
	// rings by following, from each one, the next boundary halfedge
	// around its destination vertex.
	for i := range m.Halfedges {
		h := HalfedgeID(i)
		if m.H(h).Face != NilID {
			continue
		}
		fid := m.newFace(true)
		m.F(fid).Halfedge = h
		cur := h
		for {
			m.H(cur).Face = fid
			next := boundaryNext(m, cur)
			if next == h {
				break
			}
			m.H(cur).Next = next
			cur = next
		}
		m.H(cur).Next = h
	}

	for i := range m.Vertices {
		v := VertexID(i)
		for j := range m.Halfedges {
			if m.H(HalfedgeID(j)).Vertex == v {
				m.V(v).Halfedge = HalfedgeID(j)
				break
			}
		}
	}

	return m
}

// newBoundaryHalfedge allocates a halfedge sourced at v with no face
// yet assigned; it is completed by the boundary-stitching pass.
func newBoundaryHalfedge(m *Mesh, v VertexID) HalfedgeID {
	h := m.newHalfedge()
	m.H(h).Vertex = v
	return h
}

// boundaryNext finds the next boundary halfedge sourced at cur's
// destination vertex, by walking that vertex's interior spokes until
// one that is itself boundary (no face yet, or a boundary face). The
// walk steps through interior face rings, since boundary halfedges
// have no Next until they are stitched.
func boundaryNext(m *Mesh, cur HalfedgeID) HalfedgeID {
	start := m.H(cur).Twin // outgoing from dest(cur)
	h := start
	for {
		if f := m.H(h).Face; f == NilID || m.F(f).Boundary {
			return h
		}
		h = m.H(ringPredecessor(m, m.H(h).Face, h)).Twin
		if h == start {
			break
		}
	}
	return cur
}
