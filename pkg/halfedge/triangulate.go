package halfedge

// TriangulateFace fans f from its first vertex into degree-2 fewer new
// triangles, leaving f itself as the first triangle. No-op on faces
// already triangles or smaller.
func (m *Mesh) TriangulateFace(f FaceID) error {
	if m.F(f).Boundary {
		return refuse(ErrBoundaryFace)
	}
	n := m.FaceDegree(f)
	if n <= 3 {
		return nil
	}

	h0 := m.F(f).Halfedge
	root := m.H(h0).Vertex
	h1 := m.H(h0).Next

	for i := 0; i < n-3; i++ {
		h2 := m.H(h1).Next
		far := m.H(h2).Vertex

		edge := m.newEdge()
		spoke := m.newHalfedge()  // far -> root, closes current triangle
		spokeT := m.newHalfedge() // root -> far, opens the next
		m.H(spoke).Twin, m.H(spokeT).Twin = spokeT, spoke
		m.H(spoke).Edge, m.H(spokeT).Edge = edge, edge
		m.E(edge).Halfedge = spoke
		m.H(spoke).Vertex = far
		m.H(spokeT).Vertex = root

		tri := f
		if i > 0 {
			tri = m.newFace(false)
		}

		m.H(h0).Next = h1
		m.H(h0).Face = tri
		m.H(h1).Next = spoke
		m.H(h1).Face = tri
		m.H(spoke).Next = h0
		m.H(spoke).Face = tri
		m.F(tri).Halfedge = h0

		h0 = spokeT
		h1 = h2
	}

	h2 := m.H(h1).Next
	lastFace := m.newFace(false)
	m.H(h0).Next = h1
	m.H(h0).Face = lastFace
	m.H(h1).Next = h2
	m.H(h1).Face = lastFace
	m.H(h2).Next = h0
	m.H(h2).Face = lastFace
	m.F(lastFace).Halfedge = h0

	return nil
}
