package halfedge

// FlipEdge replaces the edge between two triangles with the opposite
// diagonal of the quad they form. Refuses on boundary edges. Returns
// the flipped edge's id on success.
//
// Let e = (A,B) with halfedges h0 (A->B, face f0) and h3 = h0.Twin
// (B->A, face f1). Let C = next.next.vertex on f0 and D =
// next.next.vertex on f1. After the flip, e connects C and D: h0
// becomes D->C in f0 = (A,D,C) and h3 becomes C->D in f1 = (B,C,D).
func (m *Mesh) FlipEdge(e EdgeID) (EdgeID, error) {
	h0 := m.E(e).Halfedge
	h3 := m.H(h0).Twin
	f0 := m.H(h0).Face
	f1 := m.H(h3).Face

	if m.F(f0).Boundary || m.F(f1).Boundary {
		return NilID, refuse(ErrBoundaryEdge)
	}

	h1 := m.H(h0).Next
	h2 := m.H(h1).Next
	h4 := m.H(h3).Next
	h5 := m.H(h4).Next

	a := m.H(h0).Vertex
	b := m.H(h3).Vertex
	c := m.H(h2).Vertex
	d := m.H(h5).Vertex

	m.H(h0).Vertex = d
	m.H(h0).Next = h2
	m.H(h0).Face = f0

	m.H(h2).Next = h4
	m.H(h2).Face = f0

	m.H(h4).Next = h0
	m.H(h4).Face = f0

	m.H(h3).Vertex = c
	m.H(h3).Next = h5
	m.H(h3).Face = f1

	m.H(h5).Next = h1
	m.H(h5).Face = f1

	m.H(h1).Next = h3
	m.H(h1).Face = f1

	m.F(f0).Halfedge = h0
	m.F(f1).Halfedge = h3

	m.V(a).Halfedge = h4
	m.V(b).Halfedge = h1

	return e, nil
}
