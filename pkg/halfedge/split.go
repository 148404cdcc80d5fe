package halfedge

// SplitEdge inserts a new vertex at the midpoint of e and re-triangulates
// the two adjacent faces into four around it. Both adjacent faces must
// be triangles. Refuses on boundary edges (the boundary case is a
// documented stub, per spec, rather than a full special-cased split)
// and on non-triangular interior faces.
//
// Before: faces f0=(A,B,C), f1=(B,A,D) sharing edge e=(A,B).
// After: f0=(A,M,C), new face=(M,B,C), f1=(B,M,D), new face=(M,A,D),
// where M is the new midpoint vertex. The original edge e is reused
// for the A-M side; M-B, M-C, M-D are newly allocated edges. M's
// outgoing halfedge is the A-M side (M->A), matching the original
// edge's direction rather than one of the three new spokes.
func (m *Mesh) SplitEdge(e EdgeID) (VertexID, error) {
	h0 := m.E(e).Halfedge
	h3 := m.H(h0).Twin
	f0 := m.H(h0).Face
	f1 := m.H(h3).Face

	if m.F(f0).Boundary || m.F(f1).Boundary {
		return NilID, refuse(ErrNotSupported)
	}
	if m.FaceDegree(f0) != 3 || m.FaceDegree(f1) != 3 {
		return NilID, refuse(ErrNonTriangle)
	}

	h1 := m.H(h0).Next
	h2 := m.H(h1).Next
	h4 := m.H(h3).Next
	h5 := m.H(h4).Next

	a := m.H(h0).Vertex
	b := m.H(h3).Vertex
	c := m.H(h2).Vertex
	d := m.H(h5).Vertex

	mid := m.V(a).Pos.Add(m.V(b).Pos).Scale(0.5)
	mv := m.newVertex(mid)
	m.V(mv).IsNew = true

	eMB := m.newEdge()
	eMC := m.newEdge()
	eMD := m.newEdge()
	m.E(eMB).IsNew = true
	m.E(eMC).IsNew = true
	m.E(eMD).IsNew = true

	hMC := m.newHalfedge()
	hCM := m.newHalfedge()
	hMB := m.newHalfedge()
	hBM := m.newHalfedge()
	hMD := m.newHalfedge()
	hDM := m.newHalfedge()

	f2 := m.newFace(false) // (M,B,C)
	f3 := m.newFace(false) // (M,A,D)

	m.H(hMC).Twin, m.H(hCM).Twin = hCM, hMC
	m.H(hMB).Twin, m.H(hBM).Twin = hBM, hMB
	m.H(hMD).Twin, m.H(hDM).Twin = hDM, hMD

	m.H(hMC).Edge, m.H(hCM).Edge = eMC, eMC
	m.H(hMB).Edge, m.H(hBM).Edge = eMB, eMB
	m.H(hMD).Edge, m.H(hDM).Edge = eMD, eMD
	m.E(eMC).Halfedge = hMC
	m.E(eMB).Halfedge = hMB
	m.E(eMD).Halfedge = hMD

	// f0 = (A, M, C): h0(A->M) -> hMC(M->C) -> h2(C->A)
	m.H(h0).Next = hMC
	m.H(h0).Face = f0
	m.H(hMC).Vertex = mv
	m.H(hMC).Next = h2
	m.H(hMC).Face = f0
	m.H(h2).Next = h0
	m.H(h2).Face = f0
	m.F(f0).Halfedge = h0

	// f2 = (M, B, C): hMB(M->B) -> h1(B->C) -> hCM(C->M)
	m.H(hMB).Vertex = mv
	m.H(hMB).Next = h1
	m.H(hMB).Face = f2
	m.H(h1).Next = hCM
	m.H(h1).Face = f2
	m.H(hCM).Vertex = c
	m.H(hCM).Next = hMB
	m.H(hCM).Face = f2
	m.F(f2).Halfedge = hMB

	// f1 = (B, M, D): hBM(B->M) -> hMD(M->D) -> h5(D->B)
	m.H(hBM).Vertex = b
	m.H(hBM).Next = hMD
	m.H(hBM).Face = f1
	m.H(hMD).Vertex = mv
	m.H(hMD).Next = h5
	m.H(hMD).Face = f1
	m.H(h5).Next = hBM
	m.H(h5).Face = f1
	m.F(f1).Halfedge = hBM

	// f3 = (M, A, D): h3(M->A) -> h4(A->D) -> hDM(D->M)
	m.H(h3).Vertex = mv
	m.H(h3).Next = h4
	m.H(h3).Face = f3
	m.H(h4).Next = hDM
	m.H(h4).Face = f3
	m.H(hDM).Vertex = d
	m.H(hDM).Next = h3
	m.H(hDM).Face = f3
	m.F(f3).Halfedge = h3

	m.V(mv).Halfedge = h3 // along the original edge's direction
	m.V(a).Halfedge = h0
	m.V(b).Halfedge = hBM
	m.V(c).Halfedge = h2
	m.V(d).Halfedge = h5

	return mv, nil
}
