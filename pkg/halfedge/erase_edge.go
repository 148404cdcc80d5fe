package halfedge

// EraseEdge merges the two faces incident to e into one by splicing
// their boundary rings together, dropping e and its two halfedges.
// Refuses when the two halfedges are each other's Next (removing
// would leave a disconnected sliver) or when both sides already
// belong to the same face (a bridge edge, removing it would
// disconnect the face from itself rather than merge two faces).
func (m *Mesh) EraseEdge(e EdgeID) (FaceID, error) {
	h0 := m.E(e).Halfedge
	h1 := m.H(h0).Twin
	f0 := m.H(h0).Face
	f1 := m.H(h1).Face

	if m.H(h0).Next == h1 || m.H(h1).Next == h0 {
		return NilID, refuse(ErrDisconnecting)
	}
	if f0 == f1 {
		return NilID, refuse(ErrSharedFace)
	}

	v1 := m.H(h0).Vertex
	v2 := m.H(h1).Vertex
	v1Next := m.H(h1).Next // ring-successor of h0 around v1 (h0.twin.next)
	v2Next := m.H(h0).Next // ring-successor of h1 around v2 (h1.twin.next)

	prev0 := ringPredecessor(m, f0, h0)
	prev1 := ringPredecessor(m, f1, h1)

	h1Next := m.H(h1).Next
	h0Next := m.H(h0).Next

	m.H(prev0).Next = h1Next
	m.H(prev1).Next = h0Next

	survivor := f0
	m.F(survivor).Boundary = m.F(f0).Boundary || m.F(f1).Boundary

	for cur := h1Next; ; cur = m.H(cur).Next {
		m.H(cur).Face = survivor
		if cur == prev0 {
			break
		}
	}

	m.F(survivor).Halfedge = h1Next
	m.eraseFaceEntity(f1)
	m.eraseHalfedgeEntity(h0)
	m.eraseHalfedgeEntity(h1)
	m.eraseEdgeEntity(e)

	if v1Next == h0 {
		m.V(v1).Halfedge = NilID
	} else {
		m.V(v1).Halfedge = v1Next
	}
	if v2Next == h1 {
		m.V(v2).Halfedge = NilID
	} else {
		m.V(v2).Halfedge = v2Next
	}

	return survivor, nil
}

// ringPredecessor returns the id of the halfedge whose Next is target,
// walking the face ring starting at f's representative halfedge.
func ringPredecessor(m *Mesh, f FaceID, target HalfedgeID) HalfedgeID {
	cur := m.F(f).Halfedge
	for m.H(cur).Next != target {
		cur = m.H(cur).Next
	}
	return cur
}
