package halfedge

// CollapseEdge merges the endpoints of e into one vertex at their
// midpoint. The two adjacent sides are handled independently: a
// triangular side disappears entirely, fusing its other two edges
// into one; a non-triangular side simply loses the one halfedge
// bordering e. Every remaining outgoing halfedge of the eliminated
// endpoint is redirected to the surviving vertex. Refuses on the
// degenerate case of a self-loop edge; harder non-manifold-producing
// collapses are expected to be screened by EdgeCollapsable before
// CollapseEdge is called, not re-validated here.
func (m *Mesh) CollapseEdge(e EdgeID) (VertexID, error) {
	h0 := m.E(e).Halfedge
	h1 := m.H(h0).Twin
	v1 := m.H(h0).Vertex
	v2 := m.H(h1).Vertex

	if v1 == v2 {
		return NilID, refuse(ErrDegenerate)
	}

	var outgoingV1, outgoingV2 []HalfedgeID
	m.ForEachOutgoing(v1, func(h HalfedgeID) { outgoingV1 = append(outgoingV1, h) })
	m.ForEachOutgoing(v2, func(h HalfedgeID) { outgoingV2 = append(outgoingV2, h) })

	mid := m.V(v1).Pos.Add(m.V(v2).Pos).Scale(0.5)

	m.collapseSide(h0)
	m.collapseSide(h1)

	for _, h := range outgoingV2 {
		m.H(h).Vertex = v1
	}

	m.V(v1).Pos = mid
	m.eraseHalfedgeEntity(h0)
	m.eraseHalfedgeEntity(h1)
	m.eraseEdgeEntity(e)
	m.eraseVertexEntity(v2)

	m.V(v1).Halfedge = NilID
	for _, h := range outgoingV2 {
		if h == h1 || m.HalfedgeErased(h) {
			continue
		}
		m.V(v1).Halfedge = h
		break
	}
	if m.V(v1).Halfedge == NilID {
		for _, h := range outgoingV1 {
			if h == h0 || m.HalfedgeErased(h) {
				continue
			}
			m.V(v1).Halfedge = h
			break
		}
	}

	m.collapseBoundaryCleanup(v1)

	return v1, nil
}

// collapseSide handles one face adjacent to the edge being collapsed,
// given the halfedge h belonging to that face. h itself is erased by
// the caller once both sides have been processed.
func (m *Mesh) collapseSide(h HalfedgeID) {
	f := m.H(h).Face

	if m.FaceDegree(f) == 3 {
		hA := m.H(h).Next
		hB := m.H(hA).Next
		x := m.H(hB).Vertex

		hATwin := m.H(hA).Twin
		hBTwin := m.H(hB).Twin
		edgeA := m.H(hA).Edge
		edgeB := m.H(hB).Edge

		m.H(hATwin).Twin = hBTwin
		m.H(hBTwin).Twin = hATwin
		m.H(hATwin).Edge = edgeB
		if m.E(edgeB).Halfedge == hB {
			m.E(edgeB).Halfedge = hBTwin
		}
		if m.V(x).Halfedge == hA || m.V(x).Halfedge == hB {
			m.V(x).Halfedge = hATwin
		}

		m.eraseHalfedgeEntity(hA)
		m.eraseHalfedgeEntity(hB)
		m.eraseFaceEntity(f)
		m.eraseEdgeEntity(edgeA)
		return
	}

	prev := ringPredecessor(m, f, h)
	next := m.H(h).Next
	m.H(prev).Next = next
	if m.F(f).Halfedge == h {
		m.F(f).Halfedge = next
	}
}

// collapseBoundaryCleanup erases any edge around the surviving vertex
// whose two sides are both boundary faces, the degenerate doubled
// boundary edge a collapse can leave behind.
func (m *Mesh) collapseBoundaryCleanup(v VertexID) {
	if m.V(v).Halfedge == NilID {
		return
	}
	var spokes []HalfedgeID
	m.ForEachOutgoing(v, func(h HalfedgeID) { spokes = append(spokes, h) })
	for _, h := range spokes {
		if m.HalfedgeErased(h) {
			continue
		}
		twin := m.H(h).Twin
		if m.F(m.H(h).Face).Boundary && m.F(m.H(twin).Face).Boundary {
			m.EraseEdge(m.H(h).Edge)
		}
	}
}
