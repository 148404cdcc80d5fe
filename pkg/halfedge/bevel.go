package halfedge

// BevelFace inset-extrudes f: it shrinks f's ring into a smaller copy
// offset along the face normal and connects the two rings with a band
// of new quad faces, one per original edge. It returns the new faces
// in winding order, beginning with the inset face; callers reposition
// the inset ring afterward via BevelFacePositions.
func (m *Mesh) BevelFace(f FaceID) ([]FaceID, error) {
	if m.F(f).Boundary {
		return nil, refuse(ErrBoundaryFace)
	}

	var outer []HalfedgeID
	m.ForEachFaceHalfedge(f, func(h HalfedgeID) { outer = append(outer, h) })
	n := len(outer)
	if n < 3 {
		return nil, refuse(ErrDegenerate)
	}

	inner := make([]VertexID, n)
	for i, h := range outer {
		v := m.H(h).Vertex
		inner[i] = m.newVertex(m.V(v).Pos)
	}

	// New topology per outer edge i (outer[i]: a -> b, a=outer[i].Vertex,
	// b=outer[i+1].Vertex): a quad (a, b, inner[i+1], inner[i]) plus the
	// spokes a-inner[i] and b-inner[i+1] shared between adjacent quads.
	spokeOut := make([]HalfedgeID, n) // a -> inner[i]
	spokeIn := make([]HalfedgeID, n)  // inner[i] -> a
	for i := 0; i < n; i++ {
		a := m.H(outer[i]).Vertex
		edge := m.newEdge()
		hOut := m.newHalfedge()
		hIn := m.newHalfedge()
		m.H(hOut).Twin, m.H(hIn).Twin = hIn, hOut
		m.H(hOut).Edge, m.H(hIn).Edge = edge, edge
		m.E(edge).Halfedge = hOut
		m.H(hOut).Vertex = a
		m.H(hIn).Vertex = inner[i]
		spokeOut[i] = hOut
		spokeIn[i] = hIn
	}

	// innerRing[i] runs I_i -> I_{i+1} and bounds innerFace; its twin
	// runs I_{i+1} -> I_i and bounds quadFaces[i].
	innerRing := make([]HalfedgeID, n)
	innerRingTwin := make([]HalfedgeID, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edge := m.newEdge()
		h := m.newHalfedge()
		hTwin := m.newHalfedge()
		m.H(h).Twin, m.H(hTwin).Twin = hTwin, h
		m.H(h).Edge, m.H(hTwin).Edge = edge, edge
		m.E(edge).Halfedge = h
		m.H(h).Vertex = inner[i]
		m.H(hTwin).Vertex = inner[j]
		innerRing[i] = h
		innerRingTwin[i] = hTwin
	}

	quadFaces := make([]FaceID, n)
	for i := 0; i < n; i++ {
		quadFaces[i] = m.newFace(false)
	}
	innerFace := m.newFace(false)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		// quad i: V_i -> V_j (outer[i]) -> I_j (spokeOut[j]) -> I_i
		// (innerRingTwin[i]) -> V_i (spokeIn[i]).
		a := outer[i]
		m.H(a).Face = quadFaces[i]
		m.H(a).Next = spokeOut[j]
		m.H(spokeOut[j]).Next = innerRingTwin[i]
		m.H(spokeOut[j]).Face = quadFaces[i]
		m.H(innerRingTwin[i]).Face = quadFaces[i]
		m.H(innerRingTwin[i]).Next = spokeIn[i]
		m.H(spokeIn[i]).Face = quadFaces[i]
		m.H(spokeIn[i]).Next = a
		m.F(quadFaces[i]).Halfedge = a

		m.H(innerRing[i]).Face = innerFace
		m.H(innerRing[i]).Next = innerRing[j]
	}
	m.F(innerFace).Halfedge = innerRing[0]

	result := make([]FaceID, 0, n+1)
	result = append(result, innerFace)
	result = append(result, quadFaces...)

	for i, h := range outer {
		m.V(m.H(h).Vertex).Halfedge = spokeOut[i]
		m.V(inner[i]).Halfedge = innerRing[i]
	}
	m.eraseFaceEntity(f)

	return result, nil
}

// BevelFacePositions repositions the inset ring produced by BevelFace,
// moving it inward by shrink (toward the ring centroid) and outward
// along the face normal by offset.
func (m *Mesh) BevelFacePositions(innerFace FaceID, shrink, offset float64) {
	centroid := m.FaceCentroid(innerFace)
	normal := m.FaceNormal(innerFace)
	m.ForEachFaceHalfedge(innerFace, func(h HalfedgeID) {
		v := m.H(h).Vertex
		pos := m.V(v).Pos
		pos = pos.Lerp(centroid, shrink)
		pos = pos.Add(normal.Scale(offset))
		m.V(v).Pos = pos
	})
}

// BevelVertex and BevelEdge, their counterparts that inset around a
// single vertex or split an edge into a band, are not implemented;
// both degenerate to repeated BevelFace/SplitEdge composition with no
// behavior BevelFace doesn't already cover for this engine's editing
// surface.
func (m *Mesh) BevelVertex(VertexID) (FaceID, error) {
	return NilID, refuse(ErrNotSupported)
}

func (m *Mesh) BevelEdge(EdgeID) (FaceID, error) {
	return NilID, refuse(ErrNotSupported)
}
