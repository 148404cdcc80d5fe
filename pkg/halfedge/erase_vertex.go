package halfedge

// EraseVertex removes v and merges every face around it into one. For
// each consecutive pair of outgoing halfedges around v, the
// intermediate face's boundary (minus its two spokes touching v) is
// relabelled onto a single surviving face and spliced to the boundary
// of the face before it in rotation order, so the n incident faces become one n-sided-hole
// patch. Refuses if v is the mesh's last remaining vertex.
func (m *Mesh) EraseVertex(v VertexID) (FaceID, error) {
	if m.VertexCount() <= 1 {
		return NilID, refuse(ErrLastVertex)
	}

	var spokes []HalfedgeID
	m.ForEachOutgoing(v, func(h HalfedgeID) {
		spokes = append(spokes, h)
	})
	n := len(spokes)
	if n == 0 {
		return NilID, refuse(ErrDegenerate)
	}

	faces := make([]FaceID, n)
	starts := make([]HalfedgeID, n)
	tails := make([]HalfedgeID, n)
	for i, h := range spokes {
		faces[i] = m.H(h).Face
		starts[i] = m.H(h).Next
		entering := m.H(spokes[(i-1+n)%n]).Twin
		cur := starts[i]
		for m.H(cur).Next != entering {
			cur = m.H(cur).Next
		}
		tails[i] = cur
	}

	survivor := faces[0]
	m.F(survivor).Boundary = false
	for _, f := range faces {
		if m.F(f).Boundary {
			m.F(survivor).Boundary = true
		}
	}

	for i := 1; i < n; i++ {
		f := faces[i]
		if f == survivor {
			continue
		}
		for cur := starts[i]; ; cur = m.H(cur).Next {
			m.H(cur).Face = survivor
			if cur == tails[i] {
				break
			}
		}
		m.eraseFaceEntity(f)
	}

	// tails[i] ends at the far vertex of spokes[i-1], where starts[i-1]
	// begins.
	for i := 0; i < n; i++ {
		m.H(tails[i]).Next = starts[(i-1+n)%n]
	}
	m.F(survivor).Halfedge = starts[0]

	// Each spoke's twin (w -> v) is about to be erased; any neighbor w
	// whose outgoing pointer was that twin needs repointing to a
	// halfedge that still survives, exactly as BevelFace repoints its
	// outer-ring vertices. starts[i] = spokes[i].Next also originates
	// at w, so it's always a valid replacement.
	for i, h := range spokes {
		twin := m.H(h).Twin
		w := m.H(twin).Vertex
		if m.V(w).Halfedge == twin {
			m.V(w).Halfedge = starts[i]
		}
	}

	for _, h := range spokes {
		twin := m.H(h).Twin
		edge := m.H(h).Edge
		m.eraseHalfedgeEntity(h)
		m.eraseHalfedgeEntity(twin)
		m.eraseEdgeEntity(edge)
	}
	m.eraseVertexEntity(v)

	return survivor, nil
}
