package halfedge

// Remap records how handles shifted after a Commit sweep. A remapped
// value of NilID means the entity was erased.
type Remap struct {
	Vertex   []VertexID
	Edge     []EdgeID
	Halfedge []HalfedgeID
	Face     []FaceID
}

// Commit physically removes every entity flagged by Erase and
// compacts the remaining handles, returning the remap table so
// callers holding stale handles can detect invalidation. Operations
// themselves never call Commit; it is run by surrounding tooling
// (typically right before Validate) once an edit is finished building
// its replacement topology.
func (m *Mesh) Commit() Remap {
	vRemap := compactRemapVertex(m.Vertices)
	eRemap := compactRemapEdge(m.Edges)
	hRemap := compactRemapHalfedge(m.Halfedges)
	fRemap := compactRemapFace(m.Faces)

	newVertices := make([]Vertex, 0, len(m.Vertices))
	for _, v := range m.Vertices {
		if v.erased {
			continue
		}
		if v.Halfedge != NilID {
			v.Halfedge = hRemap[v.Halfedge]
		}
		newVertices = append(newVertices, v)
	}

	newEdges := make([]Edge, 0, len(m.Edges))
	for _, e := range m.Edges {
		if e.erased {
			continue
		}
		if e.Halfedge != NilID {
			e.Halfedge = hRemap[e.Halfedge]
		}
		newEdges = append(newEdges, e)
	}

	newHalfedges := make([]Halfedge, 0, len(m.Halfedges))
	for _, h := range m.Halfedges {
		if h.erased {
			continue
		}
		if h.Twin != NilID {
			h.Twin = hRemap[h.Twin]
		}
		if h.Next != NilID {
			h.Next = hRemap[h.Next]
		}
		if h.Vertex != NilID {
			h.Vertex = vRemap[h.Vertex]
		}
		if h.Edge != NilID {
			h.Edge = eRemap[h.Edge]
		}
		if h.Face != NilID {
			h.Face = fRemap[h.Face]
		}
		newHalfedges = append(newHalfedges, h)
	}

	newFaces := make([]Face, 0, len(m.Faces))
	for _, f := range m.Faces {
		if f.erased {
			continue
		}
		if f.Halfedge != NilID {
			f.Halfedge = hRemap[f.Halfedge]
		}
		newFaces = append(newFaces, f)
	}

	m.Vertices = newVertices
	m.Edges = newEdges
	m.Halfedges = newHalfedges
	m.Faces = newFaces

	return Remap{Vertex: vRemap, Edge: eRemap, Halfedge: hRemap, Face: fRemap}
}

func compactRemapVertex(s []Vertex) []VertexID {
	remap := make([]VertexID, len(s))
	next := VertexID(0)
	for i, v := range s {
		if v.erased {
			remap[i] = NilID
			continue
		}
		remap[i] = next
		next++
	}
	return remap
}

func compactRemapEdge(s []Edge) []EdgeID {
	remap := make([]EdgeID, len(s))
	next := EdgeID(0)
	for i, v := range s {
		if v.erased {
			remap[i] = NilID
			continue
		}
		remap[i] = next
		next++
	}
	return remap
}

func compactRemapHalfedge(s []Halfedge) []HalfedgeID {
	remap := make([]HalfedgeID, len(s))
	next := HalfedgeID(0)
	for i, v := range s {
		if v.erased {
			remap[i] = NilID
			continue
		}
		remap[i] = next
		next++
	}
	return remap
}

func compactRemapFace(s []Face) []FaceID {
	remap := make([]FaceID, len(s))
	next := FaceID(0)
	for i, v := range s {
		if v.erased {
			remap[i] = NilID
			continue
		}
		remap[i] = next
		next++
	}
	return remap
}
