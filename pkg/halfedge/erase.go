package halfedge

// eraseVertexEntity flags v for removal. The handle stays resolvable
// until the next Commit.
func (m *Mesh) eraseVertexEntity(v VertexID) { m.Vertices[v].erased = true }

// eraseEdgeEntity flags e for removal. Its two halfedges are not
// flagged; callers must flag them separately.
func (m *Mesh) eraseEdgeEntity(e EdgeID) { m.Edges[e].erased = true }

func (m *Mesh) eraseHalfedgeEntity(h HalfedgeID) { m.Halfedges[h].erased = true }

func (m *Mesh) eraseFaceEntity(f FaceID) { m.Faces[f].erased = true }

// VertexErased reports whether v has been flagged for removal but not
// yet swept by Commit.
func (m *Mesh) VertexErased(v VertexID) bool { return m.Vertices[v].erased }

// EdgeErased reports whether e has been flagged for removal.
func (m *Mesh) EdgeErased(e EdgeID) bool { return m.Edges[e].erased }

// HalfedgeErased reports whether h has been flagged for removal.
func (m *Mesh) HalfedgeErased(h HalfedgeID) bool { return m.Halfedges[h].erased }

// FaceErased reports whether f has been flagged for removal.
func (m *Mesh) FaceErased(f FaceID) bool { return m.Faces[f].erased }
