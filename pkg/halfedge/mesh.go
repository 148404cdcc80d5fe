// Package halfedge implements a half-edge polygon mesh with
// topology-preserving local and global editing operations.
//
// Entities are referenced by arena-index handles into the Mesh's four
// slices. Handles remain resolvable across unrelated edits; erasing an
// entity only flags it until a subsequent Commit sweep removes it, so
// operations can build replacement topology and tear down remnants in
// any convenient order without ever dereferencing a freed entity.
package halfedge

import "github.com/taigrr/trophy/pkg/math3d"

// VertexID, EdgeID, HalfedgeID and FaceID are arena indices into the
// corresponding Mesh slice. NilID marks an absent reference.
type (
	VertexID   int
	EdgeID     int
	HalfedgeID int
	FaceID     int
)

// NilID is the zero-value sentinel shared by all handle types.
const NilID = -1

// Vertex holds a position and one outgoing halfedge. NewPos and IsNew
// are scratch fields populated by subdivision and consumed by a
// downstream rebuild step.
type Vertex struct {
	Pos      math3d.Vec3
	Halfedge HalfedgeID
	NewPos   math3d.Vec3
	IsNew    bool
	erased   bool
}

// Edge is the undirected pair formed by two twin halfedges. NewPos and
// IsNew mirror Vertex's subdivision scratch fields.
type Edge struct {
	Halfedge HalfedgeID
	NewPos   math3d.Vec3
	IsNew    bool
	erased   bool
}

// Halfedge is one directed side of an Edge.
type Halfedge struct {
	Twin, Next HalfedgeID
	Vertex     VertexID
	Edge       EdgeID
	Face       FaceID
	erased     bool
}

// Face is bounded by a ring of halfedges connected via Next. Boundary
// faces are virtual faces that represent holes in the mesh; they are
// never rendered and are excluded from quadric accumulation. NewPos is
// a scratch field populated by subdivision and consumed by a
// downstream rebuild step.
type Face struct {
	Halfedge HalfedgeID
	Boundary bool
	NewPos   math3d.Vec3
	erased   bool
}

// Mesh is a half-edge mesh: four parallel arenas plus the cross
// references that link them.
type Mesh struct {
	Vertices  []Vertex
	Edges     []Edge
	Halfedges []Halfedge
	Faces     []Face
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

func (m *Mesh) newVertex(pos math3d.Vec3) VertexID {
	m.Vertices = append(m.Vertices, Vertex{Pos: pos, Halfedge: NilID})
	return VertexID(len(m.Vertices) - 1)
}

func (m *Mesh) newEdge() EdgeID {
	m.Edges = append(m.Edges, Edge{Halfedge: NilID})
	return EdgeID(len(m.Edges) - 1)
}

func (m *Mesh) newHalfedge() HalfedgeID {
	m.Halfedges = append(m.Halfedges, Halfedge{Twin: NilID, Next: NilID, Vertex: NilID, Edge: NilID, Face: NilID})
	return HalfedgeID(len(m.Halfedges) - 1)
}

func (m *Mesh) newFace(boundary bool) FaceID {
	m.Faces = append(m.Faces, Face{Halfedge: NilID, Boundary: boundary})
	return FaceID(len(m.Faces) - 1)
}

// V returns the vertex for id.
func (m *Mesh) V(id VertexID) *Vertex { return &m.Vertices[id] }

// E returns the edge for id.
func (m *Mesh) E(id EdgeID) *Edge { return &m.Edges[id] }

// H returns the halfedge for id.
func (m *Mesh) H(id HalfedgeID) *Halfedge { return &m.Halfedges[id] }

// F returns the face for id.
func (m *Mesh) F(id FaceID) *Face { return &m.Faces[id] }

// VertexCount returns the number of live (non-erased) vertices.
func (m *Mesh) VertexCount() int { return liveCount(len(m.Vertices), m.vertexErased) }

// EdgeCount returns the number of live (non-erased) edges.
func (m *Mesh) EdgeCount() int { return liveCount(len(m.Edges), m.edgeErased) }

// FaceCount returns the number of live, non-boundary faces.
func (m *Mesh) FaceCount() int {
	n := 0
	for i := range m.Faces {
		if !m.Faces[i].erased && !m.Faces[i].Boundary {
			n++
		}
	}
	return n
}

func (m *Mesh) vertexErased(i int) bool { return m.Vertices[i].erased }
func (m *Mesh) edgeErased(i int) bool   { return m.Edges[i].erased }

func liveCount(n int, erased func(int) bool) int {
	c := 0
	for i := 0; i < n; i++ {
		if !erased(i) {
			c++
		}
	}
	return c
}

// OtherVertex returns the vertex at the far end of edge e from v.
func (m *Mesh) OtherVertex(e EdgeID, v VertexID) VertexID {
	h := m.E(e).Halfedge
	if m.H(h).Vertex == v {
		return m.H(m.H(h).Twin).Vertex
	}
	return m.H(h).Vertex
}

// Midpoint returns the midpoint of edge e.
func (m *Mesh) Midpoint(e EdgeID) math3d.Vec3 {
	h := m.E(e).Halfedge
	a := m.V(m.H(h).Vertex).Pos
	b := m.V(m.H(m.H(h).Twin).Vertex).Pos
	return a.Add(b).Scale(0.5)
}

// VertexDegree returns the number of edges incident to v.
func (m *Mesh) VertexDegree(v VertexID) int {
	n := 0
	m.ForEachOutgoing(v, func(HalfedgeID) { n++ })
	return n
}

// ForEachOutgoing calls fn once for every halfedge leaving v, in
// rotational order (h -> h.twin.next).
func (m *Mesh) ForEachOutgoing(v VertexID, fn func(h HalfedgeID)) {
	start := m.V(v).Halfedge
	if start == NilID {
		return
	}
	h := start
	for {
		fn(h)
		h = m.H(m.H(h).Twin).Next
		if h == start {
			break
		}
	}
}

// FaceDegree returns the number of edges bounding f.
func (m *Mesh) FaceDegree(f FaceID) int {
	n := 0
	m.ForEachFaceHalfedge(f, func(HalfedgeID) { n++ })
	return n
}

// ForEachFaceHalfedge calls fn once for every halfedge bounding f, in
// winding order.
func (m *Mesh) ForEachFaceHalfedge(f FaceID, fn func(h HalfedgeID)) {
	start := m.F(f).Halfedge
	if start == NilID {
		return
	}
	h := start
	for {
		fn(h)
		h = m.H(h).Next
		if h == start {
			break
		}
	}
}

// FaceCentroid returns the average of f's vertex positions.
func (m *Mesh) FaceCentroid(f FaceID) math3d.Vec3 {
	sum := math3d.Vec3{}
	n := 0
	m.ForEachFaceHalfedge(f, func(h HalfedgeID) {
		sum = sum.Add(m.V(m.H(h).Vertex).Pos)
		n++
	})
	if n == 0 {
		return sum
	}
	return sum.Scale(1 / float64(n))
}

// FaceNormal returns the normalized normal of a planar face, computed
// from its first three vertices.
func (m *Mesh) FaceNormal(f FaceID) math3d.Vec3 {
	h0 := m.F(f).Halfedge
	h1 := m.H(h0).Next
	h2 := m.H(h1).Next
	p0 := m.V(m.H(h0).Vertex).Pos
	p1 := m.V(m.H(h1).Vertex).Pos
	p2 := m.V(m.H(h2).Vertex).Pos
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}
