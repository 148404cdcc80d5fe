package halfedge

import (
	"math"
	"testing"

	"github.com/taigrr/trophy/pkg/math3d"
)

// quadMesh returns a unit square split into two triangles sharing the
// A-C diagonal: A(0,0,0) B(1,0,0) C(1,1,0) D(0,1,0).
func quadMesh() *Mesh {
	return FromFaceList(FaceList{
		Positions: []math3d.Vec3{
			math3d.V3(0, 0, 0),
			math3d.V3(1, 0, 0),
			math3d.V3(1, 1, 0),
			math3d.V3(0, 1, 0),
		},
		Faces: [][]int{{0, 1, 2}, {0, 2, 3}},
	})
}

// tetrahedron returns a closed 4-vertex, 4-face manifold with no
// boundary.
func tetrahedron() *Mesh {
	return FromFaceList(FaceList{
		Positions: []math3d.Vec3{
			math3d.V3(0, 0, 0),
			math3d.V3(1, 0, 0),
			math3d.V3(0, 1, 0),
			math3d.V3(0, 0, 1),
		},
		Faces: [][]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}},
	})
}

// findEdge returns the edge connecting vertices a and b, failing the
// test if none exists.
func findEdge(t *testing.T, m *Mesh, a, b VertexID) EdgeID {
	t.Helper()
	for i := range m.Edges {
		e := EdgeID(i)
		if m.EdgeErased(e) {
			continue
		}
		h := m.E(e).Halfedge
		v1, v2 := m.H(h).Vertex, m.H(m.H(h).Twin).Vertex
		if (v1 == a && v2 == b) || (v1 == b && v2 == a) {
			return e
		}
	}
	t.Fatalf("no edge between vertices %d and %d", a, b)
	return NilID
}

func TestFlipEdgeOnQuad(t *testing.T) {
	m := quadMesh()
	diag := findEdge(t, m, 0, 2)

	if _, err := m.FlipEdge(diag); err != nil {
		t.Fatalf("FlipEdge: %v", err)
	}

	a, b := m.H(m.E(diag).Halfedge).Vertex, m.H(m.H(m.E(diag).Halfedge).Twin).Vertex
	if !(a == 1 && b == 3 || a == 3 && b == 1) {
		t.Errorf("expected flipped diagonal between B and D, got %d-%d", a, b)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate after flip: %v", err)
	}
}

func TestFlipEdgeRefusesBoundary(t *testing.T) {
	m := quadMesh()
	boundary := findEdge(t, m, 0, 1)
	if _, err := m.FlipEdge(boundary); err == nil {
		t.Fatal("expected refusal flipping a boundary edge")
	}
}

func TestSplitEdgeOnQuad(t *testing.T) {
	m := quadMesh()
	diag := findEdge(t, m, 0, 2)

	mid, err := m.SplitEdge(diag)
	if err != nil {
		t.Fatalf("SplitEdge: %v", err)
	}

	want := math3d.V3(0.5, 0.5, 0)
	got := m.V(mid).Pos
	if got.Distance(want) > 1e-9 {
		t.Errorf("midpoint = %v, want %v", got, want)
	}
	if m.FaceCount() != 4 {
		t.Errorf("FaceCount = %d, want 4", m.FaceCount())
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate after split: %v", err)
	}
}

func TestCollapseEdgeOnQuad(t *testing.T) {
	m := quadMesh()
	diag := findEdge(t, m, 0, 2)

	survivor, err := m.CollapseEdge(diag)
	if err != nil {
		t.Fatalf("CollapseEdge: %v", err)
	}

	want := math3d.V3(0.5, 0.5, 0)
	if got := m.V(survivor).Pos; got.Distance(want) > 1e-9 {
		t.Errorf("collapsed vertex = %v, want %v", got, want)
	}
	if m.VertexCount() != 3 {
		t.Errorf("VertexCount = %d, want 3", m.VertexCount())
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate after collapse: %v", err)
	}
}

func TestEraseEdgeMergesQuad(t *testing.T) {
	m := quadMesh()
	diag := findEdge(t, m, 0, 2)

	survivor, err := m.EraseEdge(diag)
	if err != nil {
		t.Fatalf("EraseEdge: %v", err)
	}
	if m.FaceCount() != 1 {
		t.Fatalf("FaceCount = %d, want 1", m.FaceCount())
	}
	if m.FaceDegree(survivor) != 4 {
		t.Errorf("merged face degree = %d, want 4", m.FaceDegree(survivor))
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate after erase: %v", err)
	}
}

func TestEraseEdgeOnTetrahedron(t *testing.T) {
	m := tetrahedron()
	e := findEdge(t, m, 0, 1)

	survivor, err := m.EraseEdge(e)
	if err != nil {
		t.Fatalf("EraseEdge: %v", err)
	}
	if m.FaceCount() != 3 {
		t.Errorf("FaceCount = %d, want 3", m.FaceCount())
	}
	if m.FaceDegree(survivor) != 4 {
		t.Errorf("merged face degree = %d, want 4", m.FaceDegree(survivor))
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate after erase: %v", err)
	}
}

func TestEraseVertexOnTetrahedron(t *testing.T) {
	m := tetrahedron()

	survivor, err := m.EraseVertex(0)
	if err != nil {
		t.Fatalf("EraseVertex: %v", err)
	}
	if m.VertexCount() != 3 {
		t.Errorf("VertexCount = %d, want 3", m.VertexCount())
	}
	if m.FaceCount() != 2 {
		t.Errorf("FaceCount = %d, want 2", m.FaceCount())
	}
	if m.FaceDegree(survivor) != 3 {
		t.Errorf("merged face degree = %d, want 3", m.FaceDegree(survivor))
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate after erase vertex: %v", err)
	}
}

func TestEraseLastVertexRefused(t *testing.T) {
	m := NewMesh()
	v := m.newVertex(math3d.Zero3())
	if _, err := m.EraseVertex(v); err == nil {
		t.Fatal("expected refusal erasing the last vertex")
	}
}

func TestBevelFace(t *testing.T) {
	m := quadMesh()
	diag := findEdge(t, m, 0, 2)
	quad, err := m.EraseEdge(diag)
	if err != nil {
		t.Fatalf("EraseEdge: %v", err)
	}
	m.Commit()

	faces, err := m.BevelFace(quad)
	if err != nil {
		t.Fatalf("BevelFace: %v", err)
	}
	if len(faces) != 5 {
		t.Fatalf("BevelFace returned %d faces, want 5 (1 inner + 4 sides)", len(faces))
	}
	if m.FaceCount() != 5 {
		t.Errorf("FaceCount = %d, want 5", m.FaceCount())
	}

	m.BevelFacePositions(faces[0], 0.5, 0.1)
	if err := m.Validate(); err != nil {
		t.Errorf("Validate after bevel: %v", err)
	}
}

func TestTriangulateFacePentagon(t *testing.T) {
	m := FromFaceList(FaceList{
		Positions: []math3d.Vec3{
			math3d.V3(0, 0, 0),
			math3d.V3(1, 0, 0),
			math3d.V3(1.5, 1, 0),
			math3d.V3(0.5, 1.8, 0),
			math3d.V3(-0.5, 1, 0),
		},
		Faces: [][]int{{0, 1, 2, 3, 4}},
	})
	var face FaceID
	for f := range m.Faces {
		if !m.Faces[f].Boundary {
			face = FaceID(f)
			break
		}
	}

	if err := m.TriangulateFace(face); err != nil {
		t.Fatalf("TriangulateFace: %v", err)
	}
	if m.FaceCount() != 3 {
		t.Errorf("FaceCount = %d, want 3", m.FaceCount())
	}
	for f := range m.Faces {
		fid := FaceID(f)
		if m.FaceErased(fid) || m.F(fid).Boundary {
			continue
		}
		if d := m.FaceDegree(fid); d != 3 {
			t.Errorf("face %d has degree %d, want 3", f, d)
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate after triangulate: %v", err)
	}
}

// unitCube returns an 8-vertex, 6-quad-face closed cube.
func unitCube() *Mesh {
	return FromFaceList(FaceList{
		Positions: []math3d.Vec3{
			math3d.V3(-1, -1, -1), math3d.V3(1, -1, -1), math3d.V3(1, 1, -1), math3d.V3(-1, 1, -1),
			math3d.V3(-1, -1, 1), math3d.V3(1, -1, 1), math3d.V3(1, 1, 1), math3d.V3(-1, 1, 1),
		},
		Faces: [][]int{
			{0, 1, 2, 3},
			{5, 4, 7, 6},
			{4, 0, 3, 7},
			{1, 5, 6, 2},
			{3, 2, 6, 7},
			{4, 5, 1, 0},
		},
	})
}

func TestSubdivideCatmullClarkCube(t *testing.T) {
	m := unitCube()
	sub := m.Subdivide(CatmullClark)

	if sub.FaceCount() != 24 {
		t.Errorf("FaceCount = %d, want 24 (6 faces * 4 quads each)", sub.FaceCount())
	}
	if err := sub.Validate(); err != nil {
		t.Errorf("Validate after subdivide: %v", err)
	}

	// Catmull-Clark smooths corners inward; every vertex should end up
	// inside the original cube's bounding box (face points stay on the
	// original faces, so the bound is inclusive).
	for i := range sub.Vertices {
		p := sub.V(VertexID(i)).Pos
		if math.Abs(p.X) > 1 || math.Abs(p.Y) > 1 || math.Abs(p.Z) > 1 {
			t.Errorf("vertex %d = %v escaped the original cube bounds", i, p)
		}
	}
}

func TestSubdivideLinearCube(t *testing.T) {
	m := unitCube()
	sub := m.Subdivide(Linear)
	if sub.FaceCount() != 24 {
		t.Errorf("FaceCount = %d, want 24", sub.FaceCount())
	}
	// Linear subdivision keeps original corners fixed in place.
	found := 0
	for i := range sub.Vertices {
		p := sub.V(VertexID(i)).Pos
		if math.Abs(math.Abs(p.X)-1) < 1e-9 && math.Abs(math.Abs(p.Y)-1) < 1e-9 && math.Abs(math.Abs(p.Z)-1) < 1e-9 {
			found++
		}
	}
	if found != 8 {
		t.Errorf("found %d preserved corners, want 8", found)
	}
}

func TestSimplifyReducesFaceCount(t *testing.T) {
	m := unitCube().Subdivide(Linear) // 24 faces, plenty of collapsible edges
	n := m.Simplify(8)
	if n == 0 {
		t.Fatal("Simplify collapsed no edges")
	}
	m.Commit()
	if m.FaceCount() > 24 {
		t.Errorf("FaceCount = %d, should not exceed starting count", m.FaceCount())
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate after simplify: %v", err)
	}
}

func TestToTriangleSoupRoundTrip(t *testing.T) {
	m := tetrahedron()
	positions, tris := m.ToTriangleSoup()
	if len(positions) != 4 {
		t.Errorf("len(positions) = %d, want 4", len(positions))
	}
	if len(tris) != 4 {
		t.Errorf("len(tris) = %d, want 4", len(tris))
	}

	rebuilt := FromFaceList(FaceList{Positions: positions, Faces: intTriSliceOf(tris)})
	if err := rebuilt.Validate(); err != nil {
		t.Errorf("Validate on rebuilt mesh: %v", err)
	}
	if rebuilt.FaceCount() != 4 {
		t.Errorf("rebuilt FaceCount = %d, want 4", rebuilt.FaceCount())
	}
}

func intTriSliceOf(tris [][3]int) [][]int {
	out := make([][]int, len(tris))
	for i, t := range tris {
		out[i] = []int{t[0], t[1], t[2]}
	}
	return out
}

func TestValidateCatchesBrokenTwin(t *testing.T) {
	m := tetrahedron()
	// Repoint halfedge 0's twin at some other halfedge that isn't
	// actually paired back to it, breaking the involution invariant.
	h0 := HalfedgeID(0)
	origTwin := m.H(h0).Twin
	broken := HalfedgeID((int(origTwin) + 1) % len(m.Halfedges))
	if broken == h0 {
		broken = HalfedgeID((int(broken) + 1) % len(m.Halfedges))
	}
	m.H(h0).Twin = broken

	if err := m.Validate(); err == nil {
		t.Fatal("expected Validate to catch the broken twin link")
	}
}
