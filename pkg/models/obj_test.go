package models

import (
	"os"
	"path/filepath"
	"testing"
)

const testOBJ = `# a unit square, two triangles
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3
f 1/1 3/3 4/4
`

func writeTempOBJ(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "square.obj")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp obj: %v", err)
	}
	return path
}

func TestLoadOBJBasic(t *testing.T) {
	path := writeTempOBJ(t, testOBJ)

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}

	pos, _, uv := mesh.GetVertex(2)
	if pos.X != 1 || pos.Y != 1 || pos.Z != 0 {
		t.Errorf("vertex 2 position = %v, want (1,1,0)", pos)
	}
	if uv.X != 1 || uv.Y != 1 {
		t.Errorf("vertex 2 uv = %v, want (1,1)", uv)
	}
}

func TestLoadOBJComputesSmoothNormalsWhenAbsent(t *testing.T) {
	path := writeTempOBJ(t, testOBJ)

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	_, normal, _ := mesh.GetVertex(0)
	if normal.LenSq() == 0 {
		t.Error("expected a computed normal when the file has no vn lines")
	}
}

func TestLoadOBJNegativeIndices(t *testing.T) {
	const src = `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	path := writeTempOBJ(t, src)

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
	tri := mesh.GetFace(0)
	if tri[0] != 0 || tri[1] != 1 || tri[2] != 2 {
		t.Errorf("face = %v, want [0 1 2]", tri)
	}
}

func TestLoadOBJPolygonFanTriangulation(t *testing.T) {
	const src = `v 0 0 0
v 1 0 0
v 1 1 0
v 0.5 1.5 0
v 0 1 0
f 1 2 3 4 5
`
	path := writeTempOBJ(t, src)

	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.TriangleCount() != 3 {
		t.Errorf("TriangleCount = %d, want 3 (fan-triangulated pentagon)", mesh.TriangleCount())
	}
}

func TestLoadOBJMissingFile(t *testing.T) {
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadOBJNameFromFilename(t *testing.T) {
	path := writeTempOBJ(t, testOBJ)
	mesh, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if mesh.Name != "square" {
		t.Errorf("Name = %q, want %q", mesh.Name, "square")
	}
}
