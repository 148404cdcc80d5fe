package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/trophy/pkg/halfedge"
	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/models"
)

// opFlag collects repeated -op occurrences in command-line order, so
// e.g. two -flip=3 -collapse=5 apply as a sequence rather than the
// last one winning.
type opFlag struct {
	name string
	arg  string
}

type opFlags []opFlag

func (o *opFlags) String() string { return "" }

func (o *opFlags) set(name string) func(string) error {
	return func(v string) error {
		*o = append(*o, opFlag{name: name, arg: v})
		return nil
	}
}

func runEditCmd(args []string) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	out := fs.String("out", "", "output path for the edited model (.glb); defaults to <input>.edited.glb")
	subdivideRule := fs.String("subdivide-rule", "catmull-clark", "subdivision rule for -subdivide: linear or catmull-clark")
	simplifyTarget := fs.Int("simplify", 0, "collapse edges via quadric error until at most this many faces remain")
	triangulateAll := fs.Bool("triangulate", false, "fan-triangulate every non-triangular face")
	subdivideN := fs.Int("subdivide", 0, "subdivide the mesh this many times")

	var ops opFlags
	fs.Func("flip", "flip the edge at this index", ops.set("flip"))
	fs.Func("split", "split the edge at this index", ops.set("split"))
	fs.Func("collapse", "collapse the edge at this index", ops.set("collapse"))
	fs.Func("erase-edge", "erase the edge at this index, merging its two faces", ops.set("erase-edge"))
	fs.Func("erase-vertex", "erase the vertex at this index, merging its incident faces", ops.set("erase-vertex"))
	fs.Func("bevel", "bevel the face at this index", ops.set("bevel"))

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "trophy edit - half-edge mesh editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: trophy edit [options] <model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Local operations (repeatable, applied in the order given):\n")
		fmt.Fprintf(os.Stderr, "  -flip=N -split=N -collapse=N -erase-edge=N -erase-vertex=N -bevel=N\n\n")
		fmt.Fprintf(os.Stderr, "Global operations (applied once, after all local ops):\n")
		fmt.Fprintf(os.Stderr, "  -triangulate -subdivide=N -subdivide-rule=linear|catmull-clark -simplify=N\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}
	modelPath := fs.Arg(0)

	mesh, err := loadMesh(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	he := halfedge.FromFaceList(faceListFromMesh(mesh))

	for _, op := range ops {
		if err := applyOp(he, op); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s %s: %v\n", op.name, op.arg, err)
			os.Exit(1)
		}
	}
	he.Commit()

	if *triangulateAll {
		for f := range he.Faces {
			fid := halfedge.FaceID(f)
			if he.FaceErased(fid) {
				continue
			}
			if err := he.TriangulateFace(fid); err != nil && !errors.Is(err, halfedge.ErrBoundaryFace) {
				fmt.Fprintf(os.Stderr, "Error: triangulate face %d: %v\n", f, err)
				os.Exit(1)
			}
		}
		he.Commit()
	}

	if *subdivideN > 0 {
		rule := halfedge.CatmullClark
		if strings.EqualFold(*subdivideRule, "linear") {
			rule = halfedge.Linear
		}
		for i := 0; i < *subdivideN; i++ {
			he.SubdividePositions(rule)
			he = he.RebuildSubdivided()
		}
	}

	if *simplifyTarget > 0 {
		n := he.Simplify(*simplifyTarget)
		fmt.Printf("Simplified: %d edges collapsed, %d faces remain\n", n, he.FaceCount())
		he.Commit()
	}

	if err := he.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: mesh failed validation after edits: %v\n", err)
	}

	result := meshFromFaceList(he)
	result.CalculateNormals()

	outPath := *out
	if outPath == "" {
		ext := filepath.Ext(modelPath)
		outPath = strings.TrimSuffix(modelPath, ext) + ".edited.glb"
	}
	if err := models.WriteGLB(result, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: write %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d vertices, %d faces)\n", outPath, result.VertexCount(), result.TriangleCount())
}

func applyOp(m *halfedge.Mesh, op opFlag) error {
	n, err := strconv.Atoi(op.arg)
	if err != nil {
		return fmt.Errorf("invalid index %q: %w", op.arg, err)
	}
	switch op.name {
	case "flip":
		_, err := m.FlipEdge(halfedge.EdgeID(n))
		return err
	case "split":
		_, err := m.SplitEdge(halfedge.EdgeID(n))
		return err
	case "collapse":
		_, err := m.CollapseEdge(halfedge.EdgeID(n))
		return err
	case "erase-edge":
		_, err := m.EraseEdge(halfedge.EdgeID(n))
		return err
	case "erase-vertex":
		_, err := m.EraseVertex(halfedge.VertexID(n))
		return err
	case "bevel":
		_, err := m.BevelFace(halfedge.FaceID(n))
		return err
	default:
		return fmt.Errorf("unknown operation %q", op.name)
	}
}

// loadMesh loads an OBJ or GLB model, matching the formats the view
// subcommand accepts.
func loadMesh(path string) (*models.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return models.LoadGLB(path)
	case ".obj":
		return models.LoadOBJ(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj or .glb)", filepath.Ext(path))
	}
}

// faceListFromMesh converts a triangle-soup models.Mesh into the
// polygon-soup shape halfedge.FromFaceList expects.
func faceListFromMesh(mesh *models.Mesh) halfedge.FaceList {
	positions := make([]math3d.Vec3, mesh.VertexCount())
	for i := range positions {
		pos, _, _ := mesh.GetVertex(i)
		positions[i] = pos
	}
	faces := make([][]int, mesh.TriangleCount())
	for i := range faces {
		tri := mesh.GetFace(i)
		faces[i] = []int{tri[0], tri[1], tri[2]}
	}
	return halfedge.FaceList{Positions: positions, Faces: faces}
}

// meshFromFaceList converts a half-edge mesh's triangle soup back into
// a models.Mesh, ready for writing out or rasterizing.
func meshFromFaceList(m *halfedge.Mesh) *models.Mesh {
	positions, tris := m.ToTriangleSoup()
	result := models.NewMesh("edited")
	result.Vertices = make([]models.MeshVertex, len(positions))
	for i, p := range positions {
		result.Vertices[i] = models.MeshVertex{Position: p}
	}
	result.Faces = make([]models.Face, len(tris))
	for i, t := range tris {
		result.Faces[i] = models.Face{V: [3]int{t[0], t[1], t[2]}}
	}
	return result
}
