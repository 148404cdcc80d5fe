package models

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/trophy/pkg/math3d"
)

// LoadOBJ parses a Wavefront OBJ file into a triangle-soup Mesh.
// Supports v/vn/vt/f lines; faces may be polygons (fan-triangulated)
// and vertex references may mix the v, v/vt, v//vn and v/vt/vn forms,
// plus negative (relative-to-current-end) indices. Materials are not
// parsed: OBJ is loaded as a plain position/normal/uv mesh.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	var positions []math3d.Vec3
	var normals []math3d.Vec3
	var uvs []math3d.Vec2

	type objVertex struct {
		posIdx, uvIdx, normIdx int // 0-based, -1 if absent
	}
	vertexIndex := make(map[objVertex]int)
	base := filepath.Base(path)
	mesh := NewMesh(strings.TrimSuffix(base, filepath.Ext(base)))

	vertexFor := func(ov objVertex) int {
		if idx, ok := vertexIndex[ov]; ok {
			return idx
		}
		var mv MeshVertex
		mv.Position = positions[ov.posIdx]
		if ov.normIdx >= 0 {
			mv.Normal = normals[ov.normIdx]
		}
		if ov.uvIdx >= 0 {
			mv.UV = uvs[ov.uvIdx]
		}
		idx := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, mv)
		vertexIndex[ov] = idx
		return idx
	}

	resolveIndex := func(raw string, count int) (int, error) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return count + n, nil
		}
		return n - 1, nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: malformed vertex", lineNo)
			}
			x, _ := strconv.ParseFloat(fields[1], 64)
			y, _ := strconv.ParseFloat(fields[2], 64)
			z, _ := strconv.ParseFloat(fields[3], 64)
			positions = append(positions, math3d.V3(x, y, z))

		case "vn":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: malformed normal", lineNo)
			}
			x, _ := strconv.ParseFloat(fields[1], 64)
			y, _ := strconv.ParseFloat(fields[2], 64)
			z, _ := strconv.ParseFloat(fields[3], 64)
			normals = append(normals, math3d.V3(x, y, z))

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("obj line %d: malformed texcoord", lineNo)
			}
			u, _ := strconv.ParseFloat(fields[1], 64)
			v, _ := strconv.ParseFloat(fields[2], 64)
			uvs = append(uvs, math3d.V2(u, v))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 vertices", lineNo)
			}
			corners := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				parts := strings.Split(ref, "/")
				ov := objVertex{posIdx: -1, uvIdx: -1, normIdx: -1}

				pi, err := resolveIndex(parts[0], len(positions))
				if err != nil {
					return nil, fmt.Errorf("obj line %d: bad vertex index %q: %w", lineNo, ref, err)
				}
				ov.posIdx = pi

				if len(parts) >= 2 && parts[1] != "" {
					ti, err := resolveIndex(parts[1], len(uvs))
					if err != nil {
						return nil, fmt.Errorf("obj line %d: bad uv index %q: %w", lineNo, ref, err)
					}
					ov.uvIdx = ti
				}
				if len(parts) >= 3 && parts[2] != "" {
					ni, err := resolveIndex(parts[2], len(normals))
					if err != nil {
						return nil, fmt.Errorf("obj line %d: bad normal index %q: %w", lineNo, ref, err)
					}
					ov.normIdx = ni
				}

				corners = append(corners, vertexFor(ov))
			}

			for i := 1; i+1 < len(corners); i++ {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{corners[0], corners[i], corners[i+1]}})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	hasNormals := len(normals) > 0
	mesh.CalculateBounds()
	if !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	return mesh, nil
}
