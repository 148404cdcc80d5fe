package halfedge

import (
	"errors"
	"fmt"
)

// Validate checks every combinatorial invariant of m and returns a
// joined error naming each violation found, or nil if m is consistent.
// Callers should Commit before Validate; erased-but-uncommitted
// entities are skipped.
func (m *Mesh) Validate() error {
	var errs []error

	for i := range m.Halfedges {
		if m.Halfedges[i].erased {
			continue
		}
		h := HalfedgeID(i)
		hd := m.H(h)
		if hd.Twin == NilID || hd.Next == NilID || hd.Vertex == NilID || hd.Edge == NilID || hd.Face == NilID {
			errs = append(errs, fmt.Errorf("halfedge %d: has a nil reference: %w", h, ErrNonManifold))
			continue
		}
		if m.HalfedgeErased(hd.Twin) {
			errs = append(errs, fmt.Errorf("halfedge %d: twin %d is erased: %w", h, hd.Twin, ErrNonManifold))
			continue
		}
		if m.HalfedgeErased(hd.Next) {
			errs = append(errs, fmt.Errorf("halfedge %d: next %d is erased: %w", h, hd.Next, ErrNonManifold))
			continue
		}
		twin := m.H(hd.Twin)
		if twin.Twin != h {
			errs = append(errs, fmt.Errorf("halfedge %d: twin is not involutive: %w", h, ErrNonManifold))
		}
		next := m.H(hd.Next)
		if next.Vertex != twin.Vertex {
			errs = append(errs, fmt.Errorf("halfedge %d: next.vertex != twin.vertex: %w", h, ErrNonManifold))
		}
		if m.EdgeErased(hd.Edge) {
			errs = append(errs, fmt.Errorf("halfedge %d: edge %d is erased: %w", h, hd.Edge, ErrNonManifold))
		} else if m.E(hd.Edge).Halfedge != h && m.H(m.E(hd.Edge).Halfedge).Edge != hd.Edge {
			errs = append(errs, fmt.Errorf("halfedge %d: edge back-reference is inconsistent: %w", h, ErrNonManifold))
		}
	}

	for i := range m.Vertices {
		if m.Vertices[i].erased {
			continue
		}
		v := VertexID(i)
		hv := m.V(v).Halfedge
		if hv == NilID {
			errs = append(errs, fmt.Errorf("vertex %d: has no outgoing halfedge: %w", v, ErrNonManifold))
			continue
		}
		if m.HalfedgeErased(hv) {
			errs = append(errs, fmt.Errorf("vertex %d: outgoing halfedge %d is erased: %w", v, hv, ErrNonManifold))
			continue
		}
		if m.H(hv).Vertex != v {
			errs = append(errs, fmt.Errorf("vertex %d: outgoing halfedge points elsewhere: %w", v, ErrNonManifold))
		}
	}

	for i := range m.Edges {
		if m.Edges[i].erased {
			continue
		}
		e := EdgeID(i)
		he := m.E(e).Halfedge
		if he == NilID {
			errs = append(errs, fmt.Errorf("edge %d: has no halfedge: %w", e, ErrNonManifold))
			continue
		}
		if m.HalfedgeErased(he) {
			errs = append(errs, fmt.Errorf("edge %d: halfedge %d is erased: %w", e, he, ErrNonManifold))
			continue
		}
		if m.H(he).Edge != e {
			errs = append(errs, fmt.Errorf("edge %d: halfedge back-reference is inconsistent: %w", e, ErrNonManifold))
		}
	}

	for i := range m.Faces {
		if m.Faces[i].erased {
			continue
		}
		f := FaceID(i)
		hf := m.F(f).Halfedge
		if hf == NilID {
			errs = append(errs, fmt.Errorf("face %d: has no halfedge: %w", f, ErrNonManifold))
			continue
		}
		if m.HalfedgeErased(hf) {
			errs = append(errs, fmt.Errorf("face %d: halfedge %d is erased: %w", f, hf, ErrNonManifold))
			continue
		}
		if m.FaceDegree(f) < 3 {
			errs = append(errs, fmt.Errorf("face %d: degenerate, degree < 3: %w", f, ErrNonManifold))
		}
		m.ForEachFaceHalfedge(f, func(h HalfedgeID) {
			if m.HalfedgeErased(h) {
				errs = append(errs, fmt.Errorf("face %d: ring member %d is erased: %w", f, h, ErrNonManifold))
				return
			}
			if m.H(h).Face != f {
				errs = append(errs, fmt.Errorf("face %d: ring member %d points to a different face: %w", f, h, ErrNonManifold))
			}
		})
	}

	return errors.Join(errs...)
}
