package halfedge

import "errors"

// ErrRefused is the sentinel every operation-refusal error wraps, so
// callers can distinguish "refused" from a programming error with
// errors.Is(err, ErrRefused).
var ErrRefused = errors.New("operation refused")

// Refusal reasons. Each is wrapped with ErrRefused via refuse() so
// both errors.Is(err, ErrRefused) and errors.Is(err, ErrBoundaryEdge)
// (etc.) succeed.
var (
	ErrBoundaryEdge  = errors.New("edge is on the boundary")
	ErrNonTriangle   = errors.New("adjacent face is not a triangle")
	ErrDegenerate    = errors.New("operation would produce a degenerate or non-manifold mesh")
	ErrLastVertex    = errors.New("cannot erase the last vertex")
	ErrBoundaryFace  = errors.New("face is on the boundary")
	ErrDisconnecting = errors.New("operation would disconnect the mesh")
	ErrSharedFace    = errors.New("halfedge sides share the same face")
	ErrNotSupported  = errors.New("operation not supported")
	ErrNonManifold   = errors.New("mesh invariant violated")
)

// refuse wraps a specific reason alongside ErrRefused.
func refuse(reason error) error {
	return errors.Join(ErrRefused, reason)
}
