package halfedge

import (
	"container/heap"
	"math"

	"github.com/taigrr/trophy/pkg/math3d"
)

// quadric is the symmetric 4x4 error matrix in upper-triangular form,
// accumulated per vertex from its incident face planes.
type quadric [10]float64

func planeQuadric(normal math3d.Vec3, point math3d.Vec3) quadric {
	a, b, c := normal.X, normal.Y, normal.Z
	d := -normal.Dot(point)
	return quadric{
		a * a, a * b, a * c, a * d,
		b * b, b * c, b * d,
		c * c, c * d,
		d * d,
	}
}

func (q quadric) add(o quadric) quadric {
	var r quadric
	for i := range r {
		r[i] = q[i] + o[i]
	}
	return r
}

// cost evaluates v^T Q v for homogeneous point (x,y,z,1).
func (q quadric) cost(p math3d.Vec3) float64 {
	x, y, z := p.X, p.Y, p.Z
	return x*x*q[0] + 2*x*y*q[1] + 2*x*z*q[2] + 2*x*q[3] +
		y*y*q[4] + 2*y*z*q[5] + 2*y*q[6] +
		z*z*q[7] + 2*z*q[8] +
		q[9]
}

// spatial splits q into its upper-left 3x3 block A and linear term b, such
// that q's homogeneous form is [[A b],[b^T c]].
func (q quadric) spatial() (a [3][3]float64, b [3]float64) {
	a = [3][3]float64{
		{q[0], q[1], q[2]},
		{q[1], q[4], q[5]},
		{q[2], q[5], q[7]},
	}
	b = [3]float64{q[3], q[6], q[8]}
	return a, b
}

func det3(a [3][3]float64) float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

func replaceCol(a [3][3]float64, col int, v [3]float64) [3][3]float64 {
	r := a
	for row := 0; row < 3; row++ {
		r[row][col] = v[row]
	}
	return r
}

// optimalPoint solves A·x = -b for the QEM-minimizing point, where A is q's
// spatial block. Reports ok=false when det(A) is too small relative to
// edgeLen^3 to trust the inverse; scaling the threshold by edgeLen^3
// keeps it independent of the mesh's scale.
func (q quadric) optimalPoint(edgeLen float64) (math3d.Vec3, bool) {
	a, b := q.spatial()
	d := det3(a)
	const eps = 1e-6
	if math.Abs(d) <= eps*edgeLen*edgeLen*edgeLen {
		return math3d.Vec3{}, false
	}
	rb := [3]float64{-b[0], -b[1], -b[2]}
	x := det3(replaceCol(a, 0, rb)) / d
	y := det3(replaceCol(a, 1, rb)) / d
	z := det3(replaceCol(a, 2, rb)) / d
	return math3d.V3(x, y, z), true
}

// bestTarget picks the collapse point per spec: the QEM-optimal solve when
// well-conditioned, otherwise a quadratic fit over the cost sampled at v1
// (t=0), the midpoint (t=0.5), and v2 (t=1), minimized and clamped to
// [0,1].
func (q quadric) bestTarget(v1, v2 math3d.Vec3) math3d.Vec3 {
	if p, ok := q.optimalPoint(v1.Distance(v2)); ok {
		return p
	}
	mid := v1.Add(v2).Scale(0.5)
	c0, cMid, c1 := q.cost(v1), q.cost(mid), q.cost(v2)

	a := 2*c1 + 2*c0 - 4*cMid
	b := 4*cMid - 3*c0 - c1
	t := 0.5
	if a > 0 {
		t = -b / (2 * a)
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	} else {
		if c0 <= c1 {
			t = 0
		} else {
			t = 1
		}
		if cMid < math.Min(c0, c1) {
			t = 0.5
		}
	}
	return v1.Lerp(v2, t)
}

func (m *Mesh) vertexQuadrics() map[VertexID]quadric {
	q := make(map[VertexID]quadric, len(m.Vertices))
	for f := range m.Faces {
		if m.Faces[f].erased || m.Faces[f].Boundary {
			continue
		}
		fid := FaceID(f)
		if m.FaceDegree(fid) < 3 {
			continue
		}
		n := m.FaceNormal(fid)
		p := m.V(m.H(m.F(fid).Halfedge).Vertex).Pos
		pq := planeQuadric(n, p)
		m.ForEachFaceHalfedge(fid, func(h HalfedgeID) {
			v := m.H(h).Vertex
			q[v] = q[v].add(pq)
		})
	}
	return q
}

// EdgeCollapsable reports whether e can be safely collapsed without
// producing a degenerate or non-manifold mesh. Refuses when: (1) the
// endpoints are the same vertex; (2) either adjacent face is already a
// 2-gon; (3) some other edge at an endpoint shares both of e's adjacent
// faces (a "double edge" that would otherwise fuse two unrelated edges
// onto one); or (4) the endpoints share more neighbor vertices than the
// two faces already adjacent to e account for.
func (m *Mesh) EdgeCollapsable(e EdgeID) bool {
	h0 := m.E(e).Halfedge
	h1 := m.H(h0).Twin
	v1, v2 := m.H(h0).Vertex, m.H(h1).Vertex
	if v1 == v2 {
		return false // rule 1
	}

	f0, f1 := m.H(h0).Face, m.H(h1).Face
	if m.FaceDegree(f0) == 2 || m.FaceDegree(f1) == 2 {
		return false // rule 2: 2-gon
	}

	doubleEdge := false
	checkDouble := func(h HalfedgeID) {
		if doubleEdge || m.H(h).Edge == e {
			return
		}
		of0, of1 := m.H(h).Face, m.H(m.H(h).Twin).Face
		if (of0 == f0 && of1 == f1) || (of0 == f1 && of1 == f0) {
			doubleEdge = true
		}
	}
	m.ForEachOutgoing(v1, checkDouble)
	m.ForEachOutgoing(v2, checkDouble)
	if doubleEdge {
		return false // rule 3: double-edge neighbor
	}

	neighbors1 := make(map[VertexID]bool)
	m.ForEachOutgoing(v1, func(h HalfedgeID) {
		neighbors1[m.H(m.H(h).Twin).Vertex] = true
	})
	shared := 0
	m.ForEachOutgoing(v2, func(h HalfedgeID) {
		if neighbors1[m.H(m.H(h).Twin).Vertex] {
			shared++
		}
	})
	allowed := 2             // the two faces already adjacent to e, each contributing one shared neighbor
	return shared <= allowed // rule 4
}

type simplifyItem struct {
	edge     EdgeID
	cost     float64
	target   math3d.Vec3
	index    int
	obsolete bool
}

type simplifyQueue []*simplifyItem

func (q simplifyQueue) Len() int            { return len(q) }
func (q simplifyQueue) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q simplifyQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index, q[j].index = i, j }
func (q *simplifyQueue) Push(x interface{}) { item := x.(*simplifyItem); item.index = len(*q); *q = append(*q, item) }
func (q *simplifyQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Simplify collapses edges by ascending quadric error cost until at
// most targetFaces faces remain, or no further collapse is safe. It
// mutates m in place and leaves erased entities for a subsequent
// Commit. Returns the number of collapses performed.
func (m *Mesh) Simplify(targetFaces int) int {
	quadrics := m.vertexQuadrics()
	edgeItem := make(map[EdgeID]*simplifyItem)
	pq := &simplifyQueue{}
	heap.Init(pq)

	makeItem := func(e EdgeID) *simplifyItem {
		h0 := m.E(e).Halfedge
		h1 := m.H(h0).Twin
		v1, v2 := m.H(h0).Vertex, m.H(h1).Vertex
		q := quadrics[v1].add(quadrics[v2])
		target := q.bestTarget(m.V(v1).Pos, m.V(v2).Pos)
		item := &simplifyItem{edge: e, cost: q.cost(target), target: target}
		return item
	}

	for e := range m.Edges {
		if m.Edges[e].erased {
			continue
		}
		eid := EdgeID(e)
		if !m.EdgeCollapsable(eid) {
			continue
		}
		item := makeItem(eid)
		edgeItem[eid] = item
		heap.Push(pq, item)
	}

	collapses := 0
	for m.FaceCount() > targetFaces && pq.Len() > 0 {
		item := heap.Pop(pq).(*simplifyItem)
		if item.obsolete || m.EdgeErased(item.edge) {
			continue
		}
		if !m.EdgeCollapsable(item.edge) {
			continue
		}
		h0 := m.E(item.edge).Halfedge
		h1 := m.H(h0).Twin
		v1, v2 := m.H(h0).Vertex, m.H(h1).Vertex

		var touched []EdgeID
		m.ForEachOutgoing(v1, func(h HalfedgeID) { touched = append(touched, m.H(h).Edge) })
		m.ForEachOutgoing(v2, func(h HalfedgeID) { touched = append(touched, m.H(h).Edge) })

		mergedQ := quadrics[v1].add(quadrics[v2])
		survivor, err := m.CollapseEdge(item.edge)
		if err != nil {
			continue
		}
		collapses++
		quadrics[survivor] = mergedQ
		m.V(survivor).Pos = item.target

		for _, e := range touched {
			if prev, ok := edgeItem[e]; ok {
				prev.obsolete = true
			}
			if m.EdgeErased(e) || !m.EdgeCollapsable(e) {
				continue
			}
			ni := makeItem(e)
			edgeItem[e] = ni
			heap.Push(pq, ni)
		}
	}
	return collapses
}
