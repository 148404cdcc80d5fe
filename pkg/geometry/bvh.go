package geometry

import "sort"

// NBins is the number of centroid bins swept per axis during binned
// SAH construction.
const NBins = 16

// MaxLeafSize is the largest primitive count a node may hold before
// the builder attempts to split it further.
const MaxLeafSize = 4

// Primitive is the contract a BVH element must satisfy: a bounding box
// for partitioning, and a Hit test that may tighten ray.TMax on a hit
// so sibling subtrees can be pruned.
type Primitive interface {
	BBox() BBox
	Hit(ray *Ray) Trace
}

// bvhNode is one node of the flattened tree. A node is a leaf iff
// L == R; leaves cover Prims[Start:Start+Count].
type bvhNode struct {
	Bounds     BBox
	Start      int
	Count      int
	L, R       int
}

// BVH is a binned-SAH bounding volume hierarchy over a primitive
// array reordered in place during Build. Once built, neither Nodes
// nor Prims is mutated, so Hit is safe to call concurrently from many
// goroutines (each with its own Ray).
type BVH[T Primitive] struct {
	Nodes []bvhNode
	Prims []T
	Root  int
}

// Build constructs a BVH over the given primitives. The slice is
// copied and reordered; the original is left untouched. Building over
// an empty set yields an empty Nodes slice.
func Build[T Primitive](prims []T) *BVH[T] {
	if len(prims) == 0 {
		return &BVH[T]{}
	}

	owned := make([]T, len(prims))
	copy(owned, prims)

	b := &BVH[T]{Prims: owned}
	b.Root = b.buildRange(0, len(owned))
	return b
}

type centroidBin struct {
	bounds BBox
	count  int
}

func (b *BVH[T]) buildRange(start, count int) int {
	bounds := EmptyBBox()
	for i := start; i < start+count; i++ {
		bounds = bounds.EncloseBox(b.Prims[i].BBox())
	}

	nodeIdx := len(b.Nodes)
	b.Nodes = append(b.Nodes, bvhNode{Bounds: bounds, Start: start, Count: count})

	if count <= MaxLeafSize {
		return nodeIdx
	}

	axis, splitPos, found := b.findBestSplit(start, count, bounds)
	if !found {
		return nodeIdx
	}

	mid := b.partition(start, count, axis, splitPos)
	leftCount := mid - start
	rightCount := count - leftCount
	if leftCount == 0 || rightCount == 0 {
		return nodeIdx
	}

	l := b.buildRange(start, leftCount)
	r := b.buildRange(mid, rightCount)
	b.Nodes[nodeIdx].L = l
	b.Nodes[nodeIdx].R = r
	return nodeIdx
}

// findBestSplit sweeps NBins-1 candidate split positions on each of
// the three axes and picks the axis/position minimizing
// SA(L)*|L| + SA(R)*|R|, via prefix/suffix sweeps over per-bin boxes.
func (b *BVH[T]) findBestSplit(start, count int, bounds BBox) (axis int, splitPos float64, found bool) {
	bestCost := -1.0

	for a := 0; a < 3; a++ {
		extent := bounds.AxisExtent(a)
		if extent <= 0 {
			continue
		}
		lo := axisComponent(bounds.Min, a)

		bins := make([]centroidBin, NBins)
		for i := range bins {
			bins[i].bounds = EmptyBBox()
		}

		binOf := func(i int) int {
			c := axisComponent(b.Prims[i].BBox().Center(), a)
			idx := int(float64(NBins) * (c - lo) / extent)
			if idx < 0 {
				idx = 0
			}
			if idx >= NBins {
				idx = NBins - 1
			}
			return idx
		}

		for i := start; i < start+count; i++ {
			idx := binOf(i)
			bins[idx].bounds = bins[idx].bounds.EncloseBox(b.Prims[i].BBox())
			bins[idx].count++
		}

		prefixBounds := make([]BBox, NBins)
		prefixCount := make([]int, NBins)
		running := EmptyBBox()
		runningCount := 0
		for i := 0; i < NBins; i++ {
			running = running.EncloseBox(bins[i].bounds)
			runningCount += bins[i].count
			prefixBounds[i] = running
			prefixCount[i] = runningCount
		}

		suffixBounds := make([]BBox, NBins)
		suffixCount := make([]int, NBins)
		running = EmptyBBox()
		runningCount = 0
		for i := NBins - 1; i >= 0; i-- {
			running = running.EncloseBox(bins[i].bounds)
			runningCount += bins[i].count
			suffixBounds[i] = running
			suffixCount[i] = runningCount
		}

		for split := 0; split < NBins-1; split++ {
			leftCount := prefixCount[split]
			rightCount := suffixCount[split+1]
			if leftCount == 0 || rightCount == 0 {
				continue
			}
			cost := prefixBounds[split].SurfaceArea()*float64(leftCount) +
				suffixBounds[split+1].SurfaceArea()*float64(rightCount)
			if bestCost < 0 || cost < bestCost {
				bestCost = cost
				axis = a
				splitPos = lo + extent*float64(split+1)/float64(NBins)
				found = true
			}
		}
	}

	return axis, splitPos, found
}

// partition reorders Prims[start:start+count] so that primitives with
// a centroid below splitPos on axis come first, and returns the index
// of the first primitive on the right side.
func (b *BVH[T]) partition(start, count, axis int, splitPos float64) int {
	prims := b.Prims[start : start+count]
	sort.SliceStable(prims, func(i, j int) bool {
		ci := axisComponent(prims[i].BBox().Center(), axis)
		cj := axisComponent(prims[j].BBox().Center(), axis)
		return ci < cj
	})

	mid := count
	for i, p := range prims {
		if axisComponent(p.BBox().Center(), axis) >= splitPos {
			mid = i
			break
		}
	}
	return start + mid
}

// Hit traverses the BVH, visiting the nearer surviving child first so
// an intervening hit can prune the farther subtree before it is ever
// descended into.
func (b *BVH[T]) Hit(ray *Ray) Trace {
	if len(b.Nodes) == 0 {
		return Miss
	}
	return b.hitNode(b.Root, ray)
}

func (b *BVH[T]) hitNode(nodeIdx int, ray *Ray) Trace {
	node := &b.Nodes[nodeIdx]
	if _, _, ok := node.Bounds.Hit(*ray); !ok {
		return Miss
	}

	if node.L == node.R {
		closest := Miss
		for i := node.Start; i < node.Start+node.Count; i++ {
			closest = closest.Min(b.Prims[i].Hit(ray))
		}
		return closest
	}

	left := &b.Nodes[node.L]
	right := &b.Nodes[node.R]
	leftEnter, _, leftOK := left.Bounds.Hit(*ray)
	rightEnter, _, rightOK := right.Bounds.Hit(*ray)

	near, far := node.L, node.R
	nearOK, farOK := leftOK, rightOK
	nearEnter, farEnter := leftEnter, rightEnter
	if rightOK && (!leftOK || rightEnter < leftEnter) {
		near, far = node.R, node.L
		nearOK, farOK = rightOK, leftOK
		nearEnter, farEnter = rightEnter, leftEnter
	}

	closest := Miss
	if nearOK && nearEnter <= ray.TMax {
		closest = b.hitNode(near, ray)
	}
	if farOK && farEnter <= ray.TMax {
		closest = closest.Min(b.hitNode(far, ray))
	}
	return closest
}
