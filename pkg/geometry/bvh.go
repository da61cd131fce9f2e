package geometry

import (
	"fmt"
	"math"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/material"
)

// BVH is a bounding volume hierarchy stored as a flat node array. Internal
// nodes hold two child indices; leaves hold a range into the reordered
// primitive list. Built once at scene load, read-only afterwards, so
// concurrent traversal needs no synchronization.
type BVH struct {
	nodes  []bvhNode
	prims  []Shape   // primitives reordered so each leaf covers a contiguous range
	Center core.Vec3 // Scene center, used by infinite lights
	Radius float64   // Scene radius, used by infinite lights
}

type bvhNode struct {
	Bounds core.AABB
	// Internal nodes: Left/Right are child indices, Count == 0.
	// Leaves: Start/Count index into prims, children unused.
	Left, Right int32
	Start       int32
	Count       int32
}

func (n *bvhNode) isLeaf() bool { return n.Count > 0 }

const (
	// Leaves are created at or below this primitive count
	leafThreshold = 4
	// Number of SAH candidate bins per axis
	sahBinCount = 12
	// Estimated cost of a traversal step relative to one intersection test
	traversalCost = 0.5
)

// NewBVH builds a hierarchy over the given shapes using a binned
// surface-area-heuristic split at every node
func NewBVH(shapes []Shape) *BVH {
	bvh := &BVH{}
	if len(shapes) == 0 {
		bvh.Radius = 1.0
		return bvh
	}

	// Copy so the caller's slice is never reordered
	bvh.prims = make([]Shape, len(shapes))
	copy(bvh.prims, shapes)

	bounds := make([]core.AABB, len(shapes))
	centroids := make([]core.Vec3, len(shapes))
	for i, shape := range bvh.prims {
		bounds[i] = shape.BoundingBox()
		centroids[i] = bounds[i].Center()
	}

	builder := &bvhBuilder{bvh: bvh, bounds: bounds, centroids: centroids}
	root := builder.build(0, int32(len(bvh.prims)))

	worldBounds := bvh.nodes[root].Bounds
	bvh.Center = worldBounds.Center()
	bvh.Radius = worldBounds.Max.Subtract(bvh.Center).Length()
	if bvh.Radius == 0 {
		bvh.Radius = 1.0
	}
	return bvh
}

type bvhBuilder struct {
	bvh       *BVH
	bounds    []core.AABB
	centroids []core.Vec3
}

// build creates the node covering prims[start:end) and returns its index
func (b *bvhBuilder) build(start, end int32) int32 {
	nodeBounds := core.EmptyAABB()
	centroidBounds := core.EmptyAABB()
	for i := start; i < end; i++ {
		nodeBounds = nodeBounds.Union(b.bounds[i])
		centroidBounds = centroidBounds.AddPoint(b.centroids[i])
	}

	count := end - start
	nodeIndex := int32(len(b.bvh.nodes))
	b.bvh.nodes = append(b.bvh.nodes, bvhNode{Bounds: nodeBounds})

	if count <= leafThreshold {
		b.bvh.nodes[nodeIndex].Start = start
		b.bvh.nodes[nodeIndex].Count = count
		return nodeIndex
	}

	axis, splitBin, splitCost := b.findSAHSplit(start, end, centroidBounds)

	// No split beats testing every primitive in a leaf
	leafCost := float64(count)
	if axis == -1 || splitCost >= leafCost {
		b.bvh.nodes[nodeIndex].Start = start
		b.bvh.nodes[nodeIndex].Count = count
		return nodeIndex
	}

	mid := b.partition(start, end, axis, splitBin, centroidBounds)
	if mid == start || mid == end {
		// Degenerate partition (all centroids coincide): fall back to a
		// median split so the recursion always terminates
		mid = start + count/2
	}

	left := b.build(start, mid)
	right := b.build(mid, end)
	b.bvh.nodes[nodeIndex].Left = left
	b.bvh.nodes[nodeIndex].Right = right
	return nodeIndex
}

// findSAHSplit evaluates binned SAH candidates on all three axes and returns
// the cheapest (axis, bin boundary, cost). axis == -1 means no usable split.
func (b *bvhBuilder) findSAHSplit(start, end int32, centroidBounds core.AABB) (int, int, float64) {
	bestAxis, bestBin := -1, -1
	bestCost := math.Inf(1)
	parentArea := func() float64 {
		box := core.EmptyAABB()
		for i := start; i < end; i++ {
			box = box.Union(b.bounds[i])
		}
		return box.SurfaceArea()
	}()
	if parentArea <= 0 {
		return -1, -1, bestCost
	}

	for axis := 0; axis < 3; axis++ {
		extent := centroidBounds.Size().Component(axis)
		if extent <= 1e-12 {
			continue
		}
		minVal := centroidBounds.Min.Component(axis)

		type bin struct {
			bounds core.AABB
			count  int
		}
		bins := make([]bin, sahBinCount)
		for i := range bins {
			bins[i].bounds = core.EmptyAABB()
		}

		for i := start; i < end; i++ {
			bi := int(float64(sahBinCount) * (b.centroids[i].Component(axis) - minVal) / extent)
			if bi >= sahBinCount {
				bi = sahBinCount - 1
			}
			bins[bi].count++
			bins[bi].bounds = bins[bi].bounds.Union(b.bounds[i])
		}

		// Sweep all bin boundaries
		for split := 1; split < sahBinCount; split++ {
			leftBox, rightBox := core.EmptyAABB(), core.EmptyAABB()
			leftCount, rightCount := 0, 0
			for i := 0; i < split; i++ {
				if bins[i].count > 0 {
					leftBox = leftBox.Union(bins[i].bounds)
					leftCount += bins[i].count
				}
			}
			for i := split; i < sahBinCount; i++ {
				if bins[i].count > 0 {
					rightBox = rightBox.Union(bins[i].bounds)
					rightCount += bins[i].count
				}
			}
			if leftCount == 0 || rightCount == 0 {
				continue
			}

			cost := traversalCost +
				(leftBox.SurfaceArea()*float64(leftCount)+rightBox.SurfaceArea()*float64(rightCount))/parentArea
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestBin = split
			}
		}
	}

	return bestAxis, bestBin, bestCost
}

// partition reorders prims[start:end) so primitives whose centroid bin is
// below splitBin come first, returning the boundary index
func (b *bvhBuilder) partition(start, end int32, axis, splitBin int, centroidBounds core.AABB) int32 {
	extent := centroidBounds.Size().Component(axis)
	minVal := centroidBounds.Min.Component(axis)

	mid := start
	for i := start; i < end; i++ {
		bi := int(float64(sahBinCount) * (b.centroids[i].Component(axis) - minVal) / extent)
		if bi >= sahBinCount {
			bi = sahBinCount - 1
		}
		if bi < splitBin {
			b.swap(i, mid)
			mid++
		}
	}
	return mid
}

func (b *bvhBuilder) swap(i, j int32) {
	b.bvh.prims[i], b.bvh.prims[j] = b.bvh.prims[j], b.bvh.prims[i]
	b.bounds[i], b.bounds[j] = b.bounds[j], b.bounds[i]
	b.centroids[i], b.centroids[j] = b.centroids[j], b.centroids[i]
}

// Hit finds the nearest intersection within [tMin, tMax], descending into
// the nearer child first and pruning nodes whose entry distance exceeds the
// current closest hit
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if len(b.nodes) == 0 {
		return nil, false
	}

	var closest *material.HitRecord
	closestT := tMax

	type stackEntry struct {
		node  int32
		entry float64
	}
	// Slice-backed so lopsided trees can push past the usual depth without
	// overflowing; stays on the stack for typical scenes
	stack := make([]stackEntry, 0, 64)

	if entry, ok := b.nodes[0].Bounds.HitInterval(ray, tMin, closestT); ok {
		stack = append(stack, stackEntry{node: 0, entry: entry})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.entry > closestT {
			continue
		}
		node := &b.nodes[top.node]

		if node.isLeaf() {
			for i := node.Start; i < node.Start+node.Count; i++ {
				if hit, ok := b.prims[i].Hit(ray, tMin, closestT); ok {
					closest = hit
					closestT = hit.T
				}
			}
			continue
		}

		leftEntry, leftOK := b.nodes[node.Left].Bounds.HitInterval(ray, tMin, closestT)
		rightEntry, rightOK := b.nodes[node.Right].Bounds.HitInterval(ray, tMin, closestT)

		// Push the farther child first so the nearer one is processed next
		switch {
		case leftOK && rightOK:
			nearNode, nearEntry := node.Left, leftEntry
			farNode, farEntry := node.Right, rightEntry
			if rightEntry < leftEntry {
				nearNode, nearEntry, farNode, farEntry = node.Right, rightEntry, node.Left, leftEntry
			}
			stack = append(stack,
				stackEntry{node: farNode, entry: farEntry},
				stackEntry{node: nearNode, entry: nearEntry})
		case leftOK:
			stack = append(stack, stackEntry{node: node.Left, entry: leftEntry})
		case rightOK:
			stack = append(stack, stackEntry{node: node.Right, entry: rightEntry})
		}
	}

	return closest, closest != nil
}

// IsOccluded reports whether anything blocks the ray within [tMin, tMax].
// Used for shadow rays; stops at the first hit.
func (b *BVH) IsOccluded(ray core.Ray, tMin, tMax float64) bool {
	_, hit := b.Hit(ray, tMin, tMax)
	return hit
}

// PrimitiveCount returns the number of primitives stored in the hierarchy
func (b *BVH) PrimitiveCount() int {
	return len(b.prims)
}

// Validate checks structural invariants: every primitive appears in exactly
// one leaf and child bounds are contained in their parent's
func (b *BVH) Validate() error {
	if len(b.nodes) == 0 {
		if len(b.prims) != 0 {
			return fmt.Errorf("bvh: %d primitives but no nodes", len(b.prims))
		}
		return nil
	}

	seen := make([]int, len(b.prims))
	var walk func(index int32) error
	walk = func(index int32) error {
		node := &b.nodes[index]
		if node.isLeaf() {
			for i := node.Start; i < node.Start+node.Count; i++ {
				seen[i]++
			}
			return nil
		}
		for _, child := range []int32{node.Left, node.Right} {
			if !node.Bounds.Contains(b.nodes[child].Bounds) {
				return fmt.Errorf("bvh: node %d does not contain child %d", index, child)
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0); err != nil {
		return err
	}

	for i, count := range seen {
		if count != 1 {
			return fmt.Errorf("bvh: primitive %d appears in %d leaves", i, count)
		}
	}
	return nil
}
