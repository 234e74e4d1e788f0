// Package spatial implements the obstacle index: a quadtree over walls,
// tiles, tokens and regions supporting segment ("ray") and frustum queries
// with an AABB prefilter, plus the monotonic topology version every other
// package compares cached results against.
//
// This generalizes the teacher's NavGrid (internal/game/navmesh.go), a fixed
// uniform grid sized to one pathfinding cell, into a quadtree that adapts to
// placeable density, per spec.md §2's explicit "quadtree/BVH" requirement.
package spatial

import (
	"sync"
	"sync/atomic"

	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

const (
	maxItemsPerNode = 8
	maxDepth        = 10
)

// Index is the obstacle index: a quadtree keyed by world AABB, with a
// monotonic TopologyVersion bumped on every structural Update.
type Index struct {
	mu    sync.RWMutex // only consulted when Concurrent is true (see lockRead/lockWrite)
	root  *node
	bound geom.Rect
	ver   uint64

	// Concurrent gates the sync.RWMutex above. It is not reader-preferring:
	// a waiting writer blocks new readers.
	// The default (false) matches the teacher's single-threaded event loop:
	// no locking overhead on the hot path.
	Concurrent bool
}

type node struct {
	bounds   geom.Rect
	depth    int
	items    []placeable.Variant
	children *[4]*node
}

// NewIndex creates an empty obstacle index covering the given world bounds
// (normally the scene's outer AABB).
func NewIndex(bounds geom.Rect) *Index {
	return &Index{root: &node{bounds: bounds}, bound: bounds}
}

// TopologyVersion returns the current monotonic topology version.
func (ix *Index) TopologyVersion() uint64 {
	return atomic.LoadUint64(&ix.ver)
}

// Bounds returns the scene's outer AABB the index was constructed over.
func (ix *Index) Bounds() geom.Rect {
	return ix.bound
}

func (ix *Index) lockRead() func() {
	if !ix.Concurrent {
		return func() {}
	}
	ix.mu.RLock()
	return ix.mu.RUnlock
}

func (ix *Index) lockWrite() func() {
	if !ix.Concurrent {
		return func() {}
	}
	ix.mu.Lock()
	return ix.mu.Unlock
}

// EventKind names the structural change an Update call represents.
type EventKind uint8

const (
	EventAdded EventKind = iota
	EventMoved
	EventResized
	EventRemoved
)

// Event is a single placeable mutation fed to Update.
type Event struct {
	Kind EventKind
	Item placeable.Variant
	// OldAABB is required for EventMoved/EventResized/EventRemoved so the
	// index can find the node(s) the item was previously filed under.
	OldAABB geom.Rect
}

// Update applies a placeable mutation and bumps TopologyVersion. Every
// mutation is treated as "remove old (if any), insert new (if any)" — this
// mirrors the teacher's NavGrid, which is always rebuilt wholesale on
// structural change rather than patched incrementally; here the same
// operation is just scoped to the quadtree nodes the AABBs touch.
func (ix *Index) Update(ev Event) {
	defer ix.lockWrite()()
	switch ev.Kind {
	case EventAdded:
		insert(ix.root, ev.Item, ev.Item.AABB(), 0)
	case EventMoved, EventResized:
		removeByAABB(ix.root, ev.Item, ev.OldAABB)
		insert(ix.root, ev.Item, ev.Item.AABB(), 0)
	case EventRemoved:
		removeByAABB(ix.root, ev.Item, ev.OldAABB)
	}
	atomic.AddUint64(&ix.ver, 1)
}

func insert(n *node, v placeable.Variant, box geom.Rect, depth int) {
	if n.children != nil {
		for _, c := range n.children {
			if c.bounds.Intersects(box) {
				insert(c, v, box, depth+1)
			}
		}
		return
	}
	n.items = append(n.items, v)
	if len(n.items) > maxItemsPerNode && depth < maxDepth {
		subdivide(n, depth)
	}
}

func subdivide(n *node, depth int) {
	cx := (n.bounds.MinX + n.bounds.MaxX) / 2
	cy := (n.bounds.MinY + n.bounds.MaxY) / 2
	quads := [4]geom.Rect{
		{n.bounds.MinX, n.bounds.MinY, cx, cy},
		{cx, n.bounds.MinY, n.bounds.MaxX, cy},
		{n.bounds.MinX, cy, cx, n.bounds.MaxY},
		{cx, cy, n.bounds.MaxX, n.bounds.MaxY},
	}
	var children [4]*node
	for i, q := range quads {
		children[i] = &node{bounds: q, depth: depth + 1}
	}
	old := n.items
	n.items = nil
	n.children = &children
	for _, v := range old {
		insert(n, v, v.AABB(), depth)
	}
}

func removeByAABB(n *node, v placeable.Variant, box geom.Rect) {
	if n.children != nil {
		for _, c := range n.children {
			if c.bounds.Intersects(box) {
				removeByAABB(c, v, box)
			}
		}
		return
	}
	for i, it := range n.items {
		if sameItem(it, v) {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

func sameItem(a, b placeable.Variant) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case placeable.KindWall:
		return a.Wall == b.Wall || (a.Wall != nil && b.Wall != nil && a.Wall.ID == b.Wall.ID)
	case placeable.KindTile:
		return a.Tile == b.Tile || (a.Tile != nil && b.Tile != nil && a.Tile.ID == b.Tile.ID)
	case placeable.KindToken:
		return a.Token == b.Token || (a.Token != nil && b.Token != nil && a.Token.ID == b.Token.ID)
	case placeable.KindRegion:
		return a.Region == b.Region || (a.Region != nil && b.Region != nil && a.Region.ID == b.Region.ID)
	}
	return false
}

// KindFilter selects which placeable kinds a query should return.
type KindFilter struct {
	Walls, Tiles, Tokens, Regions bool
}

func (kf KindFilter) allows(k placeable.Kind) bool {
	switch k {
	case placeable.KindWall:
		return kf.Walls
	case placeable.KindTile:
		return kf.Tiles
	case placeable.KindToken:
		return kf.Tokens
	case placeable.KindRegion:
		return kf.Regions
	}
	return false
}

// AllKinds returns a filter that allows every placeable kind.
func AllKinds() KindFilter { return KindFilter{true, true, true, true} }

// QueryRay returns every placeable of the requested kinds whose AABB
// intersects the segment a-b's own bounding box (the cheap prefilter spec.md
// §4.2 requires); callers perform the exact intersection test themselves
// since "could block" must never produce a false negative.
func (ix *Index) QueryRay(a, b geom.Point, kinds KindFilter) []placeable.Variant {
	defer ix.lockRead()()
	segBox := geom.Rect{
		MinX: min2(a.X, b.X), MinY: min2(a.Y, b.Y),
		MaxX: max2(a.X, b.X), MaxY: max2(a.Y, b.Y),
	}
	var out []placeable.Variant
	collect(ix.root, segBox, kinds, &out)
	return out
}

// QueryFrustum returns every placeable of the requested kinds whose AABB
// intersects the frustum's bounding box prefilter.
func (ix *Index) QueryFrustum(f Frustum, kinds KindFilter) []placeable.Variant {
	defer ix.lockRead()()
	var out []placeable.Variant
	collect(ix.root, f.AABB(), kinds, &out)
	return out
}

func collect(n *node, box geom.Rect, kinds KindFilter, out *[]placeable.Variant) {
	if !n.bounds.Intersects(box) {
		return
	}
	if n.children != nil {
		for _, c := range n.children {
			collect(c, box, kinds, out)
		}
		return
	}
	for _, it := range n.items {
		if !kinds.allows(it.Kind) {
			continue
		}
		if it.AABB().Intersects(box) {
			*out = append(*out, it)
		}
	}
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
