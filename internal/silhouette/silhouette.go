// Package silhouette builds a token's constrained silhouette: its footprint
// clipped by the walls that intersect it, per spec.md §4.3. The sweep is
// grounded on the teacher's ray-casting in internal/game/sightlines.go
// (ScoreSightline), generalized from a fixed ray count over open angles to
// an exact wall-endpoint-driven angular sweep.
package silhouette

import (
	"math"
	"sort"

	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

// angleEpsilon is the small angular offset used to sample just before/after
// each wall endpoint, the standard trick for resolving visibility-polygon
// vertices at occluder corners.
const angleEpsilon = 1e-4

// maxSweepRadius bounds ray length when no segment terminates it (an
// unclosed boundary); it is large enough to exceed any token footprint.
const maxSweepRadius = 1e6

// Result is a built constrained silhouette.
type Result struct {
	Polygon      geom.Polygon
	Unrestricted bool // true: silhouette == raw footprint (no relevant walls)
}

// Build computes token T's constrained silhouette for senseKind.
//
// nearWalls is the set of candidate walls whose AABB intersects the token's
// bounding rectangle (normally produced by an obstacle-index AABB query);
// boundaryWalls is the scene's four outer edges, always folded into the
// sweep unconditionally (spec.md §4.3: "...plus the four scene boundary
// edges") but never counted toward the "any relevant walls?" fast-path
// check, since a boundary that fully contains the footprint can never trim
// it — only nearWalls can.
func Build(token placeable.Token, kind placeable.SenseKind, nearWalls, boundaryWalls []*placeable.Wall) Result {
	footprint := token.Footprint.World()
	if footprint.Degenerate() {
		return Result{Polygon: footprint, Unrestricted: true}
	}
	footAABB := footprint.AABB()
	center := token.Footprint.Center

	relevant := relevantWalls(footAABB, footprint, kind, nearWalls)
	if len(relevant) == 0 {
		return Result{Polygon: footprint, Unrestricted: true}
	}

	sweepSet := make([]*placeable.Wall, 0, len(relevant)+len(boundaryWalls))
	sweepSet = append(sweepSet, relevant...)
	for _, w := range boundaryWalls {
		if w != nil && !w.Degenerate() && w.Blocks(kind) {
			sweepSet = append(sweepSet, w)
		}
	}

	vis := sweepVisibilityPolygon(center, sweepSet)
	if vis.Degenerate() {
		// Degenerate sweep (e.g. center exactly on a wall): fail safe to "no
		// visibility" per spec.md §7 (Degenerate -> no contribution).
		return Result{Polygon: geom.Polygon{}}
	}

	clipped := geom.Intersect(vis, footprint)
	return Result{Polygon: clipped}
}

// relevantWalls filters candidateWalls to those that restrict kind, whose
// AABB intersects the footprint's bounding rect, and that do not lie
// exactly on a footprint edge (spec.md §4.3's tie-break: such a wall is
// excluded, it does not trim).
func relevantWalls(footAABB geom.Rect, footprint geom.Polygon, kind placeable.SenseKind, walls []*placeable.Wall) []*placeable.Wall {
	out := make([]*placeable.Wall, 0, len(walls))
	edges := footprint.Edges()
	for _, w := range walls {
		if w == nil || w.Degenerate() || !w.Blocks(kind) {
			continue
		}
		wallAABB := geom.Rect{
			MinX: minF(w.A.X, w.B.X), MinY: minF(w.A.Y, w.B.Y),
			MaxX: maxF(w.A.X, w.B.X), MaxY: maxF(w.A.Y, w.B.Y),
		}
		if !wallAABB.Intersects(footAABB) {
			continue
		}
		if liesOnAnyEdge(w.Segment(), edges) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func liesOnAnyEdge(wall geom.Segment, edges []geom.Segment) bool {
	for _, e := range edges {
		if colinearAndOverlapping(wall, e) {
			return true
		}
	}
	return false
}

// colinearAndOverlapping reports whether wall lies on the infinite line
// through edge, with its span overlapping edge's own span (i.e. the wall
// coincides with the footprint's own boundary, rather than merely being
// parallel to it further along the same line).
func colinearAndOverlapping(wall, edge geom.Segment) bool {
	v := edge.Vector()
	l2 := v.X*v.X + v.Y*v.Y
	if l2 < 1e-12 {
		return false
	}
	lineDist := func(p geom.Point) float64 {
		t := ((p.X-edge.A.X)*v.X + (p.Y-edge.A.Y)*v.Y) / l2
		proj := geom.Point{X: edge.A.X + t*v.X, Y: edge.A.Y + t*v.Y}
		return p.Dist(proj)
	}
	if lineDist(wall.A) > geom.PixelTolerance || lineDist(wall.B) > geom.PixelTolerance {
		return false
	}
	paramOf := func(p geom.Point) float64 {
		return ((p.X-edge.A.X)*v.X + (p.Y-edge.A.Y)*v.Y) / l2
	}
	ta, tb := paramOf(wall.A), paramOf(wall.B)
	if ta > tb {
		ta, tb = tb, ta
	}
	const tTol = 1e-6
	return tb >= -tTol && ta <= 1+tTol
}

// sweepVisibilityPolygon performs the clockwise radial sweep: for every
// critical angle (each wall endpoint, offset by ±angleEpsilon) cast a ray
// from center and keep the nearest intersection among all walls, producing
// the visibility polygon's vertex in angular order.
func sweepVisibilityPolygon(center geom.Point, walls []*placeable.Wall) geom.Polygon {
	angles := make([]float64, 0, len(walls)*6)
	for _, w := range walls {
		for _, pt := range [2]geom.Point{w.A, w.B} {
			base := math.Atan2(pt.Y-center.Y, pt.X-center.X)
			angles = append(angles, base-angleEpsilon, base, base+angleEpsilon)
		}
	}
	sort.Float64s(angles)

	verts := make([]geom.Point, 0, len(angles))
	var lastAngle float64
	first := true
	for _, a := range angles {
		if !first && math.Abs(a-lastAngle) < 1e-9 {
			continue
		}
		first = false
		lastAngle = a
		dir := geom.Vector{X: math.Cos(a), Y: math.Sin(a)}
		far := geom.Point{X: center.X + dir.X*maxSweepRadius, Y: center.Y + dir.Y*maxSweepRadius}
		hit, ok := nearestHit(center, far, walls)
		if !ok {
			hit = far
		}
		verts = append(verts, hit)
	}
	return geom.Polygon{Verts: verts}
}

// nearestHit returns the closest point where segment center->far crosses any
// wall, scanning all walls (a token's local wall set is always small, so a
// linear scan keeps this simple and matches the teacher's style of plain
// loops over slices rather than building auxiliary indices for local work).
func nearestHit(center, far geom.Point, walls []*placeable.Wall) (geom.Point, bool) {
	bestT := math.Inf(1)
	var best geom.Point
	found := false
	for _, w := range walls {
		t, ok := segmentIntersectionT(center, far, w.A, w.B)
		if !ok {
			continue
		}
		if t < bestT {
			bestT = t
			best = geom.Point{X: center.X + (far.X-center.X)*t, Y: center.Y + (far.Y-center.Y)*t}
			found = true
		}
	}
	return best, found
}

// segmentIntersectionT returns the parameter t along a->b where it crosses
// c->d, or ok=false if the segments do not cross.
func segmentIntersectionT(a, b, c, d geom.Point) (float64, bool) {
	r := geom.Vector{X: b.X - a.X, Y: b.Y - a.Y}
	s := geom.Vector{X: d.X - c.X, Y: d.Y - c.Y}
	denom := r.Cross(s)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	qp := geom.Vector{X: c.X - a.X, Y: c.Y - a.Y}
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
