package spatial

import "github.com/Garsondee/Cover-Engine/internal/geom"

// Frustum is the 3D convex region between a viewer eye-point and a target's
// bounding volume (spec.md §3). It is transient — one per render/query call
// — so it carries no owned resources.
type Frustum struct {
	Eye    geom.Point3
	Target geom.Rect // target's world-space footprint AABB
	ZLo    float64   // target elevation band, lower
	ZHi    float64   // target elevation band, upper
}

// AABB returns the convex hull bounding box used as the obstacle index's
// frustum prefilter (spec.md §4.2: "convex-hull prefilter"). It always
// includes both the eye point and the target volume, per spec.md §3's
// Frustum invariant.
func (f Frustum) AABB() geom.Rect {
	box := geom.Rect{
		MinX: f.Eye.X, MinY: f.Eye.Y,
		MaxX: f.Eye.X, MaxY: f.Eye.Y,
	}
	box = box.Union(f.Target)
	return box
}
