package visibility

import (
	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

// PointsCalculator is variant 4.4.a: sample a finite set of points on the
// target's silhouette and test each sample's ray from the viewpoint against
// walls, then alpha-masked tiles, then blocker-token silhouettes. Grounded
// on the teacher's HasLineOfSightWithCover (internal/game/los.go), widened
// from a single building/cover-object pass to the full blocker-kind set.
type PointsCalculator struct{}

func (PointsCalculator) PercentVisible(viewerPoint geom.Point3, target Target, scene Scene, cfg Config) float32 {
	if v, ok := sharedEdgeCase(viewerPoint, target, scene); ok {
		return v
	}
	samples := targetSamplePoints(target, cfg.TargetPoints, cfg.TargetInset, cfg.Points3D)
	if len(samples) == 0 {
		return 1
	}
	blocked := 0
	for _, s := range samples {
		if segmentBlocked(viewerPoint, s, scene, cfg, target.TokenID) {
			blocked++
		}
	}
	return float32(len(samples)-blocked) / float32(len(samples))
}

// targetSamplePoints builds the sample set per spec.md §4.4.a: center plus
// corner/edge samples controlled by count, each optionally doubled across
// the target's top/bottom elevation when points3d is set. inset pulls
// corner/edge samples inward so they never land exactly on the silhouette
// boundary.
func targetSamplePoints(target Target, count PointCount, inset float64, points3D bool) []geom.Point3 {
	box := target.Footprint.AABB()
	w := box.Width()
	h := box.Height()
	cx, cy := box.Center().X, box.Center().Y
	ix := w * inset
	iy := h * inset

	var flat []geom.Point
	flat = append(flat, geom.Point{X: cx, Y: cy})
	if count >= Points5 {
		flat = append(flat,
			geom.Point{X: box.MinX + ix, Y: box.MinY + iy},
			geom.Point{X: box.MaxX - ix, Y: box.MinY + iy},
			geom.Point{X: box.MaxX - ix, Y: box.MaxY - iy},
			geom.Point{X: box.MinX + ix, Y: box.MaxY - iy},
		)
	}
	if count >= Points9 {
		flat = append(flat,
			geom.Point{X: cx, Y: box.MinY + iy},
			geom.Point{X: box.MaxX - ix, Y: cy},
			geom.Point{X: cx, Y: box.MaxY - iy},
			geom.Point{X: box.MinX + ix, Y: cy},
		)
	}

	zBottom := target.Elevation.ZBottom
	zTop := target.Elevation.ZTop
	zMid := (zBottom + zTop) / 2

	out := make([]geom.Point3, 0, len(flat)*2)
	if !points3D {
		for _, p := range flat {
			out = append(out, geom.Point3{X: p.X, Y: p.Y, Z: zMid})
		}
		return out
	}
	zSpan := zTop - zBottom
	zi := zSpan * inset
	for _, p := range flat {
		out = append(out,
			geom.Point3{X: p.X, Y: p.Y, Z: zBottom + zi},
			geom.Point3{X: p.X, Y: p.Y, Z: zTop - zi},
		)
	}
	return out
}

// segmentBlocked tests whether the ray from viewer to sample is occluded,
// in the order spec.md §4.4.a prescribes: walls first, then alpha-threshold
// tiles, then blocker-token silhouette containment.
func segmentBlocked(viewer, sample geom.Point3, scene Scene, cfg Config, targetTok placeable.TokenID) bool {
	v2 := geom.Point{X: viewer.X, Y: viewer.Y}
	s2 := geom.Point{X: sample.X, Y: sample.Y}
	seg := geom.Segment{A: v2, B: s2}

	if cfg.Blocking.Walls {
		for _, w := range scene.Walls {
			if w == nil || w.Degenerate() || !w.Blocks(cfg.SenseKind) {
				continue
			}
			if !w.Elevation.Contains(viewer.Z) && !w.Elevation.Contains(sample.Z) {
				continue
			}
			if !geom.SegmentsIntersect(seg.A, seg.B, w.A, w.B, false) {
				continue
			}
			if !w.FacingBlocks(seg.Vector()) {
				continue
			}
			return true
		}
	}

	if cfg.Blocking.Tiles {
		for _, tl := range scene.Tiles {
			if tl == nil {
				continue
			}
			segAABB := geom.Rect{
				MinX: minF(seg.A.X, seg.B.X), MinY: minF(seg.A.Y, seg.B.Y),
				MaxX: maxF(seg.A.X, seg.B.X), MaxY: maxF(seg.A.Y, seg.B.Y),
			}
			if !tl.Footprint.World().AABB().Intersects(segAABB) {
				continue
			}
			if tileRayBlocked(seg, tl, cfg.AlphaThreshold) {
				return true
			}
		}
	}

	if tokensBlock(cfg) {
		for _, tok := range scene.Tokens {
			if tok == nil || tok.ID == targetTok || !tokenContributes(cfg, tok) {
				continue
			}
			poly := tok.Footprint.World()
			if !tok.Elevation.Contains(viewer.Z) && !tok.Elevation.Contains(sample.Z) {
				continue
			}
			if segmentCrossesPolygon(seg, poly) {
				return true
			}
		}
	}

	return false
}

func tokensBlock(cfg Config) bool {
	return cfg.Blocking.Tokens.Dead || cfg.Blocking.Tokens.Live || cfg.Blocking.Tokens.Prone
}

// tileRayBlocked samples the tile's alpha mask at a handful of points along
// the ray within the tile's footprint and blocks if any sample exceeds
// alphaThreshold, matching the GPU variant's green-channel threshold rule
// for a single-tile CPU equivalent.
func tileRayBlocked(seg geom.Segment, tl *placeable.Tile, alphaThreshold float64) bool {
	const steps = 8
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		p := geom.Point{X: seg.A.X + (seg.B.X-seg.A.X)*t, Y: seg.A.Y + (seg.B.Y-seg.A.Y)*t}
		if !tl.Footprint.World().Contains(p) {
			continue
		}
		if tl.Blocks(p, alphaThreshold) {
			return true
		}
	}
	return false
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

// segmentCrossesPolygon reports whether seg crosses poly's boundary or has
// either endpoint inside it (a silhouette-containment test, per spec.md
// §4.4.a's "token-silhouette containment tests for blocker tokens").
func segmentCrossesPolygon(seg geom.Segment, poly geom.Polygon) bool {
	if poly.Contains(seg.A) || poly.Contains(seg.B) {
		return true
	}
	for _, e := range poly.Edges() {
		if geom.SegmentsIntersect(seg.A, seg.B, e.A, e.B, false) {
			return true
		}
	}
	return false
}
