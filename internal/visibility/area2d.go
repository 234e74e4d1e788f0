package visibility

import (
	"math"

	"github.com/Garsondee/Cover-Engine/internal/geom"
)

// Area2DCalculator is variant 4.4.b: project every blocking wall's shadow
// from the viewer onto the target's footprint plane, union the shadows, and
// take the target polygon's area minus that union. Grounded on the teacher's
// coverOverlapsBuildings/IsBehindCover pairing in internal/game/cover.go,
// generalized from single-cell AABB overlap tests to full shadow-polygon
// union over an arbitrary wall set.
type Area2DCalculator struct{}

func (Area2DCalculator) PercentVisible(viewerPoint geom.Point3, target Target, scene Scene, cfg Config) float32 {
	if v, ok := sharedEdgeCase(viewerPoint, target, scene); ok {
		return v
	}
	viewer2 := geom.Point{X: viewerPoint.X, Y: viewerPoint.Y}
	targetPoly := target.Footprint

	var shadows []geom.Polygon
	if cfg.Blocking.Walls {
		for _, w := range scene.Walls {
			if w == nil || w.Degenerate() || !w.Blocks(cfg.SenseKind) {
				continue
			}
			if !w.Elevation.Contains(viewerPoint.Z) && !w.Elevation.Contains((target.Elevation.ZBottom+target.Elevation.ZTop)/2) {
				continue
			}
			dir := geom.Point{X: (w.A.X+w.B.X)/2 - viewer2.X, Y: (w.A.Y+w.B.Y)/2 - viewer2.Y}
			if !w.FacingBlocks(geom.Vector{X: dir.X, Y: dir.Y}) {
				continue
			}
			shadow := wallShadow(viewer2, w.A, w.B, targetPoly.AABB())
			if !shadow.Degenerate() {
				shadows = append(shadows, shadow)
			}
		}
	}
	if tokensBlock(cfg) {
		for _, tok := range scene.Tokens {
			if tok == nil || tok.ID == target.TokenID || !tokenContributes(cfg, tok) {
				continue
			}
			if !tok.Elevation.Contains(viewerPoint.Z) && !tok.Elevation.Contains((target.Elevation.ZBottom+target.Elevation.ZTop)/2) {
				continue
			}
			poly := tok.Footprint.World()
			for _, e := range poly.Edges() {
				shadow := wallShadow(viewer2, e.A, e.B, targetPoly.AABB())
				if !shadow.Degenerate() {
					shadows = append(shadows, shadow)
				}
			}
		}
	}

	if len(shadows) == 0 {
		return 1
	}
	targetArea := targetPoly.Area()
	if targetArea <= 0 {
		return 0
	}
	visible := geom.Difference(targetPoly, shadows)
	pct := visible / targetArea
	return float32(geom.Clamp01(pct))
}

// wallShadow projects the edge A-B away from viewer onto a shadow
// quadrilateral large enough to cover bound, the standard "extend the two
// rays through the edge's endpoints" shadow-volume construction. The result
// has positive signed area whichever way A-B is listed, so it can be used as
// a clip polygon by geom.Difference.
func wallShadow(viewer, a, b geom.Point, bound geom.Rect) geom.Polygon {
	const reach = 1e5
	rayA := extend(viewer, a, reach)
	rayB := extend(viewer, b, reach)
	poly := geom.Polygon{Verts: []geom.Point{a, rayA, rayB, b}}
	if poly.Degenerate() {
		return geom.Polygon{}
	}
	if poly.SignedArea() < 0 {
		poly = geom.Polygon{Verts: []geom.Point{b, rayB, rayA, a}}
	}
	clip := geom.NewRectPolygon(bound)
	return geom.Intersect(poly, clip)
}

func extend(from, through geom.Point, length float64) geom.Point {
	dx := through.X - from.X
	dy := through.Y - from.Y
	d := math.Hypot(dx, dy)
	if d < 1e-9 {
		return through
	}
	return geom.Point{X: from.X + dx/d*length, Y: from.Y + dy/d*length}
}
