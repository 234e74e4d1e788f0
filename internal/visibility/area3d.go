package visibility

import (
	"math"

	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

// Area3DCalculator is variant 4.4.c: determine which faces of the target's
// box the viewer can actually see (top/bottom by altitude, up to four
// vertical sides by horizontal bearing), project each wall/blocker edge's
// perspective shadow onto that face's plane from the viewer point, and sum
// (face_area - obscured_area) over the visible faces. Grounded on the same
// teacher shadow-construction idiom as Area2DCalculator, extended to the
// box's additional faces per spec.md §4.4.c.
type Area3DCalculator struct{}

// face is one planar rectangle of the target's box, expressed as a 2D
// polygon in its own projection plane plus a function mapping viewer-frame
// 3D points onto that plane (so wall edges can be projected consistently).
type face struct {
	polygon geom.Polygon    // face rect in its own 2D plane coordinates
	project func(geom.Point3) geom.Point
}

func (Area3DCalculator) PercentVisible(viewerPoint geom.Point3, target Target, scene Scene, cfg Config) float32 {
	if v, ok := sharedEdgeCase(viewerPoint, target, scene); ok {
		return v
	}
	faces := visibleFaces(viewerPoint, target)
	if len(faces) == 0 {
		return 1
	}

	totalArea := 0.0
	visibleArea := 0.0
	for _, f := range faces {
		faceArea := f.polygon.Area()
		if faceArea <= 0 {
			continue
		}
		totalArea += faceArea
		shadows := faceShadows(viewerPoint, f, scene, cfg, target)
		visible := geom.Difference(f.polygon, shadows)
		visibleArea += visible
	}
	if totalArea <= 0 {
		return 1
	}
	return float32(geom.Clamp01(visibleArea / totalArea))
}

// visibleFaces returns the target box's faces the viewer can see: the top
// or bottom (whichever the viewer's altitude is on the outside of) and
// whichever of the four side faces the viewer's horizontal bearing faces.
func visibleFaces(viewer geom.Point3, target Target) []face {
	box := target.Footprint.AABB()
	zLo, zHi := target.Elevation.ZBottom, target.Elevation.ZTop
	var faces []face

	if viewer.Z > zHi {
		faces = append(faces, face{
			polygon: geom.NewRectPolygon(box),
			project: func(p geom.Point3) geom.Point { return geom.Point{X: p.X, Y: p.Y} },
		})
	} else if viewer.Z < zLo {
		faces = append(faces, face{
			polygon: geom.NewRectPolygon(box),
			project: func(p geom.Point3) geom.Point { return geom.Point{X: p.X, Y: p.Y} },
		})
	}

	// North (min Y), South (max Y), West (min X), East (max X) side faces,
	// expressed in a (horizontal-offset, height) plane.
	type side struct {
		visible bool
		rect    geom.Rect
		project func(geom.Point3) geom.Point
	}
	sides := []side{
		{
			visible: viewer.Y < box.MinY,
			rect:    geom.Rect{MinX: box.MinX, MinY: zLo, MaxX: box.MaxX, MaxY: zHi},
			project: func(p geom.Point3) geom.Point { return geom.Point{X: p.X, Y: p.Z} },
		},
		{
			visible: viewer.Y > box.MaxY,
			rect:    geom.Rect{MinX: box.MinX, MinY: zLo, MaxX: box.MaxX, MaxY: zHi},
			project: func(p geom.Point3) geom.Point { return geom.Point{X: p.X, Y: p.Z} },
		},
		{
			visible: viewer.X < box.MinX,
			rect:    geom.Rect{MinX: box.MinY, MinY: zLo, MaxX: box.MaxY, MaxY: zHi},
			project: func(p geom.Point3) geom.Point { return geom.Point{X: p.Y, Y: p.Z} },
		},
		{
			visible: viewer.X > box.MaxX,
			rect:    geom.Rect{MinX: box.MinY, MinY: zLo, MaxX: box.MaxY, MaxY: zHi},
			project: func(p geom.Point3) geom.Point { return geom.Point{X: p.Y, Y: p.Z} },
		},
	}
	for _, s := range sides {
		if !s.visible || math.IsInf(s.rect.MinY, 0) || math.IsInf(s.rect.MaxY, 0) {
			continue
		}
		faces = append(faces, face{polygon: geom.NewRectPolygon(s.rect), project: s.project})
	}
	return faces
}

// faceShadows projects every relevant blocker edge's perspective shadow
// (segment-with-plane from viewerPoint) onto f's plane and returns the
// resulting shadow polygons for Difference to subtract.
func faceShadows(viewer geom.Point3, f face, scene Scene, cfg Config, target Target) []geom.Polygon {
	bound := f.polygon.AABB()
	var shadows []geom.Polygon

	project := func(p geom.Point) geom.Point {
		return f.project(geom.Point3{X: p.X, Y: p.Y, Z: (target.Elevation.ZBottom + target.Elevation.ZTop) / 2})
	}

	if cfg.Blocking.Walls {
		for _, w := range scene.Walls {
			if w == nil || w.Degenerate() || !w.Blocks(cfg.SenseKind) {
				continue
			}
			wallZ := wallEdgeZ(w.Elevation, viewer.Z)
			a := f.project(geom.Point3{X: w.A.X, Y: w.A.Y, Z: wallZ})
			b := f.project(geom.Point3{X: w.B.X, Y: w.B.Y, Z: wallZ})
			vp := f.project(viewer)
			shadow := wallShadow(vp, a, b, bound)
			if !shadow.Degenerate() {
				shadows = append(shadows, shadow)
			}
		}
	}
	if cfg.Blocking.Tiles {
		for _, tl := range scene.Tiles {
			if tl == nil {
				continue
			}
			poly := tl.Footprint.World()
			vp := f.project(viewer)
			for _, e := range poly.Edges() {
				a := project(e.A)
				b := project(e.B)
				shadow := wallShadow(vp, a, b, bound)
				if !shadow.Degenerate() {
					shadows = append(shadows, shadow)
				}
			}
		}
	}
	if tokensBlock(cfg) {
		for _, tok := range scene.Tokens {
			if tok == nil || tok.ID == target.TokenID || !tokenContributes(cfg, tok) {
				continue
			}
			poly := tok.Footprint.World()
			vp := f.project(viewer)
			for _, e := range poly.Edges() {
				a := project(e.A)
				b := project(e.B)
				shadow := wallShadow(vp, a, b, bound)
				if !shadow.Degenerate() {
					shadows = append(shadows, shadow)
				}
			}
		}
	}
	return shadows
}

// wallEdgeZ picks a representative elevation for a wall's A/B edge within
// its own band, preferring the viewer's altitude when it falls inside the
// band (walls commonly span an open-ended or very tall band).
func wallEdgeZ(band placeable.ElevationBand, viewerZ float64) float64 {
	switch {
	case math.IsInf(band.ZBottom, -1) && math.IsInf(band.ZTop, 1):
		return viewerZ
	case math.IsInf(band.ZTop, 1):
		if viewerZ > band.ZBottom {
			return viewerZ
		}
		return band.ZBottom
	case math.IsInf(band.ZBottom, -1):
		if viewerZ < band.ZTop {
			return viewerZ
		}
		return band.ZTop
	default:
		if viewerZ >= band.ZBottom && viewerZ <= band.ZTop {
			return viewerZ
		}
		return (band.ZBottom + band.ZTop) / 2
	}
}
