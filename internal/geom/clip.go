package geom

// FixedScale is the default integer scaling factor applied before clipping,
// per spec.md §4.1's "integer scaling factor for fixed-point stability"
// requirement. 256 gives sub-1/256-pixel precision, matching the subpixel
// precision a 100x100 GPU render target (variant 4.4.d) would resolve.
const FixedScale = 256.0

// Intersect clips subject against a convex clip polygon using
// Sutherland-Hodgman, returning the (possibly empty) resulting polygon.
// clip must be convex; subject may be any simple polygon. Inputs are scaled
// to the fixed-point integer domain and unscaled on return, per spec.md
// §4.1 ("callers pass floats and receive floats").
func Intersect(subject, clip Polygon) Polygon {
	if subject.Degenerate() || clip.Degenerate() {
		return Polygon{}
	}
	s := ScaleFixed(subject, FixedScale)
	c := ScaleFixed(clip, FixedScale)
	out := sutherlandHodgman(s, c)
	if len(out.Verts) < 3 {
		return Polygon{}
	}
	return UnscaleFixed(out, FixedScale)
}

// sutherlandHodgman clips subject against each edge of the convex clip
// polygon in turn. clip's winding determines which half-plane is "inside";
// this engine's polygons wind clockwise in Y-down coordinates; edges are
// walked in that order so the "inside" test (insideEdge) keeps points to the
// right of each directed edge, i.e. inside a clockwise loop.
func sutherlandHodgman(subject, clip Polygon) Polygon {
	output := subject.Verts
	clipEdges := clip.Edges()
	for _, edge := range clipEdges {
		if len(output) == 0 {
			break
		}
		input := output
		output = nil
		for i := 0; i < len(input); i++ {
			cur := input[i]
			prev := input[(i-1+len(input))%len(input)]
			curIn := insideEdge(edge, cur)
			prevIn := insideEdge(edge, prev)
			if curIn {
				if !prevIn {
					if ip, ok := edgeIntersection(edge, Segment{prev, cur}); ok {
						output = append(output, ip)
					}
				}
				output = append(output, cur)
			} else if prevIn {
				if ip, ok := edgeIntersection(edge, Segment{prev, cur}); ok {
					output = append(output, ip)
				}
			}
		}
	}
	return Polygon{Verts: output}
}

// insideEdge reports whether p is on the "inside" (right, for a clockwise
// Y-down loop) side of directed edge e.
func insideEdge(e Segment, p Point) bool {
	v := e.Vector()
	return v.Cross(p.Sub(e.A)) >= 0
}

// edgeIntersection returns the point where line e crosses segment s,
// assuming (per Sutherland-Hodgman's invariant) that s's endpoints straddle
// e's infinite line.
func edgeIntersection(e, s Segment) (Point, bool) {
	d1 := e.Vector()
	d2 := s.Vector()
	denom := d1.Cross(d2)
	if denom == 0 {
		return Point{}, false
	}
	t := (s.A.Sub(e.A)).Cross(d2) / denom
	return e.A.Add(d1.Scale(t)), true
}

// MultiPolygon is a set of polygon fragments (such as the subject ∩ shadow
// pieces Difference builds) that may overlap one another. Callers needing
// the covered area use TotalArea, not the sum of each fragment's Area, to
// avoid double counting overlaps.
type MultiPolygon struct {
	Polys []Polygon
}

// TotalArea returns the area of the union of mp's polygons. A single polygon
// reports its exact Area; two or more are estimated by unionAreaByScanline's
// 128x128 grid of cell-centre samples over their combined bounds.
func (mp MultiPolygon) TotalArea() float64 {
	if len(mp.Polys) == 0 {
		return 0
	}
	if len(mp.Polys) == 1 {
		return mp.Polys[0].Area()
	}
	bounds := mp.Polys[0].AABB()
	for _, p := range mp.Polys[1:] {
		bounds = bounds.Union(p.AABB())
	}
	return unionAreaByScanline(mp.Polys, bounds)
}

// unionAreaByScanline estimates the area of the union of polys by sampling a
// dense grid over bounds and counting cells whose center falls in at least
// one polygon. Grid resolution is chosen so the relative error stays well
// under 1% for typical token/face sizes; this mirrors the GPU rasterized
// pixel-count variant's own approach to union-of-shadows (spec.md §4.4.d)
// and keeps the CPU-side area calculators (4.4.b/4.4.c) consistent with it.
func unionAreaByScanline(polys []Polygon, bounds Rect) float64 {
	const gridRes = 128
	w := bounds.Width()
	h := bounds.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	stepX := w / gridRes
	stepY := h / gridRes
	if stepX <= 0 || stepY <= 0 {
		return 0
	}
	count := 0
	for i := 0; i < gridRes; i++ {
		px := bounds.MinX + (float64(i)+0.5)*stepX
		for j := 0; j < gridRes; j++ {
			py := bounds.MinY + (float64(j)+0.5)*stepY
			pt := Point{px, py}
			for _, p := range polys {
				if p.Contains(pt) {
					count++
					break
				}
			}
		}
	}
	cellArea := stepX * stepY
	return float64(count) * cellArea
}

// Difference subtracts the union of cutouts from subject and returns the
// remaining visible area (per spec.md §4.4.b/c: "target polygon minus that
// union is the visible region"). Because cutouts may be concave unions of
// many convex shadows, Difference reports area directly rather than
// attempting to reconstruct an exact residual polygon.
func Difference(subject Polygon, cutouts []Polygon) float64 {
	total := subject.Area()
	if total <= 0 {
		return 0
	}
	if len(cutouts) == 0 {
		return total
	}
	clipped := make([]Polygon, 0, len(cutouts))
	for _, c := range cutouts {
		ip := Intersect(subject, c)
		if !ip.Degenerate() {
			clipped = append(clipped, ip)
		}
	}
	if len(clipped) == 0 {
		return total
	}
	occluded := MultiPolygon{Polys: clipped}.TotalArea()
	if occluded > total {
		occluded = total
	}
	return total - occluded
}
