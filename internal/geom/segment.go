package geom

import "math"

// Segment is a directed line segment from A to B.
type Segment struct {
	A, B Point
}

// Len returns the segment's length.
func (s Segment) Len() float64 { return s.A.Dist(s.B) }

// Degenerate reports whether the segment has (near) zero length.
func (s Segment) Degenerate() bool { return s.Len() <= PixelTolerance*1e-3 }

// Vector returns B - A.
func (s Segment) Vector() Vector { return s.B.Sub(s.A) }

// SegmentsIntersect reports whether segments AB and CD properly cross.
// touching is the tie-break for endpoint-touching configurations: when
// false (the default used by the visibility path), two segments that only
// touch at an endpoint do not count as crossing.
//
// This is the generalization of los.go's rayIntersectsAABB: here both
// operands are arbitrary segments rather than one segment and an AABB.
func SegmentsIntersect(a, b, c, d Point, touching bool) bool {
	d1 := orientation(c, d, a)
	d2 := orientation(c, d, b)
	d3 := orientation(a, b, c)
	d4 := orientation(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if !touching {
		return false
	}

	if d1 == 0 && onSegment(c, d, a) {
		return true
	}
	if d2 == 0 && onSegment(c, d, b) {
		return true
	}
	if d3 == 0 && onSegment(a, b, c) {
		return true
	}
	if d4 == 0 && onSegment(a, b, d) {
		return true
	}
	return false
}

// orientation returns the signed area of triangle (p,q,r); its sign gives the
// turn direction, zero-within-tolerance means colinear.
func orientation(p, q, r Point) float64 {
	v := (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
	if math.Abs(v) < PixelTolerance {
		return 0
	}
	return v
}

// onSegment reports whether point p, known colinear with segment qr, lies
// between q and r.
func onSegment(q, r, p Point) bool {
	return p.X >= math.Min(q.X, r.X)-PixelTolerance && p.X <= math.Max(q.X, r.X)+PixelTolerance &&
		p.Y >= math.Min(q.Y, r.Y)-PixelTolerance && p.Y <= math.Max(q.Y, r.Y)+PixelTolerance
}

// RayHitT returns the segment parameter t in [0,1] where segment A->B first
// enters rect; ok is false when there is no such entry point. This is the
// direct generalization of los.go's rayAABBHitT, kept for callers (the
// points-sampling calculator) that need the hit distance, not just a bool.
func RayHitT(a, b Point, rect Rect) (t float64, ok bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y

	tMin, tMax := 0.0, 1.0

	if math.Abs(dx) < 1e-12 {
		if a.X < rect.MinX || a.X > rect.MaxX {
			return 0, false
		}
	} else {
		inv := 1.0 / dx
		t1 := (rect.MinX - a.X) * inv
		t2 := (rect.MaxX - a.X) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if math.Abs(dy) < 1e-12 {
		if a.Y < rect.MinY || a.Y > rect.MaxY {
			return 0, false
		}
	} else {
		inv := 1.0 / dy
		t1 := (rect.MinY - a.Y) * inv
		t2 := (rect.MaxY - a.Y) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	if tMin < 0 {
		tMin = 0
	}
	if tMin > 1 {
		return 0, false
	}
	return tMin, true
}

// outcode bits for Cohen-Sutherland clipping.
const (
	ocInside = 0
	ocLeft   = 1 << 0
	ocRight  = 1 << 1
	ocBottom = 1 << 2
	ocTop    = 1 << 3
)

func outcode(p Point, r Rect) int {
	code := ocInside
	switch {
	case p.X < r.MinX:
		code |= ocLeft
	case p.X > r.MaxX:
		code |= ocRight
	}
	switch {
	case p.Y < r.MinY:
		code |= ocBottom
	case p.Y > r.MaxY:
		code |= ocTop
	}
	return code
}

// SegmentIntersectsRect reports whether segment A-B intersects rect, using
// Cohen-Sutherland outcodes: both endpoints sharing a non-inside half-plane
// rejects outright; otherwise the segment is tested against all four edges.
// If inside is true, a segment wholly inside the rect also counts as a hit
// (matching spec.md §4.1's lineSegmentIntersectsRect contract).
func SegmentIntersectsRect(rect Rect, a, b Point, inside bool) bool {
	oa := outcode(a, rect)
	ob := outcode(b, rect)

	if oa == ocInside && ob == ocInside {
		return inside
	}
	if oa&ob != 0 {
		// Both endpoints share an "outside" half-plane: trivial reject.
		return false
	}

	// Full edge tests: does segment AB cross any of the four rect edges, or
	// does either endpoint lie inside?
	if oa == ocInside || ob == ocInside {
		return true
	}
	corners := [4]Point{
		{rect.MinX, rect.MinY}, {rect.MaxX, rect.MinY},
		{rect.MaxX, rect.MaxY}, {rect.MinX, rect.MaxY},
	}
	for i := 0; i < 4; i++ {
		c1 := corners[i]
		c2 := corners[(i+1)%4]
		if SegmentsIntersect(a, b, c1, c2, true) {
			return true
		}
	}
	return false
}
