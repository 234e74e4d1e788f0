package geom

import "testing"

func TestRectArea(t *testing.T) {
	r := Rect{0, 0, 10, 5}
	if got := r.Area(); got != 50 {
		t.Fatalf("expected area 50, got %v", got)
	}
}

func TestRectDegenerateArea(t *testing.T) {
	r := Rect{0, 0, 0, 5}
	if got := r.Area(); got != 0 {
		t.Fatalf("expected zero area for degenerate rect, got %v", got)
	}
}

func TestSegmentsIntersect_Crossing(t *testing.T) {
	if !SegmentsIntersect(Point{0, 0}, Point{10, 10}, Point{0, 10}, Point{10, 0}, false) {
		t.Fatal("expected diagonal segments to cross")
	}
}

func TestSegmentsIntersect_Parallel(t *testing.T) {
	if SegmentsIntersect(Point{0, 0}, Point{10, 0}, Point{0, 5}, Point{10, 5}, false) {
		t.Fatal("parallel segments should not intersect")
	}
}

func TestSegmentsIntersect_EndpointTouch(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 10}
	c, d := Point{10, 10}, Point{20, 0}
	if SegmentsIntersect(a, b, c, d, false) {
		t.Fatal("endpoint touch should not count as crossing when touching=false")
	}
	if !SegmentsIntersect(a, b, c, d, true) {
		t.Fatal("endpoint touch should count as crossing when touching=true")
	}
}

func TestRayHitT_InsideBox(t *testing.T) {
	_, ok := RayHitT(Point{10, 10}, Point{20, 20}, Rect{0, 0, 100, 100})
	if !ok {
		t.Fatal("ray wholly inside box should report a hit at t=0")
	}
}

func TestRayHitT_Miss(t *testing.T) {
	_, ok := RayHitT(Point{0, 0}, Point{0, 100}, Rect{50, 0, 150, 100})
	if ok {
		t.Fatal("ray to the left of the box should not hit")
	}
}

func TestSegmentIntersectsRect_Crossing(t *testing.T) {
	rect := Rect{40, 0, 60, 200}
	if !SegmentIntersectsRect(rect, Point{0, 100}, Point{200, 100}, true) {
		t.Fatal("expected horizontal segment to cross the rect")
	}
}

func TestSegmentIntersectsRect_BothOutsideSameHalf(t *testing.T) {
	rect := Rect{0, 0, 10, 10}
	if SegmentIntersectsRect(rect, Point{20, 20}, Point{30, 30}, true) {
		t.Fatal("segment entirely beyond the rect should not intersect")
	}
}

func TestSegmentIntersectsRect_WhollyInside(t *testing.T) {
	rect := Rect{0, 0, 100, 100}
	if !SegmentIntersectsRect(rect, Point{10, 10}, Point{20, 20}, true) {
		t.Fatal("segment wholly inside should count when inside=true")
	}
	if SegmentIntersectsRect(rect, Point{10, 10}, Point{20, 20}, false) {
		t.Fatal("segment wholly inside should not count when inside=false")
	}
}

func TestPolygonAreaAndContains(t *testing.T) {
	sq := NewRectPolygon(Rect{0, 0, 10, 10})
	if got := sq.Area(); got != 100 {
		t.Fatalf("expected area 100, got %v", got)
	}
	if !sq.Contains(Point{5, 5}) {
		t.Fatal("center should be contained")
	}
	if sq.Contains(Point{50, 50}) {
		t.Fatal("far point should not be contained")
	}
}

func TestRegularPolygonVertexCount(t *testing.T) {
	hex := RegularPolygon(6, 10)
	if len(hex.Verts) != 6 {
		t.Fatalf("expected 6 vertices, got %d", len(hex.Verts))
	}
}

func TestIntersect_FullOverlap(t *testing.T) {
	subject := NewRectPolygon(Rect{0, 0, 10, 10})
	clip := NewRectPolygon(Rect{0, 0, 10, 10})
	got := Intersect(subject, clip)
	if diff := got.Area() - 100; diff > 0.5 || diff < -0.5 {
		t.Fatalf("expected ~100 area for identical overlap, got %v", got.Area())
	}
}

func TestIntersect_HalfOverlap(t *testing.T) {
	subject := NewRectPolygon(Rect{0, 0, 10, 10})
	clip := NewRectPolygon(Rect{5, 0, 15, 10})
	got := Intersect(subject, clip)
	if diff := got.Area() - 50; diff > 0.5 || diff < -0.5 {
		t.Fatalf("expected ~50 area for half overlap, got %v", got.Area())
	}
}

func TestIntersect_NoOverlap(t *testing.T) {
	subject := NewRectPolygon(Rect{0, 0, 10, 10})
	clip := NewRectPolygon(Rect{100, 100, 110, 110})
	got := Intersect(subject, clip)
	if !got.Degenerate() {
		t.Fatalf("expected empty intersection, got area %v", got.Area())
	}
}

func TestDifference_NoCutouts(t *testing.T) {
	subject := NewRectPolygon(Rect{0, 0, 10, 10})
	if got := Difference(subject, nil); got != 100 {
		t.Fatalf("expected full area with no cutouts, got %v", got)
	}
}

func TestDifference_HalfCutout(t *testing.T) {
	subject := NewRectPolygon(Rect{0, 0, 10, 10})
	cutout := NewRectPolygon(Rect{0, 0, 5, 10})
	got := Difference(subject, []Polygon{cutout})
	if diff := got - 50; diff > 2 || diff < -2 {
		t.Fatalf("expected ~50 remaining area, got %v", got)
	}
}

func TestDifference_FullCutout(t *testing.T) {
	subject := NewRectPolygon(Rect{0, 0, 10, 10})
	cutout := NewRectPolygon(Rect{-5, -5, 15, 15})
	got := Difference(subject, []Polygon{cutout})
	if got > 2 {
		t.Fatalf("expected ~0 remaining area, got %v", got)
	}
}
