package silhouette

import (
	"testing"

	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

func square(id placeable.TokenID, cx, cy, half float64) placeable.Token {
	return placeable.Token{
		ID: id,
		Footprint: placeable.Shape{
			Platonic: geom.NewRectPolygon(geom.RectFromCenter(geom.Point{}, half, half)),
			Center:   geom.Point{X: cx, Y: cy},
		},
		Elevation: placeable.ElevationBand{ZBottom: 0, ZTop: 1},
	}
}

// boundaryWalls returns four large walls enclosing center, standing in for
// the scene's outer AABB that spec.md §4.3 always folds into the sweep —
// without them the sweep has nothing to hit in directions with no near wall
// and cannot close into a bounded polygon.
func boundaryWalls(cx, cy, half float64) []*placeable.Wall {
	return []*placeable.Wall{
		{A: geom.Point{X: cx - half, Y: cy - half}, B: geom.Point{X: cx + half, Y: cy - half}},
		{A: geom.Point{X: cx + half, Y: cy - half}, B: geom.Point{X: cx + half, Y: cy + half}},
		{A: geom.Point{X: cx + half, Y: cy + half}, B: geom.Point{X: cx - half, Y: cy + half}},
		{A: geom.Point{X: cx - half, Y: cy + half}, B: geom.Point{X: cx - half, Y: cy - half}},
	}
}

func TestBuild_NoWalls_Unrestricted(t *testing.T) {
	tok := square("a", 50, 50, 5)
	res := Build(tok, placeable.SenseSight, nil, nil)
	if !res.Unrestricted {
		t.Fatal("expected unrestricted silhouette with no walls")
	}
	if res.Polygon.Area() != tok.Footprint.World().Area() {
		t.Fatalf("expected silhouette area to equal footprint area, got %v vs %v",
			res.Polygon.Area(), tok.Footprint.World().Area())
	}
}

func TestBuild_FarWall_Unrestricted(t *testing.T) {
	tok := square("a", 50, 50, 5)
	far := &placeable.Wall{A: geom.Point{X: 900, Y: 900}, B: geom.Point{X: 900, Y: 950}}
	res := Build(tok, placeable.SenseSight, []*placeable.Wall{far}, nil)
	if !res.Unrestricted {
		t.Fatal("expected unrestricted silhouette: wall AABB does not intersect footprint")
	}
}

func TestBuild_WallOnFootprintEdge_Excluded(t *testing.T) {
	tok := square("a", 50, 50, 5)
	// Wall exactly along the token's left edge (x=45).
	onEdge := &placeable.Wall{A: geom.Point{X: 45, Y: 40}, B: geom.Point{X: 45, Y: 60}}
	res := Build(tok, placeable.SenseSight, []*placeable.Wall{onEdge}, nil)
	if !res.Unrestricted {
		t.Fatal("wall lying on a footprint edge should not trim the silhouette")
	}
}

func TestBuild_WallClippingThroughFootprint_Restricted(t *testing.T) {
	tok := square("a", 50, 50, 10)
	// Wall crosses the footprint vertically at x=48, off-center so it does
	// not pass through the sweep's origin.
	mid := &placeable.Wall{A: geom.Point{X: 48, Y: 30}, B: geom.Point{X: 48, Y: 70}}
	res := Build(tok, placeable.SenseSight, []*placeable.Wall{mid}, boundaryWalls(50, 50, 500))
	if res.Unrestricted {
		t.Fatal("expected restricted silhouette when a wall crosses the footprint")
	}
	full := tok.Footprint.World().Area()
	if res.Polygon.Area() >= full {
		t.Fatalf("expected trimmed area less than full footprint (%v), got %v", full, res.Polygon.Area())
	}
}

func TestBuild_NoNearWalls_BoundaryAloneDoesNotRestrict(t *testing.T) {
	tok := square("a", 50, 50, 10)
	res := Build(tok, placeable.SenseSight, nil, boundaryWalls(50, 50, 500))
	if !res.Unrestricted {
		t.Fatal("boundary walls alone, with no near walls, should not trigger trimming")
	}
}

func TestBuild_OpenWall_DoesNotRestrict(t *testing.T) {
	tok := square("a", 50, 50, 10)
	open := &placeable.Wall{A: geom.Point{X: 48, Y: 30}, B: geom.Point{X: 48, Y: 70}}
	open.Restriction[placeable.SenseSight] = placeable.RestrictionOpen
	res := Build(tok, placeable.SenseSight, []*placeable.Wall{open}, nil)
	if !res.Unrestricted {
		t.Fatal("an open wall should never restrict the silhouette")
	}
}

func TestCache_MemoizesUntilVersionChanges(t *testing.T) {
	c := NewCache()
	tok := square("a", 50, 50, 5)
	calls := 0
	build := func() Result {
		calls++
		return Result{Polygon: tok.Footprint.World(), Unrestricted: true}
	}
	c.Get(tok, placeable.SenseSight, 1, build)
	c.Get(tok, placeable.SenseSight, 1, build)
	if calls != 1 {
		t.Fatalf("expected memoized second call, builder invoked %d times", calls)
	}
	c.Get(tok, placeable.SenseSight, 2, build)
	if calls != 2 {
		t.Fatalf("expected rebuild after topology version bump, builder invoked %d times", calls)
	}
	tok.Version++
	c.Get(tok, placeable.SenseSight, 2, build)
	if calls != 3 {
		t.Fatalf("expected rebuild after token version bump, builder invoked %d times", calls)
	}
}
