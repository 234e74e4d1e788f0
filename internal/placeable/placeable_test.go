package placeable

import (
	"math"
	"testing"

	"github.com/Garsondee/Cover-Engine/internal/geom"
)

func rectToken(id TokenID, cx, cy, halfW, halfH float64) Token {
	return Token{
		ID: id,
		Footprint: Shape{
			Platonic: geom.NewRectPolygon(geom.RectFromCenter(geom.Point{}, halfW, halfH)),
			Center:   geom.Point{X: cx, Y: cy},
		},
		Elevation:     ElevationBand{0, 1},
		Disposition:   DispositionAlive,
		MaxCoverGrant: 1,
	}
}

func TestTokenAABB(t *testing.T) {
	tok := rectToken("t1", 10, 10, 5, 5)
	box := tok.AABB()
	if box.MinX != 5 || box.MaxX != 15 {
		t.Fatalf("unexpected AABB %+v", box)
	}
}

func TestWallDegenerate(t *testing.T) {
	w := Wall{A: geom.Point{0, 0}, B: geom.Point{0, 0}}
	if !w.Degenerate() {
		t.Fatal("zero-length wall should be degenerate")
	}
}

func TestWallFacingBlocks(t *testing.T) {
	w := Wall{Directional: true, Normal: geom.Vector{X: 0, Y: -1}}
	// Ray traveling south (+Y) opposes a north-facing normal -> blocked.
	if !w.FacingBlocks(geom.Vector{X: 0, Y: 1}) {
		t.Fatal("ray opposing the wall's normal should be blocked")
	}
	// Ray traveling north (-Y) aligns with the normal -> not blocked.
	if w.FacingBlocks(geom.Vector{X: 0, Y: -1}) {
		t.Fatal("ray aligned with the wall's normal should not be blocked")
	}
}

func TestRegionContains(t *testing.T) {
	region := Region{
		Shapes: []Shape{{
			Platonic: geom.NewRectPolygon(geom.RectFromCenter(geom.Point{}, 10, 10)),
			Center:   geom.Point{X: 0, Y: 0},
		}},
		Elevation: ElevationBand{0, 10},
	}
	if !region.Contains(geom.Point{X: 1, Y: 1}, 5) {
		t.Fatal("expected point inside region's shape and elevation band")
	}
	if region.Contains(geom.Point{X: 1, Y: 1}, 50) {
		t.Fatal("point outside the elevation band should not be contained")
	}
}

func TestVariantAABBDispatch(t *testing.T) {
	w := Wall{A: geom.Point{0, 0}, B: geom.Point{10, 10}}
	v := FromWall(&w)
	box := v.AABB()
	if box.MaxX != 10 || box.MaxY != 10 {
		t.Fatalf("unexpected wall AABB %+v", box)
	}
}

func TestPersistedEffectRecordRoundTrip(t *testing.T) {
	rec := PersistedEffectRecord{ID: "half", PercentThreshold: 0.5, Priority: 1, LiveTokensBlock: true}
	eff := rec.ToEffect()
	if eff.ID != "half" || eff.Threshold != 0.5 || !eff.LiveTokens {
		t.Fatalf("unexpected effect from persisted record: %+v", eff)
	}
}

func TestElevationBandValid(t *testing.T) {
	if !(ElevationBand{0, 1}).Valid() {
		t.Fatal("expected valid band")
	}
	if (ElevationBand{1, 0}).Valid() {
		t.Fatal("expected invalid band when top < bottom")
	}
	if !(ElevationBand{math.Inf(-1), math.Inf(1)}).Valid() {
		t.Fatal("expected infinite band to be valid")
	}
}
