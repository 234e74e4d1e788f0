package visibility

import (
	"testing"

	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

func TestArea2DCalculator_WallFullyShadowsTarget(t *testing.T) {
	target := flatTarget(10, 0, 1)
	// Wall wide enough (y in [-5,5]) that its shadow volume from the origin
	// fully covers the target's [-1,1] extent at x=10.
	w := wallAt(geom.Point{X: 5, Y: -5}, geom.Point{X: 5, Y: 5})
	scene := Scene{
		Bounds: geom.Rect{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100},
		Walls:  []*placeable.Wall{w},
	}
	cfg := DefaultConfig()
	cfg.Blocking.Walls = true
	got := Area2DCalculator{}.PercentVisible(geom.Point3{X: 0, Y: 0, Z: 1}, target, scene, cfg)
	if got != 0 {
		t.Fatalf("PercentVisible() = %v, want 0 (wall shadow fully covers target)", got)
	}
}

func TestArea2DCalculator_WallOutsideTarget_FullyVisible(t *testing.T) {
	target := flatTarget(10, 0, 1)
	w := wallAt(geom.Point{X: 5, Y: 50}, geom.Point{X: 5, Y: 60})
	scene := Scene{
		Bounds: geom.Rect{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100},
		Walls:  []*placeable.Wall{w},
	}
	cfg := DefaultConfig()
	cfg.Blocking.Walls = true
	got := Area2DCalculator{}.PercentVisible(geom.Point3{X: 0, Y: 0, Z: 1}, target, scene, cfg)
	if got != 1 {
		t.Fatalf("PercentVisible() = %v, want 1 (wall shadow misses target entirely)", got)
	}
}

func TestArea2DCalculator_DirectionalWall_FacingAwayDoesNotBlock(t *testing.T) {
	target := flatTarget(10, 0, 1)
	w := &placeable.Wall{
		ID: "w", A: geom.Point{X: 5, Y: -5}, B: geom.Point{X: 5, Y: 5},
		Restriction: [4]placeable.RestrictionType{placeable.SenseSight: placeable.RestrictionDirectional},
		Elevation:   placeable.ElevationBand{ZBottom: 0, ZTop: 10},
		Directional: true,
		// dir from viewer (0,0) to wall midpoint (5,0) is (+1,0); Normal
		// (+1,0) gives dir.Dot(Normal) = 1 > 0, so FacingBlocks is false:
		// the wall does not block from this side.
		Normal: geom.Vector{X: 1, Y: 0},
	}
	scene := Scene{
		Bounds: geom.Rect{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100},
		Walls:  []*placeable.Wall{w},
	}
	cfg := DefaultConfig()
	cfg.Blocking.Walls = true
	got := Area2DCalculator{}.PercentVisible(geom.Point3{X: 0, Y: 0, Z: 1}, target, scene, cfg)
	if got != 1 {
		t.Fatalf("PercentVisible() = %v, want 1 (directional wall faces away from viewer)", got)
	}
}

func TestArea2DCalculator_NarrowWall_PartialShadow(t *testing.T) {
	target := flatTarget(10, 0, 1)
	// A wall spanning only y in [-5,0] casts a shadow volume covering just
	// the target's py<=0 half, leaving the py>0 half visible.
	w := wallAt(geom.Point{X: 5, Y: -5}, geom.Point{X: 5, Y: 0})
	scene := Scene{
		Bounds: geom.Rect{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100},
		Walls:  []*placeable.Wall{w},
	}
	cfg := DefaultConfig()
	cfg.Blocking.Walls = true
	got := Area2DCalculator{}.PercentVisible(geom.Point3{X: 0, Y: 0, Z: 1}, target, scene, cfg)
	if got <= 0 || got >= 1 {
		t.Fatalf("PercentVisible() = %v, want strictly between 0 and 1 (partial shadow)", got)
	}
}

func TestArea2DCalculator_LiveTokenBlocker_FullyShadowsTarget(t *testing.T) {
	target := flatTarget(10, 0, 1)
	blocker := &placeable.Token{
		ID:          "blocker",
		Footprint:   placeable.Shape{Platonic: geom.NewRectPolygon(geom.Rect{MinX: -2, MinY: -2, MaxX: 2, MaxY: 2}), Center: geom.Point{X: 5, Y: 0}},
		Elevation:   placeable.ElevationBand{ZBottom: 0, ZTop: 2},
		Disposition: placeable.DispositionAlive,
	}
	scene := Scene{
		Bounds: geom.Rect{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100},
		Tokens: []*placeable.Token{blocker},
	}
	cfg := DefaultConfig()
	cfg.Blocking.Tokens.Live = true
	got := Area2DCalculator{}.PercentVisible(geom.Point3{X: 0, Y: 0, Z: 1}, target, scene, cfg)
	if got != 0 {
		t.Fatalf("PercentVisible() = %v, want 0 (wide live token fully shadows target)", got)
	}
}

func TestArea2DCalculator_DeadTokenBlocker_IgnoredWhenNotIncluded(t *testing.T) {
	target := flatTarget(10, 0, 1)
	blocker := &placeable.Token{
		ID:          "blocker",
		Footprint:   placeable.Shape{Platonic: geom.NewRectPolygon(geom.Rect{MinX: -2, MinY: -2, MaxX: 2, MaxY: 2}), Center: geom.Point{X: 5, Y: 0}},
		Elevation:   placeable.ElevationBand{ZBottom: 0, ZTop: 2},
		Disposition: placeable.DispositionDead,
	}
	scene := Scene{
		Bounds: geom.Rect{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100},
		Tokens: []*placeable.Token{blocker},
	}
	cfg := DefaultConfig()
	cfg.Blocking.Tokens.Live = true
	cfg.Blocking.Tokens.Dead = false
	got := Area2DCalculator{}.PercentVisible(geom.Point3{X: 0, Y: 0, Z: 1}, target, scene, cfg)
	if got != 1 {
		t.Fatalf("PercentVisible() = %v, want 1 (dead token excluded from blocking)", got)
	}
}
