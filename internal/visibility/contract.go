// Package visibility computes percent_visible(viewer, target, config) across
// four interchangeable calculation strategies that all honor one shared
// contract, grounded on the teacher's layered LOS helpers in
// internal/game/los.go (AABB ray tests), vision.go (cone + scan) and
// sightlines.go (sampled scoring) — generalized from soldier-vs-building
// checks to viewer-vs-placeable blocker sets.
package visibility

import (
	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

// PointCount is the allowed sample-density settings for viewer/target point
// sampling (settings.viewerNumPoints / targetNumPoints).
type PointCount int

const (
	Points1 PointCount = 1
	Points5 PointCount = 5
	Points9 PointCount = 9
)

// TokenInclusion controls which token states contribute as blockers.
type TokenInclusion struct {
	Dead  bool
	Live  bool
	Prone bool
}

// BlockingConfig toggles which placeable kinds obstruct sight.
type BlockingConfig struct {
	Walls   bool
	Tiles   bool
	Regions bool
	Tokens  TokenInclusion
}

// Config enumerates every knob percent_visible honors, per spec.md §4.4.
type Config struct {
	Blocking         BlockingConfig
	SenseKind        placeable.SenseKind
	LargeTarget      bool
	ViewerPoints     PointCount
	ViewerInset      float64 // [0, 0.5)
	TargetPoints     PointCount
	TargetInset      float64 // [0, 0.5)
	Points3D         bool
	AlphaThreshold float64 // terrain-wall green-channel threshold, default 0.75
	RenderTexture  int     // GPU variant framebuffer size, default 100
	ExcludedTokens map[placeable.TokenID]bool
}

// DefaultConfig mirrors the host settings defaults from spec.md §6.
func DefaultConfig() Config {
	return Config{
		Blocking: BlockingConfig{
			Walls: true, Tiles: true, Regions: true,
			Tokens: TokenInclusion{Live: true},
		},
		SenseKind:      placeable.SenseSight,
		ViewerPoints:   Points1,
		TargetPoints:   Points9,
		AlphaThreshold: 0.75,
		RenderTexture:  100,
	}
}

// Scene is the world the calculator queries: walls/tiles/regions/tokens
// relevant to one viewer/target pair, plus the scene's outer AABB (used for
// the "target fully outside scene boundary" edge case).
type Scene struct {
	Bounds  geom.Rect
	Walls   []*placeable.Wall
	Tiles   []*placeable.Tile
	Regions []*placeable.Region
	Tokens  []*placeable.Token
}

// Target is what percent_visible measures visibility of: a token-like box
// with a footprint and an elevation band.
type Target struct {
	Footprint geom.Polygon
	Elevation placeable.ElevationBand
	TokenID   placeable.TokenID
}

// Calculator is the shared interface all four variants implement.
type Calculator interface {
	PercentVisible(viewerPoint geom.Point3, target Target, scene Scene, cfg Config) float32
}

// excludesToken reports whether cfg's excluded-token list overrides kind
// inclusion flags for tok, per spec.md §4.4: "Excluded token lists override
// all inclusion flags."
func excludesToken(cfg Config, tok placeable.TokenID) bool {
	return cfg.ExcludedTokens != nil && cfg.ExcludedTokens[tok]
}

// tokenContributes reports whether tok should be treated as a blocker under
// cfg's token-state inclusion flags.
func tokenContributes(cfg Config, tok *placeable.Token) bool {
	if tok == nil || excludesToken(cfg, tok.ID) {
		return false
	}
	switch {
	case tok.Dead():
		return cfg.Blocking.Tokens.Dead
	case tok.Prone():
		return cfg.Blocking.Tokens.Prone
	default:
		return cfg.Blocking.Tokens.Live
	}
}

// sharedEdgeCase evaluates the three edge cases common to every variant
// (spec.md §4.4 "Edge cases shared across all variants"). ok=false means no
// edge case applied and the caller must run its own algorithm.
func sharedEdgeCase(viewerPoint geom.Point3, target Target, scene Scene) (float32, bool) {
	center := target.Footprint.AABB().Center()
	if almostEqual3(viewerPoint, center, target.Elevation) {
		return 0, true
	}
	if !scene.Bounds.Intersects(target.Footprint.AABB()) {
		return 1, true
	}
	if len(scene.Walls) == 0 && len(scene.Tiles) == 0 && len(scene.Regions) == 0 && len(scene.Tokens) == 0 {
		return 1, true
	}
	return 0, false
}

func almostEqual3(viewer geom.Point3, targetCenter geom.Point, band placeable.ElevationBand) bool {
	vp := geom.Point{X: viewer.X, Y: viewer.Y}
	if !vp.AlmostEqual(targetCenter) {
		return false
	}
	midZ := (band.ZBottom + band.ZTop) / 2
	return abs(viewer.Z-midZ) <= geom.PixelTolerance
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// MinOverViewpoints folds per-viewpoint percentages down to the contract's
// single value: the minimum across all viewer sample points, with an
// early-exit the moment any viewpoint reports 0 (spec.md §4.4).
func MinOverViewpoints(points []geom.Point3, eval func(geom.Point3) float32) float32 {
	if len(points) == 0 {
		return 1
	}
	best := float32(1)
	for _, p := range points {
		v := eval(p)
		if v < best {
			best = v
		}
		if best == 0 {
			return 0
		}
	}
	return best
}
