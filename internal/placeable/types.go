// Package placeable defines the CORE's data model: the placeables a scene is
// built from (tokens, walls, tiles, regions) and the cover-effect records
// that the classifier emits.
package placeable

import "github.com/Garsondee/Cover-Engine/internal/geom"

// SenseKind is the perception category a query is issued for; each kind has
// its own wall-inclusion rules (spec.md §3's CoverCache key, §4.3).
type SenseKind uint8

const (
	SenseSight SenseKind = iota
	SenseSound
	SenseMove
	SenseLight
	senseKindCount
)

func (k SenseKind) String() string {
	switch k {
	case SenseSight:
		return "sight"
	case SenseSound:
		return "sound"
	case SenseMove:
		return "move"
	case SenseLight:
		return "light"
	default:
		return "unknown"
	}
}

// RestrictionType is a wall's per-sense-kind visibility class.
type RestrictionType uint8

const (
	RestrictionOpaque RestrictionType = iota
	RestrictionLimited                // "terrain": partial occlusion, two cooperate to fully block
	RestrictionOpen
	RestrictionDirectional
)

// ElevationBand is a [ZBottom, ZTop] vertical extent. Either bound may be
// infinite (+/-Inf) for "open-ended" bands.
type ElevationBand struct {
	ZBottom, ZTop float64
}

// Contains reports whether z falls within the band.
func (b ElevationBand) Contains(z float64) bool {
	return z >= b.ZBottom && z <= b.ZTop
}

// Valid reports the wall/token invariant z_t >= z_b (equal permitted for
// flat tokens, or both infinite).
func (b ElevationBand) Valid() bool {
	return b.ZTop >= b.ZBottom
}

// Disposition flags a token's combat/posture state.
type Disposition uint8

const (
	DispositionAlive Disposition = 1 << iota
	DispositionDead
	DispositionProne
)

// TokenID, WallID, TileID, RegionID and EffectID identify placeables and
// cover-effect records across the host document boundary.
type (
	TokenID  string
	WallID   string
	TileID   string
	RegionID string
	EffectID string
)

// Shape is a token/tile footprint: either an axis-aligned rectangle or a
// regular polygon (for hex grids), carried as an origin-centred geom.Polygon
// plus a world-space center and rotation; World places it. Exposing both
// forms explicitly lets callers rotate the Platonic form
// before placing it in the world, per spec.md §4.1.
type Shape struct {
	Platonic geom.Polygon // centered at the origin, unrotated
	Center   geom.Point
	Rotation float64 // radians
}

// World returns the shape's polygon placed in world coordinates.
func (s Shape) World() geom.Polygon {
	return s.Platonic.Rotate(s.Rotation).Translate(geom.Vector(s.Center))
}

// Token is a single creature/object on the map.
type Token struct {
	ID          TokenID
	Footprint   Shape
	Elevation   ElevationBand
	Disposition Disposition
	Orientation float64 // radians; meaningful for directional targets
	// MaxCoverGrant is the upper bound on the cover fraction this token alone
	// may contribute when acting as a blocker (g in spec.md §4.5); default 1.
	MaxCoverGrant float64
	Version       uint64 // bumped on any host mutation (position/size/flags)
}

// AABB returns the token's world-space bounding rectangle.
func (t Token) AABB() geom.Rect { return t.Footprint.World().AABB() }

// Alive reports whether the token's disposition includes DispositionAlive.
func (t Token) Alive() bool { return t.Disposition&DispositionAlive != 0 }

// Dead reports whether the token's disposition includes DispositionDead.
func (t Token) Dead() bool { return t.Disposition&DispositionDead != 0 }

// Prone reports whether the token's disposition includes DispositionProne.
func (t Token) Prone() bool { return t.Disposition&DispositionProne != 0 }

// Wall is a segment that may restrict one or more sense kinds.
type Wall struct {
	ID          WallID
	A, B        geom.Point
	Restriction [senseKindCount]RestrictionType
	Elevation   ElevationBand
	Directional bool
	Normal      geom.Vector // meaningful only when Directional
}

// Segment returns the wall as a geom.Segment.
func (w Wall) Segment() geom.Segment { return geom.Segment{A: w.A, B: w.B} }

// Degenerate reports the wall invariant violation: |AB| == 0.
func (w Wall) Degenerate() bool { return w.Segment().Degenerate() }

// Blocks reports whether the wall restricts the given sense kind at all
// (i.e. is not RestrictionOpen).
func (w Wall) Blocks(kind SenseKind) bool {
	return w.Restriction[kind] != RestrictionOpen
}

// FacingBlocks reports whether the wall, if directional, blocks a ray
// traveling in direction dir (from viewer toward target). Non-directional
// walls always return true here; callers first check Blocks(kind).
func (w Wall) FacingBlocks(dir geom.Vector) bool {
	if !w.Directional {
		return true
	}
	return dir.Dot(w.Normal) <= 0
}

// Tile is a rectangle or polygon with an alpha-mask texture at a single
// elevation. AlphaAt samples the (host-supplied) mask at a world point;
// nil means "fully opaque" (a plain painted tile with no mask).
type Tile struct {
	ID         TileID
	Footprint  Shape
	Elevation  float64
	AlphaAt    func(world geom.Point) float64
	Terrain    bool // "terrain wall" style tile: two must cooperate to fully block
}

// AlphaOpacity returns the tile's opacity at world point p, defaulting to 1
// (fully opaque) when no mask function is set.
func (t Tile) AlphaOpacity(p geom.Point) float64 {
	if t.AlphaAt == nil {
		return 1.0
	}
	return t.AlphaAt(p)
}

// Blocks reports whether the tile blocks at world point p given the
// configured alpha threshold (spec.md §3's "default 0.75").
func (t Tile) Blocks(p geom.Point, alphaThreshold float64) bool {
	return t.AlphaOpacity(p) > alphaThreshold
}

// RegionBehavior names a forced effect a Region applies to contained tokens.
type RegionBehavior struct {
	ForceCover bool
	EffectID   EffectID
}

// Region is a polygonal volume that applies a named behavior to contained
// tokens.
type Region struct {
	ID        RegionID
	Shapes    []Shape
	Elevation ElevationBand
	Behavior  RegionBehavior
}

// Contains reports whether world point p at elevation z lies within the
// region.
func (r Region) Contains(p geom.Point, z float64) bool {
	if !r.Elevation.Contains(z) {
		return false
	}
	for _, s := range r.Shapes {
		if s.World().Contains(p) {
			return true
		}
	}
	return false
}
