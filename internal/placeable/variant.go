package placeable

import "github.com/Garsondee/Cover-Engine/internal/geom"

// Kind tags which concrete placeable a Variant wraps.
type Kind uint8

const (
	KindWall Kind = iota
	KindTile
	KindToken
	KindRegion
)

// Variant is a tagged-union placeable, replacing the inheritance ladder the
// teacher's rendering layer used for "drawable kinds" (spec.md §9: "Dynamic
// dispatch over drawable kinds -> tagged variant, dispatch via match").
// Exactly one of the embedded values is meaningful, selected by Kind.
type Variant struct {
	Kind   Kind
	Wall   *Wall
	Tile   *Tile
	Token  *Token
	Region *Region
}

// FromWall wraps a Wall as a Variant.
func FromWall(w *Wall) Variant { return Variant{Kind: KindWall, Wall: w} }

// FromTile wraps a Tile as a Variant.
func FromTile(t *Tile) Variant { return Variant{Kind: KindTile, Tile: t} }

// FromToken wraps a Token as a Variant.
func FromToken(t *Token) Variant { return Variant{Kind: KindToken, Token: t} }

// FromRegion wraps a Region as a Variant.
func FromRegion(r *Region) Variant { return Variant{Kind: KindRegion, Region: r} }

// AABB returns the world-space bounding box of the wrapped placeable,
// dispatching on Kind via a type switch-equivalent match on the tag.
func (v Variant) AABB() geom.Rect {
	switch v.Kind {
	case KindWall:
		s := v.Wall.Segment()
		return geom.Rect{
			MinX: min2(s.A.X, s.B.X), MinY: min2(s.A.Y, s.B.Y),
			MaxX: max2(s.A.X, s.B.X), MaxY: max2(s.A.Y, s.B.Y),
		}
	case KindTile:
		return v.Tile.Footprint.World().AABB()
	case KindToken:
		return v.Token.AABB()
	case KindRegion:
		r := geom.Rect{}
		for i, s := range v.Region.Shapes {
			box := s.World().AABB()
			if i == 0 {
				r = box
			} else {
				r = r.Union(box)
			}
		}
		return r
	default:
		return geom.Rect{}
	}
}

// ElevationBand returns the wrapped placeable's vertical extent, if any.
// Tiles have a single elevation, represented as a zero-height band.
func (v Variant) ElevationBand() (ElevationBand, bool) {
	switch v.Kind {
	case KindWall:
		return v.Wall.Elevation, true
	case KindTile:
		return ElevationBand{v.Tile.Elevation, v.Tile.Elevation}, true
	case KindToken:
		return v.Token.Elevation, true
	case KindRegion:
		return v.Region.Elevation, true
	default:
		return ElevationBand{}, false
	}
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
