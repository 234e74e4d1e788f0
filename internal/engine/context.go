// Package engine wires the CORE's components together behind one explicit
// context struct and exposes the public operations spec.md §6 names.
// Grounded on the teacher's Game struct (internal/game/game.go), which
// consolidates every subsystem (nav grid, intel store, combat manager,
// thought log) as plain fields rather than package-level globals — this is
// exactly spec.md §9's "Per-user mutable globals -> consolidate into an
// explicit EngineContext passed into every public call" re-architecture
// guidance, applied to the same pattern the teacher already uses.
package engine

import (
	"github.com/Garsondee/Cover-Engine/internal/config"
	"github.com/Garsondee/Cover-Engine/internal/cover"
	"github.com/Garsondee/Cover-Engine/internal/covercache"
	"github.com/Garsondee/Cover-Engine/internal/diag"
	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/gpuproxy"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
	"github.com/Garsondee/Cover-Engine/internal/silhouette"
	"github.com/Garsondee/Cover-Engine/internal/spatial"
	"github.com/Garsondee/Cover-Engine/internal/visibility"
)

// Context is the single mutable structure every public operation takes, in
// place of the per-user globals spec.md §9 flags for replacement.
type Context struct {
	Settings config.Settings

	Index       *spatial.Index
	Silhouettes *silhouette.Cache
	CoverCache  *covercache.Cache
	GPU         *gpuproxy.Renderer
	Log         *diag.Logger

	// Effects is the host's currently installed cover-effect roster, in
	// declaration order (spec.md §4.7 partitions it into ordered/unordered
	// at classification time).
	Effects []placeable.Effect

	// Ignores is per-viewer ignores_cover state (spec.md §4.8), keyed by
	// viewer token id.
	Ignores map[placeable.TokenID]cover.Ignores

	// Regions is the scene's region list, consulted for the classifier's
	// force-cover override (spec.md §4.7).
	Regions []*placeable.Region

	// tokensByID and wallsByID back NotFound lookups for the public API.
	tokensByID map[placeable.TokenID]*placeable.Token
	wallsByID  map[placeable.WallID]*placeable.Wall
	tilesByID  map[placeable.TileID]*placeable.Tile
}

// New builds a Context over scene bounds, with default settings and empty
// caches. Tests construct their own Context rather than relying on any
// package-level instance, per spec.md §9's EngineContext guidance.
func New(bounds geom.Rect) *Context {
	idx := spatial.NewIndex(bounds)
	return &Context{
		Settings:    config.Default,
		Index:       idx,
		Silhouettes: silhouette.NewCache(),
		CoverCache:  covercache.New(),
		Log:         diag.New(),
		Effects:     placeable.DefaultEffects(),
		Ignores:     make(map[placeable.TokenID]cover.Ignores),
		tokensByID:  make(map[placeable.TokenID]*placeable.Token),
		wallsByID:   make(map[placeable.WallID]*placeable.Wall),
		tilesByID:   make(map[placeable.TileID]*placeable.Tile),
	}
}

// RegisterToken indexes a token so later API calls can resolve it by id.
func (c *Context) RegisterToken(tok *placeable.Token) {
	c.tokensByID[tok.ID] = tok
	c.Index.Update(spatial.Event{Kind: spatial.EventAdded, Item: placeable.FromToken(tok)})
}

// RegisterWall indexes a wall so later API calls can resolve it by id.
func (c *Context) RegisterWall(w *placeable.Wall) {
	c.wallsByID[w.ID] = w
	c.Index.Update(spatial.Event{Kind: spatial.EventAdded, Item: placeable.FromWall(w)})
}

// RegisterTile indexes a tile so later API calls can resolve it by id.
func (c *Context) RegisterTile(t *placeable.Tile) {
	c.tilesByID[t.ID] = t
	c.Index.Update(spatial.Event{Kind: spatial.EventAdded, Item: placeable.FromTile(t)})
}

// Token resolves a registered token by id, or nil if absent.
func (c *Context) Token(id placeable.TokenID) *placeable.Token { return c.tokensByID[id] }

// AllWalls returns every registered wall (for host-side inspection/debug
// use; PercentVisible drives its own candidate set through Index.QueryRay
// instead of this full enumeration).
func (c *Context) AllWalls() []*placeable.Wall {
	out := make([]*placeable.Wall, 0, len(c.wallsByID))
	for _, w := range c.wallsByID {
		out = append(out, w)
	}
	return out
}

// AllTiles returns every registered tile.
func (c *Context) AllTiles() []*placeable.Tile {
	out := make([]*placeable.Tile, 0, len(c.tilesByID))
	for _, t := range c.tilesByID {
		out = append(out, t)
	}
	return out
}

// AllTokens returns every registered token.
func (c *Context) AllTokens() []*placeable.Token {
	out := make([]*placeable.Token, 0, len(c.tokensByID))
	for _, t := range c.tokensByID {
		out = append(out, t)
	}
	return out
}

// sceneConfig builds a visibility.Config from c.Settings plus a sense kind
// and per-query excluded-token override.
func (c *Context) sceneConfig(kind placeable.SenseKind, excluded map[placeable.TokenID]bool) visibility.Config {
	return visibility.Config{
		Blocking: visibility.BlockingConfig{
			Walls: true, Tiles: true, Regions: true,
			Tokens: visibility.TokenInclusion{Live: true},
		},
		SenseKind:      kind,
		LargeTarget:    c.Settings.LargeTarget,
		ViewerPoints:   visibility.PointCount(c.Settings.ViewerNumPoints),
		ViewerInset:    c.Settings.ViewerInset,
		TargetPoints:   visibility.PointCount(c.Settings.TargetNumPoints),
		TargetInset:    c.Settings.TargetInset,
		Points3D:       c.Settings.Points3D,
		AlphaThreshold: c.Settings.AlphaThreshold,
		RenderTexture:  c.Settings.RenderTextureSize,
		ExcludedTokens: excluded,
	}
}

// boundaryWalls synthesizes the scene's four outer edges as opaque walls,
// the fixed boundary set silhouette.Build always folds into its sweep
// (spec.md §4.3).
func (c *Context) boundaryWalls() []*placeable.Wall {
	b := c.Index.Bounds()
	return []*placeable.Wall{
		{A: geom.Point{X: b.MinX, Y: b.MinY}, B: geom.Point{X: b.MaxX, Y: b.MinY}},
		{A: geom.Point{X: b.MaxX, Y: b.MinY}, B: geom.Point{X: b.MaxX, Y: b.MaxY}},
		{A: geom.Point{X: b.MaxX, Y: b.MaxY}, B: geom.Point{X: b.MinX, Y: b.MaxY}},
		{A: geom.Point{X: b.MinX, Y: b.MaxY}, B: geom.Point{X: b.MinX, Y: b.MinY}},
	}
}
