package engine

import (
	"github.com/Garsondee/Cover-Engine/internal/placeable"
	"github.com/Garsondee/Cover-Engine/internal/spatial"
)

// TopologyKind names what changed in a topology_changed(kind) hook call —
// the host reports which placeable class moved so future diagnostics can
// tell wall edits apart from tile/region edits.
type TopologyKind uint8

const (
	TopologyWalls TopologyKind = iota
	TopologyTiles
	TopologyRegions
)

// TopologyChanged implements the topology_changed(kind) hook (spec.md §6):
// the host calls this after any wall/tile/region add, remove or edit that
// was not already routed through RegisterWall/RegisterTile/Index.Update.
// It resets the degenerate-event dedup window since a new topology
// generation may reproduce a condition worth logging again.
func (c *Context) TopologyChanged(kind TopologyKind) {
	c.Log.ResetDegenerateDedup()
}

// TokenUpdated implements the token_updated(tokenId, delta) hook: the host
// calls this after moving, resizing or flag-changing a token it already
// registered. delta is opaque here — bumping Version is what the cover
// cache's version check actually keys off — but callers pass it through so
// future diagnostics can report what changed.
func (c *Context) TokenUpdated(tokenID placeable.TokenID, delta string) {
	tok := c.tokensByID[tokenID]
	if tok == nil {
		return
	}
	old := tok.AABB()
	tok.Version++
	c.Index.Update(spatial.Event{Kind: spatial.EventMoved, Item: placeable.FromToken(tok), OldAABB: old})
	c.CoverCache.InvalidateTokenPair(tokenID)
}

// TokenControlled implements the token_controlled(tokenId, bool) hook. The
// core has no per-controller state of its own (control is a host/UI
// concept); this is a no-op retained so host adapters have a single place
// to route the hook without special-casing "does the core care".
func (c *Context) TokenControlled(tokenID placeable.TokenID, controlled bool) {}

// TokenTargeted implements the token_targeted(userId, tokenId, bool) hook.
// Like TokenControlled, the core itself has nothing to invalidate here —
// targeting doesn't change geometry — so this is a deliberate no-op hook
// point for host adapters.
func (c *Context) TokenTargeted(userID string, tokenID placeable.TokenID, targeted bool) {}

// CanvasReady implements the canvas_ready() hook: the host calls this once
// the scene's placeables have all been registered, so a full cache purge
// starts the session from a known-clean state.
func (c *Context) CanvasReady() {
	c.CoverCache.PurgeAll()
	c.Log.ResetDegenerateDedup()
}

// CombatTurnChanged implements the combat_turn_changed() hook. Disposition
// flags (prone, dead) can change between turns without a corresponding
// token_updated call in some hosts, so this conservatively purges the
// cache rather than assuming callers always route state flips through
// TokenUpdated.
func (c *Context) CombatTurnChanged() {
	c.CoverCache.PurgeAll()
}
