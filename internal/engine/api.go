package engine

import (
	"github.com/Garsondee/Cover-Engine/internal/config"
	"github.com/Garsondee/Cover-Engine/internal/cover"
	"github.com/Garsondee/Cover-Engine/internal/covercache"
	"github.com/Garsondee/Cover-Engine/internal/diag"
	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
	"github.com/Garsondee/Cover-Engine/internal/silhouette"
	"github.com/Garsondee/Cover-Engine/internal/spatial"
	"github.com/Garsondee/Cover-Engine/internal/visibility"
)

// PercentVisibleOpts narrows a percent_visible call beyond the context's
// default settings (spec.md §6's public operation).
type PercentVisibleOpts struct {
	SenseKind      placeable.SenseKind
	ExcludedTokens map[placeable.TokenID]bool
}

// PercentVisible implements the public percent_visible(viewer, target,
// config) -> f32 operation (spec.md §6), running the context's configured
// algorithm with the geometric (2D area) variant as the fallback when no GPU
// renderer is wired (see calculatorFor). The viewer's own token is never
// treated as a blocker.
func (c *Context) PercentVisible(viewer placeable.TokenID, target placeable.TokenID, opts PercentVisibleOpts) float32 {
	viewerTok := c.Token(viewer)
	targetTok := c.Token(target)
	if viewerTok == nil || targetTok == nil {
		c.Log.Record(diag.NotFound("engine.PercentVisible", "viewer or target token id not registered"))
		return 1
	}

	kind := opts.SenseKind
	excluded := make(map[placeable.TokenID]bool, len(opts.ExcludedTokens)+1)
	for id, v := range opts.ExcludedTokens {
		excluded[id] = v
	}
	excluded[viewer] = true
	cfg := c.sceneConfig(kind, excluded)
	scene := c.candidateScene(viewerTok.AABB(), targetTok.AABB())
	targetView := visibility.Target{
		Footprint: targetTok.Footprint.World(),
		Elevation: targetTok.Elevation,
		TokenID:   targetTok.ID,
	}

	calc := c.calculatorFor(c.Settings.LOSAlgorithm)
	viewerPoints := viewerSamplePoints(viewerTok, cfg)
	return visibility.MinOverViewpoints(viewerPoints, func(vp geom.Point3) float32 {
		return calc.PercentVisible(vp, targetView, scene, cfg)
	})
}

// candidateScene drives the blocker-candidate set for a viewer/target pair
// through the obstacle index (spec.md §4.2: "an obstacle query driven by a
// viewer+target pair yields candidate blockers"), rather than scanning every
// registered placeable. The query segment spans the union of the viewer's
// and target's own AABBs rather than just their centers, so that every
// sample point viewerSamplePoints/the target footprint can offer is still
// covered by QueryRay's own bounding-box prefilter — it must never produce a
// false negative, per QueryRay's contract.
func (c *Context) candidateScene(viewerBox, targetBox geom.Rect) visibility.Scene {
	span := viewerBox.Union(targetBox)
	items := c.Index.QueryRay(
		geom.Point{X: span.MinX, Y: span.MinY},
		geom.Point{X: span.MaxX, Y: span.MaxY},
		spatial.AllKinds(),
	)
	scene := visibility.Scene{Bounds: c.Index.Bounds(), Regions: c.Regions}
	for _, v := range items {
		switch v.Kind {
		case placeable.KindWall:
			scene.Walls = append(scene.Walls, v.Wall)
		case placeable.KindTile:
			scene.Tiles = append(scene.Tiles, v.Tile)
		case placeable.KindToken:
			scene.Tokens = append(scene.Tokens, v.Token)
		}
	}
	return scene
}

// calculatorFor maps a config.LOSAlgorithm onto a visibility.Calculator,
// falling back through webgl2 -> geometric -> points, per spec.md §7.
func (c *Context) calculatorFor(algo config.LOSAlgorithm) visibility.Calculator {
	switch algo {
	case config.AlgorithmWebGL2, config.AlgorithmPerPixel:
		if c.GPU != nil {
			return visibility.GPUCalculator{Renderer: c.GPU}
		}
		c.Log.Record(diag.ResourceUnavailable("engine.calculatorFor", "GPU renderer not wired, falling back to geometric"))
		fallthrough
	case config.AlgorithmGeometric:
		return visibility.Area2DCalculator{}
	default:
		return visibility.PointsCalculator{}
	}
}

func viewerSamplePoints(tok *placeable.Token, cfg visibility.Config) []geom.Point3 {
	box := tok.Footprint.World().AABB()
	mid := (tok.Elevation.ZBottom + tok.Elevation.ZTop) / 2
	center := geom.Point3{X: box.Center().X, Y: box.Center().Y, Z: mid}
	if cfg.ViewerPoints <= visibility.Points1 {
		return []geom.Point3{center}
	}
	inset := cfg.ViewerInset
	ix := box.Width() * inset
	iy := box.Height() * inset
	pts := []geom.Point3{
		center,
		{X: box.MinX + ix, Y: box.MinY + iy, Z: mid},
		{X: box.MaxX - ix, Y: box.MinY + iy, Z: mid},
		{X: box.MaxX - ix, Y: box.MaxY - iy, Z: mid},
		{X: box.MinX + ix, Y: box.MaxY - iy, Z: mid},
	}
	if cfg.ViewerPoints < visibility.Points9 {
		return pts
	}
	pts = append(pts,
		geom.Point3{X: box.Center().X, Y: box.MinY + iy, Z: mid},
		geom.Point3{X: box.MaxX - ix, Y: box.Center().Y, Z: mid},
		geom.Point3{X: box.Center().X, Y: box.MaxY - iy, Z: mid},
		geom.Point3{X: box.MinX + ix, Y: box.Center().Y, Z: mid},
	)
	return pts
}

// CoverForTokenOpts carries the actionKind a cover_for_token query is made
// for (spec.md §6).
type CoverForTokenOpts struct {
	SenseKind  placeable.SenseKind
	ActionKind cover.ActionKind
}

// CoverForToken implements the public cover_for_token(attacker, target,
// opts) -> Set<CoverEffectId> operation (spec.md §6), reading through the
// cover cache and recomputing via PercentVisible (prorated per spec.md §4.5
// when flagged blockers intervene) on a miss.
func (c *Context) CoverForToken(attacker, target placeable.TokenID, opts CoverForTokenOpts) []placeable.EffectID {
	attackerTok := c.Token(attacker)
	targetTok := c.Token(target)
	if attackerTok == nil || targetTok == nil {
		c.Log.Record(diag.NotFound("engine.CoverForToken", "attacker or target token id not registered"))
		return nil
	}

	key := covercache.Key{Viewer: attacker, Target: target, SenseKind: opts.SenseKind}
	tokenVersion := attackerTok.Version ^ (targetTok.Version * 0x9E3779B97F4A7C15)
	topologyVersion := c.Index.TopologyVersion()

	_, effects := c.CoverCache.CoverPercentFromAttacker(key, tokenVersion, topologyVersion, func() (float64, []placeable.EffectID) {
		percentCover := c.percentCoverProrated(attacker, target, opts.SenseKind)
		ignores := c.Ignores[attacker]
		targetPoint := geom.Point3{
			X: targetTok.AABB().Center().X, Y: targetTok.AABB().Center().Y,
			Z: (targetTok.Elevation.ZBottom + targetTok.Elevation.ZTop) / 2,
		}
		eff := cover.ClassifyWithRegionOverride(c.Effects, percentCover, ignores, opts.ActionKind, c.Regions, targetPoint)
		return percentCover, eff
	})
	return effects
}

// percentCoverProrated computes percent_cover for attacker->target, applying
// spec.md §4.5's partial-blocker proration whenever one or more intervening
// tokens (other than the attacker/target themselves) carry a sub-1.0
// MaxCoverGrant. P_all/P_none/P_minus_i are each obtained by re-running
// PercentVisible with the relevant tokens excluded, via the same
// ExcludedTokens override the calculators already honor.
func (c *Context) percentCoverProrated(attacker, target placeable.TokenID, kind placeable.SenseKind) float64 {
	percentAll := 1 - float64(c.PercentVisible(attacker, target, PercentVisibleOpts{SenseKind: kind}))

	flagged := c.flaggedBlockers(attacker, target)
	if len(flagged) == 0 {
		return percentAll
	}

	excludeAll := make(map[placeable.TokenID]bool, len(flagged))
	for _, f := range flagged {
		excludeAll[f.TokenID] = true
	}
	percentNone := 1 - float64(c.PercentVisible(attacker, target, PercentVisibleOpts{SenseKind: kind, ExcludedTokens: excludeAll}))

	blockers := make([]cover.FlaggedBlocker, len(flagged))
	for i, f := range flagged {
		excludeMinusI := map[placeable.TokenID]bool{f.TokenID: true}
		percentMinus := 1 - float64(c.PercentVisible(attacker, target, PercentVisibleOpts{SenseKind: kind, ExcludedTokens: excludeMinusI}))
		blockers[i] = cover.FlaggedBlocker{TokenID: f.TokenID, Cap: f.Cap, PercentMinus: percentMinus}
	}

	return cover.Prorate(percentAll, percentNone, blockers)
}

// flaggedBlockers returns every registered token (other than attacker and
// target) whose MaxCoverGrant is below 1, the set spec.md §4.5 prorates over.
func (c *Context) flaggedBlockers(attacker, target placeable.TokenID) []cover.FlaggedBlocker {
	var out []cover.FlaggedBlocker
	for id, tok := range c.tokensByID {
		if id == attacker || id == target {
			continue
		}
		if tok.MaxCoverGrant < 1 {
			out = append(out, cover.FlaggedBlocker{TokenID: id, Cap: tok.MaxCoverGrant})
		}
	}
	return out
}

// IgnoresCover implements the public ignores_cover(viewer, actionKind) ->
// f32 operation (spec.md §6).
func (c *Context) IgnoresCover(viewer placeable.TokenID, actionKind cover.ActionKind) float64 {
	return cover.IgnoresCover(c.Ignores[viewer], actionKind)
}

// ConstrainedSilhouette implements the public constrained_silhouette(token,
// senseKind) -> Polygon operation (spec.md §4.3): a token's own footprint,
// trimmed by the walls that intersect it, as seen from the token's own
// center (the fog-of-war/vision-radius use case DESIGN.md describes). The
// candidate wall set is driven through the obstacle index per spec.md §4.2,
// and the result is memoized per (token, senseKind, topologyVersion) via the
// silhouette cache.
func (c *Context) ConstrainedSilhouette(tokenID placeable.TokenID, kind placeable.SenseKind) silhouette.Result {
	tok := c.Token(tokenID)
	if tok == nil {
		c.Log.Record(diag.NotFound("engine.ConstrainedSilhouette", "token id not registered"))
		return silhouette.Result{}
	}

	topologyVersion := c.Index.TopologyVersion()
	return c.Silhouettes.Get(*tok, kind, topologyVersion, func() silhouette.Result {
		footAABB := tok.Footprint.World().AABB()
		mid := (tok.Elevation.ZBottom + tok.Elevation.ZTop) / 2
		frustum := spatial.Frustum{
			Eye:    geom.Point3{X: footAABB.Center().X, Y: footAABB.Center().Y, Z: mid},
			Target: footAABB,
			ZLo:    tok.Elevation.ZBottom,
			ZHi:    tok.Elevation.ZTop,
		}
		near := c.Index.QueryFrustum(frustum, spatial.KindFilter{Walls: true})
		nearWalls := make([]*placeable.Wall, 0, len(near))
		for _, v := range near {
			nearWalls = append(nearWalls, v.Wall)
		}
		return silhouette.Build(*tok, kind, nearWalls, c.boundaryWalls())
	})
}
