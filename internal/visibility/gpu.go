package visibility

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/gpuproxy"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

// GPUCalculator is variant 4.4.d: rasterize the target silhouette, obstacle
// shadows and terrain-wall shadows into an offscreen framebuffer and count
// thresholded pixels via gpuproxy.Renderer. The renderer is injected so
// callers share the process-wide framebuffer singleton spec.md §5 requires,
// rather than each PercentVisible call allocating its own.
type GPUCalculator struct {
	Renderer *gpuproxy.Renderer
}

func (g GPUCalculator) PercentVisible(viewerPoint geom.Point3, target Target, scene Scene, cfg Config) float32 {
	if v, ok := sharedEdgeCase(viewerPoint, target, scene); ok {
		return v
	}
	if g.Renderer == nil {
		// ResourceUnavailable: GPU context not wired. Fall back per spec.md
		// §7's algorithm chain (webgl2 -> geometric -> points); here the
		// next available CPU calculator is the 2D area variant.
		return Area2DCalculator{}.PercentVisible(viewerPoint, target, scene, cfg)
	}

	size := cfg.RenderTexture
	if size <= 0 {
		size = 100
	}
	bound := projectionBound(viewerPoint, target, scene)
	// toPixel tints every vertex with only the channel its category owns
	// (R=target, G=terrain, B=obstacle); gpuproxy.Renderer draws each
	// category with additive blending so overlapping shapes from different
	// categories accumulate into distinct channels of the same pixel instead
	// of one opaque draw erasing another, per spec.md's fixed R/B/G contract.
	toPixel := func(p geom.Point, r, g, b float32) ebiten.Vertex {
		px := float32((p.X - bound.MinX) / bound.Width() * float64(size))
		py := float32((p.Y - bound.MinY) / bound.Height() * float64(size))
		return ebiten.Vertex{DstX: px, DstY: py, SrcX: 0, SrcY: 0, ColorR: r, ColorG: g, ColorB: b, ColorA: 1}
	}

	gs := gpuproxy.Scene{}
	addPoly := func(poly geom.Polygon, r, g, b float32, vertsOut *[][]ebiten.Vertex, idxOut *[][]uint16) {
		if poly.Degenerate() {
			return
		}
		verts := make([]ebiten.Vertex, len(poly.Verts))
		for i, v := range poly.Verts {
			verts[i] = toPixel(v, r, g, b)
		}
		idx := fanTriangulate(len(verts))
		*vertsOut = append(*vertsOut, verts)
		*idxOut = append(*idxOut, idx)
	}

	addPoly(target.Footprint, 1, 0, 0, &gs.TargetPolys, &gs.TargetIdx)

	if cfg.Blocking.Walls {
		for _, w := range scene.Walls {
			if w == nil || w.Degenerate() || !w.Blocks(cfg.SenseKind) {
				continue
			}
			shadow := wallShadow(
				geom.Point{X: viewerPoint.X, Y: viewerPoint.Y}, w.A, w.B, bound)
			if w.Restriction[cfg.SenseKind] == placeable.RestrictionLimited {
				addPoly(shadow, 0, 1, 0, &gs.TerrainPolys, &gs.TerrainIdx)
			} else {
				addPoly(shadow, 0, 0, 1, &gs.ObstaclePolys, &gs.ObstacleIdx)
			}
		}
	}
	if tokensBlock(cfg) {
		for _, tok := range scene.Tokens {
			if tok == nil || tok.ID == target.TokenID || !tokenContributes(cfg, tok) {
				continue
			}
			addPoly(tok.Footprint.World(), 0, 0, 1, &gs.ObstaclePolys, &gs.ObstacleIdx)
		}
	}

	res, err := g.Renderer.Render(context.Background(), gs, cfg.AlphaThreshold)
	if err != nil {
		return 1
	}
	return res.Percent()
}

// projectionBound picks the world-space rectangle the framebuffer maps to:
// the union of the target footprint's AABB, the viewer point and every
// wall's AABB (token footprints are not included), padded slightly so
// shadow quads do not clip at the edges.
func projectionBound(viewer geom.Point3, target Target, scene Scene) geom.Rect {
	bound := target.Footprint.AABB()
	bound = bound.Union(geom.Rect{MinX: viewer.X, MinY: viewer.Y, MaxX: viewer.X, MaxY: viewer.Y})
	for _, w := range scene.Walls {
		if w == nil {
			continue
		}
		bound = bound.Union(geom.Rect{
			MinX: minF(w.A.X, w.B.X), MinY: minF(w.A.Y, w.B.Y),
			MaxX: maxF(w.A.X, w.B.X), MaxY: maxF(w.A.Y, w.B.Y),
		})
	}
	pad := (bound.Width() + bound.Height()) * 0.05
	if pad <= 0 {
		pad = 1
	}
	return geom.Rect{MinX: bound.MinX - pad, MinY: bound.MinY - pad, MaxX: bound.MaxX + pad, MaxY: bound.MaxY + pad}
}

// fanTriangulate returns a triangle-fan index list for a convex n-gon.
func fanTriangulate(n int) []uint16 {
	if n < 3 {
		return nil
	}
	idx := make([]uint16, 0, (n-2)*3)
	for i := 1; i < n-1; i++ {
		idx = append(idx, 0, uint16(i), uint16(i+1))
	}
	return idx
}
