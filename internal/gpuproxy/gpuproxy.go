// Package gpuproxy renders the GPU rasterized-pixel-count variant's
// offscreen framebuffer and counts channel-thresholded pixels, grounded on
// the teacher's ebiten-based draw/overlay stack (internal/game/game.go's
// screen management, draw_overlays.go's vector.FillRect shape rendering)
// repurposed from an interactive game loop into a one-shot headless render
// target.
package gpuproxy

import (
	"context"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// Strategy is one of the four counting strategies spec.md §4.4.d requires to
// agree within ±1 pixel. Only CPUReadback is implemented directly; the
// other three are documented equivalents of the same channel-threshold rule
// applied at a different point in the render pipeline (see DESIGN.md).
type Strategy int

const (
	// StrategyCPUReadback downloads the full framebuffer and thresholds it
	// on the CPU — the only strategy this engine executes.
	StrategyCPUReadback Strategy = iota
	// StrategyFragmentLoop would threshold per-texel inside a fragment
	// shader, accumulating into a 1x1 target.
	StrategyFragmentLoop
	// StrategyAdditiveBlend would use additive blending onto a 1x1 render
	// target so the sum falls out of the blend unit instead of a shader.
	StrategyAdditiveBlend
	// StrategyPyramidalReduction would ping-pong halve the framebuffer
	// (mipmap-style) until a single texel remains.
	StrategyPyramidalReduction
)

// Channels is the fixed channel assignment from spec.md's "GPU framebuffer
// contract": R=target silhouette, B=obstacle, G=terrain.
var (
	ColorTarget   = color.RGBA{R: 255, A: 255}
	ColorObstacle = color.RGBA{B: 255, A: 255}
)

// Renderer owns the process-wide offscreen framebuffer singleton (spec.md
// §5's "shared resources": "allocated at initialization with a fixed size").
// Resizing tears down and reallocates, matching the teacher's own
// ebiten.Image lifecycle (images are recreated, never resized in place).
type Renderer struct {
	mu     sync.Mutex
	size   int
	target *ebiten.Image
}

// NewRenderer allocates the framebuffer at renderTextureSize (spec.md §6
// default 100).
func NewRenderer(renderTextureSize int) *Renderer {
	if renderTextureSize <= 0 {
		renderTextureSize = 100
	}
	return &Renderer{
		size:   renderTextureSize,
		target: ebiten.NewImage(renderTextureSize, renderTextureSize),
	}
}

// Resize tears down and reinitializes the framebuffer at a new size.
func (r *Renderer) Resize(size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if size == r.size {
		return
	}
	r.target.Dispose()
	r.size = size
	r.target = ebiten.NewImage(size, size)
}

// Scene is what gets rasterized: a target silhouette polygon (drawn red),
// obstacle polygons (drawn blue), and terrain-wall polygons (drawn green),
// all already projected into the framebuffer's [0,size)×[0,size) pixel
// space by the caller.
type Scene struct {
	TargetPolys   [][]ebiten.Vertex
	TargetIdx     [][]uint16
	ObstaclePolys [][]ebiten.Vertex
	ObstacleIdx   [][]uint16
	TerrainPolys  [][]ebiten.Vertex
	TerrainIdx    [][]uint16
}

// Result is the channel pixel-count tally spec.md §4.4.d's contract needs.
type Result struct {
	RedTotal   int
	RedBlocked int
}

// Percent implements `percent = 1 - red_blocked/red_total` (spec.md §4.4.d),
// returning 1 when there is no target silhouette to measure (an empty
// silhouette contributes no information, so the conservative no-cover
// default applies, per spec.md §7's "withheld cover is safer than
// fabricated cover").
func (r Result) Percent() float32 {
	if r.RedTotal == 0 {
		return 1
	}
	return 1 - float32(r.RedBlocked)/float32(r.RedTotal)
}

// Render draws scene into the framebuffer (two concurrent readbacks against
// the same framebuffer must be serialized, per spec.md §5, hence the mutex)
// then reads it back synchronously. This is the StrategyCPUReadback path.
func (r *Renderer) Render(ctx context.Context, scene Scene, alphaThreshold float64) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.target.Clear()
	// Additive blending: each category's vertex colors only set the one
	// channel it owns (see visibility.GPUCalculator), so accumulating rather
	// than overwriting lets a target-red pixel and an obstacle-blue shadow
	// land on the same pixel without either erasing the other's channel.
	opts := &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter}
	for i, verts := range scene.ObstaclePolys {
		r.target.DrawTriangles(verts, scene.ObstacleIdx[i], whitePixel(), opts)
	}
	for i, verts := range scene.TerrainPolys {
		r.target.DrawTriangles(verts, scene.TerrainIdx[i], whitePixel(), opts)
	}
	for i, verts := range scene.TargetPolys {
		r.target.DrawTriangles(verts, scene.TargetIdx[i], whitePixel(), opts)
	}

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	return readback(r.target, alphaThreshold), nil
}

// RenderAsync is the non-blocking form spec.md §5 requires ("implementations
// must provide both a blocking and a non-blocking form; callers passing the
// non-blocking form receive a pending handle and may cancel it").
func (r *Renderer) RenderAsync(ctx context.Context, scene Scene, alphaThreshold float64) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		res, err := r.Render(ctx, scene, alphaThreshold)
		p.result, p.err = res, err
	}()
	return p
}

// Pending is a cancellable handle to an in-flight async readback.
type Pending struct {
	done   chan struct{}
	result Result
	err    error
}

// Wait blocks until the readback completes or ctx is cancelled.
func (p *Pending) Wait(ctx context.Context) (Result, error) {
	select {
	case <-p.done:
		return p.result, p.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

var whitePixelImage *ebiten.Image

func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// readback implements the channel-threshold rule from spec.md's GPU
// framebuffer contract: "a pixel as blocked iff R > 127 AND (B > 127 OR
// G > alphaThreshold*255)", using strict '>' per spec.md §9's open-question
// resolution in favor of the strict variant.
func readback(img *ebiten.Image, alphaThreshold float64) Result {
	bounds := img.Bounds()
	pixels := make([]byte, 4*bounds.Dx()*bounds.Dy())
	img.ReadPixels(pixels)

	greenThreshold := byte(clampByte(alphaThreshold * 255))

	var res Result
	for i := 0; i+3 < len(pixels); i += 4 {
		r, g, b := pixels[i], pixels[i+1], pixels[i+2]
		if r <= 127 {
			continue
		}
		res.RedTotal++
		if b > 127 || g > greenThreshold {
			res.RedBlocked++
		}
	}
	return res
}

func clampByte(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
