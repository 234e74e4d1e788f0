package geom

import "math"

// Polygon is a simple (non-self-intersecting) polygon given as a vertex
// loop. Vertices are not required to be closed (first != last).
type Polygon struct {
	Verts []Point
}

// NewRectPolygon builds a rectangular polygon from a Rect, wound
// clockwise in screen coordinates (Y-down), matching the teacher's tile/grid
// convention.
func NewRectPolygon(r Rect) Polygon {
	return Polygon{Verts: []Point{
		{r.MinX, r.MinY}, {r.MaxX, r.MinY}, {r.MaxX, r.MaxY}, {r.MinX, r.MaxY},
	}}
}

// RegularPolygon builds a regular N-gon centered at the origin (the
// "Platonic form" of spec.md §4.1), circumradius r, first vertex pointing
// along +X. Use Translate/Rotate to place it in world coordinates. N must be
// >= 3.
func RegularPolygon(n int, r float64) Polygon {
	if n < 3 {
		n = 3
	}
	verts := make([]Point, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		verts[i] = Point{r * math.Cos(theta), r * math.Sin(theta)}
	}
	return Polygon{Verts: verts}
}

// Translate returns a copy of p shifted by v.
func (p Polygon) Translate(v Vector) Polygon {
	out := make([]Point, len(p.Verts))
	for i, pt := range p.Verts {
		out[i] = pt.Add(v)
	}
	return Polygon{Verts: out}
}

// Rotate returns a copy of p rotated by theta radians about the origin.
func (p Polygon) Rotate(theta float64) Polygon {
	c, s := math.Cos(theta), math.Sin(theta)
	out := make([]Point, len(p.Verts))
	for i, pt := range p.Verts {
		out[i] = Point{pt.X*c - pt.Y*s, pt.X*s + pt.Y*c}
	}
	return Polygon{Verts: out}
}

// AABB returns the axis-aligned bounding box of the polygon.
func (p Polygon) AABB() Rect {
	if len(p.Verts) == 0 {
		return Rect{}
	}
	r := Rect{p.Verts[0].X, p.Verts[0].Y, p.Verts[0].X, p.Verts[0].Y}
	for _, v := range p.Verts[1:] {
		r.MinX = math.Min(r.MinX, v.X)
		r.MinY = math.Min(r.MinY, v.Y)
		r.MaxX = math.Max(r.MaxX, v.X)
		r.MaxY = math.Max(r.MaxY, v.Y)
	}
	return r
}

// Area returns the polygon's unsigned area via the shoelace formula.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// SignedArea returns the shoelace-formula signed area (positive for
// counter-clockwise winding in a Y-up frame; this engine uses Y-down screen
// coordinates, so clockwise winding yields a positive value here).
func (p Polygon) SignedArea() float64 {
	n := len(p.Verts)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a := p.Verts[i]
		b := p.Verts[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Degenerate reports whether the polygon has fewer than 3 vertices or
// (near-)zero area.
func (p Polygon) Degenerate() bool {
	return len(p.Verts) < 3 || p.Area() < PixelTolerance*PixelTolerance*1e-3
}

// Contains reports whether point pt lies within the polygon, using a
// standard even-odd ray cast.
func (p Polygon) Contains(pt Point) bool {
	n := len(p.Verts)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := p.Verts[i], p.Verts[j]
		if ((vi.Y > pt.Y) != (vj.Y > pt.Y)) &&
			(pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X) {
			inside = !inside
		}
	}
	return inside
}

// Edges returns the polygon's edges as segments, wrapping last->first.
func (p Polygon) Edges() []Segment {
	n := len(p.Verts)
	if n < 2 {
		return nil
	}
	out := make([]Segment, n)
	for i := 0; i < n; i++ {
		out[i] = Segment{p.Verts[i], p.Verts[(i+1)%n]}
	}
	return out
}

// ScaleFixed scales a polygon's vertices by an integer factor and rounds to
// the nearest integer grid point, per spec.md §4.1's "integer scaling
// factor for fixed-point stability" contract. Callers pass floats in and
// receive floats back (UnscaleFixed); only clip.go's internals work
// in the scaled integer domain.
func ScaleFixed(p Polygon, factor float64) Polygon {
	out := make([]Point, len(p.Verts))
	for i, v := range p.Verts {
		out[i] = Point{math.Round(v.X * factor), math.Round(v.Y * factor)}
	}
	return Polygon{Verts: out}
}

// UnscaleFixed is the inverse of ScaleFixed.
func UnscaleFixed(p Polygon, factor float64) Polygon {
	out := make([]Point, len(p.Verts))
	for i, v := range p.Verts {
		out[i] = Point{v.X / factor, v.Y / factor}
	}
	return Polygon{Verts: out}
}
