package outline

import (
	"fmt"
	"iter"
	"math"
)

// Strip is a triangle strip. Triangle i of the strip consists of the points
// i, i+1 and i+2, so consecutive triangles alternate their winding.
type Strip []Point

// Triangles returns the strip's triangles.
func (s Strip) Triangles() iter.Seq[[3]Point] {
	return func(yield func([3]Point) bool) {
		for i := 0; i+2 < len(s); i++ {
			if !yield([3]Point{s[i], s[i+1], s[i+2]}) {
				return
			}
		}
	}
}

// Mesh is a triangulated outline, ready for filled rendering. Strips of a mesh
// don't share edges in any defined way, so a mesh cannot be used to recover
// the outline it was created from.
type Mesh struct {
	Strips []Strip
	Style  Style
}

// Triangles returns the triangles of all strips.
func (m Mesh) Triangles() iter.Seq[[3]Point] {
	return func(yield func([3]Point) bool) {
		for _, s := range m.Strips {
			for tri := range s.Triangles() {
				if !yield(tri) {
					return
				}
			}
		}
	}
}

func triangleArea(tri [3]Point) float64 {
	return tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])) * 0.5
}

// Area returns the total unsigned area of the mesh's triangles.
func (m Mesh) Area() float64 {
	var a float64
	for tri := range m.Triangles() {
		a += math.Abs(triangleArea(tri))
	}
	return a
}

// Vertices returns the mesh as a flat list of triangles, six coordinates per
// triangle, in the layout expected by GPU vertex buffers.
func (m Mesh) Vertices() []float32 {
	var out []float32
	for tri := range m.Triangles() {
		for _, p := range tri {
			out = append(out, float32(p.X), float32(p.Y))
		}
	}
	return out
}

// Points returns the points of all strips, in order.
func (m Mesh) Points() []Point {
	var out []Point
	for _, s := range m.Strips {
		out = append(out, s...)
	}
	return out
}

// BoundingBox returns the bounding box of all of m's points and false if m is
// empty.
func (m Mesh) BoundingBox() (Rect, bool) {
	return rectFromPoints(m.Points())
}

// Bounds returns the mesh's bounding box as a 4-point contour.
func (m Mesh) Bounds() (Contour, error) {
	r, ok := m.BoundingBox()
	if !ok {
		return nil, fmt.Errorf("bounds of mesh: %w", ErrEmptyGeometry)
	}
	return r.Contour(), nil
}

func (m Mesh) Transform(tr Transform) Mesh {
	out := Mesh{Style: m.Style, Strips: make([]Strip, len(m.Strips))}
	for i, s := range m.Strips {
		ns := make(Strip, len(s))
		for j, p := range s {
			ns[j] = p.Transform(tr)
		}
		out.Strips[i] = ns
	}
	return out
}
