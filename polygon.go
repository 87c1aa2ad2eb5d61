package outline

import (
	"fmt"
)

// Polygon is a flattened outline: an ordered collection of contours plus the
// style of the entity it was flattened from.
//
// Polygons use the even-odd rule throughout. The results of boolean
// operations additionally wind outer contours positively and holes
// negatively.
type Polygon struct {
	Contours []Contour
	Style    Style
}

// IsEmpty reports whether p has no contours with at least three points.
func (p Polygon) IsEmpty() bool {
	for _, c := range p.Contours {
		if len(c) >= 3 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of p.
func (p Polygon) Clone() Polygon {
	out := Polygon{Style: p.Style}
	if p.Contours != nil {
		out.Contours = make([]Contour, len(p.Contours))
		for i, c := range p.Contours {
			out.Contours[i] = c.Clone()
		}
	}
	return out
}

// Area returns the sum of the signed areas of p's contours. For polygons whose
// holes wind opposite to their outer contours, this is the filled area.
func (p Polygon) Area() float64 {
	var a float64
	for _, c := range p.Contours {
		a += c.SignedArea()
	}
	return a
}

// Contains reports whether pt lies inside p under the even-odd rule.
func (p Polygon) Contains(pt Point) bool {
	var n int
	for _, c := range p.Contours {
		n += c.crossings(pt)
	}
	return n%2 == 1
}

// Winding returns the winding number of p around pt.
func (p Polygon) Winding(pt Point) int {
	var w int
	for _, c := range p.Contours {
		w += c.Winding(pt)
	}
	return w
}

// Points returns the points of all contours, in order.
func (p Polygon) Points() []Point {
	var out []Point
	for _, c := range p.Contours {
		out = append(out, c...)
	}
	return out
}

// CurvePoints returns the same points as [Polygon.Points]; seg is only
// validated.
func (p Polygon) CurvePoints(seg Segmentation) ([]Point, error) {
	if err := seg.Validate(); err != nil {
		return nil, err
	}
	return p.Points(), nil
}

// BoundingBox returns the bounding box of all of p's points and false if p has
// none.
func (p Polygon) BoundingBox() (Rect, bool) {
	var r Rect
	var ok bool
	for _, c := range p.Contours {
		cr, cok := c.BoundingBox()
		if !cok {
			continue
		}
		if ok {
			r = r.Union(cr)
		} else {
			r, ok = cr, true
		}
	}
	return r, ok
}

// Bounds returns the polygon's bounding box as a 4-point contour.
func (p Polygon) Bounds() (Contour, error) {
	r, ok := p.BoundingBox()
	if !ok {
		return nil, fmt.Errorf("bounds of polygon: %w", ErrEmptyGeometry)
	}
	return r.Contour(), nil
}

func (p Polygon) Transform(tr Transform) Polygon {
	out := Polygon{Style: p.Style, Contours: make([]Contour, len(p.Contours))}
	for i, c := range p.Contours {
		out.Contours[i] = c.Transform(tr)
	}
	return out
}

// ToShape converts p back into curve space: one closed subpath of lines per
// contour.
func (p Polygon) ToShape() *Shape {
	s := &Shape{Style: p.Style}
	for _, c := range p.Contours {
		if len(c) == 0 {
			continue
		}
		sp := NewSubpath(c[0])
		for _, pt := range c[1:] {
			sp.LineTo(pt)
		}
		sp.Close()
		s.Subpaths = append(s.Subpaths, *sp)
	}
	return s
}

// ToPolygon returns a copy of p; seg is only validated.
func (p Polygon) ToPolygon(seg Segmentation) (Polygon, error) {
	if err := seg.Validate(); err != nil {
		return Polygon{}, err
	}
	return p.Clone(), nil
}

// ToMesh tesselates p; seg is only validated.
func (p Polygon) ToMesh(seg Segmentation) (Mesh, error) {
	if err := seg.Validate(); err != nil {
		return Mesh{}, err
	}
	return Tesselate(p)
}

func (p Polygon) Union(o Polygon) Polygon        { return Union(p, o) }
func (p Polygon) Intersection(o Polygon) Polygon { return Intersection(p, o) }
func (p Polygon) Difference(o Polygon) Polygon   { return Difference(p, o) }
func (p Polygon) Xor(o Polygon) Polygon          { return Xor(p, o) }
