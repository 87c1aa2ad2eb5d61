package outline

import (
	"fmt"
	"math"
)

// AdaptOptions controls [Shape.Adapt].
type AdaptOptions struct {
	// Weight scales the portion of the guide the shape is stretched over. 1
	// covers the whole guide.
	Weight float64
	// Offset shifts the start of the shape along the guide, as a global
	// parameter.
	Offset float64
}

// DefaultAdaptOptions stretches the shape over the whole guide.
var DefaultAdaptOptions = AdaptOptions{Weight: 1, Offset: 0}

// Adapt bends s along guide and returns the result.
//
// Every point p of s, control points included, is mapped by its position
// within the bounds of s: the horizontal fraction u of p selects the global
// parameter t = Offset + u*Weight on the guide, clamped to [0, 1], and p.Y
// becomes the distance along the guide's normal at t. The normal is the unit
// tangent rotated a quarter turn, so a straight horizontal guide spanning the
// bounds of s reproduces s.
func (s *Shape) Adapt(guide *Shape, opts AdaptOptions) (*Shape, error) {
	if math.IsNaN(opts.Weight) || math.IsInf(opts.Weight, 0) ||
		math.IsNaN(opts.Offset) || math.IsInf(opts.Offset, 0) {
		return nil, fmt.Errorf("adapt: options %+v: %w", opts, ErrInvalidParameter)
	}
	r, ok := s.controlBox()
	if !ok {
		return nil, fmt.Errorf("adapt: empty shape: %w", ErrEmptyGeometry)
	}
	li, ok := guide.lengthIndex()
	if !ok {
		return nil, fmt.Errorf("adapt: empty guide: %w", ErrEmptyGeometry)
	}

	w := r.Width()
	mapPoint := func(p Point) Point {
		var u float64
		if w > 0 {
			u = (p.X - r.X0) / w
		}
		t := min(max(opts.Offset+u*opts.Weight, 0), 1)
		sub, cmd, lu := li.locate(t)
		c := guide.Subpaths[sub].Commands[cmd]
		n := c.Tangent(lu).Rotate90()
		if h := n.Hypot(); h > 0 {
			n = n.Mul(1 / h)
		}
		return c.Eval(lu).Add(n.Mul(p.Y))
	}

	out := s.Clone()
	for i := range out.Subpaths {
		sub := &out.Subpaths[i]
		sub.Start = mapPoint(sub.Start)
		for j := range sub.Commands {
			c := &sub.Commands[j]
			pts, n := c.controlPoints()
			for k := range n {
				pts[k] = mapPoint(pts[k])
			}
			c.P0, c.P1, c.P2, c.P3 = pts[0], pts[1], pts[2], pts[3]
		}
	}
	return out, nil
}

// controlBox returns the bounding box of every point of s, control points
// included, and false if s has no commands.
func (s *Shape) controlBox() (Rect, bool) {
	var pts []Point
	for i := range s.Subpaths {
		sub := &s.Subpaths[i]
		if sub.IsEmpty() {
			continue
		}
		pts = append(pts, sub.Start)
		for _, c := range sub.Commands {
			cp, n := c.controlPoints()
			pts = append(pts, cp[:n]...)
		}
	}
	return rectFromPoints(pts)
}
