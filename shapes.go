package outline

import (
	"fmt"
	"math"
)

// kappa is the length of the control arms of a cubic Bézier approximating a
// quarter of the unit circle.
const kappa = 0.5522847498

// NewRectangle returns a closed rectangle with its minimum corner at (x, y).
// For positive sizes it winds counter-clockwise in y-up space.
func NewRectangle(x, y, w, h float64) *Shape {
	var s Shape
	s.MoveTo(Pt(x, y))
	s.LineTo(Pt(x+w, y))
	s.LineTo(Pt(x+w, y+h))
	s.LineTo(Pt(x, y+h))
	s.Close()
	return &s
}

// NewEllipse returns a closed, axis-aligned ellipse made of four cubic Béziers,
// starting at the rightmost point and winding counter-clockwise in y-up space.
func NewEllipse(center Point, rx, ry float64) *Shape {
	var s Shape
	appendEllipse(&s, center, rx, ry)
	return &s
}

func appendEllipse(s *Shape, center Point, rx, ry float64) {
	x, y := center.Splat()
	s.MoveTo(Pt(x+rx, y))
	for ix := range 4 {
		th0 := float64(ix) * math.Pi / 2
		th1 := th0 + math.Pi/2
		s0, c0 := math.Sincos(th0)
		s1, c1 := math.Sincos(th1)
		if ix == 3 {
			s1, c1 = 0, 1
		}
		s.CubicTo(
			Pt(x+rx*(c0-kappa*s0), y+ry*(s0+kappa*c0)),
			Pt(x+rx*(c1+kappa*s1), y+ry*(s1-kappa*c1)),
			Pt(x+rx*c1, y+ry*s1),
		)
	}
	s.Close()
}

func NewCircle(center Point, r float64) *Shape {
	return NewEllipse(center, r, r)
}

// NewRing returns an annulus: an outer circle and an inner circle wound the
// opposite way.
func NewRing(center Point, outer, inner float64) *Shape {
	s := NewCircle(center, outer)
	hole := NewCircle(center, inner).Reverse()
	s.AppendShape(hole)
	return s
}

// NewArc returns an open elliptical arc of cubic Béziers, from startAngle
// sweeping by sweepAngle radians. Each Bézier spans at most a quarter turn.
func NewArc(center Point, radii Vec2, startAngle, sweepAngle float64) *Shape {
	var s Shape
	n := max(1, math.Ceil(math.Abs(sweepAngle)/(math.Pi/2)))
	angleStep := sweepAngle / n
	armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), sweepAngle)
	angle0 := startAngle
	p0 := sampleEllipse(radii, angle0)
	s.MoveTo(center.Translate(p0))
	for range int(n) {
		angle1 := angle0 + angleStep
		p1 := p0.Add(sampleEllipse(radii, angle0+math.Pi/2).Mul(armLen))
		p3 := sampleEllipse(radii, angle1)
		p2 := p3.Sub(sampleEllipse(radii, angle1+math.Pi/2).Mul(armLen))
		s.CubicTo(center.Translate(p1), center.Translate(p2), center.Translate(p3))
		angle0 = angle1
		p0 = p3
	}
	return &s
}

// sampleEllipse returns the offset of the point at angle on an axis-aligned
// ellipse with the given radii.
func sampleEllipse(radii Vec2, angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec(radii.X*c, radii.Y*s)
}

// NewRegularPolygon returns a closed regular polygon with the given number of
// sides, its first vertex at angle 0.
func NewRegularPolygon(center Point, radius float64, sides int) (*Shape, error) {
	if sides < 3 {
		return nil, fmt.Errorf("regular polygon with %d sides: %w", sides, ErrInvalidParameter)
	}
	var s Shape
	for i := range sides {
		p := center.Translate(sampleEllipse(Vec(radius, radius), 2*math.Pi*float64(i)/float64(sides)))
		if i == 0 {
			s.MoveTo(p)
		} else {
			s.LineTo(p)
		}
	}
	s.Close()
	return &s, nil
}

// NewStar returns a closed star whose spikes alternate between the outer and
// inner radius, the first spike at angle π/2.
func NewStar(center Point, inner, outer float64, spikes int) (*Shape, error) {
	if spikes < 2 {
		return nil, fmt.Errorf("star with %d spikes: %w", spikes, ErrInvalidParameter)
	}
	var s Shape
	step := math.Pi / float64(spikes)
	for i := range 2 * spikes {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		p := center.Translate(sampleEllipse(Vec(r, r), math.Pi/2+float64(i)*step))
		if i == 0 {
			s.MoveTo(p)
		} else {
			s.LineTo(p)
		}
	}
	s.Close()
	return &s, nil
}
