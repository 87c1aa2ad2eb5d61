package outline

import (
	"math"
)

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Split splits the line at t into two lines meeting at l.Eval(t).
func (l Line) Split(t float64) (Line, Line) {
	pm := l.Eval(t)
	return Line{l.P0, pm}, Line{pm, l.P1}
}

func (l Line) Subdivide() (Line, Line) {
	return l.Split(0.5)
}

// Deriv returns the derivative of the line, which is constant.
func (l Line) Deriv() Vec2 {
	return l.P1.Sub(l.P0)
}

func (l Line) Transform(tr Transform) Line {
	return Line{
		P0: l.P0.Transform(tr),
		P1: l.P1.Transform(tr),
	}
}

// SignedArea returns the signed area under the line, its contribution to the
// shoelace sum of a closed path.
func (l Line) SignedArea() float64 {
	return Vec2(l.P0).Cross(Vec2(l.P1)) * 0.5
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

func (l Line) Seg() Command {
	return Command{Kind: LineKind, P0: l.P0, P1: l.P1}
}

// lineIntersection describes where two lines cross, as parameters on each.
type lineIntersection struct {
	// The parameter of the intersection on the first line.
	T float64
	// The parameter of the intersection on the second line.
	U float64
}

// IntersectLine computes the intersection of two line segments.
//
// Parallel and coincident lines report no intersection; overlaps of collinear
// edges are handled by the caller. The test is inclusive of points within
// epsilon of the endpoints, so that testing against contiguous segments
// always catches at least one of them.
func (l Line) IntersectLine(o Line) (lineIntersection, bool) {
	const epsilon = 1e-9
	d1 := l.P1.Sub(l.P0)
	d2 := o.P1.Sub(o.P0)
	det := d1.Cross(d2)
	if math.Abs(det) < epsilon*d1.Hypot()*d2.Hypot() || det == 0 {
		return lineIntersection{}, false
	}
	w := o.P0.Sub(l.P0)
	t := w.Cross(d2) / det
	u := w.Cross(d1) / det
	if t < -epsilon || t > 1+epsilon || u < -epsilon || u > 1+epsilon {
		return lineIntersection{}, false
	}
	return lineIntersection{
		T: min(max(t, 0), 1),
		U: min(max(u, 0), 1),
	}, true
}

// Nearest returns the squared distance from pt to the closest point on the
// line, and that point's parameter.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}
