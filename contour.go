package outline

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// FillRule decides which points a set of contours encloses.
type FillRule int

const (
	// EvenOdd fills points that are enclosed an odd number of times. It is the
	// rule used by boolean operations, containment tests, and tesselation.
	EvenOdd FillRule = iota
	// NonZero fills points with a non-zero winding number.
	NonZero
)

func (r FillRule) String() string {
	switch r {
	case EvenOdd:
		return "even-odd"
	case NonZero:
		return "non-zero"
	default:
		return fmt.Sprintf("FillRule(%d)", int(r))
	}
}

// Fills reports whether a point with the given winding number is filled.
func (r FillRule) Fills(winding int) bool {
	if r == NonZero {
		return winding != 0
	}
	return winding%2 != 0
}

// Contour is a closed loop of points. The last point implicitly connects back
// to the first.
//
// Orientation is derived from the sign of [Contour.SignedArea]: positive
// contours run counter-clockwise in a y-up coordinate system and are outer
// boundaries, negative contours are holes.
type Contour []Point

// Points returns a copy of the contour's points.
func (c Contour) Points() []Point {
	return slices.Clone([]Point(c))
}

// CurvePoints returns the contour's points. Contours are already flat; seg is
// only validated.
func (c Contour) CurvePoints(seg Segmentation) ([]Point, error) {
	if err := seg.Validate(); err != nil {
		return nil, err
	}
	return c.Points(), nil
}

func (c Contour) Clone() Contour {
	return slices.Clone(c)
}

// edge returns the edge from c[i] to its successor.
func (c Contour) edge(i int) Line {
	j := i + 1
	if j == len(c) {
		j = 0
	}
	return Line{c[i], c[j]}
}

// SignedArea returns the signed area of the contour using the shoelace
// formula.
func (c Contour) SignedArea() float64 {
	if len(c) < 3 {
		return 0
	}
	var a float64
	for i := range c {
		a += c.edge(i).SignedArea()
	}
	return a
}

// Area returns the unsigned area of the contour.
func (c Contour) Area() float64 {
	return math.Abs(c.SignedArea())
}

// Centroid returns the centroid of the area enclosed by c. Contours without
// area report the mean of their points.
func (c Contour) Centroid() Point {
	if len(c) == 0 {
		return Point{}
	}
	var a, cx, cy float64
	for i := range c {
		e := c.edge(i)
		cross := Vec2(e.P0).Cross(Vec2(e.P1))
		a += cross
		cx += (e.P0.X + e.P1.X) * cross
		cy += (e.P0.Y + e.P1.Y) * cross
	}
	if math.Abs(a) <= 1e-12 {
		var sum Vec2
		for _, p := range c {
			sum = sum.Add(Vec2(p))
		}
		return Point(sum.Mul(1 / float64(len(c))))
	}
	return Pt(cx/(3*a), cy/(3*a))
}

// Winding returns the winding number of c around pt. Counter-clockwise
// contours wind positively.
func (c Contour) Winding(pt Point) int {
	var w int
	for i := range c {
		e := c.edge(i)
		if e.P0.Y <= pt.Y {
			if e.P1.Y > pt.Y && e.P1.Sub(e.P0).Cross(pt.Sub(e.P0)) > 0 {
				w++
			}
		} else if e.P1.Y <= pt.Y && e.P1.Sub(e.P0).Cross(pt.Sub(e.P0)) < 0 {
			w--
		}
	}
	return w
}

// crossings returns the number of times a ray cast from pt in the positive x
// direction crosses c.
func (c Contour) crossings(pt Point) int {
	var n int
	for i := range c {
		e := c.edge(i)
		if (e.P0.Y > pt.Y) != (e.P1.Y > pt.Y) {
			x := e.P0.X + (pt.Y-e.P0.Y)*(e.P1.X-e.P0.X)/(e.P1.Y-e.P0.Y)
			if pt.X < x {
				n++
			}
		}
	}
	return n
}

// Contains reports whether pt lies inside c, using the even-odd rule.
func (c Contour) Contains(pt Point) bool {
	return c.crossings(pt)%2 == 1
}

// interiorPoint returns a point strictly inside c, away from its boundary.
// It decides nesting for contours whose vertices all touch another contour.
//
// The point is the middle of the widest span cut from c by a horizontal line
// halfway between two consecutive vertex heights. Contours without area
// report their first point.
func (c Contour) interiorPoint() Point {
	ys := make([]float64, len(c))
	for i, p := range c {
		ys[i] = p.Y
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)
	if len(ys) < 2 {
		return c[0]
	}
	// Only the tallest gaps are worth a scanline.
	type gap struct{ y, h float64 }
	gaps := make([]gap, len(ys)-1)
	for i := range gaps {
		gaps[i] = gap{(ys[i] + ys[i+1]) / 2, ys[i+1] - ys[i]}
	}
	slices.SortFunc(gaps, func(a, b gap) int { return cmp.Compare(b.h, a.h) })
	gaps = gaps[:min(len(gaps), 16)]

	best, clearance := c[0], -1.0
	var xs []float64
	for _, g := range gaps {
		xs = xs[:0]
		for i, a := range c {
			b := c[(i+1)%len(c)]
			if (a.Y < g.y) != (b.Y < g.y) {
				xs = append(xs, a.X+(g.y-a.Y)*(b.X-a.X)/(b.Y-a.Y))
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			if cl := min(xs[i+1]-xs[i], g.h); cl > clearance {
				best, clearance = Pt((xs[i]+xs[i+1])/2, g.y), cl
			}
		}
	}
	return best
}

// distanceSquared returns the squared distance from pt to the nearest edge of
// c.
func (c Contour) distanceSquared(pt Point) float64 {
	d := math.Inf(1)
	for i := range c {
		e, _ := c.edge(i).Nearest(pt)
		d = min(d, e)
	}
	return d
}

// Reverse returns the contour with its orientation flipped.
func (c Contour) Reverse() Contour {
	out := c.Clone()
	slices.Reverse(out)
	return out
}

// BoundingBox returns the bounding box of c and false if c is empty.
func (c Contour) BoundingBox() (Rect, bool) {
	return rectFromPoints(c)
}

// Bounds returns the contour's bounding box as a 4-point contour.
func (c Contour) Bounds() (Contour, error) {
	r, ok := c.BoundingBox()
	if !ok {
		return nil, fmt.Errorf("bounds of contour: %w", ErrEmptyGeometry)
	}
	return r.Contour(), nil
}

func (c Contour) Transform(tr Transform) Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[i] = p.Transform(tr)
	}
	return out
}

// ToPolygon returns a polygon consisting of a copy of c.
func (c Contour) ToPolygon(seg Segmentation) (Polygon, error) {
	if err := seg.Validate(); err != nil {
		return Polygon{}, err
	}
	if len(c) == 0 {
		return Polygon{}, nil
	}
	return Polygon{Contours: []Contour{c.Clone()}}, nil
}

func (c Contour) ToMesh(seg Segmentation) (Mesh, error) {
	p, err := c.ToPolygon(seg)
	if err != nil {
		return Mesh{}, err
	}
	return Tesselate(p)
}

// clean removes consecutive duplicates, collinear points, and spurs from c,
// within eps.
func (c Contour) clean(eps float64) Contour {
	out := slices.Clone(c)
	for changed := true; changed && len(out) >= 3; {
		changed = false
		for i := 0; i < len(out) && len(out) >= 3; {
			prev := out[(i+len(out)-1)%len(out)]
			cur := out[i]
			next := out[(i+1)%len(out)]
			a := cur.Sub(prev)
			b := next.Sub(cur)
			if a.Hypot() <= eps || math.Abs(a.Cross(b)) <= eps*max(a.Hypot(), b.Hypot()) {
				out = slices.Delete(out, i, i+1)
				changed = true
				continue
			}
			i++
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}
