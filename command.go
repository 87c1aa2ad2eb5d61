package outline

import (
	"fmt"
	"iter"
	"math"
)

type CommandKind int

const (
	// A line segment.
	LineKind CommandKind = iota + 1
	// A quadratic Bézier segment.
	QuadKind
	// A cubic Bézier segment.
	CubicKind
)

func (k CommandKind) String() string {
	switch k {
	case LineKind:
		return "line"
	case QuadKind:
		return "quad"
	case CubicKind:
		return "cubic"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is one drawing primitive of a [Subpath]. This type acts as a sort
// of tagged union representing all possible commands ([Line], [QuadBez], and
// [CubicBez]).
//
// P0 is the running cursor at the time the command was appended, that is, the
// end of the previous command or the subpath's start point. Lines use P0 and
// P1, quadratics P0 through P2, and cubics all four points.
type Command struct {
	// We don't use an interface for Command because we want {Line, Quad,
	// Cubic}.Transform to return their respective types, not Command. But we
	// cannot encode that in Go interfaces.
	//
	// This also avoids having to allocate for commands.

	Kind CommandKind
	P0   Point
	P1   Point
	P2   Point
	P3   Point
}

func (c Command) String() string {
	switch c.Kind {
	case LineKind:
		return fmt.Sprintf("line(%s, %s)", c.P0, c.P1)
	case QuadKind:
		return fmt.Sprintf("quad(%s, %s, %s)", c.P0, c.P1, c.P2)
	case CubicKind:
		return fmt.Sprintf("cubic(%s, %s, %s, %s)", c.P0, c.P1, c.P2, c.P3)
	default:
		return c.Kind.String()
	}
}

// Line returns the line represented by this command. This is only valid when
// Kind == LineKind.
func (c Command) Line() Line { return Line{c.P0, c.P1} }

// Quad returns the quadratic Bézier represented by this command. This is only
// valid when Kind == QuadKind.
func (c Command) Quad() QuadBez { return QuadBez{c.P0, c.P1, c.P2} }

// Cubic converts c to a cubic Bézier. This is valid for any Kind.
func (c Command) Cubic() CubicBez {
	switch c.Kind {
	case LineKind:
		p0 := c.P0
		p1 := c.P1
		return CubicBez{p0, p0, p1, p1}
	case QuadKind:
		return c.Quad().Raise()
	case CubicKind:
		return CubicBez{c.P0, c.P1, c.P2, c.P3}
	default:
		return CubicBez{}
	}
}

// controlPoints returns the command's control polygon.
func (c Command) controlPoints() ([4]Point, int) {
	switch c.Kind {
	case LineKind:
		return [4]Point{c.P0, c.P1}, 2
	case QuadKind:
		return [4]Point{c.P0, c.P1, c.P2}, 3
	case CubicKind:
		return [4]Point{c.P0, c.P1, c.P2, c.P3}, 4
	default:
		return [4]Point{}, 0
	}
}

// ControlPoints returns the command's start point followed by its control
// and end points.
func (c Command) ControlPoints() []Point {
	pts, n := c.controlPoints()
	return append([]Point(nil), pts[:n]...)
}

func (c Command) Start() Point {
	return c.P0
}

func (c Command) End() Point {
	switch c.Kind {
	case LineKind:
		return c.P1
	case QuadKind:
		return c.P2
	case CubicKind:
		return c.P3
	default:
		return c.P0
	}
}

func (c Command) Eval(t float64) Point {
	switch c.Kind {
	case LineKind:
		return c.Line().Eval(t)
	case QuadKind:
		return c.Quad().Eval(t)
	case CubicKind:
		return c.Cubic().Eval(t)
	default:
		return c.P0
	}
}

// Tangent returns the first derivative of the command at t. Where the
// derivative vanishes, such as at an endpoint whose control point coincides
// with it, the direction of the nearest non-degenerate control leg is
// returned instead.
func (c Command) Tangent(t float64) Vec2 {
	var d Vec2
	switch c.Kind {
	case LineKind:
		d = c.Line().Deriv()
	case QuadKind:
		d = Vec2(c.Quad().Deriv().Eval(t))
	case CubicKind:
		d = Vec2(c.Cubic().Deriv().Eval(t))
	}
	if d.Hypot2() != 0 {
		return d
	}
	pts, n := c.controlPoints()
	if t < 0.5 {
		for i := 1; i < n; i++ {
			if v := pts[i].Sub(pts[0]); v.Hypot2() != 0 {
				return v
			}
		}
	} else {
		for i := n - 2; i >= 0; i-- {
			if v := pts[n-1].Sub(pts[i]); v.Hypot2() != 0 {
				return v
			}
		}
	}
	return Vec2{}
}

// split is Split without parameter validation.
func (c Command) split(t float64) (Command, Command) {
	switch c.Kind {
	case LineKind:
		a, b := c.Line().Split(t)
		return a.Seg(), b.Seg()
	case QuadKind:
		a, b := c.Quad().Split(t)
		return a.Seg(), b.Seg()
	case CubicKind:
		a, b := c.Cubic().Split(t)
		return a.Seg(), b.Seg()
	default:
		return c, c
	}
}

// Split splits the command at t into two commands of the same kind that
// together trace exactly the original. The first ends and the second starts at
// c.Eval(t). t outside [0, 1] is an error wrapping [ErrInvalidParameter].
func (c Command) Split(t float64) (Command, Command, error) {
	if !(t >= 0 && t <= 1) {
		return Command{}, Command{}, fmt.Errorf("split %s at %g: %w", c.Kind, t, ErrInvalidParameter)
	}
	a, b := c.split(t)
	return a, b, nil
}

// Subdivide splits the command in halves.
func (c Command) Subdivide() (Command, Command) {
	return c.split(0.5)
}

// Length returns the length of the command. Lines are measured exactly,
// curves as a polyline at a fixed internal resolution.
func (c Command) Length() float64 {
	switch c.Kind {
	case LineKind:
		return c.Line().Length()
	case QuadKind, CubicKind:
		var l float64
		prev := c.P0
		for i := 1; i <= lengthSteps; i++ {
			p := c.Eval(float64(i) / lengthSteps)
			l += prev.Distance(p)
			prev = p
		}
		return l
	default:
		return 0
	}
}

// arclenAccuracy is the accuracy of FixedLength sampling, relative to the
// command's length.
const arclenAccuracy = 1e-7

// lengthTo returns the length of c from its start to t, measured along the
// same polyline as [Command.Length].
func (c Command) lengthTo(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return c.Length()
	case c.Kind == LineKind:
		return c.Line().Length() * t
	}
	var l float64
	prev := c.P0
	k := int(t * lengthSteps)
	for i := 1; i <= k; i++ {
		p := c.Eval(float64(i) / lengthSteps)
		l += prev.Distance(p)
		prev = p
	}
	return l + prev.Distance(c.Eval(t))
}

// SolveForArclen returns the parameter at which the length of c, measured
// from its start, reaches arclen. The result is within accuracy of the exact
// solution, measured along the curve. Lengths outside [0, c.Length()] map to
// 0 and 1.
func (c Command) SolveForArclen(arclen, accuracy float64) float64 {
	return c.solveArclen(0, arclen, c.Length(), accuracy)
}

// solveArclen is SolveForArclen for callers that know the command's length
// and a parameter lo not past the solution.
func (c Command) solveArclen(lo, arclen, total, accuracy float64) float64 {
	switch {
	case arclen <= 0 || total <= 0:
		return 0
	case arclen >= total:
		return 1
	case c.Kind == LineKind:
		return arclen / total
	}
	f := func(t float64) float64 { return c.lengthTo(t) - arclen }
	ylo := f(lo)
	if ylo >= 0 {
		return lo
	}
	eps := max(accuracy, 1e-15*total) / total
	return solveITP(f, lo, 1, eps, 1, 0.2/(1-lo), ylo, total-arclen)
}

// SignedArea returns the command's contribution to the signed area of a
// closed subpath.
func (c Command) SignedArea() float64 {
	switch c.Kind {
	case LineKind:
		return c.Line().SignedArea()
	case QuadKind:
		return c.Quad().SignedArea()
	case CubicKind:
		return c.Cubic().SignedArea()
	default:
		return 0
	}
}

// Extrema returns the parameters in (0, 1) at which the command reaches an
// extreme value in x or y.
func (c Command) Extrema() ([4]float64, int) {
	switch c.Kind {
	case QuadKind:
		return c.Quad().Extrema()
	case CubicKind:
		return c.Cubic().Extrema()
	default:
		return [4]float64{}, 0
	}
}

// BoundingBox returns the tight bounding box of the command.
func (c Command) BoundingBox() Rect {
	r := NewRectFromPoints(c.Start(), c.End())
	ts, n := c.Extrema()
	for _, t := range ts[:n] {
		r = r.UnionPoint(c.Eval(t))
	}
	return r
}

func (c Command) Transform(tr Transform) Command {
	switch c.Kind {
	case LineKind:
		return c.Line().Transform(tr).Seg()
	case QuadKind:
		return c.Quad().Transform(tr).Seg()
	case CubicKind:
		return c.Cubic().Transform(tr).Seg()
	default:
		return c
	}
}

// Reverse returns a new Command describing the same curve as this one, but
// with the points reversed.
func (c Command) Reverse() Command {
	switch c.Kind {
	case LineKind:
		c.P0, c.P1 = c.P1, c.P0
		return c
	case QuadKind:
		c.P0, c.P2 = c.P2, c.P0
		return c
	case CubicKind:
		c.P0, c.P1, c.P2, c.P3 = c.P3, c.P2, c.P1, c.P0
		return c
	default:
		return Command{}
	}
}

func (c Command) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

func (c Command) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

// maxSamples bounds the number of points a FixedLength segmentation produces
// for a single command.
const maxSamples = 1 << 16

// Samples returns the command's points under seg, starting with the command's
// start point and ending with its end point. Lines always yield their two
// endpoints. The sequence can be iterated repeatedly.
//
// seg must be valid; an invalid segmentation yields only the endpoints.
func (c Command) Samples(seg Segmentation) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		if c.Kind == 0 {
			return
		}
		if !yield(c.P0) {
			return
		}
		if c.Kind == LineKind {
			yield(c.P1)
			return
		}
		switch seg.Kind {
		case FixedCount:
			c.uniform(max(seg.Steps, 1), yield)
		case FixedLength:
			n := 1
			if seg.StepLength > 0 {
				n = max(1, int(math.Ceil(c.Length()/seg.StepLength)))
			}
			if n > maxSamples {
				Logger().Debug("fixed-length segmentation clamped", "command", c.Kind, "steps", n, "limit", maxSamples)
				n = maxSamples
			}
			c.equalLength(n, yield)
		case Adaptive:
			if seg.AngleTolerance <= 0 {
				yield(c.End())
				return
			}
			var limited bool
			if c.adaptive(seg, 0, &limited, yield) && limited {
				Logger().Debug("adaptive segmentation reached depth limit",
					"command", c.Kind, "max_depth", seg.maxDepth())
			}
		default:
			yield(c.End())
		}
	}
}

func (c Command) uniform(n int, yield func(Point) bool) {
	for i := 1; i < n; i++ {
		if !yield(c.Eval(float64(i) / float64(n))) {
			return
		}
	}
	yield(c.End())
}

// equalLength emits the points dividing c into n pieces of equal length.
func (c Command) equalLength(n int, yield func(Point) bool) {
	total := c.Length()
	accuracy := total * arclenAccuracy
	var t float64
	for i := 1; i < n; i++ {
		t = c.solveArclen(t, total*float64(i)/float64(n), total, accuracy)
		if !yield(c.Eval(t)) {
			return
		}
	}
	yield(c.End())
}

// adaptive emits the end points of c's flat pieces. It returns false if yield
// asked to stop.
func (c Command) adaptive(seg Segmentation, depth int, limited *bool, yield func(Point) bool) bool {
	pts, n := c.controlPoints()
	if seg.flatEnough(pts[:n]) {
		return yield(c.End())
	}
	if depth >= seg.maxDepth() {
		*limited = true
		return yield(c.End())
	}
	a, b := c.split(0.5)
	return a.adaptive(seg, depth+1, limited, yield) &&
		b.adaptive(seg, depth+1, limited, yield)
}

// Sample returns the command's points under seg. See [Command.Samples].
func (c Command) Sample(seg Segmentation) ([]Point, error) {
	if err := seg.Validate(); err != nil {
		return nil, err
	}
	var out []Point
	for p := range c.Samples(seg) {
		out = append(out, p)
	}
	return out, nil
}

// CurvePoints is an alias of [Command.Sample].
func (c Command) CurvePoints(seg Segmentation) ([]Point, error) {
	return c.Sample(seg)
}

// Points returns the command's start and end points.
func (c Command) Points() []Point {
	if c.Kind == 0 {
		return nil
	}
	return []Point{c.Start(), c.End()}
}

// Bounds returns the command's bounding box as a 4-point contour.
func (c Command) Bounds() (Contour, error) {
	if c.Kind == 0 {
		return Contour{}, fmt.Errorf("bounds of zero command: %w", ErrEmptyGeometry)
	}
	return c.BoundingBox().Contour(), nil
}

// ToPolygon flattens the command into a single contour.
func (c Command) ToPolygon(seg Segmentation) (Polygon, error) {
	pts, err := c.Sample(seg)
	if err != nil {
		return Polygon{}, err
	}
	if len(pts) == 0 {
		return Polygon{}, nil
	}
	return Polygon{Contours: []Contour{pts}}, nil
}

func (c Command) ToMesh(seg Segmentation) (Mesh, error) {
	p, err := c.ToPolygon(seg)
	if err != nil {
		return Mesh{}, err
	}
	return Tesselate(p)
}
