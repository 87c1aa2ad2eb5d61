package outline

import (
	"math"
	"slices"
)

// Epsilon is the tolerance within which boolean operations and tesselation
// treat points as coincident. It is relative to the magnitude of the
// coordinates involved, with a floor of 1.
const Epsilon = 1e-9

type booleanOp int

const (
	opUnion booleanOp = iota
	opIntersection
	opDifference
	opXor
)

func (op booleanOp) String() string {
	switch op {
	case opUnion:
		return "union"
	case opIntersection:
		return "intersection"
	case opDifference:
		return "difference"
	case opXor:
		return "xor"
	default:
		return "unknown"
	}
}

// Union returns the area covered by a or b.
//
// Like all boolean operations it interprets both operands with the even-odd
// rule, winds the resulting outer contours positively and holes negatively,
// and carries a's style. Operands with self-intersecting contours produce a
// best-effort result.
func Union(a, b Polygon) Polygon { return combine(a, b, opUnion) }

// Intersection returns the area covered by both a and b.
func Intersection(a, b Polygon) Polygon { return combine(a, b, opIntersection) }

// Difference returns the area covered by a but not by b.
func Difference(a, b Polygon) Polygon { return combine(a, b, opDifference) }

// Xor returns the area covered by exactly one of a and b.
func Xor(a, b Polygon) Polygon { return combine(a, b, opXor) }

// tolerance returns the absolute epsilon for operations on ps.
func tolerance(ps ...Polygon) float64 {
	m := 1.0
	for _, p := range ps {
		for _, c := range p.Contours {
			for _, pt := range c {
				m = max(m, math.Abs(pt.X), math.Abs(pt.Y))
			}
		}
	}
	return Epsilon * m
}

// normalize returns the usable contours of p, oriented so that contours
// enclosed by an even number of other contours are positive and the others
// negative. Contours with fewer than three distinct points or no area are
// dropped.
func normalize(p Polygon, eps float64) []Contour {
	var cs []Contour
	for _, c := range p.Contours {
		c = c.clean(eps)
		if c == nil || math.Abs(c.SignedArea()) <= eps*eps {
			continue
		}
		cs = append(cs, c)
	}
	for i, c := range cs {
		depth := 0
		for j, o := range cs {
			if i != j && encloses(o, c, eps) {
				depth++
			}
		}
		if (c.SignedArea() > 0) != (depth%2 == 0) {
			cs[i] = c.Reverse()
		}
	}
	return cs
}

// encloses reports whether o encloses c, assuming the two don't cross. The
// first vertex of c off o's boundary decides. If c lies entirely on o's
// boundary, c's interior point decides, and of two congruent contours
// neither encloses the other.
func encloses(o, c Contour, eps float64) bool {
	for _, p := range c {
		if o.distanceSquared(p) > eps*eps {
			return o.Contains(p)
		}
	}
	return math.Abs(o.SignedArea()) > math.Abs(c.SignedArea())+eps && o.Contains(c.interiorPoint())
}

func containsEvenOdd(cs []Contour, pt Point) bool {
	var n int
	for _, c := range cs {
		n += c.crossings(pt)
	}
	return n%2 == 1
}

// vertexTable assigns ids to points, merging points within eps of each other.
type vertexTable struct {
	eps   float64
	cells map[[2]int64][]int
	pts   []Point
}

func newVertexTable(eps float64) *vertexTable {
	return &vertexTable{eps: eps, cells: make(map[[2]int64][]int)}
}

func (vt *vertexTable) cell(p Point) [2]int64 {
	return [2]int64{int64(math.Floor(p.X / vt.eps)), int64(math.Floor(p.Y / vt.eps))}
}

func (vt *vertexTable) id(p Point) int {
	c := vt.cell(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, i := range vt.cells[[2]int64{c[0] + dx, c[1] + dy}] {
				if vt.pts[i].DistanceSquared(p) <= vt.eps*vt.eps {
					return i
				}
			}
		}
	}
	i := len(vt.pts)
	vt.pts = append(vt.pts, p)
	vt.cells[c] = append(vt.cells[c], i)
	return i
}

// cut is a point at which an edge is to be split.
type cut struct {
	t  float64
	pt Point
}

type edgeClass int

const (
	outside edgeClass = iota
	inside
	sharedSame
	sharedOpposite
)

// subEdge is a piece of an operand's edge between two vertex ids.
type subEdge struct {
	from, to int
	class    edgeClass
}

func edgesOf(cs []Contour) []Line {
	var out []Line
	for _, c := range cs {
		for i := range c {
			out = append(out, c.edge(i))
		}
	}
	return out
}

// findCuts computes the points at which the edges of ea and eb have to be
// split so that no two resulting edges cross, and every edge endpoint lying
// on another edge becomes a vertex of it.
func findCuts(ea, eb []Line, eps float64) (cutsA, cutsB [][]cut) {
	cutsA = make([][]cut, len(ea))
	cutsB = make([][]cut, len(eb))
	for i, e := range ea {
		be := e.BoundingBox().Inflate(eps, eps)
		for j, f := range eb {
			if !be.Overlaps(f.BoundingBox()) {
				continue
			}
			if li, ok := e.IntersectLine(f); ok {
				pt := e.Eval(li.T)
				cutsA[i] = append(cutsA[i], cut{li.T, pt})
				cutsB[j] = append(cutsB[j], cut{li.U, pt})
			}
			// Touching and collinear overlapping edges don't intersect
			// properly; split them at each other's endpoints.
			for _, q := range [2]Point{f.P0, f.P1} {
				if d, t := e.Nearest(q); d <= eps*eps {
					cutsA[i] = append(cutsA[i], cut{t, q})
				}
			}
			for _, q := range [2]Point{e.P0, e.P1} {
				if d, u := f.Nearest(q); d <= eps*eps {
					cutsB[j] = append(cutsB[j], cut{u, q})
				}
			}
		}
	}
	return cutsA, cutsB
}

func subdivide(edges []Line, cuts [][]cut, vt *vertexTable) []subEdge {
	var out []subEdge
	for i, e := range edges {
		cs := cuts[i]
		slices.SortFunc(cs, func(a, b cut) int {
			switch {
			case a.t < b.t:
				return -1
			case a.t > b.t:
				return 1
			default:
				return 0
			}
		})
		prev := vt.id(e.P0)
		for _, c := range cs {
			id := vt.id(c.pt)
			if id != prev {
				out = append(out, subEdge{from: prev, to: id})
				prev = id
			}
		}
		if id := vt.id(e.P1); id != prev {
			out = append(out, subEdge{from: prev, to: id})
		}
	}
	return out
}

// classify determines the position of each edge relative to the operand
// consisting of the contours other and the sub-edges otherEdges. It returns
// the number of edges whose position was ambiguous.
func classify(edges []subEdge, otherEdges map[[2]int]bool, other []Contour, vt *vertexTable) int {
	var ambiguous int
	for i := range edges {
		e := &edges[i]
		switch {
		case otherEdges[[2]int{e.from, e.to}]:
			e.class = sharedSame
		case otherEdges[[2]int{e.to, e.from}]:
			e.class = sharedOpposite
		default:
			mid := vt.pts[e.from].Midpoint(vt.pts[e.to])
			near := false
			for _, c := range other {
				if c.distanceSquared(mid) <= vt.eps*vt.eps {
					near = true
					break
				}
			}
			switch {
			case near:
				e.class = inside
				ambiguous++
			case containsEvenOdd(other, mid):
				e.class = inside
			default:
				e.class = outside
			}
		}
	}
	return ambiguous
}

func edgeSet(edges []subEdge) map[[2]int]bool {
	m := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		m[[2]int{e.from, e.to}] = true
	}
	return m
}

func combine(a, b Polygon, op booleanOp) Polygon {
	eps := tolerance(a, b)
	ca := normalize(a, eps)
	cb := normalize(b, eps)
	if len(ca) == 0 || len(cb) == 0 {
		switch op {
		case opIntersection:
			return Polygon{Style: a.Style}
		case opDifference:
			return Polygon{Contours: ca, Style: a.Style}
		default:
			return Polygon{Contours: append(ca, cb...), Style: a.Style}
		}
	}

	ea := edgesOf(ca)
	eb := edgesOf(cb)
	cutsA, cutsB := findCuts(ea, eb, eps)
	vt := newVertexTable(eps)
	subA := subdivide(ea, cutsA, vt)
	subB := subdivide(eb, cutsB, vt)
	ambiguous := classify(subA, edgeSet(subB), cb, vt)
	ambiguous += classify(subB, edgeSet(subA), ca, vt)
	if ambiguous > 0 {
		Logger().Debug("boolean operation treated boundary edges as inside",
			"op", op, "edges", ambiguous)
	}

	var sel [][2]int
	pick := func(edges []subEdge, class edgeClass, reverse bool) {
		for _, e := range edges {
			if e.class != class {
				continue
			}
			if reverse {
				sel = append(sel, [2]int{e.to, e.from})
			} else {
				sel = append(sel, [2]int{e.from, e.to})
			}
		}
	}
	switch op {
	case opUnion:
		pick(subA, outside, false)
		pick(subB, outside, false)
		pick(subA, sharedSame, false)
	case opIntersection:
		pick(subA, inside, false)
		pick(subB, inside, false)
		pick(subA, sharedSame, false)
	case opDifference:
		pick(subA, outside, false)
		pick(subB, inside, true)
		pick(subA, sharedOpposite, false)
	case opXor:
		pick(subA, outside, false)
		pick(subB, outside, false)
		pick(subA, inside, true)
		pick(subB, inside, true)
	}

	contours, open := stitch(sel, vt.pts)
	if open > 0 {
		Logger().Debug("boolean operation dropped open chains", "op", op, "chains", open)
	}
	out := Polygon{Style: a.Style}
	for _, c := range contours {
		c = c.clean(eps)
		if c == nil || math.Abs(c.SignedArea()) <= eps*eps {
			continue
		}
		out.Contours = append(out.Contours, c)
	}
	return out
}

// stitch links directed edges end to start into closed contours. Where a
// vertex has several unused outgoing edges, the one turning furthest left is
// followed, which separates loops that merely touch. It returns the contours
// and the number of chains that could not be closed.
func stitch(edges [][2]int, pts []Point) ([]Contour, int) {
	out := make(map[int][]int)
	for i, e := range edges {
		out[e[0]] = append(out[e[0]], i)
	}
	used := make([]bool, len(edges))
	var res []Contour
	var open int
	for i, e := range edges {
		if used[i] {
			continue
		}
		used[i] = true
		start := e[0]
		chain := []int{start}
		cur := e[1]
		dir := pts[cur].Sub(pts[start])
		closed := false
		for range len(edges) + 1 {
			if cur == start {
				closed = true
				break
			}
			next := -1
			var best float64
			for _, j := range out[cur] {
				if used[j] {
					continue
				}
				d := pts[edges[j][1]].Sub(pts[cur])
				turn := math.Atan2(dir.Cross(d), dir.Dot(d))
				if next == -1 || turn > best {
					next, best = j, turn
				}
			}
			if next == -1 {
				break
			}
			used[next] = true
			chain = append(chain, cur)
			dir = pts[edges[next][1]].Sub(pts[cur])
			cur = edges[next][1]
		}
		if !closed {
			open++
			continue
		}
		c := make(Contour, len(chain))
		for k, id := range chain {
			c[k] = pts[id]
		}
		res = append(res, c)
	}
	return res, open
}
