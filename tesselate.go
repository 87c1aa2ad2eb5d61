package outline

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Tesselate triangulates p into a mesh carrying p's style.
//
// Contours are interpreted with the even-odd rule and grouped into outer
// contours and the holes they directly enclose. Each group is triangulated by
// ear clipping after its holes have been bridged into the outer contour, and
// the triangles are chained into strips. Self-intersecting contours produce a
// best-effort mesh. An empty polygon produces an empty mesh.
func Tesselate(p Polygon) (Mesh, error) {
	for _, c := range p.Contours {
		for _, pt := range c {
			if pt.IsNaN() || pt.IsInf() {
				return Mesh{}, fmt.Errorf("tesselate: non-finite point %s: %w", pt, ErrInvalidParameter)
			}
		}
	}

	out := Mesh{Style: p.Style}
	eps := tolerance(p)
	cs := normalize(p, eps)
	if len(cs) == 0 {
		return out, nil
	}
	var tris [][3]Point
	for _, g := range groupContours(cs, eps) {
		ring := g.outer
		for _, h := range g.holes {
			ring = bridgeHole(ring, h)
		}
		tris = earClip(ring, tris)
	}
	out.Strips = stripify(tris)
	return out, nil
}

type contourGroup struct {
	outer Contour
	holes []Contour
}

// groupContours assigns every hole of the normalized contours cs to the
// smallest outer contour enclosing it. Holes are sorted by decreasing
// rightmost x, the order in which they must be bridged.
func groupContours(cs []Contour, eps float64) []contourGroup {
	var groups []contourGroup
	group := make(map[int]int)
	for i, c := range cs {
		if c.SignedArea() > 0 {
			group[i] = len(groups)
			groups = append(groups, contourGroup{outer: c})
		}
	}
	for _, h := range cs {
		if h.SignedArea() > 0 {
			continue
		}
		owner := -1
		bestArea := math.Inf(1)
		for j, o := range cs {
			if a := o.SignedArea(); a > 0 && a < bestArea && encloses(o, h, eps) {
				owner, bestArea = j, a
			}
		}
		if owner < 0 {
			Logger().Debug("tesselation dropped hole without enclosing contour", "points", len(h))
			continue
		}
		g := &groups[group[owner]]
		g.holes = append(g.holes, h)
	}
	for i := range groups {
		slices.SortFunc(groups[i].holes, func(a, b Contour) int {
			return cmp.Compare(maxX(b), maxX(a))
		})
	}
	return groups
}

func maxX(c Contour) float64 {
	m := math.Inf(-1)
	for _, p := range c {
		m = max(m, p.X)
	}
	return m
}

// bridgeHole merges hole into ring by connecting the hole's rightmost vertex
// to a ring vertex visible from it, producing a single ring that traverses the
// bridge in both directions.
func bridgeHole(ring, hole Contour) Contour {
	mi := 0
	for i, p := range hole {
		if p.X > hole[mi].X {
			mi = i
		}
	}
	bi := findBridge(ring, hole[mi])
	if bi < 0 {
		Logger().Debug("tesselation found no bridge for hole", "points", len(hole))
		return ring
	}
	out := make(Contour, 0, len(ring)+len(hole)+2)
	out = append(out, ring[:bi+1]...)
	for k := range len(hole) + 1 {
		out = append(out, hole[(mi+k)%len(hole)])
	}
	return append(out, ring[bi:]...)
}

// findBridge returns the index of a vertex of ring that is visible from m,
// which lies inside ring, or -1.
func findBridge(ring Contour, m Point) int {
	qx := math.Inf(1)
	bi := -1
	n := len(ring)
	for i, a := range ring {
		b := ring[(i+1)%n]
		if a.Y == b.Y || m.Y < min(a.Y, b.Y) || m.Y > max(a.Y, b.Y) {
			continue
		}
		x := a.X + (m.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x >= m.X && x < qx {
			qx = x
			if a.X > b.X {
				bi = i
			} else {
				bi = (i + 1) % n
			}
		}
	}
	if bi < 0 {
		return -1
	}

	// Vertices inside the triangle formed by m, the ray's hit and the
	// candidate may block the view; the one closest in angle to the ray
	// can't be blocked.
	p := ring[bi]
	q := Pt(qx, m.Y)
	best := bi
	tanMin := math.Inf(1)
	for i, v := range ring {
		if v.X < m.X || v.X > p.X || !pointInTriangle(m, q, p, v) {
			continue
		}
		tan := math.Inf(1)
		if v.X != m.X {
			tan = math.Abs(m.Y-v.Y) / (v.X - m.X)
		}
		if tan < tanMin || (tan == tanMin && v.X > ring[best].X) {
			best, tanMin = i, tan
		}
	}
	return best
}

// pointInTriangle reports whether p lies inside or on the triangle abc, of
// either orientation.
func pointInTriangle(a, b, c, p Point) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

// earClip triangulates the counter-clockwise ring and appends the triangles to
// tris. When no ear can be found, as happens for self-intersecting rings, the
// most convex vertex is clipped regardless.
func earClip(ring Contour, tris [][3]Point) [][3]Point {
	n := len(ring)
	if n < 3 {
		return tris
	}
	prev := make([]int, n)
	next := make([]int, n)
	for i := range n {
		prev[i] = (i + n - 1) % n
		next[i] = (i + 1) % n
	}
	remove := func(i int) {
		next[prev[i]] = next[i]
		prev[next[i]] = prev[i]
	}
	convexity := func(i int) float64 {
		a, b, c := ring[prev[i]], ring[i], ring[next[i]]
		return b.Sub(a).Cross(c.Sub(b))
	}
	isEar := func(i int) bool {
		if convexity(i) <= 0 {
			return false
		}
		a, b, c := ring[prev[i]], ring[i], ring[next[i]]
		for j := next[next[i]]; j != prev[i]; j = next[j] {
			v := ring[j]
			if v == a || v == b || v == c {
				continue
			}
			if pointInTriangle(a, b, c, v) {
				return false
			}
		}
		return true
	}

	remaining := n
	forced := 0
	i := 0
	for stall := 0; remaining > 3; {
		if isEar(i) {
			tris = append(tris, [3]Point{ring[prev[i]], ring[i], ring[next[i]]})
			remove(i)
			remaining--
			i = next[i]
			stall = 0
			continue
		}
		i = next[i]
		stall++
		if stall < remaining {
			continue
		}

		forced++
		best := i
		for j, k := next[i], 1; k < remaining; j, k = next[j], k+1 {
			if convexity(j) > convexity(best) {
				best = j
			}
		}
		if convexity(best) > 0 {
			tris = append(tris, [3]Point{ring[prev[best]], ring[best], ring[next[best]]})
		}
		remove(best)
		remaining--
		i = next[best]
		stall = 0
	}
	if last := [3]Point{ring[prev[i]], ring[i], ring[next[i]]}; triangleArea(last) > 0 {
		tris = append(tris, last)
	}
	if forced > 0 {
		Logger().Debug("ear clipping stalled, clipped non-ears", "vertices", n, "forced", forced)
	}
	return tris
}

// stripify greedily chains triangles sharing an edge into strips.
func stripify(tris [][3]Point) []Strip {
	type edgeKey [2]Point
	key := func(p, q Point) edgeKey {
		if q.X < p.X || (q.X == p.X && q.Y < p.Y) {
			p, q = q, p
		}
		return edgeKey{p, q}
	}
	adj := make(map[edgeKey][]int)
	for i, t := range tris {
		for k := range 3 {
			adj[key(t[k], t[(k+1)%3])] = append(adj[key(t[k], t[(k+1)%3])], i)
		}
	}
	used := make([]bool, len(tris))
	// extend finds an unused triangle on the edge pq and returns its third
	// vertex.
	extend := func(p, q Point) (int, Point, bool) {
		for _, j := range adj[key(p, q)] {
			if used[j] {
				continue
			}
			for _, v := range tris[j] {
				if v != p && v != q {
					return j, v, true
				}
			}
		}
		return -1, Point{}, false
	}

	var out []Strip
	for i, t := range tris {
		if used[i] {
			continue
		}
		used[i] = true
		s := Strip{t[0], t[1], t[2]}
		for r := range 3 {
			if _, _, ok := extend(t[(r+1)%3], t[(r+2)%3]); ok {
				s = Strip{t[r], t[(r+1)%3], t[(r+2)%3]}
				break
			}
		}
		for {
			j, v, ok := extend(s[len(s)-2], s[len(s)-1])
			if !ok {
				break
			}
			used[j] = true
			s = append(s, v)
		}
		out = append(out, s)
	}
	return out
}
