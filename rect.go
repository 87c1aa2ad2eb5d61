package outline

// Rect is an axis-aligned box spanning X0..X1 horizontally and Y0..Y1
// vertically. Geometry reports its bounds as 4-point [Contour] values; Rect is
// the arithmetic form behind them and the target box of
// [Shape.CenteringTransform].
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns the box with opposite corners p0 and p1.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// NewRectFromOrigin returns the box spanning width and height from origin.
// Negative sizes extend towards negative infinity.
func NewRectFromOrigin(origin Point, width, height float64) Rect {
	return NewRectFromPoints(origin, origin.Add(Vec(width, height)))
}

// rectFromPoints returns the smallest box enclosing pts and false if pts is
// empty.
func rectFromPoints(pts []Point) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r := Rect{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, pt := range pts[1:] {
		r = r.UnionPoint(pt)
	}
	return r, true
}

// Abs orders the corners of r so that X0 <= X1 and Y0 <= Y1.
func (r Rect) Abs() Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Width returns X1 - X0, which is negative for unordered corners.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y1 - Y0, which is negative for unordered corners.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

func (r Rect) Area() float64 { return r.Width() * r.Height() }

func (r Rect) Center() Point {
	return Pt(r.X0, r.Y0).Midpoint(Pt(r.X1, r.Y1))
}

// Union returns the smallest box enclosing both r and o. Both must have
// ordered corners.
func (r Rect) Union(o Rect) Rect {
	return r.UnionPoint(Pt(o.X0, o.Y0)).UnionPoint(Pt(o.X1, o.Y1))
}

// UnionPoint grows r to include pt.
func (r Rect) UnionPoint(pt Point) Rect {
	r.X0 = min(r.X0, pt.X)
	r.Y0 = min(r.Y0, pt.Y)
	r.X1 = max(r.X1, pt.X)
	r.Y1 = max(r.Y1, pt.Y)
	return r
}

// Overlaps reports whether r and o have any point in common. Touching edges
// count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X0 <= o.X1 && o.X0 <= r.X1 && r.Y0 <= o.Y1 && o.Y0 <= r.Y1
}

// Inflate moves every edge of r outwards, by dx horizontally and dy
// vertically.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{r.X0 - dx, r.Y0 - dy, r.X1 + dx, r.Y1 + dy}
}

// Contour returns the box as a counter-clockwise 4-point contour starting at
// the minimum corner.
func (r Rect) Contour() Contour {
	r = r.Abs()
	return Contour{
		Pt(r.X0, r.Y0),
		Pt(r.X1, r.Y0),
		Pt(r.X1, r.Y1),
		Pt(r.X0, r.Y1),
	}
}
