package outline

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestShapeRectangle(t *testing.T) {
	var s Shape
	s.MoveTo(Pt(0, 0))
	s.LineTo(Pt(10, 0))
	s.LineTo(Pt(10, 10))
	s.LineTo(Pt(0, 10))
	s.Close()

	for _, seg := range []Segmentation{
		SegmentFixedCount(1),
		SegmentFixedCount(50),
		SegmentFixedLength(0.01),
		SegmentAdaptive(0.001),
	} {
		p, err := s.ToPolygon(seg)
		if err != nil {
			t.Fatal(err)
		}
		want := []Contour{{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}}
		diff(t, want, p.Contours)
		diff(t, 100.0, p.Area())
	}

	a, b, err := s.Split(0.5)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 20.0, a.CurveLength())
	diff(t, 20.0, b.CurveLength())

	diff(t, &s, NewRectangle(0, 0, 10, 10))
}

func TestShapePen(t *testing.T) {
	var s Shape
	// Drawing without MoveTo starts at the origin.
	s.LineTo(Pt(5, 0))
	diff(t, 1, len(s.Subpaths))
	diff(t, Pt(0, 0), s.Subpaths[0].Start)

	s.LineTo(Pt(5, 5))
	s.Close()
	// Drawing after Close starts a new subpath where the closed one
	// started.
	s.LineTo(Pt(-5, 0))
	diff(t, 2, len(s.Subpaths))
	diff(t, Pt(0, 0), s.Subpaths[1].Start)
	diff(t, Pt(-5, 0), s.Subpaths[1].Cursor())

	// Consecutive MoveTo calls don't leave empty subpaths behind.
	s.MoveTo(Pt(1, 1))
	s.MoveTo(Pt(2, 2))
	diff(t, 3, len(s.Subpaths))
	diff(t, Pt(2, 2), s.Subpaths[2].Start)

	s.QuadTo(Pt(3, 3), Pt(4, 2))
	s.CubicTo(Pt(5, 1), Pt(6, 1), Pt(7, 2))
	diff(t, []Point{Pt(2, 2), Pt(4, 2), Pt(7, 2)}, s.Subpaths[2].Points())
}

func TestShapeSplitAll(t *testing.T) {
	s := NewRectangle(0, 0, 10, 10)
	s.AppendShape(NewRectangle(20, 0, 10, 10))
	s.Style = Style{Stroke: true, StrokeWidth: 2}

	a, b, err := s.SplitAll(0.5)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, s.Style, a.Style)
	diff(t, s.Style, b.Style)
	if len(a.Subpaths) != 2 || len(b.Subpaths) != 2 {
		t.Fatalf("got %d and %d subpaths, want 2 and 2", len(a.Subpaths), len(b.Subpaths))
	}
	diff(t, []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}, a.Subpaths[0].Points())
	diff(t, []Point{Pt(20, 0), Pt(30, 0), Pt(30, 10)}, a.Subpaths[1].Points())
	diff(t, []Point{Pt(10, 10), Pt(0, 10), Pt(0, 0)}, b.Subpaths[0].Points())
	diff(t, []Point{Pt(30, 10), Pt(20, 10), Pt(20, 0)}, b.Subpaths[1].Points())
	for i := range 2 {
		diff(t, 20.0, a.Subpaths[i].CurveLength(), cmpopts.EquateApprox(0, 1e-12))
		diff(t, 20.0, b.Subpaths[i].CurveLength(), cmpopts.EquateApprox(0, 1e-12))
	}

	a, b, err = s.SplitAll(0)
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsEmpty() {
		t.Errorf("SplitAll(0): first shape has %d subpaths", len(a.Subpaths))
	}
	diff(t, s, b)

	if _, _, err := s.SplitAll(2); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
	if _, _, err := new(Shape).SplitAll(0.5); !errors.Is(err, ErrEmptyGeometry) {
		t.Errorf("got %v, want ErrEmptyGeometry", err)
	}
}

func TestShapeSplitEnds(t *testing.T) {
	s := NewRectangle(0, 0, 10, 10)
	s.AppendShape(NewCircle(Pt(30, 30), 5))
	s.Style = Style{Fill: true, FillColor: color.RGBA{R: 255, A: 255}}

	a, b, err := s.Split(0)
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsEmpty() {
		t.Errorf("Split(0): first shape has %d subpaths", len(a.Subpaths))
	}
	diff(t, s, b)
	diff(t, s.Style, a.Style)

	a, b, err = s.Split(1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, s, a)
	if !b.IsEmpty() {
		t.Errorf("Split(1): second shape has %d subpaths", len(b.Subpaths))
	}
	diff(t, s.Style, b.Style)

	if _, _, err := s.Split(-1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
	if _, _, err := new(Shape).Split(0.5); !errors.Is(err, ErrEmptyGeometry) {
		t.Errorf("got %v, want ErrEmptyGeometry", err)
	}
}

func TestShapeSplitConservesLength(t *testing.T) {
	s := NewRectangle(0, 0, 10, 10)
	s.AppendShape(NewCircle(Pt(30, 30), 5))
	arc := NewArc(Pt(0, 50), Vec(20, 10), 0, math.Pi)
	s.AppendShape(arc)
	l := s.CurveLength()

	for i := range 21 {
		ts := float64(i) / 20
		a, b, err := s.Split(ts)
		if err != nil {
			t.Fatal(err)
		}
		if got := a.CurveLength() + b.CurveLength(); math.Abs(got-l) > 1e-3*l {
			t.Errorf("Split(%g): pieces have length %g, want %g", ts, got, l)
		}
		diff(t, len(s.Subpaths), countSubpaths(a, b))
	}
}

// countSubpaths counts the subpaths of a and b, counting a subpath split
// between them once.
func countSubpaths(a, b *Shape) int {
	n := len(a.Subpaths) + len(b.Subpaths)
	if len(a.Subpaths) > 0 && len(b.Subpaths) > 0 {
		last := a.Subpaths[len(a.Subpaths)-1]
		if !last.Closed && !last.IsEmpty() && last.Cursor() == b.Subpaths[0].Start {
			n--
		}
	}
	return n
}

func TestShapeToPolygonIdempotent(t *testing.T) {
	s := NewRing(Pt(0, 0), 10, 5)
	s.AppendShape(NewArc(Pt(0, 0), Vec(20, 20), 0, 3))
	for _, seg := range []Segmentation{SegmentFixedCount(7), SegmentFixedLength(0.5), DefaultSegmentation} {
		p1, err := s.ToPolygon(seg)
		if err != nil {
			t.Fatal(err)
		}
		p2, err := s.ToPolygon(seg)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, p1, p2)
	}
}

func TestShapeToPolygonConcurrent(t *testing.T) {
	var s Shape
	for i := range 2 * parallelThreshold {
		s.AppendShape(NewCircle(Pt(float64(i)*10, 0), 4))
	}
	p, err := s.ToPolygon(SegmentFixedCount(4))
	if err != nil {
		t.Fatal(err)
	}
	diff(t, len(s.Subpaths), len(p.Contours))
	for i, c := range p.Contours {
		// Contours keep subpath order.
		diff(t, Pt(float64(i)*10+4, 0), c[0])
		diff(t, 16, len(c))
	}
}

func TestShapeStyle(t *testing.T) {
	s := NewRectangle(0, 0, 1, 1)
	s.Style = Style{Stroke: true, StrokeColor: color.RGBA{B: 255, A: 255}, StrokeWidth: 2}
	p, err := s.ToPolygon(DefaultSegmentation)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, s.Style, p.Style)
	m, err := s.ToMesh(DefaultSegmentation)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, s.Style, m.Style)
	diff(t, s.Style, s.Transform(Rotate(1)).Style)
	diff(t, s.Style, p.ToShape().Style)
}

func TestShapeContains(t *testing.T) {
	s := NewRing(Pt(0, 0), 10, 5)
	for _, tt := range []struct {
		pt   Point
		want bool
	}{
		{Pt(0, 0), false},
		{Pt(7, 0), true},
		{Pt(0, -8), true},
		{Pt(11, 0), false},
	} {
		got, err := s.Contains(tt.pt, DefaultSegmentation)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Contains(%s) = %t, want %t", tt.pt, got, tt.want)
		}
	}
}

func TestShapeAt(t *testing.T) {
	s := NewRectangle(0, 0, 10, 10)
	s.AppendShape(NewRectangle(100, 0, 10, 10))

	p, err := s.PointAt(0.25)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(10, 10), p)

	p, err = s.PointAt(0.5 + 1.0/16)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(105, 0), p)

	tan, err := s.TangentAt(0.75 + 1.0/16)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Vec(-10, 0), tan)

	if err := s.InsertHandle(0.5 + 1.0/16); err != nil {
		t.Fatal(err)
	}
	diff(t, 5, len(s.Subpaths[1].Commands))
	diff(t, 4, len(s.Subpaths[0].Commands))

	if _, err := new(Shape).PointAt(0); !errors.Is(err, ErrEmptyGeometry) {
		t.Errorf("got %v, want ErrEmptyGeometry", err)
	}
}

func TestShapeBounds(t *testing.T) {
	s := NewRectangle(0, 0, 10, 10)
	s.AppendShape(NewCircle(Pt(30, 30), 5))
	bounds, err := s.Bounds()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Contour{Pt(0, 0), Pt(35, 0), Pt(35, 35), Pt(0, 35)}, bounds, cmpopts.EquateApprox(0, 1e-9))
	if a := bounds.SignedArea(); a <= 0 {
		t.Errorf("bounds wind clockwise, signed area %g", a)
	}

	c, err := s.Center()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(17.5, 17.5), c, cmpopts.EquateApprox(0, 1e-9))

	if _, err := new(Shape).Bounds(); !errors.Is(err, ErrEmptyGeometry) {
		t.Errorf("got %v, want ErrEmptyGeometry", err)
	}
}

func TestShapeCentroid(t *testing.T) {
	// The largest subpath determines the centroid.
	s := NewRectangle(100, 100, 1, 1)
	s.AppendShape(NewRectangle(0, 0, 10, 10))
	c, err := s.Centroid()
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(5, 5), c, cmpopts.EquateApprox(0, 1e-9))

	if _, err := new(Shape).Centroid(); !errors.Is(err, ErrEmptyGeometry) {
		t.Errorf("got %v, want ErrEmptyGeometry", err)
	}
}

func TestShapeCenteringTransform(t *testing.T) {
	s := NewRectangle(10, 10, 20, 10)
	target := Rect{-50, -50, 50, 50}

	tr, err := s.CenteringTransform(target, 10, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	r, _ := s.Transform(tr).BoundingBox()
	diff(t, Rect{-40, -20, 40, 20}, r, cmpopts.EquateApprox(0, 1e-9))

	// No damping leaves the shape alone.
	tr, err = s.CenteringTransform(target, 10, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Identity, tr)

	// Half damping goes half way.
	tr, err = s.CenteringTransform(target, 10, 0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	r, _ = s.Transform(tr).BoundingBox()
	diff(t, 20*2.5, r.Width(), cmpopts.EquateApprox(0, 1e-9))

	for _, d := range []float64{-0.1, 1.1, math.NaN()} {
		if _, err := s.CenteringTransform(target, 10, d, 1); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("scale damping %g: got %v, want ErrInvalidParameter", d, err)
		}
		if _, err := s.CenteringTransform(target, 10, 1, d); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("translate damping %g: got %v, want ErrInvalidParameter", d, err)
		}
	}
	if _, err := s.CenteringTransform(target, 50, 1, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
	if _, err := new(Shape).CenteringTransform(target, 0, 1, 1); !errors.Is(err, ErrEmptyGeometry) {
		t.Errorf("got %v, want ErrEmptyGeometry", err)
	}
}

func TestShapeCenterIn(t *testing.T) {
	s := NewRectangle(10, 10, 20, 10)
	target := Rect{-50, -50, 50, 50}
	if err := s.CenterIn(target, 10, 1, 1); err != nil {
		t.Fatal(err)
	}
	r, _ := s.BoundingBox()
	diff(t, Rect{-40, -20, 40, 20}, r, cmpopts.EquateApprox(0, 1e-9))

	// Failures leave the shape untouched.
	before := s.Clone()
	if err := s.CenterIn(target, 10, 2, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
	diff(t, before, s)
	if err := new(Shape).CenterIn(target, 0, 1, 1); !errors.Is(err, ErrEmptyGeometry) {
		t.Errorf("got %v, want ErrEmptyGeometry", err)
	}
}

func TestShapeReverse(t *testing.T) {
	s := NewRectangle(0, 0, 10, 10)
	diff(t, -100.0, s.Reverse().SignedArea())
	diff(t, s, s.Reverse().Reverse())
}

func TestShapeClone(t *testing.T) {
	s := NewRectangle(0, 0, 10, 10)
	c := s.Clone()
	c.ApplyTransform(Translate(Vec(1, 1)))
	diff(t, Pt(0, 0), s.Subpaths[0].Start)
	diff(t, Pt(1, 1), c.Subpaths[0].Start)
}
