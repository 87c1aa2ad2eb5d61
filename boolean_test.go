package outline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestBooleanIdentities(t *testing.T) {
	shapes := map[string]*Shape{
		"square": NewRectangle(0, 0, 10, 10),
		"circle": NewCircle(Pt(3, -2), 7),
		"ring":   NewRing(Pt(0, 0), 10, 4),
	}
	for name, s := range shapes {
		t.Run(name, func(t *testing.T) {
			a, err := s.ToPolygon(SegmentFixedCount(8))
			if err != nil {
				t.Fatal(err)
			}
			area := math.Abs(a.Area())
			if name == "ring" {
				// The hole winds opposite to the outer contour.
				area = a.Area()
			}

			u := Union(a, a)
			diff(t, area, u.Area(), cmpopts.EquateApprox(1e-9, 0))

			i := Intersection(a, a)
			diff(t, area, i.Area(), cmpopts.EquateApprox(1e-9, 0))

			if d := Difference(a, a); !d.IsEmpty() {
				t.Errorf("difference with itself isn't empty: %v", d.Contours)
			}
			if x := Xor(a, a); !x.IsEmpty() {
				t.Errorf("xor with itself isn't empty: %v", x.Contours)
			}
			if i := Intersection(a, Polygon{}); !i.IsEmpty() {
				t.Errorf("intersection with the empty polygon isn't empty: %v", i.Contours)
			}
			diff(t, area, Union(a, Polygon{}).Area(), cmpopts.EquateApprox(1e-9, 0))
			diff(t, area, Difference(a, Polygon{}).Area(), cmpopts.EquateApprox(1e-9, 0))
		})
	}
}

func TestBooleanOverlappingSquares(t *testing.T) {
	a := rectPolygon(0, 0, 10, 10)
	b := rectPolygon(5, 5, 10, 10)

	tests := []struct {
		name     string
		got      Polygon
		area     float64
		contours int
		in, out  []Point
	}{
		{
			name: "union", got: a.Union(b), area: 175, contours: 1,
			in:  []Point{Pt(1, 1), Pt(7, 7), Pt(14, 14)},
			out: []Point{Pt(1, 14), Pt(14, 1)},
		},
		{
			name: "intersection", got: a.Intersection(b), area: 25, contours: 1,
			in:  []Point{Pt(7, 7)},
			out: []Point{Pt(1, 1), Pt(14, 14)},
		},
		{
			name: "difference", got: a.Difference(b), area: 75, contours: 1,
			in:  []Point{Pt(1, 1), Pt(9, 2), Pt(2, 9)},
			out: []Point{Pt(7, 7), Pt(14, 14)},
		},
		{
			name: "xor", got: a.Xor(b), area: 150, contours: 2,
			in:  []Point{Pt(1, 1), Pt(14, 14)},
			out: []Point{Pt(7, 7), Pt(1, 14)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.area, tt.got.Area(), cmpopts.EquateApprox(0, 1e-9))
			diff(t, tt.contours, len(tt.got.Contours))
			for _, c := range tt.got.Contours {
				if c.SignedArea() <= 0 {
					t.Errorf("outer contour %v winds negatively", c)
				}
			}
			for _, pt := range tt.in {
				if !tt.got.Contains(pt) {
					t.Errorf("%s not contained", pt)
				}
			}
			for _, pt := range tt.out {
				if tt.got.Contains(pt) {
					t.Errorf("%s contained", pt)
				}
			}
		})
	}
}

func TestBooleanHole(t *testing.T) {
	a := rectPolygon(0, 0, 10, 10)
	b := rectPolygon(3, 3, 4, 4)

	d := Difference(a, b)
	diff(t, 84.0, d.Area(), cmpopts.EquateApprox(0, 1e-9))
	diff(t, 2, len(d.Contours))
	if d.Contains(Pt(5, 5)) {
		t.Error("hole reported as contained")
	}

	// Filling the hole again.
	u := Union(d, b)
	diff(t, 100.0, u.Area(), cmpopts.EquateApprox(0, 1e-9))
	if !u.Contains(Pt(5, 5)) {
		t.Error("filled hole not contained")
	}

	// A contained operand.
	i := Intersection(a, b)
	diff(t, 16.0, i.Area(), cmpopts.EquateApprox(0, 1e-9))
}

func TestBooleanOrientation(t *testing.T) {
	// Operands are interpreted by the even-odd rule, whatever their
	// orientation.
	a := rectPolygon(0, 0, 10, 10)
	a.Contours[0] = a.Contours[0].Reverse()
	b := rectPolygon(5, 5, 10, 10)
	diff(t, 25.0, Intersection(a, b).Area(), cmpopts.EquateApprox(0, 1e-9))
	diff(t, 175.0, Union(a, b).Area(), cmpopts.EquateApprox(0, 1e-9))
}

func TestBooleanSharedEdges(t *testing.T) {
	a := rectPolygon(0, 0, 10, 10)
	b := rectPolygon(10, 0, 10, 10)

	u := Union(a, b)
	diff(t, 200.0, u.Area(), cmpopts.EquateApprox(0, 1e-9))
	diff(t, 1, len(u.Contours))
	diff(t, 4, len(u.Contours[0]))

	if i := Intersection(a, b); !i.IsEmpty() {
		t.Errorf("touching squares intersect: %v", i.Contours)
	}
	diff(t, 100.0, Difference(a, b).Area(), cmpopts.EquateApprox(0, 1e-9))
	diff(t, 200.0, Xor(a, b).Area(), cmpopts.EquateApprox(0, 1e-9))

	// Half overlap along a shared edge.
	c := rectPolygon(0, 0, 10, 5)
	diff(t, 50.0, Intersection(a, c).Area(), cmpopts.EquateApprox(0, 1e-9))
	diff(t, 50.0, Difference(a, c).Area(), cmpopts.EquateApprox(0, 1e-9))
	diff(t, 100.0, Union(a, c).Area(), cmpopts.EquateApprox(0, 1e-9))
}

func TestBooleanDisjoint(t *testing.T) {
	a := rectPolygon(0, 0, 10, 10)
	b := rectPolygon(20, 20, 5, 5)
	diff(t, 125.0, Union(a, b).Area(), cmpopts.EquateApprox(0, 1e-9))
	diff(t, 2, len(Union(a, b).Contours))
	if i := Intersection(a, b); !i.IsEmpty() {
		t.Errorf("disjoint squares intersect: %v", i.Contours)
	}
	diff(t, 100.0, Difference(a, b).Area(), cmpopts.EquateApprox(0, 1e-9))
}

func TestBooleanCircles(t *testing.T) {
	seg := SegmentFixedCount(16)
	a, err := NewCircle(Pt(0, 0), 10).ToPolygon(seg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewCircle(Pt(10, 0), 10).ToPolygon(seg)
	if err != nil {
		t.Fatal(err)
	}
	u := Union(a, b)
	i := Intersection(a, b)
	// Inclusion-exclusion.
	diff(t, a.Area()+b.Area(), u.Area()+i.Area(), cmpopts.EquateApprox(1e-9, 0))
	diff(t, u.Area()-i.Area(), Xor(a, b).Area(), cmpopts.EquateApprox(1e-9, 0))
	diff(t, a.Area()-i.Area(), Difference(a, b).Area(), cmpopts.EquateApprox(1e-9, 0))
}

func TestBooleanStyle(t *testing.T) {
	a := rectPolygon(0, 0, 10, 10)
	a.Style.Fill = true
	b := rectPolygon(5, 5, 10, 10)
	b.Style.Stroke = true
	diff(t, a.Style, Union(a, b).Style)
	diff(t, a.Style, Intersection(a, Polygon{}).Style)
}

func TestBooleanNearlyCoincident(t *testing.T) {
	// b's base runs within epsilon of a's top edge.
	a := rectPolygon(0, 0, 10, 10)
	b := Polygon{Contours: []Contour{{Pt(2, 10+1e-12), Pt(8, 10+1e-12), Pt(5, 15)}}}
	u := Union(a, b)
	diff(t, 115.0, u.Area(), cmpopts.EquateApprox(0, 1e-6))
	diff(t, 1, len(u.Contours))
	diff(t, 100.0, Difference(u, b).Area(), cmpopts.EquateApprox(0, 1e-6))
}

func TestNormalizeNesting(t *testing.T) {
	sq := func(x0, y0, x1, y1 float64) Contour { return Rect{x0, y0, x1, y1}.Contour() }
	tests := []struct {
		name  string
		in    []Contour
		outer []bool
	}{
		// The first vertex of each square lies on the other one.
		{"touching", []Contour{sq(10, 10, 20, 20), sq(0, 0, 10, 10).Reverse()}, []bool{true, true}},
		{"island", []Contour{sq(0, 0, 30, 30), sq(5, 5, 25, 25), sq(10, 10, 20, 20)}, []bool{true, false, true}},
		{"inscribed", []Contour{sq(0, 0, 10, 10), {Pt(5, 0), Pt(10, 5), Pt(5, 10), Pt(0, 5)}}, []bool{true, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Polygon{Contours: tt.in}
			cs := normalize(p, tolerance(p))
			if len(cs) != len(tt.outer) {
				t.Fatalf("got %d contours, want %d", len(cs), len(tt.outer))
			}
			for i, c := range cs {
				if got := c.SignedArea() > 0; got != tt.outer[i] {
					t.Errorf("contour %d: got outer = %t, want %t", i, got, tt.outer[i])
				}
			}
		})
	}
}

func TestBooleanTouchingContours(t *testing.T) {
	a, err := NewCircle(Pt(0, 0), 10).ToPolygon(SegmentFixedCount(16))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewCircle(Pt(8, 3), 7).ToPolygon(SegmentFixedCount(16))
	if err != nil {
		t.Fatal(err)
	}

	// The two pieces of the xor touch where the circles cross.
	x := Xor(a, b)
	if len(x.Contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(x.Contours))
	}
	for i, c := range x.Contours {
		if c.SignedArea() <= 0 {
			t.Errorf("contour %d has area %g, want positive", i, c.SignedArea())
		}
	}

	onlyA := Difference(a, b).Area()
	onlyB := Difference(b, a).Area()
	approx := cmpopts.EquateApprox(1e-6, 0)
	diff(t, onlyA+onlyB, x.Area(), approx)
	diff(t, x.Area(), Union(x, x).Area(), approx)
	diff(t, x.Area(), Intersection(x, x).Area(), approx)
	diff(t, x.Area(), Union(x, Polygon{}).Area(), approx)
	diff(t, onlyA, Intersection(x, a).Area(), approx)
	diff(t, onlyB, Difference(x, a).Area(), approx)
}
