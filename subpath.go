package outline

import (
	"fmt"
	"slices"
)

// Subpath is one continuous pen stroke: an ordered sequence of commands
// sharing one starting point. The first command of a non-empty subpath starts
// at Start, and every further command starts where its predecessor ends.
//
// A closed subpath ends at Start. Close achieves this by appending a closing
// line when necessary; Closed only records that the stroke was closed
// explicitly.
type Subpath struct {
	Start    Point
	Commands []Command
	Closed   bool
}

// NewSubpath returns an empty subpath starting at start.
func NewSubpath(start Point) *Subpath {
	return &Subpath{Start: start}
}

// Cursor returns the current point: the end of the last command, or the start
// point of an empty subpath.
func (s *Subpath) Cursor() Point {
	if len(s.Commands) == 0 {
		return s.Start
	}
	return s.Commands[len(s.Commands)-1].End()
}

// IsEmpty reports whether the subpath has no commands.
func (s *Subpath) IsEmpty() bool {
	return len(s.Commands) == 0
}

// Append appends c, anchoring its start point at the subpath's cursor.
func (s *Subpath) Append(c Command) {
	c.P0 = s.Cursor()
	s.Commands = append(s.Commands, c)
	s.Closed = false
}

func (s *Subpath) LineTo(p Point) {
	s.Append(Command{Kind: LineKind, P1: p})
}

func (s *Subpath) QuadTo(c, p Point) {
	s.Append(Command{Kind: QuadKind, P1: c, P2: p})
}

func (s *Subpath) CubicTo(c1, c2, p Point) {
	s.Append(Command{Kind: CubicKind, P1: c1, P2: c2, P3: p})
}

// Close closes the subpath, appending a line back to the start point unless
// the cursor is already there.
func (s *Subpath) Close() {
	if len(s.Commands) > 0 && s.Cursor() != s.Start {
		s.LineTo(s.Start)
	}
	s.Closed = true
}

// Clone returns a deep copy of s.
func (s *Subpath) Clone() *Subpath {
	return &Subpath{
		Start:    s.Start,
		Commands: slices.Clone(s.Commands),
		Closed:   s.Closed,
	}
}

func (s *Subpath) commandLengths() []float64 {
	out := make([]float64, len(s.Commands))
	for i, c := range s.Commands {
		out[i] = c.Length()
	}
	return out
}

// CurveLength returns the sum of the lengths of the subpath's commands.
func (s *Subpath) CurveLength() float64 {
	var l float64
	for _, c := range s.Commands {
		l += c.Length()
	}
	return l
}

// Split splits the subpath at the global parameter t. The parameter is
// distributed over the commands in proportion to their lengths, so that t =
// 0.5 splits the subpath into halves of approximately equal length.
//
// Split(0) returns an empty subpath and a copy of s; Split(1) returns a copy
// of s and an empty subpath. Split points that fall on a boundary between two
// commands cut between them. The pieces of a closed subpath are open.
func (s *Subpath) Split(t float64) (*Subpath, *Subpath, error) {
	if err := checkParam("split subpath", t); err != nil {
		return nil, nil, err
	}
	if len(s.Commands) == 0 {
		return NewSubpath(s.Start), s.Clone(), nil
	}
	switch t {
	case 0:
		return NewSubpath(s.Start), s.Clone(), nil
	case 1:
		return s.Clone(), NewSubpath(s.Cursor()), nil
	}

	idx, u := locate(s.commandLengths(), t)
	var head, tail []Command
	switch atStart, atEnd := snap(u); {
	case atStart:
		head = slices.Clone(s.Commands[:idx])
		tail = slices.Clone(s.Commands[idx:])
	case atEnd:
		head = slices.Clone(s.Commands[:idx+1])
		tail = slices.Clone(s.Commands[idx+1:])
	default:
		a, b := s.Commands[idx].split(u)
		head = append(slices.Clone(s.Commands[:idx]), a)
		tail = append([]Command{b}, s.Commands[idx+1:]...)
	}

	sa := &Subpath{Start: s.Start, Commands: head}
	sb := &Subpath{Commands: tail}
	if len(tail) > 0 {
		sb.Start = tail[0].Start()
	} else {
		sb.Start = s.Cursor()
	}
	return sa, sb, nil
}

// CurvePoints returns the densely sampled curve: the start point followed by
// the points of every command under seg, without duplicating the points
// shared by consecutive commands. An empty subpath has no curve points.
func (s *Subpath) CurvePoints(seg Segmentation) ([]Point, error) {
	if err := seg.Validate(); err != nil {
		return nil, err
	}
	return s.curvePoints(seg), nil
}

// curvePoints is CurvePoints for a validated segmentation.
func (s *Subpath) curvePoints(seg Segmentation) []Point {
	if len(s.Commands) == 0 {
		return nil
	}
	out := []Point{s.Start}
	for _, c := range s.Commands {
		first := true
		for p := range c.Samples(seg) {
			if first {
				first = false
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// Points returns the subpath's sparse point list: its start point followed by
// the end point of every command. Control points are not included.
func (s *Subpath) Points() []Point {
	if len(s.Commands) == 0 {
		return nil
	}
	out := make([]Point, 0, len(s.Commands)+1)
	out = append(out, s.Start)
	for _, c := range s.Commands {
		out = append(out, c.End())
	}
	return out
}

// SignedArea returns the exact signed area enclosed by the subpath, treating
// an open subpath as implicitly closed by a line from its cursor to its start.
// The area is positive for counter-clockwise subpaths in a y-up coordinate
// system.
func (s *Subpath) SignedArea() float64 {
	var a float64
	for _, c := range s.Commands {
		a += c.SignedArea()
	}
	return a + Line{s.Cursor(), s.Start}.SignedArea()
}

// Centroid returns the centroid of the area enclosed by the subpath, computed
// on its curve sampled at a fixed internal resolution. Subpaths without area
// report the mean of their sampled points.
func (s *Subpath) Centroid() (Point, error) {
	if len(s.Commands) == 0 {
		return Point{}, fmt.Errorf("centroid of empty subpath: %w", ErrEmptyGeometry)
	}
	pts := s.curvePoints(SegmentFixedCount(lengthSteps))
	return Contour(pts).Centroid(), nil
}

// PointAt returns the point at the global parameter t, located the same way
// as [Subpath.Split] locates its split point.
func (s *Subpath) PointAt(t float64) (Point, error) {
	c, u, err := s.at("point on subpath", t)
	if err != nil {
		return Point{}, err
	}
	return c.Eval(u), nil
}

// TangentAt returns the tangent at the global parameter t. See
// [Subpath.PointAt].
func (s *Subpath) TangentAt(t float64) (Vec2, error) {
	c, u, err := s.at("tangent on subpath", t)
	if err != nil {
		return Vec2{}, err
	}
	return c.Tangent(u), nil
}

func (s *Subpath) at(op string, t float64) (Command, float64, error) {
	if err := checkParam(op, t); err != nil {
		return Command{}, 0, err
	}
	if len(s.Commands) == 0 {
		return Command{}, 0, fmt.Errorf("%s: %w", op, ErrEmptyGeometry)
	}
	idx, u := locate(s.commandLengths(), t)
	return s.Commands[idx], u, nil
}

// InsertHandle splits the command at the global parameter t in two, adding a
// point to the subpath without changing its shape. It does nothing if t falls
// on an existing command boundary.
func (s *Subpath) InsertHandle(t float64) error {
	if err := checkParam("insert handle", t); err != nil {
		return err
	}
	if len(s.Commands) == 0 {
		return fmt.Errorf("insert handle: %w", ErrEmptyGeometry)
	}
	idx, u := locate(s.commandLengths(), t)
	if atStart, atEnd := snap(u); atStart || atEnd {
		return nil
	}
	a, b := s.Commands[idx].split(u)
	s.Commands = slices.Insert(s.Commands, idx+1, b)
	s.Commands[idx] = a
	return nil
}

// Reverse returns a copy of s traversed in the opposite direction.
func (s *Subpath) Reverse() *Subpath {
	out := &Subpath{
		Start:    s.Cursor(),
		Commands: make([]Command, len(s.Commands)),
		Closed:   s.Closed,
	}
	for i, c := range s.Commands {
		out.Commands[len(s.Commands)-1-i] = c.Reverse()
	}
	return out
}

// ApplyTransform transforms s in place.
func (s *Subpath) ApplyTransform(tr Transform) {
	s.Start = s.Start.Transform(tr)
	for i, c := range s.Commands {
		s.Commands[i] = c.Transform(tr)
	}
}

// Transform returns a transformed copy of s.
func (s *Subpath) Transform(tr Transform) *Subpath {
	out := s.Clone()
	out.ApplyTransform(tr)
	return out
}

// BoundingBox returns the tight bounding box of the subpath's curve. The
// result is false for an empty subpath.
func (s *Subpath) BoundingBox() (Rect, bool) {
	if len(s.Commands) == 0 {
		return Rect{}, false
	}
	r := s.Commands[0].BoundingBox()
	for _, c := range s.Commands[1:] {
		r = r.Union(c.BoundingBox())
	}
	return r, true
}

// Bounds returns the subpath's bounding box as a 4-point contour.
func (s *Subpath) Bounds() (Contour, error) {
	r, ok := s.BoundingBox()
	if !ok {
		return Contour{}, fmt.Errorf("bounds of subpath: %w", ErrEmptyGeometry)
	}
	return r.Contour(), nil
}

// contour flattens the subpath into a contour. The contour is implicitly
// closed, so a final point equal to the first is dropped.
func (s *Subpath) contour(seg Segmentation) Contour {
	pts := s.curvePoints(seg)
	if n := len(pts); n > 1 && pts[n-1] == pts[0] {
		pts = pts[:n-1]
	}
	return Contour(pts)
}

// ToPolygon flattens the subpath into a polygon with a single contour. An
// empty subpath yields an empty polygon.
func (s *Subpath) ToPolygon(seg Segmentation) (Polygon, error) {
	if err := seg.Validate(); err != nil {
		return Polygon{}, err
	}
	if len(s.Commands) == 0 {
		return Polygon{}, nil
	}
	return Polygon{Contours: []Contour{s.contour(seg)}}, nil
}

func (s *Subpath) ToMesh(seg Segmentation) (Mesh, error) {
	p, err := s.ToPolygon(seg)
	if err != nil {
		return Mesh{}, err
	}
	return Tesselate(p)
}
