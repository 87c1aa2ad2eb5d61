package outline

import (
	"fmt"
	"math"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the number of subpaths from which ToPolygon flattens
// subpaths concurrently.
const parallelThreshold = 16

// Shape is the top-level curved outline: an ordered collection of subpaths
// plus style metadata. The order of subpaths is the draw order; it has no
// geometric meaning.
//
// The zero value is an empty shape ready to use.
type Shape struct {
	Subpaths []Subpath
	Style    Style
}

// current returns the subpath the pen draws into, starting a new one if the
// last subpath is closed or there is none. A new subpath starts where the
// closed one started, or at the origin.
func (s *Shape) current() *Subpath {
	n := len(s.Subpaths)
	if n > 0 && !s.Subpaths[n-1].Closed {
		return &s.Subpaths[n-1]
	}
	var start Point
	if n > 0 {
		start = s.Subpaths[n-1].Start
	}
	s.Subpaths = append(s.Subpaths, Subpath{Start: start})
	return &s.Subpaths[n]
}

// MoveTo starts a new subpath at p.
func (s *Shape) MoveTo(p Point) {
	if n := len(s.Subpaths); n > 0 && s.Subpaths[n-1].IsEmpty() && !s.Subpaths[n-1].Closed {
		s.Subpaths[n-1].Start = p
		return
	}
	s.Subpaths = append(s.Subpaths, Subpath{Start: p})
}

func (s *Shape) LineTo(p Point) {
	s.current().LineTo(p)
}

func (s *Shape) QuadTo(c, p Point) {
	s.current().QuadTo(c, p)
}

func (s *Shape) CubicTo(c1, c2, p Point) {
	s.current().CubicTo(c1, c2, p)
}

// Close closes the current subpath. Drawing after Close starts a new subpath
// at the closed subpath's start point.
func (s *Shape) Close() {
	if n := len(s.Subpaths); n > 0 {
		s.Subpaths[n-1].Close()
	}
}

// Append appends a copy of sub, which becomes the current subpath.
func (s *Shape) Append(sub Subpath) {
	s.Subpaths = append(s.Subpaths, *sub.Clone())
}

// AppendShape appends copies of o's subpaths.
func (s *Shape) AppendShape(o *Shape) {
	s.Subpaths = slices.Grow(s.Subpaths, len(o.Subpaths))
	for i := range o.Subpaths {
		s.Append(o.Subpaths[i])
	}
}

// Clone returns a deep copy of s.
func (s *Shape) Clone() *Shape {
	out := &Shape{Style: s.Style}
	if s.Subpaths != nil {
		out.Subpaths = make([]Subpath, len(s.Subpaths))
		for i := range s.Subpaths {
			out.Subpaths[i] = *s.Subpaths[i].Clone()
		}
	}
	return out
}

// IsEmpty reports whether s has no commands.
func (s *Shape) IsEmpty() bool {
	for i := range s.Subpaths {
		if !s.Subpaths[i].IsEmpty() {
			return false
		}
	}
	return true
}

// CurveLength returns the sum of the curve lengths of s's subpaths.
func (s *Shape) CurveLength() float64 {
	var l float64
	for i := range s.Subpaths {
		l += s.Subpaths[i].CurveLength()
	}
	return l
}

// SignedArea returns the sum of the signed areas of s's subpaths.
func (s *Shape) SignedArea() float64 {
	var a float64
	for i := range s.Subpaths {
		a += s.Subpaths[i].SignedArea()
	}
	return a
}

// Points returns the sparse point lists of all subpaths, in order.
func (s *Shape) Points() []Point {
	var out []Point
	for i := range s.Subpaths {
		out = append(out, s.Subpaths[i].Points()...)
	}
	return out
}

// CurvePoints returns the densely sampled curves of all subpaths, in order.
func (s *Shape) CurvePoints(seg Segmentation) ([]Point, error) {
	if err := seg.Validate(); err != nil {
		return nil, err
	}
	var out []Point
	for i := range s.Subpaths {
		out = append(out, s.Subpaths[i].curvePoints(seg)...)
	}
	return out, nil
}

// ToPolygon flattens s into a polygon with one contour per non-empty subpath
// and s's style. Shapes with many subpaths are flattened concurrently.
func (s *Shape) ToPolygon(seg Segmentation) (Polygon, error) {
	if err := seg.Validate(); err != nil {
		return Polygon{}, err
	}
	contours := make([]Contour, len(s.Subpaths))
	if len(s.Subpaths) >= parallelThreshold {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range s.Subpaths {
			g.Go(func() error {
				contours[i] = s.Subpaths[i].contour(seg)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Polygon{}, err
		}
	} else {
		for i := range s.Subpaths {
			contours[i] = s.Subpaths[i].contour(seg)
		}
	}

	out := Polygon{Style: s.Style}
	for _, c := range contours {
		if len(c) > 0 {
			out.Contours = append(out.Contours, c)
		}
	}
	return out, nil
}

// ToMesh flattens s with [Shape.ToPolygon] and tesselates the result.
func (s *Shape) ToMesh(seg Segmentation) (Mesh, error) {
	p, err := s.ToPolygon(seg)
	if err != nil {
		return Mesh{}, err
	}
	return Tesselate(p)
}

// Contains reports whether pt lies inside s flattened with seg, under the
// even-odd rule.
func (s *Shape) Contains(pt Point, seg Segmentation) (bool, error) {
	p, err := s.ToPolygon(seg)
	if err != nil {
		return false, err
	}
	return p.Contains(pt), nil
}

// Split splits s at the global parameter t into two shapes that both carry
// s's style. t is distributed over the subpaths in proportion to their curve
// lengths; subpaths before the split point go to the first shape, subpaths
// after it to the second, and the subpath containing it is split with
// [Subpath.Split].
//
// Split(0) returns an empty shape and a copy of s; Split(1) returns a copy of
// s and an empty shape.
func (s *Shape) Split(t float64) (*Shape, *Shape, error) {
	if err := checkParam("split shape", t); err != nil {
		return nil, nil, err
	}
	if len(s.Subpaths) == 0 {
		return nil, nil, fmt.Errorf("split shape: %w", ErrEmptyGeometry)
	}
	a := &Shape{Style: s.Style}
	b := &Shape{Style: s.Style}
	switch t {
	case 0:
		return a, s.Clone(), nil
	case 1:
		return s.Clone(), b, nil
	}

	lengths := make([]float64, len(s.Subpaths))
	for i := range s.Subpaths {
		lengths[i] = s.Subpaths[i].CurveLength()
	}
	idx, u := locate(lengths, t)
	for i := range s.Subpaths[:idx] {
		a.Subpaths = append(a.Subpaths, *s.Subpaths[i].Clone())
	}
	switch atStart, atEnd := snap(u); {
	case atStart:
		b.Subpaths = append(b.Subpaths, *s.Subpaths[idx].Clone())
	case atEnd:
		a.Subpaths = append(a.Subpaths, *s.Subpaths[idx].Clone())
	default:
		sa, sb, err := s.Subpaths[idx].Split(u)
		if err != nil {
			return nil, nil, err
		}
		a.Subpaths = append(a.Subpaths, *sa)
		b.Subpaths = append(b.Subpaths, *sb)
	}
	for i := idx + 1; i < len(s.Subpaths); i++ {
		b.Subpaths = append(b.Subpaths, *s.Subpaths[i].Clone())
	}
	return a, b, nil
}

// SplitAll splits every subpath of s at the same parameter t, using
// [Subpath.Split]. The first shape collects the heads, the second the tails;
// both carry s's style. Pieces without commands are dropped.
func (s *Shape) SplitAll(t float64) (*Shape, *Shape, error) {
	if err := checkParam("split all subpaths", t); err != nil {
		return nil, nil, err
	}
	if len(s.Subpaths) == 0 {
		return nil, nil, fmt.Errorf("split all subpaths: %w", ErrEmptyGeometry)
	}
	a := &Shape{Style: s.Style}
	b := &Shape{Style: s.Style}
	for i := range s.Subpaths {
		sa, sb, err := s.Subpaths[i].Split(t)
		if err != nil {
			return nil, nil, err
		}
		if !sa.IsEmpty() {
			a.Subpaths = append(a.Subpaths, *sa)
		}
		if !sb.IsEmpty() {
			b.Subpaths = append(b.Subpaths, *sb)
		}
	}
	return a, b, nil
}

// lengthIndex locates global parameters on a shape's non-empty subpaths.
type lengthIndex struct {
	subpaths []int
	lengths  []float64
	commands [][]float64
}

func (s *Shape) lengthIndex() (lengthIndex, bool) {
	var li lengthIndex
	for i := range s.Subpaths {
		sub := &s.Subpaths[i]
		if sub.IsEmpty() {
			continue
		}
		cl := sub.commandLengths()
		var l float64
		for _, x := range cl {
			l += x
		}
		li.subpaths = append(li.subpaths, i)
		li.lengths = append(li.lengths, l)
		li.commands = append(li.commands, cl)
	}
	return li, len(li.subpaths) > 0
}

// locate returns the subpath index, command index, and command parameter of
// the global parameter t.
func (li lengthIndex) locate(t float64) (sub, cmd int, u float64) {
	i, ut := locate(li.lengths, t)
	cmd, u = locate(li.commands[i], ut)
	return li.subpaths[i], cmd, u
}

func (s *Shape) at(op string, t float64) (Command, float64, error) {
	if err := checkParam(op, t); err != nil {
		return Command{}, 0, err
	}
	li, ok := s.lengthIndex()
	if !ok {
		return Command{}, 0, fmt.Errorf("%s: %w", op, ErrEmptyGeometry)
	}
	sub, cmd, u := li.locate(t)
	return s.Subpaths[sub].Commands[cmd], u, nil
}

// PointAt returns the point at the global parameter t, distributing t over
// subpaths and commands by curve length.
func (s *Shape) PointAt(t float64) (Point, error) {
	c, u, err := s.at("point on shape", t)
	if err != nil {
		return Point{}, err
	}
	return c.Eval(u), nil
}

// TangentAt returns the tangent at the global parameter t. See
// [Shape.PointAt].
func (s *Shape) TangentAt(t float64) (Vec2, error) {
	c, u, err := s.at("tangent on shape", t)
	if err != nil {
		return Vec2{}, err
	}
	return c.Tangent(u), nil
}

// InsertHandle splits the command at the global parameter t in two. See
// [Subpath.InsertHandle].
func (s *Shape) InsertHandle(t float64) error {
	if err := checkParam("insert handle", t); err != nil {
		return err
	}
	li, ok := s.lengthIndex()
	if !ok {
		return fmt.Errorf("insert handle: %w", ErrEmptyGeometry)
	}
	i, u := locate(li.lengths, t)
	return s.Subpaths[li.subpaths[i]].InsertHandle(u)
}

// BoundingBox returns the tight bounding box of s's curves and false if s has
// no commands.
func (s *Shape) BoundingBox() (Rect, bool) {
	var r Rect
	var ok bool
	for i := range s.Subpaths {
		sr, sok := s.Subpaths[i].BoundingBox()
		if !sok {
			continue
		}
		if ok {
			r = r.Union(sr)
		} else {
			r, ok = sr, true
		}
	}
	return r, ok
}

// Bounds returns the bounding box of s as a 4-point contour: (minX, minY),
// (maxX, minY), (maxX, maxY), (minX, maxY). The contour starts at the minimum
// corner and runs counter-clockwise, so its signed area is non-negative.
func (s *Shape) Bounds() (Contour, error) {
	r, ok := s.BoundingBox()
	if !ok {
		return nil, fmt.Errorf("bounds of shape: %w", ErrEmptyGeometry)
	}
	return r.Contour(), nil
}

// Center returns the center of the bounding box of s.
func (s *Shape) Center() (Point, error) {
	r, ok := s.BoundingBox()
	if !ok {
		return Point{}, fmt.Errorf("center of shape: %w", ErrEmptyGeometry)
	}
	return r.Center(), nil
}

// Centroid returns the centroid of the subpath with the largest absolute
// signed area. The other subpaths don't contribute.
func (s *Shape) Centroid() (Point, error) {
	best := -1
	var bestArea float64
	for i := range s.Subpaths {
		if s.Subpaths[i].IsEmpty() {
			continue
		}
		if a := math.Abs(s.Subpaths[i].SignedArea()); best == -1 || a > bestArea {
			best, bestArea = i, a
		}
	}
	if best == -1 {
		return Point{}, fmt.Errorf("centroid of shape: %w", ErrEmptyGeometry)
	}
	return s.Subpaths[best].Centroid()
}

// CenteringTransform returns a transform that moves the center of s's bounds
// to the origin and uniformly scales s to fit target shrunk by margin on every
// side.
//
// Both effects are damped linearly: a damping of 0 disables the effect and 1
// applies it fully, so that repeated application eases a shape into place.
// Dampings outside [0, 1] are an error wrapping [ErrInvalidParameter].
func (s *Shape) CenteringTransform(target Rect, margin, scaleDamping, translateDamping float64) (Transform, error) {
	if !(scaleDamping >= 0 && scaleDamping <= 1) {
		return Transform{}, fmt.Errorf("centering transform: scale damping %g: %w", scaleDamping, ErrInvalidParameter)
	}
	if !(translateDamping >= 0 && translateDamping <= 1) {
		return Transform{}, fmt.Errorf("centering transform: translate damping %g: %w", translateDamping, ErrInvalidParameter)
	}
	r, ok := s.BoundingBox()
	if !ok {
		return Transform{}, fmt.Errorf("centering transform: %w", ErrEmptyGeometry)
	}
	target = target.Abs()
	availW := target.Width() - 2*margin
	availH := target.Height() - 2*margin
	if availW <= 0 || availH <= 0 {
		return Transform{}, fmt.Errorf("centering transform: margin %g leaves no room in %v: %w", margin, target, ErrInvalidParameter)
	}

	scale := math.Inf(1)
	if w := r.Width(); w > 0 {
		scale = availW / w
	}
	if h := r.Height(); h > 0 {
		scale = min(scale, availH/h)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}
	scale = 1 + (scale-1)*scaleDamping
	tr := Vec2(r.Center()).Negate().Mul(translateDamping)
	return UniformScale(scale).PreTranslate(tr), nil
}

// CenterIn applies [Shape.CenteringTransform] to s in place.
func (s *Shape) CenterIn(target Rect, margin, scaleDamping, translateDamping float64) error {
	tr, err := s.CenteringTransform(target, margin, scaleDamping, translateDamping)
	if err != nil {
		return err
	}
	s.ApplyTransform(tr)
	return nil
}

// ApplyTransform transforms s in place.
func (s *Shape) ApplyTransform(tr Transform) {
	for i := range s.Subpaths {
		s.Subpaths[i].ApplyTransform(tr)
	}
}

// Transform returns a transformed copy of s.
func (s *Shape) Transform(tr Transform) *Shape {
	out := s.Clone()
	out.ApplyTransform(tr)
	return out
}

// Reverse returns a copy of s with every subpath reversed.
func (s *Shape) Reverse() *Shape {
	out := &Shape{Style: s.Style, Subpaths: make([]Subpath, len(s.Subpaths))}
	for i := range s.Subpaths {
		out.Subpaths[i] = *s.Subpaths[i].Reverse()
	}
	return out
}
