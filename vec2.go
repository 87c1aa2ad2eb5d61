package outline

import (
	"fmt"
	"math"
)

// Vec2 is a displacement in the plane, the difference of two [Point] values.
type Vec2 struct {
	X, Y float64
}

// Vec returns the vector ⟨x, y⟩.
func Vec(x, y float64) Vec2 { return Vec2{x, y} }

func (v Vec2) Splat() (float64, float64) { return v.X, v.Y }

func (v Vec2) String() string { return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y) }

func (v Vec2) Add(o Vec2) Vec2    { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2    { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Negate() Vec2       { return Vec2{-v.X, -v.Y} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product of v and o. It is
// positive when o lies counter-clockwise of v.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Hypot returns the length of v.
func (v Vec2) Hypot() float64 { return math.Hypot(v.X, v.Y) }

// Hypot2 returns the squared length of v.
func (v Vec2) Hypot2() float64 { return v.Dot(v) }

// Angle returns atan2(v.Y, v.X), the direction of v in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// AngleTo returns the unsigned angle between v and o, in [0, π], or 0 if
// either of them is the zero vector.
func (v Vec2) AngleTo(o Vec2) float64 {
	if v.Hypot2() == 0 || o.Hypot2() == 0 {
		return 0
	}
	return math.Atan2(math.Abs(v.Cross(o)), v.Dot(o))
}

// Rotate90 turns v a quarter turn counter-clockwise, so ⟨1, 0⟩ becomes ⟨0, 1⟩.
func (v Vec2) Rotate90() Vec2 { return Vec2{-v.Y, v.X} }

func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return v.Add(o.Sub(v).Mul(t)) }

// Normalize scales v to unit length. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	h := v.Hypot()
	if h == 0 {
		return v
	}
	return v.Mul(1 / h)
}
