package outline

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Transform is a 2D affine map. A point (x, y) maps to
//
//	(A·x + C·y + TX, B·x + D·y + TY)
//
// so that A, B and C, D are the images of the x and y unit vectors and TX, TY
// is the image of the origin. The zero value collapses everything onto the
// origin; start from [Identity] instead.
type Transform struct {
	A, B, C, D, TX, TY float64
}

var Identity = Transform{1, 0, 0, 1, 0, 0}

// Scale scales x and y independently about the origin.
func Scale(x, y float64) Transform {
	return Transform{x, 0, 0, y, 0, 0}
}

func UniformScale(f float64) Transform {
	return Scale(f, f)
}

func Translate(v Vec2) Transform {
	return Transform{1, 0, 0, 1, v.X, v.Y}
}

// Rotate turns the plane th radians about the origin, counter-clockwise in
// the package's y-up coordinates.
func Rotate(th float64) Transform {
	sin, cos := math.Sincos(th)
	return Transform{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout turns the plane th radians about center.
func RotateAbout(th float64, center Point) Transform {
	c := Vec2(center)
	return Translate(c.Negate()).ThenRotate(th).ThenTranslate(c)
}

// Skew shears the plane, mapping (px, py) to (px + x·py, py + y·px).
func Skew(x, y float64) Transform {
	return Transform{1, y, x, 1, 0, 0}
}

// Aff3 returns tr in the row-major layout of golang.org/x/image/math/f64.
func (tr Transform) Aff3() f64.Aff3 {
	return f64.Aff3{
		tr.A, tr.C, tr.TX,
		tr.B, tr.D, tr.TY,
	}
}

// TransformFromAff3 undoes [Transform.Aff3].
func TransformFromAff3(m f64.Aff3) Transform {
	return Transform{
		A: m[0], C: m[1], TX: m[2],
		B: m[3], D: m[4], TY: m[5],
	}
}

// Mul composes tr with o. The result maps p to tr(o(p)).
func (tr Transform) Mul(o Transform) Transform {
	return Transform{
		tr.A*o.A + tr.C*o.B,
		tr.B*o.A + tr.D*o.B,
		tr.A*o.C + tr.C*o.D,
		tr.B*o.C + tr.D*o.D,
		tr.A*o.TX + tr.C*o.TY + tr.TX,
		tr.B*o.TX + tr.D*o.TY + tr.TY,
	}
}

// ThenRotate appends a rotation about the origin after tr.
func (tr Transform) ThenRotate(th float64) Transform {
	return Rotate(th).Mul(tr)
}

// ThenTranslate appends a translation by v after tr.
func (tr Transform) ThenTranslate(v Vec2) Transform {
	tr.TX += v.X
	tr.TY += v.Y
	return tr
}

// PreTranslate prepends a translation by v before tr.
func (tr Transform) PreTranslate(v Vec2) Transform {
	return tr.Mul(Translate(v))
}

// Determinant is the area scale factor of tr. It is negative for mirroring
// transforms.
func (tr Transform) Determinant() float64 {
	return tr.A*tr.D - tr.B*tr.C
}

// Invert returns the transform undoing tr. A singular tr yields infinite or
// NaN coefficients.
func (tr Transform) Invert() Transform {
	inv := 1 / tr.Determinant()
	return Transform{
		inv * tr.D,
		-inv * tr.B,
		-inv * tr.C,
		inv * tr.A,
		inv * (tr.C*tr.TY - tr.D*tr.TX),
		inv * (tr.B*tr.TX - tr.A*tr.TY),
	}
}
