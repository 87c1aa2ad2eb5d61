package outline

import "math"

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// quadraticRoots returns the real roots of a·x² + b·x + c in increasing order.
//
// When a is too small to divide by, the equation is solved as a linear one. If
// all coefficients are zero, 0 is reported as the only root.
func quadraticRoots(a, b, c float64) ([2]float64, int) {
	p, q := b/a, c/a
	if !finite(p) || !finite(q) {
		x := -c / b
		switch {
		case finite(x):
			return [2]float64{x}, 1
		case b == 0 && c == 0:
			return [2]float64{0}, 1
		default:
			return [2]float64{}, 0
		}
	}

	disc := p*p - 4*q
	var r1 float64
	switch {
	case math.IsInf(disc, 0):
		// p² overflowed, so x² + p·x dominates.
		r1 = -p
	case disc < 0:
		return [2]float64{}, 0
	case disc == 0:
		return [2]float64{-p / 2}, 1
	default:
		// The root of larger magnitude; the other one follows from r1·r2 = q.
		r1 = -(p + math.Copysign(math.Sqrt(disc), p)) / 2
	}
	r2 := q / r1
	if !finite(r2) {
		return [2]float64{r1}, 1
	}
	return [2]float64{min(r1, r2), max(r1, r2)}, 2
}

// solveITP finds a root of f in [a, b] with the ITP method, which never takes
// more steps than bisection plus n0 but converges like the secant method on
// smooth functions. ya and yb are f(a) < 0 and f(b) > 0. The result lies
// within eps of the root if f is monotonic. k1 scales the truncation step;
// 0.2/(b-a) works well. The second truncation exponent is fixed at 2.
//
// See Oliveira and Takahashi, "An Enhancement of the Bisection Method Average
// Performance Preserving Minmax Optimality".
func solveITP(f func(float64) float64, a, b, eps float64, n0 int, k1, ya, yb float64) float64 {
	nHalf := int(max(math.Ceil(math.Log2((b-a)/eps))-1, 0))
	slack := eps * float64(uint64(1)<<(n0+nHalf))
	for b-a > 2*eps {
		mid := (a + b) / 2
		r := slack - (b-a)/2
		// Interpolate, truncate towards the midpoint, then project into the
		// minmax interval around it.
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := mid - xf
		xt := mid
		if delta := k1 * (b - a) * (b - a); delta <= math.Abs(sigma) {
			xt = xf + math.Copysign(delta, sigma)
		}
		x := xt
		if math.Abs(xt-mid) > r {
			x = mid - math.Copysign(r, sigma)
		}
		switch y := f(x); {
		case y > 0:
			b, yb = x, y
		case y < 0:
			a, ya = x, y
		default:
			return x
		}
		slack /= 2
	}
	return (a + b) / 2
}
