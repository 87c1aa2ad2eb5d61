package outline

import (
	"fmt"
)

// splitEpsilon is the distance, in local parameter space, within which a split
// point snaps to the boundary between two pieces. Snapping avoids emitting
// zero-length commands and subpaths.
const splitEpsilon = 1e-9

// checkParam returns an error wrapping ErrInvalidParameter if t is outside
// [0, 1].
func checkParam(op string, t float64) error {
	if !(t >= 0 && t <= 1) {
		return fmt.Errorf("%s at %g: %w", op, t, ErrInvalidParameter)
	}
	return nil
}

// locate maps the global parameter t in [0, 1] to a piece index and a local
// parameter within that piece. t is distributed over the pieces in proportion
// to their lengths; if all lengths are zero, pieces share t equally.
//
// lengths must not be empty.
func locate(lengths []float64, t float64) (idx int, local float64) {
	var total float64
	for _, l := range lengths {
		total += l
	}
	share := func(i int) float64 {
		if total > 0 {
			return lengths[i] / total
		}
		return 1 / float64(len(lengths))
	}

	var before float64
	for i := range lengths {
		s := share(i)
		if s == 0 {
			continue
		}
		if before+s > t {
			return i, min(max((t-before)/s, 0), 1)
		}
		before += s
	}
	// Rounding left t beyond the last share; it belongs at the very end.
	for i := len(lengths) - 1; i >= 0; i-- {
		if share(i) > 0 {
			return i, 1
		}
	}
	return len(lengths) - 1, 1
}

// snap reports whether the local parameter u lies on the start or end
// boundary of its piece.
func snap(u float64) (atStart, atEnd bool) {
	return u <= splitEpsilon, u >= 1-splitEpsilon
}
