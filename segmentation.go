package outline

import (
	"fmt"
	"math"
)

// SegmentationKind selects how curves are flattened into points.
type SegmentationKind int

const (
	// FixedCount samples every curve command at a fixed number of uniform
	// parameter steps.
	FixedCount SegmentationKind = iota + 1
	// FixedLength divides curve commands into the fewest pieces of equal
	// length that are no longer than StepLength.
	FixedLength
	// Adaptive recursively bisects curve commands until each piece is flat
	// within AngleTolerance.
	Adaptive
)

func (k SegmentationKind) String() string {
	switch k {
	case FixedCount:
		return "fixed-count"
	case FixedLength:
		return "fixed-length"
	case Adaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("SegmentationKind(%d)", int(k))
	}
}

// ParseSegmentationKind is the inverse of [SegmentationKind.String].
func ParseSegmentationKind(s string) (SegmentationKind, error) {
	switch s {
	case "fixed-count":
		return FixedCount, nil
	case "fixed-length":
		return FixedLength, nil
	case "adaptive":
		return Adaptive, nil
	default:
		return 0, fmt.Errorf("%w: unknown segmentation %q", ErrInvalidConfiguration, s)
	}
}

const (
	// DefaultMaxDepth is the recursion limit of adaptive segmentation when
	// Segmentation.MaxDepth is zero. A curve command yields at most
	// 2^DefaultMaxDepth points.
	DefaultMaxDepth = 16

	maxMaxDepth = 30

	// lengthSteps is the fixed resolution used to measure curve lengths and
	// centroids, independent of the caller's segmentation.
	lengthSteps = 64
)

// Segmentation is a curve flattening policy. It is passed explicitly to every
// conversion; the process-wide default lives in the config package.
type Segmentation struct {
	Kind SegmentationKind

	// Steps is the number of segments per curve command for FixedCount.
	Steps int
	// StepLength is the target distance between points for FixedLength.
	StepLength float64
	// AngleTolerance is the largest turning angle, in radians, that an
	// Adaptive piece may have before it is bisected.
	AngleTolerance float64
	// DistanceTolerance optionally bounds how far an Adaptive piece's
	// control points may stray from its chord. Zero disables the check.
	DistanceTolerance float64
	// MaxDepth bounds Adaptive recursion. Zero means DefaultMaxDepth.
	MaxDepth int
}

// DefaultSegmentation is adaptive with a tolerance suitable for on-screen
// rendering.
var DefaultSegmentation = Segmentation{
	Kind:           Adaptive,
	AngleTolerance: 0.05,
}

// SegmentFixedCount returns a FixedCount segmentation with n steps.
func SegmentFixedCount(n int) Segmentation {
	return Segmentation{Kind: FixedCount, Steps: n}
}

// SegmentFixedLength returns a FixedLength segmentation with step length l.
func SegmentFixedLength(l float64) Segmentation {
	return Segmentation{Kind: FixedLength, StepLength: l}
}

// SegmentAdaptive returns an Adaptive segmentation with the given angle
// tolerance in radians.
func SegmentAdaptive(angleTolerance float64) Segmentation {
	return Segmentation{Kind: Adaptive, AngleTolerance: angleTolerance}
}

func (s Segmentation) String() string {
	switch s.Kind {
	case FixedCount:
		return fmt.Sprintf("%s(%d)", s.Kind, s.Steps)
	case FixedLength:
		return fmt.Sprintf("%s(%g)", s.Kind, s.StepLength)
	case Adaptive:
		return fmt.Sprintf("%s(%g)", s.Kind, s.AngleTolerance)
	default:
		return s.Kind.String()
	}
}

// Validate reports whether s is usable. The returned error wraps
// [ErrInvalidConfiguration].
func (s Segmentation) Validate() error {
	switch s.Kind {
	case FixedCount:
		if s.Steps < 1 {
			return fmt.Errorf("%w: %s needs at least one step, got %d", ErrInvalidConfiguration, s.Kind, s.Steps)
		}
	case FixedLength:
		if !(s.StepLength > 0) || math.IsInf(s.StepLength, 0) {
			return fmt.Errorf("%w: %s needs a positive step length, got %g", ErrInvalidConfiguration, s.Kind, s.StepLength)
		}
	case Adaptive:
		if !(s.AngleTolerance > 0) || s.AngleTolerance >= math.Pi {
			return fmt.Errorf("%w: %s needs an angle tolerance in (0, π), got %g", ErrInvalidConfiguration, s.Kind, s.AngleTolerance)
		}
		if s.DistanceTolerance < 0 || math.IsNaN(s.DistanceTolerance) {
			return fmt.Errorf("%w: negative distance tolerance %g", ErrInvalidConfiguration, s.DistanceTolerance)
		}
		if s.MaxDepth < 0 || s.MaxDepth > maxMaxDepth {
			return fmt.Errorf("%w: max depth %d out of range [0, %d]", ErrInvalidConfiguration, s.MaxDepth, maxMaxDepth)
		}
	default:
		return fmt.Errorf("%w: unknown segmentation kind %d", ErrInvalidConfiguration, int(s.Kind))
	}
	return nil
}

func (s Segmentation) maxDepth() int {
	if s.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return s.MaxDepth
}

// flatEnough reports whether the curve whose control polygon is pts can be
// replaced by its chord.
//
// The turning of a Bézier curve's tangent is bounded by the turning of its
// control polygon, so summing the angles between consecutive control legs
// bounds the angle between consecutive chord segments of any sampling.
func (s Segmentation) flatEnough(pts []Point) bool {
	var turn float64
	var prev Vec2
	for i := 1; i < len(pts); i++ {
		leg := pts[i].Sub(pts[i-1])
		if leg.Hypot2() == 0 {
			continue
		}
		if prev != (Vec2{}) {
			turn += prev.AngleTo(leg)
		}
		prev = leg
	}
	if turn >= s.AngleTolerance {
		return false
	}
	if s.DistanceTolerance > 0 {
		chord := Line{pts[0], pts[len(pts)-1]}
		lim := s.DistanceTolerance * s.DistanceTolerance
		for _, p := range pts[1 : len(pts)-1] {
			if d, _ := chord.Nearest(p); d > lim {
				return false
			}
		}
	}
	return true
}
