// Package config loads and holds the process-wide defaults of the outline
// kernel: the segmentation policy used when a caller has no better choice,
// and the style switch consumed by renderers.
//
// The kernel itself never reads this package. Callers take a
// [outline.Segmentation] from [Settings.Segmentation] at the start of each
// conversion, so a change only affects calls issued after it.
package config

import (
	"fmt"

	"honnef.co/go/outline"
)

// Config is the serializable form of the settings. It can be read from TOML
// or YAML files and overridden by environment variables.
type Config struct {
	// Policy is one of "fixed-count", "fixed-length" or "adaptive".
	Policy            string  `toml:"policy" yaml:"policy" envconfig:"POLICY"`
	Steps             int     `toml:"steps" yaml:"steps" envconfig:"STEPS"`
	StepLength        float64 `toml:"step_length" yaml:"step_length" envconfig:"STEP_LENGTH"`
	AngleTolerance    float64 `toml:"angle_tolerance" yaml:"angle_tolerance" envconfig:"ANGLE_TOLERANCE"`
	DistanceTolerance float64 `toml:"distance_tolerance" yaml:"distance_tolerance" envconfig:"DISTANCE_TOLERANCE"`
	MaxDepth          int     `toml:"max_depth" yaml:"max_depth" envconfig:"MAX_DEPTH"`

	// IgnoreStyles tells renderers to ignore the style metadata embedded in
	// shapes.
	IgnoreStyles bool `toml:"ignore_styles" yaml:"ignore_styles" envconfig:"IGNORE_STYLES"`
}

// Default returns the default configuration, which corresponds to
// [outline.DefaultSegmentation].
func Default() Config {
	return Config{
		Policy:         outline.DefaultSegmentation.Kind.String(),
		Steps:          10,
		StepLength:     10,
		AngleTolerance: outline.DefaultSegmentation.AngleTolerance,
		MaxDepth:       outline.DefaultMaxDepth,
	}
}

// Segmentation converts c into a validated segmentation policy. Errors wrap
// [outline.ErrInvalidConfiguration].
func (c Config) Segmentation() (outline.Segmentation, error) {
	kind, err := outline.ParseSegmentationKind(c.Policy)
	if err != nil {
		return outline.Segmentation{}, fmt.Errorf("config: %w", err)
	}
	seg := outline.Segmentation{Kind: kind}
	switch kind {
	case outline.FixedCount:
		seg.Steps = c.Steps
	case outline.FixedLength:
		seg.StepLength = c.StepLength
	case outline.Adaptive:
		seg.AngleTolerance = c.AngleTolerance
		seg.DistanceTolerance = c.DistanceTolerance
		seg.MaxDepth = c.MaxDepth
	}
	if err := seg.Validate(); err != nil {
		return outline.Segmentation{}, fmt.Errorf("config: %w", err)
	}
	return seg, nil
}
