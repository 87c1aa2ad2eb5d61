package outline

import "errors"

var (
	// ErrInvalidParameter is returned when a split, sampling, or layout
	// parameter lies outside its legal domain, such as t ∉ [0, 1]. Parameters
	// are never clamped silently.
	ErrInvalidParameter = errors.New("outline: invalid parameter")

	// ErrEmptyGeometry is returned by operations that need at least one
	// subpath, contour, or command.
	ErrEmptyGeometry = errors.New("outline: empty geometry")

	// ErrInvalidConfiguration is returned for malformed segmentation settings.
	ErrInvalidConfiguration = errors.New("outline: invalid configuration")
)
