package outline

import (
	"image/color"
)

// Style is the presentation metadata of an entity. The kernel carries it
// through every conversion unchanged and never interprets it.
type Style struct {
	Fill        bool
	FillColor   color.RGBA
	Stroke      bool
	StrokeColor color.RGBA
	StrokeWidth float64
}
