// Package outline provides a small geometry kernel for 2D outlines: points and
// affine transforms, curved drawing commands, shapes made of subpaths, flat
// polygons with boolean operations, and triangle meshes.
//
// # Shapes, polygons, and meshes
//
// The three representations of an outline form a pipeline. A [Shape] is what
// gets drawn: a list of [Subpath] values, each a sequence of connected
// [Command] values (lines, quadratic Béziers, and cubic Béziers) starting at a
// pen position. Shapes are built with the familiar pen methods [Shape.MoveTo],
// [Shape.LineTo], [Shape.QuadTo], [Shape.CubicTo], and [Shape.Close], or with
// constructors such as [NewRectangle], [NewCircle], and [NewStar].
//
// A [Polygon] is a shape whose curves have been flattened into straight
// [Contour] values according to a [Segmentation]. Polygons are interpreted with
// the even-odd fill rule and support [Union], [Intersection], [Difference], and
// [Xor].
//
// A [Mesh] is a polygon that has been triangulated by [Tesselate] into
// triangle strips, ready for filled rendering.
//
// Every representation implements [Geometry], so it can report its points, its
// bounds, and convert itself further down the pipeline.
//
// # Segmentation
//
// Curves are flattened in one of three ways. [SegmentFixedCount] produces a
// fixed number of evenly spaced samples per curve, [SegmentFixedLength] spaces
// samples by arc length, and [SegmentAdaptive] subdivides a curve until every
// piece turns by less than an angle tolerance. Lines are never subdivided.
// [Command.Samples] produces the points lazily; [Command.Sample] collects them.
//
// # Coordinates
//
// The package uses a y-up coordinate system: counter-clockwise contours have
// positive signed area. Results of boolean operations and tesselation always
// wind outer contours counter-clockwise and holes clockwise.
//
// # Errors and logging
//
// Operations that can fail return errors wrapping [ErrInvalidParameter],
// [ErrEmptyGeometry], or [ErrInvalidConfiguration], for use with [errors.Is].
// Degenerate input that can be handled, such as a stalled triangulation, is
// logged at debug level to the logger set with [SetLogger].
package outline
