package outline

// Geometry is implemented by every entity that can be flattened for
// rendering.
//
// Transform is not part of the interface because each entity's Transform
// returns its own concrete type, which Go interfaces cannot express.
type Geometry interface {
	// Points returns the sparse point list: the endpoints of commands for
	// curve entities, and all points for flat ones.
	Points() []Point
	// CurvePoints returns the densely sampled outline.
	CurvePoints(seg Segmentation) ([]Point, error)
	ToPolygon(seg Segmentation) (Polygon, error)
	ToMesh(seg Segmentation) (Mesh, error)
	// Bounds returns the axis-aligned bounding box as a 4-point contour.
	Bounds() (Contour, error)
}

var (
	_ Geometry = Command{}
	_ Geometry = (*Subpath)(nil)
	_ Geometry = (*Shape)(nil)
	_ Geometry = Contour(nil)
	_ Geometry = Polygon{}
)
