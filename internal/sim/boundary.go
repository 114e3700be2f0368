package sim

// boundaryThickness is the width of the side walls, in pixels.
const boundaryThickness = 20

// floorDepth is how far the floor extends below its top surface. Only the top
// 10px are inside the viewport; the rest keeps fast orbs from tunneling at the
// largest allowed step.
const floorDepth = 100

// CreateBoundary adds one static rectangle centered at (x, y), rotated by
// angle radians.
func CreateBoundary(w *World, x, y, width, height, angle float64) *Body {
	props := DefaultBoundaryProps()
	props.Angle = angle
	return w.AddStaticBox(Vec{X: x, Y: y}, width, height, props)
}

// CreateViewportBoundaries builds the floor and both side walls for a
// viewport of the given size. The floor's top sits 10px above the bottom edge
// and the walls sit just outside the left and right edges.
func CreateViewportBoundaries(w *World, width, height float64) []*Body {
	half := boundaryThickness / 2.0
	return []*Body{
		CreateBoundary(w, width/2, FloorTop(height)+floorDepth/2.0, width, floorDepth, 0),
		CreateBoundary(w, -half, height/2, boundaryThickness, height, 0),
		CreateBoundary(w, width+half, height/2, boundaryThickness, height, 0),
	}
}

// FloorTop returns the y coordinate of the floor's upper surface for a
// viewport of the given height.
func FloorTop(height float64) float64 {
	return height - boundaryThickness/2.0
}
