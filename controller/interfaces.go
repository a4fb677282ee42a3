package controller

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Surface is a triangulated mesh. Triangles index into Vertices.
type Surface struct {
	Vertices  []mgl64.Vec3
	Triangles [][3]int
}

// MeshEvaluator produces the hand surface for a parameter set. The triangle
// array must be the same for every call.
type MeshEvaluator interface {
	Evaluate(p Params) (Surface, error)
}

// CapacityReporter is implemented by evaluators with a fixed number of
// shape and pose coefficients.
type CapacityReporter interface {
	ShapeCapacity() int
	PoseCapacity() int
}

// Renderer draws a triangulated surface into an equal-aspect box.
type Renderer interface {
	Clear()
	SetBoxAspect(aspect mgl64.Vec3)
	PlotTriSurface(s Surface) error
	Draw() error
}
