// Package model provides hand mesh evaluators for the viewer.
package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorustyt/manoslider/controller"
	"github.com/pkg/errors"
)

var (
	_ controller.MeshEvaluator    = (*LinearModel)(nil)
	_ controller.CapacityReporter = (*LinearModel)(nil)
)

var (
	ErrBadTopology     = errors.New("triangle index out of range")
	ErrDirectionLength = errors.New("direction length does not match template")
	ErrTooManyCoeffs   = errors.New("coefficient has no basis direction")
)

// LinearModel deforms a template mesh with linear shape and pose bases and
// applies a global axis-angle rotation and translation:
//
//	v = R(rotation) * (T + sum shape_k*S_k + sum pose_j*P_j) + translation
type LinearModel struct {
	Name      string
	RightHand bool

	template  []mgl64.Vec3
	triangles [][3]int
	shapeDirs [][]mgl64.Vec3
	poseDirs  [][]mgl64.Vec3
}

func NewLinearModel(template []mgl64.Vec3, triangles [][3]int) (*LinearModel, error) {
	if len(template) == 0 {
		return nil, errors.New("model: empty template")
	}
	for i, t := range triangles {
		for _, idx := range t {
			if idx < 0 || idx >= len(template) {
				return nil, errors.Wrapf(ErrBadTopology, "triangle %d index %d of %d verts", i, idx, len(template))
			}
		}
	}
	m := &LinearModel{
		RightHand: true,
		template:  append([]mgl64.Vec3(nil), template...),
		triangles: append([][3]int(nil), triangles...),
	}
	return m, nil
}

func (m *LinearModel) checkDirection(d []mgl64.Vec3) error {
	if len(d) != len(m.template) {
		return errors.Wrapf(ErrDirectionLength, "%d offsets for %d verts", len(d), len(m.template))
	}
	return nil
}

func (m *LinearModel) AddShapeDirection(d []mgl64.Vec3) error {
	if err := m.checkDirection(d); err != nil {
		return err
	}
	m.shapeDirs = append(m.shapeDirs, append([]mgl64.Vec3(nil), d...))
	return nil
}

func (m *LinearModel) AddPoseDirection(d []mgl64.Vec3) error {
	if err := m.checkDirection(d); err != nil {
		return err
	}
	m.poseDirs = append(m.poseDirs, append([]mgl64.Vec3(nil), d...))
	return nil
}

func (m *LinearModel) NumVerts() int      { return len(m.template) }
func (m *LinearModel) NumTriangles() int  { return len(m.triangles) }
func (m *LinearModel) ShapeCapacity() int { return len(m.shapeDirs) }
func (m *LinearModel) PoseCapacity() int  { return len(m.poseDirs) }

// Triangles returns a copy of the fixed topology.
func (m *LinearModel) Triangles() [][3]int {
	return append([][3]int(nil), m.triangles...)
}

func (m *LinearModel) Evaluate(p controller.Params) (controller.Surface, error) {
	if len(p.Rotation) != 3 {
		return controller.Surface{}, errors.Errorf("model: rotation needs 3 values, got %d", len(p.Rotation))
	}
	if len(p.Translation) != 3 {
		return controller.Surface{}, errors.Errorf("model: translation needs 3 values, got %d", len(p.Translation))
	}
	verts := append([]mgl64.Vec3(nil), m.template...)
	if err := blend(verts, m.shapeDirs, p.Shape, "shape"); err != nil {
		return controller.Surface{}, err
	}
	if err := blend(verts, m.poseDirs, p.Pose, "pose"); err != nil {
		return controller.Surface{}, err
	}

	rot := mgl64.Vec3{p.Rotation[0], p.Rotation[1], p.Rotation[2]}
	trans := mgl64.Vec3{p.Translation[0], p.Translation[1], p.Translation[2]}
	q := axisAngle(rot)
	for i, v := range verts {
		verts[i] = q.Rotate(v).Add(trans)
	}
	return controller.Surface{Vertices: verts, Triangles: m.Triangles()}, nil
}

// blend adds coeffs[k]*dirs[k] to verts. Zero coefficients past the end of
// dirs are accepted.
func blend(verts []mgl64.Vec3, dirs [][]mgl64.Vec3, coeffs []float64, group string) error {
	for k, c := range coeffs {
		if c == 0 {
			continue
		}
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return errors.Errorf("model: %s coefficient %d is %g", group, k, c)
		}
		if k >= len(dirs) {
			return errors.Wrapf(ErrTooManyCoeffs, "%s coefficient %d, model has %d", group, k, len(dirs))
		}
		for i, d := range dirs[k] {
			verts[i] = verts[i].Add(d.Mul(c))
		}
	}
	return nil
}

// axisAngle converts a rotation vector (axis scaled by angle in radians)
// into a quaternion.
func axisAngle(r mgl64.Vec3) mgl64.Quat {
	angle := r.Len()
	if angle < 1e-12 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(angle, r.Mul(1/angle))
}
