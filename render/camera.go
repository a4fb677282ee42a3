package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Default view angles in degrees.
const (
	DefaultElevation = 30
	DefaultAzimuth   = -60
)

// Camera is an orthographic camera orbiting the origin with z up.
type Camera struct {
	Elevation float64
	Azimuth   float64
}

// eye returns the unit direction from the origin to the camera.
func (c Camera) eye() mgl64.Vec3 {
	el := mgl64.DegToRad(c.Elevation)
	az := mgl64.DegToRad(c.Azimuth)
	return mgl64.Vec3{
		math.Cos(el) * math.Cos(az),
		math.Cos(el) * math.Sin(az),
		math.Sin(el),
	}
}

func (c Camera) View() mgl64.Mat4 {
	up := mgl64.Vec3{0, 0, 1}
	if math.Abs(math.Abs(c.Elevation)-90) < 1e-6 {
		up = mgl64.Vec3{0, 1, 0}
	}
	return mgl64.LookAtV(c.eye().Mul(3), mgl64.Vec3{}, up)
}

// Matrix returns projection*view for a viewport with the given aspect ratio
// (width/height). The unit box centred on the origin always fits.
func (c Camera) Matrix(ratio float64) mgl64.Mat4 {
	half := math.Sqrt(3) / 2
	w, h := half, half
	if ratio >= 1 {
		w *= ratio
	} else {
		h /= ratio
	}
	proj := mgl64.Ortho(-w, w, -h, h, 0.1, 6)
	return proj.Mul4(c.View())
}
