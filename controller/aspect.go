package controller

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorustyt/manoslider/common"
	"github.com/pkg/errors"
)

var ErrDegenerateSurface = errors.New("surface has no extent")

// BoxAspect scales the per-axis extents of verts so that the longest axis is
// exactly 1.
func BoxAspect(verts []mgl64.Vec3) (mgl64.Vec3, error) {
	b, ok := common.CalcBounds(verts)
	if !ok {
		return mgl64.Vec3{}, errors.Wrap(ErrDegenerateSurface, "no vertices")
	}
	longest, axis := b.MaxExtent()
	if !(longest > 0) {
		return mgl64.Vec3{}, errors.Wrapf(ErrDegenerateSurface, "longest extent %g", longest)
	}
	e := b.Extent()
	aspect := mgl64.Vec3{e[0] / longest, e[1] / longest, e[2] / longest}
	aspect[axis] = 1
	return aspect, nil
}
