package common

import (
	"math"
)

// / Clamps the value to the specified range.
// / @param[in]		v	The value to clamp.
// / @param[in]		mn	The minimum permitted return value.
// / @param[in]		mx	The maximum permitted return value.
// / @return The value, clamped to the specified range.
func Clamp[T IT](v, mn, mx T) T {
	if v < mn {
		return mn
	}
	if v > mx {
		return mx
	}
	return v
}

// / Selects the minimum value of each element from the specified vectors.
// / @param[in,out]	mn	A vector.  (Will be updated with the result.) [(x, y, z)]
// / @param[in]		v	A vector. [(x, y, z)]
func Vmin(mn *Vec3, v Vec3) {
	mn[0] = min(mn[0], v[0])
	mn[1] = min(mn[1], v[1])
	mn[2] = min(mn[2], v[2])
}

// / Selects the maximum value of each element from the specified vectors.
// / @param[in,out]	mx	A vector.  (Will be updated with the result.) [(x, y, z)]
// / @param[in]		v	A vector. [(x, y, z)]
func Vmax(mx *Vec3, v Vec3) {
	mx[0] = max(mx[0], v[0])
	mx[1] = max(mx[1], v[1])
	mx[2] = max(mx[2], v[2])
}

// Bounds is an axis aligned bounding box.
type Bounds struct {
	Min Vec3
	Max Vec3
}

// CalcBounds returns the bounding box of verts and false when verts is empty.
func CalcBounds(verts []Vec3) (b Bounds, ok bool) {
	if len(verts) == 0 {
		return b, false
	}
	b.Min = Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	b.Max = Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range verts {
		Vmin(&b.Min, v)
		Vmax(&b.Max, v)
	}
	return b, true
}

// Extent is the per-axis size of the box.
func (b Bounds) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// MaxExtent returns the longest axis length and its axis index.
func (b Bounds) MaxExtent() (float64, int) {
	e := b.Extent()
	axis := 0
	for i := 1; i < 3; i++ {
		if e[i] > e[axis] {
			axis = i
		}
	}
	return e[axis], axis
}
