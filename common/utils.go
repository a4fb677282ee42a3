package common

import "github.com/go-gl/mathgl/mgl64"

type Vec3 = mgl64.Vec3

type IT interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}
type IIndex interface {
	~int | ~int8 | ~int16 | ~int32 | ~uint | ~uint8 | ~uint16 | ~uint32
}

// GetVert3 returns the index-th xyz triple of a flat vertex slice.
func GetVert3[T IT, T1 IIndex](verts []T, index T1) []T {
	return verts[index*3 : index*3+3]
}

// UnflattenVec3 packs a flat xyz slice into vectors. len(flat) must be a multiple of 3.
func UnflattenVec3[T float32 | float64](flat []T) []Vec3 {
	res := make([]Vec3, len(flat)/3)
	for i := range res {
		v := GetVert3(flat, i)
		res[i] = Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
	}
	return res
}

// FlattenVec3 is the inverse of UnflattenVec3.
func FlattenVec3(vs []Vec3) []float64 {
	res := make([]float64, 0, len(vs)*3)
	for _, v := range vs {
		res = append(res, v[0], v[1], v[2])
	}
	return res
}
