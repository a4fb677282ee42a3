package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	palmWidth  = 0.08
	palmLength = 0.09
	palmDepth  = 0.025

	fingerRings    = 6
	fingerSegments = 8
)

var fingerLengths = [5]float64{0.06, 0.075, 0.082, 0.077, 0.06}

// finger records the vertex range of one tube and what each vertex needs to
// build the bases.
type finger struct {
	base   mgl64.Vec3
	dir    mgl64.Vec3
	side   mgl64.Vec3
	length float64
	first  int
	t      []float64    // 0 at the knuckle, 1 at the tip
	radial []mgl64.Vec3 // outward offset from the finger axis
}

type handBuilder struct {
	verts   []mgl64.Vec3
	tris    [][3]int
	palm    int // palm vertices are [0, palm)
	fingers []finger
}

// NewProceduralHand builds a coarse right hand of a box palm and five tubes
// with 10 shape and 12 pose directions. Shape: palm width, overall finger
// length, five per-finger lengths, thickness, palm length, thumb spread.
// Pose: five finger curls, five finger spreads, wrist flex, palm cup.
func NewProceduralHand() *LinearModel {
	b := &handBuilder{}
	b.addPalm()
	up := mgl64.Vec3{0, 1, 0}
	for i := 0; i < 4; i++ {
		x := -palmWidth/2 + palmWidth*(float64(i)+0.5)/4
		b.addFinger(mgl64.Vec3{x, palmLength, 0}, up, mgl64.Vec3{1, 0, 0}, fingerLengths[i+1], 0.008)
	}
	thumbDir := mgl64.Vec3{-1, 0.7, 0}.Normalize()
	b.addFinger(mgl64.Vec3{-palmWidth / 2, palmLength * 0.3, 0}, thumbDir, mgl64.Vec3{0, -1, 0}, fingerLengths[0], 0.01)

	m, err := NewLinearModel(b.verts, b.tris)
	if err != nil {
		panic(err)
	}
	m.Name = "procedural"
	for _, d := range b.shapeDirections() {
		if err := m.AddShapeDirection(d); err != nil {
			panic(err)
		}
	}
	for _, d := range b.poseDirections() {
		if err := m.AddPoseDirection(d); err != nil {
			panic(err)
		}
	}
	return m
}

func (b *handBuilder) addPalm() {
	for _, z := range []float64{-palmDepth / 2, palmDepth / 2} {
		for _, y := range []float64{0, palmLength} {
			for _, x := range []float64{-palmWidth / 2, palmWidth / 2} {
				b.verts = append(b.verts, mgl64.Vec3{x, y, z})
			}
		}
	}
	// 0..3 back face (z-), 4..7 front face (z+); order x-,x+ then y.
	b.tris = append(b.tris,
		[3]int{0, 2, 1}, [3]int{1, 2, 3},
		[3]int{4, 5, 6}, [3]int{5, 7, 6},
		[3]int{0, 1, 4}, [3]int{1, 5, 4},
		[3]int{2, 6, 3}, [3]int{3, 6, 7},
		[3]int{0, 4, 2}, [3]int{2, 4, 6},
		[3]int{1, 3, 5}, [3]int{3, 7, 5},
	)
	b.palm = len(b.verts)
}

func (b *handBuilder) addFinger(base, dir, side mgl64.Vec3, length, radius float64) {
	f := finger{base: base, dir: dir, side: side, length: length, first: len(b.verts)}
	u := side.Sub(dir.Mul(side.Dot(dir))).Normalize()
	v := dir.Cross(u).Normalize()
	for r := 0; r <= fingerRings; r++ {
		t := float64(r) / fingerRings
		center := base.Add(dir.Mul(length * t))
		for s := 0; s < fingerSegments; s++ {
			theta := 2 * math.Pi * float64(s) / fingerSegments
			off := u.Mul(radius * math.Cos(theta)).Add(v.Mul(radius * math.Sin(theta)))
			b.verts = append(b.verts, center.Add(off))
			f.t = append(f.t, t)
			f.radial = append(f.radial, off)
		}
	}
	for r := 0; r < fingerRings; r++ {
		for s := 0; s < fingerSegments; s++ {
			a := f.first + r*fingerSegments + s
			c := f.first + r*fingerSegments + (s+1)%fingerSegments
			b.tris = append(b.tris, [3]int{a, c, a + fingerSegments}, [3]int{c, c + fingerSegments, a + fingerSegments})
		}
	}
	tip := len(b.verts)
	b.verts = append(b.verts, base.Add(dir.Mul(length+radius)))
	f.t = append(f.t, 1)
	f.radial = append(f.radial, mgl64.Vec3{})
	last := f.first + fingerRings*fingerSegments
	for s := 0; s < fingerSegments; s++ {
		b.tris = append(b.tris, [3]int{last + s, last + (s+1)%fingerSegments, tip})
	}
	b.fingers = append(b.fingers, f)
}

func (b *handBuilder) zero() []mgl64.Vec3 {
	return make([]mgl64.Vec3, len(b.verts))
}

// eachFinger calls fn for every vertex of finger f with its local index.
func (b *handBuilder) eachFinger(f finger, fn func(vi, local int)) {
	for i := range f.t {
		fn(f.first+i, i)
	}
}

func (b *handBuilder) shapeDirections() [][]mgl64.Vec3 {
	var dirs [][]mgl64.Vec3
	thumb := b.fingers[4]

	width := b.zero()
	for i := 0; i < b.palm; i++ {
		width[i] = mgl64.Vec3{b.verts[i][0] * 0.2, 0, 0}
	}
	for _, f := range b.fingers {
		b.eachFinger(f, func(vi, _ int) { width[vi] = mgl64.Vec3{f.base[0] * 0.2, 0, 0} })
	}
	dirs = append(dirs, width)

	all := b.zero()
	for _, f := range b.fingers {
		b.eachFinger(f, func(vi, l int) { all[vi] = f.dir.Mul(f.t[l] * f.length * 0.25) })
	}
	dirs = append(dirs, all)

	// thumb first, then index to little
	for _, k := range []int{4, 0, 1, 2, 3} {
		f := b.fingers[k]
		d := b.zero()
		b.eachFinger(f, func(vi, l int) { d[vi] = f.dir.Mul(f.t[l] * f.length * 0.3) })
		dirs = append(dirs, d)
	}

	thick := b.zero()
	for i := 0; i < b.palm; i++ {
		thick[i] = mgl64.Vec3{0, 0, b.verts[i][2] * 0.3}
	}
	for _, f := range b.fingers {
		b.eachFinger(f, func(vi, l int) { thick[vi] = f.radial[l].Mul(0.3) })
	}
	dirs = append(dirs, thick)

	length := b.zero()
	for i := 0; i < b.palm; i++ {
		length[i] = mgl64.Vec3{0, b.verts[i][1] * 0.2, 0}
	}
	for _, f := range b.fingers {
		b.eachFinger(f, func(vi, _ int) { length[vi] = mgl64.Vec3{0, f.base[1] * 0.2, 0} })
	}
	dirs = append(dirs, length)

	spread := b.zero()
	b.eachFinger(thumb, func(vi, l int) {
		spread[vi] = mgl64.Vec3{-0.3, -0.2, 0}.Mul(thumb.t[l] * thumb.length)
	})
	dirs = append(dirs, spread)
	return dirs
}

func (b *handBuilder) poseDirections() [][]mgl64.Vec3 {
	var dirs [][]mgl64.Vec3
	order := []int{4, 0, 1, 2, 3}
	palmNormal := mgl64.Vec3{0, 0, -1}
	for _, k := range order {
		f := b.fingers[k]
		d := b.zero()
		b.eachFinger(f, func(vi, l int) {
			t := f.t[l]
			d[vi] = palmNormal.Mul(t * f.length * 0.8).Sub(f.dir.Mul(t * t * f.length * 0.3))
		})
		dirs = append(dirs, d)
	}
	for _, k := range order {
		f := b.fingers[k]
		d := b.zero()
		b.eachFinger(f, func(vi, l int) { d[vi] = f.side.Mul(f.t[l] * f.length * 0.3) })
		dirs = append(dirs, d)
	}

	flex := b.zero()
	for i, v := range b.verts {
		flex[i] = mgl64.Vec3{0, 0, -v[1] * 0.3}
	}
	dirs = append(dirs, flex)

	cup := b.zero()
	for i := 0; i < b.palm; i++ {
		cup[i] = mgl64.Vec3{0, 0, -math.Abs(b.verts[i][0]) / (palmWidth / 2) * palmDepth * 0.5}
	}
	for _, f := range b.fingers {
		b.eachFinger(f, func(vi, _ int) {
			cup[vi] = mgl64.Vec3{0, 0, -math.Abs(f.base[0]) / (palmWidth / 2) * palmDepth * 0.5}
		})
	}
	dirs = append(dirs, cup)
	return dirs
}
