package debug_utils

import (
	"image/color"

	"github.com/gorustyt/manoslider/common"
)

type Colorb [4]uint8

func (c Colorb) R() uint8 {
	return c[0]
}

func (c Colorb) G() uint8 {
	return c[1]
}

func (c Colorb) B() uint8 {
	return c[2]
}

func (c Colorb) A() uint8 {
	return c[3]
}

func (c Colorb) NRGBA() color.NRGBA {
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func DuRGBA[T int | int32 | uint8](r, g, b, a T) Colorb {
	return Colorb{uint8(r), uint8(g), uint8(b), uint8(a)}
}

func DuRGBAf(fr, fg, fb, fa float64) Colorb {
	return DuRGBA(unit8(fr), unit8(fg), unit8(fb), unit8(fa))
}

func unit8(f float64) int {
	return common.Clamp(int(f*255.0+0.5), 0, 255)
}

// DuMultCol scales the rgb channels by d/256 and keeps alpha.
func DuMultCol(col Colorb, d uint8) Colorb {
	di := int(d)
	return DuRGBA(int(col.R())*di>>8, int(col.G())*di>>8, int(col.B())*di>>8, int(col.A()))
}

// DuShadeCol scales the rgb channels by f in [0,1] and keeps alpha.
func DuShadeCol(col Colorb, f float64) Colorb {
	return DuMultCol(col, uint8(unit8(f)))
}

func DuLerpCol(ca, cb Colorb, u uint8) Colorb {
	ui := int(u)
	lerp := func(a, b uint8) int {
		return (int(a)*(255-ui) + int(b)*ui) / 255
	}
	return DuRGBA(lerp(ca.R(), cb.R()), lerp(ca.G(), cb.G()), lerp(ca.B(), cb.B()), lerp(ca.A(), cb.A()))
}

var (
	coolWarmLow  = DuRGBAf(0.2298, 0.2987, 0.7537, 1)
	coolWarmMid  = DuRGBAf(0.8650, 0.8650, 0.8650, 1)
	coolWarmHigh = DuRGBAf(0.7057, 0.0156, 0.1502, 1)
)

// CoolWarm maps t in [0,1] onto a blue-grey-red diverging colormap. t is
// clamped.
func CoolWarm(t float64) Colorb {
	switch {
	case !(t > 0):
		return coolWarmLow
	case t >= 1:
		return coolWarmHigh
	case t < 0.5:
		return DuLerpCol(coolWarmLow, coolWarmMid, uint8(unit8(t*2)))
	}
	return DuLerpCol(coolWarmMid, coolWarmHigh, uint8(unit8(t*2-1)))
}
