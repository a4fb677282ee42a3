package common

import (
	"testing"
)

func assertTrue(t *testing.T, value bool, msg string) {
	t.Helper()
	if !value {
		t.Error(msg)
	}
}

func TestClamp(t *testing.T) {
	assertTrue(t, Clamp(2, 0, 1) == 1, "Higher than range error")
	assertTrue(t, Clamp(1, 0, 2) == 1, "Within range error")
	assertTrue(t, Clamp(0, 1, 2) == 1, "Lower than range error")
	assertTrue(t, Clamp(-150.0, -100, 100) == -100, "Float lower than range error")
}


func TestVminVmax(t *testing.T) {
	mn := Vec3{1, 2, 3}
	mx := Vec3{1, 2, 3}
	v := Vec3{0, 5, 3}
	Vmin(&mn, v)
	Vmax(&mx, v)
	assertTrue(t, mn == Vec3{0, 2, 3}, "Vmin selects element-wise minimum")
	assertTrue(t, mx == Vec3{1, 5, 3}, "Vmax selects element-wise maximum")
}

func TestCalcBounds(t *testing.T) {
	_, ok := CalcBounds(nil)
	assertTrue(t, !ok, "empty set has no bounds")

	b, ok := CalcBounds([]Vec3{{-1, 0, 2}, {3, 1, 2}, {0, -2, 4}})
	assertTrue(t, ok, "bounds of non-empty set")
	assertTrue(t, b.Min == Vec3{-1, -2, 2}, "min corner")
	assertTrue(t, b.Max == Vec3{3, 1, 4}, "max corner")
	assertTrue(t, b.Extent() == Vec3{4, 3, 2}, "extent")
	assertTrue(t, b.Center() == Vec3{1, -0.5, 3}, "center")
	m, axis := b.MaxExtent()
	assertTrue(t, m == 4 && axis == 0, "longest axis is x")
}

func TestFlattenRoundTrip(t *testing.T) {
	flat := []float32{1, 2, 3, 4, 5, 6}
	vs := UnflattenVec3(flat)
	assertTrue(t, len(vs) == 2, "two vectors")
	assertTrue(t, vs[1] == Vec3{4, 5, 6}, "second vector")
	back := FlattenVec3(vs)
	assertTrue(t, len(back) == 6 && back[5] == 6, "flatten restores layout")
	assertTrue(t, GetVert3(back, 1)[0] == 4, "GetVert3 indexes by triple")
}
