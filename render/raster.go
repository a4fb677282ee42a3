package render

import (
	"image"
	"math"

	"github.com/gorustyt/manoslider/debug_utils"
)

// FrameBuffer is a colour image plus a depth buffer. Larger depth is closer.
type FrameBuffer struct {
	Color *image.NRGBA
	Depth []float64
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Color: image.NewNRGBA(image.Rect(0, 0, w, h)),
		Depth: make([]float64, w*h),
	}
}

func (fb *FrameBuffer) Width() int  { return fb.Color.Rect.Dx() }
func (fb *FrameBuffer) Height() int { return fb.Color.Rect.Dy() }

// Clear fills the colour buffer with bg and resets depth to -inf.
func (fb *FrameBuffer) Clear(bg debug_utils.Colorb) {
	pix := fb.Color.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = bg[0], bg[1], bg[2], bg[3]
	}
	for i := range fb.Depth {
		fb.Depth[i] = math.Inf(-1)
	}
}

// screenVert is a vertex in pixel coordinates with depth.
type screenVert struct {
	x, y, z float64
}

// fillTriangle rasterizes a flat coloured triangle with a depth test.
func (fb *FrameBuffer) fillTriangle(a, b, c screenVert, col debug_utils.Colorb) {
	w, h := fb.Width(), fb.Height()
	minX := int(math.Floor(math.Min(math.Min(a.x, b.x), c.x)))
	maxX := int(math.Ceil(math.Max(math.Max(a.x, b.x), c.x)))
	minY := int(math.Floor(math.Min(math.Min(a.y, b.y), c.y)))
	maxY := int(math.Ceil(math.Max(math.Max(a.y, b.y), c.y)))
	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, w-1)
	maxY = min(maxY, h-1)
	if minX > maxX || minY > maxY {
		return
	}

	det := (b.y-c.y)*(a.x-c.x) + (c.x-b.x)*(a.y-c.y)
	if math.Abs(det) < 1e-12 {
		return
	}
	invDet := 1 / det
	dyBC, dxCB := b.y-c.y, c.x-b.x
	dyCA, dxAC := c.y-a.y, a.x-c.x

	for py := minY; py <= maxY; py++ {
		sy := float64(py) + 0.5 - c.y
		row := py * w
		for px := minX; px <= maxX; px++ {
			sx := float64(px) + 0.5 - c.x
			w0 := (dyBC*sx + dxCB*sy) * invDet
			w1 := (dyCA*sx + dxAC*sy) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			if z <= fb.Depth[row+px] {
				continue
			}
			fb.Depth[row+px] = z
			off := fb.Color.PixOffset(px, py)
			fb.Color.Pix[off] = col[0]
			fb.Color.Pix[off+1] = col[1]
			fb.Color.Pix[off+2] = col[2]
			fb.Color.Pix[off+3] = col[3]
		}
	}
}
