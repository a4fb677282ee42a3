package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
)

const overlayFontSize = 12

type textOverlay struct {
	font *truetype.Font
	src  *image.Uniform
}

func newTextOverlay() (*textOverlay, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "render: parse overlay font")
	}
	return &textOverlay{font: f, src: image.NewUniform(color.NRGBA{R: 40, G: 40, B: 40, A: 255})}, nil
}

func (o *textOverlay) drawString(dst *image.NRGBA, text string, x, y int) error {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(o.font)
	ctx.SetFontSize(overlayFontSize)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(o.src)
	pt := freetype.Pt(x, y+int(ctx.PointToFixed(overlayFontSize)>>6))
	_, err := ctx.DrawString(text, pt)
	return errors.Wrap(err, "render: overlay")
}

func (o *textOverlay) drawCounts(dst *image.NRGBA, verts, tris int) error {
	return o.drawString(dst, fmt.Sprintf("Verts: %d  Tris: %d", verts, tris), 8, 6)
}
