// Package render draws triangulated surfaces into images with a small
// software rasterizer.
package render

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorustyt/manoslider/common"
	"github.com/gorustyt/manoslider/controller"
	"github.com/gorustyt/manoslider/debug_utils"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

var _ controller.Renderer = (*Surface)(nil)

var ErrBadTriangle = errors.New("render: triangle index out of range")

type Options struct {
	Width  int
	Height int
	// Supersample renders at this multiple of the output size and filters
	// down. Values below 1 are treated as 1.
	Supersample int
	Elevation   float64
	Azimuth     float64
	Background  debug_utils.Colorb
	// Overlay prints the vertex and triangle count in the corner.
	Overlay bool
}

func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      800,
		Supersample: 2,
		Elevation:   DefaultElevation,
		Azimuth:     DefaultAzimuth,
		Background:  debug_utils.DuRGBA(255, 255, 255, 255),
		Overlay:     true,
	}
}

// Surface implements controller.Renderer. Draw renders the plotted surface
// and hands the frame to OnDraw.
type Surface struct {
	opts    Options
	camera  Camera
	aspect  mgl64.Vec3
	plotted *controller.Surface

	// last accepted plot, restored when the plot after a Clear fails
	prevPlotted *controller.Surface
	prevAspect  mgl64.Vec3

	fb      *FrameBuffer
	frame   *image.NRGBA
	overlay *textOverlay

	OnDraw func(img image.Image)
}

func New(opts Options) (*Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.Errorf("render: bad size %dx%d", opts.Width, opts.Height)
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	s := &Surface{
		opts:   opts,
		camera: Camera{Elevation: opts.Elevation, Azimuth: opts.Azimuth},
		aspect: mgl64.Vec3{1, 1, 1},
	}
	if opts.Overlay {
		o, err := newTextOverlay()
		if err != nil {
			return nil, err
		}
		s.overlay = o
	}
	s.alloc()
	return s, nil
}

func (s *Surface) alloc() {
	ss := s.opts.Supersample
	s.fb = NewFrameBuffer(s.opts.Width*ss, s.opts.Height*ss)
	s.frame = image.NewNRGBA(image.Rect(0, 0, s.opts.Width, s.opts.Height))
}

// SetSize changes the output size. The next Draw uses it.
func (s *Surface) SetSize(w, h int) {
	if w <= 0 || h <= 0 || (w == s.opts.Width && h == s.opts.Height) {
		return
	}
	s.opts.Width, s.opts.Height = w, h
	s.alloc()
}

func (s *Surface) SetView(elevation, azimuth float64) {
	s.camera = Camera{Elevation: elevation, Azimuth: azimuth}
}

func (s *Surface) Camera() Camera { return s.camera }

// Clear empties the plot. A failing PlotTriSurface before the next Draw puts
// the previous plot and aspect back.
func (s *Surface) Clear() {
	if s.plotted != nil {
		s.prevPlotted, s.prevAspect = s.plotted, s.aspect
	}
	s.plotted = nil
}

func (s *Surface) SetBoxAspect(aspect mgl64.Vec3) {
	s.aspect = aspect
}

func (s *Surface) PlotTriSurface(surf controller.Surface) error {
	n := len(surf.Vertices)
	for i, t := range surf.Triangles {
		for _, idx := range t {
			if idx < 0 || idx >= n {
				if s.plotted == nil && s.prevPlotted != nil {
					s.plotted, s.aspect = s.prevPlotted, s.prevAspect
				}
				return errors.Wrapf(ErrBadTriangle, "triangle %d index %d of %d", i, idx, n)
			}
		}
	}
	s.plotted = &surf
	s.prevPlotted = nil
	return nil
}

// Frame returns the last drawn image. It is reused by the next Draw.
func (s *Surface) Frame() *image.NRGBA { return s.frame }

func (s *Surface) Draw() error {
	s.prevPlotted = nil
	s.fb.Clear(s.opts.Background)
	if s.plotted != nil {
		s.rasterize(*s.plotted)
	}
	if s.opts.Supersample == 1 {
		copy(s.frame.Pix, s.fb.Color.Pix)
	} else {
		draw.CatmullRom.Scale(s.frame, s.frame.Bounds(), s.fb.Color, s.fb.Color.Bounds(), draw.Src, nil)
	}
	if s.overlay != nil && s.plotted != nil {
		if err := s.overlay.drawCounts(s.frame, len(s.plotted.Vertices), len(s.plotted.Triangles)); err != nil {
			return err
		}
	}
	if s.OnDraw != nil {
		s.OnDraw(s.frame)
	}
	return nil
}

// boxCoords maps verts into a box centred on the origin whose sides are the
// aspect factors.
func boxCoords(verts []mgl64.Vec3, aspect mgl64.Vec3) []mgl64.Vec3 {
	res := make([]mgl64.Vec3, len(verts))
	b, ok := common.CalcBounds(verts)
	if !ok {
		return res
	}
	e, c := b.Extent(), b.Center()
	for i, v := range verts {
		for k := 0; k < 3; k++ {
			if e[k] > 0 {
				res[i][k] = (v[k] - c[k]) / e[k] * aspect[k]
			}
		}
	}
	return res
}

var lightDir = mgl64.Vec3{-0.3, 0.5, 1}.Normalize()

func (s *Surface) rasterize(surf controller.Surface) {
	w, h := float64(s.fb.Width()), float64(s.fb.Height())
	box := boxCoords(surf.Vertices, s.aspect)
	view := s.camera.View()
	mvp := s.camera.Matrix(w / h)

	screen := make([]screenVert, len(box))
	for i, v := range box {
		clip := mvp.Mul4x1(v.Vec4(1))
		screen[i] = screenVert{
			x: (clip[0] + 1) / 2 * w,
			y: (1 - clip[1]) / 2 * h,
			z: -clip[2],
		}
	}

	zmin, zmax := math.Inf(1), math.Inf(-1)
	for _, v := range box {
		zmin = math.Min(zmin, v[2])
		zmax = math.Max(zmax, v[2])
	}
	zrange := zmax - zmin

	for _, t := range surf.Triangles {
		a, b, c := box[t[0]], box[t[1]], box[t[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() < 1e-15 {
			continue
		}
		nv := view.Mul4x1(n.Normalize().Vec4(0)).Vec3()
		shade := 0.35 + 0.65*math.Abs(nv.Dot(lightDir))

		height := 0.5
		if zrange > 0 {
			height = ((a[2]+b[2]+c[2])/3 - zmin) / zrange
		}
		col := debug_utils.DuShadeCol(debug_utils.CoolWarm(height), shade)
		s.fb.fillTriangle(screen[t[0]], screen[t[1]], screen[t[2]], col)
	}
}
