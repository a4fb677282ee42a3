package render

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorustyt/manoslider/controller"
	"github.com/gorustyt/manoslider/debug_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pyramid is a square based pyramid standing on the xy plane.
func pyramid() controller.Surface {
	return controller.Surface{
		Vertices: []mgl64.Vec3{
			{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}, {0, 0, 1.5},
		},
		Triangles: [][3]int{
			{0, 1, 2}, {0, 2, 3},
			{0, 1, 4}, {1, 2, 4}, {2, 3, 4}, {3, 0, 4},
		},
	}
}

func smallOptions() Options {
	o := DefaultOptions()
	o.Width, o.Height = 64, 48
	o.Supersample = 1
	o.Overlay = false
	return o
}

func countNonBackground(img *image.NRGBA, bg debug_utils.Colorb) int {
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != bg[0] || img.Pix[i+1] != bg[1] || img.Pix[i+2] != bg[2] {
			n++
		}
	}
	return n
}

func drawPyramid(t *testing.T, opts Options) *Surface {
	t.Helper()
	s, err := New(opts)
	require.NoError(t, err)
	surf := pyramid()
	aspect, err := controller.BoxAspect(surf.Vertices)
	require.NoError(t, err)
	s.Clear()
	s.SetBoxAspect(aspect)
	require.NoError(t, s.PlotTriSurface(surf))
	require.NoError(t, s.Draw())
	return s
}

func TestDrawCallsOnDraw(t *testing.T) {
	s, err := New(smallOptions())
	require.NoError(t, err)
	var got image.Image
	s.OnDraw = func(img image.Image) { got = img }
	require.NoError(t, s.PlotTriSurface(pyramid()))
	require.NoError(t, s.Draw())
	require.NotNil(t, got)
	assert.Equal(t, image.Rect(0, 0, 64, 48), got.Bounds())
}

func TestDrawCoversCentre(t *testing.T) {
	opts := smallOptions()
	s := drawPyramid(t, opts)
	frame := s.Frame()
	covered := countNonBackground(frame, opts.Background)
	assert.Greater(t, covered, 64*48/10)
	assert.Less(t, covered, 64*48)
	assert.NotEqual(t, opts.Background.NRGBA(), frame.NRGBAAt(32, 24), "centre pixel shows the surface")
}

func TestClearLeavesBackground(t *testing.T) {
	opts := smallOptions()
	s := drawPyramid(t, opts)
	s.Clear()
	require.NoError(t, s.Draw())
	assert.Zero(t, countNonBackground(s.Frame(), opts.Background))
}

func TestSupersampleAndOverlay(t *testing.T) {
	opts := smallOptions()
	opts.Width, opts.Height = 160, 120
	opts.Supersample = 3
	opts.Overlay = true
	s := drawPyramid(t, opts)
	assert.Equal(t, 160*3, s.fb.Width())
	assert.Equal(t, image.Rect(0, 0, 160, 120), s.Frame().Bounds())

	// the overlay text sits in the top left corner
	corner := s.Frame().SubImage(image.Rect(0, 0, 80, 20)).(*image.NRGBA)
	assert.Greater(t, countNonBackground(corner, opts.Background), 0)
}

func TestPlotRejectsBadTriangles(t *testing.T) {
	s, err := New(smallOptions())
	require.NoError(t, err)
	surf := pyramid()
	surf.Triangles = append(surf.Triangles, [3]int{0, 1, 5})
	assert.ErrorIs(t, s.PlotTriSurface(surf), ErrBadTriangle)
}

func TestFailedPlotKeepsPreviousSurface(t *testing.T) {
	opts := smallOptions()
	s := drawPyramid(t, opts)
	covered := countNonBackground(s.Frame(), opts.Background)
	aspect := s.aspect

	bad := pyramid()
	bad.Vertices = bad.Vertices[:4]
	s.Clear()
	s.SetBoxAspect(mgl64.Vec3{1, 0.5, 0.5})
	require.ErrorIs(t, s.PlotTriSurface(bad), ErrBadTriangle)
	assert.Equal(t, aspect, s.aspect)

	s.SetView(45, 10)
	require.NoError(t, s.Draw())
	assert.Greater(t, countNonBackground(s.Frame(), opts.Background), covered/2)
}

func TestNewRejectsBadSize(t *testing.T) {
	o := smallOptions()
	o.Width = 0
	_, err := New(o)
	assert.Error(t, err)
}

func TestSetSize(t *testing.T) {
	s, err := New(smallOptions())
	require.NoError(t, err)
	s.SetSize(10, 20)
	require.NoError(t, s.Draw())
	assert.Equal(t, image.Rect(0, 0, 10, 20), s.Frame().Bounds())
	s.SetSize(-1, 5)
	assert.Equal(t, image.Rect(0, 0, 10, 20), s.Frame().Bounds())
}

func TestCameraKeepsBoxInView(t *testing.T) {
	for _, cam := range []Camera{
		{Elevation: DefaultElevation, Azimuth: DefaultAzimuth},
		{Elevation: 90, Azimuth: 0},
		{Elevation: -45, Azimuth: 135},
	} {
		for _, ratio := range []float64{0.5, 1, 2} {
			m := cam.Matrix(ratio)
			centre := m.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
			assert.InDelta(t, 0, centre[0], 1e-9)
			assert.InDelta(t, 0, centre[1], 1e-9)
			for _, x := range []float64{-0.5, 0.5} {
				for _, y := range []float64{-0.5, 0.5} {
					for _, z := range []float64{-0.5, 0.5} {
						c := m.Mul4x1(mgl64.Vec4{x, y, z, 1})
						for k := 0; k < 3; k++ {
							assert.LessOrEqual(t, c[k], 1.0, "%+v corner %v", cam, c)
							assert.GreaterOrEqual(t, c[k], -1.0, "%+v corner %v", cam, c)
						}
					}
				}
			}
		}
	}
}

func TestSetView(t *testing.T) {
	s, err := New(smallOptions())
	require.NoError(t, err)
	s.SetView(10, 20)
	assert.Equal(t, Camera{Elevation: 10, Azimuth: 20}, s.Camera())
}

func TestSave(t *testing.T) {
	opts := smallOptions()
	s := drawPyramid(t, opts)
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "hand.png")
	require.NoError(t, s.Save(pngPath))
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, s.Frame().Bounds(), img.Bounds())

	webpPath := filepath.Join(dir, "hand.webp")
	require.NoError(t, s.Save(webpPath))
	info, err := os.Stat(webpPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, s.Save(filepath.Join(dir, "hand.bmp")))
}
