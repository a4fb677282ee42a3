package ui

import (
	"os"
	"testing"

	"github.com/gorustyt/fyne/v2/test"
	"github.com/gorustyt/manoslider/config"
	"github.com/gorustyt/manoslider/controller"
	"github.com/gorustyt/manoslider/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flakyEvaluator fails every evaluation while fail is set.
type flakyEvaluator struct {
	controller.MeshEvaluator
	fail error
}

func (f *flakyEvaluator) Evaluate(p controller.Params) (controller.Surface, error) {
	if f.fail != nil {
		return controller.Surface{}, f.fail
	}
	return f.MeshEvaluator.Evaluate(p)
}

func newTestViewer(t *testing.T) *Viewer {
	t.Helper()
	return newTestViewerWith(t, model.NewProceduralHand())
}

func newTestViewerWith(t *testing.T, ev controller.MeshEvaluator) *Viewer {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	cfg := config.Default()
	cfg.Render.Width, cfg.Render.Height, cfg.Render.Supersample = 96, 96, 1
	cfg.Render.SnapshotDir = t.TempDir()
	v, err := NewViewer(a, cfg, ev, "test", zap.NewNop())
	require.NoError(t, err)
	return v
}

func TestSlidersFollowLayout(t *testing.T) {
	v := newTestViewer(t)
	assert.Equal(t, 22, v.Props().Len())
	assert.Equal(t, controller.Layout{Pose: 9, Shape: 10, Translation: 3}, v.Controller().Layout())
}

func TestSliderDrivesController(t *testing.T) {
	v := newTestViewer(t)
	v.Props().Slider(0).SetValue(50)
	assert.Equal(t, 0.5, v.Controller().Params().Rotation[0])

	v.Props().Slider(21).SetValue(-100)
	assert.Equal(t, -1.0, v.Controller().Params().Translation[2])
	assert.Equal(t, 0.5, v.Controller().Params().Rotation[0])
}

func TestFailedUpdateShowsStatus(t *testing.T) {
	ev := &flakyEvaluator{MeshEvaluator: model.NewProceduralHand()}
	v := newTestViewerWith(t, ev)
	before := v.Controller().Surface()

	ev.fail = errors.New("evaluator offline")
	v.Props().Slider(0).SetValue(40)
	status, err := v.status.Get()
	require.NoError(t, err)
	assert.Contains(t, status, "update failed")
	assert.Contains(t, status, "evaluator offline")
	assert.Equal(t, before, v.Controller().Surface())

	ev.fail = nil
	v.Props().Slider(1).SetValue(-20)
	status, err = v.status.Get()
	require.NoError(t, err)
	assert.Contains(t, status, "Verts:")
	assert.Equal(t, []float64{0.4, -0.2, 0}, v.Controller().Params().Rotation)
}

func TestResetZeroesSliders(t *testing.T) {
	v := newTestViewer(t)
	initial := v.Controller().Surface().Vertices
	v.Props().Slider(3).SetValue(80)
	v.Props().Slider(12).SetValue(-30)
	v.Reset()
	for i := 0; i < v.Props().Len(); i++ {
		assert.Zero(t, v.Props().Slider(i).Value)
	}
	assert.Equal(t, initial, v.Controller().Surface().Vertices)
}

func TestSnapshotAndExport(t *testing.T) {
	v := newTestViewer(t)
	img, err := v.SaveSnapshot()
	require.NoError(t, err)
	obj, err := v.ExportObj()
	require.NoError(t, err)
	for _, p := range []string{img, obj} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
