// Package ui is the fyne front end: a slider grid above the rendered hand.
package ui

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/gorustyt/fyne/v2"
	"github.com/gorustyt/fyne/v2/canvas"
	"github.com/gorustyt/fyne/v2/container"
	"github.com/gorustyt/fyne/v2/data/binding"
	"github.com/gorustyt/fyne/v2/dialog"
	"github.com/gorustyt/fyne/v2/widget"
	"github.com/gorustyt/manoslider/config"
	"github.com/gorustyt/manoslider/controller"
	"github.com/gorustyt/manoslider/model"
	"github.com/gorustyt/manoslider/render"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Viewer struct {
	window  fyne.Window
	ctrl    *controller.Controller
	surface *render.Surface
	image   *canvas.Image
	props   *Props
	status  binding.String
	logger  *zap.Logger

	snapshotDir string
}

// NewViewer builds the controller, the renderer and the window content.
// Errors here are startup errors.
func NewViewer(a fyne.App, cfg *config.Config, ev controller.MeshEvaluator, title string, logger *zap.Logger) (*Viewer, error) {
	surface, err := render.New(cfg.RenderOptions())
	if err != nil {
		return nil, err
	}
	v := &Viewer{
		window:      a.NewWindow(title),
		surface:     surface,
		status:      binding.NewString(),
		logger:      logger,
		snapshotDir: cfg.Render.SnapshotDir,
	}
	v.image = canvas.NewImageFromImage(surface.Frame())
	v.image.FillMode = canvas.ImageFillContain
	v.image.SetMinSize(fyne.NewSize(400, 400))
	surface.OnDraw = func(frame image.Image) {
		v.image.Image = frame
		v.image.Refresh()
	}

	v.ctrl, err = controller.New(cfg.Layout(), ev, surface,
		controller.WithLogger(logger),
		controller.WithRange(cfg.Slider.Min, cfg.Slider.Max, cfg.Slider.Scale))
	if err != nil {
		return nil, err
	}
	v.showCounts()

	v.props = NewProps(cfg.Layout(), cfg.Slider)
	v.props.OnChanged = v.onParameterChanged

	v.window.SetContent(container.NewBorder(
		v.props.GetRenderObj(),
		container.NewVBox(v.viewControls(cfg), v.toolbar()),
		nil, nil,
		v.image,
	))
	v.window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	return v, nil
}

func (v *Viewer) Window() fyne.Window { return v.window }

func (v *Viewer) Controller() *controller.Controller { return v.ctrl }

func (v *Viewer) Props() *Props { return v.props }

func (v *Viewer) onParameterChanged(index int, value float64) {
	if err := v.ctrl.OnParameterChanged(index, value); err != nil {
		v.status.Set(fmt.Sprintf("update failed: %v", err))
		return
	}
	v.showCounts()
}

func (v *Viewer) showCounts() {
	s := v.ctrl.Surface()
	v.status.Set(fmt.Sprintf("Verts: %d  Tris: %d", len(s.Vertices), len(s.Triangles)))
}

func (v *Viewer) viewControls(cfg *config.Config) fyne.CanvasObject {
	elev := widget.NewSlider(-90, 90)
	elev.Value = cfg.Render.Elevation
	azim := widget.NewSlider(-180, 180)
	azim.Value = cfg.Render.Azimuth
	onView := func(float64) {
		v.surface.SetView(elev.Value, azim.Value)
		if err := v.surface.Draw(); err != nil {
			v.logger.Warn("redraw view", zap.Error(err))
		}
	}
	elev.OnChanged = onView
	azim.OnChanged = onView
	return container.NewGridWithColumns(4,
		widget.NewLabel("Elevation"), elev,
		widget.NewLabel("Azimuth"), azim,
	)
}

func (v *Viewer) toolbar() fyne.CanvasObject {
	reset := widget.NewButton("Reset", v.Reset)
	snapshot := widget.NewButton("Save Image", func() {
		path, err := v.SaveSnapshot()
		v.report("snapshot", path, err)
	})
	export := widget.NewButton("Export OBJ", func() {
		path, err := v.ExportObj()
		v.report("export", path, err)
	})
	snapshot.Importance = widget.HighImportance
	return container.NewHBox(reset, snapshot, export, widget.NewLabelWithData(v.status))
}

func (v *Viewer) report(what, path string, err error) {
	if err != nil {
		v.logger.Error(what+" failed", zap.Error(err))
		dialog.ShowError(err, v.window)
		return
	}
	v.logger.Info(what+" written", zap.String("path", path))
	v.status.Set(fmt.Sprintf("%s written to %s", what, path))
}

// Reset zeroes every slider and redraws once.
func (v *Viewer) Reset() {
	v.props.Reset()
	if err := v.ctrl.Reset(); err != nil {
		v.status.Set(fmt.Sprintf("reset failed: %v", err))
		return
	}
	v.showCounts()
}

func (v *Viewer) outputPath(ext string) (string, error) {
	if v.snapshotDir != "" {
		if err := os.MkdirAll(v.snapshotDir, 0o755); err != nil {
			return "", errors.Wrap(err, "output dir")
		}
	}
	name := fmt.Sprintf("hand-%s%s", time.Now().Format("20060102-150405.000"), ext)
	return filepath.Join(v.snapshotDir, name), nil
}

func (v *Viewer) SaveSnapshot() (string, error) {
	path, err := v.outputPath(".png")
	if err != nil {
		return "", err
	}
	return path, v.surface.Save(path)
}

func (v *Viewer) ExportObj() (path string, err error) {
	path, err = v.outputPath(".obj")
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return path, errors.Wrap(err, "export obj")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrap(cerr, "export obj")
		}
	}()
	return path, model.WriteObj(f, v.ctrl.Surface())
}

func (v *Viewer) ShowAndRun() {
	v.window.ShowAndRun()
}
