// Package controller turns slider changes into hand surface redraws.
//
// A Controller owns the raw control values, the evaluator and the renderer.
// Every change reads all values, normalizes them, evaluates the mesh and
// redraws it. Calls are expected from a single event goroutine.
package controller

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultMin   = -100
	DefaultMax   = 100
	DefaultScale = 100
)

var (
	ErrIndexOutOfRange    = errors.New("control index out of range")
	ErrValueOutOfRange    = errors.New("control value out of range")
	ErrTopologyChanged    = errors.New("evaluator changed the triangle topology")
	ErrVertexCountChanged = errors.New("evaluator changed the vertex count")
)

type Option func(c *Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithRange sets the raw control range and the divisor that maps raw values
// to model parameters.
func WithRange(min, max, scale float64) Option {
	return func(c *Controller) {
		c.min, c.max, c.scale = min, max, scale
	}
}

type Controller struct {
	layout    Layout
	evaluator MeshEvaluator
	renderer  Renderer
	logger    *zap.Logger

	min, max, scale float64

	values    []float64
	params    Params
	surface   Surface
	triangles [][3]int
	numVerts  int
}

func New(layout Layout, evaluator MeshEvaluator, renderer Renderer, opts ...Option) (*Controller, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if evaluator == nil || renderer == nil {
		return nil, errors.New("controller: evaluator and renderer are required")
	}
	c := &Controller{
		layout:    layout,
		evaluator: evaluator,
		renderer:  renderer,
		logger:    zap.NewNop(),
		min:       DefaultMin,
		max:       DefaultMax,
		scale:     DefaultScale,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !(c.min < c.max) || !(c.scale > 0) {
		return nil, errors.Errorf("controller: bad range [%g, %g] scale %g", c.min, c.max, c.scale)
	}
	if c.min > 0 || c.max < 0 {
		return nil, errors.Errorf("controller: range [%g, %g] excludes the zero default", c.min, c.max)
	}
	if cr, ok := evaluator.(CapacityReporter); ok {
		if layout.Shape > cr.ShapeCapacity() {
			return nil, errors.Wrapf(ErrInvalidLayout, "%d shape parameters requested, model has %d", layout.Shape, cr.ShapeCapacity())
		}
		if n := layout.Pose - RotationSize; n > cr.PoseCapacity() {
			return nil, errors.Wrapf(ErrInvalidLayout, "%d pose parameters requested, model has %d", n, cr.PoseCapacity())
		}
	}
	c.values = make([]float64, layout.Total())
	if err := c.update(); err != nil {
		return nil, errors.Wrap(err, "controller: initial surface")
	}
	return c, nil
}

// OnParameterChanged records the raw value of control index and redraws the
// surface from all current values. A failed recompute is logged and
// returned. The value stays recorded and the previous drawing stays on screen.
func (c *Controller) OnParameterChanged(index int, value float64) error {
	if index < 0 || index >= len(c.values) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d of %d", index, len(c.values))
	}
	if !(value >= c.min && value <= c.max) {
		return errors.Wrapf(ErrValueOutOfRange, "value %g outside [%g, %g]", value, c.min, c.max)
	}
	c.values[index] = value
	if err := c.update(); err != nil {
		c.logger.Warn("skip redraw", zap.Int("index", index), zap.Float64("value", value), zap.Error(err))
		return err
	}
	return nil
}

// Reset puts every control back to zero and redraws once.
func (c *Controller) Reset() error {
	for i := range c.values {
		c.values[i] = 0
	}
	if err := c.update(); err != nil {
		c.logger.Warn("skip redraw after reset", zap.Error(err))
		return err
	}
	return nil
}

func (c *Controller) normalized() []float64 {
	res := make([]float64, len(c.values))
	for i, v := range c.values {
		res[i] = v / c.scale
	}
	return res
}

func (c *Controller) update() error {
	start := time.Now()
	params := c.layout.Partition(c.normalized())
	s, err := c.evaluator.Evaluate(params)
	if err != nil {
		return errors.Wrap(err, "evaluate")
	}
	if c.triangles == nil {
		c.triangles = s.Triangles
		c.numVerts = len(s.Vertices)
	} else if !sameTopology(c.triangles, s.Triangles) {
		return ErrTopologyChanged
	} else if len(s.Vertices) != c.numVerts {
		return errors.Wrapf(ErrVertexCountChanged, "%d vertices, expected %d", len(s.Vertices), c.numVerts)
	}
	s.Triangles = c.triangles
	aspect, err := BoxAspect(s.Vertices)
	if err != nil {
		return err
	}

	c.renderer.Clear()
	c.renderer.SetBoxAspect(aspect)
	if err := c.renderer.PlotTriSurface(s); err != nil {
		return errors.Wrap(err, "plot")
	}
	if err := c.renderer.Draw(); err != nil {
		return errors.Wrap(err, "draw")
	}
	c.params = params
	c.surface = s
	c.logger.Debug("surface redrawn",
		zap.Int("verts", len(s.Vertices)),
		zap.Int("tris", len(s.Triangles)),
		zap.Duration("took", time.Since(start)))
	return nil
}

func sameTopology(a, b [][3]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (c *Controller) Layout() Layout { return c.layout }

// Range returns the raw control bounds.
func (c *Controller) Range() (min, max float64) { return c.min, c.max }

// Values returns a copy of the raw control values.
func (c *Controller) Values() []float64 {
	return clone(c.values)
}

// Params returns the parameters of the last successful redraw.
func (c *Controller) Params() Params { return c.params }

// Surface returns the surface of the last successful redraw.
func (c *Controller) Surface() Surface { return c.surface }
