// Package config holds the viewer settings: parameter counts, the model
// asset, slider range, window and render sizes and logging.
package config

import (
	"bytes"
	"os"

	"github.com/gorustyt/manoslider/common/xlog"
	"github.com/gorustyt/manoslider/controller"
	"github.com/gorustyt/manoslider/render"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// ModelEnv names the environment variable that overrides ModelPath.
const ModelEnv = "MANOSLIDER_MODEL"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	ModelPath string `toml:"model_path"`
	// NumPoseParams excludes the 3 global rotation parameters.
	NumPoseParams   int `toml:"num_pose_params"`
	NumShapeParams  int `toml:"num_shape_params"`
	NumTranslParams int `toml:"num_transl_params"`

	// PoseSet and ShapeSet record that the count came from a file or a
	// flag rather than from Default.
	PoseSet  bool `toml:"-"`
	ShapeSet bool `toml:"-"`

	Slider SliderConfig `toml:"slider"`
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Log    LogConfig    `toml:"log"`
}

type SliderConfig struct {
	Min   float64 `toml:"min"`
	Max   float64 `toml:"max"`
	Step  float64 `toml:"step"`
	Scale float64 `toml:"scale"`
}

type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type RenderConfig struct {
	Width       int     `toml:"width"`
	Height      int     `toml:"height"`
	Supersample int     `toml:"supersample"`
	Elevation   float64 `toml:"elevation"`
	Azimuth     float64 `toml:"azimuth"`
	SnapshotDir string  `toml:"snapshot_dir"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

func Default() *Config {
	return &Config{
		ModelPath:       "../mano_v1_2/models/hand.hmdl",
		NumPoseParams:   6,
		NumShapeParams:  controller.DefaultShapeSize,
		NumTranslParams: controller.DefaultTranslationSize,
		Slider: SliderConfig{
			Min:   controller.DefaultMin,
			Max:   controller.DefaultMax,
			Step:  1,
			Scale: controller.DefaultScale,
		},
		Window: WindowConfig{Width: 1200, Height: 900},
		Render: RenderConfig{
			Width:       800,
			Height:      800,
			Supersample: 2,
			Elevation:   render.DefaultElevation,
			Azimuth:     render.DefaultAzimuth,
			SnapshotDir: ".",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads a TOML file over the defaults. Unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read")
	}
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	var keys map[string]any
	if err := toml.Unmarshal(data, &keys); err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	_, cfg.PoseSet = keys["num_pose_params"]
	_, cfg.ShapeSet = keys["num_shape_params"]
	return cfg, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	if p := os.Getenv(ModelEnv); p != "" {
		c.ModelPath = p
	}
}

// FitShape lowers a defaulted shape count to what the model provides. It
// reports whether the count changed.
func (c *Config) FitShape(capacity int) bool {
	if c.ShapeSet || c.NumShapeParams <= capacity {
		return false
	}
	c.NumShapeParams = max(capacity, 0)
	return true
}

func (c *Config) Layout() controller.Layout {
	return controller.Layout{
		Pose:        c.NumPoseParams + controller.RotationSize,
		Shape:       c.NumShapeParams,
		Translation: c.NumTranslParams,
	}
}

func (c *Config) Validate() error {
	switch {
	case c.NumPoseParams < 0 || c.NumShapeParams < 0 || c.NumTranslParams < 0:
		return errors.Wrapf(ErrInvalid, "parameter counts must not be negative (pose %d, shape %d, translation %d)",
			c.NumPoseParams, c.NumShapeParams, c.NumTranslParams)
	case c.ModelPath == "":
		return errors.Wrap(ErrInvalid, "model_path is empty")
	case !(c.Slider.Min < c.Slider.Max):
		return errors.Wrapf(ErrInvalid, "slider range [%g, %g] is empty", c.Slider.Min, c.Slider.Max)
	case c.Slider.Min > 0 || c.Slider.Max < 0:
		return errors.Wrapf(ErrInvalid, "slider range [%g, %g] must contain 0", c.Slider.Min, c.Slider.Max)
	case !(c.Slider.Scale > 0):
		return errors.Wrapf(ErrInvalid, "slider scale %g must be positive", c.Slider.Scale)
	case c.Slider.Step < 0:
		return errors.Wrapf(ErrInvalid, "slider step %g is negative", c.Slider.Step)
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return errors.Wrapf(ErrInvalid, "render size %dx%d", c.Render.Width, c.Render.Height)
	}
	if err := c.Layout().Validate(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

func (c *Config) LogOptions() xlog.Options {
	return xlog.Options{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}

func (c *Config) RenderOptions() render.Options {
	o := render.DefaultOptions()
	o.Width = c.Render.Width
	o.Height = c.Render.Height
	o.Supersample = c.Render.Supersample
	o.Elevation = c.Render.Elevation
	o.Azimuth = c.Render.Azimuth
	return o
}
