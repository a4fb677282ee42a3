// Command manoslider shows a hand model with one slider per parameter.
//
//	manoslider [flags] <num_pose_params>
//
// num_pose_params excludes the 3 global rotation parameters. It may be left
// out when the -config file sets num_pose_params. Unless -shape or the file
// sets it, the shape count is lowered to the number of shape directions the
// model has.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gorustyt/fyne/v2/app"
	"github.com/gorustyt/fyne/v2/theme"
	"github.com/gorustyt/manoslider/common/xlog"
	"github.com/gorustyt/manoslider/config"
	"github.com/gorustyt/manoslider/model"
	"github.com/gorustyt/manoslider/ui"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err == nil {
		err = run(cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "manoslider: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs layers defaults, the optional config file, the environment and
// flags, then validates the result.
func parseArgs(args []string, stderr io.Writer) (*config.Config, error) {
	fs := flag.NewFlagSet("manoslider", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML config `file`")
	modelPath := fs.String("model", "", "model asset `path` (.hmdl or .obj), overrides $"+config.ModelEnv)
	shape := fs.Int("shape", 0, "number of shape parameters")
	transl := fs.Int("transl", 0, "number of translation parameters (0 or 3)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	logFile := fs.String("log-file", "", "rotating log `file`")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: manoslider [flags] <num_pose_params>\n\n"+
			"num_pose_params may be omitted when the -config file sets it.\n"+
			"Without -shape the shape count is capped at the model's shape directions.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, errors.New("expected at most one argument: the number of pose parameters")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	switch {
	case fs.NArg() == 1:
		numPose, err := strconv.Atoi(fs.Arg(0))
		if err != nil {
			return nil, errors.Wrapf(err, "num_pose_params %q", fs.Arg(0))
		}
		cfg.NumPoseParams = numPose
		cfg.PoseSet = true
	case !cfg.PoseSet:
		fs.Usage()
		return nil, errors.New("missing argument: the number of pose parameters")
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.ModelPath = *modelPath
		case "shape":
			cfg.NumShapeParams = *shape
			cfg.ShapeSet = true
		case "transl":
			cfg.NumTranslParams = *transl
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-file":
			cfg.Log.File = *logFile
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *config.Config) error {
	logger, err := xlog.New(cfg.LogOptions())
	if err != nil {
		return err
	}
	defer logger.Sync()

	m, err := model.Load(cfg.ModelPath)
	if err != nil {
		return err
	}
	logger.Info("model loaded",
		zap.String("path", cfg.ModelPath),
		zap.String("name", m.Name),
		zap.Int("verts", m.NumVerts()),
		zap.Int("tris", m.NumTriangles()),
		zap.Int("shape_dirs", m.ShapeCapacity()),
		zap.Int("pose_dirs", m.PoseCapacity()))

	if cfg.FitShape(m.ShapeCapacity()) {
		logger.Info("shape count lowered to the model's shape directions",
			zap.Int("num_shape_params", cfg.NumShapeParams))
	}

	side := "right"
	if !m.RightHand {
		side = "left"
	}
	a := app.NewWithID("manoslider")
	a.Settings().SetTheme(theme.DarkTheme())
	v, err := ui.NewViewer(a, cfg, m, fmt.Sprintf("manoslider - %s (%s hand)", m.Name, side), logger)
	if err != nil {
		return err
	}
	v.ShowAndRun()
	return nil
}
