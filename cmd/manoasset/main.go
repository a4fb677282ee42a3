// Command manoasset builds a hand model asset for manoslider.
//
//	manoasset -template hand.obj [-shape s.obj]... [-pose p.obj]... -o hand.hmdl
//	manoasset -procedural -o hand.hmdl
//
// Every target OBJ must share the template's vertex order. It contributes
// target - template as one direction.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gorustyt/manoslider/common/xlog"
	"github.com/gorustyt/manoslider/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type options struct {
	template   string
	shapes     []string
	poses      []string
	name       string
	left       bool
	procedural bool
	out        string
	logLevel   string
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err == nil {
		err = run(opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "manoasset: %v\n", err)
		os.Exit(1)
	}
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("manoasset", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.template, "template", "", "template mesh `obj`")
	fs.Func("shape", "shape target `obj` (repeatable)", func(s string) error {
		opts.shapes = append(opts.shapes, s)
		return nil
	})
	fs.Func("pose", "pose target `obj` (repeatable)", func(s string) error {
		opts.poses = append(opts.poses, s)
		return nil
	})
	fs.StringVar(&opts.name, "name", "", "model name stored in the asset")
	fs.BoolVar(&opts.left, "left", false, "mark the model as a left hand")
	fs.BoolVar(&opts.procedural, "procedural", false, "write the built-in procedural hand instead of reading OBJ files")
	fs.StringVar(&opts.out, "o", "", "output `file`")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch {
	case opts.out == "":
		return nil, errors.New("-o is required")
	case opts.procedural && (opts.template != "" || len(opts.shapes) > 0 || len(opts.poses) > 0):
		return nil, errors.New("-procedural cannot be combined with OBJ inputs")
	case !opts.procedural && opts.template == "":
		return nil, errors.New("-template or -procedural is required")
	}
	return opts, nil
}

func build(opts *options) (*model.LinearModel, error) {
	if opts.procedural {
		return model.NewProceduralHand(), nil
	}
	b, err := model.NewBuilder(opts.template)
	if err != nil {
		return nil, err
	}
	for _, p := range opts.shapes {
		if err := b.AddShapeTarget(p); err != nil {
			return nil, errors.Wrapf(err, "shape target %s", p)
		}
	}
	for _, p := range opts.poses {
		if err := b.AddPoseTarget(p); err != nil {
			return nil, errors.Wrapf(err, "pose target %s", p)
		}
	}
	return b.Model(), nil
}

func run(opts *options) error {
	logger, err := xlog.New(xlog.Options{Level: opts.logLevel})
	if err != nil {
		return err
	}
	defer logger.Sync()

	m, err := build(opts)
	if err != nil {
		return err
	}
	if opts.name != "" {
		m.Name = opts.name
	}
	if opts.left {
		m.RightHand = false
	}
	if err := model.Save(opts.out, m); err != nil {
		return err
	}
	logger.Info("asset written",
		zap.String("path", opts.out),
		zap.String("name", m.Name),
		zap.Int("verts", m.NumVerts()),
		zap.Int("shape_dirs", m.ShapeCapacity()),
		zap.Int("pose_dirs", m.PoseCapacity()))
	return nil
}
