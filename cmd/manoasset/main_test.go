package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorustyt/manoslider/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triObj = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func TestParseArgs(t *testing.T) {
	opts, err := parseArgs([]string{"-template", "t.obj", "-shape", "a.obj", "-shape", "b.obj", "-pose", "c.obj", "-o", "out.hmdl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.obj", "b.obj"}, opts.shapes)
	assert.Equal(t, []string{"c.obj"}, opts.poses)

	for _, args := range [][]string{
		{"-template", "t.obj"},
		{"-o", "out.hmdl"},
		{"-procedural", "-template", "t.obj", "-o", "out.hmdl"},
	} {
		_, err := parseArgs(args, &bytes.Buffer{})
		assert.Error(t, err, "%q", args)
	}
}

func TestRunFromObj(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "t.obj")
	target := filepath.Join(dir, "s.obj")
	out := filepath.Join(dir, "hand"+model.AssetExt)
	require.NoError(t, os.WriteFile(tmpl, []byte(triObj), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("v 0 0 1\nv 1 0 1\nv 0 1 1\n"), 0o644))

	opts, err := parseArgs([]string{"-template", tmpl, "-shape", target, "-name", "tri", "-left", "-log-level", "error", "-o", out}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, run(opts))

	m, err := model.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "tri", m.Name)
	assert.False(t, m.RightHand)
	assert.Equal(t, 1, m.ShapeCapacity())
	assert.Equal(t, 0, m.PoseCapacity())
}

func TestRunProcedural(t *testing.T) {
	out := filepath.Join(t.TempDir(), "hand"+model.AssetExt)
	opts, err := parseArgs([]string{"-procedural", "-log-level", "error", "-o", out}, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, run(opts))
	m, err := model.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "procedural", m.Name)
	assert.Equal(t, 10, m.ShapeCapacity())
}

func TestRunMissingTarget(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "t.obj")
	require.NoError(t, os.WriteFile(tmpl, []byte(triObj), 0o644))
	opts := &options{template: tmpl, poses: []string{filepath.Join(dir, "nope.obj")}, out: filepath.Join(dir, "o.hmdl"), logLevel: "error"}
	assert.Error(t, run(opts))
}
