package model

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorustyt/manoslider/controller"
	"github.com/pkg/errors"
)

// maxFaceVerts bounds the polygon size accepted from an OBJ face line.
const maxFaceVerts = 32

// objMesh is a triangulated OBJ mesh. Polygons are split as fans.
type objMesh struct {
	verts []mgl64.Vec3
	tris  [][3]int
}

func loadObjFile(p string) (*objMesh, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, errors.Wrap(err, "open obj")
	}
	defer f.Close()
	m, err := parseObj(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", p)
	}
	return m, nil
}

func parseObj(r io.Reader) (*objMesh, error) {
	m := &objMesh{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		row := strings.TrimSpace(scanner.Text())
		if row == "" || strings.HasPrefix(row, "#") {
			continue
		}
		fields := strings.Fields(row)
		var err error
		switch fields[0] {
		case "v":
			err = m.parseVertex(fields[1:])
		case "f":
			err = m.parseFace(fields[1:])
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(m.verts) == 0 {
		return nil, errors.New("no vertices")
	}
	return m, nil
}

func (m *objMesh) parseVertex(ss []string) error {
	if len(ss) < 3 {
		return errors.Errorf("vertex needs 3 coordinates, got %d", len(ss))
	}
	var v mgl64.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(ss[i], 64)
		if err != nil {
			return errors.Wrap(err, "vertex coordinate")
		}
		v[i] = f
	}
	m.verts = append(m.verts, v)
	return nil
}

func (m *objMesh) parseFace(ss []string) error {
	if len(ss) > maxFaceVerts {
		ss = ss[:maxFaceVerts]
	}
	data := make([]int, 0, len(ss))
	for _, s := range ss {
		ref := strings.SplitN(s, "/", 2)[0]
		vi, err := strconv.Atoi(ref)
		if err != nil {
			return errors.Wrap(err, "face index")
		}
		if vi < 0 {
			vi += len(m.verts)
		} else {
			vi--
		}
		if vi < 0 || vi >= len(m.verts) {
			return errors.Errorf("face index %s out of range", ref)
		}
		data = append(data, vi)
	}
	for i := 2; i < len(data); i++ {
		m.tris = append(m.tris, [3]int{data[0], data[i-1], data[i]})
	}
	return nil
}

// WriteObj writes s as a minimal OBJ file.
func WriteObj(w io.Writer, s controller.Surface) error {
	bw := bufio.NewWriter(w)
	for _, v := range s.Vertices {
		bw.WriteString("v ")
		bw.WriteString(strconv.FormatFloat(v[0], 'g', -1, 64))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(v[1], 'g', -1, 64))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(v[2], 'g', -1, 64))
		bw.WriteByte('\n')
	}
	for _, t := range s.Triangles {
		bw.WriteString("f ")
		bw.WriteString(strconv.Itoa(t[0] + 1))
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(t[1] + 1))
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(t[2] + 1))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
