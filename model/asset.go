package model

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorustyt/manoslider/common"
	"github.com/gorustyt/manoslider/common/message"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Asset record field numbers.
const (
	fieldName      protowire.Number = 1
	fieldTemplate  protowire.Number = 2
	fieldFaces     protowire.Number = 3
	fieldShapeDir  protowire.Number = 4
	fieldPoseDir   protowire.Number = 5
	fieldRightHand protowire.Number = 6
)

var fieldTypes = map[protowire.Number]protowire.Type{
	fieldName:      protowire.BytesType,
	fieldTemplate:  protowire.BytesType,
	fieldFaces:     protowire.BytesType,
	fieldShapeDir:  protowire.BytesType,
	fieldPoseDir:   protowire.BytesType,
	fieldRightHand: protowire.VarintType,
}

// AssetExt is the extension written by Save.
const AssetExt = ".hmdl"

var ErrBadAsset = errors.New("malformed model asset")

// Encode serializes m as a protobuf wire-format record.
func Encode(m *LinearModel) []byte {
	var b []byte
	if m.Name != "" {
		b = message.AppendString(b, fieldName, m.Name)
	}
	b = message.AppendPackedFloat64s(b, fieldTemplate, common.FlattenVec3(m.template))
	faces := make([]uint32, 0, len(m.triangles)*3)
	for _, t := range m.triangles {
		faces = append(faces, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	b = message.AppendPackedUint32s(b, fieldFaces, faces)
	for _, d := range m.shapeDirs {
		b = message.AppendPackedFloat64s(b, fieldShapeDir, common.FlattenVec3(d))
	}
	for _, d := range m.poseDirs {
		b = message.AppendPackedFloat64s(b, fieldPoseDir, common.FlattenVec3(d))
	}
	b = message.AppendBool(b, fieldRightHand, m.RightHand)
	return b
}

func Decode(data []byte) (*LinearModel, error) {
	var (
		name      string
		right     = true
		template  []float64
		faces     []uint32
		shape     [][]float64
		pose      [][]float64
		haveFaces bool
		decodeErr error
	)
	err := message.Walk(data, func(f message.Field) error {
		if want, ok := fieldTypes[f.Num]; ok && f.Type != want {
			return errors.Errorf("field %d has wire type %d, want %d", f.Num, f.Type, want)
		}
		switch f.Num {
		case fieldName:
			name = string(f.Payload)
		case fieldTemplate:
			template, decodeErr = message.DecodePackedFloat64s(f.Payload)
		case fieldFaces:
			faces, decodeErr = message.DecodePackedUint32s(f.Payload)
			haveFaces = true
		case fieldShapeDir:
			var d []float64
			d, decodeErr = message.DecodePackedFloat64s(f.Payload)
			shape = append(shape, d)
		case fieldPoseDir:
			var d []float64
			d, decodeErr = message.DecodePackedFloat64s(f.Payload)
			pose = append(pose, d)
		case fieldRightHand:
			right = protowire.DecodeBool(f.Varint)
		}
		return decodeErr
	})
	if err != nil {
		return nil, errors.Wrap(ErrBadAsset, err.Error())
	}
	if len(template) == 0 || len(template)%3 != 0 {
		return nil, errors.Wrapf(ErrBadAsset, "template has %d coordinates", len(template))
	}
	if !haveFaces || len(faces)%3 != 0 {
		return nil, errors.Wrapf(ErrBadAsset, "faces have %d indices", len(faces))
	}
	tris := make([][3]int, len(faces)/3)
	for i := range tris {
		f := common.GetVert3(faces, i)
		tris[i] = [3]int{int(f[0]), int(f[1]), int(f[2])}
	}
	m, err := NewLinearModel(common.UnflattenVec3(template), tris)
	if err != nil {
		return nil, errors.Wrap(ErrBadAsset, err.Error())
	}
	m.Name = name
	m.RightHand = right
	for _, d := range shape {
		if len(d)%3 != 0 || m.AddShapeDirection(common.UnflattenVec3(d)) != nil {
			return nil, errors.Wrapf(ErrBadAsset, "shape direction %d", m.ShapeCapacity())
		}
	}
	for _, d := range pose {
		if len(d)%3 != 0 || m.AddPoseDirection(common.UnflattenVec3(d)) != nil {
			return nil, errors.Wrapf(ErrBadAsset, "pose direction %d", m.PoseCapacity())
		}
	}
	return m, nil
}

// Load reads a model asset. An .obj file yields a template-only model named
// after the file.
func Load(path string) (*LinearModel, error) {
	if strings.EqualFold(filepath.Ext(path), ".obj") {
		obj, err := loadObjFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "model: load")
		}
		m, err := NewLinearModel(obj.verts, obj.tris)
		if err != nil {
			return nil, err
		}
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "model: load")
	}
	m, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "model: %s", path)
	}
	return m, nil
}

func Save(path string, m *LinearModel) error {
	return errors.Wrap(os.WriteFile(path, Encode(m), 0o644), "model: save")
}

// Builder assembles a LinearModel from a template OBJ and target OBJs that
// share its topology. Each target contributes target - template.
type Builder struct {
	model *LinearModel
}

func NewBuilder(templatePath string) (*Builder, error) {
	m, err := Load(templatePath)
	if err != nil {
		return nil, err
	}
	return &Builder{model: m}, nil
}

func (b *Builder) offsets(targetPath string) ([]mgl64.Vec3, error) {
	obj, err := loadObjFile(targetPath)
	if err != nil {
		return nil, err
	}
	if len(obj.verts) != len(b.model.template) {
		return nil, errors.Wrapf(ErrDirectionLength, "%s has %d verts, template has %d",
			targetPath, len(obj.verts), len(b.model.template))
	}
	d := make([]mgl64.Vec3, len(obj.verts))
	for i, v := range obj.verts {
		d[i] = v.Sub(b.model.template[i])
	}
	return d, nil
}

func (b *Builder) AddShapeTarget(path string) error {
	d, err := b.offsets(path)
	if err != nil {
		return err
	}
	return b.model.AddShapeDirection(d)
}

func (b *Builder) AddPoseTarget(path string) error {
	d, err := b.offsets(path)
	if err != nil {
		return err
	}
	return b.model.AddPoseDirection(d)
}

func (b *Builder) Model() *LinearModel { return b.model }
