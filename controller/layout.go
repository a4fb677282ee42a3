package controller

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// RotationSize is the number of global rotation parameters at the head
	// of the pose range.
	RotationSize = 3

	// Sizes substituted when a group is configured with zero controls.
	DefaultShapeSize       = 10
	DefaultTranslationSize = 3
)

var ErrInvalidLayout = errors.New("invalid parameter layout")

// Kind names the group a control belongs to.
type Kind int

const (
	KindRotation Kind = iota
	KindPose
	KindShape
	KindTranslation
)

func (k Kind) String() string {
	switch k {
	case KindRotation:
		return "rotation"
	case KindPose:
		return "pose"
	case KindShape:
		return "shape"
	case KindTranslation:
		return "translation"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Layout partitions the control vector into contiguous groups. Pose counts
// the rotation parameters too.
type Layout struct {
	Pose        int
	Shape       int
	Translation int
}

func (l Layout) Validate() error {
	switch {
	case l.Pose < RotationSize:
		return errors.Wrapf(ErrInvalidLayout, "pose count %d is below the %d rotation parameters", l.Pose, RotationSize)
	case l.Shape < 0:
		return errors.Wrapf(ErrInvalidLayout, "shape count %d is negative", l.Shape)
	case l.Translation != 0 && l.Translation != DefaultTranslationSize:
		return errors.Wrapf(ErrInvalidLayout, "translation count must be 0 or %d, got %d", DefaultTranslationSize, l.Translation)
	}
	return nil
}

func (l Layout) Total() int {
	return l.Pose + l.Shape + l.Translation
}

// Kind returns the group of control i.
func (l Layout) Kind(i int) Kind {
	switch {
	case i < RotationSize:
		return KindRotation
	case i < l.Pose:
		return KindPose
	case i < l.Pose+l.Shape:
		return KindShape
	}
	return KindTranslation
}

// Label is the caption shown next to control i.
func (l Layout) Label(i int) string {
	return fmt.Sprintf("%s Parameter %d", l.Kind(i), i+1)
}

// Params is the normalized control vector split per group.
type Params struct {
	Rotation    []float64
	Pose        []float64
	Shape       []float64
	Translation []float64
}

// Partition splits normalized values into groups. Empty shape or
// translation groups become zero vectors of the default size.
// len(values) must equal l.Total().
func (l Layout) Partition(values []float64) Params {
	p := Params{
		Rotation: clone(values[:RotationSize]),
		Pose:     clone(values[RotationSize:l.Pose]),
	}
	if l.Shape == 0 {
		p.Shape = make([]float64, DefaultShapeSize)
	} else {
		p.Shape = clone(values[l.Pose : l.Pose+l.Shape])
	}
	if l.Translation == 0 {
		p.Translation = make([]float64, DefaultTranslationSize)
	} else {
		p.Translation = clone(values[l.Pose+l.Shape:])
	}
	return p
}

func clone(vs []float64) []float64 {
	res := make([]float64, len(vs))
	copy(res, vs)
	return res
}
