package controller

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutValidate(t *testing.T) {
	for _, tc := range []struct {
		layout Layout
		ok     bool
	}{
		{Layout{Pose: 3}, true},
		{Layout{Pose: 9, Shape: 10, Translation: 3}, true},
		{Layout{Pose: 48, Shape: 0, Translation: 0}, true},
		{Layout{Pose: 2, Shape: 10, Translation: 3}, false},
		{Layout{Pose: -1}, false},
		{Layout{Pose: 9, Shape: -1, Translation: 3}, false},
		{Layout{Pose: 9, Shape: 10, Translation: 2}, false},
		{Layout{Pose: 9, Shape: 10, Translation: -3}, false},
	} {
		err := tc.layout.Validate()
		if tc.ok {
			assert.NoError(t, err, "%+v", tc.layout)
		} else {
			assert.ErrorIs(t, err, ErrInvalidLayout, "%+v", tc.layout)
		}
	}
}

func TestLayoutLabels(t *testing.T) {
	l := Layout{Pose: 5, Shape: 2, Translation: 3}
	assert.Equal(t, 10, l.Total())
	assert.Equal(t, "rotation Parameter 1", l.Label(0))
	assert.Equal(t, "rotation Parameter 3", l.Label(2))
	assert.Equal(t, "pose Parameter 4", l.Label(3))
	assert.Equal(t, "shape Parameter 6", l.Label(5))
	assert.Equal(t, "translation Parameter 8", l.Label(7))
	assert.Equal(t, KindTranslation, l.Kind(9))
}

func TestPartitionLengths(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, l := range []Layout{
		{Pose: 3},
		{Pose: 9, Shape: 10, Translation: 3},
		{Pose: 12, Shape: 4, Translation: 0},
		{Pose: 3, Shape: 0, Translation: 3},
	} {
		for trial := 0; trial < 20; trial++ {
			values := make([]float64, l.Total())
			for i := range values {
				values[i] = rng.Float64()*2 - 1
			}
			p := l.Partition(values)
			require.Len(t, p.Rotation, RotationSize)
			require.Len(t, p.Pose, l.Pose-RotationSize)
			if l.Shape == 0 {
				require.Equal(t, make([]float64, DefaultShapeSize), p.Shape)
			} else {
				require.Len(t, p.Shape, l.Shape)
			}
			if l.Translation == 0 {
				require.Equal(t, make([]float64, DefaultTranslationSize), p.Translation)
			} else {
				require.Len(t, p.Translation, l.Translation)
			}
		}
	}
}

func TestPartitionCopiesValues(t *testing.T) {
	l := Layout{Pose: 3, Shape: 1, Translation: 3}
	values := []float64{1, 2, 3, 4, 5, 6, 7}
	p := l.Partition(values)
	values[0] = 99
	assert.Equal(t, []float64{1, 2, 3}, p.Rotation)
	assert.Equal(t, []float64{4}, p.Shape)
	assert.Equal(t, []float64{5, 6, 7}, p.Translation)
}
