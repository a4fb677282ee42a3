package controller

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxAspect(t *testing.T) {
	a, err := BoxAspect([]mgl64.Vec3{{0, 0, 0}, {2, 1, 0.5}})
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{1, 0.5, 0.25}, a)
}

func TestBoxAspectProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 100; trial++ {
		verts := make([]mgl64.Vec3, 3+rng.Intn(50))
		for i := range verts {
			verts[i] = mgl64.Vec3{rng.NormFloat64() * 3, rng.NormFloat64(), rng.NormFloat64() * 0.1}
		}
		a, err := BoxAspect(verts)
		require.NoError(t, err)
		ones := 0
		for _, f := range a {
			require.Greater(t, f, 0.0)
			require.LessOrEqual(t, f, 1.0)
			if f == 1 {
				ones++
			}
		}
		require.Equal(t, 1, ones, "aspect %v", a)
	}
}

func TestBoxAspectDegenerate(t *testing.T) {
	_, err := BoxAspect(nil)
	assert.ErrorIs(t, err, ErrDegenerateSurface)
	_, err = BoxAspect([]mgl64.Vec3{{1, 1, 1}, {1, 1, 1}})
	assert.ErrorIs(t, err, ErrDegenerateSurface)
}
