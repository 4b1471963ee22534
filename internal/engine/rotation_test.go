package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/scatter/internal/model"
)

func TestPositionAngle_Endpoints(t *testing.T) {
	assert.InDelta(t, -15.0, PositionAngle(0, 0, 100, -15, 15), 1e-9)
	assert.InDelta(t, 15.0, PositionAngle(100, 0, 100, -15, 15), 1e-9)
	assert.InDelta(t, 0.0, PositionAngle(50, 0, 100, -15, 15), 1e-9)
}

func TestPositionAngle_ClampsOutsideExtent(t *testing.T) {
	assert.InDelta(t, -15.0, PositionAngle(-40, 0, 100, -15, 15), 1e-9)
	assert.InDelta(t, 15.0, PositionAngle(140, 0, 100, -15, 15), 1e-9)
}

func TestRandomAngle_WithinRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 1000; i++ {
		a := RandomAngle(rng, -20, 35)
		assert.GreaterOrEqual(t, a, -20.0)
		assert.Less(t, a, 35.0)
	}
}

func TestRandomAngle_EmptyRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	assert.Equal(t, 5.0, RandomAngle(rng, 5, 5))
}

func TestRotationFor_PositionUsesCommittedX(t *testing.T) {
	s := model.DefaultSettings()
	s.Bounds = model.NewRect(0, 0, 100, 100)
	s.Rotation = model.RotationPosition
	s.MinAngle = -15
	s.MaxAngle = 15

	assert.InDelta(t, -15.0, rotationFor(s, nil, model.NewRect(0, 0, 10, 10)), 1e-9)
	assert.InDelta(t, 12.0, rotationFor(s, nil, model.NewRect(90, 0, 10, 10)), 1e-9)
	assert.InDelta(t, 0.0, rotationFor(s, nil, model.NewRect(50, 40, 20, 20)), 1e-9)
}
