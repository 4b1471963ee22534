package engine

import (
	"math/rand/v2"

	"github.com/piwi3910/scatter/internal/model"
)

// RandomAngle draws a uniform angle in [minAngle, maxAngle).
func RandomAngle(rng *rand.Rand, minAngle, maxAngle float64) float64 {
	if maxAngle <= minAngle {
		return minAngle
	}
	return rng.Float64()*(maxAngle-minAngle) + minAngle
}

// PositionAngle maps x linearly from [extentMin, extentMax] onto
// [minAngle, maxAngle], clamping positions outside the extent.
func PositionAngle(x, extentMin, extentMax, minAngle, maxAngle float64) float64 {
	angle := model.MapRange(x, extentMin, extentMax, minAngle, maxAngle)
	return max(minAngle, min(angle, maxAngle))
}

// rotationFor returns the angle for an item committed at r. Position mode
// maps the committed x, the left edge reported as Outcome.X.
func rotationFor(s model.LayoutSettings, rng *rand.Rand, r model.Rect) float64 {
	switch s.Rotation {
	case model.RotationRandom:
		return RandomAngle(rng, s.MinAngle, s.MaxAngle)
	case model.RotationPosition:
		return PositionAngle(r.Left, s.Bounds.Left, s.Bounds.Right, s.MinAngle, s.MaxAngle)
	default:
		return 0
	}
}
