package engine

import (
	"math"

	"github.com/piwi3910/scatter/internal/model"
)

// DistanceSq returns the squared distance between the closest points of two
// axis-aligned rectangles. Overlapping or touching rects are 0 apart.
//
// The relative position is classified per axis: b strictly left of a, a
// strictly left of b, b strictly above a, a strictly above b. Diagonal
// separations measure corner to corner; single-axis separations measure the
// gap along that axis.
func DistanceSq(a, b model.Rect) float64 {
	left := b.Right < a.Left   // b is left of a
	right := a.Right < b.Left  // b is right of a
	above := b.Bottom < a.Top  // b is above a
	below := a.Bottom < b.Top  // b is below a

	switch {
	case below && left:
		return model.Point{X: a.Left, Y: a.Bottom}.DistanceSq(model.Point{X: b.Right, Y: b.Top})
	case left && above:
		return model.Point{X: a.Left, Y: a.Top}.DistanceSq(model.Point{X: b.Right, Y: b.Bottom})
	case above && right:
		return model.Point{X: a.Right, Y: a.Top}.DistanceSq(model.Point{X: b.Left, Y: b.Bottom})
	case right && below:
		return model.Point{X: a.Right, Y: a.Bottom}.DistanceSq(model.Point{X: b.Left, Y: b.Top})
	case left:
		d := a.Left - b.Right
		return d * d
	case right:
		d := b.Left - a.Right
		return d * d
	case above:
		d := a.Top - b.Bottom
		return d * d
	case below:
		d := b.Top - a.Bottom
		return d * d
	default:
		return 0
	}
}

// Distance returns the true distance between two rectangles.
func Distance(a, b model.Rect) float64 {
	return math.Sqrt(DistanceSq(a, b))
}

// FindClosest returns the index of the rect in rs nearest to r and the
// squared distance to it. It returns -1 and +Inf for an empty slice.
// This is a linear scan; item counts are expected to stay in the tens.
func FindClosest(r model.Rect, rs []model.Rect) (int, float64) {
	closest := -1
	closestDist := math.Inf(1)
	for i, o := range rs {
		if d := DistanceSq(r, o); d < closestDist {
			closest = i
			closestDist = d
		}
	}
	return closest, closestDist
}
