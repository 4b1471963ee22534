package engine

import (
	"math"
	"testing"

	"github.com/piwi3910/scatter/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestDistanceSq_NineCases(t *testing.T) {
	a := model.RectLTRB(10, 10, 20, 20)

	tests := []struct {
		name string
		b    model.Rect
		want float64
	}{
		{"overlapping", model.RectLTRB(15, 15, 25, 25), 0},
		{"touching edge", model.RectLTRB(20, 10, 30, 20), 0},
		{"right", model.RectLTRB(30, 12, 40, 18), 100},
		{"left", model.RectLTRB(0, 12, 5, 18), 25},
		{"above", model.RectLTRB(12, 0, 18, 4), 36},
		{"below", model.RectLTRB(12, 25, 18, 30), 25},
		{"below left", model.RectLTRB(0, 23, 6, 30), 25},
		{"above left", model.RectLTRB(0, 0, 7, 6), 25},
		{"above right", model.RectLTRB(23, 0, 30, 6), 25},
		{"below right", model.RectLTRB(24, 23, 30, 30), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceSq(a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, DistanceSq(tt.b, a), 1e-9, "distance should be symmetric")
			assert.InDelta(t, math.Sqrt(tt.want), Distance(a, tt.b), 1e-9)
		})
	}
}

func TestDistance_MatchesClosestPointFormula(t *testing.T) {
	a := model.RectLTRB(0, 0, 10, 10)
	for _, b := range []model.Rect{
		model.RectLTRB(13, 14, 20, 20),
		model.RectLTRB(-8, 2, -3, 6),
		model.RectLTRB(4, -9, 6, -1),
		model.RectLTRB(-5, 12, -2, 18),
	} {
		dx := math.Max(0, math.Max(b.Left-a.Right, a.Left-b.Right))
		dy := math.Max(0, math.Max(b.Top-a.Bottom, a.Top-b.Bottom))
		assert.InDelta(t, math.Hypot(dx, dy), Distance(a, b), 1e-9, "b=%v", b)
	}
}

func TestFindClosest(t *testing.T) {
	r := model.RectLTRB(50, 50, 60, 60)
	others := []model.Rect{
		model.RectLTRB(0, 0, 10, 10),
		model.RectLTRB(70, 50, 80, 60),
		model.RectLTRB(50, 90, 60, 100),
	}

	idx, d := FindClosest(r, others)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 100.0, d, 1e-9)

	idx, d = FindClosest(r, nil)
	assert.Equal(t, -1, idx)
	assert.True(t, math.IsInf(d, 1))
}
