package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/piwi3910/scatter/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestSettings(seed uint64) model.LayoutSettings {
	s := model.DefaultSettings()
	s.Bounds = model.RectLTRB(0, 0, 100, 100)
	s.Avoid = []model.Rect{model.RectLTRB(40, 40, 60, 60)}
	return s.WithSeed(seed)
}

func makeTestItems(n int, w, h float64) []model.Item {
	items := make([]model.Item, n)
	for i := range items {
		items[i] = model.NewItem("item", w, h)
	}
	return items
}

// assertLayoutInvariants checks that no two placed items overlap, and that
// every placed item stays clear of the avoid rects and inside the draw region.
func assertLayoutInvariants(t *testing.T, result model.DistributeResult) {
	t.Helper()
	placements := result.Placements()
	for i := range placements {
		r := placements[i].Rect
		assert.True(t, result.Bounds.Contains(r), "item %d at %v leaves the draw region %v", i, r, result.Bounds)
		for _, a := range result.Avoid {
			assert.False(t, r.Intersects(a), "item %d at %v overlaps avoid %v", i, r, a)
		}
		for j := i + 1; j < len(placements); j++ {
			assert.False(t, r.Intersects(placements[j].Rect), "items %d and %d overlap", i, j)
		}
	}
}

func TestDistribute_TwoItemsAroundCenterAvoid(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		result, err := Distribute(context.Background(), defaultTestSettings(seed), makeTestItems(2, 10, 10))
		require.NoError(t, err)

		require.Equal(t, 2, result.PlacedCount(), "seed %d", seed)
		assertLayoutInvariants(t, result)

		p := result.Placements()
		assert.Greater(t, Distance(p[0].Rect, p[1].Rect), 5.0, "seed %d", seed)
	}
}

func TestDistribute_NoOverlapInvariant(t *testing.T) {
	s := model.DefaultSettings()
	s.Bounds = model.RectLTRB(0, 0, 200, 200)
	s.Avoid = []model.Rect{
		model.RectLTRB(20, 20, 60, 60),
		model.RectLTRB(120, 100, 160, 180),
	}
	s.AvoidPadding = 1.2
	s = s.WithSeed(99)

	result, err := Distribute(context.Background(), s, makeTestItems(30, 8, 8))
	require.NoError(t, err)

	assert.Equal(t, 30, result.PlacedCount())
	assertLayoutInvariants(t, result)

	// Padded avoids are reported, so the original rects are strictly inside them.
	for i, a := range s.Avoid {
		assert.True(t, result.Avoid[i].Contains(a))
	}
}

func TestDistribute_FullyAvoided(t *testing.T) {
	s := defaultTestSettings(3)
	s.Avoid = []model.Rect{model.RectLTRB(-10, -10, 110, 110)}

	result, err := Distribute(context.Background(), s, makeTestItems(5, 10, 10))
	require.NoError(t, err)

	assert.Empty(t, result.Regions)
	require.Len(t, result.Outcomes, 5)
	for _, o := range result.Outcomes {
		assert.False(t, o.Placed)
		assert.Equal(t, model.ReasonNoRegions, o.Reason)
	}
}

func TestDistribute_Deterministic(t *testing.T) {
	s := defaultTestSettings(1234)
	s.Rotation = model.RotationRandom
	items := makeTestItems(12, 6, 9)

	first, err := Distribute(context.Background(), s, items)
	require.NoError(t, err)
	second, err := Distribute(context.Background(), s, items)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDistribute_ParallelDeterministic(t *testing.T) {
	s := defaultTestSettings(77)
	s.Workers = 4
	items := makeTestItems(15, 7, 7)

	first, err := Distribute(context.Background(), s, items)
	require.NoError(t, err)
	second, err := Distribute(context.Background(), s, items)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 15, first.PlacedCount())
	assertLayoutInvariants(t, first)
}

func TestDistribute_ReplayWithReportedSeed(t *testing.T) {
	s := defaultTestSettings(0)
	s.Seed = nil
	items := makeTestItems(6, 10, 5)

	first, err := Distribute(context.Background(), s, items)
	require.NoError(t, err)

	replay, err := Distribute(context.Background(), s.WithSeed(first.Seed), items)
	require.NoError(t, err)

	assert.Equal(t, first.Outcomes, replay.Outcomes)
}

func TestDistribute_OrderMatters(t *testing.T) {
	small := model.NewItem("small", 5, 5)
	large := model.NewItem("large", 30, 20)

	a, err := Distribute(context.Background(), defaultTestSettings(5), []model.Item{small, large})
	require.NoError(t, err)
	b, err := Distribute(context.Background(), defaultTestSettings(5), []model.Item{large, small})
	require.NoError(t, err)

	assert.Equal(t, "small", a.Outcomes[0].Item.Label)
	assert.Equal(t, "large", b.Outcomes[0].Item.Label)
	assert.NotEqual(t, a.Outcomes[0].Rect(), b.Outcomes[1].Rect())
}

func TestDistribute_OversizedItemFailsWithoutStoppingBatch(t *testing.T) {
	items := []model.Item{
		model.NewItem("fits", 10, 10),
		model.NewItem("huge", 150, 150),
		model.NewItem("fits too", 10, 10),
	}

	result, err := Distribute(context.Background(), defaultTestSettings(11), items)
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 3)
	assert.True(t, result.Outcomes[0].Placed)
	assert.False(t, result.Outcomes[1].Placed)
	assert.Equal(t, model.ReasonRetriesExhausted, result.Outcomes[1].Reason)
	assert.True(t, result.Outcomes[2].Placed)
}

func TestDistribute_DegenerateItems(t *testing.T) {
	items := []model.Item{
		model.NewItem("point", 0, 0),
		model.NewItem("line", 0, 12),
		model.NewItem("box", 10, 10),
	}

	result, err := Distribute(context.Background(), defaultTestSettings(8), items)
	require.NoError(t, err)

	assert.Equal(t, 3, result.PlacedCount())
	assertLayoutInvariants(t, result)
}

func TestDistribute_BoundPaddingShrinksRegion(t *testing.T) {
	s := defaultTestSettings(21)
	s.Avoid = nil
	s.BoundPadding = 0.5

	result, err := Distribute(context.Background(), s, makeTestItems(8, 4, 4))
	require.NoError(t, err)

	assert.Equal(t, model.RectLTRB(25, 25, 75, 75), result.Bounds)
	for _, p := range result.Placements() {
		assert.True(t, result.Bounds.Contains(p.Rect), "item %v outside padded bounds", p.Rect)
	}
}

func TestDistribute_AreaSampling(t *testing.T) {
	s := defaultTestSettings(31)
	s.Sampling = model.SamplingArea

	result, err := Distribute(context.Background(), s, makeTestItems(10, 8, 8))
	require.NoError(t, err)

	assert.Equal(t, 10, result.PlacedCount())
	assertLayoutInvariants(t, result)
}

func TestDistribute_PositionRotation(t *testing.T) {
	s := defaultTestSettings(17)
	s.Rotation = model.RotationPosition
	s.MinAngle = -15
	s.MaxAngle = 15

	result, err := Distribute(context.Background(), s, makeTestItems(10, 10, 10))
	require.NoError(t, err)

	for _, o := range result.Outcomes {
		require.True(t, o.Placed)
		want := PositionAngle(o.X, 0, 100, -15, 15)
		assert.InDelta(t, want, o.Rotation, 1e-9)
		assert.GreaterOrEqual(t, o.Rotation, -15.0)
		assert.LessOrEqual(t, o.Rotation, 15.0)
	}
}

func TestDistribute_RandomRotationWithinRange(t *testing.T) {
	s := defaultTestSettings(18)
	s.Rotation = model.RotationRandom
	s.MinAngle = -30
	s.MaxAngle = 10

	result, err := Distribute(context.Background(), s, makeTestItems(20, 5, 5))
	require.NoError(t, err)

	for _, o := range result.Placements() {
		assert.GreaterOrEqual(t, o.Rotation, -30.0)
		assert.Less(t, o.Rotation, 10.0)
	}
}

func TestDistribute_NoRotationByDefault(t *testing.T) {
	result, err := Distribute(context.Background(), defaultTestSettings(19), makeTestItems(4, 5, 5))
	require.NoError(t, err)

	for _, o := range result.Placements() {
		assert.Zero(t, o.Rotation)
	}
}

func TestDistribute_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Distribute(ctx, defaultTestSettings(4), makeTestItems(3, 10, 10))

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	require.Len(t, result.Outcomes, 3)
	for _, o := range result.Outcomes {
		assert.Equal(t, model.ReasonCanceled, o.Reason)
	}
}

func TestNew_RejectsInvalidBounds(t *testing.T) {
	s := defaultTestSettings(1)
	s.Bounds = model.RectLTRB(0, 0, 100, 0)

	d, err := New(s)

	assert.Nil(t, d)
	assert.ErrorIs(t, err, model.ErrInvalidBounds)
}

func TestReconfigure_KeepsPreviousOnError(t *testing.T) {
	d, err := New(defaultTestSettings(1))
	require.NoError(t, err)
	before := d.Regions()

	bad := defaultTestSettings(1)
	bad.Retries = -5
	assert.ErrorIs(t, d.Reconfigure(bad), model.ErrInvalidRetries)
	assert.Equal(t, before, d.Regions())

	resized := defaultTestSettings(1)
	resized.Bounds = model.RectLTRB(0, 0, 200, 100)
	require.NoError(t, d.Reconfigure(resized))
	assert.InDelta(t, 20000.0-400.0, RegionArea(d.Regions()), 1e-9)
}

func TestBestCandidate_MoreRetriesNeverWorse(t *testing.T) {
	placed := []model.Rect{
		model.RectLTRB(5, 5, 15, 15),
		model.RectLTRB(70, 75, 80, 85),
		model.RectLTRB(80, 10, 90, 20),
	}
	item := model.NewItem("Marker", 10, 10)

	few := defaultTestSettings(1)
	few.Retries = 10
	many := defaultTestSettings(1)
	many.Retries = 200

	dFew, err := New(few)
	require.NoError(t, err)
	dMany, err := New(many)
	require.NoError(t, err)

	for seed := uint64(1); seed <= 50; seed++ {
		small, okSmall, err := dFew.bestCandidate(context.Background(), item, placed, seed)
		require.NoError(t, err)
		large, okLarge, err := dMany.bestCandidate(context.Background(), item, placed, seed)
		require.NoError(t, err)

		if okSmall {
			require.True(t, okLarge)
			assert.GreaterOrEqual(t, large.distSq, small.distSq, "seed %d", seed)
		}
	}
}

func TestDistribute_LogsPlacements(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(defaultTestSettings(2))
	require.NoError(t, err)
	d.Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	_, err = d.Distribute(context.Background(), makeTestItems(2, 10, 10))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "item placed")
}
