package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/piwi3910/scatter/internal/model"
)

// Stats summarizes how evenly a result is spread.
type Stats struct {
	Placed          int       `json:"placed"`
	Unplaced        int       `json:"unplaced"`
	MinPairDistance float64   `json:"min_pair_distance"` // Smallest rect-to-rect distance between any two placed items
	NearestDistance []float64 `json:"nearest_distance"`  // Per placed item, distance to its nearest neighbour
	MeanNearest     float64   `json:"mean_nearest"`
	StdDevNearest   float64   `json:"stddev_nearest"`
	Evenness        float64   `json:"evenness"` // Coefficient of variation of NearestDistance; lower is more even
	Coverage        float64   `json:"coverage"` // Placed item area as a percentage of the candidate region area
}

// Analyze computes separation statistics for the placed items of a result.
// Distance fields are zero when fewer than two items were placed.
func Analyze(result model.DistributeResult) Stats {
	placements := result.Placements()
	stats := Stats{
		Placed:   len(placements),
		Unplaced: len(result.Outcomes) - len(placements),
	}

	var itemArea float64
	for _, p := range placements {
		itemArea += p.Rect.Area()
	}
	if regionArea := RegionArea(result.Regions); regionArea > 0 {
		stats.Coverage = itemArea / regionArea * 100.0
	}

	if len(placements) < 2 {
		return stats
	}

	rects := make([]model.Rect, len(placements))
	for i, p := range placements {
		rects[i] = p.Rect
	}

	nearest := make([]float64, len(rects))
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}
	minPair := math.Inf(1)
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			d := Distance(rects[i], rects[j])
			nearest[i] = math.Min(nearest[i], d)
			nearest[j] = math.Min(nearest[j], d)
			minPair = math.Min(minPair, d)
		}
	}

	stats.MinPairDistance = minPair
	stats.NearestDistance = nearest
	stats.MeanNearest, stats.StdDevNearest = stat.MeanStdDev(nearest, nil)
	if stats.MeanNearest > 0 {
		stats.Evenness = stats.StdDevNearest / stats.MeanNearest
	}
	return stats
}

// MinPairDistance returns the smallest distance between any two rects, or
// +Inf when fewer than two are given.
func MinPairDistance(rects []model.Rect) float64 {
	minDist := math.Inf(1)
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			minDist = math.Min(minDist, Distance(rects[i], rects[j]))
		}
	}
	return minDist
}
