package engine

import (
	"slices"

	"github.com/piwi3910/scatter/internal/model"
)

// Partition splits the draw region into disjoint candidate rectangles that
// do not overlap any avoidance rectangle.
//
// Every left/right edge of the bounds and of each avoidance rect becomes a
// vertical cut, every top/bottom edge a horizontal one. The resulting grid is
// the coarsest whose cells never straddle an avoidance boundary, so a cell is
// either fully free or at least partly covered. Covered cells are dropped.
// Cells come back in row-major order (top to bottom, then left to right).
//
// Edges that fall outside the bounds are ignored, which also discards
// avoidance rects lying entirely outside. An empty result means the draw
// region is fully covered.
func Partition(bounds model.Rect, avoid []model.Rect) []model.Rect {
	if bounds.Empty() {
		return nil
	}

	xs := []float64{bounds.Left, bounds.Right}
	ys := []float64{bounds.Top, bounds.Bottom}
	for _, a := range avoid {
		xs = appendWithin(xs, bounds.Left, bounds.Right, a.Left, a.Right)
		ys = appendWithin(ys, bounds.Top, bounds.Bottom, a.Top, a.Bottom)
	}
	xs = sortedDistinct(xs)
	ys = sortedDistinct(ys)

	regions := make([]model.Rect, 0, (len(xs)-1)*(len(ys)-1))
	for iy := 0; iy < len(ys)-1; iy++ {
		for ix := 0; ix < len(xs)-1; ix++ {
			cell := model.Rect{Left: xs[ix], Top: ys[iy], Right: xs[ix+1], Bottom: ys[iy+1]}
			if cell.Empty() || intersectsAny(cell, avoid) {
				continue
			}
			regions = append(regions, cell)
		}
	}
	return regions
}

// appendWithin appends the given coordinates that fall strictly inside [lo, hi].
func appendWithin(dst []float64, lo, hi float64, vals ...float64) []float64 {
	for _, v := range vals {
		if v > lo && v < hi {
			dst = append(dst, v)
		}
	}
	return dst
}

func sortedDistinct(vals []float64) []float64 {
	slices.Sort(vals)
	return slices.Compact(vals)
}

// intersectsAny reports whether r overlaps at least one rect in rs.
func intersectsAny(r model.Rect, rs []model.Rect) bool {
	for _, o := range rs {
		if r.Intersects(o) {
			return true
		}
	}
	return false
}

// RegionArea returns the total area covered by the regions.
func RegionArea(regions []model.Rect) float64 {
	var total float64
	for _, r := range regions {
		total += r.Area()
	}
	return total
}

// MergeRegions joins horizontally adjacent cells that share the same
// vertical span into wider strips. The input must be in the row-major order
// produced by Partition. Sampling always uses the raw partition; merged
// strips are for reporting.
func MergeRegions(regions []model.Rect) []model.Rect {
	if len(regions) <= 1 {
		return slices.Clone(regions)
	}
	merged := make([]model.Rect, 0, len(regions))
	cur := regions[0]
	for _, r := range regions[1:] {
		if r.Top == cur.Top && r.Bottom == cur.Bottom && r.Left == cur.Right {
			cur.Right = r.Right
			continue
		}
		merged = append(merged, cur)
		cur = r
	}
	return append(merged, cur)
}
