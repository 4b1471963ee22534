package gcode

import (
	"fmt"
	"math"

	"github.com/piwi3910/scatter/internal/model"
)

// Collision is a marked segment that enters an avoidance zone.
type Collision struct {
	MoveIndex int        // index into the parsed moves
	ZoneIndex int        // index into the zones passed to CheckAvoidance
	Zone      model.Rect // the zone after clearance was added
	FromX     float64
	FromY     float64
	ToX       float64
	ToY       float64
}

// CheckAvoidance reports every marked segment (MoveMark) that passes through
// the interior of an avoidance zone grown by clearance on every side.
// Segments that only run along a zone edge or touch a corner do not count.
//
// The placement engine keeps item rectangles clear of the zones, but a
// rotated outline or a positive margin can still reach into one.
func CheckAvoidance(moves []Move, zones []model.Rect, clearance float64) []Collision {
	if len(zones) == 0 {
		return nil
	}

	grown := make([]model.Rect, len(zones))
	for i, z := range zones {
		grown[i] = model.RectLTRB(z.Left-clearance, z.Top-clearance, z.Right+clearance, z.Bottom+clearance)
	}

	var collisions []Collision
	for i, m := range moves {
		if m.Type != MoveMark {
			continue
		}
		for zi, z := range grown {
			if segmentEntersRect(m.FromX, m.FromY, m.ToX, m.ToY, z) {
				collisions = append(collisions, Collision{
					MoveIndex: i,
					ZoneIndex: zi,
					Zone:      z,
					FromX:     m.FromX,
					FromY:     m.FromY,
					ToX:       m.ToX,
					ToY:       m.ToY,
				})
			}
		}
	}
	return collisions
}

// segmentEntersRect clips the segment to r (Liang-Barsky) and reports
// whether the clipped part has length and its midpoint lies strictly inside.
func segmentEntersRect(x0, y0, x1, y1 float64, r model.Rect) bool {
	if r.Empty() {
		return false
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = math.Min(t1, t)
		}
		return true
	}

	if !clip(-dx, x0-r.Left) || !clip(dx, r.Right-x0) ||
		!clip(-dy, y0-r.Top) || !clip(dy, r.Bottom-y0) {
		return false
	}
	if t1-t0 < 1e-9 {
		return false
	}

	tm := (t0 + t1) / 2
	mx, my := x0+dx*tm, y0+dy*tm
	return mx > r.Left && mx < r.Right && my > r.Top && my < r.Bottom
}

// FormatCollisionWarnings produces one human-readable line per collision.
func FormatCollisionWarnings(collisions []Collision) []string {
	var warnings []string
	for _, c := range collisions {
		msg := fmt.Sprintf(
			"Marked segment (%.1f, %.1f) to (%.1f, %.1f) crosses avoidance zone %d %s",
			c.FromX, c.FromY, c.ToX, c.ToY, c.ZoneIndex+1, c.Zone,
		)
		warnings = append(warnings, msg)
	}
	return warnings
}
