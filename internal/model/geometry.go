package model

import (
	"fmt"
	"image"
	"math"
)

// Point represents a 2D coordinate.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// DistanceSq returns the squared euclidean distance between two points.
func (p Point) DistanceSq(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy // Sqrt omitted, monotonic
}

// Rect is an axis-aligned box. Width and height are never negative when the
// rect is built through NewRect or RectLTRB.
type Rect struct {
	Left   float64 `json:"left" toml:"left"`
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
}

// NewRect builds a rect from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return RectLTRB(x, y, x+w, y+h)
}

// RectLTRB builds a rect from edge coordinates, swapping reversed edges.
func RectLTRB(left, top, right, bottom float64) Rect {
	if right < left {
		left, right = right, left
	}
	if bottom < top {
		top, bottom = bottom, top
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// RectAround builds a rect of the given size centered on c.
func RectAround(c Point, w, h float64) Rect {
	return NewRect(c.X-w/2, c.Y-h/2, w, h)
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }
func (r Rect) Area() float64   { return r.Width() * r.Height() }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Intersects reports whether two rects share a region of positive area.
// Rects that only touch along an edge or a corner do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right &&
		r.Top < o.Bottom && o.Top < r.Bottom
}

// Contains reports whether o lies entirely inside r (edges inclusive).
func (r Rect) Contains(o Rect) bool {
	return o.Left >= r.Left && o.Right <= r.Right &&
		o.Top >= r.Top && o.Bottom <= r.Bottom
}

// Intersection returns the overlapping part of two rects, or the zero Rect
// when they do not intersect.
func (r Rect) Intersection(o Rect) Rect {
	if !r.Intersects(o) {
		return Rect{}
	}
	return Rect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
}

// Scale grows or shrinks the rect about its center. A factor above 1 grows
// it, below 1 shrinks it. Factors of 0 and 1 leave the rect unchanged.
func (r Rect) Scale(factor float64) Rect {
	if factor == 0 || factor == 1 {
		return r
	}
	f := factor - 1
	dw := r.Width() * f / 2
	dh := r.Height() * f / 2
	scaled := Rect{
		Left:   r.Left - dw,
		Top:    r.Top - dh,
		Right:  r.Right + dw,
		Bottom: r.Bottom + dh,
	}
	if scaled.Right < scaled.Left || scaled.Bottom < scaled.Top {
		// Negative factors collapse onto the center.
		c := r.Center()
		return Rect{Left: c.X, Top: c.Y, Right: c.X, Bottom: c.Y}
	}
	return scaled
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f,%.2f)-(%.2f,%.2f)", r.Left, r.Top, r.Right, r.Bottom)
}

// ScaleAll returns a scaled copy of every rect in rs.
func ScaleAll(rs []Rect, factor float64) []Rect {
	out := make([]Rect, len(rs))
	for i, r := range rs {
		out[i] = r.Scale(factor)
	}
	return out
}

// Boxer is implemented by anything that can report an axis-aligned bounding
// box as origin and size, e.g. a host UI element.
type Boxer interface {
	Box() (x, y, width, height float64)
}

// FromBox converts a rectangle-like value into a Rect.
func FromBox(b Boxer) Rect {
	x, y, w, h := b.Box()
	return NewRect(x, y, w, h)
}

// FromImageRect converts an image.Rectangle into a Rect.
func FromImageRect(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{
		Left:   float64(r.Min.X),
		Top:    float64(r.Min.Y),
		Right:  float64(r.Max.X),
		Bottom: float64(r.Max.Y),
	}
}

// MapRange takes a value from one range and returns the associated value in
// another, assuming both ranges are linear. A degenerate source range maps
// everything to newMin.
func MapRange(value, oldMin, oldMax, newMin, newMax float64) float64 {
	if oldMax == oldMin {
		return newMin
	}
	return (newMax-newMin)*(value-oldMin)/(oldMax-oldMin) + newMin
}
