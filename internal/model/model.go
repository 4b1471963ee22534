package model

import "github.com/google/uuid"

// RotationMode selects how a placed item's rotation angle is derived.
type RotationMode string

const (
	RotationNone     RotationMode = "none"     // Every item keeps angle 0
	RotationRandom   RotationMode = "random"   // Uniform angle in [MinAngle, MaxAngle)
	RotationPosition RotationMode = "position" // Angle follows the item's x position
)

func (m RotationMode) String() string {
	switch m {
	case RotationRandom:
		return "Random"
	case RotationPosition:
		return "Position"
	default:
		return "None"
	}
}

// Sampling selects how a candidate region is picked for each trial.
type Sampling string

const (
	SamplingUniform Sampling = "uniform" // Every region equally likely
	SamplingArea    Sampling = "area"    // Regions weighted by their area
)

// Item is one rectangle the caller wants placed.
type Item struct {
	ID     string  `json:"id" toml:"id"`
	Label  string  `json:"label" toml:"label"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

func NewItem(label string, w, h float64) Item {
	return Item{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
	}
}

// LayoutSettings is the caller-owned configuration of one placement run.
type LayoutSettings struct {
	// Region
	Bounds       Rect    `json:"bounds" toml:"bounds"`               // Draw region
	BoundPadding float64 `json:"bound_padding" toml:"bound_padding"` // Scale factor about the center, <1 shrinks
	Avoid        []Rect  `json:"avoid" toml:"avoid"`                 // Avoidance rectangles
	AvoidPadding float64 `json:"avoid_padding" toml:"avoid_padding"` // Scale factor applied to each avoid rect

	// Sampling
	Retries  int      `json:"retries" toml:"retries"`   // Trials per item (K)
	Sampling Sampling `json:"sampling" toml:"sampling"` // Region selection strategy
	Workers  int      `json:"workers" toml:"workers"`   // Goroutines sharing the trials of one item
	Seed     *uint64  `json:"seed,omitempty" toml:"seed,omitempty"`

	// Rotation
	Rotation RotationMode `json:"rotation" toml:"rotation"`
	MinAngle float64      `json:"min_angle" toml:"min_angle"` // degrees
	MaxAngle float64      `json:"max_angle" toml:"max_angle"` // degrees
}

// MaxQuantity caps how many items one imported row may expand to.
const MaxQuantity = 10000

// DefaultRetries is the per-item trial budget used when none is configured.
const DefaultRetries = 200

func DefaultSettings() LayoutSettings {
	return LayoutSettings{
		BoundPadding: 1.0,
		AvoidPadding: 1.0,
		Retries:      DefaultRetries,
		Sampling:     SamplingUniform,
		Workers:      1,
		Rotation:     RotationNone,
		MinAngle:     -15,
		MaxAngle:     15,
	}
}

// WithSeed returns a copy of the settings pinned to seed.
func (s LayoutSettings) WithSeed(seed uint64) LayoutSettings {
	s.Seed = &seed
	return s
}

// DrawRegion returns the bounds after padding.
func (s LayoutSettings) DrawRegion() Rect {
	return s.Bounds.Scale(s.BoundPadding)
}

// AvoidRegions returns the avoidance rectangles after padding.
func (s LayoutSettings) AvoidRegions() []Rect {
	return ScaleAll(s.Avoid, s.AvoidPadding)
}

// Placement is one committed item on the layout.
type Placement struct {
	Item     Item    `json:"item"`
	Rect     Rect    `json:"rect"`
	Rotation float64 `json:"rotation"` // degrees
}

// FailureReason explains why an item could not be placed.
type FailureReason string

const (
	ReasonNone             FailureReason = ""
	ReasonNoRegions        FailureReason = "no_regions"        // Avoidance covers the whole draw region
	ReasonRetriesExhausted FailureReason = "retries_exhausted" // No valid candidate within the budget
	ReasonCanceled         FailureReason = "canceled"          // Context ended before the item was tried
)

// Outcome is the per-item result of a distribute call.
type Outcome struct {
	Item     Item          `json:"item"`
	Placed   bool          `json:"placed"`
	X        float64       `json:"x"`        // Left edge of the committed rect
	Y        float64       `json:"y"`        // Top edge of the committed rect
	Rotation float64       `json:"rotation"` // degrees
	Reason   FailureReason `json:"reason,omitempty"`
}

// Rect returns the committed rectangle of a placed outcome.
func (o Outcome) Rect() Rect {
	return NewRect(o.X, o.Y, o.Item.Width, o.Item.Height)
}

// DistributeResult holds the full output of one distribute call.
type DistributeResult struct {
	Seed     uint64    `json:"seed"`
	Bounds   Rect      `json:"bounds"`
	Avoid    []Rect    `json:"avoid"`
	Regions  []Rect    `json:"regions"`
	Outcomes []Outcome `json:"outcomes"`
}

// Placements returns the committed items in placement order.
func (r DistributeResult) Placements() []Placement {
	var out []Placement
	for _, o := range r.Outcomes {
		if o.Placed {
			out = append(out, Placement{Item: o.Item, Rect: o.Rect(), Rotation: o.Rotation})
		}
	}
	return out
}

// Unplaced returns the outcomes that failed.
func (r DistributeResult) Unplaced() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Placed {
			out = append(out, o)
		}
	}
	return out
}

// PlacedCount returns the number of committed items.
func (r DistributeResult) PlacedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Placed {
			n++
		}
	}
	return n
}

// ExpandQuantity turns a label/size/quantity row into individual items.
func ExpandQuantity(label string, w, h float64, qty int) []Item {
	qty = max(0, min(qty, MaxQuantity))
	items := make([]Item, 0, qty)
	for i := 0; i < qty; i++ {
		items = append(items, NewItem(label, w, h))
	}
	return items
}

// Project ties everything together for save/load.
type Project struct {
	Name     string            `json:"name" toml:"name"`
	Settings LayoutSettings    `json:"settings" toml:"settings"`
	Items    []Item            `json:"items" toml:"items"`
	Result   *DistributeResult `json:"result,omitempty" toml:"-"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Items:    []Item{},
		Settings: DefaultSettings(),
	}
}
