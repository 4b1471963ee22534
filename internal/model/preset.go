package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Preset is a named, reusable set of sampling and rotation parameters.
// It never carries geometry: bounds, avoidance rects and the seed stay with
// the project it is applied to.
type Preset struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	Settings    LayoutSettings `json:"settings"`
}

// NewPreset captures the parameters of s under a name.
func NewPreset(name, description string, s LayoutSettings) Preset {
	now := time.Now().UTC().Format(time.RFC3339)
	s.Bounds = Rect{}
	s.Avoid = nil
	s.Seed = nil
	return Preset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Settings:    s,
	}
}

// Apply copies the preset parameters into s, keeping its geometry and seed.
func (p Preset) Apply(s *LayoutSettings) {
	bounds, avoid, seed := s.Bounds, s.Avoid, s.Seed
	*s = p.Settings
	s.Bounds = bounds
	s.Avoid = avoid
	s.Seed = seed
}

// PresetStore holds a collection of presets.
type PresetStore struct {
	Presets []Preset `json:"presets"`
}

func NewPresetStore() PresetStore {
	return PresetStore{Presets: []Preset{}}
}

// Put adds p, replacing any preset with the same name.
func (ps *PresetStore) Put(p Preset) {
	if existing := ps.FindByName(p.Name); existing != nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		*existing = p
		return
	}
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by name. Returns true if found and removed.
func (ps *PresetStore) Remove(name string) bool {
	i := slices.IndexFunc(ps.Presets, func(p Preset) bool { return p.Name == name })
	if i < 0 {
		return false
	}
	ps.Presets = slices.Delete(ps.Presets, i, i+1)
	return true
}

// FindByName returns a pointer to the preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names in store order.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
