package model

import (
	"errors"
	"fmt"
	"math"
)

// Configuration failures. They are always returned wrapped in a ConfigError.
var (
	ErrInvalidBounds   = errors.New("draw region must have positive width and height")
	ErrInvalidRetries  = errors.New("retry budget must be at least 1")
	ErrInvalidWorkers  = errors.New("worker count must not be negative")
	ErrInvalidAngles   = errors.New("min angle must not exceed max angle")
	ErrInvalidPadding  = errors.New("padding factor must not be negative")
	ErrInvalidRotation = errors.New("unknown rotation mode")
	ErrInvalidSampling = errors.New("unknown sampling strategy")
)

// ConfigError reports which setting was rejected.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Validate checks the settings before any distribute call. Zero values for
// padding, retries, workers, sampling and rotation fall back to defaults and
// are accepted.
func (s LayoutSettings) Validate() error {
	// Written so NaN fails the comparisons.
	if w, h := s.Bounds.Width(), s.Bounds.Height(); !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return &ConfigError{Field: "bounds", Err: ErrInvalidBounds}
	}
	if !(s.BoundPadding >= 0) || math.IsInf(s.BoundPadding, 0) {
		return &ConfigError{Field: "bound_padding", Err: ErrInvalidPadding}
	}
	if !(s.AvoidPadding >= 0) || math.IsInf(s.AvoidPadding, 0) {
		return &ConfigError{Field: "avoid_padding", Err: ErrInvalidPadding}
	}
	if s.Retries < 0 {
		return &ConfigError{Field: "retries", Err: ErrInvalidRetries}
	}
	if s.Workers < 0 {
		return &ConfigError{Field: "workers", Err: ErrInvalidWorkers}
	}
	switch s.Rotation {
	case "", RotationNone, RotationRandom, RotationPosition:
	default:
		return &ConfigError{Field: "rotation", Err: fmt.Errorf("%w %q", ErrInvalidRotation, s.Rotation)}
	}
	switch s.Sampling {
	case "", SamplingUniform, SamplingArea:
	default:
		return &ConfigError{Field: "sampling", Err: fmt.Errorf("%w %q", ErrInvalidSampling, s.Sampling)}
	}
	if s.Rotation != RotationNone && s.Rotation != "" && !(s.MinAngle <= s.MaxAngle) {
		return &ConfigError{Field: "angles", Err: ErrInvalidAngles}
	}
	return nil
}

// Normalized returns a copy with zero-valued knobs replaced by defaults.
func (s LayoutSettings) Normalized() LayoutSettings {
	if s.BoundPadding == 0 {
		s.BoundPadding = 1
	}
	if s.AvoidPadding == 0 {
		s.AvoidPadding = 1
	}
	if s.Retries == 0 {
		s.Retries = DefaultRetries
	}
	if s.Workers == 0 {
		s.Workers = 1
	}
	if s.Sampling == "" {
		s.Sampling = SamplingUniform
	}
	if s.Rotation == "" {
		s.Rotation = RotationNone
	}
	return s
}
