package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/scatter/internal/model"
	"github.com/piwi3910/scatter/internal/project"
)

// settingsOpts are flags that override the project's layout settings.
// Only flags the user actually set are applied.
type settingsOpts struct {
	preset       string  // named preset applied before the individual flags
	seed         uint64  // pin the random stream
	retries      int     // trials per item
	workers      int     // goroutines sharing the trials of one item
	sampling     string  // "uniform" or "area"
	rotation     string  // "none", "random" or "position"
	minAngle     float64 // degrees
	maxAngle     float64 // degrees
	boundPadding float64 // scale factor for the draw region
	avoidPadding float64 // scale factor for every avoidance rect
}

func (o *settingsOpts) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.preset, "preset", "", "apply a saved settings preset")
	f.Uint64Var(&o.seed, "seed", 0, "random seed for a reproducible run")
	f.IntVar(&o.retries, "retries", model.DefaultRetries, "candidate trials per item")
	f.IntVar(&o.workers, "workers", 1, "goroutines sharing the trials of one item")
	f.StringVar(&o.sampling, "sampling", string(model.SamplingUniform), "region sampling: uniform or area")
	f.StringVar(&o.rotation, "rotation", string(model.RotationNone), "rotation mode: none, random or position")
	f.Float64Var(&o.minAngle, "min-angle", -15, "minimum rotation in degrees")
	f.Float64Var(&o.maxAngle, "max-angle", 15, "maximum rotation in degrees")
	f.Float64Var(&o.boundPadding, "bound-padding", 1, "scale factor for the draw region")
	f.Float64Var(&o.avoidPadding, "avoid-padding", 1, "scale factor for avoidance zones")
}

// apply writes the preset and every changed flag into s.
func (o *settingsOpts) apply(cmd *cobra.Command, presetPath string, s *model.LayoutSettings) error {
	if o.preset != "" {
		store, err := project.LoadPresets(presetPath)
		if err != nil {
			return err
		}
		p := store.FindByName(o.preset)
		if p == nil {
			return fmt.Errorf("preset %q not found", o.preset)
		}
		p.Apply(s)
	}

	f := cmd.Flags()
	if f.Changed("seed") {
		*s = s.WithSeed(o.seed)
	}
	if f.Changed("retries") {
		s.Retries = o.retries
	}
	if f.Changed("workers") {
		s.Workers = o.workers
	}
	if f.Changed("sampling") {
		s.Sampling = model.Sampling(o.sampling)
	}
	if f.Changed("rotation") {
		s.Rotation = model.RotationMode(o.rotation)
	}
	if f.Changed("min-angle") {
		s.MinAngle = o.minAngle
	}
	if f.Changed("max-angle") {
		s.MaxAngle = o.maxAngle
	}
	if f.Changed("bound-padding") {
		s.BoundPadding = o.boundPadding
	}
	if f.Changed("avoid-padding") {
		s.AvoidPadding = o.avoidPadding
	}
	return nil
}
