package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/scatter/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.LayoutSettings
}

// ComparisonResult holds the distribution result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.DistributeResult
	Stats         Stats
	PlacedCount   int
	UnplacedCount int
	Err           error
}

// CompareScenarios runs a distribution for each scenario and returns the
// results in scenario order. A scenario with invalid settings carries its
// error in Err and does not stop the others.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, items []model.Item) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		cr := ComparisonResult{Scenario: scenario}

		result, err := Distribute(ctx, scenario.Settings, items)
		if err != nil {
			cr.Err = err
			results = append(results, cr)
			continue
		}

		cr.Result = result
		cr.Stats = Analyze(result)
		cr.PlacedCount = cr.Stats.Placed
		cr.UnplacedCount = cr.Stats.Unplaced
		results = append(results, cr)
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
// Unless the base settings pin a seed, every scenario shares seed 1 so the
// differences come from the parameters and not from the random stream.
func BuildDefaultScenarios(baseSettings model.LayoutSettings) []ComparisonScenario {
	base := baseSettings.Normalized()
	if base.Seed == nil {
		base = base.WithSeed(1)
	}

	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Scenario: Larger trial budget
	moreRetries := base
	moreRetries.Retries = base.Retries * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Retries %d (double)", moreRetries.Retries),
		Settings: moreRetries,
	})

	// Scenario: Try the other region sampling strategy
	altSampling := base
	if base.Sampling == model.SamplingArea {
		altSampling.Sampling = model.SamplingUniform
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Uniform Region Sampling",
			Settings: altSampling,
		})
	} else {
		altSampling.Sampling = model.SamplingArea
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Area-Weighted Sampling",
			Settings: altSampling,
		})
	}

	// Scenario: No avoidance padding
	if base.AvoidPadding != 1 {
		noPad := base
		noPad.AvoidPadding = 1
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Avoid Padding",
			Settings: noPad,
		})
	}

	return scenarios
}
