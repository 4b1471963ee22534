package engine

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/scatter/internal/model"
)

// ctxCheckInterval is how many trials run between context checks.
const ctxCheckInterval = 32

// Distributor places items inside a draw region using best-candidate
// sampling: for every item it draws Retries random positions from the
// candidate regions and keeps the one farthest from everything placed so far.
//
// A Distributor holds only configuration and the partition derived from it.
// Distribute may be called concurrently; Reconfigure must not race with it.
type Distributor struct {
	Logger *log.Logger

	settings   model.LayoutSettings
	drawRegion model.Rect
	avoid      []model.Rect
	regions    []model.Rect
	cumArea    []float64 // running region area, for area-weighted sampling
}

// New validates the settings and partitions the draw region.
func New(settings model.LayoutSettings) (*Distributor, error) {
	d := &Distributor{Logger: log.New(io.Discard)}
	if err := d.Reconfigure(settings); err != nil {
		return nil, err
	}
	return d, nil
}

// Reconfigure replaces the settings and recomputes the candidate regions.
// On error the previous configuration is kept.
func (d *Distributor) Reconfigure(settings model.LayoutSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	settings = settings.Normalized()
	drawRegion := settings.DrawRegion()
	if drawRegion.Empty() {
		return &model.ConfigError{Field: "bound_padding", Err: model.ErrInvalidBounds}
	}

	avoid := settings.AvoidRegions()
	regions := Partition(drawRegion, avoid)
	cum := make([]float64, len(regions))
	var total float64
	for i, r := range regions {
		total += r.Area()
		cum[i] = total
	}

	d.settings = settings
	d.drawRegion = drawRegion
	d.avoid = avoid
	d.regions = regions
	d.cumArea = cum
	return nil
}

// Settings returns the normalized settings in use.
func (d *Distributor) Settings() model.LayoutSettings {
	return d.settings
}

// Regions returns a copy of the candidate regions.
func (d *Distributor) Regions() []model.Rect {
	return slices.Clone(d.regions)
}

// Distribute places items in order and returns one outcome per item.
// Items that cannot be placed are reported with a failure reason and do not
// stop the batch. If ctx ends mid-batch the remaining items are marked
// canceled and the context error is returned with the partial result.
func (d *Distributor) Distribute(ctx context.Context, items []model.Item) (model.DistributeResult, error) {
	seed := rand.Uint64()
	if d.settings.Seed != nil {
		seed = *d.settings.Seed
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	result := model.DistributeResult{
		Seed:     seed,
		Bounds:   d.drawRegion,
		Avoid:    slices.Clone(d.avoid),
		Regions:  slices.Clone(d.regions),
		Outcomes: make([]model.Outcome, 0, len(items)),
	}
	placed := make([]model.Rect, 0, len(items))

	d.Logger.Debug("distributing", "items", len(items), "regions", len(d.regions), "retries", d.settings.Retries, "seed", seed)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			result.Outcomes = appendCanceled(result.Outcomes, items[i:])
			return result, fmt.Errorf("distribute stopped after %d of %d items: %w", i, len(items), err)
		}

		if len(d.regions) == 0 {
			result.Outcomes = append(result.Outcomes, model.Outcome{Item: item, Reason: model.ReasonNoRegions})
			continue
		}

		best, ok, err := d.bestCandidate(ctx, item, placed, rng.Uint64())
		if err != nil {
			result.Outcomes = appendCanceled(result.Outcomes, items[i:])
			return result, fmt.Errorf("distribute stopped after %d of %d items: %w", i, len(items), err)
		}
		if !ok {
			d.Logger.Debug("item not placed", "label", item.Label, "reason", model.ReasonRetriesExhausted)
			result.Outcomes = append(result.Outcomes, model.Outcome{Item: item, Reason: model.ReasonRetriesExhausted})
			continue
		}

		placed = append(placed, best.rect)
		result.Outcomes = append(result.Outcomes, model.Outcome{
			Item:     item,
			Placed:   true,
			X:        best.rect.Left,
			Y:        best.rect.Top,
			Rotation: rotationFor(d.settings, rng, best.rect),
		})
		d.Logger.Debug("item placed", "label", item.Label, "x", best.rect.Left, "y", best.rect.Top, "trial", best.trial, "distance", math.Sqrt(best.distSq))
	}

	return result, nil
}

// Distribute is a convenience wrapper that builds a Distributor for a single run.
func Distribute(ctx context.Context, settings model.LayoutSettings, items []model.Item) (model.DistributeResult, error) {
	d, err := New(settings)
	if err != nil {
		return model.DistributeResult{}, err
	}
	return d.Distribute(ctx, items)
}

func appendCanceled(outcomes []model.Outcome, items []model.Item) []model.Outcome {
	for _, item := range items {
		outcomes = append(outcomes, model.Outcome{Item: item, Reason: model.ReasonCanceled})
	}
	return outcomes
}

// candidate is one sampled placement and its score.
type candidate struct {
	rect   model.Rect
	distSq float64 // squared distance to the nearest placed rect
	trial  int
}

// better reports whether c beats o. Ties go to the earlier trial so that the
// outcome does not depend on how trials were split across workers.
func (c candidate) better(o candidate) bool {
	if c.distSq != o.distSq {
		return c.distSq > o.distSq
	}
	return c.trial < o.trial
}

// bestCandidate runs the trial budget for one item. Each item gets its own
// seed; worker w draws from the PCG stream (seed, w) and handles trials
// w, w+workers, w+2*workers, ...
func (d *Distributor) bestCandidate(ctx context.Context, item model.Item, placed []model.Rect, seed uint64) (candidate, bool, error) {
	trials := d.settings.Retries
	workers := max(1, min(d.settings.Workers, trials))

	if workers == 1 {
		rng := rand.New(rand.NewPCG(seed, 0))
		return d.runTrials(ctx, rng, item, placed, 0, 1, trials)
	}

	type workerResult struct {
		best candidate
		ok   bool
	}
	results := make([]workerResult, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(seed, uint64(w)))
			best, ok, err := d.runTrials(gctx, rng, item, placed, w, workers, trials)
			if err != nil {
				return err
			}
			results[w] = workerResult{best: best, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return candidate{}, false, err
	}

	var best candidate
	found := false
	for _, r := range results {
		if r.ok && (!found || r.best.better(best)) {
			best = r.best
			found = true
		}
	}
	return best, found, nil
}

// runTrials samples trials start, start+step, ... below total and returns the
// best valid candidate. With nothing placed yet the first valid candidate
// wins, which seeds the distribution.
func (d *Distributor) runTrials(ctx context.Context, rng *rand.Rand, item model.Item, placed []model.Rect, start, step, total int) (candidate, bool, error) {
	var best candidate
	found := false

	for n, t := 0, start; t < total; n, t = n+1, t+step {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return candidate{}, false, err
			}
		}

		r := d.sample(rng, item)
		if !d.valid(r, placed) {
			continue
		}
		_, distSq := FindClosest(r, placed)
		c := candidate{rect: r, distSq: distSq, trial: t}
		if !found || c.better(best) {
			best = c
			found = true
		}
		if len(placed) == 0 {
			break
		}
	}
	return best, found, nil
}

// sample draws a random region and a random center point inside it, and
// returns the item's rectangle centered there.
func (d *Distributor) sample(rng *rand.Rand, item model.Item) model.Rect {
	region := d.pickRegion(rng)
	center := model.Point{
		X: region.Left + rng.Float64()*region.Width(),
		Y: region.Top + rng.Float64()*region.Height(),
	}
	return model.RectAround(center, item.Width, item.Height)
}

func (d *Distributor) pickRegion(rng *rand.Rand) model.Rect {
	if d.settings.Sampling == model.SamplingArea {
		total := d.cumArea[len(d.cumArea)-1]
		target := rng.Float64() * total
		idx, _ := slices.BinarySearch(d.cumArea, target)
		return d.regions[min(idx, len(d.regions)-1)]
	}
	return d.regions[rng.IntN(len(d.regions))]
}

// valid reports whether r stays inside the draw region and clear of every
// avoidance rect and every placed rect.
func (d *Distributor) valid(r model.Rect, placed []model.Rect) bool {
	return d.drawRegion.Contains(r) &&
		!intersectsAny(r, d.avoid) &&
		!intersectsAny(r, placed)
}
