package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/scatter/internal/engine"
)

type compareOpts struct {
	inputOpts
	settingsOpts
}

// newCompareCmd creates the compare command. It runs the project's settings
// next to a few what-if variants on the same seed and prints one row each.
func newCompareCmd(g *globalOpts) *cobra.Command {
	var opts compareOpts

	cmd := &cobra.Command{
		Use:   "compare [project]",
		Short: "Compare the current settings against what-if variants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			proj, err := loadInputs(ctx, args[0], opts.inputOpts)
			if err != nil {
				return err
			}
			if err := opts.settingsOpts.apply(cmd, g.presetPath, &proj.Settings); err != nil {
				return err
			}
			if len(proj.Items) == 0 {
				return fmt.Errorf("project %s has no items; add some or pass --items", args[0])
			}

			scenarios := engine.BuildDefaultScenarios(proj.Settings)
			logger.Debug("comparing scenarios", "count", len(scenarios), "items", len(proj.Items))

			prog := newProgress(logger)
			results := engine.CompareScenarios(ctx, scenarios, proj.Items)
			if err := ctx.Err(); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))

			w := cmd.OutOrStdout()
			printTitle(w, fmt.Sprintf("%s: %d items", proj.Name, len(proj.Items)))

			var rows [][]string
			for _, r := range results {
				if r.Err != nil {
					printFailure(w, "%s: %v", r.Scenario.Name, r.Err)
					continue
				}
				rows = append(rows, []string{
					r.Scenario.Name,
					fmt.Sprintf("%d", r.PlacedCount),
					fmt.Sprintf("%d", r.UnplacedCount),
					formatFloat(r.Stats.MinPairDistance),
					formatFloat(r.Stats.MeanNearest),
					formatFloat(r.Stats.Evenness),
					formatFloat(r.Stats.Coverage) + "%",
				})
			}
			printTable(w, []string{"Scenario", "Placed", "Unplaced", "Min dist", "Mean nearest", "Evenness", "Coverage"}, rows)
			return nil
		},
	}

	opts.settingsOpts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.items, "items", "", "import items from a CSV or Excel file")
	cmd.Flags().StringVar(&opts.avoid, "avoid", "", "import avoidance zones from a DXF, CSV or Excel file")

	return cmd
}
