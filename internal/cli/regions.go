package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/scatter/internal/engine"
)

type regionsOpts struct {
	inputOpts
	settingsOpts
	merged bool // print coalesced strips instead of raw sweep cells
}

// newRegionsCmd creates the regions command, which prints the candidate
// regions the partitioner leaves after removing the avoidance zones.
func newRegionsCmd(g *globalOpts) *cobra.Command {
	var opts regionsOpts

	cmd := &cobra.Command{
		Use:   "regions [project]",
		Short: "Print the candidate regions left after avoidance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			proj, err := loadInputs(ctx, args[0], opts.inputOpts)
			if err != nil {
				return err
			}
			if err := opts.settingsOpts.apply(cmd, g.presetPath, &proj.Settings); err != nil {
				return err
			}

			d, err := engine.New(proj.Settings)
			if err != nil {
				return err
			}

			regions := d.Regions()
			if opts.merged {
				regions = engine.MergeRegions(regions)
			}

			w := cmd.OutOrStdout()
			draw := proj.Settings.Normalized().DrawRegion()
			printTitle(w, fmt.Sprintf("%d candidate regions in %s", len(regions), draw))

			rows := make([][]string, len(regions))
			for i, r := range regions {
				rows[i] = []string{
					fmt.Sprintf("%d", i+1),
					formatFloat(r.Left),
					formatFloat(r.Top),
					formatFloat(r.Width()),
					formatFloat(r.Height()),
					formatFloat(r.Area()),
				}
			}
			printTable(w, []string{"#", "Left", "Top", "Width", "Height", "Area"}, rows)

			total := engine.RegionArea(regions)
			printKeyValue(w, "Total area", formatFloat(total))
			if a := draw.Area(); a > 0 {
				printKeyValue(w, "Free", formatFloat(total/a*100)+"%")
			}
			return nil
		},
	}

	opts.settingsOpts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.avoid, "avoid", "", "import avoidance zones from a DXF, CSV or Excel file")
	cmd.Flags().BoolVar(&opts.merged, "merged", false, "coalesce adjacent cells into wider strips")

	return cmd
}
