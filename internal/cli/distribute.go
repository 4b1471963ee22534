package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/scatter/internal/engine"
	"github.com/piwi3910/scatter/internal/export"
	"github.com/piwi3910/scatter/internal/gcode"
	"github.com/piwi3910/scatter/internal/model"
	"github.com/piwi3910/scatter/internal/project"
)

// distributeOpts holds the command-line flags for the distribute command.
type distributeOpts struct {
	inputOpts
	settingsOpts
	output string // JSON report path, "-" for stdout
	pdf    string // PDF report path
	labels string // QR label sheet path
	title  string // PDF title, defaults to the project name
	save   bool   // write merged inputs and the result back to the project

	gcode        string  // marking G-code path
	gcodeProfile string  // machine dialect
	gcodeMargin  float64 // outline offset outward from each item
}

// newDistributeCmd creates the distribute command, which runs the placement
// engine over a project and writes the requested outputs.
func newDistributeCmd(g *globalOpts) *cobra.Command {
	var opts distributeOpts

	cmd := &cobra.Command{
		Use:   "distribute [project]",
		Short: "Place the project's items around its avoidance zones",
		Long: `Distribute places every item of a project inside its bounds, in order,
keeping each one as far as possible from the items placed before it.

Items that cannot be placed are reported with a reason and do not stop the run.
The seed of every run is printed so a layout can be reproduced with --seed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistribute(cmd, g, args[0], &opts)
		},
	}

	opts.settingsOpts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.items, "items", "", "import items from a CSV or Excel file")
	cmd.Flags().StringVar(&opts.avoid, "avoid", "", "import avoidance zones from a DXF, CSV or Excel file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON result to this file (- for stdout)")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write a PDF layout report")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write a PDF sheet of QR labels")
	cmd.Flags().StringVar(&opts.title, "title", "", "PDF report title (default: project name)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save merged inputs and the result into the project file")
	cmd.Flags().StringVar(&opts.gcode, "gcode", "", "write marking G-code tracing every placed item")
	cmd.Flags().StringVar(&opts.gcodeProfile, "gcode-profile", gcode.Profiles[0].Name, "G-code dialect: "+strings.Join(gcode.ProfileNames(), ", "))
	cmd.Flags().Float64Var(&opts.gcodeMargin, "gcode-margin", 0, "offset traced outlines outward by this distance")

	return cmd
}

func runDistribute(cmd *cobra.Command, g *globalOpts, path string, opts *distributeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	proj, err := loadInputs(ctx, path, opts.inputOpts)
	if err != nil {
		return err
	}
	if err := opts.settingsOpts.apply(cmd, g.presetPath, &proj.Settings); err != nil {
		return err
	}
	if len(proj.Items) == 0 {
		return fmt.Errorf("project %s has no items; add some or pass --items", path)
	}

	d, err := engine.New(proj.Settings)
	if err != nil {
		return err
	}
	d.Logger = logger

	prog := newProgress(logger)
	result, err := d.Distribute(ctx, proj.Items)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d of %d items", result.PlacedCount(), len(result.Outcomes)))

	// Keep stdout clean for the JSON document.
	out := cmd.OutOrStdout()
	if opts.output == "-" {
		out = cmd.ErrOrStderr()
	}
	printDistributeSummary(out, result)

	if err := writeOutputs(cmd, out, proj, result, opts); err != nil {
		return err
	}

	if opts.save {
		proj.Result = &result
		if err := project.SaveProject(path, proj); err != nil {
			return err
		}
		printFile(out, path)
	}

	if abs, err := filepath.Abs(path); err == nil {
		recordRecent(ctx, g.configPath, abs)
	}
	return nil
}

// writeOutputs writes every requested file and reports each path on out.
func writeOutputs(cmd *cobra.Command, out io.Writer, proj model.Project, result model.DistributeResult, opts *distributeOpts) error {
	switch opts.output {
	case "":
	case "-":
		if err := export.WriteJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	default:
		if err := export.ExportJSON(opts.output, result); err != nil {
			return err
		}
		printFile(out, opts.output)
	}

	if opts.pdf != "" {
		title := opts.title
		if title == "" {
			title = proj.Name
		}
		if err := export.ExportPDF(opts.pdf, title, result, proj.Settings); err != nil {
			return fmt.Errorf("failed to export PDF: %w", err)
		}
		printFile(out, opts.pdf)
	}

	if opts.labels != "" {
		if err := export.ExportLabels(opts.labels, result); err != nil {
			return fmt.Errorf("failed to export labels: %w", err)
		}
		printFile(out, opts.labels)
	}

	if opts.gcode != "" {
		if !slices.Contains(gcode.ProfileNames(), opts.gcodeProfile) {
			return fmt.Errorf("unknown G-code profile %q (have %s)", opts.gcodeProfile, strings.Join(gcode.ProfileNames(), ", "))
		}
		s := gcode.DefaultSettings()
		s.Profile = opts.gcodeProfile
		s.Margin = opts.gcodeMargin
		if err := gcode.Export(opts.gcode, result, s); err != nil {
			return fmt.Errorf("failed to export G-code: %w", err)
		}
		printFile(out, opts.gcode)
		warnMarkingCollisions(cmd.Context(), gcode.New(s).Generate(result), s, result.Avoid)
	}
	return nil
}

// warnMarkingCollisions logs every traced segment that crosses an avoidance
// zone, which rotation or a margin can cause even for a valid layout.
func warnMarkingCollisions(ctx context.Context, code string, s gcode.Settings, avoid []model.Rect) {
	logger := loggerFromContext(ctx)
	collisions := gcode.CheckAvoidance(gcode.ParseGCode(code, s), avoid, 0)
	for _, w := range gcode.FormatCollisionWarnings(collisions) {
		logger.Warn(w)
	}
	logger.Debug("checked marking path", "collisions", len(collisions))
}

func printDistributeSummary(w io.Writer, result model.DistributeResult) {
	stats := engine.Analyze(result)

	if stats.Unplaced == 0 {
		printSuccess(w, "Placed all %d items", stats.Placed)
	} else {
		printWarning(w, "Placed %d of %d items", stats.Placed, len(result.Outcomes))
	}
	printKeyValue(w, "Seed", fmt.Sprintf("%d", result.Seed))
	printKeyValue(w, "Regions", fmt.Sprintf("%d", len(result.Regions)))
	if stats.Placed >= 2 {
		printKeyValue(w, "Min distance", formatFloat(stats.MinPairDistance))
		printKeyValue(w, "Mean nearest", formatFloat(stats.MeanNearest))
		printKeyValue(w, "Evenness", formatFloat(stats.Evenness))
	}
	printKeyValue(w, "Coverage", formatFloat(stats.Coverage)+"%")

	for _, o := range result.Unplaced() {
		printFailure(w, "%s (%s x %s): %s", itemName(o.Item), formatFloat(o.Item.Width), formatFloat(o.Item.Height), strings.ReplaceAll(string(o.Reason), "_", " "))
	}
}

func itemName(it model.Item) string {
	if it.Label != "" {
		return it.Label
	}
	return it.ID
}
