package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/scatter/internal/model"
	"github.com/piwi3910/scatter/internal/project"
)

type initOpts struct {
	name   string
	bounds []float64 // left, top, width, height
	force  bool
}

// newInitCmd creates the init command, which writes a new project file whose
// settings start from the app config defaults.
func newInitCmd(g *globalOpts) *cobra.Command {
	var opts initOpts

	cmd := &cobra.Command{
		Use:   "init [project]",
		Short: "Create a project file from the app config defaults",
		Long: `Init writes a new, empty project. Use .toml for a hand-editable file,
anything else is written as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if len(opts.bounds) != 4 {
				return fmt.Errorf("--bounds needs 4 values (left,top,width,height), got %d", len(opts.bounds))
			}
			if !opts.force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists; use --force to overwrite", path)
				}
			}

			cfg, err := project.LoadAppConfig(g.configPath)
			if err != nil {
				return err
			}

			proj := model.NewProject()
			cfg.ApplyToSettings(&proj.Settings)
			proj.Settings.Bounds = model.NewRect(opts.bounds[0], opts.bounds[1], opts.bounds[2], opts.bounds[3])
			proj.Name = opts.name
			if proj.Name == "" {
				proj.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			if err := proj.Settings.Validate(); err != nil {
				return err
			}

			if err := project.SaveProject(path, proj); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("created project", "name", proj.Name, "format", project.FormatFor(path))

			w := cmd.OutOrStdout()
			printSuccess(w, "Created project %q", proj.Name)
			printFile(w, path)

			if abs, err := filepath.Abs(path); err == nil {
				recordRecent(cmd.Context(), g.configPath, abs)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "project name (default: file name)")
	cmd.Flags().Float64SliceVar(&opts.bounds, "bounds", []float64{0, 0, 100, 100}, "draw region as left,top,width,height")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing file")

	return cmd
}
