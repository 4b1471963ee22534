package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/scatter/internal/model"
	"github.com/piwi3910/scatter/internal/project"
)

// newPresetCmd creates the preset command with list, save and delete subcommands.
// Presets hold sampling and rotation parameters; they are applied with
// --preset on distribute, regions and compare.
func newPresetCmd(g *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named settings presets",
	}

	cmd.AddCommand(newPresetListCmd(g))
	cmd.AddCommand(newPresetSaveCmd(g))
	cmd.AddCommand(newPresetDeleteCmd(g))

	return cmd
}

func newPresetListCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadPresets(g.presetPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(store.Presets) == 0 {
				fmt.Fprintln(w, styleDim.Render("No presets saved"))
				return nil
			}

			rows := make([][]string, len(store.Presets))
			for i, p := range store.Presets {
				s := p.Settings.Normalized()
				rows[i] = []string{
					p.Name,
					fmt.Sprintf("%d", s.Retries),
					string(s.Sampling),
					string(s.Rotation),
					fmt.Sprintf("%s..%s", formatFloat(s.MinAngle), formatFloat(s.MaxAngle)),
					p.Description,
				}
			}
			printTable(w, []string{"Name", "Retries", "Sampling", "Rotation", "Angles", "Description"}, rows)
			return nil
		},
	}
}

func newPresetSaveCmd(g *globalOpts) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "save [name] [project]",
		Short: "Save a project's settings as a preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]

			proj, err := project.LoadProject(path)
			if err != nil {
				return err
			}
			store, err := project.LoadPresets(g.presetPath)
			if err != nil {
				return err
			}

			replaced := store.FindByName(name) != nil
			store.Put(model.NewPreset(name, description, proj.Settings))
			if err := project.SavePresets(g.presetPath, store); err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Debug("saved preset", "name", name, "replaced", replaced, "store", g.presetPath)
			if replaced {
				printSuccess(cmd.OutOrStdout(), "Updated preset %q", name)
			} else {
				printSuccess(cmd.OutOrStdout(), "Saved preset %q", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "short description")
	return cmd
}

func newPresetDeleteCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadPresets(g.presetPath)
			if err != nil {
				return err
			}
			if !store.Remove(args[0]) {
				return fmt.Errorf("preset %q not found", args[0])
			}
			if err := project.SavePresets(g.presetPath, store); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Deleted preset %q", args[0])
			return nil
		},
	}
}
