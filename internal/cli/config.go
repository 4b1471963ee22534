package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/scatter/internal/project"
)

// newConfigCmd creates the config command for inspecting the app config and
// moving it, together with the presets, between machines.
func newConfigCmd(g *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, export and import the app config",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the app config defaults and recent projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(g.configPath)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printTitle(w, g.configPath)
			printKeyValue(w, "Retries", fmt.Sprintf("%d", cfg.DefaultRetries))
			printKeyValue(w, "Workers", fmt.Sprintf("%d", cfg.DefaultWorkers))
			printKeyValue(w, "Sampling", string(cfg.DefaultSampling))
			printKeyValue(w, "Rotation", cfg.DefaultRotation.String())
			printKeyValue(w, "Angles", fmt.Sprintf("%s..%s", formatFloat(cfg.DefaultMinAngle), formatFloat(cfg.DefaultMaxAngle)))
			printKeyValue(w, "Bound pad", formatFloat(cfg.DefaultBoundPadding))
			printKeyValue(w, "Avoid pad", formatFloat(cfg.DefaultAvoidPadding))
			for i, p := range cfg.RecentProjects {
				key := ""
				if i == 0 {
					key = "Recent"
				}
				printKeyValue(w, key, p)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export [file]",
		Short: "Write the app config and presets to a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(g.configPath)
			if err != nil {
				return err
			}
			store, err := project.LoadPresets(g.presetPath)
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], cfg, store); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported config and %d presets", len(store.Presets))
			printFile(cmd.OutOrStdout(), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import [file]",
		Short: "Replace the app config and presets from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("read backup", "version", backup.Version, "created", backup.CreatedAt)

			if err := project.SaveAppConfig(g.configPath, backup.Config); err != nil {
				return err
			}
			if err := project.SavePresets(g.presetPath, backup.Presets); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Imported config and %d presets", len(backup.Presets.Presets))
			return nil
		},
	})

	return cmd
}
