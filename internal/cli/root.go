package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/scatter/internal/project"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
// The main package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globalOpts are the persistent flags shared by every command.
type globalOpts struct {
	verbose    bool
	configPath string
	presetPath string
}

// NewRootCommand builds the scatter command tree.
//
// The logger is created in PersistentPreRun from --verbose and attached to the
// command context, so every subcommand reads it with loggerFromContext. Log
// lines go to the command's error stream.
func NewRootCommand() *cobra.Command {
	g := &globalOpts{}

	root := &cobra.Command{
		Use:          "scatter",
		Short:        "Scatter places rectangles evenly around avoidance zones",
		Long:         `Scatter distributes rectangular items inside a bounded region so that they avoid a set of exclusion zones and stay as far apart from each other as possible.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("scatter %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&g.configPath, "config", project.DefaultConfigPath(), "app config file")
	root.PersistentFlags().StringVar(&g.presetPath, "presets", project.DefaultPresetPath(), "preset store file")

	root.AddCommand(newInitCmd(g))
	root.AddCommand(newDistributeCmd(g))
	root.AddCommand(newRegionsCmd(g))
	root.AddCommand(newCompareCmd(g))
	root.AddCommand(newPresetCmd(g))
	root.AddCommand(newConfigCmd(g))

	return root
}

// Execute runs the scatter CLI with ctx, which the caller cancels on SIGINT.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
