package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/scatter/internal/model"
	"github.com/piwi3910/scatter/internal/project"
)

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")
	t.Cleanup(func() { SetVersion("", "", "") })

	if version != "1.0.0" {
		t.Errorf("version = %q, want %q", version, "1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2024-01-01" {
		t.Errorf("date = %q, want %q", date, "2024-01-01")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCommand()

	for _, name := range []string{"init", "distribute", "regions", "compare", "preset", "config"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

// testEnv points the global config and preset flags at a temp directory so
// tests never touch the user's home.
type testEnv struct {
	dir        string
	configPath string
	presetPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.json"),
		presetPath: filepath.Join(dir, "presets.json"),
	}
}

func (e *testEnv) path(name string) string {
	return filepath.Join(e.dir, name)
}

// run executes the CLI and returns stdout and stderr.
func (e *testEnv) run(args ...string) (string, string, error) {
	root := NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", e.configPath, "--presets", e.presetPath}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// writeProject saves a 100x100 project with a center avoidance zone and
// n items of 10x10.
func (e *testEnv) writeProject(t *testing.T, name string, n int) string {
	t.Helper()
	proj := model.NewProject()
	proj.Name = "Poster"
	proj.Settings.Bounds = model.RectLTRB(0, 0, 100, 100)
	proj.Settings.Avoid = []model.Rect{model.RectLTRB(40, 40, 60, 60)}
	proj.Items = model.ExpandQuantity("Star", 10, 10, n)

	path := e.path(name)
	if err := project.SaveProject(path, proj); err != nil {
		t.Fatalf("failed to write project: %v", err)
	}
	return path
}

func TestVerboseFlagEnablesDebugLogs(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeProject(t, "p.json", 3)

	_, quiet, err := env.run("distribute", path, "--seed", "1")
	if err != nil {
		t.Fatalf("distribute failed: %v", err)
	}
	if strings.Contains(quiet, "item placed") {
		t.Error("debug lines should be hidden without --verbose")
	}

	_, verbose, err := env.run("-v", "distribute", path, "--seed", "1")
	if err != nil {
		t.Fatalf("distribute failed: %v", err)
	}
	if !strings.Contains(verbose, "item placed") {
		t.Errorf("expected engine debug lines with --verbose, got %q", verbose)
	}
}
