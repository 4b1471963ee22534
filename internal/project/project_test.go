package project

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/scatter/internal/model"
)

func sampleProject() model.Project {
	proj := model.NewProject()
	proj.Name = "Poster"
	proj.Settings.Bounds = model.RectLTRB(0, 0, 200, 100)
	proj.Settings.Avoid = []model.Rect{
		model.RectLTRB(80, 30, 120, 70),
		model.RectLTRB(0, 0, 20, 20),
	}
	proj.Settings.AvoidPadding = 1.1
	proj.Settings.Rotation = model.RotationPosition
	proj.Settings = proj.Settings.WithSeed(1234)
	proj.Items = model.ExpandQuantity("Star", 10, 10, 3)
	return proj
}

func TestSaveAndLoadProject_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poster.json")
	proj := sampleProject()
	proj.Result = &model.DistributeResult{Seed: 1234}

	if err := SaveProject(path, proj); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if loaded.Name != "Poster" {
		t.Errorf("expected name Poster, got %q", loaded.Name)
	}
	if loaded.Settings.Bounds != proj.Settings.Bounds {
		t.Errorf("expected bounds %v, got %v", proj.Settings.Bounds, loaded.Settings.Bounds)
	}
	if len(loaded.Settings.Avoid) != 2 {
		t.Errorf("expected 2 avoid rects, got %d", len(loaded.Settings.Avoid))
	}
	if len(loaded.Items) != 3 || loaded.Items[0].ID != proj.Items[0].ID {
		t.Errorf("items not preserved: %+v", loaded.Items)
	}
	if loaded.Result == nil || loaded.Result.Seed != 1234 {
		t.Errorf("expected result with seed 1234, got %+v", loaded.Result)
	}
}

func TestSaveAndLoadProject_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poster.toml")
	proj := sampleProject()
	proj.Result = &model.DistributeResult{Seed: 1234}

	if err := SaveProject(path, proj); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if loaded.Settings.Rotation != model.RotationPosition {
		t.Errorf("expected rotation position, got %s", loaded.Settings.Rotation)
	}
	if loaded.Settings.AvoidPadding != 1.1 {
		t.Errorf("expected avoid padding 1.1, got %f", loaded.Settings.AvoidPadding)
	}
	if loaded.Settings.Seed == nil || *loaded.Settings.Seed != 1234 {
		t.Errorf("expected seed 1234, got %v", loaded.Settings.Seed)
	}
	if len(loaded.Settings.Avoid) != 2 || loaded.Settings.Avoid[0] != proj.Settings.Avoid[0] {
		t.Errorf("avoid rects not preserved: %v", loaded.Settings.Avoid)
	}
	if len(loaded.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(loaded.Items))
	}
	if loaded.Result != nil {
		t.Error("TOML projects should not carry a result")
	}
}

func TestLoadProject_HandWrittenTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.toml")
	data := `name = "Hand"

[settings]
retries = 50

[settings.bounds]
left = 0.0
top = 0.0
right = 100.0
bottom = 100.0

[[settings.avoid]]
left = 40.0
top = 40.0
right = 60.0
bottom = 60.0

[[items]]
label = "Dot"
width = 4.0
height = 4.0
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	proj, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if proj.Settings.Retries != 50 {
		t.Errorf("expected retries 50, got %d", proj.Settings.Retries)
	}
	if proj.Settings.BoundPadding != 1.0 {
		t.Errorf("expected default bound padding, got %f", proj.Settings.BoundPadding)
	}
	if proj.Settings.Seed != nil {
		t.Errorf("expected no seed, got %d", *proj.Settings.Seed)
	}
	if len(proj.Items) != 1 || proj.Items[0].Label != "Dot" {
		t.Errorf("unexpected items: %+v", proj.Items)
	}
}

func TestEncodeProject_TOMLSeedOutOfRange(t *testing.T) {
	proj := sampleProject()
	proj.Settings = proj.Settings.WithSeed(math.MaxUint64)

	_, err := EncodeProject(FormatTOML, proj)
	if err == nil {
		t.Fatal("expected error for seed above MaxInt64")
	}
	if !strings.Contains(err.Error(), "seed") {
		t.Errorf("expected seed in error, got %v", err)
	}
}

func TestLoadProject_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadProject(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("name = = ="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProject(bad); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"a.json":   FormatJSON,
		"a.toml":   FormatTOML,
		"a.TOML":   FormatTOML,
		"a":        FormatJSON,
		"dir/b.js": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %s, want %s", path, got, want)
		}
	}
}
