package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultRetries != defaults.Retries {
		t.Errorf("Retries mismatch: config=%d settings=%d", cfg.DefaultRetries, defaults.Retries)
	}
	if cfg.DefaultBoundPadding != defaults.BoundPadding {
		t.Errorf("BoundPadding mismatch: config=%f settings=%f", cfg.DefaultBoundPadding, defaults.BoundPadding)
	}
	if cfg.DefaultRotation != defaults.Rotation {
		t.Errorf("Rotation mismatch: config=%s settings=%s", cfg.DefaultRotation, defaults.Rotation)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultRetries = 500
	cfg.DefaultRotation = RotationPosition
	cfg.DefaultMinAngle = -30

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Retries != 500 {
		t.Errorf("expected Retries=500, got %d", s.Retries)
	}
	if s.Rotation != RotationPosition {
		t.Errorf("expected Rotation=position, got %s", s.Rotation)
	}
	if s.MinAngle != -30 {
		t.Errorf("expected MinAngle=-30, got %f", s.MinAngle)
	}
}

func TestAddRecentMovesToFrontAndTrims(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.MaxRecent = 3

	cfg.AddRecent("a")
	cfg.AddRecent("b")
	cfg.AddRecent("c")
	cfg.AddRecent("a")
	cfg.AddRecent("d")

	want := []string{"d", "a", "c"}
	if len(cfg.RecentProjects) != len(want) {
		t.Fatalf("expected %d recent projects, got %v", len(want), cfg.RecentProjects)
	}
	for i := range want {
		if cfg.RecentProjects[i] != want[i] {
			t.Errorf("recent[%d] = %s, want %s", i, cfg.RecentProjects[i], want[i])
		}
	}
}
