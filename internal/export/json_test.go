package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, buildLabelsTestResult()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var report Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if report.Result.Seed != 99 {
		t.Errorf("expected seed 99, got %d", report.Result.Seed)
	}
	if report.Stats.Placed != 2 || report.Stats.Unplaced != 1 {
		t.Errorf("unexpected stats %+v", report.Stats)
	}
	if report.Result.Outcomes[1].Reason != "retries_exhausted" {
		t.Errorf("expected failure reason, got %q", report.Result.Outcomes[1].Reason)
	}
}

func TestExportJSON_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.json")

	if err := ExportJSON(path, buildLabelsTestResult()); err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !json.Valid(data) {
		t.Error("report is not valid JSON")
	}
}
