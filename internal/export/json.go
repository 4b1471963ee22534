package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/piwi3910/scatter/internal/engine"
	"github.com/piwi3910/scatter/internal/model"
)

// Report is the JSON document written for a distribution result.
type Report struct {
	Result model.DistributeResult `json:"result"`
	Stats  engine.Stats           `json:"stats"`
}

// NewReport bundles a result with its statistics.
func NewReport(result model.DistributeResult) Report {
	return Report{Result: result, Stats: engine.Analyze(result)}
}

// WriteJSON writes the report for result to w as indented JSON.
func WriteJSON(w io.Writer, result model.DistributeResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReport(result)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// ExportJSON writes the report for result to path, creating parent directories.
func ExportJSON(path string, result model.DistributeResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteJSON(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
