package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/scatter/internal/model"
)

// Format is a project file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFor picks the encoding from the file extension. Anything other
// than .toml is treated as JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// SaveProject writes a project to path, encoded according to its extension.
// TOML files never carry the last result.
func SaveProject(path string, proj model.Project) error {
	data, err := EncodeProject(FormatFor(path), proj)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// EncodeProject serializes a project in the given format.
func EncodeProject(format Format, proj model.Project) ([]byte, error) {
	if format == FormatTOML {
		if proj.Settings.Seed != nil && *proj.Settings.Seed > math.MaxInt64 {
			return nil, fmt.Errorf("failed to encode project: seed %d does not fit a TOML integer", *proj.Settings.Seed)
		}
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(proj); err != nil {
			return nil, fmt.Errorf("failed to encode project: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}
	return data, nil
}

// LoadProject reads a project from path, decoded according to its extension.
// Settings missing from the file keep their default values.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	proj, err := DecodeProject(FormatFor(path), data)
	if err != nil {
		return model.Project{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return proj, nil
}

// DecodeProject parses a project in the given format.
func DecodeProject(format Format, data []byte) (model.Project, error) {
	proj := model.NewProject()
	if format == FormatTOML {
		if err := toml.Unmarshal(data, &proj); err != nil {
			return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
		}
	} else if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if proj.Items == nil {
		proj.Items = []model.Item{}
	}
	return proj, nil
}
