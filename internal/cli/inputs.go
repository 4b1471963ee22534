package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/piwi3910/scatter/internal/importer"
	"github.com/piwi3910/scatter/internal/model"
	"github.com/piwi3910/scatter/internal/project"
)

// inputOpts names the files a command reads besides the project itself.
type inputOpts struct {
	items string // CSV/Excel item list appended to the project's items
	avoid string // DXF/CSV/Excel avoidance zones appended to the project's avoid set
}

// loadInputs reads the project at path and merges any imported items and
// avoidance zones into it. Rows the importer rejects are logged; the command
// fails only when a file yields nothing usable.
func loadInputs(ctx context.Context, path string, in inputOpts) (model.Project, error) {
	logger := loggerFromContext(ctx)

	proj, err := project.LoadProject(path)
	if err != nil {
		return model.Project{}, err
	}
	logger.Debug("loaded project", "name", proj.Name, "items", len(proj.Items), "avoid", len(proj.Settings.Avoid))

	if in.items != "" {
		res := importer.ImportItems(in.items)
		if err := checkImport(ctx, in.items, res, len(res.Items)); err != nil {
			return model.Project{}, err
		}
		proj.Items = append(proj.Items, res.Items...)
		logger.Info("imported items", "file", in.items, "count", len(res.Items))
	}

	if in.avoid != "" {
		res := importer.ImportAvoid(in.avoid)
		if err := checkImport(ctx, in.avoid, res, len(res.Avoid)); err != nil {
			return model.Project{}, err
		}
		proj.Settings.Avoid = append(proj.Settings.Avoid, res.Avoid...)
		logger.Info("imported avoidance zones", "file", in.avoid, "count", len(res.Avoid))
	}

	return proj, nil
}

func checkImport(ctx context.Context, path string, res importer.ImportResult, count int) error {
	logger := loggerFromContext(ctx)
	for _, w := range res.Warnings {
		logger.Warn(w, "file", path)
	}
	for _, e := range res.Errors {
		logger.Error(e, "file", path)
	}
	if count == 0 && len(res.Errors) > 0 {
		return fmt.Errorf("import %s: %s", path, strings.Join(res.Errors, "; "))
	}
	return nil
}

// recordRecent moves path to the front of the app config's recent list.
// A config that cannot be read or written only produces a warning.
func recordRecent(ctx context.Context, configPath, path string) {
	logger := loggerFromContext(ctx)
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		logger.Warn("app config not updated", "err", err)
		return
	}
	cfg.AddRecent(path)
	if err := project.SaveAppConfig(configPath, cfg); err != nil {
		logger.Warn("app config not updated", "err", err)
	}
}
