package cmd

import (
	"context"
	"fmt"

	"github.com/tfstacks/cli/internal/config"
	"github.com/tfstacks/cli/internal/engine"
	"github.com/tfstacks/cli/internal/graph"
	"github.com/tfstacks/cli/internal/infra"
	"github.com/tfstacks/cli/internal/output"
	"github.com/tfstacks/cli/internal/runner"
)

// loadGraph runs the load pipeline: parse the infrastructure file, build the
// scope/module graph, merge source defaults, resolve dependency names.
func loadGraph(cfg *config.Config) (*graph.Graph, error) {
	path, err := config.ExpandPath(cfg.InfraFile)
	if err != nil {
		return nil, err
	}

	doc, err := infra.Load(path)
	if err != nil {
		return nil, err
	}

	g, err := graph.Build(doc)
	if err != nil {
		return nil, err
	}

	g.ApplyDefaults(doc.SourceDefaults)

	if err := g.ResolveDependencies(); err != nil {
		return nil, err
	}

	output.Debug("graph loaded",
		"file", path,
		"scopes", len(g.Scopes()),
		"modules", len(g.Modules()),
	)
	return g, nil
}

// buildPlan returns the ordered execution plan, restricted to moduleID and
// its transitive dependencies when moduleID is non-empty.
func buildPlan(g *graph.Graph, moduleID string) ([]string, error) {
	if moduleID == "" {
		return g.ExecutionPlan()
	}
	return g.ExecutionPlanFor(moduleID)
}

// newTerraformRunner builds the terraform runner from resolved configuration.
func newTerraformRunner(cfg *config.Config) (*runner.TerraformRunner, error) {
	cacheDir, err := config.ExpandPath(cfg.CacheDir)
	if err != nil {
		return nil, err
	}
	modulesDir, err := config.ExpandPath(cfg.ModulesDir)
	if err != nil {
		return nil, err
	}

	if err := config.EnsureCacheDir(cacheDir); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return runner.NewTerraformRunner(cfg.TerraformBin, cacheDir, modulesDir), nil
}

// executeRun is the shared plan/apply/destroy pipeline.
func executeRun(ctx context.Context, action runner.Action, moduleID string, mock bool) (*graph.Graph, []string, *engine.Result, error) {
	cfg := GetConfig()

	g, err := loadGraph(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	plan, err := buildPlan(g, moduleID)
	if err != nil {
		return nil, nil, nil, err
	}

	var r runner.Runner
	if mock {
		r = runner.NewMockRunner()
	} else {
		r, err = newTerraformRunner(cfg)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	output.Info(fmt.Sprintf("%s: %d module(s)", action, len(plan)))

	result, err := engine.New(g, r, cfg.Workers).Execute(ctx, plan, action)
	return g, plan, result, err
}

// statusLabel maps an engine module status to its display status for action.
func statusLabel(status engine.Status, action runner.Action, mock bool) string {
	switch status {
	case engine.StatusDone:
		if mock {
			return output.StatusMocked
		}
		switch action {
		case runner.ActionApply:
			return output.StatusApplied
		case runner.ActionDestroy:
			return output.StatusDestroyed
		default:
			return output.StatusPlanned
		}
	case engine.StatusFailed:
		return output.StatusFailed
	default:
		return output.StatusSkipped
	}
}

// printRunResult renders per-module status lines and a summary table.
func printRunResult(g *graph.Graph, plan []string, result *engine.Result, action runner.Action, mock bool) {
	if result == nil {
		return
	}

	rows := make([]output.ModuleRow, 0, len(plan))
	failed := 0
	for _, id := range plan {
		mr := result.Modules[id]
		if mr == nil {
			continue
		}
		status := statusLabel(mr.Status, action, mock)
		if mr.Status == engine.StatusFailed {
			failed++
		}

		output.Println(output.FormatModuleLine(id, status))

		source := ""
		if mod, ok := g.Module(id); ok {
			source = mod.Source
		}
		rows = append(rows, output.ModuleRow{ID: id, Source: source, Status: status})
	}

	if verboseFlag {
		output.Println(output.RenderModuleTable(rows))
	}

	if failed == 0 {
		switch action {
		case runner.ActionApply:
			output.Println(output.FormatCheckmark("All modules applied"))
		case runner.ActionDestroy:
			output.Println(output.FormatCheckmark("All modules destroyed"))
		default:
			output.Println(output.FormatCheckmark("Plan complete"))
		}
	}
}
