package cmd

import (
	"context"

	"github.com/tfstacks/cli/internal/engine"
	"github.com/tfstacks/cli/internal/output"
	"github.com/tfstacks/cli/internal/refs"
	"github.com/tfstacks/cli/internal/runner"
)

// runPlanDiff resolves every module's inputs without invoking terraform and
// diffs them against the inputs saved by the previous run. References to
// dependency outputs resolve from cached state, with mocked outputs filling
// the gaps.
func runPlanDiff(ctx context.Context, moduleID string) error {
	cfg := GetConfig()

	g, err := loadGraph(cfg)
	if err != nil {
		return err
	}

	plan, err := buildPlan(g, moduleID)
	if err != nil {
		return err
	}

	tr, err := newTerraformRunner(cfg)
	if err != nil {
		return err
	}

	table := engine.NewOutputTable()
	for _, id := range plan {
		mod, _ := g.Module(id)

		outputs := map[string]any{}
		rm := runner.ResolvedModule{ID: mod.ID, Source: mod.Source, MockedOutputs: mod.MockedOutputs}
		if real, readErr := tr.ReadOutputs(ctx, rm); readErr == nil {
			outputs = real
		}
		for name, value := range mod.MockedOutputs {
			if _, ok := outputs[name]; !ok {
				outputs[name] = value
			}
		}

		if err := table.Set(id, outputs); err != nil {
			return err
		}
	}

	resolver := refs.NewResolver(g, table)
	diff := output.NewInputsDiff()

	for _, id := range plan {
		mod, _ := g.Module(id)

		inputs, err := resolver.ResolveInputs(mod)
		if err != nil {
			return err
		}

		current, err := runner.MarshalInputs(inputs)
		if err != nil {
			return err
		}

		previous, ok := tr.PreviousResolvedInputs(id)
		if !ok {
			diff.AddNew(id)
			continue
		}

		report, err := output.CompareYAML("previous", previous, "current", current, output.IsTTY())
		if err != nil {
			return err
		}

		if report == "" {
			diff.AddUnchanged(id)
		} else {
			diff.AddChanged(id, report)
		}
	}

	output.Print(output.RenderInputsDiff(diff, output.GetStyles()))
	return nil
}
