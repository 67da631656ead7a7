package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tfstacks/cli/internal/runner"
)

// NewPlanCmd creates the plan command.
func NewPlanCmd() *cobra.Command {
	var (
		moduleIDFlag string
		mockFlag     bool
		diffFlag     bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview terraform changes for every module",
		Long: `Run 'terraform plan' for each module in dependency order.

Modules run after their dependencies so that references to dependency
outputs resolve against real state where it exists. Outputs missing from
state (for example on a first run) fall back to the module's mocked
outputs so downstream plans still resolve.

Examples:
  # Plan every module
  tfstacks plan

  # Plan a single module and its dependencies
  tfstacks plan --module-id account-1.vpc

  # Plan without invoking terraform at all
  tfstacks plan --mock

  # Show how resolved inputs changed since the last run
  tfstacks plan --diff`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if diffFlag {
				return runPlanDiff(context.Background(), moduleIDFlag)
			}
			return runPlan(context.Background(), moduleIDFlag, mockFlag)
		},
	}

	cmd.Flags().StringVarP(&moduleIDFlag, "module-id", "m", "",
		"Restrict the run to this module and its dependencies")
	cmd.Flags().BoolVar(&mockFlag, "mock", false,
		"Resolve every module from mocked outputs without invoking terraform")
	cmd.Flags().BoolVar(&diffFlag, "diff", false,
		"Diff resolved inputs against the previous run instead of invoking terraform")

	return cmd
}

func runPlan(ctx context.Context, moduleID string, mock bool) error {
	g, plan, result, err := executeRun(ctx, runner.ActionPlan, moduleID, mock)
	printRunResult(g, plan, result, runner.ActionPlan, mock)
	return err
}
