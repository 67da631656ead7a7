package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tfstacks/cli/internal/runner"
)

// NewApplyCmd creates the apply command.
func NewApplyCmd() *cobra.Command {
	var moduleIDFlag string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply every module in dependency order",
		Long: `Run 'terraform apply' for each module in dependency order.

Each module's resolved inputs are passed to terraform as TF_VAR_*
environment variables, and its outputs are captured after the apply so
downstream modules can reference them. On the first failure no new
modules start; modules already running finish, and their dependents are
skipped.

Examples:
  # Apply every module
  tfstacks apply

  # Apply a single module and its dependencies
  tfstacks apply --module-id account-1.vpc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(context.Background(), moduleIDFlag)
		},
	}

	cmd.Flags().StringVarP(&moduleIDFlag, "module-id", "m", "",
		"Restrict the run to this module and its dependencies")

	return cmd
}

func runApply(ctx context.Context, moduleID string) error {
	g, plan, result, err := executeRun(ctx, runner.ActionApply, moduleID, false)
	printRunResult(g, plan, result, runner.ActionApply, false)
	return err
}
