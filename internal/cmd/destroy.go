package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tfstacks/cli/internal/output"
	"github.com/tfstacks/cli/internal/runner"
)

// NewDestroyCmd creates the destroy command.
func NewDestroyCmd() *cobra.Command {
	var (
		moduleIDFlag    string
		autoApproveFlag bool
	)

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Destroy every module in reverse dependency order",
		Long: `Run 'terraform destroy' for each module in reverse dependency order.

Dependents are destroyed before their dependencies. References to
dependency outputs resolve from the state cached before any module is
destroyed, so inputs stay stable throughout the run.

Examples:
  # Destroy everything
  tfstacks destroy

  # Destroy a single module and its dependencies, dependents first
  tfstacks destroy --module-id account-1.webapp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !autoApproveFlag && output.IsTTY() {
				output.Warn("destroy removes real infrastructure; re-run with --auto-approve to proceed")
				return fmt.Errorf("destroy not confirmed")
			}
			return runDestroy(context.Background(), moduleIDFlag)
		},
	}

	cmd.Flags().StringVarP(&moduleIDFlag, "module-id", "m", "",
		"Restrict the run to this module and its dependencies")
	cmd.Flags().BoolVar(&autoApproveFlag, "auto-approve", false,
		"Skip the interactive confirmation")

	return cmd
}

func runDestroy(ctx context.Context, moduleID string) error {
	g, plan, result, err := executeRun(ctx, runner.ActionDestroy, moduleID, false)
	printRunResult(g, plan, result, runner.ActionDestroy, false)
	return err
}
