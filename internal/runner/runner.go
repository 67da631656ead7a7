// Package runner invokes terraform against resolved modules. The engine
// only sees the Runner interface; the terraform binary, the per-module
// cache, and the module sources directory are this package's concern.
package runner

import (
	"context"
	"fmt"

	oerrors "github.com/tfstacks/cli/internal/errors"
)

// Action is one terraform operation.
type Action string

const (
	ActionPlan    Action = "plan"
	ActionApply   Action = "apply"
	ActionDestroy Action = "destroy"
)

// ParseAction parses a CLI action name.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionPlan, ActionApply, ActionDestroy:
		return Action(s), nil
	default:
		return "", fmt.Errorf("unknown action %q (expected plan, apply, or destroy)", s)
	}
}

// ResolvedModule is a module whose inputs have been fully materialized.
type ResolvedModule struct {
	// ID is the fully-qualified module ID.
	ID string

	// Source names the implementation directory under the modules dir.
	Source string

	// Variables is the resolved input map passed to terraform.
	Variables map[string]any

	// MockedOutputs substitutes outputs when the module does not really
	// run.
	MockedOutputs map[string]any
}

// Runner performs one terraform action against a resolved module and
// returns the module's realized outputs.
type Runner interface {
	Run(ctx context.Context, mod ResolvedModule, action Action) (map[string]any, error)
}

// Error wraps a failed terraform invocation with the module and action.
type Error struct {
	ModuleID string
	Action   Action
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("module %q: terraform %s: %v", e.ModuleID, e.Action, e.Err)
}

func (e *Error) Unwrap() []error { return []error{oerrors.ErrRunner, e.Err} }
