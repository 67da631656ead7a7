package graph

import (
	"fmt"
	"strings"

	oerrors "github.com/tfstacks/cli/internal/errors"
)

// UnknownSourceError reports a dependency name that matched no module in any
// visible scope.
type UnknownSourceError struct {
	ModuleID   string
	Dependency string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("module %q: dependency %q matches no module in its scope or any ancestor scope",
		e.ModuleID, e.Dependency)
}

func (e *UnknownSourceError) Unwrap() error { return oerrors.ErrConfig }

// AmbiguousDependencyError reports more than one candidate module for a
// dependency name at the nearest qualifying scope level.
type AmbiguousDependencyError struct {
	ModuleID   string
	Dependency string
	ScopeID    string
	Candidates []string
}

func (e *AmbiguousDependencyError) Error() string {
	scope := e.ScopeID
	if scope == "" {
		scope = "<root>"
	}
	return fmt.Sprintf("module %q: dependency %q is ambiguous in scope %q: candidates %s",
		e.ModuleID, e.Dependency, scope, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousDependencyError) Unwrap() error { return oerrors.ErrConfig }

// OutOfScopeDependencyError reports a dependency that only resolves in a
// branch outside the module's ancestor chain.
type OutOfScopeDependencyError struct {
	ModuleID   string
	Dependency string
	FoundIn    []string
}

func (e *OutOfScopeDependencyError) Error() string {
	return fmt.Sprintf("module %q: dependency %q exists only outside the module's scope chain (found: %s)",
		e.ModuleID, e.Dependency, strings.Join(e.FoundIn, ", "))
}

func (e *OutOfScopeDependencyError) Unwrap() error { return oerrors.ErrConfig }

// CycleError reports a dependency cycle with its full path.
type CycleError struct {
	// Path lists the module IDs along the cycle; the first ID is repeated
	// at the end.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return oerrors.ErrConfig }

// UnknownTargetError reports a --module-id that matches no module.
type UnknownTargetError struct {
	Target string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("target module %q not found", e.Target)
}

func (e *UnknownTargetError) Unwrap() error { return oerrors.ErrNotFound }
