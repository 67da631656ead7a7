package refs

import (
	"fmt"
	"sort"

	oerrors "github.com/tfstacks/cli/internal/errors"
	"github.com/tfstacks/cli/internal/graph"
)

// OutputSource supplies realized outputs for already-executed (or mocked)
// modules, keyed by fully-qualified module ID.
type OutputSource interface {
	ModuleOutputs(id string) (map[string]any, bool)
}

// Resolver evaluates the input values of one module at a time against
// dependency outputs and ancestor scope variables.
type Resolver struct {
	graph   *graph.Graph
	outputs OutputSource
}

// NewResolver creates a Resolver reading realized outputs from the given
// source.
func NewResolver(g *graph.Graph, outputs OutputSource) *Resolver {
	return &Resolver{graph: g, outputs: outputs}
}

// ResolveInputs materializes every input of the module. Literals pass
// through untouched; reference expressions resolve against dependencies and
// scopes. Resolution of distinct keys is independent, so keys are processed
// in sorted order purely for stable error reporting.
func (r *Resolver) ResolveInputs(mod *graph.ModuleNode) (map[string]any, error) {
	names := make([]string, 0, len(mod.Inputs))
	for name := range mod.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	resolved := make(map[string]any, len(names))
	for _, name := range names {
		raw := mod.Inputs[name]
		expr, isRef := Parse(raw)
		if !isRef {
			resolved[name] = raw
			continue
		}
		value, err := r.Resolve(mod, expr)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", name, err)
		}
		resolved[name] = value
	}
	return resolved, nil
}

// Resolve evaluates a single reference expression for the given module.
func (r *Resolver) Resolve(mod *graph.ModuleNode, expr Expr) (any, error) {
	segs, err := ParsePath(expr.From)
	if err != nil {
		return nil, oerrors.WrapConfig(err, fmt.Sprintf("module %q", mod.ID))
	}

	target := segs[0].Key
	rest := segs[1:]

	// Module target: restricted to the module's own dependency set.
	if dep, ok := mod.DependencyByName(target); ok {
		outputs, ok := r.outputs.ModuleOutputs(dep.ID)
		if !ok {
			return r.fallback(mod, expr, fmt.Sprintf("outputs of %q not yet available", dep.ID))
		}
		value, ok := Traverse(outputs, rest)
		if !ok {
			return r.fallback(mod, expr, fmt.Sprintf("no such path in outputs of %q", dep.ID))
		}
		return value, nil
	}

	// Scope target: nearest ancestor scope with a matching kind tag.
	if scope, ok := r.graph.ScopeByKind(mod.ScopeID, target); ok {
		value, ok := Traverse(scope.Variables, rest)
		if !ok {
			return r.fallback(mod, expr, fmt.Sprintf("no such path in variables of scope %q", scope.ID))
		}
		return value, nil
	}

	if expr.HasDefault {
		return expr.Default, nil
	}
	return nil, &UnknownTargetError{ModuleID: mod.ID, Target: target, Reference: expr.From}
}

func (r *Resolver) fallback(mod *graph.ModuleNode, expr Expr, reason string) (any, error) {
	if expr.HasDefault {
		return expr.Default, nil
	}
	return nil, &UnresolvedError{ModuleID: mod.ID, Reference: expr.From, Reason: reason}
}

// UnresolvedError reports a reference whose attribute or path could not be
// found and that carries no default.
type UnresolvedError struct {
	ModuleID  string
	Reference string
	Reason    string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("module %q: unresolved reference %q: %s", e.ModuleID, e.Reference, e.Reason)
}

func (e *UnresolvedError) Unwrap() error { return oerrors.ErrConfig }

// UnknownTargetError reports a reference target that names neither a
// dependency nor an ancestor scope.
type UnknownTargetError struct {
	ModuleID  string
	Target    string
	Reference string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("module %q: reference %q: target %q is neither a dependency nor an ancestor scope",
		e.ModuleID, e.Reference, e.Target)
}

func (e *UnknownTargetError) Unwrap() error { return oerrors.ErrConfig }
