package graph

// ResolveDependencies converts every module's bare dependency names into
// fully-qualified module IDs under the ancestor-scope visibility rule, then
// checks the resulting edge set for cycles.
//
// For a module M in scope S, a dependency name resolves against the modules
// directly under S (excluding M itself), then the modules directly under
// each ancestor of S, nearest first, ending with the document root. The
// search stops at the first level with at least one match; more than one
// match there is ambiguous.
func (g *Graph) ResolveDependencies() error {
	for _, id := range g.Modules() {
		mod := g.modules[id]
		resolved := make([]Dependency, 0, len(mod.Dependencies))
		seen := make(map[string]bool, len(mod.Dependencies))

		for _, dep := range mod.Dependencies {
			depID, err := g.resolveDependency(mod, dep.Name)
			if err != nil {
				return err
			}
			if !seen[depID] {
				resolved = append(resolved, Dependency{Name: dep.Name, ID: depID})
				seen[depID] = true
			}
		}
		mod.Dependencies = resolved
	}

	return g.detectCycles()
}

func (g *Graph) resolveDependency(mod *ModuleNode, name string) (string, error) {
	for _, scopeID := range g.ScopeChain(mod.ScopeID) {
		var candidates []string
		for _, id := range g.ModulesIn(scopeID) {
			if id == mod.ID {
				continue
			}
			if g.modules[id].Source == name {
				candidates = append(candidates, id)
			}
		}
		switch len(candidates) {
		case 0:
			continue
		case 1:
			return candidates[0], nil
		default:
			return "", &AmbiguousDependencyError{
				ModuleID:   mod.ID,
				Dependency: name,
				ScopeID:    scopeID,
				Candidates: candidates,
			}
		}
	}

	// Nothing on the ancestor chain. Distinguish a name that exists in an
	// excluded branch from one that exists nowhere.
	var elsewhere []string
	for _, id := range g.Modules() {
		if id != mod.ID && g.modules[id].Source == name {
			elsewhere = append(elsewhere, id)
		}
	}
	if len(elsewhere) > 0 {
		return "", &OutOfScopeDependencyError{
			ModuleID:   mod.ID,
			Dependency: name,
			FoundIn:    elsewhere,
		}
	}
	return "", &UnknownSourceError{ModuleID: mod.ID, Dependency: name}
}

// detectCycles runs a depth-first search with an on-stack marker over the
// resolved edge set and reports the first cycle with its full path.
func (g *Graph) detectCycles() error {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(g.modules))

	var stack []string
	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case done:
			return nil
		case onStack:
			// Slice the stack from the first occurrence of id to report
			// the whole cycle.
			start := 0
			for i, sid := range stack {
				if sid == id {
					start = i
					break
				}
			}
			path := append([]string(nil), stack[start:]...)
			return &CycleError{Path: append(path, id)}
		}

		state[id] = onStack
		stack = append(stack, id)
		for _, depID := range g.modules[id].DependencyIDs() {
			if err := visit(depID); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		return nil
	}

	for _, id := range g.Modules() {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}
