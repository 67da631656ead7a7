package graph

import (
	"fmt"
	"sort"

	oerrors "github.com/tfstacks/cli/internal/errors"
)

// ExecutionPlan orders every module in the registry so that each module
// appears after all of its dependencies. Ties among simultaneously eligible
// modules break by lexicographic ID, so the plan is reproducible.
func (g *Graph) ExecutionPlan() ([]string, error) {
	return g.topoSort(g.Modules())
}

// ExecutionPlanFor computes the transitive dependency closure of the target
// module, orders it, and appends the target last. Modules outside the
// closure never appear.
func (g *Graph) ExecutionPlanFor(target string) ([]string, error) {
	if _, ok := g.modules[target]; !ok {
		return nil, &UnknownTargetError{Target: target}
	}

	closure := map[string]bool{}
	stack := []string{target}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if closure[id] {
			continue
		}
		closure[id] = true
		stack = append(stack, g.modules[id].DependencyIDs()...)
	}

	ids := make([]string, 0, len(closure))
	for id := range closure {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return g.topoSort(ids)
}

// topoSort is Kahn's algorithm restricted to the given module set, with
// lexicographic tie-breaking. Edges leaving the set are ignored.
func (g *Graph) topoSort(ids []string) ([]string, error) {
	inSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		inSet[id] = true
	}

	indegree := make(map[string]int, len(ids))
	dependents := make(map[string][]string, len(ids))
	for _, id := range ids {
		for _, depID := range g.modules[id].DependencyIDs() {
			if inSet[depID] {
				indegree[id]++
				dependents[depID] = append(dependents[depID], id)
			}
		}
	}

	var ready []string
	for _, id := range ids {
		if indegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	plan := make([]string, 0, len(ids))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		plan = append(plan, id)

		for _, dependent := range dependents[id] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				at := sort.SearchStrings(ready, dependent)
				ready = append(ready, "")
				copy(ready[at+1:], ready[at:])
				ready[at] = dependent
			}
		}
	}

	if len(plan) != len(ids) {
		// Unreachable after ResolveDependencies, which rejects cycles.
		return nil, oerrors.WrapConfig(
			fmt.Errorf("%d of %d modules unplannable, dependency cycle suspected", len(ids)-len(plan), len(ids)),
			"planning execution order")
	}
	return plan, nil
}
