// Package graph builds the typed scope/module graph from the raw
// infrastructure document and turns it into a deterministic execution plan.
package graph

import "sort"

// ScopeNode is a hierarchical grouping node (e.g. account, tenant) that owns
// child scopes and modules and exposes variables to descendants.
type ScopeNode struct {
	// ID is the fully-qualified dotted path, e.g. "account-1.tenant-a".
	ID string

	// Kind is the free-form scope type tag, e.g. "account" or "tenant".
	Kind string

	// ParentID is the owning scope's ID; empty for a top-level scope.
	ParentID string

	// Variables maps variable names to fully materialized values.
	Variables map[string]any

	// Scopes and Modules hold child node IDs. Children are addressed by
	// ID rather than by pointer so that back-references stay plain
	// lookups.
	Scopes  []string
	Modules []string
}

// Dependency is one resolved edge of a module's dependency list.
type Dependency struct {
	// Name is the bare source name as written in the document.
	Name string

	// ID is the fully-qualified module ID, set by dependency resolution.
	ID string
}

// ModuleNode is a leaf unit representing one infrastructure stack instance.
type ModuleNode struct {
	// ID is the fully-qualified dotted path including the scope chain,
	// e.g. "account-1.tenant-a.webapp".
	ID string

	// Source is the implementation key shared by all module instances of
	// the same kind; also the key into source_default.
	Source string

	// ScopeID is the owning scope's ID; empty for a document-root module.
	ScopeID string

	// Dependencies is the merged, deduplicated dependency list.
	Dependencies []Dependency

	// Inputs maps target variable names to literals or reference
	// expressions.
	Inputs map[string]any

	// MockedOutputs substitutes outputs when the module has not run.
	MockedOutputs map[string]any
}

// DependencyIDs returns the resolved dependency IDs in list order.
func (m *ModuleNode) DependencyIDs() []string {
	ids := make([]string, 0, len(m.Dependencies))
	for _, dep := range m.Dependencies {
		if dep.ID != "" {
			ids = append(ids, dep.ID)
		}
	}
	return ids
}

// DependencyByName returns the resolved dependency with the given bare name.
func (m *ModuleNode) DependencyByName(name string) (Dependency, bool) {
	for _, dep := range m.Dependencies {
		if dep.Name == name {
			return dep, true
		}
	}
	return Dependency{}, false
}

// Graph is the registry of all scopes and modules, keyed by fully-qualified
// ID. The empty scope ID addresses the document root.
type Graph struct {
	scopes  map[string]*ScopeNode
	modules map[string]*ModuleNode

	// modulesByScope indexes module IDs by owning scope ID, including ""
	// for document-root modules.
	modulesByScope map[string][]string
}

// Scope returns the scope with the given ID.
func (g *Graph) Scope(id string) (*ScopeNode, bool) {
	s, ok := g.scopes[id]
	return s, ok
}

// Module returns the module with the given ID.
func (g *Graph) Module(id string) (*ModuleNode, bool) {
	m, ok := g.modules[id]
	return m, ok
}

// Modules returns all module IDs in lexicographic order.
func (g *Graph) Modules() []string {
	ids := make([]string, 0, len(g.modules))
	for id := range g.modules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Scopes returns all scope IDs in lexicographic order.
func (g *Graph) Scopes() []string {
	ids := make([]string, 0, len(g.scopes))
	for id := range g.scopes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ModulesIn returns the module IDs directly owned by the given scope, in
// lexicographic order. The empty scope ID addresses the document root.
func (g *Graph) ModulesIn(scopeID string) []string {
	ids := append([]string(nil), g.modulesByScope[scopeID]...)
	sort.Strings(ids)
	return ids
}

// ScopeChain returns the scope IDs visible from the given scope, nearest
// first, ending with the document root (""). The starting scope itself is
// included.
func (g *Graph) ScopeChain(scopeID string) []string {
	chain := []string{}
	for scopeID != "" {
		chain = append(chain, scopeID)
		s, ok := g.scopes[scopeID]
		if !ok {
			break
		}
		scopeID = s.ParentID
	}
	return append(chain, "")
}

// OnAncestorChain reports whether candidate is the scope itself or one of
// its ancestors (the document root included).
func (g *Graph) OnAncestorChain(scopeID, candidate string) bool {
	for _, id := range g.ScopeChain(scopeID) {
		if id == candidate {
			return true
		}
	}
	return false
}

// ScopeByKind walks the ancestor chain of the given scope looking for the
// nearest scope whose kind tag matches.
func (g *Graph) ScopeByKind(scopeID, kind string) (*ScopeNode, bool) {
	for _, id := range g.ScopeChain(scopeID) {
		if id == "" {
			break
		}
		s := g.scopes[id]
		if s != nil && s.Kind == kind {
			return s, true
		}
	}
	return nil, false
}
