package graph

import (
	"fmt"
	"sort"

	oerrors "github.com/tfstacks/cli/internal/errors"
	"github.com/tfstacks/cli/internal/infra"
)

// Keys with reserved meaning inside a scope mapping. Every other mapping
// child is a nested scope or module.
var scopeReservedKeys = map[string]bool{
	"scope":           true,
	"scope_type":      true,
	"variables":       true,
	"scope_variables": true,
}

// Build walks the raw document tree and produces the typed graph: the scope
// and module registries plus parent/child links. Dependency lists still hold
// bare source names afterwards; call ApplyDefaults and ResolveDependencies
// before planning.
func Build(doc *infra.Document) (*Graph, error) {
	g := &Graph{
		scopes:         make(map[string]*ScopeNode),
		modules:        make(map[string]*ModuleNode),
		modulesByScope: make(map[string][]string),
	}

	keys := make([]string, 0, len(doc.Roots))
	for key := range doc.Roots {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := g.addNode(doc.Roots[key], key, ""); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// addNode classifies one raw node and registers it. A mapping with a
// "source" key is a module; any other mapping is a scope, marker or not.
func (g *Graph) addNode(raw any, id, parentID string) error {
	m, ok := raw.(map[string]any)
	if !ok {
		return oerrors.WrapConfig(
			fmt.Errorf("node %q: expected a mapping, got %T", id, raw),
			"invalid document structure")
	}

	if _, isModule := m["source"]; isModule {
		return g.addModule(m, id, parentID)
	}
	return g.addScope(m, id, parentID)
}

func (g *Graph) addScope(m map[string]any, id, parentID string) error {
	scope := &ScopeNode{
		ID:        id,
		ParentID:  parentID,
		Variables: map[string]any{},
	}

	for _, key := range []string{"scope", "scope_type"} {
		if v, ok := m[key]; ok {
			kind, ok := v.(string)
			if !ok {
				return oerrors.WrapConfig(
					fmt.Errorf("scope %q: %s must be a string, got %T", id, key, v),
					"invalid document structure")
			}
			scope.Kind = kind
		}
	}

	for _, key := range []string{"variables", "scope_variables"} {
		if v, ok := m[key]; ok {
			vars, ok := v.(map[string]any)
			if !ok {
				return oerrors.WrapConfig(
					fmt.Errorf("scope %q: %s must be a mapping, got %T", id, key, v),
					"invalid document structure")
			}
			for name, value := range vars {
				scope.Variables[name] = value
			}
		}
	}

	g.scopes[id] = scope

	childKeys := make([]string, 0, len(m))
	for key := range m {
		if !scopeReservedKeys[key] {
			childKeys = append(childKeys, key)
		}
	}
	sort.Strings(childKeys)

	for _, key := range childKeys {
		childID := id + "." + key
		if err := g.addNode(m[key], childID, id); err != nil {
			return err
		}
		if _, ok := g.modules[childID]; ok {
			scope.Modules = append(scope.Modules, childID)
		} else {
			scope.Scopes = append(scope.Scopes, childID)
		}
	}

	return nil
}

func (g *Graph) addModule(m map[string]any, id, parentID string) error {
	source, ok := m["source"].(string)
	if !ok || source == "" {
		return oerrors.WrapConfig(
			fmt.Errorf("module %q: source must be a non-empty string", id),
			"invalid document structure")
	}

	mod := &ModuleNode{
		ID:            id,
		Source:        source,
		ScopeID:       parentID,
		Inputs:        map[string]any{},
		MockedOutputs: map[string]any{},
	}

	for key, value := range m {
		switch key {
		case "source":
			// Already consumed.
		case "dependencies":
			deps, err := infra.StringList(value)
			if err != nil {
				return oerrors.WrapConfig(
					fmt.Errorf("module %q: dependencies: %w", id, err),
					"invalid document structure")
			}
			for _, name := range deps {
				mod.Dependencies = append(mod.Dependencies, Dependency{Name: name})
			}
		case "inputs", "variables":
			inputs, ok := value.(map[string]any)
			if !ok {
				return oerrors.WrapConfig(
					fmt.Errorf("module %q: %s must be a mapping, got %T", id, key, value),
					"invalid document structure")
			}
			for name, v := range inputs {
				mod.Inputs[name] = v
			}
		case "mocked_outputs":
			outputs, ok := value.(map[string]any)
			if !ok {
				return oerrors.WrapConfig(
					fmt.Errorf("module %q: mocked_outputs must be a mapping, got %T", id, value),
					"invalid document structure")
			}
			for name, v := range outputs {
				mod.MockedOutputs[name] = v
			}
		default:
			return oerrors.WrapConfig(
				fmt.Errorf("module %q: unknown key %q", id, key),
				"invalid document structure")
		}
	}

	g.modules[id] = mod
	g.modulesByScope[parentID] = append(g.modulesByScope[parentID], id)
	return nil
}
