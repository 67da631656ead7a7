package graph

import "github.com/tfstacks/cli/internal/infra"

// ApplyDefaults merges source_default entries into every module. The merge
// is a pure function of the module's explicit settings and the defaults for
// its source, so applying it twice changes nothing.
//
// Per-field semantics:
//   - dependencies: union, deduplicated by name, explicit entries first.
//   - inputs: shallow merge by target name, an explicit entry replaces the
//     default entry wholesale.
//   - mocked_outputs: shallow merge by output name, explicit wins.
func (g *Graph) ApplyDefaults(defaults map[string]infra.SourceDefaults) {
	for _, id := range g.Modules() {
		mod := g.modules[id]
		def, ok := defaults[mod.Source]
		if !ok {
			continue
		}
		mergeDefaults(mod, def)
	}
}

func mergeDefaults(mod *ModuleNode, def infra.SourceDefaults) {
	seen := make(map[string]bool, len(mod.Dependencies))
	for _, dep := range mod.Dependencies {
		seen[dep.Name] = true
	}
	for _, name := range def.Dependencies {
		if !seen[name] {
			mod.Dependencies = append(mod.Dependencies, Dependency{Name: name})
			seen[name] = true
		}
	}

	for name, value := range def.Inputs {
		if _, ok := mod.Inputs[name]; !ok {
			mod.Inputs[name] = value
		}
	}

	for name, value := range def.MockedOutputs {
		if _, ok := mod.MockedOutputs[name]; !ok {
			mod.MockedOutputs[name] = value
		}
	}
}
