package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	oerrors "github.com/tfstacks/cli/internal/errors"
)

// Load reads and parses the infrastructure document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.WrapNotFound(err, fmt.Sprintf("infrastructure file %q", path))
		}
		return nil, fmt.Errorf("reading infrastructure file %q: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return doc, nil
}

// Parse parses raw YAML bytes into a Document.
func Parse(data []byte) (*Document, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, oerrors.WrapConfig(err, "invalid YAML")
	}

	doc := &Document{
		Roots:          make(map[string]any, len(root)),
		SourceDefaults: make(map[string]SourceDefaults),
	}

	for key, value := range root {
		if key != ReservedRootKey {
			doc.Roots[key] = value
			continue
		}

		defaultsRaw, ok := value.(map[string]any)
		if !ok {
			return nil, oerrors.WrapConfig(
				fmt.Errorf("%s must be a mapping, got %T", ReservedRootKey, value),
				"invalid document")
		}
		for source, raw := range defaultsRaw {
			defaults, err := parseSourceDefaults(raw)
			if err != nil {
				return nil, oerrors.WrapConfig(
					fmt.Errorf("%s.%s: %w", ReservedRootKey, source, err),
					"invalid document")
			}
			doc.SourceDefaults[source] = defaults
		}
	}

	return doc, nil
}

// parseSourceDefaults parses one source_default entry.
func parseSourceDefaults(raw any) (SourceDefaults, error) {
	var defaults SourceDefaults

	m, ok := raw.(map[string]any)
	if !ok {
		return defaults, fmt.Errorf("expected a mapping, got %T", raw)
	}

	for key, value := range m {
		switch key {
		case "dependencies":
			deps, err := StringList(value)
			if err != nil {
				return defaults, fmt.Errorf("dependencies: %w", err)
			}
			defaults.Dependencies = deps
		case "inputs", "variables":
			inputs, ok := value.(map[string]any)
			if !ok {
				return defaults, fmt.Errorf("%s: expected a mapping, got %T", key, value)
			}
			if defaults.Inputs == nil {
				defaults.Inputs = make(map[string]any, len(inputs))
			}
			for k, v := range inputs {
				defaults.Inputs[k] = v
			}
		case "mocked_outputs":
			outputs, ok := value.(map[string]any)
			if !ok {
				return defaults, fmt.Errorf("mocked_outputs: expected a mapping, got %T", value)
			}
			defaults.MockedOutputs = outputs
		default:
			return defaults, fmt.Errorf("unknown key %q", key)
		}
	}

	return defaults, nil
}

// StringList coerces a raw sequence into a list of strings.
func StringList(value any) ([]string, error) {
	seq, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a sequence, got %T", value)
	}
	out := make([]string, 0, len(seq))
	for i, item := range seq {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("element %d: expected a string, got %T", i, item)
		}
		out = append(out, s)
	}
	return out, nil
}
