// Package infra loads the declarative infrastructure document.
//
// The document is a YAML file whose root is a mapping of named top-level
// scopes, plus the reserved key "source_default". Loading produces the raw
// untyped tree (maps, sequences, scalars) consumed only by the graph
// builder, and the parsed source-default table.
package infra

// ReservedRootKey is the document root key holding per-source defaults,
// excluded from the scope/module walk.
const ReservedRootKey = "source_default"

// Document is the parsed infrastructure file.
type Document struct {
	// Roots maps top-level node names to their raw subtree.
	Roots map[string]any

	// SourceDefaults maps a source name to the defaults merged into every
	// module instance of that source.
	SourceDefaults map[string]SourceDefaults
}

// SourceDefaults holds the reusable default settings for one source.
type SourceDefaults struct {
	// Dependencies is a list of bare source names.
	Dependencies []string

	// Inputs maps target variable names to literals or reference
	// expressions. The document may spell this key "inputs" or
	// "variables"; both feed the same map.
	Inputs map[string]any

	// MockedOutputs substitutes outputs for modules of this source when
	// they have not actually run.
	MockedOutputs map[string]any
}
