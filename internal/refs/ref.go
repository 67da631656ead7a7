// Package refs resolves reference expressions in module inputs against
// module outputs and scope variables.
//
// A reference expression is a mapping shaped {from: "<target>.<attribute>[<path>]",
// default: <value>}; any other input value is a literal. The legacy key
// "path" is accepted as an alias of "from".
package refs

// Expr is a parsed reference expression.
type Expr struct {
	// From is the raw dotted reference, e.g. "vpc.public_subnets[0]".
	From string

	// Default is the fallback value used when any resolution step fails.
	Default any

	// HasDefault distinguishes an explicit null default from no default.
	HasDefault bool
}

// Parse inspects a raw input value. It returns the parsed expression and
// true for a reference expression, or false for a literal.
func Parse(value any) (Expr, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		return Expr{}, false
	}

	var from string
	if s, ok := m["from"].(string); ok {
		from = s
	} else if s, ok := m["path"].(string); ok {
		from = s
	} else {
		return Expr{}, false
	}

	expr := Expr{From: from}
	if def, ok := m["default"]; ok {
		expr.Default = def
		expr.HasDefault = true
	}
	return expr, true
}
