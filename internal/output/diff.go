package output

import (
	"fmt"
	"strings"
)

// InputsDiff holds per-module differences between the previously applied
// resolved inputs and the inputs resolved by the current run.
type InputsDiff struct {
	// New modules (no previously cached inputs).
	New []string

	// Unchanged modules.
	Unchanged []string

	// Changed modules with their rendered diffs.
	Changed []ChangedModule
}

// ChangedModule is a module whose resolved inputs differ from the cached run.
type ChangedModule struct {
	// ID is the fully qualified module id.
	ID string

	// Diff is the rendered dyff output.
	Diff string
}

// NewInputsDiff creates a new empty InputsDiff.
func NewInputsDiff() *InputsDiff {
	return &InputsDiff{}
}

// IsEmpty returns true if no module's inputs changed.
func (d *InputsDiff) IsEmpty() bool {
	return len(d.New) == 0 && len(d.Changed) == 0
}

// AddNew records a module with no cached inputs.
func (d *InputsDiff) AddNew(id string) {
	d.New = append(d.New, id)
}

// AddUnchanged records a module whose inputs are identical to the cached run.
func (d *InputsDiff) AddUnchanged(id string) {
	d.Unchanged = append(d.Unchanged, id)
}

// AddChanged records a module with modified inputs.
func (d *InputsDiff) AddChanged(id, diff string) {
	d.Changed = append(d.Changed, ChangedModule{ID: id, Diff: diff})
}

// Summary returns a one-line summary of changes.
func (d *InputsDiff) Summary() string {
	if d.IsEmpty() {
		return "No input changes"
	}

	parts := make([]string, 0, 3)
	if len(d.New) > 0 {
		parts = append(parts, fmt.Sprintf("%d new", len(d.New)))
	}
	if len(d.Changed) > 0 {
		parts = append(parts, fmt.Sprintf("%d changed", len(d.Changed)))
	}
	if len(d.Unchanged) > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", len(d.Unchanged)))
	}

	return strings.Join(parts, ", ")
}

// RenderInputsDiff renders an InputsDiff with styles.
func RenderInputsDiff(d *InputsDiff, styles *Styles) string {
	if d.IsEmpty() {
		return "No input changes detected."
	}

	var sb strings.Builder

	if len(d.New) > 0 {
		sb.WriteString(styles.Success.Render("New:"))
		sb.WriteString("\n")
		for _, id := range d.New {
			sb.WriteString("  + ")
			sb.WriteString(styles.Success.Render(id))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(d.Changed) > 0 {
		sb.WriteString(styles.Warning.Render("Changed:"))
		sb.WriteString("\n")
		for _, mod := range d.Changed {
			sb.WriteString("  ~ ")
			sb.WriteString(styles.Warning.Render(mod.ID))
			sb.WriteString("\n")
			if mod.Diff != "" {
				sb.WriteString(IndentDiff(mod.Diff, "    "))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Summary: ")
	sb.WriteString(d.Summary())
	sb.WriteString("\n")

	return sb.String()
}

// IndentDiff indents a diff string for display under a module id.
func IndentDiff(diff string, indent string) string {
	if diff == "" {
		return ""
	}

	var sb strings.Builder
	lines := strings.Split(diff, "\n")
	for _, line := range lines {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
