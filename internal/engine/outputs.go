// Package engine executes an ordered module plan on a bounded worker pool,
// resolving each module's inputs the moment its direct dependencies have
// finished.
package engine

import (
	"fmt"
	"sync"
)

// OutputTable is the incrementally populated record of realized outputs,
// keyed by fully-qualified module ID. Entries are write-once and read-many.
type OutputTable struct {
	mu      sync.RWMutex
	outputs map[string]map[string]any
}

// NewOutputTable creates an empty table.
func NewOutputTable() *OutputTable {
	return &OutputTable{outputs: make(map[string]map[string]any)}
}

// ModuleOutputs implements refs.OutputSource.
func (t *OutputTable) ModuleOutputs(id string) (map[string]any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	outputs, ok := t.outputs[id]
	return outputs, ok
}

// Set records a module's realized outputs. Writing the same module twice is
// a scheduling bug and fails loudly.
func (t *OutputTable) Set(id string, outputs map[string]any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.outputs[id]; ok {
		return fmt.Errorf("outputs for %q already recorded", id)
	}
	t.outputs[id] = outputs
	return nil
}
