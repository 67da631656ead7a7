package runner

import (
	"context"

	"github.com/tfstacks/cli/internal/output"
)

// MockRunner performs no subprocess work and realizes every module's
// mocked outputs. Used by --mock runs and plan previews.
type MockRunner struct{}

// NewMockRunner creates a MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// Run implements Runner.
func (m *MockRunner) Run(_ context.Context, mod ResolvedModule, action Action) (map[string]any, error) {
	output.Info("mock terraform", "action", string(action), "module", mod.ID)

	outputs := make(map[string]any, len(mod.MockedOutputs))
	for name, value := range mod.MockedOutputs {
		outputs[name] = value
	}
	return outputs, nil
}
