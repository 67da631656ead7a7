package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/tfstacks/cli/internal/errors"
	"github.com/tfstacks/cli/internal/testutil"
)

func TestParseAction(t *testing.T) {
	for _, name := range []string{"plan", "apply", "destroy"} {
		action, err := ParseAction(name)
		require.NoError(t, err)
		assert.Equal(t, Action(name), action)
	}

	_, err := ParseAction("refresh")
	assert.Error(t, err)
}

func TestTfVarEnv_EncodingAndOrder(t *testing.T) {
	env := tfVarEnv(map[string]any{
		"name":    "web",
		"count":   3,
		"subnets": []any{"subnet-111", "subnet-222"},
		"tags":    map[string]any{"env": "prod"},
	})

	assert.Equal(t, []string{
		"TF_VAR_count=3",
		"TF_VAR_name=web",
		`TF_VAR_subnets=["subnet-111","subnet-222"]`,
		`TF_VAR_tags={"env":"prod"}`,
	}, env)
}

func TestParseOutputs(t *testing.T) {
	outputs, err := ParseOutputs([]byte(`{
		"vpc_id": {"value": "vpc-123", "type": "string", "sensitive": false},
		"subnets": {"value": ["subnet-111"], "type": ["list", "string"], "sensitive": false}
	}`))
	require.NoError(t, err)

	vpcID, ok := outputs["vpc_id"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "vpc-123", vpcID["value"])
}

func TestParseOutputs_Empty(t *testing.T) {
	outputs, err := ParseOutputs([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, outputs)
}

func TestParseOutputs_Malformed(t *testing.T) {
	_, err := ParseOutputs([]byte("not json"))
	assert.Error(t, err)
}

func TestEnsureModuleDir_CopiesSources(t *testing.T) {
	modulesDir := t.TempDir()
	testutil.WriteFile(t, modulesDir, filepath.Join("vpc", "main.tf"), `resource "x" "y" {}`)
	testutil.WriteFile(t, modulesDir, filepath.Join("vpc", "files", "policy.json"), `{}`)

	r := NewTerraformRunner("terraform", t.TempDir(), modulesDir)
	dir, err := r.ensureModuleDir(ResolvedModule{ID: "account-1.vpc", Source: "vpc"})
	require.NoError(t, err)

	assert.Equal(t, r.ModuleDir("account-1.vpc"), dir)
	assert.FileExists(t, filepath.Join(dir, "main.tf"))
	assert.FileExists(t, filepath.Join(dir, "files", "policy.json"))
}

func TestEnsureModuleDir_MissingSource(t *testing.T) {
	r := NewTerraformRunner("terraform", t.TempDir(), t.TempDir())
	_, err := r.ensureModuleDir(ResolvedModule{ID: "a.b", Source: "ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestResolvedInputsRoundTrip(t *testing.T) {
	r := NewTerraformRunner("terraform", t.TempDir(), t.TempDir())
	dir := r.ModuleDir("account-1.vpc")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	mod := ResolvedModule{
		ID:        "account-1.vpc",
		Source:    "vpc",
		Variables: map[string]any{"cidr": "10.0.0.0/16"},
	}
	require.NoError(t, r.saveResolvedInputs(dir, mod))

	data, ok := r.PreviousResolvedInputs("account-1.vpc")
	require.True(t, ok)
	assert.Contains(t, string(data), "cidr: 10.0.0.0/16")

	_, ok = r.PreviousResolvedInputs("account-1.other")
	assert.False(t, ok)
}

func TestMockRunner_RealizesMockedOutputs(t *testing.T) {
	m := NewMockRunner()
	outputs, err := m.Run(context.Background(), ResolvedModule{
		ID:            "account-1.vpc",
		MockedOutputs: map[string]any{"vpc_id": "vpc-mock"},
	}, ActionPlan)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"vpc_id": "vpc-mock"}, outputs)
}

func TestError_WrapsRunnerSentinel(t *testing.T) {
	inner := errors.New("exit status 1")
	err := &Error{ModuleID: "a.b", Action: ActionApply, Err: inner}
	assert.True(t, errors.Is(err, oerrors.ErrRunner))
	assert.True(t, errors.Is(err, inner))
	assert.Contains(t, err.Error(), "a.b")
}
