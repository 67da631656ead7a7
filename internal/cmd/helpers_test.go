package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfstacks/cli/internal/config"
	"github.com/tfstacks/cli/internal/engine"
	oerrors "github.com/tfstacks/cli/internal/errors"
	"github.com/tfstacks/cli/internal/output"
	"github.com/tfstacks/cli/internal/runner"
	"github.com/tfstacks/cli/internal/testutil"
)

const testInfra = `
account-1:
  scope: account
  variables:
    region: us-east-1
  vpc:
    source: vpc
  db:
    source: db
    dependencies: [vpc]
    inputs:
      vpc_id:
        from: vpc.vpc_id
        default: vpc-mock
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "infra.yaml", testInfra)
	return (&config.Config{InfraFile: path, ModulesDir: dir, CacheDir: dir}).WithDefaults()
}

func TestLoadGraph(t *testing.T) {
	t.Run("builds and resolves", func(t *testing.T) {
		g, err := loadGraph(testConfig(t))
		require.NoError(t, err)

		assert.Equal(t, []string{"account-1.db", "account-1.vpc"}, g.Modules())

		mod, ok := g.Module("account-1.db")
		require.True(t, ok)
		assert.Equal(t, []string{"account-1.vpc"}, mod.DependencyIDs())
	})

	t.Run("missing file maps to not-found exit code", func(t *testing.T) {
		cfg := (&config.Config{InfraFile: "/nonexistent/infra.yaml"}).WithDefaults()
		_, err := loadGraph(cfg)
		require.Error(t, err)
		assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
	})
}

func TestBuildPlan(t *testing.T) {
	g, err := loadGraph(testConfig(t))
	require.NoError(t, err)

	t.Run("full plan", func(t *testing.T) {
		plan, err := buildPlan(g, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"account-1.vpc", "account-1.db"}, plan)
	})

	t.Run("single target closure", func(t *testing.T) {
		plan, err := buildPlan(g, "account-1.vpc")
		require.NoError(t, err)
		assert.Equal(t, []string{"account-1.vpc"}, plan)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := buildPlan(g, "account-1.nope")
		require.Error(t, err)
		assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
	})
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		name   string
		status engine.Status
		action runner.Action
		mock   bool
		want   string
	}{
		{"plan done", engine.StatusDone, runner.ActionPlan, false, output.StatusPlanned},
		{"apply done", engine.StatusDone, runner.ActionApply, false, output.StatusApplied},
		{"destroy done", engine.StatusDone, runner.ActionDestroy, false, output.StatusDestroyed},
		{"mocked run", engine.StatusDone, runner.ActionPlan, true, output.StatusMocked},
		{"failed", engine.StatusFailed, runner.ActionApply, false, output.StatusFailed},
		{"skipped", engine.StatusSkipped, runner.ActionApply, false, output.StatusSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusLabel(tt.status, tt.action, tt.mock))
		})
	}
}

func TestBuildTree(t *testing.T) {
	g, err := loadGraph(testConfig(t))
	require.NoError(t, err)

	root := buildTree(g)
	require.Len(t, root.Children, 1)

	account := root.Children[0]
	assert.Equal(t, "account-1", account.Name)
	assert.Equal(t, "account", account.Description)
	assert.True(t, account.IsScope)

	names := make([]string, 0, len(account.Children))
	for _, child := range account.Children {
		names = append(names, child.Name)
	}
	assert.ElementsMatch(t, []string{"vpc", "db"}, names)
}

func TestLoadGraphNestedFixture(t *testing.T) {
	cfg := (&config.Config{
		InfraFile: testutil.FixturePath(t, "nested", "infra.yaml"),
	}).WithDefaults()

	g, err := loadGraph(cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"dns",
		"tenant-1.account-1.db",
		"tenant-1.account-1.vpc",
		"tenant-1.account-1.webapp",
		"tenant-1.account-2.vpc",
	}, g.Modules())

	// source_default dependencies merged into the webapp instance.
	webapp, ok := g.Module("tenant-1.account-1.webapp")
	require.True(t, ok)
	assert.Equal(t, []string{"tenant-1.account-1.db"}, webapp.DependencyIDs())
	assert.Equal(t, "info", webapp.Inputs["log_level"])

	plan, err := buildPlan(g, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"dns",
		"tenant-1.account-1.vpc",
		"tenant-1.account-1.db",
		"tenant-1.account-1.webapp",
		"tenant-1.account-2.vpc",
	}, plan)
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "vpc", localName("account-1.vpc"))
	assert.Equal(t, "dns", localName("dns"))
}
