package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planDoc = `
account-1:
  scope: account
  vpc:
    source: vpc
  db:
    source: db
    dependencies: [vpc]
  webapp:
    source: webapp
    dependencies: [db, vpc]
  tenant-a:
    scope: tenant
    worker:
      source: worker
      dependencies: [db]
account-2:
  scope: account
  vpc:
    source: vpc
`

func planIndex(plan []string) map[string]int {
	idx := make(map[string]int, len(plan))
	for i, id := range plan {
		idx[id] = i
	}
	return idx
}

func TestExecutionPlan_TopologicalOrder(t *testing.T) {
	g := mustBuild(t, planDoc, "resolve")

	plan, err := g.ExecutionPlan()
	require.NoError(t, err)
	require.Len(t, plan, 5)

	idx := planIndex(plan)
	for _, id := range g.Modules() {
		mod, _ := g.Module(id)
		for _, depID := range mod.DependencyIDs() {
			assert.Less(t, idx[depID], idx[id], "%s must run after %s", id, depID)
		}
	}
}

func TestExecutionPlan_Deterministic(t *testing.T) {
	g := mustBuild(t, planDoc, "resolve")

	first, err := g.ExecutionPlan()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := g.ExecutionPlan()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestExecutionPlan_LexicographicTies(t *testing.T) {
	g := mustBuild(t, `
account-1:
  c:
    source: c
  a:
    source: a
  b:
    source: b
`, "resolve")

	plan, err := g.ExecutionPlan()
	require.NoError(t, err)
	assert.Equal(t, []string{"account-1.a", "account-1.b", "account-1.c"}, plan)
}

func TestExecutionPlanFor_ClosureOnly(t *testing.T) {
	g := mustBuild(t, planDoc, "resolve")

	plan, err := g.ExecutionPlanFor("account-1.tenant-a.worker")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"account-1.vpc",
		"account-1.db",
		"account-1.tenant-a.worker",
	}, plan)
	assert.NotContains(t, plan, "account-2.vpc")
	assert.NotContains(t, plan, "account-1.webapp")
}

func TestExecutionPlanFor_TargetLast(t *testing.T) {
	g := mustBuild(t, planDoc, "resolve")

	plan, err := g.ExecutionPlanFor("account-1.webapp")
	require.NoError(t, err)
	assert.Equal(t, "account-1.webapp", plan[len(plan)-1])
}

func TestExecutionPlanFor_NoDependencies(t *testing.T) {
	g := mustBuild(t, planDoc, "resolve")

	plan, err := g.ExecutionPlanFor("account-2.vpc")
	require.NoError(t, err)
	assert.Equal(t, []string{"account-2.vpc"}, plan)
}

func TestExecutionPlanFor_UnknownTarget(t *testing.T) {
	g := mustBuild(t, planDoc, "resolve")

	_, err := g.ExecutionPlanFor("account-9.nothing")
	var unkErr *UnknownTargetError
	require.ErrorAs(t, err, &unkErr)
	assert.Equal(t, "account-9.nothing", unkErr.Target)
}
