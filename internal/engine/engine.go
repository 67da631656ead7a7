package engine

import (
	"context"
	"sync"

	"github.com/tfstacks/cli/internal/graph"
	"github.com/tfstacks/cli/internal/output"
	"github.com/tfstacks/cli/internal/refs"
	"github.com/tfstacks/cli/internal/runner"
)

// DefaultWorkers bounds the pool when no worker count is configured.
const DefaultWorkers = 4

// Status is a module's terminal (or in-flight) execution state.
type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// ModuleResult records one module's execution.
type ModuleResult struct {
	Status  Status
	Inputs  map[string]any
	Outputs map[string]any
	Err     error
}

// Result aggregates per-module results for one engine run.
type Result struct {
	Modules map[string]*ModuleResult
}

// FirstError returns the first real failure in plan order, skipping
// modules that were skipped because of an upstream failure.
func (r *Result) FirstError(plan []string) error {
	for _, id := range plan {
		mr := r.Modules[id]
		if mr != nil && mr.Status == StatusFailed && mr.Err != nil {
			return mr.Err
		}
	}
	return nil
}

// OutputReader is optionally implemented by runners that can read a
// module's current outputs without performing an action. The engine uses it
// to pre-populate the outputs table before destroy runs.
type OutputReader interface {
	ReadOutputs(ctx context.Context, mod runner.ResolvedModule) (map[string]any, error)
}

// Engine schedules a plan onto a bounded worker pool.
type Engine struct {
	graph   *graph.Graph
	runner  runner.Runner
	workers int
}

// New creates an Engine. A non-positive worker count falls back to
// DefaultWorkers.
func New(g *graph.Graph, r runner.Runner, workers int) *Engine {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Engine{graph: g, runner: r, workers: workers}
}

// node is one plan entry's scheduling state, guarded by run.mu.
type node struct {
	id string

	// remaining counts unfinished prerequisites within the plan set.
	remaining int

	// dependents lists nodes that wait on this one, in scheduling
	// direction (reversed for destroy).
	dependents []*node

	status Status
}

// run holds the mutable state of one Execute call.
type run struct {
	mu      sync.Mutex
	nodes   map[string]*node
	ready   chan *node
	wg      sync.WaitGroup
	halted  bool
	results map[string]*ModuleResult
}

// Execute runs every module of the plan with the given action. For destroy,
// scheduling is reversed (dependents finish before their dependencies) and
// the outputs table is pre-populated from current state and mocks, since a
// module being destroyed can no longer supply outputs to its dependents.
//
// The first failure halts scheduling of modules not yet started; in-flight
// modules finish to avoid leaving external state partially applied.
func (e *Engine) Execute(ctx context.Context, plan []string, action runner.Action) (*Result, error) {
	table := NewOutputTable()
	if action == runner.ActionDestroy {
		if err := e.prefillOutputs(ctx, plan, table); err != nil {
			return nil, err
		}
	}

	r := &run{
		nodes:   make(map[string]*node, len(plan)),
		ready:   make(chan *node, len(plan)),
		results: make(map[string]*ModuleResult, len(plan)),
	}
	for _, id := range plan {
		r.nodes[id] = &node{id: id, status: StatusPending}
		r.results[id] = &ModuleResult{Status: StatusPending}
	}

	reverse := action == runner.ActionDestroy
	for _, id := range plan {
		mod, _ := e.graph.Module(id)
		for _, depID := range mod.DependencyIDs() {
			dep, ok := r.nodes[depID]
			if !ok {
				continue
			}
			if reverse {
				r.nodes[id].dependents = append(r.nodes[id].dependents, dep)
				dep.remaining++
			} else {
				dep.dependents = append(dep.dependents, r.nodes[id])
				r.nodes[id].remaining++
			}
		}
	}

	for _, id := range plan {
		if n := r.nodes[id]; n.remaining == 0 {
			r.ready <- n
		}
	}

	r.wg.Add(len(plan))
	resolver := refs.NewResolver(e.graph, table)
	for i := 0; i < e.workers; i++ {
		go e.worker(ctx, r, resolver, table, action)
	}
	r.wg.Wait()
	close(r.ready)

	result := &Result{Modules: r.results}
	return result, result.FirstError(plan)
}

func (e *Engine) worker(ctx context.Context, r *run, resolver *refs.Resolver, table *OutputTable, action runner.Action) {
	for n := range r.ready {
		r.mu.Lock()
		if r.halted || ctx.Err() != nil {
			r.mu.Unlock()
			r.skip(n, "halted before start")
			continue
		}
		n.status = StatusRunning
		r.results[n.id].Status = StatusRunning
		r.mu.Unlock()

		mod, _ := e.graph.Module(n.id)
		inputs, outputs, err := e.runModule(ctx, resolver, mod, action)
		if err == nil && action != runner.ActionDestroy {
			err = table.Set(n.id, outputs)
		}

		r.mu.Lock()
		mr := r.results[n.id]
		mr.Inputs = inputs
		if err != nil {
			output.Error("module failed", "module", n.id, "error", err)
			n.status = StatusFailed
			mr.Status = StatusFailed
			mr.Err = err
			r.halted = true
			r.mu.Unlock()
			r.skipDependents(n)
			r.wg.Done()
			continue
		}

		output.Debug("module finished", "module", n.id, "action", string(action))
		n.status = StatusDone
		mr.Status = StatusDone
		mr.Outputs = outputs

		var unlocked []*node
		for _, dependent := range n.dependents {
			dependent.remaining--
			if dependent.remaining == 0 && dependent.status == StatusPending {
				unlocked = append(unlocked, dependent)
			}
		}
		halted := r.halted
		r.mu.Unlock()

		for _, dependent := range unlocked {
			if halted {
				r.skip(dependent, "upstream halt")
			} else {
				r.ready <- dependent
			}
		}
		r.wg.Done()
	}
}

// runModule is the per-module pipeline stage: resolve inputs, invoke the
// runner, realize outputs.
func (e *Engine) runModule(ctx context.Context, resolver *refs.Resolver, mod *graph.ModuleNode, action runner.Action) (map[string]any, map[string]any, error) {
	inputs, err := resolver.ResolveInputs(mod)
	if err != nil {
		return nil, nil, err
	}

	rm := runner.ResolvedModule{
		ID:            mod.ID,
		Source:        mod.Source,
		Variables:     inputs,
		MockedOutputs: mod.MockedOutputs,
	}
	outputs, err := e.runner.Run(ctx, rm, action)
	if err != nil {
		return inputs, nil, err
	}

	// A plan preview cannot rely on every output existing in real state
	// yet; mocked outputs fill the gaps for downstream references.
	if action == runner.ActionPlan {
		outputs = mergeMocked(outputs, mod.MockedOutputs)
	}
	return inputs, outputs, nil
}

// skip marks a node and everything downstream of it as skipped.
func (r *run) skip(n *node, reason string) {
	r.mu.Lock()
	if n.status != StatusPending {
		r.mu.Unlock()
		return
	}
	output.Warn("skipping module", "module", n.id, "reason", reason)
	n.status = StatusSkipped
	r.results[n.id].Status = StatusSkipped
	r.mu.Unlock()

	r.skipDependents(n)
	r.wg.Done()
}

func (r *run) skipDependents(n *node) {
	for _, dependent := range n.dependents {
		r.skip(dependent, "upstream failure of "+n.id)
	}
}

// prefillOutputs populates the table from current state (when the runner
// can read it) merged over mocked outputs, before any destroy runs.
func (e *Engine) prefillOutputs(ctx context.Context, plan []string, table *OutputTable) error {
	reader, canRead := e.runner.(OutputReader)
	for _, id := range plan {
		mod, _ := e.graph.Module(id)
		outputs := map[string]any{}
		if canRead {
			rm := runner.ResolvedModule{ID: mod.ID, Source: mod.Source, MockedOutputs: mod.MockedOutputs}
			if real, err := reader.ReadOutputs(ctx, rm); err == nil {
				outputs = real
			}
		}
		if err := table.Set(id, mergeMocked(outputs, mod.MockedOutputs)); err != nil {
			return err
		}
	}
	return nil
}

// mergeMocked fills keys absent from real outputs with mocked values.
func mergeMocked(real, mocked map[string]any) map[string]any {
	if len(mocked) == 0 {
		return real
	}
	merged := make(map[string]any, len(real)+len(mocked))
	for k, v := range mocked {
		merged[k] = v
	}
	for k, v := range real {
		merged[k] = v
	}
	return merged
}
