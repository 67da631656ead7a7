package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/tfstacks/cli/internal/output"
)

// inputsFileName is the per-module record of the last resolved inputs,
// kept in the module's cache directory for `plan --diff`.
const inputsFileName = "tfstacks-inputs.yaml"

// TerraformRunner runs the real terraform binary. Each module gets a
// working directory under CacheDir keyed by its fully-qualified ID, seeded
// with a copy of the module's sources.
type TerraformRunner struct {
	// Bin is the terraform binary path.
	Bin string

	// CacheDir holds per-module working directories and state.
	CacheDir string

	// ModulesDir holds one implementation directory per source name.
	ModulesDir string

	// Stdout and Stderr receive streamed terraform output for apply and
	// destroy. They default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewTerraformRunner creates a TerraformRunner streaming to the process
// stdout/stderr.
func NewTerraformRunner(bin, cacheDir, modulesDir string) *TerraformRunner {
	return &TerraformRunner{
		Bin:        bin,
		CacheDir:   cacheDir,
		ModulesDir: modulesDir,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// Run implements Runner.
func (r *TerraformRunner) Run(ctx context.Context, mod ResolvedModule, action Action) (map[string]any, error) {
	dir, err := r.ensureModuleDir(mod)
	if err != nil {
		return nil, &Error{ModuleID: mod.ID, Action: action, Err: err}
	}

	if err := r.saveResolvedInputs(dir, mod); err != nil {
		return nil, &Error{ModuleID: mod.ID, Action: action, Err: err}
	}

	if _, err := r.capture(ctx, dir, nil, "init", "-input=false"); err != nil {
		return nil, &Error{ModuleID: mod.ID, Action: action, Err: err}
	}

	env := tfVarEnv(mod.Variables)
	switch action {
	case ActionPlan:
		err = r.stream(ctx, dir, env, "plan", "-input=false")
	case ActionApply:
		err = r.stream(ctx, dir, env, "apply", "-input=false", "-auto-approve")
	case ActionDestroy:
		err = r.stream(ctx, dir, env, "destroy", "-input=false", "-auto-approve")
	default:
		err = fmt.Errorf("unknown action %q", action)
	}
	if err != nil {
		return nil, &Error{ModuleID: mod.ID, Action: action, Err: err}
	}

	outputs, err := r.outputs(ctx, dir)
	if err != nil {
		// Without state (plan against a never-applied module) there are
		// no outputs to read; the engine falls back to mocked outputs.
		if action == ActionApply {
			return nil, &Error{ModuleID: mod.ID, Action: action, Err: err}
		}
		output.Debug("no realized outputs", "module", mod.ID, "error", err)
		return map[string]any{}, nil
	}
	return outputs, nil
}

// ReadOutputs reads the module's current outputs from its cached state
// without performing any action. Used to seed reference resolution before
// destroy runs.
func (r *TerraformRunner) ReadOutputs(ctx context.Context, mod ResolvedModule) (map[string]any, error) {
	dir := r.ModuleDir(mod.ID)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("module %q has no cached state: %w", mod.ID, err)
	}
	return r.outputs(ctx, dir)
}

// ModuleDir returns the module's working directory under the cache.
func (r *TerraformRunner) ModuleDir(moduleID string) string {
	return filepath.Join(r.CacheDir, moduleID)
}

// PreviousResolvedInputs reads the inputs recorded by the previous run of
// the module, if any.
func (r *TerraformRunner) PreviousResolvedInputs(moduleID string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(r.ModuleDir(moduleID), inputsFileName))
	if err != nil {
		return nil, false
	}
	return data, true
}

// ensureModuleDir creates the working directory and copies the module's
// sources into it.
func (r *TerraformRunner) ensureModuleDir(mod ResolvedModule) (string, error) {
	dir := r.ModuleDir(mod.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating module dir: %w", err)
	}

	src := filepath.Join(r.ModulesDir, mod.Source)
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("source %q has no implementation directory at %q", mod.Source, src)
	}

	if err := copyDir(src, dir); err != nil {
		return "", fmt.Errorf("copying module sources: %w", err)
	}
	return dir, nil
}

func (r *TerraformRunner) saveResolvedInputs(dir string, mod ResolvedModule) error {
	data, err := MarshalInputs(mod.Variables)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, inputsFileName), data, 0o644)
}

// MarshalInputs renders a resolved input map as stable YAML.
func MarshalInputs(vars map[string]any) ([]byte, error) {
	data, err := yaml.Marshal(vars)
	if err != nil {
		return nil, fmt.Errorf("marshaling resolved inputs: %w", err)
	}
	return data, nil
}

// capture runs terraform and returns its stdout.
func (r *TerraformRunner) capture(ctx context.Context, dir string, env []string, args ...string) ([]byte, error) {
	output.Debug("running terraform", "args", strings.Join(args, " "), "dir", dir)

	cmd := exec.CommandContext(ctx, r.Bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("terraform %s: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// stream runs terraform with its output wired to the runner's streams.
func (r *TerraformRunner) stream(ctx context.Context, dir string, env []string, args ...string) error {
	output.Debug("running terraform", "args", strings.Join(args, " "), "dir", dir)

	cmd := exec.CommandContext(ctx, r.Bin, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("terraform %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

// outputs reads and parses `terraform output -json`.
func (r *TerraformRunner) outputs(ctx context.Context, dir string) (map[string]any, error) {
	raw, err := r.capture(ctx, dir, nil, "output", "-json")
	if err != nil {
		return nil, err
	}
	return ParseOutputs(raw)
}

// ParseOutputs decodes the `terraform output -json` document. Each entry
// keeps its {value, type, sensitive} wrapper; reference traversal unwraps
// the value key.
func ParseOutputs(raw []byte) (map[string]any, error) {
	outputs := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return outputs, nil
	}
	if err := json.Unmarshal(raw, &outputs); err != nil {
		return nil, fmt.Errorf("parsing terraform outputs: %w", err)
	}
	return outputs, nil
}

// tfVarEnv converts resolved variables to TF_VAR_* environment entries.
// Strings pass verbatim; everything else is JSON-encoded so terraform can
// decode lists and maps.
func tfVarEnv(vars map[string]any) []string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	env := make([]string, 0, len(names))
	for _, name := range names {
		value := vars[name]
		var encoded string
		if s, ok := value.(string); ok {
			encoded = s
		} else if data, err := json.Marshal(value); err == nil {
			encoded = string(data)
		} else {
			encoded = "null"
		}
		env = append(env, "TF_VAR_"+name+"="+encoded)
	}
	return env
}

// copyDir recursively copies regular files from src into dst.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
