// Package dispatch orchestrates the registration and run workflows:
// it composes the resolver's rules, the layered registry, the
// executor, and the history/run-log consumers.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/regent-cli/regent/internal/config"
	"github.com/regent-cli/regent/internal/execute"
	"github.com/regent-cli/regent/internal/history"
	"github.com/regent-cli/regent/internal/models"
	"github.com/regent-cli/regent/internal/registry"
	"github.com/regent-cli/regent/internal/resolve"
	"github.com/regent-cli/regent/internal/runlog"
)

// Dispatcher wires the registry, resolver, executor, history, and run
// logs for one working directory.
type Dispatcher struct {
	store   *registry.Store
	cfg     config.Settings
	history *history.Log
	logs    *runlog.Writer
	workDir string
}

// New builds a dispatcher rooted at workDir. Mutations write through
// the global registry layer; reads see the layered view.
func New(workDir string, cfg config.Settings) *Dispatcher {
	return &Dispatcher{
		store:   registry.Global(),
		cfg:     cfg,
		history: history.New(history.DefaultPath(), cfg.History.MaxEntries),
		logs:    runlog.New(cfg.Logs.Dir),
		workDir: workDir,
	}
}

// Store exposes the mutation layer (for export/import commands).
func (d *Dispatcher) Store() *registry.Store { return d.store }

// History exposes the execution history log.
func (d *Dispatcher) History() *history.Log { return d.history }

// Logs exposes the run log writer.
func (d *Dispatcher) Logs() *runlog.Writer { return d.logs }

// RegisterOptions carries the optional pieces of a registration.
type RegisterOptions struct {
	Name            string // empty = inferred from the target
	Kind            string // empty = inferred from the target
	Description     string
	Tags            []string
	Aliases         []string
	DependsOn       []string
	Env             map[string]string
	TimeoutSec      int
	AllowDottedName bool
}

// Register runs the registration workflow: infer kind and name where
// absent, validate the name, reject unconfirmed dotted names, stamp
// timestamps, and write through the store. The target is not checked
// for runnability here; that is the advisory validate operation.
func (d *Dispatcher) Register(target string, opts RegisterOptions) (models.CommandRecord, error) {
	var kind models.Kind
	if opts.Kind == "" {
		kind = resolve.InferKind(target)
	} else {
		parsed, err := models.ParseKind(opts.Kind)
		if err != nil {
			return models.CommandRecord{}, err
		}
		kind = parsed
	}

	name := opts.Name
	if name == "" {
		name = resolve.InferDefaultName(target, kind)
	}

	if err := resolve.ValidateName(name); err != nil {
		return models.CommandRecord{}, err
	}
	if resolve.IsDottedName(name) && !opts.AllowDottedName {
		return models.CommandRecord{}, &models.InvalidNameError{
			Name:   name,
			Reason: "the name contains a dot, which conflicts with the dotted-name module fallback; confirm explicitly to register it anyway",
		}
	}

	now := time.Now().UTC()
	rec := models.CommandRecord{
		Name:        name,
		Kind:        kind,
		Target:      target,
		Description: opts.Description,
		Tags:        opts.Tags,
		Aliases:     opts.Aliases,
		DependsOn:   opts.DependsOn,
		Env:         opts.Env,
		TimeoutSec:  opts.TimeoutSec,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := d.store.Add(rec); err != nil {
		return models.CommandRecord{}, err
	}

	slog.Debug("registered command", "name", name, "kind", kind, "target", target)
	return rec, nil
}

// Unregister removes a command from the mutation layer.
func (d *Dispatcher) Unregister(name string) error {
	return d.store.Remove(name)
}

// Rename validates the new name and moves the record.
func (d *Dispatcher) Rename(oldName, newName string) error {
	if err := resolve.ValidateName(newName); err != nil {
		return err
	}
	return d.store.Rename(oldName, newName)
}

// List returns the layered view's records, sorted, optionally filtered
// by a case-insensitive substring on the name.
func (d *Dispatcher) List(pattern string) ([]models.CommandRecord, error) {
	commands, err := registry.LayeredLoad(d.workDir)
	if err != nil {
		return nil, err
	}
	return registry.Sorted(commands, pattern), nil
}

// Info resolves a single command (by name or alias) from the layered
// view.
func (d *Dispatcher) Info(name string) (*models.CommandRecord, error) {
	commands, err := registry.LayeredLoad(d.workDir)
	if err != nil {
		return nil, err
	}
	rec, _ := resolve.Resolve(commands, name)
	return rec, nil
}

// Stats summarizes the layered view.
func (d *Dispatcher) Stats() (registry.Stats, error) {
	commands, err := registry.LayeredLoad(d.workDir)
	if err != nil {
		return registry.Stats{}, err
	}
	return registry.Summarize(commands), nil
}

// ValidateAll runs the advisory target validation over the layered
// view.
func (d *Dispatcher) ValidateAll() (map[string]string, error) {
	commands, err := registry.LayeredLoad(d.workDir)
	if err != nil {
		return nil, err
	}
	return execute.ValidateAll(commands, d.cfg.Runner.ModuleCommand), nil
}

// RunOptions carries per-invocation execution flags.
type RunOptions struct {
	Capture bool
	DryRun  bool
	Verbose bool
	Cwd     string // subshell directory; empty = inherit
}

// Run resolves name against the layered registry and executes it.
// Registered commands run their dependency chain first; an
// unregistered dotted name falls back to implicit module execution; a
// total miss returns an UnknownCommandError carrying suggestions.
func (d *Dispatcher) Run(ctx context.Context, name string, args []string, opts RunOptions) (models.RunResult, error) {
	commands, err := registry.LayeredLoad(d.workDir)
	if err != nil {
		return models.RunResult{}, err
	}
	return d.run(ctx, commands, name, args, opts, map[string]bool{})
}

func (d *Dispatcher) run(ctx context.Context, commands map[string]models.CommandRecord, name string, args []string, opts RunOptions, visited map[string]bool) (models.RunResult, error) {
	rec, dotted := resolve.Resolve(commands, name)

	if rec == nil {
		if dotted {
			// Implicit module execution for unregistered dotted names.
			plan := models.ExecutionPlan{
				Kind:    models.KindModule,
				Target:  name,
				Args:    args,
				Cwd:     opts.Cwd,
				DryRun:  opts.DryRun,
				Verbose: opts.Verbose,
			}
			return d.execute(ctx, name, plan, opts)
		}
		return models.RunResult{}, &models.UnknownCommandError{
			Name:        name,
			Suggestions: resolve.Suggest(commands, name),
		}
	}

	if err := d.runDependencies(ctx, commands, rec, opts, visited); err != nil {
		return models.RunResult{}, err
	}

	plan := models.ExecutionPlan{
		Kind:    rec.Kind,
		Target:  rec.Target,
		Args:    args,
		Cwd:     opts.Cwd,
		Env:     d.mergedEnv(rec),
		Timeout: rec.Timeout(),
		DryRun:  opts.DryRun,
		Verbose: opts.Verbose,
	}
	return d.execute(ctx, rec.Name, plan, opts)
}

// runDependencies executes a record's depends_on chain sequentially in
// listed order. The first dependency that fails or exits nonzero
// aborts the chain with an error naming that dependency; later
// dependencies and the dependent itself do not run.
func (d *Dispatcher) runDependencies(ctx context.Context, commands map[string]models.CommandRecord, rec *models.CommandRecord, opts RunOptions, visited map[string]bool) error {
	if len(rec.DependsOn) == 0 {
		return nil
	}
	if visited[rec.Name] {
		return &models.ExecutionError{
			Display: rec.Name,
			Err:     fmt.Errorf("dependency cycle involving %q", rec.Name),
		}
	}
	visited[rec.Name] = true

	for _, dep := range rec.DependsOn {
		slog.Debug("running dependency", "command", rec.Name, "dependency", dep)
		result, err := d.run(ctx, commands, dep, nil, opts, visited)
		if err != nil {
			return &models.ExecutionError{
				Display: rec.Name,
				Timeout: models.IsTimeout(err),
				Err:     fmt.Errorf("dependency %q failed: %w", dep, err),
			}
		}
		if result.ReturnCode != 0 {
			return &models.ExecutionError{
				Display: rec.Name,
				Err:     fmt.Errorf("dependency %q exited with code %d", dep, result.ReturnCode),
			}
		}
	}
	return nil
}

// mergedEnv layers the record's env over the configured env defaults.
// The ambient process environment is merged underneath at execution
// time.
func (d *Dispatcher) mergedEnv(rec *models.CommandRecord) map[string]string {
	if len(d.cfg.Env) == 0 {
		return rec.Env
	}
	merged := make(map[string]string, len(d.cfg.Env)+len(rec.Env))
	for k, v := range d.cfg.Env {
		merged[k] = v
	}
	for k, v := range rec.Env {
		merged[k] = v
	}
	return merged
}

func (d *Dispatcher) execute(ctx context.Context, name string, plan models.ExecutionPlan, opts RunOptions) (models.RunResult, error) {
	result, err := execute.Run(ctx, plan, execute.Options{
		CaptureOutput: opts.Capture,
		ModuleCommand: d.cfg.Runner.ModuleCommand,
	})
	if err != nil {
		return models.RunResult{}, err
	}

	// Dry runs have no side effects, including bookkeeping.
	if !plan.DryRun {
		d.recordRun(name, plan.Args, result)
	}
	return result, nil
}

// recordRun appends a history entry and writes the run log. Both are
// best-effort consumers of the result; their failure never fails the
// run.
func (d *Dispatcher) recordRun(name string, args []string, result models.RunResult) {
	id := uuid.NewString()
	cwd, _ := os.Getwd()

	entry := models.HistoryEntry{
		ID:          id,
		CommandName: name,
		Args:        args,
		ReturnCode:  result.ReturnCode,
		ExecutedAt:  time.Now().UTC(),
		DurationSec: result.Duration.Seconds(),
		Cwd:         cwd,
	}
	if err := d.history.Append(entry); err != nil {
		slog.Debug("recording history failed", "command", name, "error", err)
	}

	if _, err := d.logs.Write(id, name, args, result); err != nil {
		slog.Debug("writing run log failed", "command", name, "error", err)
	}
}
