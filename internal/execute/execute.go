// Package execute runs execution plans: shell commands, subprocess
// module entry points, and pre-registered in-process callables.
package execute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/regent-cli/regent/internal/models"
)

// Options tunes plan execution.
type Options struct {
	// CaptureOutput collects stdout/stderr into the RunResult instead
	// of streaming them to the caller's terminal.
	CaptureOutput bool
	// ModuleCommand is the argv prefix used to run module-kind
	// targets, e.g. ["python3", "-m"].
	ModuleCommand []string
}

func (o Options) moduleCommand() []string {
	if len(o.ModuleCommand) > 0 {
		return o.ModuleCommand
	}
	return []string{"python3", "-m"}
}

// Run executes a plan and returns its result. A nonzero exit from the
// target is a result, not an error; errors are reserved for failures
// to execute at all (spawn failure, missing callable, timeout).
func Run(ctx context.Context, plan models.ExecutionPlan, opts Options) (models.RunResult, error) {
	switch plan.Kind {
	case models.KindShell:
		argv, display := shellArgv(plan)
		return runSubprocess(ctx, plan, argv, display, opts.CaptureOutput)

	case models.KindModule:
		argv := append(append([]string{}, opts.moduleCommand()...), plan.Target)
		argv = append(argv, plan.Args...)
		return runSubprocess(ctx, plan, argv, strings.Join(argv, " "), opts.CaptureOutput)

	case models.KindCallable:
		return runCallable(plan, opts.CaptureOutput)

	default:
		return models.RunResult{}, &models.ExecutionError{
			Display: plan.Target,
			Err:     fmt.Errorf("unknown command kind %q", plan.Kind),
		}
	}
}

// shellArgv builds the argv for a shell-kind plan. A target containing
// whitespace is one shell command line run through the shell
// interpreter; a bare target is executed directly with a discrete
// argument vector, with no shell interpolation.
func shellArgv(plan models.ExecutionPlan) (argv []string, display string) {
	if strings.ContainsAny(plan.Target, " \t") {
		line := plan.Target
		if len(plan.Args) > 0 {
			line = line + " " + strings.Join(plan.Args, " ")
		}
		return []string{"sh", "-c", line}, line
	}
	argv = append([]string{plan.Target}, plan.Args...)
	return argv, strings.Join(argv, " ")
}

func runSubprocess(ctx context.Context, plan models.ExecutionPlan, argv []string, display string, capture bool) (models.RunResult, error) {
	if plan.DryRun {
		describeDryRun(plan, display)
		return models.RunResult{ReturnCode: 0}, nil
	}
	if plan.Verbose {
		fmt.Printf("[verbose] executing: %s\n", display)
	}

	runCtx := ctx
	if plan.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, plan.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = plan.Cwd
	if len(plan.Env) > 0 {
		cmd.Env = mergeEnv(plan.Env)
	}

	var stdout, stderr bytes.Buffer
	if capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	slog.Debug("running subprocess", "argv", argv, "cwd", plan.Cwd, "timeout", plan.Timeout)

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	// Timeout expiry forcefully terminates the child; report it as a
	// timeout rather than a generic failure so callers can tell them
	// apart.
	if runCtx.Err() == context.DeadlineExceeded {
		return models.RunResult{}, &models.ExecutionError{Display: display, Timeout: true}
	}

	result := models.RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Captured: capture,
		Duration: duration,
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ReturnCode = exitErr.ExitCode()
			if plan.Verbose {
				fmt.Printf("[verbose] completed in %.2fs with exit code %d\n", duration.Seconds(), result.ReturnCode)
			}
			return result, nil
		}
		return models.RunResult{}, &models.ExecutionError{Display: display, Err: err}
	}

	if plan.Verbose {
		fmt.Printf("[verbose] completed in %.2fs with exit code 0\n", duration.Seconds())
	}
	return result, nil
}

// mergeEnv overlays the plan's environment on the ambient process
// environment. Later entries win on duplicate keys.
func mergeEnv(overrides map[string]string) []string {
	env := os.Environ()
	for k, v := range overrides {
		env = append(env, k+"="+v)
	}
	return env
}

// describeDryRun reports what would have run without side effects.
func describeDryRun(plan models.ExecutionPlan, display string) {
	fmt.Printf("[dry-run] would execute: %s\n", display)
	if plan.Cwd != "" {
		fmt.Printf("[dry-run]   working directory: %s\n", plan.Cwd)
	}
	if len(plan.Env) > 0 {
		fmt.Printf("[dry-run]   environment overrides: %d\n", len(plan.Env))
	}
	if plan.Timeout > 0 {
		fmt.Printf("[dry-run]   timeout: %s\n", plan.Timeout)
	}
}
