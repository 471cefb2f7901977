package execute

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/regent-cli/regent/internal/models"
)

// CallableFunc is an in-process command implementation. The returned
// int becomes the exit code; a non-nil error is an execution failure.
type CallableFunc func(args []string) (int, error)

var (
	callableMu sync.RWMutex
	callables  = make(map[string]CallableFunc)
)

// RegisterCallable adds a function to the callable table under a
// namespace:function key. Arbitrary late-bound symbol resolution is
// not available in a compiled binary, so callable targets are limited
// to this pre-declared set, populated at startup.
func RegisterCallable(name string, fn CallableFunc) error {
	callableMu.Lock()
	defer callableMu.Unlock()
	if _, exists := callables[name]; exists {
		return fmt.Errorf("callable %q already registered", name)
	}
	callables[name] = fn
	return nil
}

// LookupCallable finds a registered callable by its full key.
func LookupCallable(name string) (CallableFunc, bool) {
	callableMu.RLock()
	defer callableMu.RUnlock()
	fn, ok := callables[name]
	return fn, ok
}

// CallableNames returns the registered callable keys, sorted.
func CallableNames() []string {
	callableMu.RLock()
	defer callableMu.RUnlock()
	names := make([]string, 0, len(callables))
	for name := range callables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// runCallable invokes an in-process callable. The working directory
// and environment are restored to their pre-call values on every exit
// path, including failure and panic. Callable execution has no timeout
// enforcement; the record's timeout applies to subprocess kinds only.
func runCallable(plan models.ExecutionPlan, capture bool) (models.RunResult, error) {
	display := fmt.Sprintf("%s(%s)", plan.Target, strings.Join(plan.Args, ", "))

	if !strings.Contains(plan.Target, ":") {
		return models.RunResult{}, &models.ExecutionError{
			Display: display,
			Err:     fmt.Errorf("invalid callable target %q: expected namespace:function", plan.Target),
		}
	}

	fn, ok := LookupCallable(plan.Target)
	if !ok {
		return models.RunResult{}, &models.ExecutionError{
			Display: display,
			Err:     fmt.Errorf("no registered callable %q (callables are a fixed set compiled into the binary)", plan.Target),
		}
	}

	if plan.DryRun {
		describeDryRun(plan, display)
		return models.RunResult{ReturnCode: 0}, nil
	}
	if plan.Verbose {
		fmt.Printf("[verbose] invoking: %s\n", display)
	}

	if plan.Cwd != "" {
		guard, err := pushCwd(plan.Cwd)
		if err != nil {
			return models.RunResult{}, &models.ExecutionError{Display: display, Err: err}
		}
		defer guard.Restore()
	}
	if len(plan.Env) > 0 {
		guard := pushEnv(plan.Env)
		defer guard.Restore()
	}

	var (
		streams *streamCapture
		err     error
	)
	if capture {
		streams, err = captureStreams()
		if err != nil {
			return models.RunResult{}, &models.ExecutionError{Display: display, Err: err}
		}
	}

	start := time.Now()
	code, callErr := invoke(fn, plan.Args)
	duration := time.Since(start)

	var stdout, stderr string
	if streams != nil {
		stdout, stderr = streams.Restore()
	}

	if callErr != nil {
		return models.RunResult{}, &models.ExecutionError{Display: display, Err: callErr}
	}

	if plan.Verbose {
		fmt.Printf("[verbose] completed in %.2fs with exit code %d\n", duration.Seconds(), code)
	}

	return models.RunResult{
		ReturnCode: code,
		Stdout:     stdout,
		Stderr:     stderr,
		Captured:   capture,
		Duration:   duration,
	}, nil
}

// invoke calls fn, converting a panic into an error.
func invoke(fn CallableFunc, args []string) (code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("callable panicked: %v", r)
		}
	}()
	return fn(args)
}
