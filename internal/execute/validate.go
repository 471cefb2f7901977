package execute

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/regent-cli/regent/internal/models"
)

// Validate checks that a record's target looks runnable. Validation is
// advisory: it never mutates the registry, and registration does not
// depend on it. A nil return means the target checks out.
func Validate(rec models.CommandRecord, moduleCommand []string) error {
	switch rec.Kind {
	case models.KindShell:
		return validateShell(rec.Target)
	case models.KindModule:
		return validateModule(rec.Target, moduleCommand)
	case models.KindCallable:
		return validateCallable(rec.Target)
	default:
		return fmt.Errorf("unknown command kind %q", rec.Kind)
	}
}

func validateShell(target string) error {
	fields := strings.Fields(target)
	if len(fields) == 0 {
		return fmt.Errorf("empty target")
	}
	cmd := fields[0]

	if strings.ContainsAny(cmd, `/\`) {
		info, err := os.Stat(cmd)
		if err != nil {
			return fmt.Errorf("file not found: %s", cmd)
		}
		if info.IsDir() {
			return fmt.Errorf("not a file: %s", cmd)
		}
		if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
			return fmt.Errorf("file not executable: %s", cmd)
		}
		return nil
	}

	if _, err := exec.LookPath(cmd); err != nil {
		return fmt.Errorf("command not found in PATH: %s", cmd)
	}
	return nil
}

// validateModule checks that the module runner is available and that
// the target is a well-formed dotted module path. Actually importing
// the module happens only at run time.
func validateModule(target string, moduleCommand []string) error {
	if len(moduleCommand) == 0 {
		moduleCommand = []string{"python3", "-m"}
	}
	if _, err := exec.LookPath(moduleCommand[0]); err != nil {
		return fmt.Errorf("module runner not found in PATH: %s", moduleCommand[0])
	}
	for _, segment := range strings.Split(target, ".") {
		if segment == "" {
			return fmt.Errorf("malformed module path %q", target)
		}
	}
	return nil
}

func validateCallable(target string) error {
	if !strings.Contains(target, ":") {
		return fmt.Errorf("invalid callable format %q (expected namespace:function)", target)
	}
	if _, ok := LookupCallable(target); !ok {
		return fmt.Errorf("no registered callable %q", target)
	}
	return nil
}

// ValidateAll validates every record and returns the problems keyed by
// command name; valid commands are absent from the result. Checks are
// independent reads, so they run concurrently with a bounded group.
func ValidateAll(commands map[string]models.CommandRecord, moduleCommand []string) map[string]string {
	var (
		mu       sync.Mutex
		problems = make(map[string]string)
	)

	var g errgroup.Group
	g.SetLimit(8)
	for name, rec := range commands {
		name, rec := name, rec
		g.Go(func() error {
			if err := Validate(rec, moduleCommand); err != nil {
				mu.Lock()
				problems[name] = err.Error()
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return problems
}

// SortedProblemNames returns the keys of a ValidateAll result in
// stable order for reporting.
func SortedProblemNames(problems map[string]string) []string {
	names := make([]string, 0, len(problems))
	for name := range problems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
