package execute

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/regent-cli/regent/internal/models"
)

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestShellArgv(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		args     []string
		wantArgv []string
	}{
		{
			name:     "bare target runs directly without shell interpolation",
			target:   "echo",
			args:     []string{"$HOME", "world"},
			wantArgv: []string{"echo", "$HOME", "world"},
		},
		{
			name:     "target with whitespace goes through the shell",
			target:   "echo hello",
			args:     []string{"world"},
			wantArgv: []string{"sh", "-c", "echo hello world"},
		},
		{
			name:     "target with whitespace and no args",
			target:   "make clean",
			wantArgv: []string{"sh", "-c", "make clean"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, _ := shellArgv(models.ExecutionPlan{Kind: models.KindShell, Target: tt.target, Args: tt.args})
			if !reflect.DeepEqual(argv, tt.wantArgv) {
				t.Errorf("shellArgv = %v, want %v", argv, tt.wantArgv)
			}
		})
	}
}

func TestRunShellCapture(t *testing.T) {
	requireTool(t, "echo")

	plan := models.ExecutionPlan{Kind: models.KindShell, Target: "echo", Args: []string{"hello"}}
	result, err := Run(context.Background(), plan, Options{CaptureOutput: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ReturnCode != 0 {
		t.Errorf("ReturnCode = %d, want 0", result.ReturnCode)
	}
	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Errorf("Stdout = %q, want hello", result.Stdout)
	}
	if result.Duration <= 0 {
		t.Error("Duration not measured")
	}
}

func TestRunShellNonzeroExitIsResultNotError(t *testing.T) {
	requireTool(t, "false")

	plan := models.ExecutionPlan{Kind: models.KindShell, Target: "false"}
	result, err := Run(context.Background(), plan, Options{CaptureOutput: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ReturnCode == 0 {
		t.Error("ReturnCode = 0 for failing command")
	}
}

func TestRunShellSpawnFailure(t *testing.T) {
	plan := models.ExecutionPlan{Kind: models.KindShell, Target: "regent-no-such-binary-zz"}
	_, err := Run(context.Background(), plan, Options{CaptureOutput: true})
	var execErr *models.ExecutionError
	if err == nil {
		t.Fatal("Run succeeded for a missing binary")
	}
	if !errors.As(err, &execErr) || execErr.Timeout {
		t.Errorf("err = %v, want non-timeout ExecutionError", err)
	}
}

func TestRunShellTimeout(t *testing.T) {
	requireTool(t, "sh")
	requireTool(t, "sleep")

	plan := models.ExecutionPlan{
		Kind:    models.KindShell,
		Target:  "sleep 5", // whitespace: goes through the shell
		Timeout: 100 * time.Millisecond,
	}
	start := time.Now()
	_, err := Run(context.Background(), plan, Options{CaptureOutput: true})
	if !models.IsTimeout(err) {
		t.Fatalf("err = %v, want timeout ExecutionError", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("timeout did not terminate the subprocess promptly")
	}
}

func TestRunShellEnvMerge(t *testing.T) {
	requireTool(t, "sh")

	t.Setenv("REGENT_TEST_AMBIENT", "ambient")
	plan := models.ExecutionPlan{
		Kind:   models.KindShell,
		Target: "echo $REGENT_TEST_AMBIENT $REGENT_TEST_OVERRIDE",
		Env:    map[string]string{"REGENT_TEST_OVERRIDE": "merged"},
	}
	result, err := Run(context.Background(), plan, Options{CaptureOutput: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(result.Stdout) != "ambient merged" {
		t.Errorf("Stdout = %q, want both ambient and merged values", result.Stdout)
	}
}

func TestRunShellCwd(t *testing.T) {
	requireTool(t, "sh")

	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}

	plan := models.ExecutionPlan{Kind: models.KindShell, Target: "pwd -P", Cwd: dir}
	result, err := Run(context.Background(), plan, Options{CaptureOutput: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(result.Stdout) != resolved {
		t.Errorf("pwd = %q, want %q", strings.TrimSpace(result.Stdout), resolved)
	}
}

func TestRunDryRunHasNoSideEffects(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "marker")

	plan := models.ExecutionPlan{
		Kind:   models.KindShell,
		Target: "touch " + marker,
		DryRun: true,
	}
	result, err := Run(context.Background(), plan, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ReturnCode != 0 {
		t.Errorf("dry run ReturnCode = %d, want synthetic 0", result.ReturnCode)
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Error("dry run created the marker file")
	}
}

func TestRunModuleUsesRunnerArgv(t *testing.T) {
	requireTool(t, "echo")

	// With echo as the runner the "module" is just printed.
	plan := models.ExecutionPlan{Kind: models.KindModule, Target: "pkg.tool", Args: []string{"--flag"}}
	result, err := Run(context.Background(), plan, Options{
		CaptureOutput: true,
		ModuleCommand: []string{"echo", "-m"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.TrimSpace(result.Stdout) != "-m pkg.tool --flag" {
		t.Errorf("Stdout = %q, want runner argv echoed", result.Stdout)
	}
}
