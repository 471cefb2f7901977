package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"shell", "module", "callable"} {
		kind, err := ParseKind(valid)
		if err != nil {
			t.Errorf("ParseKind(%q) = %v", valid, err)
		}
		if string(kind) != valid {
			t.Errorf("ParseKind(%q) = %q", valid, kind)
		}
	}

	for _, invalid := range []string{"", "cron", "Shell", "SHELL"} {
		if _, err := ParseKind(invalid); err == nil {
			t.Errorf("ParseKind(%q) succeeded", invalid)
		}
	}
}

func TestCommandRecordTimeout(t *testing.T) {
	tests := []struct {
		sec  int
		want time.Duration
	}{
		{sec: 0, want: 0},
		{sec: -5, want: 0},
		{sec: 30, want: 30 * time.Second},
	}
	for _, tt := range tests {
		rec := CommandRecord{TimeoutSec: tt.sec}
		if got := rec.Timeout(); got != tt.want {
			t.Errorf("Timeout() with %d = %v, want %v", tt.sec, got, tt.want)
		}
	}
}

func TestCommandRecordNamespace(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "dev:up", want: "dev"},
		{name: "dev:db:reset", want: "dev"},
		{name: "build", want: ""},
	}
	for _, tt := range tests {
		rec := CommandRecord{Name: tt.name}
		if got := rec.Namespace(); got != tt.want {
			t.Errorf("Namespace(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestUnknownCommandErrorMessage(t *testing.T) {
	bare := &UnknownCommandError{Name: "clen"}
	if msg := bare.Error(); !strings.Contains(msg, "clen") || strings.Contains(msg, "did you mean") {
		t.Errorf("bare message = %q", msg)
	}

	suggested := &UnknownCommandError{Name: "clen", Suggestions: []string{"clean", "clear"}}
	msg := suggested.Error()
	if !strings.Contains(msg, "did you mean") || !strings.Contains(msg, "clean, clear") {
		t.Errorf("suggestion message = %q", msg)
	}
}

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(&ExecutionError{Display: "sleep 5", Timeout: true}) {
		t.Error("IsTimeout false for a timeout error")
	}
	if IsTimeout(&ExecutionError{Display: "false"}) {
		t.Error("IsTimeout true for a plain execution error")
	}
	if IsTimeout(errors.New("unrelated")) {
		t.Error("IsTimeout true for an unrelated error")
	}

	// Wrapped timeouts are still recognized.
	wrapped := fmt.Errorf("dependency failed: %w", &ExecutionError{Display: "x", Timeout: true})
	if !IsTimeout(wrapped) {
		t.Error("IsTimeout false for a wrapped timeout")
	}
}

func TestExecutionErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &ExecutionError{Display: "cmd", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("ExecutionError does not unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("message omits the cause: %q", err.Error())
	}
}
